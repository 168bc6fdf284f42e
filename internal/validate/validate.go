package validate

import (
	"github.com/go-playground/validator/v10"

	"textile-erp-backend/internal/apperr"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// Struct runs validator tags on a request DTO and converts the first failure
// into a Validation error the central handler can render.
func Struct(s any) error {
	if err := v.Struct(s); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			f := errs[0]
			return apperr.Newf(apperr.Validation, "field %s failed on %s", f.Field(), f.Tag())
		}
		return apperr.Wrap(apperr.Validation, err, "invalid payload")
	}
	return nil
}
