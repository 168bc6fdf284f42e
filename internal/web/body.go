package web

import (
	"encoding/json"

	"textile-erp-backend/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

// Bind unmarshals the JSON request body onto dst, rewriting "" to null for
// the named numeric foreign-key fields first. Clients send "" for "no
// reference"; without the rewrite that fails unmarshal on numeric columns.
func Bind(c *fiber.Ctx, dst any, fkFields ...string) error {
	raw, err := NormalizeFKs(c.Body(), fkFields)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return apperr.Wrap(apperr.Validation, err, "invalid request body")
	}
	return nil
}

// NormalizeFKs rewrites "" to null for the given top-level numeric
// foreign-key fields.
func NormalizeFKs(raw []byte, fields []string) ([]byte, error) {
	if len(fields) == 0 || len(raw) == 0 {
		return raw, nil
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, apperr.Wrap(apperr.Validation, err, "invalid request body")
	}

	changed := false
	for _, f := range fields {
		if v, ok := payload[f]; ok && string(v) == `""` {
			payload[f] = json.RawMessage("null")
			changed = true
		}
	}
	if !changed {
		return raw, nil
	}

	out, err := json.Marshal(payload)
	if err != nil {
		return nil, apperr.Wrap(apperr.Validation, err, "invalid request body")
	}
	return out, nil
}
