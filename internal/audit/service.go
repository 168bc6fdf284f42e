package audit

import (
	"encoding/json"
	"fmt"

	"textile-erp-backend/internal/database"
	"textile-erp-backend/internal/logging"
	"textile-erp-backend/internal/models"
)

type LogOptions struct {
	UserID      uint
	UserName    string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

// WriteLog appends an audit row. Failures are reported but never abort the
// business operation that triggered them.
func WriteLog(opts LogOptions) error {
	// jsonb columns want the JSON literal "null", not an empty string
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	entry := models.AuditLog{
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		logging.Log.WithError(err).
			WithField("entity_type", opts.EntityType).
			Warn("audit log write failed")
		return fmt.Errorf("audit log write failed: %w", err)
	}

	return nil
}
