// Package registry provides the uniform CRUD surface shared by every master
// table: create, list, get, update, delete and bulk-delete, with per-resource
// preloads and foreign-key normalization. One typed Resource per entity
// replaces the dynamically-keyed handler factory this started life as.
package registry

import (
	"encoding/json"
	"errors"

	"textile-erp-backend/internal/apperr"
	"textile-erp-backend/internal/audit"
	"textile-erp-backend/internal/auth"
	"textile-erp-backend/internal/database"
	"textile-erp-backend/internal/models"
	"textile-erp-backend/internal/web"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Resource is the CRUD configuration for one master entity.
type Resource[T any] struct {
	// Path segment and audit entity type, e.g. "products".
	Name string
	// Associations eager-loaded on list/get.
	Preloads []string
	// JSON fields holding numeric foreign keys. Clients send "" for "no
	// reference"; these are rewritten to null before every write so the
	// storage layer never sees an empty string in a bigint column.
	FKFields []string
}

// Register mounts the six CRUD routes on the router.
func (r Resource[T]) Register(router fiber.Router) {
	router.Post("/"+r.Name, r.create())
	router.Get("/"+r.Name, r.list())
	router.Get("/"+r.Name+"/:id", r.get())
	router.Put("/"+r.Name+"/:id", r.update())
	router.Delete("/"+r.Name+"/:id", r.remove())
	router.Post("/"+r.Name+"/bulk-delete", r.bulkDelete())
}

func (r Resource[T]) create() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var entity T
		if err := r.bind(c.Body(), &entity); err != nil {
			return err
		}

		if err := database.DB.Omit(clause.Associations).Create(&entity).Error; err != nil {
			return apperr.Wrap(apperr.Persistence, err, "could not create "+r.Name)
		}

		userID, userName := auth.CurrentUser(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:     userID,
			UserName:   userName,
			EntityType: r.Name,
			EntityID:   entityID(&entity),
			Action:     models.AuditActionCreate,
			After:      entity,
		})

		return web.Created(c, entity)
	}
}

func (r Resource[T]) list() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB
		for _, p := range r.Preloads {
			q = q.Preload(p)
		}

		var entities []T
		if err := q.Find(&entities).Error; err != nil {
			return apperr.Wrap(apperr.Persistence, err, "could not list "+r.Name)
		}
		return web.OK(c, entities)
	}
}

func (r Resource[T]) get() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return apperr.New(apperr.Validation, "invalid id")
		}

		q := database.DB
		for _, p := range r.Preloads {
			q = q.Preload(p)
		}

		var entity T
		if err := q.First(&entity, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.Newf(apperr.NotFound, "%s %d not found", r.Name, id)
			}
			return apperr.Wrap(apperr.Persistence, err, "could not load "+r.Name)
		}
		return web.OK(c, entity)
	}
}

func (r Resource[T]) update() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return apperr.New(apperr.Validation, "invalid id")
		}

		var entity T
		if err := database.DB.First(&entity, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.Newf(apperr.NotFound, "%s %d not found", r.Name, id)
			}
			return apperr.Wrap(apperr.Persistence, err, "could not load "+r.Name)
		}
		before := entity

		if err := r.bind(c.Body(), &entity); err != nil {
			return err
		}
		setEntityID(&entity, uint(id))

		if err := database.DB.Omit(clause.Associations).Save(&entity).Error; err != nil {
			return apperr.Wrap(apperr.Persistence, err, "could not update "+r.Name)
		}

		userID, userName := auth.CurrentUser(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:     userID,
			UserName:   userName,
			EntityType: r.Name,
			EntityID:   uint(id),
			Action:     models.AuditActionUpdate,
			Before:     before,
			After:      entity,
		})

		return web.Message(c, r.Name+" updated")
	}
}

func (r Resource[T]) remove() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return apperr.New(apperr.Validation, "invalid id")
		}

		var entity T
		if err := database.DB.Delete(&entity, "id = ?", id).Error; err != nil {
			return apperr.Wrap(apperr.Persistence, err, "could not delete "+r.Name)
		}

		userID, userName := auth.CurrentUser(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:     userID,
			UserName:   userName,
			EntityType: r.Name,
			EntityID:   uint(id),
			Action:     models.AuditActionDelete,
		})

		return web.Message(c, r.Name+" deleted")
	}
}

type bulkDeleteRequest struct {
	IDs []uint `json:"ids"`
}

func (r Resource[T]) bulkDelete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body bulkDeleteRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.New(apperr.Validation, "invalid request body")
		}
		if len(body.IDs) == 0 {
			return apperr.New(apperr.Validation, "ids must be a non-empty array")
		}

		var entity T
		if err := database.DB.Delete(&entity, body.IDs).Error; err != nil {
			return apperr.Wrap(apperr.Persistence, err, "could not bulk-delete "+r.Name)
		}

		return web.Message(c, r.Name+" deleted")
	}
}

// bind normalizes FK fields in the raw JSON body and unmarshals it onto dst.
func (r Resource[T]) bind(raw []byte, dst *T) error {
	normalized, err := web.NormalizeFKs(raw, r.FKFields)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(normalized, dst); err != nil {
		return apperr.Wrap(apperr.Validation, err, "invalid request body")
	}
	return nil
}
