package audit

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/drizz21/car-rent-new/internal/auth"
	"github.com/drizz21/car-rent-new/internal/httpx"
	"github.com/drizz21/car-rent-new/internal/models"
	"github.com/drizz21/car-rent-new/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type LogStore interface {
	List(ctx context.Context, f repository.AuditFilter) ([]models.AuditLog, error)
	Undo(ctx context.Context, logID, userID uint, userName string) error
}

type AuditLogResponse struct {
	ID          uint               `json:"id"`
	CreatedAt   string             `json:"created_at"`
	UserID      uint               `json:"user_id"`
	UserName    string             `json:"user_name"`
	EntityType  string             `json:"entity_type"`
	EntityID    uint               `json:"entity_id"`
	Action      models.AuditAction `json:"action"`
	Description string             `json:"description"`
	IsUndone    bool               `json:"is_undone"`
	UndoneBy    *uint              `json:"undone_by"`
	UndoneAt    *string            `json:"undone_at"`
}

const timeLayout = "2006-01-02 15:04:05"

func queryUint(c *fiber.Ctx, key string) uint {
	n, err := strconv.ParseUint(c.Query(key), 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}

// GET /api/admin/audit-logs?entity_type=booking&entity_id=1&user_id=2&limit=100
func ListAuditLogsHandler(store LogStore, loc *time.Location) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := repository.AuditFilter{
			EntityType: c.Query("entity_type"),
			EntityID:   queryUint(c, "entity_id"),
			UserID:     queryUint(c, "user_id"),
			Limit:      c.QueryInt("limit", 200),
		}

		logs, err := store.List(c.UserContext(), filter)
		if err != nil {
			return err
		}

		resp := make([]AuditLogResponse, 0, len(logs))
		for _, l := range logs {
			var undoneAt *string
			if l.UndoneAt != nil {
				formatted := l.UndoneAt.In(loc).Format(timeLayout)
				undoneAt = &formatted
			}
			resp = append(resp, AuditLogResponse{
				ID:          l.ID,
				CreatedAt:   l.CreatedAt.In(loc).Format(timeLayout),
				UserID:      l.UserID,
				UserName:    l.UserName,
				EntityType:  l.EntityType,
				EntityID:    l.EntityID,
				Action:      l.Action,
				Description: l.Description,
				IsUndone:    l.IsUndone,
				UndoneBy:    l.UndoneBy,
				UndoneAt:    undoneAt,
			})
		}
		return c.JSON(resp)
	}
}

// POST /api/admin/audit-logs/:id/undo
func UndoAuditLogHandler(store LogStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		logID, err := httpx.ParamID(c)
		if err != nil {
			return err
		}
		me, ok := auth.CurrentUser(c)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Pengguna tidak dikenali")
		}

		err = store.Undo(c.UserContext(), logID, me.UserID, me.Name)
		switch {
		case err == nil:
		case errors.Is(err, repository.ErrAlreadyUndone):
			return fiber.NewError(fiber.StatusBadRequest, repository.ErrAlreadyUndone.Error())
		case errors.Is(err, repository.ErrNotUndoable):
			return fiber.NewError(fiber.StatusBadRequest, repository.ErrNotUndoable.Error())
		default:
			return httpx.StoreError(err, "Log tidak ditemukan", "Data dengan kunci yang sama sudah ada")
		}

		return c.JSON(fiber.Map{"message": "Perubahan berhasil dibatalkan"})
	}
}
