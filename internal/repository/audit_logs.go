package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/drizz21/car-rent-new/internal/models"

	"gorm.io/gorm"
)

var (
	ErrAlreadyUndone = errors.New("log sudah dibatalkan")
	ErrNotUndoable   = errors.New("jenis log ini tidak bisa dibatalkan")
)

type AuditFilter struct {
	EntityType string
	EntityID   uint
	UserID     uint
	Limit      int
}

type AuditLogs struct {
	db *gorm.DB
}

func NewAuditLogs(db *gorm.DB) *AuditLogs {
	return &AuditLogs{db: db}
}

func (r *AuditLogs) Create(ctx context.Context, l *models.AuditLog) error {
	if err := r.db.WithContext(ctx).Create(l).Error; err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}

func (r *AuditLogs) List(ctx context.Context, f AuditFilter) ([]models.AuditLog, error) {
	q := r.db.WithContext(ctx).Model(&models.AuditLog{})
	if f.EntityType != "" {
		q = q.Where("entity_type = ?", f.EntityType)
	}
	if f.EntityID > 0 {
		q = q.Where("entity_id = ?", f.EntityID)
	}
	if f.UserID > 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var logs []models.AuditLog
	if err := q.Order("created_at DESC, id DESC").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return logs, nil
}

// Undo reverts the change recorded by a log: a create is deleted, an update
// is restored from its before-image and a delete is recreated. The reverted
// log is marked and a new undo log is written, all in one transaction.
func (r *AuditLogs) Undo(ctx context.Context, logID, userID uint, userName string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var l models.AuditLog
		if err := tx.First(&l, logID).Error; err != nil {
			return fmt.Errorf("get audit log %d: %w", logID, translate(err))
		}
		if l.IsUndone {
			return ErrAlreadyUndone
		}

		var err error
		switch l.Action {
		case models.AuditActionCreate:
			err = deleteEntity(tx, l.EntityType, l.EntityID)
		case models.AuditActionUpdate:
			err = restoreEntity(tx, l.EntityType, l.EntityID, l.BeforeData)
		case models.AuditActionDelete:
			err = recreateEntity(tx, l.EntityType, l.BeforeData)
		default:
			return ErrNotUndoable
		}
		if err != nil {
			return fmt.Errorf("undo %s %s %d: %w", l.Action, l.EntityType, l.EntityID, err)
		}

		now := time.Now()
		l.IsUndone = true
		l.UndoneBy = &userID
		l.UndoneAt = &now
		if err := tx.Save(&l).Error; err != nil {
			return fmt.Errorf("mark audit log %d: %w", l.ID, err)
		}

		undo := models.AuditLog{
			UserID:      userID,
			UserName:    userName,
			EntityType:  l.EntityType,
			EntityID:    l.EntityID,
			Action:      models.AuditActionUndo,
			Description: fmt.Sprintf("Dibatalkan: %s", l.Description),
			BeforeData:  l.AfterData,
			AfterData:   l.BeforeData,
			Undo:        true,
		}
		if err := tx.Create(&undo).Error; err != nil {
			return fmt.Errorf("write undo log: %w", err)
		}
		return nil
	})
}

func entityModel(entityType string) (any, error) {
	switch entityType {
	case models.EntityCar:
		return &models.Car{}, nil
	case models.EntityBooking:
		return &models.Booking{}, nil
	case models.EntityExpense:
		return &models.Expense{}, nil
	}
	return nil, fmt.Errorf("unknown entity type %q", entityType)
}

func deleteEntity(tx *gorm.DB, entityType string, id uint) error {
	m, err := entityModel(entityType)
	if err != nil {
		return err
	}
	return deleted(tx.Delete(m, id))
}

// recreateEntity inserts the before-image again under its original id.
func recreateEntity(tx *gorm.DB, entityType, data string) error {
	m, err := entityModel(entityType)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(data), m); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	return translate(tx.Create(m).Error)
}

func restoreEntity(tx *gorm.DB, entityType string, id uint, data string) error {
	m, err := entityModel(entityType)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(data), m); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	res := tx.Model(m).Where("id = ?", id).Select("*").Omit("id", "created_at").Updates(m)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
