package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/drizz21/car-rent-new/internal/models"

	"gorm.io/gorm"
)

type Users struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

// ownerLockKey serialises owner bootstrap across connections.
const ownerLockKey = 7210042

// CreateOwner inserts u as the owner unless one already exists. The check and
// the insert share a transaction holding an advisory lock, and the partial
// unique index created by Migrate rejects a second owner in any case.
func (r *Users) CreateOwner(ctx context.Context, u *models.User) error {
	u.Role = models.RoleOwner
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", ownerLockKey).Error; err != nil {
			return fmt.Errorf("lock: %w", err)
		}
		var n int64
		if err := tx.Model(&models.User{}).Where("role = ?", models.RoleOwner).Count(&n).Error; err != nil {
			return fmt.Errorf("count owners: %w", err)
		}
		if n > 0 {
			return ErrOwnerExists
		}
		return tx.Create(u).Error
	})
	if errors.Is(err, ErrOwnerExists) {
		return err
	}
	if err != nil {
		return fmt.Errorf("create owner: %w", translate(err))
	}
	return nil
}

func (r *Users) Create(ctx context.Context, u *models.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("create user: %w", translate(err))
	}
	return nil
}

func (r *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	email = strings.TrimSpace(strings.ToLower(email))
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, fmt.Errorf("find user: %w", translate(err))
	}
	return &u, nil
}

func (r *Users) Get(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, translate(err))
	}
	return &u, nil
}
