package repository

import (
	"context"
	"fmt"

	"github.com/drizz21/car-rent-new/internal/models"

	"gorm.io/gorm"
)

type Cars struct {
	db *gorm.DB
}

func NewCars(db *gorm.DB) *Cars {
	return &Cars{db: db}
}

func (r *Cars) List(ctx context.Context) ([]models.Car, error) {
	var cars []models.Car
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&cars).Error; err != nil {
		return nil, fmt.Errorf("list cars: %w", err)
	}
	return cars, nil
}

func (r *Cars) Get(ctx context.Context, id uint) (*models.Car, error) {
	var car models.Car
	if err := r.db.WithContext(ctx).First(&car, id).Error; err != nil {
		return nil, fmt.Errorf("get car %d: %w", id, translate(err))
	}
	return &car, nil
}

func (r *Cars) Create(ctx context.Context, car *models.Car) error {
	if err := r.db.WithContext(ctx).Create(car).Error; err != nil {
		return fmt.Errorf("create car: %w", translate(err))
	}
	return nil
}

func (r *Cars) Update(ctx context.Context, car *models.Car) error {
	if err := r.db.WithContext(ctx).Save(car).Error; err != nil {
		return fmt.Errorf("update car %d: %w", car.ID, translate(err))
	}
	return nil
}

func (r *Cars) Delete(ctx context.Context, id uint) error {
	if err := deleted(r.db.WithContext(ctx).Delete(&models.Car{}, id)); err != nil {
		return fmt.Errorf("delete car %d: %w", id, err)
	}
	return nil
}
