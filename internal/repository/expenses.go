package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/drizz21/car-rent-new/internal/models"

	"gorm.io/gorm"
)

// ExpenseFilter narrows the expense list. From and To are inclusive calendar
// dates; Category "Lainnya" also matches rows stored without a category.
type ExpenseFilter struct {
	From     *time.Time
	To       *time.Time
	Category string
	Search   string
}

type Expenses struct {
	db *gorm.DB
}

func NewExpenses(db *gorm.DB) *Expenses {
	return &Expenses{db: db}
}

func (r *Expenses) List(ctx context.Context, f ExpenseFilter) ([]models.Expense, error) {
	q := r.db.WithContext(ctx).Model(&models.Expense{})
	if f.From != nil {
		q = q.Where("date >= ?", f.From.Format(time.DateOnly))
	}
	if f.To != nil {
		q = q.Where("date <= ?", f.To.Format(time.DateOnly))
	}
	if f.Category != "" {
		if f.Category == "Lainnya" {
			q = q.Where("category = ? OR category = '' OR category IS NULL", f.Category)
		} else {
			q = q.Where("category = ?", f.Category)
		}
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(description) LIKE ? OR LOWER(category) LIKE ?", like, like)
	}

	var expenses []models.Expense
	if err := q.Order("date DESC, created_at DESC").Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

func (r *Expenses) Get(ctx context.Context, id uint) (*models.Expense, error) {
	var e models.Expense
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, fmt.Errorf("get expense %d: %w", id, translate(err))
	}
	return &e, nil
}

func (r *Expenses) Create(ctx context.Context, e *models.Expense) error {
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		return fmt.Errorf("create expense: %w", translate(err))
	}
	return nil
}

func (r *Expenses) Update(ctx context.Context, e *models.Expense) error {
	if err := r.db.WithContext(ctx).Save(e).Error; err != nil {
		return fmt.Errorf("update expense %d: %w", e.ID, translate(err))
	}
	return nil
}

func (r *Expenses) Delete(ctx context.Context, id uint) error {
	if err := deleted(r.db.WithContext(ctx).Delete(&models.Expense{}, id)); err != nil {
		return fmt.Errorf("delete expense %d: %w", id, err)
	}
	return nil
}
