package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bookplanner/internal/microservices/http-api/models"
)

type GoalsRepository interface {
	// Get returns ErrNotFound until goals have been saved once.
	Get(ctx context.Context) (*models.Goals, error)
	Save(ctx context.Context, goals models.Goals) error
}

type goalsRepository struct {
	db *gorm.DB
}

func NewGoalsRepository(db *gorm.DB) GoalsRepository {
	return &goalsRepository{db: db}
}

func (r *goalsRepository) Get(ctx context.Context) (*models.Goals, error) {
	var goals models.Goals
	err := r.db.WithContext(ctx).First(&goals, "id = ?", models.GoalsRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get goals: %w", err)
	}
	return &goals, nil
}

func (r *goalsRepository) Save(ctx context.Context, goals models.Goals) error {
	goals.ID = models.GoalsRowID
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&goals).Error; err != nil {
		return fmt.Errorf("save goals: %w", err)
	}
	return nil
}
