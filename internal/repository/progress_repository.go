//go:generate mockery --name ProgressRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"smartcourse/internal/middleware"
	"smartcourse/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressRepository は完了マークの記録を担います。
// (user_id, item_type, item_id) の一意制約で同一アイテムの
// 完了は一度だけ記録される。
type ProgressRepository interface {
	// InsertIfAbsent は完了マークを冪等に挿入します。既存行がある場合は
	// その行と created=false を返し、新規挿入時は created=true を返す。
	InsertIfAbsent(ctx context.Context, tx *gorm.DB, progress *model.Progress) (*model.Progress, bool, error)
	FindByUserAndItem(ctx context.Context, db *gorm.DB, userID uint, itemType, itemID string) (*model.Progress, error)
	FindByUserAndCourse(ctx context.Context, db *gorm.DB, userID, courseID uint) ([]model.Progress, error)
	DeleteByUserAndCourse(ctx context.Context, tx *gorm.DB, userID, courseID uint) (int64, error)
}

type gormProgressRepository struct{}

func NewGormProgressRepository() ProgressRepository {
	return &gormProgressRepository{}
}

func (r *gormProgressRepository) InsertIfAbsent(ctx context.Context, tx *gorm.DB, progress *model.Progress) (*model.Progress, bool, error) {
	logger := middleware.GetLogger(ctx)

	// ON CONFLICT DO NOTHING。競合時は RowsAffected が 0 になる。
	result := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
			{Name: "item_type"},
			{Name: "item_id"},
		},
		DoNothing: true,
	}).Create(progress)
	if result.Error != nil {
		logger.Error("Error inserting progress in DB",
			"error", result.Error,
			"user_id", progress.UserID,
			"item_type", progress.ItemType,
			"item_id", progress.ItemID,
		)
		return nil, false, fmt.Errorf("gormProgressRepository.InsertIfAbsent: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return progress, true, nil
	}

	existing, err := r.FindByUserAndItem(ctx, tx, progress.UserID, progress.ItemType, progress.ItemID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *gormProgressRepository) FindByUserAndItem(ctx context.Context, db *gorm.DB, userID uint, itemType, itemID string) (*model.Progress, error) {
	logger := middleware.GetLogger(ctx)
	var progress model.Progress
	result := db.WithContext(ctx).
		Where("user_id = ? AND item_type = ? AND item_id = ?", userID, itemType, itemID).
		First(&progress)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding progress by user/item in DB",
			"error", result.Error,
			"user_id", userID,
			"item_type", itemType,
			"item_id", itemID,
		)
		return nil, fmt.Errorf("gormProgressRepository.FindByUserAndItem: %w", result.Error)
	}
	return &progress, nil
}

func (r *gormProgressRepository) FindByUserAndCourse(ctx context.Context, db *gorm.DB, userID, courseID uint) ([]model.Progress, error) {
	logger := middleware.GetLogger(ctx)
	var records []model.Progress
	result := db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Order("completed_at ASC").
		Find(&records)
	if result.Error != nil {
		logger.Error("Error finding progress by user/course in DB",
			"error", result.Error,
			"user_id", userID,
			"course_id", courseID,
		)
		return nil, fmt.Errorf("gormProgressRepository.FindByUserAndCourse: %w", result.Error)
	}
	return records, nil
}

func (r *gormProgressRepository) DeleteByUserAndCourse(ctx context.Context, tx *gorm.DB, userID, courseID uint) (int64, error) {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Delete(&model.Progress{})
	if result.Error != nil {
		logger.Error("Error deleting progress by user/course in DB",
			"error", result.Error,
			"user_id", userID,
			"course_id", courseID,
		)
		return 0, fmt.Errorf("gormProgressRepository.DeleteByUserAndCourse: %w", result.Error)
	}
	return result.RowsAffected, nil
}
