// internal/model/progress.go
package model

import (
	"time"
)

// 進捗対象のコンテンツ種別
const (
	ItemTypeLesson  = "lesson"
	ItemTypeQuiz    = "quiz"
	ItemTypeSummary = "summary"
)

// Progress はコンテンツ1件の完了記録を表します (PostgreSQL)。
// (user_id, item_type, item_id) の複合ユニーク制約により、
// 同一アイテムの完了は物理的に1行しか存在しない。
type Progress struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index:ix_progress_user_course;uniqueIndex:uq_progress_user_item" json:"user_id"`
	CourseID    uint      `gorm:"not null;index:ix_progress_user_course" json:"course_id"`
	ItemType    string    `gorm:"size:20;not null;uniqueIndex:uq_progress_user_item" json:"item_type"`
	ItemID      string    `gorm:"size:50;not null;uniqueIndex:uq_progress_user_item" json:"item_id"`
	CompletedAt time.Time `gorm:"not null" json:"completed_at"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Progress) TableName() string {
	return "progress"
}

// 完了マークリクエストDTO
type MarkCompletedRequest struct {
	CourseID uint   `json:"course_id" validate:"required"`
	ItemType string `json:"item_type" validate:"required,oneof=lesson quiz summary"`
	ItemID   string `json:"item_id" validate:"required,max=50"`
}

// CourseProgressSummary はコース単位の進捗集計結果。
// 分母はコンテンツツリーから毎回計算し直すため、永続化はしない。
type CourseProgressSummary struct {
	CourseID             uint     `json:"course_id"`
	UserID               uint     `json:"user_id"`
	TotalItems           int      `json:"total_items"`
	CompletedItems       int      `json:"completed_items"`
	CompletionPercentage float64  `json:"completion_percentage"`
	CompletedLessons     []string `json:"completed_lessons"`
	CompletedQuizzes     []string `json:"completed_quizzes"`
	CompletedSummaries   []string `json:"completed_summaries"`
	HasCertificate       bool     `json:"has_certificate"`
	IsComplete           bool     `json:"is_complete"`
}
