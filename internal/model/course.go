// internal/model/course.go
package model

import (
	"time"
)

// コースのライフサイクル状態
const (
	CourseStatusDraft     = "draft"
	CourseStatusPublished = "published"
	CourseStatusArchived  = "archived"
)

// Course はコースのメタデータを表します (PostgreSQL)
type Course struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Title           string     `gorm:"size:255;not null" json:"title"`
	Slug            string     `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Description     string     `gorm:"type:text" json:"description,omitempty"`
	LongDescription string     `gorm:"type:text" json:"long_description,omitempty"`
	InstructorID    uint       `gorm:"not null;index" json:"instructor_id"` // user-service側のinstructorへの参照
	Category        string     `gorm:"size:100;index" json:"category,omitempty"`
	Level           string     `gorm:"size:50" json:"level,omitempty"` // beginner, intermediate, advanced
	Language        string     `gorm:"size:50;not null;default:en" json:"language"`
	DurationHours   *float64   `json:"duration_hours,omitempty"`
	Price           float64    `gorm:"not null;default:0" json:"price"`
	Currency        string     `gorm:"size:3;not null;default:USD" json:"currency"`
	ThumbnailURL    string     `gorm:"size:500" json:"thumbnail_url,omitempty"`
	Status          string     `gorm:"size:50;not null;default:draft;index" json:"status"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	MaxStudents     *int       `json:"max_students,omitempty"`
	Prerequisites   string     `gorm:"type:text" json:"prerequisites,omitempty"`
	IsDeleted       bool       `gorm:"not null;default:false" json:"-"` // 論理削除フラグ
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (Course) TableName() string {
	return "courses"
}

// CoursePage は公開コース一覧のページとその総件数。
// キャッシュにはページと総数を必ずセットで格納する (片方だけの更新は不整合のもと)。
type CoursePage struct {
	Items []Course `json:"items"`
	Total int64    `json:"total"`
	Skip  int      `json:"skip"`
	Limit int      `json:"limit"`
}

// コース作成リクエストDTO
type CreateCourseRequest struct {
	Title           string   `json:"title" validate:"required,max=255"`
	Slug            string   `json:"slug" validate:"required,max=255"`
	Description     string   `json:"description,omitempty"`
	LongDescription string   `json:"long_description,omitempty"`
	Category        string   `json:"category,omitempty" validate:"omitempty,max=100"`
	Level           string   `json:"level,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
	Language        string   `json:"language,omitempty" validate:"omitempty,max=50"`
	DurationHours   *float64 `json:"duration_hours,omitempty"`
	Price           float64  `json:"price" validate:"gte=0"`
	Currency        string   `json:"currency,omitempty" validate:"omitempty,len=3"`
	ThumbnailURL    string   `json:"thumbnail_url,omitempty" validate:"omitempty,max=500"`
	MaxStudents     *int     `json:"max_students,omitempty" validate:"omitempty,gt=0"`
	Prerequisites   string   `json:"prerequisites,omitempty"`
}

// コース更新（部分）リクエストDTO
type UpdateCourseRequest struct {
	Title           *string  `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description     *string  `json:"description,omitempty"`
	LongDescription *string  `json:"long_description,omitempty"`
	Category        *string  `json:"category,omitempty" validate:"omitempty,max=100"`
	Level           *string  `json:"level,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
	Language        *string  `json:"language,omitempty" validate:"omitempty,max=50"`
	DurationHours   *float64 `json:"duration_hours,omitempty"`
	Price           *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	ThumbnailURL    *string  `json:"thumbnail_url,omitempty" validate:"omitempty,max=500"`
	MaxStudents     *int     `json:"max_students,omitempty" validate:"omitempty,gt=0"`
	Prerequisites   *string  `json:"prerequisites,omitempty"`
}

// コース状態変更リクエストDTO
type UpdateCourseStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft published archived"`
}
