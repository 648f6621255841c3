// internal/model/enrollment.go
package model

import (
	"time"
)

// 受講登録のライフサイクル状態
const (
	EnrollmentStatusActive    = "active"
	EnrollmentStatusCompleted = "completed"
	EnrollmentStatusDropped   = "dropped"
	EnrollmentStatusSuspended = "suspended"
)

// Enrollment は受講登録を表します (PostgreSQL)。
// (student_id, course_id) の組は複合ユニーク制約で一意。
// 同時登録の競合はこの制約が最終的な番人になる。
type Enrollment struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	StudentID uint `gorm:"not null;index;uniqueIndex:uq_enrollment_student_course" json:"student_id"`
	CourseID  uint `gorm:"not null;index;uniqueIndex:uq_enrollment_student_course" json:"course_id"`

	Status         string     `gorm:"size:50;not null;default:active;index" json:"status"`
	EnrolledAt     time.Time  `gorm:"not null" json:"enrolled_at"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	DroppedAt      *time.Time `json:"dropped_at,omitempty"`
	LastAccessedAt *time.Time `json:"last_accessed_at,omitempty"`

	// 決済情報
	PaymentStatus    string   `gorm:"size:50" json:"payment_status,omitempty"` // pending, completed, refunded
	PaymentAmount    *float64 `json:"payment_amount,omitempty"`
	EnrollmentSource string   `gorm:"size:100" json:"enrollment_source,omitempty"` // web, mobile, api

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// EnrollmentPage は受講登録一覧のページ
type EnrollmentPage struct {
	Items []Enrollment `json:"items"`
	Total int64        `json:"total"`
	Skip  int          `json:"skip"`
	Limit int          `json:"limit"`
}

// 受講登録リクエストDTO
type EnrollRequest struct {
	CourseID         uint     `json:"course_id" validate:"required"`
	PaymentAmount    *float64 `json:"payment_amount,omitempty" validate:"omitempty,gte=0"`
	EnrollmentSource string   `json:"enrollment_source,omitempty" validate:"omitempty,oneof=web mobile api"`
}
