// internal/model/certificate.go
package model

import (
	"time"
)

// Certificate は修了証を表します (PostgreSQL)。
// enrollment_id のユニーク制約により、受講登録1件につき最大1枚。
type Certificate struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	EnrollmentID      uint       `gorm:"uniqueIndex;not null" json:"enrollment_id"`
	CertificateNumber string     `gorm:"size:100;uniqueIndex;not null" json:"certificate_number"`
	IssueDate         time.Time  `gorm:"not null" json:"issue_date"`
	CertificateURL    string     `gorm:"size:500" json:"certificate_url,omitempty"`
	VerificationCode  string     `gorm:"size:50;uniqueIndex;not null" json:"verification_code"`
	Grade             string     `gorm:"size:10" json:"grade,omitempty"` // A, B, C
	ScorePercentage   *float64   `json:"score_percentage,omitempty"`
	IssuedByID        *uint      `json:"issued_by_id,omitempty"`
	IsRevoked         bool       `gorm:"not null;default:false" json:"is_revoked"`
	RevokedAt         *time.Time `json:"revoked_at,omitempty"`
	RevokedReason     string     `gorm:"type:text" json:"revoked_reason,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

func (Certificate) TableName() string {
	return "certificates"
}

// CertificatePage は修了証一覧のページ
type CertificatePage struct {
	Items []Certificate `json:"items"`
	Total int64         `json:"total"`
	Skip  int           `json:"skip"`
	Limit int           `json:"limit"`
}

// 修了証発行リクエストDTO
type IssueCertificateRequest struct {
	EnrollmentID    uint     `json:"enrollment_id" validate:"required"`
	Grade           string   `json:"grade,omitempty" validate:"omitempty,max=10"`
	ScorePercentage *float64 `json:"score_percentage,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// 修了証失効リクエストDTO
type RevokeCertificateRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// CertificateVerification は公開検証APIのレスポンス。
// 検証コードから引けるのは有効性・成績・発行日・失効情報のみで、
// 受講者の身元は公開しない。
type CertificateVerification struct {
	Valid             bool       `json:"valid"`
	CertificateNumber string     `json:"certificate_number"`
	IssueDate         time.Time  `json:"issue_date"`
	Grade             string     `json:"grade,omitempty"`
	IsRevoked         bool       `json:"is_revoked"`
	RevokedAt         *time.Time `json:"revoked_at,omitempty"`
}
