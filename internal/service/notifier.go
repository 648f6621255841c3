// internal/service/notifier.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"smartcourse/internal/config"
	"smartcourse/internal/middleware"
	"smartcourse/internal/model"
)

// Mailer はメール送信の抽象です
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// --- LogMailer ---
type LogMailer struct{}

func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	logger := middleware.GetLogger(ctx)
	logger.Info("--- Sending Email (LogMailer) ---", "to", to, "subject", subject, "body", body)
	return nil
}

// --- SmtpMailer ---
type SmtpMailer struct {
	cfg *config.SMTPConfig
}

func (m *SmtpMailer) Send(ctx context.Context, to, subject, body string) error {
	logger := middleware.GetLogger(ctx)
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	logger.Debug("Attempting to send email via SMTP",
		"smtp_addr", addr,
		"from", m.cfg.From,
		"to", to,
	)

	// 平文接続の低レベルAPIで送る (ローカルリレー前提)
	c, err := smtp.Dial(addr)
	if err != nil {
		logger.Error("Failed to connect to SMTP server", "error", err, "addr", addr)
		return err
	}
	defer c.Close()

	if err = c.Mail(m.cfg.From); err != nil {
		logger.Error("Failed to set MAIL FROM", "error", err, "from", m.cfg.From)
		return err
	}
	if err = c.Rcpt(to); err != nil {
		logger.Error("Failed to set RCPT TO", "error", err, "to", to)
		return err
	}

	wc, err := c.Data()
	if err != nil {
		logger.Error("Failed to open data writer", "error", err)
		return err
	}
	defer wc.Close()

	msg := "To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" +
		body + "\r\n"
	if _, err = wc.Write([]byte(msg)); err != nil {
		logger.Error("Failed to write email data", "error", err)
		return err
	}

	logger.Info("Email sent successfully via SMTP", "to", to, "subject", subject)
	return nil
}

// NewMailer は設定に応じたMailer実装を返します
func NewMailer(cfg *config.Config) Mailer {
	logger := slog.Default()
	switch cfg.Notifier.Type {
	case "smtp":
		logger.Info("Initializing SMTP mailer...")
		return &SmtpMailer{cfg: &cfg.SMTP}
	case "ses":
		logger.Info("Initializing SES mailer...")
		return NewSESMailer(cfg)
	case "log":
		logger.Info("Initializing Log mailer...")
		return &LogMailer{}
	default:
		logger.Warn("Unknown notifier type, defaulting to LogMailer", "type", cfg.Notifier.Type)
		return &LogMailer{}
	}
}

// Notifier はドメインイベントの通知を担います。
// 通知は副作用であり、失敗しても呼び出し元の処理は成功扱いのまま。
type Notifier interface {
	CourseCompleted(ctx context.Context, studentID uint, course *model.Course)
	CertificateIssued(ctx context.Context, studentID uint, course *model.Course, certificate *model.Certificate)
}

type mailNotifier struct {
	mailer Mailer
	to     string // 未設定なら送信はスキップしてログのみ
}

func NewNotifier(cfg *config.Config) Notifier {
	return &mailNotifier{
		mailer: NewMailer(cfg),
		to:     cfg.Notifier.To,
	}
}

func (n *mailNotifier) CourseCompleted(ctx context.Context, studentID uint, course *model.Course) {
	logger := middleware.GetLogger(ctx)
	logger.Info("Course completed", "student_id", studentID, "course_id", course.ID, "title", course.Title)

	if n.to == "" {
		return
	}
	subject := fmt.Sprintf("[smartcourse] Course completed: %s", course.Title)
	body := fmt.Sprintf("Student %d completed course %d (%s).", studentID, course.ID, course.Title)
	if err := n.mailer.Send(ctx, n.to, subject, body); err != nil {
		logger.Warn("Failed to send completion notification", "error", err, "student_id", studentID, "course_id", course.ID)
	}
}

func (n *mailNotifier) CertificateIssued(ctx context.Context, studentID uint, course *model.Course, certificate *model.Certificate) {
	logger := middleware.GetLogger(ctx)
	logger.Info("Certificate issued",
		"student_id", studentID,
		"course_id", course.ID,
		"certificate_number", certificate.CertificateNumber,
	)

	if n.to == "" {
		return
	}
	subject := fmt.Sprintf("[smartcourse] Certificate issued: %s", certificate.CertificateNumber)
	body := fmt.Sprintf("Certificate %s was issued to student %d for course %d (%s).",
		certificate.CertificateNumber, studentID, course.ID, course.Title)
	if err := n.mailer.Send(ctx, n.to, subject, body); err != nil {
		logger.Warn("Failed to send certificate notification", "error", err, "student_id", studentID, "course_id", course.ID)
	}
}
