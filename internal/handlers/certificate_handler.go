// internal/handlers/certificate_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"smartcourse/internal/config"
	"smartcourse/internal/middleware"
	"smartcourse/internal/model"
	"smartcourse/internal/service"
	"smartcourse/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type CertificateHandler struct {
	service service.CertificateService
	logger  *slog.Logger
}

func NewCertificateHandler(s service.CertificateService, logger *slog.Logger) *CertificateHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CertificateHandler{
		service: s,
		logger:  logger,
	}
}

// PostCertificate は修了証を発行するためのハンドラ (講師・管理者用)
func (h *CertificateHandler) PostCertificate(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostCertificate"))

	actor, err := middleware.GetActorFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrUnauthorized))
		return
	}

	var req model.IssueCertificateRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput))
		return
	}
	if err := webutil.ValidateStruct(&req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	cert, err := h.service.Issue(r.Context(), actor, &req)
	if err != nil {
		logger.Error("Error issuing certificate in service", slog.Any("error", err), slog.Uint64("enrollment_id", uint64(req.EnrollmentID)))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Certificate issued successfully", slog.String("certificate_number", cert.CertificateNumber))
	webutil.RespondWithJSON(w, http.StatusCreated, cert, logger)
}

// GetCertificate は修了証の詳細を取得するためのハンドラ
func (h *CertificateHandler) GetCertificate(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCertificate"))

	actor, err := middleware.GetActorFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrUnauthorized))
		return
	}
	certificateID, err := webutil.ParseUintParam(chi.URLParam(r, "certificate_id"), "certificate_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	cert, err := h.service.GetCertificate(r.Context(), actor, certificateID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, cert, logger)
}

// GetEnrollmentCertificate は受講登録に紐づく修了証を取得するためのハンドラ
func (h *CertificateHandler) GetEnrollmentCertificate(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetEnrollmentCertificate"))

	actor, err := middleware.GetActorFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrUnauthorized))
		return
	}
	enrollmentID, err := webutil.ParseUintParam(chi.URLParam(r, "enrollment_id"), "enrollment_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	cert, err := h.service.GetByEnrollment(r.Context(), actor, enrollmentID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, cert, logger)
}

// GetStudentCertificates は学生の修了証一覧を取得するためのハンドラ
func (h *CertificateHandler) GetStudentCertificates(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetStudentCertificates"))

	actor, err := middleware.GetActorFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrUnauthorized))
		return
	}
	studentID, err := webutil.ParseUintParam(chi.URLParam(r, "student_id"), "student_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	skip, limit := webutil.ParsePagination(r, config.Cfg.App.DefaultPageLimit)
	page, err := h.service.ListByStudent(r.Context(), actor, studentID, skip, limit)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, page, logger)
}

// GetVerification は検証コードから修了証の有効性を確認するためのハンドラ (認証不要)
func (h *CertificateHandler) GetVerification(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetVerification"))

	code := chi.URLParam(r, "code")
	if code == "" {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_URL_PARAM", "検証コードが指定されていません。", "code", model.ErrInvalidInput))
		return
	}

	verification, err := h.service.Verify(r.Context(), code)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, verification, logger)
}

// PostRevoke は修了証を失効させるためのハンドラ (管理者用)
func (h *CertificateHandler) PostRevoke(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostRevoke"))

	actor, err := middleware.GetActorFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrUnauthorized))
		return
	}
	certificateID, err := webutil.ParseUintParam(chi.URLParam(r, "certificate_id"), "certificate_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.RevokeCertificateRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput))
		return
	}
	if err := webutil.ValidateStruct(&req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	cert, err := h.service.Revoke(r.Context(), actor, certificateID, &req)
	if err != nil {
		logger.Error("Error revoking certificate in service", slog.Any("error", err), slog.Uint64("certificate_id", uint64(certificateID)))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Certificate revoked successfully", slog.Uint64("certificate_id", uint64(certificateID)))
	webutil.RespondWithJSON(w, http.StatusOK, cert, logger)
}
