// internal/handlers/enrollment_handler.go
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

type EnrollmentHandler struct {
	service service.EnrollmentService
	logger  *slog.Logger
}

func NewEnrollmentHandler(s service.EnrollmentService, logger *slog.Logger) *EnrollmentHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &EnrollmentHandler{
		service: s,
		logger:  logger,
	}
}

// PostEnrollment は受講登録を行うためのハンドラ
func (h *EnrollmentHandler) PostEnrollment(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostEnrollment"))

	actor, err := middleware.GetActorFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrUnauthorized))
		return
	}

	var req model.EnrollRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput))
		return
	}
	if err := webutil.ValidateStruct(&req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	enrollment, err := h.service.Enroll(r.Context(), actor, &req)
	if err != nil {
		logger.Error("Error enrolling in service", slog.Any("error", err), slog.Uint64("course_id", uint64(req.CourseID)))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Enrollment created successfully", slog.Uint64("enrollment_id", uint64(enrollment.ID)))
	webutil.RespondWithJSON(w, http.StatusCreated, enrollment, logger)
}

// GetEnrollment は受講登録の詳細を取得するためのハンドラ
func (h *EnrollmentHandler) GetEnrollment(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetEnrollment"))

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

	enrollment, err := h.service.GetEnrollment(r.Context(), actor, enrollmentID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, enrollment, logger)
}

// DeleteEnrollment は受講を退会扱いにするためのハンドラ
func (h *EnrollmentHandler) DeleteEnrollment(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteEnrollment"))

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

	enrollment, err := h.service.Drop(r.Context(), actor, enrollmentID)
	if err != nil {
		logger.Error("Error dropping enrollment in service", slog.Any("error", err), slog.Uint64("enrollment_id", uint64(enrollmentID)))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Enrollment dropped successfully", slog.Uint64("enrollment_id", uint64(enrollmentID)))
	webutil.RespondWithJSON(w, http.StatusOK, enrollment, logger)
}

// PostEnrollmentRestore は退会済みの受講を再開するためのハンドラ
func (h *EnrollmentHandler) PostEnrollmentRestore(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostEnrollmentRestore"))

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

	enrollment, err := h.service.Undrop(r.Context(), actor, enrollmentID)
	if err != nil {
		logger.Error("Error restoring enrollment in service", slog.Any("error", err), slog.Uint64("enrollment_id", uint64(enrollmentID)))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Enrollment restored successfully", slog.Uint64("enrollment_id", uint64(enrollmentID)))
	webutil.RespondWithJSON(w, http.StatusOK, enrollment, logger)
}

// GetStudentEnrollments は学生の受講一覧を取得するためのハンドラ
func (h *EnrollmentHandler) GetStudentEnrollments(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetStudentEnrollments"))

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

// GetCourseEnrollments はコースの受講者一覧を取得するためのハンドラ (講師用)
func (h *EnrollmentHandler) GetCourseEnrollments(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCourseEnrollments"))

	actor, err := middleware.GetActorFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrUnauthorized))
		return
	}
	courseID, err := webutil.ParseUintParam(chi.URLParam(r, "course_id"), "course_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	skip, limit := webutil.ParsePagination(r, config.Cfg.App.DefaultPageLimit)
	page, err := h.service.ListByCourse(r.Context(), actor, courseID, skip, limit)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, page, logger)
}

// GetEnrollmentCount はコースの受講登録総数を取得するためのハンドラ (認証不要)
func (h *EnrollmentHandler) GetEnrollmentCount(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetEnrollmentCount"))

	courseID, err := webutil.ParseUintParam(chi.URLParam(r, "course_id"), "course_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	count, err := h.service.EnrollmentCount(r.Context(), courseID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]int64{"count": count}, logger)
}

// GetEnrolled は自分がコースに登録済みかを確認するためのハンドラ
func (h *EnrollmentHandler) GetEnrolled(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetEnrolled"))

	actor, err := middleware.GetActorFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrUnauthorized))
		return
	}
	courseID, err := webutil.ParseUintParam(chi.URLParam(r, "course_id"), "course_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	enrolled, err := h.service.IsEnrolled(r.Context(), actor.UserID, courseID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]bool{"enrolled": enrolled}, logger)
}
