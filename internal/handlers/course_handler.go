// internal/handlers/course_handler.go
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

type CourseHandler struct {
	service service.CourseService
	logger  *slog.Logger
}

func NewCourseHandler(s service.CourseService, logger *slog.Logger) *CourseHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CourseHandler{
		service: s,
		logger:  logger,
	}
}

// PostCourse は新しいコースを作成するためのハンドラ
func (h *CourseHandler) PostCourse(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostCourse"))

	actor, err := middleware.GetActorFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrUnauthorized))
		return
	}

	var req model.CreateCourseRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput))
		return
	}
	if err := webutil.ValidateStruct(&req); err != nil {
		logger.Warn("Validation failed", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	course, err := h.service.CreateCourse(r.Context(), actor, &req)
	if err != nil {
		logger.Error("Error creating course in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Course created successfully", slog.Uint64("course_id", uint64(course.ID)))
	webutil.RespondWithJSON(w, http.StatusCreated, course, logger)
}

// GetCourses は公開コースの一覧を取得するためのハンドラ (認証不要)
func (h *CourseHandler) GetCourses(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCourses"))

	skip, limit := webutil.ParsePagination(r, config.Cfg.App.DefaultPageLimit)
	page, err := h.service.ListPublished(r.Context(), skip, limit)
	if err != nil {
		logger.Error("Error listing published courses in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, page, logger)
}

// GetCourse はコース詳細を取得するためのハンドラ (認証不要)
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCourse"))

	courseID, err := webutil.ParseUintParam(chi.URLParam(r, "course_id"), "course_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	course, err := h.service.GetCourse(r.Context(), courseID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, course, logger)
}

// GetCourseBySlug はスラッグでコース詳細を取得するためのハンドラ (認証不要)
func (h *CourseHandler) GetCourseBySlug(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCourseBySlug"))

	slug := chi.URLParam(r, "slug")
	if slug == "" {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_URL_PARAM", "スラッグが指定されていません。", "slug", model.ErrInvalidInput))
		return
	}

	course, err := h.service.GetCourseBySlug(r.Context(), slug)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, course, logger)
}

// GetInstructorCourses は講師のコース一覧 (下書き含む) を取得するためのハンドラ
func (h *CourseHandler) GetInstructorCourses(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetInstructorCourses"))

	actor, err := middleware.GetActorFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrUnauthorized))
		return
	}
	instructorID, err := webutil.ParseUintParam(chi.URLParam(r, "instructor_id"), "instructor_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	skip, limit := webutil.ParsePagination(r, config.Cfg.App.DefaultPageLimit)
	page, err := h.service.ListByInstructor(r.Context(), actor, instructorID, skip, limit)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, page, logger)
}

// PutCourse はコースを部分更新するためのハンドラ
func (h *CourseHandler) PutCourse(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PutCourse"))

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

	var req model.UpdateCourseRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput))
		return
	}
	if err := webutil.ValidateStruct(&req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	course, err := h.service.UpdateCourse(r.Context(), actor, courseID, &req)
	if err != nil {
		logger.Error("Error updating course in service", slog.Any("error", err), slog.Uint64("course_id", uint64(courseID)))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, course, logger)
}

// PatchCourseStatus はコースの状態遷移を行うためのハンドラ
func (h *CourseHandler) PatchCourseStatus(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchCourseStatus"))

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

	var req model.UpdateCourseStatusRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput))
		return
	}
	if err := webutil.ValidateStruct(&req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	course, err := h.service.UpdateStatus(r.Context(), actor, courseID, &req)
	if err != nil {
		logger.Error("Error updating course status in service", slog.Any("error", err), slog.Uint64("course_id", uint64(courseID)))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Course status updated successfully", slog.Uint64("course_id", uint64(courseID)), slog.String("status", course.Status))
	webutil.RespondWithJSON(w, http.StatusOK, course, logger)
}

// DeleteCourse はコースを論理削除するためのハンドラ
func (h *CourseHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteCourse"))

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

	if err := h.service.DeleteCourse(r.Context(), actor, courseID); err != nil {
		logger.Error("Error deleting course in service", slog.Any("error", err), slog.Uint64("course_id", uint64(courseID)))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Course deleted successfully", slog.Uint64("course_id", uint64(courseID)))
	w.WriteHeader(http.StatusNoContent)
}
