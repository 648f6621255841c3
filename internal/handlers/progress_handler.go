// internal/handlers/progress_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"smartcourse/internal/middleware"
	"smartcourse/internal/model"
	"smartcourse/internal/service"
	"smartcourse/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type ProgressHandler struct {
	service service.ProgressService
	logger  *slog.Logger
}

func NewProgressHandler(s service.ProgressService, logger *slog.Logger) *ProgressHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressHandler{
		service: s,
		logger:  logger,
	}
}

// PostProgress はコンテンツの完了をマークするためのハンドラ。
// 冪等であり、二重マークしても結果は同じ集計が返る。
func (h *ProgressHandler) PostProgress(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostProgress"))

	actor, err := middleware.GetActorFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrUnauthorized))
		return
	}

	var req model.MarkCompletedRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput))
		return
	}
	if err := webutil.ValidateStruct(&req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	summary, err := h.service.MarkCompleted(r.Context(), actor, &req)
	if err != nil {
		logger.Error("Error marking progress in service", slog.Any("error", err),
			slog.String("item_type", req.ItemType), slog.String("item_id", req.ItemID))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, summary, logger)
}

// GetMyProgress は自分のコース進捗を取得するためのハンドラ
func (h *ProgressHandler) GetMyProgress(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetMyProgress"))

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

	summary, err := h.service.GetCourseProgress(r.Context(), actor, actor.UserID, courseID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, summary, logger)
}

// GetUserProgress は指定ユーザーのコース進捗を取得するためのハンドラ (講師・管理者用)
func (h *ProgressHandler) GetUserProgress(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetUserProgress"))

	actor, err := middleware.GetActorFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrUnauthorized))
		return
	}
	userID, err := webutil.ParseUintParam(chi.URLParam(r, "user_id"), "user_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	courseID, err := webutil.ParseUintParam(chi.URLParam(r, "course_id"), "course_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	summary, err := h.service.GetCourseProgress(r.Context(), actor, userID, courseID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, summary, logger)
}

// DeleteUserProgress は指定ユーザーの進捗をリセットするためのハンドラ (管理者用)
func (h *ProgressHandler) DeleteUserProgress(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteUserProgress"))

	actor, err := middleware.GetActorFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrUnauthorized))
		return
	}
	userID, err := webutil.ParseUintParam(chi.URLParam(r, "user_id"), "user_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	courseID, err := webutil.ParseUintParam(chi.URLParam(r, "course_id"), "course_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if err := h.service.ResetProgress(r.Context(), actor, userID, courseID); err != nil {
		logger.Error("Error resetting progress in service", slog.Any("error", err),
			slog.Uint64("user_id", uint64(userID)), slog.Uint64("course_id", uint64(courseID)))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Progress reset successfully", slog.Uint64("user_id", uint64(userID)), slog.Uint64("course_id", uint64(courseID)))
	w.WriteHeader(http.StatusNoContent)
}
