// internal/handlers/content_handler.go
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"smartcourse/internal/middleware"
	"smartcourse/internal/model"
	"smartcourse/internal/service"
	"smartcourse/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type ContentHandler struct {
	service service.ContentService
	logger  *slog.Logger
}

func NewContentHandler(s service.ContentService, logger *slog.Logger) *ContentHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContentHandler{
		service: s,
		logger:  logger,
	}
}

// requestScope はコンテンツ系ハンドラ共通の前処理 (actor + course_id の取り出し)
func (h *ContentHandler) requestScope(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (model.Actor, uint, bool) {
	actor, err := middleware.GetActorFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrUnauthorized))
		return model.Actor{}, 0, false
	}
	courseID, err := webutil.ParseUintParam(chi.URLParam(r, "course_id"), "course_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return model.Actor{}, 0, false
	}
	return actor, courseID, true
}

// GetContent はコンテンツツリーを取得するためのハンドラ (認証不要)
func (h *ContentHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetContent"))

	courseID, err := webutil.ParseUintParam(chi.URLParam(r, "course_id"), "course_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	content, err := h.service.GetContent(r.Context(), courseID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, content, logger)
}

// PutContent はコンテンツツリーを丸ごと差し替えるためのハンドラ
func (h *ContentHandler) PutContent(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PutContent"))

	actor, courseID, ok := h.requestScope(w, r, logger)
	if !ok {
		return
	}

	var req model.UpsertContentRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput))
		return
	}
	if err := webutil.ValidateStruct(&req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	content, err := h.service.UpsertContent(r.Context(), actor, courseID, &req)
	if err != nil {
		logger.Error("Error upserting content in service", slog.Any("error", err), slog.Uint64("course_id", uint64(courseID)))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Content upserted successfully", slog.Uint64("course_id", uint64(courseID)))
	webutil.RespondWithJSON(w, http.StatusOK, content, logger)
}

// PostModule はモジュールを追加するためのハンドラ
func (h *ContentHandler) PostModule(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostModule"))

	actor, courseID, ok := h.requestScope(w, r, logger)
	if !ok {
		return
	}

	var req model.AddModuleRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput))
		return
	}
	if err := webutil.ValidateStruct(&req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	content, err := h.service.AddModule(r.Context(), actor, courseID, &req)
	if err != nil {
		logger.Error("Error adding module in service", slog.Any("error", err), slog.String("module_id", req.ModuleID))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusCreated, content, logger)
}

// PatchModule はモジュールを部分更新するためのハンドラ
func (h *ContentHandler) PatchModule(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchModule"))

	actor, courseID, ok := h.requestScope(w, r, logger)
	if !ok {
		return
	}
	moduleID := chi.URLParam(r, "module_id")

	var req model.UpdateModuleRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput))
		return
	}
	if err := webutil.ValidateStruct(&req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	content, err := h.service.UpdateModule(r.Context(), actor, courseID, moduleID, &req)
	if err != nil {
		logger.Error("Error updating module in service", slog.Any("error", err), slog.String("module_id", moduleID))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, content, logger)
}

// DeleteModule はモジュールを無効化するためのハンドラ
func (h *ContentHandler) DeleteModule(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteModule"))

	actor, courseID, ok := h.requestScope(w, r, logger)
	if !ok {
		return
	}
	moduleID := chi.URLParam(r, "module_id")

	if err := h.service.RemoveModule(r.Context(), actor, courseID, moduleID); err != nil {
		logger.Error("Error removing module in service", slog.Any("error", err), slog.String("module_id", moduleID))
		webutil.HandleError(w, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteContent はコンテンツツリー全体を削除するためのハンドラ
func (h *ContentHandler) DeleteContent(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteContent"))

	actor, courseID, ok := h.requestScope(w, r, logger)
	if !ok {
		return
	}

	if err := h.service.DeleteContent(r.Context(), actor, courseID); err != nil {
		logger.Error("Error deleting course content in service", slog.Any("error", err), slog.Uint64("course_id", uint64(courseID)))
		webutil.HandleError(w, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PostLesson はレッスンを追加するためのハンドラ
func (h *ContentHandler) PostLesson(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostLesson"))

	actor, courseID, ok := h.requestScope(w, r, logger)
	if !ok {
		return
	}
	moduleID := chi.URLParam(r, "module_id")

	var req model.AddLessonRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput))
		return
	}
	if err := webutil.ValidateStruct(&req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	content, err := h.service.AddLesson(r.Context(), actor, courseID, moduleID, &req)
	if err != nil {
		logger.Error("Error adding lesson in service", slog.Any("error", err), slog.String("lesson_id", req.LessonID))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusCreated, content, logger)
}

// PatchLesson はレッスンを部分更新するためのハンドラ
func (h *ContentHandler) PatchLesson(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchLesson"))

	actor, courseID, ok := h.requestScope(w, r, logger)
	if !ok {
		return
	}
	moduleID := chi.URLParam(r, "module_id")
	lessonID := chi.URLParam(r, "lesson_id")

	var req model.UpdateLessonRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput))
		return
	}
	if err := webutil.ValidateStruct(&req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	content, err := h.service.UpdateLesson(r.Context(), actor, courseID, moduleID, lessonID, &req)
	if err != nil {
		logger.Error("Error updating lesson in service", slog.Any("error", err), slog.String("lesson_id", lessonID))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, content, logger)
}

// DeleteLesson はレッスンを無効化するためのハンドラ
func (h *ContentHandler) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteLesson"))

	actor, courseID, ok := h.requestScope(w, r, logger)
	if !ok {
		return
	}
	moduleID := chi.URLParam(r, "module_id")
	lessonID := chi.URLParam(r, "lesson_id")

	if err := h.service.RemoveLesson(r.Context(), actor, courseID, moduleID, lessonID); err != nil {
		logger.Error("Error removing lesson in service", slog.Any("error", err), slog.String("lesson_id", lessonID))
		webutil.HandleError(w, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PostResource はレッスンにリソースを追加するためのハンドラ
func (h *ContentHandler) PostResource(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostResource"))

	actor, courseID, ok := h.requestScope(w, r, logger)
	if !ok {
		return
	}
	moduleID := chi.URLParam(r, "module_id")
	lessonID := chi.URLParam(r, "lesson_id")

	var req model.AddResourceRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput))
		return
	}
	if err := webutil.ValidateStruct(&req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	content, err := h.service.AddResource(r.Context(), actor, courseID, moduleID, lessonID, &req)
	if err != nil {
		logger.Error("Error adding resource in service", slog.Any("error", err), slog.String("lesson_id", lessonID))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusCreated, content, logger)
}

// parseResourceIndex はURLのリソースインデックスを解釈します
func parseResourceIndex(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		return 0, model.NewAppError("INVALID_URL_PARAM", "indexの形式が正しくありません。", "index", model.ErrInvalidInput)
	}
	return index, nil
}

// PatchResource はリソースを部分更新するためのハンドラ
func (h *ContentHandler) PatchResource(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchResource"))

	actor, courseID, ok := h.requestScope(w, r, logger)
	if !ok {
		return
	}
	moduleID := chi.URLParam(r, "module_id")
	lessonID := chi.URLParam(r, "lesson_id")
	index, err := parseResourceIndex(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.UpdateResourceRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput))
		return
	}
	if err := webutil.ValidateStruct(&req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	content, err := h.service.UpdateResource(r.Context(), actor, courseID, moduleID, lessonID, index, &req)
	if err != nil {
		logger.Error("Error updating resource in service", slog.Any("error", err), slog.Int("index", index))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, content, logger)
}

// DeleteResource はリソースを削除するためのハンドラ
func (h *ContentHandler) DeleteResource(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteResource"))

	actor, courseID, ok := h.requestScope(w, r, logger)
	if !ok {
		return
	}
	moduleID := chi.URLParam(r, "module_id")
	lessonID := chi.URLParam(r, "lesson_id")
	index, err := parseResourceIndex(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if err := h.service.RemoveResource(r.Context(), actor, courseID, moduleID, lessonID, index); err != nil {
		logger.Error("Error removing resource in service", slog.Any("error", err), slog.Int("index", index))
		webutil.HandleError(w, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
