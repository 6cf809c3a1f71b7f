// Package user serves the /api/users endpoints.
package user

import (
	"context"
	"log/slog"
	"net/http"

	"foodgram/internal/common/pagination"
	"foodgram/internal/domain/entity"
	"foodgram/internal/handler/http/auth"
	"foodgram/internal/handler/http/pathutil"
	"foodgram/internal/handler/http/respond"
	"foodgram/internal/observability/logging"
	"foodgram/internal/pkg/validation"
	userUC "foodgram/internal/usecase/user"
)

// Service is the user use case surface the handlers need.
type Service interface {
	Register(ctx context.Context, in userUC.RegisterInput) (*entity.User, error)
	List(ctx context.Context, viewerID int64, params pagination.Params) ([]userUC.Profile, int64, error)
	Get(ctx context.Context, viewerID, id int64) (*userUC.Profile, error)
	Me(ctx context.Context, userID int64) (*userUC.Profile, error)
	SetPassword(ctx context.Context, userID int64, current, next string) error
	SetAvatar(ctx context.Context, userID int64, avatar string) (string, error)
	DeleteAvatar(ctx context.Context, userID int64) error
	Subscribe(ctx context.Context, userID, authorID int64, recipesLimit int) (*userUC.Subscription, error)
	Unsubscribe(ctx context.Context, userID, authorID int64) error
	Subscriptions(ctx context.Context, userID int64, params pagination.Params, recipesLimit int) ([]userUC.Subscription, int64, error)
}

// Handler holds the dependencies shared by the user endpoints.
type Handler struct {
	Svc           Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// Register mounts the user routes on mux. Authentication is applied by the
// caller; routes that need a user are wrapped with auth.RequireUser here.
func Register(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /api/users/{$}", h.List)
	mux.HandleFunc("POST /api/users/{$}", h.Create)
	mux.HandleFunc("GET /api/users/{id}/{$}", h.Get)
	mux.Handle("GET /api/users/me/{$}", auth.RequireUserFunc(h.Me))
	mux.Handle("POST /api/users/set_password/{$}", auth.RequireUserFunc(h.SetPassword))
	mux.Handle("PUT /api/users/me/avatar/{$}", auth.RequireUserFunc(h.SetAvatar))
	mux.Handle("DELETE /api/users/me/avatar/{$}", auth.RequireUserFunc(h.DeleteAvatar))
	mux.Handle("GET /api/users/subscriptions/{$}", auth.RequireUserFunc(h.Subscriptions))
	mux.Handle("POST /api/users/{id}/subscribe/{$}", auth.RequireUserFunc(h.Subscribe))
	mux.Handle("DELETE /api/users/{id}/subscribe/{$}", auth.RequireUserFunc(h.Unsubscribe))
}

func (h *Handler) logger(ctx context.Context) *slog.Logger {
	l := h.Logger
	if l == nil {
		l = slog.Default()
	}
	return logging.WithRequestID(ctx, l)
}

// List ユーザー一覧
// @Summary      ユーザー一覧
// @Tags         users
// @Produce      json
// @Param        page   query int false "ページ番号" default(1)
// @Param        limit  query int false "1ページあたりの件数" default(6)
// @Param        offset query int false "先頭からの件数 (page より優先)"
// @Success      200 {object} pagination.Page[DTO]
// @Failure      400 {object} map[string]string "Invalid query parameters"
// @Router       /users/ [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.ParseOffsetQueryParams(r, h.PaginationCfg)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	profiles, total, err := h.Svc.List(r.Context(), auth.UserID(r.Context()), params)
	if err != nil {
		h.logger(r.Context()).Error("list users failed", slog.Any("error", err))
		writeError(w, err)
		return
	}
	dtos := make([]DTO, 0, len(profiles))
	for _, p := range profiles {
		dtos = append(dtos, NewDTO(p))
	}
	respond.JSON(w, http.StatusOK, pagination.NewPage(r, params, total, dtos))
}

// Create ユーザー登録
// @Summary      ユーザー登録
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        user body registerRequest true "登録情報"
// @Success      201 {object} registerResponse
// @Failure      400 {object} map[string][]string "Validation errors"
// @Router       /users/ [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !respond.DecodeJSON(w, r, &req) {
		return
	}
	if errs := validation.Validate(&req); errs != nil {
		respond.FieldErrors(w, errs)
		return
	}

	u, err := h.Svc.Register(r.Context(), userUC.RegisterInput{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	h.logger(r.Context()).Info("user registered", slog.Int64("user_id", u.ID))
	respond.JSON(w, http.StatusCreated, registerResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	})
}

// Get ユーザープロフィール
// @Summary      ユーザープロフィール
// @Tags         users
// @Produce      json
// @Param        id path int true "ユーザーID"
// @Success      200 {object} DTO
// @Failure      404 {object} map[string]string "Not found"
// @Router       /users/{id}/ [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.Detail(w, http.StatusNotFound, "Not found.")
		return
	}
	p, err := h.Svc.Get(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, NewDTO(*p))
}

// Me 現在のユーザー
// @Summary      現在のユーザー
// @Tags         users
// @Security     TokenAuth
// @Produce      json
// @Success      200 {object} DTO
// @Failure      401 {object} map[string]string "Authentication credentials were not provided"
// @Router       /users/me/ [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	p, err := h.Svc.Me(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, NewDTO(*p))
}

// SetPassword パスワード変更
// @Summary      パスワード変更
// @Tags         users
// @Security     TokenAuth
// @Accept       json
// @Param        body body setPasswordRequest true "現在と新しいパスワード"
// @Success      204 "No Content"
// @Failure      400 {object} map[string][]string "Validation errors"
// @Router       /users/set_password/ [post]
func (h *Handler) SetPassword(w http.ResponseWriter, r *http.Request) {
	var req setPasswordRequest
	if !respond.DecodeJSON(w, r, &req) {
		return
	}
	if errs := validation.Validate(&req); errs != nil {
		respond.FieldErrors(w, errs)
		return
	}
	if err := h.Svc.SetPassword(r.Context(), auth.UserID(r.Context()), req.CurrentPassword, req.NewPassword); err != nil {
		writeError(w, err)
		return
	}
	respond.NoContent(w)
}

// SetAvatar アバター設定
// @Summary      アバター設定
// @Tags         users
// @Security     TokenAuth
// @Accept       json
// @Produce      json
// @Param        body body avatarRequest true "アバター (data URL)"
// @Success      200 {object} avatarResponse
// @Failure      400 {object} map[string][]string "Validation errors"
// @Router       /users/me/avatar/ [put]
func (h *Handler) SetAvatar(w http.ResponseWriter, r *http.Request) {
	var req avatarRequest
	if !respond.DecodeJSON(w, r, &req) {
		return
	}
	if errs := validation.Validate(&req); errs != nil {
		respond.FieldErrors(w, errs)
		return
	}
	avatar, err := h.Svc.SetAvatar(r.Context(), auth.UserID(r.Context()), req.Avatar)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, avatarResponse{Avatar: avatar})
}

// DeleteAvatar アバター削除
// @Summary      アバター削除
// @Tags         users
// @Security     TokenAuth
// @Success      204 "No Content"
// @Router       /users/me/avatar/ [delete]
func (h *Handler) DeleteAvatar(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.DeleteAvatar(r.Context(), auth.UserID(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	respond.NoContent(w)
}

// Subscriptions 購読中の作者一覧
// @Summary      購読中の作者一覧
// @Tags         users
// @Security     TokenAuth
// @Produce      json
// @Param        page          query int false "ページ番号" default(1)
// @Param        limit         query int false "1ページあたりの件数" default(6)
// @Param        offset        query int false "先頭からの件数 (page より優先)"
// @Param        recipes_limit query int false "作者ごとのレシピ数の上限"
// @Success      200 {object} pagination.Page[SubscriptionDTO]
// @Router       /users/subscriptions/ [get]
func (h *Handler) Subscriptions(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.ParseOffsetQueryParams(r, h.PaginationCfg)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	limit, ok := recipesLimit(r)
	if !ok {
		respond.Detail(w, http.StatusBadRequest, "recipes_limit must be a non-negative integer")
		return
	}

	subs, total, err := h.Svc.Subscriptions(r.Context(), auth.UserID(r.Context()), params, limit)
	if err != nil {
		h.logger(r.Context()).Error("list subscriptions failed", slog.Any("error", err))
		writeError(w, err)
		return
	}
	dtos := make([]SubscriptionDTO, 0, len(subs))
	for _, s := range subs {
		dtos = append(dtos, newSubscriptionDTO(s))
	}
	respond.JSON(w, http.StatusOK, pagination.NewPage(r, params, total, dtos))
}

// Subscribe 作者を購読
// @Summary      作者を購読
// @Tags         users
// @Security     TokenAuth
// @Produce      json
// @Param        id            path  int true  "作者ID"
// @Param        recipes_limit query int false "レシピ数の上限"
// @Success      201 {object} SubscriptionDTO
// @Failure      400 {object} map[string]string "Self or duplicate subscription"
// @Failure      404 {object} map[string]string "Not found"
// @Router       /users/{id}/subscribe/ [post]
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	authorID, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.Detail(w, http.StatusNotFound, "Not found.")
		return
	}
	limit, ok := recipesLimit(r)
	if !ok {
		respond.Detail(w, http.StatusBadRequest, "recipes_limit must be a non-negative integer")
		return
	}

	sub, err := h.Svc.Subscribe(r.Context(), auth.UserID(r.Context()), authorID, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, newSubscriptionDTO(*sub))
}

// Unsubscribe 購読解除
// @Summary      購読解除
// @Tags         users
// @Security     TokenAuth
// @Param        id path int true "作者ID"
// @Success      204 "No Content"
// @Failure      400 {object} map[string]string "Not subscribed"
// @Failure      404 {object} map[string]string "Not found"
// @Router       /users/{id}/subscribe/ [delete]
func (h *Handler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	authorID, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.Detail(w, http.StatusNotFound, "Not found.")
		return
	}
	if err := h.Svc.Unsubscribe(r.Context(), auth.UserID(r.Context()), authorID); err != nil {
		writeError(w, err)
		return
	}
	respond.NoContent(w)
}
