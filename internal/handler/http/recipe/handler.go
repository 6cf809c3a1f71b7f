// Package recipe serves the /api/recipes endpoints and the short-link redirect.
package recipe

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"foodgram/internal/common/pagination"
	"foodgram/internal/domain/entity"
	"foodgram/internal/handler/http/auth"
	"foodgram/internal/handler/http/pathutil"
	"foodgram/internal/handler/http/respond"
	userHTTP "foodgram/internal/handler/http/user"
	"foodgram/internal/observability/logging"
	"foodgram/internal/pkg/validation"
	recipeUC "foodgram/internal/usecase/recipe"
)

// Service is the recipe use case surface the handlers need.
type Service interface {
	List(ctx context.Context, viewerID int64, q recipeUC.ListQuery, params pagination.Params) ([]recipeUC.View, int64, error)
	Get(ctx context.Context, viewerID, id int64) (*recipeUC.View, error)
	Create(ctx context.Context, authorID int64, in recipeUC.Input) (*recipeUC.View, error)
	Update(ctx context.Context, actorID, id int64, in recipeUC.Input) (*recipeUC.View, error)
	Delete(ctx context.Context, actorID, id int64) error
	AddTo(ctx context.Context, c recipeUC.Collection, userID, recipeID int64) (*entity.Recipe, error)
	RemoveFrom(ctx context.Context, c recipeUC.Collection, userID, recipeID int64) error
	GetLink(ctx context.Context, id int64) (string, error)
	Resolve(ctx context.Context, code string) (int64, error)
}

// Handler holds the dependencies shared by the recipe endpoints.
type Handler struct {
	Svc           Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// Register mounts the recipe routes and /s/{code} on mux.
// The shopping-list download is mounted separately.
func Register(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /api/recipes/{$}", h.List)
	mux.Handle("POST /api/recipes/{$}", auth.RequireUserFunc(h.Create))
	mux.HandleFunc("GET /api/recipes/{id}/{$}", h.Get)
	mux.Handle("PATCH /api/recipes/{id}/{$}", auth.RequireUserFunc(h.Update))
	mux.Handle("DELETE /api/recipes/{id}/{$}", auth.RequireUserFunc(h.Delete))
	mux.HandleFunc("GET /api/recipes/{id}/get-link/{$}", h.GetLink)

	mux.Handle("POST /api/recipes/{id}/favorite/{$}", auth.RequireUser(h.addTo(recipeUC.Favorites)))
	mux.Handle("DELETE /api/recipes/{id}/favorite/{$}", auth.RequireUser(h.removeFrom(recipeUC.Favorites)))
	mux.Handle("POST /api/recipes/{id}/shopping_cart/{$}", auth.RequireUser(h.addTo(recipeUC.ShoppingCart)))
	mux.Handle("DELETE /api/recipes/{id}/shopping_cart/{$}", auth.RequireUser(h.removeFrom(recipeUC.ShoppingCart)))

	mux.HandleFunc("GET /s/{code}", h.Redirect)
}

func (h *Handler) logger(ctx context.Context) *slog.Logger {
	l := h.Logger
	if l == nil {
		l = slog.Default()
	}
	return logging.WithRequestID(ctx, l)
}

// writeError maps use case errors to responses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, recipeUC.ErrRecipeNotFound), errors.Is(err, recipeUC.ErrShortLinkNotFound):
		respond.Detail(w, http.StatusNotFound, "Not found.")
	case errors.Is(err, recipeUC.ErrForbidden):
		respond.Detail(w, http.StatusForbidden, "You do not have permission to perform this action.")
	case errors.Is(err, recipeUC.ErrAlreadyFavorited),
		errors.Is(err, recipeUC.ErrNotFavorited),
		errors.Is(err, recipeUC.ErrAlreadyInCart),
		errors.Is(err, recipeUC.ErrNotInCart):
		respond.Error(w, http.StatusBadRequest, err)
	case respond.ValidationError(w, err):
	default:
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}

// parseListQuery reads author, tags, is_favorited and is_in_shopping_cart.
func parseListQuery(r *http.Request) (recipeUC.ListQuery, error) {
	v := r.URL.Query()
	q := recipeUC.ListQuery{
		TagSlugs:         v["tags"],
		IsFavorited:      truthy(v.Get("is_favorited")),
		IsInShoppingCart: truthy(v.Get("is_in_shopping_cart")),
	}
	if raw := v.Get("author"); raw != "" {
		id, err := pathutil.ParseID(raw)
		if err != nil {
			return q, errors.New("author must be a positive integer")
		}
		q.AuthorID = &id
	}
	return q, nil
}

func truthy(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}

// List レシピ一覧
// @Summary      レシピ一覧
// @Description  新しい順。is_favorited / is_in_shopping_cart は認証時のみ有効です
// @Tags         recipes
// @Produce      json
// @Param        page                query int    false "ページ番号" default(1)
// @Param        limit               query int    false "1ページあたりの件数" default(6)
// @Param        author              query int    false "作者ID"
// @Param        tags                query []string false "タグの slug (複数指定可)" collectionFormat(multi)
// @Param        is_favorited        query int    false "1 でお気に入りのみ"
// @Param        is_in_shopping_cart query int    false "1 で買い物リストのみ"
// @Success      200 {object} pagination.Page[DTO]
// @Failure      400 {object} map[string]string "Invalid query parameters"
// @Router       /recipes/ [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	q, err := parseListQuery(r)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	views, total, err := h.Svc.List(r.Context(), auth.UserID(r.Context()), q, params)
	if err != nil {
		h.logger(r.Context()).Error("list recipes failed", slog.Any("error", err))
		writeError(w, err)
		return
	}
	dtos := make([]DTO, 0, len(views))
	for _, v := range views {
		dtos = append(dtos, NewDTO(v))
	}
	respond.JSON(w, http.StatusOK, pagination.NewPage(r, params, total, dtos))
}

// Get レシピ取得
// @Summary      レシピ取得
// @Tags         recipes
// @Produce      json
// @Param        id path int true "レシピID"
// @Success      200 {object} DTO
// @Failure      404 {object} map[string]string "Not found"
// @Router       /recipes/{id}/ [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.Detail(w, http.StatusNotFound, "Not found.")
		return
	}
	v, err := h.Svc.Get(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, NewDTO(*v))
}

func decodeRecipe(w http.ResponseWriter, r *http.Request, requireImage bool) (recipeRequest, bool) {
	var req recipeRequest
	if !respond.DecodeJSON(w, r, &req) {
		return req, false
	}
	errs := validation.Validate(&req)
	if requireImage && req.Image == "" {
		if errs == nil {
			errs = validation.FieldErrors{}
		}
		errs.Add("image", "This field is required.")
	}
	if errs != nil {
		respond.FieldErrors(w, errs)
		return req, false
	}
	return req, true
}

// Create レシピ作成
// @Summary      レシピ作成
// @Tags         recipes
// @Security     TokenAuth
// @Accept       json
// @Produce      json
// @Param        recipe body recipeRequest true "レシピ"
// @Success      201 {object} DTO
// @Failure      400 {object} map[string][]string "Validation errors"
// @Failure      401 {object} map[string]string "Authentication credentials were not provided"
// @Router       /recipes/ [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRecipe(w, r, true)
	if !ok {
		return
	}
	userID := auth.UserID(r.Context())
	v, err := h.Svc.Create(r.Context(), userID, req.input())
	if err != nil {
		writeError(w, err)
		return
	}
	h.logger(r.Context()).Info("recipe created",
		slog.Int64("recipe_id", v.Recipe.ID),
		slog.Int64("author_id", userID))
	respond.JSON(w, http.StatusCreated, NewDTO(*v))
}

// Update レシピ更新
// @Summary      レシピ更新
// @Description  作者のみ更新できます。image を省略すると既存の画像を維持します
// @Tags         recipes
// @Security     TokenAuth
// @Accept       json
// @Produce      json
// @Param        id     path int           true "レシピID"
// @Param        recipe body recipeRequest true "レシピ"
// @Success      200 {object} DTO
// @Failure      400 {object} map[string][]string "Validation errors"
// @Failure      403 {object} map[string]string "Not the author"
// @Failure      404 {object} map[string]string "Not found"
// @Router       /recipes/{id}/ [patch]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.Detail(w, http.StatusNotFound, "Not found.")
		return
	}
	req, ok := decodeRecipe(w, r, false)
	if !ok {
		return
	}
	v, err := h.Svc.Update(r.Context(), auth.UserID(r.Context()), id, req.input())
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, NewDTO(*v))
}

// Delete レシピ削除
// @Summary      レシピ削除
// @Tags         recipes
// @Security     TokenAuth
// @Param        id path int true "レシピID"
// @Success      204 "No Content"
// @Failure      403 {object} map[string]string "Not the author"
// @Failure      404 {object} map[string]string "Not found"
// @Router       /recipes/{id}/ [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.Detail(w, http.StatusNotFound, "Not found.")
		return
	}
	if err := h.Svc.Delete(r.Context(), auth.UserID(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	h.logger(r.Context()).Info("recipe deleted", slog.Int64("recipe_id", id))
	respond.NoContent(w)
}

// addTo お気に入り / 買い物リストに追加
// @Summary      お気に入り / 買い物リストに追加
// @Tags         recipes
// @Security     TokenAuth
// @Produce      json
// @Param        id path int true "レシピID"
// @Success      201 {object} userHTTP.ShortRecipeDTO
// @Failure      400 {object} map[string]string "Already added"
// @Failure      404 {object} map[string]string "Not found"
// @Router       /recipes/{id}/favorite/ [post]
// @Router       /recipes/{id}/shopping_cart/ [post]
func (h *Handler) addTo(c recipeUC.Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathutil.PathID(r, "id")
		if err != nil {
			respond.Detail(w, http.StatusNotFound, "Not found.")
			return
		}
		rec, err := h.Svc.AddTo(r.Context(), c, auth.UserID(r.Context()), id)
		if err != nil {
			writeError(w, err)
			return
		}
		respond.JSON(w, http.StatusCreated, userHTTP.NewShortRecipeDTO(rec))
	}
}

// removeFrom お気に入り / 買い物リストから削除
// @Summary      お気に入り / 買い物リストから削除
// @Tags         recipes
// @Security     TokenAuth
// @Param        id path int true "レシピID"
// @Success      204 "No Content"
// @Failure      400 {object} map[string]string "Not present"
// @Failure      404 {object} map[string]string "Not found"
// @Router       /recipes/{id}/favorite/ [delete]
// @Router       /recipes/{id}/shopping_cart/ [delete]
func (h *Handler) removeFrom(c recipeUC.Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathutil.PathID(r, "id")
		if err != nil {
			respond.Detail(w, http.StatusNotFound, "Not found.")
			return
		}
		if err := h.Svc.RemoveFrom(r.Context(), c, auth.UserID(r.Context()), id); err != nil {
			writeError(w, err)
			return
		}
		respond.NoContent(w)
	}
}

// GetLink 短縮リンク取得
// @Summary      短縮リンク取得
// @Tags         recipes
// @Produce      json
// @Param        id path int true "レシピID"
// @Success      200 {object} linkResponse
// @Failure      404 {object} map[string]string "Not found"
// @Router       /recipes/{id}/get-link/ [get]
func (h *Handler) GetLink(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.Detail(w, http.StatusNotFound, "Not found.")
		return
	}
	link, err := h.Svc.GetLink(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, linkResponse{ShortLink: link})
}

// Redirect sends /s/{code} to the recipe page of the frontend.
func (h *Handler) Redirect(w http.ResponseWriter, r *http.Request) {
	id, err := h.Svc.Resolve(r.Context(), r.PathValue("code"))
	if err != nil {
		writeError(w, err)
		return
	}
	http.Redirect(w, r, "/recipes/"+strconv.FormatInt(id, 10)+"/", http.StatusFound)
}
