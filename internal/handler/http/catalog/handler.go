// Package catalog serves the read-only tag and ingredient endpoints.
package catalog

import (
	"context"
	"errors"
	"net/http"

	"foodgram/internal/domain/entity"
	"foodgram/internal/handler/http/pathutil"
	"foodgram/internal/handler/http/respond"
	catalogUC "foodgram/internal/usecase/catalog"
)

// TagDTO is the public tag representation.
type TagDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

// IngredientDTO is the public ingredient representation.
type IngredientDTO struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

func NewTagDTO(t entity.Tag) TagDTO {
	return TagDTO{ID: t.ID, Name: t.Name, Color: t.Color, Slug: t.Slug}
}

type TagService interface {
	List(ctx context.Context) ([]*entity.Tag, error)
	Get(ctx context.Context, id int64) (*entity.Tag, error)
}

type IngredientService interface {
	List(ctx context.Context, namePrefix string) ([]*entity.Ingredient, error)
	Get(ctx context.Context, id int64) (*entity.Ingredient, error)
}

// Register mounts the tag and ingredient routes on mux.
func Register(mux *http.ServeMux, tags TagService, ingredients IngredientService) {
	mux.Handle("GET /api/tags/{$}", TagListHandler{tags})
	mux.Handle("GET /api/tags/{id}/{$}", TagGetHandler{tags})
	mux.Handle("GET /api/ingredients/{$}", IngredientListHandler{ingredients})
	mux.Handle("GET /api/ingredients/{id}/{$}", IngredientGetHandler{ingredients})
}

type TagListHandler struct{ Svc TagService }

// ServeHTTP タグ一覧
// @Summary      タグ一覧
// @Tags         tags
// @Produce      json
// @Success      200 {array} TagDTO
// @Router       /tags/ [get]
func (h TagListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	tags, err := h.Svc.List(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	out := make([]TagDTO, 0, len(tags))
	for _, t := range tags {
		out = append(out, NewTagDTO(*t))
	}
	respond.JSON(w, http.StatusOK, out)
}

type TagGetHandler struct{ Svc TagService }

// ServeHTTP タグ取得
// @Summary      タグ取得
// @Tags         tags
// @Produce      json
// @Param        id path int true "タグID"
// @Success      200 {object} TagDTO
// @Failure      404 {object} map[string]string "Not found"
// @Router       /tags/{id}/ [get]
func (h TagGetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.Detail(w, http.StatusNotFound, "Not found.")
		return
	}
	t, err := h.Svc.Get(r.Context(), id)
	if errors.Is(err, catalogUC.ErrTagNotFound) {
		respond.Detail(w, http.StatusNotFound, "Not found.")
		return
	}
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, NewTagDTO(*t))
}

type IngredientListHandler struct{ Svc IngredientService }

// ServeHTTP 材料一覧
// @Summary      材料一覧
// @Description  name で前方一致検索します (大文字小文字を区別しない)
// @Tags         ingredients
// @Produce      json
// @Param        name query string false "名前の先頭"
// @Success      200 {array} IngredientDTO
// @Router       /ingredients/ [get]
func (h IngredientListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	items, err := h.Svc.List(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	out := make([]IngredientDTO, 0, len(items))
	for _, in := range items {
		out = append(out, IngredientDTO{ID: in.ID, Name: in.Name, MeasurementUnit: in.MeasurementUnit})
	}
	respond.JSON(w, http.StatusOK, out)
}

type IngredientGetHandler struct{ Svc IngredientService }

// ServeHTTP 材料取得
// @Summary      材料取得
// @Tags         ingredients
// @Produce      json
// @Param        id path int true "材料ID"
// @Success      200 {object} IngredientDTO
// @Failure      404 {object} map[string]string "Not found"
// @Router       /ingredients/{id}/ [get]
func (h IngredientGetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.Detail(w, http.StatusNotFound, "Not found.")
		return
	}
	in, err := h.Svc.Get(r.Context(), id)
	if errors.Is(err, catalogUC.ErrIngredientNotFound) {
		respond.Detail(w, http.StatusNotFound, "Not found.")
		return
	}
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, IngredientDTO{ID: in.ID, Name: in.Name, MeasurementUnit: in.MeasurementUnit})
}
