package recipe_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodgram/internal/common/pagination"
	"foodgram/internal/domain/entity"
	"foodgram/internal/handler/http/auth"
	recipeHTTP "foodgram/internal/handler/http/recipe"
	authservice "foodgram/internal/service/auth"
	recipeUC "foodgram/internal/usecase/recipe"
	userUC "foodgram/internal/usecase/user"
)

/* ───────── モック実装 ───────── */

type stubService struct {
	view       *recipeUC.View
	err        error
	gotQuery   recipeUC.ListQuery
	gotViewer  int64
	gotInput   recipeUC.Input
	gotColl    recipeUC.Collection
	resolveID  int64
	resolveErr error
}

func (s *stubService) List(_ context.Context, viewerID int64, q recipeUC.ListQuery, _ pagination.Params) ([]recipeUC.View, int64, error) {
	s.gotViewer, s.gotQuery = viewerID, q
	if s.err != nil {
		return nil, 0, s.err
	}
	return []recipeUC.View{*s.view}, 1, nil
}

func (s *stubService) Get(_ context.Context, viewerID, _ int64) (*recipeUC.View, error) {
	s.gotViewer = viewerID
	return s.view, s.err
}

func (s *stubService) Create(_ context.Context, _ int64, in recipeUC.Input) (*recipeUC.View, error) {
	s.gotInput = in
	return s.view, s.err
}

func (s *stubService) Update(_ context.Context, _, _ int64, in recipeUC.Input) (*recipeUC.View, error) {
	s.gotInput = in
	return s.view, s.err
}

func (s *stubService) Delete(context.Context, int64, int64) error { return s.err }

func (s *stubService) AddTo(_ context.Context, c recipeUC.Collection, _, _ int64) (*entity.Recipe, error) {
	s.gotColl = c
	if s.err != nil {
		return nil, s.err
	}
	return s.view.Recipe, nil
}

func (s *stubService) RemoveFrom(_ context.Context, c recipeUC.Collection, _, _ int64) error {
	s.gotColl = c
	return s.err
}

func (s *stubService) GetLink(context.Context, int64) (string, error) {
	return "https://foodgram.example/s/Uk3fQz", s.err
}

func (s *stubService) Resolve(context.Context, string) (int64, error) {
	return s.resolveID, s.resolveErr
}

/* ───────── ヘルパー ───────── */

func omeletteView() *recipeUC.View {
	return &recipeUC.View{
		Recipe: &entity.Recipe{
			ID: 3, AuthorID: 1, Name: "Омлет", Text: "Взбить.", CookingTime: 10, Image: "img",
			Tags:        []entity.Tag{{ID: 1, Name: "Завтрак", Color: "#E26C2D", Slug: "breakfast"}},
			Ingredients: []entity.RecipeIngredient{{IngredientID: 10, Name: "яйца", MeasurementUnit: "шт.", Amount: 3}},
		},
		Author:      userUC.Profile{User: &entity.User{ID: 1, Email: "a@a.ru", Username: "author", FirstName: "A", LastName: "B"}},
		IsFavorited: true,
	}
}

func serve(t *testing.T, svc *stubService, method, target, body string, userID int64) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	recipeHTTP.Register(mux, &recipeHTTP.Handler{Svc: svc, PaginationCfg: pagination.DefaultConfig()})

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if userID != 0 {
		req = req.WithContext(auth.WithClaims(req.Context(), &authservice.Claims{UserID: userID}))
	}
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

const validBody = `{
	"ingredients": [{"id": 10, "amount": 3}],
	"tags": [1],
	"image": "data:image/png;base64,AAAA",
	"name": "Омлет",
	"text": "Взбить.",
	"cooking_time": 10
}`

/* ───────── テストケース ───────── */

func TestGet(t *testing.T) {
	rr := serve(t, &stubService{view: omeletteView()}, http.MethodGet, "/api/recipes/3/", "", 0)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{
		"id": 3,
		"tags": [{"id":1,"name":"Завтрак","color":"#E26C2D","slug":"breakfast"}],
		"author": {"id":1,"email":"a@a.ru","username":"author","first_name":"A","last_name":"B","is_subscribed":false,"avatar":null},
		"ingredients": [{"id":10,"name":"яйца","measurement_unit":"шт.","amount":3}],
		"is_favorited": true,
		"is_in_shopping_cart": false,
		"name": "Омлет",
		"image": "img",
		"text": "Взбить.",
		"cooking_time": 10
	}`, rr.Body.String())

	rr = serve(t, &stubService{err: recipeUC.ErrRecipeNotFound}, http.MethodGet, "/api/recipes/9/", "", 0)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestList_Filters(t *testing.T) {
	svc := &stubService{view: omeletteView()}
	rr := serve(t, svc, http.MethodGet,
		"/api/recipes/?author=1&tags=breakfast&tags=lunch&is_favorited=1&is_in_shopping_cart=0", "", 2)
	require.Equal(t, http.StatusOK, rr.Code)

	require.NotNil(t, svc.gotQuery.AuthorID)
	assert.Equal(t, int64(1), *svc.gotQuery.AuthorID)
	assert.Equal(t, []string{"breakfast", "lunch"}, svc.gotQuery.TagSlugs)
	assert.True(t, svc.gotQuery.IsFavorited)
	assert.False(t, svc.gotQuery.IsInShoppingCart)
	assert.Equal(t, int64(2), svc.gotViewer)

	var page pagination.Page[recipeHTTP.DTO]
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
	assert.Equal(t, int64(1), page.Count)
	assert.Nil(t, page.Next)

	rr = serve(t, svc, http.MethodGet, "/api/recipes/?author=abc", "", 0)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreate(t *testing.T) {
	svc := &stubService{view: omeletteView()}
	rr := serve(t, svc, http.MethodPost, "/api/recipes/", validBody, 1)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, []int64{1}, svc.gotInput.Tags)
	assert.Equal(t, []recipeUC.IngredientInput{{ID: 10, Amount: 3}}, svc.gotInput.Ingredients)

	rr = serve(t, svc, http.MethodPost, "/api/recipes/", validBody, 0)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{name: "no image", body: `{"ingredients":[{"id":10,"amount":3}],"tags":[1],"name":"x","text":"y","cooking_time":1}`, wantField: "image"},
		{name: "no tags", body: `{"ingredients":[{"id":10,"amount":3}],"tags":[],"image":"i","name":"x","text":"y","cooking_time":1}`, wantField: "tags"},
		{name: "duplicate tags", body: `{"ingredients":[{"id":10,"amount":3}],"tags":[1,1],"image":"i","name":"x","text":"y","cooking_time":1}`, wantField: "tags"},
		{name: "zero amount", body: `{"ingredients":[{"id":10,"amount":0}],"tags":[1],"image":"i","name":"x","text":"y","cooking_time":1}`, wantField: "ingredients[0].amount"},
		{name: "zero cooking time", body: `{"ingredients":[{"id":10,"amount":1}],"tags":[1],"image":"i","name":"x","text":"y","cooking_time":0}`, wantField: "cooking_time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(t, &stubService{view: omeletteView()}, http.MethodPost, "/api/recipes/", tt.body, 1)
			require.Equal(t, http.StatusBadRequest, rr.Code)
			var got map[string][]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
			assert.Contains(t, got, tt.wantField)
		})
	}
}

func TestCreate_UnknownTag(t *testing.T) {
	svc := &stubService{err: &entity.ValidationError{Field: "tags", Message: "contains unknown tag ids"}}
	rr := serve(t, svc, http.MethodPost, "/api/recipes/", validBody, 1)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"tags":["contains unknown tag ids"]}`, rr.Body.String())
}

func TestUpdateAndDelete(t *testing.T) {
	noImage := strings.Replace(validBody, `"image": "data:image/png;base64,AAAA",`, "", 1)

	rr := serve(t, &stubService{view: omeletteView()}, http.MethodPatch, "/api/recipes/3/", noImage, 1)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = serve(t, &stubService{err: recipeUC.ErrForbidden}, http.MethodPatch, "/api/recipes/3/", validBody, 2)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = serve(t, &stubService{}, http.MethodDelete, "/api/recipes/3/", "", 1)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = serve(t, &stubService{err: recipeUC.ErrForbidden}, http.MethodDelete, "/api/recipes/3/", "", 2)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestCollections(t *testing.T) {
	tests := []struct {
		path string
		coll recipeUC.Collection
	}{
		{path: "/api/recipes/3/favorite/", coll: recipeUC.Favorites},
		{path: "/api/recipes/3/shopping_cart/", coll: recipeUC.ShoppingCart},
	}

	for _, tt := range tests {
		t.Run(string(tt.coll), func(t *testing.T) {
			svc := &stubService{view: omeletteView()}
			rr := serve(t, svc, http.MethodPost, tt.path, "", 2)
			require.Equal(t, http.StatusCreated, rr.Code)
			assert.Equal(t, tt.coll, svc.gotColl)
			assert.JSONEq(t, `{"id":3,"name":"Омлет","image":"img","cooking_time":10}`, rr.Body.String())

			rr = serve(t, svc, http.MethodDelete, tt.path, "", 2)
			assert.Equal(t, http.StatusNoContent, rr.Code)

			rr = serve(t, &stubService{err: recipeUC.ErrAlreadyInCart}, http.MethodPost, tt.path, "", 2)
			assert.Equal(t, http.StatusBadRequest, rr.Code)

			rr = serve(t, &stubService{err: recipeUC.ErrNotFavorited}, http.MethodDelete, tt.path, "", 2)
			assert.Equal(t, http.StatusBadRequest, rr.Code)

			rr = serve(t, &stubService{err: recipeUC.ErrRecipeNotFound}, http.MethodPost, tt.path, "", 2)
			assert.Equal(t, http.StatusNotFound, rr.Code)

			rr = serve(t, svc, http.MethodPost, tt.path, "", 0)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}

func TestGetLink(t *testing.T) {
	rr := serve(t, &stubService{}, http.MethodGet, "/api/recipes/3/get-link/", "", 0)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"short-link":"https://foodgram.example/s/Uk3fQz"}`, rr.Body.String())
}

func TestRedirect(t *testing.T) {
	rr := serve(t, &stubService{resolveID: 3}, http.MethodGet, "/s/Uk3fQz", "", 0)
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/recipes/3/", rr.Header().Get("Location"))

	rr = serve(t, &stubService{resolveErr: recipeUC.ErrShortLinkNotFound}, http.MethodGet, "/s/zzz", "", 0)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStorageErrorIsHidden(t *testing.T) {
	rr := serve(t, &stubService{err: errors.New("pq: password authentication failed")}, http.MethodGet, "/api/recipes/3/", "", 0)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "password")
}
