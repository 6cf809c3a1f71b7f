package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodgram/internal/domain/entity"
)

/*──────────────────── stubs ────────────────────*/

type stubTagRepo struct {
	tags     map[int64]*entity.Tag
	upserted []string
	err      error
}

func (r *stubTagRepo) List(context.Context) ([]*entity.Tag, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := []*entity.Tag{}
	for _, t := range r.tags {
		out = append(out, t)
	}
	return out, nil
}

func (r *stubTagRepo) Get(_ context.Context, id int64) (*entity.Tag, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.tags[id], nil
}

func (r *stubTagRepo) Upsert(_ context.Context, t *entity.Tag) error {
	if r.err != nil {
		return r.err
	}
	r.upserted = append(r.upserted, t.Slug)
	return nil
}

// 以下は未使用だが、インターフェース満たすために実装
func (r *stubTagRepo) GetByIDs(context.Context, []int64) ([]entity.Tag, error) { return nil, nil }

type stubIngredientRepo struct {
	items      map[int64]*entity.Ingredient
	prefix     string
	bulk       []entity.Ingredient
	bulkResult int64
}

func (r *stubIngredientRepo) List(_ context.Context, prefix string) ([]*entity.Ingredient, error) {
	r.prefix = prefix
	out := []*entity.Ingredient{}
	for _, in := range r.items {
		if strings.HasPrefix(strings.ToLower(in.Name), strings.ToLower(prefix)) {
			out = append(out, in)
		}
	}
	return out, nil
}

func (r *stubIngredientRepo) Get(_ context.Context, id int64) (*entity.Ingredient, error) {
	return r.items[id], nil
}

func (r *stubIngredientRepo) BulkCreate(_ context.Context, items []entity.Ingredient) (int64, error) {
	r.bulk = items
	return r.bulkResult, nil
}

// 以下は未使用だが、インターフェース満たすために実装
func (r *stubIngredientRepo) GetByIDs(context.Context, []int64) ([]entity.Ingredient, error) {
	return nil, nil
}

/*──────────────────── tags ────────────────────*/

func TestTagService_Get(t *testing.T) {
	svc := &TagService{Repo: &stubTagRepo{tags: map[int64]*entity.Tag{
		1: {ID: 1, Name: "Завтрак", Color: "#E26C2D", Slug: "breakfast"},
	}}}

	tag, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "breakfast", tag.Slug)

	_, err = svc.Get(context.Background(), 2)
	assert.ErrorIs(t, err, ErrTagNotFound)

	_, err = svc.Get(context.Background(), 0)
	assert.ErrorIs(t, err, ErrTagNotFound)
}

func TestTagService_List_Error(t *testing.T) {
	svc := &TagService{Repo: &stubTagRepo{err: errors.New("boom")}}
	_, err := svc.List(context.Background())
	assert.ErrorContains(t, err, "list tags")
}

func TestTagService_Load(t *testing.T) {
	repo := &stubTagRepo{}
	svc := &TagService{Repo: repo}

	n, err := svc.Load(context.Background(), []entity.Tag{
		{Name: "Завтрак", Color: "#E26C2D", Slug: "breakfast"},
		{Name: "Обед", Color: "#49B64E", Slug: "lunch"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"breakfast", "lunch"}, repo.upserted)
}

func TestTagService_Load_InvalidWritesNothing(t *testing.T) {
	repo := &stubTagRepo{}
	svc := &TagService{Repo: repo}

	_, err := svc.Load(context.Background(), []entity.Tag{
		{Name: "Завтрак", Color: "#E26C2D", Slug: "breakfast"},
		{Name: "Ужин", Color: "purple", Slug: "dinner"},
	})
	assert.ErrorIs(t, err, entity.ErrValidationFailed)
	assert.Empty(t, repo.upserted)
}

/*──────────────────── ingredients ────────────────────*/

func TestIngredientService_List(t *testing.T) {
	repo := &stubIngredientRepo{items: map[int64]*entity.Ingredient{
		1: {ID: 1, Name: "Абрикосовое варенье", MeasurementUnit: "г"},
		2: {ID: 2, Name: "Яйца", MeasurementUnit: "шт."},
	}}
	svc := &IngredientService{Repo: repo}

	got, err := svc.List(context.Background(), "  абр ")
	require.NoError(t, err)
	assert.Equal(t, "абр", repo.prefix)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)

	_, err = svc.Get(context.Background(), 3)
	assert.ErrorIs(t, err, ErrIngredientNotFound)
}

func TestIngredientService_Load(t *testing.T) {
	repo := &stubIngredientRepo{bulkResult: 1}
	svc := &IngredientService{Repo: repo}

	n, err := svc.Load(context.Background(), []entity.Ingredient{
		{Name: " соль ", MeasurementUnit: "г"},
		{Name: "соль", MeasurementUnit: "г"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, "соль", repo.bulk[0].Name)

	_, err = svc.Load(context.Background(), []entity.Ingredient{{Name: "вода"}})
	assert.ErrorIs(t, err, entity.ErrValidationFailed)
}
