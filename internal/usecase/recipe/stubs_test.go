package recipe

import (
	"context"
	"slices"
	"sort"
	"sync"

	"foodgram/internal/domain/entity"
	"foodgram/internal/repository"
)

/*──────────────────── recipes ────────────────────*/

type stubRecipeRepo struct {
	mu          sync.Mutex
	recipes     map[int64]*entity.Recipe
	nextID      int64
	err         error
	lastFilter  repository.RecipeFilter
	ingredients map[int64]entity.Ingredient
}

func newStubRecipeRepo(catalog map[int64]entity.Ingredient) *stubRecipeRepo {
	return &stubRecipeRepo{recipes: map[int64]*entity.Recipe{}, nextID: 1, ingredients: catalog}
}

func (r *stubRecipeRepo) Get(_ context.Context, id int64) (*entity.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	rec, ok := r.recipes[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	cp.Tags, cp.Ingredients = nil, nil
	return &cp, nil
}

func (r *stubRecipeRepo) sorted() []*entity.Recipe {
	out := make([]*entity.Recipe, 0, len(r.recipes))
	for _, rec := range r.recipes {
		if r.lastFilter.AuthorID != nil && rec.AuthorID != *r.lastFilter.AuthorID {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r *stubRecipeRepo) List(_ context.Context, f repository.RecipeFilter, offset, limit int) ([]*entity.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastFilter = f
	all := r.sorted()
	out := []*entity.Recipe{}
	for i := offset; i < len(all) && i < offset+limit; i++ {
		cp := *all[i]
		cp.Tags, cp.Ingredients = nil, nil
		out = append(out, &cp)
	}
	return out, nil
}

func (r *stubRecipeRepo) Count(_ context.Context, f repository.RecipeFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastFilter = f
	return int64(len(r.sorted())), nil
}

func (r *stubRecipeRepo) ListTags(_ context.Context, ids []int64) (map[int64][]entity.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[int64][]entity.Tag{}
	for _, id := range ids {
		if rec, ok := r.recipes[id]; ok && len(rec.Tags) > 0 {
			out[id] = slices.Clone(rec.Tags)
		}
	}
	return out, nil
}

func (r *stubRecipeRepo) ListIngredients(_ context.Context, ids []int64) (map[int64][]entity.RecipeIngredient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[int64][]entity.RecipeIngredient{}
	for _, id := range ids {
		rec, ok := r.recipes[id]
		if !ok {
			continue
		}
		for _, li := range rec.Ingredients {
			in := r.ingredients[li.IngredientID]
			out[id] = append(out[id], entity.RecipeIngredient{
				IngredientID: li.IngredientID, Name: in.Name, MeasurementUnit: in.MeasurementUnit, Amount: li.Amount,
			})
		}
	}
	return out, nil
}

func (r *stubRecipeRepo) Create(_ context.Context, rec *entity.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec.ID = r.nextID
	r.nextID++
	cp := *rec
	r.recipes[rec.ID] = &cp
	return nil
}

func (r *stubRecipeRepo) Update(_ context.Context, rec *entity.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rec
	r.recipes[rec.ID] = &cp
	return nil
}

func (r *stubRecipeRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.recipes, id)
	return nil
}

/*──────────────────── catalogue ────────────────────*/

type stubTagRepo struct{ tags map[int64]entity.Tag }

func (r *stubTagRepo) GetByIDs(_ context.Context, ids []int64) ([]entity.Tag, error) {
	out := []entity.Tag{}
	for _, id := range ids {
		if t, ok := r.tags[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

// 以下は未使用だが、インターフェース満たすために実装
func (r *stubTagRepo) List(context.Context) ([]*entity.Tag, error) { return nil, nil }
func (r *stubTagRepo) Get(context.Context, int64) (*entity.Tag, error) { return nil, nil }
func (r *stubTagRepo) Upsert(context.Context, *entity.Tag) error { return nil }

type stubIngredientRepo struct{ items map[int64]entity.Ingredient }

func (r *stubIngredientRepo) GetByIDs(_ context.Context, ids []int64) ([]entity.Ingredient, error) {
	out := []entity.Ingredient{}
	for _, id := range ids {
		if in, ok := r.items[id]; ok {
			out = append(out, in)
		}
	}
	return out, nil
}

// 以下は未使用だが、インターフェース満たすために実装
func (r *stubIngredientRepo) List(context.Context, string) ([]*entity.Ingredient, error) {
	return nil, nil
}
func (r *stubIngredientRepo) Get(context.Context, int64) (*entity.Ingredient, error) { return nil, nil }
func (r *stubIngredientRepo) BulkCreate(context.Context, []entity.Ingredient) (int64, error) {
	return 0, nil
}

/*──────────────────── users / follows ────────────────────*/

type stubUserRepo struct{ users map[int64]*entity.User }

func (r *stubUserRepo) Get(_ context.Context, id int64) (*entity.User, error) {
	return r.users[id], nil
}

// 以下は未使用だが、インターフェース満たすために実装
func (r *stubUserRepo) GetByEmail(context.Context, string) (*entity.User, error) { return nil, nil }
func (r *stubUserRepo) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }
func (r *stubUserRepo) ExistsByUsername(context.Context, string) (bool, error) { return false, nil }
func (r *stubUserRepo) List(context.Context, int, int) ([]*entity.User, error) { return nil, nil }
func (r *stubUserRepo) Count(context.Context) (int64, error) { return 0, nil }
func (r *stubUserRepo) Create(context.Context, *entity.User) error { return nil }
func (r *stubUserRepo) UpdatePassword(context.Context, int64, string) error { return nil }
func (r *stubUserRepo) UpdateAvatar(context.Context, int64, string) error { return nil }

type stubFollowRepo struct{ follows map[[2]int64]bool }

func (r *stubFollowRepo) FollowedAmong(_ context.Context, userID int64, ids []int64) (map[int64]bool, error) {
	out := map[int64]bool{}
	for _, id := range ids {
		if r.follows[[2]int64{userID, id}] {
			out[id] = true
		}
	}
	return out, nil
}

// 以下は未使用だが、インターフェース満たすために実装
func (r *stubFollowRepo) Create(context.Context, int64, int64) error { return nil }
func (r *stubFollowRepo) Delete(context.Context, int64, int64) (bool, error) { return false, nil }
func (r *stubFollowRepo) Exists(context.Context, int64, int64) (bool, error) { return false, nil }
func (r *stubFollowRepo) ListAuthors(context.Context, int64, int, int) ([]*entity.User, error) {
	return nil, nil
}
func (r *stubFollowRepo) CountAuthors(context.Context, int64) (int64, error) { return 0, nil }

/*──────────────────── collections ────────────────────*/

type stubCollection struct {
	mu     sync.Mutex
	set    map[[2]int64]bool
	addErr error
}

func newStubCollection() *stubCollection {
	return &stubCollection{set: map[[2]int64]bool{}}
}

func (c *stubCollection) Add(_ context.Context, userID, recipeID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.addErr != nil {
		return c.addErr
	}
	c.set[[2]int64{userID, recipeID}] = true
	return nil
}

func (c *stubCollection) Remove(_ context.Context, userID, recipeID int64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := [2]int64{userID, recipeID}
	if !c.set[k] {
		return false, nil
	}
	delete(c.set, k)
	return true, nil
}

func (c *stubCollection) ContainsAmong(_ context.Context, userID int64, ids []int64) (map[int64]bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := map[int64]bool{}
	for _, id := range ids {
		if c.set[[2]int64{userID, id}] {
			out[id] = true
		}
	}
	return out, nil
}

func (c *stubCollection) CountEntries(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return int64(len(c.set)), nil
}
