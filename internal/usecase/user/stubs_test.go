package user

import (
	"context"
	"sort"
	"sync"

	"foodgram/internal/domain/entity"
	"foodgram/internal/repository"
)

/*──────────────────── user repo ────────────────────*/

type stubUserRepo struct {
	mu     sync.Mutex
	users  map[int64]*entity.User
	nextID int64
	err    error
}

func newStubUserRepo(users ...*entity.User) *stubUserRepo {
	r := &stubUserRepo{users: map[int64]*entity.User{}, nextID: 1}
	for _, u := range users {
		r.users[u.ID] = u
		if u.ID >= r.nextID {
			r.nextID = u.ID + 1
		}
	}
	return r
}

func (r *stubUserRepo) Get(_ context.Context, id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	return r.users[id], nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	u, _ := r.GetByEmail(ctx, email)
	return u != nil, nil
}

func (r *stubUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) List(_ context.Context, offset, limit int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	if offset >= len(all) {
		return []*entity.User{}, nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *stubUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = r.nextID
	r.nextID++
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id int64, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[id].PasswordHash = hash
	return nil
}

func (r *stubUserRepo) UpdateAvatar(_ context.Context, id int64, avatar string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[id].Avatar = avatar
	return nil
}

/*──────────────────── follow repo ────────────────────*/

type stubFollowRepo struct {
	mu    sync.Mutex
	pairs map[[2]int64]bool
	users *stubUserRepo
}

func newStubFollowRepo(users *stubUserRepo) *stubFollowRepo {
	return &stubFollowRepo{pairs: map[[2]int64]bool{}, users: users}
}

func (r *stubFollowRepo) Create(_ context.Context, userID, authorID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := [2]int64{userID, authorID}
	if r.pairs[k] {
		return entity.ErrConflict
	}
	r.pairs[k] = true
	return nil
}

func (r *stubFollowRepo) Delete(_ context.Context, userID, authorID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := [2]int64{userID, authorID}
	if !r.pairs[k] {
		return false, nil
	}
	delete(r.pairs, k)
	return true, nil
}

func (r *stubFollowRepo) Exists(_ context.Context, userID, authorID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pairs[[2]int64{userID, authorID}], nil
}

func (r *stubFollowRepo) FollowedAmong(_ context.Context, userID int64, ids []int64) (map[int64]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[int64]bool{}
	for _, id := range ids {
		if r.pairs[[2]int64{userID, id}] {
			out[id] = true
		}
	}
	return out, nil
}

func (r *stubFollowRepo) authorIDs(userID int64) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []int64
	for k := range r.pairs {
		if k[0] == userID {
			ids = append(ids, k[1])
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (r *stubFollowRepo) ListAuthors(ctx context.Context, userID int64, offset, limit int) ([]*entity.User, error) {
	ids := r.authorIDs(userID)
	out := []*entity.User{}
	for i := offset; i < len(ids) && i < offset+limit; i++ {
		u, _ := r.users.Get(ctx, ids[i])
		out = append(out, u)
	}
	return out, nil
}

func (r *stubFollowRepo) CountAuthors(_ context.Context, userID int64) (int64, error) {
	return int64(len(r.authorIDs(userID))), nil
}

/*──────────────────── recipe repo ────────────────────*/

// stubRecipeRepo は AuthorID フィルタだけ扱う
type stubRecipeRepo struct {
	byAuthor map[int64][]*entity.Recipe
}

func (r *stubRecipeRepo) List(_ context.Context, f repository.RecipeFilter, offset, limit int) ([]*entity.Recipe, error) {
	all := r.byAuthor[*f.AuthorID]
	if offset >= len(all) {
		return []*entity.Recipe{}, nil
	}
	return all[offset:min(offset+limit, len(all))], nil
}

func (r *stubRecipeRepo) Count(_ context.Context, f repository.RecipeFilter) (int64, error) {
	return int64(len(r.byAuthor[*f.AuthorID])), nil
}

// 以下は未使用だが、インターフェース満たすために実装
func (r *stubRecipeRepo) Get(context.Context, int64) (*entity.Recipe, error) { return nil, nil }
func (r *stubRecipeRepo) ListTags(context.Context, []int64) (map[int64][]entity.Tag, error) {
	return nil, nil
}
func (r *stubRecipeRepo) ListIngredients(context.Context, []int64) (map[int64][]entity.RecipeIngredient, error) {
	return nil, nil
}
func (r *stubRecipeRepo) Create(context.Context, *entity.Recipe) error { return nil }
func (r *stubRecipeRepo) Update(context.Context, *entity.Recipe) error { return nil }
func (r *stubRecipeRepo) Delete(context.Context, int64) error          { return nil }
