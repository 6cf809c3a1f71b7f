package user

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"foodgram/internal/common/pagination"
	"foodgram/internal/domain/entity"
	"foodgram/internal/observability/metrics"
	"foodgram/internal/repository"
	"foodgram/internal/service/auth"
)

// RegisterInput is the sign-up form.
type RegisterInput struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Password  string
}

// Profile is a user as seen by a viewer.
type Profile struct {
	User         *entity.User
	IsSubscribed bool
}

// Subscription is a followed author with a preview of their recipes.
type Subscription struct {
	Profile
	Recipes      []*entity.Recipe
	RecipesCount int64
}

// Service holds the user use cases.
type Service struct {
	Users   repository.UserRepository
	Follows repository.FollowRepository
	Recipes repository.RecipeRepository
}

// subscriptionWorkers bounds the parallel recipe loads of a subscriptions page.
const subscriptionWorkers = 4

// Register validates the form, hashes the password and stores the user.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	u := &entity.User{
		Email:     in.Email,
		Username:  in.Username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if in.Password == "" {
		return nil, &entity.ValidationError{Field: "password", Message: "is required"}
	}

	taken, err := s.Users.ExistsByEmail(ctx, u.Email)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}
	taken, err = s.Users.ExistsByUsername(ctx, u.Username)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hash, err := auth.HashPassword(in.Password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return nil, &entity.ValidationError{Field: "password", Message: "is too long"}
	}
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	u.PasswordHash = hash

	if err := s.Users.Create(ctx, u); err != nil {
		// 事前チェックとの競合
		if errors.Is(err, entity.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("register: %w", err)
	}
	metrics.RecordUserRegistered()
	return u, nil
}

// List returns a page of users ordered by id and the total count.
func (s *Service) List(ctx context.Context, viewerID int64, params pagination.Params) ([]Profile, int64, error) {
	total, err := s.Users.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	users, err := s.Users.List(ctx, params.Offset(), params.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	profiles, err := s.profiles(ctx, viewerID, users)
	if err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

// Get returns the user with id as seen by viewerID (0 for anonymous).
func (s *Service) Get(ctx context.Context, viewerID, id int64) (*Profile, error) {
	u, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	p := &Profile{User: u}
	if viewerID != 0 && viewerID != id {
		p.IsSubscribed, err = s.Follows.Exists(ctx, viewerID, id)
		if err != nil {
			return nil, fmt.Errorf("get user: %w", err)
		}
	}
	return p, nil
}

// Me returns the authenticated user's own profile.
func (s *Service) Me(ctx context.Context, userID int64) (*Profile, error) {
	return s.Get(ctx, userID, userID)
}

// SetPassword replaces the password after checking the current one.
func (s *Service) SetPassword(ctx context.Context, userID int64, current, next string) error {
	if next == "" {
		return &entity.ValidationError{Field: "new_password", Message: "is required"}
	}
	u, err := s.mustGet(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(u.PasswordHash, current) {
		return ErrWrongPassword
	}

	hash, err := auth.HashPassword(next)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return &entity.ValidationError{Field: "new_password", Message: "is too long"}
	}
	if err != nil {
		return fmt.Errorf("set password: %w", err)
	}
	if err := s.Users.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("set password: %w", err)
	}
	return nil
}

// SetAvatar stores avatar as given and returns it.
func (s *Service) SetAvatar(ctx context.Context, userID int64, avatar string) (string, error) {
	if avatar == "" {
		return "", &entity.ValidationError{Field: "avatar", Message: "is required"}
	}
	if err := s.Users.UpdateAvatar(ctx, userID, avatar); err != nil {
		return "", fmt.Errorf("set avatar: %w", err)
	}
	return avatar, nil
}

// DeleteAvatar clears the avatar.
func (s *Service) DeleteAvatar(ctx context.Context, userID int64) error {
	if err := s.Users.UpdateAvatar(ctx, userID, ""); err != nil {
		return fmt.Errorf("delete avatar: %w", err)
	}
	return nil
}

// Subscribe makes userID follow authorID and returns the author with up to
// recipesLimit recipes (all when recipesLimit <= 0).
func (s *Service) Subscribe(ctx context.Context, userID, authorID int64, recipesLimit int) (*Subscription, error) {
	if userID == authorID {
		return nil, ErrSelfSubscription
	}
	author, err := s.mustGet(ctx, authorID)
	if err != nil {
		return nil, err
	}
	exists, err := s.Follows.Exists(ctx, userID, authorID)
	if err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}
	if exists {
		return nil, ErrAlreadySubscribed
	}
	if err := s.Follows.Create(ctx, userID, authorID); err != nil {
		if errors.Is(err, entity.ErrConflict) {
			return nil, ErrAlreadySubscribed
		}
		return nil, fmt.Errorf("subscribe: %w", err)
	}
	metrics.RecordCollectionChange("subscriptions", true)

	sub := &Subscription{Profile: Profile{User: author, IsSubscribed: true}}
	if err := s.loadRecipes(ctx, sub, recipesLimit); err != nil {
		return nil, err
	}
	return sub, nil
}

// Unsubscribe removes the subscription of userID to authorID.
func (s *Service) Unsubscribe(ctx context.Context, userID, authorID int64) error {
	if _, err := s.mustGet(ctx, authorID); err != nil {
		return err
	}
	removed, err := s.Follows.Delete(ctx, userID, authorID)
	if err != nil {
		return fmt.Errorf("unsubscribe: %w", err)
	}
	if !removed {
		return ErrNotSubscribed
	}
	metrics.RecordCollectionChange("subscriptions", false)
	return nil
}

// Subscriptions returns a page of the authors userID follows, each with a
// recipe preview.
func (s *Service) Subscriptions(ctx context.Context, userID int64, params pagination.Params, recipesLimit int) ([]Subscription, int64, error) {
	total, err := s.Follows.CountAuthors(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("count subscriptions: %w", err)
	}
	authors, err := s.Follows.ListAuthors(ctx, userID, params.Offset(), params.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list subscriptions: %w", err)
	}

	subs := make([]Subscription, len(authors))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(subscriptionWorkers)
	for i, a := range authors {
		subs[i] = Subscription{Profile: Profile{User: a, IsSubscribed: true}}
		sub := &subs[i]
		g.Go(func() error {
			return s.loadRecipes(gctx, sub, recipesLimit)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

func (s *Service) loadRecipes(ctx context.Context, sub *Subscription, limit int) error {
	authorID := sub.User.ID
	filter := repository.RecipeFilter{AuthorID: &authorID}

	count, err := s.Recipes.Count(ctx, filter)
	if err != nil {
		return fmt.Errorf("count author recipes: %w", err)
	}
	sub.RecipesCount = count
	sub.Recipes = []*entity.Recipe{}
	if count == 0 {
		return nil
	}
	if limit <= 0 || int64(limit) > count {
		limit = int(count)
	}
	recipes, err := s.Recipes.List(ctx, filter, 0, limit)
	if err != nil {
		return fmt.Errorf("list author recipes: %w", err)
	}
	sub.Recipes = recipes
	return nil
}

func (s *Service) profiles(ctx context.Context, viewerID int64, users []*entity.User) ([]Profile, error) {
	out := make([]Profile, len(users))
	for i, u := range users {
		out[i] = Profile{User: u}
	}
	if viewerID == 0 || len(users) == 0 {
		return out, nil
	}

	ids := make([]int64, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	followed, err := s.Follows.FollowedAmong(ctx, viewerID, ids)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	for i := range out {
		out[i].IsSubscribed = followed[out[i].User.ID]
	}
	return out, nil
}

func (s *Service) mustGet(ctx context.Context, id int64) (*entity.User, error) {
	if id <= 0 {
		return nil, ErrUserNotFound
	}
	u, err := s.Users.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}
