package user

import (
	"foodgram/internal/domain/entity"
	userUC "foodgram/internal/usecase/user"
)

// DTO is the public user representation.
type DTO struct {
	ID           int64   `json:"id"`
	Email        string  `json:"email"`
	Username     string  `json:"username"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	IsSubscribed bool    `json:"is_subscribed"`
	Avatar       *string `json:"avatar"`
}

// ShortRecipeDTO is the compact recipe used in subscriptions, favorites and cart responses.
type ShortRecipeDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// SubscriptionDTO is a followed author with a recipe preview.
type SubscriptionDTO struct {
	DTO
	Recipes      []ShortRecipeDTO `json:"recipes"`
	RecipesCount int64            `json:"recipes_count"`
}

type registerRequest struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Username  string `json:"username" validate:"required,max=150,username,ne=me"`
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
	Password  string `json:"password" validate:"required,max=128"`
}

type registerResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type setPasswordRequest struct {
	NewPassword     string `json:"new_password" validate:"required,max=128"`
	CurrentPassword string `json:"current_password" validate:"required"`
}

type avatarRequest struct {
	Avatar string `json:"avatar" validate:"required"`
}

type avatarResponse struct {
	Avatar string `json:"avatar"`
}

// NewDTO converts a profile into its JSON form.
func NewDTO(p userUC.Profile) DTO {
	u := p.User
	d := DTO{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: p.IsSubscribed,
	}
	if u.Avatar != "" {
		avatar := u.Avatar
		d.Avatar = &avatar
	}
	return d
}

// NewShortRecipeDTO converts a recipe into the compact form.
func NewShortRecipeDTO(r *entity.Recipe) ShortRecipeDTO {
	return ShortRecipeDTO{ID: r.ID, Name: r.Name, Image: r.Image, CookingTime: r.CookingTime}
}

func newSubscriptionDTO(s userUC.Subscription) SubscriptionDTO {
	recipes := make([]ShortRecipeDTO, 0, len(s.Recipes))
	for _, r := range s.Recipes {
		recipes = append(recipes, NewShortRecipeDTO(r))
	}
	return SubscriptionDTO{DTO: NewDTO(s.Profile), Recipes: recipes, RecipesCount: s.RecipesCount}
}
