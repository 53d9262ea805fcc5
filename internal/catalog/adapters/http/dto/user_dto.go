package dto

import "filmorate/internal/catalog/domain/entities"

// UserRequest - тело запросов создания и обновления пользователя.
type UserRequest struct {
	ID       *int64  `json:"id"`
	Email    *string `json:"email"`
	Login    *string `json:"login"`
	Name     *string `json:"name"`
	Birthday *Date   `json:"birthday"`
}

// ToInput переводит запрос во входные данные use case.
func (r *UserRequest) ToInput() entities.UserInput {
	return entities.UserInput{
		ID:       r.ID,
		Email:    r.Email,
		Login:    r.Login,
		Name:     r.Name,
		Birthday: r.Birthday.timePtr(),
	}
}

// UserResponse - представление пользователя в ответах.
type UserResponse struct {
	ID       int64   `json:"id"`
	Email    string  `json:"email"`
	Login    string  `json:"login"`
	Name     string  `json:"name"`
	Birthday Date    `json:"birthday"`
	Friends  []int64 `json:"friends"`
	Likes    []int64 `json:"likes"`
}

// NewUserResponse строит ответ из пользователя.
func NewUserResponse(u *entities.User) UserResponse {
	resp := UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		Login:    u.Login,
		Name:     u.Name,
		Birthday: Date{Time: u.Birthday},
		Friends:  u.Friends,
		Likes:    u.Likes,
	}
	if resp.Friends == nil {
		resp.Friends = []int64{}
	}
	if resp.Likes == nil {
		resp.Likes = []int64{}
	}
	return resp
}

// NewUserListResponse строит ответ из списка пользователей.
func NewUserListResponse(users []*entities.User) []UserResponse {
	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, NewUserResponse(u))
	}
	return resp
}
