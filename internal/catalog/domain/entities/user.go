package entities

import (
	"strings"
	"time"
)

// User представляет пользователя каталога.
type User struct {
	ID       int64     `json:"id"`
	Email    string    `json:"email"`
	Login    string    `json:"login"`
	Name     string    `json:"name"`
	Birthday time.Time `json:"birthday"`
	Friends  []int64   `json:"friends"`
	Likes    []int64   `json:"likes"`
}

// UserInput - входные данные для создания или частичного обновления пользователя.
type UserInput struct {
	ID       *int64
	Email    *string
	Login    *string
	Name     *string
	Birthday *time.Time
}

// Clone возвращает глубокую копию пользователя.
func (u *User) Clone() *User {
	c := *u
	c.Friends = append([]int64(nil), u.Friends...)
	c.Likes = append([]int64(nil), u.Likes...)
	if c.Friends == nil {
		c.Friends = []int64{}
	}
	if c.Likes == nil {
		c.Likes = []int64{}
	}
	return &c
}

// Apply переносит присутствующие поля input в пользователя.
// Пустое имя заменяется логином.
func (u *User) Apply(in UserInput) {
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.Login != nil {
		u.Login = *in.Login
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Birthday != nil {
		u.Birthday = *in.Birthday
	}
	if strings.TrimSpace(u.Name) == "" {
		u.Name = u.Login
	}
}
