package models

import "time"

type Group struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	IconURL     *string   `json:"iconUrl"`
	Order       int       `json:"order"`
	Enabled     bool      `json:"enabled"`
	Fav         bool      `json:"fav"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// GroupUpdate is a partial group mutation. Nil fields are left untouched.
type GroupUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Fav         *bool   `json:"fav"`
}
