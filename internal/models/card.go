package models

import "time"

type Card struct {
	ID        int64     `json:"id"`
	English   string    `json:"english"`
	Spanish   string    `json:"spanish"`
	ImageURL  *string   `json:"imageUrl"`
	GroupID   int64     `json:"groupId"`
	Order     int       `json:"order"`
	Enabled   bool      `json:"enabled"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CardFilter narrows card queries. Zero values mean "no restriction";
// Enabled is a pointer so that filtering on enabled=false stays distinct
// from not filtering at all.
type CardFilter struct {
	GroupID int64
	Enabled *bool
	Search  string
}

// CardUpdate is a partial card mutation. Nil fields are left untouched.
type CardUpdate struct {
	English  *string   `json:"english"`
	Spanish  *string   `json:"spanish"`
	ImageURL *string   `json:"imageUrl"`
	GroupID  *int64    `json:"groupId"`
	Order    *int      `json:"order"`
	Enabled  *bool     `json:"enabled"`
	Tags     *[]string `json:"tags"`
}

// PageMeta describes one page of a paginated card listing.
type PageMeta struct {
	Page     int  `json:"page"`
	Limit    int  `json:"limit"`
	Total    int  `json:"total"`
	Pages    int  `json:"pages"`
	Shuffled bool `json:"shuffled"`
}

// SampleMeta describes an unpaginated random sample.
type SampleMeta struct {
	Count   int  `json:"count"`
	Sampled bool `json:"sampled"`
}
