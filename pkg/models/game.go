package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Game struct {
	bun.BaseModel `bun:"table:games,alias:g"`

	ID          int       `bun:",pk,nullzero" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Title       string    `bun:",nullzero" json:"title"`
	Genre       string    `bun:",nullzero" json:"genre"`
	Platform    string    `bun:",nullzero" json:"platform"`
	ReleaseDate time.Time `json:"release_date"`
	Description *string   `json:"description,omitempty"`
}
