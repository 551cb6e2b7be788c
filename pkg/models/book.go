package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Book is a single row in the catalog. The id is generated by the database
// and never changes; create_time is set once at insert and update_time is
// refreshed on every modification.
type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID        int       `bun:"id,pk,autoincrement" json:"id"`
	Name      string    `bun:"bookname,nullzero" json:"bookname"`
	Author    string    `bun:"author,nullzero" json:"author"`
	Price     float64   `bun:"price" json:"price"`
	Publisher string    `bun:"publisher,nullzero" json:"publisher"`
	CreatedAt time.Time `bun:"create_time" json:"create_time"`
	UpdatedAt time.Time `bun:"update_time" json:"update_time"`
}
