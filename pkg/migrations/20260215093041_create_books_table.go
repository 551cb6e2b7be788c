package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec(`
			CREATE TABLE books (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				create_time TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				update_time TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				bookname TEXT NOT NULL,
				author TEXT NOT NULL,
				price REAL NOT NULL CHECK (price > 0),
				publisher TEXT NOT NULL
			)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`CREATE INDEX ix_books_publisher ON books (publisher)`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`CREATE INDEX ix_books_price ON books (price)`)
		return errors.WithStack(err)
	}

	down := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec(`DROP TABLE books`)
		return errors.WithStack(err)
	}

	Migrations.MustRegister(up, down)
}
