package blog

import (
	"context"

	"github.com/uptrace/bun"
)

// CreateSchema creates the tables if they are missing. The server is
// the only writer, so a create-if-not-exists pass at boot is enough.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*User)(nil),
		(*Post)(nil),
		(*Comment)(nil),
		(*Album)(nil),
		(*Photo)(nil),
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
	}

	return nil
}
