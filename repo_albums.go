package blog

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	repository "github.com/goliatone/go-repository-bun"
)

// Albums is the store surface the album service needs
type Albums interface {
	Get(ctx context.Context, id uuid.UUID) (*Album, error)
	List(ctx context.Context, filter *AlbumFilter, page, size int) (*Page[*Album], error)
	Create(ctx context.Context, album *Album) (*Album, error)
	Update(ctx context.Context, album *Album) (*Album, error)
	DeleteTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error
}

type albums struct {
	repository.Repository[*Album]
	db *bun.DB
}

var _ Albums = (*albums)(nil)

func NewAlbumsRepository(db *bun.DB) Albums {
	repo := repository.NewRepository[*Album](db, repository.ModelHandlers[*Album]{
		NewRecord: func() *Album { return &Album{} },
		GetID: func(a *Album) uuid.UUID {
			if a == nil {
				return uuid.Nil
			}
			return a.ID
		},
		SetID: func(a *Album, id uuid.UUID) {
			if a != nil {
				a.ID = id
			}
		},
	})

	return &albums{
		Repository: repo,
		db:         db,
	}
}

func (a *albums) Get(ctx context.Context, id uuid.UUID) (*Album, error) {
	return a.Repository.GetByID(ctx, id.String())
}

func (a *albums) List(ctx context.Context, filter *AlbumFilter, page, size int) (*Page[*Album], error) {
	var records []*Album

	q := a.db.NewSelect().
		Model(&records).
		Order("alb.date_create DESC")

	for _, c := range filter.Criteria() {
		q = q.Apply(c)
	}

	if size > 0 {
		q = q.Limit(size).Offset(page * size)
	}

	total, err := q.ScanAndCount(ctx)
	if err != nil {
		return nil, err
	}

	return &Page[*Album]{
		Content:       records,
		Page:          page,
		Size:          size,
		TotalElements: total,
	}, nil
}

func (a *albums) Create(ctx context.Context, album *Album) (*Album, error) {
	if album.ID == uuid.Nil {
		album.ID = uuid.New()
	}
	return a.Repository.CreateTx(ctx, a.db, album)
}

func (a *albums) Update(ctx context.Context, album *Album) (*Album, error) {
	return a.Repository.UpdateTx(ctx, a.db, album, repository.UpdateByID(album.ID.String()))
}

// DeleteTx removes the album. Callers delete dependent photos in the
// same transaction.
func (a *albums) DeleteTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error {
	_, err := tx.NewDelete().
		Model((*Album)(nil)).
		Where("?TableAlias.album_id = ?", id).
		Exec(ctx)

	return err
}
