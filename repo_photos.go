package blog

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	repository "github.com/goliatone/go-repository-bun"
)

// Photos is the store surface the photo service needs
type Photos interface {
	Get(ctx context.Context, id uuid.UUID) (*Photo, error)
	ListByAlbum(ctx context.Context, albumID uuid.UUID) ([]*Photo, error)
	Create(ctx context.Context, photo *Photo) (*Photo, error)
	Update(ctx context.Context, photo *Photo) (*Photo, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByAlbumTx(ctx context.Context, tx bun.IDB, albumID uuid.UUID) error
}

type photos struct {
	repository.Repository[*Photo]
	db *bun.DB
}

var _ Photos = (*photos)(nil)

func NewPhotosRepository(db *bun.DB) Photos {
	repo := repository.NewRepository[*Photo](db, repository.ModelHandlers[*Photo]{
		NewRecord: func() *Photo { return &Photo{} },
		GetID: func(p *Photo) uuid.UUID {
			if p == nil {
				return uuid.Nil
			}
			return p.ID
		},
		SetID: func(p *Photo, id uuid.UUID) {
			if p != nil {
				p.ID = id
			}
		},
	})

	return &photos{
		Repository: repo,
		db:         db,
	}
}

func (a *photos) Get(ctx context.Context, id uuid.UUID) (*Photo, error) {
	return a.Repository.GetByID(ctx, id.String())
}

func (a *photos) ListByAlbum(ctx context.Context, albumID uuid.UUID) ([]*Photo, error) {
	var records []*Photo

	err := a.db.NewSelect().
		Model(&records).
		Where("?TableAlias.album_id = ?", albumID).
		Order("pht.date_create ASC").
		Scan(ctx)

	return records, err
}

func (a *photos) Create(ctx context.Context, photo *Photo) (*Photo, error) {
	if photo.ID == uuid.Nil {
		photo.ID = uuid.New()
	}
	return a.Repository.CreateTx(ctx, a.db, photo)
}

func (a *photos) Update(ctx context.Context, photo *Photo) (*Photo, error) {
	return a.Repository.UpdateTx(ctx, a.db, photo, repository.UpdateByID(photo.ID.String()))
}

func (a *photos) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := a.db.NewDelete().
		Model((*Photo)(nil)).
		Where("?TableAlias.photo_id = ?", id).
		Exec(ctx)

	return err
}

func (a *photos) DeleteByAlbumTx(ctx context.Context, tx bun.IDB, albumID uuid.UUID) error {
	_, err := tx.NewDelete().
		Model((*Photo)(nil)).
		Where("?TableAlias.album_id = ?", albumID).
		Exec(ctx)

	return err
}
