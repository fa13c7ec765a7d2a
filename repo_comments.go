package blog

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	repository "github.com/goliatone/go-repository-bun"
)

// Comments is the store surface the comment service needs
type Comments interface {
	Get(ctx context.Context, id uuid.UUID) (*Comment, error)
	ListByPost(ctx context.Context, postID uuid.UUID) ([]*Comment, error)
	Create(ctx context.Context, comment *Comment) (*Comment, error)
	Update(ctx context.Context, comment *Comment) (*Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByPostTx(ctx context.Context, tx bun.IDB, postID uuid.UUID) error
}

type comments struct {
	repository.Repository[*Comment]
	db *bun.DB
}

var _ Comments = (*comments)(nil)

func NewCommentsRepository(db *bun.DB) Comments {
	repo := repository.NewRepository[*Comment](db, repository.ModelHandlers[*Comment]{
		NewRecord: func() *Comment { return &Comment{} },
		GetID: func(c *Comment) uuid.UUID {
			if c == nil {
				return uuid.Nil
			}
			return c.ID
		},
		SetID: func(c *Comment, id uuid.UUID) {
			if c != nil {
				c.ID = id
			}
		},
	})

	return &comments{
		Repository: repo,
		db:         db,
	}
}

func (a *comments) Get(ctx context.Context, id uuid.UUID) (*Comment, error) {
	return a.Repository.GetByID(ctx, id.String())
}

func (a *comments) ListByPost(ctx context.Context, postID uuid.UUID) ([]*Comment, error) {
	var records []*Comment

	err := a.db.NewSelect().
		Model(&records).
		Where("?TableAlias.post_id = ?", postID).
		Order("cmt.date_create ASC").
		Scan(ctx)

	return records, err
}

func (a *comments) Create(ctx context.Context, comment *Comment) (*Comment, error) {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	return a.Repository.CreateTx(ctx, a.db, comment)
}

func (a *comments) Update(ctx context.Context, comment *Comment) (*Comment, error) {
	return a.Repository.UpdateTx(ctx, a.db, comment, repository.UpdateByID(comment.ID.String()))
}

func (a *comments) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := a.db.NewDelete().
		Model((*Comment)(nil)).
		Where("?TableAlias.comment_id = ?", id).
		Exec(ctx)

	return err
}

func (a *comments) DeleteByPostTx(ctx context.Context, tx bun.IDB, postID uuid.UUID) error {
	_, err := tx.NewDelete().
		Model((*Comment)(nil)).
		Where("?TableAlias.post_id = ?", postID).
		Exec(ctx)

	return err
}
