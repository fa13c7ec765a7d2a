package blog

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	repository "github.com/goliatone/go-repository-bun"
)

// Posts is the store surface the post service needs
type Posts interface {
	Get(ctx context.Context, id uuid.UUID) (*Post, error)
	List(ctx context.Context, filter *PostFilter, page, size int) (*Page[*Post], error)
	Create(ctx context.Context, post *Post) (*Post, error)
	Update(ctx context.Context, post *Post) (*Post, error)
	DeleteTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error
}

type posts struct {
	repository.Repository[*Post]
	db *bun.DB
}

var _ Posts = (*posts)(nil)

func NewPostsRepository(db *bun.DB) Posts {
	repo := repository.NewRepository[*Post](db, repository.ModelHandlers[*Post]{
		NewRecord: func() *Post { return &Post{} },
		GetID: func(p *Post) uuid.UUID {
			if p == nil {
				return uuid.Nil
			}
			return p.ID
		},
		SetID: func(p *Post, id uuid.UUID) {
			if p != nil {
				p.ID = id
			}
		},
	})

	return &posts{
		Repository: repo,
		db:         db,
	}
}

func (a *posts) Get(ctx context.Context, id uuid.UUID) (*Post, error) {
	return a.Repository.GetByID(ctx, id.String())
}

func (a *posts) List(ctx context.Context, filter *PostFilter, page, size int) (*Page[*Post], error) {
	var records []*Post

	q := a.db.NewSelect().
		Model(&records).
		Order("pst.date_create DESC")

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

	return &Page[*Post]{
		Content:       records,
		Page:          page,
		Size:          size,
		TotalElements: total,
	}, nil
}

func (a *posts) Create(ctx context.Context, post *Post) (*Post, error) {
	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}
	return a.Repository.CreateTx(ctx, a.db, post)
}

func (a *posts) Update(ctx context.Context, post *Post) (*Post, error) {
	return a.Repository.UpdateTx(ctx, a.db, post, repository.UpdateByID(post.ID.String()))
}

// DeleteTx removes the post. Callers delete dependent comments in the
// same transaction.
func (a *posts) DeleteTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error {
	_, err := tx.NewDelete().
		Model((*Post)(nil)).
		Where("?TableAlias.post_id = ?", id).
		Exec(ctx)

	return err
}
