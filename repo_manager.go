package blog

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/uptrace/bun"

	repository "github.com/goliatone/go-repository-bun"
)

// RepositoryManager exposes all repositories
type RepositoryManager interface {
	repository.Validator
	repository.TransactionManager
	Users() Users
	Posts() Posts
	Comments() Comments
	Albums() Albums
	Photos() Photos
}

type mngr struct {
	db       *bun.DB
	users    Users
	posts    Posts
	comments Comments
	albums   Albums
	photos   Photos
}

func NewRepositoryManager(db *bun.DB) RepositoryManager {
	return &mngr{
		db:       db,
		users:    NewUsersRepository(db),
		posts:    NewPostsRepository(db),
		comments: NewCommentsRepository(db),
		albums:   NewAlbumsRepository(db),
		photos:   NewPhotosRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.users == nil {
		return errors.New("repository users should be initialized")
	}

	if m.posts == nil {
		return errors.New("repository posts should be initialized")
	}

	if m.comments == nil {
		return errors.New("repository comments should be initialized")
	}

	if m.albums == nil {
		return errors.New("repository albums should be initialized")
	}

	if m.photos == nil {
		return errors.New("repository photos should be initialized")
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Users() Users {
	return m.users
}

func (m mngr) Posts() Posts {
	return m.posts
}

func (m mngr) Comments() Comments {
	return m.comments
}

func (m mngr) Albums() Albums {
	return m.albums
}

func (m mngr) Photos() Photos {
	return m.photos
}
