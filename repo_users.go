package blog

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	repository "github.com/goliatone/go-repository-bun"
)

// Users is the store surface the user service and the auth stack need
type Users interface {
	Get(ctx context.Context, id uuid.UUID) (*User, error)
	GetByIdentifier(ctx context.Context, identifier string) (*User, error)
	List(ctx context.Context, page, size int) (*Page[*User], error)
	Register(ctx context.Context, user *User) (*User, error)
	Update(ctx context.Context, user *User) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type users struct {
	repository.Repository[*User]
	db *bun.DB
}

var (
	_ Users      = (*users)(nil)
	_ UserFinder = (*users)(nil)
)

func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
		GetIdentifier: func() string {
			return "username"
		},
	})

	return &users{
		Repository: repo,
		db:         db,
	}
}

func (a *users) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return a.Repository.GetByID(ctx, id.String())
}

// GetByIdentifier resolves a user by username or email, trying the
// most specific column first.
func (a *users) GetByIdentifier(ctx context.Context, identifier string) (*User, error) {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return nil, repository.NewRecordNotFound()
	}

	columns := []string{"username"}
	if isEmail(trimmed) {
		columns = []string{"email", "username"}
	}

	for _, column := range columns {
		record := &User{}
		err := a.db.NewSelect().
			Model(record).
			Where(fmt.Sprintf("?TableAlias.%s = ?", column), trimmed).
			Limit(1).
			Scan(ctx)

		if err != nil {
			if repository.IsRecordNotFound(err) {
				continue
			}
			return nil, err
		}

		return record, nil
	}

	return nil, repository.NewRecordNotFound().
		WithMetadata(map[string]any{
			"identifier": identifier,
		})
}

func (a *users) List(ctx context.Context, page, size int) (*Page[*User], error) {
	var records []*User

	q := a.db.NewSelect().
		Model(&records).
		Order("usr.date_create DESC")

	if size > 0 {
		q = q.Limit(size).Offset(page * size)
	}

	total, err := q.ScanAndCount(ctx)
	if err != nil {
		return nil, err
	}

	return &Page[*User]{
		Content:       records,
		Page:          page,
		Size:          size,
		TotalElements: total,
	}, nil
}

func (a *users) Register(ctx context.Context, user *User) (*User, error) {
	prepareUserDefaults(user)
	return a.Repository.CreateTx(ctx, a.db, user)
}

func (a *users) Update(ctx context.Context, user *User) (*User, error) {
	return a.Repository.UpdateTx(ctx, a.db, user, repository.UpdateByID(user.ID.String()))
}

func (a *users) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := a.db.NewDelete().
		Model((*User)(nil)).
		Where("?TableAlias.user_id = ?", id).
		Exec(ctx)

	return err
}

func prepareUserDefaults(record *User) {
	if record == nil {
		return
	}

	if record.Role == "" {
		record.Role = RoleUser
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}

func isEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}
