package blog

import (
	"context"
	"database/sql"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// CreateAlbumRequest is the payload to create an album
type CreateAlbumRequest struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

func (r CreateAlbumRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.Required, is.UUID),
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
	)
}

// UpdateAlbumRequest is the payload to rename an album
type UpdateAlbumRequest struct {
	ID   string `json:"albumId"`
	Name string `json:"name"`
}

func (r UpdateAlbumRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required, is.UUID),
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
	)
}

// AlbumDetail is an album with its photos
type AlbumDetail struct {
	*Album
	Photos []*Photo `json:"photos"`
}

// AlbumService implements photo album management
type AlbumService struct {
	repos  RepositoryManager
	logger Logger
}

func NewAlbumService(repos RepositoryManager) *AlbumService {
	return &AlbumService{
		repos:  repos,
		logger: defLogger{},
	}
}

func (s *AlbumService) WithLogger(l Logger) *AlbumService {
	if l != nil {
		s.logger = l
	}
	return s
}

// Create creates an album under the authenticated user
func (s *AlbumService) Create(ctx context.Context, req CreateAlbumRequest) (*Album, error) {
	if err := req.Validate(); err != nil {
		return nil, invalidPayload(err)
	}

	actor, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	userID, err := parseUUID("user", req.UserID)
	if err != nil {
		return nil, err
	}

	if !isSelf(actor, userID) {
		return nil, NewBusinessError("cannot create album using another user")
	}

	album := &Album{
		UserID: userID,
		Name:   req.Name,
	}

	return s.repos.Albums().Create(ctx, album)
}

// Get loads an album with its photos. Reads are public.
func (s *AlbumService) Get(ctx context.Context, id string) (*AlbumDetail, error) {
	albumID, err := parseUUID("album", id)
	if err != nil {
		return nil, err
	}

	album, err := s.repos.Albums().Get(ctx, albumID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, NewResourceNotFound("Album", id)
		}
		return nil, err
	}

	photos, err := s.repos.Photos().ListByAlbum(ctx, album.ID)
	if err != nil {
		return nil, err
	}

	return &AlbumDetail{Album: album, Photos: photos}, nil
}

// List pages through albums matching the filter. Reads are public.
func (s *AlbumService) List(ctx context.Context, filter *AlbumFilter, page, size int) (*Page[*Album], error) {
	return s.repos.Albums().List(ctx, filter, page, size)
}

// Update renames an album owned by the actor, admins can rename any
func (s *AlbumService) Update(ctx context.Context, req UpdateAlbumRequest) (*Album, error) {
	if err := req.Validate(); err != nil {
		return nil, invalidPayload(err)
	}

	actor, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	albumID, err := parseUUID("album", req.ID)
	if err != nil {
		return nil, err
	}

	album, err := s.repos.Albums().Get(ctx, albumID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, NewResourceNotFound("Album", req.ID)
		}
		return nil, err
	}

	if !canModify(actor, album.UserID) {
		return nil, NewBusinessError("cannot update album of another user")
	}

	album.Name = req.Name

	now := time.Now()
	album.DateUpdate = &now

	return s.repos.Albums().Update(ctx, album)
}

// Delete removes an album and its photos in one transaction
func (s *AlbumService) Delete(ctx context.Context, id string) error {
	actor, err := requireIdentity(ctx)
	if err != nil {
		return err
	}

	albumID, err := parseUUID("album", id)
	if err != nil {
		return err
	}

	album, err := s.repos.Albums().Get(ctx, albumID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return NewResourceNotFound("Album", id)
		}
		return err
	}

	if !canModify(actor, album.UserID) {
		return NewBusinessError("cannot delete album of another user")
	}

	return s.repos.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if err := s.repos.Photos().DeleteByAlbumTx(ctx, tx, album.ID); err != nil {
			return err
		}
		return s.repos.Albums().DeleteTx(ctx, tx, album.ID)
	})
}
