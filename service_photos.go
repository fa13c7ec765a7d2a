package blog

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	repository "github.com/goliatone/go-repository-bun"
)

// CreatePhotoRequest is the payload to add a photo to an album
type CreatePhotoRequest struct {
	AlbumID string `json:"albumId"`
	Image   []byte `json:"image"`
}

func (r CreatePhotoRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.AlbumID, validation.Required, is.UUID),
		validation.Field(&r.Image, validation.Required),
	)
}

// UpdatePhotoRequest is the payload to replace a photo's image
type UpdatePhotoRequest struct {
	ID    string `json:"photoId"`
	Image []byte `json:"image"`
}

func (r UpdatePhotoRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required, is.UUID),
		validation.Field(&r.Image, validation.Required),
	)
}

// PhotoService implements album photos. Ownership follows the album
// the photo belongs to.
type PhotoService struct {
	repos  RepositoryManager
	logger Logger
}

func NewPhotoService(repos RepositoryManager) *PhotoService {
	return &PhotoService{
		repos:  repos,
		logger: defLogger{},
	}
}

func (s *PhotoService) WithLogger(l Logger) *PhotoService {
	if l != nil {
		s.logger = l
	}
	return s
}

// Create adds a photo to an album the actor owns
func (s *PhotoService) Create(ctx context.Context, req CreatePhotoRequest) (*Photo, error) {
	if err := req.Validate(); err != nil {
		return nil, invalidPayload(err)
	}

	actor, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	albumID, err := parseUUID("album", req.AlbumID)
	if err != nil {
		return nil, err
	}

	album, err := s.repos.Albums().Get(ctx, albumID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, NewResourceNotFound("Album", req.AlbumID)
		}
		return nil, err
	}

	if !isSelf(actor, album.UserID) {
		return nil, NewBusinessError("cannot create photo in album of another user")
	}

	photo := &Photo{
		AlbumID: album.ID,
		Image:   req.Image,
	}

	return s.repos.Photos().Create(ctx, photo)
}

// Update replaces the image of a photo in an album the actor owns,
// admins can edit any photo
func (s *PhotoService) Update(ctx context.Context, req UpdatePhotoRequest) (*Photo, error) {
	if err := req.Validate(); err != nil {
		return nil, invalidPayload(err)
	}

	actor, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	photo, album, err := s.loadPhotoWithAlbum(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if !canModify(actor, album.UserID) {
		return nil, NewBusinessError("cannot update photo of another user")
	}

	photo.Image = req.Image

	now := time.Now()
	photo.DateUpdate = &now

	return s.repos.Photos().Update(ctx, photo)
}

// Delete removes a photo from an album the actor owns, admins can
// remove any photo
func (s *PhotoService) Delete(ctx context.Context, id string) error {
	actor, err := requireIdentity(ctx)
	if err != nil {
		return err
	}

	photo, album, err := s.loadPhotoWithAlbum(ctx, id)
	if err != nil {
		return err
	}

	if !canModify(actor, album.UserID) {
		return NewBusinessError("cannot delete photo of another user")
	}

	return s.repos.Photos().Delete(ctx, photo.ID)
}

func (s *PhotoService) loadPhotoWithAlbum(ctx context.Context, id string) (*Photo, *Album, error) {
	photoID, err := parseUUID("photo", id)
	if err != nil {
		return nil, nil, err
	}

	photo, err := s.repos.Photos().Get(ctx, photoID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil, NewResourceNotFound("Photo", id)
		}
		return nil, nil, err
	}

	album, err := s.repos.Albums().Get(ctx, photo.AlbumID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil, NewResourceNotFound("Album", photo.AlbumID.String())
		}
		return nil, nil, err
	}

	return photo, album, nil
}
