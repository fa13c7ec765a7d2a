package blog_test

import (
	"context"
	"testing"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	blog "github.com/projectblog/go-blog"
)

func TestAlbumCreate(t *testing.T) {
	repos := NewMockRepos()
	actorID := uuid.New()

	repos.albums.On("Create", mock.Anything, mock.MatchedBy(func(a *blog.Album) bool {
		return a.UserID == actorID && a.Name == "holidays"
	})).Return(&blog.Album{ID: uuid.New(), UserID: actorID, Name: "holidays"}, nil)

	svc := blog.NewAlbumService(repos)

	album, err := svc.Create(identityContext(actorID, blog.RoleUser), blog.CreateAlbumRequest{
		UserID: actorID.String(),
		Name:   "holidays",
	})
	require.NoError(t, err)
	assert.Equal(t, "holidays", album.Name)
	repos.albums.AssertExpectations(t)
}

func TestAlbumCreateForAnotherUser(t *testing.T) {
	repos := NewMockRepos()
	svc := blog.NewAlbumService(repos)

	_, err := svc.Create(identityContext(uuid.New(), blog.RoleAdmin), blog.CreateAlbumRequest{
		UserID: uuid.New().String(),
		Name:   "holidays",
	})
	require.Error(t, err)
	assert.True(t, blog.IsBusinessError(err))
	repos.albums.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAlbumGetWithPhotos(t *testing.T) {
	repos := NewMockRepos()
	albumID := uuid.New()

	repos.albums.On("Get", mock.Anything, albumID).
		Return(&blog.Album{ID: albumID, Name: "holidays"}, nil)
	repos.photos.On("ListByAlbum", mock.Anything, albumID).
		Return([]*blog.Photo{{ID: uuid.New(), AlbumID: albumID}}, nil)

	svc := blog.NewAlbumService(repos)

	detail, err := svc.Get(context.Background(), albumID.String())
	require.NoError(t, err)
	assert.Equal(t, "holidays", detail.Name)
	assert.Len(t, detail.Photos, 1)
}

func TestAlbumUpdateByNonOwner(t *testing.T) {
	repos := NewMockRepos()
	albumID := uuid.New()

	repos.albums.On("Get", mock.Anything, albumID).
		Return(&blog.Album{ID: albumID, UserID: uuid.New(), Name: "holidays"}, nil)

	svc := blog.NewAlbumService(repos)

	_, err := svc.Update(identityContext(uuid.New(), blog.RoleUser), blog.UpdateAlbumRequest{
		ID:   albumID.String(),
		Name: "renamed",
	})
	require.Error(t, err)
	assert.True(t, blog.IsBusinessError(err))
	repos.albums.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAlbumUpdateNotFound(t *testing.T) {
	repos := NewMockRepos()
	albumID := uuid.New()

	repos.albums.On("Get", mock.Anything, albumID).
		Return(nil, repository.NewRecordNotFound())

	svc := blog.NewAlbumService(repos)

	_, err := svc.Update(identityContext(uuid.New(), blog.RoleUser), blog.UpdateAlbumRequest{
		ID:   albumID.String(),
		Name: "renamed",
	})
	require.Error(t, err)
	assert.True(t, blog.IsResourceNotFound(err))
}

func TestAlbumDeleteCascadesPhotos(t *testing.T) {
	repos := NewMockRepos()
	actorID := uuid.New()
	albumID := uuid.New()

	repos.albums.On("Get", mock.Anything, albumID).
		Return(&blog.Album{ID: albumID, UserID: actorID}, nil)
	repos.photos.On("DeleteByAlbumTx", mock.Anything, mock.Anything, albumID).Return(nil)
	repos.albums.On("DeleteTx", mock.Anything, mock.Anything, albumID).Return(nil)

	svc := blog.NewAlbumService(repos)

	err := svc.Delete(identityContext(actorID, blog.RoleUser), albumID.String())
	require.NoError(t, err)
	repos.photos.AssertExpectations(t)
	repos.albums.AssertExpectations(t)
}
