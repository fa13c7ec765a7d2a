package blog_test

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/uptrace/bun"

	blog "github.com/projectblog/go-blog"
)

// testIdentity is a plain Identity for driving service calls
type testIdentity struct {
	id       string
	username string
	email    string
	role     blog.Role
	enabled  bool
}

func (t testIdentity) ID() string       { return t.id }
func (t testIdentity) Username() string { return t.username }
func (t testIdentity) Email() string    { return t.email }
func (t testIdentity) Role() blog.Role  { return t.role }
func (t testIdentity) Enabled() bool    { return t.enabled }

func identityContext(id uuid.UUID, role blog.Role) context.Context {
	return blog.WithIdentity(context.Background(), testIdentity{
		id:       id.String(),
		username: "actor",
		email:    "actor@example.com",
		role:     role,
		enabled:  true,
	})
}

// MockUsers implements blog.Users
type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) Get(ctx context.Context, id uuid.UUID) (*blog.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*blog.User)
	return user, args.Error(1)
}

func (m *MockUsers) GetByIdentifier(ctx context.Context, identifier string) (*blog.User, error) {
	args := m.Called(ctx, identifier)
	user, _ := args.Get(0).(*blog.User)
	return user, args.Error(1)
}

func (m *MockUsers) List(ctx context.Context, page, size int) (*blog.Page[*blog.User], error) {
	args := m.Called(ctx, page, size)
	result, _ := args.Get(0).(*blog.Page[*blog.User])
	return result, args.Error(1)
}

func (m *MockUsers) Register(ctx context.Context, user *blog.User) (*blog.User, error) {
	args := m.Called(ctx, user)
	record, _ := args.Get(0).(*blog.User)
	return record, args.Error(1)
}

func (m *MockUsers) Update(ctx context.Context, user *blog.User) (*blog.User, error) {
	args := m.Called(ctx, user)
	record, _ := args.Get(0).(*blog.User)
	return record, args.Error(1)
}

func (m *MockUsers) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPosts implements blog.Posts
type MockPosts struct {
	mock.Mock
}

func (m *MockPosts) Get(ctx context.Context, id uuid.UUID) (*blog.Post, error) {
	args := m.Called(ctx, id)
	post, _ := args.Get(0).(*blog.Post)
	return post, args.Error(1)
}

func (m *MockPosts) List(ctx context.Context, filter *blog.PostFilter, page, size int) (*blog.Page[*blog.Post], error) {
	args := m.Called(ctx, filter, page, size)
	result, _ := args.Get(0).(*blog.Page[*blog.Post])
	return result, args.Error(1)
}

func (m *MockPosts) Create(ctx context.Context, post *blog.Post) (*blog.Post, error) {
	args := m.Called(ctx, post)
	record, _ := args.Get(0).(*blog.Post)
	return record, args.Error(1)
}

func (m *MockPosts) Update(ctx context.Context, post *blog.Post) (*blog.Post, error) {
	args := m.Called(ctx, post)
	record, _ := args.Get(0).(*blog.Post)
	return record, args.Error(1)
}

func (m *MockPosts) DeleteTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

// MockComments implements blog.Comments
type MockComments struct {
	mock.Mock
}

func (m *MockComments) Get(ctx context.Context, id uuid.UUID) (*blog.Comment, error) {
	args := m.Called(ctx, id)
	comment, _ := args.Get(0).(*blog.Comment)
	return comment, args.Error(1)
}

func (m *MockComments) ListByPost(ctx context.Context, postID uuid.UUID) ([]*blog.Comment, error) {
	args := m.Called(ctx, postID)
	comments, _ := args.Get(0).([]*blog.Comment)
	return comments, args.Error(1)
}

func (m *MockComments) Create(ctx context.Context, comment *blog.Comment) (*blog.Comment, error) {
	args := m.Called(ctx, comment)
	record, _ := args.Get(0).(*blog.Comment)
	return record, args.Error(1)
}

func (m *MockComments) Update(ctx context.Context, comment *blog.Comment) (*blog.Comment, error) {
	args := m.Called(ctx, comment)
	record, _ := args.Get(0).(*blog.Comment)
	return record, args.Error(1)
}

func (m *MockComments) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockComments) DeleteByPostTx(ctx context.Context, tx bun.IDB, postID uuid.UUID) error {
	args := m.Called(ctx, tx, postID)
	return args.Error(0)
}

// MockAlbums implements blog.Albums
type MockAlbums struct {
	mock.Mock
}

func (m *MockAlbums) Get(ctx context.Context, id uuid.UUID) (*blog.Album, error) {
	args := m.Called(ctx, id)
	album, _ := args.Get(0).(*blog.Album)
	return album, args.Error(1)
}

func (m *MockAlbums) List(ctx context.Context, filter *blog.AlbumFilter, page, size int) (*blog.Page[*blog.Album], error) {
	args := m.Called(ctx, filter, page, size)
	result, _ := args.Get(0).(*blog.Page[*blog.Album])
	return result, args.Error(1)
}

func (m *MockAlbums) Create(ctx context.Context, album *blog.Album) (*blog.Album, error) {
	args := m.Called(ctx, album)
	record, _ := args.Get(0).(*blog.Album)
	return record, args.Error(1)
}

func (m *MockAlbums) Update(ctx context.Context, album *blog.Album) (*blog.Album, error) {
	args := m.Called(ctx, album)
	record, _ := args.Get(0).(*blog.Album)
	return record, args.Error(1)
}

func (m *MockAlbums) DeleteTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

// MockPhotos implements blog.Photos
type MockPhotos struct {
	mock.Mock
}

func (m *MockPhotos) Get(ctx context.Context, id uuid.UUID) (*blog.Photo, error) {
	args := m.Called(ctx, id)
	photo, _ := args.Get(0).(*blog.Photo)
	return photo, args.Error(1)
}

func (m *MockPhotos) ListByAlbum(ctx context.Context, albumID uuid.UUID) ([]*blog.Photo, error) {
	args := m.Called(ctx, albumID)
	photos, _ := args.Get(0).([]*blog.Photo)
	return photos, args.Error(1)
}

func (m *MockPhotos) Create(ctx context.Context, photo *blog.Photo) (*blog.Photo, error) {
	args := m.Called(ctx, photo)
	record, _ := args.Get(0).(*blog.Photo)
	return record, args.Error(1)
}

func (m *MockPhotos) Update(ctx context.Context, photo *blog.Photo) (*blog.Photo, error) {
	args := m.Called(ctx, photo)
	record, _ := args.Get(0).(*blog.Photo)
	return record, args.Error(1)
}

func (m *MockPhotos) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPhotos) DeleteByAlbumTx(ctx context.Context, tx bun.IDB, albumID uuid.UUID) error {
	args := m.Called(ctx, tx, albumID)
	return args.Error(0)
}

// MockRepos implements blog.RepositoryManager over the store mocks.
// RunInTx executes the callback directly, mocked stores ignore the tx.
type MockRepos struct {
	users    *MockUsers
	posts    *MockPosts
	comments *MockComments
	albums   *MockAlbums
	photos   *MockPhotos
}

func NewMockRepos() *MockRepos {
	return &MockRepos{
		users:    &MockUsers{},
		posts:    &MockPosts{},
		comments: &MockComments{},
		albums:   &MockAlbums{},
		photos:   &MockPhotos{},
	}
}

func (m *MockRepos) Validate() error { return nil }
func (m *MockRepos) MustValidate()   {}

func (m *MockRepos) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	return f(ctx, bun.Tx{})
}

func (m *MockRepos) Users() blog.Users       { return m.users }
func (m *MockRepos) Posts() blog.Posts       { return m.posts }
func (m *MockRepos) Comments() blog.Comments { return m.comments }
func (m *MockRepos) Albums() blog.Albums     { return m.albums }
func (m *MockRepos) Photos() blog.Photos     { return m.photos }

// MockIdentityProvider implements blog.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) VerifyIdentity(ctx context.Context, username, password string) (blog.Identity, error) {
	args := m.Called(ctx, username, password)
	identity, _ := args.Get(0).(blog.Identity)
	return identity, args.Error(1)
}

func (m *MockIdentityProvider) FindIdentityByIdentifier(ctx context.Context, username string) (blog.Identity, error) {
	args := m.Called(ctx, username)
	identity, _ := args.Get(0).(blog.Identity)
	return identity, args.Error(1)
}

// MockTokenService implements blog.TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) IssuePair(identity blog.Identity) (*blog.TokenPair, error) {
	args := m.Called(identity)
	pair, _ := args.Get(0).(*blog.TokenPair)
	return pair, args.Error(1)
}

func (m *MockTokenService) Validate(tokenString string) (blog.AuthClaims, error) {
	args := m.Called(tokenString)
	claims, _ := args.Get(0).(blog.AuthClaims)
	return claims, args.Error(1)
}
