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

// CreatePostRequest is the payload to publish a post
type CreatePostRequest struct {
	UserID      string `json:"userId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       []byte `json:"image"`
}

func (r CreatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.Required, is.UUID),
		validation.Field(&r.Title, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Description, validation.Required),
		validation.Field(&r.Image, validation.Required),
	)
}

// UpdatePostRequest is the payload to edit a post. Zero valued fields
// keep their stored value.
type UpdatePostRequest struct {
	ID          string `json:"postId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       []byte `json:"image"`
}

func (r UpdatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required, is.UUID),
		validation.Field(&r.Title, validation.Length(1, 100)),
	)
}

// PostDetail is a post with its comments
type PostDetail struct {
	*Post
	Comments []*Comment `json:"comments"`
}

// PostService implements post publishing
type PostService struct {
	repos  RepositoryManager
	logger Logger
}

func NewPostService(repos RepositoryManager) *PostService {
	return &PostService{
		repos:  repos,
		logger: defLogger{},
	}
}

func (s *PostService) WithLogger(l Logger) *PostService {
	if l != nil {
		s.logger = l
	}
	return s
}

// Create publishes a post. The post has to be created under the
// authenticated user, admins included.
func (s *PostService) Create(ctx context.Context, req CreatePostRequest) (*Post, error) {
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
		return nil, NewBusinessError("cannot create post using another user")
	}

	post := &Post{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
	}

	return s.repos.Posts().Create(ctx, post)
}

// Get loads a post with its comments. Reads are public.
func (s *PostService) Get(ctx context.Context, id string) (*PostDetail, error) {
	postID, err := parseUUID("post", id)
	if err != nil {
		return nil, err
	}

	post, err := s.repos.Posts().Get(ctx, postID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, NewResourceNotFound("Post", id)
		}
		return nil, err
	}

	comments, err := s.repos.Comments().ListByPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	return &PostDetail{Post: post, Comments: comments}, nil
}

// List pages through posts matching the filter. Reads are public.
func (s *PostService) List(ctx context.Context, filter *PostFilter, page, size int) (*Page[*Post], error) {
	return s.repos.Posts().List(ctx, filter, page, size)
}

// Update edits a post owned by the actor, admins can edit any post
func (s *PostService) Update(ctx context.Context, req UpdatePostRequest) (*Post, error) {
	if err := req.Validate(); err != nil {
		return nil, invalidPayload(err)
	}

	actor, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	postID, err := parseUUID("post", req.ID)
	if err != nil {
		return nil, err
	}

	post, err := s.repos.Posts().Get(ctx, postID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, NewResourceNotFound("Post", req.ID)
		}
		return nil, err
	}

	if !canModify(actor, post.UserID) {
		return nil, NewBusinessError("cannot update post of another user")
	}

	if req.Title != "" {
		post.Title = req.Title
	}

	if req.Description != "" {
		post.Description = req.Description
	}

	if len(req.Image) > 0 {
		post.Image = req.Image
	}

	now := time.Now()
	post.DateUpdate = &now

	return s.repos.Posts().Update(ctx, post)
}

// Delete removes a post and its comments in one transaction
func (s *PostService) Delete(ctx context.Context, id string) error {
	actor, err := requireIdentity(ctx)
	if err != nil {
		return err
	}

	postID, err := parseUUID("post", id)
	if err != nil {
		return err
	}

	post, err := s.repos.Posts().Get(ctx, postID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return NewResourceNotFound("Post", id)
		}
		return err
	}

	if !canModify(actor, post.UserID) {
		return NewBusinessError("cannot delete post of another user")
	}

	return s.repos.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if err := s.repos.Comments().DeleteByPostTx(ctx, tx, post.ID); err != nil {
			return err
		}
		return s.repos.Posts().DeleteTx(ctx, tx, post.ID)
	})
}
