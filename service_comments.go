package blog

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	repository "github.com/goliatone/go-repository-bun"
)

// CreateCommentRequest is the payload to comment on a post
type CreateCommentRequest struct {
	PostID      string `json:"postId"`
	UserID      string `json:"userId"`
	Observation string `json:"observation"`
}

func (r CreateCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PostID, validation.Required, is.UUID),
		validation.Field(&r.UserID, validation.Required, is.UUID),
		validation.Field(&r.Observation, validation.Required, validation.Length(1, 500)),
	)
}

// UpdateCommentRequest is the payload to edit a comment
type UpdateCommentRequest struct {
	ID          string `json:"commentId"`
	Observation string `json:"observation"`
}

func (r UpdateCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required, is.UUID),
		validation.Field(&r.Observation, validation.Required, validation.Length(1, 500)),
	)
}

// CommentService implements post comments
type CommentService struct {
	repos  RepositoryManager
	logger Logger
}

func NewCommentService(repos RepositoryManager) *CommentService {
	return &CommentService{
		repos:  repos,
		logger: defLogger{},
	}
}

func (s *CommentService) WithLogger(l Logger) *CommentService {
	if l != nil {
		s.logger = l
	}
	return s
}

// Create comments on an existing post under the authenticated user
func (s *CommentService) Create(ctx context.Context, req CreateCommentRequest) (*Comment, error) {
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
		return nil, NewBusinessError("cannot create comment using another user")
	}

	postID, err := parseUUID("post", req.PostID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repos.Posts().Get(ctx, postID); err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, NewResourceNotFound("Post", req.PostID)
		}
		return nil, err
	}

	comment := &Comment{
		PostID:      postID,
		UserID:      userID,
		Observation: req.Observation,
	}

	return s.repos.Comments().Create(ctx, comment)
}

// Update edits a comment owned by the actor, admins can edit any
func (s *CommentService) Update(ctx context.Context, req UpdateCommentRequest) (*Comment, error) {
	if err := req.Validate(); err != nil {
		return nil, invalidPayload(err)
	}

	actor, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	commentID, err := parseUUID("comment", req.ID)
	if err != nil {
		return nil, err
	}

	comment, err := s.repos.Comments().Get(ctx, commentID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, NewResourceNotFound("Comment", req.ID)
		}
		return nil, err
	}

	if !canModify(actor, comment.UserID) {
		return nil, NewBusinessError("cannot update comment of another user")
	}

	comment.Observation = req.Observation

	now := time.Now()
	comment.DateUpdate = &now

	return s.repos.Comments().Update(ctx, comment)
}

// Delete removes a comment owned by the actor, admins can remove any
func (s *CommentService) Delete(ctx context.Context, id string) error {
	actor, err := requireIdentity(ctx)
	if err != nil {
		return err
	}

	commentID, err := parseUUID("comment", id)
	if err != nil {
		return err
	}

	comment, err := s.repos.Comments().Get(ctx, commentID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return NewResourceNotFound("Comment", id)
		}
		return err
	}

	if !canModify(actor, comment.UserID) {
		return NewBusinessError("cannot delete comment of another user")
	}

	return s.repos.Comments().Delete(ctx, comment.ID)
}
