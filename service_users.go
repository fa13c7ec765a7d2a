package blog

import (
	"context"
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/nyaruka/phonenumbers"
)

// RegisterUserRequest is the payload to create a user account
type RegisterUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func (r RegisterUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(3, 50)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Phone, validation.By(validPhone)),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 72)),
	)
}

// UpdateUserRequest is the payload to update a user account. Zero
// valued fields keep their stored value.
type UpdateUserRequest struct {
	ID       string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func (r UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required, is.UUID),
		validation.Field(&r.Username, validation.Length(3, 50)),
		validation.Field(&r.Email, is.Email),
		validation.Field(&r.Phone, validation.By(validPhone)),
		validation.Field(&r.Password, validation.Length(6, 72)),
	)
}

// UserService implements account management
type UserService struct {
	repos  RepositoryManager
	logger Logger
}

func NewUserService(repos RepositoryManager) *UserService {
	return &UserService{
		repos:  repos,
		logger: defLogger{},
	}
}

func (s *UserService) WithLogger(l Logger) *UserService {
	if l != nil {
		s.logger = l
	}
	return s
}

// Register creates a new account. Registration is open, new accounts
// always start as enabled regular users.
func (s *UserService) Register(ctx context.Context, req RegisterUserRequest) (*User, error) {
	req.Username = normalizeUsername(req.Username)

	if err := req.Validate(); err != nil {
		return nil, invalidPayload(err)
	}

	if err := s.ensureIdentifierFree(ctx, req.Username); err != nil {
		return nil, err
	}

	if err := s.ensureIdentifierFree(ctx, req.Email); err != nil {
		return nil, err
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		Username:     req.Username,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		Enabled:      true,
		Role:         RoleUser,
	}

	created, err := s.repos.Users().Register(ctx, user)
	if err != nil {
		s.logger.Error("UserService register failed: %v", err)
		return nil, err
	}

	return created, nil
}

// Get loads a user by id. Users can see themselves, admins can see
// anyone.
func (s *UserService) Get(ctx context.Context, id string) (*User, error) {
	actor, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	userID, err := parseUUID("user", id)
	if err != nil {
		return nil, err
	}

	user, err := s.repos.Users().Get(ctx, userID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, NewResourceNotFound("User", id)
		}
		return nil, err
	}

	if !canModify(actor, user.ID) {
		return nil, ErrForbidden
	}

	return user, nil
}

// List pages through all users
func (s *UserService) List(ctx context.Context, page, size int) (*Page[*User], error) {
	return s.repos.Users().List(ctx, page, size)
}

// Update changes account details. Users can update themselves, admins
// can update anyone.
func (s *UserService) Update(ctx context.Context, req UpdateUserRequest) (*User, error) {
	req.Username = normalizeUsername(req.Username)

	if err := req.Validate(); err != nil {
		return nil, invalidPayload(err)
	}

	actor, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	userID, err := parseUUID("user", req.ID)
	if err != nil {
		return nil, err
	}

	user, err := s.repos.Users().Get(ctx, userID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, NewResourceNotFound("User", req.ID)
		}
		return nil, err
	}

	if !canModify(actor, user.ID) {
		return nil, NewBusinessError("cannot update another user")
	}

	if req.Username != "" && req.Username != user.Username {
		if err := s.ensureIdentifierFree(ctx, req.Username); err != nil {
			return nil, err
		}
		user.Username = req.Username
	}

	if req.Email != "" && req.Email != user.Email {
		if err := s.ensureIdentifierFree(ctx, req.Email); err != nil {
			return nil, err
		}
		user.Email = req.Email
	}

	if req.Phone != "" {
		user.Phone = req.Phone
	}

	if req.Password != "" {
		hash, err := HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	now := time.Now()
	user.DateUpdate = &now

	return s.repos.Users().Update(ctx, user)
}

// Delete removes an account and is restricted to admins at the route
// level. A user may also remove their own account.
func (s *UserService) Delete(ctx context.Context, id string) error {
	actor, err := requireIdentity(ctx)
	if err != nil {
		return err
	}

	userID, err := parseUUID("user", id)
	if err != nil {
		return err
	}

	user, err := s.repos.Users().Get(ctx, userID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return NewResourceNotFound("User", id)
		}
		return err
	}

	if !canModify(actor, user.ID) {
		return NewBusinessError("cannot delete another user")
	}

	return s.repos.Users().Delete(ctx, user.ID)
}

func (s *UserService) ensureIdentifierFree(ctx context.Context, identifier string) error {
	_, err := s.repos.Users().GetByIdentifier(ctx, identifier)
	if err == nil {
		return NewBusinessError("there is already a user registered with " + identifier)
	}

	if repository.IsRecordNotFound(err) {
		return nil
	}

	return err
}

// normalizeUsername keeps usernames lowercase so lookups and the token
// subject never disagree on casing.
func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// validPhone accepts empty values, anything else has to parse as an
// international phone number.
func validPhone(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}

	num, err := phonenumbers.Parse(s, "")
	if err != nil {
		return err
	}

	if !phonenumbers.IsValidNumber(num) {
		return errors.New("must be a valid phone number")
	}

	return nil
}
