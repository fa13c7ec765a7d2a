package blog

import (
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-router"
)

// APIController wires the domain services to the HTTP surface
type APIController struct {
	Logger   Logger
	Auth     Authenticator
	Users    *UserService
	Posts    *PostService
	Comments *CommentService
	Albums   *AlbumService
	Photos   *PhotoService
}

type APIControllerOption func(*APIController) *APIController

func NewAPIController(opts ...APIControllerOption) *APIController {
	c := &APIController{
		Logger: defLogger{},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Auth == nil {
		panic("Missing Authenticator in API controller...")
	}

	if c.Users == nil || c.Posts == nil || c.Comments == nil || c.Albums == nil || c.Photos == nil {
		panic("Missing services in API controller...")
	}

	return c
}

// RegisterRoutes mounts the whole /v1 surface. The auth middleware
// runs on every route, guards enforce the per route policy.
func RegisterRoutes[T any](app router.Router[T], c *APIController, contextKey string) {
	authed := RequireAuthenticated(contextKey)

	app.Get("/healthz", c.Health).SetName("healthz")

	app.Post("/v1/auth/login", c.Login).SetName("auth.login")

	app.Get("/v1/users/", c.UserList, authed).SetName("users.list")
	app.Get("/v1/users/:id", c.UserShow, authed).SetName("users.show")
	app.Post("/v1/users/register", c.UserRegister).SetName("users.register")
	app.Put("/v1/users/update", c.UserUpdate, authed).SetName("users.update")
	app.Delete("/v1/users/:id", c.UserDelete, authed).SetName("users.delete")

	app.Get("/v1/posts/", c.PostList).SetName("posts.list")
	app.Get("/v1/posts/:id", c.PostShow).SetName("posts.show")
	app.Post("/v1/posts/register", c.PostRegister, authed).SetName("posts.register")
	app.Put("/v1/posts/update", c.PostUpdate, authed).SetName("posts.update")
	app.Delete("/v1/posts/:id", c.PostDelete, authed).SetName("posts.delete")

	app.Get("/v1/albums/", c.AlbumList).SetName("albums.list")
	app.Get("/v1/albums/:id", c.AlbumShow).SetName("albums.show")
	app.Post("/v1/albums/register", c.AlbumRegister, authed).SetName("albums.register")
	app.Put("/v1/albums/update", c.AlbumUpdate, authed).SetName("albums.update")
	app.Delete("/v1/albums/:id", c.AlbumDelete, authed).SetName("albums.delete")

	app.Post("/v1/photos/register", c.PhotoRegister, authed).SetName("photos.register")
	app.Put("/v1/photos/update", c.PhotoUpdate, authed).SetName("photos.update")
	app.Delete("/v1/photos/:id", c.PhotoDelete, authed).SetName("photos.delete")

	app.Post("/v1/comments/register", c.CommentRegister, authed).SetName("comments.register")
	app.Put("/v1/comments/update", c.CommentUpdate, authed).SetName("comments.update")
	app.Delete("/v1/comments/:id", c.CommentDelete, authed).SetName("comments.delete")
}

func (a *APIController) Health(ctx router.Context) error {
	return ctx.JSON(router.StatusOK, map[string]string{"status": "ok"})
}

// LoginRequest payload
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

func (a *APIController) Login(ctx router.Context) error {
	payload := new(LoginRequest)

	if err := ctx.Bind(payload); err != nil {
		return RespondError(ctx, invalidPayload(err))
	}

	if err := payload.Validate(); err != nil {
		return RespondError(ctx, invalidPayload(err))
	}

	pair, err := a.Auth.Login(ctx.Context(), payload.Username, payload.Password)
	if err != nil {
		a.Logger.Warn("login failed for %q: %v", payload.Username, err)
		return RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, pair)
}

func (a *APIController) UserList(ctx router.Context) error {
	page, size := pageParams(ctx)

	result, err := a.Users.List(ctx.Context(), page, size)
	if err != nil {
		return RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, result)
}

func (a *APIController) UserShow(ctx router.Context) error {
	user, err := a.Users.Get(ctx.Context(), ctx.Param("id"))
	if err != nil {
		return RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, user)
}

func (a *APIController) UserRegister(ctx router.Context) error {
	payload := new(RegisterUserRequest)

	if err := ctx.Bind(payload); err != nil {
		return RespondError(ctx, invalidPayload(err))
	}

	user, err := a.Users.Register(ctx.Context(), *payload)
	if err != nil {
		return RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusCreated, user)
}

func (a *APIController) UserUpdate(ctx router.Context) error {
	payload := new(UpdateUserRequest)

	if err := ctx.Bind(payload); err != nil {
		return RespondError(ctx, invalidPayload(err))
	}

	user, err := a.Users.Update(ctx.Context(), *payload)
	if err != nil {
		return RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, user)
}

func (a *APIController) UserDelete(ctx router.Context) error {
	if err := a.Users.Delete(ctx.Context(), ctx.Param("id")); err != nil {
		return RespondError(ctx, err)
	}

	return ctx.Status(router.StatusNoContent).SendString("")
}

func (a *APIController) PostList(ctx router.Context) error {
	page, size := pageParams(ctx)
	filter := postFilterFromQuery(ctx)

	result, err := a.Posts.List(ctx.Context(), filter, page, size)
	if err != nil {
		return RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, result)
}

func (a *APIController) PostShow(ctx router.Context) error {
	post, err := a.Posts.Get(ctx.Context(), ctx.Param("id"))
	if err != nil {
		return RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, post)
}

func (a *APIController) PostRegister(ctx router.Context) error {
	payload := new(CreatePostRequest)

	if err := ctx.Bind(payload); err != nil {
		return RespondError(ctx, invalidPayload(err))
	}

	post, err := a.Posts.Create(ctx.Context(), *payload)
	if err != nil {
		return RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusCreated, post)
}

func (a *APIController) PostUpdate(ctx router.Context) error {
	payload := new(UpdatePostRequest)

	if err := ctx.Bind(payload); err != nil {
		return RespondError(ctx, invalidPayload(err))
	}

	post, err := a.Posts.Update(ctx.Context(), *payload)
	if err != nil {
		return RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, post)
}

func (a *APIController) PostDelete(ctx router.Context) error {
	if err := a.Posts.Delete(ctx.Context(), ctx.Param("id")); err != nil {
		return RespondError(ctx, err)
	}

	return ctx.Status(router.StatusNoContent).SendString("")
}

func (a *APIController) AlbumList(ctx router.Context) error {
	page, size := pageParams(ctx)
	filter := albumFilterFromQuery(ctx)

	result, err := a.Albums.List(ctx.Context(), filter, page, size)
	if err != nil {
		return RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, result)
}

func (a *APIController) AlbumShow(ctx router.Context) error {
	album, err := a.Albums.Get(ctx.Context(), ctx.Param("id"))
	if err != nil {
		return RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, album)
}

func (a *APIController) AlbumRegister(ctx router.Context) error {
	payload := new(CreateAlbumRequest)

	if err := ctx.Bind(payload); err != nil {
		return RespondError(ctx, invalidPayload(err))
	}

	album, err := a.Albums.Create(ctx.Context(), *payload)
	if err != nil {
		return RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusCreated, album)
}

func (a *APIController) AlbumUpdate(ctx router.Context) error {
	payload := new(UpdateAlbumRequest)

	if err := ctx.Bind(payload); err != nil {
		return RespondError(ctx, invalidPayload(err))
	}

	album, err := a.Albums.Update(ctx.Context(), *payload)
	if err != nil {
		return RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, album)
}

func (a *APIController) AlbumDelete(ctx router.Context) error {
	if err := a.Albums.Delete(ctx.Context(), ctx.Param("id")); err != nil {
		return RespondError(ctx, err)
	}

	return ctx.Status(router.StatusNoContent).SendString("")
}

func (a *APIController) PhotoRegister(ctx router.Context) error {
	payload := new(CreatePhotoRequest)

	if err := ctx.Bind(payload); err != nil {
		return RespondError(ctx, invalidPayload(err))
	}

	photo, err := a.Photos.Create(ctx.Context(), *payload)
	if err != nil {
		return RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusCreated, photo)
}

func (a *APIController) PhotoUpdate(ctx router.Context) error {
	payload := new(UpdatePhotoRequest)

	if err := ctx.Bind(payload); err != nil {
		return RespondError(ctx, invalidPayload(err))
	}

	photo, err := a.Photos.Update(ctx.Context(), *payload)
	if err != nil {
		return RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, photo)
}

func (a *APIController) PhotoDelete(ctx router.Context) error {
	if err := a.Photos.Delete(ctx.Context(), ctx.Param("id")); err != nil {
		return RespondError(ctx, err)
	}

	return ctx.Status(router.StatusNoContent).SendString("")
}

func (a *APIController) CommentRegister(ctx router.Context) error {
	payload := new(CreateCommentRequest)

	if err := ctx.Bind(payload); err != nil {
		return RespondError(ctx, invalidPayload(err))
	}

	comment, err := a.Comments.Create(ctx.Context(), *payload)
	if err != nil {
		return RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusCreated, comment)
}

func (a *APIController) CommentUpdate(ctx router.Context) error {
	payload := new(UpdateCommentRequest)

	if err := ctx.Bind(payload); err != nil {
		return RespondError(ctx, invalidPayload(err))
	}

	comment, err := a.Comments.Update(ctx.Context(), *payload)
	if err != nil {
		return RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, comment)
}

func (a *APIController) CommentDelete(ctx router.Context) error {
	if err := a.Comments.Delete(ctx.Context(), ctx.Param("id")); err != nil {
		return RespondError(ctx, err)
	}

	return ctx.Status(router.StatusNoContent).SendString("")
}

func pageParams(ctx router.Context) (page, size int) {
	page, _ = strconv.Atoi(ctx.Query("page", "0"))
	size, _ = strconv.Atoi(ctx.Query("size", "20"))

	if page < 0 {
		page = 0
	}

	if size <= 0 || size > 100 {
		size = 20
	}

	return page, size
}

func postFilterFromQuery(ctx router.Context) *PostFilter {
	return &PostFilter{
		ID:              ctx.Query("postId", ""),
		UserID:          ctx.Query("userId", ""),
		Title:           ctx.Query("title", ""),
		Description:     ctx.Query("description", ""),
		DateCreateStart: timeParam(ctx, "dateCreateStart"),
		DateCreateEnd:   timeParam(ctx, "dateCreateEnd"),
		DateUpdateStart: timeParam(ctx, "dateUpdateStart"),
		DateUpdateEnd:   timeParam(ctx, "dateUpdateEnd"),
	}
}

func albumFilterFromQuery(ctx router.Context) *AlbumFilter {
	return &AlbumFilter{
		ID:              ctx.Query("albumId", ""),
		UserID:          ctx.Query("userId", ""),
		Name:            ctx.Query("name", ""),
		DateCreateStart: timeParam(ctx, "dateCreateStart"),
		DateCreateEnd:   timeParam(ctx, "dateCreateEnd"),
		DateUpdateStart: timeParam(ctx, "dateUpdateStart"),
		DateUpdateEnd:   timeParam(ctx, "dateUpdateEnd"),
	}
}

var timeParamLayouts = []string{
	APITimeFormat,
	"2006-01-02",
	time.RFC3339,
}

func timeParam(ctx router.Context, name string) *time.Time {
	raw := ctx.Query(name, "")
	if raw == "" {
		return nil
	}

	for _, layout := range timeParamLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}

	return nil
}
