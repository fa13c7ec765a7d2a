package blog

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the user model
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"user_id,pk,nullzero,type:uuid" json:"userId,omitempty"`
	Username      string     `bun:"username,notnull,unique" json:"username,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	Phone         string     `bun:"phone_number" json:"phone,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	Enabled       bool       `bun:"enabled,notnull" json:"enabled"`
	Role          Role       `bun:"role,notnull" json:"role,omitempty"`
	DateCreate    *time.Time `bun:"date_create,nullzero,default:current_timestamp" json:"dateCreate,omitempty"`
	DateUpdate    *time.Time `bun:"date_update,nullzero,default:current_timestamp" json:"dateUpdate,omitempty"`
}

// Post is the post model. Children (comments) are loaded by explicit
// query, never through a lazy relation.
type Post struct {
	bun.BaseModel `bun:"table:posts,alias:pst"`
	ID            uuid.UUID  `bun:"post_id,pk,nullzero,type:uuid" json:"postId,omitempty"`
	UserID        uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"userId,omitempty"`
	Title         string     `bun:"title,notnull" json:"title,omitempty"`
	Description   string     `bun:"description,notnull" json:"description,omitempty"`
	Image         []byte     `bun:"image,notnull" json:"image,omitempty"`
	DateCreate    *time.Time `bun:"date_create,nullzero,default:current_timestamp" json:"dateCreate,omitempty"`
	DateUpdate    *time.Time `bun:"date_update,nullzero,default:current_timestamp" json:"dateUpdate,omitempty"`
}

// Comment is the comment model
type Comment struct {
	bun.BaseModel `bun:"table:comments,alias:cmt"`
	ID            uuid.UUID  `bun:"comment_id,pk,nullzero,type:uuid" json:"commentId,omitempty"`
	PostID        uuid.UUID  `bun:"post_id,notnull,type:uuid" json:"postId,omitempty"`
	UserID        uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"userId,omitempty"`
	Observation   string     `bun:"observation,notnull" json:"observation,omitempty"`
	DateCreate    *time.Time `bun:"date_create,nullzero,default:current_timestamp" json:"dateCreate,omitempty"`
	DateUpdate    *time.Time `bun:"date_update,nullzero,default:current_timestamp" json:"dateUpdate,omitempty"`
}

// Album is the album model
type Album struct {
	bun.BaseModel `bun:"table:albums,alias:alb"`
	ID            uuid.UUID  `bun:"album_id,pk,nullzero,type:uuid" json:"albumId,omitempty"`
	UserID        uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"userId,omitempty"`
	Name          string     `bun:"name,notnull" json:"name,omitempty"`
	DateCreate    *time.Time `bun:"date_create,nullzero,default:current_timestamp" json:"dateCreate,omitempty"`
	DateUpdate    *time.Time `bun:"date_update,nullzero,default:current_timestamp" json:"dateUpdate,omitempty"`
}

// Photo is the photo model
type Photo struct {
	bun.BaseModel `bun:"table:photos,alias:pht"`
	ID            uuid.UUID  `bun:"photo_id,pk,nullzero,type:uuid" json:"photoId,omitempty"`
	AlbumID       uuid.UUID  `bun:"album_id,notnull,type:uuid" json:"albumId,omitempty"`
	Image         []byte     `bun:"image,notnull" json:"image,omitempty"`
	DateCreate    *time.Time `bun:"date_create,nullzero,default:current_timestamp" json:"dateCreate,omitempty"`
	DateUpdate    *time.Time `bun:"date_update,nullzero,default:current_timestamp" json:"dateUpdate,omitempty"`
}

// Page is a simple offset/limit page of records
type Page[T any] struct {
	Content       []T `json:"content"`
	Page          int `json:"page"`
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
}
