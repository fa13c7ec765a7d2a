package blog

import (
	"time"

	"github.com/uptrace/bun"

	repository "github.com/goliatone/go-repository-bun"
)

// PostFilter narrows post listings. Zero valued fields are ignored.
type PostFilter struct {
	ID              string     `json:"postId" query:"postId"`
	UserID          string     `json:"userId" query:"userId"`
	Title           string     `json:"title" query:"title"`
	Description     string     `json:"description" query:"description"`
	DateCreateStart *time.Time `json:"dateCreateStart" query:"dateCreateStart"`
	DateCreateEnd   *time.Time `json:"dateCreateEnd" query:"dateCreateEnd"`
	DateUpdateStart *time.Time `json:"dateUpdateStart" query:"dateUpdateStart"`
	DateUpdateEnd   *time.Time `json:"dateUpdateEnd" query:"dateUpdateEnd"`
}

// Criteria renders the filter as select criteria
func (f *PostFilter) Criteria() []repository.SelectCriteria {
	if f == nil {
		return nil
	}

	criteria := make([]repository.SelectCriteria, 0, 6)

	if f.ID != "" {
		criteria = append(criteria, whereEq("post_id", f.ID))
	}

	if f.UserID != "" {
		criteria = append(criteria, whereEq("user_id", f.UserID))
	}

	if f.Title != "" {
		criteria = append(criteria, whereContains("title", f.Title))
	}

	if f.Description != "" {
		criteria = append(criteria, whereContains("description", f.Description))
	}

	criteria = append(criteria, dateRange("date_create", f.DateCreateStart, f.DateCreateEnd)...)
	criteria = append(criteria, dateRange("date_update", f.DateUpdateStart, f.DateUpdateEnd)...)

	return criteria
}

// AlbumFilter narrows album listings. Zero valued fields are ignored.
type AlbumFilter struct {
	ID              string     `json:"albumId" query:"albumId"`
	UserID          string     `json:"userId" query:"userId"`
	Name            string     `json:"name" query:"name"`
	DateCreateStart *time.Time `json:"dateCreateStart" query:"dateCreateStart"`
	DateCreateEnd   *time.Time `json:"dateCreateEnd" query:"dateCreateEnd"`
	DateUpdateStart *time.Time `json:"dateUpdateStart" query:"dateUpdateStart"`
	DateUpdateEnd   *time.Time `json:"dateUpdateEnd" query:"dateUpdateEnd"`
}

// Criteria renders the filter as select criteria
func (f *AlbumFilter) Criteria() []repository.SelectCriteria {
	if f == nil {
		return nil
	}

	criteria := make([]repository.SelectCriteria, 0, 5)

	if f.ID != "" {
		criteria = append(criteria, whereEq("album_id", f.ID))
	}

	if f.UserID != "" {
		criteria = append(criteria, whereEq("user_id", f.UserID))
	}

	if f.Name != "" {
		criteria = append(criteria, whereContains("name", f.Name))
	}

	criteria = append(criteria, dateRange("date_create", f.DateCreateStart, f.DateCreateEnd)...)
	criteria = append(criteria, dateRange("date_update", f.DateUpdateStart, f.DateUpdateEnd)...)

	return criteria
}

func whereEq(column string, value any) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias."+column+" = ?", value)
	}
}

func whereContains(column, value string) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias."+column+" LIKE ?", "%"+value+"%")
	}
}

// dateRange builds an inclusive bound per side; either side may be
// open. No criteria when both are nil.
func dateRange(column string, start, end *time.Time) []repository.SelectCriteria {
	switch {
	case start != nil && end != nil:
		return []repository.SelectCriteria{func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias."+column+" BETWEEN ? AND ?", *start, *end)
		}}
	case start != nil:
		return []repository.SelectCriteria{func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias."+column+" >= ?", *start)
		}}
	case end != nil:
		return []repository.SelectCriteria{func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias."+column+" <= ?", *end)
		}}
	default:
		return nil
	}
}
