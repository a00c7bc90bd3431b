// Package query turns raw request parameters into resolved queries
// with a filter, a sort key and direction, and a skip/limit window.
// Unrecognized or out-of-range values are rejected up front so a bad
// request never reaches the store.
package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/employee-manager/backend/internal/models"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 3000

	SortAsc  = "asc"
	SortDesc = "desc"
)

// AllowedSortFields is the sort allow-list for employee listings.
var AllowedSortFields = []string{"name", "joiningDate", "salary", "createdAt", "department", "designation", "email", "address"}

// ListParams are the raw string-valued query parameters of a list
// request, prior to any validation.
type ListParams struct {
	Page        string
	Limit       string
	Department  string
	Status      string
	Search      string
	Designation string
	SortBy      string
	SortOrder   string
}

// ListQuery is the validated form of one employee list request. It
// lives only for the request's lifetime.
type ListQuery struct {
	Page  int
	Limit int

	Department  string // case-insensitive substring
	Status      string // exact, already validated
	Search      string // case-insensitive substring across searchable fields
	Designation string // case-insensitive substring

	SortBy    string
	SortOrder string
}

// ValidationError marks a request rejected before query execution.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ParseList validates raw parameters against the allow-lists and bounds
// and resolves defaults (page 1, limit 10, sort createdAt desc). Any
// disallowed value fails the whole request; nothing is clamped or
// silently dropped.
func ParseList(p ListParams) (*ListQuery, error) {
	q := &ListQuery{
		Page:        DefaultPage,
		Limit:       DefaultLimit,
		Department:  strings.TrimSpace(p.Department),
		Search:      strings.TrimSpace(p.Search),
		Designation: strings.TrimSpace(p.Designation),
		SortBy:      "createdAt",
		SortOrder:   SortDesc,
	}

	if p.Status != "" {
		if p.Status != models.StatusActive && p.Status != models.StatusInactive {
			return nil, &ValidationError{Message: `Status must be either "active" or "inactive"`}
		}
		q.Status = p.Status
	}

	if p.SortBy != "" {
		if !isAllowedSortField(p.SortBy) {
			return nil, &ValidationError{Message: "Invalid sort field. Allowed fields: " + strings.Join(AllowedSortFields, ", ")}
		}
		q.SortBy = p.SortBy
	}

	if p.SortOrder != "" {
		if p.SortOrder != SortAsc && p.SortOrder != SortDesc {
			return nil, &ValidationError{Message: `Sort order must be either "asc" or "desc"`}
		}
		q.SortOrder = p.SortOrder
	}

	if p.Page != "" {
		n, err := strconv.Atoi(p.Page)
		if err != nil {
			return nil, &ValidationError{Message: "Page must be an integer"}
		}
		q.Page = n
	}
	if p.Limit != "" {
		n, err := strconv.Atoi(p.Limit)
		if err != nil {
			return nil, &ValidationError{Message: "Limit must be an integer"}
		}
		q.Limit = n
	}
	if q.Page < 1 || q.Limit < 1 || q.Limit > MaxLimit {
		return nil, &ValidationError{Message: fmt.Sprintf("Page must be >= 1, limit must be between 1 and %d", MaxLimit)}
	}

	return q, nil
}

// Skip is the window offset: (page-1) * limit.
func (q *ListQuery) Skip() int {
	return (q.Page - 1) * q.Limit
}

func isAllowedSortField(field string) bool {
	for _, f := range AllowedSortFields {
		if f == field {
			return true
		}
	}
	return false
}

// Pagination is the envelope metadata reported back to the caller.
type Pagination struct {
	CurrentPage    int  `json:"currentPage"`
	TotalPages     int  `json:"totalPages"`
	TotalEmployees int  `json:"totalEmployees"`
	HasNextPage    bool `json:"hasNextPage"`
	HasPrevPage    bool `json:"hasPrevPage"`
	Limit          int  `json:"limit"`
}

// Paginate derives the envelope from the resolved window and the
// store's counts. hasNextPage holds exactly when skip+returned < total.
func (q *ListQuery) Paginate(returned, total int) Pagination {
	return Pagination{
		CurrentPage:    q.Page,
		TotalPages:     totalPages(total, q.Limit),
		TotalEmployees: total,
		HasNextPage:    q.Skip()+returned < total,
		HasPrevPage:    q.Page > 1,
		Limit:          q.Limit,
	}
}

func totalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// AppliedFilters echoes which filters were applied so a caller can
// tell "no matches" from "filter rejected".
type AppliedFilters struct {
	Search      *string `json:"search"`
	Department  *string `json:"department"`
	Status      *string `json:"status"`
	Designation *string `json:"designation"`
}

// AppliedSorting echoes the effective sort of the response.
type AppliedSorting struct {
	SortBy    string `json:"sortBy"`
	SortOrder string `json:"sortOrder"`
}

func (q *ListQuery) Filters() AppliedFilters {
	return AppliedFilters{
		Search:      nullable(q.Search),
		Department:  nullable(q.Department),
		Status:      nullable(q.Status),
		Designation: nullable(q.Designation),
	}
}

func (q *ListQuery) Sorting() AppliedSorting {
	return AppliedSorting{SortBy: q.SortBy, SortOrder: q.SortOrder}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
