package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/employee-manager/backend/internal/models"
	"github.com/google/uuid"
)

const DefaultAuditLimit = 50

// AuditParams are the raw string-valued parameters of an audit log
// listing or export request.
type AuditParams struct {
	Page      string
	Limit     string
	Action    string
	Resource  string
	UserID    string
	StartDate string
	EndDate   string
	Success   string
}

// AuditQuery is the resolved audit trail filter for one request.
type AuditQuery struct {
	Page  int
	Limit int

	Action   string
	Resource string
	UserID   *uuid.UUID
	Start    *time.Time
	End      *time.Time
	Success  *bool
}

var auditActions = []string{
	models.ActionCreate, models.ActionRead, models.ActionUpdate, models.ActionDelete,
	models.ActionLogin, models.ActionLogout, models.ActionExport, models.ActionImport,
}

var auditResources = []string{
	models.ResourceEmployee, models.ResourceUser, models.ResourceAuth, models.ResourceSystem,
}

// ParseAudit validates audit filter parameters. Pagination obeys the
// same bounds as employee listings; dates accept plain dates or
// RFC 3339 timestamps.
func ParseAudit(p AuditParams) (*AuditQuery, error) {
	q := &AuditQuery{
		Page:  DefaultPage,
		Limit: DefaultAuditLimit,
	}

	if p.Action != "" {
		if !contains(auditActions, p.Action) {
			return nil, &ValidationError{Message: "Invalid action. Allowed actions: " + strings.Join(auditActions, ", ")}
		}
		q.Action = p.Action
	}
	if p.Resource != "" {
		if !contains(auditResources, p.Resource) {
			return nil, &ValidationError{Message: "Invalid resource. Allowed resources: " + strings.Join(auditResources, ", ")}
		}
		q.Resource = p.Resource
	}

	if p.UserID != "" {
		id, err := uuid.Parse(p.UserID)
		if err != nil {
			return nil, &ValidationError{Message: "Invalid user ID format"}
		}
		q.UserID = &id
	}

	if p.StartDate != "" {
		t, ok := parseDate(p.StartDate)
		if !ok {
			return nil, &ValidationError{Message: "Invalid start date format"}
		}
		q.Start = &t
	}
	if p.EndDate != "" {
		t, ok := parseDate(p.EndDate)
		if !ok {
			return nil, &ValidationError{Message: "Invalid end date format"}
		}
		q.End = &t
	}

	if p.Success != "" {
		if p.Success != "true" && p.Success != "false" {
			return nil, &ValidationError{Message: `Success must be either "true" or "false"`}
		}
		v := p.Success == "true"
		q.Success = &v
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

func (q *AuditQuery) Skip() int {
	return (q.Page - 1) * q.Limit
}

// AuditPagination mirrors Pagination with an audit-flavored total
// field name.
type AuditPagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalLogs   int  `json:"totalLogs"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
	Limit       int  `json:"limit"`
}

func (q *AuditQuery) Paginate(returned, total int) AuditPagination {
	return AuditPagination{
		CurrentPage: q.Page,
		TotalPages:  totalPages(total, q.Limit),
		TotalLogs:   total,
		HasNextPage: q.Skip()+returned < total,
		HasPrevPage: q.Page > 1,
		Limit:       q.Limit,
	}
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
