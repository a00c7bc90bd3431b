package dto

import (
	"github.com/employee-manager/backend/internal/query"
)

// Response is the common envelope: every reply carries a success flag
// and a message.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ValidationErrorResponse itemizes every violated constraint.
type ValidationErrorResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

// ErrorResponse carries a failure message, plus the underlying error
// outside production.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// EmployeeListResponse echoes the applied filters and sorting next to
// the page of data.
type EmployeeListResponse struct {
	Success    bool                 `json:"success"`
	Message    string               `json:"message"`
	Data       any                  `json:"data"`
	Pagination query.Pagination     `json:"pagination"`
	Filters    query.AppliedFilters `json:"filters"`
	Sorting    query.AppliedSorting `json:"sorting"`
}

type AuditListResponse struct {
	Success    bool                  `json:"success"`
	Message    string                `json:"message"`
	Data       any                   `json:"data"`
	Pagination query.AuditPagination `json:"pagination"`
}

type StatsResponse struct {
	Success         bool `json:"success"`
	TotalEmployees  int  `json:"totalEmployees"`
	ActiveEmployees int  `json:"activeEmployees"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

// DeletedEmployeeSummary is returned by DELETE instead of the full
// record.
type DeletedEmployeeSummary struct {
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
}
