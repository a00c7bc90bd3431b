package services

import (
	"context"
	"errors"
	"strings"

	"github.com/employee-manager/backend/internal/models"
	"github.com/employee-manager/backend/internal/query"
	"github.com/employee-manager/backend/internal/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ValidationError carries the full itemized list of violated
// constraints for a rejected write.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string { return "validation failed: " + strings.Join(e.Errors, "; ") }

// ConflictError marks a uniqueness violation (employee id or email
// already in use).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

type EmployeeService struct {
	employeeRepo *repositories.EmployeeRepo
	log          *zap.Logger
}

func NewEmployeeService(employeeRepo *repositories.EmployeeRepo, log *zap.Logger) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo, log: log}
}

// Create validates the candidate, runs both uniqueness checks against
// the store, and only then inserts. All checks happen before any
// mutating call.
func (s *EmployeeService) Create(ctx context.Context, patch models.EmployeePatch) (*models.Employee, error) {
	draft := patch.Draft()
	if errs := models.ValidateEmployee(draft); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	draft.Normalize()

	if _, err := s.employeeRepo.GetByEmployeeID(ctx, draft.EmployeeID); err == nil {
		return nil, &ConflictError{Message: "Employee with this Employee ID already exists"}
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	if _, err := s.employeeRepo.GetByEmail(ctx, draft.Email); err == nil {
		return nil, &ConflictError{Message: "Employee with this email already exists"}
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	e := draftToEmployee(draft)
	if err := s.employeeRepo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EmployeeService) GetByID(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	return s.employeeRepo.GetByID(ctx, id)
}

// List resolves one page plus the matching total so the handler can
// build the pagination envelope.
func (s *EmployeeService) List(ctx context.Context, q *query.ListQuery) ([]models.Employee, int, error) {
	employees, err := s.employeeRepo.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.employeeRepo.Count(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

// Update merges the patch onto the stored record, validates the merged
// state, and re-checks uniqueness only for fields that actually
// changed. Returns the pre- and post-update records.
func (s *EmployeeService) Update(ctx context.Context, id uuid.UUID, patch models.EmployeePatch) (*models.Employee, *models.Employee, error) {
	existing, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	draft := patch.ApplyTo(*existing)
	if errs := models.ValidateEmployee(draft); len(errs) > 0 {
		return nil, nil, &ValidationError{Errors: errs}
	}
	draft.Normalize()

	if draft.EmployeeID != existing.EmployeeID {
		other, err := s.employeeRepo.GetByEmployeeID(ctx, draft.EmployeeID)
		if err == nil && other.ID != id {
			return nil, nil, &ConflictError{Message: "Employee with this Employee ID already exists"}
		}
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, err
		}
	}
	if draft.Email != existing.Email {
		other, err := s.employeeRepo.GetByEmail(ctx, draft.Email)
		if err == nil && other.ID != id {
			return nil, nil, &ConflictError{Message: "Employee with this email already exists"}
		}
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, err
		}
	}

	updated := draftToEmployee(draft)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if err := s.employeeRepo.Update(ctx, updated); err != nil {
		return nil, nil, err
	}
	return existing, updated, nil
}

// Delete removes the record and returns its last state.
func (s *EmployeeService) Delete(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	existing, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return existing, nil
}

// Stats returns the headline counts for the dashboard cards.
func (s *EmployeeService) Stats(ctx context.Context) (total int, active int, err error) {
	total, err = s.employeeRepo.CountAll(ctx)
	if err != nil {
		return 0, 0, err
	}
	active, err = s.employeeRepo.CountByStatus(ctx, models.StatusActive)
	if err != nil {
		return 0, 0, err
	}
	return total, active, nil
}

func draftToEmployee(d models.EmployeeDraft) *models.Employee {
	joining, _ := models.ParseJoiningDate(d.JoiningDate)
	var salary float64
	if d.Salary != nil {
		salary = *d.Salary
	}
	return &models.Employee{
		EmployeeID:  d.EmployeeID,
		Name:        d.Name,
		Email:       d.Email,
		Phone:       d.Phone,
		Address:     d.Address,
		Department:  d.Department,
		Designation: d.Designation,
		JoiningDate: joining,
		Salary:      salary,
		Status:      d.Status,
	}
}
