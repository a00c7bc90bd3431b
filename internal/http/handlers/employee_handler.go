package handlers

import (
	"errors"

	"github.com/employee-manager/backend/internal/config"
	"github.com/employee-manager/backend/internal/http/dto"
	"github.com/employee-manager/backend/internal/middleware"
	"github.com/employee-manager/backend/internal/models"
	"github.com/employee-manager/backend/internal/query"
	"github.com/employee-manager/backend/internal/repositories"
	"github.com/employee-manager/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EmployeeHandler struct {
	employeeService *services.EmployeeService
	cfg             *config.Config
	log             *zap.Logger
}

func NewEmployeeHandler(employeeService *services.EmployeeService, cfg *config.Config, log *zap.Logger) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService, cfg: cfg, log: log}
}

func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var req dto.EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid request body"})
	}

	employee, err := h.employeeService.Create(c.Context(), patchFromRequest(req))
	if err != nil {
		return h.writeEmployeeError(c, err)
	}

	middleware.SetAuditAfter(c, employee)
	middleware.SetAuditResourceID(c, employee.ID.String())

	return c.Status(fiber.StatusCreated).JSON(dto.Response{
		Success: true,
		Message: "Employee created successfully",
		Data:    employee,
	})
}

func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	q, err := query.ParseList(query.ListParams{
		Page:        c.Query("page"),
		Limit:       c.Query("limit"),
		Department:  c.Query("department"),
		Status:      c.Query("status"),
		Search:      c.Query("search"),
		Designation: c.Query("designation"),
		SortBy:      c.Query("sortBy"),
		SortOrder:   c.Query("sortOrder"),
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: err.Error()})
	}

	employees, total, err := h.employeeService.List(c.Context(), q)
	if err != nil {
		return h.internalError(c, "Error getting employees", err)
	}
	if employees == nil {
		employees = []models.Employee{}
	}

	return c.JSON(dto.EmployeeListResponse{
		Success:    true,
		Message:    "Employees retrieved successfully",
		Data:       employees,
		Pagination: q.Paginate(len(employees), total),
		Filters:    q.Filters(),
		Sorting:    q.Sorting(),
	})
}

func (h *EmployeeHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid employee ID format"})
	}

	employee, err := h.employeeService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "Employee not found"})
		}
		return h.internalError(c, "Error getting employee", err)
	}

	return c.JSON(dto.Response{
		Success: true,
		Message: "Employee retrieved successfully",
		Data:    employee,
	})
}

func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid employee ID format"})
	}

	var req dto.EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid request body"})
	}

	before, after, err := h.employeeService.Update(c.Context(), id, patchFromRequest(req))
	if err != nil {
		return h.writeEmployeeError(c, err)
	}

	middleware.SetAuditBefore(c, before)
	middleware.SetAuditAfter(c, after)

	return c.JSON(dto.Response{
		Success: true,
		Message: "Employee updated successfully",
		Data:    after,
	})
}

func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid employee ID format"})
	}

	deleted, err := h.employeeService.Delete(c.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "Employee not found"})
		}
		return h.internalError(c, "Error deleting employee", err)
	}

	middleware.SetAuditBefore(c, deleted)

	return c.JSON(dto.Response{
		Success: true,
		Message: "Employee deleted successfully",
		Data: dto.DeletedEmployeeSummary{
			EmployeeID: deleted.EmployeeID,
			Name:       deleted.Name,
			Email:      deleted.Email,
		},
	})
}

func (h *EmployeeHandler) Stats(c *fiber.Ctx) error {
	total, active, err := h.employeeService.Stats(c.Context())
	if err != nil {
		return h.internalError(c, "Error getting employee stats", err)
	}
	return c.JSON(dto.StatsResponse{
		Success:         true,
		TotalEmployees:  total,
		ActiveEmployees: active,
	})
}

func (h *EmployeeHandler) Analytics(c *fiber.Ctx) error {
	period := c.Query("period", "month")

	data, err := h.employeeService.Analytics(c.Context(), period)
	if err != nil {
		return h.internalError(c, "Error fetching analytics", err)
	}

	return c.JSON(dto.Response{
		Success: true,
		Message: "Analytics retrieved successfully",
		Data:    data,
	})
}

func (h *EmployeeHandler) writeEmployeeError(c *fiber.Ctx, err error) error {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
			Message: "Validation failed",
			Errors:  validationErr.Errors,
		})
	}
	var conflictErr *services.ConflictError
	if errors.As(err, &conflictErr) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Message: conflictErr.Message})
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "Employee not found"})
	}
	return h.internalError(c, "Internal server error", err)
}

// internalError hides the underlying failure outside development.
func (h *EmployeeHandler) internalError(c *fiber.Ctx, msg string, err error) error {
	h.log.Error(msg, zap.Error(err))
	resp := dto.ErrorResponse{Message: "Internal server error"}
	if !h.cfg.IsProduction() {
		resp.Error = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(resp)
}

func patchFromRequest(req dto.EmployeeRequest) models.EmployeePatch {
	return models.EmployeePatch{
		EmployeeID:  req.EmployeeID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		Department:  req.Department,
		Designation: req.Designation,
		JoiningDate: req.JoiningDate,
		Salary:      req.Salary,
		Status:      req.Status,
	}
}
