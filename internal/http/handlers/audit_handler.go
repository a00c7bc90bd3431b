package handlers

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/employee-manager/backend/internal/config"
	"github.com/employee-manager/backend/internal/http/dto"
	"github.com/employee-manager/backend/internal/models"
	"github.com/employee-manager/backend/internal/query"
	"github.com/employee-manager/backend/internal/repositories"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuditHandler struct {
	auditRepo *repositories.AuditRepo
	cfg       *config.Config
	log       *zap.Logger
}

func NewAuditHandler(auditRepo *repositories.AuditRepo, cfg *config.Config, log *zap.Logger) *AuditHandler {
	return &AuditHandler{auditRepo: auditRepo, cfg: cfg, log: log}
}

func (h *AuditHandler) ListLogs(c *fiber.Ctx) error {
	q, err := query.ParseAudit(auditParams(c))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: err.Error()})
	}

	logs, err := h.auditRepo.List(c.Context(), q)
	if err != nil {
		return h.internalError(c, "Error fetching audit logs", err)
	}
	total, err := h.auditRepo.Count(c.Context(), q)
	if err != nil {
		return h.internalError(c, "Error fetching audit logs", err)
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}

	return c.JSON(dto.AuditListResponse{
		Success:    true,
		Message:    "Audit logs retrieved successfully",
		Data:       logs,
		Pagination: q.Paginate(len(logs), total),
	})
}

// auditCSVHeader is the fixed export column order.
var auditCSVHeader = []string{
	"Timestamp", "User", "Role", "Action", "Resource",
	"Resource ID", "IP Address", "Success", "Duration (ms)", "Changes",
}

func (h *AuditHandler) ExportCSV(c *fiber.Ctx) error {
	q, err := query.ParseAudit(auditParams(c))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: err.Error()})
	}

	logs, err := h.auditRepo.ListAll(c.Context(), q)
	if err != nil {
		return h.internalError(c, "Error exporting audit logs", err)
	}

	var buf strings.Builder
	w := csv.NewWriter(&buf)
	if err := w.Write(auditCSVHeader); err != nil {
		return h.internalError(c, "Error exporting audit logs", err)
	}
	for _, row := range AuditCSVRows(logs) {
		if err := w.Write(row); err != nil {
			return h.internalError(c, "Error exporting audit logs", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return h.internalError(c, "Error exporting audit logs", err)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="audit-logs-%s.csv"`, time.Now().Format("2006-01-02")))
	return c.SendString(buf.String())
}

// AuditCSVRows renders entries in the export column order. Missing
// actor fields fall back to "Unknown", mirroring the list view.
func AuditCSVRows(logs []models.AuditLog) [][]string {
	rows := make([][]string, 0, len(logs))
	for _, l := range logs {
		username := l.Actor.Username
		if username == "" {
			username = "Unknown"
		}
		role := l.Actor.Role
		if role == "" {
			role = "Unknown"
		}
		resourceID := ""
		if l.ResourceID != nil {
			resourceID = *l.ResourceID
		}
		success := "No"
		if l.Success {
			success = "Yes"
		}
		rows = append(rows, []string{
			l.Timestamp.UTC().Format(time.RFC3339),
			username,
			role,
			l.Action,
			l.Resource,
			resourceID,
			l.IPAddress,
			success,
			strconv.FormatInt(l.DurationMS, 10),
			strings.Join(l.Changes, "; "),
		})
	}
	return rows
}

func auditParams(c *fiber.Ctx) query.AuditParams {
	return query.AuditParams{
		Page:      c.Query("page"),
		Limit:     c.Query("limit"),
		Action:    c.Query("action"),
		Resource:  c.Query("resource"),
		UserID:    c.Query("userId"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		Success:   c.Query("success"),
	}
}

func (h *AuditHandler) internalError(c *fiber.Ctx, msg string, err error) error {
	h.log.Error(msg, zap.Error(err))
	resp := dto.ErrorResponse{Message: "Internal server error"}
	if !h.cfg.IsProduction() {
		resp.Error = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(resp)
}
