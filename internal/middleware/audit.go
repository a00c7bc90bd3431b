package middleware

import (
	"context"
	"encoding/json"
	"time"

	"github.com/employee-manager/backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Locals keys the wrapped handler uses to stage audit state.
const (
	ctxAuditBefore     = "audit_before"
	ctxAuditAfter      = "audit_after"
	ctxAuditResourceID = "audit_resource_id"
)

const auditWriteTimeout = 5 * time.Second

// AuditRecorder persists one audit entry.
type AuditRecorder interface {
	Record(ctx context.Context, e models.AuditLog) error
}

// SetAuditBefore stages the pre-operation snapshot of the resource.
func SetAuditBefore(c *fiber.Ctx, v any) {
	c.Locals(ctxAuditBefore, v)
}

// SetAuditAfter stages the post-operation snapshot of the resource.
func SetAuditAfter(c *fiber.Ctx, v any) {
	c.Locals(ctxAuditAfter, v)
}

// SetAuditResourceID overrides the resource id recorded for this
// attempt. Without it the interceptor falls back to the :id route
// parameter.
func SetAuditResourceID(c *fiber.Ctx, id string) {
	c.Locals(ctxAuditResourceID, id)
}

// Audit wraps a mutating route so that every attempt, success or
// failure, produces exactly one log entry. The handler runs to
// completion first; the entry is assembled from the staged snapshots
// and the response envelope, then persisted on a detached goroutine.
// A slow or failing audit write never delays or fails the response.
func Audit(action, resource string, recorder AuditRecorder, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		before := snapshotMap(c.Locals(ctxAuditBefore))
		after := snapshotMap(c.Locals(ctxAuditAfter))

		// Request-derived strings are views into fasthttp buffers that
		// are recycled once the handler returns; the entry outlives the
		// request, so they must be copied here.
		entry := models.AuditLog{
			Actor:      actorFromLocals(c),
			Action:     action,
			Resource:   resource,
			ResourceID: resourceID(c),
			Before:     anyOrNil(before),
			After:      anyOrNil(after),
			Changes:    models.DiffChanges(before, after),
			IPAddress:  utils.CopyString(c.IP()),
			UserAgent:  utils.CopyString(c.Get("User-Agent")),
			Timestamp:  time.Now(),
			DurationMS: time.Since(start).Milliseconds(),
		}
		entry.Success, entry.ErrorMessage = outcome(c.Response().Body(), c.Response().StatusCode())

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
			defer cancel()
			if recErr := recorder.Record(ctx, entry); recErr != nil {
				log.Error("audit log creation failed",
					zap.String("action", action),
					zap.String("resource", resource),
					zap.Error(recErr),
				)
			}
		}()

		return err
	}
}

func actorFromLocals(c *fiber.Ctx) models.AuditActor {
	actor := models.AuditActor{
		Username: GetUsername(c),
		Role:     GetRole(c),
	}
	if id, ok := c.Locals(CtxUserID).(uuid.UUID); ok {
		actor.ID = &id
	}
	return actor
}

func resourceID(c *fiber.Ctx) *string {
	if id, ok := c.Locals(ctxAuditResourceID).(string); ok && id != "" {
		id = utils.CopyString(id)
		return &id
	}
	if id := c.Params("id"); id != "" {
		id = utils.CopyString(id)
		return &id
	}
	return nil
}

// outcome derives the success flag from the response's own envelope.
// A body without a success field counts as success unless the status
// says otherwise.
func outcome(body []byte, status int) (bool, *string) {
	var envelope struct {
		Success *bool  `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return status < fiber.StatusBadRequest, nil
	}
	if envelope.Success == nil {
		return status < fiber.StatusBadRequest, nil
	}
	if *envelope.Success {
		return true, nil
	}
	msg := envelope.Message
	return false, &msg
}

// snapshotMap flattens a staged value into a top-level key/value map
// through its JSON form, so the diff sees the same fields a client
// would.
func snapshotMap(v any) map[string]any {
	if v == nil {
		return nil
	}
	if m, ok := v.(map[string]any); ok {
		return m
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}

func anyOrNil(m map[string]any) any {
	if m == nil {
		return nil
	}
	return m
}
