package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/employee-manager/backend/internal/models"
	"github.com/employee-manager/backend/internal/query"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AuditRepo struct {
	pool *pgxpool.Pool
}

func NewAuditRepo(pool *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

const auditColumns = `id, user_id, username, role, action, resource, resource_id, before, after, changes, ip_address, user_agent, "timestamp", success, error_message, duration_ms`

// Record inserts one audit entry. Entries are never updated or deleted.
func (r *AuditRepo) Record(ctx context.Context, e models.AuditLog) error {
	beforeBytes, err := marshalSnapshot(e.Before)
	if err != nil {
		return err
	}
	afterBytes, err := marshalSnapshot(e.After)
	if err != nil {
		return err
	}
	changes := e.Changes
	if changes == nil {
		changes = []string{}
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO audit_logs (user_id, username, role, action, resource, resource_id, before, after, changes,
		                        ip_address, user_agent, "timestamp", success, error_message, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`, e.Actor.ID, e.Actor.Username, e.Actor.Role, e.Action, e.Resource, e.ResourceID,
		beforeBytes, afterBytes, changes, e.IPAddress, e.UserAgent, e.Timestamp,
		e.Success, e.ErrorMessage, e.DurationMS)
	return err
}

// List returns one page of entries matching the filter, newest first.
func (r *AuditRepo) List(ctx context.Context, q *query.AuditQuery) ([]models.AuditLog, error) {
	sql := `SELECT ` + auditColumns + ` FROM audit_logs`
	where, args := auditConditions(q)
	sql += where
	sql += fmt.Sprintf(` ORDER BY "timestamp" DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, q.Limit, q.Skip())

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAuditLogs(rows)
}

// ListAll returns every entry matching the filter, newest first. Used
// by the CSV export, which is not paginated.
func (r *AuditRepo) ListAll(ctx context.Context, q *query.AuditQuery) ([]models.AuditLog, error) {
	sql := `SELECT ` + auditColumns + ` FROM audit_logs`
	where, args := auditConditions(q)
	sql += where + ` ORDER BY "timestamp" DESC`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAuditLogs(rows)
}

func (r *AuditRepo) Count(ctx context.Context, q *query.AuditQuery) (int, error) {
	sql := `SELECT COUNT(*) FROM audit_logs`
	where, args := auditConditions(q)
	sql += where

	var count int
	err := r.pool.QueryRow(ctx, sql, args...).Scan(&count)
	return count, err
}

func auditConditions(q *query.AuditQuery) (string, []any) {
	var conds []string
	args := []any{}

	if q.Action != "" {
		args = append(args, q.Action)
		conds = append(conds, fmt.Sprintf("action = $%d", len(args)))
	}
	if q.Resource != "" {
		args = append(args, q.Resource)
		conds = append(conds, fmt.Sprintf("resource = $%d", len(args)))
	}
	if q.UserID != nil {
		args = append(args, *q.UserID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if q.Start != nil {
		args = append(args, *q.Start)
		conds = append(conds, fmt.Sprintf(`"timestamp" >= $%d`, len(args)))
	}
	if q.End != nil {
		args = append(args, *q.End)
		conds = append(conds, fmt.Sprintf(`"timestamp" <= $%d`, len(args)))
	}
	if q.Success != nil {
		args = append(args, *q.Success)
		conds = append(conds, fmt.Sprintf("success = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	where := " WHERE " + conds[0]
	for _, c := range conds[1:] {
		where += " AND " + c
	}
	return where, args
}

func marshalSnapshot(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func scanAuditLogs(rows pgx.Rows) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	for rows.Next() {
		var l models.AuditLog
		var beforeBytes, afterBytes []byte
		if err := rows.Scan(&l.ID, &l.Actor.ID, &l.Actor.Username, &l.Actor.Role,
			&l.Action, &l.Resource, &l.ResourceID, &beforeBytes, &afterBytes, &l.Changes,
			&l.IPAddress, &l.UserAgent, &l.Timestamp, &l.Success, &l.ErrorMessage, &l.DurationMS); err != nil {
			return nil, err
		}
		if len(beforeBytes) > 0 {
			_ = json.Unmarshal(beforeBytes, &l.Before)
		}
		if len(afterBytes) > 0 {
			_ = json.Unmarshal(afterBytes, &l.After)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
