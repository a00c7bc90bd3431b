package models

import (
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Audit actions
const (
	ActionCreate = "CREATE"
	ActionRead   = "READ"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
	ActionLogin  = "LOGIN"
	ActionLogout = "LOGOUT"
	ActionExport = "EXPORT"
	ActionImport = "IMPORT"
)

// Audit resources
const (
	ResourceEmployee = "EMPLOYEE"
	ResourceUser     = "USER"
	ResourceAuth     = "AUTH"
	ResourceSystem   = "SYSTEM"
)

// AuditActor identifies who attempted the action. All fields are empty
// for unauthenticated attempts.
type AuditActor struct {
	ID       *uuid.UUID `json:"id,omitempty"`
	Username string     `json:"username,omitempty"`
	Role     string     `json:"role,omitempty"`
}

// AuditLog is one immutable record of a mutating-action attempt.
// Entries are only ever inserted and read, never updated or deleted.
type AuditLog struct {
	ID           uuid.UUID  `json:"id"`
	Actor        AuditActor `json:"user"`
	Action       string     `json:"action"`
	Resource     string     `json:"resource"`
	ResourceID   *string    `json:"resourceId,omitempty"`
	Before       any        `json:"before,omitempty"`
	After        any        `json:"after,omitempty"`
	Changes      []string   `json:"changes"`
	IPAddress    string     `json:"ipAddress"`
	UserAgent    string     `json:"userAgent"`
	Timestamp    time.Time  `json:"timestamp"`
	Success      bool       `json:"success"`
	ErrorMessage *string    `json:"errorMessage,omitempty"`
	DurationMS   int64      `json:"duration"`
}

// DiffChanges compares two top-level snapshots and labels every
// difference: keys only in after are "Added", keys in both with
// differing values are "Modified", keys only in before are "Removed".
// Additions and modifications come first, then removals; within each
// block keys are sorted so the output is deterministic.
func DiffChanges(before, after map[string]any) []string {
	if before == nil && after == nil {
		return nil
	}
	if before == nil {
		before = map[string]any{}
	}
	if after == nil {
		after = map[string]any{}
	}

	var changes []string

	afterKeys := sortedKeys(after)
	for _, key := range afterKeys {
		prev, ok := before[key]
		if !ok {
			changes = append(changes, fmt.Sprintf("Added: %s", key))
		} else if !reflect.DeepEqual(prev, after[key]) {
			changes = append(changes, fmt.Sprintf("Modified: %s", key))
		}
	}

	beforeKeys := sortedKeys(before)
	for _, key := range beforeKeys {
		if _, ok := after[key]; !ok {
			changes = append(changes, fmt.Sprintf("Removed: %s", key))
		}
	}

	return changes
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
