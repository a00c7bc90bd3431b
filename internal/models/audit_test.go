package models

import (
	"reflect"
	"testing"
)

func TestDiffChanges(t *testing.T) {
	tests := []struct {
		name   string
		before map[string]any
		after  map[string]any
		want   []string
	}{
		{
			name: "create: every field added",
			after: map[string]any{
				"name":   "Jane",
				"email":  "jane@example.com",
				"salary": 75000.0,
			},
			want: []string{"Added: email", "Added: name", "Added: salary"},
		},
		{
			name:   "delete: every field removed",
			before: map[string]any{"name": "Jane", "salary": 75000.0},
			want:   []string{"Removed: name", "Removed: salary"},
		},
		{
			name:   "update: modified fields only",
			before: map[string]any{"name": "Jane", "salary": 75000.0, "status": "active"},
			after:  map[string]any{"name": "Jane", "salary": 80000.0, "status": "active"},
			want:   []string{"Modified: salary"},
		},
		{
			name:   "mixed: additions and modifications before removals",
			before: map[string]any{"phone": "1", "salary": 75000.0},
			after:  map[string]any{"address": "x", "salary": 80000.0},
			want:   []string{"Added: address", "Modified: salary", "Removed: phone"},
		},
		{
			name: "no difference",
			before: map[string]any{
				"name": "Jane",
			},
			after: map[string]any{
				"name": "Jane",
			},
			want: nil,
		},
		{
			name: "both nil",
			want: nil,
		},
		{
			name:   "nested value compared by structure",
			before: map[string]any{"meta": map[string]any{"a": 1}},
			after:  map[string]any{"meta": map[string]any{"a": 2}},
			want:   []string{"Modified: meta"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DiffChanges(tt.before, tt.after)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DiffChanges() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiffChanges_Deterministic(t *testing.T) {
	before := map[string]any{"b": 1, "a": 1, "c": 1}
	after := map[string]any{"d": 1, "b": 2}

	first := DiffChanges(before, after)
	for i := 0; i < 50; i++ {
		if got := DiffChanges(before, after); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %v vs %v", i, got, first)
		}
	}
}
