package query

import (
	"testing"
)

func TestParseList_Defaults(t *testing.T) {
	q, err := ParseList(ListParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Page != 1 || q.Limit != 10 {
		t.Errorf("defaults = page %d limit %d, want 1/10", q.Page, q.Limit)
	}
	if q.SortBy != "createdAt" || q.SortOrder != SortDesc {
		t.Errorf("default sort = %s %s, want createdAt desc", q.SortBy, q.SortOrder)
	}
	if q.Skip() != 0 {
		t.Errorf("Skip() = %d, want 0", q.Skip())
	}
}

func TestParseList_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		params ListParams
	}{
		{"status bogus", ListParams{Status: "bogus"}},
		{"status uppercase", ListParams{Status: "Active"}},
		{"sortBy bogus", ListParams{SortBy: "bogus"}},
		{"sortBy phone", ListParams{SortBy: "phone"}},
		{"sortOrder bogus", ListParams{SortOrder: "bogus"}},
		{"sortOrder uppercase", ListParams{SortOrder: "ASC"}},
		{"page zero", ListParams{Page: "0"}},
		{"page negative", ListParams{Page: "-3"}},
		{"page not a number", ListParams{Page: "two"}},
		{"limit zero", ListParams{Limit: "0"}},
		{"limit over cap", ListParams{Limit: "5000"}},
		{"limit not a number", ListParams{Limit: "many"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := ParseList(tt.params)
			if err == nil {
				t.Fatalf("expected rejection, got %+v", q)
			}
			if _, ok := err.(*ValidationError); !ok {
				t.Errorf("expected *ValidationError, got %T", err)
			}
		})
	}
}

func TestParseList_AllowedSortFields(t *testing.T) {
	for _, field := range AllowedSortFields {
		t.Run(field, func(t *testing.T) {
			q, err := ParseList(ListParams{SortBy: field, SortOrder: SortAsc})
			if err != nil {
				t.Fatalf("field %q rejected: %v", field, err)
			}
			if q.SortBy != field || q.SortOrder != SortAsc {
				t.Errorf("sort = %s %s, want %s asc", q.SortBy, q.SortOrder, field)
			}
		})
	}
}

func TestParseList_Filters(t *testing.T) {
	q, err := ParseList(ListParams{
		Department:  "eng",
		Status:      "inactive",
		Search:      "EMP9",
		Designation: "lead",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Department != "eng" || q.Status != "inactive" || q.Search != "EMP9" || q.Designation != "lead" {
		t.Errorf("filters not carried: %+v", q)
	}

	f := q.Filters()
	if f.Department == nil || *f.Department != "eng" {
		t.Error("department filter must be echoed")
	}
	if f.Search == nil || *f.Search != "EMP9" {
		t.Error("search filter must be echoed")
	}

	empty, _ := ParseList(ListParams{})
	ef := empty.Filters()
	if ef.Department != nil || ef.Status != nil || ef.Search != nil || ef.Designation != nil {
		t.Errorf("absent filters must echo as null, got %+v", ef)
	}
}

func TestSkipMath(t *testing.T) {
	tests := []struct {
		page, limit, want int
	}{
		{1, 10, 0},
		{2, 10, 10},
		{3, 25, 50},
		{1, 3000, 0},
		{7, 1, 6},
	}

	for _, tt := range tests {
		q := &ListQuery{Page: tt.page, Limit: tt.limit}
		if got := q.Skip(); got != tt.want {
			t.Errorf("Skip(page=%d, limit=%d) = %d, want %d", tt.page, tt.limit, got, tt.want)
		}
	}
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name               string
		page, limit        int
		returned, total    int
		wantPages          int
		wantNext, wantPrev bool
	}{
		{"first of many", 1, 10, 10, 45, 5, true, false},
		{"middle page", 3, 10, 10, 45, 5, true, true},
		{"last partial page", 5, 10, 5, 45, 5, false, true},
		{"single page", 1, 10, 4, 4, 1, false, false},
		{"empty set", 1, 10, 0, 0, 0, false, false},
		{"exact fit", 2, 5, 5, 10, 2, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &ListQuery{Page: tt.page, Limit: tt.limit}
			p := q.Paginate(tt.returned, tt.total)

			if q.Skip()+tt.returned > tt.total {
				t.Errorf("window overruns total: skip %d + returned %d > total %d", q.Skip(), tt.returned, tt.total)
			}
			if p.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, tt.wantPages)
			}
			if p.HasNextPage != tt.wantNext {
				t.Errorf("HasNextPage = %v, want %v", p.HasNextPage, tt.wantNext)
			}
			if p.HasNextPage != (q.Skip()+tt.returned < tt.total) {
				t.Error("HasNextPage must equal skip+returned < total")
			}
			if p.HasPrevPage != tt.wantPrev {
				t.Errorf("HasPrevPage = %v, want %v", p.HasPrevPage, tt.wantPrev)
			}
			if p.TotalEmployees != tt.total || p.CurrentPage != tt.page || p.Limit != tt.limit {
				t.Errorf("echoed values wrong: %+v", p)
			}
		})
	}
}
