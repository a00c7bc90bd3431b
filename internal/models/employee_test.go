package models

import (
	"strings"
	"testing"
	"time"
)

func validDraft() EmployeeDraft {
	salary := 75000.0
	return EmployeeDraft{
		EmployeeID:  "EMP001",
		Name:        "Jane Doe",
		Email:       "jane.doe@example.com",
		Phone:       "+15550123",
		Address:     "42 Main Street",
		Department:  "IT",
		Designation: "Engineer",
		JoiningDate: "2020-03-15",
		Salary:      &salary,
		Status:      StatusActive,
	}
}

func TestValidateEmployee_Valid(t *testing.T) {
	if errs := ValidateEmployee(validDraft()); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateEmployee_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*EmployeeDraft)
		wantMsg string
	}{
		{"employeeId", func(d *EmployeeDraft) { d.EmployeeID = "" }, "Employee ID is required"},
		{"name", func(d *EmployeeDraft) { d.Name = "  " }, "Name is required"},
		{"email", func(d *EmployeeDraft) { d.Email = "" }, "Email is required"},
		{"phone", func(d *EmployeeDraft) { d.Phone = "" }, "Phone number is required"},
		{"department", func(d *EmployeeDraft) { d.Department = "" }, "Department is required"},
		{"designation", func(d *EmployeeDraft) { d.Designation = "" }, "Designation is required"},
		{"joiningDate", func(d *EmployeeDraft) { d.JoiningDate = "" }, "Joining date is required"},
		{"salary", func(d *EmployeeDraft) { d.Salary = nil }, "Valid salary is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			errs := ValidateEmployee(d)
			if len(errs) == 0 {
				t.Fatalf("expected error for missing %s", tt.name)
			}
			if !containsMsg(errs, tt.wantMsg) {
				t.Errorf("expected %q in %v", tt.wantMsg, errs)
			}
		})
	}
}

func TestValidateEmployee_BadValues(t *testing.T) {
	zero := 0.0
	negative := -100.0
	tooHigh := 2_000_000.0

	tests := []struct {
		name    string
		mutate  func(*EmployeeDraft)
		wantMsg string
	}{
		{"email format", func(d *EmployeeDraft) { d.Email = "not-an-email" }, "Invalid email format"},
		{"email no domain", func(d *EmployeeDraft) { d.Email = "a@b" }, "Invalid email format"},
		{"unknown department", func(d *EmployeeDraft) { d.Department = "Astronomy" }, "Department must be one of"},
		{"unparseable date", func(d *EmployeeDraft) { d.JoiningDate = "15/03/2020" }, "Invalid joining date format"},
		{"future date", func(d *EmployeeDraft) {
			d.JoiningDate = time.Now().AddDate(1, 0, 0).Format("2006-01-02")
		}, "Joining date cannot be in the future"},
		{"zero salary", func(d *EmployeeDraft) { d.Salary = &zero }, "Valid salary is required"},
		{"negative salary", func(d *EmployeeDraft) { d.Salary = &negative }, "Valid salary is required"},
		{"salary over cap", func(d *EmployeeDraft) { d.Salary = &tooHigh }, "Salary cannot exceed 1,000,000"},
		{"bad status", func(d *EmployeeDraft) { d.Status = "bogus" }, "Status must be active or inactive"},
		{"empty status", func(d *EmployeeDraft) { d.Status = "" }, "Status must be active or inactive"},
		{"short name", func(d *EmployeeDraft) { d.Name = "J" }, "Name must be between 2 and 50 characters"},
		{"long designation", func(d *EmployeeDraft) {
			d.Designation = strings.Repeat("x", 51)
		}, "Designation must be between 2 and 50 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			errs := ValidateEmployee(d)
			if !containsMsg(errs, tt.wantMsg) {
				t.Errorf("expected message containing %q, got %v", tt.wantMsg, errs)
			}
		})
	}
}

// Length limits count characters, not bytes.
func TestValidateEmployee_MultibyteLengths(t *testing.T) {
	d := validDraft()
	d.Name = strings.Repeat("ñ", 30)
	d.Designation = strings.Repeat("工", 50)
	if errs := ValidateEmployee(d); len(errs) != 0 {
		t.Errorf("30/50-character multibyte values must pass, got %v", errs)
	}

	d = validDraft()
	d.Name = strings.Repeat("ñ", 51)
	if errs := ValidateEmployee(d); !containsMsg(errs, "Name must be between 2 and 50 characters") {
		t.Errorf("51-character name must fail, got %v", errs)
	}
}

// Every check runs: a draft violating several constraints reports all
// of them, in declaration order.
func TestValidateEmployee_NoShortCircuit(t *testing.T) {
	d := EmployeeDraft{}
	errs := ValidateEmployee(d)

	want := []string{
		"Employee ID is required",
		"Name is required",
		"Email is required",
		"Phone number is required",
		"Department is required",
		"Designation is required",
		"Joining date is required",
		"Valid salary is required",
		"Status must be active or inactive",
	}
	if len(errs) != len(want) {
		t.Fatalf("expected %d errors, got %d: %v", len(want), len(errs), errs)
	}
	for i, msg := range want {
		if errs[i] != msg {
			t.Errorf("error %d = %q, want %q", i, errs[i], msg)
		}
	}
}

func TestNormalize(t *testing.T) {
	d := validDraft()
	d.EmployeeID = "  emp042 "
	d.Email = " Jane.Doe@Example.COM "
	d.Normalize()

	if d.EmployeeID != "EMP042" {
		t.Errorf("EmployeeID = %q, want EMP042", d.EmployeeID)
	}
	if d.Email != "jane.doe@example.com" {
		t.Errorf("Email = %q, want jane.doe@example.com", d.Email)
	}
}

func TestParseJoiningDate(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{"2020-03-15", true},
		{"2020-03-15T00:00:00Z", true},
		{"15/03/2020", false},
		{"yesterday", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if _, ok := ParseJoiningDate(tt.input); ok != tt.ok {
				t.Errorf("ParseJoiningDate(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
		})
	}
}

func TestEmployeePatch_ApplyTo(t *testing.T) {
	existing := Employee{
		EmployeeID:  "EMP001",
		Name:        "Jane Doe",
		Email:       "jane.doe@example.com",
		Phone:       "+15550123",
		Address:     "42 Main Street",
		Department:  "IT",
		Designation: "Engineer",
		JoiningDate: time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC),
		Salary:      75000,
		Status:      StatusActive,
	}

	newAddr := "7 Side Street"
	d := EmployeePatch{Address: &newAddr}.ApplyTo(existing)

	if d.Address != newAddr {
		t.Errorf("Address = %q, want %q", d.Address, newAddr)
	}
	if d.Name != existing.Name || d.Email != existing.Email || d.Status != existing.Status {
		t.Error("untouched fields must carry over from the existing record")
	}
	if d.JoiningDate != "2020-03-15" {
		t.Errorf("JoiningDate = %q, want 2020-03-15", d.JoiningDate)
	}
	if d.Salary == nil || *d.Salary != existing.Salary {
		t.Errorf("Salary must carry over, got %v", d.Salary)
	}
	if errs := ValidateEmployee(d); len(errs) != 0 {
		t.Errorf("merged draft should validate cleanly, got %v", errs)
	}
}

func containsMsg(errs []string, want string) bool {
	for _, e := range errs {
		if strings.Contains(e, want) {
			return true
		}
	}
	return false
}
