package models

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Departments is the closed set an employee can belong to.
var Departments = []string{"IT", "HR", "Finance", "Marketing", "Sales", "Operations", "Engineering", "Design"}

const (
	SalaryMax     = 1_000_000
	NameMaxLen    = 50
	AddressMaxLen = 500
)

type Employee struct {
	ID          uuid.UUID `json:"id"`
	EmployeeID  string    `json:"employeeId"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	Department  string    `json:"department"`
	Designation string    `json:"designation"`
	JoiningDate time.Time `json:"joiningDate"`
	Salary      float64   `json:"salary"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// EmployeeDraft is a candidate record before normalization: the joining
// date is still raw text and the salary may be absent.
type EmployeeDraft struct {
	EmployeeID  string
	Name        string
	Email       string
	Phone       string
	Address     string
	Department  string
	Designation string
	JoiningDate string
	Salary      *float64
	Status      string
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmployee checks a draft against every field constraint and
// returns the full ordered list of violations. It never short-circuits:
// a draft missing three fields reports all three. Uniqueness of
// employeeId/email is an I/O concern and is checked by the service.
func ValidateEmployee(d EmployeeDraft) []string {
	var errs []string

	if strings.TrimSpace(d.EmployeeID) == "" {
		errs = append(errs, "Employee ID is required")
	}

	if strings.TrimSpace(d.Name) == "" {
		errs = append(errs, "Name is required")
	} else if n := utf8.RuneCountInString(strings.TrimSpace(d.Name)); n < 2 || n > NameMaxLen {
		errs = append(errs, "Name must be between 2 and 50 characters")
	}

	if strings.TrimSpace(d.Email) == "" {
		errs = append(errs, "Email is required")
	} else if !emailRe.MatchString(strings.TrimSpace(d.Email)) {
		errs = append(errs, "Invalid email format")
	}

	if strings.TrimSpace(d.Phone) == "" {
		errs = append(errs, "Phone number is required")
	}

	if strings.TrimSpace(d.Department) == "" {
		errs = append(errs, "Department is required")
	} else if !IsValidDepartment(d.Department) {
		errs = append(errs, "Department must be one of: "+strings.Join(Departments, ", "))
	}

	if strings.TrimSpace(d.Designation) == "" {
		errs = append(errs, "Designation is required")
	} else if n := utf8.RuneCountInString(strings.TrimSpace(d.Designation)); n < 2 || n > NameMaxLen {
		errs = append(errs, "Designation must be between 2 and 50 characters")
	}

	if strings.TrimSpace(d.JoiningDate) == "" {
		errs = append(errs, "Joining date is required")
	} else if t, ok := ParseJoiningDate(d.JoiningDate); !ok {
		errs = append(errs, "Invalid joining date format")
	} else if t.After(time.Now()) {
		errs = append(errs, "Joining date cannot be in the future")
	}

	if d.Salary == nil || *d.Salary <= 0 {
		errs = append(errs, "Valid salary is required")
	} else if *d.Salary > SalaryMax {
		errs = append(errs, "Salary cannot exceed 1,000,000")
	}

	if d.Status != StatusActive && d.Status != StatusInactive {
		errs = append(errs, "Status must be active or inactive")
	}

	return errs
}

func IsValidDepartment(dept string) bool {
	for _, d := range Departments {
		if d == dept {
			return true
		}
	}
	return false
}

// ParseJoiningDate accepts a plain date or a full RFC 3339 timestamp.
func ParseJoiningDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// EmployeePatch is a partial write: nil fields are left untouched by
// ApplyTo and read as missing by Draft.
type EmployeePatch struct {
	EmployeeID  *string
	Name        *string
	Email       *string
	Phone       *string
	Address     *string
	Department  *string
	Designation *string
	JoiningDate *string
	Salary      *float64
	Status      *string
}

// Draft materializes the patch as a standalone candidate, for create.
func (p EmployeePatch) Draft() EmployeeDraft {
	d := EmployeeDraft{Salary: p.Salary}
	if p.EmployeeID != nil {
		d.EmployeeID = *p.EmployeeID
	}
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Email != nil {
		d.Email = *p.Email
	}
	if p.Phone != nil {
		d.Phone = *p.Phone
	}
	if p.Address != nil {
		d.Address = *p.Address
	}
	if p.Department != nil {
		d.Department = *p.Department
	}
	if p.Designation != nil {
		d.Designation = *p.Designation
	}
	if p.JoiningDate != nil {
		d.JoiningDate = *p.JoiningDate
	}
	if p.Status != nil {
		d.Status = *p.Status
	}
	return d
}

// ApplyTo merges the patch onto an existing record and returns the
// candidate that results, so updates are validated against the merged
// state rather than the raw partial body.
func (p EmployeePatch) ApplyTo(e Employee) EmployeeDraft {
	salary := e.Salary
	d := EmployeeDraft{
		EmployeeID:  e.EmployeeID,
		Name:        e.Name,
		Email:       e.Email,
		Phone:       e.Phone,
		Address:     e.Address,
		Department:  e.Department,
		Designation: e.Designation,
		JoiningDate: e.JoiningDate.Format("2006-01-02"),
		Salary:      &salary,
		Status:      e.Status,
	}
	if p.EmployeeID != nil {
		d.EmployeeID = *p.EmployeeID
	}
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Email != nil {
		d.Email = *p.Email
	}
	if p.Phone != nil {
		d.Phone = *p.Phone
	}
	if p.Address != nil {
		d.Address = *p.Address
	}
	if p.Department != nil {
		d.Department = *p.Department
	}
	if p.Designation != nil {
		d.Designation = *p.Designation
	}
	if p.JoiningDate != nil {
		d.JoiningDate = *p.JoiningDate
	}
	if p.Salary != nil {
		d.Salary = p.Salary
	}
	if p.Status != nil {
		d.Status = *p.Status
	}
	return d
}

// Normalize applies the storage conventions: employee ids are kept
// uppercase, emails lowercase.
func (d *EmployeeDraft) Normalize() {
	d.EmployeeID = strings.ToUpper(strings.TrimSpace(d.EmployeeID))
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.Phone = strings.TrimSpace(d.Phone)
	d.Address = strings.TrimSpace(d.Address)
	d.Department = strings.TrimSpace(d.Department)
	d.Designation = strings.TrimSpace(d.Designation)
}
