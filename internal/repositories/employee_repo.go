package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/employee-manager/backend/internal/models"
	"github.com/employee-manager/backend/internal/query"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no record matches the identifier.
var ErrNotFound = errors.New("not found")

type EmployeeRepo struct {
	pool *pgxpool.Pool
}

func NewEmployeeRepo(pool *pgxpool.Pool) *EmployeeRepo {
	return &EmployeeRepo{pool: pool}
}

const employeeColumns = `id, employee_id, name, email, phone, address, department, designation, joining_date, salary, status, created_at, updated_at`

// sortColumns maps the API-level sort fields onto table columns. The
// keys mirror query.AllowedSortFields; anything else never reaches
// this layer.
var sortColumns = map[string]string{
	"name":        "name",
	"joiningDate": "joining_date",
	"salary":      "salary",
	"createdAt":   "created_at",
	"department":  "department",
	"designation": "designation",
	"email":       "email",
	"address":     "address",
}

func (r *EmployeeRepo) Create(ctx context.Context, e *models.Employee) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO employees (employee_id, name, email, phone, address, department, designation, joining_date, salary, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, e.EmployeeID, e.Name, e.Email, e.Phone, e.Address, e.Department, e.Designation,
		e.JoiningDate, e.Salary, e.Status).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (r *EmployeeRepo) Update(ctx context.Context, e *models.Employee) error {
	err := r.pool.QueryRow(ctx, `
		UPDATE employees SET
			employee_id = $1, name = $2, email = $3, phone = $4, address = $5,
			department = $6, designation = $7, joining_date = $8, salary = $9, status = $10,
			updated_at = now()
		WHERE id = $11
		RETURNING updated_at
	`, e.EmployeeID, e.Name, e.Email, e.Phone, e.Address, e.Department, e.Designation,
		e.JoiningDate, e.Salary, e.Status, e.ID).Scan(&e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *EmployeeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EmployeeRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
	return scanEmployee(row)
}

func (r *EmployeeRepo) GetByEmployeeID(ctx context.Context, employeeID string) (*models.Employee, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE employee_id = $1`, employeeID)
	return scanEmployee(row)
}

func (r *EmployeeRepo) GetByEmail(ctx context.Context, email string) (*models.Employee, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE email = $1`, email)
	return scanEmployee(row)
}

// List executes a resolved ListQuery: conditions are appended for each
// present filter, the sort field is mapped through sortColumns, and the
// window is applied last.
func (r *EmployeeRepo) List(ctx context.Context, q *query.ListQuery) ([]models.Employee, error) {
	sql := `SELECT ` + employeeColumns + ` FROM employees`
	where, args := employeeConditions(q)
	sql += where

	col, ok := sortColumns[q.SortBy]
	if !ok {
		return nil, fmt.Errorf("unmapped sort field %q", q.SortBy)
	}
	dir := "ASC"
	if q.SortOrder == query.SortDesc {
		dir = "DESC"
	}
	sql += fmt.Sprintf(" ORDER BY %s %s LIMIT $%d OFFSET $%d", col, dir, len(args)+1, len(args)+2)
	args = append(args, q.Limit, q.Skip())

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEmployees(rows)
}

// Count returns the number of records matching the same filter as List.
func (r *EmployeeRepo) Count(ctx context.Context, q *query.ListQuery) (int, error) {
	sql := `SELECT COUNT(*) FROM employees`
	where, args := employeeConditions(q)
	sql += where

	var count int
	err := r.pool.QueryRow(ctx, sql, args...).Scan(&count)
	return count, err
}

func employeeConditions(q *query.ListQuery) (string, []any) {
	var conds []string
	args := []any{}

	if q.Department != "" {
		args = append(args, "%"+q.Department+"%")
		conds = append(conds, fmt.Sprintf("department ILIKE $%d", len(args)))
	}
	if q.Status != "" {
		args = append(args, q.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if q.Designation != "" {
		args = append(args, "%"+q.Designation+"%")
		conds = append(conds, fmt.Sprintf("designation ILIKE $%d", len(args)))
	}
	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(name ILIKE $%d OR email ILIKE $%d OR employee_id ILIKE $%d OR department ILIKE $%d OR designation ILIKE $%d OR address ILIKE $%d)",
			n, n, n, n, n, n))
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

func (r *EmployeeRepo) CountAll(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&count)
	return count, err
}

func (r *EmployeeRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE status = $1`, status).Scan(&count)
	return count, err
}

// ---- Analytics aggregates ----

type DepartmentCount struct {
	Department string `json:"_id"`
	Count      int    `json:"count"`
}

type SalaryStats struct {
	AvgSalary   float64 `json:"avgSalary"`
	MinSalary   float64 `json:"minSalary"`
	MaxSalary   float64 `json:"maxSalary"`
	TotalSalary float64 `json:"totalSalary"`
}

type StatusCount struct {
	Status string `json:"_id"`
	Count  int    `json:"count"`
}

type DepartmentSalary struct {
	Department string  `json:"_id"`
	AvgSalary  float64 `json:"avgSalary"`
	Count      int     `json:"count"`
}

type HireBucket struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Count int `json:"count"`
}

func (r *EmployeeRepo) DepartmentCounts(ctx context.Context) ([]DepartmentCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT department, COUNT(*) FROM employees
		GROUP BY department ORDER BY COUNT(*) DESC, department ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DepartmentCount
	for rows.Next() {
		var d DepartmentCount
		if err := rows.Scan(&d.Department, &d.Count); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *EmployeeRepo) SalaryStats(ctx context.Context) (*SalaryStats, error) {
	var s SalaryStats
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(AVG(salary), 0), COALESCE(MIN(salary), 0),
		       COALESCE(MAX(salary), 0), COALESCE(SUM(salary), 0)
		FROM employees
	`).Scan(&s.AvgSalary, &s.MinSalary, &s.MaxSalary, &s.TotalSalary)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *EmployeeRepo) StatusCounts(ctx context.Context) ([]StatusCount, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM employees GROUP BY status ORDER BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StatusCount
	for rows.Next() {
		var s StatusCount
		if err := rows.Scan(&s.Status, &s.Count); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *EmployeeRepo) CountHiredSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE joining_date >= $1`, since).Scan(&count)
	return count, err
}

func (r *EmployeeRepo) TopDepartmentsBySalary(ctx context.Context, limit int) ([]DepartmentSalary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT department, AVG(salary), COUNT(*) FROM employees
		GROUP BY department ORDER BY AVG(salary) DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DepartmentSalary
	for rows.Next() {
		var d DepartmentSalary
		if err := rows.Scan(&d.Department, &d.AvgSalary, &d.Count); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// MonthlyHireCounts returns the trailing `buckets` year/month hire
// buckets in ascending order.
func (r *EmployeeRepo) MonthlyHireCounts(ctx context.Context, buckets int) ([]HireBucket, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT year, month, count FROM (
			SELECT EXTRACT(YEAR FROM joining_date)::int AS year,
			       EXTRACT(MONTH FROM joining_date)::int AS month,
			       COUNT(*)::int AS count
			FROM employees
			GROUP BY 1, 2
			ORDER BY 1 DESC, 2 DESC
			LIMIT $1
		) recent ORDER BY year ASC, month ASC
	`, buckets)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HireBucket
	for rows.Next() {
		var b HireBucket
		if err := rows.Scan(&b.Year, &b.Month, &b.Count); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// CountLongTermActive counts employees who are active and were hired
// on or before the cutoff. Feeds the retention rate.
func (r *EmployeeRepo) CountLongTermActive(ctx context.Context, cutoff time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM employees WHERE joining_date <= $1 AND status = $2
	`, cutoff, models.StatusActive).Scan(&count)
	return count, err
}

func scanEmployee(row pgx.Row) (*models.Employee, error) {
	var e models.Employee
	err := row.Scan(&e.ID, &e.EmployeeID, &e.Name, &e.Email, &e.Phone, &e.Address,
		&e.Department, &e.Designation, &e.JoiningDate, &e.Salary, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func scanEmployees(rows pgx.Rows) ([]models.Employee, error) {
	var employees []models.Employee
	for rows.Next() {
		var e models.Employee
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.Name, &e.Email, &e.Phone, &e.Address,
			&e.Department, &e.Designation, &e.JoiningDate, &e.Salary, &e.Status, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}
