package services

import (
	"context"
	"fmt"
	"time"

	"github.com/employee-manager/backend/internal/models"
	"github.com/employee-manager/backend/internal/repositories"
)

const (
	recentHireWindow = 30 * 24 * time.Hour
	topDepartments   = 5
	growthBuckets    = 12
)

type AnalyticsOverview struct {
	TotalEmployees    int    `json:"totalEmployees"`
	ActiveEmployees   int    `json:"activeEmployees"`
	InactiveEmployees int    `json:"inactiveEmployees"`
	RetentionRate     string `json:"retentionRate"`
}

type AnalyticsPeriod struct {
	Type  string    `json:"type"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type AnalyticsData struct {
	Overview        AnalyticsOverview               `json:"overview"`
	DepartmentStats []repositories.DepartmentCount  `json:"departmentStats"`
	SalaryStats     repositories.SalaryStats        `json:"salaryStats"`
	StatusStats     []repositories.StatusCount      `json:"statusStats"`
	RecentHires     int                             `json:"recentHires"`
	TopDepartments  []repositories.DepartmentSalary `json:"topDepartments"`
	GrowthData      []repositories.HireBucket       `json:"growthData"`
	Period          AnalyticsPeriod                 `json:"period"`
}

// Analytics aggregates over the entire collection. The period selector
// only sets the echoed reporting-window boundaries; it does not scope
// which records are counted.
func (s *EmployeeService) Analytics(ctx context.Context, period string) (*AnalyticsData, error) {
	now := time.Now()

	total, err := s.employeeRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.employeeRepo.CountByStatus(ctx, models.StatusActive)
	if err != nil {
		return nil, err
	}

	departmentStats, err := s.employeeRepo.DepartmentCounts(ctx)
	if err != nil {
		return nil, err
	}
	salaryStats, err := s.employeeRepo.SalaryStats(ctx)
	if err != nil {
		return nil, err
	}
	statusStats, err := s.employeeRepo.StatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	recentHires, err := s.employeeRepo.CountHiredSince(ctx, now.Add(-recentHireWindow))
	if err != nil {
		return nil, err
	}
	top, err := s.employeeRepo.TopDepartmentsBySalary(ctx, topDepartments)
	if err != nil {
		return nil, err
	}
	growth, err := s.employeeRepo.MonthlyHireCounts(ctx, growthBuckets)
	if err != nil {
		return nil, err
	}
	longTerm, err := s.employeeRepo.CountLongTermActive(ctx, oneYearBefore(now))
	if err != nil {
		return nil, err
	}

	return &AnalyticsData{
		Overview: AnalyticsOverview{
			TotalEmployees:    total,
			ActiveEmployees:   active,
			InactiveEmployees: total - active,
			RetentionRate:     RetentionRate(longTerm, total),
		},
		DepartmentStats: departmentStats,
		SalaryStats:     *salaryStats,
		StatusStats:     statusStats,
		RecentHires:     recentHires,
		TopDepartments:  top,
		GrowthData:      growth,
		Period: AnalyticsPeriod{
			Type:  canonicalPeriod(period),
			Start: PeriodStart(now, period),
			End:   now,
		},
	}, nil
}

// PeriodStart resolves the reporting-window start for a period
// selector. Unknown selectors fall back to the current month.
func PeriodStart(now time.Time, period string) time.Time {
	switch period {
	case "week":
		return now.Add(-7 * 24 * time.Hour)
	case "quarter":
		quarter := (int(now.Month()) - 1) / 3
		return time.Date(now.Year(), time.Month(quarter*3+1), 1, 0, 0, 0, 0, now.Location())
	case "year":
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
}

func canonicalPeriod(period string) string {
	switch period {
	case "week", "month", "quarter", "year":
		return period
	default:
		return "month"
	}
}

// RetentionRate is the share of all-time employees who are both active
// and hired at least a year ago, as a percentage with one decimal.
func RetentionRate(longTermActive, total int) string {
	if total <= 0 {
		return "0%"
	}
	rate := float64(longTermActive) / float64(total) * 100
	return fmt.Sprintf("%.1f%%", rate)
}

func oneYearBefore(now time.Time) time.Time {
	return time.Date(now.Year()-1, now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
