package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/placement-portal/internal/app/models"
	"github.com/yigit/placement-portal/internal/app/repositories"
)

func student(email string, dept models.Department, cgpa float64, companies ...string) *models.StudentRecord {
	return &models.StudentRecord{
		Email:        email,
		Department:   dept,
		CGPA:         cgpa,
		IsPlaced:     len(companies) > 0,
		NoOfOffers:   len(companies),
		CompanyNames: companies,
	}
}

func TestDepartmentStats_ThreeCSEStudents(t *testing.T) {
	records := []*models.StudentRecord{
		student("a@college.edu", models.DepartmentCSE, 8.0, "TCS"),
		student("b@college.edu", models.DepartmentCSE, 9.0, "Infosys"),
		student("c@college.edu", models.DepartmentCSE, 7.5),
	}

	stats := DepartmentStats(records)
	require.Len(t, stats, 1)

	cse := stats[0]
	assert.Equal(t, models.DepartmentCSE, cse.Department)
	assert.Equal(t, 3, cse.TotalStudents)
	assert.Equal(t, 2, cse.PlacedStudents)
	assert.Equal(t, 1, cse.NotPlacedStudents)
	assert.Equal(t, 66.67, cse.PlacementRate)
	assert.Equal(t, 8.17, cse.AvgCGPA)
	assert.Equal(t, 2, cse.TotalOffers)
}

func TestDepartmentStats_SortedByDepartment(t *testing.T) {
	records := []*models.StudentRecord{
		student("a@college.edu", models.DepartmentMECH, 7),
		student("b@college.edu", models.DepartmentCSE, 8),
		student("c@college.edu", models.DepartmentECE, 9),
		student("d@college.edu", models.DepartmentCSE, 6),
	}

	stats := DepartmentStats(records)
	require.Len(t, stats, 3)
	assert.Equal(t, models.DepartmentCSE, stats[0].Department)
	assert.Equal(t, models.DepartmentECE, stats[1].Department)
	assert.Equal(t, models.DepartmentMECH, stats[2].Department)
	assert.Equal(t, 0.0, stats[0].PlacementRate)
	assert.Equal(t, 7.0, stats[0].AvgCGPA)
}

func TestCompanyStats_CountsAndOrder(t *testing.T) {
	records := []*models.StudentRecord{
		student("a@college.edu", models.DepartmentCSE, 8, "TCS", "Wipro"),
		student("b@college.edu", models.DepartmentECE, 8, "TCS"),
		student("c@college.edu", models.DepartmentCSE, 8, "TCS"),
		student("d@college.edu", models.DepartmentIT, 8, "Accenture"),
		student("e@college.edu", models.DepartmentIT, 8),
	}

	stats := CompanyStats(records)
	require.Len(t, stats, 3)

	assert.Equal(t, "TCS", stats[0].Company)
	assert.Equal(t, 3, stats[0].TotalOffers)
	assert.Equal(t, []models.DepartmentCount{
		{Department: models.DepartmentCSE, Count: 2},
		{Department: models.DepartmentECE, Count: 1},
	}, stats[0].DepartmentCounts)

	// Ties on total are broken by name.
	assert.Equal(t, "Accenture", stats[1].Company)
	assert.Equal(t, "Wipro", stats[2].Company)

	for _, c := range stats {
		sum := 0
		for _, d := range c.DepartmentCounts {
			sum += d.Count
		}
		assert.Equal(t, c.TotalOffers, sum, c.Company)
	}
}

func TestCompanyStats_IgnoresUnplaced(t *testing.T) {
	rec := student("a@college.edu", models.DepartmentCSE, 8, "TCS")
	rec.IsPlaced = false
	assert.Empty(t, CompanyStats([]*models.StudentRecord{rec}))
}

func TestOverallStats(t *testing.T) {
	records := []*models.StudentRecord{
		student("a@college.edu", models.DepartmentCSE, 8.0, "TCS", "Wipro"),
		student("b@college.edu", models.DepartmentECE, 9.0),
	}
	overall := OverallStats(records)
	assert.Equal(t, 2, overall.TotalStudents)
	assert.Equal(t, 1, overall.PlacedStudents)
	assert.Equal(t, 1, overall.NotPlacedStudents)
	assert.Equal(t, 50.0, overall.PlacementRate)
	assert.Equal(t, 8.5, overall.AvgCGPA)
	assert.Equal(t, 2, overall.TotalOffers)
}

func TestAnalytics_EmptyPopulation(t *testing.T) {
	assert.Empty(t, DepartmentStats(nil))
	assert.Empty(t, CompanyStats(nil))
	assert.Equal(t, models.PlacementSummary{}, OverallStats(nil))
}

func TestAnalyticsService_GetReport(t *testing.T) {
	repo := repositories.NewMemoryStudentRepository(
		student("a@college.edu", models.DepartmentCSE, 8.0, "TCS"),
		student("b@college.edu", models.DepartmentCSE, 9.0, "Infosys"),
		student("c@college.edu", models.DepartmentCSE, 7.5),
	)
	cache := &recordingCache{}
	svc := NewAnalyticsService(repo, cache, zerolog.Nop())

	report, err := svc.GetReport(context.Background())
	require.NoError(t, err)
	require.Len(t, report.DepartmentStats, 1)
	assert.Len(t, report.CompanyStats, 2)
	assert.Equal(t, 3, report.OverallStats.TotalStudents)
	assert.Equal(t, 1, cache.sets)

	// Served from the cache until invalidated.
	_, err = repo.DeleteAll(context.Background())
	require.NoError(t, err)
	again, err := svc.GetReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, again.OverallStats.TotalStudents)

	svc.Invalidate(context.Background())
	fresh, err := svc.GetReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.OverallStats.TotalStudents)
}

func TestAnalyticsService_CacheReadErrorFallsThrough(t *testing.T) {
	repo := repositories.NewMemoryStudentRepository(student("a@college.edu", models.DepartmentIT, 7))
	cache := &recordingCache{getErr: errors.New("redis down")}

	report, err := NewAnalyticsService(repo, cache, zerolog.Nop()).GetReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.OverallStats.TotalStudents)
	assert.Equal(t, 0, cache.sets)
}

func TestAnalyticsService_UpsertDuringReportIsNotHidden(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStudentRepository()
	gated := newGatedStudentRepo(store)
	cache := &recordingCache{}
	analytics := NewAnalyticsService(gated, cache, zerolog.Nop())
	students := newStudentService(store, cache)

	type result struct {
		report *models.AnalyticsReport
		err    error
	}
	done := make(chan result, 1)
	go func() {
		r, err := analytics.GetReport(ctx)
		done <- result{r, err}
	}()

	// All three reads have seen the empty store before the save lands.
	for i := 0; i < 3; i++ {
		<-gated.listed
	}
	_, err := students.UpsertProfile(ctx, "a@college.edu", validProfile())
	require.NoError(t, err)
	close(gated.release)

	first := <-done
	require.NoError(t, first.err)
	assert.Equal(t, 0, first.report.OverallStats.TotalStudents)

	next, err := analytics.GetReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, next.OverallStats.TotalStudents)
}

func TestAnalyticsService_ReadFailureFailsReport(t *testing.T) {
	repo := &mockStudentRepo{}
	boom := errors.New("connection reset")
	repo.On("List", mock.Anything, mock.MatchedBy(func(f models.StudentFilter) bool { return f.Placed != nil })).
		Return(nil, boom)
	repo.On("List", mock.Anything, models.StudentFilter{}).
		Return([]*models.StudentRecord{}, nil)

	cache := &recordingCache{}
	report, err := NewAnalyticsService(repo, cache, zerolog.Nop()).GetReport(context.Background())
	assert.Nil(t, report)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, cache.sets)
}
