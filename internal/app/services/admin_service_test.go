package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/placement-portal/internal/app/models"
	"github.com/yigit/placement-portal/internal/app/repositories"
	"github.com/yigit/placement-portal/internal/pkg/export"
)

func newAdminService(t *testing.T, repo repositories.StudentRepository) *AdminService {
	t.Helper()
	f, err := export.NewFormatter(export.Options{})
	require.NoError(t, err)
	return NewAdminService(repo, f, zerolog.Nop())
}

func adminFixture() *repositories.MemoryStudentRepository {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	a := student("arun@college.edu", models.DepartmentCSE, 8.1, "TCS", "Wipro")
	a.District = "Salem"
	a.UpdatedAt = base
	b := student("bala@college.edu", models.DepartmentECE, 7.4)
	b.District = "Erode"
	b.UpdatedAt = base.Add(time.Hour)
	return repositories.NewMemoryStudentRepository(a, b)
}

func TestAdminService_ListStudents(t *testing.T) {
	svc := newAdminService(t, adminFixture())

	all, err := svc.ListStudents(context.Background(), models.StudentFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "bala@college.edu", all[0].Email)

	tcs, err := svc.ListStudents(context.Background(), models.NewStudentFilter("", "", "tcs"))
	require.NoError(t, err)
	require.Len(t, tcs, 1)
	assert.Equal(t, "arun@college.edu", tcs[0].Email)
}

func TestAdminService_GetStudent(t *testing.T) {
	repo := adminFixture()
	svc := newAdminService(t, repo)

	rec, err := repo.FindByEmail(context.Background(), "arun@college.edu")
	require.NoError(t, err)

	got, err := svc.GetStudent(context.Background(), rec.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "arun@college.edu", got.Email)
}

func TestAdminService_ExportCSV(t *testing.T) {
	svc := newAdminService(t, adminFixture())

	var buf bytes.Buffer
	err := svc.ExportStudents(context.Background(), models.NewStudentFilter("true", "", ""), export.FormatCSV, &buf)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "email,department,"))
	assert.Contains(t, lines[1], "arun@college.edu")
	assert.Contains(t, lines[1], `"TCS, Wipro"`)
}

func TestAdminService_ExportEmptyIsHeaderOnly(t *testing.T) {
	svc := newAdminService(t, repositories.NewMemoryStudentRepository())

	var buf bytes.Buffer
	require.NoError(t, svc.ExportStudents(context.Background(), models.StudentFilter{}, export.FormatCSV, &buf))
	assert.Equal(t, strings.Join(export.DefaultFields, ",")+"\n", buf.String())
}

func TestAdminService_ExportReadFailureWritesNothing(t *testing.T) {
	boom := errors.New("cursor killed")
	repo := &mockStudentRepo{}
	repo.On("List", mock.Anything, mock.Anything).Return(nil, boom)

	var buf bytes.Buffer
	err := newAdminService(t, repo).ExportStudents(context.Background(), models.StudentFilter{}, export.FormatCSV, &buf)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, buf.Len())
}
