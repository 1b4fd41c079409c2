package services

import (
	"context"
	"io"

	"github.com/yigit/placement-portal/internal/app/models"
	"github.com/yigit/placement-portal/internal/app/models/dto"
	"github.com/yigit/placement-portal/internal/pkg/export"
)

// Services defined in this package:
// - AuthService: login and the current account
// - StudentService: a student's own placement profile
// - AdminService: listing, lookup and export of student records
// - AnalyticsService: the placement report

// IAuthService authenticates accounts and issues access tokens
type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	GetCurrentUser(ctx context.Context, userID int64) (*dto.UserResponse, error)
}

// IStudentService reads and writes the caller's own profile
type IStudentService interface {
	GetProfile(ctx context.Context, email string) (*models.StudentRecord, error)
	UpsertProfile(ctx context.Context, email string, req *dto.ProfileRequest) (*models.StudentRecord, error)
}

// IAdminService exposes the student records to administrators
type IAdminService interface {
	ListStudents(ctx context.Context, filter models.StudentFilter) ([]*models.StudentRecord, error)
	GetStudent(ctx context.Context, id string) (*models.StudentRecord, error)
	ExportStudents(ctx context.Context, filter models.StudentFilter, format export.Format, w io.Writer) error
}

// IAnalyticsService produces the placement report
type IAnalyticsService interface {
	GetReport(ctx context.Context) (*models.AnalyticsReport, error)
}
