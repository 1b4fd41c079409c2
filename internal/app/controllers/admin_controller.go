package controllers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/placement-portal/internal/app/models"
	"github.com/yigit/placement-portal/internal/app/models/dto"
	"github.com/yigit/placement-portal/internal/app/services"
	"github.com/yigit/placement-portal/internal/middleware"
	"github.com/yigit/placement-portal/internal/pkg/apperrors"
	"github.com/yigit/placement-portal/internal/pkg/export"
)

// AdminController serves the administrator views of student records
type AdminController struct {
	adminService     services.IAdminService
	analyticsService services.IAnalyticsService
	logger           zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService services.IAdminService, analyticsService services.IAnalyticsService, logger zerolog.Logger) *AdminController {
	return &AdminController{
		adminService:     adminService,
		analyticsService: analyticsService,
		logger:           logger,
	}
}

func filterFromQuery(ctx *gin.Context) models.StudentFilter {
	return models.NewStudentFilter(ctx.Query("placed"), ctx.Query("department"), ctx.Query("search"))
}

// ListStudents lists student records
// @Summary List students
// @Description Lists student records, most recently updated first. All filters are optional and combine with AND.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param placed query string false "Placement status" Enums(true, false)
// @Param department query string false "Department" Enums(CSE, IT, ECE, EEE, MECH, CIVIL)
// @Param search query string false "Case-insensitive substring of email, district, native place or a company name"
// @Success 200 {object} dto.APIResponse{data=[]models.StudentRecord} "Students retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/students [get]
func (c *AdminController) ListStudents(ctx *gin.Context) {
	records, err := c.adminService.ListStudents(ctx.Request.Context(), filterFromQuery(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(records, len(records)))
}

// GetStudent returns one student record
// @Summary Get student
// @Description Returns a single student record by id
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Record id"
// @Success 200 {object} dto.APIResponse{data=models.StudentRecord} "Student retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /admin/students/{id} [get]
func (c *AdminController) GetStudent(ctx *gin.Context) {
	record, err := c.adminService.GetStudent(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(record))
}

// GetAnalytics returns the placement report
// @Summary Placement analytics
// @Description Per-department statistics, per-company offer counts and overall totals
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.AnalyticsReport} "Report computed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/analytics [get]
func (c *AdminController) GetAnalytics(ctx *gin.Context) {
	report, err := c.analyticsService.GetReport(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(report))
}

// Export downloads the filtered records
// @Summary Export students
// @Description Downloads the filtered records as CSV (default) or XLSX
// @Tags admin
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param placed query string false "Placement status" Enums(true, false)
// @Param department query string false "Department" Enums(CSE, IT, ECE, EEE, MECH, CIVIL)
// @Param search query string false "Search text"
// @Param format query string false "File format" Enums(csv, xlsx)
// @Success 200 {file} file "Export file"
// @Failure 400 {object} dto.ErrorResponse "Unsupported format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/export [get]
func (c *AdminController) Export(ctx *gin.Context) {
	format, err := export.ParseFormat(ctx.Query("format"))
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError(err.Error()))
		return
	}

	// Rendered to a buffer first so a failure can still answer with JSON.
	var buf bytes.Buffer
	if err := c.adminService.ExportStudents(ctx.Request.Context(), filterFromQuery(ctx), format, &buf); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	requestLogger(ctx, &c.logger).Info().Str("format", string(format)).Int("bytes", buf.Len()).Msg("Student export served")
	ctx.Header("Content-Disposition", "attachment; filename="+format.Filename())
	ctx.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
