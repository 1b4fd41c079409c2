package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	appauth "github.com/yigit/placement-portal/internal/app/auth"
	"github.com/yigit/placement-portal/internal/app/models/dto"
	"github.com/yigit/placement-portal/internal/app/services"
	"github.com/yigit/placement-portal/internal/middleware"
)

// StudentController serves the caller's own placement profile
type StudentController struct {
	studentService services.IStudentService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.IStudentService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		logger:         logger,
	}
}

// GetProfile returns the caller's profile
// @Summary Get own profile
// @Description Returns the placement profile of the authenticated student
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.StudentRecord} "Profile retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Student role required"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Router /student/profile [get]
func (c *StudentController) GetProfile(ctx *gin.Context) {
	principal, err := appauth.PrincipalFrom(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	record, err := c.studentService.GetProfile(ctx.Request.Context(), principal.Email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(record))
}

// UpsertProfile creates or updates the caller's profile
// @Summary Save own profile
// @Description Creates the authenticated student's profile or updates it. The email is always taken from the token. companyNames may be an array or a comma separated string.
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ProfileRequest true "Profile fields"
// @Success 200 {object} dto.APIResponse{data=models.StudentRecord} "Profile saved"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Student role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student/profile [post]
func (c *StudentController) UpsertProfile(ctx *gin.Context) {
	principal, err := appauth.PrincipalFrom(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.ProfileRequest
	if !middleware.BindJSON(ctx, &req) {
		requestLogger(ctx, &c.logger).Warn().Str("email", principal.Email).Msg("Malformed profile payload")
		return
	}

	record, err := c.studentService.UpsertProfile(ctx.Request.Context(), principal.Email, &req)
	if err != nil {
		requestLogger(ctx, &c.logger).Warn().Err(err).Str("email", principal.Email).Msg("Profile save rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(record))
}
