package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appauth "github.com/yigit/placement-portal/internal/app/auth"
	"github.com/yigit/placement-portal/internal/app/models"
	"github.com/yigit/placement-portal/internal/app/models/dto"
	"github.com/yigit/placement-portal/internal/middleware"
	"github.com/yigit/placement-portal/internal/pkg/apperrors"
)

type rejectingStudentService struct{}

func (rejectingStudentService) GetProfile(context.Context, string) (*models.StudentRecord, error) {
	return nil, apperrors.ErrStudentNotFound
}

func (rejectingStudentService) UpsertProfile(context.Context, string, *dto.ProfileRequest) (*models.StudentRecord, error) {
	return nil, apperrors.NewValidationError([]apperrors.FieldError{{Field: "cgpa", Message: "cgpa must be between 0 and 10"}})
}

func TestUpsertProfile_LogsWithRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var requestLog, controllerLog bytes.Buffer
	ctrl := NewStudentController(rejectingStudentService{}, zerolog.New(&controllerLog))

	router := gin.New()
	router.Use(middleware.RequestLogger(zerolog.New(&requestLog)))
	router.POST("/api/student/profile", func(c *gin.Context) {
		appauth.SetPrincipal(c, appauth.Principal{UserID: 3, Email: "arun@college.edu", Role: models.RoleStudent})
		c.Next()
	}, ctrl.UpsertProfile)

	req := httptest.NewRequest(http.MethodPost, "/api/student/profile", strings.NewReader(`{"cgpa": 12}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.RequestIDHeader, "req-9")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, controllerLog.String())

	var rejected string
	for _, line := range strings.Split(strings.TrimSpace(requestLog.String()), "\n") {
		if strings.Contains(line, "Profile save rejected") {
			rejected = line
		}
	}
	require.NotEmpty(t, rejected, requestLog.String())
	assert.Contains(t, rejected, `"requestID":"req-9"`)
	assert.Contains(t, rejected, `"email":"arun@college.edu"`)
}
