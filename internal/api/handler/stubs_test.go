package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jobboard/job-portal/internal/api/middleware"
	"github.com/jobboard/job-portal/internal/core/domain"
	"github.com/jobboard/job-portal/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
	meFn       func(ctx context.Context, userID string) (*domain.User, error)
	logoutFn   func(ctx context.Context, tokenID string, expiresAt time.Time) error
	forgotFn   func(ctx context.Context, email string) (*ports.PasswordResetRequest, error)
	resetFn    func(ctx context.Context, token, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.meFn(ctx, userID)
}

func (s *stubAuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return s.logoutFn(ctx, tokenID, expiresAt)
}

func (s *stubAuthService) ForgotPassword(ctx context.Context, email string) (*ports.PasswordResetRequest, error) {
	return s.forgotFn(ctx, email)
}

func (s *stubAuthService) ResetPassword(ctx context.Context, token, password string) (string, *domain.User, error) {
	return s.resetFn(ctx, token, password)
}

type stubJobService struct {
	listFn   func(ctx context.Context, in ports.ListJobsInput) (*ports.ListJobsResult, error)
	getFn    func(ctx context.Context, id string) (*domain.Job, error)
	createFn func(ctx context.Context, in ports.CreateJobInput) (*domain.Job, error)
	updateFn func(ctx context.Context, in ports.UpdateJobInput) (*domain.Job, error)
	deleteFn func(ctx context.Context, id, requesterID string) error
	statsFn  func(ctx context.Context) (*domain.JobStats, error)
}

func (s *stubJobService) ListJobs(ctx context.Context, in ports.ListJobsInput) (*ports.ListJobsResult, error) {
	return s.listFn(ctx, in)
}

func (s *stubJobService) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	return s.getFn(ctx, id)
}

func (s *stubJobService) CreateJob(ctx context.Context, in ports.CreateJobInput) (*domain.Job, error) {
	return s.createFn(ctx, in)
}

func (s *stubJobService) UpdateJob(ctx context.Context, in ports.UpdateJobInput) (*domain.Job, error) {
	return s.updateFn(ctx, in)
}

func (s *stubJobService) DeleteJob(ctx context.Context, id, requesterID string) error {
	return s.deleteFn(ctx, id, requesterID)
}

func (s *stubJobService) Stats(ctx context.Context) (*domain.JobStats, error) {
	return s.statsFn(ctx)
}

// newContext builds an Echo context for a JSON request. Pass a non-empty
// userID to simulate the Auth middleware having run.
func newContext(method, target, body, userID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if userID != "" {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextRole, domain.RoleEmployer)
		c.Set(middleware.ContextTokenID, "jti-1")
		c.Set(middleware.ContextTokenExp, time.Now().Add(time.Hour))
	}
	return c, rec
}
