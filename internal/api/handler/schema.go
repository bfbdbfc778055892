package handler

import "github.com/jobboard/job-portal/internal/core/domain"

// response is the success envelope for endpoints without a typed payload.
type response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

// errorResponse documents the error envelope rendered by the API error handler.
type errorResponse struct {
	Success bool     `json:"success" example:"false"`
	Error   string   `json:"error" example:"Validation Error"`
	Details []string `json:"details,omitempty"`
}

type pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"omitempty,oneof=jobseeker employer admin"`
	Company  string `json:"company"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

type userResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Token   string       `json:"token,omitempty"`
	Data    *domain.User `json:"data"`
}

type resetTokenResponse struct {
	ResetToken string `json:"resetToken,omitempty"`
	ExpiresAt  string `json:"expiresAt,omitempty"`
}

// --- Jobs ---

type createJobRequest struct {
	Title        string   `json:"title"        validate:"required"`
	Description  string   `json:"description"  validate:"required"`
	Company      string   `json:"company"      validate:"required"`
	Location     string   `json:"location"     validate:"required"`
	JobType      string   `json:"jobType"      validate:"omitempty,oneof='Full Time' 'Part Time' Freelance Internship Temporary"`
	Salary       string   `json:"salary"       validate:"required"`
	Requirements []string `json:"requirements"`
	Status       string   `json:"status"       validate:"omitempty,oneof=active closed draft"`
}

// updateJobRequest carries a partial update; absent fields stay unchanged.
type updateJobRequest struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	Company      *string   `json:"company"`
	Location     *string   `json:"location"`
	JobType      *string   `json:"jobType"      validate:"omitempty,oneof='Full Time' 'Part Time' Freelance Internship Temporary"`
	Salary       *string   `json:"salary"`
	Requirements *[]string `json:"requirements"`
	Status       *string   `json:"status"       validate:"omitempty,oneof=active closed draft"`
}

// listJobsQuery is bound from the query string of GET /api/jobs.
type listJobsQuery struct {
	Keyword  string
	Location string
	JobType  string
	Page     int
	Limit    int
	Sort     string
}

type jobResponse struct {
	Success bool        `json:"success"`
	Data    *domain.Job `json:"data"`
}

type jobListResponse struct {
	Success    bool          `json:"success"`
	Data       []*domain.Job `json:"data"`
	Pagination pagination    `json:"pagination"`
}

type jobStatsResponse struct {
	Success bool             `json:"success"`
	Data    *domain.JobStats `json:"data"`
}
