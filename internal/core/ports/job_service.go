package ports

import (
	"context"

	"github.com/jobboard/job-portal/internal/core/domain"
)

// CreateJobInput carries the fields of a new posting.
type CreateJobInput struct {
	Title        string
	Description  string
	Company      string
	Location     string
	JobType      string
	Salary       string
	Requirements []string
	Status       string
	OwnerID      string
}

// UpdateJobInput is a partial update; nil fields are left unchanged.
type UpdateJobInput struct {
	ID           string
	RequesterID  string
	Title        *string
	Description  *string
	Company      *string
	Location     *string
	JobType      *string
	Salary       *string
	Requirements *[]string
	Status       *string
}

// ListJobsInput carries the query parameters of the listing endpoint.
type ListJobsInput struct {
	Keyword  string
	Location string
	JobType  string
	Page     int
	Limit    int
	Sort     string // comma separated, "-" prefix for descending
}

// ListJobsResult is one page of active jobs.
type ListJobsResult struct {
	Items []*domain.Job
	Total int64
	Page  int
	Limit int
	Pages int
}

type JobService interface {
	ListJobs(ctx context.Context, input ListJobsInput) (*ListJobsResult, error)
	GetJob(ctx context.Context, id string) (*domain.Job, error)
	CreateJob(ctx context.Context, input CreateJobInput) (*domain.Job, error)
	UpdateJob(ctx context.Context, input UpdateJobInput) (*domain.Job, error)
	DeleteJob(ctx context.Context, id, requesterID string) error
	Stats(ctx context.Context) (*domain.JobStats, error)
}
