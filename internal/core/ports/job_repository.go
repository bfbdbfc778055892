package ports

import (
	"context"

	"github.com/jobboard/job-portal/internal/core/domain"
)

// SortField is one key of a job listing sort, using the API field name.
type SortField struct {
	Field      string
	Descending bool
}

// JobFilter carries the query built by the service for listing jobs.
type JobFilter struct {
	Keyword  string           // optional: case-insensitive substring of title, description or company
	Location string           // optional: case-insensitive substring of location
	JobType  string           // optional: exact match
	Status   domain.JobStatus // always set by the service
	Sort     []SortField
	Skip     int64
	Limit    int64
}

// JobRepository defines persistence operations for jobs.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) (*domain.Job, error)
	// FindByID returns the job with its poster populated.
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	// List returns a page of jobs matching filter and the total match count.
	List(ctx context.Context, filter JobFilter) ([]*domain.Job, int64, error)
	// Update persists job; the write only matches when job.PostedBy still owns it.
	Update(ctx context.Context, job *domain.Job) (*domain.Job, error)
	Delete(ctx context.Context, id, ownerID string) error
	Stats(ctx context.Context) (*domain.JobStats, error)
}
