package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobboard/job-portal/internal/core/domain"
	"github.com/jobboard/job-portal/internal/core/ports"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
	maxPage      = 1_000_000
	defaultSort  = "-postedDate"
)

// sortableFields lists the API field names a listing may be sorted by.
var sortableFields = map[string]struct{}{
	"postedDate": {},
	"createdAt":  {},
	"updatedAt":  {},
	"title":      {},
	"company":    {},
	"location":   {},
	"salary":     {},
	"jobType":    {},
}

type JobService struct {
	repo   ports.JobRepository
	users  ports.UserRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewJobService(repo ports.JobRepository, users ports.UserRepository, logger zerolog.Logger) *JobService {
	return &JobService{
		repo:   repo,
		users:  users,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// ListJobs returns one page of active jobs matching the optional filters.
func (s *JobService) ListJobs(ctx context.Context, in ports.ListJobsInput) (*ports.ListJobsResult, error) {
	page := in.Page
	if page < 1 {
		page = defaultPage
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if page > maxPage {
		ve := &domain.ValidationError{}
		ve.Add("page", fmt.Sprintf("page must be at most %d", maxPage))
		return nil, ve
	}

	sort, err := parseSort(in.Sort)
	if err != nil {
		return nil, err
	}

	filter := ports.JobFilter{
		Keyword:  strings.TrimSpace(in.Keyword),
		Location: strings.TrimSpace(in.Location),
		JobType:  strings.TrimSpace(in.JobType),
		Status:   domain.JobStatusActive,
		Sort:     sort,
		Skip:     int64((page - 1) * limit),
		Limit:    int64(limit),
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list jobs")
		return nil, err
	}
	if items == nil {
		items = []*domain.Job{}
	}

	return &ports.ListJobsResult{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: pageCount(total, limit),
	}, nil
}

func (s *JobService) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrJobNotFound
	}
	return s.repo.FindByID(ctx, id)
}

// CreateJob persists a new posting owned by input.OwnerID.
func (s *JobService) CreateJob(ctx context.Context, in ports.CreateJobInput) (*domain.Job, error) {
	if in.OwnerID == "" {
		return nil, domain.ErrUnauthorized
	}

	now := s.now()
	job := &domain.Job{
		Title:        in.Title,
		Description:  in.Description,
		Company:      in.Company,
		Location:     in.Location,
		JobType:      domain.JobType(in.JobType),
		Salary:       in.Salary,
		Requirements: in.Requirements,
		Status:       domain.JobStatus(in.Status),
		PostedBy:     in.OwnerID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	job.ApplyDefaults(now)

	if err := job.Validate(); err != nil {
		return nil, err
	}

	// postedBy must reference an existing account.
	if _, err := s.users.FindByID(ctx, in.OwnerID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	created, err := s.repo.Create(ctx, job)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create job")
		return nil, err
	}

	s.logger.Info().Str("job_id", created.ID).Str("owner_id", in.OwnerID).Msg("job created")
	return created, nil
}

// UpdateJob applies a partial update after checking that the requester owns the job.
func (s *JobService) UpdateJob(ctx context.Context, in ports.UpdateJobInput) (*domain.Job, error) {
	job, err := s.ownedJob(ctx, in.ID, in.RequesterID)
	if err != nil {
		return nil, err
	}

	applyPatch(job, in)
	job.UpdatedAt = s.now()
	job.ApplyDefaults(job.UpdatedAt)

	if err := job.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, job)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("job_id", updated.ID).Str("owner_id", in.RequesterID).Msg("job updated")
	return updated, nil
}

// DeleteJob removes a job after checking that the requester owns it.
func (s *JobService) DeleteJob(ctx context.Context, id, requesterID string) error {
	job, err := s.ownedJob(ctx, id, requesterID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, job.ID, requesterID); err != nil {
		return err
	}

	s.logger.Info().Str("job_id", job.ID).Str("owner_id", requesterID).Msg("job deleted")
	return nil
}

func (s *JobService) Stats(ctx context.Context) (*domain.JobStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("job stats: %w", err)
	}
	return stats, nil
}

func (s *JobService) ownedJob(ctx context.Context, id, requesterID string) (*domain.Job, error) {
	job, err := s.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if !job.IsOwnedBy(requesterID) {
		s.logger.Warn().Str("job_id", id).Str("requester_id", requesterID).Msg("ownership check failed")
		return nil, domain.ErrNotJobOwner
	}
	return job, nil
}

func applyPatch(job *domain.Job, in ports.UpdateJobInput) {
	if in.Title != nil {
		job.Title = *in.Title
	}
	if in.Description != nil {
		job.Description = *in.Description
	}
	if in.Company != nil {
		job.Company = *in.Company
	}
	if in.Location != nil {
		job.Location = *in.Location
	}
	if in.JobType != nil {
		job.JobType = domain.JobType(*in.JobType)
	}
	if in.Salary != nil {
		job.Salary = *in.Salary
	}
	if in.Requirements != nil {
		job.Requirements = *in.Requirements
	}
	if in.Status != nil {
		job.Status = domain.JobStatus(*in.Status)
	}
}

// parseSort turns "-postedDate,title" into sort fields. An empty value sorts
// newest first.
func parseSort(raw string) ([]ports.SortField, error) {
	if strings.TrimSpace(raw) == "" {
		raw = defaultSort
	}

	var fields []ports.SortField
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		desc := strings.HasPrefix(part, "-")
		name := strings.TrimPrefix(part, "-")
		if _, ok := sortableFields[name]; !ok {
			ve := &domain.ValidationError{}
			ve.Add("sort", fmt.Sprintf("cannot sort by `%s`", name))
			return nil, ve
		}
		fields = append(fields, ports.SortField{Field: name, Descending: desc})
	}
	if len(fields) == 0 {
		return parseSort(defaultSort)
	}
	return fields, nil
}

// pageCount is ceil(total/limit).
func pageCount(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
