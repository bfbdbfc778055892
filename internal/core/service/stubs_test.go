package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobboard/job-portal/internal/core/domain"
	"github.com/jobboard/job-portal/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory user repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by ID
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

// public mirrors the Mongo projection that hides secrets.
func public(u *domain.User) *domain.User {
	c := cloneUser(u)
	c.PasswordHash = ""
	c.ResetPasswordToken = ""
	c.ResetPasswordExpire = time.Time{}
	return c
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, &domain.DuplicateKeyError{Field: "email"}
		}
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users[stored.ID] = stored
	return public(stored), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return public(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return public(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindCredentials(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) SetResetToken(_ context.Context, userID, tokenHash string, expires time.Time) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.ResetPasswordToken = tokenHash
	u.ResetPasswordExpire = expires
	return nil
}

func (r *stubUserRepo) FindByResetToken(_ context.Context, tokenHash string, now time.Time) (*domain.User, error) {
	for _, u := range r.users {
		if u.ResetPasswordToken != "" && u.ResetPasswordToken == tokenHash && u.ResetPasswordExpire.After(now) {
			return public(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ConsumeResetToken(_ context.Context, tokenHash, passwordHash string, now time.Time) (*domain.User, error) {
	for _, u := range r.users {
		if u.ResetPasswordToken != "" && u.ResetPasswordToken == tokenHash && u.ResetPasswordExpire.After(now) {
			u.PasswordHash = passwordHash
			u.ResetPasswordToken = ""
			u.ResetPasswordExpire = time.Time{}
			return public(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// ---------------------------------------------------------------------------
// In-memory denylist
// ---------------------------------------------------------------------------

type stubDenylist struct {
	revoked   map[string]time.Time
	revokeErr error
}

func newStubDenylist() *stubDenylist {
	return &stubDenylist{revoked: make(map[string]time.Time)}
}

func (d *stubDenylist) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	if d.revokeErr != nil {
		return d.revokeErr
	}
	d.revoked[tokenID] = expiresAt
	return nil
}

func (d *stubDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, ok := d.revoked[tokenID]
	return ok, nil
}

// ---------------------------------------------------------------------------
// In-memory job repository
// ---------------------------------------------------------------------------

type stubJobRepo struct {
	jobs       map[string]*domain.Job
	order      []string
	lastFilter ports.JobFilter
	listErr    error
	createErr  error
	nextID     int
}

func newStubJobRepo() *stubJobRepo {
	return &stubJobRepo{jobs: make(map[string]*domain.Job)}
}

func cloneJob(j *domain.Job) *domain.Job {
	clone := *j
	clone.Requirements = append([]string(nil), j.Requirements...)
	return &clone
}

func (r *stubJobRepo) Create(_ context.Context, job *domain.Job) (*domain.Job, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	stored := cloneJob(job)
	stored.ID = fmt.Sprintf("job-%d", r.nextID)
	r.jobs[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	return cloneJob(stored), nil
}

func (r *stubJobRepo) FindByID(_ context.Context, id string) (*domain.Job, error) {
	j, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return cloneJob(j), nil
}

// List applies the same filters the Mongo query builder produces.
func (r *stubJobRepo) List(_ context.Context, f ports.JobFilter) ([]*domain.Job, int64, error) {
	r.lastFilter = f
	if r.listErr != nil {
		return nil, 0, r.listErr
	}

	contains := func(s, sub string) bool {
		return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
	}

	var matched []*domain.Job
	for _, id := range r.order {
		j := r.jobs[id]
		if f.Status != "" && j.Status != f.Status {
			continue
		}
		if f.JobType != "" && string(j.JobType) != f.JobType {
			continue
		}
		if f.Location != "" && !contains(j.Location, f.Location) {
			continue
		}
		if f.Keyword != "" && !contains(j.Title, f.Keyword) && !contains(j.Description, f.Keyword) && !contains(j.Company, f.Keyword) {
			continue
		}
		matched = append(matched, cloneJob(j))
	}

	sort.SliceStable(matched, func(a, b int) bool {
		return matched[a].PostedDate.After(matched[b].PostedDate)
	})

	total := int64(len(matched))
	if f.Skip >= total {
		return []*domain.Job{}, total, nil
	}
	end := f.Skip + f.Limit
	if f.Limit <= 0 || end > total {
		end = total
	}
	return matched[f.Skip:end], total, nil
}

func (r *stubJobRepo) Update(_ context.Context, job *domain.Job) (*domain.Job, error) {
	existing, ok := r.jobs[job.ID]
	if !ok || existing.PostedBy != job.PostedBy {
		return nil, domain.ErrJobNotFound
	}
	r.jobs[job.ID] = cloneJob(job)
	return cloneJob(job), nil
}

func (r *stubJobRepo) Delete(_ context.Context, id, ownerID string) error {
	existing, ok := r.jobs[id]
	if !ok || existing.PostedBy != ownerID {
		return domain.ErrJobNotFound
	}
	delete(r.jobs, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *stubJobRepo) Stats(_ context.Context) (*domain.JobStats, error) {
	counts := map[domain.JobType]int64{}
	companies := map[string]struct{}{}
	var active int64
	for _, j := range r.jobs {
		counts[j.JobType]++
		companies[j.Company] = struct{}{}
		if j.Status == domain.JobStatusActive {
			active++
		}
	}
	stats := &domain.JobStats{TotalJobs: active, TotalCompanies: int64(len(companies))}
	for _, t := range domain.JobTypes {
		if n := counts[t]; n > 0 {
			stats.ByType = append(stats.ByType, domain.JobTypeCount{JobType: t, Count: n})
		}
	}
	return stats, nil
}
