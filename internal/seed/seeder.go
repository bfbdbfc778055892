package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jobboard/job-portal/internal/core/domain"
	"github.com/jobboard/job-portal/internal/core/ports"
)

// Result summarises a seeding run.
type Result struct {
	UsersCreated int
	UsersSkipped int
	JobsCreated  int
}

// Seeder writes fixtures through the services so every domain rule applies.
type Seeder struct {
	auth ports.AuthService
	jobs ports.JobService
	log  zerolog.Logger
}

func NewSeeder(auth ports.AuthService, jobs ports.JobService, log zerolog.Logger) *Seeder {
	return &Seeder{auth: auth, jobs: jobs, log: log}
}

// Run registers every fixture user and creates their jobs. Users whose email
// is already registered are skipped along with their jobs, so a fixture can
// be loaded more than once.
func (s *Seeder) Run(ctx context.Context, f *Fixture) (Result, error) {
	var res Result

	for _, u := range f.Users {
		user, err := s.auth.Register(ctx, ports.RegisterInput{
			Name:     u.Name,
			Email:    u.Email,
			Password: u.Password,
			Role:     u.Role,
			Company:  u.Company,
		})
		if err != nil {
			var dup *domain.DuplicateKeyError
			if errors.As(err, &dup) {
				s.log.Info().Str("email", u.Email).Msg("user exists, skipping")
				res.UsersSkipped++
				continue
			}
			return res, fmt.Errorf("register %s: %w", u.Email, err)
		}
		res.UsersCreated++

		for _, j := range u.Jobs {
			company := j.Company
			if company == "" {
				company = u.Company
			}
			job, err := s.jobs.CreateJob(ctx, ports.CreateJobInput{
				Title:        j.Title,
				Description:  j.Description,
				Company:      company,
				Location:     j.Location,
				JobType:      j.JobType,
				Salary:       j.Salary,
				Requirements: j.Requirements,
				Status:       j.Status,
				OwnerID:      user.ID,
			})
			if err != nil {
				return res, fmt.Errorf("create job %q for %s: %w", j.Title, u.Email, err)
			}
			s.log.Debug().Str("job_id", job.ID).Str("title", job.Title).Msg("job created")
			res.JobsCreated++
		}
	}

	return res, nil
}
