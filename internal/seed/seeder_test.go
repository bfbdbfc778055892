package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/jobboard/job-portal/internal/core/domain"
	"github.com/jobboard/job-portal/internal/core/ports"
)

type fakeAuth struct {
	ports.AuthService
	emails map[string]string
}

func (f *fakeAuth) Register(_ context.Context, in ports.RegisterInput) (*domain.User, error) {
	if _, ok := f.emails[in.Email]; ok {
		return nil, &domain.DuplicateKeyError{Field: "email"}
	}
	id := fmt.Sprintf("user-%d", len(f.emails)+1)
	f.emails[in.Email] = id
	return &domain.User{ID: id, Email: in.Email, Role: in.Role}, nil
}

type fakeJobs struct {
	ports.JobService
	created []ports.CreateJobInput
	err     error
}

func (f *fakeJobs) CreateJob(_ context.Context, in ports.CreateJobInput) (*domain.Job, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, in)
	return &domain.Job{ID: fmt.Sprintf("job-%d", len(f.created)), Title: in.Title}, nil
}

const fixtureYAML = `
users:
  - name: Acme Recruiter
    email: hr@acme.test
    password: secret1
    role: employer
    company: Acme
    jobs:
      - title: Go Developer
        description: Build APIs
        location: Remote
        jobType: Full Time
        salary: 100k
        requirements: [Go, MongoDB]
      - title: Intern
        description: Learn
        company: Acme Labs
        location: Berlin
        jobType: Internship
        salary: 1k
  - name: Jane Seeker
    email: jane@example.test
    password: secret1
`

func TestLoad(t *testing.T) {
	f, err := Load(strings.NewReader(fixtureYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(f.Users) != 2 || len(f.Users[0].Jobs) != 2 {
		t.Fatalf("unexpected fixture: %+v", f)
	}
	if f.Users[0].Jobs[0].Requirements[1] != "MongoDB" {
		t.Fatalf("requirements not decoded: %+v", f.Users[0].Jobs[0])
	}
}

func TestLoad_UnknownField(t *testing.T) {
	if _, err := Load(strings.NewReader("users:\n  - nmae: typo\n")); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestLoad_Empty(t *testing.T) {
	f, err := Load(strings.NewReader(""))
	if err != nil || len(f.Users) != 0 {
		t.Fatalf("expected empty fixture, got %+v %v", f, err)
	}
}

func TestLoadFile_BundledFixture(t *testing.T) {
	f, err := LoadFile("../../fixtures/seed.yaml")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(f.Users) == 0 {
		t.Fatal("bundled fixture has no users")
	}
}

func TestSeeder_Run(t *testing.T) {
	f, _ := Load(strings.NewReader(fixtureYAML))
	auth := &fakeAuth{emails: map[string]string{}}
	jobs := &fakeJobs{}
	s := NewSeeder(auth, jobs, zerolog.Nop())

	res, err := s.Run(context.Background(), f)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res != (Result{UsersCreated: 2, JobsCreated: 2}) {
		t.Fatalf("unexpected result: %+v", res)
	}
	if jobs.created[0].OwnerID != "user-1" || jobs.created[0].Company != "Acme" {
		t.Fatalf("company should default to the user's: %+v", jobs.created[0])
	}
	if jobs.created[1].Company != "Acme Labs" {
		t.Fatalf("explicit company overridden: %+v", jobs.created[1])
	}

	// A second run skips everyone.
	res, err = s.Run(context.Background(), f)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if res != (Result{UsersSkipped: 2}) || len(jobs.created) != 2 {
		t.Fatalf("expected idempotent second run, got %+v", res)
	}
}

func TestSeeder_Run_JobError(t *testing.T) {
	f, _ := Load(strings.NewReader(fixtureYAML))
	jobs := &fakeJobs{err: errors.New("invalid")}
	s := NewSeeder(&fakeAuth{emails: map[string]string{}}, jobs, zerolog.Nop())

	res, err := s.Run(context.Background(), f)
	if err == nil {
		t.Fatal("expected error")
	}
	if res.UsersCreated != 1 || res.JobsCreated != 0 {
		t.Fatalf("unexpected partial result: %+v", res)
	}
}
