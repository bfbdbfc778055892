package domain

import (
	"strings"
	"time"
)

// JobType is the employment arrangement of a posting.
type JobType string

const (
	JobTypeFullTime   JobType = "Full Time"
	JobTypePartTime   JobType = "Part Time"
	JobTypeFreelance  JobType = "Freelance"
	JobTypeInternship JobType = "Internship"
	JobTypeTemporary  JobType = "Temporary"
)

// JobTypes lists every accepted job type in display order.
var JobTypes = []JobType{
	JobTypeFullTime,
	JobTypePartTime,
	JobTypeFreelance,
	JobTypeInternship,
	JobTypeTemporary,
}

// JobStatus is the publication state of a posting. Only active jobs are listed.
type JobStatus string

const (
	JobStatusActive JobStatus = "active"
	JobStatusClosed JobStatus = "closed"
	JobStatusDraft  JobStatus = "draft"
)

func (t JobType) IsValid() bool {
	for _, known := range JobTypes {
		if t == known {
			return true
		}
	}
	return false
}

func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusActive, JobStatusClosed, JobStatusDraft:
		return true
	}
	return false
}

// Poster is the public slice of the user who created a job.
type Poster struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Company string `json:"company,omitempty"`
}

// Job is a single posting on the board.
type Job struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Company      string    `json:"company"`
	Location     string    `json:"location"`
	JobType      JobType   `json:"jobType"`
	Salary       string    `json:"salary"`
	Requirements []string  `json:"requirements"`
	PostedBy     string    `json:"postedBy"`
	Poster       *Poster   `json:"poster,omitempty"`
	Status       JobStatus `json:"status"`
	PostedDate   time.Time `json:"postedDate"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ApplyDefaults fills the fields that have a default and normalises
// whitespace. now is used for PostedDate when it is unset.
func (j *Job) ApplyDefaults(now time.Time) {
	j.Title = strings.TrimSpace(j.Title)
	j.Company = strings.TrimSpace(j.Company)
	j.Location = strings.TrimSpace(j.Location)
	j.Salary = strings.TrimSpace(j.Salary)
	j.Requirements = cleanRequirements(j.Requirements)

	if j.JobType == "" {
		j.JobType = JobTypeFullTime
	}
	if j.Status == "" {
		j.Status = JobStatusActive
	}
	if j.PostedDate.IsZero() {
		j.PostedDate = now
	}
}

// IsOwnedBy reports whether userID created the job.
func (j *Job) IsOwnedBy(userID string) bool {
	return userID != "" && j.PostedBy == userID
}

func cleanRequirements(in []string) []string {
	out := make([]string, 0, len(in))
	for _, r := range in {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

// JobTypeCount is one bucket of the per-type aggregation.
type JobTypeCount struct {
	JobType JobType `json:"jobType"`
	Count   int64   `json:"count"`
}

// JobStats summarises the board.
type JobStats struct {
	ByType         []JobTypeCount `json:"stats"`
	TotalJobs      int64          `json:"totalJobs"`
	TotalCompanies int64          `json:"totalCompanies"`
}
