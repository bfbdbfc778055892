package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jobboard/job-portal/internal/core/domain"
)

func TestJobDocument_RoundTrip(t *testing.T) {
	owner := primitive.NewObjectID()
	id := primitive.NewObjectID()
	posted := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	job := &domain.Job{
		ID:          id.Hex(),
		Title:       "Go Developer",
		Company:     "Acme",
		JobType:     domain.JobTypeFreelance,
		PostedBy:    owner.Hex(),
		Status:      domain.JobStatusDraft,
		PostedDate:  posted,
		Description: "Build services",
	}

	doc, err := toJobDocument(job)
	if err != nil {
		t.Fatalf("toJobDocument: %v", err)
	}
	if doc.ID != id || doc.PostedBy != owner {
		t.Fatalf("ids not converted: %+v", doc)
	}
	if doc.Requirements == nil {
		t.Fatalf("requirements must be stored as an empty array, not null")
	}

	doc.Poster = &posterDocument{ID: owner, Name: "Alice", Company: "Acme"}
	back := doc.toDomain()
	if back.ID != job.ID || back.PostedBy != job.PostedBy || back.JobType != job.JobType || !back.PostedDate.Equal(posted) {
		t.Fatalf("round trip mismatch: %+v", back)
	}
	if back.Poster == nil || back.Poster.Name != "Alice" || back.Poster.ID != owner.Hex() {
		t.Fatalf("poster not mapped: %+v", back.Poster)
	}
}

func TestToJobDocument_InvalidIDs(t *testing.T) {
	if _, err := toJobDocument(&domain.Job{PostedBy: "nope"}); err != domain.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized for a malformed owner, got %v", err)
	}
	owner := primitive.NewObjectID().Hex()
	if _, err := toJobDocument(&domain.Job{ID: "nope", PostedBy: owner}); err != domain.ErrJobNotFound {
		t.Fatalf("expected ErrJobNotFound for a malformed id, got %v", err)
	}
}
