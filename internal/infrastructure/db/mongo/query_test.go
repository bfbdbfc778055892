package mongo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jobboard/job-portal/internal/core/domain"
	"github.com/jobboard/job-portal/internal/core/ports"
)

func TestBuildJobQuery_Empty(t *testing.T) {
	if q := buildJobQuery(ports.JobFilter{}); len(q) != 0 {
		t.Fatalf("expected empty query, got %v", q)
	}
}

func TestBuildJobQuery_AllFilters(t *testing.T) {
	q := buildJobQuery(ports.JobFilter{
		Keyword:  "go (senior)",
		Location: "Remote",
		JobType:  string(domain.JobTypeFullTime),
		Status:   domain.JobStatusActive,
	})

	or, ok := q["$or"].(bson.A)
	if !ok || len(or) != 3 {
		t.Fatalf("expected $or over three fields, got %v", q["$or"])
	}
	title := or[0].(bson.M)["title"].(primitive.Regex)
	if title.Pattern != `go \(senior\)` || title.Options != "i" {
		t.Fatalf("keyword must be escaped and case-insensitive, got %+v", title)
	}

	loc, ok := q["location"].(primitive.Regex)
	if !ok || loc.Pattern != "Remote" {
		t.Fatalf("unexpected location filter: %v", q["location"])
	}
	if q["job_type"] != "Full Time" {
		t.Fatalf("unexpected job_type filter: %v", q["job_type"])
	}
	if q["status"] != "active" {
		t.Fatalf("unexpected status filter: %v", q["status"])
	}
}

func TestBuildJobSort(t *testing.T) {
	tests := []struct {
		name   string
		fields []ports.SortField
		want   bson.D
	}{
		{
			name: "default",
			want: bson.D{{Key: "posted_date", Value: -1}, {Key: "_id", Value: -1}},
		},
		{
			name:   "multi field",
			fields: []ports.SortField{{Field: "salary", Descending: true}, {Field: "title"}},
			want: bson.D{
				{Key: "salary", Value: -1},
				{Key: "title", Value: 1},
				{Key: "_id", Value: -1},
			},
		},
		{
			name:   "api names mapped",
			fields: []ports.SortField{{Field: "jobType"}},
			want:   bson.D{{Key: "job_type", Value: 1}, {Key: "_id", Value: -1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildJobSort(tt.fields)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("at %d got %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
