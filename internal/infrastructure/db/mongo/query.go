package mongo

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jobboard/job-portal/internal/core/ports"
)

// jobSortFields maps API sort keys to document fields.
var jobSortFields = map[string]string{
	"postedDate": "posted_date",
	"createdAt":  "created_at",
	"updatedAt":  "updated_at",
	"title":      "title",
	"company":    "company",
	"location":   "location",
	"salary":     "salary",
	"jobType":    "job_type",
}

// buildJobQuery translates a listing filter into a MongoDB filter document.
// Keyword and location are matched as literal, case-insensitive substrings.
func buildJobQuery(f ports.JobFilter) bson.M {
	query := bson.M{}

	if f.Keyword != "" {
		re := containsRegex(f.Keyword)
		query["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"description": re},
			bson.M{"company": re},
		}
	}
	if f.Location != "" {
		query["location"] = containsRegex(f.Location)
	}
	if f.JobType != "" {
		query["job_type"] = f.JobType
	}
	if f.Status != "" {
		query["status"] = string(f.Status)
	}

	return query
}

// buildJobSort converts sort fields into an ordered sort document. _id is
// appended as a tiebreaker so pages are stable.
func buildJobSort(fields []ports.SortField) bson.D {
	sort := make(bson.D, 0, len(fields)+1)
	for _, f := range fields {
		key, ok := jobSortFields[f.Field]
		if !ok {
			continue
		}
		dir := 1
		if f.Descending {
			dir = -1
		}
		sort = append(sort, bson.E{Key: key, Value: dir})
	}
	if len(sort) == 0 {
		sort = append(sort, bson.E{Key: "posted_date", Value: -1})
	}
	return append(sort, bson.E{Key: "_id", Value: -1})
}

func containsRegex(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}
