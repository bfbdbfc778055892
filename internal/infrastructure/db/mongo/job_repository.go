package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jobboard/job-portal/internal/core/domain"
	"github.com/jobboard/job-portal/internal/core/ports"
)

const collectionJobs = "jobs"

type JobRepository struct {
	coll *mongo.Collection
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{coll: db.Collection(collectionJobs)}
}

type posterDocument struct {
	ID      primitive.ObjectID `bson:"_id"`
	Name    string             `bson:"name"`
	Company string             `bson:"company,omitempty"`
}

type jobDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Description  string             `bson:"description"`
	Company      string             `bson:"company"`
	Location     string             `bson:"location"`
	JobType      string             `bson:"job_type"`
	Salary       string             `bson:"salary"`
	Requirements []string           `bson:"requirements"`
	PostedBy     primitive.ObjectID `bson:"posted_by"`
	Status       string             `bson:"status"`
	PostedDate   time.Time          `bson:"posted_date"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`

	// Poster is only filled by the $lookup stage.
	Poster *posterDocument `bson:"poster,omitempty"`
}

func toJobDocument(j *domain.Job) (jobDocument, error) {
	owner, err := primitive.ObjectIDFromHex(j.PostedBy)
	if err != nil {
		return jobDocument{}, domain.ErrUnauthorized
	}
	doc := jobDocument{
		Title:        j.Title,
		Description:  j.Description,
		Company:      j.Company,
		Location:     j.Location,
		JobType:      string(j.JobType),
		Salary:       j.Salary,
		Requirements: j.Requirements,
		PostedBy:     owner,
		Status:       string(j.Status),
		PostedDate:   j.PostedDate,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
	if doc.Requirements == nil {
		doc.Requirements = []string{}
	}
	if j.ID != "" {
		id, err := primitive.ObjectIDFromHex(j.ID)
		if err != nil {
			return jobDocument{}, domain.ErrJobNotFound
		}
		doc.ID = id
	}
	return doc, nil
}

func (d *jobDocument) toDomain() *domain.Job {
	j := &domain.Job{
		ID:           d.ID.Hex(),
		Title:        d.Title,
		Description:  d.Description,
		Company:      d.Company,
		Location:     d.Location,
		JobType:      domain.JobType(d.JobType),
		Salary:       d.Salary,
		Requirements: d.Requirements,
		PostedBy:     d.PostedBy.Hex(),
		Status:       domain.JobStatus(d.Status),
		PostedDate:   d.PostedDate.UTC(),
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
	if j.Requirements == nil {
		j.Requirements = []string{}
	}
	if d.Poster != nil {
		j.Poster = &domain.Poster{ID: d.Poster.ID.Hex(), Name: d.Poster.Name, Company: d.Poster.Company}
	}
	return j
}

// Create inserts a new job document.
func (r *JobRepository) Create(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := toJobDocument(job)
	if err != nil {
		return nil, err
	}
	doc.ID = primitive.NilObjectID

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

// FindByID retrieves a job with its poster populated. Malformed ids are
// reported as not found.
func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrJobNotFound
	}

	jobs, err := r.aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": oid}}},
		{{Key: "$limit", Value: 1}},
		posterLookupStage(),
		posterUnwindStage(),
	})
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, domain.ErrJobNotFound
	}
	return jobs[0], nil
}

// List returns one page of jobs matching the filter plus the total count.
func (r *JobRepository) List(ctx context.Context, f ports.JobFilter) ([]*domain.Job, int64, error) {
	query := buildJobQuery(f)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: query}},
		{{Key: "$sort", Value: buildJobSort(f.Sort)}},
	}
	if f.Skip > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$skip", Value: f.Skip}})
	}
	if f.Limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: f.Limit}})
	}
	pipeline = append(pipeline, posterLookupStage(), posterUnwindStage())

	jobs, err := r.aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, err
	}

	countCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.coll.CountDocuments(countCtx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}
	return jobs, total, nil
}

// Update replaces the mutable fields of a job. The filter includes the
// owner so a job that changed hands in between is not overwritten.
func (r *JobRepository) Update(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := toJobDocument(job)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"title":        doc.Title,
		"description":  doc.Description,
		"company":      doc.Company,
		"location":     doc.Location,
		"job_type":     doc.JobType,
		"salary":       doc.Salary,
		"requirements": doc.Requirements,
		"status":       doc.Status,
		"updated_at":   doc.UpdatedAt,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": doc.ID, "posted_by": doc.PostedBy}, update)
	if err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrJobNotFound
	}
	return r.FindByID(ctx, job.ID)
}

// Delete removes a job owned by ownerID.
func (r *JobRepository) Delete(ctx context.Context, id, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrJobNotFound
	}
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return domain.ErrNotJobOwner
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "posted_by": owner})
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

type jobTypeBucket struct {
	JobType string `bson:"_id"`
	Count   int64  `bson:"count"`
}

// Stats groups all jobs by type and counts active jobs and distinct companies.
func (r *JobRepository) Stats(ctx context.Context) (*domain.JobStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$job_type", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("aggregate job types: %w", err)
	}
	var buckets []jobTypeBucket
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, fmt.Errorf("decode job types: %w", err)
	}

	active, err := r.coll.CountDocuments(ctx, bson.M{"status": string(domain.JobStatusActive)})
	if err != nil {
		return nil, fmt.Errorf("count active jobs: %w", err)
	}

	companies, err := r.coll.Distinct(ctx, "company", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("distinct companies: %w", err)
	}

	stats := &domain.JobStats{
		ByType:         make([]domain.JobTypeCount, len(buckets)),
		TotalJobs:      active,
		TotalCompanies: int64(len(companies)),
	}
	for i, b := range buckets {
		stats.ByType[i] = domain.JobTypeCount{JobType: domain.JobType(b.JobType), Count: b.Count}
	}
	return stats, nil
}

// EnsureIndexes creates the indexes backing listing, ownership and stats queries.
func (r *JobRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "posted_date", Value: -1}}},
		{Keys: bson.D{{Key: "job_type", Value: 1}}},
		{Keys: bson.D{{Key: "posted_by", Value: 1}}},
		{Keys: bson.D{
			{Key: "title", Value: "text"},
			{Key: "description", Value: "text"},
			{Key: "company", Value: "text"},
			{Key: "location", Value: "text"},
		}, Options: options.Index().SetName("jobs_text_search")},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("job indexes: %w", err)
	}
	return nil
}

func (r *JobRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate jobs: %w", err)
	}

	var docs []jobDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode jobs: %w", err)
	}

	jobs := make([]*domain.Job, len(docs))
	for i := range docs {
		jobs[i] = docs[i].toDomain()
	}
	return jobs, nil
}

// posterLookupStage joins the public fields of the posting user.
func posterLookupStage() bson.D {
	return bson.D{{Key: "$lookup", Value: bson.M{
		"from": collectionUsers,
		"let":  bson.M{"owner": "$posted_by"},
		"pipeline": bson.A{
			bson.M{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{"$_id", "$$owner"}}}},
			bson.M{"$project": bson.M{"name": 1, "company": 1}},
		},
		"as": "poster",
	}}}
}

func posterUnwindStage() bson.D {
	return bson.D{{Key: "$unwind", Value: bson.M{
		"path":                       "$poster",
		"preserveNullAndEmptyArrays": true,
	}}}
}
