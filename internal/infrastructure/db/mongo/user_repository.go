package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jobboard/job-portal/internal/core/domain"
)

const collectionUsers = "users"

// publicUserProjection hides credentials from plain lookups.
var publicUserProjection = bson.M{
	"password_hash":         0,
	"reset_password_token":  0,
	"reset_password_expire": 0,
}

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(collectionUsers)}
}

type userDocument struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty"`
	Name                string             `bson:"name"`
	Email               string             `bson:"email"`
	PasswordHash        string             `bson:"password_hash,omitempty"`
	Role                string             `bson:"role"`
	Company             string             `bson:"company,omitempty"`
	ResetPasswordToken  string             `bson:"reset_password_token,omitempty"`
	ResetPasswordExpire *time.Time         `bson:"reset_password_expire,omitempty"`
	CreatedAt           time.Time          `bson:"created_at"`
	UpdatedAt           time.Time          `bson:"updated_at"`
}

func (d *userDocument) toDomain() *domain.User {
	u := &domain.User{
		ID:                 d.ID.Hex(),
		Name:               d.Name,
		Email:              d.Email,
		PasswordHash:       d.PasswordHash,
		Role:               d.Role,
		Company:            d.Company,
		ResetPasswordToken: d.ResetPasswordToken,
		CreatedAt:          d.CreatedAt.UTC(),
		UpdatedAt:          d.UpdatedAt.UTC(),
	}
	if d.ResetPasswordExpire != nil {
		u.ResetPasswordExpire = d.ResetPasswordExpire.UTC()
	}
	return u
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := userDocument{
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		Company:      user.Company,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &domain.DuplicateKeyError{Field: "email"}
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	created := doc.toDomain()
	created.PasswordHash = ""
	return created, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid}, publicUserProjection)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, publicUserProjection)
}

// FindCredentials is the only lookup that returns the password hash.
func (r *UserRepository) FindCredentials(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, nil)
}

func (r *UserRepository) SetResetToken(ctx context.Context, userID, tokenHash string, expires time.Time) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}
	return r.updateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{
			"reset_password_token":  tokenHash,
			"reset_password_expire": expires.UTC(),
			"updated_at":            time.Now().UTC(),
		},
	})
}

func (r *UserRepository) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*domain.User, error) {
	return r.findOne(ctx, resetTokenFilter(tokenHash, now), publicUserProjection)
}

func (r *UserRepository) ConsumeResetToken(ctx context.Context, tokenHash, passwordHash string, now time.Time) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"password_hash": passwordHash,
			"updated_at":    now.UTC(),
		},
		"$unset": bson.M{
			"reset_password_token":  "",
			"reset_password_expire": "",
		},
	}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(publicUserProjection)

	var doc userDocument
	if err := r.coll.FindOneAndUpdate(ctx, resetTokenFilter(tokenHash, now), update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("consume reset token: %w", err)
	}
	return doc.toDomain(), nil
}

func resetTokenFilter(tokenHash string, now time.Time) bson.M {
	return bson.M{
		"reset_password_token":  tokenHash,
		"reset_password_expire": bson.M{"$gt": now.UTC()},
	}
}

// EnsureIndexes creates the unique email index and the reset-token lookup index.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "reset_password_token", Value: 1}}, Options: options.Index().SetSparse(true)},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M, projection bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}

	var doc userDocument
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) updateOne(ctx context.Context, filter, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
