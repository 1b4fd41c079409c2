package repositories

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/yigit/placement-portal/internal/app/models"
	"github.com/yigit/placement-portal/internal/pkg/apperrors"
	"github.com/yigit/placement-portal/internal/pkg/dberrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StudentRepository is the record store for student profiles.
// Listing is always ordered by updatedAt, newest first.
type StudentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]*models.StudentRecord, error)
	FindByID(ctx context.Context, id string) (*models.StudentRecord, error)
	FindByEmail(ctx context.Context, email string) (*models.StudentRecord, error)
	// Create fails with apperrors.ErrResourceAlreadyExists when the email is taken.
	Create(ctx context.Context, record *models.StudentRecord) error
	// Update replaces the record stored under record.Email.
	Update(ctx context.Context, record *models.StudentRecord) error
	DeleteAll(ctx context.Context) (int64, error)
}

// NormalizeEmail is the canonical form of the record key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// StudentFilterToBSON translates a filter into a MongoDB query document.
// Search text is escaped so it matches literally.
func StudentFilterToBSON(f models.StudentFilter) bson.M {
	query := bson.M{}
	if f.Placed != nil {
		query["isPlaced"] = *f.Placed
	}
	if f.Department != "" {
		query["department"] = f.Department
	}
	if f.Search != "" {
		rx := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"email": rx},
			bson.M{"district": rx},
			bson.M{"nativePlace": rx},
			bson.M{"companyNames": rx},
		}
	}
	return query
}

// MongoStudentRepository stores records in a MongoDB collection
type MongoStudentRepository struct {
	collection *mongo.Collection
}

// NewMongoStudentRepository creates a repository over coll
func NewMongoStudentRepository(coll *mongo.Collection) *MongoStudentRepository {
	return &MongoStudentRepository{collection: coll}
}

func (r *MongoStudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]*models.StudentRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, StudentFilterToBSON(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("mongo find failed: %w", err)
	}
	defer cursor.Close(ctx)

	records := []*models.StudentRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("mongo cursor decode failed: %w", err)
	}
	return records, nil
}

// FindByID treats a malformed identifier the same as a missing record.
func (r *MongoStudentRepository) FindByID(ctx context.Context, id string) (*models.StudentRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrStudentNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoStudentRepository) FindByEmail(ctx context.Context, email string) (*models.StudentRecord, error) {
	return r.findOne(ctx, bson.M{"email": NormalizeEmail(email)})
}

func (r *MongoStudentRepository) findOne(ctx context.Context, filter bson.M) (*models.StudentRecord, error) {
	var record models.StudentRecord
	if err := r.collection.FindOne(ctx, filter).Decode(&record); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("mongo find one failed: %w", err)
	}
	return &record, nil
}

func (r *MongoStudentRepository) Create(ctx context.Context, record *models.StudentRecord) error {
	if record.ID.IsZero() {
		record.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, record); err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %v", apperrors.ErrResourceAlreadyExists, err)
		}
		return fmt.Errorf("mongo insert failed: %w", err)
	}
	return nil
}

func (r *MongoStudentRepository) Update(ctx context.Context, record *models.StudentRecord) error {
	res, err := r.collection.ReplaceOne(ctx, bson.M{"email": record.Email}, record)
	if err != nil {
		return fmt.Errorf("mongo replace failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

func (r *MongoStudentRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("mongo delete failed: %w", err)
	}
	return res.DeletedCount, nil
}
