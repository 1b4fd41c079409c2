package repositories

import (
	"context"
	"sort"
	"sync"

	"github.com/yigit/placement-portal/internal/app/models"
	"github.com/yigit/placement-portal/internal/pkg/apperrors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStudentRepository keeps records in process. It backs the "memory"
// store driver and the service tests.
type MemoryStudentRepository struct {
	mu      sync.RWMutex
	byEmail map[string]*models.StudentRecord
}

// NewMemoryStudentRepository creates an empty repository, optionally seeded.
func NewMemoryStudentRepository(seed ...*models.StudentRecord) *MemoryStudentRepository {
	r := &MemoryStudentRepository{byEmail: make(map[string]*models.StudentRecord)}
	for _, rec := range seed {
		c := rec.Clone()
		if c.ID.IsZero() {
			c.ID = primitive.NewObjectID()
		}
		r.byEmail[c.Email] = c
	}
	return r
}

func (r *MemoryStudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]*models.StudentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*models.StudentRecord{}
	for _, rec := range r.byEmail {
		if filter.Matches(rec) {
			out = append(out, rec.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].Email < out[j].Email
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (r *MemoryStudentRepository) FindByID(ctx context.Context, id string) (*models.StudentRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrStudentNotFound
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.byEmail {
		if rec.ID == oid {
			return rec.Clone(), nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (r *MemoryStudentRepository) FindByEmail(ctx context.Context, email string) (*models.StudentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.byEmail[NormalizeEmail(email)]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return rec.Clone(), nil
}

func (r *MemoryStudentRepository) Create(ctx context.Context, record *models.StudentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[record.Email]; exists {
		return apperrors.ErrResourceAlreadyExists
	}
	if record.ID.IsZero() {
		record.ID = primitive.NewObjectID()
	}
	r.byEmail[record.Email] = record.Clone()
	return nil
}

func (r *MemoryStudentRepository) Update(ctx context.Context, record *models.StudentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byEmail[record.Email]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	c := record.Clone()
	c.ID = existing.ID
	r.byEmail[record.Email] = c
	return nil
}

func (r *MemoryStudentRepository) DeleteAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.byEmail))
	r.byEmail = make(map[string]*models.StudentRecord)
	return n, nil
}
