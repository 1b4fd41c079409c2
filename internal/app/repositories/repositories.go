package repositories

import (
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository    IUserRepository
	StudentRepository StudentRepository
	ReportCache       ReportCache
}

// Sources are the opened backing stores. A nil Students collection selects
// the in-memory student store and a nil Redis client disables caching.
type Sources struct {
	Postgres *pgxpool.Pool
	Students *mongo.Collection
	Redis    *redis.Client
	CacheTTL time.Duration
}

// NewRepositories initializes all repositories
func NewRepositories(src Sources) *Repositories {
	repos := &Repositories{
		UserRepository: NewUserRepository(src.Postgres),
		ReportCache:    NoopReportCache{},
	}

	if src.Students != nil {
		repos.StudentRepository = NewMongoStudentRepository(src.Students)
	} else {
		repos.StudentRepository = NewMemoryStudentRepository()
	}

	if src.Redis != nil {
		repos.ReportCache = NewRedisReportCache(src.Redis, src.CacheTTL)
	}

	return repos
}
