package seed

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/placement-portal/internal/app/models"
	appRepos "github.com/yigit/placement-portal/internal/app/repositories"
	"github.com/yigit/placement-portal/internal/pkg/apperrors"
	"github.com/yigit/placement-portal/internal/pkg/auth"
	"github.com/yigit/placement-portal/internal/pkg/helpers"
)

// Sample values used by SeedStudents
var (
	Districts = []string{"Chennai", "Coimbatore", "Salem", "Madurai", "Trichy", "Tirunelveli"}
	Companies = []string{"TCS", "Wipro", "Infosys", "Cognizant", "HCL", "Tech Mahindra", "Accenture"}
)

// CreateDefaultData makes sure the configured administrator account exists.
// An existing account is left untouched; its login is checked against the
// configured password, so the stored hash never needs refreshing.
func CreateDefaultData(ctx context.Context, userRepo appRepos.IUserRepository, adminEmail, adminPassword string, lgr zerolog.Logger) error {
	if adminEmail == "" || adminPassword == "" {
		lgr.Warn().Msg("Admin credentials not configured, skipping admin seed")
		return nil
	}

	lgr.Info().Str("email", adminEmail).Msg("Checking/Creating default admin account...")
	exists, err := userRepo.EmailExists(ctx, adminEmail)
	if err != nil {
		return fmt.Errorf("error checking admin account: %w", err)
	}
	if exists {
		lgr.Debug().Msg("Admin account already present")
		return nil
	}

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("error hashing admin password: %w", err)
	}

	err = userRepo.Create(ctx, &appModels.User{
		Email:    adminEmail,
		Password: hash,
		RoleType: appModels.RoleAdmin,
		IsActive: true,
	})
	if err != nil && !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
		return fmt.Errorf("error creating admin account: %w", err)
	}

	lgr.Info().Msg("Default admin account created")
	return nil
}

// Options controls SeedStudents
type Options struct {
	Count int
	// Reset deletes every existing student record first.
	Reset           bool
	StudentPassword string
	// Seed makes the generated data reproducible.
	Seed uint64
	Now  time.Time
}

// SeedStudents inserts Count random student records and, when a user
// repository is given, a matching student account for each.
func SeedStudents(ctx context.Context, students appRepos.StudentRepository, users appRepos.IUserRepository, opts Options, lgr zerolog.Logger) (int, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now().UTC()
	}

	if opts.Reset {
		n, err := students.DeleteAll(ctx)
		if err != nil {
			return 0, fmt.Errorf("error clearing students: %w", err)
		}
		lgr.Info().Int64("deleted", n).Msg("Existing student records cleared")
	}

	var passwordHash string
	if users != nil && opts.StudentPassword != "" {
		hash, err := auth.HashPassword(opts.StudentPassword)
		if err != nil {
			return 0, fmt.Errorf("error hashing student password: %w", err)
		}
		passwordHash = hash
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	created := 0
	var finalErr error

	for i := 1; i <= opts.Count; i++ {
		rec := RandomStudent(rng, i, opts.Now)
		if err := students.Create(ctx, rec); err != nil {
			if errors.Is(err, apperrors.ErrResourceAlreadyExists) {
				lgr.Debug().Str("email", rec.Email).Msg("Student already seeded")
				continue
			}
			finalErr = errors.Join(finalErr, err)
			continue
		}
		created++

		if passwordHash == "" {
			continue
		}
		err := users.Create(ctx, &appModels.User{
			Email:    rec.Email,
			Password: passwordHash,
			RoleType: appModels.RoleStudent,
			IsActive: true,
		})
		if err != nil && !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
			finalErr = errors.Join(finalErr, err)
		}
	}

	lgr.Info().Int("created", created).Msg("Sample students seeded")
	return created, finalErr
}

// RandomStudent builds a complete, valid record for student number index
func RandomStudent(rng *rand.Rand, index int, now time.Time) *appModels.StudentRecord {
	dept := appModels.Departments[rng.IntN(len(appModels.Departments))]
	district := Districts[rng.IntN(len(Districts))]

	var companies []string
	if rng.Float64() > 0.4 {
		offers := rng.IntN(3) + 1
		for _, idx := range rng.Perm(len(Companies))[:offers] {
			companies = append(companies, Companies[idx])
		}
	}
	if companies == nil {
		companies = []string{}
	}

	diplomaPercent := float64(rng.IntN(10) + 90)
	diplomaYear := 2018 + rng.IntN(2)

	return &appModels.StudentRecord{
		Email:                fmt.Sprintf("student%d@example.com", index),
		MobileParent:         fmt.Sprintf("9876543%03d", index%1000),
		DOB:                  time.Date(1998, time.Month(rng.IntN(12)+1), rng.IntN(28)+1, 0, 0, 0, 0, time.UTC),
		TenthPercent:         float64(rng.IntN(15) + 85),
		TwelfthPercent:       float64(rng.IntN(15) + 85),
		CGPA:                 helpers.Round2(rng.Float64()*3 + 7),
		TenthSchool:          fmt.Sprintf("School %d", rng.IntN(10)+1),
		TenthYear:            2014 + rng.IntN(3),
		TwelfthSchool:        fmt.Sprintf("Higher Secondary School %d", rng.IntN(10)+1),
		TwelfthYear:          2016 + rng.IntN(3),
		TwelfthCutoff:        float64(rng.IntN(40) + 160),
		DiplomaPercent:       &diplomaPercent,
		DiplomaCollege:       fmt.Sprintf("Diploma College %d", rng.IntN(5)+1),
		DiplomaYear:          &diplomaYear,
		CommunicationAddress: fmt.Sprintf("%d, Main Street, %s", rng.IntN(100)+1, district),
		PermanentAddress:     fmt.Sprintf("%d, Main Street, %s", rng.IntN(100)+1, district),
		NativePlace:          district,
		District:             district,
		ResumeLink:           fmt.Sprintf("https://drive.google.com/resume%d", index),
		Department:           dept,
		IsPlaced:             len(companies) > 0,
		NoOfOffers:           len(companies),
		CompanyNames:         companies,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}
