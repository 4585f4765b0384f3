package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/viamunicipal/potholes-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user row with a throwaway bcrypt-shaped hash.
// Returns a filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:           uuid.New(),
		Username:     "crew-" + suffix,
		DisplayName:  "Crew " + suffix,
		PasswordHash: "$2a$10$testhashtesthashtesthashtesthashtesthashtesthashtesx",
		CreatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, username, display_name, password_hash, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Username, user.DisplayName, user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert: %v", err)
	}

	return user
}

// SeedSubmission creates n pothole records sharing a fresh submission id,
// recorded by the given user at recordedAt. Identifiers are "REPAIR 1..n".
// Returns the submission id and the created records ordered by identifier.
func SeedSubmission(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, n int, recordedAt time.Time) (uuid.UUID, []domain.PotholeRecord) {
	t.Helper()
	ctx := context.Background()

	submissionID := uuid.New()
	street := domain.NormalizeField("rua teste " + uniqueSuffix())
	records := make([]domain.PotholeRecord, 0, n)

	for i := 1; i <= n; i++ {
		rec := domain.PotholeRecord{
			ID:           uuid.New(),
			SubmissionID: submissionID,
			Identifier:   domain.BuildIdentifier("REPAIR", i),
			Street:       street,
			Neighborhood: "CENTRO",
			Dimensions:   domain.Dimensions{Width: "1,50", Length: "2,00", Thickness: "0,05"},
			Weather:      "SUNNY",
			PhotoLinks:   []string{},
			RecordedBy:   userID,
			RecordedAt:   recordedAt,
		}

		_, err := pool.Exec(ctx,
			`INSERT INTO pothole_records
			   (id, submission_id, identifier, street, neighborhood, width, length, thickness, weather, photo_links, recorded_by, recorded_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			rec.ID, rec.SubmissionID, rec.Identifier, rec.Street, rec.Neighborhood,
			rec.Dimensions.Width, rec.Dimensions.Length, rec.Dimensions.Thickness,
			rec.Weather, rec.PhotoLinks, rec.RecordedBy, rec.RecordedAt,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedSubmission insert record %d: %v", i, err)
		}

		records = append(records, rec)
	}

	return submissionID, records
}
