package storage

import (
	"context"
	"time"

	"nutriplan/nutrition-app/internal/domain"
)

// Default expiry duration for presigned download URLs.
const DefaultPresignedURLExpiry = 15 * time.Minute

// PlanArchive defines the interface for archiving generated plan
// snapshots to object storage.
type PlanArchive interface {
	// ArchivePlan stores a JSON snapshot of the plan and returns the
	// object key it was written under.
	ArchivePlan(ctx context.Context, plan *domain.StoredPlan) (string, error)

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET
	// requests for downloading an archived snapshot.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an archived snapshot.
	DeleteObject(ctx context.Context, objectKey string) error
}
