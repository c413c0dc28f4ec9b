package asset

import (
	"context"

	"github.com/devicedesk/backend/internal/domain/asset"
	"github.com/devicedesk/backend/internal/domain/shared"
)

// UnitOfWork is the single write gateway of the asset services.
// Entities registered with Add and Update are stamped and written together
// by Save. Repositories handed out by a unit of work read through the same
// connection, and through the open transaction once BeginTransaction
// has been called.
//
// Save translates storage failures:
//   - unique violations become shared.ErrNotUnique
//   - foreign key and check violations become shared.ErrConstraintViolation
//   - a stale version becomes shared.ErrConcurrencyConflict
//
// Anything else is returned unchanged.
type UnitOfWork interface {
	Devices() asset.DeviceRepository
	Employees() asset.EmployeeRepository
	EmployeeDevices() asset.EmployeeDeviceRepository

	// Add registers new entities. Save stamps CreatedAt and UpdatedAt.
	Add(entities ...shared.Auditable)
	// Update registers modified entities. Save stamps UpdatedAt only.
	Update(entities ...shared.Auditable)
	// Save writes every registered change atomically and returns the
	// number of rows written. The registry is cleared on success and failure.
	Save(ctx context.Context) (int64, error)

	BeginTransaction(ctx context.Context) error
	Commit() error
	Rollback() error

	// SetAutoDetectChanges toggles per-entity change tracking. Disabling it
	// lets Save batch inserts of the same type.
	SetAutoDetectChanges(enabled bool)
	AutoDetectChanges() bool
}

// UnitOfWorkFactory opens a fresh unit of work per operation
type UnitOfWorkFactory interface {
	NewUnitOfWork() UnitOfWork
}
