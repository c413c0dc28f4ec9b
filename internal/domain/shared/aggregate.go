package shared

import "time"

// Auditable is implemented by everything the unit of work can persist.
// The unit of work stamps the audit columns and drives the version used
// for optimistic locking; callers never set them directly.
type Auditable interface {
	Entity
	MarkCreated(at time.Time)
	MarkModified(at time.Time)
	GetVersion() int
	IncrementVersion()
	AuditState() AuditState
	RestoreAuditState(AuditState)
}

// AuditState captures the columns a save writes back into an entity, so a
// failed save can leave the entity as it found it.
type AuditState struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int
}

// MarkCreated stamps both audit columns for a newly added entity
func (e *BaseEntity) MarkCreated(at time.Time) {
	e.CreatedAt = at
	e.UpdatedAt = at
	if e.Version == 0 {
		e.Version = 1
	}
}

// MarkModified refreshes UpdatedAt. CreatedAt is never touched.
func (e *BaseEntity) MarkModified(at time.Time) {
	e.UpdatedAt = at
}

// GetVersion returns the entity version for optimistic locking
func (e *BaseEntity) GetVersion() int {
	return e.Version
}

// IncrementVersion increments the version number
func (e *BaseEntity) IncrementVersion() {
	e.Version++
}

// AuditState returns the current identity, audit and version columns
func (e *BaseEntity) AuditState() AuditState {
	return AuditState{
		ID:        e.ID,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
		Version:   e.Version,
	}
}

// RestoreAuditState puts back columns captured by AuditState
func (e *BaseEntity) RestoreAuditState(s AuditState) {
	e.ID = s.ID
	e.CreatedAt = s.CreatedAt
	e.UpdatedAt = s.UpdatedAt
	e.Version = s.Version
}

// Ensure BaseEntity implements Auditable
var _ Auditable = (*BaseEntity)(nil)
