package shared

import (
	"time"
)

// Entity is the base interface for all domain entities
type Entity interface {
	GetID() int64
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
	IsDeleted() bool
}

// BaseEntity provides the identity, audit and soft-delete columns shared by
// every stored row. CreatedAt and UpdatedAt are written only by the unit of
// work, never by GORM's own timestamp tracking.
type BaseEntity struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false" json:"updated_at"`
	Deleted   bool      `gorm:"not null;default:false;index" json:"deleted"`
	Version   int       `gorm:"not null;default:1" json:"-"`
}

// NewBaseEntity returns an unsaved entity at version 1
func NewBaseEntity() BaseEntity {
	return BaseEntity{Version: 1}
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() int64 {
	return e.ID
}

// GetCreatedAt returns the creation timestamp
func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// GetUpdatedAt returns the last update timestamp
func (e *BaseEntity) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}

// IsDeleted reports whether the row has been soft-deleted
func (e *BaseEntity) IsDeleted() bool {
	return e.Deleted
}

// SoftDelete flags the entity as deleted. The row is kept.
func (e *BaseEntity) SoftDelete() {
	e.Deleted = true
}
