package asset

import (
	"strings"
	"unicode/utf8"

	"github.com/devicedesk/backend/internal/domain/shared"
)

const (
	MaxDeviceTypeLength        = 50
	MaxDeviceDescriptionLength = 200
)

// Device is a kind of equipment that can be handed out to employees.
// Type is unique among devices that are not deleted.
type Device struct {
	shared.BaseEntity
	Type        string `gorm:"type:varchar(50);not null;uniqueIndex:idx_device_type_active,where:deleted = false" json:"type"`
	Description string `gorm:"type:varchar(200);not null" json:"description"`
}

// TableName returns the table name for GORM
func (Device) TableName() string {
	return "device"
}

// NewDevice creates a new device with required fields
func NewDevice(deviceType, description string) (*Device, error) {
	deviceType = strings.TrimSpace(deviceType)
	description = strings.TrimSpace(description)
	if err := validateDevice(deviceType, description); err != nil {
		return nil, err
	}

	return &Device{
		BaseEntity:  shared.NewBaseEntity(),
		Type:        deviceType,
		Description: description,
	}, nil
}

// Update replaces the device's type and description
func (d *Device) Update(deviceType, description string) error {
	deviceType = strings.TrimSpace(deviceType)
	description = strings.TrimSpace(description)
	if err := validateDevice(deviceType, description); err != nil {
		return err
	}

	d.Type = deviceType
	d.Description = description
	return nil
}

func validateDevice(deviceType, description string) error {
	if deviceType == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Device type is required")
	}
	if utf8.RuneCountInString(deviceType) > MaxDeviceTypeLength {
		return shared.NewDomainError(shared.CodeInvalidInput, "Device type cannot exceed 50 characters")
	}
	if description == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Device description is required")
	}
	if utf8.RuneCountInString(description) > MaxDeviceDescriptionLength {
		return shared.NewDomainError(shared.CodeInvalidInput, "Device description cannot exceed 200 characters")
	}
	return nil
}
