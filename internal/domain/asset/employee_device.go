package asset

import (
	"github.com/devicedesk/backend/internal/domain/shared"
)

// EmployeeDevice links one employee to one device. A link that is not
// deleted is the only record of an assignment; unassigning soft-deletes it.
type EmployeeDevice struct {
	shared.BaseEntity
	EmployeeID int64     `gorm:"not null;index;uniqueIndex:idx_employee_device_active,priority:1,where:deleted = false" json:"employee_id"`
	DeviceID   int64     `gorm:"not null;index;uniqueIndex:idx_employee_device_active,priority:2,where:deleted = false" json:"device_id"`
	Employee   *Employee `gorm:"foreignKey:EmployeeID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Device     *Device   `gorm:"foreignKey:DeviceID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// TableName returns the table name for GORM
func (EmployeeDevice) TableName() string {
	return "employee_device"
}

// NewEmployeeDevice creates an unsaved link
func NewEmployeeDevice(employeeID, deviceID int64) *EmployeeDevice {
	return &EmployeeDevice{
		BaseEntity: shared.NewBaseEntity(),
		EmployeeID: employeeID,
		DeviceID:   deviceID,
	}
}

// EmployeeDeviceDetail is a non-deleted link joined with its device type
type EmployeeDeviceDetail struct {
	ID         int64  `json:"id"`
	EmployeeID int64  `json:"employee_id"`
	DeviceID   int64  `json:"device_id"`
	DeviceType string `json:"device_type"`
}

// Ensure every stored asset entity can go through the unit of work
var (
	_ shared.Auditable = (*Device)(nil)
	_ shared.Auditable = (*Employee)(nil)
	_ shared.Auditable = (*EmployeeDevice)(nil)
)
