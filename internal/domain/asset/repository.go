package asset

import (
	"context"

	"github.com/devicedesk/backend/internal/domain/shared"
)

// DeviceFilter narrows a device listing. Empty fields match everything;
// non-empty fields match as case-sensitive substrings.
type DeviceFilter struct {
	Type        string
	Description string
}

// EmployeeFilter narrows an employee listing. Empty fields match everything;
// non-empty fields match as case-sensitive substrings.
type EmployeeFilter struct {
	Name  string
	Email string
}

// DeviceRepository reads devices. Deleted devices are never returned.
// Writes go through the unit of work.
type DeviceRepository interface {
	FindPage(ctx context.Context, filter DeviceFilter, page shared.PageRequest) (shared.Page[Device], error)
	// FindByID returns shared.ErrNotFound when no live device has the id
	FindByID(ctx context.Context, id int64) (*Device, error)
	FindByIDs(ctx context.Context, ids []int64) ([]Device, error)
	// ExistsByType reports whether another live device already uses deviceType.
	// excludeID 0 excludes nothing.
	ExistsByType(ctx context.Context, deviceType string, excludeID int64) (bool, error)
}

// EmployeeRepository reads employees. Deleted employees are never returned.
// Writes go through the unit of work.
type EmployeeRepository interface {
	FindPage(ctx context.Context, filter EmployeeFilter, page shared.PageRequest) (shared.Page[Employee], error)
	// FindByID returns shared.ErrNotFound when no live employee has the id
	FindByID(ctx context.Context, id int64) (*Employee, error)
	// ExistsByEmail reports whether another live employee already uses email.
	// excludeID 0 excludes nothing.
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
}

// EmployeeDeviceRepository reads assignment links. Only links that are not
// deleted are returned. Writes go through the unit of work.
type EmployeeDeviceRepository interface {
	FindActiveByEmployee(ctx context.Context, employeeID int64) ([]*EmployeeDevice, error)
	FindActiveDetailsByEmployees(ctx context.Context, employeeIDs []int64) ([]EmployeeDeviceDetail, error)
	ExistsActiveForDevice(ctx context.Context, deviceID int64) (bool, error)
}
