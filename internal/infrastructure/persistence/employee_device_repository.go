package persistence

import (
	"context"

	"github.com/devicedesk/backend/internal/domain/asset"
	"gorm.io/gorm"
)

const employeeDeviceTable = "employee_device"

// GormEmployeeDeviceRepository implements EmployeeDeviceRepository using GORM
type GormEmployeeDeviceRepository struct {
	db *gorm.DB
}

// NewGormEmployeeDeviceRepository creates a new GormEmployeeDeviceRepository
func NewGormEmployeeDeviceRepository(db *gorm.DB) *GormEmployeeDeviceRepository {
	return &GormEmployeeDeviceRepository{db: db}
}

// FindActiveByEmployee returns the live links of one employee, ordered by id
func (r *GormEmployeeDeviceRepository) FindActiveByEmployee(ctx context.Context, employeeID int64) ([]*asset.EmployeeDevice, error) {
	links := []*asset.EmployeeDevice{}
	if err := r.db.WithContext(ctx).
		Scopes(notDeleted(employeeDeviceTable)).
		Where("employee_id = ?", employeeID).
		Order("id ASC").
		Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// FindActiveDetailsByEmployees returns the live links of the given employees
// joined with their device type, ordered by employee then link id.
func (r *GormEmployeeDeviceRepository) FindActiveDetailsByEmployees(ctx context.Context, employeeIDs []int64) ([]asset.EmployeeDeviceDetail, error) {
	details := []asset.EmployeeDeviceDetail{}
	if len(employeeIDs) == 0 {
		return details, nil
	}
	if err := r.db.WithContext(ctx).
		Table(employeeDeviceTable).
		Select("employee_device.id, employee_device.employee_id, employee_device.device_id, device.type AS device_type").
		Joins("JOIN device ON device.id = employee_device.device_id").
		Scopes(notDeleted(employeeDeviceTable)).
		Where("employee_device.employee_id IN ?", employeeIDs).
		Order("employee_device.employee_id ASC, employee_device.id ASC").
		Scan(&details).Error; err != nil {
		return nil, err
	}
	return details, nil
}

// ExistsActiveForDevice reports whether any live link references the device
func (r *GormEmployeeDeviceRepository) ExistsActiveForDevice(ctx context.Context, deviceID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&asset.EmployeeDevice{}).
		Scopes(notDeleted(employeeDeviceTable)).
		Where("device_id = ?", deviceID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormEmployeeDeviceRepository implements EmployeeDeviceRepository
var _ asset.EmployeeDeviceRepository = (*GormEmployeeDeviceRepository)(nil)
