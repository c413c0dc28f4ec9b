package persistence

import (
	"context"
	"errors"

	"github.com/devicedesk/backend/internal/domain/asset"
	"github.com/devicedesk/backend/internal/domain/shared"
	"gorm.io/gorm"
)

const deviceTable = "device"

// GormDeviceRepository implements DeviceRepository using GORM
type GormDeviceRepository struct {
	db *gorm.DB
}

// NewGormDeviceRepository creates a new GormDeviceRepository
func NewGormDeviceRepository(db *gorm.DB) *GormDeviceRepository {
	return &GormDeviceRepository{db: db}
}

// FindPage returns one page of live devices matching filter, ordered by id
func (r *GormDeviceRepository) FindPage(ctx context.Context, filter asset.DeviceFilter, page shared.PageRequest) (shared.Page[asset.Device], error) {
	query := r.db.WithContext(ctx).Model(&asset.Device{}).Scopes(
		notDeleted(deviceTable),
		containsLike(deviceTable+".type", filter.Type),
		containsLike(deviceTable+".description", filter.Description),
	)
	return findPage[asset.Device](query, deviceTable, page)
}

// FindByID finds a live device by its ID
func (r *GormDeviceRepository) FindByID(ctx context.Context, id int64) (*asset.Device, error) {
	var device asset.Device
	if err := r.db.WithContext(ctx).
		Scopes(notDeleted(deviceTable)).
		Where("id = ?", id).
		First(&device).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &device, nil
}

// FindByIDs returns the live devices among ids, ordered by id
func (r *GormDeviceRepository) FindByIDs(ctx context.Context, ids []int64) ([]asset.Device, error) {
	devices := []asset.Device{}
	if len(ids) == 0 {
		return devices, nil
	}
	if err := r.db.WithContext(ctx).
		Scopes(notDeleted(deviceTable)).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&devices).Error; err != nil {
		return nil, err
	}
	return devices, nil
}

// ExistsByType reports whether a live device other than excludeID uses deviceType
func (r *GormDeviceRepository) ExistsByType(ctx context.Context, deviceType string, excludeID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&asset.Device{}).
		Scopes(notDeleted(deviceTable), excludingID(deviceTable, excludeID)).
		Where("type = ?", deviceType).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormDeviceRepository implements DeviceRepository
var _ asset.DeviceRepository = (*GormDeviceRepository)(nil)
