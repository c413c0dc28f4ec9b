package asset

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/devicedesk/backend/internal/domain/asset"
	"github.com/devicedesk/backend/internal/domain/shared"
)

// DeviceService handles device catalogue use cases
type DeviceService struct {
	uowFactory UnitOfWorkFactory
	logger     *zap.Logger
}

// NewDeviceService creates a new DeviceService
func NewDeviceService(uowFactory UnitOfWorkFactory, logger *zap.Logger) *DeviceService {
	return &DeviceService{
		uowFactory: uowFactory,
		logger:     orNop(logger),
	}
}

// List returns one page of live devices matching the filter
func (s *DeviceService) List(ctx context.Context, filter asset.DeviceFilter, page shared.PageRequest) (shared.Page[DeviceResponse], error) {
	uow := s.uowFactory.NewUnitOfWork()
	devices, err := uow.Devices().FindPage(ctx, filter, page)
	if err != nil {
		return shared.Page[DeviceResponse]{}, err
	}
	return shared.MapPage(devices, func(d asset.Device) DeviceResponse {
		return ToDeviceResponse(&d)
	}), nil
}

// Create creates a new device. The type must not belong to another live device.
func (s *DeviceService) Create(ctx context.Context, req CreateDeviceRequest) (*DeviceResponse, error) {
	device, err := asset.NewDevice(req.Type, req.Description)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork()
	exists, err := uow.Devices().ExistsByType(ctx, device.Type, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		s.logger.Info("Device type rejected", zap.String("type", device.Type))
		return nil, ErrDeviceTypeExists
	}

	uow.Add(device)
	if _, err := uow.Save(ctx); err != nil {
		return nil, err
	}

	resp := ToDeviceResponse(device)
	return &resp, nil
}

// Update changes a device's type and description. An unknown id yields an
// empty response and writes nothing.
func (s *DeviceService) Update(ctx context.Context, req UpdateDeviceRequest) (*DeviceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork()
	deviceType := strings.TrimSpace(req.Type)
	exists, err := uow.Devices().ExistsByType(ctx, deviceType, req.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		s.logger.Info("Device type rejected", zap.String("type", deviceType), zap.Int64("device_id", req.ID))
		return nil, ErrDeviceTypeExists
	}

	device, err := uow.Devices().FindByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return &DeviceResponse{}, nil
		}
		return nil, err
	}

	if err := device.Update(req.Type, req.Description); err != nil {
		return nil, err
	}
	uow.Update(device)
	if _, err := uow.Save(ctx); err != nil {
		return nil, err
	}

	resp := ToDeviceResponse(device)
	return &resp, nil
}

// Delete soft-deletes a device that no live link references.
// Deleting an unknown device is a no-op.
func (s *DeviceService) Delete(ctx context.Context, id int64) error {
	uow := s.uowFactory.NewUnitOfWork()
	device, err := uow.Devices().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}

	linked, err := uow.EmployeeDevices().ExistsActiveForDevice(ctx, id)
	if err != nil {
		return err
	}
	if linked {
		s.logger.Info("Device delete rejected", zap.Int64("device_id", id))
		return ErrDeviceLinked
	}

	device.SoftDelete()
	uow.Update(device)
	_, err = uow.Save(ctx)
	return err
}
