package asset

import (
	"context"

	"go.uber.org/zap"
)

// EmployeeDeviceService reads and reconciles assignment links directly
type EmployeeDeviceService struct {
	uowFactory UnitOfWorkFactory
	logger     *zap.Logger
}

// NewEmployeeDeviceService creates a new EmployeeDeviceService
func NewEmployeeDeviceService(uowFactory UnitOfWorkFactory, logger *zap.Logger) *EmployeeDeviceService {
	return &EmployeeDeviceService{
		uowFactory: uowFactory,
		logger:     orNop(logger),
	}
}

// List returns the live links of the given employees with their device types
func (s *EmployeeDeviceService) List(ctx context.Context, employeeIDs []int64) ([]EmployeeDeviceDTO, error) {
	uow := s.uowFactory.NewUnitOfWork()
	details, err := uow.EmployeeDevices().FindActiveDetailsByEmployees(ctx, employeeIDs)
	if err != nil {
		return nil, err
	}
	out := make([]EmployeeDeviceDTO, 0, len(details))
	for _, d := range details {
		out = append(out, ToEmployeeDeviceDTO(d))
	}
	return out, nil
}

// Reconcile makes the listed links the complete device set of the employee
// they name and echoes the input. All links must name the same employee.
func (s *EmployeeDeviceService) Reconcile(ctx context.Context, links []EmployeeDeviceDTO) ([]EmployeeDeviceDTO, error) {
	if len(links) == 0 {
		return []EmployeeDeviceDTO{}, nil
	}

	employeeID := links[0].EmployeeID
	ids := make([]int64, 0, len(links))
	for _, link := range links {
		if link.EmployeeID != employeeID {
			return nil, ErrMixedEmployees
		}
		ids = append(ids, link.DeviceID)
	}

	uow := s.uowFactory.NewUnitOfWork()
	if _, err := reconcileAssignments(ctx, uow, s.logger, employeeID, ids); err != nil {
		return nil, err
	}
	return links, nil
}
