package asset

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/devicedesk/backend/internal/domain/asset"
	"github.com/devicedesk/backend/internal/domain/shared"
)

// EmployeeService handles employee use cases, including the devices
// assigned to each employee.
type EmployeeService struct {
	uowFactory UnitOfWorkFactory
	logger     *zap.Logger
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(uowFactory UnitOfWorkFactory, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{
		uowFactory: uowFactory,
		logger:     orNop(logger),
	}
}

// List returns one page of live employees. Each employee carries the id and
// type of every device it is assigned to.
func (s *EmployeeService) List(ctx context.Context, filter asset.EmployeeFilter, page shared.PageRequest) (shared.Page[EmployeeResponse], error) {
	uow := s.uowFactory.NewUnitOfWork()
	employees, err := uow.Employees().FindPage(ctx, filter, page)
	if err != nil {
		return shared.Page[EmployeeResponse]{}, err
	}

	ids := make([]int64, 0, len(employees.Items))
	for _, e := range employees.Items {
		ids = append(ids, e.ID)
	}
	details, err := uow.EmployeeDevices().FindActiveDetailsByEmployees(ctx, ids)
	if err != nil {
		return shared.Page[EmployeeResponse]{}, err
	}

	devicesByEmployee := make(map[int64][]DeviceRef, len(ids))
	for _, d := range details {
		devicesByEmployee[d.EmployeeID] = append(devicesByEmployee[d.EmployeeID], DeviceRef{
			ID:   d.DeviceID,
			Type: d.DeviceType,
		})
	}

	return shared.MapPage(employees, func(e asset.Employee) EmployeeResponse {
		resp := ToEmployeeResponse(&e)
		resp.DeviceList = devicesByEmployee[e.ID]
		if resp.DeviceList == nil {
			resp.DeviceList = []DeviceRef{}
		}
		return resp
	}), nil
}

// GetByID returns a live employee without its devices. An unknown id yields
// an empty response.
func (s *EmployeeService) GetByID(ctx context.Context, id int64) (*EmployeeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork()
	employee, err := uow.Employees().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return &EmployeeResponse{}, nil
		}
		return nil, err
	}
	resp := ToEmployeeResponse(employee)
	return &resp, nil
}

// Create creates an employee and assigns the listed devices. The employee
// and its links are committed together. The response lists the assigned
// devices in full when any were requested.
func (s *EmployeeService) Create(ctx context.Context, req CreateEmployeeRequest) (*EmployeeResponse, error) {
	employee, err := asset.NewEmployee(req.Name, req.Email)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork()
	var resp EmployeeResponse
	err = inTransaction(ctx, uow, s.logger, func() error {
		exists, err := uow.Employees().ExistsByEmail(ctx, employee.Email, 0)
		if err != nil {
			return err
		}
		if exists {
			s.logger.Info("Employee email rejected", zap.String("email", employee.Email))
			return ErrEmailExists
		}

		uow.Add(employee)
		if _, err := uow.Save(ctx); err != nil {
			return err
		}
		resp = ToEmployeeResponse(employee)

		if len(req.DeviceList) == 0 {
			return nil
		}
		plan, err := reconcileAssignments(ctx, uow, s.logger, employee.ID, deviceIDs(req.DeviceList))
		if err != nil {
			return err
		}
		devices, err := uow.Devices().FindByIDs(ctx, plan.DeviceIDs())
		if err != nil {
			return err
		}
		resp.DeviceList = make([]DeviceRef, 0, len(devices))
		for _, d := range devices {
			resp.DeviceList = append(resp.DeviceList, DeviceRef{
				ID:          d.ID,
				Type:        d.Type,
				Description: d.Description,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Update changes an employee's name and email. A non-nil device list
// replaces the employee's assignments; the response echoes it as given.
// A nil list leaves assignments untouched, but an empty non-nil list
// removes every live assignment rather than being skipped.
// An unknown id yields an empty response and writes nothing.
func (s *EmployeeService) Update(ctx context.Context, req UpdateEmployeeRequest) (*EmployeeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork()
	email := strings.TrimSpace(req.Email)
	exists, err := uow.Employees().ExistsByEmail(ctx, email, req.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		s.logger.Info("Employee email rejected", zap.String("email", email), zap.Int64("employee_id", req.ID))
		return nil, ErrEmailExists
	}

	employee, err := uow.Employees().FindByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return &EmployeeResponse{}, nil
		}
		return nil, err
	}
	if err := employee.Update(req.Name, req.Email); err != nil {
		return nil, err
	}

	err = inTransaction(ctx, uow, s.logger, func() error {
		uow.Update(employee)
		if _, err := uow.Save(ctx); err != nil {
			return err
		}
		if req.DeviceList == nil {
			return nil
		}
		_, err := reconcileAssignments(ctx, uow, s.logger, employee.ID, deviceIDs(req.DeviceList))
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := ToEmployeeResponse(employee)
	resp.DeviceList = req.DeviceList
	return &resp, nil
}

// Delete soft-deletes an employee together with its live links in a single
// save. Deleting an unknown employee is a no-op.
func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	uow := s.uowFactory.NewUnitOfWork()
	employee, err := uow.Employees().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}

	links, err := uow.EmployeeDevices().FindActiveByEmployee(ctx, id)
	if err != nil {
		return err
	}

	employee.SoftDelete()
	uow.Update(employee)
	for _, link := range links {
		link.SoftDelete()
		uow.Update(link)
	}
	if _, err := uow.Save(ctx); err != nil {
		return err
	}

	recordAssignments(0, len(links))
	return nil
}
