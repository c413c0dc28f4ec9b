package asset

import (
	"context"

	"github.com/devicedesk/backend/internal/domain/asset"
	"github.com/devicedesk/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// Mock implementations

type mockDeviceRepository struct {
	mock.Mock
}

func (m *mockDeviceRepository) FindPage(ctx context.Context, filter asset.DeviceFilter, page shared.PageRequest) (shared.Page[asset.Device], error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).(shared.Page[asset.Device]), args.Error(1)
}

func (m *mockDeviceRepository) FindByID(ctx context.Context, id int64) (*asset.Device, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asset.Device), args.Error(1)
}

func (m *mockDeviceRepository) FindByIDs(ctx context.Context, ids []int64) ([]asset.Device, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]asset.Device), args.Error(1)
}

func (m *mockDeviceRepository) ExistsByType(ctx context.Context, deviceType string, excludeID int64) (bool, error) {
	args := m.Called(ctx, deviceType, excludeID)
	return args.Bool(0), args.Error(1)
}

type mockEmployeeRepository struct {
	mock.Mock
}

func (m *mockEmployeeRepository) FindPage(ctx context.Context, filter asset.EmployeeFilter, page shared.PageRequest) (shared.Page[asset.Employee], error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).(shared.Page[asset.Employee]), args.Error(1)
}

func (m *mockEmployeeRepository) FindByID(ctx context.Context, id int64) (*asset.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asset.Employee), args.Error(1)
}

func (m *mockEmployeeRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

type mockEmployeeDeviceRepository struct {
	mock.Mock
}

func (m *mockEmployeeDeviceRepository) FindActiveByEmployee(ctx context.Context, employeeID int64) ([]*asset.EmployeeDevice, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*asset.EmployeeDevice), args.Error(1)
}

func (m *mockEmployeeDeviceRepository) FindActiveDetailsByEmployees(ctx context.Context, employeeIDs []int64) ([]asset.EmployeeDeviceDetail, error) {
	args := m.Called(ctx, employeeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]asset.EmployeeDeviceDetail), args.Error(1)
}

func (m *mockEmployeeDeviceRepository) ExistsActiveForDevice(ctx context.Context, deviceID int64) (bool, error) {
	args := m.Called(ctx, deviceID)
	return args.Bool(0), args.Error(1)
}

// mockUnitOfWork records registrations itself and delegates the
// transactional calls to mock.Mock. A successful Save hands out ids to
// added entities the way the database would.
type mockUnitOfWork struct {
	mock.Mock
	devices         *mockDeviceRepository
	employees       *mockEmployeeRepository
	employeeDevices *mockEmployeeDeviceRepository

	added      []shared.Auditable
	updated    []shared.Auditable
	pending    []shared.Auditable
	nextID     int64
	autoDetect bool
}

func newMockUnitOfWork() *mockUnitOfWork {
	return &mockUnitOfWork{
		devices:         new(mockDeviceRepository),
		employees:       new(mockEmployeeRepository),
		employeeDevices: new(mockEmployeeDeviceRepository),
		nextID:          100,
		autoDetect:      true,
	}
}

func (m *mockUnitOfWork) Devices() asset.DeviceRepository                 { return m.devices }
func (m *mockUnitOfWork) Employees() asset.EmployeeRepository             { return m.employees }
func (m *mockUnitOfWork) EmployeeDevices() asset.EmployeeDeviceRepository { return m.employeeDevices }

func (m *mockUnitOfWork) Add(entities ...shared.Auditable) {
	m.added = append(m.added, entities...)
	m.pending = append(m.pending, entities...)
}

func (m *mockUnitOfWork) Update(entities ...shared.Auditable) {
	m.updated = append(m.updated, entities...)
}

func (m *mockUnitOfWork) Save(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	if err := args.Error(1); err != nil {
		return 0, err
	}
	for _, e := range m.pending {
		state := e.AuditState()
		state.ID = m.nextID
		e.RestoreAuditState(state)
		m.nextID++
	}
	m.pending = nil
	return args.Get(0).(int64), nil
}

func (m *mockUnitOfWork) BeginTransaction(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockUnitOfWork) Commit() error {
	return m.Called().Error(0)
}

func (m *mockUnitOfWork) Rollback() error {
	return m.Called().Error(0)
}

func (m *mockUnitOfWork) SetAutoDetectChanges(enabled bool) { m.autoDetect = enabled }
func (m *mockUnitOfWork) AutoDetectChanges() bool           { return m.autoDetect }

func (m *mockUnitOfWork) assertAll(t mock.TestingT) {
	m.AssertExpectations(t)
	m.devices.AssertExpectations(t)
	m.employees.AssertExpectations(t)
	m.employeeDevices.AssertExpectations(t)
}

type mockUnitOfWorkFactory struct {
	uow *mockUnitOfWork
}

func (f mockUnitOfWorkFactory) NewUnitOfWork() UnitOfWork { return f.uow }

var _ UnitOfWork = (*mockUnitOfWork)(nil)

func newDevice(id int64, deviceType, description string) *asset.Device {
	d, err := asset.NewDevice(deviceType, description)
	if err != nil {
		panic(err)
	}
	d.ID = id
	return d
}

func newEmployee(id int64, name, email string) *asset.Employee {
	e, err := asset.NewEmployee(name, email)
	if err != nil {
		panic(err)
	}
	e.ID = id
	return e
}

func newLink(id, employeeID, deviceID int64) *asset.EmployeeDevice {
	l := asset.NewEmployeeDevice(employeeID, deviceID)
	l.ID = id
	return l
}
