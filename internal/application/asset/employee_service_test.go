package asset

import (
	"context"
	"testing"

	"github.com/devicedesk/backend/internal/domain/asset"
	"github.com/devicedesk/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newEmployeeServiceWithMocks() (*EmployeeService, *mockUnitOfWork) {
	uow := newMockUnitOfWork()
	return NewEmployeeService(mockUnitOfWorkFactory{uow: uow}, zap.NewNop()), uow
}

func TestEmployeeService_List(t *testing.T) {
	svc, uow := newEmployeeServiceWithMocks()
	ctx := context.Background()
	page := shared.DefaultPageRequest()

	employees := shared.NewPage([]asset.Employee{
		*newEmployee(1, "Paul", "paul@example.com"),
		*newEmployee(2, "Chris", "chris@example.com"),
	}, 12, page)
	uow.employees.On("FindPage", ctx, asset.EmployeeFilter{}, page).Return(employees, nil)
	uow.employeeDevices.On("FindActiveDetailsByEmployees", ctx, []int64{1, 2}).Return([]asset.EmployeeDeviceDetail{
		{ID: 10, EmployeeID: 1, DeviceID: 3, DeviceType: "Laptop"},
		{ID: 11, EmployeeID: 1, DeviceID: 4, DeviceType: "Mouse"},
	}, nil)

	result, err := svc.List(ctx, asset.EmployeeFilter{}, page)

	require.NoError(t, err)
	assert.Equal(t, int64(12), result.TotalCount)
	assert.Equal(t, 2, result.TotalPages)
	require.Len(t, result.Items, 2)
	assert.Equal(t, []DeviceRef{{ID: 3, Type: "Laptop"}, {ID: 4, Type: "Mouse"}}, result.Items[0].DeviceList)
	assert.NotNil(t, result.Items[1].DeviceList)
	assert.Empty(t, result.Items[1].DeviceList)
	uow.assertAll(t)
}

func TestEmployeeService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		svc, uow := newEmployeeServiceWithMocks()
		uow.employees.On("FindByID", ctx, int64(1)).Return(newEmployee(1, "Paul", "paul@example.com"), nil)

		resp, err := svc.GetByID(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, "Paul", resp.Name)
		assert.Nil(t, resp.DeviceList)
	})

	t.Run("unknown id yields empty response", func(t *testing.T) {
		svc, uow := newEmployeeServiceWithMocks()
		uow.employees.On("FindByID", ctx, int64(9)).Return(nil, shared.ErrNotFound)

		resp, err := svc.GetByID(ctx, 9)

		require.NoError(t, err)
		assert.Equal(t, EmployeeResponse{}, *resp)
	})
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("without devices", func(t *testing.T) {
		svc, uow := newEmployeeServiceWithMocks()
		uow.On("BeginTransaction", ctx).Return(nil)
		uow.employees.On("ExistsByEmail", ctx, "ann@example.com", int64(0)).Return(false, nil)
		uow.On("Save", ctx).Return(int64(1), nil)
		uow.On("Commit").Return(nil)

		resp, err := svc.Create(ctx, CreateEmployeeRequest{Name: "Ann", Email: "ann@example.com"})

		require.NoError(t, err)
		assert.Equal(t, int64(100), resp.ID)
		assert.Nil(t, resp.DeviceList)
		uow.employeeDevices.AssertNotCalled(t, "FindActiveByEmployee", mock.Anything, mock.Anything)
		uow.assertAll(t)
	})

	t.Run("with devices hydrates the assigned set", func(t *testing.T) {
		svc, uow := newEmployeeServiceWithMocks()
		uow.On("BeginTransaction", ctx).Return(nil)
		uow.employees.On("ExistsByEmail", ctx, "ann@example.com", int64(0)).Return(false, nil)
		uow.On("Save", ctx).Return(int64(1), nil)
		uow.employeeDevices.On("FindActiveByEmployee", ctx, int64(100)).Return([]*asset.EmployeeDevice{}, nil)
		uow.devices.On("FindByIDs", ctx, []int64{3, 4}).Return([]asset.Device{
			*newDevice(3, "Laptop", "Dell"),
			*newDevice(4, "Mouse", "Wired"),
		}, nil)
		uow.On("Commit").Return(nil)

		resp, err := svc.Create(ctx, CreateEmployeeRequest{
			Name:       "Ann",
			Email:      "ann@example.com",
			DeviceList: []DeviceRef{{ID: 3}, {ID: 4}, {ID: 3}},
		})

		require.NoError(t, err)
		assert.Equal(t, []DeviceRef{
			{ID: 3, Type: "Laptop", Description: "Dell"},
			{ID: 4, Type: "Mouse", Description: "Wired"},
		}, resp.DeviceList)
		// employee plus two links
		require.Len(t, uow.added, 3)
		link := uow.added[1].(*asset.EmployeeDevice)
		assert.Equal(t, int64(100), link.EmployeeID)
		uow.AssertNumberOfCalls(t, "Save", 2)
		uow.assertAll(t)
	})

	t.Run("duplicate email rolls back", func(t *testing.T) {
		svc, uow := newEmployeeServiceWithMocks()
		uow.On("BeginTransaction", ctx).Return(nil)
		uow.employees.On("ExistsByEmail", ctx, "paul@example.com", int64(0)).Return(true, nil)
		uow.On("Rollback").Return(nil)

		resp, err := svc.Create(ctx, CreateEmployeeRequest{Name: "Paul", Email: " paul@example.com "})

		assert.Nil(t, resp)
		assert.EqualError(t, err, "Email Id already exists.")
		uow.AssertNotCalled(t, "Save", mock.Anything)
		uow.AssertNotCalled(t, "Commit")
		uow.assertAll(t)
	})

	t.Run("failed link save rolls back", func(t *testing.T) {
		svc, uow := newEmployeeServiceWithMocks()
		uow.On("BeginTransaction", ctx).Return(nil)
		uow.employees.On("ExistsByEmail", ctx, "ann@example.com", int64(0)).Return(false, nil)
		uow.On("Save", ctx).Return(int64(1), nil).Once()
		uow.On("Save", ctx).Return(int64(0), shared.ErrConstraintViolation).Once()
		uow.employeeDevices.On("FindActiveByEmployee", ctx, int64(100)).Return([]*asset.EmployeeDevice{}, nil)
		uow.devices.On("FindByIDs", ctx, []int64{5}).Return([]asset.Device{*newDevice(5, "Monitor", "27 inch")}, nil)
		uow.On("Rollback").Return(nil)

		_, err := svc.Create(ctx, CreateEmployeeRequest{
			Name:       "Ann",
			Email:      "ann@example.com",
			DeviceList: []DeviceRef{{ID: 5}},
		})

		assert.ErrorIs(t, err, shared.ErrConstraintViolation)
		uow.AssertNotCalled(t, "Commit")
		uow.assertAll(t)
	})

	t.Run("unknown device rolls back before writing links", func(t *testing.T) {
		svc, uow := newEmployeeServiceWithMocks()
		uow.On("BeginTransaction", ctx).Return(nil)
		uow.employees.On("ExistsByEmail", ctx, "ann@example.com", int64(0)).Return(false, nil)
		uow.On("Save", ctx).Return(int64(1), nil).Once()
		uow.employeeDevices.On("FindActiveByEmployee", ctx, int64(100)).Return([]*asset.EmployeeDevice{}, nil)
		uow.devices.On("FindByIDs", ctx, []int64{999}).Return([]asset.Device{}, nil)
		uow.On("Rollback").Return(nil)

		_, err := svc.Create(ctx, CreateEmployeeRequest{
			Name:       "Ann",
			Email:      "ann@example.com",
			DeviceList: []DeviceRef{{ID: 999}},
		})

		assert.ErrorIs(t, err, shared.ErrConstraintViolation)
		uow.AssertNumberOfCalls(t, "Save", 1)
		uow.AssertNotCalled(t, "Commit")
		uow.assertAll(t)
	})
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("nil device list leaves assignments alone", func(t *testing.T) {
		svc, uow := newEmployeeServiceWithMocks()
		employee := newEmployee(7, "Ann", "ann@example.com")
		uow.employees.On("ExistsByEmail", ctx, "ann.b@example.com", int64(7)).Return(false, nil)
		uow.employees.On("FindByID", ctx, int64(7)).Return(employee, nil)
		uow.On("BeginTransaction", ctx).Return(nil)
		uow.On("Save", ctx).Return(int64(1), nil)
		uow.On("Commit").Return(nil)

		resp, err := svc.Update(ctx, UpdateEmployeeRequest{ID: 7, Name: "Ann B", Email: "ann.b@example.com"})

		require.NoError(t, err)
		assert.Equal(t, "Ann B", resp.Name)
		assert.Nil(t, resp.DeviceList)
		uow.employeeDevices.AssertNotCalled(t, "FindActiveByEmployee", mock.Anything, mock.Anything)
		uow.assertAll(t)
	})

	t.Run("empty device list clears assignments", func(t *testing.T) {
		svc, uow := newEmployeeServiceWithMocks()
		employee := newEmployee(7, "Ann", "ann@example.com")
		links := []*asset.EmployeeDevice{newLink(20, 7, 3), newLink(21, 7, 4)}
		uow.employees.On("ExistsByEmail", ctx, "ann@example.com", int64(7)).Return(false, nil)
		uow.employees.On("FindByID", ctx, int64(7)).Return(employee, nil)
		uow.On("BeginTransaction", ctx).Return(nil)
		uow.On("Save", ctx).Return(int64(1), nil)
		uow.employeeDevices.On("FindActiveByEmployee", ctx, int64(7)).Return(links, nil)
		uow.On("Commit").Return(nil)

		resp, err := svc.Update(ctx, UpdateEmployeeRequest{ID: 7, Name: "Ann", Email: "ann@example.com", DeviceList: []DeviceRef{}})

		require.NoError(t, err)
		assert.Equal(t, []DeviceRef{}, resp.DeviceList)
		assert.True(t, links[0].IsDeleted())
		assert.True(t, links[1].IsDeleted())
		uow.assertAll(t)
	})

	t.Run("echoes the requested device list", func(t *testing.T) {
		svc, uow := newEmployeeServiceWithMocks()
		employee := newEmployee(7, "Ann", "ann@example.com")
		uow.employees.On("ExistsByEmail", ctx, "ann@example.com", int64(7)).Return(false, nil)
		uow.employees.On("FindByID", ctx, int64(7)).Return(employee, nil)
		uow.On("BeginTransaction", ctx).Return(nil)
		uow.On("Save", ctx).Return(int64(1), nil)
		uow.employeeDevices.On("FindActiveByEmployee", ctx, int64(7)).Return([]*asset.EmployeeDevice{newLink(20, 7, 3)}, nil)
		uow.devices.On("FindByIDs", ctx, []int64{5}).Return([]asset.Device{*newDevice(5, "Monitor", "27 inch")}, nil)
		uow.On("Commit").Return(nil)

		requested := []DeviceRef{{ID: 3}, {ID: 5}}
		resp, err := svc.Update(ctx, UpdateEmployeeRequest{ID: 7, Name: "Ann", Email: "ann@example.com", DeviceList: requested})

		require.NoError(t, err)
		assert.Equal(t, requested, resp.DeviceList)
		require.Len(t, uow.added, 1)
		assert.Equal(t, int64(5), uow.added[0].(*asset.EmployeeDevice).DeviceID)
	})

	t.Run("unknown id yields empty response", func(t *testing.T) {
		svc, uow := newEmployeeServiceWithMocks()
		uow.employees.On("ExistsByEmail", ctx, "ann@example.com", int64(9)).Return(false, nil)
		uow.employees.On("FindByID", ctx, int64(9)).Return(nil, shared.ErrNotFound)

		resp, err := svc.Update(ctx, UpdateEmployeeRequest{ID: 9, Name: "Ann", Email: "ann@example.com"})

		require.NoError(t, err)
		assert.Equal(t, EmployeeResponse{}, *resp)
		uow.AssertNotCalled(t, "BeginTransaction", mock.Anything)
	})

	t.Run("rejects email owned by another employee", func(t *testing.T) {
		svc, uow := newEmployeeServiceWithMocks()
		uow.employees.On("ExistsByEmail", ctx, "paul@example.com", int64(7)).Return(true, nil)

		_, err := svc.Update(ctx, UpdateEmployeeRequest{ID: 7, Name: "Ann", Email: "paul@example.com"})

		assert.ErrorIs(t, err, ErrEmailExists)
	})
}

func TestEmployeeService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("cascades to live links in one save", func(t *testing.T) {
		svc, uow := newEmployeeServiceWithMocks()
		employee := newEmployee(1, "Paul", "paul@example.com")
		links := []*asset.EmployeeDevice{newLink(10, 1, 3), newLink(11, 1, 4)}
		uow.employees.On("FindByID", ctx, int64(1)).Return(employee, nil)
		uow.employeeDevices.On("FindActiveByEmployee", ctx, int64(1)).Return(links, nil)
		uow.On("Save", ctx).Return(int64(3), nil)

		require.NoError(t, svc.Delete(ctx, 1))

		assert.True(t, employee.IsDeleted())
		require.Len(t, uow.updated, 3)
		for _, e := range uow.updated {
			assert.True(t, e.IsDeleted())
		}
		uow.AssertNumberOfCalls(t, "Save", 1)
		uow.assertAll(t)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		svc, uow := newEmployeeServiceWithMocks()
		uow.employees.On("FindByID", ctx, int64(9)).Return(nil, shared.ErrNotFound)

		assert.NoError(t, svc.Delete(ctx, 9))
		uow.AssertNotCalled(t, "Save", mock.Anything)
	})
}
