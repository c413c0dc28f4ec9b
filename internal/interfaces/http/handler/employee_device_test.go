package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	assetapp "github.com/devicedesk/backend/internal/application/asset"
	"github.com/devicedesk/backend/internal/interfaces/http/dto"
)

func TestEmployeeDeviceHandler_ListAndReconcile(t *testing.T) {
	api := newTestAPI(t)
	laptop := api.createDevice(t, "Laptop")
	monitor := api.createDevice(t, "Monitor")
	phone := api.createDevice(t, "Phone")
	ada := api.createEmployee(t, "Ada", "ada@example.com", laptop.ID, monitor.ID)
	bob := api.createEmployee(t, "Bob", "bob@example.com", phone.ID)

	_, env := api.do(t, http.MethodGet, fmt.Sprintf("/api/employee-device?employeeIds=%d,%d", ada.ID, bob.ID), nil)
	links := decodeData[[]assetapp.EmployeeDeviceDTO](t, env)
	require.Len(t, links, 3)
	assert.Equal(t, "Laptop", links[0].DeviceType)

	keptID := links[1].ID
	code, env := api.do(t, http.MethodPost, "/api/employee-device", []assetapp.EmployeeDeviceDTO{
		{EmployeeID: ada.ID, DeviceID: monitor.ID},
		{EmployeeID: ada.ID, DeviceID: phone.ID},
	})
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decodeData[[]assetapp.EmployeeDeviceDTO](t, env), 2)

	_, env = api.do(t, http.MethodGet, fmt.Sprintf("/api/employee-device?employeeIds=%d", ada.ID), nil)
	links = decodeData[[]assetapp.EmployeeDeviceDTO](t, env)
	require.Len(t, links, 2)
	assert.Equal(t, keptID, links[0].ID)
	assert.Equal(t, monitor.ID, links[0].DeviceID)
	assert.Equal(t, phone.ID, links[1].DeviceID)
}

func TestEmployeeDeviceHandler_Rejections(t *testing.T) {
	api := newTestAPI(t)

	code, env := api.do(t, http.MethodGet, "/api/employee-device?employeeIds=1,x", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, dto.ErrCodeBadRequest, env.Error.Code)

	code, env = api.do(t, http.MethodPost, "/api/employee-device", []assetapp.EmployeeDeviceDTO{
		{EmployeeID: 1, DeviceID: 1},
		{EmployeeID: 2, DeviceID: 2},
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, dto.ErrCodeInvalidInput, env.Error.Code)

	code, env = api.do(t, http.MethodPost, "/api/employee-device", []assetapp.EmployeeDeviceDTO{})
	assert.Equal(t, http.StatusOK, code)
	assert.Empty(t, decodeData[[]assetapp.EmployeeDeviceDTO](t, env))

	code, _ = api.do(t, http.MethodGet, "/api/employee-device", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestParseIDList(t *testing.T) {
	ids, err := parseIDList([]string{"1, 2", "3", ""})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids)

	_, err = parseIDList([]string{"0"})
	assert.Error(t, err)
	_, err = parseIDList([]string{"-4"})
	assert.Error(t, err)
}
