package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	assetapp "github.com/devicedesk/backend/internal/application/asset"
	"github.com/devicedesk/backend/internal/domain/shared"
	"github.com/devicedesk/backend/internal/infrastructure/persistence"
	"github.com/devicedesk/backend/internal/interfaces/http/dto"
	"github.com/devicedesk/backend/internal/interfaces/http/middleware"
	"github.com/devicedesk/backend/internal/interfaces/http/router"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

type testAPI struct {
	engine *gin.Engine
	db     *persistence.Database
}

// newTestAPI wires the handlers to real services over an in-memory database
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	db, err := persistence.NewSQLiteDatabase(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(context.Background()))
	t.Cleanup(func() { _ = db.Close() })

	factory := persistence.NewGormUnitOfWorkFactory(db.DB)
	log := zap.NewNop()
	defaults := shared.DefaultPageRequest()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	router.NewRouter(engine).
		Register(NewDeviceHandler(assetapp.NewDeviceService(factory, log), defaults).Routes()).
		Register(NewEmployeeHandler(assetapp.NewEmployeeService(factory, log), defaults).Routes()).
		Register(NewEmployeeDeviceHandler(assetapp.NewEmployeeDeviceService(factory, log)).Routes()).
		RegisterRoot(NewSystemHandler(db, "devicedesk", "test").Routes()).
		Setup()

	return &testAPI{engine: engine, db: db}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

func (a *testAPI) do(t *testing.T, method, path string, body any) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func (a *testAPI) createDevice(t *testing.T, typ string) assetapp.DeviceResponse {
	t.Helper()
	code, env := a.do(t, http.MethodPost, "/api/device", assetapp.CreateDeviceRequest{Type: typ, Description: typ + " unit"})
	require.Equal(t, http.StatusCreated, code)
	return decodeData[assetapp.DeviceResponse](t, env)
}

func (a *testAPI) createEmployee(t *testing.T, name, email string, deviceIDs ...int64) assetapp.EmployeeResponse {
	t.Helper()
	req := assetapp.CreateEmployeeRequest{Name: name, Email: email}
	for _, id := range deviceIDs {
		req.DeviceList = append(req.DeviceList, assetapp.DeviceRef{ID: id})
	}
	code, env := a.do(t, http.MethodPost, "/api/employee", req)
	require.Equal(t, http.StatusCreated, code)
	return decodeData[assetapp.EmployeeResponse](t, env)
}
