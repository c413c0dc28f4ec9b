package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	assetapp "github.com/devicedesk/backend/internal/application/asset"
	"github.com/devicedesk/backend/internal/interfaces/http/router"
)

// EmployeeDeviceHandler exposes the employee to device links
type EmployeeDeviceHandler struct {
	BaseHandler
	linkService *assetapp.EmployeeDeviceService
}

// NewEmployeeDeviceHandler creates a new EmployeeDeviceHandler
func NewEmployeeDeviceHandler(linkService *assetapp.EmployeeDeviceService) *EmployeeDeviceHandler {
	return &EmployeeDeviceHandler{linkService: linkService}
}

// List godoc
//
//	@Summary	List live links of the given employees
//	@Tags		employee-devices
//	@Param		employeeIds	query		string	true	"Comma separated employee ids"
//	@Success	200			{object}	APIResponse[[]assetapp.EmployeeDeviceDTO]
//	@Router		/employee-device [get]
func (h *EmployeeDeviceHandler) List(c *gin.Context) {
	ids, err := parseIDList(c.QueryArray("employeeIds"))
	if err != nil {
		h.BadRequest(c, "employeeIds must be a comma separated list of positive integers")
		return
	}

	links, err := h.linkService.List(c.Request.Context(), ids)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, links)
}

// Reconcile godoc
//
//	@Summary	Replace the device set of one employee
//	@Tags		employee-devices
//	@Param		request	body		[]assetapp.EmployeeDeviceDTO	true	"Links of a single employee"
//	@Success	200		{object}	APIResponse[[]assetapp.EmployeeDeviceDTO]
//	@Failure	400		{object}	ErrorResponse
//	@Router		/employee-device [post]
func (h *EmployeeDeviceHandler) Reconcile(c *gin.Context) {
	var links []assetapp.EmployeeDeviceDTO
	if err := c.ShouldBindJSON(&links); err != nil {
		h.ValidationError(c, err)
		return
	}

	out, err := h.linkService.Reconcile(c.Request.Context(), links)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, out)
}

// Routes returns the link endpoints
func (h *EmployeeDeviceHandler) Routes() *router.DomainGroup {
	return router.NewDomainGroup("employee-device", "/employee-device").
		GET("", h.List).
		POST("", h.Reconcile)
}

// parseIDList accepts both repeated parameters and comma separated values
func parseIDList(values []string) ([]int64, error) {
	ids := make([]int64, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil || id <= 0 {
				return nil, fmt.Errorf("invalid employee id %q", part)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}
