package handler

import (
	"github.com/gin-gonic/gin"

	assetapp "github.com/devicedesk/backend/internal/application/asset"
	"github.com/devicedesk/backend/internal/domain/shared"
	"github.com/devicedesk/backend/internal/interfaces/http/dto"
	"github.com/devicedesk/backend/internal/interfaces/http/router"
)

// DeviceHandler handles device-related API endpoints
type DeviceHandler struct {
	BaseHandler
	deviceService *assetapp.DeviceService
	pageDefaults  shared.PageRequest
}

// NewDeviceHandler creates a new DeviceHandler. pageDefaults fill in the
// paging parameters a list request leaves out.
func NewDeviceHandler(deviceService *assetapp.DeviceService, pageDefaults shared.PageRequest) *DeviceHandler {
	return &DeviceHandler{
		deviceService: deviceService,
		pageDefaults:  pageDefaults,
	}
}

// List godoc
//
//	@Summary	List devices
//	@Tags		devices
//	@Param		type		query	string	false	"Device type substring"
//	@Param		description	query	string	false	"Description substring"
//	@Param		pageNumber	query	int		false	"Zero-based page number"
//	@Param		pageSize	query	int		false	"Page size, 0 returns every row"
//	@Success	200	{object}	APIResponse[[]assetapp.DeviceResponse]
//	@Router		/device [get]
func (h *DeviceHandler) List(c *gin.Context) {
	var filter assetapp.DeviceListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	page, err := h.deviceService.List(c.Request.Context(), filter.Filter(), filter.PageRequest(h.pageDefaults))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.TotalCount, page.PageNumber, page.PageSize)
}

// Create godoc
//
//	@Summary	Create a device
//	@Tags		devices
//	@Param		request	body		assetapp.CreateDeviceRequest	true	"Device"
//	@Success	201		{object}	APIResponse[assetapp.DeviceResponse]
//	@Failure	400		{object}	ErrorResponse
//	@Router		/device [post]
func (h *DeviceHandler) Create(c *gin.Context) {
	var req assetapp.CreateDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	device, err := h.deviceService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, device)
}

// Update godoc
//
//	@Summary	Update a device
//	@Tags		devices
//	@Param		request	body		assetapp.UpdateDeviceRequest	true	"Device"
//	@Success	200		{object}	APIResponse[assetapp.DeviceResponse]
//	@Failure	400		{object}	ErrorResponse
//	@Router		/device [put]
func (h *DeviceHandler) Update(c *gin.Context) {
	var req assetapp.UpdateDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	device, err := h.deviceService.Update(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, device)
}

// Delete godoc
//
//	@Summary	Delete a device
//	@Tags		devices
//	@Param		id	query		int	true	"Device ID"
//	@Success	200	{object}	SuccessResponse
//	@Failure	400	{object}	ErrorResponse
//	@Router		/device [delete]
func (h *DeviceHandler) Delete(c *gin.Context) {
	var q dto.IDQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.ValidationError(c, err)
		return
	}

	if err := h.deviceService.Delete(c.Request.Context(), q.ID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, nil)
}

// Routes returns the device endpoints
func (h *DeviceHandler) Routes() *router.DomainGroup {
	return router.NewDomainGroup("device", "/device").
		GET("", h.List).
		POST("", h.Create).
		PUT("", h.Update).
		DELETE("", h.Delete)
}
