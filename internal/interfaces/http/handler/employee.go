package handler

import (
	"github.com/gin-gonic/gin"

	assetapp "github.com/devicedesk/backend/internal/application/asset"
	"github.com/devicedesk/backend/internal/domain/shared"
	"github.com/devicedesk/backend/internal/interfaces/http/dto"
	"github.com/devicedesk/backend/internal/interfaces/http/router"
)

// EmployeeHandler handles employee-related API endpoints
type EmployeeHandler struct {
	BaseHandler
	employeeService *assetapp.EmployeeService
	pageDefaults    shared.PageRequest
}

// NewEmployeeHandler creates a new EmployeeHandler
func NewEmployeeHandler(employeeService *assetapp.EmployeeService, pageDefaults shared.PageRequest) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
		pageDefaults:    pageDefaults,
	}
}

// List godoc
//
//	@Summary	List employees with their devices
//	@Tags		employees
//	@Param		name		query	string	false	"Name substring"
//	@Param		email		query	string	false	"Email substring"
//	@Param		pageNumber	query	int		false	"Zero-based page number"
//	@Param		pageSize	query	int		false	"Page size, 0 returns every row"
//	@Success	200	{object}	APIResponse[[]assetapp.EmployeeResponse]
//	@Router		/employee [get]
func (h *EmployeeHandler) List(c *gin.Context) {
	var filter assetapp.EmployeeListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	page, err := h.employeeService.List(c.Request.Context(), filter.Filter(), filter.PageRequest(h.pageDefaults))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.TotalCount, page.PageNumber, page.PageSize)
}

// GetByID godoc
//
//	@Summary	Get an employee
//	@Tags		employees
//	@Param		id	path		int	true	"Employee ID"
//	@Success	200	{object}	APIResponse[assetapp.EmployeeResponse]
//	@Router		/employee/{id} [get]
func (h *EmployeeHandler) GetByID(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	employee, err := h.employeeService.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, employee)
}

// Create godoc
//
//	@Summary	Create an employee and assign devices
//	@Tags		employees
//	@Param		request	body		assetapp.CreateEmployeeRequest	true	"Employee"
//	@Success	201		{object}	APIResponse[assetapp.EmployeeResponse]
//	@Failure	400		{object}	ErrorResponse
//	@Router		/employee [post]
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req assetapp.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	employee, err := h.employeeService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, employee)
}

// Update godoc
//
//	@Summary	Update an employee and reconcile devices
//	@Tags		employees
//	@Param		request	body		assetapp.UpdateEmployeeRequest	true	"Employee"
//	@Success	200		{object}	APIResponse[assetapp.EmployeeResponse]
//	@Failure	400		{object}	ErrorResponse
//	@Router		/employee [put]
func (h *EmployeeHandler) Update(c *gin.Context) {
	var req assetapp.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	employee, err := h.employeeService.Update(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, employee)
}

// Delete godoc
//
//	@Summary	Delete an employee and release its devices
//	@Tags		employees
//	@Param		id	query		int	true	"Employee ID"
//	@Success	200	{object}	SuccessResponse
//	@Router		/employee [delete]
func (h *EmployeeHandler) Delete(c *gin.Context) {
	var q dto.IDQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.ValidationError(c, err)
		return
	}

	if err := h.employeeService.Delete(c.Request.Context(), q.ID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, nil)
}

// Routes returns the employee endpoints
func (h *EmployeeHandler) Routes() *router.DomainGroup {
	return router.NewDomainGroup("employee", "/employee").
		GET("", h.List).
		GET("/:id", h.GetByID).
		POST("", h.Create).
		PUT("", h.Update).
		DELETE("", h.Delete)
}
