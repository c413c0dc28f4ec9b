package asset

import (
	"github.com/devicedesk/backend/internal/domain/asset"
	"github.com/devicedesk/backend/internal/domain/shared"
)

// =============================================================================
// Paging
// =============================================================================

// PageQuery carries the optional paging parameters of a list request.
// Absent values fall back to the configured defaults.
type PageQuery struct {
	PageNumber *int `form:"pageNumber" json:"page_number"`
	PageSize   *int `form:"pageSize" json:"page_size"`
}

// PageRequest resolves the query against defaults. The page number is
// passed through unchanged, so the engine treats it as zero-based.
func (q PageQuery) PageRequest(defaults shared.PageRequest) shared.PageRequest {
	req := defaults
	if q.PageNumber != nil {
		req.PageNumber = *q.PageNumber
	}
	if q.PageSize != nil {
		req.PageSize = *q.PageSize
	}
	return req.Normalize()
}

// =============================================================================
// Device DTOs
// =============================================================================

// DeviceListFilter represents the query of a device listing
type DeviceListFilter struct {
	PageQuery
	Type        string `form:"type"`
	Description string `form:"description"`
}

// Filter returns the repository filter
func (f DeviceListFilter) Filter() asset.DeviceFilter {
	return asset.DeviceFilter{Type: f.Type, Description: f.Description}
}

// CreateDeviceRequest represents a request to create a new device
type CreateDeviceRequest struct {
	Type        string `json:"type" binding:"required,max=50"`
	Description string `json:"description" binding:"required,max=200"`
}

// UpdateDeviceRequest represents a request to update a device
type UpdateDeviceRequest struct {
	ID          int64  `json:"id" binding:"required,min=1"`
	Type        string `json:"type" binding:"required,max=50"`
	Description string `json:"description" binding:"required,max=200"`
}

// DeviceResponse represents a device in API responses
type DeviceResponse struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// ToDeviceResponse converts a domain Device to DeviceResponse
func ToDeviceResponse(d *asset.Device) DeviceResponse {
	return DeviceResponse{
		ID:          d.ID,
		Type:        d.Type,
		Description: d.Description,
	}
}

// DeviceRef is a device as it appears inside an employee. Requests only
// need the id; responses fill in what is known.
type DeviceRef struct {
	ID          int64  `json:"id"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

func deviceIDs(refs []DeviceRef) []int64 {
	ids := make([]int64, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.ID)
	}
	return ids
}

// =============================================================================
// Employee DTOs
// =============================================================================

// EmployeeListFilter represents the query of an employee listing
type EmployeeListFilter struct {
	PageQuery
	Name  string `form:"name"`
	Email string `form:"email"`
}

// Filter returns the repository filter
func (f EmployeeListFilter) Filter() asset.EmployeeFilter {
	return asset.EmployeeFilter{Name: f.Name, Email: f.Email}
}

// CreateEmployeeRequest represents a request to create a new employee.
// DeviceList lists the devices to assign; only ids are read.
type CreateEmployeeRequest struct {
	Name       string      `json:"name" binding:"required,max=100"`
	Email      string      `json:"email" binding:"required,max=256"`
	DeviceList []DeviceRef `json:"device_list"`
}

// UpdateEmployeeRequest represents a request to update an employee.
// A nil DeviceList leaves assignments alone; an empty one clears them.
type UpdateEmployeeRequest struct {
	ID         int64       `json:"id" binding:"required,min=1"`
	Name       string      `json:"name" binding:"required,max=100"`
	Email      string      `json:"email" binding:"required,max=256"`
	DeviceList []DeviceRef `json:"device_list"`
}

// EmployeeResponse represents an employee in API responses
type EmployeeResponse struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	DeviceList []DeviceRef `json:"device_list"`
}

// ToEmployeeResponse converts a domain Employee to EmployeeResponse with no devices
func ToEmployeeResponse(e *asset.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:    e.ID,
		Name:  e.Name,
		Email: e.Email,
	}
}

// =============================================================================
// Assignment DTOs
// =============================================================================

// EmployeeDeviceDTO is one employee to device link
type EmployeeDeviceDTO struct {
	ID         int64  `json:"id"`
	EmployeeID int64  `json:"employee_id" binding:"required,min=1"`
	DeviceID   int64  `json:"device_id" binding:"required,min=1"`
	DeviceType string `json:"device_type,omitempty"`
}

// ToEmployeeDeviceDTO converts a joined link row to EmployeeDeviceDTO
func ToEmployeeDeviceDTO(d asset.EmployeeDeviceDetail) EmployeeDeviceDTO {
	return EmployeeDeviceDTO{
		ID:         d.ID,
		EmployeeID: d.EmployeeID,
		DeviceID:   d.DeviceID,
		DeviceType: d.DeviceType,
	}
}
