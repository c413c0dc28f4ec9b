package asset

import "github.com/devicedesk/backend/internal/domain/shared"

// Business rejections raised before anything is written
var (
	ErrDeviceTypeExists = shared.NewDomainError(shared.CodeAlreadyExists, "Device Type already exists.")
	ErrEmailExists      = shared.NewDomainError(shared.CodeAlreadyExists, "Email Id already exists.")
	ErrDeviceLinked     = shared.NewDomainError(shared.CodeReferentialConflict, "Device is linked with Employee.")
	ErrMixedEmployees   = shared.NewDomainError(shared.CodeInvalidInput, "All links must belong to the same employee")
)
