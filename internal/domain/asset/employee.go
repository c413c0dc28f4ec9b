package asset

import (
	"strings"
	"unicode/utf8"

	"github.com/devicedesk/backend/internal/domain/shared"
)

const (
	MaxEmployeeNameLength  = 100
	MaxEmployeeEmailLength = 256
)

// Employee is a person devices can be assigned to.
// Email is unique among employees that are not deleted.
type Employee struct {
	shared.BaseEntity
	Name  string `gorm:"type:varchar(100);not null" json:"name"`
	Email string `gorm:"type:varchar(256);not null;uniqueIndex:idx_employee_email_active,where:deleted = false" json:"email"`
}

// TableName returns the table name for GORM
func (Employee) TableName() string {
	return "employee"
}

// NewEmployee creates a new employee with required fields
func NewEmployee(name, email string) (*Employee, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if err := validateEmployee(name, email); err != nil {
		return nil, err
	}

	return &Employee{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Email:      email,
	}, nil
}

// Update replaces the employee's name and email
func (e *Employee) Update(name, email string) error {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if err := validateEmployee(name, email); err != nil {
		return err
	}

	e.Name = name
	e.Email = email
	return nil
}

func validateEmployee(name, email string) error {
	if name == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Employee name is required")
	}
	if utf8.RuneCountInString(name) > MaxEmployeeNameLength {
		return shared.NewDomainError(shared.CodeInvalidInput, "Employee name cannot exceed 100 characters")
	}
	if email == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Employee email is required")
	}
	if utf8.RuneCountInString(email) > MaxEmployeeEmailLength {
		return shared.NewDomainError(shared.CodeInvalidInput, "Employee email cannot exceed 256 characters")
	}
	return nil
}
