package persistence

import (
	"context"
	"errors"

	"github.com/devicedesk/backend/internal/domain/asset"
	"github.com/devicedesk/backend/internal/domain/shared"
	"gorm.io/gorm"
)

const employeeTable = "employee"

// GormEmployeeRepository implements EmployeeRepository using GORM
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewGormEmployeeRepository creates a new GormEmployeeRepository
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// FindPage returns one page of live employees matching filter, ordered by id
func (r *GormEmployeeRepository) FindPage(ctx context.Context, filter asset.EmployeeFilter, page shared.PageRequest) (shared.Page[asset.Employee], error) {
	query := r.db.WithContext(ctx).Model(&asset.Employee{}).Scopes(
		notDeleted(employeeTable),
		containsLike(employeeTable+".name", filter.Name),
		containsLike(employeeTable+".email", filter.Email),
	)
	return findPage[asset.Employee](query, employeeTable, page)
}

// FindByID finds a live employee by its ID
func (r *GormEmployeeRepository) FindByID(ctx context.Context, id int64) (*asset.Employee, error) {
	var employee asset.Employee
	if err := r.db.WithContext(ctx).
		Scopes(notDeleted(employeeTable)).
		Where("id = ?", id).
		First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &employee, nil
}

// ExistsByEmail reports whether a live employee other than excludeID uses email
func (r *GormEmployeeRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&asset.Employee{}).
		Scopes(notDeleted(employeeTable), excludingID(employeeTable, excludeID)).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormEmployeeRepository implements EmployeeRepository
var _ asset.EmployeeRepository = (*GormEmployeeRepository)(nil)
