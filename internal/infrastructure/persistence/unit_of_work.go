package persistence

import (
	"context"
	"errors"
	"reflect"
	"time"

	appasset "github.com/devicedesk/backend/internal/application/asset"
	"github.com/devicedesk/backend/internal/domain/asset"
	"github.com/devicedesk/backend/internal/domain/shared"
	"github.com/devicedesk/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Batch size used for inserts when change tracking is disabled
const createBatchSize = 100

var (
	// ErrTransactionInProgress is returned by BeginTransaction when a transaction is already open
	ErrTransactionInProgress = errors.New("transaction already in progress")
	// ErrNoTransaction is returned by Commit when no transaction is open
	ErrNoTransaction = errors.New("no transaction in progress")
)

type changeKind int

const (
	changeAdd changeKind = iota
	changeUpdate
)

type pendingChange struct {
	kind   changeKind
	entity shared.Auditable
}

// UnitOfWorkOption configures a GormUnitOfWork
type UnitOfWorkOption func(*GormUnitOfWork)

// WithClock sets the time source used for audit stamps
func WithClock(now func() time.Time) UnitOfWorkOption {
	return func(u *GormUnitOfWork) {
		u.now = now
	}
}

// WithUnitOfWorkLogger sets the logger for save outcomes
func WithUnitOfWorkLogger(l *zap.Logger) UnitOfWorkOption {
	return func(u *GormUnitOfWork) {
		u.logger = l
	}
}

// GormUnitOfWork implements UnitOfWork on a GORM connection.
// A GormUnitOfWork is not safe for concurrent use.
type GormUnitOfWork struct {
	db         *gorm.DB
	tx         *gorm.DB
	pending    []pendingChange
	autoDetect bool
	now        func() time.Time
	logger     *zap.Logger
}

// NewGormUnitOfWork creates a unit of work with change tracking enabled
func NewGormUnitOfWork(db *gorm.DB, opts ...UnitOfWorkOption) *GormUnitOfWork {
	u := &GormUnitOfWork{
		db:         db,
		autoDetect: true,
		now:        time.Now,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// conn returns the open transaction, or the root connection
func (u *GormUnitOfWork) conn() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// Devices returns a device repository bound to the current connection
func (u *GormUnitOfWork) Devices() asset.DeviceRepository {
	return NewGormDeviceRepository(u.conn())
}

// Employees returns an employee repository bound to the current connection
func (u *GormUnitOfWork) Employees() asset.EmployeeRepository {
	return NewGormEmployeeRepository(u.conn())
}

// EmployeeDevices returns a link repository bound to the current connection
func (u *GormUnitOfWork) EmployeeDevices() asset.EmployeeDeviceRepository {
	return NewGormEmployeeDeviceRepository(u.conn())
}

// Add registers new entities for the next Save
func (u *GormUnitOfWork) Add(entities ...shared.Auditable) {
	u.register(changeAdd, entities)
}

// Update registers modified entities for the next Save
func (u *GormUnitOfWork) Update(entities ...shared.Auditable) {
	u.register(changeUpdate, entities)
}

func (u *GormUnitOfWork) register(kind changeKind, entities []shared.Auditable) {
	for _, e := range entities {
		if e == nil || reflect.ValueOf(e).IsNil() {
			continue
		}
		u.pending = append(u.pending, pendingChange{kind: kind, entity: e})
	}
}

// Save stamps and writes every registered change in one transaction, or in
// a savepoint of the open transaction. On failure no row is written and the
// entities keep their identity, audit and version columns.
func (u *GormUnitOfWork) Save(ctx context.Context) (int64, error) {
	changes := u.pending
	u.pending = nil
	if len(changes) == 0 {
		return 0, nil
	}

	states := make([]shared.AuditState, len(changes))
	now := u.now().UTC()
	for i, c := range changes {
		states[i] = c.entity.AuditState()
		if c.kind == changeAdd {
			c.entity.MarkCreated(now)
		} else {
			c.entity.MarkModified(now)
		}
	}

	var rows int64
	err := u.conn().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := u.write(tx, changes)
		rows = n
		return err
	})
	if err != nil {
		for i, c := range changes {
			c.entity.RestoreAuditState(states[i])
		}
		err = translateError(err)
		recordSave(saveResult(err), 0)
		u.log(ctx).Warn("Unit of work save failed",
			zap.Int("changes", len(changes)),
			zap.Error(err),
		)
		return 0, err
	}

	recordSave("success", rows)
	u.log(ctx).Debug("Unit of work saved",
		zap.Int("changes", len(changes)),
		zap.Int64("rows", rows),
	)
	return rows, nil
}

func (u *GormUnitOfWork) write(tx *gorm.DB, changes []pendingChange) (int64, error) {
	var adds, updates []shared.Auditable
	for _, c := range changes {
		if c.kind == changeAdd {
			adds = append(adds, c.entity)
		} else {
			updates = append(updates, c.entity)
		}
	}

	rows, err := u.create(tx, adds)
	if err != nil {
		return 0, err
	}

	for _, e := range updates {
		prev := e.GetVersion()
		e.IncrementVersion()
		res := tx.Model(e).
			Where("version = ?", prev).
			Select("*").
			Omit("id", "created_at", clause.Associations).
			Updates(e)
		if res.Error != nil {
			return 0, res.Error
		}
		if res.RowsAffected == 0 {
			recordWriteConflict("version")
			return 0, shared.ErrConcurrencyConflict
		}
		rows += res.RowsAffected
	}

	return rows, nil
}

// create inserts one row at a time while change tracking is on, and one
// batch per entity type otherwise.
func (u *GormUnitOfWork) create(tx *gorm.DB, adds []shared.Auditable) (int64, error) {
	var rows int64
	if u.autoDetect {
		for _, e := range adds {
			res := tx.Omit(clause.Associations).Create(e)
			if res.Error != nil {
				return 0, res.Error
			}
			rows += res.RowsAffected
		}
		return rows, nil
	}

	var order []reflect.Type
	groups := map[reflect.Type]reflect.Value{}
	for _, e := range adds {
		t := reflect.TypeOf(e)
		batch, ok := groups[t]
		if !ok {
			order = append(order, t)
			batch = reflect.MakeSlice(reflect.SliceOf(t), 0, len(adds))
		}
		groups[t] = reflect.Append(batch, reflect.ValueOf(e))
	}
	for _, t := range order {
		res := tx.Omit(clause.Associations).CreateInBatches(groups[t].Interface(), createBatchSize)
		if res.Error != nil {
			return 0, res.Error
		}
		rows += res.RowsAffected
	}
	return rows, nil
}

// BeginTransaction opens an explicit transaction. Repositories obtained
// afterwards read inside it, and Save writes into it.
func (u *GormUnitOfWork) BeginTransaction(ctx context.Context) error {
	if u.tx != nil {
		return ErrTransactionInProgress
	}
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	u.tx = tx
	return nil
}

// Commit commits the open transaction
func (u *GormUnitOfWork) Commit() error {
	if u.tx == nil {
		return ErrNoTransaction
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

// Rollback discards the open transaction and any unsaved changes.
// Without an open transaction it only clears unsaved changes.
func (u *GormUnitOfWork) Rollback() error {
	u.pending = nil
	if u.tx == nil {
		return nil
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// SetAutoDetectChanges toggles per-entity change tracking
func (u *GormUnitOfWork) SetAutoDetectChanges(enabled bool) {
	u.autoDetect = enabled
}

// AutoDetectChanges reports whether per-entity change tracking is on
func (u *GormUnitOfWork) AutoDetectChanges() bool {
	return u.autoDetect
}

func (u *GormUnitOfWork) log(ctx context.Context) *zap.Logger {
	if id := logger.GetRequestID(ctx); id != "" {
		return u.logger.With(zap.String("request_id", id))
	}
	return u.logger
}

func saveResult(err error) string {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Code {
		case shared.CodeNotUnique:
			return "not_unique"
		case shared.CodeConstraintViolation:
			return "constraint_violation"
		case shared.CodeConcurrencyConflict:
			return "concurrency_conflict"
		}
	}
	return "error"
}

// GormUnitOfWorkFactory opens GormUnitOfWork instances on one connection
type GormUnitOfWorkFactory struct {
	db   *gorm.DB
	opts []UnitOfWorkOption
}

// NewGormUnitOfWorkFactory creates a new GormUnitOfWorkFactory
func NewGormUnitOfWorkFactory(db *gorm.DB, opts ...UnitOfWorkOption) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, opts: opts}
}

// NewUnitOfWork opens a fresh unit of work
func (f *GormUnitOfWorkFactory) NewUnitOfWork() appasset.UnitOfWork {
	return NewGormUnitOfWork(f.db, f.opts...)
}

// Ensure GormUnitOfWork implements UnitOfWork
var _ appasset.UnitOfWork = (*GormUnitOfWork)(nil)

// Ensure GormUnitOfWorkFactory implements UnitOfWorkFactory
var _ appasset.UnitOfWorkFactory = (*GormUnitOfWorkFactory)(nil)
