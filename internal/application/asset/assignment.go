package asset

import (
	"context"

	"go.uber.org/zap"

	"github.com/devicedesk/backend/internal/domain/asset"
	"github.com/devicedesk/backend/internal/domain/shared"
)

// reconcileAssignments brings the employee's live links in line with
// deviceIDs and saves the difference in one call. A plan with nothing to
// write skips the save. Every device a new link points at must be live,
// otherwise nothing is written and shared.ErrConstraintViolation is returned.
func reconcileAssignments(ctx context.Context, uow UnitOfWork, logger *zap.Logger, employeeID int64, deviceIDs []int64) (asset.AssignmentPlan, error) {
	current, err := uow.EmployeeDevices().FindActiveByEmployee(ctx, employeeID)
	if err != nil {
		return asset.AssignmentPlan{}, err
	}

	plan := asset.PlanAssignments(employeeID, current, deviceIDs)
	if plan.IsNoop() {
		return plan, nil
	}
	if err := requireLiveDevices(ctx, uow, logger, plan.Add); err != nil {
		return plan, err
	}

	for _, link := range plan.Remove {
		link.SoftDelete()
		uow.Update(link)
	}
	for _, link := range plan.Add {
		uow.Add(link)
	}
	if _, err := uow.Save(ctx); err != nil {
		return plan, err
	}

	recordAssignments(len(plan.Add), len(plan.Remove))
	logger.Debug("Assignments reconciled",
		zap.Int64("employee_id", employeeID),
		zap.Int("kept", len(plan.Keep)),
		zap.Int("added", len(plan.Add)),
		zap.Int("removed", len(plan.Remove)),
	)
	return plan, nil
}

// requireLiveDevices rejects links whose device is unknown or soft-deleted.
// The foreign key alone accepts a soft-deleted device.
func requireLiveDevices(ctx context.Context, uow UnitOfWork, logger *zap.Logger, links []*asset.EmployeeDevice) error {
	if len(links) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.DeviceID)
	}
	live, err := uow.Devices().FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(live) == len(ids) {
		return nil
	}

	found := make(map[int64]struct{}, len(live))
	for _, d := range live {
		found[d.ID] = struct{}{}
	}
	missing := make([]int64, 0, len(ids)-len(live))
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	logger.Debug("Assignment rejected, devices not live", zap.Int64s("device_ids", missing))
	return shared.ErrConstraintViolation
}

// inTransaction runs fn inside an explicit transaction on uow, committing
// when fn succeeds and rolling back otherwise.
func inTransaction(ctx context.Context, uow UnitOfWork, logger *zap.Logger, fn func() error) error {
	if err := uow.BeginTransaction(ctx); err != nil {
		return err
	}
	if err := fn(); err != nil {
		if rbErr := uow.Rollback(); rbErr != nil {
			logger.Warn("Rollback failed", zap.Error(rbErr))
		}
		return err
	}
	return uow.Commit()
}

func orNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
