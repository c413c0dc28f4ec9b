package asset

// AssignmentPlan is the minimal set of changes that turns an employee's
// current links into the desired device set.
type AssignmentPlan struct {
	EmployeeID int64
	// Keep holds current links whose device is still wanted. They are not written.
	Keep []*EmployeeDevice
	// Remove holds current links whose device is no longer wanted.
	Remove []*EmployeeDevice
	// Add holds new, unsaved links for wanted devices that had no link.
	Add []*EmployeeDevice
}

// PlanAssignments compares the employee's current (non-deleted) links with
// the desired device ids. Duplicate desired ids collapse to one link, first
// occurrence wins. Empty current or empty desired sets need no special case.
func PlanAssignments(employeeID int64, current []*EmployeeDevice, desiredDeviceIDs []int64) AssignmentPlan {
	desired := DistinctIDs(desiredDeviceIDs)
	wanted := make(map[int64]struct{}, len(desired))
	for _, id := range desired {
		wanted[id] = struct{}{}
	}

	plan := AssignmentPlan{EmployeeID: employeeID}
	have := make(map[int64]struct{}, len(current))
	for _, link := range current {
		if link == nil {
			continue
		}
		if _, ok := wanted[link.DeviceID]; ok {
			plan.Keep = append(plan.Keep, link)
			have[link.DeviceID] = struct{}{}
			continue
		}
		plan.Remove = append(plan.Remove, link)
	}

	for _, deviceID := range desired {
		if _, ok := have[deviceID]; ok {
			continue
		}
		plan.Add = append(plan.Add, NewEmployeeDevice(employeeID, deviceID))
	}

	return plan
}

// IsNoop reports whether the plan writes nothing
func (p AssignmentPlan) IsNoop() bool {
	return len(p.Remove) == 0 && len(p.Add) == 0
}

// Effective returns the links that remain assigned once the plan is saved
func (p AssignmentPlan) Effective() []*EmployeeDevice {
	links := make([]*EmployeeDevice, 0, len(p.Keep)+len(p.Add))
	links = append(links, p.Keep...)
	links = append(links, p.Add...)
	return links
}

// DeviceIDs returns the device ids of the effective links
func (p AssignmentPlan) DeviceIDs() []int64 {
	effective := p.Effective()
	ids := make([]int64, 0, len(effective))
	for _, link := range effective {
		ids = append(ids, link.DeviceID)
	}
	return ids
}

// DistinctIDs drops repeated ids, keeping first-occurrence order
func DistinctIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
