// Package reconcile combines a freshly detected service inventory with
// a previously persisted one under a stated policy. It performs no I/O;
// persistence of the merged inventory is the caller's job.
package reconcile

import "github.com/nleclerc/dockhand/internal/model"

// Policy selects how detected services are folded into the current
// inventory.
type Policy string

const (
	// PolicyMerge keeps current entries and overlays user-set fields on
	// top of re-detected ones.
	PolicyMerge Policy = "merge"
	// PolicyReplace makes the detected inventory authoritative.
	PolicyReplace Policy = "replace"
)

// Result is the outcome of one reconciliation pass. Merged is the
// inventory the caller should persist; the counters describe what
// changed under the chosen policy.
type Result struct {
	Merged   model.Inventory
	Added    int
	Updated  int
	Replaced int
	Removed  int

	// NothingDetected distinguishes "no services were detected at all"
	// from "everything was already in sync".
	NothingDetected bool
}

// InSync reports whether the pass changed nothing.
func (r Result) InSync() bool {
	return r.Added == 0 && r.Updated == 0 && r.Replaced == 0 && r.Removed == 0
}

// Reconcile computes the merged inventory for the given policy. An
// empty detected inventory is a no-op: current is returned unchanged
// with NothingDetected set, so callers can report it distinctly.
func Reconcile(current, detected model.Inventory, policy Policy) Result {
	if len(detected) == 0 {
		return Result{Merged: current.Clone(), NothingDetected: true}
	}

	switch policy {
	case PolicyReplace:
		return replace(current, detected)
	default:
		return merge(current, detected)
	}
}

func merge(current, detected model.Inventory) Result {
	result := Result{Merged: current.Clone()}

	for name, det := range detected.Clone() {
		cur, exists := result.Merged[name]
		if !exists {
			result.Merged[name] = det
			result.Added++
			continue
		}
		result.Merged[name] = overlay(det, cur)
		result.Updated++
	}

	return result
}

func replace(current, detected model.Inventory) Result {
	result := Result{Merged: detected.Clone()}

	for name := range detected {
		if _, existed := current[name]; existed {
			result.Replaced++
		} else {
			result.Added++
		}
	}
	for name := range current {
		if _, kept := detected[name]; !kept {
			result.Removed++
		}
	}

	return result
}

// overlay starts from the detected descriptor and reapplies every field
// the current descriptor carries, so user customizations survive
// re-detection. A field counts as carried when it is non-zero.
func overlay(detected, current model.ServiceDescriptor) model.ServiceDescriptor {
	out := detected

	if current.Port != 0 {
		out.Port = current.Port
	}
	if current.Description != "" {
		out.Description = current.Description
	}
	if current.HealthCheckEnabled {
		out.HealthCheckEnabled = true
	}
	if len(current.Volumes) > 0 {
		out.Volumes = append([]string(nil), current.Volumes...)
	}
	if len(current.Environment) > 0 {
		env := make(map[string]string, len(out.Environment)+len(current.Environment))
		for k, v := range out.Environment {
			env[k] = v
		}
		for k, v := range current.Environment {
			env[k] = v
		}
		out.Environment = env
	}

	out.Detected = true
	return out
}
