package reshape

import "github.com/katalvlaran/lvltab/table"

// conflictResolver classifies each (partition, key-tuple) group as
// unique or duplicate and applies the configured policy to duplicates.
// Widen reports every non-error resolution through
// Diagnostics.Conflicts so that opted-out data loss stays visible.
type conflictResolver struct {
	policy DuplicatePolicy
	reduce Reducer
}

// newConflictResolver validates the policy configuration up front, so
// a misconfigured DupReduce fails before any grouping work happens.
func newConflictResolver(policy DuplicatePolicy, reduce Reducer) (conflictResolver, error) {
	if policy == DupReduce && reduce == nil {
		return conflictResolver{}, ErrBadPolicy
	}

	return conflictResolver{policy: policy, reduce: reduce}, nil
}

// resolve collapses one group's values (input-row order) into a single
// cell. conflicted reports whether the group held more than one value;
// a unique group passes through regardless of policy.
func (cr conflictResolver) resolve(values []table.Cell) (cell table.Cell, conflicted bool, err error) {
	if len(values) == 1 {
		return values[0], false, nil
	}

	switch cr.policy {
	case DupKeepFirst:
		return values[0], true, nil
	case DupKeepLast:
		return values[len(values)-1], true, nil
	case DupReduce:
		return cr.reduce(values), true, nil
	default:
		return table.Cell{}, true, ErrDuplicateKey
	}
}
