package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// LockScope is the scope a supplier draft claims: the whole venue or a single
// department.
type LockScope string

const (
	LockScopeVenue      LockScope = "venue"
	LockScopeDepartment LockScope = "department"
)

func (s LockScope) String() string {
	return string(s)
}

func (s LockScope) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *LockScope) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = LockScope(str)
	return nil
}

func (s LockScope) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *LockScope) Scan(value interface{}) error {
	if value == nil {
		*s = LockScopeVenue
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = LockScope(v)
	case []byte:
		*s = LockScope(string(v))
	}
	return nil
}

// LockOutcome enumerates the result of a scope-lock request. Conflicts are
// expected outcomes, not errors.
type LockOutcome string

const (
	LockOutcomeCreated             LockOutcome = "created"
	LockOutcomeBlockedVenueScope   LockOutcome = "blocked_venue_scope"
	LockOutcomeBlockedDeptScope    LockOutcome = "blocked_department_scope"
	LockOutcomeBlockedInsufficient LockOutcome = "blocked_insufficient_privilege"
	// LockOutcomeFailed marks a supplier whose claim or draft write errored;
	// the run continues and the supplier can be retried.
	LockOutcomeFailed LockOutcome = "failed"
)

func (o LockOutcome) String() string {
	return string(o)
}

// Blocked reports whether the outcome denied the request. A failed outcome
// is an error, not a denial.
func (o LockOutcome) Blocked() bool {
	switch o {
	case LockOutcomeBlockedVenueScope, LockOutcomeBlockedDeptScope, LockOutcomeBlockedInsufficient:
		return true
	}
	return false
}
