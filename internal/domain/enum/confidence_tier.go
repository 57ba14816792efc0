package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ConfidenceTier is the coarse classification of a reconciliation confidence
// score used to drive auto-accept vs. manual-review flow.
type ConfidenceTier string

const (
	ConfidenceTierLow    ConfidenceTier = "low"
	ConfidenceTierMedium ConfidenceTier = "medium"
	ConfidenceTierHigh   ConfidenceTier = "high"
)

func (t ConfidenceTier) String() string {
	return string(t)
}

func (t ConfidenceTier) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *ConfidenceTier) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = ConfidenceTier(str)
	return nil
}

func (t ConfidenceTier) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *ConfidenceTier) Scan(value interface{}) error {
	if value == nil {
		*t = ConfidenceTierLow
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = ConfidenceTier(v)
	case []byte:
		*t = ConfidenceTier(string(v))
	}
	return nil
}
