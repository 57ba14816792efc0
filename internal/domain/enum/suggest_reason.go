package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// SuggestReason explains why a replenishment line was emitted
type SuggestReason string

const (
	SuggestReasonBelowPar       SuggestReason = "below_par"
	SuggestReasonNoParZeroStock SuggestReason = "no_par_zero_stock"
	SuggestReasonNoSupplier     SuggestReason = "no_supplier"
)

func (r SuggestReason) String() string {
	return string(r)
}

func (r SuggestReason) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(r))
}

func (r *SuggestReason) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*r = SuggestReason(str)
	return nil
}

func (r SuggestReason) Value() (driver.Value, error) {
	return string(r), nil
}

func (r *SuggestReason) Scan(value interface{}) error {
	if value == nil {
		*r = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		*r = SuggestReason(v)
	case []byte:
		*r = SuggestReason(string(v))
	}
	return nil
}
