package models

import "encoding/json"

// NullableString distinguishes the three states a JSON string field can be in
// during a partial update:
//   - absent:        Set=false, Valid=false
//   - explicit null: Set=true,  Valid=false
//   - a value:       Set=true,  Valid=true
//
// A plain *string cannot tell "absent" from "null".
type NullableString struct {
	Value string
	Valid bool
	Set   bool
}

// UnmarshalJSON records that the field was present and whether it was null.
func (ns *NullableString) UnmarshalJSON(data []byte) error {
	ns.Set = true

	if string(data) == "null" {
		ns.Valid = false
		ns.Value = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	ns.Value = s
	ns.Valid = true
	return nil
}

// MarshalJSON writes null for an invalid value.
func (ns NullableString) MarshalJSON() ([]byte, error) {
	if !ns.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(ns.Value)
}

// Apply returns the value an optional text column should hold after the
// update: current when the field was absent, "" when it was null.
func (ns NullableString) Apply(current string) string {
	if !ns.Set {
		return current
	}
	if !ns.Valid {
		return ""
	}
	return ns.Value
}
