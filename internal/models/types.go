package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID is a backend identifier. The API emits integers; the portal treats ids as opaque strings.
type ID string

// UnmarshalJSON accepts both JSON numbers and strings.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON emits numeric ids as numbers so the backend accepts them as primary keys.
func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalParam binds ids from form values.
func (id *ID) UnmarshalParam(param string) error {
	*id = ID(strings.TrimSpace(param))
	return nil
}

func (id ID) String() string { return string(id) }

// Decimal is a number the backend may serialise as a string ("87.50").
type Decimal float64

// UnmarshalJSON accepts numbers, numeric strings, empty strings and null.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = 0
		return nil
	}
	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	}
	return d.UnmarshalParam(raw)
}

// UnmarshalParam binds decimals from form values; blank means zero.
func (d *Decimal) UnmarshalParam(param string) error {
	param = strings.TrimSpace(param)
	if param == "" {
		*d = 0
		return nil
	}
	f, err := strconv.ParseFloat(param, 64)
	if err != nil {
		return fmt.Errorf("decimal %q: %w", param, err)
	}
	*d = Decimal(f)
	return nil
}

// Float returns the value as float64.
func (d Decimal) Float() float64 { return float64(d) }

// Count is a non-negative integer counter that may arrive as a string from forms or the API.
type Count int

// UnmarshalJSON accepts numbers, numeric strings, empty strings and null.
func (n *Count) UnmarshalJSON(data []byte) error {
	var d Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*n = Count(int(d))
	return nil
}

// UnmarshalParam binds counters from form values.
func (n *Count) UnmarshalParam(param string) error {
	var d Decimal
	if err := d.UnmarshalParam(param); err != nil {
		return err
	}
	*n = Count(int(d))
	return nil
}

// Int returns the value as int.
func (n Count) Int() int { return int(n) }

// NotAvailable is the single rendering fallback for missing optional values.
const NotAvailable = "N/A"

// OrNA renders an optional string.
func OrNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}
