package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// InvoiceStatus represents the lifecycle state of an invoice. PENDING, PAID
// and CANCELED are stored; OVERDUE only ever appears as a derived value when
// a pending invoice is past its due date.
type InvoiceStatus int

const (
	InvoiceStatusPending  InvoiceStatus = 0
	InvoiceStatusPaid     InvoiceStatus = 1
	InvoiceStatusCanceled InvoiceStatus = 2
	InvoiceStatusOverdue  InvoiceStatus = 3
)

func (s InvoiceStatus) String() string {
	names := [...]string{"PENDING", "PAID", "CANCELED", "OVERDUE"}
	if int(s) < 0 || int(s) >= len(names) {
		return "PENDING"
	}
	return names[s]
}

// Stored reports whether this status may be written to the database.
func (s InvoiceStatus) Stored() bool {
	return s == InvoiceStatusPending || s == InvoiceStatusPaid || s == InvoiceStatusCanceled
}

func (s InvoiceStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *InvoiceStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = InvoiceStatus(i)
		return nil
	}
	parsed, ok := ParseInvoiceStatus(str)
	if !ok {
		return fmt.Errorf("unknown invoice status %q", str)
	}
	*s = parsed
	return nil
}

// ParseInvoiceStatus maps a status name to its enum value
func ParseInvoiceStatus(s string) (InvoiceStatus, bool) {
	switch s {
	case "PENDING":
		return InvoiceStatusPending, true
	case "PAID":
		return InvoiceStatusPaid, true
	case "CANCELED":
		return InvoiceStatusCanceled, true
	case "OVERDUE":
		return InvoiceStatusOverdue, true
	}
	return InvoiceStatusPending, false
}

func (s InvoiceStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *InvoiceStatus) Scan(value interface{}) error {
	if value == nil {
		*s = InvoiceStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = InvoiceStatus(v)
	case int:
		*s = InvoiceStatus(v)
	}
	return nil
}
