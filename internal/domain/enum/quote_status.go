package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// QuoteStatus represents the lifecycle state of a quote
type QuoteStatus int

const (
	QuoteStatusDraft     QuoteStatus = 0
	QuoteStatusSent      QuoteStatus = 1
	QuoteStatusAccepted  QuoteStatus = 2
	QuoteStatusRejected  QuoteStatus = 3
	QuoteStatusConverted QuoteStatus = 4
)

func (s QuoteStatus) String() string {
	names := [...]string{"DRAFT", "SENT", "ACCEPTED", "REJECTED", "CONVERTED"}
	if int(s) < 0 || int(s) >= len(names) {
		return "DRAFT"
	}
	return names[s]
}

func (s QuoteStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *QuoteStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = QuoteStatus(i)
		return nil
	}
	parsed, ok := ParseQuoteStatus(str)
	if !ok {
		return fmt.Errorf("unknown quote status %q", str)
	}
	*s = parsed
	return nil
}

// ParseQuoteStatus maps a status name to its enum value
func ParseQuoteStatus(s string) (QuoteStatus, bool) {
	switch s {
	case "DRAFT":
		return QuoteStatusDraft, true
	case "SENT":
		return QuoteStatusSent, true
	case "ACCEPTED":
		return QuoteStatusAccepted, true
	case "REJECTED":
		return QuoteStatusRejected, true
	case "CONVERTED":
		return QuoteStatusConverted, true
	}
	return QuoteStatusDraft, false
}

func (s QuoteStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *QuoteStatus) Scan(value interface{}) error {
	if value == nil {
		*s = QuoteStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = QuoteStatus(v)
	case int:
		*s = QuoteStatus(v)
	}
	return nil
}
