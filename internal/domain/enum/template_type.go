package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// TemplateType represents which document kind a template renders
type TemplateType int

const (
	TemplateTypeInvoice TemplateType = 0
	TemplateTypeQuote   TemplateType = 1
	TemplateTypeBoth    TemplateType = 2
)

func (t TemplateType) String() string {
	names := [...]string{"INVOICE", "QUOTE", "BOTH"}
	if int(t) < 0 || int(t) >= len(names) {
		return "INVOICE"
	}
	return names[t]
}

func (t TemplateType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TemplateType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = TemplateType(i)
		return nil
	}
	switch str {
	case "INVOICE":
		*t = TemplateTypeInvoice
	case "QUOTE":
		*t = TemplateTypeQuote
	case "BOTH":
		*t = TemplateTypeBoth
	default:
		return fmt.Errorf("unknown template type %q", str)
	}
	return nil
}

func (t TemplateType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *TemplateType) Scan(value interface{}) error {
	if value == nil {
		*t = TemplateTypeInvoice
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = TemplateType(v)
	case int:
		*t = TemplateType(v)
	}
	return nil
}
