package portal

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// PortalDate is a calendar date (no time-of-day component).
type PortalDate time.Time

const dateFormat = time.DateOnly

// MarshalJSON implements the json.Marshaler interface.
func (d PortalDate) MarshalJSON() ([]byte, error) {
	if time.Time(d).IsZero() {
		return []byte(`""`), nil
	}
	formatted := fmt.Sprintf("\"%s\"", time.Time(d).Format(dateFormat))
	return []byte(formatted), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (d *PortalDate) UnmarshalJSON(data []byte) error {
	str := string(data)
	if str == "null" || str == `""` {
		return nil
	}
	parsed, err := time.Parse(dateFormat, str[1:len(str)-1])
	if err != nil {
		return err
	}
	*d = PortalDate(parsed)
	return nil
}

// Value implements the driver.Valuer interface.
func (d PortalDate) Value() (driver.Value, error) {
	return time.Time(d), nil
}

// Scan implements the sql.Scanner interface.
func (d *PortalDate) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case time.Time:
		*d = PortalDate(v)
	case string:
		parsed, err := time.Parse(dateFormat, v)
		if err != nil {
			return err
		}
		*d = PortalDate(parsed)
	default:
		return fmt.Errorf("cannot scan type %T into PortalDate", value)
	}
	return nil
}

// String implements the fmt.Stringer interface. The zero date renders as
// the empty string, matching MarshalJSON.
func (d PortalDate) String() string {
	if time.Time(d).IsZero() {
		return ""
	}
	return time.Time(d).Format(dateFormat)
}

// UnmarshalParam implements the gin parameter binding interface.
func (d *PortalDate) UnmarshalParam(param string) error {
	if param == "" {
		return nil
	}
	parsed, err := time.Parse(dateFormat, param)
	if err != nil {
		return err
	}
	*d = PortalDate(parsed)
	return nil
}
