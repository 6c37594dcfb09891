package portal

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// MaintenanceStatus enumerates the maintenance record lifecycle states.
type MaintenanceStatus string

const (
	MaintenanceStatusPending   MaintenanceStatus = "pending"
	MaintenanceStatusOnHold    MaintenanceStatus = "on-hold"
	MaintenanceStatusFailed    MaintenanceStatus = "failed"
	MaintenanceStatusCompleted MaintenanceStatus = "completed"
)

// Valid reports whether s is one of the four known states.
func (s MaintenanceStatus) Valid() bool {
	switch s {
	case MaintenanceStatusPending, MaintenanceStatusOnHold,
		MaintenanceStatusFailed, MaintenanceStatusCompleted:
		return true
	}
	return false
}

// KnownMaintenanceReasons is the suggested vocabulary for the reason field.
// The field itself is free text; the business vocabulary keeps growing.
var KnownMaintenanceReasons = []string{
	"Portal Upgrade",
	"DB Migration",
	"OS Patching",
	"Key Rotation",
	"Asterisk Upgrade",
	"WAF Implementation",
	"SSL Renewal",
	"Other Reasons",
}

// ChecklistStatus enumerates the per-item verification states.
type ChecklistStatus string

const (
	ChecklistStatusPass      ChecklistStatus = "pass"
	ChecklistStatusFail      ChecklistStatus = "fail"
	ChecklistStatusNotTested ChecklistStatus = "not-tested"
)

// Valid reports whether s is a known checklist state.
func (s ChecklistStatus) Valid() bool {
	switch s {
	case ChecklistStatusPass, ChecklistStatusFail, ChecklistStatusNotTested:
		return true
	}
	return false
}

// DefaultChecklistLabels are the protected checklist items. They can change
// status but can never be removed once a checklist exists.
var DefaultChecklistLabels = []string{
	"Able to make outgoing calls",
	"Able to receive incoming calls",
}

// NameList is a set of personnel names. The column stores a comma-joined
// string because the underlying store has no native array type.
type NameList []string

// Value implements the driver.Valuer interface.
func (n NameList) Value() (driver.Value, error) {
	return strings.Join(n, ", "), nil
}

// Scan implements the sql.Scanner interface.
func (n *NameList) Scan(value interface{}) error {
	if value == nil {
		*n = nil
		return nil
	}
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan type %T into NameList", value)
	}
	*n = SplitNames(raw)
	return nil
}

// SplitNames parses a comma-joined name list, dropping empty entries.
func SplitNames(raw string) NameList {
	if raw == "" {
		return nil
	}
	var names NameList
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// ProofItem is one proof-of-maintenance attachment.
type ProofItem struct {
	URL     string `json:"url"`
	Comment string `json:"comment"`
}

// ProofList is the ordered proof attachment list, stored as a JSON column.
// An empty list is stored as NULL.
type ProofList []ProofItem

// Value implements the driver.Valuer interface.
func (p ProofList) Value() (driver.Value, error) {
	if len(p) == 0 {
		return nil, nil
	}
	return json.Marshal(p)
}

// Scan implements the sql.Scanner interface. Older rows stored a plain JSON
// array of URL strings, or a single URL string; both are still read.
func (p *ProofList) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan type %T into ProofList", value)
	}
	if len(raw) == 0 {
		*p = nil
		return nil
	}
	var items []ProofItem
	if err := json.Unmarshal(raw, &items); err == nil {
		*p = items
		return nil
	}
	var urls []string
	if err := json.Unmarshal(raw, &urls); err == nil {
		*p = fromURLs(urls)
		return nil
	}
	// legacy single-URL rows
	*p = ProofList{{URL: string(raw)}}
	return nil
}

func fromURLs(urls []string) ProofList {
	items := make(ProofList, 0, len(urls))
	for _, u := range urls {
		items = append(items, ProofItem{URL: u})
	}
	return items
}

// ChecklistItem is one verification step on a maintenance record.
type ChecklistItem struct {
	Label  string          `json:"label"`
	Status ChecklistStatus `json:"status"`
}

// Checklist is the ordered verification list, stored as a JSON column.
type Checklist []ChecklistItem

// Value implements the driver.Valuer interface.
func (c Checklist) Value() (driver.Value, error) {
	if len(c) == 0 {
		return nil, nil
	}
	return json.Marshal(c)
}

// Scan implements the sql.Scanner interface.
func (c *Checklist) Scan(value interface{}) error {
	if value == nil {
		*c = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan type %T into Checklist", value)
	}
	if len(raw) == 0 {
		*c = nil
		return nil
	}
	return json.Unmarshal(raw, c)
}

// MaintenanceRecord is a scheduled or completed maintenance action on a
// customer-facing SIP server.
type MaintenanceRecord struct {
	BaseModel
	MaintenanceNumber  string            `gorm:"column:maintenance_number;type:varchar(50);uniqueIndex" json:"maintenanceNumber"`
	SubmitDate         time.Time         `gorm:"column:submit_date;type:datetime;index" json:"submitDate"`
	ServerName         string            `gorm:"column:server_name;type:varchar(100)" json:"serverName"`
	ClientName         string            `gorm:"column:client_name;type:varchar(100)" json:"clientName"`
	MaintenanceDate    PortalDate        `gorm:"column:maintenance_date;type:date" json:"maintenanceDate"`
	StartTime          string            `gorm:"column:start_time;type:varchar(5)" json:"startTime"` // HH:MM
	EndTime            string            `gorm:"column:end_time;type:varchar(5)" json:"endTime"`     // HH:MM
	MaintenanceReason  string            `gorm:"column:maintenance_reason;type:varchar(100)" json:"maintenanceReason"`
	Approver           string            `gorm:"column:approver;type:varchar(100)" json:"approver"`
	PerformedBy        NameList          `gorm:"column:performed_by;type:varchar(255)" json:"performedBy"`
	Status             MaintenanceStatus `gorm:"column:status;type:varchar(20);index" json:"status"`
	ProofOfMaintenance ProofList         `gorm:"column:proof_of_maintenance;type:text" json:"proofOfMaintenance"`
	Remark             string            `gorm:"column:remark;type:varchar(1000)" json:"remark"`
	Checklist          Checklist         `gorm:"column:checklist;type:text" json:"checklist"`
}

// TableName specifies the table name.
func (MaintenanceRecord) TableName() string {
	return "maintenance_records"
}
