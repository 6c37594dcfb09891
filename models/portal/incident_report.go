package portal

// IncidentReport is a generated incident report, persisted verbatim as the
// markdown text returned by the report generator.
type IncidentReport struct {
	BaseModel
	IncidentNumber string     `gorm:"column:incident_number;type:varchar(50);uniqueIndex" json:"incidentNumber"`
	Title          string     `gorm:"column:title;type:varchar(255)" json:"title"`
	Content        string     `gorm:"column:content;type:text" json:"content"`
	SipID          string     `gorm:"column:sip_id;type:varchar(50);index" json:"sipId"`
	ClientName     string     `gorm:"column:client_name;type:varchar(100)" json:"clientName"`
	IncidentDate   PortalDate `gorm:"column:incident_date;type:date" json:"incidentDate"`
}

// TableName specifies the table name.
func (IncidentReport) TableName() string {
	return "incident_reports"
}
