package portal

// Masterlist is the customer/server directory record. One row per customer
// deployment; the sip_id column names the SIP server the customer lives on.
type Masterlist struct {
	BaseModel
	SipID            string `gorm:"column:sip_id;type:varchar(50);index" json:"sipId"`
	CompanyName      string `gorm:"column:company_name;type:varchar(255)" json:"companyName"`
	Provider         string `gorm:"column:provider;type:varchar(100)" json:"provider"`
	CustomFeatures   string `gorm:"column:custom_features;type:text" json:"customFeatures"`
	IPAddress        string `gorm:"column:ip_address;type:varchar(45)" json:"ipAddress"`
	ServerURL        string `gorm:"column:server_url;type:varchar(255)" json:"serverUrl"`
	SubscriptionPlan string `gorm:"column:subscription_plan;type:varchar(100)" json:"subscriptionPlan"`
	OfficeClose      string `gorm:"column:office_close;type:varchar(100)" json:"officeClose"`
	TrunksLines      int    `gorm:"column:trunks_lines" json:"trunksLines"`
	Extensions       int    `gorm:"column:extensions" json:"extensions"`
	Category         string `gorm:"column:category;type:varchar(100)" json:"category"`
	EndpointClass1   string `gorm:"column:endpoint_class_1;type:varchar(100)" json:"endpointClass1"`
	EndpointClass2   string `gorm:"column:endpoint_class_2;type:varchar(100)" json:"endpointClass2"`
	Remarks          string `gorm:"column:remarks;type:text" json:"remarks"`
}

// TableName specifies the table name.
func (Masterlist) TableName() string {
	return "masterlist"
}
