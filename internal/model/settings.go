package model

// Branding holds the customizable fields shown in headers and printed
// reports. The logo is a data URI so it can be embedded directly.
type Branding struct {
	AppName     string `json:"appName"`
	AppLogo     string `json:"appLogo,omitempty"`
	ManagerName string `json:"managerName"`
	CompanyInfo string `json:"companyInfo"`
}

// Built-in branding defaults, used when a settings key has never been saved.
const (
	DefaultAppName     = "مراقبة حركة الأصناف"
	DefaultManagerName = "المدير العام"
	DefaultCompanyInfo = "العنوان: شارع المثال، المدينة | هاتف: 123-456-789"
)

// Default admin credentials on first run. The password is printed once at
// initialization and should be changed in settings.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)
