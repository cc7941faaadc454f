package models

// UISettings are per-user display preferences saved from the settings page.
type UISettings struct {
	Theme            string `json:"theme" form:"theme" validate:"oneof=light dark"`
	Language         string `json:"language" form:"language" validate:"oneof=en am"`
	SidebarCollapsed bool   `json:"sidebar_collapsed" form:"sidebar_collapsed"`
	RowsPerPage      int    `json:"rows_per_page" form:"rows_per_page" validate:"omitempty,min=5,max=100"`
	EmailAlerts      bool   `json:"email_alerts" form:"email_alerts"`
}

// DefaultUISettings are used until the user saves their own.
func DefaultUISettings() UISettings {
	return UISettings{Theme: "light", Language: "en", RowsPerPage: 10}
}
