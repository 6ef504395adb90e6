package layouts

import "erp-admin/internal/app"

// AppLayoutData is passed to the app layout to configure the page shell.
type AppLayoutData struct {
	Title       string
	ModuleTitle string
	CompanyName string // "- None -" when no company is selected
	Username    string
	Role        string
	ActiveNav   string // menu slug of the current page, e.g. "erp-tools", "dashboard"
	FlashMsg    string
	FlashKind   string // "success", "error", "warning", "info"
	Chrome      *app.AdminChromeResult
}

// Page pairs the shell with the page-specific view model.
type Page struct {
	Layout AppLayoutData
	Data   any
}
