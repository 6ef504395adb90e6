package core

// ParentSlug is the top-level menu entry the ERP pages hang under.
const ParentSlug = "erp-company"

// Admin page slugs.
const (
	PageCompany  = "erp-company"
	PageTools    = "erp-tools"
	PageAuditLog = "erp-audit-log"
	PageSettings = "erp-settings"
	PageAddons   = "erp-addons"
)

// DefaultMenuPosition places the ERP entry after every built-in entry.
const DefaultMenuPosition = 9999

// AdminPage describes one page registered under the ERP menu.
type AdminPage struct {
	Slug       string
	PageTitle  string
	MenuTitle  string
	Capability Capability
}

// AdminPages returns the ERP pages in submenu order.
func AdminPages() []AdminPage {
	return []AdminPage{
		{Slug: PageCompany, PageTitle: "Company", MenuTitle: "Company", Capability: CapManageOptions},
		{Slug: PageTools, PageTitle: "Tools", MenuTitle: "Tools", Capability: CapManageOptions},
		{Slug: PageAuditLog, PageTitle: "Audit Log", MenuTitle: "Audit Log", Capability: CapManageOptions},
		{Slug: PageSettings, PageTitle: "Settings", MenuTitle: "Settings", Capability: CapManageOptions},
		{Slug: PageAddons, PageTitle: "Add-Ons", MenuTitle: "Add-Ons", Capability: CapManageOptions},
	}
}

// RegisterAdminMenu adds the "ERP Settings" entry and its five pages to menu.
// position <= 0 selects DefaultMenuPosition.
func RegisterAdminMenu(menu *Menu, position int) {
	if position <= 0 {
		position = DefaultMenuPosition
	}
	menu.Add(MenuEntry{
		Slug:       ParentSlug,
		Title:      "ERP Settings",
		PageTitle:  "ERP",
		Capability: CapManageOptions,
		Icon:       "dashicons-admin-tools",
		Position:   position,
	})
	for _, p := range AdminPages() {
		menu.AddSubmenu(ParentSlug, MenuEntry{
			Slug:       p.Slug,
			Title:      p.MenuTitle,
			PageTitle:  p.PageTitle,
			Capability: p.Capability,
		})
	}
}
