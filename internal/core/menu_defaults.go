package core

// Structural entries of the host console that are always dropped once any
// main-menu item is hidden.
const (
	SlugLinkCategories = "link-categories"
	SlugSeparator1     = "separator1"
	SlugSeparator2     = "separator2"
	SlugSeparatorLast  = "separator-last"
)

// DefaultMainMenu returns the host console's built-in navigation.
func DefaultMainMenu() *Menu {
	return NewMenu(
		MenuEntry{Slug: "dashboard", Title: "Dashboard", Capability: CapRead, Icon: "dashicons-dashboard", Position: 2, Href: "/admin/"},
		MenuEntry{Slug: SlugSeparator1, Separator: true, Capability: CapRead, Position: 4},
		MenuEntry{Slug: "documents", Title: "Documents", Capability: CapRead, Icon: "dashicons-admin-post", Position: 5},
		MenuEntry{Slug: "media", Title: "Media", Capability: CapRead, Icon: "dashicons-admin-media", Position: 10},
		MenuEntry{Slug: "links", Title: "Links", Capability: CapManageOptions, Icon: "dashicons-admin-links", Position: 15},
		MenuEntry{Slug: SlugLinkCategories, Title: "Link Categories", Capability: CapManageOptions, Position: 16},
		MenuEntry{Slug: "comments", Title: "Comments", Capability: CapRead, Icon: "dashicons-admin-comments", Position: 25},
		MenuEntry{Slug: SlugSeparator2, Separator: true, Capability: CapRead, Position: 59},
		MenuEntry{Slug: "appearance", Title: "Appearance", Capability: CapManageOptions, Icon: "dashicons-admin-appearance", Position: 60},
		MenuEntry{Slug: "extensions", Title: "Extensions", Capability: CapManageOptions, Icon: "dashicons-admin-plugins", Position: 65},
		MenuEntry{Slug: "users", Title: "Users", Capability: CapManageOptions, Icon: "dashicons-admin-users", Position: 70},
		MenuEntry{Slug: "tools", Title: "Tools", Capability: CapRead, Icon: "dashicons-admin-tools", Position: 75},
		MenuEntry{Slug: "settings", Title: "Settings", Capability: CapManageOptions, Icon: "dashicons-admin-settings", Position: 80},
		MenuEntry{Slug: SlugSeparatorLast, Separator: true, Capability: CapRead, Position: 99},
	)
}

// DefaultAdminBar returns the host console's built-in toolbar.
func DefaultAdminBar(actor Actor) *AdminBar {
	return NewAdminBar(
		AdminBarNode{ID: "site-name", Title: "ERP Console", Href: "/admin/", Position: -10},
		AdminBarNode{ID: "updates", Title: "Updates", Href: AdminURL("updates"), Position: -5},
		AdminBarNode{ID: "comments", Title: "Comments", Href: AdminURL("comments"), Position: -4},
		AdminBarNode{ID: "new-content", Title: "New", Href: "#", Position: -3},
		AdminBarNode{ID: "new-document", Parent: "new-content", Title: "Document", Href: AdminURL("documents") + "?action=new"},
		AdminBarNode{ID: "my-account", Title: "Howdy, " + actor.Username, Href: "#", Position: 10, Meta: AdminBarMeta{Class: "right"}},
		AdminBarNode{ID: "logout", Parent: "my-account", Title: "Log Out", Href: "/logout"},
	)
}

// HideableMainMenu lists the built-in navigation entries the tools form offers to hide.
func HideableMainMenu() []MenuEntry {
	var out []MenuEntry
	for _, e := range DefaultMainMenu().Items() {
		if e.Separator || e.Slug == SlugLinkCategories {
			continue
		}
		out = append(out, e)
	}
	return out
}

// HideableToolbar lists the built-in toolbar entries the tools form offers to hide.
func HideableToolbar() []AdminBarNode {
	return DefaultAdminBar(Actor{}).Roots()
}
