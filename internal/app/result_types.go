package app

import "erp-admin/internal/core"

// UserSession is returned by AuthenticateUser.
type UserSession struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// UserResult is returned by GetUser and CreateUser.
type UserResult struct {
	ID       int
	Username string
	Email    string
	Role     string
}

// Actor returns the request identity of the user.
func (u *UserResult) Actor() core.Actor {
	return core.Actor{UserID: u.ID, Username: u.Username, Role: u.Role}
}

// SwitchResult is returned by HandleSwitch. Kind is "module", "company", or
// empty when no switch was attempted.
type SwitchResult struct {
	Kind string
	core.SwitchResult
}

// AdminBarGroup is a top-level toolbar node with its drop-down items.
type AdminBarGroup struct {
	Node     core.AdminBarNode
	Children []core.AdminBarNode
}

// AdminChromeResult is the navigation of one admin page render.
type AdminChromeResult struct {
	Menu           []core.MenuEntry
	Bar            []AdminBarGroup
	CurrentModule  core.Module
	CurrentCompany *core.Company
}

// HiddenMenusResult is returned by HiddenMenus and SetHiddenMenus.
type HiddenMenusResult struct {
	Main            []string
	Toolbar         []string
	HideableMain    []core.MenuEntry
	HideableToolbar []core.AdminBarNode
}

// IsMainHidden reports whether slug is in the main hide list.
func (r *HiddenMenusResult) IsMainHidden(slug string) bool {
	return containsString(r.Main, slug)
}

// IsToolbarHidden reports whether id is in the toolbar hide list.
func (r *HiddenMenusResult) IsToolbarHidden(id string) bool {
	return containsString(r.Toolbar, id)
}

// CompanyListResult is returned by ListCompanies.
type CompanyListResult struct {
	Companies []core.Company
}

// AuditLogResult is returned by RecentAudit.
type AuditLogResult struct {
	Entries []core.AuditEntry
}

// ModuleListResult is returned by ListModules.
type ModuleListResult struct {
	Modules      []core.Module
	Default      core.Module
	Addons       []core.Addon
	MenuPosition int
}

// PreferencesResult is returned by Preferences.
type PreferencesResult struct {
	UserID  int
	Module  core.Module
	Company *core.Company // nil when none is selected
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
