package core_test

import (
	"testing"

	"erp-admin/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenu_OrderAndReplace(t *testing.T) {
	m := core.NewMenu(
		core.MenuEntry{Slug: "b", Title: "B", Position: 20},
		core.MenuEntry{Slug: "a", Title: "A", Position: 10},
		core.MenuEntry{Slug: "c", Title: "C", Position: 20},
	)
	assert.Equal(t, []string{"a", "b", "c"}, slugs(m.Items()))

	m.Add(core.MenuEntry{Slug: "a", Title: "A2", Position: 30})
	assert.Equal(t, []string{"b", "c", "a"}, slugs(m.Items()))
	e, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, "A2", e.Title)
	assert.Equal(t, "/admin/a", e.Href)

	assert.True(t, m.Remove("b"))
	assert.False(t, m.Remove("b"))
	assert.False(t, m.Has("b"))
	assert.False(t, m.AddSubmenu("b", core.MenuEntry{Slug: "child"}))
}

func TestMenu_Visible(t *testing.T) {
	m := core.DefaultMainMenu()
	core.RegisterAdminMenu(m, 0)

	visible := slugs(m.Visible(member))
	assert.Contains(t, visible, "dashboard")
	assert.NotContains(t, visible, "settings")
	assert.NotContains(t, visible, core.ParentSlug)

	all := m.Visible(admin)
	assert.Len(t, all, len(m.Items()))
	assert.Empty(t, m.Visible(core.Actor{}))
}

func TestRegisterAdminMenu(t *testing.T) {
	m := core.NewMenu()
	core.RegisterAdminMenu(m, 42)

	parent, ok := m.Get(core.ParentSlug)
	require.True(t, ok)
	assert.Equal(t, "ERP Settings", parent.Title)
	assert.Equal(t, 42, parent.Position)
	assert.Equal(t, core.CapManageOptions, parent.Capability)

	assert.Equal(t, []string{
		core.PageCompany, core.PageTools, core.PageAuditLog, core.PageSettings, core.PageAddons,
	}, slugs(parent.Submenu))
	for _, s := range parent.Submenu {
		assert.Equal(t, core.CapManageOptions, s.Capability, s.Slug)
	}

	m2 := core.NewMenu()
	core.RegisterAdminMenu(m2, 0)
	p2, _ := m2.Get(core.ParentSlug)
	assert.Equal(t, core.DefaultMenuPosition, p2.Position)
}

func TestAdminBar_RemoveDropsDescendants(t *testing.T) {
	bar := core.NewAdminBar(
		core.AdminBarNode{ID: "root"},
		core.AdminBarNode{ID: "child", Parent: "root"},
		core.AdminBarNode{ID: "grandchild", Parent: "child"},
		core.AdminBarNode{ID: "other"},
	)

	assert.True(t, bar.Remove("root"))
	assert.Equal(t, []string{"other"}, nodeIDs(bar.Roots()))
	_, ok := bar.Get("grandchild")
	assert.False(t, ok)
	assert.False(t, bar.Remove("root"))
}

func TestAdminBar_ChildrenOrdered(t *testing.T) {
	bar := core.NewAdminBar(
		core.AdminBarNode{ID: "p"},
		core.AdminBarNode{ID: "z", Parent: "p", Position: 2},
		core.AdminBarNode{ID: "y", Parent: "p", Position: 1},
		core.AdminBarNode{ID: "x", Parent: "p", Position: 1},
	)
	assert.Equal(t, []string{"y", "x", "z"}, nodeIDs(bar.Children("p")))
}

func TestHideableEntries(t *testing.T) {
	main := slugs(core.HideableMainMenu())
	assert.NotContains(t, main, core.SlugSeparator1)
	assert.NotContains(t, main, core.SlugLinkCategories)
	assert.Contains(t, main, "media")

	bar := nodeIDs(core.HideableToolbar())
	assert.Equal(t, []string{"site-name", "updates", "comments", "new-content", "my-account"}, bar)
}
