package core

import "sort"

// MenuEntry is one item of the main navigation.
type MenuEntry struct {
	Slug       string
	Title      string
	PageTitle  string
	Capability Capability
	Icon       string
	Href       string
	Position   int
	Separator  bool
	Submenu    []MenuEntry
}

// Menu is the main navigation of the admin console, ordered by Position.
type Menu struct {
	entries []MenuEntry
}

func NewMenu(entries ...MenuEntry) *Menu {
	m := &Menu{}
	for _, e := range entries {
		m.Add(e)
	}
	return m
}

// Add appends a top-level entry. An entry with an existing slug replaces it.
func (m *Menu) Add(e MenuEntry) {
	if e.Href == "" && !e.Separator {
		e.Href = AdminURL(e.Slug)
	}
	for i := range m.entries {
		if m.entries[i].Slug == e.Slug {
			m.entries[i] = e
			return
		}
	}
	m.entries = append(m.entries, e)
}

// AddSubmenu appends e under parent. It reports false when parent is not registered.
func (m *Menu) AddSubmenu(parent string, e MenuEntry) bool {
	if e.Href == "" {
		e.Href = AdminURL(e.Slug)
	}
	for i := range m.entries {
		if m.entries[i].Slug == parent {
			m.entries[i].Submenu = append(m.entries[i].Submenu, e)
			return true
		}
	}
	return false
}

// Remove drops the top-level entry with slug and reports whether it existed.
func (m *Menu) Remove(slug string) bool {
	for i := range m.entries {
		if m.entries[i].Slug == slug {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (m *Menu) Has(slug string) bool {
	_, ok := m.Get(slug)
	return ok
}

func (m *Menu) Get(slug string) (MenuEntry, bool) {
	for _, e := range m.entries {
		if e.Slug == slug {
			return e, true
		}
	}
	return MenuEntry{}, false
}

// Items returns the entries sorted by Position, ties in insertion order.
func (m *Menu) Items() []MenuEntry {
	out := append([]MenuEntry(nil), m.entries...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// Visible returns Items filtered to what actor may see, submenus included.
func (m *Menu) Visible(actor Actor) []MenuEntry {
	var out []MenuEntry
	for _, e := range m.Items() {
		if e.Capability != "" && !actor.Can(e.Capability) {
			continue
		}
		var sub []MenuEntry
		for _, s := range e.Submenu {
			if s.Capability == "" || actor.Can(s.Capability) {
				sub = append(sub, s)
			}
		}
		e.Submenu = sub
		out = append(out, e)
	}
	return out
}

// AdminBarMeta holds presentation attributes of a toolbar node.
type AdminBarMeta struct {
	Title string
	Class string
}

// AdminBarNode is one toolbar entry. Nodes with a Parent render as drop-down items.
type AdminBarNode struct {
	ID       string
	Parent   string
	Title    string
	Href     string
	Icon     string
	Position int
	Meta     AdminBarMeta
}

// AdminBar is the toolbar rendered above every admin page.
type AdminBar struct {
	nodes []AdminBarNode
}

func NewAdminBar(nodes ...AdminBarNode) *AdminBar {
	b := &AdminBar{}
	for _, n := range nodes {
		b.Add(n)
	}
	return b
}

// Add appends n, replacing any node with the same ID.
func (b *AdminBar) Add(n AdminBarNode) {
	for i := range b.nodes {
		if b.nodes[i].ID == n.ID {
			b.nodes[i] = n
			return
		}
	}
	b.nodes = append(b.nodes, n)
}

// Remove drops the node with id together with its descendants.
func (b *AdminBar) Remove(id string) bool {
	drop := map[string]bool{id: true}
	for changed := true; changed; {
		changed = false
		for _, n := range b.nodes {
			if !drop[n.ID] && drop[n.Parent] {
				drop[n.ID] = true
				changed = true
			}
		}
	}
	kept := b.nodes[:0]
	found := false
	for _, n := range b.nodes {
		if drop[n.ID] {
			if n.ID == id {
				found = true
			}
			continue
		}
		kept = append(kept, n)
	}
	b.nodes = kept
	return found
}

func (b *AdminBar) Get(id string) (AdminBarNode, bool) {
	for _, n := range b.nodes {
		if n.ID == id {
			return n, true
		}
	}
	return AdminBarNode{}, false
}

// Roots returns top-level nodes ordered by Position, ties in insertion order.
func (b *AdminBar) Roots() []AdminBarNode {
	return b.Children("")
}

// Children returns the direct children of parent in insertion order.
func (b *AdminBar) Children(parent string) []AdminBarNode {
	var out []AdminBarNode
	for _, n := range b.nodes {
		if n.Parent == parent {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// AdminURL is the console path of an admin page slug.
func AdminURL(slug string) string {
	return "/admin/" + slug
}
