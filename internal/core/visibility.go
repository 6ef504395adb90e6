package core

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"erp-admin/internal/logger"

	"go.uber.org/zap"
)

// Option names of the persisted hide lists.
const (
	OptionHiddenMainMenu = "hidden_main_menu_items"
	OptionHiddenToolbar  = "hidden_toolbar_items"
)

// Tools form fields.
const (
	FieldSubmitMenus = "erp_admin_menu"
	FieldNonce       = "_wpnonce"
	FieldMainMenu    = "menu"
	FieldToolbar     = "admin_menu"
)

// separatorPosition is where a single separator is re-inserted after filtering.
const separatorPosition = 9998

// alwaysHidden are dropped whenever the main hide list is non-empty.
var alwaysHidden = []string{SlugLinkCategories, SlugSeparator1, SlugSeparator2, SlugSeparatorLast}

// HiddenMenus is the persisted pair of hide lists.
type HiddenMenus struct {
	Main    []string
	Toolbar []string
}

// SaveResult reports what SaveHiddenMenus changed.
type SaveResult struct {
	Applied        bool
	Reason         DenyReason
	MainUpdated    bool
	ToolbarUpdated bool
}

// Visibility persists the hide lists and applies them to each render.
type Visibility struct {
	options OptionStore
	nonces  *NonceManager
	audit   AuditLog
}

// NewVisibility wires a Visibility. audit may be nil.
func NewVisibility(options OptionStore, nonces *NonceManager, audit AuditLog) *Visibility {
	return &Visibility{options: options, nonces: nonces, audit: audit}
}

// Hidden returns both hide lists.
func (v *Visibility) Hidden(ctx context.Context) (HiddenMenus, error) {
	main, err := getStringList(ctx, v.options, OptionHiddenMainMenu)
	if err != nil {
		return HiddenMenus{}, err
	}
	bar, err := getStringList(ctx, v.options, OptionHiddenToolbar)
	if err != nil {
		return HiddenMenus{}, err
	}
	return HiddenMenus{Main: main, Toolbar: bar}, nil
}

// SaveHiddenMenus handles a tools form submission. The form must carry
// erp_admin_menu and a _wpnonce valid for erp-remove-menu-nonce. Each of menu
// and admin_menu, when present, overwrites its own list; an absent field leaves
// that list untouched.
func (v *Visibility) SaveHiddenMenus(ctx context.Context, actor Actor, form url.Values) (SaveResult, error) {
	if _, ok := form[FieldSubmitMenus]; !ok {
		return SaveResult{Reason: DenyNoToken}, nil
	}
	if err := v.nonces.Verify(form.Get(FieldNonce), actor.UserID, NonceRemoveMenu); err != nil {
		return SaveResult{Reason: DenyInvalidToken}, nil
	}

	var main, bar *[]string
	if vals, ok := formList(form, FieldMainMenu); ok {
		l := sanitizeList(vals)
		main = &l
	}
	if vals, ok := formList(form, FieldToolbar); ok {
		l := sanitizeList(vals)
		bar = &l
	}
	if err := v.SetHidden(ctx, main, bar); err != nil {
		return SaveResult{}, err
	}

	res := SaveResult{Applied: true, MainUpdated: main != nil, ToolbarUpdated: bar != nil}
	if v.audit != nil && (res.MainUpdated || res.ToolbarUpdated) {
		detail := fmt.Sprintf("main=%s toolbar=%s", describeList(main), describeList(bar))
		if err := v.audit.Record(ctx, actor, AuditMenusHidden, detail); err != nil {
			logger.From(ctx).Warn("audit record failed",
				logger.Component("core.visibility"), logger.Op("SaveHiddenMenus"), logger.Err(err))
		}
	}
	return res, nil
}

// SetHidden overwrites the lists that are non-nil. Entries are sanitized.
func (v *Visibility) SetHidden(ctx context.Context, main, toolbar *[]string) error {
	if main != nil {
		if err := setStringList(ctx, v.options, OptionHiddenMainMenu, sanitizeList(*main)); err != nil {
			return err
		}
	}
	if toolbar != nil {
		if err := setStringList(ctx, v.options, OptionHiddenToolbar, sanitizeList(*toolbar)); err != nil {
			return err
		}
	}
	return nil
}

// ApplyMenuFilters removes hidden entries from menu. With an empty hide list
// the menu is left untouched; otherwise the structural separators and link
// categories are dropped too and one separator is placed before the ERP entry.
func (v *Visibility) ApplyMenuFilters(ctx context.Context, menu *Menu) error {
	hidden, err := getStringList(ctx, v.options, OptionHiddenMainMenu)
	if err != nil {
		return err
	}
	if len(hidden) == 0 {
		return nil
	}
	for _, slug := range hidden {
		menu.Remove(slug)
	}
	for _, slug := range alwaysHidden {
		menu.Remove(slug)
	}
	menu.Add(MenuEntry{
		Slug:       fmt.Sprintf("separator%d", separatorPosition),
		Separator:  true,
		Capability: CapRead,
		Position:   separatorPosition,
	})
	logger.From(ctx).Debug("main menu filtered",
		logger.Component("core.visibility"), zap.Int("hidden", len(hidden)))
	return nil
}

// ApplyToolbarFilters removes hidden nodes from bar. Empty hide list is a no-op.
func (v *Visibility) ApplyToolbarFilters(ctx context.Context, bar *AdminBar) error {
	hidden, err := getStringList(ctx, v.options, OptionHiddenToolbar)
	if err != nil {
		return err
	}
	for _, id := range hidden {
		bar.Remove(id)
	}
	return nil
}

// formList returns the values of name, also accepting the bracketed name[] form.
func formList(form url.Values, name string) ([]string, bool) {
	vals, ok := form[name]
	if more, ok2 := form[name+"[]"]; ok2 {
		vals = append(append([]string(nil), vals...), more...)
		ok = true
	}
	return vals, ok
}

func describeList(l *[]string) string {
	if l == nil {
		return "unchanged"
	}
	return "[" + strings.Join(*l, ",") + "]"
}
