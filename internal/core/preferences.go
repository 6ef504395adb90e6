package core

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

// User meta keys owned by the context switcher.
const (
	MetaActiveModule  = "active_module"
	MetaActiveCompany = "active_company"
)

// Preferences reads and writes an actor's active module and company.
type Preferences struct {
	meta      UserMetaStore
	modules   *ModuleRegistry
	companies CompanyService
}

func NewPreferences(meta UserMetaStore, modules *ModuleRegistry, companies CompanyService) *Preferences {
	return &Preferences{meta: meta, modules: modules, companies: companies}
}

// CurrentModule returns the actor's active module, falling back to the registry
// default when none is stored or the stored key is no longer registered.
func (p *Preferences) CurrentModule(ctx context.Context, actor Actor) (Module, error) {
	key, ok, err := p.meta.GetUserMeta(ctx, actor.UserID, MetaActiveModule)
	if err != nil {
		return p.modules.Default(), err
	}
	if ok {
		if m, found := p.modules.Get(key); found {
			return m, nil
		}
	}
	return p.modules.Default(), nil
}

// CurrentCompany returns the actor's active company, or nil when none is
// selected or the stored company no longer exists.
func (p *Preferences) CurrentCompany(ctx context.Context, actor Actor) (*Company, error) {
	raw, ok, err := p.meta.GetUserMeta(ctx, actor.UserID, MetaActiveCompany)
	if err != nil || !ok {
		return nil, err
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return nil, nil
	}
	c, err := p.companies.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("current company: %w", err)
	}
	return c, nil
}

func (p *Preferences) setActiveModule(ctx context.Context, actor Actor, key string) error {
	return p.meta.SetUserMeta(ctx, actor.UserID, MetaActiveModule, key)
}

func (p *Preferences) setActiveCompany(ctx context.Context, actor Actor, id int) error {
	return p.meta.SetUserMeta(ctx, actor.UserID, MetaActiveCompany, strconv.Itoa(id))
}
