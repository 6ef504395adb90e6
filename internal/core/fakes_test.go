package core_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"erp-admin/internal/core"
)

type fakeCompanies struct {
	mu        sync.Mutex
	companies []core.Company
	listErr   error
}

func newFakeCompanies(names ...string) *fakeCompanies {
	f := &fakeCompanies{}
	for i, n := range names {
		f.companies = append(f.companies, core.Company{ID: i + 1, Name: n, BaseCurrency: "USD"})
	}
	return f
}

func (f *fakeCompanies) List(context.Context) ([]core.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]core.Company(nil), f.companies...), nil
}

func (f *fakeCompanies) GetByID(_ context.Context, id int) (*core.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.companies {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, fmt.Errorf("company id=%d: %w", id, core.ErrNotFound)
}

func (f *fakeCompanies) Create(_ context.Context, in core.CompanyInput) (*core.Company, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	c := core.Company{ID: len(f.companies) + 1, Name: in.Name, BaseCurrency: in.BaseCurrency, CreatedAt: time.Now()}
	f.companies = append(f.companies, c)
	return &c, nil
}

func (f *fakeCompanies) Update(_ context.Context, id int, in core.CompanyInput) (*core.Company, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.companies {
		if f.companies[i].ID == id {
			f.companies[i].Name = in.Name
			f.companies[i].BaseCurrency = in.BaseCurrency
			c := f.companies[i]
			return &c, nil
		}
	}
	return nil, fmt.Errorf("company id=%d: %w", id, core.ErrNotFound)
}

type fakeAudit struct {
	mu      sync.Mutex
	entries []core.AuditEntry
}

func (a *fakeAudit) Record(_ context.Context, actor core.Actor, action, detail string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, core.AuditEntry{UserID: actor.UserID, Action: action, Detail: detail})
	return nil
}

func (a *fakeAudit) Recent(context.Context, int) ([]core.AuditEntry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]core.AuditEntry(nil), a.entries...), nil
}

// countingStore counts writes reaching the underlying store.
type countingStore struct {
	*core.MemoryStore
	optionReads  int
	optionWrites int
	metaWrites   int
}

func (s *countingStore) GetOption(ctx context.Context, name string) (string, bool, error) {
	s.optionReads++
	return s.MemoryStore.GetOption(ctx, name)
}

func (s *countingStore) SetOption(ctx context.Context, name, value string) error {
	s.optionWrites++
	return s.MemoryStore.SetOption(ctx, name, value)
}

func (s *countingStore) SetUserMeta(ctx context.Context, userID int, key, value string) error {
	s.metaWrites++
	return s.MemoryStore.SetUserMeta(ctx, userID, key, value)
}
