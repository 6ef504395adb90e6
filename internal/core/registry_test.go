package core_test

import (
	"os"
	"path/filepath"
	"testing"

	"erp-admin/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const registryYAML = `
modules:
  - key: hrm
    title: HR Management
  - key: crm
    title: CRM
    redirect: /admin/crm-dashboard
    default: true
  - key: accounting
addons:
  - name: Payroll
    description: Salary runs
    url: https://example.com/payroll
`

func TestParseRegistry(t *testing.T) {
	r, err := core.ParseRegistry([]byte(registryYAML))
	require.NoError(t, err)

	keys := []string{}
	for _, m := range r.Modules() {
		keys = append(keys, m.Key)
	}
	assert.Equal(t, []string{"hrm", "crm", "accounting"}, keys)
	assert.Equal(t, "crm", r.Default().Key)

	m, ok := r.Get("accounting")
	require.True(t, ok)
	assert.Equal(t, "accounting", m.Title, "title defaults to key")

	require.Len(t, r.Addons(), 1)
	assert.Equal(t, "Payroll", r.Addons()[0].Name)

	hook := r.ModuleRedirectHook()
	assert.Equal(t, "/admin/crm-dashboard", hook("/admin/", "crm"))
	assert.Equal(t, "/admin/", hook("/admin/", "hrm"))
}

func TestLoadRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(registryYAML), 0o600))

	r, err := core.LoadRegistry(path)
	require.NoError(t, err)
	assert.True(t, r.Has("hrm"))

	_, err = core.LoadRegistry(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewRegistry_FirstModuleIsDefault(t *testing.T) {
	r, err := core.NewRegistry([]core.Module{{Key: "a"}, {Key: "b"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "a", r.Default().Key)
}

func TestNewRegistry_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		modules []core.Module
		errMsg  string
	}{
		{"empty", nil, "no modules"},
		{"bad key", []core.Module{{Key: "Has Space"}}, "invalid key"},
		{"duplicate", []core.Module{{Key: "a"}, {Key: "a"}}, "duplicate key"},
		{"two defaults", []core.Module{{Key: "a", Default: true}, {Key: "b", Default: true}}, "marked default"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := core.NewRegistry(tt.modules, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestParseRegistry_BadYAML(t *testing.T) {
	_, err := core.ParseRegistry([]byte("modules: [unclosed"))
	assert.Error(t, err)
}
