package core

import (
	"context"
	"encoding/json"
	"fmt"
)

// OptionStore persists process-wide settings by name.
type OptionStore interface {
	// GetOption returns the stored value and whether it exists.
	GetOption(ctx context.Context, name string) (string, bool, error)
	SetOption(ctx context.Context, name, value string) error
}

// UserMetaStore persists single-valued preferences per user.
type UserMetaStore interface {
	// GetUserMeta returns the stored value and whether it exists.
	GetUserMeta(ctx context.Context, userID int, key string) (string, bool, error)
	SetUserMeta(ctx context.Context, userID int, key, value string) error
}

// Store is the key-value persistence the console depends on.
type Store interface {
	OptionStore
	UserMetaStore
}

// getStringList decodes a JSON string array option. A missing option is an empty list.
func getStringList(ctx context.Context, s OptionStore, name string) ([]string, error) {
	raw, ok, err := s.GetOption(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("option %s: %w", name, err)
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("option %s: decode: %w", name, err)
	}
	return out, nil
}

func setStringList(ctx context.Context, s OptionStore, name string, list []string) error {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("option %s: encode: %w", name, err)
	}
	if err := s.SetOption(ctx, name, string(b)); err != nil {
		return fmt.Errorf("option %s: %w", name, err)
	}
	return nil
}
