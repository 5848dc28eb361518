// Package persona loads the writing persona configured for a user.
package persona

import (
	"context"
	"fmt"
	"strings"

	"blogforge/internal/core"
	"blogforge/internal/logger"
)

// SettingStore reads per-user settings.
type SettingStore interface {
	GetUserSetting(ctx context.Context, userID, key string) (string, error)
}

// Loader resolves the blog persona for a user.
type Loader struct {
	store SettingStore
}

func NewLoader(store SettingStore) *Loader {
	return &Loader{store: store}
}

// Load returns the persona text together with diagnostics describing what
// was found. A missing or whitespace-only setting is not an error; the
// caller simply writes without a persona.
func (l *Loader) Load(ctx context.Context, userID string) (core.PersonaDebug, error) {
	value, err := l.store.GetUserSetting(ctx, userID, core.SettingBlogPersona)
	if err != nil {
		return core.PersonaDebug{}, fmt.Errorf("load persona setting: %w", err)
	}

	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		logger.Debug("no persona configured", "user_id", userID)
		return core.PersonaDebug{HasPersona: false}, nil
	}

	logger.Debug("persona loaded", "user_id", userID, "length", len(trimmed))
	return core.PersonaDebug{
		HasPersona: true,
		Text:       trimmed,
		Length:     len(trimmed),
	}, nil
}
