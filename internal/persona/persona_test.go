package persona

import (
	"context"
	"errors"
	"testing"

	"blogforge/internal/core"
)

type fakeSettings struct {
	values map[string]string
	err    error
}

func (f *fakeSettings) GetUserSetting(_ context.Context, userID, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.values[userID+"/"+key], nil
}

func TestLoadPersona(t *testing.T) {
	store := &fakeSettings{values: map[string]string{
		"user-1/" + core.SettingBlogPersona: "친근하고 전문적인 인테리어 블로거",
	}}
	loader := NewLoader(store)

	got, err := loader.Load(context.Background(), "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if !got.HasPersona {
		t.Error("expected HasPersona")
	}
	if got.Text != "친근하고 전문적인 인테리어 블로거" {
		t.Errorf("text = %q", got.Text)
	}
	if got.Length != len(got.Text) {
		t.Errorf("length = %d, want %d", got.Length, len(got.Text))
	}
}

func TestLoadPersonaMissing(t *testing.T) {
	loader := NewLoader(&fakeSettings{values: map[string]string{}})

	got, err := loader.Load(context.Background(), "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.HasPersona {
		t.Error("missing setting should report no persona")
	}
}

func TestLoadPersonaWhitespaceOnly(t *testing.T) {
	store := &fakeSettings{values: map[string]string{
		"user-1/" + core.SettingBlogPersona: "  \n\t  ",
	}}
	loader := NewLoader(store)

	got, err := loader.Load(context.Background(), "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.HasPersona {
		t.Error("whitespace-only setting should report no persona")
	}
	if got.Text != "" {
		t.Errorf("text = %q, want empty", got.Text)
	}
}

func TestLoadPersonaTrimsSurroundingSpace(t *testing.T) {
	store := &fakeSettings{values: map[string]string{
		"user-1/" + core.SettingBlogPersona: "\n  담백한 말투  \n",
	}}
	loader := NewLoader(store)

	got, err := loader.Load(context.Background(), "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Text != "담백한 말투" {
		t.Errorf("text = %q, want trimmed", got.Text)
	}
}

func TestLoadPersonaStoreError(t *testing.T) {
	loader := NewLoader(&fakeSettings{err: errors.New("connection refused")})

	if _, err := loader.Load(context.Background(), "user-1"); err == nil {
		t.Error("expected error from store")
	}
}
