package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func TestNewManagerLoadsEmbeddedLocales(t *testing.T) {
	manager, err := NewManager("")
	if err != nil {
		t.Fatalf("NewManager() unexpected error: %v", err)
	}

	if got := manager.DefaultLanguage(); got != LangDE {
		t.Fatalf("DefaultLanguage() = %q, want %q", got, LangDE)
	}
	if diff := cmp.Diff([]string{LangDE, LangEN}, manager.SupportedLanguages()); diff != "" {
		t.Fatalf("SupportedLanguages() mismatch (-want +got):\n%s", diff)
	}
	if got := manager.Translate(LangDE, "entry.meal"); got != "Mahlzeit" {
		t.Fatalf("Translate(de, entry.meal) = %q, want Mahlzeit", got)
	}
	if got := manager.Translate(LangEN, "direction.better"); got != "Better than yesterday" {
		t.Fatalf("Translate(en, direction.better) = %q", got)
	}
}

func TestNormalizeLanguage(t *testing.T) {
	manager, err := NewManager(LangDE)
	if err != nil {
		t.Fatalf("NewManager() unexpected error: %v", err)
	}

	tests := []struct {
		raw  string
		want string
	}{
		{raw: "", want: LangDE},
		{raw: "EN", want: LangEN},
		{raw: "en_US", want: LangEN},
		{raw: "de-AT", want: LangDE},
		{raw: "fr", want: LangDE},
	}
	for _, tt := range tests {
		if got := manager.NormalizeLanguage(tt.raw); got != tt.want {
			t.Errorf("NormalizeLanguage(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestDetectFromAcceptLanguage(t *testing.T) {
	manager, err := NewManager(LangDE)
	if err != nil {
		t.Fatalf("NewManager() unexpected error: %v", err)
	}

	if got := manager.DetectFromAcceptLanguage("fr-FR,en-US;q=0.8,de;q=0.5"); got != LangEN {
		t.Fatalf("DetectFromAcceptLanguage() = %q, want %q", got, LangEN)
	}
	if got := manager.DetectFromAcceptLanguage("fr-FR, es"); got != LangDE {
		t.Fatalf("DetectFromAcceptLanguage() fallback = %q, want %q", got, LangDE)
	}
}

func TestMessagesFallBackToDefaultLanguage(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/de.json": {Data: []byte(`{"a":"A-de","b":"B-de"}`)},
		"locales/en.json": {Data: []byte(`{"a":"A-en"}`)},
	}
	manager, err := NewManagerFromFS(LangDE, fsys, "locales")
	if err != nil {
		t.Fatalf("NewManagerFromFS() unexpected error: %v", err)
	}

	messages := manager.Messages(LangEN)
	if messages["a"] != "A-en" || messages["b"] != "B-de" {
		t.Fatalf("Messages(en) = %v, want en overrides layered on de", messages)
	}
	if got := manager.Translate(LangEN, "missing.key"); got != "missing.key" {
		t.Fatalf("Translate() for missing key = %q, want key echo", got)
	}
	if got := manager.Translatef(LangEN, "a"); got != "A-en" {
		t.Fatalf("Translatef() = %q", got)
	}
}

func TestNewManagerFromFSRequiresGermanAndEnglish(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/en.json": {Data: []byte(`{"a":"A"}`)},
	}
	if _, err := NewManagerFromFS(LangDE, fsys, "locales"); err == nil {
		t.Fatal("expected error when de locale is missing")
	}

	empty := fstest.MapFS{
		"locales/de.json": {Data: []byte(`{}`)},
		"locales/en.json": {Data: []byte(`{"a":"A"}`)},
	}
	if _, err := NewManagerFromFS(LangDE, empty, "locales"); err == nil {
		t.Fatal("expected error for empty locale")
	}
}
