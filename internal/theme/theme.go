// * Package theme resolves a visitor's light/dark preference and applies it
// * to a document. Storage, the host colour-scheme query and the document are
// * injected so the same logic runs behind HTTP handlers and in tests.
package theme

import (
	"fmt"
	"sync"

	"github.com/KOFI-GYIMAH/portfolio/pkg/logger"
)

// * StorageKey is the key the raw preference is persisted under.
const StorageKey = "theme"

type Preference string

const (
	Light  Preference = "light"
	Dark   Preference = "dark"
	System Preference = "system"
)

// * Preferences lists the selectable values in menu order.
var Preferences = []Preference{Light, Dark, System}

func ParsePreference(s string) (Preference, error) {
	switch p := Preference(s); p {
	case Light, Dark, System:
		return p, nil
	}
	return "", fmt.Errorf("unknown theme preference %q", s)
}

// * PreferenceStore is a synchronous key-value persistence surface.
type PreferenceStore interface {
	Load(key string) (value string, ok bool, err error)
	Save(key, value string) error
}

// * DocumentAppearanceSink receives the single dark marker of the document root.
type DocumentAppearanceSink interface {
	SetDark(dark bool)
}

// * ColorSchemeQuery reports whether the host currently prefers a dark scheme.
type ColorSchemeQuery interface {
	PrefersDark() bool
}

// * PrefersDark adapts a constant answer to ColorSchemeQuery.
type PrefersDark bool

func (p PrefersDark) PrefersDark() bool { return bool(p) }

// * IsDark is the effective-mode rule.
func IsDark(p Preference, prefersDark bool) bool {
	return p == Dark || (p == System && prefersDark)
}

// * Toggle is the theme control. It paints with Light before storage is
// * read, then corrects itself on Mount. A nil store means no persistence
// * is available and the preference stays Light until the visitor selects
// * another one.
type Toggle struct {
	store  PreferenceStore
	sink   DocumentAppearanceSink
	scheme ColorSchemeQuery

	mu      sync.Mutex
	pref    Preference
	dark    bool
	mounted bool
}

// * NewToggle performs the first paint.
func NewToggle(store PreferenceStore, sink DocumentAppearanceSink, scheme ColorSchemeQuery) *Toggle {
	t := &Toggle{
		store:  store,
		sink:   sink,
		scheme: scheme,
		pref:   Light,
	}
	t.paint()
	return t
}

// * Mount reads the stored preference and applies it. Only the first call
// * has an effect. A valid stored value is not written back; a missing or
// * unreadable one is replaced by the Light default.
func (t *Toggle) Mount() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.mounted {
		return
	}
	t.mounted = true

	pref, persisted := t.stored()
	t.pref = pref
	if persisted {
		t.paint()
		return
	}
	t.apply()
}

// * Select records a new preference, re-derives the effective mode and
// * persists the raw value.
func (t *Toggle) Select(p Preference) error {
	if _, err := ParsePreference(string(p)); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.pref = p
	t.apply()
	return nil
}

func (t *Toggle) Preference() Preference {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pref
}

// * Dark returns the last applied effective mode.
func (t *Toggle) Dark() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dark
}

// * stored reports the preference to mount with and whether the store
// * already holds exactly that value
func (t *Toggle) stored() (Preference, bool) {
	if t.store == nil {
		return Light, false
	}

	raw, ok, err := t.store.Load(StorageKey)
	if err != nil {
		logger.Warn("theme: reading stored preference failed: %v", err)
		return Light, false
	}
	if !ok {
		return Light, false
	}

	p, err := ParsePreference(raw)
	if err != nil {
		logger.Warn("theme: ignoring stored value: %v", err)
		return Light, false
	}
	return p, true
}

func (t *Toggle) paint() {
	t.dark = IsDark(t.pref, t.prefersDark())
	if t.sink != nil {
		t.sink.SetDark(t.dark)
	}
}

func (t *Toggle) apply() {
	t.paint()

	if t.store == nil {
		return
	}
	if err := t.store.Save(StorageKey, string(t.pref)); err != nil {
		logger.Warn("theme: persisting preference failed: %v", err)
	}
}

func (t *Toggle) prefersDark() bool {
	return t.scheme != nil && t.scheme.PrefersDark()
}
