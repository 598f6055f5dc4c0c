package theme

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// * recordingSink keeps every SetDark call.
type recordingSink struct {
	calls []bool
}

func (r *recordingSink) SetDark(dark bool) { r.calls = append(r.calls, dark) }

type brokenStore struct{}

func (brokenStore) Load(string) (string, bool, error) { return "", false, errors.New("quota exceeded") }
func (brokenStore) Save(string, string) error          { return errors.New("quota exceeded") }

func storeWith(value string) *MemoryStore {
	s := NewMemoryStore()
	s.values[StorageKey] = value
	return s
}

func TestIsDark(t *testing.T) {
	tests := []struct {
		pref        Preference
		prefersDark bool
		expected    bool
	}{
		{Light, false, false},
		{Light, true, false},
		{Dark, false, true},
		{Dark, true, true},
		{System, false, false},
		{System, true, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, IsDark(tt.pref, tt.prefersDark), "%s/%v", tt.pref, tt.prefersDark)
	}
}

func TestParsePreference(t *testing.T) {
	for _, p := range Preferences {
		got, err := ParsePreference(string(p))
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	_, err := ParsePreference("sepia")
	assert.Error(t, err)
	_, err = ParsePreference("true")
	assert.Error(t, err)
}

func TestToggle_NoStoredPreference(t *testing.T) {
	store := NewMemoryStore()
	sink := &recordingSink{}

	toggle := NewToggle(store, sink, PrefersDark(true))
	assert.Equal(t, Light, toggle.Preference())
	assert.False(t, toggle.Dark())

	toggle.Mount()
	assert.Equal(t, Light, toggle.Preference())
	assert.Equal(t, []bool{false, false}, sink.calls)
	assert.Equal(t, []string{"light"}, store.Writes())
}

func TestToggle_TwoPhaseMount(t *testing.T) {
	tests := []struct {
		name        string
		stored      string
		prefersDark bool
		expectDark  bool
	}{
		{name: "stored dark", stored: "dark", prefersDark: false, expectDark: true},
		{name: "stored system, host dark", stored: "system", prefersDark: true, expectDark: true},
		{name: "stored system, host light", stored: "system", prefersDark: false, expectDark: false},
		{name: "stored light, host dark", stored: "light", prefersDark: true, expectDark: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storeWith(tt.stored)
			doc := NewDocument()

			toggle := NewToggle(store, doc, PrefersDark(tt.prefersDark))

			// * first paint is always light, before storage is read
			assert.False(t, doc.Dark())
			assert.Equal(t, Light, toggle.Preference())
			assert.Empty(t, store.Writes(), "first paint must not overwrite the stored value")

			toggle.Mount()

			assert.Equal(t, tt.expectDark, doc.Dark())
			assert.Equal(t, Preference(tt.stored), toggle.Preference())
			assert.Empty(t, store.Writes(), "a valid stored value is not written back")
		})
	}
}

func TestToggle_MountIsOnce(t *testing.T) {
	store := storeWith("dark")
	sink := &recordingSink{}

	toggle := NewToggle(store, sink, nil)
	toggle.Mount()
	toggle.Mount()

	assert.Equal(t, []bool{false, true}, sink.calls)
	assert.Empty(t, store.Writes())
}

func TestToggle_SelectAfterStoredValueWritesOnce(t *testing.T) {
	store := storeWith("dark")
	doc := NewDocument()

	toggle := NewToggle(store, doc, nil)
	toggle.Mount()
	require.NoError(t, toggle.Select(System))

	assert.False(t, doc.Dark())
	assert.Equal(t, []string{"system"}, store.Writes())
}

func TestToggle_SelectPersistsRawValue(t *testing.T) {
	store := NewMemoryStore()
	doc := NewDocument()

	toggle := NewToggle(store, doc, PrefersDark(true))
	toggle.Mount()

	require.NoError(t, toggle.Select(System))
	assert.True(t, doc.Dark())

	require.NoError(t, toggle.Select(Dark))
	assert.True(t, doc.Dark())

	require.NoError(t, toggle.Select(Light))
	assert.False(t, doc.Dark())

	require.NoError(t, toggle.Select(Light))

	assert.Equal(t, []string{"light", "system", "dark", "light", "light"}, store.Writes())
	for _, w := range store.Writes() {
		assert.NotContains(t, []string{"true", "false"}, w)
	}
}

func TestToggle_SelectRejectsUnknown(t *testing.T) {
	store := NewMemoryStore()
	toggle := NewToggle(store, NewDocument(), nil)

	assert.Error(t, toggle.Select("sepia"))
	assert.Equal(t, Light, toggle.Preference())
	assert.Empty(t, store.Writes())
}

func TestToggle_SystemIsEvaluatedOnce(t *testing.T) {
	scheme := &switchableScheme{dark: true}
	doc := NewDocument()

	toggle := NewToggle(storeWith("system"), doc, scheme)
	toggle.Mount()
	require.True(t, doc.Dark())

	scheme.dark = false
	assert.True(t, doc.Dark(), "no live subscription to host changes")

	require.NoError(t, toggle.Select(System))
	assert.False(t, doc.Dark())
}

type switchableScheme struct{ dark bool }

func (s *switchableScheme) PrefersDark() bool { return s.dark }

func TestToggle_StorageUnavailable(t *testing.T) {
	doc := NewDocument()

	toggle := NewToggle(nil, doc, PrefersDark(true))
	toggle.Mount()
	assert.Equal(t, Light, toggle.Preference())
	assert.False(t, doc.Dark())

	require.NoError(t, toggle.Select(Dark))
	assert.True(t, doc.Dark())
}

func TestToggle_StorageErrorsAreNotFatal(t *testing.T) {
	doc := NewDocument()

	toggle := NewToggle(brokenStore{}, doc, nil)
	toggle.Mount()
	assert.Equal(t, Light, toggle.Preference())

	assert.NoError(t, toggle.Select(Dark))
	assert.True(t, doc.Dark())
}

func TestToggle_InvalidStoredValueFallsBackToLight(t *testing.T) {
	store := storeWith("purple")
	doc := NewDocument()

	toggle := NewToggle(store, doc, PrefersDark(true))
	toggle.Mount()

	assert.Equal(t, Light, toggle.Preference())
	assert.False(t, doc.Dark())
	assert.Equal(t, []string{"light"}, store.Writes())
}

func TestDocument_Class(t *testing.T) {
	doc := NewDocument()
	assert.Empty(t, doc.Class())

	doc.SetDark(true)
	assert.Equal(t, "dark", doc.Class())
	assert.True(t, doc.Dark())

	doc.SetDark(false)
	assert.Empty(t, doc.Class())
}
