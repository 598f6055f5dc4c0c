package projects

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/KOFI-GYIMAH/portfolio/internal/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// * fakeFetcher answers from a fixed table. Descriptors listed in gates block
// * until the gate channel is closed.
type fakeFetcher struct {
	mu      sync.Mutex
	repos   map[string]*github.Repository
	fail    map[string]error
	gates   map[string]chan struct{}
	fetched []string
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		repos: map[string]*github.Repository{},
		fail:  map[string]error{},
		gates: map[string]chan struct{}{},
	}
}

func (f *fakeFetcher) add(descriptor string) {
	f.repos[descriptor] = &github.Repository{
		Name:   descriptor,
		SvnURL: "https://github.com/" + descriptor,
	}
}

// * addBody stores the repository decoded from a raw API response body
func (f *fakeFetcher) addBody(t *testing.T, descriptor, body string) {
	t.Helper()
	var repo github.Repository
	require.NoError(t, json.Unmarshal([]byte(body), &repo))
	f.repos[descriptor] = &repo
}

func (f *fakeFetcher) GetRepository(ctx context.Context, descriptor string) (*github.Repository, error) {
	f.mu.Lock()
	f.fetched = append(f.fetched, descriptor)
	gate := f.gates[descriptor]
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err := f.fail[descriptor]; err != nil {
		return nil, err
	}
	return f.repos[descriptor], nil
}

func (f *fakeFetcher) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.fetched...)
}

func titles(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Title
	}
	return out
}

func TestLoad_PreservesOrderAndAppendsStaticCard(t *testing.T) {
	f := newFakeFetcher()
	descriptors := []string{"c/three", "a/one", "b/two"}
	for _, d := range descriptors {
		f.add(d)
	}

	cards, err := Load(context.Background(), f, descriptors)
	require.NoError(t, err)

	assert.Equal(t, []string{"c/three", "a/one", "b/two", "Yukio Lumina"}, titles(cards))
	assert.Equal(t, StaticCard, cards[len(cards)-1])
	assert.ElementsMatch(t, descriptors, f.calls())
}

func TestLoad_SingleFailureFailsBatch(t *testing.T) {
	f := newFakeFetcher()
	f.add("a/one")
	f.add("c/three")
	f.fail["b/two"] = errors.New("connection reset")

	cards, err := Load(context.Background(), f, []string{"a/one", "b/two", "c/three"})
	assert.Error(t, err)
	assert.Nil(t, cards)
}

func TestLoad_EmptyListYieldsOnlyStaticCard(t *testing.T) {
	cards, err := Load(context.Background(), newFakeFetcher(), nil)
	require.NoError(t, err)
	assert.Equal(t, []Card{StaticCard}, cards)
}

func TestComponent_LoadingThenLoaded(t *testing.T) {
	f := newFakeFetcher()
	f.add("a/one")
	f.add("b/two")
	gate := make(chan struct{})
	f.gates["b/two"] = gate

	c := NewComponent(f)
	assert.Equal(t, StateLoading, c.View().State)

	c.Mount(context.Background(), []string{"a/one", "b/two"})

	v := c.View()
	assert.Equal(t, StateLoading, v.State)
	assert.Equal(t, 4, v.Placeholders)
	assert.Empty(t, v.Cards)

	close(gate)
	c.Wait()

	v = c.View()
	assert.Equal(t, StateLoaded, v.State)
	assert.Zero(t, v.Placeholders)
	assert.Equal(t, []string{"a/one", "b/two", "Yukio Lumina"}, titles(v.Cards))
}

func TestComponent_ErrorIsAllOrNothing(t *testing.T) {
	f := newFakeFetcher()
	f.add("a/one")
	f.add("c/three")
	f.fail["b/two"] = errors.New("invalid character '<' looking for beginning of value")

	c := NewComponent(f)
	c.Mount(context.Background(), []string{"a/one", "b/two", "c/three"})
	c.Wait()

	v := c.View()
	assert.Equal(t, StateError, v.State)
	assert.Empty(t, v.Cards)
	assert.Equal(t, "Failed to load projects", v.Message)
	assert.Equal(t, "Please try again later or check your internet connection.", v.Hint)
}

func TestComponent_MistypedFieldsStillLoad(t *testing.T) {
	f := newFakeFetcher()
	f.add("a/one")
	f.addBody(t, "b/two", `{"name": "two", "description": 42, "license": "MIT", "stargazers_count": "many"}`)
	f.addBody(t, "c/three", `[]`)

	c := NewComponent(f)
	c.Mount(context.Background(), []string{"a/one", "b/two", "c/three"})
	c.Wait()

	v := c.View()
	require.Equal(t, StateLoaded, v.State)
	require.Len(t, v.Cards, 4)

	two := v.Cards[1]
	assert.Equal(t, "two", two.Title)
	assert.Equal(t, "None", two.Description)
	assert.Equal(t, "None", two.License)
	assert.Zero(t, two.Stars)

	three := v.Cards[2]
	assert.Empty(t, three.Title)
	assert.Equal(t, "None", three.Language)
	assert.Equal(t, "None", three.Updated)
	assert.Equal(t, "Yukio Lumina", v.Cards[3].Title)
}

func TestComponent_SetDescriptors(t *testing.T) {
	f := newFakeFetcher()
	for _, d := range []string{"a/one", "b/two", "c/three"} {
		f.add(d)
	}

	c := NewComponent(f)
	assert.False(t, c.SetDescriptors(context.Background(), []string{"a/one"}), "not mounted yet")

	c.Mount(context.Background(), []string{"a/one", "b/two"})
	c.Wait()

	assert.False(t, c.SetDescriptors(context.Background(), []string{"a/one", "b/two"}))
	assert.Len(t, f.calls(), 2)

	assert.True(t, c.SetDescriptors(context.Background(), []string{"c/three", "a/one"}))
	c.Wait()

	assert.Equal(t, []string{"c/three", "a/one", "Yukio Lumina"}, titles(c.View().Cards))
	assert.Equal(t, []string{"c/three", "a/one"}, c.Descriptors())
}

func TestComponent_RecoversFromErrorOnNextBatch(t *testing.T) {
	f := newFakeFetcher()
	f.add("a/one")
	f.fail["a/one"] = errors.New("offline")

	c := NewComponent(f)
	c.Mount(context.Background(), []string{"a/one"})
	c.Wait()
	require.Equal(t, StateError, c.View().State)

	delete(f.fail, "a/one")
	c.Reload(context.Background())
	c.Wait()

	assert.Equal(t, StateLoaded, c.View().State)
}

func TestComponent_StaleBatchIsDropped(t *testing.T) {
	f := newFakeFetcher()
	f.add("slow/one")
	f.add("fast/two")
	gate := make(chan struct{})
	f.gates["slow/one"] = gate

	c := NewComponent(f)
	c.Mount(context.Background(), []string{"slow/one"})
	c.SetDescriptors(context.Background(), []string{"fast/two"})

	assert.Eventually(t, func() bool {
		return c.View().State == StateLoaded
	}, time.Second, 5*time.Millisecond)

	close(gate)
	c.Wait()

	assert.Equal(t, []string{"fast/two", "Yukio Lumina"}, titles(c.View().Cards))
}

func TestComponent_UpdatesAfterUnmountAreDropped(t *testing.T) {
	f := newFakeFetcher()
	f.add("a/one")
	gate := make(chan struct{})
	f.gates["a/one"] = gate

	c := NewComponent(f)
	c.Mount(context.Background(), []string{"a/one"})
	c.Unmount()

	close(gate)
	c.Wait()

	assert.Equal(t, StateLoading, c.View().State)

	c.Reload(context.Background())
	c.Wait()
	assert.Equal(t, StateLoading, c.View().State)
}

func TestComponent_ViewIsACopy(t *testing.T) {
	f := newFakeFetcher()
	f.add("a/one")

	c := NewComponent(f)
	c.Mount(context.Background(), []string{"a/one"})
	c.Wait()

	v := c.View()
	v.Cards[0].Title = "mutated"

	assert.Equal(t, "a/one", c.View().Cards[0].Title)
}
