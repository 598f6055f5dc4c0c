package projects

import (
	"context"
	"slices"
	"sync"

	"github.com/KOFI-GYIMAH/portfolio/internal/fanout"
	"github.com/KOFI-GYIMAH/portfolio/internal/github"
	"github.com/KOFI-GYIMAH/portfolio/pkg/logger"
)

// * PlaceholderCount is the number of skeleton blocks shown while loading.
const PlaceholderCount = 4

const (
	ErrorMessage = "Failed to load projects"
	ErrorHint    = "Please try again later or check your internet connection."
)

type State string

const (
	StateLoading State = "loading"
	StateError   State = "error"
	StateLoaded  State = "loaded"
)

// * Fetcher retrieves one repository by its owner/name descriptor.
type Fetcher interface {
	GetRepository(ctx context.Context, descriptor string) (*github.Repository, error)
}

// * View is a snapshot of what the component renders.
type View struct {
	State        State    `json:"state"`
	Placeholders int      `json:"placeholders,omitempty"`
	Cards        []Card   `json:"cards,omitempty"`
	Message      string   `json:"message,omitempty"`
	Hint         string   `json:"hint,omitempty"`
	Repositories []string `json:"repositories"`
}

// * Load runs one batch: every descriptor is fetched concurrently and the
// * batch succeeds only if all of them do. On success the result holds one
// * card per descriptor in input order followed by StaticCard.
func Load(ctx context.Context, f Fetcher, descriptors []string) ([]Card, error) {
	repos, err := fanout.Map(ctx, descriptors, f.GetRepository)
	if err != nil {
		return nil, err
	}

	cards := make([]Card, 0, len(repos)+1)
	for _, repo := range repos {
		cards = append(cards, CardFromRepository(repo))
	}
	return append(cards, StaticCard), nil
}

// * LoadingView, ErrorView and LoadedView build the three render states.
func LoadingView(descriptors []string) View {
	return View{State: StateLoading, Placeholders: PlaceholderCount, Repositories: descriptors}
}

func ErrorView(descriptors []string) View {
	return View{State: StateError, Message: ErrorMessage, Hint: ErrorHint, Repositories: descriptors}
}

func LoadedView(descriptors []string, cards []Card) View {
	return View{State: StateLoaded, Cards: cards, Repositories: descriptors}
}

// * Component holds the render state of the project list. A batch runs in the
// * background on Mount and whenever the descriptor list changes; View may be
// * called at any time.
type Component struct {
	fetcher Fetcher

	mu          sync.RWMutex
	descriptors []string
	view        View
	generation  uint64
	mounted     bool
	wg          sync.WaitGroup
}

func NewComponent(fetcher Fetcher) *Component {
	return &Component{
		fetcher: fetcher,
		view:    LoadingView(nil),
	}
}

// * Mount starts the first batch for descriptors.
func (c *Component) Mount(ctx context.Context, descriptors []string) {
	c.mu.Lock()
	c.mounted = true
	c.descriptors = slices.Clone(descriptors)
	c.mu.Unlock()

	c.start(ctx)
}

// * SetDescriptors starts a new batch when the list differs from the current
// * one, order included. It reports whether a batch was started.
func (c *Component) SetDescriptors(ctx context.Context, descriptors []string) bool {
	c.mu.Lock()
	if !c.mounted || slices.Equal(c.descriptors, descriptors) {
		c.mu.Unlock()
		return false
	}
	c.descriptors = slices.Clone(descriptors)
	c.mu.Unlock()

	c.start(ctx)
	return true
}

// * Reload re-runs the batch for the current descriptors.
func (c *Component) Reload(ctx context.Context) {
	c.mu.RLock()
	mounted := c.mounted
	c.mu.RUnlock()

	if mounted {
		c.start(ctx)
	}
}

// * Unmount stops accepting results. Batches still in flight are not
// * cancelled; whatever they produce is dropped.
func (c *Component) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mounted = false
}

// * Wait blocks until every batch started so far has settled.
func (c *Component) Wait() {
	c.wg.Wait()
}

func (c *Component) View() View {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v := c.view
	v.Cards = slices.Clone(v.Cards)
	v.Repositories = slices.Clone(v.Repositories)
	return v
}

func (c *Component) Descriptors() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.descriptors)
}

func (c *Component) start(ctx context.Context) {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	descriptors := slices.Clone(c.descriptors)
	c.view = LoadingView(descriptors)
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		cards, err := Load(ctx, c.fetcher, descriptors)

		c.mu.Lock()
		defer c.mu.Unlock()

		if !c.mounted || gen != c.generation {
			logger.Debug("dropping stale project batch %d", gen)
			return
		}

		if err != nil {
			logger.Error("Error fetching repos: %v", err)
			c.view = ErrorView(descriptors)
			return
		}

		logger.Info("Loaded %d projects", len(descriptors))
		c.view = LoadedView(descriptors, cards)
	}()
}
