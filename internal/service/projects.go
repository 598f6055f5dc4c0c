package service

import (
	"context"
	"fmt"

	"github.com/KOFI-GYIMAH/portfolio/internal/config"
	"github.com/KOFI-GYIMAH/portfolio/internal/projects"
	"github.com/KOFI-GYIMAH/portfolio/pkg/errors"
	"github.com/KOFI-GYIMAH/portfolio/pkg/logger"
)

// * RefreshPublisher hands refresh requests to another process
type RefreshPublisher interface {
	PublishRefreshRequest(ctx context.Context, repositories []string) error
}

type ProjectsService struct {
	ctx       context.Context
	component *projects.Component
	publisher RefreshPublisher
}

// * NewProjectsService binds the component to ctx: batches run under it,
// * not under the request that triggered them
func NewProjectsService(ctx context.Context, fetcher projects.Fetcher, publisher RefreshPublisher) *ProjectsService {
	return &ProjectsService{
		ctx:       ctx,
		component: projects.NewComponent(fetcher),
		publisher: publisher,
	}
}

func (s *ProjectsService) Start(repositories []string) {
	logger.Info("Mounting project list with %d repositories", len(repositories))
	s.component.Mount(s.ctx, repositories)
}

func (s *ProjectsService) View() projects.View {
	return s.component.View()
}

// * Refresh re-fetches the current repositories in-process
func (s *ProjectsService) Refresh() {
	s.component.Reload(s.ctx)
}

// * SetRepositories validates and applies a new descriptor list. It reports
// * whether a new batch was started.
func (s *ProjectsService) SetRepositories(repositories []string) (bool, error) {
	if err := validateRepositories(repositories); err != nil {
		return false, err
	}
	return s.component.SetDescriptors(s.ctx, repositories), nil
}

// * ApplyRefresh handles a refresh request: an empty list reloads the
// * current repositories, anything else replaces them
func (s *ProjectsService) ApplyRefresh(repositories []string) error {
	if len(repositories) == 0 {
		s.Refresh()
		return nil
	}
	_, err := s.SetRepositories(repositories)
	return err
}

// * RequestRefresh publishes the request when a broker is configured and
// * applies it directly otherwise
func (s *ProjectsService) RequestRefresh(ctx context.Context, repositories []string) error {
	if err := validateRepositories(repositories); err != nil {
		return err
	}

	if s.publisher == nil {
		return s.ApplyRefresh(repositories)
	}

	if err := s.publisher.PublishRefreshRequest(ctx, repositories); err != nil {
		return errors.New(
			errors.RefQueue,
			"Failed to queue refresh request",
			"Could not publish the refresh request to the broker",
			err,
			errors.LevelWarning,
		)
	}
	return nil
}

// * Shutdown unmounts the component and waits for in-flight batches
func (s *ProjectsService) Shutdown() {
	s.component.Unmount()
	s.component.Wait()
}

func validateRepositories(repositories []string) error {
	for _, repo := range repositories {
		if _, _, err := config.ParseRepository(repo); err != nil {
			return errors.New(
				errors.RefInvalidDescriptor,
				"Invalid repository descriptor",
				fmt.Sprintf("%q: %v", repo, err),
				err,
				errors.LevelError,
			)
		}
	}
	return nil
}
