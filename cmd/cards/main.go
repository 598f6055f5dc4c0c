// * Command cards renders the project card fragment once, for static site
// * builds that embed it at build time instead of fetching in the browser.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/KOFI-GYIMAH/portfolio/internal/config"
	"github.com/KOFI-GYIMAH/portfolio/internal/github"
	"github.com/KOFI-GYIMAH/portfolio/internal/projects"
	"github.com/KOFI-GYIMAH/portfolio/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		repos   []string
		token   string
		strict  bool
		timeout time.Duration
		out     string
		debug   bool
	)

	cmd := &cobra.Command{
		Use:   "cards",
		Short: "Render GitHub project cards as an HTML fragment",
		Long: `cards fetches every repository concurrently and writes the card
fragment to stdout or --out. If any repository fails the error fragment
is written instead and the command exits non-zero.

Repositories default to the REPOSITORIES environment variable (a .env
file in the working directory is honoured).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load(".env")

			if debug {
				logger.SetLevel(logger.LevelDebug)
			}
			logger.SetOutput(cmd.ErrOrStderr())

			if !cmd.Flags().Changed("repo") {
				fromEnv, err := config.ParseRepositories(os.Getenv("REPOSITORIES"))
				if err != nil {
					return err
				}
				repos = fromEnv
			}
			for _, r := range repos {
				if _, _, err := config.ParseRepository(r); err != nil {
					return fmt.Errorf("--repo %q: %w", r, err)
				}
			}

			if !cmd.Flags().Changed("token") {
				token = os.Getenv("GITHUB_TOKEN")
			}

			var opts []github.Option
			if strict {
				opts = append(opts, github.WithStrictStatus())
			}
			if timeout > 0 {
				opts = append(opts, github.WithTimeout(timeout))
			}

			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			return render(cmd.Context(), w, github.NewClient(token, opts...), repos)
		},
	}

	cmd.Flags().StringSliceVarP(&repos, "repo", "r", nil, "Repository as owner/name, repeatable; order is kept")
	cmd.Flags().StringVar(&token, "token", "", "GitHub token (default $GITHUB_TOKEN)")
	cmd.Flags().BoolVar(&strict, "strict-status", false, "Treat non-200 responses as failures")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Per-request timeout, 0 for none")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the fragment to this file")
	cmd.Flags().BoolVarP(&debug, "verbose", "v", false, "Debug logging")

	return cmd
}

func render(ctx context.Context, w io.Writer, fetcher projects.Fetcher, repos []string) error {
	cards, loadErr := projects.Load(ctx, fetcher, repos)

	view := projects.LoadedView(repos, cards)
	if loadErr != nil {
		logger.Error("Error fetching repos: %v", loadErr)
		view = projects.ErrorView(repos)
	}

	if err := projects.Render(w, view); err != nil {
		return err
	}
	if loadErr != nil {
		return fmt.Errorf("%s: %w", projects.ErrorMessage, loadErr)
	}

	logger.Info("Rendered %d project cards", len(cards))
	return nil
}
