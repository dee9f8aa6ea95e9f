package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/haleem-akmal/portfolio/internal/bootstrap"
	"github.com/haleem-akmal/portfolio/internal/projects/domain"
	"github.com/haleem-akmal/portfolio/internal/projects/repository"
)

func newProjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Inspect stored projects",
	}
	cmd.AddCommand(newProjectsListCmd(app), newProjectsCountCmd(app))
	return cmd
}

func newProjectsListCmd(app *App) *cobra.Command {
	var all bool
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List published projects, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withRepo(cmd, func(repo *repository.Repo) error {
				var (
					projects []domain.Project
					err      error
				)
				if all {
					projects, err = repo.ListRecent(cmd.Context(), limit)
				} else {
					projects, err = repo.ListPublished(cmd.Context(), limit)
				}
				if err != nil {
					return err
				}
				return printProjects(cmd.OutOrStdout(), projects)
			})
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include drafts")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of projects (0 for no cap)")
	return cmd
}

func newProjectsCountCmd(app *App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count projects, optionally by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := domain.Status(status)
			if status != "" && !st.Valid() {
				return fmt.Errorf("unknown status %q (want %s or %s)", status, domain.StatusPublished, domain.StatusDraft)
			}
			return app.withRepo(cmd, func(repo *repository.Repo) error {
				var (
					n   int
					err error
				)
				if status == "" {
					n, err = repo.Count(cmd.Context())
				} else {
					n, err = repo.CountByStatus(cmd.Context(), st)
				}
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), n)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Published or Draft")
	return cmd
}

func (a *App) withRepo(cmd *cobra.Command, fn func(*repository.Repo) error) error {
	deps, err := bootstrap.OpenData(cmd.Context(), a.cfg, a.logger)
	if err != nil {
		return err
	}
	defer deps.Close()
	return fn(deps.Projects)
}

func printProjects(out io.Writer, projects []domain.Project) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tSTATUS\tCREATED")
	for _, p := range projects {
		created := "N/A"
		if !p.CreatedAt.IsZero() {
			created = p.CreatedAt.Format("2006-01-02")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Title, p.Category, p.Status, created)
	}
	return tw.Flush()
}
