package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/SscSPs/project_ledger/internal/dto"
)

func newProjectCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Create and list projects",
	}
	cmd.AddCommand(newProjectCreateCommand(a), newProjectListCommand(a))
	return cmd
}

func newProjectCreateCommand(a *app) *cobra.Command {
	var req dto.CreateProjectRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project owned by --user",
		Args:  cobra.NoArgs,
		RunE: a.withStore(func(cmd *cobra.Command, _ []string) error {
			project, err := a.services.Project.CreateProject(cmd.Context(), req, a.session())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s (%s)\n", project.ProjectID, project.Name)
			return nil
		}),
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "project name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&req.Description, "description", "", "project description")

	return cmd
}

func newProjectListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all projects",
		Args:  cobra.NoArgs,
		RunE: a.withStore(func(cmd *cobra.Command, _ []string) error {
			projects, err := a.services.Project.ListProjects(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tOWNER\tCREATED\tDESCRIPTION")
			for _, p := range projects {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.ProjectID, p.Name, p.OwnerID, p.CreatedAt.Format(dto.DateLayout), p.Description)
			}
			return w.Flush()
		}),
	}
}
