package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/user/pocketide/internal/types"
	"github.com/user/pocketide/internal/workspace"
)

var projectDescription string

func init() {
	rootCmd.AddCommand(projectsCmd)
	projectsCmd.AddCommand(projectsListCmd, projectsCreateCmd, projectsDeleteCmd)
	projectsCreateCmd.Flags().StringVar(&projectDescription, "description", "", "project description")
}

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all projects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		projects := workspace.NewProjects(newClient(cfg))

		if err := projects.Load(context.Background()); err != nil {
			return fmt.Errorf("load projects: %w", err)
		}
		list := projects.List()
		if len(list) == 0 {
			fmt.Println("No projects found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION\tCREATED")
		for _, p := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				p.ID,
				p.Name,
				p.Description,
				p.CreatedAt.Format("2006-01-02 15:04:05"),
			)
		}
		return w.Flush()
	},
}

var projectsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		projects := workspace.NewProjects(newClient(cfg))

		project, err := projects.Create(context.Background(), args[0], projectDescription)
		if err != nil {
			return fmt.Errorf("create project: %w", err)
		}
		fmt.Printf("Created project %s (%s)\n", project.Name, project.ID)
		return nil
	},
}

var projectsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		projects := workspace.NewProjects(newClient(cfg))

		if err := projects.Delete(context.Background(), types.ProjectID(args[0])); err != nil {
			return fmt.Errorf("delete project: %w", err)
		}
		fmt.Printf("Project %s deleted.\n", args[0])
		return nil
	},
}
