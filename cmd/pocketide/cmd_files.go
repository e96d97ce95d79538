package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/user/pocketide/internal/types"
	"github.com/user/pocketide/internal/workspace"
)

var (
	filesProjectID string
	fileLanguage   string
	fileContentSrc string
)

func init() {
	rootCmd.AddCommand(filesCmd)
	filesCmd.AddCommand(filesListCmd, filesShowCmd, filesCreateCmd, filesSaveCmd, filesDeleteCmd)
	filesCmd.PersistentFlags().StringVar(&filesProjectID, "project", "", "project ID")
	filesCreateCmd.Flags().StringVar(&fileLanguage, "language", "", "file language (e.g., python)")
	filesSaveCmd.Flags().StringVar(&fileContentSrc, "from", "", "read content from a local file instead of stdin")
}

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Manage project files",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if filesProjectID == "" {
			return fmt.Errorf("--project is required")
		}
		return nil
	},
}

func loadFiles(ctx context.Context) (*workspace.Files, error) {
	cfg := loadConfig()
	files := workspace.NewFiles(newClient(cfg), types.ProjectID(filesProjectID))
	if err := files.Load(ctx); err != nil {
		return nil, fmt.Errorf("load files: %w", err)
	}
	return files, nil
}

var filesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List files in a project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := loadFiles(context.Background())
		if err != nil {
			return err
		}
		list := files.List()
		if len(list) == 0 {
			fmt.Println("No files found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tPATH\tLANGUAGE\tUPDATED")
		for _, f := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				f.ID,
				f.Path,
				f.Language,
				f.UpdatedAt.Format("2006-01-02 15:04:05"),
			)
		}
		return w.Flush()
	},
}

var filesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a file's content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := loadFiles(context.Background())
		if err != nil {
			return err
		}
		if err := files.Select(types.FileID(args[0])); err != nil {
			return err
		}
		file, _ := files.Selected()
		fmt.Print(file.Content)
		return nil
	},
}

var filesCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an empty file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := loadFiles(context.Background())
		if err != nil {
			return err
		}
		file, err := files.Create(context.Background(), args[0], fileLanguage)
		if err != nil {
			return fmt.Errorf("create file: %w", err)
		}
		fmt.Printf("Created %s (%s)\n", file.Path, file.ID)
		return nil
	},
}

var filesSaveCmd = &cobra.Command{
	Use:   "save <id>",
	Short: "Save content to a file (reads stdin unless --from is given)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var content []byte
		var err error
		if fileContentSrc != "" {
			content, err = os.ReadFile(fileContentSrc)
		} else {
			content, err = io.ReadAll(os.Stdin)
		}
		if err != nil {
			return fmt.Errorf("read content: %w", err)
		}

		files, err := loadFiles(context.Background())
		if err != nil {
			return err
		}
		if err := files.Save(context.Background(), types.FileID(args[0]), string(content)); err != nil {
			return err
		}
		fmt.Printf("Saved %s\n", args[0])
		return nil
	},
}

var filesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := loadFiles(context.Background())
		if err != nil {
			return err
		}
		if err := files.Delete(context.Background(), types.FileID(args[0])); err != nil {
			return err
		}
		fmt.Printf("File %s deleted.\n", args[0])
		return nil
	},
}
