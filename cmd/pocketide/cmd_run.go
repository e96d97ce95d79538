package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/pocketide/internal/types"
	"github.com/user/pocketide/internal/workspace"
)

var runInputs []string

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringArrayVar(&runInputs, "input", nil, "line of stdin for the program (repeatable)")
}

var runCmd = &cobra.Command{
	Use:   "run <file-id>",
	Short: "Execute a file on the backend and print the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		client := newClient(cfg)
		ctx := context.Background()

		file, err := client.GetFile(ctx, types.FileID(args[0]))
		if err != nil {
			return fmt.Errorf("get file: %w", err)
		}

		result, err := workspace.Run(ctx, client, file.Content, file.Language, runInputs)
		if err != nil {
			return fmt.Errorf("execute: %w", err)
		}
		fmt.Print(workspace.FormatResult(result))
		return nil
	},
}
