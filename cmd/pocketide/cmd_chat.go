package main

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/user/pocketide/internal/apply"
	"github.com/user/pocketide/internal/chat"
	"github.com/user/pocketide/internal/notify"
	"github.com/user/pocketide/internal/session"
	"github.com/user/pocketide/internal/tui"
	"github.com/user/pocketide/internal/types"
	"github.com/user/pocketide/internal/workspace"
)

var (
	chatProjectID  string
	chatContextURL string
	chatFileID     string
)

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringVar(&chatProjectID, "project", "", "project ID for project-aware chat")
	chatCmd.Flags().StringVar(&chatContextURL, "context-url", "", "URL to fetch as code context (basic chat only)")
	chatCmd.Flags().StringVar(&chatFileID, "file", "", "file ID to treat as the current file")
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the AI assistant chat",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		client := newClient(cfg)
		ctx := context.Background()

		sess := session.New(types.ProjectID(chatProjectID))
		if err := sess.SetProvider(cfg.Chat.Provider); err != nil {
			return fmt.Errorf("set provider: %w", err)
		}
		if err := sess.SetModel(cfg.Chat.Model); err != nil {
			return fmt.Errorf("set model: %w", err)
		}
		sess.SetIncludeProjectContext(cfg.Chat.IncludeProjectContext)

		alerts := tui.NewAlertBuffer()
		enhanced := chatProjectID != ""

		var codeContext string
		greeting := chat.GreetingBasic
		if enhanced {
			greeting = chat.GreetingEnhanced
		} else if chatContextURL != "" {
			fetched, err := chat.ContextFromURL(ctx, chatContextURL)
			if err != nil {
				return fmt.Errorf("fetch context: %w", err)
			}
			codeContext = fetched
			greeting = chat.GreetingWithContext
		}

		svc := chat.NewService(client, sess, chat.NewLog(greeting), notify.Func(alerts.Add))

		var files *workspace.Files
		var orch *apply.Orchestrator
		if enhanced {
			files = workspace.NewFiles(client, types.ProjectID(chatProjectID))
			if err := files.Load(ctx); err != nil {
				return fmt.Errorf("load files: %w", err)
			}
			if chatFileID != "" {
				if err := files.Select(types.FileID(chatFileID)); err != nil {
					return fmt.Errorf("select file: %w", err)
				}
			}
			if selected, ok := files.Selected(); ok {
				sess.SetCurrentFile(selected.ID)
			}
			orch = apply.New(client, sess, files, notify.Func(alerts.Add))
		}

		est, err := chat.NewEstimator(cfg.Chat.Model)
		if err != nil {
			slog.Warn("token estimator unavailable", "model", cfg.Chat.Model, "error", err)
		}

		model := tui.New(tui.Options{
			Session:     sess,
			Backend:     svc,
			Orch:        orch,
			Files:       files,
			Estimator:   est,
			Alerts:      alerts,
			Enhanced:    enhanced,
			CodeContext: codeContext,
		})

		p := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("run chat: %w", err)
		}
		return nil
	},
}
