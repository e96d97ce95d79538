package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/pocketide/internal/chat"
	"github.com/user/pocketide/internal/notify"
	"github.com/user/pocketide/internal/session"
	"github.com/user/pocketide/internal/types"
)

var (
	askProjectID  string
	askContextURL string
)

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVar(&askProjectID, "project", "", "project ID for project-aware chat")
	askCmd.Flags().StringVar(&askContextURL, "context-url", "", "URL to fetch as code context")
}

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Send one chat message and print the reply",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		client := newClient(cfg)
		ctx := context.Background()

		sess := session.New(types.ProjectID(askProjectID))
		if err := sess.SetProvider(cfg.Chat.Provider); err != nil {
			return fmt.Errorf("set provider: %w", err)
		}
		if err := sess.SetModel(cfg.Chat.Model); err != nil {
			return fmt.Errorf("set model: %w", err)
		}
		sess.SetIncludeProjectContext(cfg.Chat.IncludeProjectContext)

		var codeContext string
		if askContextURL != "" {
			fetched, err := chat.ContextFromURL(ctx, askContextURL)
			if err != nil {
				return fmt.Errorf("fetch context: %w", err)
			}
			codeContext = fetched
		}

		svc := chat.NewService(client, sess, chat.NewLog(chat.GreetingBasic), notify.Log{})

		var reply *types.Message
		var err error
		if askProjectID != "" {
			reply, err = svc.SendEnhanced(ctx, args[0])
		} else {
			reply, err = svc.Send(ctx, args[0], codeContext)
		}
		if err != nil {
			return err
		}
		fmt.Println(reply.Content)
		return nil
	},
}
