package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"chatvault/internal/container"
)

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <container.db>",
		Short: "Show the container structure: groups, attributes, and stats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			db, err := container.Open(path)
			if err != nil {
				return err
			}
			defer db.Close()

			groups, err := db.Groups()
			if err != nil {
				return fmt.Errorf("read groups: %w", err)
			}

			fmt.Printf("=== %s ===\n", path)
			for _, g := range groups {
				fmt.Printf("/%s\n", g.ChatID)
				fmt.Printf("  chat_name=%q message_count=%d unique_sender_count=%d\n",
					g.ChatName, g.MessageCount, g.UniqueSenderCount)
				if g.OriginalChatID != "" {
					fmt.Printf("  original_chat_id=%q\n", g.OriginalChatID)
				}
				var optional []string
				if g.HasDeepl {
					optional = append(optional, "message_deepl")
				}
				if g.HasM2M100 {
					optional = append(optional, "message_m2m100")
				}
				if len(optional) > 0 {
					fmt.Printf("  optional columns: %s\n", strings.Join(optional, ", "))
				}
				if g.Rows == 0 {
					fmt.Printf("  (no message columns)\n")
					continue
				}
				fmt.Printf("  rows: %d, first timestamps: %s\n",
					g.Rows, strings.Join(g.FirstTimestamps, ", "))
			}

			chatCount, err := db.ChatCount()
			if err != nil {
				return err
			}
			msgCount, err := db.MessageCount()
			if err != nil {
				return err
			}

			fmt.Printf("\n=== Totals ===\n")
			fmt.Printf("  Chats:    %d\n", chatCount)
			fmt.Printf("  Messages: %d\n", msgCount)
			if info, err := os.Stat(path); err == nil {
				fmt.Printf("  Size:     %.1f MB\n", float64(info.Size())/1024/1024)
			}
			return nil
		},
	}
}
