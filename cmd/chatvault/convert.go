package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"chatvault/internal/chatlog"
	"chatvault/internal/container"
	"chatvault/internal/scan"
)

func convertCmd() *cobra.Command {
	var output string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "convert <input.json | directory>",
		Short: "Convert chat-log export documents into a container file",
		Long: `Reads one JSON export document (or every .json document under a
directory), merges chats that share an identifier, and writes the result as a
container file. Without --output the container is written next to the input
with the extension replaced by .db.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := filepath.Clean(args[0])

			if info, err := os.Stat(input); err != nil {
				return fmt.Errorf("input %s: %w", input, err)
			} else if !info.IsDir() && !strings.EqualFold(filepath.Ext(input), ".json") {
				return fmt.Errorf("input %s is not a .json document", input)
			}

			files, err := scan.Documents(input)
			if err != nil {
				return fmt.Errorf("resolve input: %w", err)
			}
			if len(files) == 0 {
				return fmt.Errorf("no .json documents under %s", input)
			}

			out := output
			if out == "" {
				out = strings.TrimSuffix(input, filepath.Ext(input)) + ".db"
			}

			fmt.Fprintf(os.Stderr, "Reading %d document(s)...\n", len(files))
			chats, err := chatlog.ParseFiles(files)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Found %d chat(s)\n", len(chats))

			merged := chatlog.Merge(chats)
			if merged.Duplicates > 0 {
				fmt.Fprintf(os.Stderr, "Merged %d duplicate chat id(s), %d unique chat(s) remain\n",
					merged.Duplicates, len(merged.Order))
			}

			db, err := container.Create(out, overwrite)
			if err != nil {
				return err
			}
			if err := db.WriteChats(merged); err != nil {
				db.Close()
				os.Remove(out)
				return fmt.Errorf("write container: %w", err)
			}
			if err := db.Close(); err != nil {
				return err
			}

			fmt.Fprintf(os.Stderr, "Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output container path")
	cmd.Flags().BoolVarP(&overwrite, "overwrite", "w", false, "Overwrite the output file if it exists")

	return cmd
}
