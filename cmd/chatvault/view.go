package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"chatvault/internal/auth"
	"chatvault/internal/config"
	"chatvault/internal/container"
	"chatvault/internal/query"
	"chatvault/internal/render"
	"chatvault/internal/tui"
)

func viewCmd() *cobra.Command {
	var chat, sender, from, to, search string
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "view [container.db]",
		Short: "Browse a container interactively",
		Long: `Opens the viewer on a container file (default: container_path from the
config). On a terminal this is an interactive TUI; when stdout is a pipe it
prints one rendered page instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			path := cfg.ContainerPath
			if len(args) == 1 {
				path = args[0]
			}
			if info, err := os.Stat(path); err != nil || info.IsDir() {
				return fmt.Errorf("container %s does not exist", path)
			}
			if !strings.EqualFold(filepath.Ext(path), ".db") {
				return fmt.Errorf("container %s is not a .db file", path)
			}

			gate := auth.New(cfg.AuthSalt, cfg.AuthDigest)
			if gate.Enabled() {
				if err := promptSecret(gate); err != nil {
					return err
				}
			}

			cache := container.NewCache(time.Duration(cfg.CacheTTLSeconds) * time.Second)
			rows, diags, err := cache.Load(path)
			if err != nil {
				return fmt.Errorf("load container: %w", err)
			}
			for _, d := range diags {
				fmt.Fprintf(os.Stderr, "  WARN: skipped %s\n", d)
			}
			if len(rows) == 0 {
				return fmt.Errorf("no chats in %s", path)
			}

			state := query.State{
				Chat:     chat,
				Sender:   sender,
				Query:    search,
				Page:     page,
				PageSize: pageSize,
			}
			if state.PageSize <= 0 {
				state.PageSize = cfg.PageSize
			}
			state.Start, state.End = query.DateBounds(rows)
			if from != "" {
				t, err := time.ParseInLocation("2006-01-02", from, time.UTC)
				if err != nil {
					return fmt.Errorf("bad --from date %q", from)
				}
				state.Start = t
			}
			if to != "" {
				t, err := time.ParseInLocation("2006-01-02", to, time.UTC)
				if err != nil {
					return fmt.Errorf("bad --to date %q", to)
				}
				state.End = t
			}

			if term.IsTerminal(int(os.Stdout.Fd())) {
				return tui.Run(rows, state)
			}
			return printPage(rows, state)
		},
	}

	cmd.Flags().StringVar(&chat, "chat", "", "Filter by chat identifier")
	cmd.Flags().StringVar(&sender, "sender", "", "Filter by sender alias")
	cmd.Flags().StringVar(&from, "from", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&search, "query", "", "Search query")
	cmd.Flags().IntVar(&page, "page", 0, "Page to show (default: the page with the first hit)")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Messages per page")

	return cmd
}

// printPage renders one page of the filtered table for non-interactive use.
func printPage(rows []container.Row, state query.State) error {
	filtered, matches := query.Filter(rows, state)
	if state.Page == 0 {
		state.Page = query.DefaultPage(matches, state.Cursor, state.PageSize)
	}
	pageRows, totalPages := query.Paginate(filtered, state.Page, state.PageSize)
	state.Page = query.ClampPage(state.Page, totalPages)

	hitRow := -1
	if state.Query != "" && len(matches) > 0 {
		start := (state.Page - 1) * state.PageSize
		if idx := matches[0]; idx >= start && idx < start+state.PageSize {
			hitRow = idx - start
		}
	}

	content, _ := render.RenderPage(pageRows, render.Options{
		Query:  state.Query,
		HitRow: hitRow,
	})
	fmt.Print(content)
	fmt.Printf("page %d/%d, %d message(s)", state.Page, totalPages, len(filtered))
	if state.Query != "" {
		fmt.Printf(", %d hit(s) for %q", len(matches), state.Query)
	}
	fmt.Println()

	if state.Query != "" && len(matches) > 0 {
		limit := len(matches)
		if limit > maxHitSnippets {
			limit = maxHitSnippets
		}
		for _, idx := range matches[:limit] {
			r := filtered[idx]
			fmt.Printf("  [p%d] %s: %s\n",
				idx/state.PageSize+1, r.Sender,
				query.Snippet(hitText(r, state.Query), state.Query, snippetContext))
		}
		if len(matches) > limit {
			fmt.Printf("  ... and %d more hit(s)\n", len(matches)-limit)
		}
	}
	return nil
}

const (
	maxHitSnippets = 10
	snippetContext = 30
)

// hitText picks the message field the query actually matched, so the snippet
// shows the hit rather than the head of an unrelated variant.
func hitText(r container.Row, q string) string {
	if s, _ := query.IndexFold(r.Text, q); s >= 0 {
		return r.Text
	}
	if r.HasDeepl {
		if s, _ := query.IndexFold(r.Deepl, q); s >= 0 {
			return r.Deepl
		}
	}
	if r.HasM2M100 {
		if s, _ := query.IndexFold(r.M2M100, q); s >= 0 {
			return r.M2M100
		}
	}
	return r.Text
}

func promptSecret(gate auth.Gate) error {
	fmt.Fprint(os.Stderr, "Password: ")
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	if !gate.Verify(string(secret)) {
		return fmt.Errorf("wrong password")
	}
	return nil
}
