package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/matheus3301/flash/internal/config"
	"github.com/matheus3301/flash/internal/history"
	"github.com/matheus3301/flash/internal/paths"
	"github.com/spf13/cobra"
)

func newHistoryCommand(configPath *string) *cobra.Command {
	var limit int
	var stats bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print recently recorded flash messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return errors.New("history is disabled in config")
			}
			if err := paths.EnsureDir(cfg.History.Path); err != nil {
				return err
			}
			db, err := history.Open(cfg.History.Path)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()
			if _, err := db.Migrate(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if stats {
				counts, err := db.ReasonCounts()
				if err != nil {
					return err
				}
				return printReasonCounts(out, counts)
			}
			entries, err := db.Recent(limit)
			if err != nil {
				return err
			}
			return printHistory(out, entries, time.Now())
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show")
	cmd.Flags().BoolVar(&stats, "stats", false, "show removal counts by reason")
	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = paths.ConfigPath()
	}
	return config.Load(path)
}

func printHistory(w io.Writer, entries []history.Entry, now time.Time) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "no flash history")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "WHEN\tEVENT\tREASON\tSCOPE\tTYPE\tMESSAGE")
	for _, e := range entries {
		reason := e.Reason
		if reason == "" {
			reason = "-"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%q\n",
			humanize.RelTime(e.At, now, "ago", "from now"), e.Event, reason, e.Scope, e.Category, e.Content)
	}
	return tw.Flush()
}

func printReasonCounts(w io.Writer, counts map[string]int) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "REASON\tCOUNT")
	for _, reason := range []string{"expired", "navigated", "dismissed", "replaced", "reset"} {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", reason, humanize.Comma(int64(counts[reason])))
	}
	return tw.Flush()
}
