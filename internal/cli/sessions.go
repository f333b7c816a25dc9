package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/j-veylop/stopwatch-tui/internal/models"
	"github.com/j-veylop/stopwatch-tui/internal/stopwatch"
)

// Output formats accepted by --format.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// sessionRecord is the serialized form of a session.
type sessionRecord struct {
	RecordedAt time.Time `json:"recorded_at" yaml:"recorded_at"`
	ID         string    `json:"id" yaml:"id"`
	Label      string    `json:"label,omitempty" yaml:"label,omitempty"`
	Elapsed    string    `json:"elapsed" yaml:"elapsed"`
	ElapsedMS  int64     `json:"elapsed_ms" yaml:"elapsed_ms"`
	Segments   int       `json:"segments" yaml:"segments"`
}

func newSessionRecord(s models.Session) sessionRecord {
	return sessionRecord{
		RecordedAt: s.RecordedAt,
		ID:         s.ID,
		Label:      s.Label,
		Elapsed:    stopwatch.Format(s.Elapsed),
		ElapsedMS:  s.Elapsed.Milliseconds(),
		Segments:   s.Segments,
	}
}

// statsRecord is the serialized form of the session totals.
type statsRecord struct {
	Total   string `json:"total" yaml:"total"`
	Longest string `json:"longest" yaml:"longest"`
	Average string `json:"average" yaml:"average"`
	Count   int    `json:"count" yaml:"count"`
}

func checkFormat(format string) error {
	switch format {
	case formatTable, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported format %q (use table, json or yaml)", format)
	}
}

// writeStructured encodes v as JSON or YAML.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

func newHistoryCmd(opts *options) *cobra.Command {
	var (
		limit  int
		format string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded sessions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive")
			}

			svc, closer, err := opts.openHistory()
			if err != nil {
				return err
			}
			defer closer.Close()

			sessions, err := svc.Recent(limit)
			if err != nil {
				return fmt.Errorf("failed to list sessions: %w", err)
			}

			out := cmd.OutOrStdout()
			if format != formatTable {
				records := make([]sessionRecord, len(sessions))
				for i, s := range sessions {
					records[i] = newSessionRecord(s)
				}
				return writeStructured(out, format, records)
			}

			if len(sessions) == 0 {
				fmt.Fprintln(out, "No sessions recorded yet. Start the stopwatch with: stopwatch")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tRECORDED\tELAPSED\tSEGMENTS\tLABEL")
			fmt.Fprintln(w, "--\t--------\t-------\t--------\t-----")
			for _, s := range sessions {
				label := s.Label
				if label == "" {
					label = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
					s.ID,
					humanize.Time(s.RecordedAt),
					stopwatch.Format(s.Elapsed),
					s.Segments,
					label,
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of sessions to show")
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format: table, json or yaml")

	return cmd
}

func newStatsCmd(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show totals across all recorded sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			svc, closer, err := opts.openHistory()
			if err != nil {
				return err
			}
			defer closer.Close()

			stats, err := svc.Stats()
			if err != nil {
				return fmt.Errorf("failed to load stats: %w", err)
			}

			out := cmd.OutOrStdout()
			if format != formatTable {
				return writeStructured(out, format, statsRecord{
					Count:   stats.Count,
					Total:   stopwatch.Format(stats.Total),
					Longest: stopwatch.Format(stats.Longest),
					Average: stopwatch.Format(stats.Average),
				})
			}

			if !stats.HasData() {
				fmt.Fprintln(out, "No sessions recorded yet.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Sessions:\t%s\n", humanize.Comma(int64(stats.Count)))
			fmt.Fprintf(w, "Total:\t%s\n", stopwatch.Format(stats.Total))
			fmt.Fprintf(w, "Longest:\t%s\n", stopwatch.Format(stats.Longest))
			fmt.Fprintf(w, "Average:\t%s\n", stopwatch.Format(stats.Average))
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format: table, json or yaml")

	return cmd
}

func newLabelCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "label <id> [text...]",
		Short: "Set or clear the label of a session",
		Long:  "Set the label of a session. Omitting the text clears the label.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			label := strings.TrimSpace(strings.Join(args[1:], " "))

			svc, closer, err := opts.openHistory()
			if err != nil {
				return err
			}
			defer closer.Close()

			if err := svc.Label(id, label); err != nil {
				return fmt.Errorf("failed to label session %s: %w", id, err)
			}

			green := color.New(color.FgGreen).SprintFunc()
			if label == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s Cleared label of %s\n", green("✓"), id)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s Labeled %s: %s\n", green("✓"), id, label)
			}
			return nil
		},
	}
}

func newDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a recorded session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := opts.openHistory()
			if err != nil {
				return err
			}
			defer closer.Close()

			if err := svc.Delete(args[0]); err != nil {
				return fmt.Errorf("failed to delete session %s: %w", args[0], err)
			}

			green := color.New(color.FgGreen).SprintFunc()
			fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted %s\n", green("✓"), args[0])
			return nil
		},
	}
}

func newVacuumCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "vacuum",
		Short: "Compact the session database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := opts.openHistory()
			if err != nil {
				return err
			}
			defer closer.Close()

			path, err := svc.Compact()
			if err != nil {
				return fmt.Errorf("failed to vacuum database: %w", err)
			}

			green := color.New(color.FgGreen).SprintFunc()
			fmt.Fprintf(cmd.OutOrStdout(), "%s Compacted %s\n", green("✓"), path)
			return nil
		},
	}
}
