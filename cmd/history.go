package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/tldv-downloader/tldv/internal/history"
	"github.com/tldv-downloader/tldv/internal/tui"
	"github.com/tldv-downloader/tldv/internal/utils"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previously downloaded meetings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := history.Open(historyDBPath())
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.List(cmd.Context(), limit)
		if err != nil {
			return err
		}

		con := tui.NewConsole(cmd.OutOrStdout())
		if len(entries) == 0 {
			con.Info("No downloads recorded yet")
			return nil
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(con.Theme.Muted).
			Headers("COMPLETED", "MEETING", "LENGTH", "SIZE", "FILE").
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return con.Theme.Label.Padding(0, 1)
				}
				return con.Theme.Text.Padding(0, 1)
			})
		for _, e := range entries {
			length := "?"
			if e.DurationSeconds > 0 {
				length = utils.FormatTimeShort(e.DurationSeconds)
			}
			t.Row(
				humanize.Time(e.CompletedAt),
				e.Name,
				length,
				humanize.IBytes(uint64(max(e.SizeBytes, 0))),
				e.OutputPath,
			)
		}
		fmt.Fprintln(cmd.OutOrStdout(), t.Render())
		fmt.Fprintln(cmd.OutOrStdout(), con.Theme.Muted.Render(strconv.Itoa(len(entries))+" download(s)"))
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Maximum number of entries to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}
