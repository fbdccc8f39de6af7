package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"bnote/internal/dates"
	"bnote/internal/store"
)

func newListCmd(a *app) *cobra.Command {
	var (
		date     string
		noteType string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "list notes, optionally filtered by day and type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var f store.Filter
			if date != "" {
				day, ok := dates.Normalize(date)
				if ok {
					f.Day = day
				} else {
					slog.Warn("ignoring invalid date filter", "date", date)
				}
			}
			f.Type = noteType

			st, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			notes, err := st.List(cmd.Context(), f)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, n := range notes {
				fmt.Fprintln(out, formatListLine(n))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "filter by date (YYYY-MM-DD or YYYYMMDD)")
	cmd.Flags().StringVarP(&noteType, "note_type", "t", "", "filter by type")
	return cmd
}

func formatListLine(n store.Note) string {
	body := strings.NewReplacer("\r", "", "\n", "").Replace(n.Body)
	return fmt.Sprintf(`"%d", "%s", "%s", "%s"`, n.ID, n.Date, body, n.Type)
}
