package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"bnote/internal/dates"
	"bnote/internal/digest"
)

func newMDCmd(a *app) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "md",
		Short: "print the Markdown digest of a day's notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day := dates.Today(a.now(), a.cfg.Location)
			if date != "" {
				if normalized, ok := dates.Normalize(date); ok {
					day = normalized
				} else {
					slog.Warn("invalid date, using today", "date", date, "today", day)
				}
			}

			st, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			md, err := digest.Build(cmd.Context(), st, day)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), md)
			return err
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "day to export (YYYY-MM-DD or YYYYMMDD, default today)")
	return cmd
}
