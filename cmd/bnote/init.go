package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bnote/internal/dates"
)

func newInitCmd(a *app) *cobra.Command {
	var seed bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "create the notes table if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "initialized %s\n", a.cfg.DBPath)
			if !seed {
				return nil
			}
			note, err := st.Seed(cmd.Context(), dates.Timestamp(a.now(), a.cfg.Location))
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "seeded note %d\n", note.ID)
			return nil
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "insert a sample note")
	return cmd
}
