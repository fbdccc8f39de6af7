package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var ErrNotImplemented = errors.New("not implemented")

// The write commands keep their flags so scripts can target them once they
// exist. Use the web editor to change notes.

func newAddCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "add",
		Short: "add notes (not implemented)",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "add: all=%t args=%q\n", all, args)
			return fmt.Errorf("add: %w", ErrNotImplemented)
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "A", false, "all files")
	return cmd
}

func newUpdateCmd() *cobra.Command {
	return newMessageStub("update", "update message")
}

func newDeleteCmd() *cobra.Command {
	return newMessageStub("delete", "delete message")
}

func newMessageStub(name, msgHelp string) *cobra.Command {
	var msg string
	cmd := &cobra.Command{
		Use:   name,
		Short: name + " notes (not implemented)",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: msg=%q args=%q\n", name, msg, args)
			return fmt.Errorf("%s: %w", name, ErrNotImplemented)
		},
	}
	cmd.Flags().StringVarP(&msg, "msg", "m", "", msgHelp)
	return cmd
}
