package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newRootCmd(open func(ctx context.Context) (*app, error)) *cobra.Command {
	var a *app
	rootCmd := &cobra.Command{
		Use:           "atelier",
		Short:         "Manage the closet and lookbook from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opened, err := open(cmd.Context())
			if err != nil {
				return fmt.Errorf("open wardrobe: %w", err)
			}
			a = opened
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a == nil || a.close == nil {
				return nil
			}
			return a.close()
		},
	}

	current := func() *app { return a }
	rootCmd.AddCommand(newItemsCmd(current), newOutfitsCmd(current))
	return rootCmd
}
