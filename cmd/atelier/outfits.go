package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"atelierapi/languageutil"
	"atelierapi/models"
	"atelierapi/services"

	"github.com/spf13/cobra"
)

const defaultEncodeTimeout = 5 * time.Second

func newOutfitsCmd(current func() *app) *cobra.Command {
	outfitsCmd := &cobra.Command{
		Use:   "outfits",
		Short: "Lookbook outfits",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List saved outfits, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tVIBE\tPIECES\tCREATED")
			for _, outfit := range a.outfits.List() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
					outfit.ID,
					outfit.Name,
					languageutil.VibeLabel(outfit.Vibe),
					len(a.outfits.ResolveItems(outfit)),
					outfit.CreatedAt.Format("2006-01-02 15:04"),
				)
			}
			return w.Flush()
		},
	}
	outfitsCmd.AddCommand(listCmd)

	showCmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show an outfit and its pieces",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			outfit, ok := a.outfits.Get(args[0])
			if !ok {
				return models.ErrOutfitNotFound
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", outfit.Name, languageutil.VibeLabel(outfit.Vibe))
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, item := range a.outfits.ResolveItems(outfit) {
				slot := item.Category.Slot()
				if key, ok := outfit.Slots.SlotOf(item.ID); ok {
					slot = key
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", languageutil.SlotLabel(slot), item.Name, item.ID)
			}
			return w.Flush()
		},
	}
	outfitsCmd.AddCommand(showCmd)

	var vibe string
	var itemIDs []string
	createCmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Compose and save an outfit from piece ids",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			draft := services.NewDraft()
			for _, id := range itemIDs {
				item, ok := a.items.Get(id)
				if !ok {
					return fmt.Errorf("%w: %s", models.ErrItemNotFound, id)
				}
				draft.Toggle(item)
			}
			draft.Name = args[0]
			if vibe != "" {
				draft.Vibe = models.Vibe(vibe)
			}
			outfit, err := draft.Commit(cmd.Context(), a.outfits)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), outfit.ID)
			return nil
		},
	}
	createCmd.Flags().StringVarP(&vibe, "vibe", "v", string(models.DefaultVibe), "Vibe (casual, formal, work, party, cozy, sporty)")
	createCmd.Flags().StringArrayVarP(&itemIDs, "item", "i", nil, "Piece id, repeatable; later pieces replace earlier ones in the same slot")
	outfitsCmd.AddCommand(createCmd)

	rmCmd := &cobra.Command{
		Use:   "rm ID",
		Short: "Remove an outfit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !current().outfits.Remove(cmd.Context(), args[0]) {
				return models.ErrOutfitNotFound
			}
			return nil
		},
	}
	outfitsCmd.AddCommand(rmCmd)

	return outfitsCmd
}
