package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"atelierapi/languageutil"
	"atelierapi/logger"
	"atelierapi/models"
	"atelierapi/services"

	"github.com/spf13/cobra"
)

func newItemsCmd(current func() *app) *cobra.Command {
	itemsCmd := &cobra.Command{
		Use:   "items",
		Short: "Closet pieces",
	}

	var category, search string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List pieces, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if category != "" && category != string(models.CategoryAll) && !models.Category(category).Valid() {
				return fmt.Errorf("unknown category %q", category)
			}
			items := current().items.List(services.ItemFilter{
				Category:   models.Category(category),
				SearchTerm: search,
			})
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCATEGORY\tNAME\tIMAGE")
			for _, item := range items {
				fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", item.ID, languageutil.CategoryLabel(item.Category), item.Name, item.HasImage())
			}
			return w.Flush()
		},
	}
	listCmd.Flags().StringVarP(&category, "category", "c", "", "Category filter (all, top, bottom, one_piece, ...)")
	listCmd.Flags().StringVarP(&search, "search", "s", "", "Case-insensitive name search")
	itemsCmd.AddCommand(listCmd)

	var addCategory, addImage string
	addCmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a piece",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			draft := services.NewItemDraft()
			draft.Name = args[0]
			draft.Category = models.Category(addCategory)
			if addImage != "" {
				if err := attachFile(cmd.Context(), a, draft, addImage); err != nil {
					draft.Cancel()
					return err
				}
			}
			item, err := draft.Submit(cmd.Context(), a.items)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), item.ID)
			return nil
		},
	}
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "Category (required)")
	addCmd.Flags().StringVarP(&addImage, "image", "i", "", "Path to an image file")
	_ = addCmd.MarkFlagRequired("category")
	itemsCmd.AddCommand(addCmd)

	var editName, editCategory, editImage string
	var clearImage bool
	editCmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit a piece; unset flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			item, ok := a.items.Get(args[0])
			if !ok {
				return models.ErrItemNotFound
			}
			draft := services.EditItemDraft(item)
			if cmd.Flags().Changed("name") {
				draft.Name = editName
			}
			if cmd.Flags().Changed("category") {
				draft.Category = models.Category(editCategory)
			}
			switch {
			case clearImage && editImage != "":
				return errors.New("--image and --clear-image are exclusive")
			case clearImage:
				draft.ClearImage()
			case editImage != "":
				if err := attachFile(cmd.Context(), a, draft, editImage); err != nil {
					draft.Cancel()
					return err
				}
			}
			updated, err := draft.Submit(cmd.Context(), a.items)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", updated.ID, languageutil.CategoryLabel(updated.Category), updated.Name)
			return nil
		},
	}
	editCmd.Flags().StringVarP(&editName, "name", "n", "", "New name")
	editCmd.Flags().StringVarP(&editCategory, "category", "c", "", "New category")
	editCmd.Flags().StringVarP(&editImage, "image", "i", "", "Path to a replacement image")
	editCmd.Flags().BoolVar(&clearImage, "clear-image", false, "Remove the image")
	itemsCmd.AddCommand(editCmd)

	rmCmd := &cobra.Command{
		Use:   "rm ID",
		Short: "Remove a piece; outfits keep their reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !current().items.Remove(cmd.Context(), args[0]) {
				return models.ErrItemNotFound
			}
			return nil
		},
	}
	itemsCmd.AddCommand(rmCmd)

	return itemsCmd
}

// attachFile encodes the file at path into the draft. A timed out encode
// leaves the draft's previous image in place.
func attachFile(ctx context.Context, a *app, draft *services.ItemDraft, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	timeout := a.encodeTimeout
	if timeout <= 0 {
		timeout = defaultEncodeTimeout
	}
	encodeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err = draft.AttachImage(encodeCtx, a.encoder, filepath.Base(path), f)
	if errors.Is(err, context.DeadlineExceeded) {
		logger.Warn("image encode timed out, keeping previous image", logger.String("path", path))
		return nil
	}
	if err != nil {
		return fmt.Errorf("encode image: %w", err)
	}
	return nil
}
