package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmcfuji/studiosite/app/models"
	"github.com/dmcfuji/studiosite/internal/pkg/server"
)

func newGalleryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Inspect the gallery listing",
	}
	cmd.AddCommand(newGalleryListCmd())
	return cmd
}

func newGalleryListCmd() *cobra.Command {
	var category string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every gallery image the site would show",
		Example: `  studiosite gallery list
  studiosite gallery list --category kimono --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, err := server.BuildServices()
			if err != nil {
				return err
			}
			defer svcs.Close()

			images := svcs.Gallery.Refresh(cmd.Context()).Images
			images = filterCategory(images, category)
			return printImages(cmd.OutOrStdout(), images, asJSON)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", models.CategoryAll, "Only list one category")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")

	return cmd
}

func filterCategory(images []models.GalleryImage, category string) []models.GalleryImage {
	if category == "" || category == models.CategoryAll {
		return images
	}
	out := make([]models.GalleryImage, 0, len(images))
	for _, img := range images {
		if img.Category == category {
			out = append(out, img)
		}
	}
	return out
}

func printImages(w io.Writer, images []models.GalleryImage, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(images)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tNAME\tPROXIED URL")
	for _, img := range images {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", img.Category, img.Name, img.ProxiedURL)
	}
	fmt.Fprintf(tw, "\n%d images\n", len(images))
	return tw.Flush()
}
