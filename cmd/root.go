package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dmcfuji/studiosite/internal/pkg/env"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "studiosite",
		Short: "Bilingual photo studio site with a storage-backed gallery",
		Long: `studiosite serves the studio's Japanese and English pages, the gallery
backed by object storage, the image proxy and the contact form.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			env.SetupEnvFile()
		},
		SilenceUsage: true,
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newGalleryCmd())

	return cmd
}
