package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"shopscan/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "shopscan",
	Short: "shopscan - turn storefront photos into business listings",
	Long: `shopscan reads a photograph of a storefront or sign, extracts its text
with Google Cloud OCR, infers the business name and contact details, and
disambiguates the physical business through the Google Places API.

Use the scan command for the full photo-to-listing pipeline, extract to run
the text heuristics standalone, and lookup to query the places service.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Info().
			Str("version", version).
			Msg("shopscan executed")

		fmt.Println("Welcome to shopscan!")
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
