package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"shopscan/internal/config"
	"shopscan/internal/logger"
	"shopscan/internal/places"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup [query...]",
	Short: "Disambiguate a business name through the Google Places API",
	Long: `Search the Google Places API for a business and print either the single
resolved listing or the candidate locations when the query is ambiguous.

Required environment variables:
  GOOGLE_MAPS_API_KEY - API key with the Places API enabled`,
	Example: `  # Look up a business by name
  shopscan lookup "Joe's Coffee Shop"

  # Narrow with an address
  shopscan lookup "Joe's Coffee Shop" "123 Main Street"

  # Fetch the details for one place ID directly
  shopscan lookup --place-id ChIJN1t_tDeuEmsRUsoyG83frY4`,
	Args: cobra.ArbitraryArgs,
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)

	lookupCmd.Flags().Bool("json", false, "Output as JSON")
	lookupCmd.Flags().String("place-id", "", "Fetch details for a specific place ID instead of searching")
	lookupCmd.Flags().Int("timeout", 30, "Lookup timeout in seconds")
}

func runLookup(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("lookup")

	jsonOutput, _ := cmd.Flags().GetBool("json")
	placeID, _ := cmd.Flags().GetString("place-id")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	if placeID == "" && len(args) == 0 {
		return fmt.Errorf("provide a search query or --place-id")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := createContextWithTimeout(timeoutSecs, log)
	defer cancel()

	client, err := places.NewClientWithConfig(places.ClientConfig{
		APIKey:  cfg.GoogleMapsAPIKey,
		BaseURL: cfg.PlacesBaseURL,
	})
	if err != nil {
		return fmt.Errorf("failed to create places client: %w", err)
	}

	if placeID != "" {
		details, err := client.Details(ctx, placeID)
		if err != nil {
			log.Error().Err(err).Str("place_id", placeID).Msg("Details fetch failed")
			return fmt.Errorf("details fetch failed: %w", err)
		}
		return outputLookup(&places.Resolution{Match: details}, jsonOutput)
	}

	query := strings.Join(args, " ")
	log.Info().Str("query", query).Msg("Starting places lookup")

	resolution, err := client.Resolve(ctx, query)
	if err != nil {
		if places.NotFound(err) {
			fmt.Printf("No location found for %q.\n", query)
			return nil
		}
		log.Error().Err(err).Str("query", query).Msg("Places lookup failed")
		return fmt.Errorf("places lookup failed: %w", err)
	}

	return outputLookup(resolution, jsonOutput)
}

func outputLookup(resolution *places.Resolution, jsonOutput bool) error {
	if jsonOutput {
		data, err := json.MarshalIndent(resolution, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to create JSON output: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if resolution.Match != nil {
		match := resolution.Match
		fmt.Printf("Name:    %s\n", match.Name)
		fmt.Printf("Address: %s\n", match.FormattedAddress)
		if match.PhoneNumber != "" {
			fmt.Printf("Phone:   %s\n", match.PhoneNumber)
		}
		if match.Website != "" {
			fmt.Printf("Website: %s\n", match.Website)
		}
		if match.Rating > 0 {
			fmt.Printf("Rating:  %.1f (%d ratings)\n", match.Rating, match.UserRatingsTotal)
		}
		for _, hours := range match.OpeningHours {
			fmt.Printf("  %s\n", hours)
		}
		return nil
	}

	fmt.Println("Location candidates:")
	for i, option := range resolution.Options {
		fmt.Printf("  %d. %s - %s\n", i+1, option.Name, option.FormattedAddress)
	}
	return nil
}
