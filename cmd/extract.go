package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"shopscan/internal/extract"
	"shopscan/internal/logger"
)

var extractCmd = &cobra.Command{
	Use:   "extract [text-file]",
	Short: "Run the business-name heuristics over raw OCR text",
	Long: `Run the extraction pipeline over a text file (or stdin when no file is
given) and print the inferred business names, contact fields and confidence
labels.

This runs the pure heuristics only; no API calls are made. It is the fastest
way to tune or debug the extraction behavior against captured OCR output.`,
	Example: `  # Extract from a captured OCR dump
  shopscan extract sign-text.txt

  # Pipe text through the pipeline
  cat sign-text.txt | shopscan extract

  # JSON output
  shopscan extract sign-text.txt --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().Bool("json", false, "Output as JSON")
	extractCmd.Flags().Int("detections", 0, "Detection count to feed the confidence estimate (0 when unknown)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("extract")

	jsonOutput, _ := cmd.Flags().GetBool("json")
	detections, _ := cmd.Flags().GetInt("detections")

	var text []byte
	var err error
	if len(args) == 1 {
		text, err = os.ReadFile(args[0])
		if err != nil {
			log.Error().Err(err).Str("file", args[0]).Msg("Failed to read text file")
			return fmt.Errorf("failed to read text file: %w", err)
		}
	} else {
		text, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
	}

	result := extract.FromText(string(text), detections)

	log.Info().
		Int("text_length", len(text)).
		Strs("business_names", result.BusinessNames).
		Msg("Extraction completed")

	if jsonOutput {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to create JSON output: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if len(result.BusinessNames) == 0 {
		fmt.Println("No business name could be inferred.")
	} else {
		fmt.Println("Business names (best first):")
		for i, name := range result.BusinessNames {
			fmt.Printf("  %d. %s\n", i+1, name)
		}
	}
	printFieldList("Addresses", result.Addresses)
	printFieldList("Phone numbers", result.PhoneNumbers)
	printFieldList("Websites", result.Websites)
	printFieldList("Emails", result.Emails)
	fmt.Printf("Confidence: name=%s address=%s phone=%s\n",
		result.Confidence.BusinessName,
		result.Confidence.Address,
		result.Confidence.Phone)

	return nil
}
