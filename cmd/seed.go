/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quocvan1999/auto-api-pusher/curl"
	"github.com/quocvan1999/auto-api-pusher/importer"
	"github.com/quocvan1999/auto-api-pusher/schema"
	"github.com/quocvan1999/auto-api-pusher/types"
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create a field mapping schema from a cURL command",
	Long: `The seed command parses a cURL command and writes a schema with one field
mapping per leaf of its JSON body. Types are inferred from the sample values.
When a data file is given, mappings whose last path segment matches a column
header are wired to that column.

Examples:
  auto-api-pusher seed --curl "curl -X POST https://api.example.com/orders -d '{\"id\":1}'"
  auto-api-pusher seed --curlFile ./request.sh --dataFile ./rows.csv --output schema.hcl`,
	Run: func(cmd *cobra.Command, args []string) {
		configureLogger()
		workingFolderPath := workingFolder()

		command, _ := cmd.Flags().GetString("curl")
		curlFile, _ := cmd.Flags().GetString("curlFile")
		output, _ := cmd.Flags().GetString("output")
		writeConfig, _ := cmd.Flags().GetBool("writeConfig")

		if curlFile != "" {
			content, err := os.ReadFile(curlFile)
			if err != nil {
				log.Fatalf("Error reading cURL file: %v", err)
			}
			command = string(content)
		}
		if command == "" {
			log.Fatal("A cURL command is required, use --curl or --curlFile")
		}

		seed, err := curl.ParseCommand(command)
		if err != nil {
			log.Fatalf("Error parsing cURL command: %v", err)
		}
		log.Infof("Parsed %s %s with %d headers", seed.Method, seed.URL, len(seed.Headers))

		mappings := schema.InferMappings(seed.BodyTemplate)
		if len(mappings) == 0 {
			log.Warn("The request body has no fields, the schema has no mappings")
		}

		dataFile := configPath("dataFile")
		if dataFile != "" {
			table, err := importer.NewTableClient(viper.GetString("sheet"), log).Import(dataFile)
			if err != nil {
				log.Fatalf("Error importing data file: %v", err)
			}
			matched := schema.MatchHeaders(mappings, table.Headers)
			log.Infof("Matched %d of %d mappings to data columns", matched, len(mappings))
		}

		schemaClient, jsonClient := newSchemaClient(workingFolderPath)
		seeded := types.Schema{Request: seed.Target(), Mappings: mappings}
		if err := schemaClient.Save(seeded, output); err != nil {
			log.Fatalf("Error writing schema: %v", err)
		}

		if writeConfig {
			config := map[string]any{
				"schemaFile":    output,
				"dataFile":      dataFile,
				"delay":         "0s",
				"retries":       0,
				"timeout":       "30s",
				"previewLength": 500,
			}
			if err := jsonClient.Export(config, "auto-api-pusher.yaml"); err != nil {
				log.Fatalf("Error writing config file: %v", err)
			}
		}

		color.New(color.FgGreen).Fprintf(color.Output, "Schema with %d mappings written to %s\n", len(mappings), output)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().String("curl", "", "cURL command to parse")
	seedCmd.Flags().String("curlFile", "", "File containing the cURL command to parse")
	seedCmd.Flags().StringP("output", "o", "schema.json", "Schema file to write (.json, .yaml or .hcl)")
	seedCmd.Flags().Bool("writeConfig", false, "Also write an auto-api-pusher.yaml config skeleton")
}
