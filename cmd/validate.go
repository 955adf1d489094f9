/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/quocvan1999/auto-api-pusher/analyzer"
	"github.com/quocvan1999/auto-api-pusher/csv"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a field mapping schema against the data file",
	Long: `The validate command reports mappings that will never be written, point at
missing columns, overwrite each other or use an unknown data type. Issues are
written to issues.json and issues.csv in the working folder. The command fails
when an issue makes sending pointless.

Examples:
  auto-api-pusher validate --schemaFile ./schema.yaml --dataFile ./rows.csv`,
	Run: func(cmd *cobra.Command, args []string) {
		configureLogger()
		workingFolderPath := workingFolder()

		schemaClient, jsonClient := newSchemaClient(workingFolderPath)
		loaded, err := loadSchema(schemaClient)
		if err != nil {
			log.Fatalf("Error loading schema: %v", err)
		}

		var headers []string
		if configPath("dataFile") != "" {
			store, table, err := loadTable()
			if err != nil {
				log.Fatalf("Error importing data file: %v", err)
			}
			defer store.Close()
			headers = table.Headers
		} else {
			log.Info("No data file given, column checks are skipped")
		}

		analyzerClient := analyzer.NewSchemaClient(jsonClient, csv.NewIssueCsvClient(workingFolderPath, log), log)
		issues, err := analyzerClient.Report(loaded.Mappings, headers)
		if err != nil {
			log.Fatalf("Error writing issues: %v", err)
		}

		printIssues(color.Output, issues)
		if blocking := countBlocking(issues); blocking > 0 {
			log.Fatalf("%d blocking issues found", blocking)
		}
		color.New(color.FgGreen).Fprintf(color.Output, "%d mappings checked, %d issues\n", len(loaded.Mappings), len(issues))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
