/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/quocvan1999/auto-api-pusher/mapper"
	"github.com/quocvan1999/auto-api-pusher/payload"
)

// previewCmd represents the preview command
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print the request bodies that would be sent, without sending them",
	Long: `The preview command builds the JSON body for the selected rows and prints it.
Row numbers are zero-based. Edits given with --set are applied first.

Examples:
  auto-api-pusher preview --schemaFile ./schema.json --dataFile ./rows.csv
  auto-api-pusher preview --rows 0-4 --set "2:Email=ann@example.com" --output preview.json`,
	Run: func(cmd *cobra.Command, args []string) {
		configureLogger()
		workingFolderPath := workingFolder()

		selection, _ := cmd.Flags().GetString("rows")
		edits, _ := cmd.Flags().GetStringArray("set")
		output, _ := cmd.Flags().GetString("output")

		schemaClient, jsonClient := newSchemaClient(workingFolderPath)
		loaded, err := loadSchema(schemaClient)
		if err != nil {
			log.Fatalf("Error loading schema: %v", err)
		}

		store, _, err := loadTable()
		if err != nil {
			log.Fatalf("Error importing data file: %v", err)
		}
		defer store.Close()

		if err := applyRowEdits(store, edits); err != nil {
			log.Fatalf("Error editing rows: %v", err)
		}

		indexes, err := parseRowSelection(selection)
		if err != nil {
			log.Fatalf("Error reading row selection: %v", err)
		}
		if indexes == nil {
			count, err := store.RowCount()
			if err != nil {
				log.Fatalf("Error counting rows: %v", err)
			}
			for index := 0; index < count; index++ {
				indexes = append(indexes, index)
			}
		}

		payloadClient := mapper.NewPayloadClient(log)
		bodies := []payload.Object{}
		for _, index := range indexes {
			row, err := store.Row(index)
			if err != nil {
				log.Fatalf("Error reading row: %v", err)
			}
			body := payloadClient.ConstructPayload(row, loaded.Mappings)
			bodies = append(bodies, body)
			if err := printPayload(color.Output, index, body); err != nil {
				log.Fatalf("Error encoding payload: %v", err)
			}
		}

		if output != "" {
			if err := jsonClient.Export(bodies, output); err != nil {
				log.Fatalf("Error writing preview: %v", err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringP("rows", "r", "0", "Rows to preview, e.g. 0,3,5-7 (empty for every row)")
	previewCmd.Flags().StringArray("set", []string{}, "Edit a cell before building, as N:Column=value (repeatable)")
	previewCmd.Flags().StringP("output", "o", "", "Also write the bodies as a JSON array to this file")
}
