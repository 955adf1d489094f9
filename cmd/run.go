/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quocvan1999/auto-api-pusher/analyzer"
	"github.com/quocvan1999/auto-api-pusher/azure"
	"github.com/quocvan1999/auto-api-pusher/csv"
	"github.com/quocvan1999/auto-api-pusher/dispatcher"
	"github.com/quocvan1999/auto-api-pusher/mapper"
	"github.com/quocvan1999/auto-api-pusher/types"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Send one request per data row",
	Long: `The run command performs the main workflow:

1. Loads the field mapping schema and checks it against the data file
2. Imports the data file and applies any --set edits
3. Builds the JSON body of each selected row and sends it, one row at a time
4. Optionally re-sends the rows that failed, once, after the batch
5. Writes results.json and results.csv to the working folder

Ctrl-C stops the batch before the next row; a request already in flight is
completed and recorded.

Examples:
  # Send every row with a quarter second between requests
  auto-api-pusher run --schemaFile ./schema.yaml --dataFile ./rows.csv --delay 250ms

  # Fix a cell and send only that row
  auto-api-pusher run --rows 12 --set "12:Email=ann@example.com"

  # Retry transient failures inside each request, then re-send what still failed
  auto-api-pusher run --retries 3 --retryDelay 1s --retryFailed

  # Authorize with Microsoft Entra ID tokens
  auto-api-pusher run --azureScopes api://my-api/.default`,
	Run: func(cmd *cobra.Command, args []string) {
		configureLogger()
		workingFolderPath := workingFolder()

		selection, _ := cmd.Flags().GetString("rows")
		edits, _ := cmd.Flags().GetStringArray("set")
		retryFailed, _ := cmd.Flags().GetBool("retryFailed")

		schemaClient, jsonClient := newSchemaClient(workingFolderPath)
		loaded, err := loadSchema(schemaClient)
		if err != nil {
			log.Fatalf("Error loading schema: %v", err)
		}
		if loaded.Request.URL == "" {
			log.Fatal("No target URL: set request.url in the schema or use --url")
		}

		store, table, err := loadTable()
		if err != nil {
			log.Fatalf("Error importing data file: %v", err)
		}
		defer store.Close()

		analyzerClient := analyzer.NewSchemaClient(jsonClient, csv.NewIssueCsvClient(workingFolderPath, log), log)
		issues := analyzerClient.Analyze(loaded.Mappings, table.Headers)
		if blocking := countBlocking(issues); blocking > 0 {
			printIssues(color.Output, issues)
			log.Fatalf("%d blocking issues found, run validate for details", blocking)
		}

		if err := applyRowEdits(store, edits); err != nil {
			log.Fatalf("Error editing rows: %v", err)
		}

		indexes, err := parseRowSelection(selection)
		if err != nil {
			log.Fatalf("Error reading row selection: %v", err)
		}

		authPolicies, err := azure.NewCredentialClient(viper.GetStringSlice("azureScopes"), log).AuthorizationPolicies()
		if err != nil {
			log.Fatalf("Error setting up authorization: %v", err)
		}

		sender := dispatcher.NewHttpSender(dispatcher.SenderOptions{
			Timeout:       viper.GetDuration("timeout"),
			Retries:       viper.GetInt("retries"),
			RetryDelay:    viper.GetDuration("retryDelay"),
			PreviewLength: viper.GetInt("previewLength"),
			AuthPolicies:  authPolicies,
		}, log)

		batchClient := dispatcher.NewBatchClient(
			loaded.Request,
			loaded.Mappings,
			viper.GetDuration("delay"),
			mapper.NewPayloadClient(log),
			sender,
			store,
			log,
		)
		batchClient.OnResult = func(result types.SendResult) {
			printResult(color.Output, result)
		}

		jsonClient.CleanFiles([]string{"results.json", csv.ResultsFileName})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		_, err = batchClient.Run(ctx, indexes)
		cancelled := errors.Is(err, context.Canceled)
		if err != nil && !cancelled {
			log.Fatalf("Error sending rows: %v", err)
		}

		if retryFailed && !cancelled {
			if _, err := batchClient.RetryFailed(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Fatalf("Error retrying failed rows: %v", err)
			}
		}

		results, err := store.Results()
		if err != nil {
			log.Fatalf("Error reading results: %v", err)
		}
		if err := jsonClient.Export(results, "results.json"); err != nil {
			log.Fatalf("Error writing results: %v", err)
		}
		if err := csv.NewResultCsvClient(workingFolderPath, log).Export(results); err != nil {
			log.Fatalf("Error writing results: %v", err)
		}

		ok, failed, pending := summarize(results)
		summary := color.New(color.FgGreen)
		if failed > 0 {
			summary = color.New(color.FgRed)
		}
		summary.Fprintf(color.Output, "%d ok, %d failed, %d not sent\n", ok, failed, pending)
		if cancelled {
			log.Warn("Batch was cancelled")
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("rows", "r", "", "Rows to send, e.g. 0,3,5-7 (default every row)")
	runCmd.Flags().StringArray("set", []string{}, "Edit a cell before sending, as N:Column=value (repeatable)")
	runCmd.Flags().Bool("retryFailed", false, "Re-send failed rows once after the batch")

	runCmd.PersistentFlags().Duration("delay", 0, "Pause between two requests")
	viper.BindPFlag("delay", runCmd.PersistentFlags().Lookup("delay"))
	runCmd.PersistentFlags().Duration("timeout", dispatcher.DefaultTimeout, "Timeout of a single request attempt")
	viper.BindPFlag("timeout", runCmd.PersistentFlags().Lookup("timeout"))
	runCmd.PersistentFlags().Int("retries", 0, "Retries of a request on transport errors, 408, 429 and 5xx")
	viper.BindPFlag("retries", runCmd.PersistentFlags().Lookup("retries"))
	runCmd.PersistentFlags().Duration("retryDelay", 0, "Base delay between retries (default 800ms)")
	viper.BindPFlag("retryDelay", runCmd.PersistentFlags().Lookup("retryDelay"))
	runCmd.PersistentFlags().Int("previewLength", dispatcher.DefaultPreviewLength, "Characters of the response body kept per row")
	viper.BindPFlag("previewLength", runCmd.PersistentFlags().Lookup("previewLength"))
	runCmd.PersistentFlags().StringSlice("azureScopes", []string{}, "Microsoft Entra ID token scopes; enables bearer authorization")
	viper.BindPFlag("azureScopes", runCmd.PersistentFlags().Lookup("azureScopes"))
}
