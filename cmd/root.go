/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var log = logrus.New()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "auto-api-pusher",
	Short: "Turn a cURL command and a spreadsheet into one API request per row",
	Long: `auto-api-pusher replays a single API call once for every row of a CSV, TSV or
XLSX file. A field mapping schema says where each column goes in the JSON body
and how it is typed, split and nested.

Typical workflow:
  # 1. Derive a schema from a working cURL command
  auto-api-pusher seed --curlFile ./request.sh --dataFile ./rows.xlsx --output schema.yaml

  # 2. Check the schema against the data
  auto-api-pusher validate --schemaFile ./schema.yaml --dataFile ./rows.xlsx

  # 3. Look at the bodies that would be sent
  auto-api-pusher preview --schemaFile ./schema.yaml --dataFile ./rows.xlsx --rows 0-2

  # 4. Send them
  auto-api-pusher run --schemaFile ./schema.yaml --dataFile ./rows.xlsx --delay 250ms`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./auto-api-pusher.yaml)")
	rootCmd.PersistentFlags().StringP("verbosity", "v", "info", "Log level (trace, debug, info, warn, error)")
	viper.BindPFlag("verbosity", rootCmd.PersistentFlags().Lookup("verbosity"))
	rootCmd.PersistentFlags().Bool("structuredLogs", false, "Write logs as JSON")
	viper.BindPFlag("structuredLogs", rootCmd.PersistentFlags().Lookup("structuredLogs"))
	rootCmd.PersistentFlags().StringP("workingFolderPath", "w", ".", "Folder for issues, results and generated files")
	viper.BindPFlag("workingFolderPath", rootCmd.PersistentFlags().Lookup("workingFolderPath"))
	rootCmd.PersistentFlags().StringP("schemaFile", "s", "", "Field mapping schema file (.json, .yaml or .hcl)")
	viper.BindPFlag("schemaFile", rootCmd.PersistentFlags().Lookup("schemaFile"))
	rootCmd.PersistentFlags().StringP("dataFile", "d", "", "Data file (.csv, .tsv, .txt or .xlsx)")
	viper.BindPFlag("dataFile", rootCmd.PersistentFlags().Lookup("dataFile"))
	rootCmd.PersistentFlags().String("sheet", "", "Worksheet to read from an XLSX data file (default is the active sheet)")
	viper.BindPFlag("sheet", rootCmd.PersistentFlags().Lookup("sheet"))
	rootCmd.PersistentFlags().String("method", "", "HTTP method, overrides the schema's request")
	viper.BindPFlag("request.method", rootCmd.PersistentFlags().Lookup("method"))
	rootCmd.PersistentFlags().String("url", "", "Target URL, overrides the schema's request")
	viper.BindPFlag("request.url", rootCmd.PersistentFlags().Lookup("url"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("auto-api-pusher")
	}

	viper.SetEnvPrefix("AUTOAPIPUSHER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		fmt.Fprintln(os.Stderr, "Error reading config file:", err)
		os.Exit(1)
	}
}
