package cmd

import (
	"errors"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/quocvan1999/auto-api-pusher/azure"
	"github.com/quocvan1999/auto-api-pusher/filepathparser"
	"github.com/quocvan1999/auto-api-pusher/hcl"
	"github.com/quocvan1999/auto-api-pusher/importer"
	"github.com/quocvan1999/auto-api-pusher/json"
	"github.com/quocvan1999/auto-api-pusher/schema"
	"github.com/quocvan1999/auto-api-pusher/session"
	"github.com/quocvan1999/auto-api-pusher/types"
)

var errNoMappings = errors.New("no field mappings: set schemaFile or mappings in the config file")

func configureLogger() {
	logVerbosity := viper.GetString("verbosity")
	logLevel, err := logrus.ParseLevel(logVerbosity)
	if err != nil {
		log.Fatalf("Invalid log level: %s", logVerbosity)
	}
	log.SetLevel(logLevel)
	log.SetFormatter(&logrus.TextFormatter{})
	if viper.GetBool("structuredLogs") {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	azure.ForwardSdkLogs(log)

	for key, value := range viper.GetViper().AllSettings() {
		log.Debugf("Command Flag: %s = %v", key, value)
	}
}

func configFolder() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return filepath.Dir(used)
	}
	return ""
}

// configPath resolves a path setting relative to the config file.
func configPath(key string) string {
	path, err := filepathparser.ParsePathRelativeTo(configFolder(), viper.GetString(key))
	if err != nil {
		log.Fatalf("Error getting %s: %v", key, err)
	}
	return path
}

func workingFolder() string {
	workingFolderPath, err := filepathparser.ParseFolder(viper.GetString("workingFolderPath"))
	if err != nil {
		log.Fatalf("Error getting working folder path: %v", err)
	}
	return workingFolderPath
}

func newSchemaClient(workingFolderPath string) (*schema.SchemaClient, *json.JsonClient) {
	jsonClient := json.NewJsonClient(workingFolderPath, log)
	hclClient := hcl.NewHclClient(workingFolderPath, log)
	return schema.NewSchemaClient(jsonClient, hclClient, log), jsonClient
}

// loadSchema reads the schema file, or the inline mappings of the config file,
// then lets request.* settings override the stored request.
func loadSchema(schemaClient schema.ISchemaClient) (*types.Schema, error) {
	loaded := &types.Schema{}

	if schemaFile := configPath("schemaFile"); schemaFile != "" {
		fromFile, err := schemaClient.Load(schemaFile)
		if err != nil {
			return nil, err
		}
		loaded = fromFile
	} else if viper.IsSet("mappings") {
		if err := viper.UnmarshalKey("mappings", &loaded.Mappings); err != nil {
			return nil, err
		}
		if err := schema.ValidateDocument(loaded); err != nil {
			return nil, err
		}
	}

	if len(loaded.Mappings) == 0 {
		return nil, errNoMappings
	}

	if method := viper.GetString("request.method"); method != "" {
		loaded.Request.Method = method
	}
	if url := viper.GetString("request.url"); url != "" {
		loaded.Request.URL = url
	}
	if headers := viper.GetStringMapString("request.headers"); len(headers) > 0 {
		if loaded.Request.Headers == nil {
			loaded.Request.Headers = map[string]string{}
		}
		for name, value := range headers {
			loaded.Request.Headers[name] = value
		}
	}

	log.Debugf("Loaded %d field mappings", len(loaded.Mappings))
	return loaded, nil
}

// loadTable imports the data file into a fresh session store.
func loadTable() (*session.Store, *types.Table, error) {
	dataFile := configPath("dataFile")
	if dataFile == "" {
		return nil, nil, errors.New("no data file: set dataFile")
	}

	table, err := importer.NewTableClient(viper.GetString("sheet"), log).Import(dataFile)
	if err != nil {
		return nil, nil, err
	}

	store, err := session.NewStore(log)
	if err != nil {
		return nil, nil, err
	}
	if err := store.LoadTable(table); err != nil {
		store.Close()
		return nil, nil, err
	}
	return store, table, nil
}
