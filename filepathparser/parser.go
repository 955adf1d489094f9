package filepathparser

import (
	"os"
	"path/filepath"
	"strings"
)

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		dirname, _ := os.UserHomeDir()
		path = filepath.Join(dirname, path[2:])
	}
	return path
}

func ParsePath(path string) (string, error) {
	return filepath.Abs(expandHome(path))
}

// ParsePathRelativeTo resolves relative paths against baseFolder instead of
// the working directory, so files named in a config file are found next to it.
// An empty path stays empty.
func ParsePathRelativeTo(baseFolder string, path string) (string, error) {
	if path == "" {
		return "", nil
	}

	path = expandHome(path)
	if !filepath.IsAbs(path) && baseFolder != "" {
		path = filepath.Join(baseFolder, path)
	}
	return filepath.Abs(path)
}

// ParseFolder is ParsePath for output folders and creates the folder when missing.
func ParseFolder(path string) (string, error) {
	folder, err := ParsePath(path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(folder, 0755); err != nil {
		return "", err
	}
	return folder, nil
}
