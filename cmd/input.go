package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/KaramelBytes/pokestat-cli/internal/dataset"
	"github.com/KaramelBytes/pokestat-cli/internal/utils"
)

// parseDelimiter maps a flag or config value to a field separator. Empty
// means sniff from the file extension.
func parseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "":
		return 0, nil
	case ",", "comma":
		return ',', nil
	case "\t", `\t`, "tab":
		return '\t', nil
	case ";", "semicolon":
		return ';', nil
	case "|", "pipe":
		return '|', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter: %s (use ','|'tab'|';'|'|')", s)
	}
}

// resolveDataFile returns the input path: the argument when given, else the
// configured data_file. A relative default that is missing from the working
// directory is searched for in parent directories.
func resolveDataFile(args []string, configured string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if configured == "" {
		return "", errors.New("no input file (pass one or set data_file)")
	}
	if _, err := os.Stat(configured); err == nil || filepath.IsAbs(configured) {
		return configured, nil
	}
	found, err := utils.FindUp("", configured)
	if err != nil {
		// let the loader report the missing file by its configured name
		return configured, nil
	}
	logger.Debug("data file found in parent directory", zap.String("path", found))
	return found, nil
}

func loadTable(path, delimiter, sheet string) (*dataset.Table, error) {
	delim, err := parseDelimiter(delimiter)
	if err != nil {
		return nil, err
	}
	t, err := dataset.Load(path, dataset.LoadOptions{Delimiter: delim, Sheet: sheet})
	if err != nil {
		return nil, err
	}
	logger.Debug("dataset loaded", zap.String("source", path), zap.Int("records", t.Len()))
	return dataset.Derive(t), nil
}
