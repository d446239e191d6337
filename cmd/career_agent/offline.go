package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/career-recommender/internal/catalog"
	"github.com/jonathan/career-recommender/internal/config"
	"github.com/jonathan/career-recommender/internal/schemas"
	"github.com/jonathan/career-recommender/internal/types"
	schemafiles "github.com/jonathan/career-recommender/schemas"
)

// loadDatasets reads the datasets named by the config file, or the embedded
// defaults when no config is given.
func loadDatasets() (*catalog.Datasets, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return catalog.Load(cfg.Catalog.JobsPath, cfg.Catalog.ReferencePath)
}

// readSkills reads a skill list from path, or from stdin when path is "-".
func readSkills(path string, stdin io.Reader) ([]types.UserSkill, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read skills: %w", err)
		}
		return parseSkills(data)
	}

	if err := schemas.ValidateFile(schemafiles.UserSkills, path); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read skills: %w", err)
	}
	return decodeSkills(data)
}

// parseSkills validates a skill list against the user skills schema and decodes it.
func parseSkills(data []byte) ([]types.UserSkill, error) {
	if err := schemas.ValidateBytes(schemafiles.UserSkills, data); err != nil {
		return nil, err
	}
	return decodeSkills(data)
}

func decodeSkills(data []byte) ([]types.UserSkill, error) {
	var list []types.UserSkill
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to decode skills: %w", err)
	}
	return list, nil
}

// Output formats of the offline commands.
const (
	formatJSON = "json"
	formatText = "text"
)

func checkFormat(format string) error {
	if format != formatJSON && format != formatText {
		return fmt.Errorf("unknown format %q (want json or text)", format)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
