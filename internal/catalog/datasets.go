package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/jonathan/career-recommender/internal/skills"
)

//go:embed data/jobs.json
var defaultJobs []byte

//go:embed data/reference.yaml
var defaultReference []byte

// Datasets bundles everything the core needs at boot.
type Datasets struct {
	Catalog   *Catalog
	Reference *Reference
	// Normalizer knows the synonym table plus every catalog requirement id.
	Normalizer *skills.Normalizer
}

// Load reads the catalog and reference tables from the given paths. An empty
// path selects the embedded default dataset.
func Load(jobsPath, referencePath string) (*Datasets, error) {
	jobsData, err := readOrDefault(jobsPath, defaultJobs)
	if err != nil {
		return nil, err
	}
	refData, err := readOrDefault(referencePath, defaultReference)
	if err != nil {
		return nil, err
	}
	return Parse(jobsData, refData)
}

// LoadDefault loads the embedded datasets.
func LoadDefault() (*Datasets, error) {
	return Parse(defaultJobs, defaultReference)
}

// Parse builds Datasets from raw catalog JSON and reference YAML.
func Parse(jobsData, referenceData []byte) (*Datasets, error) {
	ref, err := LoadReference(referenceData)
	if err != nil {
		return nil, err
	}
	cat, err := LoadCatalog(jobsData, ref.Normalizer())
	if err != nil {
		return nil, err
	}
	return &Datasets{
		Catalog:    cat,
		Reference:  ref,
		Normalizer: ref.Normalizer().WithVocabulary(cat.SkillIDs()...),
	}, nil
}

func readOrDefault(path string, fallback []byte) ([]byte, error) {
	if path == "" {
		return fallback, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
