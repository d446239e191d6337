package main

import (
	"github.com/jonathan/career-recommender/internal/catalog"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the job catalog and reference tables",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the datasets and print a summary",
	Long: "Loads the job catalog (checked against its JSON Schema) and the reference tables. " +
		"Paths default to the embedded datasets.",
	RunE: runCatalogValidate,
}

var catalogSkillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List the known skill ids and the synonyms that map to them",
	RunE:  runCatalogSkills,
}

var (
	catalogJobsPath      string
	catalogReferencePath string
)

func init() {
	catalogValidateCmd.Flags().StringVar(&catalogJobsPath, "jobs", "", "Job catalog JSON file")
	catalogValidateCmd.Flags().StringVar(&catalogReferencePath, "reference", "", "Reference tables YAML file")

	catalogSkillsCmd.Flags().StringVar(&catalogJobsPath, "jobs", "", "Job catalog JSON file")
	catalogSkillsCmd.Flags().StringVar(&catalogReferencePath, "reference", "", "Reference tables YAML file")

	catalogCmd.AddCommand(catalogValidateCmd, catalogSkillsCmd)
	rootCmd.AddCommand(catalogCmd)
}

// catalogSummary describes a dataset that passed validation.
type catalogSummary struct {
	Valid               bool     `json:"valid"`
	Version             string   `json:"version"`
	Jobs                int      `json:"jobs"`
	Domains             []string `json:"domains"`
	Skills              int      `json:"skills"`
	PrerequisiteDomains []string `json:"prerequisite_domains"`
}

func runCatalogValidate(cmd *cobra.Command, _ []string) error {
	ds, err := catalog.Load(catalogJobsPath, catalogReferencePath)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), summarize(ds))
}

func summarize(ds *catalog.Datasets) catalogSummary {
	return catalogSummary{
		Valid:               true,
		Version:             ds.Catalog.Version(),
		Jobs:                ds.Catalog.Len(),
		Domains:             ds.Catalog.Domains(),
		Skills:              len(ds.Catalog.SkillIDs()),
		PrerequisiteDomains: ds.Reference.PrerequisiteDomains(),
	}
}

// skillEntry is one known skill id with its synonyms.
type skillEntry struct {
	SkillID string   `json:"skill_id"`
	Aliases []string `json:"aliases"`
}

func runCatalogSkills(cmd *cobra.Command, _ []string) error {
	ds, err := catalog.Load(catalogJobsPath, catalogReferencePath)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), skillEntries(ds))
}

func skillEntries(ds *catalog.Datasets) []skillEntry {
	vocab := ds.Normalizer.Vocabulary()
	entries := make([]skillEntry, 0, len(vocab))
	for _, id := range vocab {
		aliases := ds.Normalizer.Aliases(id)
		if aliases == nil {
			aliases = []string{}
		}
		entries = append(entries, skillEntry{SkillID: id, Aliases: aliases})
	}
	return entries
}
