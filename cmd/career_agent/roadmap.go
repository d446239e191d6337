package main

import (
	"fmt"

	"github.com/jonathan/career-recommender/internal/catalog"
	"github.com/jonathan/career-recommender/internal/matching"
	"github.com/jonathan/career-recommender/internal/observability"
	"github.com/jonathan/career-recommender/internal/roadmap"
	"github.com/jonathan/career-recommender/internal/types"
	"github.com/spf13/cobra"
)

var roadmapCmd = &cobra.Command{
	Use:   "roadmap",
	Short: "Print the learning roadmap for a job",
	Long: "Computes which of a job's requirements a skill list is missing and prints them as an " +
		"ordered learning plan. --domain selects the prerequisite table; it defaults to the job's domain.",
	RunE: runRoadmap,
}

var (
	roadmapSkillsPath string
	roadmapJobID      int
	roadmapDomain     string
	roadmapFormat     string
)

func init() {
	roadmapCmd.Flags().StringVarP(&roadmapSkillsPath, "skills", "s", "", "Skill list JSON file, or - for stdin (required)")
	roadmapCmd.Flags().IntVarP(&roadmapJobID, "job", "j", 0, "Job id (required)")
	roadmapCmd.Flags().StringVarP(&roadmapDomain, "domain", "d", "", "Domain whose prerequisites apply")
	roadmapCmd.Flags().StringVarP(&roadmapFormat, "format", "f", formatJSON, "Output format: json or text")

	if err := roadmapCmd.MarkFlagRequired("skills"); err != nil {
		panic(fmt.Sprintf("failed to mark skills flag as required: %v", err))
	}
	if err := roadmapCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}

	rootCmd.AddCommand(roadmapCmd)
}

func runRoadmap(cmd *cobra.Command, _ []string) error {
	if err := checkFormat(roadmapFormat); err != nil {
		return err
	}
	userSkills, err := readSkills(roadmapSkillsPath, cmd.InOrStdin())
	if err != nil {
		return err
	}
	ds, err := loadDatasets()
	if err != nil {
		return err
	}
	resp, err := buildRoadmap(ds, userSkills, roadmapJobID, roadmapDomain)
	if err != nil {
		return err
	}
	if roadmapFormat == formatText {
		observability.NewPrinter(cmd.OutOrStdout()).PrintRoadmap(resp.Steps, resp.TotalWeeks)
		return nil
	}
	return writeJSON(cmd.OutOrStdout(), resp)
}

func buildRoadmap(ds *catalog.Datasets, userSkills []types.UserSkill, jobID int, domain string) (*types.RoadmapResponse, error) {
	engine := matching.NewEngine(ds.Catalog, ds.Normalizer)
	job, err := engine.Job(jobID)
	if err != nil {
		return nil, err
	}
	result, err := engine.Match(userSkills, jobID)
	if err != nil {
		return nil, err
	}

	if domain = catalog.NormalizeDomain(domain); domain == "" {
		domain = job.Domain
	}
	steps := roadmap.NewGenerator(ds.Reference).GenerateRoadmap(domain, result.Missing)
	return &types.RoadmapResponse{
		JobID:      job.ID,
		Title:      job.Title,
		Domain:     domain,
		MatchScore: result.Score,
		Steps:      steps,
		TotalWeeks: roadmap.TotalWeeks(steps),
	}, nil
}
