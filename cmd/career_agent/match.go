package main

import (
	"fmt"

	"github.com/jonathan/career-recommender/internal/catalog"
	"github.com/jonathan/career-recommender/internal/matching"
	"github.com/jonathan/career-recommender/internal/observability"
	"github.com/jonathan/career-recommender/internal/reasoning"
	"github.com/jonathan/career-recommender/internal/roadmap"
	"github.com/jonathan/career-recommender/internal/types"
	"github.com/jonathan/career-recommender/internal/xai"
	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match a skill list against one job",
	Long: "Scores a JSON skill list against a catalog job and prints the match, its reasoning and the " +
		"learning roadmap as JSON. Without --job every job is ranked instead.",
	RunE: runMatch,
}

var (
	matchSkillsPath string
	matchJobID      int
	matchExplain    bool
	matchLimit      int
	matchFormat     string
)

func init() {
	matchCmd.Flags().StringVarP(&matchSkillsPath, "skills", "s", "", "Skill list JSON file, or - for stdin (required)")
	matchCmd.Flags().IntVarP(&matchJobID, "job", "j", 0, "Job id to analyze")
	matchCmd.Flags().BoolVar(&matchExplain, "explain", false, "Include feature contributions and the counterfactual")
	matchCmd.Flags().IntVar(&matchLimit, "limit", 10, "Number of jobs to list when --job is not given")
	matchCmd.Flags().StringVarP(&matchFormat, "format", "f", formatJSON, "Output format: json or text")

	if err := matchCmd.MarkFlagRequired("skills"); err != nil {
		panic(fmt.Sprintf("failed to mark skills flag as required: %v", err))
	}

	rootCmd.AddCommand(matchCmd)
}

// matchReport is the offline analysis of one job.
type matchReport struct {
	Job         *types.JobProfile   `json:"job"`
	Match       *types.MatchResult  `json:"match"`
	Reasoning   string              `json:"reasoning"`
	Explanation *types.Explanation  `json:"explanation,omitempty"`
	Roadmap     []types.RoadmapStep `json:"roadmap"`
	TotalWeeks  float64             `json:"total_weeks"`
}

func runMatch(cmd *cobra.Command, _ []string) error {
	if err := checkFormat(matchFormat); err != nil {
		return err
	}
	userSkills, err := readSkills(matchSkillsPath, cmd.InOrStdin())
	if err != nil {
		return err
	}
	ds, err := loadDatasets()
	if err != nil {
		return err
	}

	if matchJobID == 0 {
		ranked, err := rankJobs(ds, userSkills, matchLimit)
		if err != nil {
			return err
		}
		if matchFormat == formatText {
			observability.NewPrinter(cmd.OutOrStdout()).PrintRanking(ranked)
			return nil
		}
		return writeJSON(cmd.OutOrStdout(), rankedEntries(ranked))
	}

	report, err := buildMatchReport(ds, userSkills, matchJobID, matchExplain)
	if err != nil {
		return err
	}
	if matchFormat == formatText {
		printReport(observability.NewPrinter(cmd.OutOrStdout()), report)
		return nil
	}
	return writeJSON(cmd.OutOrStdout(), report)
}

func printReport(p *observability.Printer, report *matchReport) {
	p.PrintJob(report.Job)
	p.PrintMatch(report.Match, report.Reasoning)
	p.PrintExplanation(report.Explanation)
	p.PrintRoadmap(report.Roadmap, report.TotalWeeks)
}

// buildMatchReport runs the full pipeline for one job.
func buildMatchReport(ds *catalog.Datasets, userSkills []types.UserSkill, jobID int, explain bool) (*matchReport, error) {
	engine := matching.NewEngine(ds.Catalog, ds.Normalizer)
	job, err := engine.Job(jobID)
	if err != nil {
		return nil, err
	}
	result, err := engine.Match(userSkills, jobID)
	if err != nil {
		return nil, err
	}

	text := reasoning.GenerateReasoning(result.Matched, result.Missing, result.Score)
	steps := roadmap.NewGenerator(ds.Reference).GenerateRoadmap(job.Domain, result.Missing)
	report := &matchReport{
		Job:        job,
		Match:      result,
		Reasoning:  text,
		Roadmap:    steps,
		TotalWeeks: roadmap.TotalWeeks(steps),
	}
	if explain {
		e := xai.GenerateExplanation(result, text)
		report.Explanation = &e
	}
	return report, nil
}

// rankedEntry is one line of the offline ranking.
type rankedEntry struct {
	JobID        int          `json:"job_id"`
	Title        string       `json:"title"`
	Domain       string       `json:"domain"`
	MarketDemand types.Demand `json:"market_demand"`
	Score        float64      `json:"score"`
}

func rankJobs(ds *catalog.Datasets, userSkills []types.UserSkill, limit int) ([]types.RankedJob, error) {
	if limit < 0 {
		return nil, fmt.Errorf("limit must not be negative, got %d", limit)
	}
	return matching.NewEngine(ds.Catalog, ds.Normalizer).GetAllRecommendations(userSkills, limit)
}

func rankedEntries(ranked []types.RankedJob) []rankedEntry {
	out := make([]rankedEntry, 0, len(ranked))
	for _, rj := range ranked {
		out = append(out, rankedEntry{
			JobID:        rj.Job.ID,
			Title:        rj.Job.Title,
			Domain:       rj.Job.Domain,
			MarketDemand: rj.Job.MarketDemand,
			Score:        rj.Score,
		})
	}
	return out
}
