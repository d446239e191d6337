// Package observability renders match results as boxed text for the CLI's text output.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/career-recommender/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted text output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintJob outputs a job and its weighted requirements.
func (p *Printer) PrintJob(job *types.JobProfile) {
	if job == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Job:     #%d %s\n", job.ID, job.Title))
	sb.WriteString(fmt.Sprintf("Domain:  %s\n", job.Domain))
	sb.WriteString(fmt.Sprintf("Demand:  %s\n", job.MarketDemand))
	if len(job.Requirements) > 0 {
		sb.WriteString("\nRequirements:\n")
		for _, req := range job.Requirements {
			sb.WriteString(fmt.Sprintf("  • %s (%s, %.2f)\n", req.SkillID, req.MinLevel, req.Weight))
		}
	}

	p.printBox("JOB PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatch outputs the score with matched and missing skills.
func (p *Printer) PrintMatch(result *types.MatchResult, reasoning string) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score: %.1f / 100\n", result.Score))
	if result.Degenerate {
		sb.WriteString("(job has no weighted requirements)\n")
	}

	if len(result.Matched) > 0 {
		sb.WriteString("\nMatched:\n")
		for _, m := range result.Matched {
			sb.WriteString(fmt.Sprintf("  ✓ %s  +%.2f", m.SkillID, m.Contribution))
			if m.Factor < 1 {
				sb.WriteString(" (partial)")
			}
			sb.WriteString("\n")
		}
	}
	if len(result.Missing) > 0 {
		sb.WriteString("\nMissing:\n")
		for _, m := range result.Missing {
			sb.WriteString(fmt.Sprintf("  ✗ %s  %.2f\n", m.SkillID, m.Weight))
		}
	}
	if reasoning != "" {
		sb.WriteString("\n")
		sb.WriteString(wrap(reasoning, boxWidth-4))
	}

	p.printBox("MATCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExplanation outputs the feature contributions and counterfactual.
func (p *Printer) PrintExplanation(e *types.Explanation) {
	if e == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Tone:        %s\n", e.Tone))
	sb.WriteString(fmt.Sprintf("Coverage:    %.0f%%\n", e.Coverage*100))
	sb.WriteString(fmt.Sprintf("Confidence:  %.2f\n", e.Confidence))

	if len(e.FeatureContributions) > 0 {
		sb.WriteString("\nContributions:\n")
		count := min(len(e.FeatureContributions), maxItemsToShow)
		for i := 0; i < count; i++ {
			f := e.FeatureContributions[i]
			sb.WriteString(fmt.Sprintf("  %-24s %+7.2f\n", f.SkillID, f.Contribution))
		}
		if len(e.FeatureContributions) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(e.FeatureContributions)-maxItemsToShow))
		}
	}

	if cf := e.Counterfactual; cf != nil {
		sb.WriteString("\nTo reach ")
		sb.WriteString(fmt.Sprintf("%.0f: learn %s", cf.TargetThreshold, strings.Join(cf.Skills, ", ")))
		if !cf.Reached {
			sb.WriteString(fmt.Sprintf(" (gets to %.1f)", cf.HypotheticalScore))
		}
		sb.WriteString("\n")
	}

	p.printBox("EXPLANATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRoadmap outputs the ordered learning steps.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRoadmap(steps []types.RoadmapStep, totalWeeks float64) {
	if len(steps) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NOTHING LEFT TO LEARN")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	for _, s := range steps {
		sb.WriteString(fmt.Sprintf("%d. %s  [%s, ~%.0f wk]\n", s.Order, s.SkillID, s.Tier, s.EstimatedWeeks))
		sb.WriteString(fmt.Sprintf("   %s\n", s.Description))
	}
	sb.WriteString(fmt.Sprintf("\nTotal: ~%.0f weeks", totalWeeks))

	p.printBox("LEARNING ROADMAP", sb.String())
}

// PrintRanking outputs the top ranked jobs.
func (p *Printer) PrintRanking(ranked []types.RankedJob) {
	if len(ranked) == 0 {
		return
	}

	var sb strings.Builder
	for i, rj := range ranked {
		sb.WriteString(fmt.Sprintf("#%-2d %5.1f  %s (%s)\n", i+1, rj.Score, rj.Job.Title, rj.Job.Domain))
	}

	p.printBox("TOP MATCHES", strings.TrimSuffix(sb.String(), "\n"))
}

// wrap breaks text into lines of at most width runes on word boundaries.
func wrap(text string, width int) string {
	var sb strings.Builder
	lineLen := 0
	for _, word := range strings.Fields(text) {
		n := len([]rune(word))
		if lineLen > 0 && lineLen+1+n > width {
			sb.WriteString("\n")
			lineLen = 0
		}
		if lineLen > 0 {
			sb.WriteString(" ")
			lineLen++
		}
		sb.WriteString(word)
		lineLen += n
	}
	return sb.String()
}
