// Package roadmap turns a job's missing skills into an ordered learning plan.
package roadmap

import (
	"fmt"
	"math"
	"sort"

	"github.com/jonathan/career-recommender/internal/catalog"
	"github.com/jonathan/career-recommender/internal/types"
)

// Generator builds roadmaps from the static reference tables.
// It holds no mutable state and is safe for concurrent use.
type Generator struct {
	ref *catalog.Reference
}

// NewGenerator returns a Generator backed by ref.
func NewGenerator(ref *catalog.Reference) *Generator {
	return &Generator{ref: ref}
}

// GenerateRoadmap orders missing skills by weight, heaviest first. Skills of equal
// weight are reordered so that prerequisites known for domain come first; with no
// known relation the input order is kept.
func (g *Generator) GenerateRoadmap(domain string, missing []types.MissingSkill) []types.RoadmapStep {
	items := g.dedupe(missing)
	sort.SliceStable(items, func(i, j int) bool {
		return types.Greater(items[i].Weight, items[j].Weight)
	})

	ordered := make([]types.MissingSkill, 0, len(items))
	for start := 0; start < len(items); {
		end := start + 1
		for end < len(items) && math.Abs(items[end].Weight-items[start].Weight) <= types.ScoreTolerance {
			end++
		}
		ordered = append(ordered, g.orderGroup(domain, items[start:end])...)
		start = end
	}

	steps := make([]types.RoadmapStep, 0, len(ordered))
	for i, m := range ordered {
		tier := g.ref.Tier(m.SkillID)
		resource := g.ref.Resource(m.SkillID)
		steps = append(steps, types.RoadmapStep{
			Order:                 i + 1,
			SkillID:               m.SkillID,
			SuggestedResourceType: resource,
			EstimatedWeeks:        g.ref.Weeks(tier),
			Weight:                m.Weight,
			Tier:                  tier,
			Description:           Describe(resource, m.SkillID),
		})
	}
	return steps
}

// GenerateFromWeights is GenerateRoadmap for a skill_id -> weight mapping.
// Map order is undefined, so ties start out in lexical id order.
func (g *Generator) GenerateFromWeights(domain string, weights map[string]float64) []types.RoadmapStep {
	ids := make([]string, 0, len(weights))
	for id := range weights {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	missing := make([]types.MissingSkill, 0, len(ids))
	for _, id := range ids {
		missing = append(missing, types.MissingSkill{SkillID: id, Weight: weights[id]})
	}
	return g.GenerateRoadmap(domain, missing)
}

// TotalWeeks sums the estimated effort of a roadmap.
func TotalWeeks(steps []types.RoadmapStep) float64 {
	total := 0.0
	for _, s := range steps {
		total += s.EstimatedWeeks
	}
	return total
}

// Describe renders the fixed step description for a resource type.
func Describe(resource types.ResourceType, skill string) string {
	switch resource {
	case types.ResourceProject:
		return fmt.Sprintf("Build a project using %s", skill)
	case types.ResourceCertification:
		return fmt.Sprintf("Earn a certification in %s", skill)
	default:
		return fmt.Sprintf("Complete a course on %s", skill)
	}
}

// dedupe normalizes ids and drops repeats, keeping the first occurrence.
func (g *Generator) dedupe(missing []types.MissingSkill) []types.MissingSkill {
	norm := g.ref.Normalizer()
	seen := make(map[string]bool, len(missing))
	out := make([]types.MissingSkill, 0, len(missing))
	for _, m := range missing {
		id := norm.Normalize(m.SkillID)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		m.SkillID = id
		out = append(out, m)
	}
	return out
}

// orderGroup is a stable topological sort of one equal-weight group. The ready
// skill that came first in the input is always placed next. Skills caught in a
// prerequisite cycle are appended in input order.
func (g *Generator) orderGroup(domain string, group []types.MissingSkill) []types.MissingSkill {
	if len(group) < 2 {
		return group
	}

	index := make(map[string]int, len(group))
	for i, m := range group {
		index[m.SkillID] = i
	}

	// deps[i] lists the group members that must precede group[i].
	deps := make([][]int, len(group))
	for i, m := range group {
		for _, p := range g.ref.Prerequisites(domain, m.SkillID) {
			if j, ok := index[p]; ok {
				deps[i] = append(deps[i], j)
			}
		}
	}

	placed := make([]bool, len(group))
	out := make([]types.MissingSkill, 0, len(group))
	for len(out) < len(group) {
		next := -1
		for i := range group {
			if !placed[i] && ready(deps[i], placed) {
				next = i
				break
			}
		}
		if next < 0 {
			for i := range group {
				if !placed[i] {
					out = append(out, group[i])
				}
			}
			break
		}
		placed[next] = true
		out = append(out, group[next])
	}
	return out
}

func ready(deps []int, placed []bool) bool {
	for _, d := range deps {
		if !placed[d] {
			return false
		}
	}
	return true
}
