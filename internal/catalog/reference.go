package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/career-recommender/internal/skills"
	"github.com/jonathan/career-recommender/internal/types"
	"gopkg.in/yaml.v3"
)

// GlobalDomain is the prerequisite table key that applies to every domain.
const GlobalDomain = "*"

// DefaultTier is used for skills without a tier entry.
const DefaultTier = "intermediate"

// DefaultTierWeeks is the effort table used when the reference data has none.
var DefaultTierWeeks = map[string]float64{
	"foundational": 2,
	"intermediate": 4,
	"advanced":     8,
}

type referenceFile struct {
	Synonyms      map[string]string              `yaml:"synonyms"`
	Prerequisites map[string]map[string][]string `yaml:"prerequisites"`
	Tiers         map[string]string              `yaml:"tiers"`
	TierWeeks     map[string]float64             `yaml:"tier_weeks"`
	Resources     map[string]string              `yaml:"resources"`
}

// Reference holds the static lookup tables behind normalization and roadmap
// generation. All keys are normalized skill ids. It is read-only after load.
type Reference struct {
	normalizer    *skills.Normalizer
	prerequisites map[string]map[string][]string
	tiers         map[string]string
	tierWeeks     map[string]float64
	resources     map[string]types.ResourceType
}

// LoadReference decodes the YAML reference tables. File synonyms are layered
// over skills.DefaultSynonyms.
func LoadReference(data []byte) (*Reference, error) {
	var raw referenceFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse reference data: %w", err)
	}

	synonyms := make(map[string]string, len(skills.DefaultSynonyms)+len(raw.Synonyms))
	for k, v := range skills.DefaultSynonyms {
		synonyms[k] = v
	}
	for k, v := range raw.Synonyms {
		synonyms[k] = v
	}
	norm := skills.NewNormalizer(synonyms)

	ref := &Reference{
		normalizer:    norm,
		prerequisites: make(map[string]map[string][]string, len(raw.Prerequisites)),
		tiers:         make(map[string]string, len(raw.Tiers)),
		tierWeeks:     make(map[string]float64, len(DefaultTierWeeks)),
		resources:     make(map[string]types.ResourceType, len(raw.Resources)),
	}

	tierWeeks := raw.TierWeeks
	if len(tierWeeks) == 0 {
		tierWeeks = DefaultTierWeeks
	}
	for tier, weeks := range tierWeeks {
		if weeks <= 0 {
			return nil, fmt.Errorf("tier %q: weeks must be positive, got %v", tier, weeks)
		}
		ref.tierWeeks[strings.ToLower(strings.TrimSpace(tier))] = weeks
	}
	if _, ok := ref.tierWeeks[DefaultTier]; !ok {
		return nil, fmt.Errorf("tier_weeks must define the %q tier", DefaultTier)
	}

	for skill, tier := range raw.Tiers {
		id := norm.Normalize(skill)
		tier = strings.ToLower(strings.TrimSpace(tier))
		if _, ok := ref.tierWeeks[tier]; !ok {
			return nil, fmt.Errorf("skill %q: unknown tier %q", skill, tier)
		}
		if id != "" {
			ref.tiers[id] = tier
		}
	}

	for skill, resource := range raw.Resources {
		rt := types.ResourceType(strings.ToLower(strings.TrimSpace(resource)))
		switch rt {
		case types.ResourceCourse, types.ResourceProject, types.ResourceCertification:
		default:
			return nil, fmt.Errorf("skill %q: unknown resource type %q", skill, resource)
		}
		if id := norm.Normalize(skill); id != "" {
			ref.resources[id] = rt
		}
	}

	for domain, table := range raw.Prerequisites {
		key := NormalizeDomain(domain)
		normalized := make(map[string][]string, len(table))
		for skill, prereqs := range table {
			id := norm.Normalize(skill)
			if id == "" {
				continue
			}
			for _, p := range prereqs {
				if pid := norm.Normalize(p); pid != "" && pid != id {
					normalized[id] = appendUnique(normalized[id], pid)
				}
			}
		}
		ref.prerequisites[key] = normalized
	}

	return ref, nil
}

// NormalizeDomain lower-cases and trims a domain name. The global key "*" is kept.
func NormalizeDomain(domain string) string {
	return strings.ToLower(strings.TrimSpace(domain))
}

// Normalizer returns the skill normalizer built from the synonym table.
func (r *Reference) Normalizer() *skills.Normalizer {
	return r.normalizer
}

// DirectPrerequisites returns the prerequisites of skill in domain, merged with
// the global table, in table order with duplicates removed.
func (r *Reference) DirectPrerequisites(domain, skill string) []string {
	var out []string
	for _, key := range []string{NormalizeDomain(domain), GlobalDomain} {
		for _, p := range r.prerequisites[key][skill] {
			out = appendUnique(out, p)
		}
	}
	return out
}

// Prerequisites returns the transitive prerequisite closure of skill in domain,
// sorted lexically. Cycles in the tables are tolerated.
func (r *Reference) Prerequisites(domain, skill string) []string {
	seen := map[string]bool{skill: true}
	queue := r.DirectPrerequisites(domain, skill)
	var out []string
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if seen[next] {
			continue
		}
		seen[next] = true
		out = append(out, next)
		queue = append(queue, r.DirectPrerequisites(domain, next)...)
	}
	sort.Strings(out)
	return out
}

// Tier returns the difficulty tier of skill, DefaultTier when unknown.
func (r *Reference) Tier(skill string) string {
	if tier, ok := r.tiers[skill]; ok {
		return tier
	}
	return DefaultTier
}

// Weeks returns the estimated effort for a tier, falling back to DefaultTier.
func (r *Reference) Weeks(tier string) float64 {
	if weeks, ok := r.tierWeeks[tier]; ok {
		return weeks
	}
	return r.tierWeeks[DefaultTier]
}

// Resource returns the suggested resource type for skill, course when unknown.
func (r *Reference) Resource(skill string) types.ResourceType {
	if rt, ok := r.resources[skill]; ok {
		return rt
	}
	return types.ResourceCourse
}

// PrerequisiteDomains lists the domains with a prerequisite table, sorted.
func (r *Reference) PrerequisiteDomains() []string {
	out := make([]string, 0, len(r.prerequisites))
	for d := range r.prerequisites {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}
