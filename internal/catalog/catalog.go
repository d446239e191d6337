// Package catalog loads the static job catalog and the reference tables that
// drive skill normalization and roadmap generation.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/jonathan/career-recommender/internal/schemas"
	"github.com/jonathan/career-recommender/internal/skills"
	"github.com/jonathan/career-recommender/internal/types"
	schemafiles "github.com/jonathan/career-recommender/schemas"
)

var (
	// ErrDuplicateJob is returned when two catalog entries share an id.
	ErrDuplicateJob = errors.New("duplicate job id")
	// ErrDuplicateRequirement is returned when a job lists the same skill twice after normalization.
	ErrDuplicateRequirement = errors.New("duplicate requirement")
	// ErrEmptyCatalog is returned for a catalog without jobs.
	ErrEmptyCatalog = errors.New("catalog has no jobs")
)

type catalogFile struct {
	Version string              `json:"version"`
	Jobs    []*types.JobProfile `json:"jobs"`
}

// Catalog is the immutable, process-wide set of job profiles.
type Catalog struct {
	version string
	jobs    []*types.JobProfile
	byID    map[int]*types.JobProfile
}

// LoadCatalog validates data against the catalog schema, decodes it, and
// normalizes every requirement id with norm.
func LoadCatalog(data []byte, norm *skills.Normalizer) (*Catalog, error) {
	if err := schemas.ValidateBytes(schemafiles.Catalog, data); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	var raw catalogFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if len(raw.Jobs) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		version: raw.Version,
		jobs:    make([]*types.JobProfile, 0, len(raw.Jobs)),
		byID:    make(map[int]*types.JobProfile, len(raw.Jobs)),
	}
	for _, job := range raw.Jobs {
		if _, exists := c.byID[job.ID]; exists {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateJob, job.ID)
		}
		job.Domain = NormalizeDomain(job.Domain)

		seen := make(map[string]bool, len(job.Requirements))
		for i := range job.Requirements {
			req := &job.Requirements[i]
			id := norm.Normalize(req.SkillID)
			if id == "" {
				return nil, fmt.Errorf("job %d: requirement %q has no usable skill id", job.ID, req.SkillID)
			}
			if seen[id] {
				return nil, fmt.Errorf("%w: job %d lists %q more than once", ErrDuplicateRequirement, job.ID, id)
			}
			seen[id] = true
			req.SkillID = id
		}

		c.byID[job.ID] = job
		c.jobs = append(c.jobs, job)
	}

	sort.Slice(c.jobs, func(i, j int) bool { return c.jobs[i].ID < c.jobs[j].ID })
	return c, nil
}

// Version returns the dataset version string, if the file declares one.
func (c *Catalog) Version() string {
	return c.version
}

// Job returns the job with id.
func (c *Catalog) Job(id int) (*types.JobProfile, bool) {
	job, ok := c.byID[id]
	return job, ok
}

// Jobs returns every job in id order. The slice is a copy.
func (c *Catalog) Jobs() []*types.JobProfile {
	out := make([]*types.JobProfile, len(c.jobs))
	copy(out, c.jobs)
	return out
}

// Len returns the number of jobs.
func (c *Catalog) Len() int {
	return len(c.jobs)
}

// Domains returns the distinct job domains, sorted.
func (c *Catalog) Domains() []string {
	seen := make(map[string]bool)
	var out []string
	for _, job := range c.jobs {
		if !seen[job.Domain] {
			seen[job.Domain] = true
			out = append(out, job.Domain)
		}
	}
	sort.Strings(out)
	return out
}

// SkillIDs returns every distinct requirement id in the catalog, sorted.
func (c *Catalog) SkillIDs() []string {
	seen := make(map[string]bool)
	var out []string
	for _, job := range c.jobs {
		for _, req := range job.Requirements {
			if !seen[req.SkillID] {
				seen[req.SkillID] = true
				out = append(out, req.SkillID)
			}
		}
	}
	sort.Strings(out)
	return out
}
