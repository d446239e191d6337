package server

import (
	"net/http"

	"github.com/jonathan/career-recommender/internal/catalog"
	"github.com/jonathan/career-recommender/internal/types"
)

// handleListJobs lists the catalog, optionally filtered by ?domain=.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	domain := catalog.NormalizeDomain(r.URL.Query().Get("domain"))

	jobs := make([]*types.JobProfile, 0, s.catalog.Len())
	for _, job := range s.catalog.Jobs() {
		if domain == "" || job.Domain == domain {
			jobs = append(jobs, job)
		}
	}
	jsonResponse(w, http.StatusOK, map[string]any{
		"jobs":    jobs,
		"total":   len(jobs),
		"domains": s.catalog.Domains(),
	})
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathJobID(r)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	job, err := s.engine.Job(jobID)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	jsonResponse(w, http.StatusOK, job)
}
