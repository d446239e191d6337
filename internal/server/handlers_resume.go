package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/jonathan/career-recommender/internal/db"
	"github.com/jonathan/career-recommender/internal/resume"
	"github.com/jonathan/career-recommender/internal/types"
	"go.uber.org/zap"
)

// multipartOverhead is the room left for multipart headers beyond the file itself.
const multipartOverhead = 64 << 10

// handleUploadResume parses a multipart "file" upload and stores the extracted
// text and detected skills. With import_skills=true the detected skills the
// user does not have yet are added at intermediate level.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	maxBytes := s.cfg.Resume.MaxUploadBytes
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			errorResponse(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds %d bytes", maxBytes))
			return
		}
		writeError(w, s.logger, &ErrValidation{Field: "file", Message: "expected multipart form"})
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, s.logger, &ErrValidation{Field: "file", Message: "no file provided"})
		return
	}
	defer file.Close()
	if header.Size > maxBytes {
		errorResponse(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds %d bytes", maxBytes))
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		writeError(w, s.logger, fmt.Errorf("failed to read upload: %w", err))
		return
	}
	if int64(len(data)) > maxBytes {
		errorResponse(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds %d bytes", maxBytes))
		return
	}

	parsed, err := s.parser.Parse(r.Context(), header.Filename, data)
	if err != nil {
		if errors.Is(err, resume.ErrUnsupportedFileType) {
			writeError(w, s.logger, err)
			return
		}
		s.logger.Info("resume extraction failed", zap.String("file", header.Filename), zap.Error(err))
		errorResponse(w, http.StatusUnprocessableEntity, "could not extract text from resume")
		return
	}

	if err := s.store.SaveResume(r.Context(), &db.Resume{
		UserID:         userID,
		Filename:       parsed.Filename,
		FileType:       string(parsed.FileType),
		ParsedText:     parsed.Text,
		DetectedSkills: db.StringArray(parsed.DetectedSkills),
	}); err != nil {
		writeError(w, s.logger, err)
		return
	}

	imported := []string{}
	if want, _ := strconv.ParseBool(r.FormValue("import_skills")); want {
		imported, err = s.importSkills(r.Context(), userID, parsed.DetectedSkills)
		if err != nil {
			writeError(w, s.logger, err)
			return
		}
	}

	jsonResponse(w, http.StatusCreated, map[string]any{
		"message":         "Resume uploaded and processed",
		"resume":          parsed,
		"imported_skills": imported,
	})
}

// importSkills adds detected skills the user does not already have.
func (s *Server) importSkills(ctx context.Context, userID uuid.UUID, detected []string) ([]string, error) {
	existing, err := s.store.ListUserSkills(ctx, userID)
	if err != nil {
		return nil, err
	}
	have := make(map[string]bool, len(existing))
	for _, row := range existing {
		have[row.SkillID] = true
	}

	imported := []string{}
	for _, id := range detected {
		if have[id] {
			continue
		}
		if _, err := s.store.UpsertUserSkill(ctx, userID, id, types.LevelIntermediate, 0); err != nil {
			return nil, err
		}
		imported = append(imported, id)
	}
	return imported, nil
}

func (s *Server) handleGetParsedResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	stored, err := s.store.GetResume(r.Context(), userID)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	if stored == nil {
		writeError(w, s.logger, &ErrResumeNotFound{})
		return
	}
	jsonResponse(w, http.StatusOK, stored)
}
