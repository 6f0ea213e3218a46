package server

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/style-remixer/internal/presets"
	"github.com/jonathan/style-remixer/internal/types"
)

// handleListPresets lists the owner's presets, newest first.
func (s *Server) handleListPresets(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.ListPresets(r.Context(), s.owner(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if list == nil {
		list = []types.Preset{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"presets": list})
}

// handleSavePreset saves the posted configuration as a new preset.
func (s *Server) handleSavePreset(w http.ResponseWriter, r *http.Request) {
	req := &types.SavePresetRequest{Mix: types.DefaultMix(), Skin: types.DefaultSkin(), Task: types.DefaultTask()}
	if err := decodeJSON(w, r, req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	cfg := types.StyleConfig{Mix: req.Mix, Skin: req.Skin, Task: req.Task, CustomPrompt: req.CustomPrompt}
	saved, err := s.store.SavePreset(r.Context(), s.owner(r), presets.NewPreset(req.Name, req.Prompt, cfg, time.Now()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, saved)
}

// handleImportPreset saves an exported preset document under a fresh ID.
func (s *Server) handleImportPreset(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, r, &ErrValidation{Message: "failed to read body: " + err.Error()})
		return
	}

	preset, err := presets.Import(data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	// Imports never overwrite an existing preset.
	preset.ID = uuid.Nil

	saved, err := s.store.SavePreset(r.Context(), s.owner(r), preset)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, saved)
}

// handleGetPreset resolves {id} as a preset ID or name.
func (s *Server) handleGetPreset(w http.ResponseWriter, r *http.Request) {
	preset, err := presets.Find(r.Context(), s.store, s.owner(r), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, preset)
}

// handleDeletePreset deletes a preset by ID.
func (s *Server) handleDeletePreset(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, &ErrValidation{Field: "id", Message: "must be a UUID"})
		return
	}
	if err := s.store.DeletePreset(r.Context(), s.owner(r), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleExportPreset downloads a preset as an indented JSON file.
func (s *Server) handleExportPreset(w http.ResponseWriter, r *http.Request) {
	preset, err := presets.Find(r.Context(), s.store, s.owner(r), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := presets.Export(preset)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", presets.ExportFileName(preset)))
	w.WriteHeader(http.StatusOK)
	w.Write(data) //nolint:errcheck
}

// handleUsePreset makes a preset the owner's current configuration.
func (s *Server) handleUsePreset(w http.ResponseWriter, r *http.Request) {
	preset, err := presets.Use(r.Context(), s.store, s.owner(r), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, preset.Config())
}

// handleGetCurrent returns the owner's current configuration, or the defaults.
func (s *Server) handleGetCurrent(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.store.LoadCurrent(r.Context(), s.owner(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, cfg)
}

// handlePutCurrent replaces the owner's current configuration.
// Sections missing from the body take their defaults.
func (s *Server) handlePutCurrent(w http.ResponseWriter, r *http.Request) {
	cfg := types.DefaultStyleConfig()
	if err := decodeJSON(w, r, &cfg); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := cfg.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.SaveCurrent(r.Context(), s.owner(r), cfg); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, cfg)
}
