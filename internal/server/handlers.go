package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/jonathan/style-remixer/internal/allocation"
	"github.com/jonathan/style-remixer/internal/parsing"
	"github.com/jonathan/style-remixer/internal/remix"
	"github.com/jonathan/style-remixer/internal/rewriting"
	"github.com/jonathan/style-remixer/internal/types"
	"go.uber.org/zap"
)

// decodeJSON decodes the request body into v. Fields absent from the body keep
// whatever v already holds, so callers pre-fill defaults.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return &ErrValidation{Message: "request body is empty"}
		}
		return &ErrValidation{Message: "invalid JSON body: " + err.Error()}
	}
	return nil
}

// newRemixRequest returns a request pre-filled with the default style.
func newRemixRequest() *types.RemixRequest {
	return &types.RemixRequest{
		Mix:  types.DefaultMix(),
		Skin: types.DefaultSkin(),
		Task: types.DefaultTask(),
	}
}

// decodeRemixRequest decodes, validates and normalizes a remix request.
func decodeRemixRequest(w http.ResponseWriter, r *http.Request) (*types.RemixRequest, error) {
	req := newRemixRequest()
	if err := decodeJSON(w, r, req); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.Facts = rewriting.ParseFacts(strings.Join(req.Facts, "\n"))
	return req, nil
}

// enhancerFor returns the configured enhancer unless the caller opted out with ?enhance=false.
func (s *Server) enhancerFor(r *http.Request) remix.Enhancer {
	if r.URL.Query().Get("enhance") == "false" {
		return nil
	}
	return s.enhancer
}

// handleRemix runs the local engine and, when configured, the enhancer.
func (s *Server) handleRemix(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRemixRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	outcome := remix.Run(r.Context(), req, s.enhancerFor(r))
	if outcome.Status == remix.StatusFallback {
		s.logger.Warn("enhancement fell back to local result", zap.String("reason", outcome.Reason))
	}
	s.jsonResponse(w, http.StatusOK, outcome)
}

// paragraphEvent is the payload of a paragraph stream event.
type paragraphEvent struct {
	Index     int             `json:"index"`
	Role      types.Role      `json:"role"`
	Primary   types.Dimension `json:"primary"`
	Secondary types.Dimension `json:"secondary"`
	Text      string          `json:"text"`
}

// handleRemixStream streams one event per rewritten paragraph, then the local result,
// then the enhanced outcome when an enhancer ran, then a completion event.
func (s *Server) handleRemixStream(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRemixRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	ctx := r.Context()
	for _, p := range remix.RemixParagraphs(req.Text, req.Mix, req.Skin, req.Task) {
		if ctx.Err() != nil {
			return
		}
		if err := sse.WriteEvent(EventParagraph, paragraphEvent{
			Index:     p.Index,
			Role:      p.Allocation.Role,
			Primary:   p.Allocation.Primary,
			Secondary: p.Allocation.Secondary,
			Text:      p.Text,
		}); err != nil {
			return
		}
	}

	local := remix.Plan(req)
	if err := sse.WriteEvent(EventLocal, local); err != nil {
		return
	}

	outcome := remix.Complete(ctx, req, local, s.enhancerFor(r))
	if outcome.Status != remix.StatusSkipped {
		if err := sse.WriteEvent(EventEnhanced, outcome); err != nil {
			return
		}
	}
	sse.WriteComplete(string(outcome.Status))
}

// handleAllocations returns the allocation grid for explicit roles or a segment count.
// ?profile=diagnostic selects the diagnostic bias table.
func (s *Server) handleAllocations(w http.ResponseWriter, r *http.Request) {
	req := &types.AllocationsRequest{Mix: types.DefaultMix(), ContentType: types.ContentNews}
	if err := decodeJSON(w, r, req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	profile := allocation.RewriteProfile
	if r.URL.Query().Get("profile") == "diagnostic" {
		profile = allocation.DiagnosticProfile
	}

	roles := req.Roles
	if len(roles) == 0 {
		roles = allocation.AssignRoles(req.Count)
	}
	allocations := profile.Compute(req.Mix, req.ContentType, roles)

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"allocations":   allocations,
		"structurePlan": remix.StructurePlan(allocations),
	})
}

// handleDiagnostics returns the sentence-level heatmap grid.
func (s *Server) handleDiagnostics(w http.ResponseWriter, r *http.Request) {
	req := &types.DiagnosticsRequest{Mix: types.DefaultMix(), Task: types.DefaultTask()}
	if err := decodeJSON(w, r, req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, remix.Diagnose(req.Text, req.Mix, req.Task))
}

// styleParseResponse is a parsed profile plus whether it is the fallback.
type styleParseResponse struct {
	*types.StyleProfile
	Fallback bool   `json:"fallback"`
	Error    string `json:"error,omitempty"`
}

// handleStyleParse turns a free-text style description into sliders.
// Parse failures still answer 200 with the default profile and a fallback signal.
func (s *Server) handleStyleParse(w http.ResponseWriter, r *http.Request) {
	req := &types.StyleParseRequest{}
	if err := decodeJSON(w, r, req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	profile, err := parsing.ParseStyleProfile(r.Context(), s.llm, req.Prompt)
	resp := styleParseResponse{StyleProfile: profile}
	if err != nil {
		s.logger.Warn("style parse fell back to defaults", zap.Error(err))
		resp.Fallback = true
		resp.Error = err.Error()
	}
	s.jsonResponse(w, http.StatusOK, resp)
}
