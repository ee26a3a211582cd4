package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/fredcamaral/mdpptx/internal/domain/entities"
)

// PPTXContentType is the media type of a presentation archive
const PPTXContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string             `json:"error"`
	Message string             `json:"message"`
	Kind    entities.ErrorKind `json:"kind,omitempty"`
	Time    time.Time          `json:"time"`
}

// ConvertRequest is the JSON body accepted by POST /api/convert
type ConvertRequest struct {
	Template  string            `json:"template"`
	Output    string            `json:"output,omitempty"`
	Documents []DocumentRequest `json:"documents"`
}

// DocumentRequest is one input document
type DocumentRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// ThemeResponse describes one available template
type ThemeResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	TitleFont   string `json:"title_font"`
	BodyFont    string `json:"body_font"`
	Default     bool   `json:"default"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

// handleConvert converts the request documents into a single archive.
// JSON bodies carry named documents; any other body is one raw Markdown
// document named by ?name=.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	req, err := decodeConvertRequest(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.handleError(w, err, http.StatusRequestEntityTooLarge)
			return
		}
		s.handleError(w, err, http.StatusBadRequest)
		return
	}

	docs := make([]entities.SourceDocument, 0, len(req.Documents))
	for i, d := range req.Documents {
		name := strings.TrimSpace(d.Name)
		if name == "" {
			name = fmt.Sprintf("document-%d.md", i+1)
		}
		docs = append(docs, entities.SourceDocument{Name: name, Content: d.Content})
	}

	opts := s.defaults
	opts.Combine = true
	if strings.TrimSpace(req.Template) != "" {
		opts.Template = req.Template
	}
	opts.Output = artifactFileName(req.Output)

	start := s.clock.Now()
	artifacts, err := s.converter.Convert(r.Context(), docs, opts)
	if s.monitor != nil {
		s.monitor.RecordConversion(s.clock.Since(start), len(docs), artifacts, err)
	}
	if err != nil {
		s.handleError(w, err, statusFor(err))
		return
	}
	if len(artifacts) != 1 {
		s.handleError(w, fmt.Errorf("expected one artifact, got %d", len(artifacts)), http.StatusInternalServerError)
		return
	}

	artifact := artifacts[0]
	w.Header().Set("Content-Type", PPTXContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": artifact.Name}))
	w.Header().Set("Content-Length", strconv.Itoa(len(artifact.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(artifact.Data); err != nil {
		s.logger.Error("failed to write archive response", "error", err)
	}
}

// handleThemes lists the available templates
func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	themes := s.themes.List()
	response := make([]ThemeResponse, 0, len(themes))
	for _, t := range themes {
		response = append(response, ThemeResponse{
			ID:          t.ID.String(),
			Name:        t.Name,
			Description: t.Description,
			TitleFont:   t.TitleFont,
			BodyFont:    t.FontFamily,
			Default:     t.ID.String() == entities.DefaultThemeName,
		})
	}
	s.writeJSON(w, response)
}

// handleHealth reports liveness
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, HealthResponse{Status: "ok", Time: s.clock.Now()})
}

// handleStats reports the conversion counters
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.monitor.Snapshot())
}

func decodeConvertRequest(r *http.Request) (ConvertRequest, error) {
	query := r.URL.Query()

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var req ConvertRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			return ConvertRequest{}, fmt.Errorf("decoding request: %w", err)
		}
		if req.Template == "" {
			req.Template = query.Get("template")
		}
		if req.Output == "" {
			req.Output = query.Get("output")
		}
		return req, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return ConvertRequest{}, fmt.Errorf("reading request: %w", err)
	}

	req := ConvertRequest{
		Template: query.Get("template"),
		Output:   query.Get("output"),
	}
	if len(body) > 0 {
		name := query.Get("name")
		if name == "" {
			name = "slides.md"
		}
		req.Documents = []DocumentRequest{{Name: name, Content: string(body)}}
	}
	return req, nil
}

// artifactFileName keeps only the base name and forces the .pptx extension
func artifactFileName(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if name == "" || name == "." || name == "/" {
		return ""
	}
	return entities.ArtifactName(name)
}

// statusFor maps conversion errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case entities.IsKind(err, entities.ErrorUnknownTemplate), entities.IsKind(err, entities.ErrorEmptyInput):
		return http.StatusBadRequest
	case entities.IsKind(err, entities.ErrorPackagingInvariantViolation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// handleError writes a JSON error. Conversion errors caused by the request
// are reported verbatim; everything else is sanitized.
func (s *Server) handleError(w http.ResponseWriter, err error, status int) {
	response := ErrorResponse{
		Error: http.StatusText(status),
		Time:  s.clock.Now(),
	}

	var convErr *entities.ConvertError
	switch {
	case errors.As(err, &convErr) && status < http.StatusInternalServerError:
		response.Kind = convErr.Kind
		response.Message = convErr.Error()
	case status == http.StatusBadRequest:
		response.Message = "Invalid request"
	case status == http.StatusNotFound:
		response.Message = "Resource not found"
	case status == http.StatusMethodNotAllowed:
		response.Message = "Method not allowed"
	case status == http.StatusRequestEntityTooLarge:
		response.Message = "Request body too large"
	default:
		response.Message = "Internal server error"
		if errors.As(err, &convErr) {
			response.Kind = convErr.Kind
		}
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("HTTP error", "status", status, "error", err)
	} else {
		s.logger.Debug("HTTP client error", "status", status, "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encodeErr := json.NewEncoder(w).Encode(response); encodeErr != nil {
		s.logger.Error("failed to encode error response", "error", encodeErr)
	}
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", "error", err)
	}
}
