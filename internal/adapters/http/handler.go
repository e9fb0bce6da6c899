package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/3-lines-studio/svger/internal/core"
	"github.com/3-lines-studio/svger/internal/usecase"
)

// MaxBodyBytes caps the size of an uploaded SVG document.
const MaxBodyBytes = 1 << 20

const defaultIdentifier = "Icon"

type componentResponse struct {
	Identifier string `json:"identifier"`
	FileName   string `json:"fileName"`
	Extension  string `json:"extension"`
	Code       string `json:"code"`
	Malformed  bool   `json:"malformed"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type Handler struct {
	service  *usecase.GenerateService
	defaults usecase.GenerateOptions
	events   *Events
	logger   *slog.Logger
}

// NewRouter mounts the component API. Query parameters override
// defaults per request. events may be nil.
func NewRouter(service *usecase.GenerateService, defaults usecase.GenerateOptions, events *Events, logger *slog.Logger) http.Handler {
	h := &Handler{
		service:  service,
		defaults: defaults,
		events:   events,
		logger:   logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/components", h.generate)
		r.Get("/extensions", h.extension)
		if events != nil {
			r.Handle("/events", events)
		}
	})

	return r
}

func (h *Handler) generate(w http.ResponseWriter, req *http.Request) {
	opts, err := h.options(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, MaxBodyBytes))
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeError(w, status, err)
		return
	}
	if strings.TrimSpace(string(body)) == "" {
		writeError(w, http.StatusBadRequest, errors.New("request body must contain svg markup"))
		return
	}

	name := req.URL.Query().Get("name")
	if name == "" {
		name = defaultIdentifier
	}

	unit, err := h.service.Generate(usecase.GenerateInput{
		Identifier: core.DeriveIdentifier(name, core.ConventionPascal),
		SVG:        string(body),
		Options:    opts,
	})
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("generation failed", "name", name, "error", err)
		}
		writeError(w, status, err)
		return
	}

	if h.events != nil {
		h.events.Publish(Event{Kind: "generated", Identifier: unit.Identifier})
	}

	writeJSON(w, http.StatusOK, componentResponse{
		Identifier: unit.Identifier,
		FileName:   unit.FileName,
		Extension:  unit.Extension,
		Code:       unit.Code,
		Malformed:  unit.Malformed,
	})
}

func (h *Handler) extension(w http.ResponseWriter, req *http.Request) {
	opts, err := h.options(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	ext, err := core.FileExtension(opts.Target, opts.TypeScript)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"extension": ext})
}

func (h *Handler) options(req *http.Request) (usecase.GenerateOptions, error) {
	opts := h.defaults
	query := req.URL.Query()

	if v := query.Get("framework"); v != "" {
		target, err := core.ParseTarget(v)
		if err != nil {
			return opts, err
		}
		opts.Target = target
	}

	if v := query.Get("naming"); v != "" {
		naming, err := core.ParseConvention(v)
		if err != nil {
			return opts, err
		}
		opts.Naming = naming
	}

	if v := query.Get("typescript"); v != "" {
		ts, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("invalid typescript value %q", v)
		}
		opts.TypeScript = ts
	}

	flags := []struct {
		name string
		dst  **bool
	}{
		{"scriptSetup", &opts.FrameworkOptions.ScriptSetup},
		{"standalone", &opts.FrameworkOptions.Standalone},
		{"signals", &opts.FrameworkOptions.Signals},
		{"forwardRef", &opts.FrameworkOptions.ForwardRef},
		{"memo", &opts.FrameworkOptions.Memo},
	}
	for _, f := range flags {
		v := query.Get(f.name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("invalid %s value %q", f.name, v)
		}
		*f.dst = &b
	}

	return opts, nil
}

func statusFor(err error) int {
	var unsupported *core.UnsupportedFrameworkError
	if errors.As(err, &unsupported) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
