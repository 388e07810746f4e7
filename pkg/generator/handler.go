package generator

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Arunachalam-140897/DevEngine/pkg/defaults"
	"github.com/Arunachalam-140897/DevEngine/pkg/errors"
	"github.com/Arunachalam-140897/DevEngine/pkg/manifest"
	"github.com/Arunachalam-140897/DevEngine/pkg/serializer"
	"github.com/Arunachalam-140897/DevEngine/pkg/server"
	"github.com/Arunachalam-140897/DevEngine/pkg/topology"
)

// GeneratePattern is the ServeMux pattern of the generate endpoint.
const GeneratePattern = "POST /v1/generate/{module}"

// GenerateResponse is the body of a successful generation.
type GenerateResponse struct {
	Success  bool              `json:"success" yaml:"success"`
	Module   string            `json:"module" yaml:"module"`
	Files    map[string]string `json:"files" yaml:"files"`
	Order    []string          `json:"order" yaml:"order"`
	Warnings []string          `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// FailureResponse is the body of a failed generation.
type FailureResponse struct {
	Success   bool   `json:"success" yaml:"success"`
	Error     string `json:"error" yaml:"error"`
	Details   any    `json:"details,omitempty" yaml:"details,omitempty"`
	RequestID string `json:"requestId,omitempty" yaml:"requestId,omitempty"`
}

// Handler serves the generate endpoint.
type Handler struct {
	registry *Registry
}

// NewHandler returns a Handler over registry, or over the built-in modules
// when registry is nil.
func NewHandler(registry *Registry) *Handler {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Handler{registry: registry}
}

// HandleGenerate compiles the JSON body for the module named in the path.
//
// The response is JSON unless the client accepts application/zip, in which
// case the manifests are streamed as an archive, or application/yaml, in
// which case they are returned as one multi-document stream. The strict
// query parameter enables strict volume handling.
//
// Example:
//
//	POST /v1/generate/kubernetes?strict=true
//	Content-Type: application/json
//	Body: {"appName": "web", "namespace": "dev", "tiers": [...]}
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.GenerateHandlerTimeout)
	defer cancel()

	moduleName := r.PathValue("module")
	module, err := ParseModule(moduleName)
	if err != nil {
		h.fail(w, r, moduleName, http.StatusBadRequest, err.Error(), map[string]any{
			"module":    moduleName,
			"supported": SupportedModulesAsStrings(),
		})
		return
	}

	gen, ok := h.registry.Get(module)
	if !ok {
		h.fail(w, r, moduleName, http.StatusBadRequest,
			fmt.Sprintf("module %q has no registered generator", module), nil)
		return
	}

	opts := Options{}
	if v := r.URL.Query().Get("strict"); v != "" {
		strict, perr := strconv.ParseBool(v)
		if perr != nil {
			h.fail(w, r, moduleName, http.StatusBadRequest,
				fmt.Sprintf("invalid strict parameter %q", v), nil)
			return
		}
		opts.StrictVolumes = strict
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			h.fail(w, r, moduleName, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit), nil)
			return
		}
		h.fail(w, r, moduleName, http.StatusBadRequest, "failed to read request body", err.Error())
		return
	}

	slog.Debug("generate request received",
		"module", module,
		"bytes", len(body),
		"strict", opts.StrictVolumes)

	bundle, err := gen.Generate(ctx, body, opts)
	if err != nil {
		h.failFromErr(w, r, moduleName, err)
		return
	}

	generateRequestsTotal.WithLabelValues(module.String(), "success").Inc()

	switch {
	case strings.Contains(r.Header.Get("Accept"), serializer.ZipContentType):
		serializer.RespondZip(w, archiveName(bundle), bundle.Files())
	case serializer.AcceptsYAML(r):
		w.Header().Set("Content-Type", serializer.YAMLContentType)
		if err := serializer.WriteStream(w, bundle.Files()); err != nil {
			slog.Error("failed to stream manifests", "error", err)
		}
	default:
		serializer.RespondJSON(w, http.StatusOK, GenerateResponse{
			Success:  true,
			Module:   module.String(),
			Files:    bundle.Map(),
			Order:    bundle.Names(),
			Warnings: bundle.Warnings,
		})
	}
}

// archiveName names the download after the application.
func archiveName(b *manifest.Bundle) string {
	if b.AppName == "" {
		return "manifests.zip"
	}
	return b.AppName + "-manifests.zip"
}

func (h *Handler) failFromErr(w http.ResponseWriter, r *http.Request, module string, err error) {
	var ve *topology.ValidationError
	if stderrors.As(err, &ve) {
		h.fail(w, r, module, http.StatusUnprocessableEntity, "validation failed", ve.Violations)
		return
	}

	if se, ok := errors.As(err); ok {
		var details any
		if se.Cause != nil {
			details = se.Cause.Error()
		}
		h.fail(w, r, module, server.HTTPStatusFromCode(se.Code), se.Message, details)
		return
	}

	slog.Error("generation failed", "module", module, "error", err)
	h.fail(w, r, module, http.StatusInternalServerError, "failed to generate manifests", err.Error())
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, module string, status int, msg string, details any) {
	generateRequestsTotal.WithLabelValues(metricModule(module), strconv.Itoa(status)).Inc()
	serializer.RespondJSON(w, status, FailureResponse{
		Success:   false,
		Error:     msg,
		Details:   details,
		RequestID: server.RequestID(r.Context()),
	})
}

// metricModule keeps the label set bounded for unknown module names.
func metricModule(module string) string {
	if m, err := ParseModule(module); err == nil {
		return m.String()
	}
	return "unknown"
}
