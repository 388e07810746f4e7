package template

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Arunachalam-140897/DevEngine/pkg/defaults"
	"github.com/Arunachalam-140897/DevEngine/pkg/errors"
	"github.com/Arunachalam-140897/DevEngine/pkg/serializer"
	"github.com/Arunachalam-140897/DevEngine/pkg/server"
)

// ServeMux patterns of the template endpoints.
const (
	SavePattern   = "POST /v1/templates"
	ListPattern   = "GET /v1/templates"
	GetPattern    = "GET /v1/templates/{name}"
	DeletePattern = "DELETE /v1/templates/{name}"
)

// SaveRequest is the body of a save request.
type SaveRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// ListResponse is the body of a list request.
type ListResponse struct {
	Templates []Template `json:"templates"`
	Count     int        `json:"count"`
}

// Handler serves the template endpoints over a Store.
type Handler struct {
	store Store
}

// NewHandler returns a Handler over store.
func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// Routes returns the handler functions keyed by ServeMux pattern.
func (h *Handler) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		SavePattern:   h.HandleSave,
		ListPattern:   h.HandleList,
		GetPattern:    h.HandleGet,
		DeletePattern: h.HandleDelete,
	}
}

// HandleSave creates or replaces a template.
//
//	POST /v1/templates
//	Body: {"name": "web-dev", "content": "apiVersion: v1\n..."}
func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.TemplateHandlerTimeout)
	defer cancel()

	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		server.WriteError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
			"request body is not valid JSON", false, map[string]any{"error": err.Error()})
		return
	}
	if err := ValidateName(req.Name); err != nil {
		server.WriteErrorFromErr(w, r, err, "invalid template name", nil)
		return
	}
	if req.Content == "" {
		server.WriteError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
			"template content is required", false, map[string]any{"name": req.Name})
		return
	}

	t, err := h.store.Save(ctx, req.Name, req.Content)
	if err != nil {
		h.writeStoreError(ctx, w, r, err, "failed to save template", req.Name)
		return
	}

	templateOpsTotal.WithLabelValues("save", "success").Inc()
	slog.Debug("template saved", "name", t.Name, "bytes", len(t.Content))
	serializer.Respond(w, r, http.StatusOK, t)
}

// HandleList returns every template sorted by name.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.TemplateHandlerTimeout)
	defer cancel()

	list, err := h.store.List(ctx)
	if err != nil {
		h.writeStoreError(ctx, w, r, err, "failed to list templates", "")
		return
	}
	templateOpsTotal.WithLabelValues("list", "success").Inc()
	serializer.Respond(w, r, http.StatusOK, ListResponse{Templates: list, Count: len(list)})
}

// HandleGet returns one template.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.TemplateHandlerTimeout)
	defer cancel()

	name := r.PathValue("name")
	t, err := h.store.Get(ctx, name)
	if err != nil {
		h.writeStoreError(ctx, w, r, err, "failed to get template", name)
		return
	}
	templateOpsTotal.WithLabelValues("get", "success").Inc()
	serializer.Respond(w, r, http.StatusOK, t)
}

// HandleDelete removes one template and answers 204.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.TemplateHandlerTimeout)
	defer cancel()

	name := r.PathValue("name")
	if err := h.store.Delete(ctx, name); err != nil {
		h.writeStoreError(ctx, w, r, err, "failed to delete template", name)
		return
	}
	templateOpsTotal.WithLabelValues("delete", "success").Inc()
	slog.Debug("template deleted", "name", name)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeStoreError(ctx context.Context, w http.ResponseWriter, r *http.Request, err error, msg, name string) {
	if ctx.Err() != nil {
		err = errors.Wrap(errors.ErrCodeTimeout, "template store timed out", ctx.Err())
	}

	templateOpsTotal.WithLabelValues(opFromMethod(r.Method, name), string(errors.CodeOf(err))).Inc()

	var extra map[string]any
	if name != "" {
		extra = map[string]any{"name": name}
	}
	if errors.CodeOf(err) != errors.ErrCodeNotFound {
		slog.Error(msg, "name", name, "error", err)
	}
	server.WriteErrorFromErr(w, r, err, msg, extra)
}

func opFromMethod(method, name string) string {
	switch {
	case method == http.MethodPost:
		return "save"
	case method == http.MethodDelete:
		return "delete"
	case name == "":
		return "list"
	default:
		return "get"
	}
}
