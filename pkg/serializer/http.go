package serializer

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"gopkg.in/yaml.v3"
)

// Response content types.
const (
	JSONContentType = "application/json"
	YAMLContentType = "application/yaml"
)

// RespondJSON writes data as JSON with the given status code.
func RespondJSON(w http.ResponseWriter, statusCode int, data any) {
	respond(w, statusCode, JSONContentType, data, func(buf *bytes.Buffer, v any) error {
		return json.NewEncoder(buf).Encode(v)
	})
}

// RespondYAML writes data as YAML with the given status code.
func RespondYAML(w http.ResponseWriter, statusCode int, data any) {
	respond(w, statusCode, YAMLContentType, data, func(buf *bytes.Buffer, v any) error {
		enc := yaml.NewEncoder(buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	})
}

// Respond writes YAML when the request accepts it and JSON otherwise.
func Respond(w http.ResponseWriter, r *http.Request, statusCode int, data any) {
	if AcceptsYAML(r) {
		RespondYAML(w, statusCode, data)
		return
	}
	RespondJSON(w, statusCode, data)
}

// AcceptsYAML reports whether the Accept header names a YAML media type.
func AcceptsYAML(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		media := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		switch media {
		case YAMLContentType, "application/x-yaml", "text/yaml":
			return true
		}
	}
	return false
}

// respond encodes data fully before touching the status line, so an encoding
// failure still yields a clean 500.
func respond(w http.ResponseWriter, statusCode int, contentType string, data any,
	encode func(*bytes.Buffer, any) error) {

	buf := &bytes.Buffer{}
	if err := encode(buf, data); err != nil {
		slog.Error("response encoding failed", "content_type", contentType, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(statusCode)
	if _, err := w.Write(buf.Bytes()); err != nil {
		// connection is broken
		slog.Warn("response write failed", "error", err)
	}
}
