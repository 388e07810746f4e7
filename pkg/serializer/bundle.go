package serializer

import (
	"archive/zip"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Arunachalam-140897/DevEngine/pkg/manifest"
)

// ZipContentType is the media type of bundle archives.
const ZipContentType = "application/zip"

// WriteDir writes every file into dir, creating it if needed. Existing files
// with the same names are overwritten.
func WriteDir(dir string, files []manifest.GeneratedFile) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %q: %w", dir, err)
	}

	for _, f := range files {
		if err := checkFilename(f.Filename); err != nil {
			return err
		}
		path := filepath.Join(dir, f.Filename)
		if err := os.WriteFile(path, []byte(f.Content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		slog.Debug("file written", "path", path, "size", len(f.Content))
	}
	return nil
}

// WriteStream writes files as one multi-document YAML stream, each document
// preceded by a "# Source:" comment naming its file.
func WriteStream(w io.Writer, files []manifest.GeneratedFile) error {
	for i, f := range files {
		if i > 0 {
			if _, err := io.WriteString(w, "---\n"); err != nil {
				return fmt.Errorf("failed to write document separator: %w", err)
			}
		}
		content := f.Content
		if !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		if _, err := fmt.Fprintf(w, "# Source: %s\n%s", f.Filename, content); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.Filename, err)
		}
	}
	return nil
}

// WriteZip writes files as a deflated zip archive, in order.
func WriteZip(w io.Writer, files []manifest.GeneratedFile) error {
	zw := zip.NewWriter(w)

	// fixed timestamp keeps archives of identical bundles identical
	modified := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, f := range files {
		if err := checkFilename(f.Filename); err != nil {
			return err
		}
		header := &zip.FileHeader{
			Name:     f.Filename,
			Method:   zip.Deflate,
			Modified: modified,
		}
		header.SetMode(0o644)

		entry, err := zw.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("failed to create zip entry: %w", err)
		}
		if _, err := io.WriteString(entry, f.Content); err != nil {
			return fmt.Errorf("failed to write zip entry %s: %w", f.Filename, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize zip archive: %w", err)
	}
	return nil
}

// RespondZip streams files as a zip attachment named archiveName.
func RespondZip(w http.ResponseWriter, archiveName string, files []manifest.GeneratedFile) {
	// Set response headers before writing body
	w.Header().Set("Content-Type", ZipContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", archiveName))
	w.Header().Set("X-Bundle-Files", strconv.Itoa(len(files)))
	w.WriteHeader(http.StatusOK)

	if err := WriteZip(w, files); err != nil {
		// Can't write error response if we've already started writing
		slog.Error("failed to stream zip response", "error", err)
	}
}

// checkFilename rejects names that would escape the bundle root.
func checkFilename(name string) error {
	if name == "" || filepath.IsAbs(name) || name != filepath.Base(name) {
		return fmt.Errorf("invalid manifest filename %q", name)
	}
	return nil
}
