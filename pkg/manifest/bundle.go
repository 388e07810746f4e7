package manifest

import (
	"fmt"
	"sort"
)

// GeneratedFile is one manifest of a compilation.
type GeneratedFile struct {
	Filename string `json:"filename" yaml:"filename"`
	Content  string `json:"content" yaml:"content"`
}

// Rendered is the output of a single renderer: the file plus the name of the
// Kubernetes object it defines, so later passes can reference it.
type Rendered struct {
	GeneratedFile
	Kind string
	Name string
}

// Bundle is the ordered result of a compilation. Filenames are unique.
type Bundle struct {
	files []GeneratedFile
	index map[string]int

	// AppName is the application the bundle was compiled for.
	AppName string

	// Warnings lists resources that were requested but could not be generated.
	Warnings []string
}

func newBundle(app string) *Bundle {
	return &Bundle{index: make(map[string]int), AppName: app}
}

func (b *Bundle) add(r *Rendered) error {
	if r == nil {
		return nil
	}
	if _, dup := b.index[r.Filename]; dup {
		return fmt.Errorf("duplicate manifest filename %q", r.Filename)
	}
	b.index[r.Filename] = len(b.files)
	b.files = append(b.files, r.GeneratedFile)
	manifestsGeneratedTotal.WithLabelValues(r.Kind).Inc()
	return nil
}

// addResult adds the output of a renderer, passing its error through.
func (b *Bundle) addResult(r *Rendered, err error) error {
	if err != nil {
		return err
	}
	return b.add(r)
}

func (b *Bundle) warn(format string, args ...any) {
	b.Warnings = append(b.Warnings, fmt.Sprintf(format, args...))
}

// Files returns the manifests in generation order.
func (b *Bundle) Files() []GeneratedFile {
	out := make([]GeneratedFile, len(b.files))
	copy(out, b.files)
	return out
}

// Names returns the filenames in generation order.
func (b *Bundle) Names() []string {
	names := make([]string, len(b.files))
	for i, f := range b.files {
		names[i] = f.Filename
	}
	return names
}

// Get returns the content of the named file.
func (b *Bundle) Get(filename string) (string, bool) {
	i, ok := b.index[filename]
	if !ok {
		return "", false
	}
	return b.files[i].Content, true
}

// Len returns the number of files.
func (b *Bundle) Len() int {
	return len(b.files)
}

// Map returns the filename to content mapping.
func (b *Bundle) Map() map[string]string {
	m := make(map[string]string, len(b.files))
	for _, f := range b.files {
		m[f.Filename] = f.Content
	}
	return m
}

// SortedNames returns the filenames in lexical order.
func (b *Bundle) SortedNames() []string {
	names := b.Names()
	sort.Strings(names)
	return names
}
