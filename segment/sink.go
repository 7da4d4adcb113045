package segment

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// Sink receives artifacts produced by a Dispatcher.
type Sink interface {
	WriteArtifact(ctx context.Context, a Artifact) error
}

// FileWriter stores named byte payloads that are not segment artifacts,
// such as quantized input channels and run manifests.
type FileWriter interface {
	WriteFile(ctx context.Context, name string, data []byte) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, a Artifact) error

// WriteArtifact calls f(ctx, a).
func (f SinkFunc) WriteArtifact(ctx context.Context, a Artifact) error {
	return f(ctx, a)
}

// DirSink writes each artifact to a file named after the artifact in a directory.
//
// Files are written to a temporary name and renamed into place, so a failed
// write never leaves a truncated artifact behind or damages one written earlier.
type DirSink struct {
	dir  string
	perm os.FileMode
}

var (
	_ Sink       = (*DirSink)(nil)
	_ FileWriter = (*DirSink)(nil)
)

// NewDirSink creates a sink rooted at dir. The directory is created on first write.
func NewDirSink(dir string) *DirSink {
	return &DirSink{dir: dir, perm: 0o644}
}

// Dir returns the root directory.
func (s *DirSink) Dir() string {
	return s.dir
}

// Path returns the file path used for name.
func (s *DirSink) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// WriteArtifact stores a.Data as <dir>/<a.Name>.
func (s *DirSink) WriteArtifact(ctx context.Context, a Artifact) error {
	return s.WriteFile(ctx, a.Name, a.Data)
}

// WriteFile atomically stores data as <dir>/<name>.
func (s *DirSink) WriteFile(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if !filepath.IsLocal(name) {
		return fmt.Errorf("invalid artifact name %q", name)
	}

	path := s.Path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)

		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, s.perm); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to rename %s: %w", path, err)
	}

	return nil
}

// ReadArtifact reads back the payload of segment index of base.
func (s *DirSink) ReadArtifact(base string, index int) ([]byte, error) {
	data, err := os.ReadFile(s.Path(ArtifactName(base, index)))
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}

	return data, nil
}

// MemorySink collects artifacts and files in memory. It is safe for concurrent use.
type MemorySink struct {
	mu        sync.Mutex
	artifacts []Artifact
	files     map[string][]byte
}

var (
	_ Sink       = (*MemorySink)(nil)
	_ FileWriter = (*MemorySink)(nil)
)

// NewMemorySink creates an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string][]byte)}
}

// WriteArtifact records a copy of a.
func (s *MemorySink) WriteArtifact(ctx context.Context, a Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	a.Data = slices.Clone(a.Data)

	s.mu.Lock()
	s.artifacts = append(s.artifacts, a)
	s.mu.Unlock()

	return nil
}

// WriteFile records a copy of data under name, replacing any previous payload.
func (s *MemorySink) WriteFile(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.files[name] = slices.Clone(data)
	s.mu.Unlock()

	return nil
}

// Artifacts returns the recorded artifacts in write order.
func (s *MemorySink) Artifacts() []Artifact {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.artifacts)
}

// ArtifactsOf returns the recorded artifacts of one base name in write order.
func (s *MemorySink) ArtifactsOf(base string) []Artifact {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Artifact
	for _, a := range s.artifacts {
		if a.Base == base {
			out = append(out, a)
		}
	}

	return out
}

// File returns the payload stored under name.
func (s *MemorySink) File(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.files[name]

	return data, ok
}
