// Package fragstore persists split fragments to a job-scoped temporary
// directory. It is the caller-side storage layer around the splitter
// core: the core returns in-memory fragments, the store serializes
// them to STL files and owns their deletion.
package fragstore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/printforge/stlsplit/pkg/splitter"
	"github.com/printforge/stlsplit/pkg/stlcodec"
)

// FragmentName returns the output file name for one fragment:
// <stem>_splt-NN.stl with NN zero-padded to 2 digits.
func FragmentName(stem string, partIndex int) string {
	return fmt.Sprintf("%s_splt-%02d.stl", stem, partIndex)
}

// Store is a job-scoped fragment directory. It is not safe for
// concurrent use.
type Store struct {
	dir   string
	files []string
}

// NewStore creates a fresh job directory under baseDir, or under the
// OS temp dir when baseDir is empty.
func NewStore(baseDir string) (*Store, error) {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	dir := filepath.Join(baseDir, "stlsplit-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create fragment dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the job directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Files returns the paths written so far, in part-index order.
func (s *Store) Files() []string {
	return s.files
}

// WriteFragments serializes every fragment to <stem>_splt-NN.stl in
// the job directory and returns the written paths. A failure leaves
// the files written so far in place for Cleanup to collect.
func (s *Store) WriteFragments(stem string, fragments []splitter.Fragment) ([]string, error) {
	for _, frag := range fragments {
		path, err := WriteFragment(s.dir, stem, frag)
		if err != nil {
			return nil, err
		}
		s.files = append(s.files, path)
	}
	return s.files, nil
}

// WriteFragment serializes one fragment into dir and returns its path.
func WriteFragment(dir, stem string, frag splitter.Fragment) (string, error) {
	path := filepath.Join(dir, FragmentName(stem, frag.PartIndex))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("write fragment %d: %w", frag.PartIndex, err)
	}
	defer f.Close()

	if err := stlcodec.Encode(f, frag.Mesh); err != nil {
		return "", fmt.Errorf("write fragment %d: %w", frag.PartIndex, err)
	}
	return path, nil
}

// Cleanup deletes the job directory and everything in it, including
// fragments only partially written before a failure. Deletion is
// best-effort: failures are swallowed so that cleanup never masks the
// error that triggered it.
func (s *Store) Cleanup() {
	_ = os.RemoveAll(s.dir)
	s.files = nil
}
