package spec

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/codervisor/leanspec/internal/sequence"
	"gopkg.in/yaml.v3"
)

const (
	// SpecsDir is the corpus directory under the project root.
	SpecsDir = "specs"
	// SpecFile is the document filename inside each spec folder.
	SpecFile = "spec.md"
)

// LoadFailure records a spec folder that could not be read or parsed.
// Batch operations carry these as degraded entries instead of aborting:
// a partial result is preferred to none.
type LoadFailure struct {
	ID  string
	Err error
}

// Store is the persistence interface for spec records.
// Abstracted so tools and CLI commands can be tested against fakes.
type Store interface {
	// Load reads a single record by identifier.
	Load(projectRoot, id string) (*Record, error)
	// List reads the whole corpus, sorted by identifier. Unreadable
	// folders are returned as LoadFailures alongside the good records.
	List(projectRoot string) ([]Record, []LoadFailure, error)
	// Save rewrites a record's frontmatter, preserving its body and any
	// metadata fields this engine does not interpret.
	Save(projectRoot string, rec *Record) error
}

// FileStore implements Store over a specs/ directory tree.
type FileStore struct{}

// NewFileStore creates a filesystem-backed spec store.
func NewFileStore() *FileStore {
	return &FileStore{}
}

// SpecsPath returns the absolute path to the specs/ directory.
func SpecsPath(projectRoot string) string {
	return filepath.Join(projectRoot, SpecsDir)
}

// SpecPath returns the absolute path to a spec's folder.
func SpecPath(projectRoot, id string) string {
	return filepath.Join(SpecsPath(projectRoot), id)
}

// SpecFilePath returns the absolute path to a spec's spec.md.
func SpecFilePath(projectRoot, id string) string {
	return filepath.Join(SpecPath(projectRoot, id), SpecFile)
}

// Load reads a single record by identifier.
func (fs *FileStore) Load(projectRoot, id string) (*Record, error) {
	data, err := os.ReadFile(SpecFilePath(projectRoot, id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("spec %q not found", id)
		}
		return nil, fmt.Errorf("reading spec %q: %w", id, err)
	}
	return ParseRecord(id, string(data))
}

// List reads every spec folder under specs/, sorted by identifier.
func (fs *FileStore) List(projectRoot string) ([]Record, []LoadFailure, error) {
	entries, err := os.ReadDir(SpecsPath(projectRoot))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("reading specs directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		ids = append(ids, entry.Name())
	}
	sort.Strings(ids)

	var records []Record
	var failures []LoadFailure
	for _, id := range ids {
		rec, err := fs.Load(projectRoot, id)
		if err != nil {
			failures = append(failures, LoadFailure{ID: id, Err: err})
			continue
		}
		records = append(records, *rec)
	}
	return records, failures, nil
}

// Save rewrites a record's document. The frontmatter is re-serialized from
// Meta with the declared dependencies replaced by the record's normalized
// list (written under "depends_on"; a stale "dependsOn" spelling is
// dropped so the two never disagree).
func (fs *FileStore) Save(projectRoot string, rec *Record) error {
	meta := make(map[string]any, len(rec.Meta)+1)
	for k, v := range rec.Meta {
		meta[k] = v
	}
	delete(meta, "dependsOn")
	if len(rec.DependsOn) > 0 {
		meta["depends_on"] = rec.DependsOn
	} else {
		delete(meta, "depends_on")
	}

	header, err := yaml.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encoding frontmatter for %q: %w", rec.ID, err)
	}

	doc := fmt.Sprintf("---\n%s---\n%s", header, rec.Body)
	path := SpecFilePath(projectRoot, rec.ID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating spec directory for %q: %w", rec.ID, err)
	}
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("writing spec %q: %w", rec.ID, err)
	}
	return nil
}

// ParseRecord builds a Record from a document's raw text. The metadata
// header is the YAML block between two "---" lines at the top of the file;
// a document without one is all body with default metadata.
func ParseRecord(id, doc string) (*Record, error) {
	header, body := splitFrontmatter(doc)

	meta := map[string]any{}
	if header != "" {
		if err := yaml.Unmarshal([]byte(header), &meta); err != nil {
			return nil, fmt.Errorf("parsing frontmatter of %q: %w", id, err)
		}
	}

	rec := &Record{
		ID:        id,
		Sequence:  sequence.Number(id),
		Status:    StatusDraft,
		Priority:  PriorityMedium,
		Tags:      NormalizeTags(meta["tags"]),
		DependsOn: NormalizeDependencies(DependencyField(meta)),
		Body:      body,
		Meta:      meta,
	}
	if s, ok := meta["status"].(string); ok && s != "" {
		rec.Status = Status(s)
	}
	if p, ok := meta["priority"].(string); ok && p != "" {
		rec.Priority = Priority(p)
	}
	return rec, nil
}

// splitFrontmatter separates the YAML header from the body. The header
// must start on the first line; the closing delimiter line is consumed.
func splitFrontmatter(doc string) (header, body string) {
	const delim = "---"

	lines := strings.Split(doc, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != delim {
		return "", doc
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == delim {
			return strings.Join(lines[1:i], "\n") + "\n", strings.Join(lines[i+1:], "\n")
		}
	}
	// Unterminated header: treat the whole document as body rather than
	// guessing where metadata ends.
	return "", doc
}
