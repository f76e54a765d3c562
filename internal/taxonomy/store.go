package taxonomy

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// fileSuffix precedes the extension in taxonomy file names,
// e.g. "math_taxonomy.json".
const fileSuffix = "_taxonomy"

// Store holds the taxonomies loaded from a directory, keyed by subject.
type Store struct {
	dir string
	log *zap.Logger

	mu       sync.RWMutex
	subjects map[string]*Subject
}

// NewStore creates a taxonomy store rooted at dir. Call Load before use.
func NewStore(dir string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		dir:      dir,
		log:      log.Named("taxonomy"),
		subjects: make(map[string]*Subject),
	}
}

// NewStoreFromSubjects builds an in-memory store without touching disk.
func NewStoreFromSubjects(subjects ...*Subject) (*Store, error) {
	s := NewStore("", nil)
	for _, subj := range subjects {
		if err := subj.compile(); err != nil {
			return nil, fmt.Errorf("subject %q: %w", subj.Name, err)
		}
		s.subjects[strings.ToLower(subj.Name)] = subj
	}
	return s, nil
}

// Dir returns the directory the store reads from.
func (s *Store) Dir() string {
	return s.dir
}

// Load reads every taxonomy document in the store directory. When the
// directory holds no documents, the defaults are written first. A document
// that cannot be read, parsed or validated is logged and skipped.
func (s *Store) Load(ctx context.Context) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create taxonomy dir: %w", err)
	}

	files, err := taxonomyFiles(s.dir)
	if err != nil {
		return err
	}

	loaded := make(map[string]*Subject)
	if len(files) == 0 {
		for _, subj := range s.writeDefaults() {
			loaded[subj.Name] = subj
		}
		if files, err = taxonomyFiles(s.dir); err != nil {
			return err
		}
	}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		subj, err := readFile(f.path)
		if err != nil {
			s.log.Warn("skipping taxonomy document",
				zap.String("file", f.path), zap.Error(err))
			continue
		}
		subj.Name = f.subject
		loaded[f.subject] = subj
		s.log.Debug("loaded taxonomy",
			zap.String("subject", f.subject),
			zap.Int("categories", len(subj.Categories)),
			zap.Int("skills", subj.SkillCount()))
	}

	s.mu.Lock()
	s.subjects = loaded
	s.mu.Unlock()
	return nil
}

// Get returns the taxonomy for subject (case-insensitive). Unknown subjects
// yield an empty, non-nil Subject.
func (s *Store) Get(subject string) *Subject {
	key := strings.ToLower(subject)
	s.mu.RLock()
	defer s.mu.RUnlock()
	if subj, ok := s.subjects[key]; ok {
		return subj
	}
	return &Subject{Name: key}
}

// Subjects returns the loaded subject names in sorted order.
func (s *Store) Subjects() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.subjects))
	for name := range s.subjects {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// writeDefaults persists the default taxonomies. Subjects that could not
// be written are returned so they can still be served from memory.
func (s *Store) writeDefaults() []*Subject {
	var unwritten []*Subject
	for _, subj := range DefaultSubjects() {
		path := filepath.Join(s.dir, subj.Name+fileSuffix+".json")
		data, err := encodeJSON(subj)
		if err == nil {
			err = os.WriteFile(path, data, 0o644)
		}
		if err != nil {
			s.log.Error("writing default taxonomy",
				zap.String("subject", subj.Name), zap.Error(err))
			if cerr := subj.compile(); cerr == nil {
				unwritten = append(unwritten, subj)
			}
			continue
		}
		s.log.Info("created default taxonomy", zap.String("file", path))
	}
	return unwritten
}

type taxonomyFile struct {
	subject string
	path    string
}

func taxonomyFiles(dir string) ([]taxonomyFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy dir: %w", err)
	}

	var out []taxonomyFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := filepath.Ext(name)
		switch ext {
		case ".json", ".yaml", ".yml":
		default:
			continue
		}
		base := strings.TrimSuffix(name, ext)
		if !strings.HasSuffix(base, fileSuffix) {
			continue
		}
		subject := strings.ToLower(strings.TrimSuffix(base, fileSuffix))
		if subject == "" {
			continue
		}
		out = append(out, taxonomyFile{subject: subject, path: filepath.Join(dir, name)})
	}
	return out, nil
}

// readFile parses, validates and compiles one taxonomy document.
func readFile(path string) (*Subject, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var (
		generic any
		subj    *Subject
	)
	if filepath.Ext(path) == ".json" {
		if err := json.Unmarshal(data, &generic); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
		if err := validateDocument(generic); err != nil {
			return nil, err
		}
		subj, err = decodeJSON(data)
	} else {
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		if err := validateDocument(generic); err != nil {
			return nil, err
		}
		subj, err = decodeYAML(data)
	}
	if err != nil {
		return nil, err
	}

	if err := subj.compile(); err != nil {
		return nil, err
	}
	return subj, nil
}
