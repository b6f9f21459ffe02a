package exam

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Pool is the full candidate set of one exam booklet, as persisted.
type Pool struct {
	Exam       string      `yaml:"exam"`
	Candidates []Candidate `yaml:"candidates"`
}

// ErrPoolNotFound is returned when no pool file exists for an exam.
var ErrPoolNotFound = errors.New("exam pool not found")

// Store persists exam pools as one YAML file per exam under a data
// directory. Files are human-editable on purpose: authors fix category
// labels by hand more often than through the UI.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("store directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create store directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store's root directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) poolPath(exam string) string {
	return filepath.Join(s.dir, SanitizeName(exam)+".yaml")
}

// SanitizeName maps an exam identifier to a safe file name. Everything that
// resolves exam identifiers to paths (pool files, booklet lookups) must go
// through this so an identifier can never escape its directory.
func SanitizeName(exam string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", "..", "_", " ", "_")
	name := r.Replace(strings.TrimSpace(exam))
	if name == "" {
		name = "default"
	}
	return name
}

// Load reads the pool for an exam. The returned candidates are deduplicated
// to the latest version per (page, question-number) key.
func (s *Store) Load(exam string) (*Pool, error) {
	data, err := os.ReadFile(s.poolPath(exam))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrPoolNotFound, exam)
		}
		return nil, fmt.Errorf("failed to read pool for %s: %w", exam, err)
	}

	var pool Pool
	if err := yaml.Unmarshal(data, &pool); err != nil {
		return nil, fmt.Errorf("failed to parse pool for %s: %w", exam, err)
	}
	if pool.Exam == "" {
		pool.Exam = exam
	}
	pool.Candidates = DedupeLatest(pool.Candidates)
	return &pool, nil
}

// Save writes the pool atomically (write to a temp file, then rename).
func (s *Store) Save(pool *Pool) error {
	if pool == nil || pool.Exam == "" {
		return errors.New("pool must have an exam identifier")
	}

	data, err := yaml.Marshal(pool)
	if err != nil {
		return fmt.Errorf("failed to encode pool for %s: %w", pool.Exam, err)
	}

	path := s.poolPath(pool.Exam)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o640); err != nil {
		return fmt.Errorf("failed to write pool for %s: %w", pool.Exam, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to commit pool for %s: %w", pool.Exam, err)
	}
	return nil
}

// Upsert inserts or replaces a candidate by its (page, question-number) key.
// The stored version is bumped past any existing entry so a reload always
// resolves to this write, and the update timestamp is refreshed.
func (s *Store) Upsert(exam string, cand Candidate) (Candidate, error) {
	cand.Exam = exam
	cand.Category = NormalizeCategory(cand.Category)
	if cand.Status == "" {
		cand.Status = StatusPending
	}
	if err := cand.Validate(); err != nil {
		return Candidate{}, err
	}

	pool, err := s.Load(exam)
	if errors.Is(err, ErrPoolNotFound) {
		pool = &Pool{Exam: exam}
	} else if err != nil {
		return Candidate{}, err
	}

	cand.Updated = time.Now().UTC()
	replaced := false
	for i, existing := range pool.Candidates {
		if existing.Key() == cand.Key() {
			if cand.Version <= existing.Version {
				cand.Version = existing.Version + 1
			}
			pool.Candidates[i] = cand
			replaced = true
			break
		}
	}
	if !replaced {
		if cand.Version < 1 {
			cand.Version = 1
		}
		pool.Candidates = append(pool.Candidates, cand)
	}

	if err := s.Save(pool); err != nil {
		return Candidate{}, err
	}
	return cand, nil
}

// SetStatus updates the review status of one candidate.
func (s *Store) SetStatus(exam string, page, number int, status ReviewStatus) (Candidate, error) {
	pool, err := s.Load(exam)
	if err != nil {
		return Candidate{}, err
	}
	key := Candidate{Page: page, Number: number}.Key()
	for _, c := range pool.Candidates {
		if c.Key() == key {
			c.Status = status
			return s.Upsert(exam, c)
		}
	}
	return Candidate{}, fmt.Errorf("no candidate %s in exam %s", key, exam)
}

// ListExams returns the exams with a pool file, sorted by file name.
func (s *Store) ListExams() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list store directory: %w", err)
	}
	var exams []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		exams = append(exams, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	return exams, nil
}
