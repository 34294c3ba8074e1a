package store

import (
	"math/big"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/san-kum/collatzlab/internal/logging"
)

const recordExt = ".json"

// Store keeps records inside a data directory.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Dir returns the data directory.
func (s *Store) Dir() string { return s.baseDir }

// Path resolves a record name. Absolute paths and paths with a directory
// component are used as given; bare names live in the data directory.
// A missing extension becomes .json.
func (s *Store) Path(name string) string {
	if filepath.Ext(name) == "" {
		name += recordExt
	}
	if filepath.IsAbs(name) || strings.ContainsRune(name, filepath.Separator) {
		return name
	}
	return filepath.Join(s.baseDir, name)
}

// Save writes r under name and returns the resolved path.
func (s *Store) Save(name string, r Record) (string, error) {
	path := s.Path(name)
	if filepath.Dir(path) == filepath.Clean(s.baseDir) {
		if err := s.Init(); err != nil {
			return "", err
		}
	}
	if err := Save(path, r); err != nil {
		return "", err
	}

	log := logging.Logger()
	log.Debug().Str("path", path).Int("length", len(r.Sequence)).Msg("record saved")
	return path, nil
}

// Load reads the record stored under name.
func (s *Store) Load(name string) (Record, error) {
	path := s.Path(name)
	r, err := Load(path)
	if err != nil {
		return Record{}, err
	}

	log := logging.Logger()
	log.Debug().Str("path", path).Int("length", len(r.Sequence)).Msg("record loaded")
	return r, nil
}

// Summary describes a stored record.
type Summary struct {
	Name     string
	Start    *big.Int
	Length   int
	Modified time.Time
}

// List summarizes every readable record in the data directory, sorted by
// name. Unreadable or malformed files are skipped.
func (s *Store) List() ([]Summary, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Summary{}, nil
		}
		return nil, err
	}

	log := logging.Logger()
	out := make([]Summary, 0)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != recordExt {
			continue
		}

		path := filepath.Join(s.baseDir, entry.Name())
		r, err := Load(path)
		if err != nil {
			log.Debug().Err(err).Str("path", path).Msg("skipping record")
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		out = append(out, Summary{
			Name:     strings.TrimSuffix(entry.Name(), recordExt),
			Start:    r.Start,
			Length:   len(r.Sequence),
			Modified: info.ModTime(),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
