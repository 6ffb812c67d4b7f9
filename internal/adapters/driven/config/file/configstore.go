package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/beacon-hill-archive/bhexport/internal/core/domain"
	"github.com/beacon-hill-archive/bhexport/internal/core/ports/driven"
)

// DefaultDirName is the config directory created under the home directory.
const DefaultDirName = ".bhexport"

const fileName = "config.toml"

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps bhexport settings in a TOML file. Keys are addressed in
// dot notation and stored as tables, so "source.driver" lives under
// [source] as driver = "duckdb". Dotted keys written by hand as quoted flat
// keys are folded into their tables on load.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	tree     map[string]any
}

// NewConfigStore opens the config file in configDir, creating the directory
// if needed. An empty configDir means ~/.bhexport.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		configDir = filepath.Join(home, DefaultDirName)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, fileName),
		tree:     make(map[string]any),
	}
	if err := s.load(); err != nil {
		return nil, fmt.Errorf("load %s: %w", s.filePath, err)
	}
	return s, nil
}

// Get retrieves a value by dot-notation key. Tables are not values.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	node := any(s.tree)
	for _, part := range strings.Split(key, ".") {
		table, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}
		if node, ok = table[part]; !ok {
			return nil, false
		}
	}
	if _, isTable := node.(map[string]any); isTable {
		return nil, false
	}
	return node, true
}

// GetString returns the string at key, or "" when absent or not a string.
func (s *ConfigStore) GetString(key string) string {
	val, _ := s.Get(key)
	str, _ := val.(string)
	return str
}

// GetInt returns the integer at key, or 0. TOML decodes integers as int64;
// integral floats are accepted for hand-edited files.
func (s *ConfigStore) GetInt(key string) int {
	val, _ := s.Get(key)
	switch v := val.(type) {
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		if v == float64(int(v)) {
			return int(v)
		}
	}
	return 0
}

// Set stores value under key and rewrites the file.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := insert(s.tree, key, value); err != nil {
		return err
	}
	return s.save()
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// save writes the tree atomically with owner-only permissions. Caller
// holds the lock.
func (s *ConfigStore) save() error {
	data, err := toml.Marshal(s.tree)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.filePath), fileName+".*")
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("write config: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return os.Rename(tmp.Name(), s.filePath)
}

func (s *ConfigStore) load() error {
	data, err := os.ReadFile(s.filePath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return err
	}

	flat := make(map[string]any)
	flatten(doc, "", flat)

	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tree := make(map[string]any)
	for _, k := range keys {
		if err := insert(tree, k, flat[k]); err != nil {
			return err
		}
	}
	s.tree = tree
	return nil
}

// insert places value at the dot path key, creating tables on the way.
func insert(tree map[string]any, key string, value any) error {
	parts := strings.Split(key, ".")
	for _, p := range parts {
		if p == "" {
			return fmt.Errorf("%w: bad config key %q", domain.ErrInvalidInput, key)
		}
	}

	table := tree
	for _, p := range parts[:len(parts)-1] {
		switch next := table[p].(type) {
		case map[string]any:
			table = next
		case nil:
			child := make(map[string]any)
			table[p] = child
			table = child
		default:
			return fmt.Errorf("%w: %q is a value, not a table", domain.ErrInvalidInput, p)
		}
	}

	last := parts[len(parts)-1]
	if _, isTable := table[last].(map[string]any); isTable {
		return fmt.Errorf("%w: %q is a table", domain.ErrInvalidInput, key)
	}
	table[last] = value
	return nil
}

// flatten collects the leaves of doc under dot-notation keys.
func flatten(doc map[string]any, prefix string, out map[string]any) {
	for k, v := range doc {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			flatten(nested, key, out)
			continue
		}
		out[key] = v
	}
}
