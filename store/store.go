package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

var ErrNotFound = errors.New("store: not found")

// document is the on-disk layout: named scalars and string sets.
type document struct {
	Ints   map[string]int      `yaml:"ints,omitempty"`
	Floats map[string]float64  `yaml:"floats,omitempty"`
	Sets   map[string][]string `yaml:"sets,omitempty"`
}

func newDocument() *document {
	return &document{
		Ints:   make(map[string]int),
		Floats: make(map[string]float64),
		Sets:   make(map[string][]string),
	}
}

// Memory keeps values for the lifetime of the process.
type Memory struct {
	mu  sync.Mutex
	doc *document

	// flush runs after every write while mu is held.
	flush func(*document) error
}

func NewMemory() *Memory {
	return &Memory{doc: newDocument()}
}

func (m *Memory) Int(key string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.doc.Ints[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return v, nil
}

func (m *Memory) SetInt(key string, v int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc.Ints[key] = v
	return m.write()
}

func (m *Memory) Float(key string) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.doc.Floats[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return v, nil
}

func (m *Memory) SetFloat(key string, v float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc.Floats[key] = v
	return m.write()
}

// Strings returns a copy of the set stored under key.
func (m *Memory) Strings(key string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.doc.Sets[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return append([]string(nil), v...), nil
}

// SetStrings stores v as a sorted set without duplicates.
func (m *Memory) SetStrings(key string, v []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc.Sets[key] = dedupe(v)
	return m.write()
}

func (m *Memory) write() error {
	if m.flush == nil {
		return nil
	}
	return m.flush(m.doc)
}

func dedupe(v []string) []string {
	out := append([]string(nil), v...)
	sort.Strings(out)
	n := 0
	for i, s := range out {
		if i > 0 && s == out[n-1] {
			continue
		}
		out[n] = s
		n++
	}
	return out[:n]
}

// File is a Memory that writes itself to a yaml file after every change.
type File struct {
	*Memory
	path string
}

// Open loads path if it exists. A missing file starts empty; a corrupt one
// is an error so the caller can decide whether to fall back to memory.
func Open(path string) (*File, error) {
	doc := newDocument()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, doc); err != nil {
			return nil, fmt.Errorf("store: decode %s: %w", path, err)
		}
		if doc.Ints == nil {
			doc.Ints = make(map[string]int)
		}
		if doc.Floats == nil {
			doc.Floats = make(map[string]float64)
		}
		if doc.Sets == nil {
			doc.Sets = make(map[string][]string)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("store: read %s: %w", path, err)
	}

	f := &File{Memory: &Memory{doc: doc}, path: path}
	f.Memory.flush = f.save
	return f, nil
}

func (f *File) Path() string {
	return f.path
}

func (f *File) save(doc *document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("store: encode: %w", err)
	}
	if dir := filepath.Dir(f.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("store: %w", err)
		}
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("store: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("store: replace %s: %w", f.path, err)
	}
	return nil
}
