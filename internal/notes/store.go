package notes

import (
	"strings"
	"sync"

	"github.com/lvogt/calnotes/internal/errortypes"
)

// URIScheme is the scheme prefix for note resource URIs.
const URIScheme = "note://"

// Note is a named free-text entry held in process memory.
type Note struct {
	Name    string
	Content string
}

// URI returns the resource URI for the note.
func (n Note) URI() string {
	return URI(n.Name)
}

// URI derives the resource URI for a note name.
func URI(name string) string {
	return URIScheme + name
}

// ParseURI extracts the note name from a note:// URI.
// It fails with an invalid_argument error for any other scheme.
func ParseURI(uri string) (string, error) {
	name, ok := strings.CutPrefix(uri, URIScheme)
	if !ok || name == "" {
		return "", errortypes.InvalidArgument("not a note URI: %q", uri)
	}
	return name, nil
}

// Store is an in-memory mapping from note name to content.
//
// The store is an explicitly owned object injected into handlers; there is
// no package-level state. A mutex keeps it safe should a transport ever
// deliver requests concurrently.
type Store struct {
	mu    sync.RWMutex
	notes map[string]string
	order []string // note names in insertion order
}

// NewStore creates an empty note store.
func NewStore() *Store {
	return &Store{
		notes: make(map[string]string),
	}
}

// Put inserts or overwrites the note under name.
// It reports whether the note was newly created.
func (s *Store) Put(name, content string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.notes[name]
	s.notes[name] = content
	if !exists {
		s.order = append(s.order, name)
	}
	return !exists
}

// Get returns the content of the note with the given name.
func (s *Store) Get(name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	content, ok := s.notes[name]
	if !ok {
		return "", errortypes.NotFound("note not found: %s", name)
	}
	return content, nil
}

// Resolve returns the content of the note addressed by a note:// URI.
func (s *Store) Resolve(uri string) (string, error) {
	name, err := ParseURI(uri)
	if err != nil {
		// An unknown scheme means the resource cannot exist here.
		return "", errortypes.NotFound("no resource for URI: %s", uri)
	}
	return s.Get(name)
}

// List returns all notes in insertion order.
func (s *Store) List() []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes := make([]Note, 0, len(s.order))
	for _, name := range s.order {
		notes = append(notes, Note{Name: name, Content: s.notes[name]})
	}
	return notes
}

// Len returns the number of stored notes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
