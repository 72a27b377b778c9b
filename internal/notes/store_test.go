package notes

import (
	"testing"

	"github.com/lvogt/calnotes/internal/errortypes"
)

func TestStorePutAndGet(t *testing.T) {
	s := NewStore()

	created := s.Put("todo", "buy milk")
	if !created {
		t.Error("expected first Put to report a new note")
	}

	content, err := s.Get("todo")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if content != "buy milk" {
		t.Errorf("expected content 'buy milk', got %q", content)
	}
}

func TestStoreOverwrite(t *testing.T) {
	s := NewStore()

	s.Put("todo", "buy milk")
	created := s.Put("todo", "buy oat milk")
	if created {
		t.Error("expected overwrite to report an existing note")
	}

	content, err := s.Get("todo")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if content != "buy oat milk" {
		t.Errorf("expected overwritten content, got %q", content)
	}

	if s.Len() != 1 {
		t.Errorf("expected 1 note after overwrite, got %d", s.Len())
	}
}

func TestStoreGetUnknown(t *testing.T) {
	s := NewStore()

	_, err := s.Get("missing")
	if err == nil {
		t.Fatal("expected error for unknown note")
	}
	if !errortypes.IsNotFound(err) {
		t.Errorf("expected not_found error, got %v", err)
	}
}

func TestStoreListInsertionOrder(t *testing.T) {
	s := NewStore()

	s.Put("c", "3")
	s.Put("a", "1")
	s.Put("b", "2")
	s.Put("a", "updated") // overwrite must not change position

	got := s.List()
	want := []Note{
		{Name: "c", Content: "3"},
		{Name: "a", Content: "updated"},
		{Name: "b", Content: "2"},
	}

	if len(got) != len(want) {
		t.Fatalf("expected %d notes, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("note %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestParseURI(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		want    string
		wantErr bool
	}{
		{name: "valid", uri: "note://todo", want: "todo"},
		{name: "name with slashes", uri: "note://a/b", want: "a/b"},
		{name: "wrong scheme", uri: "file://todo", wantErr: true},
		{name: "no scheme", uri: "todo", wantErr: true},
		{name: "empty name", uri: "note://", wantErr: true},
		{name: "empty string", uri: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseURI(tt.uri)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseURI(%q) expected error, got %q", tt.uri, got)
				}
				if !errortypes.IsInvalidArgument(err) {
					t.Errorf("expected invalid_argument error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseURI(%q) failed: %v", tt.uri, err)
			}
			if got != tt.want {
				t.Errorf("ParseURI(%q) = %q, want %q", tt.uri, got, tt.want)
			}
		})
	}
}

func TestStoreResolve(t *testing.T) {
	s := NewStore()
	s.Put("todo", "buy milk")

	content, err := s.Resolve("note://todo")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if content != "buy milk" {
		t.Errorf("expected 'buy milk', got %q", content)
	}

	// Unknown note and foreign scheme both surface as not_found:
	// the resource simply does not exist on this server.
	for _, uri := range []string{"note://missing", "file://todo"} {
		_, err := s.Resolve(uri)
		if !errortypes.IsNotFound(err) {
			t.Errorf("Resolve(%q): expected not_found, got %v", uri, err)
		}
	}
}

func TestNoteURI(t *testing.T) {
	n := Note{Name: "todo", Content: "x"}
	if n.URI() != "note://todo" {
		t.Errorf("expected note://todo, got %s", n.URI())
	}
}
