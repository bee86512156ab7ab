// Package storagetest checks that a storage.Provider behaves like the rest.
package storagetest

import (
	"errors"
	"reflect"
	"testing"

	"github.com/julianstephens/lernplan/internal/storage"
)

// Run exercises an initialized provider returned by open. open is called once
// per subtest.
func Run(t *testing.T, open func(t *testing.T) storage.Provider) {
	t.Helper()

	t.Run("missing key", func(t *testing.T) {
		p := open(t)
		if _, err := p.Get("absent"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Get(absent) error = %v, want ErrNotFound", err)
		}
	})

	t.Run("set and get", func(t *testing.T) {
		p := open(t)
		if err := p.Set("germanLearningData", `{"weeks":[]}`); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		got, err := p.Get("germanLearningData")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got != `{"weeks":[]}` {
			t.Errorf("Get = %q", got)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		p := open(t)
		for _, v := range []string{"false", "true"} {
			if err := p.Set("darkMode", v); err != nil {
				t.Fatalf("Set(%q) failed: %v", v, err)
			}
		}
		if got, _ := p.Get("darkMode"); got != "true" {
			t.Errorf("Get after overwrite = %q, want true", got)
		}
	})

	t.Run("delete", func(t *testing.T) {
		p := open(t)
		if err := p.Set("k", "v"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if err := p.Delete("k"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := p.Get("k"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Get after delete error = %v, want ErrNotFound", err)
		}
		if err := p.Delete("k"); err != nil {
			t.Errorf("deleting a missing key returned %v", err)
		}
	})

	t.Run("keys sorted", func(t *testing.T) {
		p := open(t)
		for _, k := range []string{"b", "a", "c"} {
			if err := p.Set(k, k); err != nil {
				t.Fatalf("Set(%q) failed: %v", k, err)
			}
		}
		keys, err := p.Keys()
		if err != nil {
			t.Fatalf("Keys failed: %v", err)
		}
		if !reflect.DeepEqual(keys, []string{"a", "b", "c"}) {
			t.Errorf("Keys = %v", keys)
		}
	})

	t.Run("unicode values", func(t *testing.T) {
		p := open(t)
		value := "Schöne Grüße, Straße"
		if err := p.Set("notes", value); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if got, _ := p.Get("notes"); got != value {
			t.Errorf("Get = %q, want %q", got, value)
		}
	})
}
