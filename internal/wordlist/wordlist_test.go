package wordlist

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadStopWords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stop.txt")
	if err := os.WriteFile(path, []byte("the\n\n  on  \n\ta\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	set, err := LoadStopWords(path)
	if err != nil {
		t.Fatalf("LoadStopWords failed: %v", err)
	}
	if len(set) != 3 {
		t.Fatalf("expected 3 stop words, got %d", len(set))
	}
	for _, word := range []string{"the", "on", "a"} {
		if _, ok := set[word]; !ok {
			t.Fatalf("expected %q in stop set", word)
		}
	}
}

func TestLoadStopWordsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stop.txt")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	set, err := LoadStopWords(path)
	if err != nil {
		t.Fatalf("expected empty stop list to load, got %v", err)
	}
	if len(set) != 0 {
		t.Fatalf("expected empty set, got %d entries", len(set))
	}
}

func TestLoadStopWordsMissing(t *testing.T) {
	_, err := LoadStopWords(filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist in chain, got %v", err)
	}
}

func TestLoadWordsRejectsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "targets.txt")
	if err := os.WriteFile(path, []byte("\n \n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadWords(path); err == nil {
		t.Fatalf("expected error for empty word list")
	}
}
