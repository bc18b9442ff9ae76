// Package dictionary builds the immutable root lookup used by the
// validator and the generator. Roots are stored normalized; lookups
// normalize their input, so callers may pass letters in any written
// form.
package dictionary

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"shorashim.app/game/internal/hebrew"
)

//go:embed roots.json
var defaultRoots []byte

// ErrNoRoots is returned when a dictionary source yields no usable
// three-letter roots.
var ErrNoRoots = errors.New("dictionary contains no valid roots")

// Record is a single dictionary source entry.
type Record struct {
	Root    string `json:"root"`
	Meaning string `json:"meaning"`
}

// Dictionary is a read-only set of normalized three-letter roots.
// Build one with [New], [Load], [LoadFile] or [Default] and share it
// by reference; it is safe for concurrent readers.
type Dictionary struct {
	roots    []string
	meanings map[string]string
	prefixes map[string]struct{}
	alphabet []rune
	freq     map[rune]int
}

// New builds a dictionary from source records. Entries that do not
// normalize to exactly three letters are dropped. When two records
// normalize to the same root the later meaning overwrites the earlier
// one; the root itself is only counted once.
func New(records []Record) (*Dictionary, error) {
	d := &Dictionary{
		meanings: make(map[string]string, len(records)),
		prefixes: make(map[string]struct{}, 2*len(records)),
		freq:     make(map[rune]int),
	}

	for _, rec := range records {
		root := hebrew.Normalize(rec.Root)
		letters := []rune(root)
		if len(letters) != 3 {
			continue
		}

		if _, seen := d.meanings[root]; seen {
			d.meanings[root] = rec.Meaning
			continue
		}

		d.roots = append(d.roots, root)
		d.meanings[root] = rec.Meaning
		d.prefixes[string(letters[:1])] = struct{}{}
		d.prefixes[string(letters[:2])] = struct{}{}

		for _, letter := range letters {
			if d.freq[letter] == 0 {
				d.alphabet = append(d.alphabet, letter)
			}
			d.freq[letter]++
		}
	}

	if len(d.roots) == 0 {
		return nil, ErrNoRoots
	}

	return d, nil
}

// Load reads a JSON array of records.
func Load(r io.Reader) (*Dictionary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read dictionary: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unable to parse dictionary: %w", err)
	}

	return New(records)
}

// LoadFile reads a JSON dictionary from disk.
func LoadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open dictionary %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Default builds the dictionary bundled with the binary.
func Default() (*Dictionary, error) {
	var records []Record
	if err := json.Unmarshal(defaultRoots, &records); err != nil {
		return nil, fmt.Errorf("unable to parse bundled dictionary: %w", err)
	}
	return New(records)
}

// Len returns the number of distinct normalized roots.
func (d *Dictionary) Len() int {
	return len(d.roots)
}

// Roots returns the normalized roots in source order. The returned
// slice is shared; callers must not modify it.
func (d *Dictionary) Roots() []string {
	return d.roots
}

// IsValidRoot reports whether s normalizes to a dictionary root.
func (d *Dictionary) IsValidRoot(s string) bool {
	_, ok := d.meanings[hebrew.Normalize(s)]
	return ok
}

// Meaning returns the meaning recorded for a root, if any. When two
// source records normalize identically the later record's meaning is
// the one returned.
func (d *Dictionary) Meaning(s string) (string, bool) {
	m, ok := d.meanings[hebrew.Normalize(s)]
	return m, ok
}

// HasPrefix reports whether at least one root starts with s.
func (d *Dictionary) HasPrefix(s string) bool {
	p := hebrew.Normalize(s)
	switch len([]rune(p)) {
	case 0:
		return true
	case 1, 2:
		_, ok := d.prefixes[p]
		return ok
	case 3:
		return d.IsValidRoot(p)
	default:
		return false
	}
}

// Letters returns every letter used by the dictionary, ordered by
// first appearance across the roots. The returned slice is shared;
// callers must not modify it.
func (d *Dictionary) Letters() []rune {
	return d.alphabet
}

// LetterFrequency returns how many times a letter occurs across all
// roots, zero for letters the dictionary never uses.
func (d *Dictionary) LetterFrequency(r rune) int {
	return d.freq[hebrew.NormalizeLetter(r)]
}

// RandomRoot picks a uniformly random root.
func (d *Dictionary) RandomRoot(rnd *rand.Rand) string {
	return d.roots[rnd.IntN(len(d.roots))]
}
