package state

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atomicstack/tasktray-quicklaunch/internal/logging"
	"github.com/atomicstack/tasktray-quicklaunch/internal/logging/events"
)

// ErrPlaceholderExists is returned when a second in-progress entry is requested.
var ErrPlaceholderExists = errors.New("an entry is already being edited")

// Entry is one shortcut. An entry with an empty Target is the in-progress
// placeholder that is never persisted.
type Entry struct {
	Name   string
	Target string
	Group  string
	Icon   []byte
}

// IsPlaceholder reports whether the entry is still awaiting its target.
func (e Entry) IsPlaceholder() bool {
	return e.Target == ""
}

// IconResolver supplies the display icon for a target; nil means absent.
type IconResolver interface {
	Resolve(target string) []byte
}

// Store owns the ordered shortcut list and its backing file. It is not safe
// for concurrent use; a single event loop mutates it.
type Store struct {
	path    string
	version string
	icons   IconResolver
	entries []Entry
}

// NewStore prepares an empty store bound to path. icons may be nil.
func NewStore(path, version string, icons IconResolver) *Store {
	return &Store{path: path, version: version, icons: icons}
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Version returns the version written into the header line.
func (s *Store) Version() string {
	return s.version
}

// Load replaces the in-memory list with the file contents. Any read failure
// leaves the list empty and rewrites a fresh file; the error is returned for
// tracing only.
func (s *Store) Load() error {
	entries, skipped, err := s.readFile()
	s.entries = nil
	if err != nil {
		logging.Error(fmt.Errorf("load shortcuts %s: %w", s.path, err))
		events.Store.LoadFailed(s.path, err)
		_ = s.Save()
		return err
	}
	for _, entry := range entries {
		s.Add(entry.Name, entry.Target, entry.Group)
	}
	events.Store.Load(s.path, len(s.entries), skipped)
	return nil
}

// Reload re-reads the backing file and adopts it when its entries differ
// from the persisted part of the in-memory list. Icons for unchanged targets
// are reused. Failures leave the list untouched.
func (s *Store) Reload() (bool, error) {
	entries, _, err := s.readFile()
	if err != nil {
		return false, err
	}
	entries = dedupe(entries)
	if sameEntries(s.Persisted(), entries) {
		events.Store.Reload(s.path, false)
		return false, nil
	}
	known := make(map[string][]byte, len(s.entries))
	for _, entry := range s.entries {
		known[strings.ToLower(entry.Target)] = entry.Icon
	}
	next := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if icon, ok := known[strings.ToLower(entry.Target)]; ok {
			entry.Icon = icon
		} else {
			entry.Icon = s.resolveIcon(entry.Target)
		}
		next = append(next, entry)
	}
	if idx := s.PlaceholderIndex(); idx >= 0 {
		next = append(next, s.entries[idx])
	}
	s.entries = next
	events.Store.Reload(s.path, true)
	return true, nil
}

func (s *Store) readFile() ([]Entry, int, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, 0, err
	}
	return Parse(bytes.NewReader(data))
}

// Save writes the persisted entries to the backing file, replacing it. A
// failure is logged and the in-memory list stays authoritative until the next
// save.
func (s *Store) Save() error {
	var buf bytes.Buffer
	persisted := s.Persisted()
	if err := Format(&buf, s.version, persisted); err != nil {
		return s.saveFailed(err)
	}
	if err := writeFileAtomic(s.path, buf.Bytes()); err != nil {
		return s.saveFailed(err)
	}
	events.Store.Save(s.path, len(persisted))
	return nil
}

func (s *Store) saveFailed(err error) error {
	wrapped := fmt.Errorf("save shortcuts %s: %w", s.path, err)
	logging.Error(wrapped)
	events.Store.SaveFailed(s.path, err)
	return wrapped
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return os.WriteFile(path, data, 0o644)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return os.WriteFile(path, data, 0o644)
	}
	return nil
}

// Entries returns a copy of the full list, placeholder included.
func (s *Store) Entries() []Entry {
	return cloneEntries(s.entries)
}

// Persisted returns a copy of the list without the placeholder.
func (s *Store) Persisted() []Entry {
	out := make([]Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		if entry.IsPlaceholder() {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// Len reports the number of entries, placeholder included.
func (s *Store) Len() int {
	return len(s.entries)
}

// At returns the entry at index i.
func (s *Store) At(i int) (Entry, bool) {
	if i < 0 || i >= len(s.entries) {
		return Entry{}, false
	}
	return s.entries[i], true
}

// Add appends a new entry unless target is already present. The icon is
// resolved once, at insertion.
func (s *Store) Add(name, target, group string) bool {
	target = strings.TrimSpace(target)
	if target == "" {
		return false
	}
	if _, ok := s.IndexOf(target); ok {
		events.Store.Add(name, target, false)
		return false
	}
	s.entries = append(s.entries, Entry{
		Name:   name,
		Target: target,
		Group:  group,
		Icon:   s.resolveIcon(target),
	})
	events.Store.Add(name, target, true)
	return true
}

func (s *Store) resolveIcon(target string) []byte {
	if s.icons == nil {
		return nil
	}
	return s.icons.Resolve(target)
}

// Remove deletes the first entry whose target matches case-insensitively.
func (s *Store) Remove(target string) bool {
	idx, ok := s.IndexOf(target)
	if !ok {
		events.Store.Remove(target, false)
		return false
	}
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	events.Store.Remove(target, true)
	return true
}

// RemoveAt deletes the entry at index i.
func (s *Store) RemoveAt(i int) bool {
	if i < 0 || i >= len(s.entries) {
		return false
	}
	if s.entries[i].IsPlaceholder() {
		return s.RemovePlaceholder()
	}
	return s.Remove(s.entries[i].Target)
}

// IndexOf returns the position of target, compared case-insensitively.
func (s *Store) IndexOf(target string) (int, bool) {
	target = strings.TrimSpace(target)
	if target == "" {
		return -1, false
	}
	for i, entry := range s.entries {
		if strings.EqualFold(entry.Target, target) {
			return i, true
		}
	}
	return -1, false
}

// MoveUp swaps entry i with its predecessor. Index 0 is a no-op.
func (s *Store) MoveUp(i int) bool {
	return s.swap(i, i-1)
}

// MoveDown swaps entry i with its successor. The last index is a no-op.
func (s *Store) MoveDown(i int) bool {
	return s.swap(i, i+1)
}

func (s *Store) swap(i, j int) bool {
	if i < 0 || j < 0 || i >= len(s.entries) || j >= len(s.entries) {
		return false
	}
	if s.entries[i].IsPlaceholder() || s.entries[j].IsPlaceholder() {
		return false
	}
	s.entries[i], s.entries[j] = s.entries[j], s.entries[i]
	events.Store.Move(i, j)
	return true
}

// Rename replaces the display name of a persisted entry.
func (s *Store) Rename(i int, name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || strings.Contains(name, fieldSeparator) {
		return false
	}
	if i < 0 || i >= len(s.entries) || s.entries[i].IsPlaceholder() {
		return false
	}
	s.entries[i].Name = name
	events.Store.Rename(i, name)
	return true
}

// AddPlaceholder appends the single in-progress entry with the given label.
func (s *Store) AddPlaceholder(label string) (int, error) {
	if idx := s.PlaceholderIndex(); idx >= 0 {
		return idx, ErrPlaceholderExists
	}
	s.entries = append(s.entries, Entry{Name: label})
	return len(s.entries) - 1, nil
}

// RemovePlaceholder drops the in-progress entry, if any.
func (s *Store) RemovePlaceholder() bool {
	idx := s.PlaceholderIndex()
	if idx < 0 {
		return false
	}
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	return true
}

// PlaceholderIndex returns the position of the in-progress entry or -1.
func (s *Store) PlaceholderIndex() int {
	for i, entry := range s.entries {
		if entry.IsPlaceholder() {
			return i
		}
	}
	return -1
}

func cloneEntries(entries []Entry) []Entry {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]Entry, len(entries))
	copy(dup, entries)
	return dup
}

func dedupe(entries []Entry) []Entry {
	seen := make(map[string]struct{}, len(entries))
	out := entries[:0:0]
	for _, entry := range entries {
		key := strings.ToLower(entry.Target)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, entry)
	}
	return out
}

func sameEntries(a, b []Entry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || a[i].Target != b[i].Target || a[i].Group != b[i].Group {
			return false
		}
	}
	return true
}
