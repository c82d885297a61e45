package state

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// AppName prefixes the header comment written to every shortcut file.
const AppName = "TaskTrayQuickLaunch"

const fieldSeparator = "|"

// Header returns the comment line that opens a saved shortcut file.
func Header(version string) string {
	return fmt.Sprintf("# %s v%s", AppName, version)
}

// Parse reads shortcut lines from r. Comment and blank lines are ignored;
// lines with a field count other than two or three, or with an empty name or
// target, are counted as skipped. Pipes inside fields are not escapable.
func Parse(r io.Reader) ([]Entry, int, error) {
	var (
		entries []Entry
		skipped int
	)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entry, ok := parseLine(line)
		if !ok {
			skipped++
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, err
	}
	return entries, skipped, nil
}

func parseLine(line string) (Entry, bool) {
	parts := strings.Split(line, fieldSeparator)
	if len(parts) != 2 && len(parts) != 3 {
		return Entry{}, false
	}
	entry := Entry{
		Name:   strings.TrimSpace(parts[0]),
		Target: strings.TrimSpace(parts[1]),
	}
	if len(parts) == 3 {
		entry.Group = strings.TrimSpace(parts[2])
	}
	if entry.Name == "" || entry.Target == "" {
		return Entry{}, false
	}
	return entry, true
}

// Format writes the header followed by one line per entry. Placeholders are
// never written.
func Format(w io.Writer, version string, entries []Entry) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, Header(version)); err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsPlaceholder() {
			continue
		}
		if _, err := fmt.Fprintln(bw, strings.Join([]string{entry.Name, entry.Target, entry.Group}, fieldSeparator)); err != nil {
			return err
		}
	}
	return bw.Flush()
}
