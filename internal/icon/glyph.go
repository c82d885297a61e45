package icon

import (
	"os"
	"strings"

	"github.com/atomicstack/tasktray-quicklaunch/internal/target"
)

// Glyph is a terminal stand-in for a shell icon.
type Glyph struct {
	NerdFont string
	Fallback string
}

var (
	FileGlyph    = Glyph{NerdFont: "\uf15b", Fallback: "▪"}
	FolderGlyph  = Glyph{NerdFont: "\uf07b", Fallback: "▸"}
	LinkGlyph    = Glyph{NerdFont: "\uf0ac", Fallback: "◎"}
	MissingGlyph = Glyph{NerdFont: "\uf128", Fallback: "?"}
	EditGlyph    = Glyph{NerdFont: "\uf044", Fallback: "✎"}
	TrayGlyph    = Glyph{NerdFont: "\uf0e7", Fallback: "⚡"}
)

var useNerdFonts *bool

func hasNerdFonts() bool {
	if useNerdFonts != nil {
		return *useNerdFonts
	}
	termProgram := strings.ToLower(os.Getenv("TERM_PROGRAM"))
	term := strings.ToLower(os.Getenv("TERM"))
	result := false
	for _, known := range []string{"alacritty", "kitty", "wezterm", "iterm", "ghostty"} {
		if strings.Contains(termProgram, known) || strings.Contains(term, known) {
			result = true
			break
		}
	}
	useNerdFonts = &result
	return result
}

// Get returns the Nerd Font glyph when the terminal likely has one.
func (g Glyph) Get() string {
	if hasNerdFonts() {
		return g.NerdFont
	}
	return g.Fallback
}

// SetNerdFonts overrides Nerd Font detection.
func SetNerdFonts(enabled bool) {
	useNerdFonts = &enabled
}

// GlyphFor picks the glyph for a classified target.
func GlyphFor(kind target.Kind) Glyph {
	switch kind {
	case target.KindFile:
		return FileGlyph
	case target.KindDir:
		return FolderGlyph
	case target.KindURL:
		return LinkGlyph
	default:
		return MissingGlyph
	}
}
