// Package highlight provides syntax highlighting via Chroma, decoupled from any
// specific TUI component.
package highlight

import (
	"fmt"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

var (
	cache   = make(map[string]string)
	cacheMu sync.RWMutex
)

const maxCacheEntries = 4000

// Line highlights a single line, memoizing the result process-wide.
func Line(text, language, theme, bgHex string) string {
	key := language + "\x00" + theme + "\x00" + bgHex + "\x00" + text
	cacheMu.RLock()
	if v, ok := cache[key]; ok {
		cacheMu.RUnlock()
		return v
	}
	cacheMu.RUnlock()

	result := Highlight(text, language, theme, bgHex)

	cacheMu.Lock()
	if len(cache) > maxCacheEntries {
		cache = make(map[string]string)
	}
	cache[key] = result
	cacheMu.Unlock()
	return result
}

// Highlight returns an ANSI-highlighted version of text using the given
// Chroma language and theme. bgHex ("#rrggbb") is injected after every ANSI
// reset so the background color is never lost.
func Highlight(text, language, theme, bgHex string) string {
	lex := lexers.Get(language)
	if lex == nil {
		return text
	}
	lex = chroma.Coalesce(lex)
	sty := styles.Get(theme)
	fmtr := formatters.Get("terminal16m")
	if fmtr == nil {
		fmtr = formatters.Fallback
	}
	it, err := lex.Tokenise(nil, text)
	if err != nil {
		return text
	}
	var buf strings.Builder
	if err := fmtr.Format(&buf, sty, it); err != nil {
		return text
	}
	raw := strings.TrimRight(buf.String(), "\n")
	if !strings.Contains(text, "\n") {
		// Lexers append a newline token that can land inside trailing SGRs.
		raw = strings.ReplaceAll(raw, "\n", "")
	}

	// terminal16m leaves bg unset on tokens inheriting Background, and each
	// \x1b[0m clears it, so the bg is re-applied after every reset.
	bgSeq := BgSeq(bgHex)
	return bgSeq + strings.ReplaceAll(raw, "\x1b[0m", "\x1b[0m"+bgSeq)
}

// BgSeq converts "#rrggbb" to an ANSI 24-bit background escape sequence.
func BgSeq(hex string) string {
	if len(hex) != 7 || hex[0] != '#' {
		return ""
	}
	r, g, b := hexToRGB(hex)
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm", r, g, b)
}

func hexToRGB(hex string) (int, int, int) {
	return hexByte(hex[1], hex[2]), hexByte(hex[3], hex[4]), hexByte(hex[5], hex[6])
}

func hexByte(hi, lo byte) int {
	return hexNibble(hi)<<4 | hexNibble(lo)
}

func hexNibble(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return 0
}

// Palette holds UI chrome colors derived deterministically from a Chroma theme.
type Palette struct {
	Bg          string // Theme background
	Fg          string // Theme foreground (primary text)
	Gutter      string // 6% bg→fg, line number column
	CurrentLine string // 12% bg→fg, cursor row
	Border      string // 18% bg→fg, menu and picker borders
	Dim         string // 35% bg→fg, line numbers, hints
	Muted       string // 55% bg→fg, inactive tab titles
	Accent      string // Most saturated token color
	Error       string // From chroma Error token, lerped 45% toward bg
}

// ThemePalette derives a full UI color palette from a Chroma theme name.
// Chroma resolves unknown names to its fallback style.
func ThemePalette(theme string) Palette {
	sty := styles.Get(theme)
	if sty == nil {
		return defaultPalette()
	}
	entry := sty.Get(chroma.Background)
	bg := "#000000"
	fg := "#c8c8c8"
	if entry.Background.IsSet() {
		bg = entry.Background.String()
	}
	if entry.Colour.IsSet() {
		fg = entry.Colour.String()
	}

	return Palette{
		Bg:          bg,
		Fg:          fg,
		Gutter:      lerpHex(bg, fg, 0.06),
		CurrentLine: lerpHex(bg, fg, 0.12),
		Border:      lerpHex(bg, fg, 0.18),
		Dim:         lerpHex(bg, fg, 0.35),
		Muted:       lerpHex(bg, fg, 0.55),
		Accent:      pickAccent(sty, fg),
		Error:       pickError(sty, bg, fg),
	}
}

func defaultPalette() Palette {
	return Palette{
		Bg: "#000000", Fg: "#c8c8c8",
		Gutter: "#0c0c0c", CurrentLine: "#181818",
		Border: "#242424", Dim: "#464646", Muted: "#6e6e6e",
		Accent: "#00dfff", Error: "#932e2e",
	}
}

// ThemeBg extracts the background hex color from a Chroma style.
// Returns "" if no background is set.
func ThemeBg(theme string) string {
	sty := styles.Get(theme)
	if sty == nil {
		return ""
	}
	bg := sty.Get(chroma.Background).Background
	if !bg.IsSet() {
		return ""
	}
	return bg.String()
}

// pickAccent returns the most saturated foreground color across all tokens.
func pickAccent(sty *chroma.Style, fallback string) string {
	best := fallback
	bestSat := 0.0
	for _, tt := range sty.Types() {
		e := sty.Get(tt)
		if !e.Colour.IsSet() {
			continue
		}
		hex := e.Colour.String()
		r, g, b := hexToRGB(hex)
		hi, lo := max(r, g, b), min(r, g, b)
		if hi == 0 {
			continue
		}
		if sat := float64(hi-lo) / float64(hi); sat > bestSat {
			bestSat = sat
			best = hex
		}
	}
	return best
}

func pickError(sty *chroma.Style, bg, fg string) string {
	e := sty.Get(chroma.Error)
	if !e.Colour.IsSet() {
		return lerpHex(bg, fg, 0.45)
	}
	return lerpHex(bg, e.Colour.String(), 0.45)
}

// lerpHex linearly interpolates between two hex colors at fraction t.
func lerpHex(a, b string, t float64) string {
	if len(a) != 7 || len(b) != 7 {
		return a
	}
	ar, ag, ab := hexToRGB(a)
	br, bg, bb := hexToRGB(b)
	mix := func(x, y int) int {
		v := float64(x) + float64(y-x)*t
		return max(0, min(255, int(v+0.5)))
	}
	return fmt.Sprintf("#%02x%02x%02x", mix(ar, br), mix(ag, bg), mix(ab, bb))
}
