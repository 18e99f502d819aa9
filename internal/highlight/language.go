package highlight

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// overrides pins lexers for names Chroma's filename globs get wrong or miss.
var overrides = map[string]string{
	"dockerfile": "docker",
	"makefile":   "make",
	"gemfile":    "ruby",
	"rakefile":   "ruby",
	".conf":      "nginx",
	".h":         "c",
}

// DetectLanguage returns the Chroma lexer name for path, or "" when the file
// should be shown as plain text.
func DetectLanguage(path string) string {
	if path == "" {
		return ""
	}
	base := strings.ToLower(filepath.Base(path))
	if lang, ok := overrides[base]; ok {
		return lang
	}
	if lang, ok := overrides[filepath.Ext(base)]; ok {
		return lang
	}

	lex := lexers.Match(base)
	if lex == nil {
		return ""
	}
	name := lex.Config().Name
	if strings.EqualFold(name, "plaintext") || strings.EqualFold(name, "text only") {
		return ""
	}
	return strings.ToLower(name)
}
