package filesearch

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Ignore holds .gitignore rules. Later rules win, so a negated rule can
// re-include a path an earlier rule excluded.
type Ignore struct {
	rules []ignoreRule
}

type ignoreRule struct {
	re      *regexp.Regexp
	negate  bool
	dirOnly bool
}

// LoadIgnore parses the .gitignore at path. A missing file yields an empty
// rule set.
func LoadIgnore(path string) (*Ignore, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Ignore{}, nil
		}
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ParseIgnore(lines), nil
}

// ParseIgnore builds rules from gitignore lines. Blank lines, comments and
// patterns that do not compile are dropped.
func ParseIgnore(lines []string) *Ignore {
	ig := &Ignore{}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if r, ok := compileRule(line); ok {
			ig.rules = append(ig.rules, r)
		}
	}
	return ig
}

// Ignored reports whether rel (slash or OS separated, relative to the
// repository root) is excluded.
func (ig *Ignore) Ignored(rel string, isDir bool) bool {
	if ig == nil || len(ig.rules) == 0 {
		return false
	}
	rel = filepath.ToSlash(rel)
	parent := filepath.ToSlash(filepath.Dir(rel))

	ignored := false
	for _, r := range ig.rules {
		hit := false
		switch {
		case r.dirOnly && isDir:
			hit = r.re.MatchString(rel)
		case r.dirOnly:
			hit = parent != "." && r.re.MatchString(parent)
		default:
			hit = r.re.MatchString(rel)
		}
		if hit {
			ignored = !r.negate
		}
	}
	return ignored
}

func compileRule(pattern string) (ignoreRule, bool) {
	var r ignoreRule
	if strings.HasPrefix(pattern, "!") {
		r.negate = true
		pattern = pattern[1:]
	}
	if strings.HasSuffix(pattern, "/") {
		r.dirOnly = true
		pattern = strings.TrimSuffix(pattern, "/")
	}
	// A slash anywhere but the end ties the pattern to the root.
	anchored := strings.Contains(pattern, "/") && !strings.HasPrefix(pattern, "**/")
	pattern = strings.TrimPrefix(pattern, "/")
	if pattern == "" {
		return r, false
	}

	var b strings.Builder
	if anchored {
		b.WriteString("^")
	} else {
		b.WriteString("(?:^|/)")
	}
	b.WriteString(globToRegexp(pattern))
	b.WriteString("(?:/.*)?$")

	re, err := regexp.Compile(b.String())
	if err != nil {
		return r, false
	}
	r.re = re
	return r, true
}

// globToRegexp translates gitignore glob syntax. "**/" spans any number of
// directories, "*" and "?" stay within one path segment.
func globToRegexp(glob string) string {
	var b strings.Builder
	for i := 0; i < len(glob); i++ {
		switch c := glob[i]; c {
		case '*':
			if strings.HasPrefix(glob[i:], "**/") {
				b.WriteString("(?:.*/)?")
				i += 2
			} else if strings.HasPrefix(glob[i:], "**") {
				b.WriteString(".*")
				i++
			} else {
				b.WriteString("[^/]*")
			}
		case '?':
			b.WriteString("[^/]")
		case '[':
			end := strings.IndexByte(glob[i+1:], ']')
			if end < 0 {
				b.WriteString(`\[`)
				continue
			}
			class := glob[i+1 : i+1+end]
			if strings.HasPrefix(class, "!") {
				class = "^" + class[1:]
			}
			b.WriteString("[" + class + "]")
			i += end + 1
		case '\\':
			if i+1 < len(glob) {
				i++
				b.WriteString(regexp.QuoteMeta(string(glob[i])))
			}
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	return b.String()
}
