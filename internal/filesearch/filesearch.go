// Package filesearch lists openable files under a directory with gitignore
// support and ranks them against a fuzzy query.
package filesearch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sahilm/fuzzy"
)

// Options configures a listing.
type Options struct {
	RootDir    string   // Directory to walk (defaults to current dir)
	Patterns   []string // Base-name globs; empty keeps every file
	MaxResults int      // Maximum results to return (0 = unlimited)
}

// Searcher lists files below a root, skipping .git and ignored paths.
type Searcher struct {
	ignore *Ignore
}

// NewSearcher creates a searcher that honors rootDir/.gitignore.
func NewSearcher(rootDir string) (*Searcher, error) {
	ig, err := LoadIgnore(filepath.Join(rootDir, ".gitignore"))
	if err != nil {
		// Non-fatal: just won't filter gitignored files
		ig = &Ignore{}
	}
	return &Searcher{ignore: ig}, nil
}

const maxListFileSize = 10 * 1024 * 1024 // 10 MB

// List walks opts.RootDir and returns slash-separated paths relative to it,
// in walk (lexical) order.
func (s *Searcher) List(ctx context.Context, opts Options) ([]string, error) {
	if opts.RootDir == "" {
		var err error
		opts.RootDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	var out []string
	err := filepath.WalkDir(opts.RootDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(opts.RootDir, path)
		if err != nil || rel == "." {
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" || s.ignore.Ignored(rel, true) {
				return filepath.SkipDir
			}
			return nil
		}
		if s.ignore.Ignored(rel, false) || !matchesAny(opts.Patterns, d.Name()) {
			return nil
		}
		if info, err := d.Info(); err != nil || info.Size() > maxListFileSize {
			return nil
		}
		out = append(out, filepath.ToSlash(rel))
		if opts.MaxResults > 0 && len(out) >= opts.MaxResults {
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil && !errors.Is(err, filepath.SkipAll) {
		return nil, err
	}
	return out, nil
}

func matchesAny(patterns []string, name string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}

// Rank orders paths by fuzzy score against query, best first. An empty
// query returns paths unchanged. At most limit results are kept (0 = all).
func Rank(query string, paths []string, limit int) []string {
	var out []string
	if query == "" {
		out = paths
	} else {
		for _, m := range fuzzy.Find(query, paths) {
			out = append(out, m.Str)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
