package filesearch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func makeTree(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, f)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("test content"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestList_Patterns(t *testing.T) {
	root := makeTree(t,
		"main.go",
		"notes.txt",
		"docs/design.md",
		"src/app.py",
		"src/engine.cpp",
		"bin/tool.exe",
	)
	s, err := NewSearcher(root)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		patterns []string
		want     []string
	}{
		{
			name:     "text file filter",
			patterns: []string{"*.txt", "*.py", "*.cpp", "*.md"},
			want:     []string{"docs/design.md", "notes.txt", "src/app.py", "src/engine.cpp"},
		},
		{
			name:     "go only",
			patterns: []string{"*.go"},
			want:     []string{"main.go"},
		},
		{
			name: "no patterns keeps everything",
			want: []string{"bin/tool.exe", "docs/design.md", "main.go", "notes.txt", "src/app.py", "src/engine.cpp"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.List(context.Background(), Options{RootDir: root, Patterns: tt.patterns})
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("List (-want +got):\n%s", diff)
			}
		})
	}
}

func TestList_Gitignore(t *testing.T) {
	root := makeTree(t,
		"main.go",
		"test.log",
		"node_modules/package.json",
		"dist/bundle.js",
		".git/config",
	)
	gitignore := "*.log\nnode_modules/\ndist/\n"
	if err := os.WriteFile(filepath.Join(root, ".gitignore"), []byte(gitignore), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := NewSearcher(root)
	if err != nil {
		t.Fatal(err)
	}
	got, err := s.List(context.Background(), Options{RootDir: root})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{".gitignore", "main.go"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("List (-want +got):\n%s", diff)
	}
}

func TestList_MaxResults(t *testing.T) {
	var files []string
	for i := 0; i < 20; i++ {
		files = append(files, filepath.Join("file", string(rune('a'+i))+".txt"))
	}
	root := makeTree(t, files...)

	s, err := NewSearcher(root)
	if err != nil {
		t.Fatal(err)
	}
	got, err := s.List(context.Background(), Options{RootDir: root, Patterns: []string{"*.txt"}, MaxResults: 5})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 5 {
		t.Errorf("expected 5 results (max), got %d", len(got))
	}
}

func TestList_Cancelled(t *testing.T) {
	root := makeTree(t, "a.txt", "b.txt")
	s, _ := NewSearcher(root)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.List(ctx, Options{RootDir: root}); err == nil {
		t.Fatal("expected context error")
	}
}

func TestRank(t *testing.T) {
	paths := []string{"docs/design.md", "notes.txt", "src/app.py"}

	if diff := cmp.Diff(paths, Rank("", paths, 0)); diff != "" {
		t.Errorf("empty query should keep order (-want +got):\n%s", diff)
	}

	got := Rank("app", paths, 0)
	if len(got) == 0 || got[0] != "src/app.py" {
		t.Errorf("Rank(app) = %v, want src/app.py first", got)
	}

	if got := Rank("zzz", paths, 0); len(got) != 0 {
		t.Errorf("Rank(zzz) = %v, want none", got)
	}

	if got := Rank("", paths, 2); len(got) != 2 {
		t.Errorf("limit not applied: %v", got)
	}
}
