package store

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func openTestStore(t *testing.T, limit int) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(dbPath, limit)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecent_OrderAndDedup(t *testing.T) {
	s := openTestStore(t, 10)

	if got := s.Recent(); len(got) != 0 {
		t.Fatalf("expected empty list, got %v", got)
	}

	s.TouchRecent("/a.txt")
	s.TouchRecent("/b.txt")
	s.TouchRecent("/a.txt")

	want := []string{"/a.txt", "/b.txt"}
	if diff := cmp.Diff(want, s.Recent()); diff != "" {
		t.Errorf("Recent (-want +got):\n%s", diff)
	}
}

func TestRecent_Limit(t *testing.T) {
	s := openTestStore(t, 2)
	s.TouchRecent("/1")
	s.TouchRecent("/2")
	s.TouchRecent("/3")

	want := []string{"/3", "/2"}
	if diff := cmp.Diff(want, s.Recent()); diff != "" {
		t.Errorf("Recent (-want +got):\n%s", diff)
	}
}

func TestRecent_Forget(t *testing.T) {
	s := openTestStore(t, 10)
	s.TouchRecent("/keep")
	s.TouchRecent("/gone")
	s.ForgetRecent("/gone")

	if diff := cmp.Diff([]string{"/keep"}, s.Recent()); diff != "" {
		t.Errorf("Recent (-want +got):\n%s", diff)
	}
}

func TestSession_SaveLoad(t *testing.T) {
	s := openTestStore(t, 10)

	tabs := []SessionTab{
		{Path: "/x/one.txt", Row: 3, Col: 1},
		{Path: "/x/two.md", Row: 0, Col: 0, Active: true},
	}
	if err := s.SaveSession(tabs); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	got, err := s.LoadSession()
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if diff := cmp.Diff(tabs, got); diff != "" {
		t.Errorf("LoadSession (-want +got):\n%s", diff)
	}

	// Saving again replaces rather than appends.
	if err := s.SaveSession(tabs[:1]); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	got, _ = s.LoadSession()
	if len(got) != 1 {
		t.Errorf("expected 1 tab after overwrite, got %d", len(got))
	}

	if err := s.SaveSession(nil); err != nil {
		t.Fatalf("SaveSession(nil): %v", err)
	}
	got, _ = s.LoadSession()
	if len(got) != 0 {
		t.Errorf("expected empty session, got %v", got)
	}
}

func TestNilStore(t *testing.T) {
	var s *Store
	s.TouchRecent("/a")
	s.ForgetRecent("/a")
	if got := s.Recent(); got != nil {
		t.Errorf("nil Recent = %v", got)
	}
	if err := s.SaveSession([]SessionTab{{Path: "/a"}}); err != nil {
		t.Errorf("nil SaveSession: %v", err)
	}
	if tabs, err := s.LoadSession(); err != nil || tabs != nil {
		t.Errorf("nil LoadSession = %v, %v", tabs, err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}
