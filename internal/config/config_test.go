package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/monitoradlo/monitoradlo-go/internal/config"
	"github.com/monitoradlo/monitoradlo-go/internal/models"
)

func sampleConfig() *models.Configuration {
	return &models.Configuration{
		Preamble: "# managed by monitoradlo\n",
		Profiles: []models.Profile{
			{
				Name: "docked",
				Outputs: []models.OutputEntry{
					{Criteria: "Dell Inc. DELL U2720Q ABC", Enabled: models.Bool(true), Mode: "3840x2160@60Hz", Scale: models.Float(1.5), Position: &models.Position{X: 0, Y: 0}},
					{Criteria: "eDP-1", Enabled: models.Bool(false)},
				},
			},
		},
	}
}

func TestMemStoreRoundTrip(t *testing.T) {
	s := config.NewMemStore(nil)
	cfg, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Profiles == nil || len(cfg.Profiles) != 0 {
		t.Fatalf("expected empty non-nil profiles, got %#v", cfg.Profiles)
	}

	want := sampleConfig()
	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	want.Profiles[0].Name = "mutated after save"

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Profiles[0].Name != "docked" {
		t.Errorf("store aliases saved config: name = %q", got.Profiles[0].Name)
	}
	if s.Saves() != 1 {
		t.Errorf("Saves = %d, want 1", s.Saves())
	}
	if s.Path() != ":memory:" {
		t.Errorf("Path = %q", s.Path())
	}
}

func TestMemStoreErr(t *testing.T) {
	s := config.NewMemStore(sampleConfig())
	s.Err = errors.New("disk on fire")
	if _, err := s.Load(); err == nil {
		t.Error("Load should fail")
	}
	if err := s.Save(sampleConfig()); err == nil {
		t.Error("Save should fail")
	}
	if s.Saves() != 0 {
		t.Errorf("Saves = %d, want 0", s.Saves())
	}
}

func TestKanshiStoreMissingFile(t *testing.T) {
	dir := t.TempDir()
	s := config.NewKanshiStore(filepath.Join(dir, "kanshi", "config"), "")
	cfg, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Profiles) != 0 || cfg.Preamble != "" {
		t.Errorf("expected empty config, got %#v", cfg)
	}
}

func TestKanshiStoreSaveLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kanshi", "config")
	s := config.NewKanshiStore(path, filepath.Join(dir, "backups"))

	want := sampleConfig()
	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %#v\nwant %#v", got, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `profile "docked" {`) {
		t.Errorf("unexpected file contents:\n%s", data)
	}
}

func TestKanshiStoreParseError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")
	if err := os.WriteFile(path, []byte("profile \"broken\" {\n  output eDP-1 scale nope\n"), 0644); err != nil {
		t.Fatal(err)
	}
	s := config.NewKanshiStore(path, "")
	if _, err := s.Load(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestKanshiStoreBackups(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")
	backups := filepath.Join(dir, "backups")
	s := config.NewKanshiStore(path, backups)

	// First save has nothing to back up.
	if err := s.Save(sampleConfig()); err != nil {
		t.Fatal(err)
	}
	files, err := s.Backups()
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 0 {
		t.Fatalf("expected no backups yet, got %v", files)
	}

	before, _ := os.ReadFile(path)
	next := sampleConfig()
	next.Profiles[0].Name = "undocked"
	if err := s.Save(next); err != nil {
		t.Fatal(err)
	}
	files, err = s.Backups()
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 backup, got %v", files)
	}
	saved, _ := os.ReadFile(files[0])
	if string(saved) != string(before) {
		t.Errorf("backup does not hold previous contents:\n%s", saved)
	}
}

func TestKanshiStoreBackupPruning(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")
	s := config.NewKanshiStore(path, filepath.Join(dir, "backups"))
	for i := 0; i < 40; i++ {
		if err := s.Save(sampleConfig()); err != nil {
			t.Fatal(err)
		}
	}
	files, err := s.Backups()
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 30 {
		t.Errorf("expected 30 backups after pruning, got %d", len(files))
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")
	if err := os.WriteFile(path, []byte("# one\n"), 0644); err != nil {
		t.Fatal(err)
	}

	changed := make(chan struct{}, 4)
	w, err := config.NewWatcher(path, func() { changed <- struct{}{} })
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	// Unrelated files in the same directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-changed:
		t.Fatal("callback fired for unrelated file")
	case <-time.After(500 * time.Millisecond):
	}

	if err := os.WriteFile(path, []byte("# two\n"), 0644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("callback not fired after write")
	}
}

func TestAcquireLock(t *testing.T) {
	dir := t.TempDir()
	l, err := config.AcquireLock(dir)
	if err != nil {
		t.Fatalf("AcquireLock: %v", err)
	}
	if _, err := config.AcquireLock(dir); !errors.Is(err, config.ErrLocked) {
		t.Errorf("second AcquireLock = %v, want ErrLocked", err)
	}
	if err := l.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	l2, err := config.AcquireLock(dir)
	if err != nil {
		t.Fatalf("AcquireLock after release: %v", err)
	}
	l2.Release()
}

func TestKanshiStoreRejectsUnquotableNames(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")
	store := config.NewKanshiStore(path, filepath.Join(dir, "backups"))

	if err := store.Save(sampleConfig()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	bad := sampleConfig()
	bad.Profiles[0].Name = `my "work" desk`
	if err := store.Save(bad); err == nil {
		t.Fatal("expected Save to reject a profile name with a double quote")
	}

	cfg, err := store.Load()
	if err != nil {
		t.Fatalf("Load after rejected save: %v", err)
	}
	if cfg.Profiles[0].Name != "docked" {
		t.Errorf("profile name = %q, want the previously saved file intact", cfg.Profiles[0].Name)
	}
}
