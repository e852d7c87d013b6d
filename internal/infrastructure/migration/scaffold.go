package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Scaffold describes a generated up/down migration pair
type Scaffold struct {
	Version  string
	UpPath   string
	DownPath string
}

// CreateMigration scaffolds an empty up/down migration pair under dir.
// The version prefix is the creation time in YYYYMMDDHHMMSS form, so
// lexical order matches creation order the way golang-migrate expects.
func CreateMigration(dir, name, description string) (*Scaffold, error) {
	slug := slugify(name)
	if slug == "" {
		return nil, fmt.Errorf("migration name %q produces an empty file name", name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create migrations directory: %w", err)
	}

	now := time.Now()
	version := now.Format("20060102150405")
	base := version + "_" + slug

	sc := &Scaffold{
		Version:  version,
		UpPath:   filepath.Join(dir, base+".up.sql"),
		DownPath: filepath.Join(dir, base+".down.sql"),
	}

	up := stubHeader(name, description, now) + "-- forward schema change goes here\n"
	if err := os.WriteFile(sc.UpPath, []byte(up), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write up migration: %w", err)
	}

	down := stubHeader(name, "reverts: "+orName(description, name), now) + "-- reverse schema change goes here\n"
	if err := os.WriteFile(sc.DownPath, []byte(down), 0o644); err != nil {
		// Don't leave a half-created pair behind
		_ = os.Remove(sc.UpPath)
		return nil, fmt.Errorf("failed to write down migration: %w", err)
	}

	return sc, nil
}

func stubHeader(name, description string, createdAt time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "-- %s\n", name)
	fmt.Fprintf(&b, "-- created %s\n", createdAt.Format(time.RFC3339))
	if description != "" {
		fmt.Fprintf(&b, "-- %s\n", description)
	}
	b.WriteString("\n")
	return b.String()
}

func orName(description, name string) string {
	if description != "" {
		return description
	}
	return name
}

// slugify lowercases a migration name and collapses separator runs to
// single underscores, dropping anything that is not filename-safe
func slugify(name string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case r == ' ', r == '-', r == '_':
			return ' '
		default:
			return -1
		}
	}, name)
	return strings.Join(strings.Fields(mapped), "_")
}

// ListMigrations returns the base names of the migration pairs in dir,
// sorted by version. A missing directory reads as no migrations.
func ListMigrations(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan migrations directory: %w", err)
	}

	names := make([]string, 0, len(matches))
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		names = append(names, strings.TrimSuffix(filepath.Base(match), ".up.sql"))
	}
	sort.Strings(names)
	return names, nil
}
