package db

import (
	"strings"
	"testing"
)

func TestLoadMigrationsSortedByVersion(t *testing.T) {
	migrations, err := LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations: %v", err)
	}
	if len(migrations) < 2 {
		t.Fatalf("got %d migrations, want at least 2", len(migrations))
	}
	for i := 1; i < len(migrations); i++ {
		if migrations[i].Version <= migrations[i-1].Version {
			t.Errorf("migrations out of order: %d before %d",
				migrations[i-1].Version, migrations[i].Version)
		}
	}
}

func TestLoadMigrationsContent(t *testing.T) {
	migrations, err := LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations: %v", err)
	}
	if migrations[0].Version != 1 {
		t.Errorf("first version = %d, want 1", migrations[0].Version)
	}
	if !strings.Contains(migrations[0].SQL, "CREATE TABLE") {
		t.Error("first migration has no CREATE TABLE statement")
	}
	for _, m := range migrations {
		if m.SQL == "" {
			t.Errorf("migration %s is empty", m.Name)
		}
	}
}
