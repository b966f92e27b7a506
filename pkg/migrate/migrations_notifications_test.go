package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/campuskit/campusboard-backend/pkg/migrate"
)

func TestNotificationMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_notification_tables.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no notification migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS subscriptions",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_subscriptions_user_id",
		"CREATE TABLE IF NOT EXISTS push_endpoints",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_push_endpoints_user_endpoint",
		"CREATE TABLE IF NOT EXISTS notifications",
		"FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE",
		"FOREIGN KEY (announcement_id) REFERENCES announcements(id) ON DELETE CASCADE",
		"DROP TABLE IF EXISTS notifications",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMigrationDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir invalid: %v", err)
	}
}
