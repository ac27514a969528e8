package audit

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogWritesEvents(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "audit.db")
	logger := NewLogger(dbPath)

	if err := logger.Log("alice", EventCreate, map[string]string{"id": "abc11111"}); err != nil {
		t.Fatalf("Log: %v", err)
	}
	if err := logger.Log("alice", EventScore, map[string]string{"id": "abc11111"}); err != nil {
		t.Fatalf("Log: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = db.Close()
	}()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM events").Scan(&count); err != nil {
		t.Fatalf("count events: %v", err)
	}
	if count != 2 {
		t.Errorf("events = %d, want 2", count)
	}

	var actor, eventType, payload string
	row := db.QueryRow("SELECT actor, type, payload_json FROM events ORDER BY id LIMIT 1")
	if err := row.Scan(&actor, &eventType, &payload); err != nil {
		t.Fatalf("read event: %v", err)
	}
	if actor != "alice" {
		t.Errorf("actor = %q, want alice", actor)
	}
	if eventType != EventCreate {
		t.Errorf("type = %q, want %q", eventType, EventCreate)
	}
	if !strings.Contains(payload, "abc11111") {
		t.Errorf("payload = %q, want decision id inside", payload)
	}
}

func TestLogEnvFallback(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "env-audit.db")
	t.Setenv("FARSIGHT_AUDIT_DB", dbPath)

	if err := NewLogger("").Log("bob", EventDecide, nil); err != nil {
		t.Fatalf("Log: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = db.Close()
	}()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM events").Scan(&count); err != nil {
		t.Fatalf("count events: %v", err)
	}
	if count != 1 {
		t.Errorf("events = %d, want 1", count)
	}
}
