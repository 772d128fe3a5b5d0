package db

import (
	"path/filepath"
	"testing"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "jobs.db"))
	if err != nil {
		t.Fatalf("NewDB returned error: %v", err)
	}
	return db
}

func TestRecordAndListSubmissions(t *testing.T) {
	db := newTestDB(t)

	first, err := db.RecordSubmission("instance startup", "vm1.example.com", "41")
	if err != nil {
		t.Fatalf("RecordSubmission returned error: %v", err)
	}
	if first.SubmissionID == "" {
		t.Error("submission id not assigned")
	}
	if first.Status != "submitted" {
		t.Errorf("status = %q, want submitted", first.Status)
	}

	if _, err := db.RecordSubmission("instance shutdown", "vm2.example.com", "42"); err != nil {
		t.Fatalf("RecordSubmission returned error: %v", err)
	}

	subs, err := db.GetSubmissions()
	if err != nil {
		t.Fatalf("GetSubmissions returned error: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("len(subs) = %d, want 2", len(subs))
	}
	if subs[0].JobID != "42" {
		t.Errorf("newest job id = %q, want 42", subs[0].JobID)
	}
}

func TestUpdateSubmissionStatus(t *testing.T) {
	db := newTestDB(t)

	if _, err := db.RecordSubmission("node migrate", "node1.example.com", "77"); err != nil {
		t.Fatalf("RecordSubmission returned error: %v", err)
	}
	if err := db.UpdateSubmissionStatus("77", "success"); err != nil {
		t.Fatalf("UpdateSubmissionStatus returned error: %v", err)
	}

	s, err := db.GetSubmissionByJobID("77")
	if err != nil {
		t.Fatalf("GetSubmissionByJobID returned error: %v", err)
	}
	if s.Status != "success" {
		t.Errorf("status = %q, want success", s.Status)
	}
	if s.FinishedAt.IsZero() {
		t.Error("finished_at not set")
	}
}

func TestGetSubmissionByJobIDMissing(t *testing.T) {
	db := newTestDB(t)

	if _, err := db.GetSubmissionByJobID("404"); err == nil {
		t.Fatal("expected error for unknown job id")
	}
}

func TestPurgeSubmissions(t *testing.T) {
	db := newTestDB(t)

	if _, err := db.RecordSubmission("cluster redistribute-config", "cluster", "9"); err != nil {
		t.Fatalf("RecordSubmission returned error: %v", err)
	}
	if err := db.PurgeSubmissions(); err != nil {
		t.Fatalf("PurgeSubmissions returned error: %v", err)
	}

	subs, err := db.GetSubmissions()
	if err != nil {
		t.Fatalf("GetSubmissions returned error: %v", err)
	}
	if len(subs) != 0 {
		t.Errorf("len(subs) = %d, want 0 after purge", len(subs))
	}
}
