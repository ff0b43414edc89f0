package services

import (
	"testing"

	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/models"
	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/testutil"
)

func TestAuditLog(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAuditService(db)

	svc.Log("admin-1", "TRANSFER_TO_SAVINGS", "budget", "budget-1", "127.0.0.1", map[string]interface{}{"amount": "150.00"})

	var entry models.AuditLog
	if err := db.First(&entry).Error; err != nil {
		t.Fatalf("expected an audit entry: %v", err)
	}
	if entry.UserID != "admin-1" || entry.Action != "TRANSFER_TO_SAVINGS" || entry.ResourceID != "budget-1" {
		t.Errorf("unexpected audit entry %+v", entry)
	}
	if entry.Changes != `{"amount":"150.00"}` {
		t.Errorf("unexpected changes %q", entry.Changes)
	}
}

func TestAuditLog_NilChanges(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAuditService(db)

	svc.Log("admin-1", "DELETE_CATEGORY", "category", "cat-1", "", nil)

	var entry models.AuditLog
	if err := db.First(&entry).Error; err != nil {
		t.Fatalf("expected an audit entry: %v", err)
	}
	if entry.Changes != "" {
		t.Errorf("expected empty changes, got %q", entry.Changes)
	}
}

func TestEncodeChanges(t *testing.T) {
	if got := encodeChanges("X", map[string]interface{}{}); got != "" {
		t.Errorf("expected empty string for empty changes, got %q", got)
	}
	if got := encodeChanges("X", map[string]interface{}{"bad": make(chan int)}); got != "{}" {
		t.Errorf("expected {} for unserialisable changes, got %q", got)
	}
}
