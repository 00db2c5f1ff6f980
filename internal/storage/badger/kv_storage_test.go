package badger

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/bobmcallan/blog-portal/internal/common"
	"github.com/bobmcallan/blog-portal/internal/config"
	"github.com/bobmcallan/blog-portal/internal/interfaces"
)

func setupTestDB(t *testing.T) (*BadgerDB, func()) {
	t.Helper()

	dir := t.TempDir()
	logger := common.NewSilentLogger()

	cfg := &config.BadgerConfig{Path: dir}
	db, err := NewBadgerDB(logger, cfg)
	if err != nil {
		t.Fatalf("failed to create test DB: %v", err)
	}

	cleanup := func() {
		db.Close()
	}

	return db, cleanup
}

func TestKVStorage_SetAndGet(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	logger := common.NewSilentLogger()
	kv := NewKVStorage(db, logger)
	ctx := context.Background()

	if err := kv.Set(ctx, "userInfo", `{"_id":"u1","token":"tok"}`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, err := kv.Get(ctx, "userInfo")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if val != `{"_id":"u1","token":"tok"}` {
		t.Errorf("unexpected value %s", val)
	}
}

func TestKVStorage_GetNotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	logger := common.NewSilentLogger()
	kv := NewKVStorage(db, logger)
	ctx := context.Background()

	_, err := kv.Get(ctx, "nonexistent-key")
	if !errors.Is(err, interfaces.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestKVStorage_Upsert(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	logger := common.NewSilentLogger()
	kv := NewKVStorage(db, logger)
	ctx := context.Background()

	if err := kv.Set(ctx, "key", "value1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// Overwrite
	if err := kv.Set(ctx, "key", "value2"); err != nil {
		t.Fatalf("Set (upsert) failed: %v", err)
	}

	val, err := kv.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if val != "value2" {
		t.Errorf("expected value2, got %s", val)
	}
}

func TestKVStorage_Delete(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	logger := common.NewSilentLogger()
	kv := NewKVStorage(db, logger)
	ctx := context.Background()

	if err := kv.Set(ctx, "key", "value"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if err := kv.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, err := kv.Get(ctx, "key")
	if err == nil {
		t.Error("expected error after delete, got nil")
	}
}

func TestKVStorage_DeleteNonexistent(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	logger := common.NewSilentLogger()
	kv := NewKVStorage(db, logger)
	ctx := context.Background()

	// Deleting a nonexistent key should not error
	if err := kv.Delete(ctx, "nonexistent"); err != nil {
		t.Errorf("Delete nonexistent key should not error: %v", err)
	}
}

func TestKVStorage_GetAll(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	logger := common.NewSilentLogger()
	kv := NewKVStorage(db, logger)
	ctx := context.Background()

	kv.Set(ctx, "key1", "val1")
	kv.Set(ctx, "key2", "val2")
	kv.Set(ctx, "key3", "val3")

	all, err := kv.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}

	if len(all) != 3 {
		t.Errorf("expected 3 entries, got %d", len(all))
	}
	if all["key1"] != "val1" {
		t.Errorf("expected key1=val1, got key1=%s", all["key1"])
	}
	if all["key2"] != "val2" {
		t.Errorf("expected key2=val2, got key2=%s", all["key2"])
	}
	if all["key3"] != "val3" {
		t.Errorf("expected key3=val3, got key3=%s", all["key3"])
	}
}

func TestKVStorage_GetAllEmpty(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	logger := common.NewSilentLogger()
	kv := NewKVStorage(db, logger)
	ctx := context.Background()

	all, err := kv.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll on empty store failed: %v", err)
	}

	if len(all) != 0 {
		t.Errorf("expected 0 entries, got %d", len(all))
	}
}

func TestManager_ReopenKeepsUserInfo(t *testing.T) {
	logger := common.NewSilentLogger()
	cfg := &config.BadgerConfig{Path: filepath.Join(t.TempDir(), "blog")}
	ctx := context.Background()

	m, err := NewManager(logger, cfg)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	if m.Backend() != "badger" {
		t.Errorf("expected backend badger, got %s", m.Backend())
	}
	if err := m.KeyValueStorage().Set(ctx, "userInfo", "persisted"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	m2, err := NewManager(logger, cfg)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer m2.Close()

	val, err := m2.KeyValueStorage().Get(ctx, "userInfo")
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if val != "persisted" {
		t.Errorf("expected persisted, got %s", val)
	}
}
