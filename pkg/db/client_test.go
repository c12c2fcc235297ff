package db

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type scratchRow struct {
	ID   int
	Name string
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&scratchRow{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return conn
}

func TestWithTx_CommitsAndRollbacks(t *testing.T) {
	conn := newTestDB(t)
	client := &Client{conn: conn}

	ctx := context.Background()
	if err := client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&scratchRow{Name: "committed"}).Error
	}); err != nil {
		t.Fatalf("WithTx commit failed: %v", err)
	}

	var count int64
	if err := conn.Model(&scratchRow{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 record, got %d", count)
	}

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&scratchRow{Name: "rolled"}).Error; err != nil {
			return err
		}
		return errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected WithTx to return an error")
	}
	if err := conn.Model(&scratchRow{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed after rollback: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected rollback to leave 1 record, got %d", count)
	}
}

func TestRawScansRows(t *testing.T) {
	conn := newTestDB(t)
	client := &Client{conn: conn}

	if err := conn.Create(&scratchRow{Name: "first"}).Error; err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	var name string
	if err := client.Raw(context.Background(), "SELECT name FROM scratch_rows LIMIT 1").Scan(&name).Error; err != nil {
		t.Fatalf("raw scan failed: %v", err)
	}
	if name != "first" {
		t.Fatalf("expected first, got %q", name)
	}
}

func TestPing(t *testing.T) {
	conn := newTestDB(t)
	client := &Client{conn: conn}
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if IsUniqueViolation(nil, "") {
		t.Fatal("nil error should not match")
	}
	err := errors.New(`ERROR: duplicate key value violates unique constraint "store_inventory_pkey"`)
	if !IsUniqueViolation(err, "") {
		t.Fatal("expected generic duplicate match")
	}
	if !IsUniqueViolation(err, "store_inventory_pkey") {
		t.Fatal("expected constraint match")
	}
	if IsUniqueViolation(err, "categories_name_key") {
		t.Fatal("unexpected constraint match")
	}
}
