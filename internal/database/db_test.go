package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "coindeck.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	if err := RunMigrations(db); err != nil {
		t.Fatal(err)
	}
	return db
}

func layoutCount(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM layouts`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	return n
}

func TestWithTxCommits(t *testing.T) {
	db := testDB(t)
	err := WithTx(db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(context.Background(),
			`INSERT INTO layouts(name, payload, updated_at) VALUES('a', '{}', ?)`, Now())
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	if n := layoutCount(t, db); n != 1 {
		t.Fatalf("count = %d, want 1", n)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db := testDB(t)
	boom := errors.New("boom")
	err := WithTx(db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(context.Background(),
			`INSERT INTO layouts(name, payload, updated_at) VALUES('a', '{}', ?)`, Now()); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if n := layoutCount(t, db); n != 0 {
		t.Fatalf("count = %d after rollback, want 0", n)
	}
}

func TestNowIsSecondPrecisionUTC(t *testing.T) {
	now := Now()
	if now.Nanosecond() != 0 {
		t.Fatalf("Now() carries sub-second precision: %v", now)
	}
	if now.Location().String() != "UTC" {
		t.Fatalf("Now() not UTC: %v", now.Location())
	}
}
