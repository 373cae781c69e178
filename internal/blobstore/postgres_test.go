package blobstore

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func newPostgresStore(t *testing.T) (*Postgres, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPostgres(db), mock
}

func TestPostgresEnsureSchema(t *testing.T) {
	store, mock := newPostgresStore(t)
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS clinic_blobs`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestPostgresLoadMissing(t *testing.T) {
	store, mock := newPostgresStore(t)
	mock.ExpectQuery(`SELECT payload FROM clinic_blobs`).
		WithArgs("providers").
		WillReturnError(sql.ErrNoRows)

	_, err := store.Load(context.Background(), "providers")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPostgresLoad(t *testing.T) {
	store, mock := newPostgresStore(t)
	mock.ExpectQuery(`SELECT payload FROM clinic_blobs`).
		WithArgs("appointments").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow([]byte(`[]`)))

	got, err := store.Load(context.Background(), "appointments")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `[]` {
		t.Errorf("payload = %s", got)
	}
}

func TestPostgresSaveUpserts(t *testing.T) {
	store, mock := newPostgresStore(t)
	mock.ExpectExec(`INSERT INTO clinic_blobs`).
		WithArgs("patients", []byte(`[{"id":"1"}]`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := store.Save(context.Background(), "patients", []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatal(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
