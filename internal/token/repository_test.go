package token

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockRepo(t *testing.T) (*Repo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	r := NewRepo(db)
	r.clock = func() time.Time { return time.Unix(1700000000, 0).UTC() }
	return r, mock
}

func TestRepoRotate_RevokesThenInsertsInOneTx(t *testing.T) {
	r, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE auth_tokens`).
		WithArgs("a@x.com").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO auth_tokens`).
		WithArgs(sqlmock.AnyArg(), "a@x.com", "new-token", time.Unix(1700000000, 0).UTC()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := r.Rotate(context.Background(), "a@x.com", "new-token"); err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestRepoRotate_RollsBackWhenInsertFails(t *testing.T) {
	r, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE auth_tokens`).
		WithArgs("a@x.com").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO auth_tokens`).
		WillReturnError(errors.New("insert failed"))
	mock.ExpectRollback()

	if err := r.Rotate(context.Background(), "a@x.com", "new-token"); err == nil {
		t.Fatalf("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestRepoFindByToken(t *testing.T) {
	r, mock := newMockRepo(t)
	created := time.Unix(1700000000, 0).UTC()

	cols := []string{"id", "identity", "token", "expired", "revoked", "created_at"}
	mock.ExpectQuery(`FROM auth_tokens`).
		WithArgs("tok").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("id-1", "a@x.com", "tok", false, true, created))

	e, ok, err := r.FindByToken(context.Background(), "tok")
	if err != nil || !ok {
		t.Fatalf("find: %v ok=%v", err, ok)
	}
	if e.Valid() {
		t.Fatalf("revoked entry must not be valid")
	}

	mock.ExpectQuery(`FROM auth_tokens`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, ok, err = r.FindByToken(context.Background(), "missing")
	if err != nil {
		t.Fatalf("no-rows must not be an error: %v", err)
	}
	if ok {
		t.Fatalf("expected not found")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestRepoPersist(t *testing.T) {
	r, mock := newMockRepo(t)

	mock.ExpectExec(`INSERT INTO auth_tokens`).
		WithArgs(sqlmock.AnyArg(), "a@x.com", "tok", time.Unix(1700000000, 0).UTC()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := r.Persist(context.Background(), "a@x.com", "tok"); err != nil {
		t.Fatalf("persist: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestRepoDeleteAllForIdentity(t *testing.T) {
	r, mock := newMockRepo(t)

	mock.ExpectExec(`DELETE FROM auth_tokens`).
		WithArgs("a@x.com").
		WillReturnResult(sqlmock.NewResult(0, 3))

	if err := r.DeleteAllForIdentity(context.Background(), "a@x.com"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
