package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophusers/internal/common"
	"github.com/dmitrijs2005/gophusers/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

var userColumns = []string{"id", "name", "email", "password"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func fixedID(t *testing.T, id string) {
	t.Helper()
	orig := newID
	newID = func() string { return id }
	t.Cleanup(func() { newID = orig })
}

const (
	insertQuery  = `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*name,\s*email,\s*password\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+id,\s*name,\s*email,\s*password\s*$`
	listQuery    = `(?s)^SELECT\s+id,\s*name,\s*email,\s*password\s+FROM\s+users\s+ORDER\s+BY\s+id\s*$`
	byIDQuery    = `(?s)^SELECT\s+id,\s*name,\s*email,\s*password\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s*$`
	byEmailQuery = `(?s)^SELECT\s+id,\s*name,\s*email,\s*password\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s*$`
	updateQuery  = `(?s)^UPDATE\s+users\s+SET\s+name\s*=\s*COALESCE\(\$2,\s*name\),\s*password\s*=\s*COALESCE\(\$3,\s*password\)\s+WHERE\s+id\s*=\s*\$1\s+RETURNING\s+id,\s*name,\s*email,\s*password\s*$`
	deleteQuery  = `(?s)^DELETE\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s*$`
)

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()
	fixedID(t, "42")

	rows := sqlmock.NewRows(userColumns).AddRow("42", "Pedro Queiroz", "test@gmail.com", "hash")
	mock.ExpectQuery(insertQuery).
		WithArgs("42", "Pedro Queiroz", "test@gmail.com", "hash").
		WillReturnRows(rows)

	in := &models.User{Name: "Pedro Queiroz", Email: "test@gmail.com", Password: "hash"}
	got, err := repo.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "42" || got.Email != "test@gmail.com" {
		t.Fatalf("unexpected user: %+v", got)
	}
	if in.ID != "" {
		t.Fatalf("input must not be mutated, got id %q", in.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestCreate_UniqueViolation(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()
	fixedID(t, "42")

	mock.ExpectQuery(insertQuery).
		WithArgs("42", "Dup", "test@gmail.com", "hash").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := repo.Create(context.Background(), &models.User{Name: "Dup", Email: "test@gmail.com", Password: "hash"})
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQuery).
		WithArgs(sqlmock.AnyArg(), "alice", "alice@example.com", "hash").
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{Name: "alice", Email: "alice@example.com", Password: "hash"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
	if errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("plain db error must not look like a conflict")
	}
}

func TestList_ReturnsAllRows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(userColumns).
		AddRow("1", "User 1", "test@gmail.com", "h1").
		AddRow("2", "User 2", "test2@gmail.com", "h2")
	mock.ExpectQuery(listQuery).WillReturnRows(rows)

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "1" || got[1].Email != "test2@gmail.com" {
		t.Fatalf("unexpected users: %+v", got)
	}
}

func TestList_EmptyIsNotNil(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(listQuery).WillReturnRows(sqlmock.NewRows(userColumns))

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestList_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(listQuery).WillReturnError(errors.New("db err"))

	_, err := repo.List(context.Background())
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(userColumns).AddRow("u-1", "alice", "alice@example.com", "hash")
	mock.ExpectQuery(byIDQuery).WithArgs("u-1").WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.ID != "u-1" || got.Name != "alice" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(byIDQuery).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(userColumns).AddRow("u-1", "alice", "alice@example.com", "hash")
	mock.ExpectQuery(byEmailQuery).WithArgs("alice@example.com").WillReturnRows(rows)

	got, err := repo.GetByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if got.ID != "u-1" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetByEmail_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(byEmailQuery).WithArgs("alice@example.com").WillReturnError(errors.New("db err"))

	_, err := repo.GetByEmail(context.Background(), "alice@example.com")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestUpdate_NameOnly(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	name := "New name"
	rows := sqlmock.NewRows(userColumns).AddRow("u-1", "New name", "test@gmail.com", "hash")
	mock.ExpectQuery(updateQuery).WithArgs("u-1", "New name", nil).WillReturnRows(rows)

	got, err := repo.Update(context.Background(), "u-1", models.UserPatch{Name: &name})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.Name != "New name" || got.Email != "test@gmail.com" {
		t.Fatalf("unexpected user: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	pw := "newhash"
	mock.ExpectQuery(updateQuery).WithArgs("ghost", nil, "newhash").WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), "ghost", models.UserPatch{Password: &pw})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(deleteQuery).WithArgs("u-1").WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "u-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(deleteQuery).WithArgs("ghost").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDelete_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(deleteQuery).WithArgs("u-1").WillReturnError(errors.New("db err"))

	err := repo.Delete(context.Background(), "u-1")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
