package tasks

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dkravets/taskkeeper/internal/common"
	"github.com/dkravets/taskkeeper/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func taskColumns() []string {
	return []string{"id", "user_id", "title", "description", "status", "created_at", "updated_at"}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+tasks\s*\(user_id,\s*title,\s*description,\s*status\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+id,\s*created_at,\s*updated_at\s*$`

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("t-1", now, now)
	mock.ExpectQuery(q).
		WithArgs("u-1", "Write report", "", models.StatusTodo).
		WillReturnRows(rows)

	task := &models.Task{UserID: "u-1", Title: "Write report", Status: models.StatusTodo}
	got, err := repo.Create(context.Background(), task)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "t-1" || got.Status != models.StatusTodo {
		t.Fatalf("unexpected task: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM\s+tasks\s+WHERE\s+id`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestListByOwner_NoFilters(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+.*\s+FROM\s+tasks\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC\s*$`

	now := time.Now()
	rows := sqlmock.NewRows(taskColumns()).
		AddRow("t-2", "u-1", "Second", "", "todo", now, now).
		AddRow("t-1", "u-1", "First", "", "done", now.Add(-time.Hour), now)
	mock.ExpectQuery(q).WithArgs("u-1").WillReturnRows(rows)

	got, err := repo.ListByOwner(context.Background(), "u-1", Filter{})
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "t-2" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestListByOwner_KeywordAndStatus(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+.*\s+FROM\s+tasks\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+title\s+ILIKE\s+\$2\s+AND\s+status\s*=\s*\$3\s+ORDER\s+BY\s+created_at\s+DESC\s*$`

	rows := sqlmock.NewRows(taskColumns())
	mock.ExpectQuery(q).WithArgs("u-1", "%foo%", "done").WillReturnRows(rows)

	got, err := repo.ListByOwner(context.Background(), "u-1", Filter{Keyword: "foo", Status: "done"})
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestListByOwner_AllSentinelSkipsStatusFilter(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+.*\s+FROM\s+tasks\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC\s*$`

	rows := sqlmock.NewRows(taskColumns())
	mock.ExpectQuery(q).WithArgs("u-1").WillReturnRows(rows)

	if _, err := repo.ListByOwner(context.Background(), "u-1", Filter{Status: models.StatusFilterAll}); err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
}

func TestUpdate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+tasks\s+SET\s+title\s*=\s*\$2,\s*description\s*=\s*\$3,\s*status\s*=\s*\$4,\s*updated_at\s*=\s*now\(\)\s+WHERE\s+id\s*=\s*\$1\s+RETURNING\s+updated_at\s*$`

	rows := sqlmock.NewRows([]string{"updated_at"}).AddRow(time.Now())
	mock.ExpectQuery(q).
		WithArgs("t-1", "Title", "Desc", models.StatusDone).
		WillReturnRows(rows)

	task := &models.Task{ID: "t-1", Title: "Title", Description: "Desc", Status: models.StatusDone}
	if _, err := repo.Update(context.Background(), task); err != nil {
		t.Fatalf("Update error: %v", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE\s+tasks`).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), &models.Task{ID: "missing", Status: models.StatusTodo})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+tasks\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("t-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "t-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+tasks`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestMalformedID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	// a non-UUID id fails the column cast instead of returning no rows
	castErr := &pgconn.PgError{Code: invalidTextRepresentation}

	mock.ExpectQuery(`SELECT .* FROM\s+tasks\s+WHERE\s+id`).
		WithArgs("abc").
		WillReturnError(castErr)
	if _, err := repo.GetByID(context.Background(), "abc"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("GetByID: expected ErrorNotFound, got %v", err)
	}

	mock.ExpectQuery(`UPDATE\s+tasks\s+SET`).
		WillReturnError(castErr)
	task := &models.Task{ID: "abc", Title: "T", Status: models.StatusTodo}
	if _, err := repo.Update(context.Background(), task); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("Update: expected ErrorNotFound, got %v", err)
	}

	mock.ExpectExec(`DELETE\s+FROM\s+tasks\s+WHERE\s+id`).
		WithArgs("abc").
		WillReturnError(castErr)
	if err := repo.Delete(context.Background(), "abc"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("Delete: expected ErrorNotFound, got %v", err)
	}
}
