package audit

import (
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func testCtx(t *testing.T, fn func(c *fiber.Ctx)) {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		fn(c)
		return nil
	})
	_, err := app.Test(httptest.NewRequest("GET", "/", nil))
	assert.NoError(t, err)
}

func TestRecord(t *testing.T) {
	db, mock := setupMockDB(t)
	recorder := NewRecorder(db, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `activity_logs`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	userID := uint(7)
	testCtx(t, func(c *fiber.Ctx) {
		recorder.Record(c, &userID, "ana", ActionSearch, map[string]any{"query": "NAV1"})
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordSwallowsFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	recorder := NewRecorder(db, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `activity_logs`").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	// Must not panic or surface the error.
	testCtx(t, func(c *fiber.Ctx) {
		recorder.Record(c, nil, "", ActionLogin, map[string]any{"success": false})
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
