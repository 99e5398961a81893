package deadletter_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	record "github.com/blank-1/datacollector/pkg/pipeline/core/record"
	deadletter "github.com/blank-1/datacollector/pkg/pipeline/infrastructure/collector/deadletter"
)

// setupGormMock wires a GORM handle onto a sqlmock connection.
func setupGormMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)

	t.Cleanup(func() {
		mock.ExpectClose()
		sqlDB.Close()
	})
	return gormDB, mock
}

func newFailedRecord(sourceID string) *record.Record {
	return record.New(sourceID, map[string]record.Field{"id": record.NewStringField(sourceID)})
}

func TestReport_PersistsRecordWithCause(t *testing.T) {
	gormDB, mock := setupGormMock(t)
	c := deadletter.NewWithDB(gormDB, "error_records")

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `error_records`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	c.Report(context.Background(), newFailedRecord("file::7"), errors.New("mapping failed"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReport_PersistenceFailureDoesNotPanic(t *testing.T) {
	gormDB, mock := setupGormMock(t)
	c := deadletter.NewWithDB(gormDB, "error_records")

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `error_records`").
		WillReturnError(errors.New("table gone"))
	mock.ExpectRollback()

	// The collector swallows persistence failures; the stage must not see them.
	c.Report(context.Background(), newFailedRecord("file::8"), errors.New("mapping failed"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNew_RejectsUnknownStoreType(t *testing.T) {
	_, err := deadletter.New(deadletter.Config{Type: "oracle", DSN: "whatever"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported dead letter store type")
}
