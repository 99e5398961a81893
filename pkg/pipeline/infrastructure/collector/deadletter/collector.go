// Package deadletter persists error records to a relational dead letter
// table so operators can inspect and replay them.
package deadletter

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	collector "github.com/blank-1/datacollector/pkg/pipeline/core/collector"
	record "github.com/blank-1/datacollector/pkg/pipeline/core/record"
	logger "github.com/blank-1/datacollector/pkg/pipeline/support/util/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Config holds the connection settings for the dead letter store.
type Config struct {
	Type  string `yaml:"type"`  // sqlite, postgres or mysql
	DSN   string `yaml:"dsn"`   // driver-specific connection string
	Table string `yaml:"table"` // optional table name override
}

// ErrorRecord is the persisted form of a failed record.
type ErrorRecord struct {
	ID         uint   `gorm:"primaryKey"`
	SourceID   string `gorm:"index;size:512"`
	Payload    string `gorm:"type:text"`
	Cause      string `gorm:"type:text"`
	ReportedAt time.Time
}

// Collector writes failed records to a dead letter table via GORM.
type Collector struct {
	db    *gorm.DB
	table string
}

func openDialector(cfg Config) (gorm.Dialector, error) {
	switch cfg.Type {
	case "sqlite":
		return sqlite.Open(cfg.DSN), nil
	case "postgres":
		return postgres.Open(cfg.DSN), nil
	case "mysql":
		return mysql.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported dead letter store type: %s", cfg.Type)
	}
}

// New connects to the configured store and ensures the dead letter table
// exists.
func New(cfg Config) (*Collector, error) {
	dialector, err := openDialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open dead letter store: %w", err)
	}

	table := cfg.Table
	if table == "" {
		table = "error_records"
	}

	if err := db.Table(table).AutoMigrate(&ErrorRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate dead letter table %s: %w", table, err)
	}

	return &Collector{db: db, table: table}, nil
}

// NewWithDB wraps an existing GORM handle. Used by tests.
func NewWithDB(db *gorm.DB, table string) *Collector {
	if table == "" {
		table = "error_records"
	}
	return &Collector{db: db, table: table}
}

// Report persists one failed record. Persistence problems are logged, never
// propagated to the reporting stage.
func (c *Collector) Report(ctx context.Context, r *record.Record, cause error) {
	payload, err := json.Marshal(r.Value())
	if err != nil {
		logger.Errorf("Failed to serialize error record %s: %v", r.Header().SourceID, err)
		payload = []byte("{}")
	}

	row := &ErrorRecord{
		SourceID:   r.Header().SourceID,
		Payload:    string(payload),
		Cause:      cause.Error(),
		ReportedAt: time.Now().UTC(),
	}

	if err := c.db.WithContext(ctx).Table(c.table).Create(row).Error; err != nil {
		logger.Errorf("Failed to persist error record %s: %v", r.Header().SourceID, err)
	}
}

// Close releases the underlying database connection.
func (c *Collector) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var _ collector.ErrorCollector = (*Collector)(nil)
