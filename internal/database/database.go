// Package database
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/half-nothing/fsd-client/internal/interfaces/config"
	"github.com/half-nothing/fsd-client/internal/interfaces/global"
	"github.com/half-nothing/fsd-client/internal/interfaces/log"
	"github.com/half-nothing/fsd-client/internal/interfaces/operation"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrDatabaseDisabled = errors.New("database is disabled")

type DBCloseCallback struct {
	logger log.LoggerInterface
	db     *gorm.DB
}

func NewDBCloseCallback(logger log.LoggerInterface, db *gorm.DB) *DBCloseCallback {
	return &DBCloseCallback{logger: logger, db: db}
}

func (dc *DBCloseCallback) Invoke(ctx context.Context) error {
	dc.logger.Info("Closing database connection")
	done := make(chan error, 1)
	go func() {
		db, err := dc.db.DB()
		if err != nil {
			done <- err
			return
		}
		done <- db.Close()
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ConnectDatabase 打开数据库并完成迁移, 返回的关闭回调需要交给 Cleaner
func ConnectDatabase(lg log.LoggerInterface, cfg *config.DatabaseConfig, debug bool) (*operation.DatabaseOperations, global.Callable, error) {
	if !cfg.Enabled {
		return nil, nil, ErrDatabaseDisabled
	}

	connection := cfg.GetConnection(lg)
	if connection == nil {
		return nil, nil, fmt.Errorf("unsupported database type %s", cfg.DBType)
	}

	connectionConfig := gorm.Config{}
	connectionConfig.DefaultTransactionTimeout = 5 * time.Second
	connectionConfig.PrepareStmt = true

	if debug {
		connectionConfig.Logger = logger.Default.LogMode(logger.Error)
	} else {
		connectionConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(connection, &connectionConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("error occured while connecting to database: %v", err)
	}

	if err = db.Migrator().AutoMigrate(&operation.History{}, &operation.NetworkStatistic{}); err != nil {
		return nil, nil, fmt.Errorf("error occured while migrating database: %v", err)
	}

	dbPool, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("error occured while creating database pool: %v", err)
	}

	maxOpenConnections := max(cfg.ServerMaxConnections*4/5, 1) // 不超过数据库最大连接的80%
	maxIdleConnections := max(maxOpenConnections/5, 1)         // 空闲连接约为最大连接的20%

	dbPool.SetMaxIdleConns(maxIdleConnections)
	dbPool.SetMaxOpenConns(maxOpenConnections)
	dbPool.SetConnMaxLifetime(cfg.ConnectIdleDuration)

	if err = dbPool.Ping(); err != nil {
		return nil, nil, fmt.Errorf("error occured while pinging database: %v", err)
	}
	lg.Info("Database initialized and connection established")

	operations := operation.NewDatabaseOperations(
		NewHistoryOperation(db, cfg.QueryDuration),
		NewStatisticsOperation(db, cfg.QueryDuration),
	)
	return operations, NewDBCloseCallback(lg, db), nil
}
