package db

import (
	"fmt"
	"sync/atomic"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// ConnectionPool holds the primary write connection and any configured read
// replicas. Reads fall back to the primary when no replica is configured.
type ConnectionPool struct {
	primary  *gorm.DB
	replicas []*gorm.DB
	next     atomic.Uint64
}

func CreateConnectionPool(primaryDSN string, replicaDSNs []string, config PoolConfig) (*ConnectionPool, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	primary, err := open(primaryDSN, gormConfig, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to primary database: %w", err)
	}

	pool := &ConnectionPool{primary: primary}

	for i, dsn := range replicaDSNs {
		replica, err := open(dsn, gormConfig, config)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to replica %d: %w", i, err)
		}
		pool.replicas = append(pool.replicas, replica)
	}

	return pool, nil
}

func open(dsn string, gormConfig *gorm.Config, config PoolConfig) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(config.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(config.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(config.ConnMaxIdleTime)

	return gdb, nil
}

func (p *ConnectionPool) GetPrimary() *gorm.DB {
	return p.primary
}

// GetReplica round-robins across replicas, or returns the primary when none
// exist.
func (p *ConnectionPool) GetReplica() *gorm.DB {
	if len(p.replicas) == 0 {
		return p.primary
	}
	n := p.next.Add(1)
	return p.replicas[int(n)%len(p.replicas)]
}

func (p *ConnectionPool) Close() error {
	var firstErr error
	for _, gdb := range append([]*gorm.DB{p.primary}, p.replicas...) {
		sqlDB, err := gdb.DB()
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if err := sqlDB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
