package storage

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/dgraph-io/badger/v3"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/leasedesk-go/internal/telemetry/logger"
)

// BadgerEngine implements KVEngine using Badger v3.
type BadgerEngine struct {
	db     *badger.DB
	cfg    BadgerConfig
	logger logger.Logger
	closed atomic.Bool
}

// NewBadgerEngine opens (or creates) a Badger database in cfg.Dir.
func NewBadgerEngine(cfg KVConfig, l logger.Logger) (*BadgerEngine, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("badger: dir is required")
	}
	if l == nil {
		l = logger.Nop()
	}

	opts := badger.DefaultOptions(cfg.Dir)
	opts.Logger = &badgerLogger{logger: l}
	opts.SyncWrites = cfg.Badger.SyncWrites
	if cfg.Badger.ValueLogFileSize > 0 {
		opts.ValueLogFileSize = cfg.Badger.ValueLogFileSize
	}
	if cfg.Badger.IndexCacheSize > 0 {
		opts.IndexCacheSize = cfg.Badger.IndexCacheSize
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger: open db: %w", err)
	}

	l.Debug("badger engine opened", "dir", cfg.Dir)
	return &BadgerEngine{db: db, cfg: cfg.Badger, logger: l}, nil
}

// Get retrieves a value by key.
func (e *BadgerEngine) Get(ctx context.Context, key []byte) ([]byte, error) {
	if e.closed.Load() {
		return nil, ErrClosed
	}
	var value []byte
	err := e.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrKeyNotFound
			}
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set stores a key-value pair.
func (e *BadgerEngine) Set(ctx context.Context, key, value []byte) error {
	if e.closed.Load() {
		return ErrClosed
	}
	return e.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

// SetMany stores all pairs in one transaction: either every key is
// written or none is.
func (e *BadgerEngine) SetMany(ctx context.Context, pairs map[string][]byte) error {
	if e.closed.Load() {
		return ErrClosed
	}
	return e.db.Update(func(txn *badger.Txn) error {
		for k, v := range pairs {
			if err := txn.Set([]byte(k), v); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a key.
func (e *BadgerEngine) Delete(ctx context.Context, key []byte) error {
	if e.closed.Load() {
		return ErrClosed
	}
	return e.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

// GC reclaims value log space once. Badger reports ErrNoRewrite when
// there is nothing to do, which is not an error here.
func (e *BadgerEngine) GC() error {
	err := e.db.RunValueLogGC(e.cfg.GCThreshold)
	if err != nil && !errors.Is(err, badger.ErrNoRewrite) && !errors.Is(err, badger.ErrRejected) {
		return fmt.Errorf("badger: gc: %w", err)
	}
	return nil
}

// Collector exposes the LSM and value log sizes as gauges read at
// scrape time.
func (e *BadgerEngine) Collector() prometheus.Collector {
	return &badgerCollector{engine: e}
}

// Close runs a final GC pass and closes the database. It is idempotent.
func (e *BadgerEngine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}
	if err := e.GC(); err != nil {
		e.logger.Warn("badger gc on close", "error", err)
	}
	if err := e.db.Close(); err != nil {
		return fmt.Errorf("badger: close db: %w", err)
	}
	return nil
}

var (
	lsmSizeDesc = prometheus.NewDesc(
		"leasedesk_badger_lsm_size_bytes", "Badger LSM tree size in bytes.", nil, nil)
	vlogSizeDesc = prometheus.NewDesc(
		"leasedesk_badger_value_log_size_bytes", "Badger value log size in bytes.", nil, nil)
)

type badgerCollector struct {
	engine *BadgerEngine
}

func (c *badgerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- lsmSizeDesc
	ch <- vlogSizeDesc
}

func (c *badgerCollector) Collect(ch chan<- prometheus.Metric) {
	if c.engine.closed.Load() {
		return
	}
	lsm, vlog := c.engine.db.Size()
	ch <- prometheus.MustNewConstMetric(lsmSizeDesc, prometheus.GaugeValue, float64(lsm))
	ch <- prometheus.MustNewConstMetric(vlogSizeDesc, prometheus.GaugeValue, float64(vlog))
}

// badgerLogger adapts logger.Logger to Badger's Logger interface.
// Badger's info chatter is demoted to debug.
type badgerLogger struct {
	logger logger.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
