package sqlsearch

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Row is the current row of a result set.
type Row interface {
	Scan(dest ...any) error
}

// Session executes parametric statements. The search borrows one per call and uses it serially.
type Session interface {
	// Query runs a SELECT and calls each once per row, in result order.
	Query(ctx context.Context, sql string, args []any, each func(Row) error) error
	// QueryInt64 runs a scalar SELECT.
	QueryInt64(ctx context.Context, sql string, args []any) (int64, error)
}

// DefaultSlowQueryThreshold is the LoggingSession threshold when none is configured.
const DefaultSlowQueryThreshold = 50 * time.Millisecond

// LoggingSession wraps a Session and logs every statement with its duration.
// Statements slower than the threshold are logged at warn level.
type LoggingSession struct {
	next      Session
	log       *zap.Logger
	threshold time.Duration
}

var _ Session = (*LoggingSession)(nil)

func NewLoggingSession(next Session, log *zap.Logger, threshold time.Duration) *LoggingSession {
	if log == nil {
		log = zap.NewNop()
	}
	if threshold <= 0 {
		threshold = DefaultSlowQueryThreshold
	}
	return &LoggingSession{next: next, log: log, threshold: threshold}
}

func (s *LoggingSession) Query(ctx context.Context, sql string, args []any, each func(Row) error) error {
	start := time.Now()
	rows := 0
	err := s.next.Query(ctx, sql, args, func(r Row) error {
		rows++
		return each(r)
	})
	s.logStatement("query", sql, args, start, err, zap.Int("rows", rows))
	return err
}

func (s *LoggingSession) QueryInt64(ctx context.Context, sql string, args []any) (int64, error) {
	start := time.Now()
	n, err := s.next.QueryInt64(ctx, sql, args)
	s.logStatement("query_int64", sql, args, start, err, zap.Int64("value", n))
	return n, err
}

func (s *LoggingSession) logStatement(op, sql string, args []any, start time.Time, err error, extra ...zap.Field) {
	d := time.Since(start)
	fields := append([]zap.Field{
		zap.String("op", op),
		zap.String("sql", sql),
		zap.Int("args", len(args)),
		zap.Duration("duration", d),
	}, extra...)
	switch {
	case err != nil:
		s.log.Warn("query_failed", append(fields, zap.Error(err))...)
	case d >= s.threshold:
		s.log.Warn("slow_query", fields...)
	default:
		s.log.Debug("query", fields...)
	}
}
