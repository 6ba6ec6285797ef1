package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Egor213/LogLens/internal/broker"
	"github.com/Egor213/LogLens/internal/domain"
	"github.com/Egor213/LogLens/internal/metrics"
	"github.com/Egor213/LogLens/internal/parser"
	"github.com/Egor213/LogLens/internal/repo"
	"github.com/Egor213/LogLens/internal/repo/repoerrs"
	errorsUtils "github.com/Egor213/LogLens/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const bytesPerMB = 1024 * 1024

type LogService struct {
	logFile   repo.LogFile
	parser    *parser.Parser
	counters  *metrics.Counters
	producer  broker.Producer
	maxSizeMB int

	// Reads take the read lock and truncation the write lock, so a truncate
	// never lands in the middle of a read. Parsing runs outside the lock.
	mu sync.RWMutex
}

// NewLogService accepts a nil producer; publishing is then skipped.
// maxSizeMB <= 0 disables the size ceiling.
func NewLogService(lf repo.LogFile, cnt *metrics.Counters, producer broker.Producer,
	cfg domain.ParseConfig, maxSizeMB int) (*LogService, error) {
	p, err := parser.New(cfg)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	return &LogService{
		logFile:   lf,
		parser:    p,
		counters:  cnt,
		producer:  producer,
		maxSizeMB: maxSizeMB,
	}, nil
}

// Issues returns a human-readable description of what prevents reading the
// file, or "" when there is none.
func (s *LogService) Issues(ctx context.Context, ignoreSize bool) string {
	if issue := s.issue(ctx, ignoreSize); issue != nil {
		return issue.Message
	}
	return ""
}

func (s *LogService) issue(ctx context.Context, ignoreSize bool) *IssueError {
	size, err := s.logFile.Size(ctx)
	if errors.Is(err, repoerrs.ErrNotFound) {
		return notFoundIssue(s.logFile.Path())
	}
	if err != nil {
		return &IssueError{Kind: IssueUnreadable, Message: fmt.Sprintf(msgUnreadableFormat, s.logFile.Path(), errorsUtils.Root(err))}
	}

	sizeMB := float64(size) / bytesPerMB
	if s.maxSizeMB > 0 && sizeMB > float64(s.maxSizeMB) && !ignoreSize {
		return tooLargeIssue(s.logFile.Path(), s.maxSizeMB, sizeMB)
	}
	return nil
}

func (s *LogService) GetLog(ctx context.Context, ignoreSize bool) ([]domain.LogRecord, error) {
	if issue := s.issue(ctx, ignoreSize); issue != nil {
		s.counters.Parses.Inc("rejected")
		return nil, issue
	}

	start := time.Now()
	data, err := s.read(ctx)
	if err != nil {
		s.counters.Parses.Inc("rejected")
		log.WithFields(log.Fields{
			"path":  s.logFile.Path(),
			"error": err,
		}).Warn("Failed to read log file")
		return nil, &IssueError{Kind: IssueEmpty, Message: MsgEmptyFile}
	}

	records, err := s.parser.ParseBytes(data)
	if err != nil {
		s.counters.Parses.Inc("failed")
		return nil, &IssueError{Kind: IssueUndecodable, Message: fmt.Sprintf(msgDecodeFailedFormat, s.logFile.Path(), err)}
	}

	s.counters.Parses.Inc("ok")
	for _, rec := range records {
		s.counters.Records.Inc(string(domain.SeverityOf(rec.Tags)))
	}

	log.WithFields(log.Fields{
		"path":    s.logFile.Path(),
		"bytes":   len(data),
		"records": len(records),
		"elapsed": time.Since(start).String(),
	}).Info("Log file parsed")

	s.publish(ctx, records)

	return records, nil
}

func (s *LogService) read(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.logFile.Read(ctx)
}

func (s *LogService) publish(ctx context.Context, records []domain.LogRecord) {
	if s.producer == nil {
		return
	}
	payload, err := json.Marshal(domain.Snapshot{
		File:     s.logFile.Path(),
		ParsedAt: time.Now().Format(time.RFC3339),
		Records:  records,
	})
	if err != nil {
		log.WithField("error", err).Error("Failed to encode snapshot")
		return
	}
	if err := s.producer.SendMessage(ctx, []byte(s.logFile.Path()), payload); err != nil {
		log.WithFields(log.Fields{
			"path":  s.logFile.Path(),
			"error": err,
		}).Warn("Failed to publish snapshot")
	}
}

func (s *LogService) Truncate(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.logFile.Truncate(ctx)
	switch {
	case err == nil:
		s.counters.Truncations.Inc("ok")
		log.WithField("path", s.logFile.Path()).Info("Log file emptied")
		return MsgEmptied
	case errors.Is(err, repoerrs.ErrNotFound):
		s.counters.Truncations.Inc("missing")
		return MsgNothingToDelete
	case errors.Is(err, repoerrs.ErrNotWritable):
		s.counters.Truncations.Inc("failed")
		return MsgNotWritable
	default:
		s.counters.Truncations.Inc("failed")
		log.WithFields(log.Fields{
			"path":  s.logFile.Path(),
			"error": err,
		}).Error("Failed to empty log file")
		return MsgCouldNotBeEmptied
	}
}

func (s *LogService) FileSize(ctx context.Context) (int64, error) {
	size, err := s.logFile.Size(ctx)
	if errors.Is(err, repoerrs.ErrNotFound) {
		return 0, notFoundIssue(s.logFile.Path())
	}
	if err != nil {
		return 0, errorsUtils.WrapPathErr(err)
	}
	return size, nil
}
