package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	types "github.com/yungbote/schoolmeal-backend/internal/domain"
	"github.com/yungbote/schoolmeal-backend/internal/platform/logger"
)

const defaultKeyPrefix = "schoolmeal:latest_submission:"

type SubmissionStoreConfig struct {
	Addr      string
	KeyPrefix string
	TTL       time.Duration
}

// SubmissionStore keeps the latest submission per student.
type SubmissionStore interface {
	Put(ctx context.Context, sub *types.LatestSubmission) error
	Get(ctx context.Context, studentID uuid.UUID) (*types.LatestSubmission, error)
	Close() error
}

type submissionStore struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
}

func NewSubmissionStore(log *logger.Logger, cfg SubmissionStoreConfig) (SubmissionStore, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return newSubmissionStore(log, rdb, cfg), nil
}

func newSubmissionStore(log *logger.Logger, rdb *goredis.Client, cfg SubmissionStoreConfig) *submissionStore {
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &submissionStore{
		log:    log.With("service", "RedisSubmissionStore"),
		rdb:    rdb,
		prefix: prefix,
		ttl:    cfg.TTL,
	}
}

func (s *submissionStore) key(studentID uuid.UUID) string {
	return s.prefix + studentID.String()
}

func (s *submissionStore) Put(ctx context.Context, sub *types.LatestSubmission) error {
	if s == nil || s.rdb == nil {
		return fmt.Errorf("redis submission store not initialized")
	}
	if sub == nil || sub.StudentID == uuid.Nil {
		return nil
	}
	raw, err := json.Marshal(sub)
	if err != nil {
		return err
	}
	// ttl 0 keeps the key until overwritten.
	return s.rdb.Set(ctx, s.key(sub.StudentID), raw, s.ttl).Err()
}

// Get returns nil, nil when the student has no stored submission.
func (s *submissionStore) Get(ctx context.Context, studentID uuid.UUID) (*types.LatestSubmission, error) {
	if s == nil || s.rdb == nil {
		return nil, fmt.Errorf("redis submission store not initialized")
	}
	raw, err := s.rdb.Get(ctx, s.key(studentID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var sub types.LatestSubmission
	if err := json.Unmarshal(raw, &sub); err != nil {
		s.log.Warn("bad latest submission payload", "student_id", studentID, "error", err)
		return nil, nil
	}
	return &sub, nil
}

func (s *submissionStore) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}
