package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-management/library/internal/cache"
	"github.com/Astemirdum/library-management/library/internal/events"
	"github.com/Astemirdum/library-management/library/internal/model"
	"github.com/Astemirdum/library-management/library/internal/repository"
	"github.com/Astemirdum/library-management/pkg/kafka"
)

const (
	DefaultRecentBorrowings = 10
	DefaultHistoryLimit     = 10
)

type BookCache interface {
	GetBook(ctx context.Context, id uuid.UUID) (model.Book, error)
	SetBook(ctx context.Context, book model.Book) error
	DeleteBook(ctx context.Context, id uuid.UUID) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event kafka.EventBorrowing) error
}

type Config struct {
	LoanPeriod       time.Duration
	RecentBorrowings int
	HistoryLimit     int
}

type Service struct {
	repo       repository.Repository
	accountant *Accountant
	cache      BookCache
	events     EventPublisher
	cfg        Config
	now        func() time.Time
	log        *zap.Logger
}

type Option func(*Service)

func WithCache(c BookCache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

func WithEvents(p EventPublisher) Option {
	return func(s *Service) {
		s.events = p
	}
}

// WithClock replaces the wall clock; overdue and due-today are computed from it.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repo repository.Repository, log *zap.Logger, cfg Config, opts ...Option) *Service {
	if cfg.LoanPeriod <= 0 {
		cfg.LoanPeriod = model.DefaultLoanPeriod
	}
	if cfg.RecentBorrowings <= 0 {
		cfg.RecentBorrowings = DefaultRecentBorrowings
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = DefaultHistoryLimit
	}
	s := &Service{
		repo:   repo,
		cache:  cache.Nop{},
		events: events.Nop{},
		cfg:    cfg,
		now:    func() time.Time { return time.Now().UTC() },
		log:    log.Named("service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.accountant = NewAccountant(repo, s.now, cfg.LoanPeriod)
	return s
}

func (s *Service) publish(ctx context.Context, event kafka.EventBorrowing) {
	if err := s.events.Publish(ctx, event); err != nil {
		s.log.Warn("publish borrowing event",
			zap.String("type", string(event.EventType)),
			zap.String("borrowing_id", event.BorrowingID),
			zap.Error(err))
	}
}

func (s *Service) invalidateBook(ctx context.Context, id uuid.UUID) {
	if err := s.cache.DeleteBook(ctx, id); err != nil {
		s.log.Warn("cache.DeleteBook", zap.Stringer("book_id", id), zap.Error(err))
	}
}
