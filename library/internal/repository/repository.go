package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-management/library/internal/model"
)

type Repository interface {
	ListBooks(ctx context.Context, filter model.BookFilter) (model.ListBooks, error)
	GetBook(ctx context.Context, id uuid.UUID) (model.Book, error)
	// LockBook reads the book and holds its row lock until the transaction ends.
	LockBook(ctx context.Context, id uuid.UUID) (model.Book, error)
	IsbnTaken(ctx context.Context, isbn string, except uuid.UUID) (bool, error)
	CreateBook(ctx context.Context, book model.Book) (model.Book, error)
	UpdateBook(ctx context.Context, book model.Book) (model.Book, error)
	DeleteBook(ctx context.Context, id uuid.UUID) error
	SetAvailableCopies(ctx context.Context, id uuid.UUID, available int) error
	CountBooks(ctx context.Context) (int, error)

	HasActiveBorrowing(ctx context.Context, userID, bookID uuid.UUID) (bool, error)
	CreateBorrowing(ctx context.Context, b model.Borrowing) (model.Borrowing, error)
	GetBorrowing(ctx context.Context, id uuid.UUID) (model.BorrowingDetails, error)
	LockBorrowing(ctx context.Context, id uuid.UUID) (model.Borrowing, error)
	MarkReturned(ctx context.Context, id uuid.UUID, at time.Time) error
	ListBorrowings(ctx context.Context, filter model.BorrowingFilter) ([]model.BorrowingDetails, error)
	CountBorrowings(ctx context.Context, filter model.BorrowingFilter) (int, error)

	GetUser(ctx context.Context, id uuid.UUID) (model.User, error)

	// WithTx runs fn in one transaction. Inside fn every call goes through
	// the transaction; nested WithTx calls join it.
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type repository struct {
	pool *pgxpool.Pool
	db   querier
	log  *zap.Logger
}

func NewRepository(db *pgxpool.Pool, log *zap.Logger) (*repository, error) {
	return &repository{
		pool: db,
		db:   db,
		log:  log.Named("repo"),
	}, nil
}

const (
	booksTableName      = `books`
	borrowingsTableName = `borrowings`
	usersTableName      = `users`

	isbnUniqueIndex            = `books_isbn_lower_key`
	activeBorrowingUniqueIndex = `borrowings_active_user_book_key`
	borrowingUserForeignKey    = `borrowings_user_id_fkey`
	borrowingBookForeignKey    = `borrowings_book_id_fkey`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Borrow and return lock the book row with FOR UPDATE, which serialises
// writers on that book; read committed is enough on top of it.
var txOptions = pgx.TxOptions{IsoLevel: pgx.ReadCommitted}

func (r *repository) WithTx(ctx context.Context, fn func(tx Repository) error) error {
	if r.pool == nil {
		return fn(r)
	}
	return pgx.BeginTxFunc(ctx, r.pool, txOptions, func(tx pgx.Tx) error {
		return fn(&repository{db: tx, log: r.log})
	})
}

func uniqueViolation(err error) (string, bool) {
	return violation(err, pgerrcode.UniqueViolation)
}

func foreignKeyViolation(err error) (string, bool) {
	return violation(err, pgerrcode.ForeignKeyViolation)
}

func violation(err error, code string) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == code {
		return pgErr.ConstraintName, true
	}
	return "", false
}
