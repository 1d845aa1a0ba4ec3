package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-management/library/internal/errs"
	"github.com/Astemirdum/library-management/library/internal/model"
)

var borrowingColumns = []string{"id", "user_id", "book_id", "borrowed_at", "due_date", "returned_at"}

func (r *repository) HasActiveBorrowing(ctx context.Context, userID, bookID uuid.UUID) (bool, error) {
	const q = `
select exists (
    select 1 from borrowings
    where user_id = @user_id and book_id = @book_id and returned_at is null
)`
	var exists bool
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"user_id": userID, "book_id": bookID}).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *repository) CreateBorrowing(ctx context.Context, b model.Borrowing) (model.Borrowing, error) {
	query, args, err := qb.Insert(borrowingsTableName).
		Columns(borrowingColumns...).
		Values(b.ID, b.UserID, b.BookID, b.BorrowedAt, b.DueDate, b.ReturnedAt).
		Suffix("RETURNING id, user_id, book_id, borrowed_at, due_date, returned_at").
		ToSql()
	if err != nil {
		return model.Borrowing{}, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return model.Borrowing{}, r.borrowingWriteError(query, args, err)
	}
	defer rows.Close()

	created, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Borrowing])
	if err != nil {
		return model.Borrowing{}, r.borrowingWriteError(query, args, err)
	}
	return created, nil
}

func (r *repository) borrowingWriteError(query string, args []any, err error) error {
	if constraint, ok := uniqueViolation(err); ok && constraint == activeBorrowingUniqueIndex {
		return errs.NewValidationError(errs.FieldBase, "You have already borrowed this book")
	}
	if constraint, ok := foreignKeyViolation(err); ok {
		switch constraint {
		case borrowingUserForeignKey:
			return errs.ErrUnauthenticated
		case borrowingBookForeignKey:
			return errs.ErrNotFound
		}
	}
	r.log.Error("CreateBorrowing", zap.String("q", query), zap.Any("args", args), zap.Error(err))
	return errors.Wrap(err, "CreateBorrowing")
}

func detailsQuery() sq.SelectBuilder {
	return qb.Select(
		"br.id", "br.user_id", "br.book_id", "br.borrowed_at", "br.due_date", "br.returned_at",
		"b.title", "b.author", "b.genre", "b.isbn",
		"u.name", "u.email",
	).
		From(borrowingsTableName + " br").
		Join(fmt.Sprintf("%s b on b.id = br.book_id", booksTableName)).
		Join(fmt.Sprintf("%s u on u.id = br.user_id", usersTableName))
}

func scanDetails(row pgx.CollectableRow) (model.BorrowingDetails, error) {
	var d model.BorrowingDetails
	err := row.Scan(
		&d.ID, &d.UserID, &d.BookID, &d.BorrowedAt, &d.DueDate, &d.ReturnedAt,
		&d.Book.Title, &d.Book.Author, &d.Book.Genre, &d.Book.ISBN,
		&d.User.Name, &d.User.Email,
	)
	d.Book.ID = d.BookID
	d.User.ID = d.UserID
	return d, err
}

func (r *repository) GetBorrowing(ctx context.Context, id uuid.UUID) (model.BorrowingDetails, error) {
	query, args, err := detailsQuery().
		Where(sq.Eq{"br.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.BorrowingDetails{}, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return model.BorrowingDetails{}, err
	}
	defer rows.Close()

	d, err := pgx.CollectOneRow(rows, scanDetails)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.BorrowingDetails{}, errs.ErrNotFound
		}
		return model.BorrowingDetails{}, err
	}
	return d, nil
}

func (r *repository) LockBorrowing(ctx context.Context, id uuid.UUID) (model.Borrowing, error) {
	query, args, err := qb.Select(borrowingColumns...).
		From(borrowingsTableName).
		Where(sq.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return model.Borrowing{}, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return model.Borrowing{}, err
	}
	defer rows.Close()

	b, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Borrowing])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Borrowing{}, errs.ErrNotFound
		}
		return model.Borrowing{}, err
	}
	return b, nil
}

// MarkReturned only touches active rows, so a second call is a no-op that
// reports ErrNotFound instead of moving returned_at.
func (r *repository) MarkReturned(ctx context.Context, id uuid.UUID, at time.Time) error {
	query, args, err := qb.Update(borrowingsTableName).
		Set("returned_at", at).
		Where(sq.Eq{"id": id, "returned_at": nil}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func applyBorrowingFilter(q sq.SelectBuilder, f model.BorrowingFilter) sq.SelectBuilder {
	if f.UserID != nil {
		q = q.Where(sq.Eq{"br.user_id": *f.UserID})
	}
	switch f.Status {
	case model.StatusActive:
		q = q.Where(sq.Eq{"br.returned_at": nil})
	case model.StatusReturned:
		q = q.Where(sq.NotEq{"br.returned_at": nil})
	case model.StatusOverdue:
		q = q.Where(sq.Eq{"br.returned_at": nil}).
			Where(sq.Lt{"br.due_date": f.Now})
	case model.StatusDueToday:
		start, end := model.DayBounds(f.Now)
		q = q.Where(sq.Eq{"br.returned_at": nil}).
			Where(sq.GtOrEq{"br.due_date": start}).
			Where(sq.Lt{"br.due_date": end})
	}
	return q
}

func (r *repository) ListBorrowings(ctx context.Context, filter model.BorrowingFilter) ([]model.BorrowingDetails, error) {
	q := applyBorrowingFilter(detailsQuery(), filter)
	switch filter.Status {
	case model.StatusReturned:
		q = q.OrderBy("br.returned_at desc", "br.id")
	case model.StatusOverdue, model.StatusDueToday:
		q = q.OrderBy("br.due_date", "br.id")
	default:
		q = q.OrderBy("br.borrowed_at desc", "br.id")
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	r.log.Debug("ListBorrowings", zap.String("query", query), zap.Any("args", args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items, err := pgx.CollectRows(rows, scanDetails)
	if err != nil {
		return nil, fmt.Errorf("pgx.CollectRows: %w", err)
	}
	return items, nil
}

func (r *repository) CountBorrowings(ctx context.Context, filter model.BorrowingFilter) (int, error) {
	q := applyBorrowingFilter(
		qb.Select("count(*)").From(borrowingsTableName+" br"),
		filter,
	)
	query, args, err := q.ToSql()
	if err != nil {
		return 0, err
	}
	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
