package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-management/library/internal/errs"
	"github.com/Astemirdum/library-management/library/internal/model"
)

var bookColumns = []string{"id", "title", "author", "genre", "isbn", "total_copies", "available_copies", "created_at", "updated_at"}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern is an ILIKE pattern matching q literally anywhere in the value.
func containsPattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}

func applyBookFilter(q sq.SelectBuilder, filter model.BookFilter) sq.SelectBuilder {
	if filter.AvailableOnly {
		q = q.Where(sq.Gt{"available_copies": 0})
	}
	if filter.Query != "" {
		pattern := containsPattern(filter.Query)
		switch filter.SearchBy {
		case model.SearchTitle, model.SearchAuthor, model.SearchGenre:
			q = q.Where(sq.ILike{string(filter.SearchBy): pattern})
		default:
			q = q.Where(sq.Or{
				sq.ILike{"title": pattern},
				sq.ILike{"author": pattern},
				sq.ILike{"genre": pattern},
			})
		}
	}
	return q
}

func (r *repository) ListBooks(ctx context.Context, filter model.BookFilter) (model.ListBooks, error) {
	q := applyBookFilter(qb.Select(bookColumns...).From(booksTableName), filter).
		OrderBy("title", "id")
	paged := filter.Page != 0 && filter.Size != 0
	if paged {
		q = q.Limit(uint64(filter.Size)).Offset(uint64((filter.Page - 1) * filter.Size))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return model.ListBooks{}, err
	}
	r.log.Debug("ListBooks", zap.String("query", query), zap.Any("args", args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return model.ListBooks{}, err
	}
	defer rows.Close()

	books, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Book])
	if err != nil {
		return model.ListBooks{}, fmt.Errorf("pgx.CollectRows: %w", err)
	}

	total := len(books)
	if paged {
		if total, err = r.countBooks(ctx, filter); err != nil {
			return model.ListBooks{}, err
		}
	}
	return model.ListBooks{
		Paging: model.Paging{
			Page:          filter.Page,
			PageSize:      filter.Size,
			TotalElements: total,
		},
		Items: books,
	}, nil
}

func (r *repository) countBooks(ctx context.Context, filter model.BookFilter) (int, error) {
	query, args, err := applyBookFilter(qb.Select("count(*)").From(booksTableName), filter).ToSql()
	if err != nil {
		return 0, err
	}
	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) GetBook(ctx context.Context, id uuid.UUID) (model.Book, error) {
	return r.getBook(ctx, id, false)
}

func (r *repository) LockBook(ctx context.Context, id uuid.UUID) (model.Book, error) {
	return r.getBook(ctx, id, true)
}

func (r *repository) getBook(ctx context.Context, id uuid.UUID, forUpdate bool) (model.Book, error) {
	q := qb.Select(bookColumns...).
		From(booksTableName).
		Where(sq.Eq{"id": id}).
		Limit(1)
	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}
	query, args, err := q.ToSql()
	if err != nil {
		return model.Book{}, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return model.Book{}, err
	}
	defer rows.Close()

	book, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Book])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Book{}, errs.ErrNotFound
		}
		return model.Book{}, err
	}
	return book, nil
}

func (r *repository) IsbnTaken(ctx context.Context, isbn string, except uuid.UUID) (bool, error) {
	query, args, err := qb.Select("1").
		Prefix("SELECT EXISTS (").
		From(booksTableName).
		Where(sq.Expr("lower(isbn) = ?", strings.ToLower(isbn))).
		Where(sq.NotEq{"id": except}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, err
	}
	var taken bool
	if err := r.db.QueryRow(ctx, query, args...).Scan(&taken); err != nil {
		return false, err
	}
	return taken, nil
}

func (r *repository) CreateBook(ctx context.Context, book model.Book) (model.Book, error) {
	now := time.Now().UTC()
	if book.ID == uuid.Nil {
		book.ID = uuid.New()
	}
	query, args, err := qb.Insert(booksTableName).
		Columns(bookColumns...).
		Values(book.ID, book.Title, book.Author, book.Genre, book.ISBN, book.TotalCopies, book.AvailableCopies, now, now).
		Suffix("RETURNING " + strings.Join(bookColumns, ", ")).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}
	return r.writeBook(ctx, "CreateBook", query, args)
}

func (r *repository) UpdateBook(ctx context.Context, book model.Book) (model.Book, error) {
	query, args, err := qb.Update(booksTableName).
		SetMap(map[string]any{
			"title":            book.Title,
			"author":           book.Author,
			"genre":            book.Genre,
			"isbn":             book.ISBN,
			"total_copies":     book.TotalCopies,
			"available_copies": book.AvailableCopies,
			"updated_at":       time.Now().UTC(),
		}).
		Where(sq.Eq{"id": book.ID}).
		Suffix("RETURNING " + strings.Join(bookColumns, ", ")).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}
	return r.writeBook(ctx, "UpdateBook", query, args)
}

func (r *repository) writeBook(ctx context.Context, op, query string, args []any) (model.Book, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return model.Book{}, r.bookWriteError(op, query, args, err)
	}
	defer rows.Close()

	book, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Book])
	if err != nil {
		return model.Book{}, r.bookWriteError(op, query, args, err)
	}
	return book, nil
}

func (r *repository) bookWriteError(op, query string, args []any, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return errs.ErrNotFound
	}
	if constraint, ok := uniqueViolation(err); ok && constraint == isbnUniqueIndex {
		return errs.NewValidationError("isbn", "has already been taken")
	}
	r.log.Error(op, zap.String("q", query), zap.Any("args", args), zap.Error(err))
	return errors.Wrap(err, op)
}

// DeleteBook removes the book; its borrowings go with it (ON DELETE CASCADE).
func (r *repository) DeleteBook(ctx context.Context, id uuid.UUID) error {
	query, args, err := qb.Delete(booksTableName).
		Where(sq.Eq{"id": id}).
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

func (r *repository) SetAvailableCopies(ctx context.Context, id uuid.UUID, available int) error {
	q := `
update books
    set available_copies = @available, updated_at = @updated_at
where id = @id`
	args := pgx.NamedArgs{
		"id":         id,
		"available":  available,
		"updated_at": time.Now().UTC(),
	}
	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *repository) CountBooks(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `select count(*) from books`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
