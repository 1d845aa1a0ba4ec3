//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-management/library/internal/errs"
	"github.com/Astemirdum/library-management/library/internal/model"
	"github.com/Astemirdum/library-management/library/internal/repository"
	"github.com/Astemirdum/library-management/pkg/testutil"
)

func insertUser(t *testing.T, pool *pgxpool.Pool, name string, role model.Role) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`insert into users (id, name, email, role) values ($1, $2, $3, $4)`,
		id, name, name+"@example.com", role.String())
	require.NoError(t, err)
	return id
}

func newBook(title, isbn string, total int) model.Book {
	return model.Book{
		Title: title, Author: "Author", Genre: "Genre", ISBN: isbn,
		TotalCopies: total, AvailableCopies: total,
	}
}

func TestRepository_Books(t *testing.T) {
	pool := testutil.NewPool(t)
	repo, err := repository.NewRepository(pool, zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	dune, err := repo.CreateBook(ctx, newBook("Dune", "978-0441013593", 2))
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, dune.ID)
	_, err = repo.CreateBook(ctx, newBook("Emma", "978-0141439587", 0))
	require.NoError(t, err)

	_, err = repo.CreateBook(ctx, newBook("Dune again", "978-0441013593", 1))
	require.ErrorAs(t, err, new(*errs.ValidationError))

	taken, err := repo.IsbnTaken(ctx, "978-0441013593", uuid.Nil)
	require.NoError(t, err)
	require.True(t, taken)
	taken, err = repo.IsbnTaken(ctx, "978-0441013593", dune.ID)
	require.NoError(t, err)
	require.False(t, taken)

	list, err := repo.ListBooks(ctx, model.BookFilter{Query: "DUN"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)

	list, err = repo.ListBooks(ctx, model.BookFilter{AvailableOnly: true})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	require.Equal(t, dune.ID, list.Items[0].ID)

	list, err = repo.ListBooks(ctx, model.BookFilter{Query: "genre", SearchBy: model.SearchTitle})
	require.NoError(t, err)
	require.Empty(t, list.Items)

	for _, q := range []string{"_", "%", `\`} {
		list, err = repo.ListBooks(ctx, model.BookFilter{Query: q})
		require.NoError(t, err)
		require.Empty(t, list.Items, "query %q", q)
	}

	list, err = repo.ListBooks(ctx, model.BookFilter{Page: 2, Size: 1})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	require.Equal(t, "Emma", list.Items[0].Title)
	require.Equal(t, 2, list.Paging.TotalElements)

	dune.Title = "Dune Messiah"
	updated, err := repo.UpdateBook(ctx, dune)
	require.NoError(t, err)
	require.Equal(t, "Dune Messiah", updated.Title)

	require.NoError(t, repo.SetAvailableCopies(ctx, dune.ID, 1))
	got, err := repo.GetBook(ctx, dune.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.AvailableCopies)

	n, err := repo.CountBooks(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	require.NoError(t, repo.DeleteBook(ctx, dune.ID))
	require.ErrorIs(t, repo.DeleteBook(ctx, dune.ID), errs.ErrNotFound)
	_, err = repo.GetBook(ctx, dune.ID)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestRepository_Borrowings(t *testing.T) {
	pool := testutil.NewPool(t)
	repo, err := repository.NewRepository(pool, zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	userID := insertUser(t, pool, "mark", model.RoleMember)
	book, err := repo.CreateBook(ctx, newBook("Dune", "978-0441013593", 2))
	require.NoError(t, err)

	now := time.Now().UTC().Truncate(time.Microsecond)
	overdue := model.NewBorrowing(userID, book.ID, now.Add(-20*24*time.Hour), time.Time{}, now, model.DefaultLoanPeriod)
	_, err = repo.CreateBorrowing(ctx, overdue)
	require.NoError(t, err)

	active, err := repo.HasActiveBorrowing(ctx, userID, book.ID)
	require.NoError(t, err)
	require.True(t, active)

	dup := model.NewBorrowing(userID, book.ID, time.Time{}, time.Time{}, now, model.DefaultLoanPeriod)
	_, err = repo.CreateBorrowing(ctx, dup)
	require.ErrorAs(t, err, new(*errs.ValidationError))

	d, err := repo.GetBorrowing(ctx, overdue.ID)
	require.NoError(t, err)
	require.Equal(t, "Dune", d.Book.Title)
	require.Equal(t, "mark", d.User.Name)

	count, err := repo.CountBorrowings(ctx, model.BorrowingFilter{Status: model.StatusOverdue, Now: now})
	require.NoError(t, err)
	require.Equal(t, 1, count)
	items, err := repo.ListBorrowings(ctx, model.BorrowingFilter{UserID: &userID, Status: model.StatusActive, Now: now})
	require.NoError(t, err)
	require.Len(t, items, 1)

	err = repo.WithTx(ctx, func(tx repository.Repository) error {
		b, err := tx.LockBorrowing(ctx, overdue.ID)
		require.NoError(t, err)
		return tx.MarkReturned(ctx, b.ID, now)
	})
	require.NoError(t, err)
	require.ErrorIs(t, repo.MarkReturned(ctx, overdue.ID, now), errs.ErrNotFound)

	count, err = repo.CountBorrowings(ctx, model.BorrowingFilter{Status: model.StatusReturned, Now: now})
	require.NoError(t, err)
	require.Equal(t, 1, count)

	_, err = repo.CreateBorrowing(ctx, dup)
	require.NoError(t, err)

	u, err := repo.GetUser(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, "member", u.Role)
}

func TestRepository_CreateBorrowingUnknownReferences(t *testing.T) {
	pool := testutil.NewPool(t)
	repo, err := repository.NewRepository(pool, zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	userID := insertUser(t, pool, "mark", model.RoleMember)
	book, err := repo.CreateBook(ctx, newBook("Dune", "978-0441013593", 1))
	require.NoError(t, err)
	now := time.Now().UTC()

	_, err = repo.CreateBorrowing(ctx, model.NewBorrowing(uuid.New(), book.ID, time.Time{}, time.Time{}, now, model.DefaultLoanPeriod))
	require.ErrorIs(t, err, errs.ErrUnauthenticated)

	_, err = repo.CreateBorrowing(ctx, model.NewBorrowing(userID, uuid.New(), time.Time{}, time.Time{}, now, model.DefaultLoanPeriod))
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestRepository_WithTxRollsBack(t *testing.T) {
	pool := testutil.NewPool(t)
	repo, err := repository.NewRepository(pool, zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	book, err := repo.CreateBook(ctx, newBook("Dune", "978-0441013593", 2))
	require.NoError(t, err)

	errBoom := errs.NewDomainError("boom")
	err = repo.WithTx(ctx, func(tx repository.Repository) error {
		if err := tx.SetAvailableCopies(ctx, book.ID, 0); err != nil {
			return err
		}
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	got, err := repo.GetBook(ctx, book.ID)
	require.NoError(t, err)
	require.Equal(t, 2, got.AvailableCopies)
}
