package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Astemirdum/library-management/library/internal/errs"
	"github.com/Astemirdum/library-management/library/internal/model"
	"github.com/Astemirdum/library-management/library/internal/repository"
)

// Accountant keeps Book.available_copies in step with active borrowings.
// Each checkout and checkin is a single transaction that locks the book row,
// so two callers racing for the last copy are serialised and exactly one wins.
type Accountant struct {
	repo       repository.Repository
	now        func() time.Time
	loanPeriod time.Duration
}

func NewAccountant(repo repository.Repository, now func() time.Time, loanPeriod time.Duration) *Accountant {
	return &Accountant{repo: repo, now: now, loanPeriod: loanPeriod}
}

// Checkout opens a borrowing of bookID for userID and takes one copy off the shelf.
// A userID with no users row is an unresolved caller.
func (a *Accountant) Checkout(ctx context.Context, userID, bookID uuid.UUID) (model.Borrowing, model.Book, error) {
	var (
		created model.Borrowing
		book    model.Book
	)
	err := a.repo.WithTx(ctx, func(tx repository.Repository) error {
		if _, err := tx.GetUser(ctx, userID); err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				return errs.ErrUnauthenticated
			}
			return err
		}

		var err error
		book, err = tx.LockBook(ctx, bookID)
		if err != nil {
			return err
		}

		v := &errs.ValidationError{}
		active, err := tx.HasActiveBorrowing(ctx, userID, bookID)
		if err != nil {
			return err
		}
		if active {
			v.Add(errs.FieldBase, "You have already borrowed this book")
		}
		if !book.Available() {
			v.Add("book", "is not available")
		}
		if err := v.Err(); err != nil {
			return err
		}

		b := model.NewBorrowing(userID, bookID, time.Time{}, time.Time{}, a.now(), a.loanPeriod)
		if created, err = tx.CreateBorrowing(ctx, b); err != nil {
			return err
		}
		if err := book.Borrow(); err != nil {
			return err
		}
		return tx.SetAvailableCopies(ctx, book.ID, book.AvailableCopies)
	})
	if err != nil {
		return model.Borrowing{}, model.Book{}, err
	}
	return created, book, nil
}

// Checkin closes an active borrowing and puts its copy back. A second
// checkin fails with a DomainError and leaves the book untouched.
func (a *Accountant) Checkin(ctx context.Context, borrowingID uuid.UUID) (model.Borrowing, model.Book, error) {
	var (
		borrowing model.Borrowing
		book      model.Book
	)
	err := a.repo.WithTx(ctx, func(tx repository.Repository) error {
		var err error
		borrowing, err = tx.LockBorrowing(ctx, borrowingID)
		if err != nil {
			return err
		}
		if err := borrowing.MarkAsReturned(a.now()); err != nil {
			return err
		}
		if book, err = tx.LockBook(ctx, borrowing.BookID); err != nil {
			return err
		}
		if err := tx.MarkReturned(ctx, borrowing.ID, *borrowing.ReturnedAt); err != nil {
			return err
		}
		book.Return()
		return tx.SetAvailableCopies(ctx, book.ID, book.AvailableCopies)
	})
	if err != nil {
		return model.Borrowing{}, model.Book{}, err
	}
	return borrowing, book, nil
}
