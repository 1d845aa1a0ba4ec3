package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-management/library/internal/events"
	"github.com/Astemirdum/library-management/library/internal/model"
	"github.com/Astemirdum/library-management/library/internal/policy"
	"github.com/Astemirdum/library-management/pkg/kafka"
)

// ListBorrowings returns every borrowing for librarians and only the
// caller's own for members.
func (s *Service) ListBorrowings(ctx context.Context, caller *model.Caller, status model.BorrowingStatus) ([]model.BorrowingView, error) {
	if err := policy.Authorize(caller, policy.ActionRead, policy.ResourceBorrowing, uuid.Nil); err != nil {
		return nil, err
	}
	filter := model.BorrowingFilter{Status: status, Now: s.now()}
	if caller.Role != model.RoleLibrarian {
		filter.UserID = &caller.ID
	}
	items, err := s.repo.ListBorrowings(ctx, filter)
	if err != nil {
		return nil, err
	}
	return model.NewBorrowingViews(items, filter.Now), nil
}

func (s *Service) GetBorrowing(ctx context.Context, caller *model.Caller, id uuid.UUID) (model.BorrowingView, error) {
	if err := policy.Authorize(caller, policy.ActionRead, policy.ResourceBorrowing, uuid.Nil); err != nil {
		return model.BorrowingView{}, err
	}
	d, err := s.repo.GetBorrowing(ctx, id)
	if err != nil {
		return model.BorrowingView{}, err
	}
	if err := policy.Authorize(caller, policy.ActionRead, policy.ResourceBorrowing, d.UserID); err != nil {
		return model.BorrowingView{}, err
	}
	return model.NewBorrowingView(d, s.now()), nil
}

// CreateBorrowing lends one copy of bookID to the caller.
func (s *Service) CreateBorrowing(ctx context.Context, caller *model.Caller, bookID uuid.UUID) (model.BorrowingView, error) {
	owner := uuid.Nil
	if caller != nil {
		owner = caller.ID
	}
	if err := policy.Authorize(caller, policy.ActionCreate, policy.ResourceBorrowing, owner); err != nil {
		return model.BorrowingView{}, err
	}

	b, book, err := s.accountant.Checkout(ctx, caller.ID, bookID)
	if err != nil {
		return model.BorrowingView{}, err
	}
	s.invalidateBook(ctx, bookID)
	s.publish(ctx, events.NewEvent(kafka.EventBorrowed, b, book, b.BorrowedAt))

	return s.view(ctx, b, book), nil
}

func (s *Service) ReturnBorrowing(ctx context.Context, caller *model.Caller, id uuid.UUID) (model.BorrowingView, error) {
	if err := policy.Authorize(caller, policy.ActionUpdate, policy.ResourceBorrowing, uuid.Nil); err != nil {
		return model.BorrowingView{}, err
	}

	b, book, err := s.accountant.Checkin(ctx, id)
	if err != nil {
		return model.BorrowingView{}, err
	}
	s.invalidateBook(ctx, book.ID)
	s.publish(ctx, events.NewEvent(kafka.EventReturned, b, book, *b.ReturnedAt))

	return s.view(ctx, b, book), nil
}

// view reloads the committed borrowing with its book and borrower. If the
// reload fails the write already happened, so the bare record is returned.
func (s *Service) view(ctx context.Context, b model.Borrowing, book model.Book) model.BorrowingView {
	now := s.now()
	d, err := s.repo.GetBorrowing(ctx, b.ID)
	if err != nil {
		s.log.Warn("reload borrowing", zap.Stringer("borrowing_id", b.ID), zap.Error(err))
		d = model.BorrowingDetails{Borrowing: b, Book: book.Summary()}
		d.User.ID = b.UserID
	}
	return model.NewBorrowingView(d, now)
}
