package service

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Astemirdum/library-management/library/internal/model"
	"github.com/Astemirdum/library-management/library/internal/policy"
)

// LibrarianDashboard collects the library wide aggregates. The queries are
// independent so they run concurrently; each goroutine owns one field.
func (s *Service) LibrarianDashboard(ctx context.Context, caller *model.Caller) (model.LibrarianDashboard, error) {
	if err := policy.Authorize(caller, policy.ActionAccess, policy.ResourceLibrarianDashboard, uuid.Nil); err != nil {
		return model.LibrarianDashboard{}, err
	}

	now := s.now()
	d := model.LibrarianDashboard{GeneratedAt: now}
	var overdue, recent []model.BorrowingDetails

	gg, gctx := errgroup.WithContext(ctx)
	gg.Go(func() error {
		n, err := s.repo.CountBooks(gctx)
		d.TotalBooks = n
		return err
	})
	gg.Go(func() error {
		n, err := s.repo.CountBorrowings(gctx, model.BorrowingFilter{Status: model.StatusActive, Now: now})
		d.TotalBorrowedBooks = n
		return err
	})
	gg.Go(func() error {
		n, err := s.repo.CountBorrowings(gctx, model.BorrowingFilter{Status: model.StatusDueToday, Now: now})
		d.BooksDueToday = n
		return err
	})
	gg.Go(func() error {
		var err error
		overdue, err = s.repo.ListBorrowings(gctx, model.BorrowingFilter{Status: model.StatusOverdue, Now: now})
		return err
	})
	gg.Go(func() error {
		var err error
		recent, err = s.repo.ListBorrowings(gctx, model.BorrowingFilter{Now: now, Limit: s.cfg.RecentBorrowings})
		return err
	})
	if err := gg.Wait(); err != nil {
		return model.LibrarianDashboard{}, err
	}

	overdueViews := model.NewBorrowingViews(overdue, now)
	d.OverdueBooks = len(overdueViews)
	d.MembersWithOverdueBooks = model.GroupOverdueByMember(overdueViews)
	d.RecentBorrowings = model.NewBorrowingViews(recent, now)
	return d, nil
}

func (s *Service) MemberDashboard(ctx context.Context, caller *model.Caller) (model.MemberDashboard, error) {
	if err := policy.Authorize(caller, policy.ActionAccess, policy.ResourceMemberDashboard, uuid.Nil); err != nil {
		return model.MemberDashboard{}, err
	}

	now := s.now()
	userID := caller.ID
	d := model.MemberDashboard{GeneratedAt: now}
	var active, overdue, history []model.BorrowingDetails

	gg, gctx := errgroup.WithContext(ctx)
	gg.Go(func() error {
		var err error
		active, err = s.repo.ListBorrowings(gctx, model.BorrowingFilter{UserID: &userID, Status: model.StatusActive, Now: now})
		return err
	})
	gg.Go(func() error {
		var err error
		overdue, err = s.repo.ListBorrowings(gctx, model.BorrowingFilter{UserID: &userID, Status: model.StatusOverdue, Now: now})
		return err
	})
	gg.Go(func() error {
		var err error
		history, err = s.repo.ListBorrowings(gctx, model.BorrowingFilter{
			UserID: &userID, Status: model.StatusReturned, Now: now, Limit: s.cfg.HistoryLimit,
		})
		return err
	})
	if err := gg.Wait(); err != nil {
		return model.MemberDashboard{}, err
	}

	d.BorrowedBooks = model.NewBorrowingViews(active, now)
	d.OverdueBooks = model.NewBorrowingViews(overdue, now)
	d.BorrowingHistory = model.NewBorrowingViews(history, now)
	return d, nil
}
