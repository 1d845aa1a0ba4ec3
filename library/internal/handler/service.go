package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/Astemirdum/library-management/library/internal/model"
	"github.com/Astemirdum/library-management/library/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type LibraryService interface {
	ListBooks(ctx context.Context, caller *model.Caller, filter model.BookFilter) (model.ListBooks, error)
	GetBook(ctx context.Context, caller *model.Caller, id uuid.UUID) (model.Book, error)
	CreateBook(ctx context.Context, caller *model.Caller, in model.BookInput) (model.Book, error)
	UpdateBook(ctx context.Context, caller *model.Caller, id uuid.UUID, in model.BookInput) (model.Book, error)
	DeleteBook(ctx context.Context, caller *model.Caller, id uuid.UUID) error

	ListBorrowings(ctx context.Context, caller *model.Caller, status model.BorrowingStatus) ([]model.BorrowingView, error)
	GetBorrowing(ctx context.Context, caller *model.Caller, id uuid.UUID) (model.BorrowingView, error)
	CreateBorrowing(ctx context.Context, caller *model.Caller, bookID uuid.UUID) (model.BorrowingView, error)
	ReturnBorrowing(ctx context.Context, caller *model.Caller, id uuid.UUID) (model.BorrowingView, error)

	LibrarianDashboard(ctx context.Context, caller *model.Caller) (model.LibrarianDashboard, error)
	MemberDashboard(ctx context.Context, caller *model.Caller) (model.MemberDashboard, error)

	GetUser(ctx context.Context, caller *model.Caller, id uuid.UUID) (model.User, error)
}

var _ LibraryService = (*service.Service)(nil)
