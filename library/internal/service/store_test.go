package service_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Astemirdum/library-management/library/internal/errs"
	"github.com/Astemirdum/library-management/library/internal/model"
	"github.com/Astemirdum/library-management/library/internal/repository"
)

// memStore is an in-memory repository.Repository. Transactions are
// serialised by txMu, which stands in for the row lock on the book, and
// are rolled back by restoring a snapshot.
type memStore struct {
	txMu sync.Mutex

	mu         sync.Mutex
	books      map[uuid.UUID]model.Book
	borrowings map[uuid.UUID]model.Borrowing
	users      map[uuid.UUID]model.User
}

type memRepo struct {
	s    *memStore
	inTx bool
}

var _ repository.Repository = (*memRepo)(nil)

func newMemRepo() *memRepo {
	return &memRepo{s: &memStore{
		books:      make(map[uuid.UUID]model.Book),
		borrowings: make(map[uuid.UUID]model.Borrowing),
		users:      make(map[uuid.UUID]model.User),
	}}
}

func (r *memRepo) addUser(name string, role model.Role) model.User {
	u := model.User{
		ID:    uuid.New(),
		Name:  name,
		Email: strings.ToLower(name) + "@example.com",
		Role:  role.String(),
	}
	r.s.mu.Lock()
	r.s.users[u.ID] = u
	r.s.mu.Unlock()
	return u
}

func (r *memRepo) addBook(title string, total, available int) model.Book {
	b := model.Book{
		ID:              uuid.New(),
		Title:           title,
		Author:          "Author of " + title,
		Genre:           "Fiction",
		ISBN:            "isbn-" + strings.ReplaceAll(strings.ToLower(title), " ", "-"),
		TotalCopies:     total,
		AvailableCopies: available,
	}
	r.s.mu.Lock()
	r.s.books[b.ID] = b
	r.s.mu.Unlock()
	return b
}

func (r *memRepo) addBorrowing(b model.Borrowing) {
	r.s.mu.Lock()
	r.s.borrowings[b.ID] = b
	r.s.mu.Unlock()
}

func (r *memRepo) book(id uuid.UUID) model.Book {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.books[id]
}

func (r *memRepo) activeCount(bookID uuid.UUID) int {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, b := range r.s.borrowings {
		if b.BookID == bookID && !b.IsReturned() {
			n++
		}
	}
	return n
}

func (r *memRepo) WithTx(_ context.Context, fn func(tx repository.Repository) error) error {
	if r.inTx {
		return fn(r)
	}
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	r.s.mu.Lock()
	books, borrowings := cloneMap(r.s.books), cloneMap(r.s.borrowings)
	r.s.mu.Unlock()

	if err := fn(&memRepo{s: r.s, inTx: true}); err != nil {
		r.s.mu.Lock()
		r.s.books, r.s.borrowings = books, borrowings
		r.s.mu.Unlock()
		return err
	}
	return nil
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (r *memRepo) ListBooks(_ context.Context, filter model.BookFilter) (model.ListBooks, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	items := make([]model.Book, 0)
	for _, b := range r.s.books {
		if matchBook(filter, b) {
			items = append(items, b)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Title < items[j].Title })
	total := len(items)
	if filter.Page != 0 && filter.Size != 0 {
		from := min((filter.Page-1)*filter.Size, total)
		items = items[from:min(from+filter.Size, total)]
	}
	return model.ListBooks{
		Paging: model.Paging{Page: filter.Page, PageSize: filter.Size, TotalElements: total},
		Items:  items,
	}, nil
}

// matchBook is the ILIKE filter of the Postgres repository: a literal,
// case-insensitive substring match.
func matchBook(f model.BookFilter, b model.Book) bool {
	if f.AvailableOnly && !b.Available() {
		return false
	}
	if f.Query == "" {
		return true
	}
	q := strings.ToLower(f.Query)
	contains := func(s string) bool { return strings.Contains(strings.ToLower(s), q) }
	switch f.SearchBy {
	case model.SearchTitle:
		return contains(b.Title)
	case model.SearchAuthor:
		return contains(b.Author)
	case model.SearchGenre:
		return contains(b.Genre)
	}
	return contains(b.Title) || contains(b.Author) || contains(b.Genre)
}

func matchBorrowing(f model.BorrowingFilter, b model.Borrowing) bool {
	if f.UserID != nil && b.UserID != *f.UserID {
		return false
	}
	switch f.Status {
	case model.StatusActive:
		return !b.IsReturned()
	case model.StatusReturned:
		return b.IsReturned()
	case model.StatusOverdue:
		return b.IsOverdue(f.Now)
	case model.StatusDueToday:
		return b.IsDueOn(f.Now)
	}
	return true
}

func (r *memRepo) GetBook(_ context.Context, id uuid.UUID) (model.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.books[id]
	if !ok {
		return model.Book{}, errs.ErrNotFound
	}
	return b, nil
}

func (r *memRepo) LockBook(ctx context.Context, id uuid.UUID) (model.Book, error) {
	return r.GetBook(ctx, id)
}

func (r *memRepo) IsbnTaken(_ context.Context, isbn string, except uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.books {
		if b.ID != except && strings.EqualFold(b.ISBN, isbn) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) CreateBook(_ context.Context, book model.Book) (model.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if book.ID == uuid.Nil {
		book.ID = uuid.New()
	}
	book.CreatedAt = time.Now().UTC()
	book.UpdatedAt = book.CreatedAt
	r.s.books[book.ID] = book
	return book, nil
}

func (r *memRepo) UpdateBook(_ context.Context, book model.Book) (model.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.books[book.ID]; !ok {
		return model.Book{}, errs.ErrNotFound
	}
	book.UpdatedAt = time.Now().UTC()
	r.s.books[book.ID] = book
	return book, nil
}

func (r *memRepo) DeleteBook(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.books[id]; !ok {
		return errs.ErrNotFound
	}
	delete(r.s.books, id)
	for bid, b := range r.s.borrowings {
		if b.BookID == id {
			delete(r.s.borrowings, bid)
		}
	}
	return nil
}

func (r *memRepo) SetAvailableCopies(_ context.Context, id uuid.UUID, available int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.books[id]
	if !ok {
		return errs.ErrNotFound
	}
	b.AvailableCopies = available
	r.s.books[id] = b
	return nil
}

func (r *memRepo) CountBooks(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.books), nil
}

func (r *memRepo) HasActiveBorrowing(_ context.Context, userID, bookID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.borrowings {
		if b.UserID == userID && b.BookID == bookID && !b.IsReturned() {
			return true, nil
		}
	}
	return false, nil
}

// CreateBorrowing enforces the same constraints as the borrowings table:
// both foreign keys and one active borrowing per user and book.
func (r *memRepo) CreateBorrowing(_ context.Context, b model.Borrowing) (model.Borrowing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[b.UserID]; !ok {
		return model.Borrowing{}, errs.ErrUnauthenticated
	}
	if _, ok := r.s.books[b.BookID]; !ok {
		return model.Borrowing{}, errs.ErrNotFound
	}
	for _, other := range r.s.borrowings {
		if other.UserID == b.UserID && other.BookID == b.BookID && !other.IsReturned() {
			return model.Borrowing{}, errs.NewValidationError(errs.FieldBase, "You have already borrowed this book")
		}
	}
	r.s.borrowings[b.ID] = b
	return b, nil
}

func (r *memRepo) details(b model.Borrowing) model.BorrowingDetails {
	book := r.s.books[b.BookID]
	user := r.s.users[b.UserID]
	return model.BorrowingDetails{
		Borrowing: b,
		Book:      book.Summary(),
		User:      model.UserSummary{ID: b.UserID, Name: user.Name, Email: user.Email},
	}
}

func (r *memRepo) GetBorrowing(_ context.Context, id uuid.UUID) (model.BorrowingDetails, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.borrowings[id]
	if !ok {
		return model.BorrowingDetails{}, errs.ErrNotFound
	}
	return r.details(b), nil
}

func (r *memRepo) LockBorrowing(_ context.Context, id uuid.UUID) (model.Borrowing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.borrowings[id]
	if !ok {
		return model.Borrowing{}, errs.ErrNotFound
	}
	return b, nil
}

func (r *memRepo) MarkReturned(_ context.Context, id uuid.UUID, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.borrowings[id]
	if !ok || b.IsReturned() {
		return errs.ErrNotFound
	}
	b.ReturnedAt = &at
	r.s.borrowings[id] = b
	return nil
}

func (r *memRepo) ListBorrowings(_ context.Context, filter model.BorrowingFilter) ([]model.BorrowingDetails, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	items := make([]model.BorrowingDetails, 0)
	for _, b := range r.s.borrowings {
		if matchBorrowing(filter, b) {
			items = append(items, r.details(b))
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].BorrowedAt.After(items[j].BorrowedAt)
	})
	if filter.Limit > 0 && len(items) > filter.Limit {
		items = items[:filter.Limit]
	}
	return items, nil
}

func (r *memRepo) CountBorrowings(ctx context.Context, filter model.BorrowingFilter) (int, error) {
	items, err := r.ListBorrowings(ctx, filter)
	return len(items), err
}

func (r *memRepo) GetUser(_ context.Context, id uuid.UUID) (model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return model.User{}, errs.ErrNotFound
	}
	return u, nil
}
