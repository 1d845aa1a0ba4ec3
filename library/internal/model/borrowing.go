package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/Astemirdum/library-management/library/internal/errs"
)

const (
	DefaultLoanPeriod = 14 * 24 * time.Hour
	day               = 24 * time.Hour
)

type Borrowing struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	UserID     uuid.UUID  `json:"user_id" db:"user_id"`
	BookID     uuid.UUID  `json:"book_id" db:"book_id"`
	BorrowedAt time.Time  `json:"borrowed_at" db:"borrowed_at"`
	DueDate    time.Time  `json:"due_date" db:"due_date"`
	ReturnedAt *time.Time `json:"returned_at" db:"returned_at"`
}

// NewBorrowing opens an active borrowing. Zero borrowedAt means now, zero
// dueDate means borrowedAt plus the loan period.
func NewBorrowing(userID, bookID uuid.UUID, borrowedAt, dueDate, now time.Time, loanPeriod time.Duration) Borrowing {
	if borrowedAt.IsZero() {
		borrowedAt = now
	}
	if dueDate.IsZero() {
		dueDate = borrowedAt.Add(loanPeriod)
	}
	return Borrowing{
		ID:         uuid.New(),
		UserID:     userID,
		BookID:     bookID,
		BorrowedAt: borrowedAt,
		DueDate:    dueDate,
	}
}

func (b *Borrowing) IsReturned() bool {
	return b.ReturnedAt != nil
}

func (b *Borrowing) IsOverdue(now time.Time) bool {
	return !b.IsReturned() && b.DueDate.Before(now)
}

func (b *Borrowing) DaysOverdue(now time.Time) int {
	if !b.IsOverdue(now) {
		return 0
	}
	return int(now.Sub(b.DueDate) / day)
}

// MarkAsReturned is the only transition: Active -> Returned.
func (b *Borrowing) MarkAsReturned(now time.Time) error {
	if b.IsReturned() {
		return errs.NewDomainError("Book has already been returned")
	}
	at := now
	b.ReturnedAt = &at
	return nil
}

// IsDueOn reports whether an active borrowing falls due on the calendar day
// containing now, in now's location.
func (b *Borrowing) IsDueOn(now time.Time) bool {
	if b.IsReturned() {
		return false
	}
	start, end := DayBounds(now)
	due := b.DueDate.In(now.Location())
	return !due.Before(start) && due.Before(end)
}

// DayBounds returns [midnight, next midnight) of the day containing t.
func DayBounds(t time.Time) (time.Time, time.Time) {
	y, m, d := t.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

type BorrowingStatus string

const (
	StatusAny      BorrowingStatus = ""
	StatusActive   BorrowingStatus = "active"
	StatusReturned BorrowingStatus = "returned"
	StatusOverdue  BorrowingStatus = "overdue"
	StatusDueToday BorrowingStatus = "due_today"
)

func ParseBorrowingStatus(s string) (BorrowingStatus, bool) {
	switch st := BorrowingStatus(s); st {
	case StatusAny, StatusActive, StatusReturned, StatusOverdue, StatusDueToday:
		return st, true
	}
	return StatusAny, false
}

type BorrowingFilter struct {
	UserID *uuid.UUID
	Status BorrowingStatus
	// Now anchors the overdue and due_today filters.
	Now time.Time
	// Limit 0 means no limit.
	Limit int
}

// BorrowingDetails is a borrowing joined with its book and borrower.
type BorrowingDetails struct {
	Borrowing
	Book BookSummary `json:"book"`
	User UserSummary `json:"user"`
}

// BorrowingView is a borrowing as of a point in time.
type BorrowingView struct {
	BorrowingDetails
	Overdue     bool `json:"overdue"`
	DaysOverdue int  `json:"days_overdue"`
}

func NewBorrowingView(d BorrowingDetails, now time.Time) BorrowingView {
	return BorrowingView{
		BorrowingDetails: d,
		Overdue:          d.IsOverdue(now),
		DaysOverdue:      d.DaysOverdue(now),
	}
}

func NewBorrowingViews(items []BorrowingDetails, now time.Time) []BorrowingView {
	views := make([]BorrowingView, 0, len(items))
	for i := range items {
		views = append(views, NewBorrowingView(items[i], now))
	}
	return views
}
