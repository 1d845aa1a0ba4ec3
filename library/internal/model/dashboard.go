package model

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

type LibrarianDashboard struct {
	TotalBooks              int             `json:"total_books"`
	TotalBorrowedBooks      int             `json:"total_borrowed_books"`
	BooksDueToday           int             `json:"books_due_today"`
	OverdueBooks            int             `json:"overdue_books"`
	MembersWithOverdueBooks []MemberOverdue `json:"members_with_overdue_books"`
	RecentBorrowings        []BorrowingView `json:"recent_borrowings"`
	GeneratedAt             time.Time       `json:"generated_at"`
}

type MemberOverdue struct {
	UserID       uuid.UUID       `json:"user_id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	OverdueCount int             `json:"overdue_count"`
	OverdueBooks []BorrowingView `json:"overdue_books"`
}

type MemberDashboard struct {
	BorrowedBooks    []BorrowingView `json:"borrowed_books"`
	OverdueBooks     []BorrowingView `json:"overdue_books"`
	BorrowingHistory []BorrowingView `json:"borrowing_history"`
	GeneratedAt      time.Time       `json:"generated_at"`
}

// GroupOverdueByMember groups overdue borrowings per borrower, ordered by
// overdue count (desc) and then by name.
func GroupOverdueByMember(overdue []BorrowingView) []MemberOverdue {
	idx := make(map[uuid.UUID]int)
	groups := make([]MemberOverdue, 0)
	for _, v := range overdue {
		i, ok := idx[v.UserID]
		if !ok {
			i = len(groups)
			idx[v.UserID] = i
			groups = append(groups, MemberOverdue{
				UserID: v.UserID,
				Name:   v.User.Name,
				Email:  v.User.Email,
			})
		}
		groups[i].OverdueCount++
		groups[i].OverdueBooks = append(groups[i].OverdueBooks, v)
	}
	sort.SliceStable(groups, func(a, b int) bool {
		if groups[a].OverdueCount != groups[b].OverdueCount {
			return groups[a].OverdueCount > groups[b].OverdueCount
		}
		return groups[a].Name < groups[b].Name
	})
	return groups
}
