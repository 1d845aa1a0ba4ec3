package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Astemirdum/library-management/library/internal/errs"
)

type ListBooks struct {
	Paging `json:",inline"`
	Items  []Book `json:"items"`
}

type Paging struct {
	Page          int `json:"page"`
	PageSize      int `json:"pageSize"`
	TotalElements int `json:"totalElements"`
}

type Book struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Author          string    `json:"author" db:"author"`
	Genre           string    `json:"genre" db:"genre"`
	ISBN            string    `json:"isbn" db:"isbn"`
	TotalCopies     int       `json:"total_copies" db:"total_copies"`
	AvailableCopies int       `json:"available_copies" db:"available_copies"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

type BookSummary struct {
	ID     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	Author string    `json:"author"`
	Genre  string    `json:"genre"`
	ISBN   string    `json:"isbn"`
}

func (b *Book) Summary() BookSummary {
	return BookSummary{ID: b.ID, Title: b.Title, Author: b.Author, Genre: b.Genre, ISBN: b.ISBN}
}

func (b *Book) Available() bool {
	return b.AvailableCopies > 0
}

// Borrow takes one copy off the shelf.
func (b *Book) Borrow() error {
	if !b.Available() {
		return errs.NewDomainError("No copies available")
	}
	b.AvailableCopies--
	return nil
}

// Return puts one copy back, never exceeding the total.
func (b *Book) Return() {
	if b.AvailableCopies < b.TotalCopies {
		b.AvailableCopies++
	}
}

// Validate checks field presence and the copy-count invariants. Isbn
// uniqueness needs the store and is checked by the caller.
func (b *Book) Validate() error {
	v := &errs.ValidationError{}
	b.validate(v)
	return v.Err()
}

func (b *Book) validate(v *errs.ValidationError) {
	if strings.TrimSpace(b.Title) == "" {
		v.Add("title", "can't be blank")
	}
	if strings.TrimSpace(b.Author) == "" {
		v.Add("author", "can't be blank")
	}
	if strings.TrimSpace(b.Genre) == "" {
		v.Add("genre", "can't be blank")
	}
	if strings.TrimSpace(b.ISBN) == "" {
		v.Add("isbn", "can't be blank")
	}
	if b.TotalCopies < 0 {
		v.Add("total_copies", "must be greater than or equal to 0")
	}
	if b.AvailableCopies < 0 {
		v.Add("available_copies", "must be greater than or equal to 0")
	}
	if b.AvailableCopies > b.TotalCopies {
		v.Add("available_copies", "cannot exceed total copies")
	}
}

// BookInput carries client supplied fields. Nil means "not provided".
type BookInput struct {
	Title           *string `json:"title"`
	Author          *string `json:"author"`
	Genre           *string `json:"genre"`
	ISBN            *string `json:"isbn"`
	TotalCopies     *int    `json:"total_copies"`
	AvailableCopies *int    `json:"available_copies"`
}

// NewBook builds a book from a create request. Missing available copies
// default to the total.
func NewBook(in BookInput) (Book, error) {
	var b Book
	v := &errs.ValidationError{}
	if in.TotalCopies == nil {
		v.Add("total_copies", "can't be blank")
	}
	b.Apply(in)
	if in.AvailableCopies == nil {
		b.AvailableCopies = b.TotalCopies
	}
	b.validate(v)
	return b, v.Err()
}

func (b *Book) Apply(in BookInput) {
	if in.Title != nil {
		b.Title = strings.TrimSpace(*in.Title)
	}
	if in.Author != nil {
		b.Author = strings.TrimSpace(*in.Author)
	}
	if in.Genre != nil {
		b.Genre = strings.TrimSpace(*in.Genre)
	}
	if in.ISBN != nil {
		b.ISBN = strings.TrimSpace(*in.ISBN)
	}
	if in.TotalCopies != nil {
		b.TotalCopies = *in.TotalCopies
	}
	if in.AvailableCopies != nil {
		b.AvailableCopies = *in.AvailableCopies
	}
}

type SearchBy string

const (
	SearchAll    SearchBy = ""
	SearchTitle  SearchBy = "title"
	SearchAuthor SearchBy = "author"
	SearchGenre  SearchBy = "genre"
)

func ParseSearchBy(s string) SearchBy {
	switch SearchBy(s) {
	case SearchTitle, SearchAuthor, SearchGenre:
		return SearchBy(s)
	}
	return SearchAll
}

type BookFilter struct {
	Query         string
	SearchBy      SearchBy
	AvailableOnly bool
	Page          int
	Size          int
}
