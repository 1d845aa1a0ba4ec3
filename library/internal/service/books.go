package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-management/library/internal/cache"
	"github.com/Astemirdum/library-management/library/internal/errs"
	"github.com/Astemirdum/library-management/library/internal/model"
	"github.com/Astemirdum/library-management/library/internal/policy"
	"github.com/Astemirdum/library-management/library/internal/repository"
)

func (s *Service) ListBooks(ctx context.Context, caller *model.Caller, filter model.BookFilter) (model.ListBooks, error) {
	action := policy.ActionRead
	if filter.Query != "" {
		action = policy.ActionSearch
	}
	if err := policy.Authorize(caller, action, policy.ResourceBook, uuid.Nil); err != nil {
		return model.ListBooks{}, err
	}
	return s.repo.ListBooks(ctx, filter)
}

func (s *Service) GetBook(ctx context.Context, caller *model.Caller, id uuid.UUID) (model.Book, error) {
	if err := policy.Authorize(caller, policy.ActionRead, policy.ResourceBook, uuid.Nil); err != nil {
		return model.Book{}, err
	}

	book, err := s.cache.GetBook(ctx, id)
	if err == nil {
		return book, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.log.Warn("cache.GetBook", zap.Stringer("book_id", id), zap.Error(err))
	}

	book, err = s.repo.GetBook(ctx, id)
	if err != nil {
		return model.Book{}, err
	}
	if err := s.cache.SetBook(ctx, book); err != nil {
		s.log.Warn("cache.SetBook", zap.Stringer("book_id", id), zap.Error(err))
	}
	return book, nil
}

func (s *Service) CreateBook(ctx context.Context, caller *model.Caller, in model.BookInput) (model.Book, error) {
	if err := policy.Authorize(caller, policy.ActionCreate, policy.ResourceBook, uuid.Nil); err != nil {
		return model.Book{}, err
	}

	book, verr := model.NewBook(in)
	var created model.Book
	err := s.repo.WithTx(ctx, func(tx repository.Repository) error {
		if err := checkBook(ctx, tx, book, verr); err != nil {
			return err
		}
		var err error
		created, err = tx.CreateBook(ctx, book)
		return err
	})
	if err != nil {
		return model.Book{}, err
	}
	return created, nil
}

func (s *Service) UpdateBook(ctx context.Context, caller *model.Caller, id uuid.UUID, in model.BookInput) (model.Book, error) {
	if err := policy.Authorize(caller, policy.ActionUpdate, policy.ResourceBook, uuid.Nil); err != nil {
		return model.Book{}, err
	}

	var updated model.Book
	err := s.repo.WithTx(ctx, func(tx repository.Repository) error {
		book, err := tx.LockBook(ctx, id)
		if err != nil {
			return err
		}
		book.Apply(in)
		if err := checkBook(ctx, tx, book, book.Validate()); err != nil {
			return err
		}
		updated, err = tx.UpdateBook(ctx, book)
		return err
	})
	if err != nil {
		return model.Book{}, err
	}
	s.invalidateBook(ctx, id)
	return updated, nil
}

func (s *Service) DeleteBook(ctx context.Context, caller *model.Caller, id uuid.UUID) error {
	if err := policy.Authorize(caller, policy.ActionDelete, policy.ResourceBook, uuid.Nil); err != nil {
		return err
	}
	if err := s.repo.DeleteBook(ctx, id); err != nil {
		return err
	}
	s.invalidateBook(ctx, id)
	return nil
}

// checkBook adds the isbn uniqueness check to the field validation result,
// so the client sees every problem at once.
func checkBook(ctx context.Context, tx repository.Repository, book model.Book, verr error) error {
	v := &errs.ValidationError{}
	if verr != nil {
		var fields *errs.ValidationError
		if !errors.As(verr, &fields) {
			return verr
		}
		v.Errors = append(v.Errors, fields.Errors...)
	}
	if book.ISBN != "" {
		taken, err := tx.IsbnTaken(ctx, book.ISBN, book.ID)
		if err != nil {
			return err
		}
		if taken {
			v.Add("isbn", "has already been taken")
		}
	}
	return v.Err()
}
