//go:build integration

package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-management/library/internal/errs"
	"github.com/Astemirdum/library-management/library/internal/model"
	"github.com/Astemirdum/library-management/library/internal/repository"
	"github.com/Astemirdum/library-management/library/internal/service"
	"github.com/Astemirdum/library-management/pkg/testutil"
)

func TestAccountant_ConcurrentCheckout_Postgres(t *testing.T) {
	pool := testutil.NewPool(t)
	repo, err := repository.NewRepository(pool, zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	const borrowers = 8
	users := make([]uuid.UUID, borrowers)
	for i := range users {
		users[i] = uuid.New()
		_, err := pool.Exec(ctx, `insert into users (id, name, email, role) values ($1, $2, $3, 'member')`,
			users[i], users[i].String(), users[i].String()+"@example.com")
		require.NoError(t, err)
	}
	book, err := repo.CreateBook(ctx, model.Book{
		Title: "Last Copy", Author: "A", Genre: "G", ISBN: "last-copy", TotalCopies: 1, AvailableCopies: 1,
	})
	require.NoError(t, err)

	svc := service.NewService(repo, zap.NewNop(), service.Config{})

	var (
		wg      sync.WaitGroup
		start   = make(chan struct{})
		results = make([]error, borrowers)
	)
	for i, id := range users {
		wg.Add(1)
		go func(i int, id uuid.UUID) {
			defer wg.Done()
			<-start
			_, results[i] = svc.CreateBorrowing(ctx, &model.Caller{ID: id, Role: model.RoleMember}, book.ID)
		}(i, id)
	}
	close(start)
	wg.Wait()

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}
		require.ErrorAs(t, err, new(*errs.ValidationError), "unexpected error %v", err)
	}
	require.Equal(t, 1, successes)

	got, err := repo.GetBook(ctx, book.ID)
	require.NoError(t, err)
	require.Equal(t, 0, got.AvailableCopies)
	active, err := repo.CountBorrowings(ctx, model.BorrowingFilter{Status: model.StatusActive})
	require.NoError(t, err)
	require.Equal(t, 1, active)
}

func TestAccountant_CheckoutUnknownCaller_Postgres(t *testing.T) {
	pool := testutil.NewPool(t)
	repo, err := repository.NewRepository(pool, zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	book, err := repo.CreateBook(ctx, model.Book{
		Title: "Dune", Author: "A", Genre: "G", ISBN: "dune", TotalCopies: 1, AvailableCopies: 1,
	})
	require.NoError(t, err)

	svc := service.NewService(repo, zap.NewNop(), service.Config{})
	_, err = svc.CreateBorrowing(ctx, &model.Caller{ID: uuid.New(), Role: model.RoleMember}, book.ID)
	require.ErrorIs(t, err, errs.ErrUnauthenticated)

	got, err := repo.GetBook(ctx, book.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.AvailableCopies)
}
