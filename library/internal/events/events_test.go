package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-management/library/internal/events"
	"github.com/Astemirdum/library-management/library/internal/model"
	"github.com/Astemirdum/library-management/pkg/circuit_breaker"
	"github.com/Astemirdum/library-management/pkg/kafka"
)

func newBorrowing() (model.Borrowing, model.Book) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	book := model.Book{ID: uuid.New(), TotalCopies: 3, AvailableCopies: 2}
	b := model.NewBorrowing(uuid.New(), book.ID, time.Time{}, time.Time{}, now, model.DefaultLoanPeriod)
	return b, book
}

func TestPublisher_Publish(t *testing.T) {
	t.Parallel()

	b, book := newBorrowing()
	event := events.NewEvent(kafka.EventBorrowed, b, book, b.BorrowedAt)

	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var got kafka.EventBorrowing
		if err := json.Unmarshal(val, &got); err != nil {
			return err
		}
		if got.BorrowingID != b.ID.String() || got.EventType != kafka.EventBorrowed {
			return errors.New("unexpected event payload")
		}
		return nil
	})

	p := events.NewPublisher(producer, "", zap.NewNop())
	require.NoError(t, p.Publish(context.Background(), event))
	require.NoError(t, p.Close())
}

func TestPublisher_OpensBreaker(t *testing.T) {
	t.Parallel()

	b, book := newBorrowing()
	event := events.NewEvent(kafka.EventReturned, b, book, b.BorrowedAt)

	producer := mocks.NewSyncProducer(t, nil)
	for i := 0; i < 5; i++ {
		producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)
	}

	p := events.NewPublisher(producer, kafka.BorrowingsTopic, zap.NewNop())
	for i := 0; i < 5; i++ {
		require.ErrorIs(t, p.Publish(context.Background(), event), sarama.ErrOutOfBrokers)
	}
	require.ErrorIs(t, p.Publish(context.Background(), event), circuit_breaker.ErrOpenCB)
	require.NoError(t, p.Close())
}

func TestNop_Publish(t *testing.T) {
	t.Parallel()
	require.NoError(t, events.Nop{}.Publish(context.Background(), kafka.EventBorrowing{}))
}
