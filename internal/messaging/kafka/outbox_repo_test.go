package kafka

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func validEvent() OutboxEvent {
	return OutboxEvent{
		ID:            uuid.NewString(),
		AggregateType: "leave",
		AggregateID:   uuid.NewString(),
		EventType:     "leave.request.submitted",
		Topic:         "hr.leave.lifecycle.v1",
		Payload:       []byte(`{"leave_id":"x"}`),
		Status:        OutboxStatusPending,
	}
}

func TestValidateOutboxEvent(t *testing.T) {
	assert.NoError(t, ValidateOutboxEvent(validEvent()))

	e := validEvent()
	e.ID = ""
	assert.Error(t, ValidateOutboxEvent(e))

	e = validEvent()
	e.Topic = ""
	assert.Error(t, ValidateOutboxEvent(e))

	e = validEvent()
	e.Payload = nil
	assert.Error(t, ValidateOutboxEvent(e))

	e = validEvent()
	e.Status = "queued"
	assert.Error(t, ValidateOutboxEvent(e))
}

func TestOutboxRepository_CreateRejectsInvalidEvent(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := NewOutboxRepository(db)

	e := validEvent()
	e.Topic = ""
	err := repo.Create(context.Background(), e)
	assert.Error(t, err)
	// The insert never reaches the database.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_CreateInsertsPendingRow(t *testing.T) {
	db, mock, _ := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	defer db.Close()

	repo := NewOutboxRepository(db)
	e := validEvent()

	mock.ExpectExec("INSERT INTO outbox_events").
		WithArgs(e.ID, e.RequestID, e.AggregateType, e.AggregateID, e.EventType, e.Topic, e.Payload, e.Status).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), e)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_CreateUsesTransaction(t *testing.T) {
	db, mock, _ := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO outbox_events").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.BeginTx(context.Background(), nil)
	assert.NoError(t, err)

	repo := NewOutboxRepository(db).WithTx(tx)
	assert.NoError(t, repo.Create(context.Background(), validEvent()))
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkFailedBumpsRetry(t *testing.T) {
	db, mock, _ := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	defer db.Close()

	repo := NewOutboxRepository(db)
	id := uuid.NewString()

	mock.ExpectExec("UPDATE outbox_events").
		WithArgs(id, OutboxStatusFailed, "broker unreachable", maxRetryBackoffSteps).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.MarkFailed(context.Background(), id, "broker unreachable"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
