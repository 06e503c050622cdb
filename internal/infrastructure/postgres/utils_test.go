package postgres

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

func TestIsRetryable(t *testing.T) {
	assert.True(t, isRetryable(&pgconn.PgError{Code: "40001"}))
	assert.True(t, isRetryable(fmt.Errorf("commit transaction: %w", &pgconn.PgError{Code: "40P01"})))
	assert.False(t, isRetryable(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isRetryable(errors.New("40001 en texto no cuenta")))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
}

func TestBuildMovementQuery(t *testing.T) {
	q, args, err := buildMovementQuery(movementFilterAll())
	assert.NoError(t, err)
	assert.Contains(t, q, `"created_at" >= $`)
	assert.Contains(t, q, `"created_at" < $`)
	assert.Contains(t, q, `ORDER BY "created_at" DESC, "id" DESC`)
	assert.Len(t, args, 7)

	q, args, err = buildMovementQuery(repository.MovementFilter{})
	assert.NoError(t, err)
	assert.NotContains(t, q, "WHERE")
	assert.Empty(t, args)
}

func movementFilterAll() repository.MovementFilter {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	return repository.MovementFilter{
		ProductID:  "p1",
		LocationID: "l1",
		TransferID: "t1",
		Type:       entity.MovementSaida,
		Reason:     entity.ReasonVenda,
		Start:      &start,
		End:        &end,
	}
}
