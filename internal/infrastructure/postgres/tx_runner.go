package postgres

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/stockledger-api/internal/application/inventory"
	"github.com/jhoicas/stockledger-api/pkg/logger"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

const defaultRetryBase = 20 * time.Millisecond

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL READ COMMITTED.
// Ante serialization failure o deadlock reintenta la transacción completa con backoff exponencial y jitter.
type TxRunner struct {
	pool        *pgxpool.Pool
	maxAttempts int
	retryBase   time.Duration
	log         *logger.Logger
}

// NewTxRunner construye el runner con el pool. maxAttempts < 1 se trata como 1.
func NewTxRunner(pool *pgxpool.Pool, maxAttempts int, log *logger.Logger) *TxRunner {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &TxRunner{pool: pool, maxAttempts: maxAttempts, retryBase: defaultRetryBase, log: log.Component("tx_runner")}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Los errores de dominio nunca se reintentan.
func (r *TxRunner) Run(ctx context.Context, fn func(repos inventory.Repositories) error) error {
	var err error
	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		if attempt > 0 {
			if werr := sleepCtx(ctx, retryDelay(r.retryBase, attempt)); werr != nil {
				return fmt.Errorf("%w (último intento: %v)", werr, err)
			}
		}
		err = r.runOnce(ctx, fn)
		if err == nil || !isRetryable(err) {
			return err
		}
		r.log.Warn().Err(err).Int("attempt", attempt+1).Msg("conflicto transaccional, reintentando")
	}
	return err
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(repos inventory.Repositories) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepositories(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// retryDelay base * 2^(attempt-1) con full jitter en [d/2, d).
func retryDelay(base time.Duration, attempt int) time.Duration {
	if attempt > 10 {
		attempt = 10
	}
	d := base << (attempt - 1)
	half := d / 2
	return half + rand.N(d-half)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
