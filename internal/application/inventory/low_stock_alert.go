package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockledger-api/pkg/logger"
)

// LowStockAlertUseCase escanea los saldos bajo el mínimo y los envía al notifier. Solo lectura.
type LowStockAlertUseCase struct {
	balances *BalanceUseCase
	notifier LowStockNotifier
	log      *logger.Logger
}

// NewLowStockAlertUseCase construye el caso de uso.
func NewLowStockAlertUseCase(balances *BalanceUseCase, notifier LowStockNotifier, log *logger.Logger) *LowStockAlertUseCase {
	return &LowStockAlertUseCase{balances: balances, notifier: notifier, log: log.Component("low_stock_alert")}
}

// Run ejecuta un escaneo. Sin saldos bajos no se notifica. Devuelve cuántos se enviaron.
func (uc *LowStockAlertUseCase) Run(ctx context.Context) (int, error) {
	res, err := uc.balances.ListLowStock(ctx)
	if err != nil {
		return 0, err
	}
	if res.Total == 0 {
		uc.log.Debug().Msg("sin productos bajo el mínimo")
		return 0, nil
	}
	if err := uc.notifier.NotifyLowStock(ctx, res.Items); err != nil {
		return 0, fmt.Errorf("notificar estoque bajo: %w", err)
	}
	uc.log.Info().Int("items", res.Total).Msg("alerta de estoque bajo enviada")
	return res.Total, nil
}
