// Package webhook entrega el resultado del escaneo de estoque bajo a un sistema externo.
package webhook

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	jsoniter "github.com/json-iterator/go"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/inventory"
	"github.com/jhoicas/stockledger-api/pkg/config"
	"github.com/jhoicas/stockledger-api/pkg/logger"
)

// Verificar en tiempo de compilación que ambos notifiers implementan LowStockNotifier.
var (
	_ inventory.LowStockNotifier = (*Notifier)(nil)
	_ inventory.LowStockNotifier = (*LogNotifier)(nil)
)

const eventLowStock = "stock.low"

// LowStockPayload cuerpo del POST al webhook.
type LowStockPayload struct {
	Event       string                `json:"event"`
	GeneratedAt time.Time             `json:"generated_at"`
	Total       int                   `json:"total"`
	Items       []dto.BalanceResponse `json:"items"`
}

// Notifier publica las alertas vía HTTP POST usando resty.
type Notifier struct {
	client *resty.Client
	url    string
	now    func() time.Time
}

// NewNotifier construye el notifier a partir de la configuración de alertas.
// WebhookToken, si no está vacío, viaja como Bearer.
func NewNotifier(cfg config.AlertsConfig) *Notifier {
	json := jsoniter.ConfigCompatibleWithStandardLibrary

	client := resty.New()
	client.JSONMarshal = json.Marshal
	client.JSONUnmarshal = json.Unmarshal
	client.
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.WebhookTimeout)
	if cfg.WebhookToken != "" {
		client.SetAuthToken(cfg.WebhookToken)
	}

	return &Notifier{
		client: client,
		url:    strings.TrimSpace(cfg.WebhookURL),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// NotifyLowStock envía los saldos bajo el mínimo. Un status >= 400 se devuelve como error.
func (n *Notifier) NotifyLowStock(ctx context.Context, items []dto.BalanceResponse) error {
	payload := LowStockPayload{
		Event:       eventLowStock,
		GeneratedAt: n.now(),
		Total:       len(items),
		Items:       items,
	}
	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post(n.url)
	if err != nil {
		return fmt.Errorf("webhook: enviar alerta: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("webhook: respuesta %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}
	return nil
}

// LogNotifier registra las alertas en el log; se usa cuando no hay webhook configurado.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notifier.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log.Component("low_stock")}
}

// NotifyLowStock emite un warn por saldo.
func (n *LogNotifier) NotifyLowStock(_ context.Context, items []dto.BalanceResponse) error {
	for _, it := range items {
		n.log.Warn().
			Str("product_id", it.ProductID).
			Str("product_sku", it.ProductSKU).
			Str("location_id", it.LocationID).
			Int("quantity", it.Quantity).
			Int("min_stock", it.MinStock).
			Msg("estoque bajo")
	}
	return nil
}
