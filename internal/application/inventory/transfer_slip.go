package inventory

import (
	"context"
	"fmt"
)

// TransferSlipUseCase genera el PDF de una transferencia.
type TransferSlipUseCase struct {
	transfers *TransferUseCase
	generator SlipGenerator
}

// NewTransferSlipUseCase construye el caso de uso.
func NewTransferSlipUseCase(transfers *TransferUseCase, generator SlipGenerator) *TransferSlipUseCase {
	return &TransferSlipUseCase{transfers: transfers, generator: generator}
}

// Download devuelve el PDF y el nombre de archivo sugerido.
func (uc *TransferSlipUseCase) Download(ctx context.Context, transferID string) ([]byte, string, error) {
	t, err := uc.transfers.GetByID(ctx, transferID)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.generator.GenerateTransferSlip(t)
	if err != nil {
		return nil, "", fmt.Errorf("generar comprobante: %w", err)
	}
	return pdf, fmt.Sprintf("transferencia-%s.pdf", t.ID), nil
}
