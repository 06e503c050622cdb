package entity

import "time"

// TransferStatus estado de una transferencia entre locales.
type TransferStatus string

const (
	TransferPendente    TransferStatus = "PENDENTE"
	TransferEmAndamento TransferStatus = "EM_ANDAMENTO"
	TransferConcluida   TransferStatus = "CONCLUIDA"
	TransferCancelada   TransferStatus = "CANCELADA"
)

var transferTransitions = map[TransferStatus][]TransferStatus{
	TransferPendente:    {TransferEmAndamento, TransferConcluida, TransferCancelada},
	TransferEmAndamento: {TransferConcluida, TransferCancelada},
}

// Valid indica si s pertenece al vocabulario de estados.
func (s TransferStatus) Valid() bool {
	switch s {
	case TransferPendente, TransferEmAndamento, TransferConcluida, TransferCancelada:
		return true
	}
	return false
}

// CanTransitionTo indica si la máquina de estados permite pasar de s a next.
// CONCLUIDA y CANCELADA son terminales.
func (s TransferStatus) CanTransitionTo(next TransferStatus) bool {
	for _, allowed := range transferTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transfer lote de productos movidos de un local a otro en una sola operación de negocio.
type Transfer struct {
	ID                    string
	OriginLocationID      string
	DestinationLocationID string
	Status                TransferStatus
	Note                  string
	UserID                string
	Items                 []TransferItem
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// TransferItem producto y cantidad (> 0) dentro de una transferencia. Position conserva el orden del request.
type TransferItem struct {
	ID         string
	TransferID string
	ProductID  string
	Quantity   int
	Position   int
}

// HasProduct indica si algún item referencia productID.
func (t *Transfer) HasProduct(productID string) bool {
	for _, it := range t.Items {
		if it.ProductID == productID {
			return true
		}
	}
	return false
}
