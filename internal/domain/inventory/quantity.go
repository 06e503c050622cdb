package inventory

import (
	"math"

	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// MaxQuantity límite de cualquier cantidad o saldo; coincide con la columna INTEGER de PostgreSQL.
const MaxQuantity = math.MaxInt32

// CheckQuantity rechaza magnitudes fuera de [-MaxQuantity, MaxQuantity].
func CheckQuantity(qty int) error {
	if qty > MaxQuantity || qty < -MaxQuantity {
		return domain.Invalid("la cantidad %d excede el máximo permitido (%d)", qty, MaxQuantity)
	}
	return nil
}

// NextQuantity aplica la regla de transición de cantidad (servicio de dominio puro).
//
//	ENTRADA            before + qty
//	SAIDA              before - |qty|
//	TRANSFERENCIA      before - |qty| en el origen, before + |qty| en el destino (leg == LegInbound)
//	AJUSTE_INVENTARIO  qty (valor absoluto del conteo)
//
// El resultado puede ser negativo; quien llama decide rechazarlo antes de escribir.
// Un saldo resultante por encima de MaxQuantity es entrada inválida.
func NextQuantity(before, qty int, t entity.MovementType, leg entity.TransferLeg) (int, error) {
	if err := CheckQuantity(qty); err != nil {
		return before, err
	}
	if err := CheckQuantity(before); err != nil {
		return before, err
	}
	// ambos operandos caben en int32; la suma en int64 no desborda
	b, q := int64(before), int64(qty)
	var next int64
	switch t {
	case entity.MovementEntrada:
		next = b + q
	case entity.MovementSaida:
		next = b - abs64(q)
	case entity.MovementTransferencia:
		if leg == entity.LegInbound {
			next = b + abs64(q)
		} else {
			next = b - abs64(q)
		}
	case entity.MovementAjusteInventario:
		next = q
	default:
		return before, domain.Invalid("tipo de movimiento desconocido %q", t)
	}
	if next > MaxQuantity {
		return before, domain.Invalid("el saldo resultante (%d) excede el máximo permitido (%d)", next, MaxQuantity)
	}
	return int(next), nil
}

// Requested devuelve la cantidad que el movimiento intenta retirar, para los mensajes de stock insuficiente.
func Requested(qty int, t entity.MovementType) int {
	if t == entity.MovementAjusteInventario {
		return qty
	}
	return abs(qty)
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
