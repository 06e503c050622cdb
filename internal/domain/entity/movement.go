package entity

import "time"

// MovementType tipo grueso del movimiento; es lo único que decide la transición de cantidad.
type MovementType string

// Tipos de movimiento de estoque.
const (
	MovementEntrada          MovementType = "ENTRADA"           // entrada
	MovementSaida            MovementType = "SAIDA"             // salida
	MovementTransferencia    MovementType = "TRANSFERENCIA"     // pierna de transferencia
	MovementAjusteInventario MovementType = "AJUSTE_INVENTARIO" // corrección absoluta
)

// Valid indica si t pertenece al vocabulario cerrado de tipos.
func (t MovementType) Valid() bool {
	switch t {
	case MovementEntrada, MovementSaida, MovementTransferencia, MovementAjusteInventario:
		return true
	}
	return false
}

// MovementReason motivo del movimiento. Solo auditoría y reportes.
type MovementReason string

// Motivos de entrada.
const (
	ReasonCompraFornecedor         MovementReason = "COMPRA_FORNECEDOR"
	ReasonImportacao               MovementReason = "IMPORTACAO"
	ReasonDevolucaoBomEstado       MovementReason = "DEVOLUCAO_BOM_ESTADO"
	ReasonProdutoReparado          MovementReason = "PRODUTO_REPARADO"
	ReasonEntradaAjusteEstoque     MovementReason = "ENTRADA_AJUSTE_ESTOQUE"
	ReasonEntradaReclassificacao   MovementReason = "ENTRADA_RECLASSIFICACAO"
	ReasonRecebimentoTransferencia MovementReason = "RECEBIMENTO_TRANSFERENCIA"
	ReasonVoltaReparo              MovementReason = "VOLTA_REPARO"
	ReasonEntradaSaldao            MovementReason = "ENTRADA_SALDAO"
	ReasonDevolucaoCliente         MovementReason = "DEVOLUCAO_CLIENTE"
)

// Motivos de salida.
const (
	ReasonVenda                MovementReason = "VENDA"
	ReasonPerda                MovementReason = "PERDA"
	ReasonQuebra               MovementReason = "QUEBRA"
	ReasonDevolucaoFornecedor  MovementReason = "DEVOLUCAO_FORNECEDOR"
	ReasonEnvioReparo          MovementReason = "ENVIO_REPARO"
	ReasonSaidaReclassificacao MovementReason = "SAIDA_RECLASSIFICACAO"
	ReasonDescarteEstoque      MovementReason = "DESCARTE_ESTOQUE"
	ReasonEnvioTransferencia   MovementReason = "ENVIO_TRANSFERENCIA"
	ReasonEnvioFulfillment     MovementReason = "ENVIO_FULFILLMENT"
	ReasonSaidaAjusteEstoque   MovementReason = "SAIDA_AJUSTE_ESTOQUE"
	ReasonSaidaSaldao          MovementReason = "SAIDA_SALDAO"
	ReasonReparoEstoque        MovementReason = "REPARO_ESTOQUE"
	ReasonAmostraGratis        MovementReason = "AMOSTRA_GRATIS"
	ReasonBrinde               MovementReason = "BRINDE"
	ReasonUsoInterno           MovementReason = "USO_INTERNO"
)

// Motivos de transferencia y ajuste.
const (
	ReasonTransferenciaFilial MovementReason = "TRANSFERENCIA_FILIAL"
	ReasonReposicaoLocal      MovementReason = "REPOSICAO_LOCAL"
	ReasonAjusteInventario    MovementReason = "AJUSTE_INVENTARIO"
	ReasonCorrecaoLancamento  MovementReason = "CORRECAO_LANCAMENTO"
)

var movementReasons = map[MovementReason]struct{}{
	ReasonCompraFornecedor: {}, ReasonImportacao: {}, ReasonDevolucaoBomEstado: {}, ReasonProdutoReparado: {},
	ReasonEntradaAjusteEstoque: {}, ReasonEntradaReclassificacao: {}, ReasonRecebimentoTransferencia: {},
	ReasonVoltaReparo: {}, ReasonEntradaSaldao: {}, ReasonDevolucaoCliente: {},
	ReasonVenda: {}, ReasonPerda: {}, ReasonQuebra: {}, ReasonDevolucaoFornecedor: {}, ReasonEnvioReparo: {},
	ReasonSaidaReclassificacao: {}, ReasonDescarteEstoque: {}, ReasonEnvioTransferencia: {},
	ReasonEnvioFulfillment: {}, ReasonSaidaAjusteEstoque: {}, ReasonSaidaSaldao: {}, ReasonReparoEstoque: {},
	ReasonAmostraGratis: {}, ReasonBrinde: {}, ReasonUsoInterno: {},
	ReasonTransferenciaFilial: {}, ReasonReposicaoLocal: {}, ReasonAjusteInventario: {}, ReasonCorrecaoLancamento: {},
}

// Valid indica si r pertenece al vocabulario cerrado de motivos.
func (r MovementReason) Valid() bool {
	_, ok := movementReasons[r]
	return ok
}

// TransferLeg identifica el lado de una transferencia al que pertenece un movimiento TRANSFERENCIA.
type TransferLeg string

const (
	LegOutbound TransferLeg = "SAIDA"   // débito en el origen
	LegInbound  TransferLeg = "ENTRADA" // crédito en el destino
)

// Movement registro de auditoría inmutable de un cambio de cantidad.
// Quantity es la magnitud tal como la envió el caller; QuantityBefore/After son la foto del balance.
type Movement struct {
	ID                    string
	ProductID             string
	LocationID            string
	Type                  MovementType
	Reason                MovementReason
	Quantity              int
	QuantityBefore        int
	QuantityAfter         int
	Note                  string
	UserID                string
	DestinationLocationID string      // solo piernas de salida de TRANSFERENCIA
	TransferID            string      // vacío si no viene de una transferencia
	TransferLeg           TransferLeg // vacío salvo en TRANSFERENCIA
	CreatedAt             time.Time
}
