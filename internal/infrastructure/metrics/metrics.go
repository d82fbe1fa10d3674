package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Contadores de negocio expuestos en /metrics. Los incrementan los handlers
// HTTP al completar cada operación; el núcleo del libro no los conoce.
var (
	// MovementsApplied movimientos agregados al libro, por tipo.
	MovementsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stockmaster_movements_applied_total",
		Help: "Movimientos aplicados al libro, por tipo.",
	}, []string{"type"})

	// DocumentsValidated documentos validados, por tipo de documento.
	DocumentsValidated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stockmaster_documents_validated_total",
		Help: "Documentos validados, por tipo.",
	}, []string{"doc_type"})

	// PartialTransfers traslados cuyo lado destino falló tras aplicar el origen.
	PartialTransfers = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stockmaster_partial_transfers_total",
		Help: "Traslados con lado destino sin aplicar (requieren reconciliación).",
	})
)
