package numbering

import (
	"context"
	"fmt"
	"time"

	"github.com/Nirmal21D/StockMaster-sub001/internal/domain/repository"
)

// Prefijos de numeración por tipo de documento.
const (
	DocReceipt     = "RCP"
	DocDelivery    = "DLV"
	DocRequisition = "REQ"
	DocAdjustment  = "ADJ"
)

// Service emite números de documento legibles y monotónicos por tipo
// (ej. RCP-2026-000042). El consecutivo vive en un contador atómico en BD,
// aislado de los invariantes del libro: agotar o saltar números nunca afecta
// la consistencia del stock.
type Service struct {
	seqRepo repository.SequenceRepository
}

// NewService construye el servicio de numeración.
func NewService(seqRepo repository.SequenceRepository) *Service {
	return &Service{seqRepo: seqRepo}
}

// Next emite el siguiente número para el tipo de documento dado.
func (s *Service) Next(ctx context.Context, docType string) (string, error) {
	n, err := s.seqRepo.Next(ctx, docType)
	if err != nil {
		return "", fmt.Errorf("siguiente consecutivo %s: %w", docType, err)
	}
	return fmt.Sprintf("%s-%d-%06d", docType, time.Now().Year(), n), nil
}
