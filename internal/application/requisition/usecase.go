package requisition

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Nirmal21D/StockMaster-sub001/internal/application/dto"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/numbering"
	"github.com/Nirmal21D/StockMaster-sub001/internal/domain"
	"github.com/Nirmal21D/StockMaster-sub001/internal/domain/entity"
	"github.com/Nirmal21D/StockMaster-sub001/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con el
// repositorio de requisiciones: la guarda de estado y la transición se
// confirman como una unidad.
type TxRunner interface {
	RunRequisition(ctx context.Context, fn func(
		reqRepo repository.RequisitionRepository,
	) error) error
}

// UseCase flujo de requisición: DRAFT → SUBMITTED → {APPROVED, REJECTED}.
// Pipeline puro de aprobación: nunca genera movimientos de stock, solo deja
// la obligación de una Delivery posterior.
type UseCase struct {
	txRunner      TxRunner
	reqRepo       repository.RequisitionRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	numbering     *numbering.Service
}

// NewUseCase construye el flujo de requisición.
func NewUseCase(
	txRunner TxRunner,
	reqRepo repository.RequisitionRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	numbering *numbering.Service,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		reqRepo:       reqRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		numbering:     numbering,
	}
}

// Create crea una requisición en DRAFT (las líneas pueden agregarse después).
func (uc *UseCase) Create(ctx context.Context, actorID string, in dto.CreateRequisitionRequest) (*dto.RequisitionResponse, error) {
	if in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	wh, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.buildLines(in.Lines)
	if err != nil {
		return nil, err
	}

	reference, err := uc.numbering.Next(ctx, numbering.DocRequisition)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	r := &entity.Requisition{
		ID:          uuid.New().String(),
		Reference:   reference,
		WarehouseID: in.WarehouseID,
		Status:      entity.RequisitionDraft,
		Lines:       lines,
		CreatedBy:   actorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for i := range r.Lines {
		r.Lines[i].RequisitionID = r.ID
	}
	if err := uc.reqRepo.Create(ctx, r); err != nil {
		return nil, err
	}
	return toRequisitionResponse(r), nil
}

// Update modifica bodega o líneas. Solo permitido en DRAFT.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateRequisitionRequest) (*dto.RequisitionResponse, error) {
	r, err := uc.reqRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	if !r.Status.Editable() {
		return nil, domain.ErrInvalidState
	}
	if in.WarehouseID != nil {
		wh, err := uc.warehouseRepo.GetByID(*in.WarehouseID)
		if err != nil {
			return nil, err
		}
		if wh == nil {
			return nil, domain.ErrNotFound
		}
		r.WarehouseID = *in.WarehouseID
	}
	r.UpdatedAt = time.Now()
	if err := uc.reqRepo.Update(ctx, r); err != nil {
		return nil, err
	}
	if in.Lines != nil {
		lines, err := uc.buildLines(in.Lines)
		if err != nil {
			return nil, err
		}
		for i := range lines {
			lines[i].RequisitionID = r.ID
		}
		if err := uc.reqRepo.ReplaceLines(ctx, r.ID, lines); err != nil {
			return nil, err
		}
		r.Lines = lines
	}
	return toRequisitionResponse(r), nil
}

// Submit envía la requisición a aprobación: DRAFT → SUBMITTED. Requiere
// líneas no vacías. Cualquier otro estado origen falla con ErrInvalidState.
func (uc *UseCase) Submit(ctx context.Context, id string) (*dto.RequisitionResponse, error) {
	return uc.transition(ctx, id, func(r *entity.Requisition, now time.Time) error {
		if !r.Status.CanSubmit() {
			return domain.ErrInvalidState
		}
		if len(r.Lines) == 0 {
			return domain.ErrInvalidInput
		}
		r.Status = entity.RequisitionSubmitted
		r.SubmittedAt = &now
		return nil
	})
}

// Approve aprueba la requisición: SUBMITTED → APPROVED. El aprobador puede
// fijar una bodega origen definitiva distinta de las sugeridas.
func (uc *UseCase) Approve(ctx context.Context, id, actorID string, in dto.ApproveRequisitionRequest) (*dto.RequisitionResponse, error) {
	if in.FinalSourceWarehouseID != "" {
		wh, err := uc.warehouseRepo.GetByID(in.FinalSourceWarehouseID)
		if err != nil {
			return nil, err
		}
		if wh == nil {
			return nil, domain.ErrNotFound
		}
	}
	return uc.transition(ctx, id, func(r *entity.Requisition, now time.Time) error {
		if !r.Status.CanApprove() {
			return domain.ErrInvalidState
		}
		r.Status = entity.RequisitionApproved
		r.FinalSourceWarehouseID = in.FinalSourceWarehouseID
		r.ApprovedBy = actorID
		r.ApprovedAt = &now
		return nil
	})
}

// Reject rechaza la requisición: SUBMITTED → REJECTED. La razón es obligatoria.
func (uc *UseCase) Reject(ctx context.Context, id, actorID string, in dto.RejectRequisitionRequest) (*dto.RequisitionResponse, error) {
	if in.Reason == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.transition(ctx, id, func(r *entity.Requisition, now time.Time) error {
		if !r.Status.CanReject() {
			return domain.ErrInvalidState
		}
		r.Status = entity.RequisitionRejected
		r.RejectReason = in.Reason
		r.ApprovedBy = actorID
		r.ApprovedAt = &now
		return nil
	})
}

// transition ejecuta una transición guardada dentro de una transacción,
// bloqueando la fila del documento para que dos transiciones concurrentes
// serialicen y la segunda vea el estado ya cambiado.
func (uc *UseCase) transition(ctx context.Context, id string, apply func(*entity.Requisition, time.Time) error) (*dto.RequisitionResponse, error) {
	var out *entity.Requisition
	err := uc.txRunner.RunRequisition(ctx, func(reqRepo repository.RequisitionRepository) error {
		r, err := reqRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if r == nil {
			return domain.ErrNotFound
		}
		now := time.Now()
		if err := apply(r, now); err != nil {
			return err
		}
		r.UpdatedAt = now
		if err := reqRepo.Update(ctx, r); err != nil {
			return err
		}
		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toRequisitionResponse(out), nil
}

// GetByID obtiene una requisición con sus líneas.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.RequisitionResponse, error) {
	r, err := uc.reqRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, nil
	}
	return toRequisitionResponse(r), nil
}

// List lista requisiciones por bodega y estado con paginación.
func (uc *UseCase) List(ctx context.Context, warehouseID string, status entity.RequisitionStatus, limit, offset int) (*dto.RequisitionListResponse, error) {
	list, err := uc.reqRepo.List(ctx, warehouseID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RequisitionResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toRequisitionResponse(r))
	}
	return &dto.RequisitionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func (uc *UseCase) buildLines(in []dto.RequisitionLineRequest) ([]entity.RequisitionLine, error) {
	lines := make([]entity.RequisitionLine, 0, len(in))
	for _, l := range in {
		if l.ProductID == "" || !l.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		p, err := uc.productRepo.GetByID(l.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		lines = append(lines, entity.RequisitionLine{
			ID:                         uuid.New().String(),
			ProductID:                  l.ProductID,
			Quantity:                   l.Quantity,
			SuggestedSourceWarehouseID: l.SuggestedSourceWarehouseID,
		})
	}
	return lines, nil
}

func toRequisitionResponse(r *entity.Requisition) *dto.RequisitionResponse {
	if r == nil {
		return nil
	}
	lines := make([]dto.RequisitionLineResponse, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, dto.RequisitionLineResponse{
			ID:                         l.ID,
			ProductID:                  l.ProductID,
			Quantity:                   l.Quantity,
			SuggestedSourceWarehouseID: l.SuggestedSourceWarehouseID,
		})
	}
	return &dto.RequisitionResponse{
		ID:                     r.ID,
		Reference:              r.Reference,
		WarehouseID:            r.WarehouseID,
		FinalSourceWarehouseID: r.FinalSourceWarehouseID,
		Status:                 string(r.Status),
		RejectReason:           r.RejectReason,
		Lines:                  lines,
		CreatedBy:              r.CreatedBy,
		SubmittedAt:            r.SubmittedAt,
		ApprovedBy:             r.ApprovedBy,
		ApprovedAt:             r.ApprovedAt,
		CreatedAt:              r.CreatedAt,
		UpdatedAt:              r.UpdatedAt,
	}
}
