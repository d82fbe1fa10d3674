package requisition_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nirmal21D/StockMaster-sub001/internal/application/dto"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/ledger/ledgertest"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/numbering"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/requisition"
	"github.com/Nirmal21D/StockMaster-sub001/internal/domain"
	"github.com/Nirmal21D/StockMaster-sub001/internal/domain/entity"
)

type fixture struct {
	s  *ledgertest.Store
	uc *requisition.UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := ledgertest.NewStore()
	s.SeedWarehouse("solicitante")
	s.SeedWarehouse("surtidora")
	s.SeedProduct("prod-1")

	uc := requisition.NewUseCase(
		ledgertest.NewTxRunner(s),
		&ledgertest.RequisitionRepo{S: s},
		&ledgertest.ProductRepo{S: s},
		&ledgertest.WarehouseRepo{S: s},
		numbering.NewService(&ledgertest.SequenceRepo{S: s}),
	)
	return &fixture{s: s, uc: uc}
}

func (f *fixture) create(t *testing.T, withLines bool) *dto.RequisitionResponse {
	t.Helper()
	var lines []dto.RequisitionLineRequest
	if withLines {
		lines = []dto.RequisitionLineRequest{
			{ProductID: "prod-1", Quantity: decimal.NewFromInt(5), SuggestedSourceWarehouseID: "surtidora"},
		}
	}
	out, err := f.uc.Create(context.Background(), "user-1", dto.CreateRequisitionRequest{
		WarehouseID: "solicitante",
		Lines:       lines,
	})
	require.NoError(t, err)
	return out
}

func TestCreate_BorradorConReferencia(t *testing.T) {
	f := newFixture(t)
	out := f.create(t, true)

	assert.Equal(t, string(entity.RequisitionDraft), out.Status)
	assert.Regexp(t, `^REQ-\d{4}-\d{6}$`, out.Reference)
	require.Len(t, out.Lines, 1)
	assert.Equal(t, "surtidora", out.Lines[0].SuggestedSourceWarehouseID)
}

func TestCreate_SinLineasEsValido(t *testing.T) {
	// El borrador puede nacer vacío; las líneas se exigen al enviar.
	f := newFixture(t)
	out := f.create(t, false)
	assert.Empty(t, out.Lines)
}

func TestSubmit_ExigeLineas(t *testing.T) {
	f := newFixture(t)
	r := f.create(t, false)

	_, err := f.uc.Submit(context.Background(), r.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSubmit_PasaASubmitted(t *testing.T) {
	f := newFixture(t)
	r := f.create(t, true)

	out, err := f.uc.Submit(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.RequisitionSubmitted), out.Status)
	require.NotNil(t, out.SubmittedAt)

	// Re-enviar es una transición inválida.
	_, err = f.uc.Submit(context.Background(), r.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestApprove_FijaBodegaOrigenDefinitiva(t *testing.T) {
	f := newFixture(t)
	r := f.create(t, true)
	_, err := f.uc.Submit(context.Background(), r.ID)
	require.NoError(t, err)

	out, err := f.uc.Approve(context.Background(), r.ID, "gerente-1", dto.ApproveRequisitionRequest{
		FinalSourceWarehouseID: "surtidora",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.RequisitionApproved), out.Status)
	assert.Equal(t, "surtidora", out.FinalSourceWarehouseID)
	assert.Equal(t, "gerente-1", out.ApprovedBy)
	require.NotNil(t, out.ApprovedAt)
}

func TestApprove_RechazaBodegaInexistente(t *testing.T) {
	f := newFixture(t)
	r := f.create(t, true)
	_, err := f.uc.Submit(context.Background(), r.ID)
	require.NoError(t, err)

	_, err = f.uc.Approve(context.Background(), r.ID, "gerente-1", dto.ApproveRequisitionRequest{
		FinalSourceWarehouseID: "bod-fantasma",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApprove_SoloDesdeSubmitted(t *testing.T) {
	f := newFixture(t)
	r := f.create(t, true)

	_, err := f.uc.Approve(context.Background(), r.ID, "gerente-1", dto.ApproveRequisitionRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidState, "aprobar un DRAFT debe fallar")
}

func TestReject_ExigeRazon(t *testing.T) {
	f := newFixture(t)
	r := f.create(t, true)
	_, err := f.uc.Submit(context.Background(), r.ID)
	require.NoError(t, err)

	_, err = f.uc.Reject(context.Background(), r.ID, "gerente-1", dto.RejectRequisitionRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := f.uc.Reject(context.Background(), r.ID, "gerente-1", dto.RejectRequisitionRequest{
		Reason: "sin presupuesto",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.RequisitionRejected), out.Status)
	assert.Equal(t, "sin presupuesto", out.RejectReason)
}

func TestEstadosTerminalesSonInmutables(t *testing.T) {
	f := newFixture(t)
	r := f.create(t, true)
	_, err := f.uc.Submit(context.Background(), r.ID)
	require.NoError(t, err)
	_, err = f.uc.Approve(context.Background(), r.ID, "gerente-1", dto.ApproveRequisitionRequest{})
	require.NoError(t, err)

	// Aprobado: ni re-aprobar, ni rechazar, ni editar.
	_, err = f.uc.Approve(context.Background(), r.ID, "gerente-1", dto.ApproveRequisitionRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	_, err = f.uc.Reject(context.Background(), r.ID, "gerente-1", dto.RejectRequisitionRequest{Reason: "tarde"})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	wh := "surtidora"
	_, err = f.uc.Update(context.Background(), r.ID, dto.UpdateRequisitionRequest{WarehouseID: &wh})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestUpdate_SoloEnDraft(t *testing.T) {
	f := newFixture(t)
	r := f.create(t, true)

	out, err := f.uc.Update(context.Background(), r.ID, dto.UpdateRequisitionRequest{
		Lines: []dto.RequisitionLineRequest{
			{ProductID: "prod-1", Quantity: decimal.NewFromInt(9)},
		},
	})
	require.NoError(t, err)
	require.Len(t, out.Lines, 1)
	assert.True(t, out.Lines[0].Quantity.Equal(decimal.NewFromInt(9)))

	_, err = f.uc.Submit(context.Background(), r.ID)
	require.NoError(t, err)
	_, err = f.uc.Update(context.Background(), r.ID, dto.UpdateRequisitionRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestNuncaGeneraMovimientos(t *testing.T) {
	f := newFixture(t)
	r := f.create(t, true)
	_, err := f.uc.Submit(context.Background(), r.ID)
	require.NoError(t, err)
	_, err = f.uc.Approve(context.Background(), r.ID, "gerente-1", dto.ApproveRequisitionRequest{})
	require.NoError(t, err)

	assert.Equal(t, 0, f.s.MovementCount(), "la requisición es un pipeline puro de aprobación")
}
