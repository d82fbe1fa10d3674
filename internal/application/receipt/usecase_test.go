package receipt_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nirmal21D/StockMaster-sub001/internal/application/dto"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/ledger"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/ledger/ledgertest"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/numbering"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/receipt"
	"github.com/Nirmal21D/StockMaster-sub001/internal/domain"
	"github.com/Nirmal21D/StockMaster-sub001/internal/domain/entity"
)

type fixture struct {
	s  *ledgertest.Store
	uc *receipt.UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := ledgertest.NewStore()
	s.SeedWarehouse("bod-1")
	s.SeedProduct("prod-1")
	s.SeedProduct("prod-2")

	tx := ledgertest.NewTxRunner(s)
	eng := ledger.NewEngine(tx, zerolog.Nop())
	uc := receipt.NewUseCase(
		tx, eng,
		&ledgertest.ReceiptRepo{S: s},
		&ledgertest.ProductRepo{S: s},
		&ledgertest.WarehouseRepo{S: s},
		numbering.NewService(&ledgertest.SequenceRepo{S: s}),
	)
	return &fixture{s: s, uc: uc}
}

func (f *fixture) create(t *testing.T, lines ...dto.ReceiptLineRequest) *dto.ReceiptResponse {
	t.Helper()
	out, err := f.uc.Create(context.Background(), "user-1", dto.CreateReceiptRequest{
		WarehouseID:  "bod-1",
		SupplierName: "Proveedor SA",
		Lines:        lines,
	})
	require.NoError(t, err)
	return out
}

func line(productID string, qty int64) dto.ReceiptLineRequest {
	return dto.ReceiptLineRequest{ProductID: productID, Quantity: decimal.NewFromInt(qty)}
}

func TestCreate_RecepcionEnBorradorConReferencia(t *testing.T) {
	f := newFixture(t)
	out := f.create(t, line("prod-1", 5), line("prod-2", 3))

	assert.Equal(t, string(entity.ReceiptDraft), out.Status)
	assert.Regexp(t, `^RCP-\d{4}-\d{6}$`, out.Reference)
	assert.Len(t, out.Lines, 2)
	assert.Equal(t, "user-1", out.CreatedBy)

	// Crear no mueve stock: el libro sigue vacío.
	assert.Equal(t, 0, f.s.MovementCount())
}

func TestCreate_RechazaBodegaInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Create(context.Background(), "user-1", dto.CreateReceiptRequest{
		WarehouseID: "bod-fantasma",
		Lines:       []dto.ReceiptLineRequest{line("prod-1", 5)},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_RechazaLineasInvalidas(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Create(context.Background(), "user-1", dto.CreateReceiptRequest{
		WarehouseID: "bod-1",
		Lines:       []dto.ReceiptLineRequest{line("prod-1", 0)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero no es una línea válida")

	_, err = f.uc.Create(context.Background(), "user-1", dto.CreateReceiptRequest{
		WarehouseID: "bod-1",
		Lines:       []dto.ReceiptLineRequest{line("prod-fantasma", 5)},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto inexistente")
}

func TestConfirm_PasaDeDraftAWaiting(t *testing.T) {
	f := newFixture(t)
	r := f.create(t, line("prod-1", 5))

	out, err := f.uc.Confirm(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.ReceiptWaiting), out.Status)

	// Confirmar de nuevo es una transición inválida.
	_, err = f.uc.Confirm(context.Background(), r.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestValidate_GeneraUnMovimientoPorLineaYCierra(t *testing.T) {
	f := newFixture(t)
	r := f.create(t, line("prod-1", 5), line("prod-2", 3))
	_, err := f.uc.Confirm(context.Background(), r.ID)
	require.NoError(t, err)

	out, err := f.uc.Validate(context.Background(), r.ID, "user-2")
	require.NoError(t, err)

	assert.Equal(t, string(entity.ReceiptDone), out.Status)
	assert.Equal(t, "user-2", out.ValidatedBy)
	require.NotNil(t, out.ValidatedAt)

	assert.Equal(t, 2, f.s.MovementCount(), "un movimiento RECEIPT por línea")
	assert.True(t, f.s.LevelQty("prod-1", "bod-1", "").Equal(decimal.NewFromInt(5)))
	assert.True(t, f.s.LevelQty("prod-2", "bod-1", "").Equal(decimal.NewFromInt(3)))

	for _, m := range f.s.Movements {
		assert.Equal(t, entity.MovementTypeRECEIPT, m.Type)
		assert.Equal(t, entity.SourceDocReceipt, m.SourceDocType)
		assert.Equal(t, r.ID, m.SourceDocID)
		assert.NotEmpty(t, m.SourceLineID, "cada movimiento referencia la línea que lo generó")
	}
}

func TestValidate_DesdeDraftTambienEsValido(t *testing.T) {
	f := newFixture(t)
	r := f.create(t, line("prod-1", 5))

	out, err := f.uc.Validate(context.Background(), r.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, string(entity.ReceiptDone), out.Status)
}

func TestValidate_NoAplicaDosVeces(t *testing.T) {
	f := newFixture(t)
	r := f.create(t, line("prod-1", 5))
	_, err := f.uc.Validate(context.Background(), r.ID, "user-1")
	require.NoError(t, err)

	_, err = f.uc.Validate(context.Background(), r.ID, "user-1")
	assert.ErrorIs(t, err, domain.ErrInvalidState, "re-validar un documento DONE debe fallar")

	// La entrada no se duplicó.
	assert.Equal(t, 1, f.s.MovementCount())
	assert.True(t, f.s.LevelQty("prod-1", "bod-1", "").Equal(decimal.NewFromInt(5)))
}

func TestValidate_SinLineasFalla(t *testing.T) {
	f := newFixture(t)
	r := f.create(t)

	_, err := f.uc.Validate(context.Background(), r.ID, "user-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidate_DocumentoInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Validate(context.Background(), "no-existe", "user-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_SoloEnDraft(t *testing.T) {
	f := newFixture(t)
	r := f.create(t, line("prod-1", 5))

	supplier := "Otro Proveedor"
	out, err := f.uc.Update(context.Background(), r.ID, dto.UpdateReceiptRequest{SupplierName: &supplier})
	require.NoError(t, err)
	assert.Equal(t, supplier, out.SupplierName)

	_, err = f.uc.Validate(context.Background(), r.ID, "user-1")
	require.NoError(t, err)

	_, err = f.uc.Update(context.Background(), r.ID, dto.UpdateReceiptRequest{SupplierName: &supplier})
	assert.ErrorIs(t, err, domain.ErrInvalidState, "un documento DONE es inmutable")
}

func TestUpdate_ReemplazaLineas(t *testing.T) {
	f := newFixture(t)
	r := f.create(t, line("prod-1", 5))

	out, err := f.uc.Update(context.Background(), r.ID, dto.UpdateReceiptRequest{
		Lines: []dto.ReceiptLineRequest{line("prod-2", 8)},
	})
	require.NoError(t, err)
	require.Len(t, out.Lines, 1)
	assert.Equal(t, "prod-2", out.Lines[0].ProductID)
	assert.True(t, out.Lines[0].Quantity.Equal(decimal.NewFromInt(8)))
}

func TestList_FiltraPorEstado(t *testing.T) {
	f := newFixture(t)
	r1 := f.create(t, line("prod-1", 5))
	f.create(t, line("prod-2", 3))
	_, err := f.uc.Validate(context.Background(), r1.ID, "user-1")
	require.NoError(t, err)

	done, err := f.uc.List(context.Background(), "bod-1", entity.ReceiptDone, 20, 0)
	require.NoError(t, err)
	require.Len(t, done.Items, 1)
	assert.Equal(t, r1.ID, done.Items[0].ID)

	drafts, err := f.uc.List(context.Background(), "bod-1", entity.ReceiptDraft, 20, 0)
	require.NoError(t, err)
	assert.Len(t, drafts.Items, 1)
}
