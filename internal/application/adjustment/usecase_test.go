package adjustment_test

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nirmal21D/StockMaster-sub001/internal/application/adjustment"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/dto"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/ledger"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/ledger/ledgertest"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/numbering"
	"github.com/Nirmal21D/StockMaster-sub001/internal/domain"
	"github.com/Nirmal21D/StockMaster-sub001/internal/domain/entity"
)

type fixture struct {
	s  *ledgertest.Store
	uc *adjustment.UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := ledgertest.NewStore()
	s.SeedWarehouse("bod-1")
	s.SeedProduct("prod-1")

	tx := ledgertest.NewTxRunner(s)
	eng := ledger.NewEngine(tx, zerolog.Nop())
	uc := adjustment.NewUseCase(
		tx, eng,
		&ledgertest.AdjustmentRepo{S: s},
		&ledgertest.ProductRepo{S: s},
		&ledgertest.WarehouseRepo{S: s},
		numbering.NewService(&ledgertest.SequenceRepo{S: s}),
	)
	return &fixture{s: s, uc: uc}
}

func apply(f *fixture, newQty int64, reason string) (*dto.AdjustmentResponse, error) {
	return f.uc.Apply(context.Background(), "user-1", dto.ApplyAdjustmentRequest{
		ProductID:   "prod-1",
		WarehouseID: "bod-1",
		NewQuantity: decimal.NewFromInt(newQty),
		Reason:      reason,
	})
}

func TestApply_FijaCantidadAbsoluta(t *testing.T) {
	f := newFixture(t)
	f.s.SeedLevel("prod-1", "bod-1", "", decimal.NewFromInt(20))

	out, err := apply(f, 15, entity.AdjustReasonCount)
	require.NoError(t, err)

	assert.Regexp(t, `^ADJ-\d{4}-\d{6}$`, out.Reference)
	assert.True(t, out.OldQuantity.Equal(decimal.NewFromInt(20)))
	assert.True(t, out.NewQuantity.Equal(decimal.NewFromInt(15)))
	assert.True(t, out.Difference.Equal(decimal.NewFromInt(-5)), "20 → 15 registra diferencia -5")
	assert.NotEmpty(t, out.MovementID)

	assert.True(t, f.s.LevelQty("prod-1", "bod-1", "").Equal(decimal.NewFromInt(15)))
	require.Equal(t, 1, f.s.MovementCount())

	m := f.s.Movements[0]
	assert.Equal(t, entity.MovementTypeADJUSTMENT, m.Type)
	assert.Equal(t, entity.SourceDocAdjustment, m.SourceDocType)
	assert.Equal(t, out.ID, m.SourceDocID)
	assert.True(t, m.Delta.Equal(decimal.NewFromInt(-5)), "el ajuste entra al libro como delta, no como absoluto")
}

func TestApply_SobreLlaveSinFila(t *testing.T) {
	// Ajustar una llave que nunca tuvo movimientos: cantidad previa cero.
	f := newFixture(t)

	out, err := apply(f, 8, entity.AdjustReasonCount)
	require.NoError(t, err)

	assert.True(t, out.OldQuantity.IsZero())
	assert.True(t, out.Difference.Equal(decimal.NewFromInt(8)))
	assert.True(t, f.s.LevelQty("prod-1", "bod-1", "").Equal(decimal.NewFromInt(8)))
}

func TestApply_DiferenciaCeroNoGeneraMovimiento(t *testing.T) {
	f := newFixture(t)
	f.s.SeedLevel("prod-1", "bod-1", "", decimal.NewFromInt(12))

	out, err := apply(f, 12, entity.AdjustReasonCount)
	require.NoError(t, err)

	assert.Empty(t, out.MovementID, "fijar la misma cantidad no agrega ruido al libro")
	assert.True(t, out.Difference.IsZero())
	assert.Equal(t, 0, f.s.MovementCount())

	// El documento de ajuste sí queda registrado.
	got, err := f.uc.GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestApply_RechazaCantidadNegativa(t *testing.T) {
	f := newFixture(t)
	_, err := apply(f, -1, entity.AdjustReasonCount)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApply_ExigeRazon(t *testing.T) {
	f := newFixture(t)
	_, err := apply(f, 5, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApply_RechazaReferenciasInexistentes(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Apply(context.Background(), "user-1", dto.ApplyAdjustmentRequest{
		ProductID:   "prod-fantasma",
		WarehouseID: "bod-1",
		NewQuantity: decimal.NewFromInt(5),
		Reason:      entity.AdjustReasonCount,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.Apply(context.Background(), "user-1", dto.ApplyAdjustmentRequest{
		ProductID:   "prod-1",
		WarehouseID: "bod-fantasma",
		NewQuantity: decimal.NewFromInt(5),
		Reason:      entity.AdjustReasonCount,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApply_AjustesSucesivosSonConsistentes(t *testing.T) {
	f := newFixture(t)

	_, err := apply(f, 10, entity.AdjustReasonCount)
	require.NoError(t, err)
	out, err := apply(f, 4, entity.AdjustReasonDamage)
	require.NoError(t, err)

	assert.True(t, out.OldQuantity.Equal(decimal.NewFromInt(10)),
		"el segundo ajuste lee la cantidad que dejó el primero")
	assert.True(t, f.s.LevelQty("prod-1", "bod-1", "").Equal(decimal.NewFromInt(4)))

	// Auditoría: el nivel sigue siendo la suma exacta del libro.
	sum, err := (&ledgertest.MovementRepo{S: f.s}).SumByKey(context.Background(), "prod-1", "bod-1", "")
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(4)))
}

func TestApply_ConcurrenciaConvergeAUnObjetivo(t *testing.T) {
	// N ajustes concurrentes sobre la misma llave: la cantidad final debe ser
	// exactamente el objetivo de uno de ellos (el último en aplicar), nunca
	// una mezcla de diferencias apiladas sobre la misma lectura.
	f := newFixture(t)

	const n = 20
	targets := make(map[string]bool, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		qty := int64(i + 1)
		targets[decimal.NewFromInt(qty).String()] = true
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := apply(f, qty, entity.AdjustReasonCount)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	final := f.s.LevelQty("prod-1", "bod-1", "")
	assert.True(t, targets[final.String()],
		"la cantidad final (%s) no corresponde a ningún objetivo enviado", final)

	// Cada ajuste deja su movimiento y el nivel sigue siendo la suma del libro.
	assert.Equal(t, n, f.s.MovementCount())
	sum, err := (&ledgertest.MovementRepo{S: f.s}).SumByKey(context.Background(), "prod-1", "bod-1", "")
	require.NoError(t, err)
	assert.True(t, sum.Equal(final))
}

func TestList_FiltraPorBodega(t *testing.T) {
	f := newFixture(t)
	f.s.SeedWarehouse("bod-2")
	_, err := apply(f, 10, entity.AdjustReasonCount)
	require.NoError(t, err)

	list, err := f.uc.List(context.Background(), "bod-1", 20, 0)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)

	empty, err := f.uc.List(context.Background(), "bod-2", 20, 0)
	require.NoError(t, err)
	assert.Empty(t, empty.Items)
}
