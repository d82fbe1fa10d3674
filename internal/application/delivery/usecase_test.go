package delivery_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nirmal21D/StockMaster-sub001/internal/application/delivery"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/dto"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/ledger"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/ledger/ledgertest"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/numbering"
	"github.com/Nirmal21D/StockMaster-sub001/internal/domain"
	"github.com/Nirmal21D/StockMaster-sub001/internal/domain/entity"
)

type fixture struct {
	s  *ledgertest.Store
	tx *ledgertest.TxRunner
	uc *delivery.UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := ledgertest.NewStore()
	s.SeedWarehouse("origen")
	s.SeedWarehouse("destino")
	s.SeedProduct("prod-1")

	tx := ledgertest.NewTxRunner(s)
	eng := ledger.NewEngine(tx, zerolog.Nop())
	uc := delivery.NewUseCase(
		tx, eng,
		&ledgertest.DeliveryRepo{S: s},
		&ledgertest.ProductRepo{S: s},
		&ledgertest.WarehouseRepo{S: s},
		numbering.NewService(&ledgertest.SequenceRepo{S: s}),
		zerolog.Nop(),
	)
	return &fixture{s: s, tx: tx, uc: uc}
}

// createReady crea una entrega y la lleva hasta READY.
func (f *fixture) createReady(t *testing.T, dest string, qty int64) *dto.DeliveryResponse {
	t.Helper()
	out, err := f.uc.Create(context.Background(), "user-1", dto.CreateDeliveryRequest{
		SourceWarehouseID: "origen",
		DestWarehouseID:   dest,
		Lines: []dto.DeliveryLineRequest{
			{ProductID: "prod-1", Quantity: decimal.NewFromInt(qty)},
		},
	})
	require.NoError(t, err)
	_, err = f.uc.Confirm(context.Background(), out.ID)
	require.NoError(t, err)
	out, err = f.uc.MarkReady(context.Background(), out.ID)
	require.NoError(t, err)
	return out
}

func TestCreate_RechazaOrigenIgualADestino(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Create(context.Background(), "user-1", dto.CreateDeliveryRequest{
		SourceWarehouseID: "origen",
		DestWarehouseID:   "origen",
		Lines: []dto.DeliveryLineRequest{
			{ProductID: "prod-1", Quantity: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_BorradorConReferencia(t *testing.T) {
	f := newFixture(t)
	out, err := f.uc.Create(context.Background(), "user-1", dto.CreateDeliveryRequest{
		SourceWarehouseID: "origen",
		Lines: []dto.DeliveryLineRequest{
			{ProductID: "prod-1", Quantity: decimal.NewFromInt(4)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.DeliveryDraft), out.Status)
	assert.Regexp(t, `^DLV-\d{4}-\d{6}$`, out.Reference)
	assert.Empty(t, out.TransferID, "el TransferID se asigna al validar, no al crear")
}

func TestValidate_SalidaDefinitivaSinDestino(t *testing.T) {
	f := newFixture(t)
	f.s.SeedLevel("prod-1", "origen", "", decimal.NewFromInt(10))
	d := f.createReady(t, "", 4)

	out, err := f.uc.Validate(context.Background(), d.ID, "user-2")
	require.NoError(t, err)

	assert.Equal(t, string(entity.DeliveryDone), out.Status)
	assert.Empty(t, out.TransferID, "sin destino no hay traslado")
	assert.True(t, f.s.LevelQty("prod-1", "origen", "").Equal(decimal.NewFromInt(6)))
	assert.Equal(t, 1, f.s.MovementCount(), "solo el movimiento negativo del origen")

	m := f.s.Movements[0]
	assert.Equal(t, entity.MovementTypeDELIVERY, m.Type)
	assert.True(t, m.Delta.Equal(decimal.NewFromInt(-4)))
	assert.Empty(t, m.TransferID)
}

func TestValidate_StockInsuficiente(t *testing.T) {
	f := newFixture(t)
	f.s.SeedLevel("prod-1", "origen", "", decimal.NewFromInt(3))
	d := f.createReady(t, "", 4)

	_, err := f.uc.Validate(context.Background(), d.ID, "user-2")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nada se movió y el documento sigue validable.
	assert.True(t, f.s.LevelQty("prod-1", "origen", "").Equal(decimal.NewFromInt(3)))
	assert.Equal(t, 0, f.s.MovementCount())
}

func TestValidate_TrasladoCompletoDeDosLados(t *testing.T) {
	f := newFixture(t)
	f.s.SeedLevel("prod-1", "origen", "", decimal.NewFromInt(10))
	d := f.createReady(t, "destino", 4)

	out, err := f.uc.Validate(context.Background(), d.ID, "user-2")
	require.NoError(t, err)

	assert.Equal(t, string(entity.DeliveryDone), out.Status)
	assert.NotEmpty(t, out.TransferID)

	assert.True(t, f.s.LevelQty("prod-1", "origen", "").Equal(decimal.NewFromInt(6)))
	assert.True(t, f.s.LevelQty("prod-1", "destino", "").Equal(decimal.NewFromInt(4)))
	require.Equal(t, 2, f.s.MovementCount(), "un movimiento por lado del traslado")

	// Ambos lados comparten TransferID y sus deltas suman cero.
	net := decimal.Zero
	for _, m := range f.s.Movements {
		assert.Equal(t, out.TransferID, m.TransferID)
		assert.Equal(t, entity.MovementTypeDELIVERY, m.Type)
		net = net.Add(m.Delta)
	}
	assert.True(t, net.IsZero())

	// Un traslado completo no aparece en la reconciliación.
	unbalanced, err := (&ledgertest.MovementRepo{S: f.s}).ListUnbalancedTransfers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, unbalanced)
}

func TestValidate_TrasladoParcialDetectable(t *testing.T) {
	f := newFixture(t)
	f.s.SeedLevel("prod-1", "origen", "", decimal.NewFromInt(10))
	d := f.createReady(t, "destino", 4)

	// Create/Confirm/MarkReady no abren transacciones; Validate abre la tx 1
	// (lado origen) y la tx 2 (lado destino). Se hace fallar el destino.
	f.tx.FailOn = map[int]error{2: errors.New("connection refused")}

	out, err := f.uc.Validate(context.Background(), d.ID, "user-2")
	assert.ErrorIs(t, err, domain.ErrPartialTransfer)
	require.NotNil(t, out, "el documento validado se devuelve junto al error")
	assert.Equal(t, string(entity.DeliveryDone), out.Status, "el lado origen quedó aplicado y cerrado")

	// Salió del origen pero nunca entró al destino.
	assert.True(t, f.s.LevelQty("prod-1", "origen", "").Equal(decimal.NewFromInt(6)))
	assert.True(t, f.s.LevelQty("prod-1", "destino", "").IsZero())
	assert.Equal(t, 1, f.s.MovementCount())

	// El estado es detectable: el TransferID no suma cero.
	unbalanced, err2 := (&ledgertest.MovementRepo{S: f.s}).ListUnbalancedTransfers(context.Background())
	require.NoError(t, err2)
	require.Len(t, unbalanced, 1)
	assert.Equal(t, out.TransferID, unbalanced[0].TransferID)
	assert.True(t, unbalanced[0].Net.Equal(decimal.NewFromInt(-4)))
	assert.Equal(t, 1, unbalanced[0].Movements)

	// No hay reintento automático del lado destino: re-validar falla por estado.
	_, err = f.uc.Validate(context.Background(), d.ID, "user-2")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.True(t, f.s.LevelQty("prod-1", "destino", "").IsZero())
}

func TestValidate_NoAplicaDosVeces(t *testing.T) {
	f := newFixture(t)
	f.s.SeedLevel("prod-1", "origen", "", decimal.NewFromInt(10))
	d := f.createReady(t, "", 4)

	_, err := f.uc.Validate(context.Background(), d.ID, "user-2")
	require.NoError(t, err)

	_, err = f.uc.Validate(context.Background(), d.ID, "user-2")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.True(t, f.s.LevelQty("prod-1", "origen", "").Equal(decimal.NewFromInt(6)),
		"la salida no se aplica dos veces")
}

func TestMaquinaDeEstados(t *testing.T) {
	f := newFixture(t)
	out, err := f.uc.Create(context.Background(), "user-1", dto.CreateDeliveryRequest{
		SourceWarehouseID: "origen",
		Lines: []dto.DeliveryLineRequest{
			{ProductID: "prod-1", Quantity: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)

	// DRAFT no es validable ni marcable READY.
	_, err = f.uc.MarkReady(context.Background(), out.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	_, err = f.uc.Validate(context.Background(), out.ID, "user-1")
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	// WAITING sí es validable directamente (READY es opcional).
	_, err = f.uc.Confirm(context.Background(), out.ID)
	require.NoError(t, err)
	f.s.SeedLevel("prod-1", "origen", "", decimal.NewFromInt(1))
	_, err = f.uc.Validate(context.Background(), out.ID, "user-1")
	assert.NoError(t, err)
}

func TestAccept_SoloUnaVezYSoloConDestino(t *testing.T) {
	f := newFixture(t)
	f.s.SeedLevel("prod-1", "origen", "", decimal.NewFromInt(10))
	d := f.createReady(t, "destino", 4)
	_, err := f.uc.Validate(context.Background(), d.ID, "user-2")
	require.NoError(t, err)

	out, err := f.uc.Accept(context.Background(), d.ID, "user-3")
	require.NoError(t, err)
	assert.Equal(t, "user-3", out.AcceptedBy)
	require.NotNil(t, out.AcceptedAt)

	// Aceptar no mueve stock: los niveles no cambian.
	assert.True(t, f.s.LevelQty("prod-1", "destino", "").Equal(decimal.NewFromInt(4)))
	assert.Equal(t, 2, f.s.MovementCount())

	_, err = f.uc.Accept(context.Background(), d.ID, "user-3")
	assert.ErrorIs(t, err, domain.ErrInvalidState, "una segunda aceptación debe fallar")
}

func TestAccept_SinDestinoNoAplica(t *testing.T) {
	f := newFixture(t)
	f.s.SeedLevel("prod-1", "origen", "", decimal.NewFromInt(10))
	d := f.createReady(t, "", 4)
	_, err := f.uc.Validate(context.Background(), d.ID, "user-2")
	require.NoError(t, err)

	_, err = f.uc.Accept(context.Background(), d.ID, "user-3")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}
