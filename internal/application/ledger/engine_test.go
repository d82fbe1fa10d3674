package ledger_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nirmal21D/StockMaster-sub001/internal/application/ledger"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/ledger/ledgertest"
	"github.com/Nirmal21D/StockMaster-sub001/internal/domain"
	"github.com/Nirmal21D/StockMaster-sub001/internal/domain/entity"
)

const (
	prodA = "prod-a"
	bodA  = "bod-a"
)

func validInput() ledger.MovementInput {
	return ledger.MovementInput{
		ProductID:     prodA,
		WarehouseID:   bodA,
		Delta:         decimal.NewFromInt(10),
		Type:          entity.MovementTypeRECEIPT,
		SourceDocType: entity.SourceDocReceipt,
		SourceDocID:   "doc-1",
		SourceLineID:  "line-1",
		ActorID:       "user-1",
	}
}

func newEngine(s *ledgertest.Store) (*ledger.Engine, *ledgertest.TxRunner) {
	tx := ledgertest.NewTxRunner(s)
	return ledger.NewEngine(tx, zerolog.Nop()), tx
}

func TestApplyMovement_ActualizaNivelYAgregaAlLibro(t *testing.T) {
	s := ledgertest.NewStore()
	eng, _ := newEngine(s)

	mov, err := eng.ApplyMovement(context.Background(), validInput())
	require.NoError(t, err)
	require.NotNil(t, mov)

	assert.NotEmpty(t, mov.ID)
	assert.True(t, mov.Delta.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, entity.MovementTypeRECEIPT, mov.Type)
	assert.Equal(t, "doc-1", mov.SourceDocID)

	// La fila del nivel se crea perezosamente con el primer movimiento.
	assert.True(t, s.LevelQty(prodA, bodA, "").Equal(decimal.NewFromInt(10)))
	assert.Equal(t, 1, s.MovementCount())
}

func TestApplyMovement_DeltaNegativoPuedeDejarNivelNegativo(t *testing.T) {
	// El motor no impone política: un delta que deja el nivel negativo se
	// aplica tal cual; rechazarlo es responsabilidad del flujo que lo invoca.
	s := ledgertest.NewStore()
	eng, _ := newEngine(s)

	in := validInput()
	in.Delta = decimal.NewFromInt(-3)
	in.Type = entity.MovementTypeDELIVERY
	in.SourceDocType = entity.SourceDocDelivery

	_, err := eng.ApplyMovement(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, s.LevelQty(prodA, bodA, "").Equal(decimal.NewFromInt(-3)))
}

func TestApplyMovement_RechazaEntradasInvalidas(t *testing.T) {
	s := ledgertest.NewStore()
	eng, tx := newEngine(s)

	cases := map[string]func(*ledger.MovementInput){
		"sin producto":       func(in *ledger.MovementInput) { in.ProductID = "" },
		"sin bodega":         func(in *ledger.MovementInput) { in.WarehouseID = "" },
		"delta cero":         func(in *ledger.MovementInput) { in.Delta = decimal.Zero },
		"tipo desconocido":   func(in *ledger.MovementInput) { in.Type = "MAGIC" },
		"sin doc origen":     func(in *ledger.MovementInput) { in.SourceDocType = "" },
		"sin id doc origen":  func(in *ledger.MovementInput) { in.SourceDocID = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			mutate(&in)
			_, err := eng.ApplyMovement(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	// Nada llegó a abrir transacción ni a tocar el libro.
	assert.Equal(t, 0, tx.Calls())
	assert.Equal(t, 0, s.MovementCount())
}

func TestApplyMovement_ReintentaUnaVezTrasFalloDePersistencia(t *testing.T) {
	s := ledgertest.NewStore()
	tx := ledgertest.NewTxRunner(s)
	tx.FailOn = map[int]error{1: errors.New("connection reset by peer")}
	eng := ledger.NewEngine(tx, zerolog.Nop())

	mov, err := eng.ApplyMovement(context.Background(), validInput())
	require.NoError(t, err)
	require.NotNil(t, mov)

	assert.Equal(t, 2, tx.Calls(), "el primer intento falla y el segundo aplica")
	assert.Equal(t, 1, s.MovementCount(), "el reintento no duplica el movimiento")
	assert.True(t, s.LevelQty(prodA, bodA, "").Equal(decimal.NewFromInt(10)))
}

func TestApplyMovement_UnSoloReintento(t *testing.T) {
	s := ledgertest.NewStore()
	tx := ledgertest.NewTxRunner(s)
	boom := errors.New("database is on fire")
	tx.FailOn = map[int]error{1: boom, 2: boom}
	eng := ledger.NewEngine(tx, zerolog.Nop())

	_, err := eng.ApplyMovement(context.Background(), validInput())
	require.Error(t, err)
	assert.Equal(t, 2, tx.Calls(), "tras el único reintento el error se devuelve")
	assert.Equal(t, 0, s.MovementCount())
}

func TestApplyMovement_NoReintentaErroresDeDominio(t *testing.T) {
	s := ledgertest.NewStore()
	tx := ledgertest.NewTxRunner(s)
	tx.FailOn = map[int]error{1: domain.ErrInsufficientStock}
	eng := ledger.NewEngine(tx, zerolog.Nop())

	_, err := eng.ApplyMovement(context.Background(), validInput())
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 1, tx.Calls(), "los errores de dominio se devuelven sin reintento")
}

func TestApplyMovement_ReintentaConflictosDeSerializacion(t *testing.T) {
	s := ledgertest.NewStore()
	tx := ledgertest.NewTxRunner(s)
	tx.FailOn = map[int]error{1: domain.ErrConflict}
	eng := ledger.NewEngine(tx, zerolog.Nop())

	_, err := eng.ApplyMovement(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, 2, tx.Calls(), "un conflicto de serialización sí se reintenta")
}

// El invariante central: bajo concurrencia sobre la misma llave el nivel
// converge a la suma exacta de los deltas y el libro registra cada movimiento.
func TestApplyMovement_ConcurrenciaSobreLaMismaLlave(t *testing.T) {
	s := ledgertest.NewStore()
	eng, _ := newEngine(s)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			in := validInput()
			in.Delta = decimal.NewFromInt(1)
			_, err := eng.ApplyMovement(context.Background(), in)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.True(t, s.LevelQty(prodA, bodA, "").Equal(decimal.NewFromInt(n)),
		"el nivel debe converger a la suma de los %d incrementos", n)
	assert.Equal(t, n, s.MovementCount())

	// Auditoría: re-sumar el libro reproduce exactamente el nivel.
	sum, err := (&ledgertest.MovementRepo{S: s}).SumByKey(context.Background(), prodA, bodA, "")
	require.NoError(t, err)
	assert.True(t, sum.Equal(s.LevelQty(prodA, bodA, "")))
}

func TestSetQuantityInTx_AplicaLaDiferenciaComoDelta(t *testing.T) {
	s := ledgertest.NewStore()
	eng, _ := newEngine(s)
	s.SeedLevel(prodA, bodA, "", decimal.NewFromInt(20))

	movRepo := &ledgertest.MovementRepo{S: s}
	levelRepo := &ledgertest.LevelRepo{S: s}
	mov, oldQty, err := eng.SetQuantityInTx(context.Background(), movRepo, levelRepo, ledger.SetQuantityInput{
		ProductID:     prodA,
		WarehouseID:   bodA,
		NewQuantity:   decimal.NewFromInt(15),
		SourceDocType: entity.SourceDocAdjustment,
		SourceDocID:   "adj-1",
		ActorID:       "user-1",
	}, time.Now())
	require.NoError(t, err)
	require.NotNil(t, mov)

	assert.True(t, oldQty.Equal(decimal.NewFromInt(20)))
	assert.True(t, mov.Delta.Equal(decimal.NewFromInt(-5)), "20 → 15 se aplica como delta -5")
	assert.Equal(t, entity.MovementTypeADJUSTMENT, mov.Type)
	assert.True(t, s.LevelQty(prodA, bodA, "").Equal(decimal.NewFromInt(15)))
}

func TestSetQuantityInTx_DiferenciaCeroNoGeneraMovimiento(t *testing.T) {
	s := ledgertest.NewStore()
	eng, _ := newEngine(s)
	s.SeedLevel(prodA, bodA, "", decimal.NewFromInt(7))

	mov, oldQty, err := eng.SetQuantityInTx(context.Background(),
		&ledgertest.MovementRepo{S: s}, &ledgertest.LevelRepo{S: s},
		ledger.SetQuantityInput{
			ProductID:     prodA,
			WarehouseID:   bodA,
			NewQuantity:   decimal.NewFromInt(7),
			SourceDocType: entity.SourceDocAdjustment,
			SourceDocID:   "adj-2",
		}, time.Now())
	require.NoError(t, err)

	assert.Nil(t, mov, "fijar la misma cantidad no agrega ruido al libro")
	assert.True(t, oldQty.Equal(decimal.NewFromInt(7)))
	assert.Equal(t, 0, s.MovementCount())
}
