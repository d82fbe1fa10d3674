package numbering_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nirmal21D/StockMaster-sub001/internal/application/ledger/ledgertest"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/numbering"
)

func TestNext_FormatoLegible(t *testing.T) {
	svc := numbering.NewService(&ledgertest.SequenceRepo{S: ledgertest.NewStore()})

	ref, err := svc.Next(context.Background(), numbering.DocReceipt)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("RCP-%d-000001", time.Now().Year()), ref)
}

func TestNext_MonotonicoPorTipo(t *testing.T) {
	svc := numbering.NewService(&ledgertest.SequenceRepo{S: ledgertest.NewStore()})
	ctx := context.Background()

	a, err := svc.Next(ctx, numbering.DocDelivery)
	require.NoError(t, err)
	b, err := svc.Next(ctx, numbering.DocDelivery)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.Less(t, a, b, "los consecutivos crecen")

	// Cada tipo de documento lleva su propio contador.
	c, err := svc.Next(ctx, numbering.DocRequisition)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("REQ-%d-000001", time.Now().Year()), c)
}

func TestNext_SinDuplicadosBajoConcurrencia(t *testing.T) {
	svc := numbering.NewService(&ledgertest.SequenceRepo{S: ledgertest.NewStore()})

	const n = 100
	refs := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ref, err := svc.Next(context.Background(), numbering.DocAdjustment)
			assert.NoError(t, err)
			refs <- ref
		}()
	}
	wg.Wait()
	close(refs)

	seen := make(map[string]bool, n)
	for ref := range refs {
		assert.False(t, seen[ref], "número duplicado: %s", ref)
		seen[ref] = true
	}
	assert.Len(t, seen, n)
}
