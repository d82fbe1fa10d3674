// Package ledgertest provee dobles en memoria de los puertos de persistencia
// para probar el motor del libro y los flujos de documentos sin PostgreSQL.
// Las "transacciones" del TxRunner se serializan con un mutex: dos Run*
// concurrentes nunca se solapan, igual que dos tx reales sobre la misma fila
// bloqueada. No hay rollback: los tests inyectan fallos antes de ejecutar fn.
package ledgertest

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Nirmal21D/StockMaster-sub001/internal/domain/entity"
	"github.com/Nirmal21D/StockMaster-sub001/internal/domain/repository"
)

// Store estado compartido por todos los fakes de una prueba.
type Store struct {
	mu sync.Mutex

	Movements    []*entity.Movement
	Levels       map[string]*entity.StockLevel
	Receipts     map[string]*entity.Receipt
	Deliveries   map[string]*entity.Delivery
	Requisitions map[string]*entity.Requisition
	Adjustments  map[string]*entity.Adjustment
	Products     map[string]*entity.Product
	Warehouses   map[string]*entity.Warehouse

	seq map[string]int64
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		Levels:       make(map[string]*entity.StockLevel),
		Receipts:     make(map[string]*entity.Receipt),
		Deliveries:   make(map[string]*entity.Delivery),
		Requisitions: make(map[string]*entity.Requisition),
		Adjustments:  make(map[string]*entity.Adjustment),
		Products:     make(map[string]*entity.Product),
		Warehouses:   make(map[string]*entity.Warehouse),
		seq:          make(map[string]int64),
	}
}

// SeedProduct registra un producto mínimo y devuelve su ID.
func (s *Store) SeedProduct(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Products[id] = &entity.Product{ID: id, SKU: "SKU-" + id, Name: "producto " + id}
	return id
}

// SeedWarehouse registra una bodega mínima y devuelve su ID.
func (s *Store) SeedWarehouse(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Warehouses[id] = &entity.Warehouse{ID: id, Name: "bodega " + id}
	return id
}

// SeedLevel fija directamente la cantidad de una llave (estado inicial del test).
func (s *Store) SeedLevel(productID, warehouseID, locationID string, qty decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Levels[levelKey(productID, warehouseID, locationID)] = &entity.StockLevel{
		ProductID:   productID,
		WarehouseID: warehouseID,
		LocationID:  locationID,
		Quantity:    qty,
		UpdatedAt:   time.Now(),
	}
}

// LevelQty devuelve la cantidad actual de la llave (cero si no existe fila).
func (s *Store) LevelQty(productID, warehouseID, locationID string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.Levels[levelKey(productID, warehouseID, locationID)]; ok {
		return l.Quantity
	}
	return decimal.Zero
}

// MovementCount devuelve cuántos movimientos se han agregado al libro.
func (s *Store) MovementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Movements)
}

func levelKey(productID, warehouseID, locationID string) string {
	return productID + "|" + warehouseID + "|" + locationID
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner
// ──────────────────────────────────────────────────────────────────────────────

// TxRunner implementa los contratos Run* de todos los flujos sobre el store.
// FailOn permite inyectar un error en la N-ésima transacción (base 1): la
// función no se ejecuta, como una tx que no llegó a abrirse.
type TxRunner struct {
	S      *Store
	FailOn map[int]error

	txMu  sync.Mutex
	calls int
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{S: s}
}

// Calls devuelve cuántas transacciones se intentaron.
func (t *TxRunner) Calls() int {
	t.txMu.Lock()
	defer t.txMu.Unlock()
	return t.calls
}

func (t *TxRunner) begin() error {
	t.calls++
	if err, ok := t.FailOn[t.calls]; ok {
		return err
	}
	return nil
}

// Run implementa ledger.TxRunner.
func (t *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	levelRepo repository.StockLevelRepository,
) error) error {
	t.txMu.Lock()
	defer t.txMu.Unlock()
	if err := t.begin(); err != nil {
		return err
	}
	return fn(&MovementRepo{S: t.S}, &LevelRepo{S: t.S})
}

// RunReceipt implementa receipt.TxRunner.
func (t *TxRunner) RunReceipt(ctx context.Context, fn func(
	receiptRepo repository.ReceiptRepository,
	movRepo repository.MovementRepository,
	levelRepo repository.StockLevelRepository,
) error) error {
	t.txMu.Lock()
	defer t.txMu.Unlock()
	if err := t.begin(); err != nil {
		return err
	}
	return fn(&ReceiptRepo{S: t.S}, &MovementRepo{S: t.S}, &LevelRepo{S: t.S})
}

// RunDelivery implementa delivery.TxRunner.
func (t *TxRunner) RunDelivery(ctx context.Context, fn func(
	deliveryRepo repository.DeliveryRepository,
	movRepo repository.MovementRepository,
	levelRepo repository.StockLevelRepository,
) error) error {
	t.txMu.Lock()
	defer t.txMu.Unlock()
	if err := t.begin(); err != nil {
		return err
	}
	return fn(&DeliveryRepo{S: t.S}, &MovementRepo{S: t.S}, &LevelRepo{S: t.S})
}

// RunAdjustment implementa adjustment.TxRunner.
func (t *TxRunner) RunAdjustment(ctx context.Context, fn func(
	adjRepo repository.AdjustmentRepository,
	movRepo repository.MovementRepository,
	levelRepo repository.StockLevelRepository,
) error) error {
	t.txMu.Lock()
	defer t.txMu.Unlock()
	if err := t.begin(); err != nil {
		return err
	}
	return fn(&AdjustmentRepo{S: t.S}, &MovementRepo{S: t.S}, &LevelRepo{S: t.S})
}

// RunRequisition implementa requisition.TxRunner.
func (t *TxRunner) RunRequisition(ctx context.Context, fn func(
	reqRepo repository.RequisitionRepository,
) error) error {
	t.txMu.Lock()
	defer t.txMu.Unlock()
	if err := t.begin(); err != nil {
		return err
	}
	return fn(&RequisitionRepo{S: t.S})
}

// ──────────────────────────────────────────────────────────────────────────────
// Libro y niveles
// ──────────────────────────────────────────────────────────────────────────────

// MovementRepo fake en memoria de repository.MovementRepository.
type MovementRepo struct{ S *Store }

func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	cp := *m
	r.S.Movements = append(r.S.Movements, &cp)
	return nil
}

func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	for _, m := range r.S.Movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter, limit, offset int) ([]*entity.Movement, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	var out []*entity.Movement
	for _, m := range r.S.Movements {
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		if f.WarehouseID != "" && m.WarehouseID != f.WarehouseID {
			continue
		}
		if f.Type != "" && m.Type != f.Type {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *MovementRepo) SumByKey(ctx context.Context, productID, warehouseID, locationID string) (decimal.Decimal, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	sum := decimal.Zero
	for _, m := range r.S.Movements {
		if m.ProductID == productID && m.WarehouseID == warehouseID && m.LocationID == locationID {
			sum = sum.Add(m.Delta)
		}
	}
	return sum, nil
}

func (r *MovementRepo) ExistsBySource(ctx context.Context, sourceDocType, sourceDocID string) (bool, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	for _, m := range r.S.Movements {
		if m.SourceDocType == sourceDocType && m.SourceDocID == sourceDocID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MovementRepo) ListUnbalancedTransfers(ctx context.Context) ([]repository.TransferImbalance, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	agg := make(map[string]*repository.TransferImbalance)
	var order []string
	for _, m := range r.S.Movements {
		if m.TransferID == "" {
			continue
		}
		t, ok := agg[m.TransferID]
		if !ok {
			t = &repository.TransferImbalance{
				TransferID:    m.TransferID,
				SourceDocType: m.SourceDocType,
				SourceDocID:   m.SourceDocID,
				Net:           decimal.Zero,
				FirstSeen:     m.CreatedAt,
			}
			agg[m.TransferID] = t
			order = append(order, m.TransferID)
		}
		t.Net = t.Net.Add(m.Delta)
		t.Movements++
		if m.CreatedAt.Before(t.FirstSeen) {
			t.FirstSeen = m.CreatedAt
		}
	}
	var out []repository.TransferImbalance
	for _, id := range order {
		if !agg[id].Net.IsZero() {
			out = append(out, *agg[id])
		}
	}
	return out, nil
}

// LevelRepo fake en memoria de repository.StockLevelRepository. Fila ausente =
// cantidad cero, igual que la implementación real.
type LevelRepo struct{ S *Store }

func (r *LevelRepo) Get(ctx context.Context, productID, warehouseID, locationID string) (*entity.StockLevel, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if l, ok := r.S.Levels[levelKey(productID, warehouseID, locationID)]; ok {
		cp := *l
		return &cp, nil
	}
	return &entity.StockLevel{
		ProductID:   productID,
		WarehouseID: warehouseID,
		LocationID:  locationID,
		Quantity:    decimal.Zero,
	}, nil
}

// GetForUpdate materializa la fila en cero si no existe, igual que el
// adaptador real: la lectura bloqueada nunca es sobre una fila fantasma.
func (r *LevelRepo) GetForUpdate(ctx context.Context, productID, warehouseID, locationID string) (*entity.StockLevel, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	key := levelKey(productID, warehouseID, locationID)
	l, ok := r.S.Levels[key]
	if !ok {
		l = &entity.StockLevel{
			ProductID:   productID,
			WarehouseID: warehouseID,
			LocationID:  locationID,
			Quantity:    decimal.Zero,
			UpdatedAt:   time.Now(),
		}
		r.S.Levels[key] = l
	}
	cp := *l
	return &cp, nil
}

func (r *LevelRepo) ApplyDelta(ctx context.Context, productID, warehouseID, locationID string, delta decimal.Decimal) (decimal.Decimal, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	key := levelKey(productID, warehouseID, locationID)
	l, ok := r.S.Levels[key]
	if !ok {
		l = &entity.StockLevel{
			ProductID:   productID,
			WarehouseID: warehouseID,
			LocationID:  locationID,
			Quantity:    decimal.Zero,
		}
		r.S.Levels[key] = l
	}
	l.Quantity = l.Quantity.Add(delta)
	l.UpdatedAt = time.Now()
	return l.Quantity, nil
}

func (r *LevelRepo) ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.StockLevel, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	var out []*entity.StockLevel
	for _, l := range r.S.Levels {
		if l.WarehouseID == warehouseID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *LevelRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockLevel, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	var out []*entity.StockLevel
	for _, l := range r.S.Levels {
		if l.ProductID == productID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Documentos
// ──────────────────────────────────────────────────────────────────────────────

// ReceiptRepo fake en memoria de repository.ReceiptRepository.
type ReceiptRepo struct{ S *Store }

func (r *ReceiptRepo) Create(ctx context.Context, rec *entity.Receipt) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	r.S.Receipts[rec.ID] = copyReceipt(rec)
	return nil
}

func (r *ReceiptRepo) GetByID(ctx context.Context, id string) (*entity.Receipt, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if rec, ok := r.S.Receipts[id]; ok {
		return copyReceipt(rec), nil
	}
	return nil, nil
}

func (r *ReceiptRepo) GetForUpdate(ctx context.Context, id string) (*entity.Receipt, error) {
	return r.GetByID(ctx, id)
}

func (r *ReceiptRepo) Update(ctx context.Context, rec *entity.Receipt) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if existing, ok := r.S.Receipts[rec.ID]; ok {
		cp := copyReceipt(rec)
		cp.Lines = existing.Lines // Update persiste solo la cabecera
		r.S.Receipts[rec.ID] = cp
	}
	return nil
}

func (r *ReceiptRepo) ReplaceLines(ctx context.Context, receiptID string, lines []entity.ReceiptLine) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if rec, ok := r.S.Receipts[receiptID]; ok {
		rec.Lines = append([]entity.ReceiptLine(nil), lines...)
	}
	return nil
}

func (r *ReceiptRepo) List(ctx context.Context, warehouseID string, status entity.ReceiptStatus, limit, offset int) ([]*entity.Receipt, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	var out []*entity.Receipt
	for _, rec := range r.S.Receipts {
		if warehouseID != "" && rec.WarehouseID != warehouseID {
			continue
		}
		if status != "" && rec.Status != status {
			continue
		}
		out = append(out, copyReceipt(rec))
	}
	return out, nil
}

func copyReceipt(r *entity.Receipt) *entity.Receipt {
	cp := *r
	cp.Lines = append([]entity.ReceiptLine(nil), r.Lines...)
	return &cp
}

// DeliveryRepo fake en memoria de repository.DeliveryRepository.
type DeliveryRepo struct{ S *Store }

func (r *DeliveryRepo) Create(ctx context.Context, d *entity.Delivery) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	r.S.Deliveries[d.ID] = copyDelivery(d)
	return nil
}

func (r *DeliveryRepo) GetByID(ctx context.Context, id string) (*entity.Delivery, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if d, ok := r.S.Deliveries[id]; ok {
		return copyDelivery(d), nil
	}
	return nil, nil
}

func (r *DeliveryRepo) GetForUpdate(ctx context.Context, id string) (*entity.Delivery, error) {
	return r.GetByID(ctx, id)
}

func (r *DeliveryRepo) Update(ctx context.Context, d *entity.Delivery) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if existing, ok := r.S.Deliveries[d.ID]; ok {
		cp := copyDelivery(d)
		cp.Lines = existing.Lines
		r.S.Deliveries[d.ID] = cp
	}
	return nil
}

func (r *DeliveryRepo) ReplaceLines(ctx context.Context, deliveryID string, lines []entity.DeliveryLine) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if d, ok := r.S.Deliveries[deliveryID]; ok {
		d.Lines = append([]entity.DeliveryLine(nil), lines...)
	}
	return nil
}

func (r *DeliveryRepo) List(ctx context.Context, warehouseID string, status entity.DeliveryStatus, limit, offset int) ([]*entity.Delivery, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	var out []*entity.Delivery
	for _, d := range r.S.Deliveries {
		if warehouseID != "" && d.SourceWarehouseID != warehouseID {
			continue
		}
		if status != "" && d.Status != status {
			continue
		}
		out = append(out, copyDelivery(d))
	}
	return out, nil
}

func copyDelivery(d *entity.Delivery) *entity.Delivery {
	cp := *d
	cp.Lines = append([]entity.DeliveryLine(nil), d.Lines...)
	return &cp
}

// RequisitionRepo fake en memoria de repository.RequisitionRepository.
type RequisitionRepo struct{ S *Store }

func (r *RequisitionRepo) Create(ctx context.Context, req *entity.Requisition) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	r.S.Requisitions[req.ID] = copyRequisition(req)
	return nil
}

func (r *RequisitionRepo) GetByID(ctx context.Context, id string) (*entity.Requisition, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if req, ok := r.S.Requisitions[id]; ok {
		return copyRequisition(req), nil
	}
	return nil, nil
}

func (r *RequisitionRepo) GetForUpdate(ctx context.Context, id string) (*entity.Requisition, error) {
	return r.GetByID(ctx, id)
}

func (r *RequisitionRepo) Update(ctx context.Context, req *entity.Requisition) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if existing, ok := r.S.Requisitions[req.ID]; ok {
		cp := copyRequisition(req)
		cp.Lines = existing.Lines
		r.S.Requisitions[req.ID] = cp
	}
	return nil
}

func (r *RequisitionRepo) ReplaceLines(ctx context.Context, requisitionID string, lines []entity.RequisitionLine) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if req, ok := r.S.Requisitions[requisitionID]; ok {
		req.Lines = append([]entity.RequisitionLine(nil), lines...)
	}
	return nil
}

func (r *RequisitionRepo) List(ctx context.Context, warehouseID string, status entity.RequisitionStatus, limit, offset int) ([]*entity.Requisition, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	var out []*entity.Requisition
	for _, req := range r.S.Requisitions {
		if warehouseID != "" && req.WarehouseID != warehouseID {
			continue
		}
		if status != "" && req.Status != status {
			continue
		}
		out = append(out, copyRequisition(req))
	}
	return out, nil
}

func copyRequisition(r *entity.Requisition) *entity.Requisition {
	cp := *r
	cp.Lines = append([]entity.RequisitionLine(nil), r.Lines...)
	return &cp
}

// AdjustmentRepo fake en memoria de repository.AdjustmentRepository.
type AdjustmentRepo struct{ S *Store }

func (r *AdjustmentRepo) Create(ctx context.Context, a *entity.Adjustment) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	cp := *a
	r.S.Adjustments[a.ID] = &cp
	return nil
}

func (r *AdjustmentRepo) GetByID(ctx context.Context, id string) (*entity.Adjustment, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if a, ok := r.S.Adjustments[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (r *AdjustmentRepo) List(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.Adjustment, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	var out []*entity.Adjustment
	for _, a := range r.S.Adjustments {
		if warehouseID != "" && a.WarehouseID != warehouseID {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Maestros y numeración
// ──────────────────────────────────────────────────────────────────────────────

// SequenceRepo fake en memoria de repository.SequenceRepository.
type SequenceRepo struct{ S *Store }

func (r *SequenceRepo) Next(ctx context.Context, docType string) (int64, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	r.S.seq[docType]++
	return r.S.seq[docType], nil
}

// ProductRepo fake en memoria de repository.ProductRepository.
type ProductRepo struct{ S *Store }

func (r *ProductRepo) Create(p *entity.Product) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	cp := *p
	r.S.Products[p.ID] = &cp
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if p, ok := r.S.Products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	for _, p := range r.S.Products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) Update(p *entity.Product) error {
	return r.Create(p)
}

func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.S.Products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *ProductRepo) Delete(id string) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	delete(r.S.Products, id)
	return nil
}

// WarehouseRepo fake en memoria de repository.WarehouseRepository.
type WarehouseRepo struct {
	S         *Store
	Locations map[string]*entity.Location
}

func (r *WarehouseRepo) Create(w *entity.Warehouse) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	cp := *w
	r.S.Warehouses[w.ID] = &cp
	return nil
}

func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if w, ok := r.S.Warehouses[id]; ok {
		cp := *w
		return &cp, nil
	}
	return nil, nil
}

func (r *WarehouseRepo) Update(w *entity.Warehouse) error {
	return r.Create(w)
}

func (r *WarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	var out []*entity.Warehouse
	for _, w := range r.S.Warehouses {
		cp := *w
		out = append(out, &cp)
	}
	return out, nil
}

func (r *WarehouseRepo) Delete(id string) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	delete(r.S.Warehouses, id)
	return nil
}

func (r *WarehouseRepo) CreateLocation(l *entity.Location) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.Locations == nil {
		r.Locations = make(map[string]*entity.Location)
	}
	cp := *l
	r.Locations[l.ID] = &cp
	return nil
}

func (r *WarehouseRepo) GetLocationByID(id string) (*entity.Location, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if l, ok := r.Locations[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, nil
}

func (r *WarehouseRepo) ListLocations(warehouseID string) ([]*entity.Location, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	var out []*entity.Location
	for _, l := range r.Locations {
		if l.WarehouseID == warehouseID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}
