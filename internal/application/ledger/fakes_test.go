package ledger_test

import (
	"context"
	"time"

	"github.com/jhoicas/bodega-api/internal/application/ledger"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: emulan el store relacional con integridad referencial y
// rollback (el fakeTxRunner toma un snapshot y lo restaura si fn falla), para
// poder verificar que un fallo a mitad de escritura no deja mutación visible.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	docs      map[string]*entity.Document
	order     []string // IDs en orden de inserción
	stock     map[string]int64
	items     map[string]bool
	locations map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		docs:      map[string]*entity.Document{},
		stock:     map[string]int64{},
		items:     map[string]bool{"item-A": true, "item-B": true},
		locations: map[string]bool{"loc-X": true, "loc-Y": true},
	}
}

func stockKey(itemID, locationID string) string {
	return itemID + "|" + locationID
}

func cloneDoc(d *entity.Document) *entity.Document {
	c := *d
	if d.Counterparty != nil {
		cp := *d.Counterparty
		c.Counterparty = &cp
	}
	c.Lines = append([]entity.Line(nil), d.Lines...)
	return &c
}

func (s *fakeStore) clone() *fakeStore {
	c := &fakeStore{
		docs:      make(map[string]*entity.Document, len(s.docs)),
		order:     append([]string(nil), s.order...),
		stock:     make(map[string]int64, len(s.stock)),
		items:     make(map[string]bool, len(s.items)),
		locations: make(map[string]bool, len(s.locations)),
	}
	for id, d := range s.docs {
		c.docs[id] = cloneDoc(d)
	}
	for k, v := range s.stock {
		c.stock[k] = v
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.locations {
		c.locations[k] = v
	}
	return c
}

// fakeDocRepo implementa repository.DocumentRepository sobre el fakeStore.
type fakeDocRepo struct {
	s *fakeStore
}

var _ repository.DocumentRepository = (*fakeDocRepo)(nil)

func (r *fakeDocRepo) List(_ context.Context, kind entity.DocumentKind) ([]*entity.Document, error) {
	var out []*entity.Document
	for i := len(r.s.order) - 1; i >= 0; i-- {
		d := r.s.docs[r.s.order[i]]
		if d != nil && d.Kind == kind {
			out = append(out, cloneDoc(d))
		}
	}
	return out, nil
}

func (r *fakeDocRepo) GetByID(_ context.Context, kind entity.DocumentKind, id string) (*entity.Document, error) {
	d, ok := r.s.docs[id]
	if !ok || d.Kind != kind {
		return nil, nil
	}
	return cloneDoc(d), nil
}

func (r *fakeDocRepo) GetForUpdate(_ context.Context, kind entity.DocumentKind, id string) (*entity.Document, error) {
	d, ok := r.s.docs[id]
	if !ok || d.Kind != kind {
		return nil, nil
	}
	header := cloneDoc(d)
	header.Lines = nil
	return header, nil
}

func (r *fakeDocRepo) Insert(_ context.Context, doc *entity.Document) error {
	header := cloneDoc(doc)
	header.Lines = nil
	r.s.docs[doc.ID] = header
	r.s.order = append(r.s.order, doc.ID)
	return nil
}

func (r *fakeDocRepo) InsertLines(_ context.Context, docID string, lines []entity.Line) error {
	d, ok := r.s.docs[docID]
	if !ok {
		return domain.ErrNotFound
	}
	for _, l := range lines {
		if !r.s.items[l.ItemID] || !r.s.locations[l.LocationID] {
			return domain.ErrInvalidReference
		}
		d.Lines = append(d.Lines, l)
	}
	return nil
}

func (r *fakeDocRepo) DeleteLines(_ context.Context, docID string) error {
	if d, ok := r.s.docs[docID]; ok {
		d.Lines = nil
	}
	return nil
}

func (r *fakeDocRepo) UpdateHeader(_ context.Context, doc *entity.Document) error {
	d, ok := r.s.docs[doc.ID]
	if !ok {
		return domain.ErrNotFound
	}
	d.Number = doc.Number
	d.Counterparty = doc.Counterparty
	d.Date = doc.Date
	d.UpdatedAt = doc.UpdatedAt
	return nil
}

func (r *fakeDocRepo) Delete(_ context.Context, id string) error {
	delete(r.s.docs, id)
	for i, docID := range r.s.order {
		if docID == id {
			r.s.order = append(r.s.order[:i], r.s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeDocRepo) ClaimPosted(_ context.Context, kind entity.DocumentKind, id string) (bool, error) {
	d, ok := r.s.docs[id]
	if !ok || d.Kind != kind || d.Status != entity.StatusDraft {
		return false, nil
	}
	d.Status = entity.StatusPosted
	d.UpdatedAt = time.Now()
	return true, nil
}

// fakeStockRepo implementa repository.StockRepository sobre el fakeStore.
type fakeStockRepo struct {
	s *fakeStore
}

var _ repository.StockRepository = (*fakeStockRepo)(nil)

func (r *fakeStockRepo) ApplyDelta(_ context.Context, itemID, locationID string, policy entity.StockPolicy, amount int64) error {
	if !r.s.items[itemID] || !r.s.locations[locationID] {
		return domain.ErrInvalidReference
	}
	key := stockKey(itemID, locationID)
	switch policy {
	case entity.PolicyIncrement:
		r.s.stock[key] += amount
	case entity.PolicyDecrement:
		r.s.stock[key] -= amount
	case entity.PolicySet:
		r.s.stock[key] = amount
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

func (r *fakeStockRepo) Get(_ context.Context, itemID, locationID string) (*entity.StockEntry, error) {
	return &entity.StockEntry{
		ItemID:     itemID,
		LocationID: locationID,
		Quantity:   r.s.stock[stockKey(itemID, locationID)],
	}, nil
}

func (r *fakeStockRepo) List(_ context.Context, _ string) ([]*entity.StockView, error) {
	var out []*entity.StockView
	for key, qty := range r.s.stock {
		var itemID, locID string
		for i := 0; i < len(key); i++ {
			if key[i] == '|' {
				itemID, locID = key[:i], key[i+1:]
				break
			}
		}
		out = append(out, &entity.StockView{
			StockEntry: entity.StockEntry{ItemID: itemID, LocationID: locID, Quantity: qty},
			Item:       entity.Item{ID: itemID},
			Location:   entity.Location{ID: locID},
		})
	}
	return out, nil
}

// fakeTxRunner emula la atomicidad: snapshot antes de fn, restauración si falla.
type fakeTxRunner struct {
	s *fakeStore
}

var _ ledger.TxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	docRepo repository.DocumentRepository,
	stockRepo repository.StockRepository,
) error) error {
	snapshot := r.s.clone()
	if err := fn(&fakeDocRepo{s: r.s}, &fakeStockRepo{s: r.s}); err != nil {
		*r.s = *snapshot
		return err
	}
	return nil
}
