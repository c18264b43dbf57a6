package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/ledger"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/pkg/logger"
)

func newTestUC(t *testing.T) (*ledger.DocumentUseCase, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	uc := ledger.NewDocumentUseCase(&fakeTxRunner{s: store}, &fakeDocRepo{s: store}, log)
	return uc, store
}

func qtyLine(itemID, locationID string, qty int64) dto.LineRequest {
	return dto.LineRequest{ItemID: itemID, LocationID: locationID, Qty: &qty}
}

func countedLine(itemID, locationID string, counted int64) dto.LineRequest {
	return dto.LineRequest{ItemID: itemID, LocationID: locationID, CountedQty: &counted}
}

func docReq(number string, lines ...dto.LineRequest) dto.DocumentRequest {
	return dto.DocumentRequest{Number: number, Lines: lines}
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida: crear, reemplazar, eliminar
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_NaceEnDraftSinTocarStock(t *testing.T) {
	uc, store := newTestUC(t)
	ctx := context.Background()

	resp, err := uc.Create(ctx, entity.KindReceipt, docReq("PR-001", qtyLine("item-A", "loc-X", 5)))
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, "draft", resp.Status)
	assert.Equal(t, "PR-001", resp.Number)
	require.Len(t, resp.Lines, 1)
	require.NotNil(t, resp.Lines[0].Qty)
	assert.EqualValues(t, 5, *resp.Lines[0].Qty)

	// Crear un borrador nunca mueve stock.
	assert.Empty(t, store.stock)

	stored := store.docs[resp.ID]
	require.NotNil(t, stored)
	assert.Equal(t, entity.StatusDraft, stored.Status)
	assert.Len(t, stored.Lines, 1)
}

func TestCreate_ValidacionDeLineas(t *testing.T) {
	uc, store := newTestUC(t)
	ctx := context.Background()

	cases := []struct {
		name string
		kind entity.DocumentKind
		req  dto.DocumentRequest
	}{
		{"sin numero", entity.KindReceipt, docReq("", qtyLine("item-A", "loc-X", 1))},
		{"sin lineas", entity.KindReceipt, docReq("PR-002")},
		{"qty cero en primka", entity.KindReceipt, docReq("PR-003", qtyLine("item-A", "loc-X", 0))},
		{"qty negativa en otpremnica", entity.KindDispatch, docReq("OT-001", qtyLine("item-A", "loc-X", -2))},
		{"countedQty negativa", entity.KindStocktake, docReq("INV-001", countedLine("item-A", "loc-X", -1))},
		{"campo de cantidad equivocado", entity.KindReceipt, docReq("PR-004", countedLine("item-A", "loc-X", 3))},
		{"sin itemId", entity.KindReceipt, docReq("PR-005", qtyLine("", "loc-X", 1))},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(ctx, tc.kind, tc.req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	assert.Empty(t, store.docs, "ningún request inválido debe persistir nada")
}

func TestCreate_CountedQtyCeroEsValidaEnInventura(t *testing.T) {
	uc, _ := newTestUC(t)

	resp, err := uc.Create(context.Background(), entity.KindStocktake,
		docReq("INV-002", countedLine("item-A", "loc-X", 0)))
	require.NoError(t, err)
	require.Len(t, resp.Lines, 1)
	require.NotNil(t, resp.Lines[0].CountedQty)
	assert.EqualValues(t, 0, *resp.Lines[0].CountedQty)
	assert.Nil(t, resp.Lines[0].Qty)
}

func TestCreate_ReferenciaInexistenteRevierteTodo(t *testing.T) {
	uc, store := newTestUC(t)

	_, err := uc.Create(context.Background(), entity.KindReceipt,
		docReq("PR-006",
			qtyLine("item-A", "loc-X", 2),
			qtyLine("item-fantasma", "loc-X", 3)))
	require.ErrorIs(t, err, domain.ErrInvalidReference)

	// La cabecera insertada antes de fallar la segunda línea no sobrevive.
	assert.Empty(t, store.docs)
	assert.Empty(t, store.order)
}

func TestUpdate_ReemplazaElSetDeLineasCompleto(t *testing.T) {
	uc, store := newTestUC(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, entity.KindDispatch, docReq("OT-010",
		qtyLine("item-A", "loc-X", 1),
		qtyLine("item-B", "loc-X", 2)))
	require.NoError(t, err)

	customer := "Kupac d.o.o."
	updated, err := uc.Update(ctx, entity.KindDispatch, created.ID, dto.DocumentRequest{
		Number:   "OT-010-R",
		Customer: &customer,
		Lines:    []dto.LineRequest{qtyLine("item-B", "loc-Y", 7)},
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "OT-010-R", updated.Number)
	require.NotNil(t, updated.Customer)
	assert.Equal(t, "Kupac d.o.o.", *updated.Customer)
	require.Len(t, updated.Lines, 1)
	assert.Equal(t, "item-B", updated.Lines[0].ItemID)

	stored := store.docs[created.ID]
	require.Len(t, stored.Lines, 1, "las líneas viejas no deben quedar")
	assert.Equal(t, "loc-Y", stored.Lines[0].LocationID)
	assert.Equal(t, created.CreatedAt, stored.CreatedAt)
}

func TestUpdate_Inexistente(t *testing.T) {
	uc, _ := newTestUC(t)

	_, err := uc.Update(context.Background(), entity.KindReceipt, "no-existe",
		docReq("PR-020", qtyLine("item-A", "loc-X", 1)))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_SoloDrafts(t *testing.T) {
	uc, store := newTestUC(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, entity.KindReceipt, docReq("PR-030", qtyLine("item-A", "loc-X", 4)))
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, entity.KindReceipt, created.ID))
	assert.Empty(t, store.docs)

	assert.ErrorIs(t, uc.Delete(ctx, entity.KindReceipt, created.ID), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Contabilización: políticas de stock por clase
// ──────────────────────────────────────────────────────────────────────────────

func TestPost_PrimkaSumaYAcumula(t *testing.T) {
	uc, store := newTestUC(t)
	ctx := context.Background()

	first, err := uc.Create(ctx, entity.KindReceipt, docReq("PR-100", qtyLine("item-A", "loc-X", 5)))
	require.NoError(t, err)
	second, err := uc.Create(ctx, entity.KindReceipt, docReq("PR-101", qtyLine("item-A", "loc-X", 3)))
	require.NoError(t, err)

	posted, err := uc.Post(ctx, entity.KindReceipt, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "posted", posted.Status)
	assert.EqualValues(t, 5, store.stock[stockKey("item-A", "loc-X")])

	_, err = uc.Post(ctx, entity.KindReceipt, second.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 8, store.stock[stockKey("item-A", "loc-X")], "las primke se acumulan")
}

func TestPost_OtpremnicaRestaYPermiteNegativo(t *testing.T) {
	uc, store := newTestUC(t)
	ctx := context.Background()

	store.stock[stockKey("item-A", "loc-X")] = 4

	created, err := uc.Create(ctx, entity.KindDispatch, docReq("OT-100", qtyLine("item-A", "loc-X", 10)))
	require.NoError(t, err)

	_, err = uc.Post(ctx, entity.KindDispatch, created.ID)
	require.NoError(t, err)
	assert.EqualValues(t, -6, store.stock[stockKey("item-A", "loc-X")],
		"despachar por encima del stock deja cantidad negativa, no falla")
}

func TestPost_OtpremnicaDosLineasMismoDestinoSeAcumulan(t *testing.T) {
	uc, store := newTestUC(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, entity.KindDispatch, docReq("OT-101",
		qtyLine("item-A", "loc-X", 3),
		qtyLine("item-A", "loc-X", 4)))
	require.NoError(t, err)

	_, err = uc.Post(ctx, entity.KindDispatch, created.ID)
	require.NoError(t, err)
	assert.EqualValues(t, -7, store.stock[stockKey("item-A", "loc-X")])
}

func TestPost_InventuraSobrescribe(t *testing.T) {
	uc, store := newTestUC(t)
	ctx := context.Background()

	store.stock[stockKey("item-A", "loc-X")] = -6
	store.stock[stockKey("item-B", "loc-Y")] = 99

	created, err := uc.Create(ctx, entity.KindStocktake, docReq("INV-100",
		countedLine("item-A", "loc-X", 20),
		countedLine("item-B", "loc-Y", 0)))
	require.NoError(t, err)

	_, err = uc.Post(ctx, entity.KindStocktake, created.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 20, store.stock[stockKey("item-A", "loc-X")])
	assert.EqualValues(t, 0, store.stock[stockKey("item-B", "loc-Y")])
}

func TestPost_InventuraParRepetidoGanaLaUltimaLinea(t *testing.T) {
	uc, store := newTestUC(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, entity.KindStocktake, docReq("INV-101",
		countedLine("item-A", "loc-X", 15),
		countedLine("item-A", "loc-X", 9)))
	require.NoError(t, err)

	_, err = uc.Post(ctx, entity.KindStocktake, created.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 9, store.stock[stockKey("item-A", "loc-X")])
}

// ──────────────────────────────────────────────────────────────────────────────
// Contabilización: transición de estado
// ──────────────────────────────────────────────────────────────────────────────

func TestPost_DobleContabilizacionAplicaDeltasUnaSolaVez(t *testing.T) {
	uc, store := newTestUC(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, entity.KindReceipt, docReq("PR-200", qtyLine("item-A", "loc-X", 5)))
	require.NoError(t, err)

	_, err = uc.Post(ctx, entity.KindReceipt, created.ID)
	require.NoError(t, err)

	_, err = uc.Post(ctx, entity.KindReceipt, created.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.EqualValues(t, 5, store.stock[stockKey("item-A", "loc-X")],
		"el segundo intento no vuelve a aplicar los deltas")
	assert.Equal(t, entity.StatusPosted, store.docs[created.ID].Status)
}

func TestPost_DocumentoInexistente(t *testing.T) {
	uc, _ := newTestUC(t)

	_, err := uc.Post(context.Background(), entity.KindReceipt, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPost_ClaseEquivocadaNoEncuentraElDocumento(t *testing.T) {
	uc, _ := newTestUC(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, entity.KindReceipt, docReq("PR-201", qtyLine("item-A", "loc-X", 1)))
	require.NoError(t, err)

	// El endpoint de otpremnice no puede contabilizar una primka.
	_, err = uc.Post(ctx, entity.KindDispatch, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPost_FalloEnUnaLineaRevierteEstadoYStock(t *testing.T) {
	uc, store := newTestUC(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, entity.KindReceipt, docReq("PR-202",
		qtyLine("item-A", "loc-X", 5),
		qtyLine("item-B", "loc-Y", 2)))
	require.NoError(t, err)

	// El artículo de la segunda línea desaparece antes de contabilizar.
	delete(store.items, "item-B")

	_, err = uc.Post(ctx, entity.KindReceipt, created.ID)
	require.ErrorIs(t, err, domain.ErrInvalidReference)

	assert.Empty(t, store.stock, "el delta de la primera línea también se revierte")
	assert.Equal(t, entity.StatusDraft, store.docs[created.ID].Status,
		"el claim de estado se revierte junto con los deltas")

	// Restaurado el artículo, el documento sigue contabilizable.
	store.items["item-B"] = true
	_, err = uc.Post(ctx, entity.KindReceipt, created.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 5, store.stock[stockKey("item-A", "loc-X")])
	assert.EqualValues(t, 2, store.stock[stockKey("item-B", "loc-Y")])
}

// ──────────────────────────────────────────────────────────────────────────────
// Documentos contabilizados quedan congelados
// ──────────────────────────────────────────────────────────────────────────────

func TestDocumentoContabilizadoNoSeEditaNiBorra(t *testing.T) {
	uc, store := newTestUC(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, entity.KindDispatch, docReq("OT-300", qtyLine("item-A", "loc-X", 2)))
	require.NoError(t, err)
	_, err = uc.Post(ctx, entity.KindDispatch, created.ID)
	require.NoError(t, err)

	_, err = uc.Update(ctx, entity.KindDispatch, created.ID,
		docReq("OT-300-R", qtyLine("item-A", "loc-X", 99)))
	assert.ErrorIs(t, err, domain.ErrConflict)

	assert.ErrorIs(t, uc.Delete(ctx, entity.KindDispatch, created.ID), domain.ErrConflict)

	stored := store.docs[created.ID]
	require.NotNil(t, stored)
	assert.Equal(t, "OT-300", stored.Number)
	require.Len(t, stored.Lines, 1)
	assert.EqualValues(t, 2, stored.Lines[0].Quantity)
	assert.EqualValues(t, -2, store.stock[stockKey("item-A", "loc-X")])
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestListYGet_FiltranPorClase(t *testing.T) {
	uc, _ := newTestUC(t)
	ctx := context.Background()

	receipt, err := uc.Create(ctx, entity.KindReceipt, docReq("PR-400", qtyLine("item-A", "loc-X", 1)))
	require.NoError(t, err)
	_, err = uc.Create(ctx, entity.KindDispatch, docReq("OT-400", qtyLine("item-A", "loc-X", 1)))
	require.NoError(t, err)

	receipts, err := uc.List(ctx, entity.KindReceipt)
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	assert.Equal(t, "PR-400", receipts[0].Number)

	got, err := uc.Get(ctx, entity.KindReceipt, receipt.ID)
	require.NoError(t, err)
	assert.Equal(t, receipt.ID, got.ID)

	_, err = uc.Get(ctx, entity.KindDispatch, receipt.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_RecientesPrimero(t *testing.T) {
	uc, _ := newTestUC(t)
	ctx := context.Background()

	for _, n := range []string{"PR-500", "PR-501", "PR-502"} {
		_, err := uc.Create(ctx, entity.KindReceipt, docReq(n, qtyLine("item-A", "loc-X", 1)))
		require.NoError(t, err)
	}

	docs, err := uc.List(ctx, entity.KindReceipt)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "PR-502", docs[0].Number)
	assert.Equal(t, "PR-500", docs[2].Number)
}
