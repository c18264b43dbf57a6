package dto

import (
	"time"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// LineRequest línea de un documento de movimiento. Qty aplica a
// primke/otpremnice; CountedQty a inventure. El caso de uso toma el campo
// que indica el descriptor de la clase e ignora el otro.
type LineRequest struct {
	ItemID     string `json:"itemId"`
	LocationID string `json:"locationId"`
	Qty        *int64 `json:"qty,omitempty"`
	CountedQty *int64 `json:"countedQty,omitempty"`
}

// DocumentRequest body para crear o reemplazar (PUT) un documento.
// Date en formato RFC 3339; si falta, se usa la hora de creación.
type DocumentRequest struct {
	Number   string        `json:"number"`
	Supplier *string       `json:"supplier,omitempty"`
	Customer *string       `json:"customer,omitempty"`
	Date     *time.Time    `json:"date,omitempty"`
	Lines    []LineRequest `json:"lines"`
}

// Counterparty devuelve la contraparte según el campo que usa la clase.
func (r DocumentRequest) Counterparty(spec entity.KindSpec) *string {
	switch spec.CounterpartyField {
	case "supplier":
		return r.Supplier
	case "customer":
		return r.Customer
	}
	return nil
}

// Quantity devuelve la cantidad de la línea según el campo de la clase.
// (nil, false) si el campo requerido no vino en el body.
func (l LineRequest) Quantity(spec entity.KindSpec) (int64, bool) {
	var v *int64
	if spec.QuantityField == "countedQty" {
		v = l.CountedQty
	} else {
		v = l.Qty
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

// LineResponse línea serializada; solo se emite el campo de cantidad propio
// de la clase del documento.
type LineResponse struct {
	ID         string `json:"id"`
	ItemID     string `json:"itemId"`
	LocationID string `json:"locationId"`
	Qty        *int64 `json:"qty,omitempty"`
	CountedQty *int64 `json:"countedQty,omitempty"`
}

// DocumentResponse documento con sus líneas.
type DocumentResponse struct {
	ID        string         `json:"id"`
	Kind      string         `json:"kind"`
	Number    string         `json:"number"`
	Supplier  *string        `json:"supplier,omitempty"`
	Customer  *string        `json:"customer,omitempty"`
	Date      time.Time      `json:"date"`
	Status    string         `json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Lines     []LineResponse `json:"lines"`
}

// ToDocumentResponse mapea la entidad al DTO respetando el nombre del campo
// de cantidad y de contraparte de cada clase.
func ToDocumentResponse(d *entity.Document) *DocumentResponse {
	if d == nil {
		return nil
	}
	spec := d.Kind.Spec()
	resp := &DocumentResponse{
		ID:        d.ID,
		Kind:      string(d.Kind),
		Number:    d.Number,
		Date:      d.Date,
		Status:    string(d.Status),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
		Lines:     make([]LineResponse, 0, len(d.Lines)),
	}
	switch spec.CounterpartyField {
	case "supplier":
		resp.Supplier = d.Counterparty
	case "customer":
		resp.Customer = d.Counterparty
	}
	for _, l := range d.Lines {
		qty := l.Quantity
		lr := LineResponse{ID: l.ID, ItemID: l.ItemID, LocationID: l.LocationID}
		if spec.QuantityField == "countedQty" {
			lr.CountedQty = &qty
		} else {
			lr.Qty = &qty
		}
		resp.Lines = append(resp.Lines, lr)
	}
	return resp
}

// ToDocumentListResponse mapea una lista de documentos.
func ToDocumentListResponse(docs []*entity.Document) []*DocumentResponse {
	out := make([]*DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, ToDocumentResponse(d))
	}
	return out
}
