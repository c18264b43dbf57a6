package entity

import (
	"time"

	"github.com/jhoicas/bodega-api/internal/domain"
)

// DocumentKind clase de documento de movimiento: primka (receipt),
// otpremnica (dispatch) o inventura (stocktake).
type DocumentKind string

const (
	KindReceipt   DocumentKind = "receipt"
	KindDispatch  DocumentKind = "dispatch"
	KindStocktake DocumentKind = "stocktake"
)

// DocumentStatus ciclo de vida del documento. Solo existe la transición
// draft -> posted; posted es terminal (sin editar, sin borrar, sin re-contabilizar).
type DocumentStatus string

const (
	StatusDraft  DocumentStatus = "draft"
	StatusPosted DocumentStatus = "posted"
)

// StockPolicy regla aritmética con la que las líneas de un documento
// mutan la cantidad en stock al contabilizar.
type StockPolicy string

const (
	PolicyIncrement StockPolicy = "increment" // suma qty (receipt)
	PolicyDecrement StockPolicy = "decrement" // resta qty, puede dejar negativo (dispatch)
	PolicySet       StockPolicy = "set"       // sobrescribe con countedQty (stocktake)
)

// KindSpec descriptor de política por clase de documento. Colapsa las tres
// variantes casi idénticas en un solo repositorio y un solo motor de
// contabilización parametrizados.
type KindSpec struct {
	Kind              DocumentKind
	RoutePrefix       string // segmento de ruta plural: "receipts", "dispatches", "stocktakes"
	CounterpartyField string // "supplier" | "customer" | "" (stocktake no tiene contraparte)
	Policy            StockPolicy
	QuantityField     string // nombre JSON de la cantidad en línea: "qty" | "countedQty"
	EditPermission    Permission
	PostPermission    Permission
}

var kindSpecs = map[DocumentKind]KindSpec{
	KindReceipt: {
		Kind:              KindReceipt,
		RoutePrefix:       "receipts",
		CounterpartyField: "supplier",
		Policy:            PolicyIncrement,
		QuantityField:     "qty",
		EditPermission:    PermReceiptsEdit,
		PostPermission:    PermReceiptsPost,
	},
	KindDispatch: {
		Kind:              KindDispatch,
		RoutePrefix:       "dispatches",
		CounterpartyField: "customer",
		Policy:            PolicyDecrement,
		QuantityField:     "qty",
		EditPermission:    PermDispatchesEdit,
		PostPermission:    PermDispatchesPost,
	},
	KindStocktake: {
		Kind:              KindStocktake,
		RoutePrefix:       "stocktakes",
		CounterpartyField: "",
		Policy:            PolicySet,
		QuantityField:     "countedQty",
		EditPermission:    PermStocktakesEdit,
		PostPermission:    PermStocktakesPost,
	},
}

// Spec devuelve el descriptor de política de la clase.
func (k DocumentKind) Spec() KindSpec {
	return kindSpecs[k]
}

// Valid indica si la clase es una de las tres conocidas.
func (k DocumentKind) Valid() bool {
	_, ok := kindSpecs[k]
	return ok
}

// Kinds devuelve las tres clases en orden estable.
func Kinds() []DocumentKind {
	return []DocumentKind{KindReceipt, KindDispatch, KindStocktake}
}

// ParseKind interpreta el segmento de ruta ("receipts", "dispatches",
// "stocktakes") o el nombre singular como clase de documento.
func ParseKind(s string) (DocumentKind, bool) {
	for _, k := range Kinds() {
		if s == string(k) || s == k.Spec().RoutePrefix {
			return k, true
		}
	}
	return "", false
}

// Line una línea de documento: (artículo, ubicación, cantidad).
// Position conserva el orden del documento; en stocktake con pares
// (item, location) duplicados gana la última línea.
type Line struct {
	ID         string
	DocumentID string
	ItemID     string
	LocationID string
	Quantity   int64
	Position   int
}

// Document cabecera + líneas de una primka/otpremnica/inventura.
type Document struct {
	ID           string
	Kind         DocumentKind
	Number       string
	Counterparty *string // supplier o customer según la clase; nil en stocktake
	Date         time.Time
	Status       DocumentStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Lines        []Line
}

// IsDraft indica si el documento sigue siendo editable/borrable.
func (d *Document) IsDraft() bool {
	return d.Status == StatusDraft
}

// ValidateLine aplica la regla de cantidad de la clase: receipt/dispatch
// exigen cantidad positiva; stocktake admite cero (conteo en cero es válido).
func (s KindSpec) ValidateLine(l Line) error {
	if l.ItemID == "" || l.LocationID == "" {
		return domain.ErrInvalidInput
	}
	switch s.Policy {
	case PolicySet:
		if l.Quantity < 0 {
			return domain.ErrInvalidInput
		}
	default:
		if l.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// ValidateLines valida número y líneas: el documento necesita número y al
// menos una línea, cada una válida según la clase.
func (s KindSpec) ValidateLines(number string, lines []Line) error {
	if number == "" {
		return domain.ErrInvalidInput
	}
	if len(lines) == 0 {
		return domain.ErrInvalidInput
	}
	for _, l := range lines {
		if err := s.ValidateLine(l); err != nil {
			return err
		}
	}
	return nil
}
