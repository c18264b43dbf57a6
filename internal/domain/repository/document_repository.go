package repository

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// DocumentRepository puerto de persistencia para documentos de movimiento
// (primke, otpremnice, inventure), parametrizado por clase.
//
// Las operaciones de escritura que tocan varias filas (cabecera + líneas)
// deben invocarse dentro de una transacción (ver ledger.TxRunner): una
// escritura parcial nunca debe ser visible para lecturas posteriores.
type DocumentRepository interface {
	// List devuelve todos los documentos de la clase con sus líneas,
	// los más recientes primero.
	List(ctx context.Context, kind entity.DocumentKind) ([]*entity.Document, error)

	// GetByID obtiene el documento con sus líneas; (nil, nil) si no existe.
	GetByID(ctx context.Context, kind entity.DocumentKind, id string) (*entity.Document, error)

	// GetForUpdate obtiene la cabecera (sin líneas) bloqueando la fila
	// (SELECT FOR UPDATE) para decidir sobre el estado sin carreras dentro
	// de la transacción; (nil, nil) si no existe.
	GetForUpdate(ctx context.Context, kind entity.DocumentKind, id string) (*entity.Document, error)

	// Insert persiste la cabecera (sin líneas).
	Insert(ctx context.Context, doc *entity.Document) error

	// InsertLines inserta el set de líneas de un documento preservando el orden.
	// Una línea que referencia un artículo o ubicación inexistente produce
	// domain.ErrInvalidReference.
	InsertLines(ctx context.Context, docID string, lines []entity.Line) error

	// DeleteLines elimina todas las líneas del documento.
	DeleteLines(ctx context.Context, docID string) error

	// UpdateHeader reemplaza número, contraparte y fecha de la cabecera.
	UpdateHeader(ctx context.Context, doc *entity.Document) error

	// Delete elimina la cabecera (las líneas deben borrarse antes).
	Delete(ctx context.Context, id string) error

	// ClaimPosted ejecuta la transición draft -> posted de forma condicional
	// y atómica (UPDATE ... WHERE status = 'draft'). Devuelve true si este
	// caller ganó la transición; false si el documento ya no estaba en draft.
	ClaimPosted(ctx context.Context, kind entity.DocumentKind, id string) (bool, error)
}
