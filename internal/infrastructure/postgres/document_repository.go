package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación de DocumentRepository sobre PostgreSQL
// (usable con pool o tx). Las tres clases de documento comparten las tablas
// documents y document_lines con un discriminador kind.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `id, kind, number, counterparty, date, status, created_at, updated_at`

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var d entity.Document
	err := row.Scan(&d.ID, &d.Kind, &d.Number, &d.Counterparty, &d.Date, &d.Status, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// List devuelve todos los documentos de la clase con sus líneas, los más
// recientes primero.
func (r *DocumentRepo) List(ctx context.Context, kind entity.DocumentKind) ([]*entity.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents WHERE kind = $1
		ORDER BY created_at DESC, id DESC`
	rows, err := r.q.Query(ctx, query, kind)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var list []*entity.Document
	index := make(map[string]*entity.Document)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		d.Lines = []entity.Line{}
		list = append(list, d)
		index[d.ID] = d
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	lineQuery := `
		SELECT l.id, l.document_id, l.item_id, l.location_id, l.quantity, l.position
		FROM document_lines l
		JOIN documents d ON d.id = l.document_id
		WHERE d.kind = $1
		ORDER BY l.document_id, l.position`
	lineRows, err := r.q.Query(ctx, lineQuery, kind)
	if err != nil {
		return nil, fmt.Errorf("list document lines: %w", err)
	}
	defer lineRows.Close()
	for lineRows.Next() {
		var l entity.Line
		if err := lineRows.Scan(&l.ID, &l.DocumentID, &l.ItemID, &l.LocationID, &l.Quantity, &l.Position); err != nil {
			return nil, fmt.Errorf("scan line: %w", err)
		}
		if d, ok := index[l.DocumentID]; ok {
			d.Lines = append(d.Lines, l)
		}
	}
	return list, lineRows.Err()
}

// GetByID obtiene el documento con sus líneas en orden de posición.
func (r *DocumentRepo) GetByID(ctx context.Context, kind entity.DocumentKind, id string) (*entity.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents WHERE kind = $1 AND id = $2`
	d, err := scanDocument(r.q.QueryRow(ctx, query, kind, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	lineQuery := `
		SELECT id, document_id, item_id, location_id, quantity, position
		FROM document_lines WHERE document_id = $1
		ORDER BY position`
	rows, err := r.q.Query(ctx, lineQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get document lines: %w", err)
	}
	defer rows.Close()
	d.Lines = []entity.Line{}
	for rows.Next() {
		var l entity.Line
		if err := rows.Scan(&l.ID, &l.DocumentID, &l.ItemID, &l.LocationID, &l.Quantity, &l.Position); err != nil {
			return nil, fmt.Errorf("scan line: %w", err)
		}
		d.Lines = append(d.Lines, l)
	}
	return d, rows.Err()
}

// GetForUpdate obtiene la cabecera bloqueando la fila (SELECT FOR UPDATE)
// para decidir sobre el estado sin carreras dentro de la transacción.
func (r *DocumentRepo) GetForUpdate(ctx context.Context, kind entity.DocumentKind, id string) (*entity.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents WHERE kind = $1 AND id = $2
		FOR UPDATE`
	d, err := scanDocument(r.q.QueryRow(ctx, query, kind, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document for update: %w", err)
	}
	return d, nil
}

// Insert persiste la cabecera.
func (r *DocumentRepo) Insert(ctx context.Context, doc *entity.Document) error {
	query := `
		INSERT INTO documents (id, kind, number, counterparty, date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		doc.ID, doc.Kind, doc.Number, doc.Counterparty, doc.Date, doc.Status, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// InsertLines inserta el set de líneas preservando el orden del documento.
func (r *DocumentRepo) InsertLines(ctx context.Context, docID string, lines []entity.Line) error {
	query := `
		INSERT INTO document_lines (id, document_id, item_id, location_id, quantity, position)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, l := range lines {
		_, err := r.q.Exec(ctx, query, l.ID, docID, l.ItemID, l.LocationID, l.Quantity, l.Position)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrInvalidReference
			}
			return fmt.Errorf("insert line: %w", err)
		}
	}
	return nil
}

// DeleteLines elimina todas las líneas del documento.
func (r *DocumentRepo) DeleteLines(ctx context.Context, docID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM document_lines WHERE document_id = $1`, docID)
	if err != nil {
		return fmt.Errorf("delete lines: %w", err)
	}
	return nil
}

// UpdateHeader reemplaza número, contraparte y fecha de la cabecera.
func (r *DocumentRepo) UpdateHeader(ctx context.Context, doc *entity.Document) error {
	query := `
		UPDATE documents SET number = $2, counterparty = $3, date = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, doc.ID, doc.Number, doc.Counterparty, doc.Date, doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update document header: %w", err)
	}
	return nil
}

// Delete elimina la cabecera.
func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// ClaimPosted ejecuta la transición draft -> posted condicional y atómica.
// Devuelve true solo si este caller cambió el estado; con dos contabilizaciones
// concurrentes del mismo documento exactamente una gana.
func (r *DocumentRepo) ClaimPosted(ctx context.Context, kind entity.DocumentKind, id string) (bool, error) {
	query := `
		UPDATE documents SET status = $3, updated_at = now()
		WHERE kind = $1 AND id = $2 AND status = $4`
	cmd, err := r.q.Exec(ctx, query, kind, id, entity.StatusPosted, entity.StatusDraft)
	if err != nil {
		return false, fmt.Errorf("claim posted: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}
