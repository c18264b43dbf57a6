package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
	"github.com/jhoicas/bodega-api/pkg/logger"
)

// DocumentUseCase ciclo de vida de documentos de movimiento (primke,
// otpremnice, inventure) parametrizado por clase, más el motor de
// contabilización (post.go). Todas las escrituras multi-fila corren dentro
// de una transacción vía TxRunner.
type DocumentUseCase struct {
	txRunner TxRunner
	docRepo  repository.DocumentRepository
	log      *logger.Logger
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(txRunner TxRunner, docRepo repository.DocumentRepository, log *logger.Logger) *DocumentUseCase {
	return &DocumentUseCase{txRunner: txRunner, docRepo: docRepo, log: log}
}

// errInvalidState envuelve ErrConflict con el estado actual del documento
// para que el handler lo reporte.
func errInvalidState(status entity.DocumentStatus) error {
	return fmt.Errorf("%w: estado actual %q", domain.ErrConflict, status)
}

// buildDocument valida el request contra el descriptor de la clase y arma la
// entidad: ID nuevo, estado draft forzado, fecha por defecto ahora, líneas
// con posición según el orden recibido.
func buildDocument(kind entity.DocumentKind, in dto.DocumentRequest, now time.Time) (*entity.Document, error) {
	spec := kind.Spec()
	doc := &entity.Document{
		ID:           uuid.New().String(),
		Kind:         kind,
		Number:       in.Number,
		Counterparty: in.Counterparty(spec),
		Date:         now,
		Status:       entity.StatusDraft,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.Date != nil {
		doc.Date = *in.Date
	}
	doc.Lines = make([]entity.Line, 0, len(in.Lines))
	for i, lr := range in.Lines {
		qty, ok := lr.Quantity(spec)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		doc.Lines = append(doc.Lines, entity.Line{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			ItemID:     lr.ItemID,
			LocationID: lr.LocationID,
			Quantity:   qty,
			Position:   i,
		})
	}
	if err := spec.ValidateLines(doc.Number, doc.Lines); err != nil {
		return nil, err
	}
	return doc, nil
}

// List devuelve los documentos de la clase con sus líneas, recientes primero.
func (uc *DocumentUseCase) List(ctx context.Context, kind entity.DocumentKind) ([]*dto.DocumentResponse, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidInput
	}
	docs, err := uc.docRepo.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	return dto.ToDocumentListResponse(docs), nil
}

// Get devuelve un documento por ID.
func (uc *DocumentUseCase) Get(ctx context.Context, kind entity.DocumentKind, id string) (*dto.DocumentResponse, error) {
	if !kind.Valid() || id == "" {
		return nil, domain.ErrInvalidInput
	}
	doc, err := uc.docRepo.GetByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToDocumentResponse(doc), nil
}

// Create persiste cabecera y líneas atómicamente; el documento nace en draft.
func (uc *DocumentUseCase) Create(ctx context.Context, kind entity.DocumentKind, in dto.DocumentRequest) (*dto.DocumentResponse, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidInput
	}
	doc, err := buildDocument(kind, in, time.Now())
	if err != nil {
		return nil, err
	}
	err = uc.txRunner.Run(ctx, func(docRepo repository.DocumentRepository, _ repository.StockRepository) error {
		if err := docRepo.Insert(ctx, doc); err != nil {
			return err
		}
		return docRepo.InsertLines(ctx, doc.ID, doc.Lines)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("kind", string(kind)).Str("document_id", doc.ID).Str("number", doc.Number).
		Int("lines", len(doc.Lines)).Msg("documento creado")
	return dto.ToDocumentResponse(doc), nil
}

// Update reemplaza por completo cabecera y set de líneas de un draft
// (delete-all-then-insert, nunca un diff). Falla con ErrNotFound si no existe
// y con ErrConflict si ya no está en draft; en ambos casos sin mutación
// observable (rollback total).
func (uc *DocumentUseCase) Update(ctx context.Context, kind entity.DocumentKind, id string, in dto.DocumentRequest) (*dto.DocumentResponse, error) {
	if !kind.Valid() || id == "" {
		return nil, domain.ErrInvalidInput
	}
	doc, err := buildDocument(kind, in, time.Now())
	if err != nil {
		return nil, err
	}
	err = uc.txRunner.Run(ctx, func(docRepo repository.DocumentRepository, _ repository.StockRepository) error {
		current, err := docRepo.GetForUpdate(ctx, kind, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if !current.IsDraft() {
			return errInvalidState(current.Status)
		}
		doc.ID = id
		doc.CreatedAt = current.CreatedAt
		for i := range doc.Lines {
			doc.Lines[i].DocumentID = id
		}
		if err := docRepo.UpdateHeader(ctx, doc); err != nil {
			return err
		}
		if err := docRepo.DeleteLines(ctx, id); err != nil {
			return err
		}
		return docRepo.InsertLines(ctx, id, doc.Lines)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("kind", string(kind)).Str("document_id", id).Msg("documento reemplazado")
	return dto.ToDocumentResponse(doc), nil
}

// Delete elimina un draft (líneas y cabecera, en esa orden, misma tx).
// Un documento contabilizado no se puede borrar.
func (uc *DocumentUseCase) Delete(ctx context.Context, kind entity.DocumentKind, id string) error {
	if !kind.Valid() || id == "" {
		return domain.ErrInvalidInput
	}
	err := uc.txRunner.Run(ctx, func(docRepo repository.DocumentRepository, _ repository.StockRepository) error {
		current, err := docRepo.GetForUpdate(ctx, kind, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if !current.IsDraft() {
			return errInvalidState(current.Status)
		}
		if err := docRepo.DeleteLines(ctx, id); err != nil {
			return err
		}
		return docRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("kind", string(kind)).Str("document_id", id).Msg("documento eliminado")
	return nil
}
