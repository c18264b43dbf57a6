package ledger

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// Post contabiliza un documento: reclama la transición draft -> posted de
// forma condicional y aplica los deltas de stock línea a línea, todo dentro
// de una sola transacción. La transición es irreversible.
//
// El claim condicional (UPDATE ... WHERE status = 'draft') hace que dos
// callers concurrentes sobre el mismo documento no puedan aplicar los deltas
// dos veces: solo uno gana la transición, el otro recibe ErrConflict. Un
// fallo en cualquier línea (p. ej. referencia inexistente) revierte también
// el cambio de estado.
//
// Las líneas se aplican en el orden del documento: para increment/decrement
// el resultado es conmutativo (se acumulan), para set es destructivo y la
// última línea de un par (item, location) repetido gana.
func (uc *DocumentUseCase) Post(ctx context.Context, kind entity.DocumentKind, id string) (*dto.DocumentResponse, error) {
	if !kind.Valid() || id == "" {
		return nil, domain.ErrInvalidInput
	}
	spec := kind.Spec()

	var posted *entity.Document
	err := uc.txRunner.Run(ctx, func(docRepo repository.DocumentRepository, stockRepo repository.StockRepository) error {
		claimed, err := docRepo.ClaimPosted(ctx, kind, id)
		if err != nil {
			return err
		}
		if !claimed {
			current, err := docRepo.GetForUpdate(ctx, kind, id)
			if err != nil {
				return err
			}
			if current == nil {
				return domain.ErrNotFound
			}
			return errInvalidState(current.Status)
		}

		doc, err := docRepo.GetByID(ctx, kind, id)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}

		for _, line := range doc.Lines {
			if err := stockRepo.ApplyDelta(ctx, line.ItemID, line.LocationID, spec.Policy, line.Quantity); err != nil {
				return err
			}
		}
		posted = doc
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("kind", string(kind)).Str("document_id", id).
		Str("number", posted.Number).Int("lines", len(posted.Lines)).
		Msg("documento contabilizado")
	return dto.ToDocumentResponse(posted), nil
}
