// Seed de datos de ejemplo: usuario admin, dos ubicaciones, dos artículos y
// una fila de stock inicial. Idempotente: si el recurso ya existe, lo deja.
package main

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/infrastructure/postgres"
	"github.com/jhoicas/bodega-api/pkg/config"
	"github.com/jhoicas/bodega-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)

	now := time.Now()

	// Admin por defecto
	adminEmail := "admin@example.com"
	if existing, err := userRepo.FindByEmail(ctx, adminEmail); err != nil {
		log.Fatal().Err(err).Msg("buscar admin")
	} else if existing == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hash password")
		}
		admin := &entity.User{
			ID:           uuid.New().String(),
			Email:        adminEmail,
			PasswordHash: string(hash),
			Role:         entity.RoleAdmin,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(ctx, admin); err != nil {
			log.Fatal().Err(err).Msg("crear admin")
		}
		log.Info().Str("email", adminEmail).Msg("admin creado")
	}

	locA := seedLocation(ctx, log, locationRepo, "A-01", "Estantería A-01", now)
	seedLocation(ctx, log, locationRepo, "B-01", "Estantería B-01", now)

	item1 := seedItem(ctx, log, itemRepo, "SKU-001", "Artículo de prueba 1", "111111", now)
	seedItem(ctx, log, itemRepo, "SKU-002", "Artículo de prueba 2", "222222", now)

	// Stock inicial: 10 unidades del primer artículo en A-01
	if err := stockRepo.ApplyDelta(ctx, item1.ID, locA.ID, entity.PolicySet, 10); err != nil {
		log.Fatal().Err(err).Msg("stock inicial")
	}

	log.Info().Msg("seed completado")
}

func seedLocation(ctx context.Context, log *logger.Logger, repo *postgres.LocationRepo, code, description string, now time.Time) *entity.Location {
	existing, err := repo.GetByCode(ctx, code)
	if err != nil {
		log.Fatal().Err(err).Str("code", code).Msg("buscar ubicación")
	}
	if existing != nil {
		return existing
	}
	desc := description
	location := &entity.Location{ID: uuid.New().String(), Code: code, Description: &desc, CreatedAt: now}
	if err := repo.Create(ctx, location); err != nil && !errors.Is(err, domain.ErrDuplicate) {
		log.Fatal().Err(err).Str("code", code).Msg("crear ubicación")
	}
	log.Info().Str("code", code).Msg("ubicación creada")
	return location
}

func seedItem(ctx context.Context, log *logger.Logger, repo *postgres.ItemRepo, sku, name, barcode string, now time.Time) *entity.Item {
	existing, err := repo.GetBySKU(ctx, sku)
	if err != nil {
		log.Fatal().Err(err).Str("sku", sku).Msg("buscar artículo")
	}
	if existing != nil {
		return existing
	}
	bc := barcode
	item := &entity.Item{
		ID:        uuid.New().String(),
		SKU:       sku,
		Name:      name,
		Unit:      "pcs",
		Barcode:   &bc,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.Create(ctx, item); err != nil && !errors.Is(err, domain.ErrDuplicate) {
		log.Fatal().Err(err).Str("sku", sku).Msg("crear artículo")
	}
	log.Info().Str("sku", sku).Msg("artículo creado")
	return item
}
