// seed aplica las migraciones y carga los datos mínimos para operar:
// catálogo de permisos, roles Administrador y owner, y un usuario administrador.
//
// Uso: SEED_ADMIN_EMAIL=admin@stellarmotion.io SEED_ADMIN_PASSWORD=... go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stellarmotion-erp/internal/domain/entity"
	"github.com/jhoicas/stellarmotion-erp/internal/infrastructure/postgres"
	"github.com/jhoicas/stellarmotion-erp/pkg/config"
	"github.com/jhoicas/stellarmotion-erp/pkg/logger"
)

const rolAdministrador = "Administrador"

// Módulos no técnicos; cada uno recibe ver/editar/eliminar/admin.
var modulos = []string{
	entity.ModuloAjustes,
	"clientes",
	"soportes",
	"facturacion",
	"mensajeria",
	"propietarios",
}

var accionesTecnicas = []string{"ver costes", "exportar", "aprobar"}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	email := strings.ToLower(strings.TrimSpace(os.Getenv("SEED_ADMIN_EMAIL")))
	password := os.Getenv("SEED_ADMIN_PASSWORD")

	err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		n, err := seedPermisos(ctx, tx)
		if err != nil {
			return err
		}
		log.Info().Int("permisos", n).Msg("catálogo de permisos")

		adminID, err := upsertRole(ctx, tx, rolAdministrador, "Acceso total al backoffice")
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO rol_permisos (rol_id, permiso_id)
			SELECT $1, id FROM permisos
			ON CONFLICT DO NOTHING`, adminID); err != nil {
			return fmt.Errorf("permisos del administrador: %w", err)
		}
		if _, err := upsertRole(ctx, tx, entity.RolOwner, "Propietario de soportes"); err != nil {
			return err
		}

		if email == "" || password == "" {
			log.Warn().Msg("SEED_ADMIN_EMAIL/SEED_ADMIN_PASSWORD vacíos, no se crea usuario administrador")
			return nil
		}
		return upsertAdmin(ctx, tx, email, password, adminID)
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	log.Info().Str("admin", email).Msg("seed completado")
}

func seedPermisos(ctx context.Context, tx pgx.Tx) (int, error) {
	batch := &pgx.Batch{}
	for _, m := range modulos {
		for _, a := range entity.StandardActions {
			batch.Queue(`INSERT INTO permisos (modulo, accion) VALUES ($1, $2) ON CONFLICT (modulo, accion) DO NOTHING`, m, a)
		}
	}
	for _, a := range accionesTecnicas {
		batch.Queue(`INSERT INTO permisos (modulo, accion) VALUES ($1, $2) ON CONFLICT (modulo, accion) DO NOTHING`, entity.ModuloTecnico, a)
	}
	n := batch.Len()
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("insertar permisos: %w", err)
	}
	return n, nil
}

func upsertRole(ctx context.Context, tx pgx.Tx, nombre, descripcion string) (string, error) {
	var id string
	err := tx.QueryRow(ctx, `
		INSERT INTO roles (nombre, descripcion) VALUES ($1, $2)
		ON CONFLICT (nombre) DO UPDATE SET descripcion = EXCLUDED.descripcion
		RETURNING id::text`, nombre, descripcion).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("rol %s: %w", nombre, err)
	}
	return id, nil
}

func upsertAdmin(ctx context.Context, tx pgx.Tx, email, password, rolID string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash de contraseña: %w", err)
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO usuarios (email, password_hash, nombre, rol_id, activo)
		VALUES ($1, $2, 'Administrador', $3, TRUE)
		ON CONFLICT (email) DO UPDATE
		SET password_hash = EXCLUDED.password_hash, rol_id = EXCLUDED.rol_id, activo = TRUE, updated_at = NOW()`,
		email, string(hash), rolID)
	if err != nil {
		return fmt.Errorf("usuario administrador: %w", err)
	}
	return nil
}
