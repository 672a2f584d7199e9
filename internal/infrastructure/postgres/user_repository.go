package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stellarmotion-erp/internal/domain"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/entity"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id::text, email, password_hash, nombre, rol_id::text, contacto_id::text, activo, ultimo_acceso, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var rolID, contactoID *string
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Nombre, &rolID, &contactoID,
		&u.Activo, &u.UltimoAcceso, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.RolID = deref(rolID)
	u.ContactoID = deref(contactoID)
	return &u, nil
}

// Create persiste un usuario. Email duplicado -> domain.ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO usuarios (id, email, password_hash, nombre, rol_id, contacto_id, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		u.ID, strings.ToLower(u.Email), u.PasswordHash, u.Nombre, nullIfEmpty(u.RolID), nullIfEmpty(u.ContactoID),
		u.Activo, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailExists
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID. nil, nil si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM usuarios WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return u, nil
}

// FindByEmail busca por email (case-insensitive). nil, nil si no existe.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx,
		`SELECT `+userColumns+` FROM usuarios WHERE email = $1`, strings.ToLower(strings.TrimSpace(email))))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find usuario by email: %w", err)
	}
	return u, nil
}

// UpdatePassword reemplaza el hash de contraseña.
func (r *UserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE usuarios SET password_hash = $2, updated_at = NOW() WHERE id = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdateRole asigna el rol del usuario.
func (r *UserRepo) UpdateRole(ctx context.Context, id, rolID string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE usuarios SET rol_id = $2, updated_at = NOW() WHERE id = $1`, id, nullIfEmpty(rolID))
	if err != nil {
		return fmt.Errorf("update rol usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// TouchLastAccess registra el último acceso.
func (r *UserRepo) TouchLastAccess(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `UPDATE usuarios SET ultimo_acceso = $2 WHERE id = $1`, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update ultimo_acceso: %w", err)
	}
	return nil
}
