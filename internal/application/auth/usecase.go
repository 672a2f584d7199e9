package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stellarmotion-erp/internal/application/dto"
	"github.com/jhoicas/stellarmotion-erp/internal/domain"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/entity"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/repository"
	"github.com/jhoicas/stellarmotion-erp/pkg/jwt"
)

// SessionConfig configuración para generación de tokens de sesión.
type SessionConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// TxRunner ejecuta fn en una transacción con repos de invitaciones y usuarios.
type TxRunner interface {
	RunAccounts(ctx context.Context, fn func(
		invites repository.InvitationRepository,
		users repository.UserRepository,
	) error) error
}

// AuthUseCase casos de uso de autenticación: login, sesión y consumo de enlaces.
type AuthUseCase struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	tx       TxRunner
	cfg      SessionConfig
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, roleRepo repository.RoleRepository, tx TxRunner, cfg SessionConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, roleRepo: roleRepo, tx: tx, cfg: cfg, now: time.Now}
}

// Login verifica email/password y genera el token de sesión.
// Usuario inexistente o password incorrecto → ErrUnauthorized; usuario inactivo → ErrForbidden.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Activo {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.cfg.Secret, jwt.Session{
		UserID:     user.ID,
		Email:      user.Email,
		RolID:      user.RolID,
		ContactoID: user.ContactoID,
	}, uc.cfg.Issuer, uc.cfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("auth: generar token: %w", err)
	}
	if err := uc.userRepo.TouchLastAccess(ctx, user.ID); err != nil {
		return nil, err
	}
	now := uc.now()
	user.UltimoAcceso = &now
	return &dto.LoginResponse{User: *ToUserResponse(user), Token: token}, nil
}

// Me devuelve el usuario de la sesión.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

// Register crea un usuario consumiendo una invitación de alta.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	email := normalizeEmail(in.Email)
	var created *entity.User
	err = uc.tx.RunAccounts(ctx, func(invites repository.InvitationRepository, users repository.UserRepository) error {
		inv, err := uc.consume(ctx, invites, in.Token, email)
		if err != nil {
			return err
		}
		if inv.CambioPassword {
			return fmt.Errorf("%w: el enlace es de cambio de contraseña", domain.ErrInvalidInput)
		}
		existing, err := users.FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrEmailExists
		}
		rolID, err := uc.resolveRoleID(ctx, inv.Rol)
		if err != nil {
			return err
		}
		now := uc.now()
		created = &entity.User{
			ID:           uuid.New().String(),
			Email:        email,
			PasswordHash: string(hash),
			Nombre:       strings.TrimSpace(in.Nombre),
			RolID:        rolID,
			Activo:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := users.Create(ctx, created); err != nil {
			return err
		}
		return markUsed(ctx, invites, inv.ID, now)
	})
	if err != nil {
		return nil, err
	}
	return ToUserResponse(created), nil
}

// ResetPassword cambia la contraseña consumiendo una invitación de cambio de contraseña.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	email := normalizeEmail(in.Email)
	return uc.tx.RunAccounts(ctx, func(invites repository.InvitationRepository, users repository.UserRepository) error {
		inv, err := uc.consume(ctx, invites, in.Token, email)
		if err != nil {
			return err
		}
		if !inv.CambioPassword {
			return fmt.Errorf("%w: el enlace no es de cambio de contraseña", domain.ErrInvalidInput)
		}
		user, err := users.FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		if err := users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
			return err
		}
		return markUsed(ctx, invites, inv.ID, uc.now())
	})
}

// consume bloquea la invitación y valida estado, vencimiento y email.
func (uc *AuthUseCase) consume(ctx context.Context, invites repository.InvitationRepository, token, email string) (*entity.Invitation, error) {
	inv, err := invites.GetByTokenForUpdate(ctx, token)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.Estado != entity.InvitationPendiente {
		return nil, fmt.Errorf("%w: la invitación está %s", domain.ErrConflict, inv.Estado)
	}
	if inv.Expired(uc.now()) {
		return nil, domain.ErrExpired
	}
	if inv.Email != email {
		return nil, fmt.Errorf("%w: el email no coincide con la invitación", domain.ErrInvalidInput)
	}
	return inv, nil
}

// resolveRoleID acepta id o nombre de rol; un rol desconocido deja al usuario sin rol.
func (uc *AuthUseCase) resolveRoleID(ctx context.Context, rol string) (string, error) {
	rol = strings.TrimSpace(rol)
	if rol == "" {
		return "", nil
	}
	r, err := uc.roleRepo.GetRole(ctx, rol)
	if err != nil {
		return "", err
	}
	if r == nil {
		if r, err = uc.roleRepo.FindRoleByName(ctx, rol); err != nil {
			return "", err
		}
	}
	if r == nil {
		return "", nil
	}
	return r.ID, nil
}

func markUsed(ctx context.Context, invites repository.InvitationRepository, id string, at time.Time) error {
	ok, err := invites.UpdateStatus(ctx, id, entity.InvitationUsado, &at)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ToUserResponse convierte la entidad a DTO sin el hash.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Nombre:       u.Nombre,
		RolID:        u.RolID,
		ContactoID:   u.ContactoID,
		Activo:       u.Activo,
		UltimoAcceso: u.UltimoAcceso,
	}
}
