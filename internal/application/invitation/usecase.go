package invitation

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stellarmotion-erp/internal/application/dto"
	"github.com/jhoicas/stellarmotion-erp/internal/application/ports"
	"github.com/jhoicas/stellarmotion-erp/internal/domain"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/entity"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/repository"
	"github.com/jhoicas/stellarmotion-erp/pkg/logger"
)

const (
	listLimit  = 50
	sinRol     = "Sin rol"
	tokenBytes = 32
)

// TxRunner ejecuta fn en una transacción con repos de invitaciones y usuarios.
type TxRunner interface {
	RunAccounts(ctx context.Context, fn func(
		invites repository.InvitationRepository,
		users repository.UserRepository,
	) error) error
}

// UseCase gestión de invitaciones desde ajustes.
type UseCase struct {
	invites repository.InvitationRepository
	roles   repository.RoleRepository
	tx      TxRunner
	mail    ports.MailDispatcher
	baseURL string
	log     *logger.Logger
	now     func() time.Time
}

// NewUseCase construye el caso de uso. mail puede ser nil (sin envío de correos).
func NewUseCase(
	invites repository.InvitationRepository,
	roles repository.RoleRepository,
	tx TxRunner,
	mail ports.MailDispatcher,
	baseURL string,
	log *logger.Logger,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		invites: invites,
		roles:   roles,
		tx:      tx,
		mail:    mail,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log,
		now:     time.Now,
	}
}

// List devuelve las últimas invitaciones (máx. 50), opcionalmente filtradas por estado,
// con el nombre del rol resuelto.
func (uc *UseCase) List(ctx context.Context, estado string) ([]dto.InvitationResponse, error) {
	if estado != "" && !entity.ValidInvitationStatus(estado) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, estado)
	}
	list, err := uc.invites.List(ctx, estado, listLimit)
	if err != nil {
		return nil, err
	}
	roles, err := uc.roles.ListRoles(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvitationResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, toResponse(inv, rolNombre(roles, inv.Rol)))
	}
	return out, nil
}

// rolNombre resuelve por id, luego por nombre; si no, "Sin rol".
func rolNombre(roles []*entity.Role, rol string) string {
	if rol == "" {
		return sinRol
	}
	for _, r := range roles {
		if r.ID == rol {
			return r.Nombre
		}
	}
	for _, r := range roles {
		if strings.EqualFold(r.Nombre, rol) {
			return r.Nombre
		}
	}
	return sinRol
}

// Create emite una invitación de alta o de cambio de contraseña.
// La comprobación de duplicado y el insert se serializan por email dentro de una transacción.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateInvitationRequest) (*dto.CreateInvitationResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, fmt.Errorf("%w: email es obligatorio", domain.ErrInvalidInput)
	}
	rol := strings.TrimSpace(in.Rol)
	if !in.CambioPassword && rol == "" {
		return nil, fmt.Errorf("%w: rol es obligatorio", domain.ErrInvalidInput)
	}
	horas := in.HorasValidez
	if horas <= 0 {
		return nil, fmt.Errorf("%w: horasValidez es obligatorio y debe ser mayor que cero", domain.ErrInvalidInput)
	}
	token, err := newToken()
	if err != nil {
		return nil, err
	}

	now := uc.now()
	inv := &entity.Invitation{
		ID:              uuid.New().String(),
		Email:           email,
		Rol:             rol,
		Token:           token,
		Estado:          entity.InvitationPendiente,
		CambioPassword:  in.CambioPassword,
		Enlace:          uc.link(in.CambioPassword, token, email),
		FechaCreacion:   now,
		FechaExpiracion: now.Add(time.Duration(horas) * time.Hour),
	}

	err = uc.tx.RunAccounts(ctx, func(invites repository.InvitationRepository, users repository.UserRepository) error {
		if err := invites.LockEmail(ctx, email); err != nil {
			return err
		}
		if in.CambioPassword {
			user, err := users.FindByEmail(ctx, email)
			if err != nil {
				return err
			}
			if user == nil {
				return domain.ErrUserNotFound
			}
			inv.Rol = user.RolID
		}
		pending, err := invites.FindPendingByEmail(ctx, email)
		if err != nil {
			return err
		}
		if pending != nil {
			return domain.ErrPendingInvite
		}
		return invites.Create(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	uc.notify(ctx, inv)

	nombre := sinRol
	if roles, err := uc.roles.ListRoles(ctx); err == nil {
		nombre = rolNombre(roles, inv.Rol)
	}
	return &dto.CreateInvitationResponse{Invitacion: toResponse(inv, nombre), Enlace: inv.Enlace}, nil
}

// notify encola el correo de la invitación; un fallo no invalida la invitación creada.
func (uc *UseCase) notify(ctx context.Context, inv *entity.Invitation) {
	if uc.mail == nil {
		return
	}
	msg := invitationMail(inv)
	if err := uc.mail.Dispatch(ctx, msg); err != nil {
		uc.log.Warn().Err(err).Str("invitacion_id", inv.ID).Msg("no se pudo encolar el correo de invitación")
	}
}

// UpdateStatus cambia el estado; usado fija fecha_uso.
func (uc *UseCase) UpdateStatus(ctx context.Context, in dto.UpdateInvitationRequest) error {
	if in.ID == "" {
		return fmt.Errorf("%w: id es obligatorio", domain.ErrInvalidInput)
	}
	if !entity.ValidInvitationStatus(in.Estado) {
		return fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, in.Estado)
	}
	var fechaUso *time.Time
	if in.Estado == entity.InvitationUsado {
		now := uc.now()
		fechaUso = &now
	}
	ok, err := uc.invites.UpdateStatus(ctx, in.ID, in.Estado, fechaUso)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la invitación.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: id es obligatorio", domain.ErrInvalidInput)
	}
	ok, err := uc.invites.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// ExpirePending marca como expiradas las invitaciones pendientes vencidas.
func (uc *UseCase) ExpirePending(ctx context.Context) (int64, error) {
	return uc.invites.ExpirePending(ctx, uc.now())
}

func (uc *UseCase) link(cambioPassword bool, token, email string) string {
	path := "/register"
	if cambioPassword {
		path = "/reset-password"
	}
	q := url.Values{}
	q.Set("token", token)
	q.Set("email", email)
	return uc.baseURL + path + "?" + q.Encode()
}

func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generar token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func invitationMail(inv *entity.Invitation) ports.MailMessage {
	subject := "Invitación a StellarMotion"
	accion := "crear tu cuenta"
	if inv.CambioPassword {
		subject = "Cambio de contraseña en StellarMotion"
		accion = "establecer tu nueva contraseña"
	}
	text := fmt.Sprintf("Hola,\n\nUsa este enlace para %s:\n%s\n\nEl enlace caduca el %s (UTC).\n",
		accion, inv.Enlace, inv.FechaExpiracion.UTC().Format("02/01/2006 15:04"))
	return ports.MailMessage{To: inv.Email, Subject: subject, Text: text}
}

func toResponse(inv *entity.Invitation, nombre string) dto.InvitationResponse {
	return dto.InvitationResponse{
		ID:              inv.ID,
		Email:           inv.Email,
		Rol:             inv.Rol,
		RolNombre:       nombre,
		Token:           inv.Token,
		Estado:          inv.Estado,
		CambioPassword:  inv.CambioPassword,
		Enlace:          inv.Enlace,
		FechaCreacion:   inv.FechaCreacion,
		FechaExpiracion: inv.FechaExpiracion,
		FechaUso:        inv.FechaUso,
	}
}
