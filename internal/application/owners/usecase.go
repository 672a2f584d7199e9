package owners

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stellarmotion-erp/internal/application/dto"
	"github.com/jhoicas/stellarmotion-erp/internal/domain"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/entity"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/repository"
	"github.com/jhoicas/stellarmotion-erp/pkg/logger"
)

// UseCase alta y actualización del perfil de propietario.
type UseCase struct {
	owners repository.OwnerRepository
	users  repository.UserRepository
	roles  repository.RoleRepository
	log    *logger.Logger
	now    func() time.Time
}

// NewUseCase construye el caso de uso de propietarios.
func NewUseCase(owners repository.OwnerRepository, users repository.UserRepository, roles repository.RoleRepository, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{owners: owners, users: users, roles: roles, log: log, now: time.Now}
}

// Complete valida e inserta/actualiza el perfil del usuario y le asigna el rol owner.
// La asignación del rol no es crítica: un fallo se registra y no se devuelve.
func (uc *UseCase) Complete(ctx context.Context, in dto.CompleteOwnerRequest) (*dto.CompleteOwnerResponse, error) {
	owner, err := validate(in)
	if err != nil {
		return nil, err
	}
	user, err := uc.users.GetByID(ctx, owner.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	now := uc.now()
	owner.ID = uuid.New().String()
	owner.CreatedAt = now
	owner.UpdatedAt = now
	created, err := uc.owners.Upsert(ctx, owner)
	if err != nil {
		return nil, err
	}

	uc.assignOwnerRole(ctx, user)

	return &dto.CompleteOwnerResponse{Owner: toResponse(owner), Created: created}, nil
}

func (uc *UseCase) assignOwnerRole(ctx context.Context, user *entity.User) {
	role, err := uc.roles.FindRoleByName(ctx, entity.RolOwner)
	if err != nil {
		uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("owners: no se pudo buscar el rol owner")
		return
	}
	if role == nil {
		uc.log.Warn().Str("user_id", user.ID).Msg("owners: el rol owner no existe")
		return
	}
	if user.RolID == role.ID {
		return
	}
	if err := uc.users.UpdateRole(ctx, user.ID, role.ID); err != nil {
		uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("owners: no se pudo asignar el rol owner")
	}
}

func validate(in dto.CompleteOwnerRequest) (*entity.Owner, error) {
	o := &entity.Owner{
		UserID:         strings.TrimSpace(in.UserID),
		TipoContacto:   strings.ToLower(strings.TrimSpace(in.TipoContacto)),
		NombreContacto: strings.TrimSpace(in.NombreContacto),
		Empresa:        strings.TrimSpace(in.Empresa),
		Email:          strings.ToLower(strings.TrimSpace(in.Email)),
		Telefono:       strings.TrimSpace(in.Telefono),
		Pais:           strings.TrimSpace(in.Pais),
		Ciudad:         strings.TrimSpace(in.Ciudad),
		Direccion:      strings.TrimSpace(in.Direccion),
		NIT:            strings.TrimSpace(in.NIT),
		SitioWeb:       strings.TrimSpace(in.SitioWeb),
	}
	if o.UserID == "" {
		return nil, fmt.Errorf("%w: user_id es obligatorio", domain.ErrInvalidInput)
	}
	switch o.TipoContacto {
	case entity.OwnerPersona, entity.OwnerEmpresa, entity.OwnerAgencia, entity.OwnerGobierno:
	default:
		return nil, fmt.Errorf("%w: tipo_contacto debe ser persona, empresa, agencia o gobierno", domain.ErrInvalidInput)
	}

	required := map[string]string{"email": o.Email, "telefono": o.Telefono, "pais": o.Pais}
	if o.TipoContacto == entity.OwnerPersona {
		required["nombre_contacto"] = o.NombreContacto
	} else {
		required["empresa"] = o.Empresa
	}
	var missing []string
	for _, k := range []string{"nombre_contacto", "empresa", "email", "telefono", "pais"} {
		if v, ok := required[k]; ok && v == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: faltan campos obligatorios: %s", domain.ErrInvalidInput, strings.Join(missing, ", "))
	}
	return o, nil
}

func toResponse(o *entity.Owner) dto.OwnerResponse {
	return dto.OwnerResponse{
		ID:             o.ID,
		UserID:         o.UserID,
		TipoContacto:   o.TipoContacto,
		NombreContacto: o.NombreContacto,
		Empresa:        o.Empresa,
		Email:          o.Email,
		Telefono:       o.Telefono,
		Pais:           o.Pais,
		Ciudad:         o.Ciudad,
		Direccion:      o.Direccion,
		NIT:            o.NIT,
		SitioWeb:       o.SitioWeb,
	}
}
