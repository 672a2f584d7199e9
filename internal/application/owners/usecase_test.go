package owners_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stellarmotion-erp/internal/application/dto"
	"github.com/jhoicas/stellarmotion-erp/internal/application/owners"
	"github.com/jhoicas/stellarmotion-erp/internal/domain"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/entity"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/repository"
	"github.com/jhoicas/stellarmotion-erp/pkg/logger"
)

type memOwners struct {
	byUser map[string]*entity.Owner
}

func (m *memOwners) Upsert(_ context.Context, o *entity.Owner) (bool, error) {
	if prev, ok := m.byUser[o.UserID]; ok {
		o.ID = prev.ID
		m.byUser[o.UserID] = o
		return false, nil
	}
	m.byUser[o.UserID] = o
	return true, nil
}
func (m *memOwners) GetByUserID(_ context.Context, userID string) (*entity.Owner, error) {
	return m.byUser[userID], nil
}

type memUsers struct {
	repository.UserRepository
	users     map[string]*entity.User
	updateErr error
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	return m.users[id], nil
}
func (m *memUsers) UpdateRole(_ context.Context, id, rolID string) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.users[id].RolID = rolID
	return nil
}

type memRoles struct {
	repository.RoleRepository
}

func (memRoles) FindRoleByName(_ context.Context, nombre string) (*entity.Role, error) {
	if nombre == entity.RolOwner {
		return &entity.Role{ID: "r-owner", Nombre: entity.RolOwner}, nil
	}
	return nil, nil
}

func persona() dto.CompleteOwnerRequest {
	return dto.CompleteOwnerRequest{
		UserID: "u1", TipoContacto: "Persona", NombreContacto: "Ana",
		Email: "ana@sm.io", Telefono: "+57 300", Pais: "Colombia",
	}
}

func newUC(buf *bytes.Buffer) (*owners.UseCase, *memOwners, *memUsers) {
	o := &memOwners{byUser: map[string]*entity.Owner{}}
	u := &memUsers{users: map[string]*entity.User{"u1": {ID: "u1", Email: "ana@sm.io"}}}
	log := logger.New(logger.Config{Env: "production", Level: "debug", Output: buf})
	return owners.NewUseCase(o, u, memRoles{}, log), o, u
}

func TestComplete_CreaYActualiza(t *testing.T) {
	uc, repo, users := newUC(&bytes.Buffer{})
	ctx := context.Background()

	out, err := uc.Complete(ctx, persona())
	require.NoError(t, err)
	assert.True(t, out.Created)
	assert.Equal(t, "persona", out.Owner.TipoContacto)
	assert.Equal(t, "r-owner", users.users["u1"].RolID)

	in := persona()
	in.Ciudad = "Medellín"
	out2, err := uc.Complete(ctx, in)
	require.NoError(t, err)
	assert.False(t, out2.Created)
	assert.Equal(t, out.Owner.ID, out2.Owner.ID)
	assert.Equal(t, "Medellín", repo.byUser["u1"].Ciudad)
}

func TestComplete_Validaciones(t *testing.T) {
	uc, repo, _ := newUC(&bytes.Buffer{})
	ctx := context.Background()

	in := persona()
	in.UserID = ""
	_, err := uc.Complete(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = persona()
	in.TipoContacto = "cooperativa"
	_, err = uc.Complete(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = persona()
	in.TipoContacto = "empresa"
	_, err = uc.Complete(ctx, in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "empresa")

	in = persona()
	in.UserID = "u-x"
	_, err = uc.Complete(ctx, in)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	assert.Empty(t, repo.byUser)
}

func TestComplete_FalloDeRolNoEsCritico(t *testing.T) {
	var buf bytes.Buffer
	uc, repo, users := newUC(&buf)
	users.updateErr = errors.New("timeout")

	out, err := uc.Complete(context.Background(), persona())
	require.NoError(t, err)
	assert.True(t, out.Created)
	assert.Len(t, repo.byUser, 1)
	assert.Contains(t, buf.String(), "no se pudo asignar el rol owner")
}
