package invitation_test

import (
	"context"
	"errors"
	"net/url"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stellarmotion-erp/internal/application/dto"
	"github.com/jhoicas/stellarmotion-erp/internal/application/invitation"
	"github.com/jhoicas/stellarmotion-erp/internal/application/ports"
	"github.com/jhoicas/stellarmotion-erp/internal/domain"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/entity"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/repository"
)

// ── Fakes ─────────────────────────────────────────────────────────────────────

type memInvites struct {
	rows []*entity.Invitation
}

func (m *memInvites) LockEmail(context.Context, string) error { return nil }
func (m *memInvites) FindPendingByEmail(_ context.Context, email string) (*entity.Invitation, error) {
	for _, r := range m.rows {
		if r.Email == email && r.Estado == entity.InvitationPendiente {
			return r, nil
		}
	}
	return nil, nil
}
func (m *memInvites) Create(_ context.Context, inv *entity.Invitation) error {
	m.rows = append(m.rows, inv)
	return nil
}
func (m *memInvites) GetByID(_ context.Context, id string) (*entity.Invitation, error) {
	for _, r := range m.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}
func (m *memInvites) GetByTokenForUpdate(_ context.Context, token string) (*entity.Invitation, error) {
	for _, r := range m.rows {
		if r.Token == token {
			return r, nil
		}
	}
	return nil, nil
}
func (m *memInvites) List(_ context.Context, estado string, limit int) ([]*entity.Invitation, error) {
	var out []*entity.Invitation
	for _, r := range m.rows {
		if estado == "" || r.Estado == estado {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FechaCreacion.After(out[j].FechaCreacion) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
func (m *memInvites) UpdateStatus(_ context.Context, id, estado string, at *time.Time) (bool, error) {
	for _, r := range m.rows {
		if r.ID == id {
			r.Estado = estado
			r.FechaUso = at
			return true, nil
		}
	}
	return false, nil
}
func (m *memInvites) Delete(_ context.Context, id string) (bool, error) {
	for i, r := range m.rows {
		if r.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
func (m *memInvites) ExpirePending(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, r := range m.rows {
		if r.Estado == entity.InvitationPendiente && r.Expired(now) {
			r.Estado = entity.InvitationExpirado
			n++
		}
	}
	return n, nil
}

type memUsers struct {
	repository.UserRepository
	users []*entity.User
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

type memRoles struct {
	repository.RoleRepository
}

func (memRoles) ListRoles(context.Context) ([]*entity.Role, error) {
	return []*entity.Role{{ID: "r-admin", Nombre: "Administrador"}, {ID: "r-com", Nombre: "Comercial"}}, nil
}

// serialTx emula el advisory lock: una transacción a la vez.
type serialTx struct {
	mu      sync.Mutex
	invites *memInvites
	users   *memUsers
}

func (s *serialTx) RunAccounts(_ context.Context, fn func(repository.InvitationRepository, repository.UserRepository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.invites, s.users)
}

type recordingMail struct {
	mu   sync.Mutex
	sent []ports.MailMessage
	err  error
}

func (r *recordingMail) Dispatch(_ context.Context, msg ports.MailMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return r.err
}

func newUC(users ...*entity.User) (*invitation.UseCase, *memInvites, *recordingMail) {
	inv := &memInvites{}
	mail := &recordingMail{}
	tx := &serialTx{invites: inv, users: &memUsers{users: users}}
	return invitation.NewUseCase(inv, memRoles{}, tx, mail, "https://app.stellarmotion.io/", nil), inv, mail
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestCreate_GeneraTokenYEnlace(t *testing.T) {
	uc, rows, mail := newUC()

	out, err := uc.Create(context.Background(), dto.CreateInvitationRequest{Email: "  Nueva@Marca.com ", Rol: "r-com", HorasValidez: 24})
	require.NoError(t, err)
	require.Len(t, rows.rows, 1)

	inv := out.Invitacion
	assert.Equal(t, "nueva@marca.com", inv.Email)
	assert.Len(t, inv.Token, 64)
	assert.Equal(t, "Comercial", inv.RolNombre)
	assert.WithinDuration(t, inv.FechaCreacion.Add(24*time.Hour), inv.FechaExpiracion, time.Second)

	u, err := url.Parse(out.Enlace)
	require.NoError(t, err)
	assert.Equal(t, "/register", u.Path)
	assert.Equal(t, inv.Token, u.Query().Get("token"))
	assert.Equal(t, "nueva@marca.com", u.Query().Get("email"))

	require.Len(t, mail.sent, 1)
	assert.Equal(t, "nueva@marca.com", mail.sent[0].To)
}

func TestCreate_DuplicadoNoCreaFila(t *testing.T) {
	uc, rows, _ := newUC()
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateInvitationRequest{Email: "a@b.com", Rol: "r-com", HorasValidez: 48})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.CreateInvitationRequest{Email: "A@B.com", Rol: "r-admin", HorasValidez: 24})
	assert.ErrorIs(t, err, domain.ErrPendingInvite)
	assert.Len(t, rows.rows, 1)
}

func TestCreate_ConcurrenteSoloUna(t *testing.T) {
	uc, rows, _ := newUC()
	var wg sync.WaitGroup
	errs := make([]error, 10)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Create(context.Background(), dto.CreateInvitationRequest{Email: "race@b.com", Rol: "r-com", HorasValidez: 24})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, domain.ErrPendingInvite)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Len(t, rows.rows, 1)
}

func TestCreate_Validaciones(t *testing.T) {
	uc, rows, _ := newUC()
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateInvitationRequest{Email: " ", Rol: "r-com", HorasValidez: 24})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateInvitationRequest{Email: "x@y.com", HorasValidez: 24})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "rol obligatorio salvo cambio de contraseña")

	_, err = uc.Create(ctx, dto.CreateInvitationRequest{Email: "x@y.com", HorasValidez: 24, CambioPassword: true})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Empty(t, rows.rows)
}

func TestCreate_HorasValidezObligatorias(t *testing.T) {
	uc, rows, mail := newUC()
	ctx := context.Background()

	for _, horas := range []int{0, -3} {
		_, err := uc.Create(ctx, dto.CreateInvitationRequest{Email: "nueva@marca.com", Rol: "r-com", HorasValidez: horas})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "horasValidez=%d", horas)
	}
	assert.Empty(t, rows.rows)
	assert.Empty(t, mail.sent)

	out, err := uc.Create(ctx, dto.CreateInvitationRequest{Email: "nueva@marca.com", Rol: "r-com", HorasValidez: 72})
	require.NoError(t, err)
	assert.WithinDuration(t, out.Invitacion.FechaCreacion.Add(72*time.Hour), out.Invitacion.FechaExpiracion, time.Second)
}

func TestCreate_CambioPasswordUsaRolDelUsuario(t *testing.T) {
	uc, _, _ := newUC(&entity.User{ID: "u1", Email: "ana@sm.io", RolID: "r-admin"})

	out, err := uc.Create(context.Background(), dto.CreateInvitationRequest{Email: "ana@sm.io", HorasValidez: 24, CambioPassword: true})
	require.NoError(t, err)
	assert.Equal(t, "r-admin", out.Invitacion.Rol)
	assert.Equal(t, "Administrador", out.Invitacion.RolNombre)

	u, err := url.Parse(out.Enlace)
	require.NoError(t, err)
	assert.Equal(t, "/reset-password", u.Path)
}

func TestCreate_FalloDeCorreoNoInvalida(t *testing.T) {
	uc, rows, mail := newUC()
	mail.err = errors.New("redis caído")

	_, err := uc.Create(context.Background(), dto.CreateInvitationRequest{Email: "a@b.com", Rol: "r-com", HorasValidez: 24})
	require.NoError(t, err)
	assert.Len(t, rows.rows, 1)
}

func TestList_ResuelveRolNombre(t *testing.T) {
	uc, rows, _ := newUC()
	now := time.Now()
	rows.rows = []*entity.Invitation{
		{ID: "1", Email: "a@b.com", Rol: "r-com", Estado: entity.InvitationPendiente, FechaCreacion: now},
		{ID: "2", Email: "c@d.com", Rol: "administrador", Estado: entity.InvitationUsado, FechaCreacion: now.Add(-time.Hour)},
		{ID: "3", Email: "e@f.com", Rol: "borrado", Estado: entity.InvitationPendiente, FechaCreacion: now.Add(-2 * time.Hour)},
	}

	list, err := uc.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Comercial", list[0].RolNombre)
	assert.Equal(t, "Administrador", list[1].RolNombre)
	assert.Equal(t, "Sin rol", list[2].RolNombre)

	list, err = uc.List(context.Background(), entity.InvitationUsado)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = uc.List(context.Background(), "archivado")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStatusYDelete(t *testing.T) {
	uc, rows, _ := newUC()
	rows.rows = []*entity.Invitation{{ID: "1", Email: "a@b.com", Estado: entity.InvitationPendiente}}
	ctx := context.Background()

	require.NoError(t, uc.UpdateStatus(ctx, dto.UpdateInvitationRequest{ID: "1", Estado: entity.InvitationUsado}))
	assert.NotNil(t, rows.rows[0].FechaUso)

	assert.ErrorIs(t, uc.UpdateStatus(ctx, dto.UpdateInvitationRequest{ID: "1", Estado: "otro"}), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.UpdateStatus(ctx, dto.UpdateInvitationRequest{ID: "x", Estado: entity.InvitationRevocado}), domain.ErrNotFound)

	require.NoError(t, uc.Delete(ctx, "1"))
	assert.ErrorIs(t, uc.Delete(ctx, "1"), domain.ErrNotFound)
}

func TestExpirePending(t *testing.T) {
	uc, rows, _ := newUC()
	rows.rows = []*entity.Invitation{
		{ID: "1", Estado: entity.InvitationPendiente, FechaExpiracion: time.Now().Add(-time.Minute)},
		{ID: "2", Estado: entity.InvitationPendiente, FechaExpiracion: time.Now().Add(time.Hour)},
		{ID: "3", Estado: entity.InvitationUsado, FechaExpiracion: time.Now().Add(-time.Hour)},
	}
	n, err := uc.ExpirePending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, entity.InvitationExpirado, rows.rows[0].Estado)
}
