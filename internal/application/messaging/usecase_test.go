package messaging_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stellarmotion-erp/internal/application/dto"
	"github.com/jhoicas/stellarmotion-erp/internal/application/messaging"
	"github.com/jhoicas/stellarmotion-erp/internal/domain"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/entity"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/repository"
)

type thread struct {
	conv         *entity.Conversation
	participants []string
}

type memConversations struct {
	mu        sync.Mutex
	pair      sync.Mutex // advisory lock simulado: se libera al terminar RunMessaging
	contactos map[string]string
	threads   []thread
	locks     []string
}

func (m *memConversations) ListForContacto(_ context.Context, contactoID string) ([]*entity.ConversationSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.ConversationSummary
	for _, th := range m.threads {
		for i, p := range th.participants {
			if p == contactoID {
				other := th.participants[1-i]
				out = append(out, &entity.ConversationSummary{ID: th.conv.ID, OtherContactoID: other, OtherName: m.contactos[other]})
			}
		}
	}
	return out, nil
}
func (m *memConversations) LockPair(context.Context, string, string, string, string) error {
	return nil
}
func (m *memConversations) FindBetween(_ context.Context, a, b, soporteID, solicitudID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, th := range m.threads {
		p := th.participants
		if ((p[0] == a && p[1] == b) || (p[0] == b && p[1] == a)) &&
			th.conv.SoporteID == soporteID && th.conv.SolicitudID == solicitudID {
			return th.conv.ID, nil
		}
	}
	return "", nil
}
func (m *memConversations) Create(_ context.Context, conv *entity.Conversation, participants []string) error {
	time.Sleep(time.Millisecond) // ensancha la ventana entre buscar e insertar
	m.mu.Lock()
	defer m.mu.Unlock()
	m.threads = append(m.threads, thread{conv: conv, participants: participants})
	return nil
}
func (m *memConversations) ContactoExists(_ context.Context, id string) (bool, error) {
	_, ok := m.contactos[id]
	return ok, nil
}
func (m *memConversations) RunMessaging(_ context.Context, fn func(repository.ConversationRepository) error) error {
	tx := &txConversations{memConversations: m}
	defer func() {
		if tx.locked {
			m.pair.Unlock()
		}
	}()
	return fn(tx)
}

// txConversations vista del repo dentro de una transacción.
type txConversations struct {
	*memConversations
	locked bool
}

func (t *txConversations) LockPair(_ context.Context, a, b, soporteID, solicitudID string) error {
	t.pair.Lock()
	t.locked = true
	t.mu.Lock()
	t.locks = append(t.locks, a+"|"+b+"|"+soporteID+"|"+solicitudID)
	t.mu.Unlock()
	return nil
}

func newUC() (*messaging.UseCase, *memConversations) {
	repo := &memConversations{contactos: map[string]string{"c-ana": "Ana", "c-luis": "Luis"}}
	return messaging.NewUseCase(repo, repo), repo
}

func TestFindOrCreate_CreaYReutiliza(t *testing.T) {
	uc, repo := newUC()
	ctx := context.Background()

	out, err := uc.FindOrCreate(ctx, "c-ana", dto.CreateConversationRequest{OtherContactoID: "c-luis"})
	require.NoError(t, err)
	assert.True(t, out.Created)

	again, err := uc.FindOrCreate(ctx, "c-luis", dto.CreateConversationRequest{OtherContactoID: "c-ana"})
	require.NoError(t, err)
	assert.False(t, again.Created)
	assert.Equal(t, out.ConversationID, again.ConversationID)
	assert.Len(t, repo.threads, 1)

	list, err := uc.List(ctx, "c-ana")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Luis", list[0].ParticipantName)
}

func TestFindOrCreate_Rechazos(t *testing.T) {
	uc, repo := newUC()
	ctx := context.Background()

	_, err := uc.FindOrCreate(ctx, "c-ana", dto.CreateConversationRequest{OtherContactoID: "c-ana"})
	assert.ErrorIs(t, err, domain.ErrSelfConversation)

	_, err = uc.FindOrCreate(ctx, "", dto.CreateConversationRequest{OtherContactoID: "c-luis"})
	assert.ErrorIs(t, err, domain.ErrNoContact)

	_, err = uc.FindOrCreate(ctx, "c-ana", dto.CreateConversationRequest{OtherContactoID: "c-fantasma"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Empty(t, repo.threads)
}

func TestFindOrCreate_ConcurrenteUnSoloHilo(t *testing.T) {
	uc, repo := newUC()
	const workers = 8

	var wg sync.WaitGroup
	outs := make([]*dto.CreateConversationResponse, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			me, other := "c-ana", "c-luis"
			if i%2 == 1 {
				me, other = other, me
			}
			outs[i], errs[i] = uc.FindOrCreate(context.Background(), me,
				dto.CreateConversationRequest{OtherContactoID: other, SoporteID: "s-1"})
		}(i)
	}
	wg.Wait()

	created := 0
	for i := range outs {
		require.NoError(t, errs[i])
		if outs[i].Created {
			created++
		}
		assert.Equal(t, outs[0].ConversationID, outs[i].ConversationID)
	}
	assert.Equal(t, 1, created)
	assert.Len(t, repo.threads, 1)
	assert.Len(t, repo.locks, workers, "cada alta toma el lock del par antes de buscar")
}
