package crm

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
)

const (
	defaultLimit = 20
	maxLimit     = 100
	filterAll    = "ALL"
)

// LeadUseCase CRM de leads con borrado lógico (papelera).
type LeadUseCase struct {
	repo repository.LeadRepository
	now  func() time.Time
}

// NewLeadUseCase construye el caso de uso de leads.
func NewLeadUseCase(repo repository.LeadRepository) *LeadUseCase {
	return &LeadUseCase{repo: repo, now: time.Now}
}

// List lista leads activos (trash=false) o de la papelera (trash=true) con paginación.
func (uc *LeadUseCase) List(ctx context.Context, q dto.LeadListQuery, trash bool) (*dto.LeadListResponse, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	leads, total, err := uc.repo.List(ctx, repository.LeadFilter{
		Query:   strings.TrimSpace(q.Query),
		Sector:  filterValue(q.Sector),
		Interes: filterValue(q.Interes),
		Origen:  filterValue(q.Origen),
		Trash:   trash,
		Limit:   limit,
		Offset:  (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}
	out := &dto.LeadListResponse{
		Data:       make([]dto.LeadResponse, 0, len(leads)),
		Pagination: dto.NewPagination(page, limit, total),
	}
	for _, l := range leads {
		out.Data = append(out.Data, toLeadResponse(l))
	}
	return out, nil
}

// filterValue "ALL" o vacío no filtran.
func filterValue(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, filterAll) {
		return ""
	}
	return v
}

// Create da de alta un lead.
func (uc *LeadUseCase) Create(ctx context.Context, in dto.LeadRequest) (*dto.LeadResponse, error) {
	lead := &entity.Lead{ID: uuid.New().String()}
	if err := apply(lead, in); err != nil {
		return nil, err
	}
	now := uc.now()
	lead.CreatedAt = now
	lead.UpdatedAt = now
	if err := uc.repo.Create(ctx, lead); err != nil {
		return nil, err
	}
	resp := toLeadResponse(lead)
	return &resp, nil
}

// Get devuelve un lead (activo o en papelera).
func (uc *LeadUseCase) Get(ctx context.Context, id string) (*dto.LeadResponse, error) {
	lead, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.ErrNotFound
	}
	resp := toLeadResponse(lead)
	return &resp, nil
}

// Update reemplaza los campos editables del lead.
func (uc *LeadUseCase) Update(ctx context.Context, id string, in dto.LeadRequest) (*dto.LeadResponse, error) {
	lead, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.ErrNotFound
	}
	if err := apply(lead, in); err != nil {
		return nil, err
	}
	lead.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, lead); err != nil {
		return nil, err
	}
	resp := toLeadResponse(lead)
	return &resp, nil
}

// Kill envía los leads a la papelera; devuelve cuántos cambiaron.
func (uc *LeadUseCase) Kill(ctx context.Context, ids []string) (int64, error) {
	ids = cleanIDs(ids)
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: ids es obligatorio", domain.ErrInvalidInput)
	}
	return uc.repo.SoftDelete(ctx, ids)
}

// Restore saca los leads de la papelera; devuelve cuántos cambiaron.
func (uc *LeadUseCase) Restore(ctx context.Context, ids []string) (int64, error) {
	ids = cleanIDs(ids)
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: ids es obligatorio", domain.ErrInvalidInput)
	}
	return uc.repo.Restore(ctx, ids)
}

func cleanIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}

func apply(l *entity.Lead, in dto.LeadRequest) error {
	nombre := strings.TrimSpace(in.Nombre)
	if nombre == "" {
		return fmt.Errorf("%w: nombre es obligatorio", domain.ErrInvalidInput)
	}
	l.Nombre = nombre
	l.Empresa = strings.TrimSpace(in.Empresa)
	l.Email = strings.ToLower(strings.TrimSpace(in.Email))
	l.Telefono = strings.TrimSpace(in.Telefono)
	l.Ciudad = strings.TrimSpace(in.Ciudad)
	l.Sector = strings.TrimSpace(in.Sector)
	l.Interes = strings.TrimSpace(in.Interes)
	l.Origen = strings.TrimSpace(in.Origen)
	return nil
}

func toLeadResponse(l *entity.Lead) dto.LeadResponse {
	return dto.LeadResponse{
		ID:        l.ID,
		Nombre:    l.Nombre,
		Empresa:   l.Empresa,
		Email:     l.Email,
		Telefono:  l.Telefono,
		Ciudad:    l.Ciudad,
		Sector:    l.Sector,
		Interes:   l.Interes,
		Origen:    l.Origen,
		DeletedAt: l.DeletedAt,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
