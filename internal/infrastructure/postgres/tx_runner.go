package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/stellarmotion-erp/internal/application/auth"
	"github.com/jhoicas/stellarmotion-erp/internal/application/billing"
	"github.com/jhoicas/stellarmotion-erp/internal/application/invitation"
	"github.com/jhoicas/stellarmotion-erp/internal/application/messaging"
	"github.com/jhoicas/stellarmotion-erp/internal/application/roles"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/repository"
)

var (
	_ auth.TxRunner       = (*TxRunner)(nil)
	_ invitation.TxRunner = (*TxRunner)(nil)
	_ roles.TxRunner      = (*TxRunner)(nil)
	_ billing.TxRunner    = (*TxRunner)(nil)
	_ messaging.TxRunner  = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL con repos atados a la tx.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunAccounts transacción sobre invitaciones y usuarios (alta, consumo de enlaces).
func (r *TxRunner) RunAccounts(ctx context.Context, fn func(
	invites repository.InvitationRepository,
	users repository.UserRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewInvitationRepository(tx), NewUserRepository(tx))
	})
}

// RunRoles transacción sobre roles y rol_permisos.
func (r *TxRunner) RunRoles(ctx context.Context, fn func(roles repository.RoleRepository) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewRoleRepository(tx))
	})
}

// RunBilling transacción sobre facturas y pagos.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(invoices repository.InvoiceRepository) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewInvoiceRepository(tx))
	})
}

// RunMessaging transacción sobre conversaciones y participantes.
func (r *TxRunner) RunMessaging(ctx context.Context, fn func(conversations repository.ConversationRepository) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewConversationRepository(tx))
	})
}
