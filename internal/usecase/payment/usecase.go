package payment

import (
	"context"
	"errors"
	"time"

	ledgerDomain "glowdesk-backend/internal/domain/ledger"
	"glowdesk-backend/internal/domain/uow"
	"glowdesk-backend/pkg/apperr"
	"glowdesk-backend/pkg/id"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type Usecase struct {
	uow uow.UnitOfWork
	log zerolog.Logger
}

func NewUsecase(u uow.UnitOfWork, log zerolog.Logger) *Usecase {
	return &Usecase{uow: u, log: log}
}

func validMethod(m string) bool {
	switch ledgerDomain.PaymentMethod(m) {
	case ledgerDomain.MethodCash, ledgerDomain.MethodCard, ledgerDomain.MethodTransfer:
		return true
	}
	return false
}

// Record appends a pending payment leg for an invoice. Legs start pending;
// only Confirm moves money into the drawer's view of the world.
func (u *Usecase) Record(ctx context.Context, in RecordInput) (*PaymentDTO, error) {
	if in.Amount <= 0 {
		return nil, apperr.Validationf("amount must be positive")
	}
	if in.InvoiceID == "" {
		return nil, apperr.Validationf("invoice_id is required")
	}
	if !validMethod(in.Method) {
		return nil, apperr.Validationf("method must be cash, card or transfer")
	}

	var dto *PaymentDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p := &ledgerDomain.InvoicePayment{
			PaymentID:      id.NewID32(),
			OrganizationID: in.OrganizationID,
			InvoiceID:      in.InvoiceID,
			Method:         ledgerDomain.PaymentMethod(in.Method),
			Direction:      ledgerDomain.DirectionIn,
			Amount:         in.Amount,
			Status:         ledgerDomain.PaymentPending,
		}
		if err := r.Payments.Create(ctx, p); err != nil {
			return err
		}
		dto = toPaymentDTO(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Confirm transitions pending -> confirmed. Both terminal transitions run
// under the payment row lock, so a concurrent Confirm/Fail pair resolves to
// exactly one winner; the loser gets InvalidStateError, not a silent no-op.
func (u *Usecase) Confirm(ctx context.Context, orgID, paymentID string) (*PaymentDTO, error) {
	return u.resolve(ctx, orgID, paymentID, ledgerDomain.PaymentConfirmed)
}

// Fail transitions pending -> failed.
func (u *Usecase) Fail(ctx context.Context, orgID, paymentID string) (*PaymentDTO, error) {
	return u.resolve(ctx, orgID, paymentID, ledgerDomain.PaymentFailed)
}

func (u *Usecase) resolve(ctx context.Context, orgID, paymentID string, to ledgerDomain.PaymentStatus) (*PaymentDTO, error) {
	var dto *PaymentDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Payments.GetByPaymentIDForUpdate(ctx, paymentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("invoice payment %s not found", paymentID)
			}
			return err
		}
		if p.OrganizationID != orgID {
			return apperr.NotFoundf("invoice payment %s not found", paymentID)
		}
		if !p.IsPending() {
			return apperr.InvalidStatef("invoice payment %s already %s", paymentID, p.Status)
		}

		p.Status = to
		if to == ledgerDomain.PaymentConfirmed {
			now := time.Now().UTC()
			p.ConfirmedAt = &now
		}
		if err := r.Payments.Save(ctx, p); err != nil {
			return err
		}
		dto = toPaymentDTO(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.Info().
		Str("payment_id", paymentID).
		Str("status", string(to)).
		Msg("invoice payment resolved")
	return dto, nil
}

func (u *Usecase) ListByInvoice(ctx context.Context, orgID, invoiceID string) ([]PaymentDTO, error) {
	var dtos []PaymentDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		ps, err := r.Payments.ListByInvoice(ctx, orgID, invoiceID)
		if err != nil {
			return err
		}
		dtos = make([]PaymentDTO, 0, len(ps))
		for i := range ps {
			dtos = append(dtos, *toPaymentDTO(&ps[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dtos, nil
}
