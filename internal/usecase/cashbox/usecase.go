package cashbox

import (
	"context"
	"errors"
	"time"

	approvalDomain "glowdesk-backend/internal/domain/approval"
	cashboxDomain "glowdesk-backend/internal/domain/cashbox"
	ledgerDomain "glowdesk-backend/internal/domain/ledger"
	"glowdesk-backend/internal/domain/uow"
	approvalUC "glowdesk-backend/internal/usecase/approval"
	"glowdesk-backend/pkg/apperr"
	"glowdesk-backend/pkg/id"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Gate is the slice of the approval usecase this manager needs: manual
// cash-outs are sensitive and must pass through the single interception
// point instead of being appended here.
type Gate interface {
	SubmitCashOut(ctx context.Context, orgID, requestedBy string, p approvalDomain.CashOutPayload) (*approvalUC.Outcome, error)
}

type Usecase struct {
	uow  uow.UnitOfWork
	gate Gate
	log  zerolog.Logger
}

func NewUsecase(u uow.UnitOfWork, gate Gate, log zerolog.Logger) *Usecase {
	return &Usecase{uow: u, gate: gate, log: log}
}

// Open starts the organization's cash drawer session. At most one session
// per organization may be open; a concurrent second Open loses either on the
// pre-check or on the (organization_id, open_marker) unique index.
func (u *Usecase) Open(ctx context.Context, in OpenInput) (*SessionDTO, error) {
	if in.OpeningBalance < 0 {
		return nil, apperr.Validationf("opening_balance must not be negative")
	}

	var dto *SessionDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		existing, err := r.Sessions.GetOpenByOrg(ctx, in.OrganizationID)
		switch {
		case err == nil:
			return apperr.Conflictf("organization already has open cash session %s", existing.SessionID)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		s := &cashboxDomain.CashSession{
			SessionID:      id.NewID32(),
			OrganizationID: in.OrganizationID,
			OpeningBalance: in.OpeningBalance,
			Notes:          in.Notes,
			OpenedBy:       in.OpenedBy,
			OpenedAt:       time.Now().UTC(),
		}
		s.MarkOpen()
		if err := r.Sessions.Create(ctx, s); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Wrap(apperr.KindConflict, err, "organization already has an open cash session")
			}
			return err
		}
		dto = toSessionDTO(s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.Info().
		Str("session_id", dto.SessionID).
		Str("organization_id", in.OrganizationID).
		Int64("opening_balance", in.OpeningBalance).
		Msg("cash session opened")
	return dto, nil
}

func (u *Usecase) Current(ctx context.Context, orgID string) (*SessionDTO, error) {
	var dto *SessionDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		s, err := r.Sessions.GetOpenByOrg(ctx, orgID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("no open cash session")
			}
			return err
		}
		dto = toSessionDTO(s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// computeSnapshot re-derives expected = opening + invoiceCashIn -
// invoiceCashOut + manualIn - manualOut from the ledger. Close calls it
// under the session row lock so the closing figure sees a final set.
func computeSnapshot(ctx context.Context, r uow.Repos, s *cashboxDomain.CashSession) (*SnapshotDTO, error) {
	invoiceIn, err := r.Payments.SumConfirmedCash(ctx, s.OrganizationID, ledgerDomain.DirectionIn, s.OpenedAt)
	if err != nil {
		return nil, err
	}
	invoiceOut, err := r.Payments.SumConfirmedCash(ctx, s.OrganizationID, ledgerDomain.DirectionOut, s.OpenedAt)
	if err != nil {
		return nil, err
	}
	manualIn, err := r.Transactions.SumByType(ctx, s.ID, ledgerDomain.TransactionIn)
	if err != nil {
		return nil, err
	}
	manualOut, err := r.Transactions.SumByType(ctx, s.ID, ledgerDomain.TransactionOut)
	if err != nil {
		return nil, err
	}
	return &SnapshotDTO{
		SessionID:              s.SessionID,
		OpeningBalance:         s.OpeningBalance,
		InvoiceCashIn:          invoiceIn,
		InvoiceCashOut:         invoiceOut,
		ManualIn:               manualIn,
		ManualOut:              manualOut,
		ExpectedClosingBalance: s.OpeningBalance + invoiceIn - invoiceOut + manualIn - manualOut,
	}, nil
}

func (u *Usecase) Snapshot(ctx context.Context, orgID string) (*SnapshotDTO, error) {
	var dto *SnapshotDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		s, err := r.Sessions.GetOpenByOrg(ctx, orgID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("no open cash session")
			}
			return err
		}
		dto, err = computeSnapshot(ctx, r, s)
		return err
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Close flips the session terminal. The expected balance and discrepancy
// are frozen at this moment: the snapshot runs inside the same transaction
// and row lock that change the status, so no concurrent append can slip in
// between, and later transactions never alter a closed session.
func (u *Usecase) Close(ctx context.Context, in CloseInput) (*SessionDTO, error) {
	if in.ActualClosingBalance < 0 {
		return nil, apperr.Validationf("actual_closing_balance must not be negative")
	}

	var dto *SessionDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		s, err := r.Sessions.GetBySessionIDForUpdate(ctx, in.SessionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("cash session %s not found", in.SessionID)
			}
			return err
		}
		if s.OrganizationID != in.OrganizationID {
			return apperr.NotFoundf("cash session %s not found", in.SessionID)
		}
		if !s.IsOpen() {
			return apperr.InvalidStatef("cash session %s already closed", in.SessionID)
		}

		snap, err := computeSnapshot(ctx, r, s)
		if err != nil {
			return err
		}
		s.MarkClosed(in.ActualClosingBalance, snap.ExpectedClosingBalance, in.ClosedBy, time.Now().UTC())
		if in.Notes != "" {
			s.CloseNotes = in.Notes
		}
		if err := r.Sessions.Save(ctx, s); err != nil {
			return err
		}
		dto = toSessionDTO(s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.Info().
		Str("session_id", dto.SessionID).
		Int64("discrepancy", *dto.Discrepancy).
		Msg("cash session closed")
	return dto, nil
}

// CreateTransaction appends a manual movement. Cash-ins write directly;
// cash-outs are routed through the approval gate, which either executes the
// same append or parks it behind a pending request.
func (u *Usecase) CreateTransaction(ctx context.Context, in TransactionInput) (*approvalUC.Outcome, error) {
	if in.Amount <= 0 {
		return nil, apperr.Validationf("amount must be positive")
	}
	if in.Category == "" {
		return nil, apperr.Validationf("category is required")
	}
	txType := ledgerDomain.TransactionType(in.Type)
	if txType != ledgerDomain.TransactionIn && txType != ledgerDomain.TransactionOut {
		return nil, apperr.Validationf("type must be in or out")
	}

	if txType == ledgerDomain.TransactionOut {
		return u.gate.SubmitCashOut(ctx, in.OrganizationID, in.CreatedBy, approvalDomain.CashOutPayload{
			SessionID: in.SessionID,
			Amount:    in.Amount,
			Category:  in.Category,
			Notes:     in.Notes,
		})
	}

	var out *approvalUC.Outcome
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		s, err := r.Sessions.GetBySessionIDForUpdate(ctx, in.SessionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("cash session %s not found", in.SessionID)
			}
			return err
		}
		if s.OrganizationID != in.OrganizationID {
			return apperr.NotFoundf("cash session %s not found", in.SessionID)
		}
		// Not-open is a validation failure here, not invalid_state: the
		// transaction input names a session it was never valid to write to.
		if !s.IsOpen() {
			return apperr.Validationf("cash session %s is not open", in.SessionID)
		}

		t := &ledgerDomain.CashTransaction{
			TransactionID:  id.NewID32(),
			CashSessionID:  s.ID,
			OrganizationID: in.OrganizationID,
			Type:           ledgerDomain.TransactionIn,
			Amount:         in.Amount,
			Category:       in.Category,
			Notes:          in.Notes,
			CreatedBy:      in.CreatedBy,
		}
		if err := r.Transactions.Create(ctx, t); err != nil {
			return err
		}
		out = &approvalUC.Outcome{
			Executed: true,
			Transaction: &approvalUC.CashTransactionDTO{
				TransactionID: t.TransactionID,
				SessionID:     in.SessionID,
				Type:          string(t.Type),
				Amount:        t.Amount,
				Category:      t.Category,
				Notes:         t.Notes,
				CreatedBy:     t.CreatedBy,
				CreatedAt:     t.CreatedAt,
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) ListTransactions(ctx context.Context, orgID, sessionID string) ([]approvalUC.CashTransactionDTO, error) {
	var dtos []approvalUC.CashTransactionDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		s, err := r.Sessions.GetBySessionID(ctx, sessionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("cash session %s not found", sessionID)
			}
			return err
		}
		if s.OrganizationID != orgID {
			return apperr.NotFoundf("cash session %s not found", sessionID)
		}
		ts, err := r.Transactions.ListBySession(ctx, s.ID)
		if err != nil {
			return err
		}
		dtos = make([]approvalUC.CashTransactionDTO, 0, len(ts))
		for i := range ts {
			t := &ts[i]
			dtos = append(dtos, approvalUC.CashTransactionDTO{
				TransactionID: t.TransactionID,
				SessionID:     sessionID,
				Type:          string(t.Type),
				Amount:        t.Amount,
				Category:      t.Category,
				Notes:         t.Notes,
				CreatedBy:     t.CreatedBy,
				CreatedAt:     t.CreatedAt,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dtos, nil
}
