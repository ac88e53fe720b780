package payroll

import (
	"context"
	"errors"
	"time"

	payrollDomain "glowdesk-backend/internal/domain/payroll"
	"glowdesk-backend/internal/domain/uow"
	"glowdesk-backend/pkg/apperr"
	"glowdesk-backend/pkg/id"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type Usecase struct {
	uow   uow.UnitOfWork
	lines payrollDomain.LineSource
	rules payrollDomain.RuleLookup
	log   zerolog.Logger
}

func NewUsecase(u uow.UnitOfWork, lines payrollDomain.LineSource, rules payrollDomain.RuleLookup, log zerolog.Logger) *Usecase {
	return &Usecase{uow: u, lines: lines, rules: rules, log: log}
}

// Preview computes the cycle without persisting anything. The invoice
// service calls happen before the transaction starts; only the config read
// touches the database.
func (u *Usecase) Preview(ctx context.Context, in PreviewInput) ([]ItemPreview, error) {
	if !in.From.Before(in.To) {
		return nil, apperr.Validationf("from must be before to")
	}

	commission, err := u.commissionByStaff(ctx, in)
	if err != nil {
		return nil, err
	}

	var previews []ItemPreview
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		configs, err := r.Configs.ListByOrg(ctx, in.OrganizationID, in.BranchID)
		if err != nil {
			return err
		}
		previews = assemblePreviews(configs, commission)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return previews, nil
}

// assemblePreviews is shared by Preview and CreateCycle so the persisted
// snapshot can never differ from what the caller previewed.
func assemblePreviews(configs []payrollDomain.PayrollConfig, commission map[string]int64) []ItemPreview {
	previews := make([]ItemPreview, 0, len(configs))
	for i := range configs {
		c := &configs[i]
		p := ItemPreview{
			StaffID:          c.StaffID,
			StaffName:        c.StaffName,
			BaseSalary:       c.BaseSalary,
			CommissionAmount: commission[c.StaffID],
			AllowanceAmount:  c.DefaultAllowance,
			DeductionAmount:  c.DefaultDeduction,
			AdvanceAmount:    c.DefaultAdvance,
			PaymentMethod:    c.PaymentMethod,
		}
		p.NetAmount = p.BaseSalary + p.CommissionAmount + p.BonusAmount +
			p.AllowanceAmount - p.DeductionAmount - p.AdvanceAmount
		previews = append(previews, p)
	}
	return previews
}

type ruleKey struct {
	staffID  string
	itemType payrollDomain.ItemType
	itemID   string
}

// commissionByStaff sums commission per staff member over confirmed invoice
// lines in [from, to). Rules match by exact (staff, item type, item id)
// triple; an unmatched line contributes zero. Lookups are cached per triple
// so a staff member selling the same item many times costs one rule fetch,
// and the whole thing runs before any database transaction is opened.
func (u *Usecase) commissionByStaff(ctx context.Context, in PreviewInput) (map[string]int64, error) {
	lines, err := u.lines.ConfirmedLines(ctx, in.OrganizationID, in.BranchID, in.From, in.To)
	if err != nil {
		return nil, err
	}

	cache := make(map[ruleKey]*payrollDomain.CommissionRule)
	totals := make(map[string]int64)
	for _, line := range lines {
		if line.StaffID == "" {
			continue
		}
		k := ruleKey{staffID: line.StaffID, itemType: line.ItemType, itemID: line.ItemID}
		rule, seen := cache[k]
		if !seen {
			rule, err = u.rules.FindRule(ctx, in.OrganizationID, line.StaffID, line.ItemType, line.ItemID)
			if err != nil {
				return nil, err
			}
			cache[k] = rule
		}
		if rule == nil {
			continue
		}
		totals[line.StaffID] += rule.Commission(line.LineTotal, line.Quantity)
	}
	return totals, nil
}

// CreateCycle snapshots the preview into a draft cycle. The overlap check
// and the insert share one transaction, so two concurrent creates for
// colliding ranges cannot both land. Commission is resolved against the
// invoice service up front; no HTTP call runs while the transaction holds
// its locks.
func (u *Usecase) CreateCycle(ctx context.Context, in CreateCycleInput) (*CycleDTO, error) {
	if !in.From.Before(in.To) {
		return nil, apperr.Validationf("from must be before to")
	}

	commission, err := u.commissionByStaff(ctx, PreviewInput{
		OrganizationID: in.OrganizationID,
		From:           in.From,
		To:             in.To,
		BranchID:       in.BranchID,
	})
	if err != nil {
		return nil, err
	}

	var dto *CycleDTO
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		overlap, err := r.Cycles.ExistsOverlapping(ctx, in.OrganizationID, in.BranchID, in.From, in.To)
		if err != nil {
			return err
		}
		if overlap {
			return apperr.Conflictf("a payroll cycle overlapping %s..%s already exists for this scope",
				in.From.Format(dateLayout), in.To.Format(dateLayout))
		}

		configs, err := r.Configs.ListByOrg(ctx, in.OrganizationID, in.BranchID)
		if err != nil {
			return err
		}
		previews := assemblePreviews(configs, commission)
		if len(previews) == 0 {
			return apperr.Validationf("no payroll configs in scope, nothing to snapshot")
		}

		cycle := &payrollDomain.PayrollCycle{
			CycleID:        id.NewID32(),
			OrganizationID: in.OrganizationID,
			BranchID:       in.BranchID,
			FromDate:       in.From,
			ToDate:         in.To,
			Status:         payrollDomain.CycleDraft,
			CreatedBy:      in.CreatedBy,
		}
		for _, p := range previews {
			cycle.Items = append(cycle.Items, payrollDomain.PayrollItem{
				ItemID:           id.NewID32(),
				StaffID:          p.StaffID,
				StaffName:        p.StaffName,
				BaseSalary:       p.BaseSalary,
				CommissionAmount: p.CommissionAmount,
				BonusAmount:      p.BonusAmount,
				AllowanceAmount:  p.AllowanceAmount,
				DeductionAmount:  p.DeductionAmount,
				AdvanceAmount:    p.AdvanceAmount,
				NetAmount:        p.NetAmount,
				PaymentMethod:    p.PaymentMethod,
				Status:           payrollDomain.ItemDraft,
			})
		}
		if err := r.Cycles.Create(ctx, cycle); err != nil {
			return err
		}
		dto = toCycleDTO(cycle, true)
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.Info().
		Str("cycle_id", dto.CycleID).
		Str("organization_id", in.OrganizationID).
		Int("items", len(dto.Items)).
		Msg("payroll cycle created")
	return dto, nil
}

// UpdateItem edits the band fields of one item and re-derives net. Allowed
// while the owning cycle is draft or finalized; a paid cycle is immutable.
// Base salary and commission cannot be touched here at all: the patch has
// no fields for them.
func (u *Usecase) UpdateItem(ctx context.Context, orgID, itemID string, patch ItemPatch) (*ItemDTO, error) {
	var dto *ItemDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		item, err := r.Cycles.GetItemByItemID(ctx, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("payroll item %s not found", itemID)
			}
			return err
		}
		// Lock order: cycle first, then item, same as Finalize/Pay.
		cycle, err := r.Cycles.GetByIDForUpdate(ctx, item.CycleID)
		if err != nil {
			return err
		}
		if cycle.OrganizationID != orgID {
			return apperr.NotFoundf("payroll item %s not found", itemID)
		}
		if cycle.Status == payrollDomain.CyclePaid {
			return apperr.InvalidStatef("payroll cycle %s already paid", cycle.CycleID)
		}
		item, err = r.Cycles.GetItemByItemIDForUpdate(ctx, itemID)
		if err != nil {
			return err
		}

		if patch.BonusAmount != nil {
			item.BonusAmount = *patch.BonusAmount
		}
		if patch.AllowanceAmount != nil {
			item.AllowanceAmount = *patch.AllowanceAmount
		}
		if patch.DeductionAmount != nil {
			item.DeductionAmount = *patch.DeductionAmount
		}
		if patch.AdvanceAmount != nil {
			item.AdvanceAmount = *patch.AdvanceAmount
		}
		if patch.Notes != nil {
			item.Notes = *patch.Notes
		}
		if patch.PaymentMethod != nil {
			item.PaymentMethod = *patch.PaymentMethod
		}
		if item.BonusAmount < 0 || item.AllowanceAmount < 0 || item.DeductionAmount < 0 || item.AdvanceAmount < 0 {
			return apperr.Validationf("amounts must not be negative")
		}
		item.RecomputeNet()
		if err := r.Cycles.SaveItem(ctx, item); err != nil {
			return err
		}
		d := toItemDTO(item)
		dto = &d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Finalize transitions draft -> finalized. Commission and base salary are
// frozen from here on; the band fields stay editable until paid, which is a
// recorded design choice, not an oversight.
func (u *Usecase) Finalize(ctx context.Context, orgID, cycleID string) (*CycleDTO, error) {
	var dto *CycleDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		cycle, err := u.lockCycle(ctx, r, orgID, cycleID)
		if err != nil {
			return err
		}
		if cycle.Status != payrollDomain.CycleDraft {
			return apperr.InvalidStatef("payroll cycle %s is %s, only draft can be finalized", cycleID, cycle.Status)
		}
		now := time.Now().UTC()
		cycle.Status = payrollDomain.CycleFinalized
		cycle.FinalizedAt = &now
		if err := r.Cycles.Save(ctx, cycle); err != nil {
			return err
		}
		dto = toCycleDTO(cycle, false)
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.Info().Str("cycle_id", cycleID).Msg("payroll cycle finalized")
	return dto, nil
}

// Pay transitions finalized -> paid, strictly forward: draft cannot skip to
// paid, and paid is terminal. No reversal path exists here; a correction is
// a new cycle or an out-of-band adjustment.
func (u *Usecase) Pay(ctx context.Context, orgID, cycleID string) (*CycleDTO, error) {
	var dto *CycleDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		cycle, err := u.lockCycle(ctx, r, orgID, cycleID)
		if err != nil {
			return err
		}
		switch cycle.Status {
		case payrollDomain.CyclePaid:
			return apperr.InvalidStatef("payroll cycle %s already paid", cycleID)
		case payrollDomain.CycleDraft:
			return apperr.InvalidStatef("payroll cycle %s must be finalized before payment", cycleID)
		}
		now := time.Now().UTC()
		cycle.Status = payrollDomain.CyclePaid
		cycle.PaidAt = &now
		if err := r.Cycles.Save(ctx, cycle); err != nil {
			return err
		}
		if err := r.Cycles.MarkItemsPaid(ctx, cycle.ID); err != nil {
			return err
		}
		dto = toCycleDTO(cycle, false)
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.Info().Str("cycle_id", cycleID).Msg("payroll cycle paid")
	return dto, nil
}

func (u *Usecase) lockCycle(ctx context.Context, r uow.Repos, orgID, cycleID string) (*payrollDomain.PayrollCycle, error) {
	cycle, err := r.Cycles.GetByCycleIDForUpdate(ctx, cycleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("payroll cycle %s not found", cycleID)
		}
		return nil, err
	}
	if cycle.OrganizationID != orgID {
		return nil, apperr.NotFoundf("payroll cycle %s not found", cycleID)
	}
	return cycle, nil
}

func (u *Usecase) GetCycle(ctx context.Context, orgID, cycleID string) (*CycleDTO, error) {
	var dto *CycleDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		cycle, err := r.Cycles.GetByCycleID(ctx, cycleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("payroll cycle %s not found", cycleID)
			}
			return err
		}
		if cycle.OrganizationID != orgID {
			return apperr.NotFoundf("payroll cycle %s not found", cycleID)
		}
		dto = toCycleDTO(cycle, true)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) ListCycles(ctx context.Context, orgID string) ([]CycleDTO, error) {
	var dtos []CycleDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		cycles, err := r.Cycles.ListByOrg(ctx, orgID)
		if err != nil {
			return err
		}
		dtos = make([]CycleDTO, 0, len(cycles))
		for i := range cycles {
			dtos = append(dtos, *toCycleDTO(&cycles[i], false))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dtos, nil
}

func (u *Usecase) UpsertConfig(ctx context.Context, in ConfigInput) (*ConfigDTO, error) {
	if in.BaseSalary < 0 || in.DefaultAllowance < 0 || in.DefaultDeduction < 0 || in.DefaultAdvance < 0 {
		return nil, apperr.Validationf("amounts must not be negative")
	}
	st := payrollDomain.SalaryType(in.SalaryType)
	if st != payrollDomain.SalaryMonthly && st != payrollDomain.SalaryDaily && st != payrollDomain.SalaryHourly {
		return nil, apperr.Validationf("salary_type must be monthly, daily or hourly")
	}

	var dto *ConfigDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c := &payrollDomain.PayrollConfig{
			OrganizationID:   in.OrganizationID,
			StaffID:          in.StaffID,
			BranchID:         in.BranchID,
			StaffName:        in.StaffName,
			SalaryType:       st,
			BaseSalary:       in.BaseSalary,
			DefaultAllowance: in.DefaultAllowance,
			DefaultDeduction: in.DefaultDeduction,
			DefaultAdvance:   in.DefaultAdvance,
			PaymentMethod:    in.PaymentMethod,
		}
		if err := r.Configs.Upsert(ctx, c); err != nil {
			return err
		}
		d := toConfigDTO(c)
		dto = &d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) ListConfigs(ctx context.Context, orgID string, branchID *string) ([]ConfigDTO, error) {
	var dtos []ConfigDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		cs, err := r.Configs.ListByOrg(ctx, orgID, branchID)
		if err != nil {
			return err
		}
		dtos = make([]ConfigDTO, 0, len(cs))
		for i := range cs {
			dtos = append(dtos, toConfigDTO(&cs[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dtos, nil
}
