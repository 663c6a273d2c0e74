package service

import (
	"context"
	"log"
	"time"

	"computer-store-ws/internal/model"
	"computer-store-ws/internal/repository"
	"computer-store-ws/pkg/apperror"

	"github.com/google/uuid"
)

func (s *salesService) CheckAndRecordCashLimitViolation(ctx context.Context, cashRegisterID uuid.UUID, date time.Time) (*model.CashLimitViolation, error) {
	from, to := s.calendar.Day(date)
	var recorded *model.CashLimitViolation

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		// same lock as cash sales, so a reconciliation never races a sale on this register
		register, err := tx.CashRegisters().Lock(cashRegisterID)
		if err != nil {
			return notFound(err, apperror.EntityCashRegister, cashRegisterID)
		}

		dayTotal, err := tx.Sales().SumForRegister(register.ID, from, to)
		if err != nil {
			return err
		}
		if !dayTotal.GreaterThan(register.CashLimit) {
			return nil
		}

		exists, err := tx.Violations().ExistsBetween(register.ID, from, to)
		if err != nil || exists {
			return err
		}

		recorded = &model.CashLimitViolation{
			CashRegisterID: register.ID,
			ViolationDate:  date,
			LimitAmount:    register.CashLimit,
			ActualAmount:   dayTotal,
		}
		return tx.Violations().Create(recorded)
	})
	if err != nil {
		return nil, err
	}

	if recorded != nil {
		log.Printf("Cash limit violation recorded for register %s on %s: limit %s, actual %s",
			cashRegisterID, from.Format("2006-01-02"), recorded.LimitAmount.StringFixed(2), recorded.ActualAmount.StringFixed(2))
		s.notifier.Publish(EventCashLimitViolation, recorded)
	}
	return recorded, nil
}
