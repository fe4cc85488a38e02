package services

import (
	"context"

	"github.com/Dosada05/power-play/models"
	"github.com/Dosada05/power-play/repositories"
)

// ledger меняет баланс пользователя и пишет проводку в point_transactions.
// Вызывается только внутри транзакции.
type ledger struct {
	profileRepo repositories.ProfileRepository
	pointRepo   repositories.PointRepository
}

// apply меняет баланс на delta и возвращает записанную проводку (BalanceAfter - новый баланс).
// balance должен быть получен через LockPoints в той же транзакции.
func (l ledger) apply(ctx context.Context, exec repositories.SQLExecutor, userID, balance, delta int,
	txType models.PointTransactionType, referenceID *int) (*models.PointTransaction, error) {
	next := balance + delta
	if next < 0 {
		return nil, ErrInsufficientPoints
	}
	if err := l.profileRepo.SetPoints(ctx, exec, userID, next); err != nil {
		return nil, wrapRepoError("failed to update balance", err)
	}
	entry := &models.PointTransaction{
		UserID:       userID,
		Amount:       delta,
		Type:         txType,
		ReferenceID:  referenceID,
		BalanceAfter: next,
	}
	if err := l.pointRepo.AddTransaction(ctx, exec, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// settleSeat выставляет статус заявки, которая получила место в составе:
// бесплатное участие или достаточный баланс дают confirmed (плата списывается сразу),
// иначе pending_payment до пополнения.
func (l ledger) settleSeat(ctx context.Context, exec repositories.SQLExecutor, p *models.Participant, match *models.Match) error {
	fee := match.FeeFor(p.Position)
	if fee <= 0 {
		p.Status = models.ParticipantConfirmed
		p.Paid = true
		return nil
	}

	balance, err := l.profileRepo.LockPoints(ctx, exec, p.UserID)
	if err != nil {
		return wrapRepoError("failed to lock balance", err)
	}
	if balance < fee {
		p.Status = models.ParticipantPendingPayment
		p.Paid = false
		return nil
	}
	if _, err := l.apply(ctx, exec, p.UserID, balance, -fee, models.PointTxUse, &match.ID); err != nil {
		return err
	}
	p.Status = models.ParticipantConfirmed
	p.Paid = true
	return nil
}

// charge списывает взнос за уже занятое место. Нехватка баланса - ErrInsufficientPoints.
func (l ledger) charge(ctx context.Context, exec repositories.SQLExecutor, p *models.Participant, match *models.Match) error {
	fee := match.FeeFor(p.Position)
	if p.Paid || fee <= 0 {
		return nil
	}
	balance, err := l.profileRepo.LockPoints(ctx, exec, p.UserID)
	if err != nil {
		return wrapRepoError("failed to lock balance", err)
	}
	_, err = l.apply(ctx, exec, p.UserID, balance, -fee, models.PointTxUse, &match.ID)
	return err
}

// refund возвращает оплаченный взнос за матч.
func (l ledger) refund(ctx context.Context, exec repositories.SQLExecutor, p *models.Participant, match *models.Match) error {
	fee := match.FeeFor(p.Position)
	if !p.Paid || fee <= 0 {
		return nil
	}
	balance, err := l.profileRepo.LockPoints(ctx, exec, p.UserID)
	if err != nil {
		return wrapRepoError("failed to lock balance", err)
	}
	_, err = l.apply(ctx, exec, p.UserID, balance, fee, models.PointTxRefund, &match.ID)
	return err
}
