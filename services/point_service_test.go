package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/power-play/models"
	"github.com/Dosada05/power-play/repositories"
)

var adminActor = Actor{ID: 900, Role: models.RoleAdmin}

type pointFixture struct {
	svc          PointService
	profiles     *fakeProfileRepo
	matches      *fakeMatchRepo
	participants *fakeParticipantRepo
	points       *fakePointRepo
	notifier     *recordingNotifier
	audit        *recordingAudit
}

func newPointFixture(matches []*models.Match, profiles ...*models.Profile) *pointFixture {
	f := &pointFixture{
		profiles: newFakeProfileRepo(profiles...),
		matches:  newFakeMatchRepo(matches...),
		points:   newFakePointRepo(),
		notifier: &recordingNotifier{},
		audit:    &recordingAudit{},
	}
	f.participants = newFakeParticipantRepo(f.matches)
	f.svc = NewPointService(f.points, f.profiles, f.participants, fakeTx{}, f.notifier, f.audit, discardLogger())
	return f
}

func (f *pointFixture) pending(userID, matchID int, pos models.Position) *models.Participant {
	return f.participants.add(&models.Participant{
		MatchID:  matchID,
		UserID:   userID,
		Position: pos,
		Status:   models.ParticipantPendingPayment,
	})
}

func TestRequestCharge(t *testing.T) {
	f := newPointFixture(nil, player(1, 0))

	_, err := f.svc.RequestCharge(context.Background(), 1, ChargeRequestInput{Amount: 0, DepositorName: "Kim"})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = f.svc.RequestCharge(context.Background(), 1, ChargeRequestInput{Amount: 10, DepositorName: "   "})
	assert.ErrorIs(t, err, ErrDepositorNameRequired)

	req, err := f.svc.RequestCharge(context.Background(), 1, ChargeRequestInput{Amount: 30, DepositorName: " Kim "})
	require.NoError(t, err)
	assert.Equal(t, models.ChargePending, req.Status)
	assert.Equal(t, "Kim", req.DepositorName)

	require.Len(t, f.audit.entries, 1)
	entry := f.audit.entries[0]
	assert.Equal(t, ActionChargeRequested, entry.Action)
	require.NotNil(t, entry.Notify, "superusers get a charge request notification")
}

func TestConfirmCharge_SettlesPendingFeesInOrder(t *testing.T) {
	m1, m2, m3 := openMatch(1), openMatch(2), openMatch(3)
	m3.EntryPoints = 10
	f := newPointFixture([]*models.Match{m1, m2, m3}, player(1, 0))

	p1 := f.pending(1, 1, models.PositionForward)
	p2 := f.pending(1, 2, models.PositionDefense)
	p3 := f.pending(1, 3, models.PositionForward)
	charge := &models.PointChargeRequest{ID: 7, UserID: 1, Amount: 30, DepositorName: "Kim", Status: models.ChargePending}
	f.points.charges[charge.ID] = charge

	settlement, err := f.svc.ConfirmCharge(context.Background(), adminActor, 7)
	require.NoError(t, err)

	assert.Equal(t, []int{p1.ID, p3.ID}, settlement.ConfirmedParticipants, "a fee that does not fit is skipped")
	assert.Equal(t, 0, settlement.Balance)
	assert.Equal(t, 0, f.profiles.points(1))
	assert.Equal(t, models.ChargeConfirmed, settlement.Request.Status)
	require.NotNil(t, settlement.Request.ProcessedBy)
	assert.Equal(t, adminActor.ID, *settlement.Request.ProcessedBy)

	assert.Equal(t, models.ParticipantConfirmed, f.participants.find(p1.ID).Status)
	assert.True(t, f.participants.find(p1.ID).Paid)
	assert.Equal(t, models.ParticipantPendingPayment, f.participants.find(p2.ID).Status)
	assert.Equal(t, models.ParticipantConfirmed, f.participants.find(p3.ID).Status)

	require.Len(t, f.points.transactions, 3)
	assert.Equal(t, models.PointTxCharge, f.points.transactions[0].Type)
	assert.Equal(t, 30, f.points.transactions[0].BalanceAfter)
	assert.Equal(t, -20, f.points.transactions[1].Amount)
	assert.Equal(t, 10, f.points.transactions[1].BalanceAfter)
	assert.Equal(t, -10, f.points.transactions[2].Amount)
	assert.Equal(t, 0, f.points.transactions[2].BalanceAfter)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, 1, f.notifier.sent[0].UserID)
	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, ActionChargeConfirmed, f.audit.entries[0].Action)
}

func TestConfirmCharge_FreeSeatIsConfirmedWithoutDebit(t *testing.T) {
	match := openMatch(1)
	match.GoalieFree = true
	f := newPointFixture([]*models.Match{match}, player(1, 0))
	p := f.pending(1, 1, models.PositionGoalie)
	f.points.charges[5] = &models.PointChargeRequest{ID: 5, UserID: 1, Amount: 10, Status: models.ChargePending}

	settlement, err := f.svc.ConfirmCharge(context.Background(), adminActor, 5)
	require.NoError(t, err)
	assert.Equal(t, []int{p.ID}, settlement.ConfirmedParticipants)
	assert.Equal(t, 10, settlement.Balance)
	assert.Len(t, f.points.transactions, 1)
}

func TestConfirmCharge_CanceledMatchIsNotSettled(t *testing.T) {
	match := openMatch(1)
	match.Status = models.MatchStatusCanceled
	f := newPointFixture([]*models.Match{match}, player(1, 0))
	f.pending(1, 1, models.PositionForward)
	f.points.charges[5] = &models.PointChargeRequest{ID: 5, UserID: 1, Amount: 50, Status: models.ChargePending}

	settlement, err := f.svc.ConfirmCharge(context.Background(), adminActor, 5)
	require.NoError(t, err)
	assert.Empty(t, settlement.ConfirmedParticipants)
	assert.Equal(t, 50, settlement.Balance)
}

func TestConfirmCharge_IsIdempotent(t *testing.T) {
	f := newPointFixture(nil, player(1, 5))
	f.points.charges[5] = &models.PointChargeRequest{ID: 5, UserID: 1, Amount: 10, Status: models.ChargePending}

	_, err := f.svc.ConfirmCharge(context.Background(), adminActor, 5)
	require.NoError(t, err)
	assert.Equal(t, 15, f.profiles.points(1))

	_, err = f.svc.ConfirmCharge(context.Background(), adminActor, 5)
	assert.ErrorIs(t, err, ErrChargeAlreadyProcessed)
	assert.Equal(t, 15, f.profiles.points(1), "second confirmation must not credit again")

	_, err = f.svc.RejectCharge(context.Background(), adminActor, 5)
	assert.ErrorIs(t, err, ErrChargeAlreadyProcessed)
}

func TestConfirmCharge_Errors(t *testing.T) {
	f := newPointFixture(nil, player(1, 0))

	_, err := f.svc.ConfirmCharge(context.Background(), Actor{ID: 1, Role: models.RoleUser}, 5)
	assert.ErrorIs(t, err, ErrAdminRequired)

	_, err = f.svc.ConfirmCharge(context.Background(), adminActor, 404)
	assert.ErrorIs(t, err, ErrChargeNotFound)
}

func TestRejectCharge(t *testing.T) {
	f := newPointFixture(nil, player(1, 0))
	f.points.charges[5] = &models.PointChargeRequest{ID: 5, UserID: 1, Amount: 10, Status: models.ChargePending}

	req, err := f.svc.RejectCharge(context.Background(), adminActor, 5)
	require.NoError(t, err)
	assert.Equal(t, models.ChargeRejected, req.Status)
	assert.Equal(t, 0, f.profiles.points(1))
	assert.Empty(t, f.points.transactions)

	_, err = f.svc.ConfirmCharge(context.Background(), adminActor, 5)
	assert.ErrorIs(t, err, ErrChargeAlreadyProcessed)
}

func TestAdjustPoints(t *testing.T) {
	f := newPointFixture(nil, player(1, 10))
	superuser := Actor{ID: 1000, Role: models.RoleSuperuser}

	_, err := f.svc.AdjustPoints(context.Background(), adminActor, 1, AdjustPointsInput{Delta: 5, Reason: "bonus"})
	assert.ErrorIs(t, err, ErrSuperuserRequired)

	_, err = f.svc.AdjustPoints(context.Background(), superuser, 1, AdjustPointsInput{Delta: 5})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = f.svc.AdjustPoints(context.Background(), superuser, 1, AdjustPointsInput{Delta: -11, Reason: "fix"})
	assert.ErrorIs(t, err, ErrInsufficientPoints)
	assert.Equal(t, 10, f.profiles.points(1))

	entry, err := f.svc.AdjustPoints(context.Background(), superuser, 1, AdjustPointsInput{Delta: -4, Reason: "fix"})
	require.NoError(t, err)
	assert.Equal(t, models.PointTxAdjust, entry.Type)
	assert.Equal(t, 6, entry.BalanceAfter)
	assert.Equal(t, 6, f.profiles.points(1))
	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, ActionPointsAdjusted, f.audit.entries[0].Action)
}

// lockRecorder запоминает, в каком порядке сервис блокирует строки.
type lockRecorder struct {
	order []string
}

type recordingParticipantRepo struct {
	*fakeParticipantRepo
	locks *lockRecorder
}

func (r recordingParticipantRepo) ListPendingFees(ctx context.Context, exec repositories.SQLExecutor, userID int) ([]repositories.PendingFee, error) {
	r.locks.order = append(r.locks.order, "participants")
	return r.fakeParticipantRepo.ListPendingFees(ctx, exec, userID)
}

type recordingProfileRepo struct {
	*fakeProfileRepo
	locks *lockRecorder
}

func (r recordingProfileRepo) LockPoints(ctx context.Context, exec repositories.SQLExecutor, id int) (int, error) {
	r.locks.order = append(r.locks.order, "profile")
	return r.fakeProfileRepo.LockPoints(ctx, exec, id)
}

func TestConfirmCharge_LocksParticipantsBeforeBalance(t *testing.T) {
	f := newPointFixture([]*models.Match{openMatch(1)}, player(1, 0))
	f.pending(1, 1, models.PositionForward)
	f.points.charges[7] = &models.PointChargeRequest{ID: 7, UserID: 1, Amount: 30, DepositorName: "Kim", Status: models.ChargePending}

	locks := &lockRecorder{}
	svc := NewPointService(f.points,
		recordingProfileRepo{fakeProfileRepo: f.profiles, locks: locks},
		recordingParticipantRepo{fakeParticipantRepo: f.participants, locks: locks},
		fakeTx{}, f.notifier, f.audit, discardLogger())

	settlement, err := svc.ConfirmCharge(context.Background(), adminActor, 7)
	require.NoError(t, err)
	assert.Len(t, settlement.ConfirmedParticipants, 1)
	assert.Equal(t, 10, settlement.Balance)
	assert.Equal(t, []string{"participants", "profile"}, locks.order)
}
