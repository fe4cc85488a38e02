package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/power-play/i18n"
	"github.com/Dosada05/power-play/models"
)

type matchFixture struct {
	svc          MatchService
	profiles     *fakeProfileRepo
	matches      *fakeMatchRepo
	participants *fakeParticipantRepo
	points       *fakePointRepo
	clubs        *fakeClubRepo
	notifier     *recordingNotifier
	audit        *recordingAudit
}

func newMatchFixture(matches []*models.Match, profiles ...*models.Profile) *matchFixture {
	f := &matchFixture{
		profiles: newFakeProfileRepo(profiles...),
		matches:  newFakeMatchRepo(matches...),
		points:   newFakePointRepo(),
		clubs: &fakeClubRepo{
			clubs: map[int]*models.Club{3: {ID: 3, Name: "Seoul Owls"}},
			members: []models.ClubMember{
				{ClubID: 3, UserID: 50, Role: models.ClubRoleAdmin, Status: models.ClubMemberApproved},
				{ClubID: 3, UserID: 51, Role: models.ClubRoleMember, Status: models.ClubMemberApproved},
			},
		},
		notifier: &recordingNotifier{},
		audit:    &recordingAudit{},
	}
	f.participants = newFakeParticipantRepo(f.matches)
	rinks := &fakeRinkRepo{rinks: []*models.Rink{{ID: 1, NameKo: "목동 아이스링크", NameEn: "Mokdong Ice Rink", RinkType: models.RinkTypeFull}}}
	f.svc = NewMatchService(f.matches, f.participants, rinks, f.clubs, f.profiles, f.points, fakeTx{}, nil, f.notifier, f.audit, discardLogger())
	return f
}

func validMatchInput() CreateMatchInput {
	return CreateMatchInput{
		RinkID:      1,
		StartTime:   time.Now().Add(72 * time.Hour),
		EntryPoints: 20,
		MaxForward:  10,
		MaxDefense:  6,
		MaxGoalie:   2,
	}
}

func TestCreateMatch(t *testing.T) {
	f := newMatchFixture(nil)

	match, err := f.svc.Create(context.Background(), adminActor, validMatchInput())
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatusOpen, match.Status)
	assert.Equal(t, adminActor.ID, match.CreatedBy)
	assert.Equal(t, map[models.Position]int{models.PositionForward: 10, models.PositionDefense: 6, models.PositionGoalie: 2}, match.RemainingSeats)
	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, ActionMatchCreated, f.audit.entries[0].Action)
}

func TestCreateMatch_Validation(t *testing.T) {
	tests := []struct {
		name    string
		actor   Actor
		mutate  func(in *CreateMatchInput)
		wantErr error
	}{
		{
			name:    "plain user without club",
			actor:   Actor{ID: 51, Role: models.RoleUser},
			wantErr: ErrAdminRequired,
		},
		{
			name:    "club member without admin role",
			actor:   Actor{ID: 51, Role: models.RoleUser},
			mutate:  func(in *CreateMatchInput) { in.ClubID = intPtr(3) },
			wantErr: ErrClubAdminRequired,
		},
		{
			name:    "outsider of club",
			actor:   Actor{ID: 77, Role: models.RoleUser},
			mutate:  func(in *CreateMatchInput) { in.ClubID = intPtr(3) },
			wantErr: ErrClubAdminRequired,
		},
		{
			name:    "start time in the past",
			actor:   adminActor,
			mutate:  func(in *CreateMatchInput) { in.StartTime = time.Now().Add(-time.Hour) },
			wantErr: ErrMatchInvalidStartTime,
		},
		{
			name:    "negative fee",
			actor:   adminActor,
			mutate:  func(in *CreateMatchInput) { in.EntryPoints = -1 },
			wantErr: ErrMatchInvalidFee,
		},
		{
			name:  "no seats at all",
			actor: adminActor,
			mutate: func(in *CreateMatchInput) {
				in.MaxForward, in.MaxDefense, in.MaxGoalie = 0, 0, 0
			},
			wantErr: ErrMatchInvalidCapacity,
		},
		{
			name:    "missing rink",
			actor:   adminActor,
			mutate:  func(in *CreateMatchInput) { in.RinkID = 0 },
			wantErr: ErrValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMatchFixture(nil)
			input := validMatchInput()
			if tt.mutate != nil {
				tt.mutate(&input)
			}
			_, err := f.svc.Create(context.Background(), tt.actor, input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateMatch_ClubAdmin(t *testing.T) {
	f := newMatchFixture(nil)
	input := validMatchInput()
	input.ClubID = intPtr(3)

	match, err := f.svc.Create(context.Background(), Actor{ID: 50, Role: models.RoleUser}, input)
	require.NoError(t, err)
	require.NotNil(t, match.ClubID)
	assert.Equal(t, 3, *match.ClubID)
}

func TestUpdateMatch_FeeLockedAfterPayment(t *testing.T) {
	f := newMatchFixture([]*models.Match{openMatch(1)}, player(1, 100))
	f.participants.add(&models.Participant{MatchID: 1, UserID: 1, Position: models.PositionForward, Status: models.ParticipantConfirmed, Paid: true})

	fee := 30
	_, err := f.svc.Update(context.Background(), adminActor, 1, UpdateMatchInput{EntryPoints: &fee})
	assert.ErrorIs(t, err, ErrValidationFailed)

	desc := "  bring dark jerseys "
	updated, err := f.svc.Update(context.Background(), adminActor, 1, UpdateMatchInput{Description: &desc})
	require.NoError(t, err)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "bring dark jerseys", *updated.Description)
	assert.Len(t, updated.Participants, 1)
}

func TestUpdateMatch_RaisedCapacityPromotesWaiting(t *testing.T) {
	f := newMatchFixture([]*models.Match{openMatch(1)}, player(1, 0), player(2, 0), player(3, 50), player(4, 0), player(5, 100))
	for _, uid := range []int{1, 2} {
		f.participants.add(&models.Participant{MatchID: 1, UserID: uid, Position: models.PositionForward, Status: models.ParticipantConfirmed, Paid: true})
	}
	first := f.participants.add(&models.Participant{MatchID: 1, UserID: 3, Position: models.PositionForward, Status: models.ParticipantWaiting})
	second := f.participants.add(&models.Participant{MatchID: 1, UserID: 4, Position: models.PositionForward, Status: models.ParticipantWaiting})
	third := f.participants.add(&models.Participant{MatchID: 1, UserID: 5, Position: models.PositionForward, Status: models.ParticipantWaiting})

	maxFW := 4
	updated, err := f.svc.Update(context.Background(), adminActor, 1, UpdateMatchInput{MaxForward: &maxFW})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.MaxForward)
	assert.Equal(t, 0, updated.RemainingSeats[models.PositionForward])

	assert.Equal(t, models.ParticipantConfirmed, first.Status)
	assert.True(t, first.Paid)
	assert.Equal(t, 30, f.profiles.points(3))
	assert.Equal(t, models.ParticipantPendingPayment, second.Status)
	assert.Equal(t, models.ParticipantWaiting, third.Status)
	assert.Equal(t, 100, f.profiles.points(5))

	require.Len(t, f.points.transactions, 1)
	assert.Equal(t, -20, f.points.transactions[0].Amount)
	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, 3, f.notifier.sent[0].UserID)
	assert.Equal(t, i18n.MsgMatchConfirmedTitle, f.notifier.sent[0].N.TitleKey)
}

func TestUpdateMatch_LoweredCapacityKeepsQueue(t *testing.T) {
	f := newMatchFixture([]*models.Match{openMatch(1)}, player(1, 0), player(3, 50))
	f.participants.add(&models.Participant{MatchID: 1, UserID: 1, Position: models.PositionDefense, Status: models.ParticipantConfirmed, Paid: true})
	waiting := f.participants.add(&models.Participant{MatchID: 1, UserID: 3, Position: models.PositionForward, Status: models.ParticipantWaiting})

	maxFW, maxDF := 1, 1
	_, err := f.svc.Update(context.Background(), adminActor, 1, UpdateMatchInput{MaxForward: &maxFW, MaxDefense: &maxDF})
	require.NoError(t, err)
	assert.Equal(t, models.ParticipantWaiting, waiting.Status)
	assert.Empty(t, f.points.transactions)
	assert.Empty(t, f.notifier.sent)
}

func TestGetMatch_LocalizesRinkAndCountsSeats(t *testing.T) {
	f := newMatchFixture([]*models.Match{openMatch(1)})
	f.participants.add(&models.Participant{MatchID: 1, UserID: 1, Position: models.PositionForward, Status: models.ParticipantConfirmed, Paid: true})
	f.participants.add(&models.Participant{MatchID: 1, UserID: 2, Position: models.PositionForward, Status: models.ParticipantWaiting})

	ctx := i18n.WithLang(context.Background(), i18n.LangEn)
	match, err := f.svc.GetByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, match.Rink)
	assert.Equal(t, "Mokdong Ice Rink", match.Rink.DisplayName)
	assert.Equal(t, 1, match.RemainingSeats[models.PositionForward])
	assert.Len(t, match.Participants, 2)

	_, err = f.svc.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestCancelMatch_RefundsPaidParticipants(t *testing.T) {
	f := newMatchFixture([]*models.Match{openMatch(1)}, player(1, 0), player(2, 5))
	f.participants.add(&models.Participant{MatchID: 1, UserID: 1, Position: models.PositionForward, Status: models.ParticipantConfirmed, Paid: true})
	f.participants.add(&models.Participant{MatchID: 1, UserID: 2, Position: models.PositionDefense, Status: models.ParticipantPendingPayment})

	match, err := f.svc.Cancel(context.Background(), adminActor, 1)
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatusCanceled, match.Status)

	assert.Equal(t, 20, f.profiles.points(1))
	assert.Equal(t, 5, f.profiles.points(2))
	for _, p := range f.participants.participants {
		assert.Equal(t, models.ParticipantCanceled, p.Status)
		assert.False(t, p.Paid)
	}
	assert.Len(t, f.notifier.sent, 2)
	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, ActionMatchCanceled, f.audit.entries[0].Action)

	_, err = f.svc.Cancel(context.Background(), adminActor, 1)
	assert.ErrorIs(t, err, ErrMatchNotOpen)
}

func TestCloseStarted(t *testing.T) {
	started := openMatch(1)
	started.StartTime = time.Now().Add(-time.Minute)
	upcoming := openMatch(2)
	f := newMatchFixture([]*models.Match{started, upcoming})
	f.participants.add(&models.Participant{MatchID: 1, UserID: 1, Position: models.PositionForward, Status: models.ParticipantConfirmed, Paid: true})
	f.participants.add(&models.Participant{MatchID: 1, UserID: 2, Position: models.PositionForward, Status: models.ParticipantPendingPayment})
	f.participants.add(&models.Participant{MatchID: 1, UserID: 3, Position: models.PositionDefense, Status: models.ParticipantWaiting})

	n, err := f.svc.CloseStarted(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.Equal(t, models.MatchStatusClosed, f.matches.matches[1].Status)
	assert.Equal(t, models.MatchStatusOpen, f.matches.matches[2].Status)
	assert.Equal(t, models.ParticipantConfirmed, f.participants.find(1).Status)
	assert.Equal(t, models.ParticipantCanceled, f.participants.find(2).Status)
	assert.Equal(t, models.ParticipantCanceled, f.participants.find(3).Status)

	n, err = f.svc.CloseStarted(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}
