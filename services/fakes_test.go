package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Dosada05/power-play/models"
	"github.com/Dosada05/power-play/realtime"
	"github.com/Dosada05/power-play/repositories"
)

// Фейки хранят состояние в памяти. Методы, не нужные тестам, не реализованы
// (вызов упадёт на nil встроенного интерфейса).

type fakeTx struct{}

func (fakeTx) WithinTx(_ context.Context, fn func(exec repositories.SQLExecutor) error) error {
	return fn(nil)
}

type fakeProfileRepo struct {
	repositories.ProfileRepository
	mu       sync.Mutex
	profiles map[int]*models.Profile
}

func newFakeProfileRepo(profiles ...*models.Profile) *fakeProfileRepo {
	r := &fakeProfileRepo{profiles: make(map[int]*models.Profile)}
	for _, p := range profiles {
		r.profiles[p.ID] = p
	}
	return r
}

func (r *fakeProfileRepo) GetByID(_ context.Context, id int) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, repositories.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProfileRepo) LockPoints(_ context.Context, _ repositories.SQLExecutor, id int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return 0, repositories.ErrProfileNotFound
	}
	return p.Points, nil
}

func (r *fakeProfileRepo) SetPoints(_ context.Context, _ repositories.SQLExecutor, id int, points int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return repositories.ErrProfileNotFound
	}
	p.Points = points
	return nil
}

func (r *fakeProfileRepo) points(id int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.profiles[id].Points
}

type fakeMatchRepo struct {
	repositories.MatchRepository
	matches map[int]*models.Match
}

func newFakeMatchRepo(matches ...*models.Match) *fakeMatchRepo {
	r := &fakeMatchRepo{matches: make(map[int]*models.Match)}
	for _, m := range matches {
		r.matches[m.ID] = m
	}
	return r
}

func (r *fakeMatchRepo) GetByID(_ context.Context, id int) (*models.Match, error) {
	m, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMatchRepo) GetForUpdate(ctx context.Context, _ repositories.SQLExecutor, id int) (*models.Match, error) {
	return r.GetByID(ctx, id)
}

type fakeParticipantRepo struct {
	repositories.ParticipantRepository
	matches      *fakeMatchRepo
	participants []*models.Participant
	nextID       int
	clock        time.Time
}

func newFakeParticipantRepo(matches *fakeMatchRepo) *fakeParticipantRepo {
	return &fakeParticipantRepo{matches: matches, nextID: 1, clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// add кладёт заявку как есть; время подачи растёт с каждым вызовом.
func (r *fakeParticipantRepo) add(p *models.Participant) *models.Participant {
	p.ID = r.nextID
	r.nextID++
	r.clock = r.clock.Add(time.Minute)
	p.CreatedAt = r.clock
	r.participants = append(r.participants, p)
	return p
}

func (r *fakeParticipantRepo) find(id int) *models.Participant {
	for _, p := range r.participants {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *fakeParticipantRepo) Create(_ context.Context, _ repositories.SQLExecutor, p *models.Participant) error {
	for _, existing := range r.participants {
		if existing.MatchID == p.MatchID && existing.UserID == p.UserID {
			return repositories.ErrParticipantConflict
		}
	}
	stored := *p
	r.add(&stored)
	p.ID, p.CreatedAt = stored.ID, stored.CreatedAt
	return nil
}

func (r *fakeParticipantRepo) GetByID(_ context.Context, _ repositories.SQLExecutor, id int) (*models.Participant, error) {
	p := r.find(id)
	if p == nil {
		return nil, repositories.ErrParticipantNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeParticipantRepo) FindByMatchAndUser(_ context.Context, _ repositories.SQLExecutor, matchID, userID int) (*models.Participant, error) {
	for _, p := range r.participants {
		if p.MatchID == matchID && p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repositories.ErrParticipantNotFound
}

func (r *fakeParticipantRepo) CountSeats(_ context.Context, _ repositories.SQLExecutor, matchID int) (map[models.Position]int, error) {
	counts := make(map[models.Position]int)
	for _, p := range r.participants {
		if p.MatchID == matchID && p.Status.HoldsSeat() {
			counts[p.Position]++
		}
	}
	return counts, nil
}

func (r *fakeParticipantRepo) UpdateStatus(_ context.Context, _ repositories.SQLExecutor, id int, status models.ParticipantStatus, paid bool) error {
	p := r.find(id)
	if p == nil {
		return repositories.ErrParticipantNotFound
	}
	p.Status, p.Paid = status, paid
	return nil
}

func (r *fakeParticipantRepo) Reapply(_ context.Context, _ repositories.SQLExecutor, p *models.Participant) error {
	stored := r.find(p.ID)
	if stored == nil {
		return repositories.ErrParticipantNotFound
	}
	r.clock = r.clock.Add(time.Minute)
	stored.Position, stored.Status, stored.Paid, stored.CreatedAt = p.Position, p.Status, p.Paid, r.clock
	p.CreatedAt = r.clock
	return nil
}

func (r *fakeParticipantRepo) ListByMatch(_ context.Context, _ repositories.SQLExecutor, matchID int) ([]*models.Participant, error) {
	out := make([]*models.Participant, 0)
	for _, p := range r.participants {
		if p.MatchID == matchID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeParticipantRepo) ListPendingFees(_ context.Context, _ repositories.SQLExecutor, userID int) ([]repositories.PendingFee, error) {
	pending := make([]*models.Participant, 0)
	for _, p := range r.participants {
		if p.UserID == userID && p.Status == models.ParticipantPendingPayment && !p.Paid {
			if m, ok := r.matches.matches[p.MatchID]; ok && m.Status != models.MatchStatusCanceled {
				pending = append(pending, p)
			}
		}
	}
	sort.SliceStable(pending, func(i, j int) bool { return pending[i].CreatedAt.Before(pending[j].CreatedAt) })

	fees := make([]repositories.PendingFee, 0, len(pending))
	for _, p := range pending {
		m := r.matches.matches[p.MatchID]
		fees = append(fees, repositories.PendingFee{
			ParticipantID: p.ID,
			MatchID:       p.MatchID,
			Position:      p.Position,
			Fee:           m.FeeFor(p.Position),
		})
	}
	return fees, nil
}

func (r *fakeParticipantRepo) FirstWaiting(_ context.Context, _ repositories.SQLExecutor, matchID int, position models.Position) (*models.Participant, error) {
	var first *models.Participant
	for _, p := range r.participants {
		if p.MatchID == matchID && p.Position == position && p.Status == models.ParticipantWaiting {
			if first == nil || p.CreatedAt.Before(first.CreatedAt) {
				first = p
			}
		}
	}
	if first == nil {
		return nil, repositories.ErrParticipantNotFound
	}
	cp := *first
	return &cp, nil
}

type fakePointRepo struct {
	repositories.PointRepository
	charges      map[int]*models.PointChargeRequest
	transactions []models.PointTransaction
	nextID       int
}

func newFakePointRepo(charges ...*models.PointChargeRequest) *fakePointRepo {
	r := &fakePointRepo{charges: make(map[int]*models.PointChargeRequest), nextID: 100}
	for _, c := range charges {
		r.charges[c.ID] = c
	}
	return r
}

func (r *fakePointRepo) CreateCharge(_ context.Context, c *models.PointChargeRequest) error {
	r.nextID++
	c.ID = r.nextID
	cp := *c
	r.charges[c.ID] = &cp
	return nil
}

func (r *fakePointRepo) GetChargeForUpdate(_ context.Context, _ repositories.SQLExecutor, id int) (*models.PointChargeRequest, error) {
	c, ok := r.charges[id]
	if !ok {
		return nil, repositories.ErrChargeNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakePointRepo) UpdateChargeStatus(_ context.Context, _ repositories.SQLExecutor, id int, status models.ChargeStatus, processedBy int, at time.Time) error {
	c, ok := r.charges[id]
	if !ok {
		return repositories.ErrChargeNotFound
	}
	c.Status, c.ProcessedBy, c.ProcessedAt = status, &processedBy, &at
	return nil
}

func (r *fakePointRepo) AddTransaction(_ context.Context, _ repositories.SQLExecutor, tx *models.PointTransaction) error {
	r.nextID++
	tx.ID = r.nextID
	r.transactions = append(r.transactions, *tx)
	return nil
}

type fakeChatRepo struct {
	repositories.ChatRepository
	rooms    map[int]*models.ChatRoom
	messages []*models.ChatMessage
	touched  map[int]time.Time
	unread   int64
}

func newFakeChatRepo(rooms ...*models.ChatRoom) *fakeChatRepo {
	r := &fakeChatRepo{rooms: make(map[int]*models.ChatRoom), touched: make(map[int]time.Time)}
	for _, room := range rooms {
		r.rooms[room.ID] = room
	}
	return r
}

func (r *fakeChatRepo) FindRoom(_ context.Context, userA, userB int, matchID *int) (*models.ChatRoom, error) {
	for _, room := range r.rooms {
		sameMatch := (room.MatchID == nil && matchID == nil) ||
			(room.MatchID != nil && matchID != nil && *room.MatchID == *matchID)
		if room.UserA == userA && room.UserB == userB && sameMatch {
			cp := *room
			return &cp, nil
		}
	}
	return nil, repositories.ErrChatRoomNotFound
}

func (r *fakeChatRepo) CreateRoom(_ context.Context, room *models.ChatRoom) error {
	room.ID = len(r.rooms) + 1
	cp := *room
	r.rooms[room.ID] = &cp
	return nil
}

func (r *fakeChatRepo) GetRoom(_ context.Context, id int) (*models.ChatRoom, error) {
	room, ok := r.rooms[id]
	if !ok {
		return nil, repositories.ErrChatRoomNotFound
	}
	cp := *room
	return &cp, nil
}

func (r *fakeChatRepo) CreateMessage(_ context.Context, _ repositories.SQLExecutor, msg *models.ChatMessage) error {
	msg.ID = len(r.messages) + 1
	msg.CreatedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r.messages = append(r.messages, msg)
	return nil
}

func (r *fakeChatRepo) TouchRoom(_ context.Context, _ repositories.SQLExecutor, roomID int, at time.Time) error {
	r.touched[roomID] = at
	return nil
}

func (r *fakeChatRepo) ListMessages(_ context.Context, roomID int, _ *int, limit int) ([]*models.ChatMessage, error) {
	out := make([]*models.ChatMessage, 0)
	for _, m := range r.messages {
		if m.RoomID == roomID && len(out) < limit {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeChatRepo) MarkRead(_ context.Context, _, _ int, _ time.Time) (int64, error) {
	n := r.unread
	r.unread = 0
	return n, nil
}

type fakePushRepo struct {
	repositories.PushRepository
	mu      sync.Mutex
	subs    []models.PushSubscription
	deleted []string
}

func (r *fakePushRepo) Upsert(_ context.Context, sub *models.PushSubscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub.ID = len(r.subs) + 1
	r.subs = append(r.subs, *sub)
	return nil
}

func (r *fakePushRepo) ListByUser(_ context.Context, userID int) ([]models.PushSubscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.PushSubscription, 0)
	for _, s := range r.subs {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakePushRepo) DeleteByEndpoint(_ context.Context, endpoint string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.subs {
		if s.Endpoint == endpoint {
			r.subs = append(r.subs[:i], r.subs[i+1:]...)
			r.deleted = append(r.deleted, endpoint)
			return nil
		}
	}
	return repositories.ErrPushSubscriptionNotFound
}

type fakeAuditRepo struct {
	repositories.AuditRepository
	mu      sync.Mutex
	entries []models.AuditLog
}

func (r *fakeAuditRepo) Create(_ context.Context, entry *models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = len(r.entries) + 1
	r.entries = append(r.entries, *entry)
	return nil
}

type sentNotification struct {
	UserID int
	Role   models.UserRole
	N      Notification
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (n *recordingNotifier) NotifyUser(_ context.Context, userID int, notification Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentNotification{UserID: userID, N: notification})
}

func (n *recordingNotifier) NotifyRole(_ context.Context, role models.UserRole, notification Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentNotification{Role: role, N: notification})
}

type recordingAudit struct {
	entries []AuditEntry
}

func (a *recordingAudit) Record(_ context.Context, entry AuditEntry) {
	a.entries = append(a.entries, entry)
}

func (a *recordingAudit) List(context.Context, models.AuditFilter) (*AuditListResponse, error) {
	return &AuditListResponse{}, nil
}

type recordingBroadcaster struct {
	rooms  []string
	events []realtime.Event
}

func (b *recordingBroadcaster) BroadcastToRoom(roomID string, event realtime.Event) {
	b.rooms = append(b.rooms, roomID)
	b.events = append(b.events, event)
}

func intPtr(v int) *int { return &v }

func (r *fakeMatchRepo) Create(_ context.Context, m *models.Match) error {
	m.ID = len(r.matches) + 1
	cp := *m
	r.matches[m.ID] = &cp
	return nil
}

func (r *fakeMatchRepo) Update(_ context.Context, _ repositories.SQLExecutor, m *models.Match) error {
	if _, ok := r.matches[m.ID]; !ok {
		return repositories.ErrMatchNotFound
	}
	cp := *m
	r.matches[m.ID] = &cp
	return nil
}

func (r *fakeMatchRepo) UpdateStatus(_ context.Context, _ repositories.SQLExecutor, id int, status models.MatchStatus) error {
	m, ok := r.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	m.Status = status
	return nil
}

func (r *fakeMatchRepo) ListStartedOpen(_ context.Context, now time.Time) ([]*models.Match, error) {
	out := make([]*models.Match, 0)
	for _, m := range r.matches {
		if m.Status == models.MatchStatusOpen && !m.StartTime.After(now) {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeParticipantRepo) CancelOutstanding(_ context.Context, _ repositories.SQLExecutor, matchID int) (int64, error) {
	var n int64
	for _, p := range r.participants {
		if p.MatchID == matchID && !p.Paid &&
			(p.Status == models.ParticipantPendingPayment || p.Status == models.ParticipantWaiting) {
			p.Status = models.ParticipantCanceled
			n++
		}
	}
	return n, nil
}

type fakeClubRepo struct {
	repositories.ClubRepository
	clubs   map[int]*models.Club
	members []models.ClubMember
}

func (r *fakeClubRepo) GetByID(_ context.Context, id int) (*models.Club, error) {
	c, ok := r.clubs[id]
	if !ok {
		return nil, repositories.ErrClubNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeClubRepo) GetMember(_ context.Context, clubID, userID int) (*models.ClubMember, error) {
	for _, m := range r.members {
		if m.ClubID == clubID && m.UserID == userID {
			cp := m
			return &cp, nil
		}
	}
	return nil, repositories.ErrClubMemberNotFound
}

type fakeRinkRepo struct {
	repositories.RinkRepository
	rinks []*models.Rink
	inUse map[int]bool
}

func (r *fakeRinkRepo) GetByID(_ context.Context, id int) (*models.Rink, error) {
	for _, rink := range r.rinks {
		if rink.ID == id {
			cp := *rink
			return &cp, nil
		}
	}
	return nil, repositories.ErrRinkNotFound
}

func (r *fakeRinkRepo) List(context.Context) ([]*models.Rink, error) {
	out := make([]*models.Rink, 0, len(r.rinks))
	for _, rink := range r.rinks {
		cp := *rink
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProfileRepo) Create(_ context.Context, p *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.profiles {
		if existing.Email == p.Email {
			return repositories.ErrProfileEmailConflict
		}
	}
	p.ID = len(r.profiles) + 1
	cp := *p
	r.profiles[p.ID] = &cp
	return nil
}

func (r *fakeProfileRepo) GetByEmail(_ context.Context, email string) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repositories.ErrProfileNotFound
}

func (r *fakeProfileRepo) Update(_ context.Context, p *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[p.ID]; !ok {
		return repositories.ErrProfileNotFound
	}
	cp := *p
	r.profiles[p.ID] = &cp
	return nil
}

func (r *fakeProfileRepo) SetRole(_ context.Context, id int, role models.UserRole) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return repositories.ErrProfileNotFound
	}
	p.Role = role
	return nil
}

func (r *fakeProfileRepo) SoftDelete(_ context.Context, id int, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok || p.DeletedAt != nil {
		return repositories.ErrProfileNotFound
	}
	p.DeletedAt = &at
	return nil
}

func (r *fakeClubRepo) Create(_ context.Context, _ repositories.SQLExecutor, c *models.Club) error {
	if r.clubs == nil {
		r.clubs = make(map[int]*models.Club)
	}
	for _, existing := range r.clubs {
		if existing.Name == c.Name {
			return repositories.ErrClubNameConflict
		}
	}
	c.ID = len(r.clubs) + 1
	cp := *c
	r.clubs[c.ID] = &cp
	return nil
}

func (r *fakeClubRepo) AddMember(_ context.Context, _ repositories.SQLExecutor, m *models.ClubMember) error {
	for _, existing := range r.members {
		if existing.ClubID == m.ClubID && existing.UserID == m.UserID {
			return repositories.ErrClubMemberConflict
		}
	}
	r.members = append(r.members, *m)
	return nil
}

func (r *fakeClubRepo) UpdateMember(_ context.Context, m *models.ClubMember) error {
	for i := range r.members {
		if r.members[i].ClubID == m.ClubID && r.members[i].UserID == m.UserID {
			r.members[i].Role = m.Role
			r.members[i].Status = m.Status
			return nil
		}
	}
	return repositories.ErrClubMemberNotFound
}

func (r *fakeClubRepo) RemoveMember(_ context.Context, clubID, userID int) error {
	for i, m := range r.members {
		if m.ClubID == clubID && m.UserID == userID {
			r.members = append(r.members[:i], r.members[i+1:]...)
			return nil
		}
	}
	return repositories.ErrClubMemberNotFound
}

func (r *fakeClubRepo) ListMembers(_ context.Context, clubID int, status *models.ClubMemberStatus) ([]models.ClubMember, error) {
	out := make([]models.ClubMember, 0)
	for _, m := range r.members {
		if m.ClubID != clubID || (status != nil && m.Status != *status) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeRinkRepo) Create(_ context.Context, rink *models.Rink) error {
	rink.ID = len(r.rinks) + 1
	cp := *rink
	r.rinks = append(r.rinks, &cp)
	return nil
}

func (r *fakeRinkRepo) Update(_ context.Context, rink *models.Rink) error {
	for i, existing := range r.rinks {
		if existing.ID == rink.ID {
			cp := *rink
			r.rinks[i] = &cp
			return nil
		}
	}
	return repositories.ErrRinkNotFound
}

func (r *fakeRinkRepo) Delete(_ context.Context, id int) error {
	for i, rink := range r.rinks {
		if rink.ID == id {
			if r.inUse[id] {
				return repositories.ErrRinkInUse
			}
			r.rinks = append(r.rinks[:i], r.rinks[i+1:]...)
			return nil
		}
	}
	return repositories.ErrRinkNotFound
}
