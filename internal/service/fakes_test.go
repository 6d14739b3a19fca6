package service_test

import (
	"context"
	"sort"
	"sync"

	"github.com/cricstack/tournament-service/internal/model"
	"github.com/cricstack/tournament-service/internal/repository"
	"github.com/cricstack/tournament-service/internal/realtime"
)

// nopTx runs the unit of work directly; the fakes below are plain maps, so
// there is nothing to roll back.
type nopTx struct{}

func (nopTx) WithinTx(ctx context.Context, fn repository.TxFunc) error { return fn(ctx) }

var _ repository.TxManager = nopTx{}

// capturingBroadcaster records published events for assertions.
type capturingBroadcaster struct {
	mu     sync.Mutex
	topics []string
}

func (c *capturingBroadcaster) Publish(_ context.Context, topic string, _ any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.topics = append(c.topics, topic)
	return nil
}

func (c *capturingBroadcaster) published() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.topics))
	copy(out, c.topics)
	return out
}

var _ realtime.Broadcaster = (*capturingBroadcaster)(nil)

type fakePlayerRepo struct {
	nextID     int64
	items      map[int64]model.Player
	createErr  error
	lastFilter repository.PlayerFilter
	lastPage   repository.Page
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{nextID: 1, items: map[int64]model.Player{}}
}

func (f *fakePlayerRepo) Create(_ context.Context, p model.Player) (model.Player, error) {
	if f.createErr != nil {
		return model.Player{}, f.createErr
	}
	for _, it := range f.items {
		if it.Email == p.Email {
			return model.Player{}, repository.ErrAlreadyExists
		}
	}
	p.ID = f.nextID
	f.nextID++
	f.items[p.ID] = p
	return p, nil
}

func (f *fakePlayerRepo) GetByID(_ context.Context, id int64) (model.Player, error) {
	it, ok := f.items[id]
	if !ok {
		return model.Player{}, repository.ErrNotFound
	}
	return it, nil
}

func (f *fakePlayerRepo) GetForUpdate(ctx context.Context, id int64) (model.Player, error) {
	return f.GetByID(ctx, id)
}

func (f *fakePlayerRepo) List(_ context.Context, filter repository.PlayerFilter, p repository.Page) (repository.PageResult[model.Player], error) {
	f.lastFilter = filter
	f.lastPage = p
	var res repository.PageResult[model.Player]
	for _, v := range f.items {
		if filter.IsSold != nil && v.IsSold != *filter.IsSold {
			continue
		}
		if filter.Category != nil && v.Category != *filter.Category {
			continue
		}
		if filter.TeamID != nil && (v.TeamID == nil || *v.TeamID != *filter.TeamID) {
			continue
		}
		res.Items = append(res.Items, v)
	}
	sort.Slice(res.Items, func(i, j int) bool { return res.Items[i].ID < res.Items[j].ID })
	res.Total = len(res.Items)
	return res, nil
}

func (f *fakePlayerRepo) Update(_ context.Context, p model.Player) (model.Player, error) {
	if _, ok := f.items[p.ID]; !ok {
		return model.Player{}, repository.ErrNotFound
	}
	f.items[p.ID] = p
	return p, nil
}

func (f *fakePlayerRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakePlayerRepo) CountByTeam(_ context.Context, teamID int64) (int, error) {
	n := 0
	for _, v := range f.items {
		if v.TeamID != nil && *v.TeamID == teamID {
			n++
		}
	}
	return n, nil
}

func (f *fakePlayerRepo) TopRunScorers(_ context.Context, limit int) ([]model.LeaderboardEntry, error) {
	return f.top(limit, func(p model.Player) int { return p.Stats.Runs })
}

func (f *fakePlayerRepo) TopWicketTakers(_ context.Context, limit int) ([]model.LeaderboardEntry, error) {
	return f.top(limit, func(p model.Player) int { return p.Stats.Wickets })
}

func (f *fakePlayerRepo) top(limit int, value func(model.Player) int) ([]model.LeaderboardEntry, error) {
	var out []model.LeaderboardEntry
	for _, v := range f.items {
		out = append(out, model.LeaderboardEntry{PlayerID: v.ID, Name: v.Name, TeamID: v.TeamID, Value: value(v)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakePlayerRepo) Count(_ context.Context) (int, error) { return len(f.items), nil }

var _ repository.PlayerRepository = (*fakePlayerRepo)(nil)

type fakeTeamRepo struct {
	nextID    int64
	items     map[int64]model.Team
	createErr error
	lastPage  repository.Page
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{nextID: 1, items: map[int64]model.Team{}}
}

func (f *fakeTeamRepo) Create(_ context.Context, t model.Team) (model.Team, error) {
	if f.createErr != nil {
		return model.Team{}, f.createErr
	}
	for _, it := range f.items {
		if it.Name == t.Name {
			return model.Team{}, repository.ErrAlreadyExists
		}
	}
	t.ID = f.nextID
	f.nextID++
	f.items[t.ID] = t
	return t, nil
}

func (f *fakeTeamRepo) GetByID(_ context.Context, id int64) (model.Team, error) {
	it, ok := f.items[id]
	if !ok {
		return model.Team{}, repository.ErrNotFound
	}
	return it, nil
}

func (f *fakeTeamRepo) GetForUpdate(ctx context.Context, id int64) (model.Team, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeTeamRepo) List(_ context.Context, p repository.Page) (repository.PageResult[model.Team], error) {
	f.lastPage = p
	var res repository.PageResult[model.Team]
	for _, v := range f.items {
		res.Items = append(res.Items, v)
	}
	sort.Slice(res.Items, func(i, j int) bool {
		if res.Items[i].Points != res.Items[j].Points {
			return res.Items[i].Points > res.Items[j].Points
		}
		return res.Items[i].NetRunRate > res.Items[j].NetRunRate
	})
	res.Total = len(res.Items)
	return res, nil
}

func (f *fakeTeamRepo) Update(_ context.Context, t model.Team) (model.Team, error) {
	if _, ok := f.items[t.ID]; !ok {
		return model.Team{}, repository.ErrNotFound
	}
	f.items[t.ID] = t
	return t, nil
}

func (f *fakeTeamRepo) Count(_ context.Context) (int, error) { return len(f.items), nil }

var _ repository.TeamRepository = (*fakeTeamRepo)(nil)

type fakeLotRepo struct {
	nextID int64
	items  map[int64]model.Lot
}

func newFakeLotRepo() *fakeLotRepo {
	return &fakeLotRepo{nextID: 1, items: map[int64]model.Lot{}}
}

func (f *fakeLotRepo) Create(_ context.Context, l model.Lot) (model.Lot, error) {
	for _, it := range f.items {
		if it.PlayerID == l.PlayerID && (it.Status == model.LotPending || it.Status == model.LotActive) {
			return model.Lot{}, repository.ErrAlreadyExists
		}
	}
	l.ID = f.nextID
	f.nextID++
	f.items[l.ID] = l
	return l, nil
}

func (f *fakeLotRepo) GetByID(_ context.Context, id int64) (model.Lot, error) {
	it, ok := f.items[id]
	if !ok {
		return model.Lot{}, repository.ErrNotFound
	}
	return it, nil
}

func (f *fakeLotRepo) GetForUpdate(ctx context.Context, id int64) (model.Lot, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeLotRepo) GetOpenByPlayer(_ context.Context, playerID int64) (model.Lot, error) {
	for _, it := range f.items {
		if it.PlayerID == playerID && (it.Status == model.LotPending || it.Status == model.LotActive) {
			return it, nil
		}
	}
	return model.Lot{}, repository.ErrNotFound
}

func (f *fakeLotRepo) GetActive(_ context.Context) (model.Lot, error) {
	for _, it := range f.items {
		if it.Status == model.LotActive {
			return it, nil
		}
	}
	return model.Lot{}, repository.ErrNotFound
}

func (f *fakeLotRepo) Save(_ context.Context, l model.Lot) (model.Lot, error) {
	if _, ok := f.items[l.ID]; !ok {
		return model.Lot{}, repository.ErrNotFound
	}
	f.items[l.ID] = l
	return l, nil
}

func (f *fakeLotRepo) List(_ context.Context, p repository.Page) (repository.PageResult[model.Lot], error) {
	var res repository.PageResult[model.Lot]
	for _, v := range f.items {
		res.Items = append(res.Items, v)
	}
	sort.Slice(res.Items, func(i, j int) bool { return res.Items[i].ID > res.Items[j].ID })
	res.Total = len(res.Items)
	return res, nil
}

func (f *fakeLotRepo) CountActive(_ context.Context) (int, error) {
	n := 0
	for _, v := range f.items {
		if v.Status == model.LotActive {
			n++
		}
	}
	return n, nil
}

var _ repository.LotRepository = (*fakeLotRepo)(nil)

type fakeMatchRepo struct {
	nextID int64
	items  map[int64]model.Match
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{nextID: 1, items: map[int64]model.Match{}}
}

func (f *fakeMatchRepo) Create(_ context.Context, m model.Match) (model.Match, error) {
	m.ID = f.nextID
	f.nextID++
	f.items[m.ID] = m
	return m, nil
}

func (f *fakeMatchRepo) GetByID(_ context.Context, id int64) (model.Match, error) {
	it, ok := f.items[id]
	if !ok {
		return model.Match{}, repository.ErrNotFound
	}
	return it, nil
}

func (f *fakeMatchRepo) GetForUpdate(ctx context.Context, id int64) (model.Match, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeMatchRepo) Save(_ context.Context, m model.Match) (model.Match, error) {
	if _, ok := f.items[m.ID]; !ok {
		return model.Match{}, repository.ErrNotFound
	}
	f.items[m.ID] = m
	return m, nil
}

func (f *fakeMatchRepo) List(_ context.Context, p repository.Page) (repository.PageResult[model.Match], error) {
	var res repository.PageResult[model.Match]
	for _, v := range f.items {
		res.Items = append(res.Items, v)
	}
	sort.Slice(res.Items, func(i, j int) bool { return res.Items[i].ID < res.Items[j].ID })
	res.Total = len(res.Items)
	return res, nil
}

func (f *fakeMatchRepo) CountByStatus(_ context.Context, status string) (int, error) {
	n := 0
	for _, v := range f.items {
		if v.Status == status {
			n++
		}
	}
	return n, nil
}

var _ repository.MatchRepository = (*fakeMatchRepo)(nil)
