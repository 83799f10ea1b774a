package service

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/cuongbtq/jobboard-be/internal/api/auth"
	"github.com/cuongbtq/jobboard-be/internal/api/domain"
	"github.com/cuongbtq/jobboard-be/internal/api/filter"
	"github.com/cuongbtq/jobboard-be/internal/api/filter/filtertest"
	"github.com/cuongbtq/jobboard-be/internal/api/model"
	"github.com/cuongbtq/jobboard-be/internal/events"
)

// memStore evaluates predicates in memory with the same semantics the SQL
// renderer uses
type memStore struct {
	mu        sync.Mutex
	jobs      []model.JobWithCompany
	companies []model.Company
	err       error
	countErr  error
	created   []model.Job
	updated   []model.Job
	lists     []filter.Predicate
}

func (m *memStore) ListJobs(_ context.Context, pred filter.Predicate, order []filter.OrderBy, window filter.Window) ([]model.JobWithCompany, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lists = append(m.lists, pred)
	if m.err != nil {
		return nil, m.err
	}

	var out []model.JobWithCompany
	for i := range m.jobs {
		if filtertest.Match(pred, filtertest.Job(&m.jobs[i].Job)) {
			out = append(out, m.jobs[i])
		}
	}
	slices.SortStableFunc(out, func(a, b model.JobWithCompany) int {
		switch {
		case filtertest.Less(order, filtertest.Job(&a.Job), filtertest.Job(&b.Job)):
			return -1
		case filtertest.Less(order, filtertest.Job(&b.Job), filtertest.Job(&a.Job)):
			return 1
		}
		return 0
	})

	if window.Offset >= len(out) {
		return []model.JobWithCompany{}, nil
	}
	out = out[window.Offset:]
	if window.Limit > 0 && len(out) > window.Limit {
		out = out[:window.Limit]
	}
	return out, nil
}

func (m *memStore) CountJobs(_ context.Context, pred filter.Predicate) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.countErr != nil {
		return 0, m.countErr
	}
	n := 0
	for i := range m.jobs {
		if filtertest.Match(pred, filtertest.Job(&m.jobs[i].Job)) {
			n++
		}
	}
	return n, nil
}

func (m *memStore) GetJob(ctx context.Context, pred filter.Predicate) (*model.JobWithCompany, error) {
	jobs, err := m.ListJobs(ctx, pred, nil, filter.Window{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, domain.ErrJobNotFound
	}
	return &jobs[0], nil
}

func (m *memStore) ListCities(_ context.Context, pred filter.Predicate) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	cities := []string{}
	for i := range m.jobs {
		if filtertest.Match(pred, filtertest.Job(&m.jobs[i].Job)) && !slices.Contains(cities, m.jobs[i].City) {
			cities = append(cities, m.jobs[i].City)
		}
	}
	slices.Sort(cities)
	return cities, nil
}

func (m *memStore) FindCompanyByOwner(_ context.Context, companyID, userID string) (*model.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	for _, c := range m.companies {
		if c.ID == companyID && c.UserID == userID {
			return &c, nil
		}
	}
	return nil, domain.ErrCompanyNotFound
}

func (m *memStore) FindJobByOwner(_ context.Context, jobID, userID string) (*model.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	for _, j := range m.jobs {
		if j.ID == jobID && j.UserID == userID {
			job := j.Job
			return &job, nil
		}
	}
	return nil, domain.ErrJobNotFound
}

func (m *memStore) CreateJob(_ context.Context, job *model.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.created = append(m.created, *job)
	m.jobs = append(m.jobs, model.JobWithCompany{Job: *job})
	return nil
}

func (m *memStore) UpdateJob(_ context.Context, job *model.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.jobs {
		if m.jobs[i].ID == job.ID && m.jobs[i].UserID == job.UserID {
			m.jobs[i].Job = *job
			m.updated = append(m.updated, *job)
			return nil
		}
	}
	return domain.ErrJobNotFound
}

type fakeAuth struct {
	userID string
}

func (f fakeAuth) Identify(context.Context) (auth.Identity, bool) {
	if f.userID == "" {
		return auth.Identity{}, false
	}
	return auth.Identity{UserID: f.userID}, true
}

type fakePublisher struct {
	err    error
	events []events.JobSubmitted
}

func (f *fakePublisher) PublishJobSubmitted(_ context.Context, e events.JobSubmitted) error {
	f.events = append(f.events, e)
	return f.err
}

// fakeCities behaves like the Redis cache: a set fills it and an
// invalidation empties it
type fakeCities struct {
	cities        []string
	hit           bool
	getErr        error
	invalidateErr error
	sets          [][]string
	invalidations int
}

func (f *fakeCities) GetCities(context.Context) ([]string, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	return f.cities, f.hit, nil
}

func (f *fakeCities) SetCities(_ context.Context, cities []string) error {
	f.sets = append(f.sets, cities)
	f.cities, f.hit = cities, true
	return nil
}

func (f *fakeCities) Invalidate(context.Context) error {
	f.invalidations++
	f.cities, f.hit = nil, false
	return f.invalidateErr
}

type fakeExpirer struct {
	n   int
	err error
}

func (f *fakeExpirer) Sweep(context.Context) (int, error) {
	return f.n, f.err
}

var errBoom = errors.New("connection refused")
