package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"beacon/internal/domain"
	"beacon/internal/domain/models"
	"beacon/internal/domain/repositories"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeProjectRepo is an in-memory ProjectRepository. Errors set on the
// struct are returned by the matching method.
type fakeProjectRepo struct {
	mu       sync.Mutex
	projects map[string]models.Project
	order    []string

	createCalls int
	updateCalls int
	deleteCalls int

	getErr    error
	createErr error
	updateErr error
	probeErr  error // returned by HasProject instead of the normal lookup
}

func newFakeProjectRepo(projects ...models.Project) *fakeProjectRepo {
	r := &fakeProjectRepo{projects: map[string]models.Project{}}
	for _, p := range projects {
		r.projects[p.ID] = p
		r.order = append(r.order, p.ID)
	}
	return r
}

func (r *fakeProjectRepo) GetAll(ctx context.Context) ([]models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Project, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.projects[id])
	}
	return out, nil
}

func (r *fakeProjectRepo) Get(ctx context.Context, id string) (*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	p, ok := r.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	return &p, nil
}

func (r *fakeProjectRepo) Create(ctx context.Context, project *models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if r.createErr != nil {
		return r.createErr
	}
	r.projects[project.ID] = *project
	r.order = append(r.order, project.ID)
	return nil
}

func (r *fakeProjectRepo) Update(ctx context.Context, project *models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateCalls++
	if r.updateErr != nil {
		return r.updateErr
	}
	r.projects[project.ID] = *project
	return nil
}

func (r *fakeProjectRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleteCalls++
	if _, ok := r.projects[id]; !ok {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	delete(r.projects, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeProjectRepo) HasProject(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.probeErr != nil {
		return r.probeErr
	}
	if _, ok := r.projects[id]; !ok {
		return fmt.Errorf("no project with id=%s: %w", id, domain.ErrNotFound)
	}
	return nil
}

type fakeEventRepo struct {
	mu       sync.Mutex
	events   []models.Event
	storeErr error
}

func (r *fakeEventRepo) Store(ctx context.Context, event *models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.storeErr != nil {
		return r.storeErr
	}
	r.events = append(r.events, *event)
	return nil
}

func (r *fakeEventRepo) ofType(t models.EventType) []models.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Event
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

type fakeFeatureRepo struct {
	toggles []models.FeatureToggle
	queries []models.FeatureToggleQuery
	err     error
}

func (r *fakeFeatureRepo) GetFeaturesBy(ctx context.Context, query models.FeatureToggleQuery) ([]models.FeatureToggle, error) {
	r.queries = append(r.queries, query)
	if r.err != nil {
		return nil, r.err
	}
	out := []models.FeatureToggle{}
	for _, t := range r.toggles {
		if t.Project == query.Project && t.Archived == query.Archived {
			out = append(out, t)
		}
	}
	return out, nil
}

type roleGrant struct {
	user      *models.User
	projectID string
}

type fakeAccessService struct {
	grants []roleGrant
	err    error
}

func (s *fakeAccessService) CreateDefaultProjectRoles(ctx context.Context, user *models.User, projectID string) error {
	if s.err != nil {
		return s.err
	}
	s.grants = append(s.grants, roleGrant{user: user, projectID: projectID})
	return nil
}

type fakeRoleRepo struct {
	roles       []models.Role
	assignments map[int64][]string
	nextID      int64
	createErr   error
}

func (r *fakeRoleRepo) CreateRole(ctx context.Context, role *models.Role) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	role.ID = r.nextID
	r.roles = append(r.roles, *role)
	return nil
}

func (r *fakeRoleRepo) AddUserToRole(ctx context.Context, userID string, roleID int64) error {
	if r.assignments == nil {
		r.assignments = map[int64][]string{}
	}
	r.assignments[roleID] = append(r.assignments[roleID], userID)
	return nil
}

// fakeTxManager runs the function inline and records whether it failed
type fakeTxManager struct {
	calls      int
	rolledBack bool
}

func (m *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	m.calls++
	if err := fn(ctx); err != nil {
		m.rolledBack = true
		return err
	}
	return nil
}
