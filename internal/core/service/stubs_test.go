package service

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/placementpathway/portal-api/internal/core/domain"
	"github.com/placementpathway/portal-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubStudentRepo struct {
	byID   map[string]*domain.Student
	nextID int
	err    error // if set, every call returns it
}

func newStubStudentRepo() *stubStudentRepo {
	return &stubStudentRepo{byID: make(map[string]*domain.Student)}
}

func cloneStudent(s *domain.Student) *domain.Student {
	c := *s
	c.Skills = slices.Clone(s.Skills)
	c.Projects = slices.Clone(s.Projects)
	c.Certifications = slices.Clone(s.Certifications)
	return &c
}

func (r *stubStudentRepo) put(s *domain.Student) *domain.Student {
	if s.ID == "" {
		r.nextID++
		s.ID = fmt.Sprintf("stu-%d", r.nextID)
	}
	r.byID[s.ID] = cloneStudent(s)
	return s
}

func (r *stubStudentRepo) Create(_ context.Context, s *domain.Student) (*domain.Student, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, existing := range r.byID {
		if existing.Email == s.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	return cloneStudent(r.put(cloneStudent(s))), nil
}

func (r *stubStudentRepo) FindByEmail(_ context.Context, email string) (*domain.Student, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, s := range r.byID {
		if s.Email == email {
			return cloneStudent(s), nil
		}
	}
	return nil, domain.ErrStudentNotFound
}

func (r *stubStudentRepo) FindByID(_ context.Context, id string) (*domain.Student, error) {
	if r.err != nil {
		return nil, r.err
	}
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrStudentNotFound
	}
	return cloneStudent(s), nil
}

func (r *stubStudentRepo) FindByIDs(_ context.Context, ids []string) ([]domain.Student, error) {
	var out []domain.Student
	for _, id := range ids {
		if s, ok := r.byID[id]; ok {
			out = append(out, *cloneStudent(s))
		}
	}
	return out, nil
}

func (r *stubStudentRepo) List(_ context.Context, f ports.StudentFilter) ([]domain.Student, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []domain.Student
	for _, s := range r.byID {
		if f.VerifiedOnly && !s.IsVerified {
			continue
		}
		out = append(out, *cloneStudent(s))
	}
	return out, nil
}

func (r *stubStudentRepo) UpdateProfile(_ context.Context, id string, u domain.ProfileUpdate) (*domain.Student, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrStudentNotFound
	}
	u.Apply(s)
	return cloneStudent(s), nil
}

func (r *stubStudentRepo) SetVerified(_ context.Context, id string, verified bool) (*domain.Student, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrStudentNotFound
	}
	s.IsVerified = verified
	return cloneStudent(s), nil
}

type stubCompanyRepo struct {
	byID   map[string]*domain.Company
	nextID int
}

func newStubCompanyRepo() *stubCompanyRepo {
	return &stubCompanyRepo{byID: make(map[string]*domain.Company)}
}

func (r *stubCompanyRepo) put(c *domain.Company) *domain.Company {
	if c.ID == "" {
		r.nextID++
		c.ID = fmt.Sprintf("co-%d", r.nextID)
	}
	clone := *c
	r.byID[c.ID] = &clone
	return c
}

func (r *stubCompanyRepo) Create(_ context.Context, c *domain.Company) (*domain.Company, error) {
	for _, existing := range r.byID {
		if existing.Email == c.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	clone := *c
	return r.put(&clone), nil
}

func (r *stubCompanyRepo) FindByEmail(_ context.Context, email string) (*domain.Company, error) {
	for _, c := range r.byID {
		if c.Email == email {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrCompanyNotFound
}

func (r *stubCompanyRepo) FindByID(_ context.Context, id string) (*domain.Company, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCompanyRepo) FindByIDs(_ context.Context, ids []string) ([]domain.Company, error) {
	var out []domain.Company
	for _, id := range ids {
		if c, ok := r.byID[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCompanyRepo) List(_ context.Context) ([]domain.Company, error) {
	var out []domain.Company
	for _, c := range r.byID {
		out = append(out, *c)
	}
	return out, nil
}

type stubTPORepo struct {
	byEmail map[string]*domain.TPO
}

func newStubTPORepo() *stubTPORepo {
	return &stubTPORepo{byEmail: make(map[string]*domain.TPO)}
}

func (r *stubTPORepo) Create(_ context.Context, t *domain.TPO) (*domain.TPO, error) {
	if _, ok := r.byEmail[t.Email]; ok {
		return nil, domain.ErrEmailTaken
	}
	clone := *t
	clone.ID = "tpo-" + t.Email
	r.byEmail[t.Email] = &clone
	out := clone
	return &out, nil
}

func (r *stubTPORepo) FindByEmail(_ context.Context, email string) (*domain.TPO, error) {
	t, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	clone := *t
	return &clone, nil
}

// stubOpportunityRepo keeps insertion order so listing order is deterministic.
type stubOpportunityRepo struct {
	items  []*domain.Opportunity
	nextID int
}

func newStubOpportunityRepo() *stubOpportunityRepo {
	return &stubOpportunityRepo{}
}

func (r *stubOpportunityRepo) indexOf(id string) int {
	return slices.IndexFunc(r.items, func(o *domain.Opportunity) bool { return o.ID == id })
}

func (r *stubOpportunityRepo) Create(_ context.Context, o *domain.Opportunity) (*domain.Opportunity, error) {
	clone := *o
	if clone.ID == "" {
		r.nextID++
		clone.ID = fmt.Sprintf("opp-%d", r.nextID)
	}
	r.items = append(r.items, &clone)
	out := clone
	return &out, nil
}

func (r *stubOpportunityRepo) FindByID(_ context.Context, id string) (*domain.Opportunity, error) {
	i := r.indexOf(id)
	if i < 0 {
		return nil, domain.ErrOpportunityNotFound
	}
	clone := *r.items[i]
	return &clone, nil
}

func (r *stubOpportunityRepo) FindByIDs(_ context.Context, ids []string) ([]domain.Opportunity, error) {
	var out []domain.Opportunity
	for _, o := range r.items {
		if slices.Contains(ids, o.ID) {
			out = append(out, *o)
		}
	}
	return out, nil
}

// FindOwned mirrors the real Mongo query: id and company must both match.
func (r *stubOpportunityRepo) FindOwned(_ context.Context, companyID, id string) (*domain.Opportunity, error) {
	i := r.indexOf(id)
	if i < 0 || r.items[i].CompanyID != companyID {
		return nil, domain.ErrOpportunityNotFound
	}
	clone := *r.items[i]
	return &clone, nil
}

func (r *stubOpportunityRepo) ListByCompany(_ context.Context, companyID string) ([]domain.Opportunity, error) {
	var out []domain.Opportunity
	for _, o := range r.items {
		if o.CompanyID == companyID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *stubOpportunityRepo) List(_ context.Context) ([]domain.Opportunity, error) {
	out := make([]domain.Opportunity, 0, len(r.items))
	for _, o := range r.items {
		out = append(out, *o)
	}
	return out, nil
}

func (r *stubOpportunityRepo) UpdateOwned(_ context.Context, companyID, id string, u domain.OpportunityUpdate) (*domain.Opportunity, error) {
	i := r.indexOf(id)
	if i < 0 || r.items[i].CompanyID != companyID {
		return nil, domain.ErrOpportunityNotFound
	}
	o := r.items[i]
	if u.Title != nil {
		o.Title = *u.Title
	}
	if u.Role != nil {
		o.Role = *u.Role
	}
	if u.Package != nil {
		o.Package = *u.Package
	}
	if u.MinGPA != nil {
		o.MinGPA = *u.MinGPA
	}
	if u.Department != nil {
		o.Department = *u.Department
	}
	if u.Skills != nil {
		o.Skills = *u.Skills
	}
	switch {
	case u.Deadline != nil:
		d := *u.Deadline
		o.Deadline = &d
	case u.ClearDeadline:
		o.Deadline = nil
	}
	clone := *o
	return &clone, nil
}

func (r *stubOpportunityRepo) DeleteOwned(_ context.Context, companyID, id string) error {
	i := r.indexOf(id)
	if i < 0 || r.items[i].CompanyID != companyID {
		return domain.ErrOpportunityNotFound
	}
	r.items = slices.Delete(r.items, i, i+1)
	return nil
}

// stubApplicationRepo enforces the (student, opportunity) uniqueness the way
// the Mongo unique index does. hidePrecheck makes the lookup miss so the
// constraint path can be exercised.
type stubApplicationRepo struct {
	items        []*domain.Application
	hidePrecheck bool
}

func newStubApplicationRepo() *stubApplicationRepo {
	return &stubApplicationRepo{}
}

func (r *stubApplicationRepo) Create(_ context.Context, a *domain.Application) (*domain.Application, error) {
	for _, existing := range r.items {
		if existing.StudentID == a.StudentID && existing.OpportunityID == a.OpportunityID {
			return nil, domain.ErrAlreadyApplied
		}
	}
	clone := *a
	clone.ID = fmt.Sprintf("app-%d", len(r.items)+1)
	r.items = append(r.items, &clone)
	out := clone
	return &out, nil
}

func (r *stubApplicationRepo) FindByStudentAndOpportunity(_ context.Context, studentID, opportunityID string) (*domain.Application, error) {
	if !r.hidePrecheck {
		for _, a := range r.items {
			if a.StudentID == studentID && a.OpportunityID == opportunityID {
				clone := *a
				return &clone, nil
			}
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubApplicationRepo) ListByStudent(_ context.Context, studentID string) ([]domain.Application, error) {
	var out []domain.Application
	for _, a := range r.items {
		if a.StudentID == studentID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *stubApplicationRepo) ListByCompany(_ context.Context, companyID string) ([]domain.Application, error) {
	var out []domain.Application
	for _, a := range r.items {
		if a.CompanyID == companyID {
			out = append(out, *a)
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Collaborator stubs
// ---------------------------------------------------------------------------

type recordingNotifier struct {
	mu     sync.Mutex
	emails []ports.Email
}

func (n *recordingNotifier) Notify(e ports.Email) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.emails = append(n.emails, e)
}

func (n *recordingNotifier) sent() []ports.Email {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Clone(n.emails)
}

type stubAssetStore struct {
	url      string
	err      error
	received string
	name     string
}

func (a *stubAssetStore) Upload(_ context.Context, fileName string, body io.Reader) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	a.received = string(b)
	a.name = fileName
	return a.url, nil
}
