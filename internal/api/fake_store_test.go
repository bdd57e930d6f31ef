package api

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/expomadeinworld/directory-service/internal/db"
	"github.com/expomadeinworld/directory-service/internal/models"
)

// fakeSession records the transaction outcome for assertions
type fakeSession struct {
	committed  bool
	rolledBack bool
}

func (s *fakeSession) Commit(context.Context) error   { s.committed = true; return nil }
func (s *fakeSession) Rollback(context.Context) error { s.rolledBack = true; return nil }

// fakeStore is an in-memory Store double. It reproduces the live store's
// listing semantics (substring search across entity columns, directional
// sort with id-ascending fallback, count before windowing) so handler tests
// exercise realistic data flow without a database.
type fakeStore struct {
	orgs       map[int]models.Organisation
	users      map[int]models.User
	nextOrgID  int
	nextUserID int

	healthErr   error
	beginErr    error
	lastSession *fakeSession
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orgs:       map[int]models.Organisation{},
		users:      map[int]models.User{},
		nextOrgID:  1,
		nextUserID: 1,
	}
}

func (f *fakeStore) addOrganisation(name string, status models.OrganisationStatus) models.Organisation {
	org := models.Organisation{
		ID:        f.nextOrgID,
		Name:      name,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
	f.orgs[org.ID] = org
	f.nextOrgID++
	return org
}

func (f *fakeStore) addUser(firstName, lastName, email string, orgID int) models.User {
	u := models.User{
		ID:             f.nextUserID,
		FirstName:      firstName,
		LastName:       lastName,
		Email:          email,
		OrganisationID: orgID,
		State:          models.UserEnabled,
		CreatedAt:      time.Now().UTC(),
	}
	f.users[u.ID] = u
	f.nextUserID++
	return u
}

func (f *fakeStore) Begin(ctx context.Context) (context.Context, db.Session, error) {
	if f.beginErr != nil {
		return ctx, nil, f.beginErr
	}
	f.lastSession = &fakeSession{}
	return ctx, f.lastSession, nil
}

func (f *fakeStore) Health(context.Context) error {
	return f.healthErr
}

// matchTerms mirrors the ILIKE filter: every term must match at least one
// column as a case-insensitive substring, after trimming.
func matchTerms(terms []string, columns ...string) bool {
	for _, term := range terms {
		t := strings.ToLower(strings.TrimSpace(term))
		found := false
		for _, col := range columns {
			if strings.Contains(strings.ToLower(col), t) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func sortKey(sorting string) (field string, desc bool) {
	if strings.HasPrefix(sorting, "-") {
		return sorting[1:], true
	}
	return sorting, false
}

func window[T any](items []T, size, page int) []T {
	offset := size * page
	if offset >= len(items) {
		return []T{}
	}
	end := offset + size
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func (f *fakeStore) ListOrganisations(_ context.Context, params models.ListParams) ([]models.Organisation, int, error) {
	matched := make([]models.Organisation, 0)
	for _, org := range f.orgs {
		if matchTerms(params.Search, org.Name, strconv.Itoa(org.ID)) {
			matched = append(matched, org)
		}
	}

	field, desc := sortKey(params.Sorting)
	sort.Slice(matched, func(i, j int) bool {
		var less bool
		switch field {
		case "name":
			less = strings.ToLower(matched[i].Name) < strings.ToLower(matched[j].Name)
		default:
			return matched[i].ID < matched[j].ID
		}
		if desc {
			return !less
		}
		return less
	})

	return window(matched, params.Size, params.Page), len(matched), nil
}

func (f *fakeStore) GetOrganisation(_ context.Context, id int) (*models.Organisation, error) {
	org, ok := f.orgs[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &org, nil
}

func (f *fakeStore) CreateOrganisation(_ context.Context, in models.OrganisationCreate) (*models.Organisation, error) {
	for _, org := range f.orgs {
		if strings.EqualFold(org.Name, in.Name) {
			return nil, db.ErrConflict
		}
	}
	org := f.addOrganisation(in.Name, in.Status)
	return &org, nil
}

func (f *fakeStore) UpdateOrganisation(_ context.Context, id int, updates models.OrganisationUpdate) error {
	org, ok := f.orgs[id]
	if !ok {
		return db.ErrNotFound
	}
	if updates.Name != nil {
		for otherID, other := range f.orgs {
			if otherID != id && strings.EqualFold(other.Name, *updates.Name) {
				return db.ErrConflict
			}
		}
		org.Name = *updates.Name
	}
	if updates.Status != nil {
		org.Status = *updates.Status
	}
	f.orgs[id] = org
	return nil
}

func (f *fakeStore) DeleteOrganisation(_ context.Context, id int) (bool, error) {
	if _, ok := f.orgs[id]; !ok {
		return false, nil
	}
	for _, u := range f.users {
		if u.OrganisationID == id {
			return false, db.ErrConflict
		}
	}
	delete(f.orgs, id)
	return true, nil
}

func (f *fakeStore) CountOrganisationUsers(_ context.Context, orgID int) (int, error) {
	count := 0
	for _, u := range f.users {
		if u.OrganisationID == orgID {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) ListOrganisationUsers(_ context.Context, orgID int) ([]models.User, error) {
	users := make([]models.User, 0)
	for _, u := range f.users {
		if u.OrganisationID == orgID {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (f *fakeStore) ListUsers(_ context.Context, params models.ListParams) ([]models.User, int, error) {
	matched := make([]models.User, 0)
	for _, u := range f.users {
		if matchTerms(params.Search, u.LastName, u.FirstName, u.Email, strconv.Itoa(u.ID)) {
			matched = append(matched, u)
		}
	}

	field, desc := sortKey(params.Sorting)
	sort.Slice(matched, func(i, j int) bool {
		var less bool
		switch field {
		case "first_name":
			less = strings.ToLower(matched[i].FirstName) < strings.ToLower(matched[j].FirstName)
		case "last_name":
			less = strings.ToLower(matched[i].LastName) < strings.ToLower(matched[j].LastName)
		default:
			return matched[i].ID < matched[j].ID
		}
		if desc {
			return !less
		}
		return less
	})

	return window(matched, params.Size, params.Page), len(matched), nil
}

func (f *fakeStore) GetUser(_ context.Context, id int) (*models.User, string, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, "", db.ErrNotFound
	}
	return &u, f.orgs[u.OrganisationID].Name, nil
}

func (f *fakeStore) CreateUser(_ context.Context, in models.UserCreate) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == in.Email {
			return nil, db.ErrConflict
		}
	}
	if _, ok := f.orgs[in.OrganisationID]; !ok {
		return nil, db.ErrConflict
	}
	u := f.addUser(in.FirstName, in.LastName, in.Email, in.OrganisationID)
	return &u, nil
}

func (f *fakeStore) UpdateUser(_ context.Context, id int, updates models.UserUpdate) error {
	u, ok := f.users[id]
	if !ok {
		return db.ErrNotFound
	}
	if updates.OrganisationID != nil {
		if _, ok := f.orgs[*updates.OrganisationID]; !ok {
			return db.ErrConflict
		}
		u.OrganisationID = *updates.OrganisationID
	}
	if updates.FirstName != nil {
		u.FirstName = *updates.FirstName
	}
	if updates.LastName != nil {
		u.LastName = *updates.LastName
	}
	f.users[id] = u
	return nil
}

func (f *fakeStore) DeleteUser(_ context.Context, id int) (bool, error) {
	if _, ok := f.users[id]; !ok {
		return false, nil
	}
	delete(f.users, id)
	return true, nil
}

func (f *fakeStore) OrganisationNameExists(_ context.Context, name string) (bool, error) {
	for _, org := range f.orgs {
		if strings.EqualFold(org.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) OrganisationExists(_ context.Context, id int) (bool, error) {
	_, ok := f.orgs[id]
	return ok, nil
}

func (f *fakeStore) UserEmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}
