package validation

import (
	"context"
	"strings"
)

// fakeChecks answers store lookups from fixed sets, mirroring the live
// comparison rules: organisation names match regardless of case, emails
// match exactly.
type fakeChecks struct {
	orgNames []string
	orgIDs   []int
	emails   []string
	err      error
}

func (f *fakeChecks) OrganisationNameExists(_ context.Context, name string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, n := range f.orgNames {
		if strings.EqualFold(n, name) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeChecks) OrganisationExists(_ context.Context, id int) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, n := range f.orgIDs {
		if n == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeChecks) UserEmailExists(_ context.Context, email string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, e := range f.emails {
		if e == email {
			return true, nil
		}
	}
	return false, nil
}
