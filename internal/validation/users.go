package validation

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/expomadeinworld/directory-service/internal/models"
)

const (
	userNameMaxLen  = 128
	userEmailMaxLen = 254
)

// userOrganisation checks the referenced organisation exists at validation
// time. This is a best-effort pre-check; the foreign key is the backstop.
func userOrganisation(ctx context.Context, checks Checks, raw map[string]json.RawMessage, errs Errors) (int, bool, error) {
	orgID, ok := intField(raw, errs, "organisation_id")
	if !ok {
		return 0, false, nil
	}

	exists, err := checks.OrganisationExists(ctx, orgID)
	if err != nil {
		return 0, false, err
	}
	if !exists {
		errs.add("organisation_id", fmt.Sprintf("Organisation with given ID (%d) does not exist", orgID))
		return 0, false, nil
	}
	return orgID, true, nil
}

// UserPost validates the user create body
func UserPost(checks Checks) BodySchema {
	return func(ctx context.Context, body []byte) (any, Errors, error) {
		raw, errs := decodeBody(body)
		if errs != nil {
			return nil, errs, nil
		}
		errs = Errors{}
		rejectUnknown(raw, errs, "first_name", "last_name", "email", "organisation_id")

		firstName, _ := stringField(raw, errs, "first_name", userNameMaxLen)
		lastName, _ := stringField(raw, errs, "last_name", userNameMaxLen)

		email, emailOK := stringField(raw, errs, "email", userEmailMaxLen)
		if emailOK {
			if !emailRe.MatchString(email) {
				errs.add("email", msgNotEmail)
			} else {
				taken, err := checks.UserEmailExists(ctx, email)
				if err != nil {
					return nil, nil, err
				}
				if taken {
					errs.add("email", fmt.Sprintf("User email %s already exists", email))
				}
			}
		}

		orgID, _, err := userOrganisation(ctx, checks, raw, errs)
		if err != nil {
			return nil, nil, err
		}

		if len(errs) > 0 {
			return nil, errs, nil
		}
		return models.UserCreate{
			FirstName:      firstName,
			LastName:       lastName,
			Email:          email,
			OrganisationID: orgID,
			State:          models.UserEnabled,
		}, nil, nil
	}
}

// UserPatch validates the user update body. Email is immutable through this
// endpoint and therefore not part of the schema.
func UserPatch(checks Checks) BodySchema {
	return func(ctx context.Context, body []byte) (any, Errors, error) {
		raw, errs := decodeBody(body)
		if errs != nil {
			return nil, errs, nil
		}
		errs = Errors{}
		rejectUnknown(raw, errs, "first_name", "last_name", "organisation_id")

		firstName, firstOK := stringField(raw, errs, "first_name", userNameMaxLen)
		lastName, lastOK := stringField(raw, errs, "last_name", userNameMaxLen)
		orgID, orgOK, err := userOrganisation(ctx, checks, raw, errs)
		if err != nil {
			return nil, nil, err
		}

		if len(errs) > 0 {
			return nil, errs, nil
		}

		updates := models.UserUpdate{}
		if firstOK {
			updates.FirstName = &firstName
		}
		if lastOK {
			updates.LastName = &lastName
		}
		if orgOK {
			updates.OrganisationID = &orgID
		}
		return updates, nil, nil
	}
}
