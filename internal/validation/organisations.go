package validation

import (
	"context"
	"fmt"

	"github.com/expomadeinworld/directory-service/internal/models"
)

const organisationNameMaxLen = 128

// OrganisationPost validates the organisation create body: a required name,
// bounded in length and unique among organisations regardless of case.
func OrganisationPost(checks Checks) BodySchema {
	return func(ctx context.Context, body []byte) (any, Errors, error) {
		raw, errs := decodeBody(body)
		if errs != nil {
			return nil, errs, nil
		}
		errs = Errors{}
		rejectUnknown(raw, errs, "name")

		name, ok := stringField(raw, errs, "name", organisationNameMaxLen)
		if ok {
			taken, err := checks.OrganisationNameExists(ctx, name)
			if err != nil {
				return nil, nil, err
			}
			if taken {
				errs.add("name", fmt.Sprintf("Organisation name %s already exists", name))
			}
		}

		if len(errs) > 0 {
			return nil, errs, nil
		}
		return models.OrganisationCreate{Name: name, Status: models.OrganisationEnabled}, nil, nil
	}
}

// OrganisationPatch validates the organisation update body: name and status
// are both required, status must belong to the closed status set.
func OrganisationPatch(checks Checks) BodySchema {
	return func(ctx context.Context, body []byte) (any, Errors, error) {
		raw, errs := decodeBody(body)
		if errs != nil {
			return nil, errs, nil
		}
		errs = Errors{}
		rejectUnknown(raw, errs, "name", "status")

		name, nameOK := stringField(raw, errs, "name", organisationNameMaxLen)
		status, statusOK := intField(raw, errs, "status")
		if statusOK {
			statusOK = oneOf(errs, "status", status, models.OrganisationStatusValues())
		}

		if len(errs) > 0 {
			return nil, errs, nil
		}

		updates := models.OrganisationUpdate{}
		if nameOK {
			updates.Name = &name
		}
		if statusOK {
			s := models.OrganisationStatus(status)
			updates.Status = &s
		}
		return updates, nil, nil
	}
}
