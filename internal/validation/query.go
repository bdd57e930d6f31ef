package validation

import (
	"net/url"
	"strconv"

	"github.com/expomadeinworld/directory-service/internal/models"
)

const (
	defaultPage = 0
	defaultSize = 10
	minSize     = 1
	maxSize     = 1000
)

// ParseListQuery validates the collection query parameters, applying the
// declared defaults for missing optional fields. Unknown query parameters
// are rejected the same way unknown body fields are.
func ParseListQuery(values url.Values) (models.ListParams, Errors) {
	errs := Errors{}
	for name := range values {
		switch name {
		case "search", "sorting", "page", "size":
		default:
			errs.add(name, msgUnknownField)
		}
	}

	params := models.ListParams{
		Search:  values["search"],
		Sorting: values.Get("sorting"),
		Page:    defaultPage,
		Size:    defaultSize,
	}

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			errs.add("page", msgNotInteger)
		case page < 0:
			errs.add("page", "Must be greater than or equal to 0.")
		default:
			params.Page = page
		}
	}

	if raw := values.Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			errs.add("size", msgNotInteger)
		case size < minSize || size > maxSize:
			errs.add("size", "Must be greater than or equal to 1 and less than or equal to 1000.")
		default:
			params.Size = size
		}
	}

	if len(errs) > 0 {
		return models.ListParams{}, errs
	}
	return params, nil
}
