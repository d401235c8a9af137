package core

import (
	"fmt"
	"net/http"
	"strconv"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// QueryOptions is the paging and ordering requested by a caller. Handlers
// receive it fully populated; defaults are applied where the request is read.
type QueryOptions struct {
	Limit  int
	Offset int
	Order  SortOrder
}

func DefaultQueryOptions() QueryOptions {
	return QueryOptions{
		Limit:  DefaultLimit,
		Offset: 0,
		Order:  SortDescending,
	}
}

func (o QueryOptions) Validate() error {
	if o.Limit < 1 || o.Limit > MaxLimit {
		return fmt.Errorf("invalid limit: '%d'", o.Limit)
	}

	if o.Offset < 0 {
		return fmt.Errorf("invalid offset: '%d'", o.Offset)
	}

	if o.Order != SortAscending && o.Order != SortDescending {
		return fmt.Errorf("invalid order: '%s'", o.Order)
	}

	return nil
}

// SQLOrder is safe to interpolate into a statement.
func (o QueryOptions) SQLOrder() string {
	if o.Order == SortAscending {
		return "ASC"
	}
	return "DESC"
}

func QueryOptionsFromRequest(r *http.Request) (QueryOptions, error) {
	opts := DefaultQueryOptions()
	query := r.URL.Query()

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return opts, fmt.Errorf("invalid format for query param 'limit': %w", ErrInvalidInput)
		}
		opts.Limit = limit
	}

	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return opts, fmt.Errorf("invalid format for query param 'offset': %w", ErrInvalidInput)
		}
		opts.Offset = offset
	}

	if raw := query.Get("order"); raw != "" {
		opts.Order = SortOrder(raw)
	}

	if err := opts.Validate(); err != nil {
		return opts, fmt.Errorf("%s: %w", err.Error(), ErrInvalidInput)
	}

	return opts, nil
}
