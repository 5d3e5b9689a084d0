package resolver

import (
	"strings"

	"github.com/agentstation/tallysheet/pkg/authority"
	"github.com/agentstation/tallysheet/pkg/errors"
	"github.com/agentstation/tallysheet/pkg/index"
)

// options configures a Resolver.
type options struct {
	authorities  authority.Authority
	tracking     bool
	ratingFields []string
}

func defaultOptions() *options {
	return &options{
		authorities:  authority.New(),
		tracking:     false,
		ratingFields: append([]string{}, index.DefaultRatingFields...),
	}
}

// Option is a function that configures a Resolver.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// newOptions returns resolver options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithAuthority sets the source priority used for names and ratings.
func WithAuthority(authorities authority.Authority) Option {
	return func(o *options) error {
		if authorities == nil {
			return &errors.ValidationError{
				Field:   "authorities",
				Message: "cannot be nil",
			}
		}
		o.authorities = authorities
		return nil
	}
}

// WithProvenance enables field-level tracking.
func WithProvenance(enabled bool) Option {
	return func(o *options) error {
		o.tracking = enabled
		return nil
	}
}

// WithRatingFields sets the auxiliary identifier fields tried, in order,
// when keying the rating index.
func WithRatingFields(fields ...string) Option {
	return func(o *options) error {
		if len(fields) == 0 {
			return &errors.ValidationError{
				Field:   "rating_fields",
				Message: "at least one field is required",
			}
		}
		cleaned := make([]string, 0, len(fields))
		for _, f := range fields {
			f = strings.TrimSpace(f)
			if f == "" {
				return &errors.ValidationError{
					Field:   "rating_fields",
					Value:   fields,
					Message: "field names cannot be blank",
				}
			}
			cleaned = append(cleaned, f)
		}
		o.ratingFields = cleaned
		return nil
	}
}
