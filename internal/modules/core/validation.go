package core

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"regexp"

	"github.com/eskrenkovic/mediator-go"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
)

type Validator interface {
	Validate() error
}

var _ mediator.PipelineBehavior = (*RequestValidationBehavior)(nil)

type RequestValidationBehavior struct{}

func (b *RequestValidationBehavior) Handle(
	ctx context.Context,
	request interface{},
	next mediator.RequestHandlerFunc,
) (interface{}, error) {
	if request, ok := request.(Validator); ok {
		if err := request.Validate(); err != nil {
			return nil, NewCommandError(http.StatusBadRequest, err, WithReason("request validation failed"))
		}
	}

	return next(ctx, request)
}

// NotNilUUID rejects uuid.Nil, which validation.Required accepts since the
// array always has a length.
var NotNilUUID = validation.By(func(value interface{}) error {
	id, ok := value.(uuid.UUID)
	if !ok {
		return errors.New("must be a uuid")
	}

	if id == uuid.Nil {
		return errors.New("cannot be blank")
	}

	return nil
})

// SingleLine rejects line breaks in values that end up in message headers.
var SingleLine = validation.Match(regexp.MustCompile(`^[^\r\n]*$`)).Error("must not contain line breaks")

// ValidEnum checks values exposing Valid() bool. The zero value passes; pair
// it with validation.Required when the field is mandatory.
var ValidEnum = validation.By(func(value interface{}) error {
	if rv := reflect.ValueOf(value); !rv.IsValid() || rv.IsZero() {
		return nil
	}

	enum, ok := value.(interface{ Valid() bool })
	if !ok {
		return errors.New("must be an enumerated value")
	}

	if !enum.Valid() {
		return errors.New("must be a valid value")
	}

	return nil
})

// WhenSet applies rules to the new value of an Update field and skips the
// field when it is left unchanged.
func WhenSet[T any](rules ...validation.Rule) validation.Rule {
	return validation.By(func(value interface{}) error {
		update, ok := value.(Update[T])
		if !ok {
			return errors.New("must be a partial update")
		}

		v, set := update.Value()
		if !set {
			return nil
		}

		return validation.Validate(v, rules...)
	})
}

func requestTypeName(request interface{}) string {
	t := reflect.TypeOf(request)
	if t == nil {
		return ""
	}
	return t.String()
}
