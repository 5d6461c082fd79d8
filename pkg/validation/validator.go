package validation

import (
	"errors"
	"fmt"

	"github.com/dd0wney/netmatrix/pkg/storage"
	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterValidation("nodeid", func(fl validator.FieldLevel) bool {
		return storage.ValidNodeID(fl.Field().String())
	})
}

// NodeRequest represents a request to create a node
type NodeRequest struct {
	ID        string `yaml:"id" validate:"nodeid"`
	Clearance int    `yaml:"clearance"`
}

// EdgeRequest represents a request to create an edge
type EdgeRequest struct {
	A         string `yaml:"a"`
	B         string `yaml:"b" validate:"nefield=A"`
	Latency   int64  `yaml:"latency" validate:"gte=0"`
	Bandwidth int64  `yaml:"bandwidth" validate:"gte=0"`
	Firewall  int    `yaml:"firewall"`
}

// PairRequest names an existing edge by its endpoints, for sealing and
// bridge tests.
type PairRequest struct {
	A string
	B string `validate:"nefield=A"`
}

// RouteRequest represents a route search. Source and destination may be
// the same node.
type RouteRequest struct {
	Source       string
	Destination  string
	MinBandwidth int64
	HopPenalty   int64 `validate:"gte=0"`
}

// ValidationError reports the first field that failed validation. It
// unwraps to the storage sentinel matching the failed rule.
type ValidationError struct {
	Field string
	Tag   string
	Param string
	Value any
	Cause error
}

func (e *ValidationError) Error() string {
	switch e.Tag {
	case "nodeid":
		return fmt.Sprintf("%s: %q is not a valid node ID (A-Z, 0-9, _)", e.Field, e.Value)
	case "nefield":
		return fmt.Sprintf("%s: must differ from %s", e.Field, e.Param)
	case "gte":
		return fmt.Sprintf("%s: must be at least %s, got %v", e.Field, e.Param, e.Value)
	case "required":
		return fmt.Sprintf("%s: field is required", e.Field)
	case "min":
		return fmt.Sprintf("%s: must be at least %s", e.Field, e.Param)
	case "oneof":
		return fmt.Sprintf("%s: must be one of [%s], got %v", e.Field, e.Param, e.Value)
	}
	return fmt.Sprintf("%s: validation failed (%s)", e.Field, e.Tag)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// ValidateNodeRequest validates a node creation request
func ValidateNodeRequest(req *NodeRequest) error {
	if req == nil {
		return errors.New("node request cannot be nil")
	}
	return Struct(req)
}

// ValidateEdgeRequest validates an edge creation request
func ValidateEdgeRequest(req *EdgeRequest) error {
	if req == nil {
		return errors.New("edge request cannot be nil")
	}
	return Struct(req)
}

// ValidatePairRequest validates an edge lookup by endpoints
func ValidatePairRequest(req *PairRequest) error {
	if req == nil {
		return errors.New("pair request cannot be nil")
	}
	return Struct(req)
}

// ValidateRouteRequest validates a route search request
func ValidateRouteRequest(req *RouteRequest) error {
	if req == nil {
		return errors.New("route request cannot be nil")
	}
	return Struct(req)
}

// Struct validates any tagged struct with the shared validator.
func Struct(v any) error {
	return formatValidationError(validate.Struct(v))
}

// formatValidationError converts validator errors into a ValidationError
// for the first failing field
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return err
	}

	e := validationErrs[0]
	return &ValidationError{
		Field: e.Namespace(),
		Tag:   e.Tag(),
		Param: e.Param(),
		Value: e.Value(),
		Cause: causeFor(e.Tag()),
	}
}

func causeFor(tag string) error {
	switch tag {
	case "nodeid":
		return storage.ErrInvalidID
	case "nefield":
		return storage.ErrSelfLoop
	}
	return storage.ErrInvalidArgument
}
