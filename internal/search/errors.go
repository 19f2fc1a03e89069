package search

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingField is returned by GetField when the named field is absent.
var ErrMissingField = errors.New("search: missing field")

// SchemaError is a single validation failure while deserializing a search
// expression: where it happened, what was expected and what arrived.
type SchemaError struct {
	Path     string // JSON path of the offending field, e.g. "body.children[0].company_id"
	Expected string
	Got      any
}

func (e *SchemaError) Error() string {
	if e.Got == nil {
		return fmt.Sprintf("%s: expected %s", e.Path, e.Expected)
	}
	return fmt.Sprintf("%s: expected %s, got %v", e.Path, e.Expected, e.Got)
}

// SchemaErrors collects every validation failure found in a payload, so
// clients see all problems at once instead of fixing them one at a time.
type SchemaErrors []*SchemaError

func (es SchemaErrors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// ShapeError reports a malformed raw tree handed to the extractor: a node or
// a children element that is not a JSON object.
type ShapeError struct {
	Path string
	Got  any
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: expected an object, got %T", e.Path, e.Got)
}

// ContractError means a validated tree referenced an entity or field the
// registry doesn't know. That is a wiring bug, not bad client input; callers
// surface it as an internal error and log the offending subtree.
type ContractError struct {
	Tag  string
	Node Node
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("search: entity %q is not registered", e.Tag)
}
