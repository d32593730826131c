package iogeocode

import (
	"fmt"
	"runtime"

	"github.com/bsldata/bslmap/pkg/errcode"
	"github.com/gnames/gn"
)

// InputError creates an error for an unreadable institutions list.
func InputError(path string, err error) error {
	msg := "Cannot read institutions list <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.GeocodeInputError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read institutions: %w",
			fn, err),
	}
}

// RequestError creates an error for a failed geocoding lookup.
func RequestError(name string, err error) error {
	msg := "Geocoding request failed for <em>%s</em>"
	vars := []any{name}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.GeocodeRequestError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: geocode %q: %w", fn, name, err),
	}
}

// OutputError creates an error for a gazetteer table that cannot be
// written.
func OutputError(path string, err error) error {
	msg := "Cannot write gazetteer table <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.GeocodeOutputError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot write gazetteer: %w", fn, err),
	}
}
