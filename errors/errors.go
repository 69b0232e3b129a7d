/*
Package errors provides the error package for the tabular core. It wraps all
errors raised by tables, stages and ingestion. No error should be generated
that doesn't come from this package. This borrows heavily from the Upspin
errors paper written by Rob Pike. See:
https://commandcenter.blogspot.com/2017/12/error-handling-in-upspin.html
Key differences are that we support wrapped errors and the 1.13 Unwrap/Is/As
additions to the go stdlib errors package and this is tailored for tabular
pipelines and not Upspin.

Usage is simply to pass an Op, a Kind, and either a standard error to be
wrapped or a string that will become a string error.
*/
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Separator is the string used to separate nested errors. By
// default, to make errors easier on the eye, nested errors are
// indented on a new line. A caller may instead choose to keep each
// error on a single line by modifying the separator string, perhaps
// to ":: ".
var Separator = ":\n\t"

// Op field denotes the operation being performed.
type Op uint16

//go:generate stringer -type Op
const (
	OpUnknown   Op = 0  // OpUnknown indicates that the operation that caused the problem is unknown.
	OpTable     Op = 1  // OpTable indicates table construction or direct row/column access.
	OpFilter    Op = 2  // OpFilter indicates a Filter stage.
	OpSelect    Op = 3  // OpSelect indicates a Select stage.
	OpGroupBy   Op = 4  // OpGroupBy indicates a GroupBy stage.
	OpAggregate Op = 5  // OpAggregate indicates an Aggregate stage.
	OpDerive    Op = 6  // OpDerive indicates a Derive stage.
	OpOrderBy   Op = 7  // OpOrderBy indicates an OrderBy stage.
	OpIngest    Op = 8  // OpIngest indicates delimited-text loading.
	OpPipeline  Op = 9  // OpPipeline indicates a pipeline Run() call.
)

// Kind field classifies the error as one of a set of standard conditions.
type Kind uint16

//go:generate stringer -type Kind
const (
	KOther                  Kind = 0 // Other indicates the error kind was not defined.
	KShapeMismatch          Kind = 1 // Columns of unequal length, or a record with the wrong field count.
	KUnknownColumn          Kind = 2 // Reference to a column name not present in the table.
	KIndexOutOfRange        Kind = 3 // Row or column index beyond table bounds.
	KUnsupportedAggregation Kind = 4 // The requested aggregate function is not registered.
	KDuplicateColumn        Kind = 5 // A column name appears more than once.
	KConversion             Kind = 6 // A value did not match the column's declared type.
	KBadFormat              Kind = 7 // Input text could not be parsed as a table.
	KClientArgs             Kind = 8 // The caller supplied some type of arg(s) that were invalid.
	KCancelled              Kind = 9 // The operation was cancelled via its context.
	KIO                     Kind = 10 // External I/O error while reading or writing.
)

// Error is a core error for the tabular package.
type Error struct {
	// Op is the operation that was being performed.
	Op Op
	// Kind is the error code we identify the error as.
	Kind Kind
	// Err is the wrapped internal error message. This may be of any error
	// type and may also wrap errors.
	Err error

	inner *Error
}

// Unwrap implements "interface {Unwrap() error}" as defined internally by the go stdlib errors package.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	if e.inner == nil {
		return e.Err
	}
	return e.inner
}

// pad appends str to the buffer if the buffer already has some content.
func pad(b *strings.Builder, str string) {
	if b.Len() == 0 {
		return
	}
	b.WriteString(str)
}

func (e *Error) Error() string {
	b := new(strings.Builder)
	if e.Op != OpUnknown {
		pad(b, ": ")
		b.WriteString(fmt.Sprintf("Op(%s)", e.Op.String()))
	}
	if e.Kind != KOther {
		pad(b, ": ")
		b.WriteString(fmt.Sprintf("Kind(%s)", e.Kind.String()))
	}

	if e.Err != nil {
		pad(b, ": ")
		b.WriteString(e.Err.Error())
	}
	var inner = e.inner
	for {
		if inner == nil {
			break
		}
		pad(b, Separator)
		b.WriteString(inner.Err.Error())
		inner = inner.inner
	}

	if b.Len() == 0 {
		return "no error"
	}
	return b.String()
}

// E constructs an Error. You may pass in an Op, Kind and error. This will strip an *Error if you
// pass it of its Kind and Op and put it in here. It will wrap a non-*Error implementation of error.
// If you want to wrap the *Error in an *Error, use W(). If you pass a nil error, it panics.
func E(o Op, k Kind, err error) error {
	if err == nil {
		panic("cannot pass a nil error")
	}
	return e(o, k, err)
}

// ES constructs an Error. You may pass in an Op, Kind, string and args to the string (like fmt.Sprintf).
// If the result of strings.TrimSpace(s+args) == "", it panics.
func ES(o Op, k Kind, s string, args ...interface{}) error {
	str := fmt.Sprintf(s, args...)
	if strings.TrimSpace(str) == "" {
		panic("errors.ES() cannot have an empty string error")
	}
	return e(o, k, str)
}

// e constructs an Error. You may pass in an Op, Kind, string or error. This will strip an *Error if
// you pass it of its Kind and Op and put it in here. It will wrap a non-*Error implementation of
// error. If you want to wrap the *Error in an *Error, use W().
func e(args ...interface{}) error {
	if len(args) == 0 {
		panic("call to errors.E with no arguments")
	}
	e := &Error{}

	for _, arg := range args {
		switch arg := arg.(type) {
		case Op:
			e.Op = arg
		case string:
			e.Err = errors.New(arg)
		case Kind:
			e.Kind = arg
		case *Error:
			// Make a copy
			copy := *arg
			e.Err = copy.Err
		case error:
			e.Err = arg
		default:
			return fmt.Errorf("unknown type %T, value %v in error call", arg, arg)
		}
	}

	return e
}

// W wraps error outer around inner. Both must be of type *Error or this will panic.
func W(inner error, outer error) error {
	o, ok := outer.(*Error)
	if !ok {
		panic("W() got an outer error that was not of type *Error")
	}
	i, ok := inner.(*Error)
	if !ok {
		panic("W() got an inner error that was not of type *Error")
	}

	o.inner = i
	return o
}

// GetKind extracts the Kind from an error. Errors that did not come from this
// package report KOther.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KOther
}

// GetOp extracts the Op from an error. Errors that did not come from this
// package report OpUnknown.
func GetOp(err error) Op {
	var e *Error
	if errors.As(err, &e) {
		return e.Op
	}
	return OpUnknown
}
