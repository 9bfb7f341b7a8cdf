// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package item

import (
	"errors"

	"github.com/samber/oops"
)

// Error codes attached to errors returned by this package.
const (
	CodeInvalidArgument      = "INVALID_ARGUMENT"
	CodeIndexOutOfRange      = "INDEX_OUT_OF_RANGE"
	CodeUnsupportedOperation = "UNSUPPORTED_OPERATION"
	CodeNotFound             = "NOT_FOUND"
)

// Sentinel errors. Returned errors wrap one of these, so errors.Is works
// alongside oops codes.
var (
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrIndexOutOfRange      = errors.New("index out of range")
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrNotFound             = errors.New("not found")
)

func invalidArgument(field string) oops.OopsErrorBuilder {
	return oops.In("item").Code(CodeInvalidArgument).With("field", field)
}

func indexOutOfRange(index, length int) oops.OopsErrorBuilder {
	return oops.In("item").Code(CodeIndexOutOfRange).With("index", index).With("length", length)
}

func unsupported(kind string) oops.OopsErrorBuilder {
	return oops.In("item").Code(CodeUnsupportedOperation).With("kind", kind)
}

func notFound() oops.OopsErrorBuilder {
	return oops.In("item").Code(CodeNotFound)
}
