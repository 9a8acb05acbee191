// Copyright 2022 OrcaDB
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package oerr

import (
	"context"
	"fmt"
)

const (
	// Ok is not an error.
	Ok uint16 = 0

	// Group 1: internal errors
	ErrStart        uint16 = 20100
	ErrInternal     uint16 = 20101
	ErrNYI          uint16 = 20102
	ErrNotSupported uint16 = 20103

	// Group 2: invalid input
	ErrInvalidInput uint16 = 20300
	ErrBadConfig    uint16 = 20301

	// Group 3: unexpected state and io errors
	ErrInvalidState          uint16 = 20400
	ErrUnexpectedEOF         uint16 = 20401
	ErrFileNotFound          uint16 = 20402
	ErrShortWrite            uint16 = 20403
	ErrSizeNotMatch          uint16 = 20404
	ErrFunctionAlreadyExists uint16 = 20405
	ErrDropNonExistsFunction uint16 = 20406
	ErrCatalogNotReady       uint16 = 20407
	ErrBadImage              uint16 = 20408

	// ErrEnd, the max value of the error code space.
	ErrEnd uint16 = 65535
)

type errorMsgItem struct {
	errorMsgOrFormat string
}

var errorMsgRefer = map[uint16]errorMsgItem{
	ErrStart:        {"internal error: error code start"},
	ErrInternal:     {"internal error: %s"},
	ErrNYI:          {"%s is not yet implemented"},
	ErrNotSupported: {"not supported: %s"},

	ErrInvalidInput: {"invalid input: %s"},
	ErrBadConfig:    {"invalid configuration: %s"},

	ErrInvalidState:          {"invalid state %s"},
	ErrUnexpectedEOF:         {"unexpected end of file %s"},
	ErrFileNotFound:          {"file %s is not found"},
	ErrShortWrite:            {"short write %s"},
	ErrSizeNotMatch:          {"%s size does not match"},
	ErrFunctionAlreadyExists: {"function %s already exists"},
	ErrDropNonExistsFunction: {"function %s doesn't exist"},
	ErrCatalogNotReady:       {"catalog is not ready to serve reads"},
	ErrBadImage:              {"catalog image %s is malformed: %s"},
}

// Error is the single error type the engine surfaces.  Errors carry a
// stable uint16 code so that callers can branch on them without string
// matching and so they survive a wire crossing intact.
type Error struct {
	code    uint16
	message string
}

func newError(ctx context.Context, code uint16, args ...any) *Error {
	item, has := errorMsgRefer[code]
	if !has {
		panic(fmt.Sprintf("not exist error code: %d", code))
	}
	if len(args) == 0 {
		return &Error{code: code, message: item.errorMsgOrFormat}
	}
	return &Error{code: code, message: fmt.Sprintf(item.errorMsgOrFormat, args...)}
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) ErrorCode() uint16 {
	return e.code
}

func (e *Error) Is(err error) bool {
	oe, ok := err.(*Error)
	if !ok {
		return false
	}
	return oe.code == e.code
}

// IsErrorCode reports whether err is an oerr Error carrying code.
func IsErrorCode(err error, code uint16) bool {
	if oe, ok := err.(*Error); ok {
		return oe.code == code
	}
	return false
}

func NewInternalError(ctx context.Context, msg string, args ...any) *Error {
	return newError(ctx, ErrInternal, fmt.Sprintf(msg, args...))
}

func NewInternalErrorNoCtx(msg string, args ...any) *Error {
	return NewInternalError(Context(), msg, args...)
}

func NewNYI(ctx context.Context, msg string, args ...any) *Error {
	return newError(ctx, ErrNYI, fmt.Sprintf(msg, args...))
}

func NewNotSupported(ctx context.Context, msg string, args ...any) *Error {
	return newError(ctx, ErrNotSupported, fmt.Sprintf(msg, args...))
}

func NewInvalidInput(ctx context.Context, msg string, args ...any) *Error {
	return newError(ctx, ErrInvalidInput, fmt.Sprintf(msg, args...))
}

func NewInvalidInputNoCtx(msg string, args ...any) *Error {
	return NewInvalidInput(Context(), msg, args...)
}

func NewBadConfig(ctx context.Context, msg string, args ...any) *Error {
	return newError(ctx, ErrBadConfig, fmt.Sprintf(msg, args...))
}

func NewInvalidState(ctx context.Context, msg string, args ...any) *Error {
	return newError(ctx, ErrInvalidState, fmt.Sprintf(msg, args...))
}

func NewUnexpectedEOF(ctx context.Context, f string) *Error {
	return newError(ctx, ErrUnexpectedEOF, f)
}

func NewUnexpectedEOFNoCtx(f string) *Error {
	return NewUnexpectedEOF(Context(), f)
}

func NewFileNotFound(ctx context.Context, f string) *Error {
	return newError(ctx, ErrFileNotFound, f)
}

func NewShortWrite(ctx context.Context, f string) *Error {
	return newError(ctx, ErrShortWrite, f)
}

func NewShortWriteNoCtx(f string) *Error {
	return NewShortWrite(Context(), f)
}

func NewSizeNotMatch(ctx context.Context, f string) *Error {
	return newError(ctx, ErrSizeNotMatch, f)
}

func NewFunctionAlreadyExists(ctx context.Context, sig string) *Error {
	return newError(ctx, ErrFunctionAlreadyExists, sig)
}

func NewDropNonExistsFunction(ctx context.Context, sig string) *Error {
	return newError(ctx, ErrDropNonExistsFunction, sig)
}

func NewCatalogNotReady(ctx context.Context) *Error {
	return newError(ctx, ErrCatalogNotReady)
}

func NewBadImage(ctx context.Context, path string, msg string, args ...any) *Error {
	return newError(ctx, ErrBadImage, path, fmt.Sprintf(msg, args...))
}

// ConvertGoError converts a plain go error into an oerr Error.  Errors
// that already are oerr errors pass through unchanged.
func ConvertGoError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*Error); ok {
		return err
	}
	return NewInternalError(ctx, "convert go error to orca error %v", err)
}

// Context returns the default background context used by the NoCtx
// constructors.
func Context() context.Context {
	return context.Background()
}
