// Copyright 2016 ETH Zurich
// Copyright 2019 ETH Zurich, Anapaya Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package serrors provides errors with key/value context. Errors created with
// serrors support errors.Is and errors.As: for any returned err,
// errors.Is(err, err) is true, and for any err built from a cause or a base
// error x, errors.Is(err, x) is true.
//
// The planner is a pure computation, so unlike the network services this
// package was first written for, no stack traces are recorded. The context
// pairs carry the offending field and value instead.
package serrors

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxPair struct {
	Key   string
	Value any
}

// errorInfo is shared by basicError and joinedError. Both are always handed
// out as pointers: the context slice makes their values incomparable, and
// errors.Is relies on comparing the target.
type errorInfo struct {
	ctx   []ctxPair
	cause error
}

func mkErrorInfo(cause error, errCtx ...any) errorInfo {
	np := len(errCtx) / 2
	ctx := make([]ctxPair, np)
	for i := 0; i < np; i++ {
		ctx[i] = ctxPair{Key: fmt.Sprint(errCtx[2*i]), Value: errCtx[2*i+1]}
	}
	sort.SliceStable(ctx, func(a, b int) bool {
		return ctx[a].Key < ctx[b].Key
	})
	return errorInfo{cause: cause, ctx: ctx}
}

func (e errorInfo) error() string {
	var buf bytes.Buffer
	if len(e.ctx) != 0 {
		fmt.Fprint(&buf, " ")
		encodeContext(&buf, e.ctx)
	}
	if e.cause != nil {
		fmt.Fprintf(&buf, ": %s", e.cause)
	}
	return buf.String()
}

func (e errorInfo) marshalLogObject(enc zapcore.ObjectEncoder) error {
	if e.cause != nil {
		if m, ok := e.cause.(zapcore.ObjectMarshaler); ok {
			if err := enc.AddObject("cause", m); err != nil {
				return err
			}
		} else {
			enc.AddString("cause", e.cause.Error())
		}
	}
	for _, pair := range e.ctx {
		zap.Any(pair.Key, pair.Value).AddTo(enc)
	}
	return nil
}

// Context returns the value stored under key, if any.
func (e errorInfo) Context(key string) (any, bool) {
	for _, p := range e.ctx {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// basicError carries a plain message.
type basicError struct {
	errorInfo
	msg string
}

func (e basicError) Error() string {
	return e.msg + e.errorInfo.error()
}

func (e basicError) Unwrap() error {
	return e.cause
}

// MarshalLogObject implements zapcore.ObjectMarshaler to have a nicer log
// representation.
func (e basicError) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("msg", e.msg)
	return e.errorInfo.marshalLogObject(enc)
}

// New creates a new error with the given message and context. Two errors with
// the same message are never equal.
func New(msg string, errCtx ...any) error {
	return &basicError{
		errorInfo: mkErrorInfo(nil, errCtx...),
		msg:       msg,
	}
}

// Wrap returns an error that associates msg with the given cause (unless nil)
// and the given context. errors.Is(err, cause) holds for the result.
func Wrap(msg string, cause error, errCtx ...any) error {
	return &basicError{
		errorInfo: mkErrorInfo(cause, errCtx...),
		msg:       msg,
	}
}

// WrapNoStack is an alias of Wrap. Errors of this package never carry stack
// traces.
func WrapNoStack(msg string, cause error, errCtx ...any) error {
	return Wrap(msg, cause, errCtx...)
}

// joinedError aggregates context around a base error, typically a sentinel.
type joinedError struct {
	errorInfo
	error error
}

func (e joinedError) Error() string {
	return e.error.Error() + e.errorInfo.error()
}

func (e joinedError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.error}
	}
	return []error{e.error, e.cause}
}

// MarshalLogObject implements zapcore.ObjectMarshaler. The base error is not
// dissected.
func (e joinedError) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("msg", e.error.Error())
	return e.errorInfo.marshalLogObject(enc)
}

// Join returns an error that associates err with the given cause (unless nil)
// and the given context. errors.Is holds for both err and cause. Join of two
// nil errors is nil.
func Join(err, cause error, errCtx ...any) error {
	if err == nil && cause == nil {
		return nil
	}
	if err == nil {
		return Wrap("error", cause, errCtx...)
	}
	return &joinedError{
		errorInfo: mkErrorInfo(cause, errCtx...),
		error:     err,
	}
}

// JoinNoStack is an alias of Join.
func JoinNoStack(err, cause error, errCtx ...any) error {
	return Join(err, cause, errCtx...)
}

// ContextValue returns the context value stored under key in the outermost
// serrors error of err's chain.
func ContextValue(err error, key string) (any, bool) {
	for err != nil {
		if c, ok := err.(interface{ Context(string) (any, bool) }); ok {
			if v, ok := c.Context(key); ok {
				return v, true
			}
		}
		switch u := err.(type) {
		case interface{ Unwrap() error }:
			err = u.Unwrap()
		case interface{ Unwrap() []error }:
			errs := u.Unwrap()
			if len(errs) < 2 {
				return nil, false
			}
			err = errs[1]
		default:
			return nil, false
		}
	}
	return nil, false
}

// List is a slice of errors.
type List []error

// Error implements the error interface.
func (e List) Error() string {
	s := make([]string, 0, len(e))
	for _, err := range e {
		s = append(s, err.Error())
	}
	return fmt.Sprintf("[ %s ]", strings.Join(s, "; "))
}

// Unwrap exposes the list members to errors.Is and errors.As.
func (e List) Unwrap() []error {
	return e
}

// ToError returns the object as error interface implementation.
func (e List) ToError() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// MarshalLogArray implements zapcore.ArrayMarshaller for nicer logging format
// of error lists.
func (e List) MarshalLogArray(ae zapcore.ArrayEncoder) error {
	for _, err := range e {
		if m, ok := err.(zapcore.ObjectMarshaler); ok {
			if err := ae.AppendObject(m); err != nil {
				return err
			}
		} else {
			ae.AppendString(err.Error())
		}
	}
	return nil
}

func encodeContext(buf io.Writer, pairs []ctxPair) {
	fmt.Fprint(buf, "{")
	for i, p := range pairs {
		fmt.Fprintf(buf, "%s=%v", p.Key, p.Value)
		if i != len(pairs)-1 {
			fmt.Fprint(buf, "; ")
		}
	}
	fmt.Fprint(buf, "}")
}
