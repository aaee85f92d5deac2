/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package multi holds errors collected from operations that fan out to several
// nodes, such as closing every commit source of a connection or installing
// chaincode on every peer of an organization.
package multi

import (
	"strings"
)

const header = "Multiple errors occurred:"

// Errors is used to represent multiple errors
type Errors []error

// New Errors object with the given errors. Only non-nil errors are added.
// A single error is returned as-is.
func New(errs ...error) error {
	var m Errors
	for _, err := range errs {
		m = appendFlat(m, err)
	}
	return m.ToError()
}

// Append err to errs. If errs is not an Errors value, one is created.
// Nested Errors values are flattened.
func Append(errs error, err error) error {
	m, ok := errs.(Errors)
	if !ok {
		return New(errs, err)
	}
	return appendFlat(m, err).ToError()
}

func appendFlat(m Errors, err error) Errors {
	if err == nil {
		return m
	}
	if nested, ok := err.(Errors); ok {
		return append(m, nested...)
	}
	return append(m, err)
}

// ToError returns nil when empty, the single error when only one is
// present, and errs otherwise.
func (errs Errors) ToError() error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return errs
	}
}

// Messages returns the message of every contained error in order.
func (errs Errors) Messages() []string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return msgs
}

// Error implements the error interface
func (errs Errors) Error() string {
	switch len(errs) {
	case 0:
		return ""
	case 1:
		return errs[0].Error()
	default:
		return strings.Join(append([]string{header}, errs.Messages()...), " - ")
	}
}
