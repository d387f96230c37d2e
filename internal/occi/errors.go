// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package occi

import (
	"errors"
	"fmt"
)

// ErrNoSuchAttribute is returned when an attribute name is not declared at
// all for an entity. Compare AttributeNotSetError, which is returned for
// attributes that are declared, but do not have a value.
var ErrNoSuchAttribute = errors.New("no such attribute")

// TypeMismatchError is returned when a value does not satisfy the declared
// type of an attribute.
type TypeMismatchError struct {
	AttributeName string
	Expected      AttributeType
	Value         any
}

// Error implements the builtin/error interface.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("attribute %s expects a value of type %s, but got %T", e.AttributeName, e.Expected, e.Value)
}

// ImmutableAttributeError is returned when a write is attempted on an
// immutable attribute.
type ImmutableAttributeError struct {
	AttributeName string
}

// Error implements the builtin/error interface.
func (e *ImmutableAttributeError) Error() string {
	return fmt.Sprintf("attribute %s is immutable", e.AttributeName)
}

// AttributeNotSetError is returned when the value of a declared attribute is
// read while it does not have a value.
type AttributeNotSetError struct {
	AttributeName string
}

// Error implements the builtin/error interface.
func (e *AttributeNotSetError) Error() string {
	return fmt.Sprintf("attribute %s is not set", e.AttributeName)
}

// SchemaConflictError is returned when a Kind or Entity schema would contain
// two declarations of the same attribute name with different types.
type SchemaConflictError struct {
	AttributeName string
	Existing      AttributeType
	Conflicting   AttributeType
}

// Error implements the builtin/error interface.
func (e *SchemaConflictError) Error() string {
	return fmt.Sprintf("attribute %s is already declared with type %s, cannot redeclare with type %s",
		e.AttributeName, e.Existing, e.Conflicting)
}

// InvalidCategoryError is returned by the Category constructors when the
// given definition is malformed.
type InvalidCategoryError struct {
	TypeID string
	Reason string
}

// Error implements the builtin/error interface.
func (e *InvalidCategoryError) Error() string {
	return fmt.Sprintf("invalid category %q: %s", e.TypeID, e.Reason)
}
