// Copyright the bitlayout authors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package schema

import "fmt"

// ErrorKind classifies a schema-load failure.  All of these are fatal at
// load time per the error-handling design.
type ErrorKind uint8

const (
	// ErrDuplicateName indicates two nodes (anywhere in the tree) share a
	// name.
	ErrDuplicateName ErrorKind = iota
	// ErrUnknownReference indicates an analysis plan refers to a field or
	// group name that doesn't exist.
	ErrUnknownReference
	// ErrInvalidWidth indicates a bit width of 0 or greater than 64.
	ErrInvalidWidth
	// ErrEmptyGroup indicates a group whose computed width is less than 1.
	ErrEmptyGroup
	// ErrRootNotGroup indicates the descriptor's root is a leaf field.
	ErrRootNotGroup
	// ErrNestedStruct indicates a struct op nested inside another struct.
	ErrNestedStruct
	// ErrStructAtNonTopLevel indicates a Struct op used somewhere other
	// than the top level of a compare-group's Baseline/Comparisons.
	ErrStructAtNonTopLevel
)

// Error is a fatal schema-construction error.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("schema: %s", e.Msg)
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
