// Copyright Consensys Software Inc.
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
package operator

import (
	"fmt"
	"strings"
)

// OverrideError signals an attempt to bind a key (e.g. a kind, a tag or an
// operator identifier) which is already bound to a different value.  This
// always indicates a mistake by the author of a grammar (or extension).
type OverrideError struct {
	// What is being bound (e.g. "group", "nud", "tag").
	Table string
	// Key being rebound
	Key any
	// Existing binding
	Existing any
	// Rejected binding
	Rejected any
}

func (e *OverrideError) Error() string {
	return fmt.Sprintf("cannot override %s binding for %v (bound to %v, not %v)", e.Table, e.Key, e.Existing,
		e.Rejected)
}

// FrozenError signals an attempt to modify a table after it was frozen.
type FrozenError struct {
	Table string
	Key   any
}

func (e *FrozenError) Error() string {
	return fmt.Sprintf("cannot bind %v in frozen %s table", e.Key, e.Table)
}

// CycleError signals that adding a priority would create a cycle.  The path
// records the cycle which would have been closed.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("priority cycle detected: %s", strings.Join(e.Path, " < "))
}

// GroupMismatchError signals that a relation between two operators was
// requested, but they belong to different groups.
type GroupMismatchError struct {
	Left, Right           string
	LeftGroup, RightGroup string
}

func (e *GroupMismatchError) Error() string {
	return fmt.Sprintf("operators %s (group %s) and %s (group %s) must belong to the same group", e.Left,
		e.LeftGroup, e.Right, e.RightGroup)
}

// UnknownOperatorError signals reference to an operator identifier which has
// not been registered.
type UnknownOperatorError struct {
	ID string
}

func (e *UnknownOperatorError) Error() string {
	return fmt.Sprintf("unknown operator \"%s\"", e.ID)
}
