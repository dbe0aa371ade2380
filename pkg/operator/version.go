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

import "fmt"

// Version identifies a version of the mathematical language.  Versions differ
// only in which operators are compatible with each other.
type Version uint8

const (
	// V1 is the original version of the mathematical language.
	V1 Version = 1
	// V2 is the current version of the mathematical language.
	V2 Version = 2
)

// LATEST is the version used when none is given.
const LATEST = V2

// VERSIONS lists all known versions.
var VERSIONS = []Version{V1, V2}

func (v Version) String() string {
	return fmt.Sprintf("V%d", uint8(v))
}
