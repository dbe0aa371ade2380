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
package parser

import (
	"github.com/consensys/go-eventb/pkg/ast"
	"github.com/consensys/go-eventb/pkg/types"
)

// FromExpression converts an expression denoting a type (e.g. "ℙ(ℤ×S)") into
// that type.  Given sets are denoted by free identifiers, and extensions
// marked as type constructors denote parametric types.  This fails if the
// expression does not denote a type.
func (g *Grammar) FromExpression(e ast.Expression, f *types.Factory) (types.Type, bool) {
	switch e := e.(type) {
	case *ast.FreeIdentifier:
		return f.Given(e.Name), true
	case *ast.AtomicExpression:
		switch e.Tag() {
		case ast.INTEGER:
			return f.Integer(), true
		case ast.BOOL:
			return f.Boolean(), true
		}
	case *ast.UnaryExpression:
		if base, ok := g.FromExpression(e.Child, f); ok && e.Tag() == ast.POW {
			return f.PowerSet(base), true
		}
	case *ast.BinaryExpression:
		left, ok1 := g.FromExpression(e.Left, f)
		right, ok2 := g.FromExpression(e.Right, f)
		//
		switch {
		case !ok1 || !ok2:
			return nil, false
		case e.Tag() == ast.CPROD:
			return f.Product(left, right), true
		case e.Tag() == ast.REL:
			return f.Relation(left, right), true
		}
	case *ast.ExtendedExpression:
		return g.fromExtension(e, f)
	}
	//
	return nil, false
}

func (g *Grammar) fromExtension(e *ast.ExtendedExpression, f *types.Factory) (types.Type, bool) {
	if ext, ok := g.ExtensionOf(e.Tag()); !ok || !ext.Type {
		return nil, false
	}
	//
	params := make([]types.Type, len(e.Args))
	//
	for i, arg := range e.Args {
		expr, ok := arg.(ast.Expression)
		if !ok {
			return nil, false
		}
		//
		if params[i], ok = g.FromExpression(expr, f); !ok {
			return nil, false
		}
	}
	//
	return f.Parametric(e.Symbol, params...), true
}
