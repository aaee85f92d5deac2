/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package lifecycle

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"
	"github.com/pkg/errors"
)

const (
	gateAnd   = "And"
	gateOr    = "Or"
	gateOutOf = "OutOf"
)

var (
	principalRegex = regexp.MustCompile(`^([[:alnum:].-]+)[.](admin|member|client|peer)$`)
	unknownToken   = regexp.MustCompile(`^No parameter '([^']+)' found[.]$`)
)

// dslNode is an evaluated policy expression. Leaves hold a principal; inner
// nodes require n of their children.
type dslNode struct {
	principal *Role
	n         int
	children  []*dslNode
}

func outOf(args ...interface{}) (interface{}, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("expected at least two arguments to OutOf, given %d", len(args))
	}

	var n int
	switch v := args[0].(type) {
	case float64:
		n = int(v)
	case string:
		i, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("unexpected OutOf threshold '%s'", v)
		}
		n = i
	default:
		return nil, fmt.Errorf("unexpected type %s", reflect.TypeOf(args[0]))
	}

	node := &dslNode{n: n}
	for _, arg := range args[1:] {
		child, err := toNode(arg)
		if err != nil {
			return nil, err
		}
		node.children = append(node.children, child)
	}
	return node, nil
}

func and(args ...interface{}) (interface{}, error) {
	return outOf(append([]interface{}{float64(len(args))}, args...)...)
}

func or(args ...interface{}) (interface{}, error) {
	return outOf(append([]interface{}{float64(1)}, args...)...)
}

func toNode(arg interface{}) (*dslNode, error) {
	switch t := arg.(type) {
	case *dslNode:
		return t, nil
	case string:
		m := principalRegex.FindStringSubmatch(t)
		if m == nil {
			return nil, fmt.Errorf("error parsing principal %s", t)
		}
		return &dslNode{principal: &Role{MSPID: m[1], Name: m[2]}}, nil
	default:
		return nil, fmt.Errorf("unrecognized type, expected a principal or a policy, got %s", reflect.TypeOf(arg))
	}
}

func gates() map[string]govaluate.ExpressionFunction {
	functions := make(map[string]govaluate.ExpressionFunction)
	for name, fn := range map[string]govaluate.ExpressionFunction{gateAnd: and, gateOr: or, gateOutOf: outOf} {
		functions[name] = fn
		functions[strings.ToLower(name)] = fn
		functions[strings.ToUpper(name)] = fn
	}
	return functions
}

// FromExpression parses a policy expression such as
//
//	OR('Org1MSP.member', AND('Org2MSP.peer', 'Org3MSP.admin'))
//	OutOf(2, 'Org1MSP.member', 'Org2MSP.member', 'Org3MSP.member')
//
// Repeated principals share one identity.
func FromExpression(expr string) (*Policy, error) {
	exp, err := govaluate.NewEvaluableExpressionWithFunctions(expr, gates())
	if err != nil {
		return nil, errors.Wrapf(err, "invalid policy expression '%s'", expr)
	}

	res, err := exp.Evaluate(map[string]interface{}{})
	if err != nil {
		if m := unknownToken.FindStringSubmatch(err.Error()); m != nil {
			return nil, errors.Errorf("unrecognized token '%s' in policy string", m[1])
		}
		return nil, err
	}

	root, err := toNode(res)
	if err != nil {
		return nil, errors.Errorf("invalid policy string '%s'", expr)
	}

	policy := &Policy{}
	policy.Policy = policy.rule(root, make(map[Role]int))
	return policy, nil
}

func (p *Policy) rule(node *dslNode, index map[Role]int) *Rule {
	if node.principal != nil {
		i, ok := index[*node.principal]
		if !ok {
			i = len(p.Identities)
			index[*node.principal] = i
			p.Identities = append(p.Identities, Identity{Role: *node.principal})
		}
		return &Rule{SignedBy: &i}
	}

	rule := &Rule{N: node.n}
	for _, child := range node.children {
		rule.Rules = append(rule.Rules, p.rule(child, index))
	}
	return rule
}
