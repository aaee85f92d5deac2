/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package lifecycle

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"regexp"
	"strconv"
	"strings"

	"github.com/golang/protobuf/proto"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/errors/status"
	"github.com/hyperledger-archives/composer-sub009/pkg/util/pathvar"
	"github.com/hyperledger/fabric-protos-go/common"
	"github.com/hyperledger/fabric-protos-go/msp"
	"github.com/pkg/errors"
)

// Policy is an endorsement policy in the form used by connection profiles and
// the Node SDK:
//
//	{
//	  "identities": [{"role": {"name": "member", "mspId": "Org1MSP"}}],
//	  "policy": {"1-of": [{"signed-by": 0}]}
//	}
type Policy struct {
	Identities []Identity `json:"identities"`
	Policy     *Rule      `json:"policy"`
}

// Identity is a policy principal
type Identity struct {
	Role Role `json:"role"`
}

// Role names an organization role
type Role struct {
	Name  string `json:"name"`
	MSPID string `json:"mspId"`
}

// Rule is either a signature by one identity or n signatures out of a list
// of rules.
type Rule struct {
	SignedBy *int
	N        int
	Rules    []*Rule
}

var nOfKey = regexp.MustCompile(`^([0-9]+)-of$`)

// UnmarshalJSON decodes {"signed-by": i} or {"n-of": [...]}.
func (r *Rule) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	if len(fields) != 1 {
		return errors.Errorf("policy rule must have exactly one key, got %d", len(fields))
	}
	for key, value := range fields {
		if key == "signed-by" {
			var index int
			if err := json.Unmarshal(value, &index); err != nil {
				return errors.Wrap(err, "invalid signed-by")
			}
			r.SignedBy = &index
			return nil
		}
		m := nOfKey.FindStringSubmatch(key)
		if m == nil {
			return errors.Errorf("unknown policy rule '%s'", key)
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return err
		}
		r.N = n
		return json.Unmarshal(value, &r.Rules)
	}
	return nil
}

// MarshalJSON encodes the rule in the form UnmarshalJSON reads.
func (r *Rule) MarshalJSON() ([]byte, error) {
	if r.SignedBy != nil {
		return json.Marshal(map[string]int{"signed-by": *r.SignedBy})
	}
	return json.Marshal(map[string][]*Rule{fmt.Sprintf("%d-of", r.N): r.Rules})
}

// PolicySource carries an endorsement policy as supplied by the caller. Policy
// takes precedence over File. Policy may be a *common.SignaturePolicyEnvelope,
// a *Policy, a map decoded from JSON, a JSON string or a policy expression such
// as "OR('Org1MSP.member', 'Org2MSP.member')". File names a file holding a JSON
// document or an expression; '${VAR}' and a leading '~' are expanded.
type PolicySource struct {
	Policy interface{}
	File   string
}

// IsZero reports whether no policy was supplied.
func (s PolicySource) IsZero() bool {
	return s.Policy == nil && s.File == ""
}

// ResolvePolicy converts the supplied policy to a signature policy envelope.
// A zero source resolves to nil, leaving the choice to the peer's default.
func ResolvePolicy(src PolicySource) (*common.SignaturePolicyEnvelope, error) {
	if src.IsZero() {
		return nil, nil
	}
	envelope, err := resolvePolicy(src)
	if err != nil {
		return nil, status.New(status.ClientStatus, status.PolicyParseFailed.ToInt32(),
			"Error trying parse endorsement policy. "+err.Error(), nil)
	}
	return envelope, nil
}

func resolvePolicy(src PolicySource) (*common.SignaturePolicyEnvelope, error) {
	switch p := src.Policy.(type) {
	case nil:
		b, err := ioutil.ReadFile(pathvar.Subst(src.File))
		if err != nil {
			return nil, err
		}
		return parsePolicyString(string(b))
	case *common.SignaturePolicyEnvelope:
		return p, nil
	case *Policy:
		return p.Envelope()
	case Policy:
		return p.Envelope()
	case string:
		return parsePolicyString(p)
	case []byte:
		return parsePolicyString(string(p))
	default:
		b, err := json.Marshal(p)
		if err != nil {
			return nil, err
		}
		return parsePolicyJSON(b)
	}
}

func parsePolicyString(s string) (*common.SignaturePolicyEnvelope, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "{") {
		return parsePolicyJSON([]byte(s))
	}
	policy, err := FromExpression(s)
	if err != nil {
		return nil, err
	}
	return policy.Envelope()
}

func parsePolicyJSON(b []byte) (*common.SignaturePolicyEnvelope, error) {
	policy := &Policy{}
	if err := json.Unmarshal(b, policy); err != nil {
		return nil, err
	}
	return policy.Envelope()
}

var roleTypes = map[string]msp.MSPRole_MSPRoleType{
	"member": msp.MSPRole_MEMBER,
	"admin":  msp.MSPRole_ADMIN,
	"client": msp.MSPRole_CLIENT,
	"peer":   msp.MSPRole_PEER,
}

// Envelope converts the policy to its protobuf form.
func (p *Policy) Envelope() (*common.SignaturePolicyEnvelope, error) {
	if len(p.Identities) == 0 {
		return nil, errors.New("policy has no identities")
	}
	if p.Policy == nil {
		return nil, errors.New("policy has no rule")
	}

	identities := make([]*msp.MSPPrincipal, len(p.Identities))
	for i, id := range p.Identities {
		roleType, ok := roleTypes[strings.ToLower(id.Role.Name)]
		if !ok {
			return nil, errors.Errorf("unknown role '%s'", id.Role.Name)
		}
		if id.Role.MSPID == "" {
			return nil, errors.Errorf("identity %d has no mspId", i)
		}
		principal, err := proto.Marshal(&msp.MSPRole{MspIdentifier: id.Role.MSPID, Role: roleType})
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal role")
		}
		identities[i] = &msp.MSPPrincipal{
			PrincipalClassification: msp.MSPPrincipal_ROLE,
			Principal:               principal,
		}
	}

	rule, err := p.Policy.signaturePolicy(len(identities))
	if err != nil {
		return nil, err
	}

	return &common.SignaturePolicyEnvelope{
		Version:    0,
		Rule:       rule,
		Identities: identities,
	}, nil
}

func (r *Rule) signaturePolicy(identities int) (*common.SignaturePolicy, error) {
	if r.SignedBy != nil {
		if *r.SignedBy < 0 || *r.SignedBy >= identities {
			return nil, errors.Errorf("signed-by %d is out of range", *r.SignedBy)
		}
		return &common.SignaturePolicy{
			Type: &common.SignaturePolicy_SignedBy{SignedBy: int32(*r.SignedBy)},
		}, nil
	}

	if len(r.Rules) == 0 {
		return nil, errors.Errorf("%d-of rule has no sub-rules", r.N)
	}
	if r.N < 1 || r.N > len(r.Rules) {
		return nil, errors.Errorf("invalid %d-of rule over %d sub-rules", r.N, len(r.Rules))
	}
	rules := make([]*common.SignaturePolicy, len(r.Rules))
	for i, sub := range r.Rules {
		if sub == nil {
			return nil, errors.New("empty sub-rule")
		}
		sp, err := sub.signaturePolicy(identities)
		if err != nil {
			return nil, err
		}
		rules[i] = sp
	}
	return &common.SignaturePolicy{
		Type: &common.SignaturePolicy_NOutOf_{
			NOutOf: &common.SignaturePolicy_NOutOf{N: int32(r.N), Rules: rules},
		},
	}, nil
}
