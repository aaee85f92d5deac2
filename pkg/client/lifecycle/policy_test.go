/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package lifecycle

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/protobuf/proto"
	"github.com/hyperledger/fabric-protos-go/common"
	"github.com/hyperledger/fabric-protos-go/msp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger-archives/composer-sub009/pkg/common/errors/status"
)

const twoOrgPolicy = `{
  "identities": [
    {"role": {"name": "member", "mspId": "Org1MSP"}},
    {"role": {"name": "admin", "mspId": "Org2MSP"}}
  ],
  "policy": {"1-of": [{"signed-by": 0}, {"signed-by": 1}]}
}`

func principals(t *testing.T, env *common.SignaturePolicyEnvelope) []*msp.MSPRole {
	var roles []*msp.MSPRole
	for _, id := range env.Identities {
		require.Equal(t, msp.MSPPrincipal_ROLE, id.PrincipalClassification)
		role := &msp.MSPRole{}
		require.NoError(t, proto.Unmarshal(id.Principal, role))
		roles = append(roles, role)
	}
	return roles
}

func assertTwoOrgEnvelope(t *testing.T, env *common.SignaturePolicyEnvelope) {
	require.NotNil(t, env)
	roles := principals(t, env)
	require.Len(t, roles, 2)
	assert.Equal(t, "Org1MSP", roles[0].MspIdentifier)
	assert.Equal(t, msp.MSPRole_MEMBER, roles[0].Role)
	assert.Equal(t, "Org2MSP", roles[1].MspIdentifier)
	assert.Equal(t, msp.MSPRole_ADMIN, roles[1].Role)

	nOutOf := env.Rule.GetNOutOf()
	require.NotNil(t, nOutOf)
	assert.Equal(t, int32(1), nOutOf.N)
	require.Len(t, nOutOf.Rules, 2)
	assert.Equal(t, int32(0), nOutOf.Rules[0].GetSignedBy())
	assert.Equal(t, int32(1), nOutOf.Rules[1].GetSignedBy())
}

func TestResolvePolicyZero(t *testing.T) {
	env, err := ResolvePolicy(PolicySource{})
	assert.NoError(t, err)
	assert.Nil(t, env)
}

func TestResolvePolicyJSONString(t *testing.T) {
	env, err := ResolvePolicy(PolicySource{Policy: twoOrgPolicy})
	require.NoError(t, err)
	assertTwoOrgEnvelope(t, env)

	env, err = ResolvePolicy(PolicySource{Policy: []byte(twoOrgPolicy)})
	require.NoError(t, err)
	assertTwoOrgEnvelope(t, env)
}

func TestResolvePolicyObject(t *testing.T) {
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(twoOrgPolicy), &decoded))

	env, err := ResolvePolicy(PolicySource{Policy: decoded})
	require.NoError(t, err)
	assertTwoOrgEnvelope(t, env)

	p := &Policy{}
	require.NoError(t, json.Unmarshal([]byte(twoOrgPolicy), p))
	env, err = ResolvePolicy(PolicySource{Policy: p})
	require.NoError(t, err)
	assertTwoOrgEnvelope(t, env)

	env, err = ResolvePolicy(PolicySource{Policy: *p})
	require.NoError(t, err)
	assertTwoOrgEnvelope(t, env)
}

func TestResolvePolicyEnvelope(t *testing.T) {
	in := &common.SignaturePolicyEnvelope{Version: 0}
	env, err := ResolvePolicy(PolicySource{Policy: in})
	require.NoError(t, err)
	assert.True(t, in == env)
}

func TestResolvePolicyExpression(t *testing.T) {
	env, err := ResolvePolicy(PolicySource{Policy: "OR('Org1MSP.member', 'Org2MSP.admin')"})
	require.NoError(t, err)
	assertTwoOrgEnvelope(t, env)
}

func TestResolvePolicyFile(t *testing.T) {
	f, err := ioutil.TempFile("", "policy")
	require.NoError(t, err)
	defer os.Remove(f.Name())
	_, err = f.WriteString(twoOrgPolicy)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	env, err := ResolvePolicy(PolicySource{File: f.Name()})
	require.NoError(t, err)
	assertTwoOrgEnvelope(t, env)

	require.NoError(t, os.Setenv("POLICY_TEST_DIR", filepath.Dir(f.Name())))
	defer os.Unsetenv("POLICY_TEST_DIR")
	env, err = ResolvePolicy(PolicySource{File: "${POLICY_TEST_DIR}/" + filepath.Base(f.Name())})
	require.NoError(t, err)
	assertTwoOrgEnvelope(t, env)

	_, err = ResolvePolicy(PolicySource{File: f.Name() + ".missing"})
	assert.True(t, status.Is(err, status.ClientStatus, status.PolicyParseFailed.ToInt32()))
}

func TestResolvePolicyInvalid(t *testing.T) {
	for _, policy := range []interface{}{
		`{"identities": [`,
		`{"identities": [], "policy": {"1-of": [{"signed-by": 0}]}}`,
		`{"identities": [{"role": {"name": "member", "mspId": "Org1MSP"}}], "policy": {"1-of": [{"signed-by": 1}]}}`,
		`{"identities": [{"role": {"name": "member", "mspId": "Org1MSP"}}], "policy": {"2-of": [{"signed-by": 0}]}}`,
		`{"identities": [{"role": {"name": "owner", "mspId": "Org1MSP"}}], "policy": {"signed-by": 0}}`,
		`{"identities": [{"role": {"name": "member"}}], "policy": {"signed-by": 0}}`,
		`{"identities": [{"role": {"name": "member", "mspId": "Org1MSP"}}], "policy": {"some-of": []}}`,
		"NOT('Org1MSP.member')",
		42,
	} {
		_, err := ResolvePolicy(PolicySource{Policy: policy})
		require.Error(t, err, "policy %v", policy)
		assert.True(t, status.Is(err, status.ClientStatus, status.PolicyParseFailed.ToInt32()), "policy %v", policy)
		assert.Contains(t, err.Error(), "Error trying parse endorsement policy.")
	}
}

func TestRuleJSONRoundTrip(t *testing.T) {
	p := &Policy{}
	require.NoError(t, json.Unmarshal([]byte(twoOrgPolicy), p))

	b, err := json.Marshal(p)
	require.NoError(t, err)

	decoded := &Policy{}
	require.NoError(t, json.Unmarshal(b, decoded))
	assert.Equal(t, p, decoded)
}
