/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package pathvar

import (
	"go/build"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstEnv(t *testing.T) {
	const key = "CONNECTOR_TESTVAR"
	require.NoError(t, os.Setenv(key, "/opt/policies"))
	defer os.Unsetenv(key)

	assert.Equal(t, "/opt/policies/policy.json", Subst("${CONNECTOR_TESTVAR}/policy.json"))
	assert.Equal(t, "$foo/opt/policiesfoo", Subst("$foo${CONNECTOR_TESTVAR}foo"))
	assert.Equal(t, "/opt/policies:/opt/policies", Subst("${CONNECTOR_TESTVAR}:${CONNECTOR_TESTVAR}"))
}

func TestSubstUnknown(t *testing.T) {
	os.Unsetenv("CONNECTOR_NOT_SET")

	assert.Equal(t, "${CONNECTOR_NOT_SET}/a", Subst("${CONNECTOR_NOT_SET}/a"))
	assert.Equal(t, "${unterminated/a", Subst("${unterminated/a"))
	assert.Equal(t, "/plain/path", Subst("/plain/path"))
}

func TestSubstGoPath(t *testing.T) {
	if _, ok := os.LookupEnv("GOPATH"); ok || build.Default.GOPATH == "" {
		t.Skip("GOPATH is set in the environment or has no default")
	}
	assert.Equal(t, filepath.SplitList(build.Default.GOPATH)[0]+"/src", Subst("${GOPATH}/src"))
}

func TestSubstHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".composer/policy.json"), Subst("~/.composer/policy.json"))
	assert.Equal(t, home, Subst("~"))
	assert.Equal(t, "~user/x", Subst("~user/x"))
}
