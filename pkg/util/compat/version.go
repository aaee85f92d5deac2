/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package compat decides whether a client can talk to a deployed runtime.
package compat

import (
	"fmt"

	"github.com/hashicorp/go-version"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/errors/status"
	"github.com/pkg/errors"
)

// Check reports whether clientVersion is compatible with runtimeVersion.
//
// A prerelease runtime must be matched exactly, build metadata included. Otherwise the client must
// satisfy the caret range of the runtime: same major version and not older,
// where a zero major also pins the minor version and a zero minor pins the
// patch. A prerelease client never satisfies a stable runtime.
func Check(clientVersion, runtimeVersion string) (bool, error) {
	runtime, err := version.NewVersion(runtimeVersion)
	if err != nil {
		return false, errors.Wrapf(err, "invalid runtime version '%s'", runtimeVersion)
	}
	client, err := version.NewVersion(clientVersion)
	if err != nil {
		return false, errors.Wrapf(err, "invalid client version '%s'", clientVersion)
	}

	if runtime.Prerelease() != "" {
		return clientVersion == runtimeVersion, nil
	}
	if client.Prerelease() != "" {
		return false, nil
	}
	if client.LessThan(runtime) {
		return false, nil
	}

	rs, cs := segments(runtime), segments(client)
	switch {
	case rs[0] != 0:
		return cs[0] == rs[0], nil
	case rs[1] != 0:
		return cs[0] == 0 && cs[1] == rs[1], nil
	default:
		return cs[0] == 0 && cs[1] == 0 && cs[2] == rs[2], nil
	}
}

func segments(v *version.Version) [3]int {
	var s [3]int
	copy(s[:], v.Segments())
	return s
}

// Verify is Check returning a VersionIncompatible status when the versions
// do not match.
func Verify(clientVersion, runtimeVersion string) error {
	ok, err := Check(clientVersion, runtimeVersion)
	if err != nil {
		return status.New(status.ClientStatus, status.InvalidArgument.ToInt32(), err.Error(), nil)
	}
	if !ok {
		return status.New(status.ClientStatus, status.VersionIncompatible.ToInt32(),
			fmt.Sprintf("Deployed chain-code (%s) is incompatible with client (%s)", runtimeVersion, clientVersion),
			[]interface{}{runtimeVersion, clientVersion})
	}
	return nil
}
