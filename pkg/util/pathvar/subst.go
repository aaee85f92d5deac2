/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package pathvar expands variables in file paths taken from connection
// profiles and caller options.
package pathvar

import (
	"go/build"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var variable = regexp.MustCompile(`\$\{([^}]+)\}`)

// Subst replaces '${NAME}' with the value of NAME and a leading '~' with the
// home directory. GOPATH defaults to the first entry of the build GOPATH.
// Unknown variables are left in place.
func Subst(path string) string {
	path = variable.ReplaceAllStringFunc(path, func(match string) string {
		if v, ok := lookupVar(match[2 : len(match)-1]); ok {
			return v
		}
		return match
	})
	return expandHome(path)
}

func lookupVar(name string) (string, bool) {
	if v, ok := os.LookupEnv(name); ok {
		return v, true
	}
	if gopath := filepath.SplitList(build.Default.GOPATH); name == "GOPATH" && len(gopath) > 0 {
		return gopath[0], true
	}
	return "", false
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
