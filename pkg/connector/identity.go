/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package connector

import (
	reqContext "context"
	"encoding/json"
	"sort"

	"github.com/hyperledger-archives/composer-sub009/pkg/common/providers/fab"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

const (
	defaultAffiliation = "org1"
	defaultRole        = "client"
)

// IdentityOptions configures a new identity. Zero values take the defaults:
// affiliation "org1", role "client" and unlimited enrollments.
type IdentityOptions struct {
	Affiliation    string
	Role           string
	MaxEnrollments int
	// Issuer lets the new identity register further client identities.
	Issuer bool
	// Attributes is a map of attribute names to values, or the same map as a
	// JSON object string.
	Attributes interface{}
}

// Identity is a registered identity and its enrollment secret
type Identity struct {
	UserID     string
	UserSecret string
}

// CreateIdentity registers userID with the CA, using the caller as registrar.
func (c *Connection) CreateIdentity(ctx reqContext.Context, sc *SecurityContext, userID string, opts IdentityOptions) (*Identity, error) {
	if err := c.securityCheck(sc); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, invalidArgument("userID not specified")
	}
	if c.fabric.CA == nil {
		return nil, errors.New("no CA is configured for this connection")
	}

	attributes, err := identityAttributes(opts)
	if err != nil {
		return nil, err
	}

	request := &fab.RegistrationRequest{
		Name:           userID,
		Type:           opts.Role,
		MaxEnrollments: opts.MaxEnrollments,
		Affiliation:    opts.Affiliation,
		Attributes:     attributes,
	}
	if request.Type == "" {
		request.Type = defaultRole
	}
	if request.Affiliation == "" {
		request.Affiliation = defaultAffiliation
	}

	secret, err := c.fabric.CA.Register(ctx, sc.user, request)
	if err != nil {
		return nil, errors.WithMessage(err, "Register request failed")
	}
	logger.Debugf("Registered identity [%s] with affiliation [%s]", userID, request.Affiliation)
	return &Identity{UserID: userID, UserSecret: secret}, nil
}

func identityAttributes(opts IdentityOptions) ([]fab.Attribute, error) {
	var attributes []fab.Attribute
	if opts.Issuer {
		attributes = append(attributes,
			fab.Attribute{Name: "hf.Registrar.Roles", Value: "client"},
			fab.Attribute{Name: "hf.Registrar.Attributes", Value: "*"},
		)
	}

	var values map[string]interface{}
	switch a := opts.Attributes.(type) {
	case nil:
		return attributes, nil
	case string:
		if err := json.Unmarshal([]byte(a), &values); err != nil {
			return nil, invalidArgument("attributes are not a valid JSON object: " + err.Error())
		}
	case map[string]string:
		values = make(map[string]interface{}, len(a))
		for k, v := range a {
			values[k] = v
		}
	case map[string]interface{}:
		values = a
	default:
		return nil, invalidArgument("attributes must be a map or a JSON object string")
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		value, err := cast.ToStringE(values[name])
		if err != nil {
			return nil, invalidArgument("attribute " + name + " is not a scalar value")
		}
		attributes = append(attributes, fab.Attribute{Name: name, Value: value})
	}
	return attributes, nil
}
