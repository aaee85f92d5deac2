/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package fab

import reqContext "context"

// Attribute is an identity attribute attached at registration
type Attribute struct {
	Name  string
	Value string
	ECert bool
}

// RegistrationRequest defines the attributes required to register a user with the CA
type RegistrationRequest struct {
	Name           string
	Type           string
	MaxEnrollments int
	Affiliation    string
	Attributes     []Attribute
	Secret         string
}

// User is an enrolled identity able to sign requests.
type User interface {
	Identifier() string
	MSPID() string
	EnrollmentCertificate() []byte
}

// CAClient talks to the certificate authority of the caller's organization.
type CAClient interface {
	Enroll(ctx reqContext.Context, enrollmentID, secret string) (User, error)
	// Register returns the enrollment secret of the new identity.
	Register(ctx reqContext.Context, registrar User, req *RegistrationRequest) (string, error)
}

// UserStore persists enrolled users between connections.
type UserStore interface {
	// Get returns nil, nil when the user is not stored.
	Get(ctx reqContext.Context, name string) (User, error)
	Store(ctx reqContext.Context, user User) error
}
