/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	reqContext "context"
	"sync"

	"github.com/hyperledger-archives/composer-sub009/pkg/common/providers/fab"
)

// MockUser is a mock fab.User
type MockUser struct {
	MockName string
	MockMSP  string
	MockCert []byte
}

// NewMockUser returns a user in Org1MSP
func NewMockUser(name string) *MockUser {
	return &MockUser{MockName: name, MockMSP: "Org1MSP", MockCert: []byte("cert-" + name)}
}

// Identifier returns the user name
func (u *MockUser) Identifier() string {
	return u.MockName
}

// MSPID returns the user MSP
func (u *MockUser) MSPID() string {
	return u.MockMSP
}

// EnrollmentCertificate returns the certificate
func (u *MockUser) EnrollmentCertificate() []byte {
	return u.MockCert
}

// MockCAClient is a mock fab.CAClient
type MockCAClient struct {
	mutex sync.Mutex

	EnrollErr   error
	Enrolled    []string
	RegisterErr error
	Registered  []*fab.RegistrationRequest
	Registrars  []string
	Secret      string
}

// NewMockCAClient returns a CA that issues the given secret
func NewMockCAClient(secret string) *MockCAClient {
	return &MockCAClient{Secret: secret}
}

// Enroll returns a mock user named enrollmentID
func (c *MockCAClient) Enroll(ctx reqContext.Context, enrollmentID, secret string) (fab.User, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.EnrollErr != nil {
		return nil, c.EnrollErr
	}
	c.Enrolled = append(c.Enrolled, enrollmentID)
	return NewMockUser(enrollmentID), nil
}

// Register records the request and returns Secret, or the request secret when set
func (c *MockCAClient) Register(ctx reqContext.Context, registrar fab.User, req *fab.RegistrationRequest) (string, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.RegisterErr != nil {
		return "", c.RegisterErr
	}
	c.Registered = append(c.Registered, req)
	c.Registrars = append(c.Registrars, registrar.Identifier())
	if req.Secret != "" {
		return req.Secret, nil
	}
	return c.Secret, nil
}

// MockUserStore is an in-memory fab.UserStore
type MockUserStore struct {
	mutex sync.Mutex
	users map[string]fab.User

	GetErr   error
	StoreErr error
}

// NewMockUserStore returns a store holding users
func NewMockUserStore(users ...fab.User) *MockUserStore {
	s := &MockUserStore{users: make(map[string]fab.User)}
	for _, u := range users {
		s.users[u.Identifier()] = u
	}
	return s
}

// Get returns the stored user or nil
func (s *MockUserStore) Get(ctx reqContext.Context, name string) (fab.User, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	return s.users[name], nil
}

// Store saves the user
func (s *MockUserStore) Store(ctx reqContext.Context, user fab.User) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.StoreErr != nil {
		return s.StoreErr
	}
	s.users[user.Identifier()] = user
	return nil
}
