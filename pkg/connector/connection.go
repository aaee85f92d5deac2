/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package connector exposes a business network deployed on a Fabric channel
// as a NetworkConnection. Queries are routed to a sticky query peer with
// failover, transactions are endorsed, validated, ordered and confirmed by
// the channel's commit sources, and the business network chaincode is
// installed, started and upgraded through the lifecycle manager.
package connector

import (
	reqContext "context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hyperledger-archives/composer-sub009/pkg/client/channel"
	"github.com/hyperledger-archives/composer-sub009/pkg/client/lifecycle"
	"github.com/hyperledger-archives/composer-sub009/pkg/client/metrics"
	"github.com/hyperledger-archives/composer-sub009/pkg/client/query"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/errors/multi"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/errors/status"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/logging"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/providers/fab"
	"github.com/hyperledger-archives/composer-sub009/pkg/util/compat"
	"github.com/pkg/errors"
)

var logger = logging.NewLogger("connector")

const (
	pingFcn     = "ping"
	undeployFcn = "undeploy"
	updateFcn   = "updateBusinessNetwork"

	businessNetworkPath = "businessnetwork"
)

// NetworkConnection is a connection to one business network
type NetworkConnection interface {
	Login(ctx reqContext.Context, enrollmentID, enrollmentSecret string) (*SecurityContext, error)
	Disconnect() error
	CreateTransactionID(ctx reqContext.Context, sc *SecurityContext) (fab.TransactionID, error)

	QueryChainCode(ctx reqContext.Context, sc *SecurityContext, fcn string, args []string) ([]byte, error)
	InvokeChainCode(ctx reqContext.Context, sc *SecurityContext, fcn string, args []string, opts ...InvokeOption) ([]byte, error)

	Install(ctx reqContext.Context, sc *SecurityContext, desc lifecycle.Descriptor) (*lifecycle.InstallResult, error)
	Deploy(ctx reqContext.Context, sc *SecurityContext, desc lifecycle.Descriptor, startTransaction string, opts ...DeployOption) (*lifecycle.DeployResult, error)
	Start(ctx reqContext.Context, sc *SecurityContext, name, version, startTransaction string, opts ...DeployOption) (fab.TransactionID, error)
	Upgrade(ctx reqContext.Context, sc *SecurityContext, name, version string, opts ...DeployOption) (fab.TransactionID, error)
	Undeploy(ctx reqContext.Context, sc *SecurityContext, name string) error
	Update(ctx reqContext.Context, sc *SecurityContext, archive []byte) error

	Ping(ctx reqContext.Context, sc *SecurityContext) (*PingResponse, error)
	List(ctx reqContext.Context, sc *SecurityContext) ([]string, error)
	CreateIdentity(ctx reqContext.Context, sc *SecurityContext, userID string, opts IdentityOptions) (*Identity, error)
}

// Fabric holds the ledger collaborators a Connection drives.
type Fabric struct {
	Client       fab.Client
	Channel      fab.Channel
	EventSources []fab.EventSource
	CA           fab.CAClient
	Users        fab.UserStore
}

// SecurityContext is the identity a caller logged in as
type SecurityContext struct {
	user fab.User
	conn *Connection
}

// User returns the logged in user
func (sc *SecurityContext) User() fab.User {
	return sc.user
}

// PingResponse reports the runtime version and whether this client is
// compatible with it.
type PingResponse struct {
	Version       string `json:"version"`
	ClientVersion string `json:"-"`
	Compatible    bool   `json:"-"`
}

// Connection implements NetworkConnection
type Connection struct {
	config    *ConnectionConfig
	networkID string
	fabric    Fabric
	metrics   *metrics.ConnectorMetrics

	router    *query.Router
	chClient  *channel.Client
	lifecycle *lifecycle.Manager
}

// NewConnection returns a connection to the business network networkID.
// networkID may be empty for connections used only to deploy.
func NewConnection(cfg *ConnectionConfig, networkID string, f Fabric, opts ...Option) (*Connection, error) {
	if cfg == nil {
		return nil, errors.New("connection config not specified")
	}
	if f.Client == nil {
		return nil, errors.New("client not specified")
	}
	if f.Channel == nil {
		return nil, errors.New("channel not specified")
	}

	c := &Connection{
		config:    cfg,
		networkID: networkID,
		fabric:    f,
		metrics:   metrics.Disabled(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.router = query.NewRouter(f.Channel, networkID, cfg.MSPID,
		query.WithTimeout(cfg.QueryTimeout), query.WithMetrics(c.metrics))

	chClient, err := channel.New(f.Client, f.Channel, c.router, f.EventSources,
		channel.WithCommitTimeout(cfg.CommitTimeout),
		channel.WithRequiredSources(cfg.RequiredEventSources),
		channel.WithMetrics(c.metrics))
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create channel client")
	}
	c.chClient = chClient

	c.lifecycle = lifecycle.New(f.Client, f.Channel, chClient, cfg.MSPID,
		lifecycle.WithMetrics(c.metrics),
		lifecycle.WithVersionCheck(cfg.ClientVersion, c.runtimeVersion))

	return c, nil
}

// NetworkID returns the business network this connection is bound to
func (c *Connection) NetworkID() string {
	return c.networkID
}

// Login loads enrollmentID from the user store, enrolling it with the CA when
// it is not stored, then connects the commit sources and initializes the
// channel from the first ledger-query peer that answers.
func (c *Connection) Login(ctx reqContext.Context, enrollmentID, enrollmentSecret string) (*SecurityContext, error) {
	if enrollmentID == "" {
		return nil, invalidArgument("enrollmentID not specified")
	}
	if enrollmentSecret == "" {
		return nil, invalidArgument("enrollmentSecret not specified")
	}

	user, err := c.loadUser(ctx, enrollmentID, enrollmentSecret)
	if err != nil {
		return nil, err
	}

	c.connectEventSources()

	if err := c.initializeChannel(ctx); err != nil {
		return nil, err
	}

	logger.Infof("User [%s] logged in to channel [%s]", enrollmentID, c.config.Channel)
	return &SecurityContext{user: user, conn: c}, nil
}

func (c *Connection) loadUser(ctx reqContext.Context, enrollmentID, enrollmentSecret string) (fab.User, error) {
	if c.fabric.Users != nil {
		user, err := c.fabric.Users.Get(ctx, enrollmentID)
		if err != nil {
			return nil, errors.WithMessage(err, "failed to load user from store")
		}
		if user != nil {
			logger.Debugf("User [%s] loaded from the user store", enrollmentID)
			return user, nil
		}
	}

	if c.fabric.CA == nil {
		return nil, errors.Errorf("user [%s] is not enrolled and no CA is configured", enrollmentID)
	}
	logger.Debugf("User [%s] not enrolled, submitting enrollment request", enrollmentID)
	user, err := c.fabric.CA.Enroll(ctx, enrollmentID, enrollmentSecret)
	if err != nil {
		return nil, errors.WithMessage(err, "enroll failed")
	}

	if c.fabric.Users != nil {
		if err := c.fabric.Users.Store(ctx, user); err != nil {
			return nil, errors.WithMessage(err, "failed to store enrolled user")
		}
	}
	return user, nil
}

func (c *Connection) connectEventSources() {
	connected := 0
	for _, source := range c.fabric.EventSources {
		if !source.IsConnected() {
			if err := source.Connect(); err != nil {
				logger.Warnf("Failed to connect to commit source %s: %s", source.URL(), err)
				continue
			}
		}
		connected++
	}
	c.metrics.EventSourcesConnected.With("channel", c.config.Channel).Set(float64(connected))
}

func (c *Connection) initializeChannel(ctx reqContext.Context) error {
	peers := fab.PeersInRole(c.fabric.Channel.Peers(), fab.LedgerQueryRole)
	if len(peers) == 0 {
		return status.New(status.ClientStatus, status.NoPeersFound.ToInt32(),
			"No peers have been provided that can be used to initialize the channel", nil)
	}

	var lastErr error
	for _, peer := range peers {
		err := c.fabric.Channel.Initialize(ctx, peer)
		if err == nil {
			return nil
		}
		logger.Warnf("Failed to initialize channel [%s] from peer %s: %s", c.config.Channel, peer.URL(), err)
		lastErr = err
	}
	return status.New(status.ClientStatus, status.PeersUnavailable.ToInt32(),
		fmt.Sprintf("Unable to initialize channel. Attempted to contact %d Peers. Last error was %s", len(peers), lastErr), nil)
}

// Disconnect closes every connected commit source. Failures are aggregated.
func (c *Connection) Disconnect() error {
	var errs error
	for _, source := range c.fabric.EventSources {
		if !source.IsConnected() {
			continue
		}
		if err := source.Close(); err != nil {
			errs = multi.Append(errs, errors.WithMessage(err, "failed to close commit source "+source.URL()))
		}
	}
	c.metrics.EventSourcesConnected.With("channel", c.config.Channel).Set(0)
	return errs
}

// CreateTransactionID returns a new transaction ID for the logged in user
func (c *Connection) CreateTransactionID(ctx reqContext.Context, sc *SecurityContext) (fab.TransactionID, error) {
	if err := c.securityCheck(sc); err != nil {
		return fab.EmptyTransactionID, err
	}
	return c.fabric.Client.NewTransactionID()
}

// QueryChainCode evaluates fcn on the sticky query peer, failing over to the
// other query peers in order.
func (c *Connection) QueryChainCode(ctx reqContext.Context, sc *SecurityContext, fcn string, args []string) ([]byte, error) {
	if err := c.securityCheck(sc); err != nil {
		return nil, err
	}
	response, err := c.chClient.Query(ctx, channel.Request{ChaincodeID: c.networkID, Fcn: fcn, Args: toBytes(args)})
	if err != nil {
		return nil, err
	}
	return response.Payload, nil
}

// InvokeChainCode submits fcn as a transaction and waits for it to commit.
// It returns the payload of the first valid endorsement.
func (c *Connection) InvokeChainCode(ctx reqContext.Context, sc *SecurityContext, fcn string, args []string, opts ...InvokeOption) ([]byte, error) {
	if err := c.securityCheck(sc); err != nil {
		return nil, err
	}

	o := invokeOptions{commit: true}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.commit {
		return c.QueryChainCode(ctx, sc, fcn, args)
	}

	retryOpts := c.config.Retry
	if o.retry != nil {
		retryOpts = *o.retry
	}
	requestOpts := []channel.RequestOption{channel.WithRetry(retryOpts)}
	if o.txnID != fab.EmptyTransactionID {
		requestOpts = append(requestOpts, channel.WithTxnID(o.txnID))
	}

	response, err := c.chClient.Execute(ctx, channel.Request{ChaincodeID: c.networkID, Fcn: fcn, Args: toBytes(args)}, requestOpts...)
	if err != nil {
		return nil, err
	}
	return response.Payload, nil
}

// Install installs the business network chaincode on the peers of the
// caller's organization.
func (c *Connection) Install(ctx reqContext.Context, sc *SecurityContext, desc lifecycle.Descriptor) (*lifecycle.InstallResult, error) {
	if err := c.securityCheck(sc); err != nil {
		return nil, err
	}
	return c.lifecycle.Install(ctx, desc)
}

// Deploy installs the chaincode and instantiates it with startTransaction,
// skipping instantiation when it is already running on the channel.
func (c *Connection) Deploy(ctx reqContext.Context, sc *SecurityContext, desc lifecycle.Descriptor, startTransaction string, opts ...DeployOption) (*lifecycle.DeployResult, error) {
	if err := c.securityCheck(sc); err != nil {
		return nil, err
	}
	var args [][]byte
	if startTransaction != "" {
		args = [][]byte{[]byte(startTransaction)}
	}
	return c.lifecycle.Deploy(ctx, desc, deployRequest(args, opts))
}

// Start instantiates an installed business network
func (c *Connection) Start(ctx reqContext.Context, sc *SecurityContext, name, version, startTransaction string, opts ...DeployOption) (fab.TransactionID, error) {
	if err := c.securityCheck(sc); err != nil {
		return fab.EmptyTransactionID, err
	}
	if startTransaction == "" {
		return fab.EmptyTransactionID, invalidArgument("Start transaction not specified")
	}
	return c.lifecycle.Start(ctx, name, version, deployRequest([][]byte{[]byte(startTransaction)}, opts))
}

// Upgrade moves the business network to an installed version. The client
// must be compatible with the runtime currently deployed.
func (c *Connection) Upgrade(ctx reqContext.Context, sc *SecurityContext, name, version string, opts ...DeployOption) (fab.TransactionID, error) {
	if err := c.securityCheck(sc); err != nil {
		return fab.EmptyTransactionID, err
	}
	return c.lifecycle.Upgrade(ctx, name, version, deployRequest(nil, opts))
}

// Undeploy asks the runtime to disable the business network. The chaincode
// keeps running.
func (c *Connection) Undeploy(ctx reqContext.Context, sc *SecurityContext, name string) error {
	if err := c.securityCheck(sc); err != nil {
		return err
	}
	if name == "" {
		return invalidArgument("business network identifier not specified")
	}
	_, err := c.InvokeChainCode(ctx, sc, undeployFcn, []string{name})
	return err
}

// Update replaces the definition of the deployed business network with archive
func (c *Connection) Update(ctx reqContext.Context, sc *SecurityContext, archive []byte) error {
	if err := c.securityCheck(sc); err != nil {
		return err
	}
	if len(archive) == 0 {
		return invalidArgument("business network archive not specified")
	}
	_, err := c.InvokeChainCode(ctx, sc, updateFcn, []string{base64.StdEncoding.EncodeToString(archive)})
	return err
}

// Ping queries the runtime version. When the client is not compatible with
// it the response is returned together with a VersionIncompatible error.
func (c *Connection) Ping(ctx reqContext.Context, sc *SecurityContext) (*PingResponse, error) {
	if err := c.securityCheck(sc); err != nil {
		return nil, err
	}

	response, err := c.ping(ctx, c.networkID)
	if err != nil {
		return nil, err
	}
	response.ClientVersion = c.config.ClientVersion

	response.Compatible, err = compat.Check(c.config.ClientVersion, response.Version)
	if err != nil {
		return nil, invalidArgument(err.Error())
	}
	if !response.Compatible {
		logger.Errorf("Version mismatch: client %s, runtime %s", c.config.ClientVersion, response.Version)
		return response, compat.Verify(c.config.ClientVersion, response.Version)
	}
	logger.Infof("Successful ping: client %s, runtime %s", c.config.ClientVersion, response.Version)
	return response, nil
}

// ping queries the ping function of the business network name.
func (c *Connection) ping(ctx reqContext.Context, name string) (*PingResponse, error) {
	response, err := c.chClient.Query(ctx, channel.Request{ChaincodeID: name, Fcn: pingFcn})
	if err != nil {
		return nil, err
	}
	ping := &PingResponse{}
	if err := json.Unmarshal(response.Payload, ping); err != nil {
		return nil, errors.Wrap(err, "invalid ping response")
	}
	return ping, nil
}

func (c *Connection) runtimeVersion(ctx reqContext.Context, name string) (string, error) {
	ping, err := c.ping(ctx, name)
	if err != nil {
		return "", err
	}
	return ping.Version, nil
}

// List returns the names of the business networks instantiated on the channel
func (c *Connection) List(ctx reqContext.Context, sc *SecurityContext) ([]string, error) {
	if err := c.securityCheck(sc); err != nil {
		return nil, err
	}
	chaincodes, err := c.lifecycle.Instantiated(ctx)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, cc := range chaincodes {
		if strings.Contains(cc.Path, businessNetworkPath) {
			names = append(names, cc.Name)
		}
	}
	return names, nil
}

func (c *Connection) securityCheck(sc *SecurityContext) error {
	if sc == nil || sc.user == nil {
		return invalidArgument("SecurityContext not specified")
	}
	if sc.conn != c {
		return invalidArgument("SecurityContext was not created by this connection")
	}
	return nil
}

func invalidArgument(msg string) error {
	return status.New(status.ClientStatus, status.InvalidArgument.ToInt32(), msg, nil)
}

func toBytes(args []string) [][]byte {
	if len(args) == 0 {
		return nil
	}
	b := make([][]byte, len(args))
	for i, v := range args {
		b[i] = []byte(v)
	}
	return b
}
