/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package lifecycle installs, instantiates and upgrades the chaincode that
// runs a business network.
package lifecycle

import (
	reqContext "context"

	"github.com/hyperledger-archives/composer-sub009/pkg/client/channel"
	"github.com/hyperledger-archives/composer-sub009/pkg/client/channel/invoke"
	"github.com/hyperledger-archives/composer-sub009/pkg/client/endorsement"
	"github.com/hyperledger-archives/composer-sub009/pkg/client/metrics"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/errors/status"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/logging"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/providers/fab"
	"github.com/hyperledger-archives/composer-sub009/pkg/util/compat"
	"github.com/hyperledger/fabric-protos-go/common"
	pb "github.com/hyperledger/fabric-protos-go/peer"
	"github.com/pkg/errors"
)

var logger = logging.NewLogger("connector/lifecycle")

const (
	// DefaultChaincodeType is the chaincode runtime used for business networks
	DefaultChaincodeType = "node"

	initFcn    = "init"
	startFcn   = "start"
	upgradeFcn = "upgrade"
)

// Outcomes recorded in the lifecycle operations metric
const (
	outcomeSucceeded = "succeeded"
	outcomeSkipped   = "skipped"
	outcomeFailed    = "failed"
)

// Descriptor identifies a chaincode package. Install is idempotent per ID and Version.
type Descriptor struct {
	ID      string
	Version string
	Path    string
	Type    string
	Package []byte
}

// InstallResult counts peers that installed the package and peers that
// already had it.
type InstallResult struct {
	Installed int
	Ignored   int
}

// DeployRequest carries the parameters of an instantiate or upgrade.
type DeployRequest struct {
	// Args are passed to the chaincode init, start or upgrade function.
	Args [][]byte
	// Policy is the endorsement policy. A zero value leaves the peer default.
	Policy PolicySource
	// TxnID is used for the first attempt when set.
	TxnID fab.TransactionID
}

// DeployResult describes what Deploy did
type DeployResult struct {
	Install       *InstallResult
	Instantiated  bool
	TransactionID fab.TransactionID
}

// RuntimeVersion returns the runtime version of the business network name
type RuntimeVersion func(ctx reqContext.Context, name string) (string, error)

// Manager drives the chaincode lifecycle of one channel.
type Manager struct {
	client   fab.Client
	channel  fab.Channel
	chClient *channel.Client
	mspID    string
	metrics  *metrics.ConnectorMetrics

	clientVersion  string
	runtimeVersion RuntimeVersion
}

// Option configures a Manager
type Option func(*Manager)

// WithMetrics records lifecycle metrics
func WithMetrics(m *metrics.ConnectorMetrics) Option {
	return func(mgr *Manager) {
		mgr.metrics = m
	}
}

// WithVersionCheck makes Upgrade refuse to run unless clientVersion is
// compatible with the version runtimeVersion reports.
func WithVersionCheck(clientVersion string, runtimeVersion RuntimeVersion) Option {
	return func(mgr *Manager) {
		mgr.clientVersion = clientVersion
		mgr.runtimeVersion = runtimeVersion
	}
}

// New returns a lifecycle manager for the caller's organization mspID.
func New(client fab.Client, ch fab.Channel, chClient *channel.Client, mspID string, opts ...Option) *Manager {
	mgr := &Manager{
		client:   client,
		channel:  ch,
		chClient: chClient,
		mspID:    mspID,
		metrics:  metrics.Disabled(),
	}
	for _, opt := range opts {
		opt(mgr)
	}
	return mgr
}

// InstallTargets returns the peers of the caller's organization that both
// endorse and answer chaincode queries.
func (m *Manager) InstallTargets() []fab.Peer {
	peers := fab.PeersInRole(m.channel.Peers(), fab.EndorsingPeerRole, fab.ChaincodeQueryRole)
	return fab.PeersInOrg(peers, m.mspID)
}

// Install sends the package to every install target. Peers that already have
// the package are counted as ignored.
func (m *Manager) Install(ctx reqContext.Context, desc Descriptor) (*InstallResult, error) {
	if desc.ID == "" || desc.Version == "" {
		return nil, invalidArgument("chaincode ID and version are required")
	}
	targets := m.InstallTargets()
	if len(targets) == 0 {
		m.record("install", outcomeFailed)
		return nil, status.New(status.ClientStatus, status.NoPeersFound.ToInt32(),
			"No peers of organization "+m.mspID+" can install chaincode", nil)
	}

	txnID, err := m.client.NewTransactionID()
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create transaction ID")
	}

	chaincodeType := desc.Type
	if chaincodeType == "" {
		chaincodeType = DefaultChaincodeType
	}
	request := fab.ChaincodeInstallRequest{
		ChaincodeID:      desc.ID,
		ChaincodeVersion: desc.Version,
		ChaincodePath:    desc.Path,
		ChaincodeType:    chaincodeType,
		Package:          desc.Package,
		TxnID:            txnID,
		Targets:          targets,
	}
	logger.Debugf("Installing chaincode [%s:%s] on %d peers", desc.ID, desc.Version, len(targets))

	responses, err := m.client.InstallChaincode(ctx, request)
	if err != nil {
		m.record("install", outcomeFailed)
		return nil, errors.WithMessage(err, "Error trying install business network")
	}
	result, err := endorsement.Validate(responses, endorsement.WithIgnorablePattern(endorsement.AlreadyInstalledPattern))
	if err != nil {
		m.record("install", outcomeFailed)
		return nil, errors.WithMessage(err, "Error trying install business network")
	}

	installed := &InstallResult{Installed: len(result.Valid), Ignored: result.Ignored}
	if installed.Installed == 0 {
		logger.Infof("Chaincode [%s:%s] is already installed on all %d peers", desc.ID, desc.Version, installed.Ignored)
		m.record("install", outcomeSkipped)
	} else {
		logger.Infof("Chaincode [%s:%s] installed on %d of %d peers", desc.ID, desc.Version, installed.Installed, len(responses))
		m.record("install", outcomeSucceeded)
	}
	return installed, nil
}

// Deploy installs the chaincode and instantiates it unless it is already
// instantiated on the channel.
func (m *Manager) Deploy(ctx reqContext.Context, desc Descriptor, req DeployRequest) (*DeployResult, error) {
	policy, err := ResolvePolicy(req.Policy)
	if err != nil {
		m.record("deploy", outcomeFailed)
		return nil, errors.WithMessage(err, "Error trying to deploy business network")
	}

	installed, err := m.Install(ctx, desc)
	if err != nil {
		return nil, errors.WithMessage(err, "Error trying to deploy business network")
	}
	result := &DeployResult{Install: installed}

	instantiated, err := m.IsInstantiated(ctx, desc.ID)
	if err != nil {
		return nil, errors.WithMessage(err, "Error trying to deploy business network")
	}
	if instantiated {
		logger.Infof("Chaincode [%s] is already instantiated on channel [%s], skipping instantiation", desc.ID, m.channel.Name())
		m.record("deploy", outcomeSkipped)
		return result, nil
	}

	resp, err := m.instantiate(ctx, invoke.NewInstantiateHandler(), desc.ID, desc.Version, desc.Type, initFcn, policy, req)
	if err != nil {
		m.record("deploy", outcomeFailed)
		return nil, errors.WithMessage(err, "Error trying to deploy business network")
	}
	m.record("deploy", outcomeSucceeded)
	result.Instantiated = true
	result.TransactionID = resp.TransactionID
	return result, nil
}

// Start instantiates an installed chaincode with the start function.
func (m *Manager) Start(ctx reqContext.Context, name, version string, req DeployRequest) (fab.TransactionID, error) {
	if name == "" {
		return fab.EmptyTransactionID, invalidArgument("Business network name not specified")
	}
	if version == "" {
		return fab.EmptyTransactionID, invalidArgument("Business network version not specified")
	}
	if len(req.Args) == 0 {
		return fab.EmptyTransactionID, invalidArgument("Start transaction not specified")
	}
	policy, err := ResolvePolicy(req.Policy)
	if err != nil {
		m.record("start", outcomeFailed)
		return fab.EmptyTransactionID, errors.WithMessage(err, "Error trying to start business network")
	}

	resp, err := m.instantiate(ctx, invoke.NewInstantiateHandler(), name, version, "", startFcn, policy, req)
	if err != nil {
		m.record("start", outcomeFailed)
		return fab.EmptyTransactionID, errors.WithMessage(err, "Error trying to start business network")
	}
	m.record("start", outcomeSucceeded)
	return resp.TransactionID, nil
}

// Upgrade moves an instantiated chaincode to version. The client must be
// compatible with the deployed runtime.
func (m *Manager) Upgrade(ctx reqContext.Context, name, version string, req DeployRequest) (fab.TransactionID, error) {
	if name == "" {
		return fab.EmptyTransactionID, invalidArgument("Business network name not specified")
	}
	if version == "" {
		return fab.EmptyTransactionID, invalidArgument("Business network version not specified")
	}

	policy, err := ResolvePolicy(req.Policy)
	if err != nil {
		m.record("upgrade", outcomeFailed)
		return fab.EmptyTransactionID, errors.WithMessage(err, "Error trying to upgrade business network")
	}
	if err := m.checkVersion(ctx, name); err != nil {
		m.record("upgrade", outcomeFailed)
		return fab.EmptyTransactionID, errors.WithMessage(err, "Error trying to upgrade business network")
	}

	resp, err := m.instantiate(ctx, invoke.NewUpgradeHandler(), name, version, "", upgradeFcn, policy, req)
	if err != nil {
		m.record("upgrade", outcomeFailed)
		return fab.EmptyTransactionID, errors.WithMessage(err, "Error trying to upgrade business network")
	}
	m.record("upgrade", outcomeSucceeded)
	return resp.TransactionID, nil
}

func (m *Manager) checkVersion(ctx reqContext.Context, name string) error {
	if m.runtimeVersion == nil {
		return nil
	}
	runtime, err := m.runtimeVersion(ctx, name)
	if err != nil {
		return errors.WithMessage(err, "failed to read runtime version")
	}
	return compat.Verify(m.clientVersion, runtime)
}

// instantiate runs handler with an already resolved policy.
func (m *Manager) instantiate(ctx reqContext.Context, handler invoke.Handler, name, version, chaincodeType, fcn string, policy *common.SignaturePolicyEnvelope, req DeployRequest) (channel.Response, error) {
	if chaincodeType == "" {
		chaincodeType = DefaultChaincodeType
	}

	var opts []channel.RequestOption
	if req.TxnID != fab.EmptyTransactionID {
		opts = append(opts, channel.WithTxnID(req.TxnID))
	}

	logger.Infof("Sending %s proposal for chaincode [%s:%s] on channel [%s]", fcn, name, version, m.channel.Name())
	return m.chClient.InvokeHandler(ctx, handler, channel.Request{
		ChaincodeID:      name,
		ChaincodeVersion: version,
		ChaincodeType:    chaincodeType,
		Fcn:              fcn,
		Args:             req.Args,
		Policy:           policy,
	}, opts...)
}

// IsInstantiated reports whether a chaincode named id is instantiated on the channel.
func (m *Manager) IsInstantiated(ctx reqContext.Context, id string) (bool, error) {
	chaincodes, err := m.Instantiated(ctx)
	if err != nil {
		return false, err
	}
	for _, cc := range chaincodes {
		if cc.Name == id {
			return true, nil
		}
	}
	return false, nil
}

// Instantiated lists the chaincodes instantiated on the channel.
func (m *Manager) Instantiated(ctx reqContext.Context) ([]*pb.ChaincodeInfo, error) {
	resp, err := m.channel.QueryInstantiatedChaincodes(ctx)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to query instantiated chaincodes")
	}
	if resp == nil {
		return nil, nil
	}
	return resp.Chaincodes, nil
}

func (m *Manager) record(operation, outcome string) {
	m.metrics.LifecycleOperations.With("channel", m.channel.Name(), "operation", operation, "outcome", outcome).Add(1)
}

func invalidArgument(msg string) error {
	return status.New(status.ClientStatus, status.InvalidArgument.ToInt32(), msg, nil)
}
