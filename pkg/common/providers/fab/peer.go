/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package fab

// Peer roles as named in a connection profile's channel section.
const (
	EndorsingPeerRole  = "endorsingPeer"
	ChaincodeQueryRole = "chaincodeQuery"
	LedgerQueryRole    = "ledgerQuery"
	EventSourceRole    = "eventSource"
)

// Peer represents a peer in the target network to which the connector sends
// endorsement proposals or query requests.
type Peer interface {
	// Name gets the peer name from the connection profile.
	Name() string

	//URL gets the peer address
	URL() string

	// MSPID gets the Peer mspID.
	MSPID() string

	// InRole reports whether the peer has been assigned the given role on the channel.
	InRole(role string) bool
}

// PeersInRole returns the peers having every one of the given roles, preserving order.
func PeersInRole(peers []Peer, roles ...string) []Peer {
	var filtered []Peer
	for _, p := range peers {
		matched := true
		for _, role := range roles {
			if !p.InRole(role) {
				matched = false
				break
			}
		}
		if matched {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// PeersInOrg returns the peers belonging to the given MSP, preserving order.
func PeersInOrg(peers []Peer, mspID string) []Peer {
	var filtered []Peer
	for _, p := range peers {
		if p.MSPID() == mspID {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
