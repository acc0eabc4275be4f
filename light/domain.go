package light

import "github.com/c4verify/lightclient/ssz"

// DomainType identifies the purpose a BLS signature was produced for, per
// the beacon chain spec's domain separation scheme. Sync committee messages
// use DomainSyncCommittee.
type DomainType [4]byte

// Domain type constants, matching the beacon chain spec's DOMAIN_* values.
var (
	DomainBeaconProposer  = DomainType{0x00, 0x00, 0x00, 0x00}
	DomainBeaconAttester  = DomainType{0x01, 0x00, 0x00, 0x00}
	DomainRandao          = DomainType{0x02, 0x00, 0x00, 0x00}
	DomainDeposit         = DomainType{0x03, 0x00, 0x00, 0x00}
	DomainVoluntaryExit   = DomainType{0x04, 0x00, 0x00, 0x00}
	DomainSelectionProof  = DomainType{0x05, 0x00, 0x00, 0x00}
	DomainAggregateAndProof = DomainType{0x06, 0x00, 0x00, 0x00}
	DomainSyncCommittee   = DomainType{0x07, 0x00, 0x00, 0x00}
)

// DomainSeparation computes the 32-byte domain value that, combined with an
// object's hash tree root via ComputeSigningRoot, produces the message a
// validator actually signs. It binds a signature to a domain type, a fork
// version, and the chain's genesis validators root so that signatures from
// one fork or chain can never be replayed on another.
//
//	fork_data_root = hash_tree_root(ForkData{current_version, genesis_validators_root})
//	domain = domain_type || fork_data_root[:28]
func DomainSeparation(domainType DomainType, forkVersion [4]byte, genesisValidatorsRoot [32]byte) [32]byte {
	forkDataRoot := computeForkDataRoot(forkVersion, genesisValidatorsRoot)
	var domain [32]byte
	copy(domain[:4], domainType[:])
	copy(domain[4:], forkDataRoot[:28])
	return domain
}

// computeForkDataRoot merkleizes the two-field ForkData container: the fork
// version right-padded to 32 bytes, and the genesis validators root.
func computeForkDataRoot(forkVersion [4]byte, genesisValidatorsRoot [32]byte) [32]byte {
	var versionLeaf [32]byte
	copy(versionLeaf[:4], forkVersion[:])
	return ssz.ConcatHash(versionLeaf, genesisValidatorsRoot)
}

// ComputeSigningRoot computes the message a validator signs for a given
// object root and domain: signing_root = sha256(object_root || domain).
func ComputeSigningRoot(objectRoot, domain [32]byte) [32]byte {
	return ssz.ConcatHash(objectRoot, domain)
}

// AuthenticateHeader verifies that a sync committee reached quorum and
// produced a valid aggregate BLS signature over header, domain-separated
// for DomainSyncCommittee under the given fork version and genesis
// validators root. Returns the number of participating committee members.
func AuthenticateHeader(
	header *LightHeader,
	aggregate *SyncAggregate,
	committee *VerifierSyncCommittee,
	forkVersion [4]byte,
	genesisValidatorsRoot [32]byte,
) (int, error) {
	if header == nil {
		return 0, ErrVerifierNilHeader
	}
	domain := DomainSeparation(DomainSyncCommittee, forkVersion, genesisValidatorsRoot)
	signingRoot := ComputeSigningRoot(header.HashTreeRoot(), domain)

	var hv HeaderVerifier
	return hv.VerifySyncAggregate(aggregate, signingRoot, committee)
}
