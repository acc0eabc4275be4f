package light

// SyncCommitteeSize is the fixed number of validators in a sync committee,
// per SYNC_COMMITTEE_SIZE in the Altair beacon chain spec.
const SyncCommitteeSize = 512

// Generalized indices of fields inside the BeaconState container, as used
// to verify Merkle proofs rooted at a trusted state root. These match the
// Altair/Bellatrix/Capella/Deneb BeaconState field layout: the container has
// between 17 and 32 fields, so its generalized indices live at depth 5 (32
// slots, next power of two above the field count) rather than the depth-3
// layout used by the 5-field BeaconBlockHeader.
const (
	// FinalizedCheckpointGIndex is finalized_checkpoint's slot within
	// BeaconState, combined with checkpoint.root's position inside the
	// 2-field Checkpoint container (epoch, root): 105 = 52*2 + 1.
	FinalizedCheckpointGIndex = 105

	// CurrentSyncCommitteeGIndex locates current_sync_committee inside
	// BeaconState.
	CurrentSyncCommitteeGIndex = 54

	// NextSyncCommitteeGIndex locates next_sync_committee inside BeaconState.
	NextSyncCommitteeGIndex = 55

	// ExecutionPayloadGIndex locates the execution_payload field within a
	// post-Bellatrix BeaconBlockBody.
	ExecutionPayloadGIndex = 25

	// LatestExecutionPayloadHeaderStateRootGIndex locates state_root within
	// ExecutionPayloadHeader, used to bind an execution-layer block to the
	// beacon state that attests to it.
	LatestExecutionPayloadHeaderStateRootGIndex = 18
)

// ChainSpec describes the fork schedule and genesis parameters needed to
// reconstruct a chain's domain separation values, keyed by EL chain ID.
type ChainSpec struct {
	ChainID            uint64
	Name               string
	GenesisValidatorsRoot [32]byte
	GenesisForkVersion [4]byte
	AltairForkVersion  [4]byte
	BellatrixForkVersion [4]byte
	CapellaForkVersion [4]byte
	DenebForkVersion   [4]byte
	ElectraForkVersion [4]byte
	// SequencerAddress is the OP-Stack sequencer address authorized to sign
	// L2 unsafe blocks on this chain; unset for L1 chain specs.
	SequencerAddress [20]byte
}

// chainSpecs holds the known chain specifications this verifier accepts.
// Consensus genesis roots and fork versions are fixed protocol constants;
// OP-Stack sequencer addresses are grounded in the upstream op-proposer
// bridge's hardcoded per-chain table.
var chainSpecs = map[uint64]ChainSpec{
	1: {
		ChainID:              1,
		Name:                 "mainnet",
		GenesisForkVersion:   [4]byte{0x00, 0x00, 0x00, 0x00},
		AltairForkVersion:    [4]byte{0x01, 0x00, 0x00, 0x00},
		BellatrixForkVersion: [4]byte{0x02, 0x00, 0x00, 0x00},
		CapellaForkVersion:   [4]byte{0x03, 0x00, 0x00, 0x00},
		DenebForkVersion:     [4]byte{0x04, 0x00, 0x00, 0x00},
		ElectraForkVersion:   [4]byte{0x05, 0x00, 0x00, 0x00},
	},
	10: {
		ChainID:          10,
		Name:             "optimism",
		SequencerAddress: [20]byte{0xaa, 0xaa, 0x45, 0xd9, 0x54, 0x9e, 0xda, 0x09, 0xe7, 0x09, 0x37, 0x01, 0x35, 0x20, 0x21, 0x43, 0x82, 0xff, 0xc4, 0xa2},
	},
	8453: {
		ChainID:          8453,
		Name:             "base",
		SequencerAddress: [20]byte{0xaf, 0x6e, 0x19, 0xbe, 0x0f, 0x9c, 0xe7, 0xf8, 0xaf, 0xd4, 0x9a, 0x18, 0x24, 0x85, 0x10, 0x23, 0xa8, 0x24, 0x9e, 0x8a},
	},
	480: {
		ChainID:          480,
		Name:             "worldchain",
		SequencerAddress: [20]byte{0x22, 0x70, 0xd6, 0xec, 0x8e, 0x76, 0x0d, 0xaa, 0x31, 0x7d, 0xd9, 0x78, 0xcf, 0xb9, 0x8c, 0x8f, 0x14, 0x4b, 0x1f, 0x3a},
	},
	7777777: {
		ChainID:          7777777,
		Name:             "zora",
		SequencerAddress: [20]byte{0x3d, 0xc8, 0xdf, 0xd0, 0x70, 0x9c, 0x83, 0x5c, 0xad, 0x15, 0xa6, 0xa2, 0x7e, 0x08, 0x9f, 0xf4, 0xcf, 0x4c, 0x92, 0x28},
	},
	130: {
		ChainID:          130,
		Name:             "unichain",
		SequencerAddress: [20]byte{0x83, 0x3c, 0x6f, 0x27, 0x84, 0x74, 0xa7, 0x86, 0x58, 0xaf, 0x91, 0xae, 0x8e, 0xdc, 0x92, 0x6f, 0xe3, 0x3a, 0x23, 0x0e},
	},
}

// LookupChainSpec returns the known ChainSpec for chainID, or false if the
// chain is not one this verifier supports.
func LookupChainSpec(chainID uint64) (ChainSpec, bool) {
	spec, ok := chainSpecs[chainID]
	return spec, ok
}
