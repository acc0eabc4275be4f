package request

import (
	"encoding/binary"
	"errors"

	"github.com/c4verify/lightclient/light"
	"github.com/c4verify/lightclient/ssz"
	"github.com/c4verify/lightclient/verify"
)

var (
	ErrEmptySyncData  = errors.New("request: empty sync_data")
	ErrMissingPeriods = errors.New("request: sync committee cache has no entry for this period")
)

// syncDataFieldSizes lays out sync_data: the attested header's five
// fields, the sync aggregate's bitfield and signature, and an optional
// committee the caller is vouching for (present only when bootstrapping a
// period the cache has not seen before; see committee_cache.go — per
// the cache's single-writer/many-reader discipline, installing it here is
// the only way a previously-missing period becomes available).
var syncDataFieldSizes = []int{8, 8, 32, 32, 32, 0, 96, 0, 48}

type syncDataWire struct {
	header             *light.LightHeader
	aggregate          *light.SyncAggregate
	committeePubkeys   [][]byte
	committeeAggregate []byte
}

func decodeSyncData(data []byte) (*syncDataWire, error) {
	if len(data) == 0 {
		return nil, ErrEmptySyncData
	}
	fields, err := ssz.UnmarshalVariableContainer(data, len(syncDataFieldSizes), syncDataFieldSizes)
	if err != nil {
		return nil, err
	}
	header := &light.LightHeader{
		Slot:          binary.LittleEndian.Uint64(fields[0]),
		ProposerIndex: binary.LittleEndian.Uint64(fields[1]),
	}
	copy(header.ParentRoot[:], fields[2])
	copy(header.StateRoot[:], fields[3])
	copy(header.BodyRoot[:], fields[4])

	bits, err := ssz.UnmarshalBitlist(fields[5])
	if err != nil {
		return nil, err
	}
	aggregate := &light.SyncAggregate{SyncCommitteeBits: packBits(bits)}
	copy(aggregate.Signature[:], fields[6])

	var pubkeys [][]byte
	if len(fields[7]) > 0 {
		pubkeys, err = ssz.UnmarshalList(fields[7], 48)
		if err != nil {
			return nil, err
		}
	}
	return &syncDataWire{
		header:             header,
		aggregate:          aggregate,
		committeePubkeys:   pubkeys,
		committeeAggregate: fields[8],
	}, nil
}

// packBits repacks a decoded bitlist back into a byte-per-8-bits bitfield,
// the form SyncAggregate.ParticipationCount/VerifySyncAggregate expect.
func packBits(bits []bool) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, b := range bits {
		if b {
			out[i/8] |= 1 << uint(i%8)
		}
	}
	return out
}

// resolveBodyRoot authenticates sd's header against the sync committee for
// its slot's period, installing a caller-supplied committee into cache if
// the period was previously unseen. It returns (bodyRoot, 0, nil) on
// success, or (zero, period, ErrMissingPeriods) when the period is absent
// from the cache and the caller supplied no committee to install.
func resolveBodyRoot(sd *syncDataWire, cache light.CommitteeCache, forkVersion [4]byte, genesisValidatorsRoot [32]byte) ([32]byte, uint64, error) {
	period := light.SyncCommitteePeriod(sd.header.Slot)

	committee, ok := cache.Get(period)
	if !ok {
		if len(sd.committeePubkeys) == 0 {
			return [32]byte{}, period, verify.NewError(verify.KindMissingPeriods, ErrMissingPeriods)
		}
		committee = &light.VerifierSyncCommittee{Pubkeys: toFixed48(sd.committeePubkeys)}
		copy(committee.AggregatePubkey[:], sd.committeeAggregate)
		cache.Put(period, committee)
	}

	if _, err := light.AuthenticateHeader(sd.header, sd.aggregate, committee, forkVersion, genesisValidatorsRoot); err != nil {
		return [32]byte{}, 0, verify.NewError(verify.KindBadSignature, err)
	}
	return sd.header.BodyRoot, 0, nil
}

func toFixed48(items [][]byte) [][48]byte {
	out := make([][48]byte, len(items))
	for i, item := range items {
		copy(out[i][:], item)
	}
	return out
}
