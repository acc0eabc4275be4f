// dispatch.go implements the top-level C4Request dispatcher: it decodes
// the envelope, authenticates the attested header (or OP-Stack sequencer
// signature) from sync_data/proof, decodes the proof union's selector, and
// routes to the matching verify package function — grounded in the
// teacher's pkg/rpc/method_registry.go Call dispatch shape, generalized
// from method-name lookup to (domain, proof-kind) lookup.
package request

import (
	"errors"

	"github.com/c4verify/lightclient/core/types"
	"github.com/c4verify/lightclient/light"
	"github.com/c4verify/lightclient/opstack"
	"github.com/c4verify/lightclient/ssz"
	"github.com/c4verify/lightclient/verify"
)

// ProofKind is the proof union's selector byte, shared across the L1 and
// OP-Stack domains. The L1 domain accepts all eight kinds; the OP-Stack
// domain accepts six and rejects ProofLogs and ProofCall.
type ProofKind byte

const (
	ProofAccount ProofKind = iota
	ProofTransaction
	ProofReceipt
	ProofLogs
	ProofCall
	ProofBlock
	ProofBlockNumber
	ProofWitness
)

var (
	ErrUnknownProofKind   = errors.New("request: unrecognized proof selector")
	ErrNoMainnetChainSpec = errors.New("request: no chain spec registered for mainnet")
)

// VerifyResult is the decoded, language-level form of the wire-level
// Result: {success, data, error?, first_missing_period?, last_missing_period?}.
type VerifyResult struct {
	Success            bool
	Data               interface{}
	Err                error
	FirstMissingPeriod *uint64
	LastMissingPeriod  *uint64
}

func failure(err error) *VerifyResult {
	return &VerifyResult{Success: false, Err: err}
}

func success(data interface{}) *VerifyResult {
	return &VerifyResult{Success: true, Data: data}
}

// Dispatch decodes raw as a C4Request and verifies it end to end, using
// cache as the sync-committee pubkey cache for L1 requests (see
// light.CommitteeCache and resolveBodyRoot). method is the JSON-RPC method
// name the host is proxying (e.g. "eth_getBalance"); it selects which
// field of an AccountProof's result matters and is otherwise opaque to
// this package.
func Dispatch(method string, raw []byte, cache light.CommitteeCache) *VerifyResult {
	env, err := DecodeEnvelope(raw)
	if err != nil {
		return failure(verify.NewError(verify.KindInvalidProof, err))
	}

	switch env.Version.Domain {
	case DomainL1:
		return dispatchL1(method, env, cache)
	case DomainOPStack:
		return dispatchOPStack(method, env)
	default:
		return failure(verify.NewError(verify.KindInvalidProof, ErrUnknownDomain))
	}
}

func splitProof(proof []byte) (ProofKind, []byte, error) {
	if len(proof) < 1 {
		return 0, nil, ErrUnknownProofKind
	}
	kind := ProofKind(proof[0])
	if kind > ProofWitness {
		return 0, nil, ErrUnknownProofKind
	}
	return kind, proof[1:], nil
}

func dispatchL1(method string, env *Envelope, cache light.CommitteeCache) *VerifyResult {
	sd, err := decodeSyncData(env.SyncData)
	if err != nil {
		return failure(verify.NewError(verify.KindInvalidProof, err))
	}

	spec, ok := light.LookupChainSpec(1)
	if !ok {
		return failure(verify.NewError(verify.KindUnsupportedChain, ErrNoMainnetChainSpec))
	}
	bodyRoot, missingPeriod, err := resolveBodyRoot(sd, cache, spec.DenebForkVersion, spec.GenesisValidatorsRoot)
	if err != nil {
		if verr, ok := err.(*verify.Error); ok && verr.Kind == verify.KindMissingPeriods {
			p := missingPeriod
			return &VerifyResult{Success: false, Err: err, FirstMissingPeriod: &p, LastMissingPeriod: &p}
		}
		return failure(err)
	}

	kind, body, err := splitProof(env.Proof)
	if err != nil {
		return failure(verify.NewError(verify.KindInvalidProof, err))
	}

	switch kind {
	case ProofAccount:
		addr, err := decodeAddressData(env.Data)
		if err != nil {
			return failure(verify.NewError(verify.KindInvalidProof, err))
		}
		res, err := verifyL1Account(bodyRoot, method, addr, body)
		if err != nil {
			return failure(err)
		}
		return success(res)

	case ProofWitness:
		addr, err := decodeAddressData(env.Data)
		if err != nil {
			return failure(verify.NewError(verify.KindInvalidProof, err))
		}
		res, err := verifyL1Witness(bodyRoot, addr, body)
		if err != nil {
			return failure(err)
		}
		return success(res)

	case ProofCall:
		addr, err := decodeAddressData(env.Data)
		if err != nil {
			return failure(verify.NewError(verify.KindInvalidProof, err))
		}
		res, err := verifyL1Call(bodyRoot, addr, body)
		if err != nil {
			return failure(err)
		}
		return success(res)

	case ProofReceipt:
		req, err := verifyL1Receipt(bodyRoot, body)
		if err != nil {
			return failure(err)
		}
		if claimed, ok := decodeHash32Data(env.Data); ok {
			if err := verify.VerifyTxHash(req.Receipt.RawTx, claimed); err != nil {
				return failure(err)
			}
		}
		return success(req)

	case ProofTransaction:
		tx, err := verifyL1Tx(bodyRoot, body)
		if err != nil {
			return failure(err)
		}
		if claimed, ok := decodeHash32Data(env.Data); ok {
			if err := verify.VerifyTxHash(tx.RawTx, claimed); err != nil {
				return failure(err)
			}
		}
		return success(tx)

	case ProofLogs:
		claims, err := verifyL1Logs(bodyRoot, body)
		if err != nil {
			return failure(err)
		}
		return success(claims)

	case ProofBlock:
		res, err := verifyL1Block(bodyRoot, body)
		if err != nil {
			return failure(err)
		}
		return success(res)

	case ProofBlockNumber:
		res, err := verifyL1BlockNumber(bodyRoot, body)
		if err != nil {
			return failure(err)
		}
		return success(res)
	}
	return failure(verify.NewError(verify.KindInvalidProof, ErrUnknownProofKind))
}

// opProofFieldSizes is the OP-Stack analogue of the L1 sync_data header:
// the chain id, the sequencer's 65-byte recoverable signature, and the
// decompressed SSZ execution payload the sequencer signed. No witness or
// beacon body root is involved; the payload's own fixed-offset fields are
// trusted once the signature checks out.
var opProofFieldSizes = []int{8, 65, 0, 0}

func dispatchOPStack(method string, env *Envelope) *VerifyResult {
	fields, err := ssz.UnmarshalVariableContainer(env.Proof, len(opProofFieldSizes), opProofFieldSizes)
	if err != nil {
		return failure(verify.NewError(verify.KindInvalidProof, err))
	}
	chainID := beUint64(fields[0])
	var sig [65]byte
	copy(sig[:], fields[1])
	payloadBytes := fields[2]
	body := fields[3]

	if _, err := opstack.VerifySequencerSignature(payloadBytes, sig, chainID); err != nil {
		return failure(verify.NewError(verify.KindBadSignature, err))
	}
	payload, err := opstack.NewExecutionPayload(payloadBytes)
	if err != nil {
		return failure(verify.NewError(verify.KindInvalidProof, err))
	}

	kind, proofBody, err := splitProof(body)
	if err != nil {
		return failure(verify.NewError(verify.KindInvalidProof, err))
	}

	switch kind {
	case ProofAccount:
		addr, err := decodeAddressData(env.Data)
		if err != nil {
			return failure(verify.NewError(verify.KindInvalidProof, err))
		}
		account, err := decodeAccountProofData(proofBody)
		if err != nil {
			return failure(verify.NewError(verify.KindInvalidProof, err))
		}
		res, err := verify.VerifyOPAccount(&verify.OPAccountRequest{Method: method, Address: addr, Payload: payload, Account: account})
		if err != nil {
			return failure(err)
		}
		return success(res)

	case ProofWitness:
		addr, err := decodeAddressData(env.Data)
		if err != nil {
			return failure(verify.NewError(verify.KindInvalidProof, err))
		}
		fields, err := ssz.UnmarshalVariableContainer(proofBody, 2, []int{0, 0})
		if err != nil {
			return failure(verify.NewError(verify.KindInvalidProof, err))
		}
		account, err := decodeAccountProofData(fields[0])
		if err != nil {
			return failure(verify.NewError(verify.KindInvalidProof, err))
		}
		slots, err := decodeStorageProofList(fields[1])
		if err != nil {
			return failure(verify.NewError(verify.KindInvalidProof, err))
		}
		storageReqs := make([]verify.StorageRequest, len(slots))
		for i, s := range slots {
			storageReqs[i] = verify.StorageRequest{StorageHash: account.StorageHash, Slot: *s}
		}
		res, err := verify.VerifyOPWitness(&verify.OPWitnessRequest{Payload: payload, Address: addr, Account: account, Slots: storageReqs})
		if err != nil {
			return failure(err)
		}
		return success(res)

	case ProofReceipt:
		receipt, err := decodeOPReceiptProof(proofBody)
		if err != nil {
			return failure(verify.NewError(verify.KindInvalidProof, err))
		}
		req := &verify.OPReceiptRequest{Payload: payload, Receipt: *receipt}
		if err := verify.VerifyOPReceipt(req); err != nil {
			return failure(err)
		}
		return success(req)

	case ProofTransaction:
		tx, err := decodeOPTxProof(proofBody)
		if err != nil {
			return failure(verify.NewError(verify.KindInvalidProof, err))
		}
		req := &verify.OPTxRequest{Payload: payload, Tx: *tx}
		if err := verify.VerifyOPTx(req); err != nil {
			return failure(err)
		}
		return success(tx)

	case ProofBlock:
		res, err := verify.VerifyOPBlock(payload)
		if err != nil {
			return failure(err)
		}
		return success(res)

	case ProofBlockNumber:
		res, err := verify.VerifyOPBlockNumber(payload)
		if err != nil {
			return failure(err)
		}
		return success(res)
	}
	return failure(verify.NewError(verify.KindInvalidProof, ErrUnknownProofKind))
}

func decodeAddressData(data []byte) (types.Address, error) {
	if len(data) != types.AddressLength {
		return types.Address{}, ErrMalformedData
	}
	var a types.Address
	copy(a[:], data)
	return a, nil
}

func decodeHash32Data(data []byte) (types.Hash, bool) {
	if len(data) != types.HashLength {
		return types.Hash{}, false
	}
	var h types.Hash
	copy(h[:], data)
	return h, true
}

var ErrMalformedData = errors.New("request: malformed data section for this proof kind")
