package opstack

import (
	"errors"

	"github.com/holiman/uint256"

	"github.com/c4verify/lightclient/core/types"
	"github.com/c4verify/lightclient/crypto"
	"github.com/c4verify/lightclient/light"
)

var (
	ErrInvalidSignatureLength = errors.New("opstack: signature must be 65 bytes [R || S || V]")
	ErrInvalidRecoveryID      = errors.New("opstack: invalid signature recovery id")
	ErrUnknownChain           = errors.New("opstack: chain id has no registered sequencer")
	ErrSequencerMismatch      = errors.New("opstack: recovered signer does not match registered sequencer")
)

// signingMessage reproduces the OP-Stack unsafe-block signing preimage:
//
//	keccak256(domain(32 zero bytes) || chain_id(big-endian uint256) || keccak256(payload))
//
// Grounded verbatim in verifySequencerSignature from the op-node preconf
// capture reference tool.
func signingMessage(payload []byte, chainID uint64) []byte {
	domain := make([]byte, 32)
	chainIDBytes := uint256.NewInt(chainID).Bytes32()

	payloadHash := crypto.Keccak256(payload)
	return crypto.Keccak256(domain, chainIDBytes[:], payloadHash)
}

// RecoverSequencer recovers the address that produced sig over payload for
// the given chain ID. sig is the 65-byte [R || S || V] recoverable ECDSA
// signature; V may be given in either {0,1} or {27,28} form.
func RecoverSequencer(payload []byte, sig [65]byte, chainID uint64) (types.Address, error) {
	msg := signingMessage(payload, chainID)

	recID := sig[64]
	if recID >= 27 {
		recID -= 27
	}
	if recID > 1 {
		return types.Address{}, ErrInvalidRecoveryID
	}

	normalized := sig
	normalized[64] = recID

	pub, err := crypto.SigToPub(msg, normalized[:])
	if err != nil {
		return types.Address{}, err
	}
	return crypto.PubkeyToAddress(*pub), nil
}

// VerifySequencerSignature recovers the signer of payload and checks it
// against the sequencer address registered for chainID.
func VerifySequencerSignature(payload []byte, sig [65]byte, chainID uint64) (types.Address, error) {
	spec, ok := light.LookupChainSpec(chainID)
	if !ok || spec.SequencerAddress == ([20]byte{}) {
		return types.Address{}, ErrUnknownChain
	}

	addr, err := RecoverSequencer(payload, sig, chainID)
	if err != nil {
		return types.Address{}, err
	}
	if [20]byte(addr) != spec.SequencerAddress {
		return addr, ErrSequencerMismatch
	}
	return addr, nil
}
