// Package verify implements the per-method domain verifiers: each one binds
// a claimed execution-layer fact (an account field, a storage slot, a
// transaction receipt, a log) to an authenticated beacon block body root via
// an SSZ Merkle proof, then checks the claimed fact against the execution
// layer's own Merkle-Patricia trie proof. Every verifier here is stateless
// and takes its trust root (bodyRoot) as an argument; establishing that root
// is light.HeaderVerifier's job, not this package's.
package verify

import "errors"

// Kind classifies why a verification failed, matching the failure taxonomy
// callers need to distinguish (a malformed proof is not the same failure as
// an authenticated-but-wrong root, which is not the same as an unsupported
// request shape).
type Kind int

const (
	// KindInvalidProof covers malformed or non-verifying Merkle/MPT proofs.
	KindInvalidProof Kind = iota
	// KindRootMismatch covers proofs that verify against some root, but not
	// the one the request claims to bind to.
	KindRootMismatch
	// KindBadSignature covers sync-committee or sequencer signature failures.
	KindBadSignature
	// KindUnsupportedChain covers chain ids with no registered chain spec.
	KindUnsupportedChain
	// KindUnsupportedMethod covers methods this verifier has no handler for.
	KindUnsupportedMethod
	// KindUnsupportedOverride covers eth_call state overrides outside the
	// supported set.
	KindUnsupportedOverride
	// KindAddressMismatch covers a proof whose address does not match the
	// address the request claims to verify.
	KindAddressMismatch
	// KindMissingPeriods covers sync-committee updates that skip one or more
	// periods the verifier has no committee for.
	KindMissingPeriods
)

func (k Kind) String() string {
	switch k {
	case KindInvalidProof:
		return "invalid_proof"
	case KindRootMismatch:
		return "root_mismatch"
	case KindBadSignature:
		return "bad_signature"
	case KindUnsupportedChain:
		return "unsupported_chain"
	case KindUnsupportedMethod:
		return "unsupported_method"
	case KindUnsupportedOverride:
		return "unsupported_override"
	case KindAddressMismatch:
		return "address_mismatch"
	case KindMissingPeriods:
		return "missing_periods"
	default:
		return "unknown"
	}
}

// Error wraps an underlying verification failure with its Kind, so callers
// can branch on the failure class without string-matching error text.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func wrap(kind Kind, err error) error {
	return &Error{Kind: kind, Err: err}
}

// NewError builds a *Error for callers outside this package — the request
// dispatcher needs to classify failures (a bad sync-committee signature, an
// unknown chain id) that originate in light or opstack, not here.
func NewError(kind Kind, err error) error {
	return wrap(kind, err)
}

var (
	ErrNilRequest          = errors.New("verify: nil request")
	ErrNilProof            = errors.New("verify: nil proof")
	ErrBodyRootBind        = errors.New("verify: execution payload fields do not bind to beacon body root")
	ErrAddressMismatch     = errors.New("verify: proof address does not match requested address")
	ErrAbsenceMismatch     = errors.New("verify: absence proof claims a non-zero value")
	ErrStorageRootMismatch = errors.New("verify: storage proof root does not match account's verified storage hash")
	ErrUnsupportedMethod   = errors.New("verify: unsupported method for this request shape")
	ErrValueMismatch       = errors.New("verify: proved value does not match claimed value")
)
