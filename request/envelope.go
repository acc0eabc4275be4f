package request

import (
	"errors"

	"github.com/c4verify/lightclient/ssz"
)

// Domain identifies which chain family a C4Request targets.
type Domain byte

const (
	DomainL1      Domain = 1
	DomainOPStack Domain = 6
)

func (d Domain) String() string {
	switch d {
	case DomainL1:
		return "l1"
	case DomainOPStack:
		return "op-stack"
	default:
		return "unknown"
	}
}

// Version is the 4-byte C4Request version header: (domain, major, minor,
// patch). The domain byte selects the SSZ schema used to decode the rest
// of the envelope; major/minor/patch are carried through for diagnostics
// but do not currently gate decoding.
type Version struct {
	Domain Domain
	Major  byte
	Minor  byte
	Patch  byte
}

var (
	ErrEnvelopeTooShort = errors.New("request: envelope shorter than version header")
	ErrUnknownDomain    = errors.New("request: unrecognized version.domain")
)

// Envelope is the decoded C4Request outer container: a version header plus
// three opaque union sections whose selector bytes are interpreted by the
// domain- and method-specific decoders in dispatch.go.
type Envelope struct {
	Version  Version
	Data     []byte
	Proof    []byte
	SyncData []byte
}

// envelopeFieldSizes describes C4Request for ssz.UnmarshalVariableContainer:
// a fixed 4-byte version field followed by three variable-size sections.
var envelopeFieldSizes = []int{4, 0, 0, 0}

// DecodeEnvelope parses a raw C4Request byte buffer into its four top-level
// fields. It does not interpret the union selectors inside Data/Proof/
// SyncData; callers pass the decoded Envelope to Dispatch for that.
func DecodeEnvelope(raw []byte) (*Envelope, error) {
	if len(raw) < 4 {
		return nil, ErrEnvelopeTooShort
	}
	fields, err := ssz.UnmarshalVariableContainer(raw, len(envelopeFieldSizes), envelopeFieldSizes)
	if err != nil {
		return nil, err
	}
	version := Version{
		Domain: Domain(fields[0][0]),
		Major:  fields[0][1],
		Minor:  fields[0][2],
		Patch:  fields[0][3],
	}
	if version.Domain != DomainL1 && version.Domain != DomainOPStack {
		return nil, ErrUnknownDomain
	}
	return &Envelope{
		Version:  version,
		Data:     fields[1],
		Proof:    fields[2],
		SyncData: fields[3],
	}, nil
}

// EncodeEnvelope is DecodeEnvelope's inverse, used by tests and by hosts
// that assemble a C4Request from its parts rather than receiving raw bytes.
func EncodeEnvelope(e *Envelope) []byte {
	header := [4]byte{byte(e.Version.Domain), e.Version.Major, e.Version.Minor, e.Version.Patch}
	offsetsLen := 3 * ssz.BytesPerLengthOffset
	base := 4 + offsetsLen
	dataOff := base
	proofOff := dataOff + len(e.Data)
	syncOff := proofOff + len(e.Proof)

	out := make([]byte, 0, syncOff+len(e.SyncData))
	out = append(out, header[:]...)
	var offBuf [4]byte
	putOffset := func(v int) {
		offBuf[0] = byte(v)
		offBuf[1] = byte(v >> 8)
		offBuf[2] = byte(v >> 16)
		offBuf[3] = byte(v >> 24)
		out = append(out, offBuf[:]...)
	}
	putOffset(dataOff)
	putOffset(proofOff)
	putOffset(syncOff)
	out = append(out, e.Data...)
	out = append(out, e.Proof...)
	out = append(out, e.SyncData...)
	return out
}
