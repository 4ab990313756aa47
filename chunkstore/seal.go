package chunkstore

import (
	"bytes"
	"crypto"
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	dtcbor "github.com/datatrails/go-datatrails-common/cbor"
	"github.com/veraison/go-cose"
)

// Manifest is the signed commitment to one snapshot. It binds the snapshot
// bytes, by digest, to the world and sequence number they were saved under.
type Manifest struct {
	WorldID    string `cbor:"1,keyasint"`
	Seq        uint32 `cbor:"2,keyasint"`
	Dims       uint8  `cbor:"3,keyasint"`
	Codec      string `cbor:"4,keyasint"`
	ChunkCount uint32 `cbor:"5,keyasint"`
	Digest     []byte `cbor:"6,keyasint"`
	// Timestamp is the unix time (milliseconds) read when the manifest was
	// signed.
	Timestamp int64 `cbor:"7,keyasint"`
}

// NewSealCodec returns the deterministic cbor codec seals are encoded with.
func NewSealCodec() (dtcbor.CBORCodec, error) {
	codec, err := dtcbor.NewCBORCodec(
		dtcbor.NewDeterministicEncOpts(),
		dtcbor.NewDeterministicDecOpts(),
	)
	if err != nil {
		return dtcbor.CBORCodec{}, err
	}
	return codec, nil
}

// Sealer signs manifests as COSE Sign1 messages.
type Sealer struct {
	keyID     string
	cborCodec dtcbor.CBORCodec
	signer    cose.Signer
}

// NewSealer returns a Sealer that signs with signer and labels seals with keyID.
func NewSealer(keyID string, cborCodec dtcbor.CBORCodec, signer cose.Signer) Sealer {
	return Sealer{keyID: keyID, cborCodec: cborCodec, signer: signer}
}

// Seal signs m. The manifest is attached as the message payload.
func (s Sealer) Seal(m Manifest) ([]byte, error) {
	if s.signer == nil {
		return nil, ErrNoSigner
	}
	payload, err := s.cborCodec.MarshalCBOR(m)
	if err != nil {
		return nil, err
	}
	msg := cose.Sign1Message{
		Headers: cose.Headers{
			Protected: cose.ProtectedHeader{
				cose.HeaderLabelAlgorithm: s.signer.Algorithm(),
			},
			Unprotected: cose.UnprotectedHeader{
				cose.HeaderLabelKeyID: []byte(s.keyID),
			},
		},
		Payload: payload,
	}
	if err := msg.Sign(rand.Reader, nil, s.signer); err != nil {
		return nil, err
	}
	return msg.MarshalCBOR()
}

// NewES256Signer returns a cose signer for a P-256 private key.
func NewES256Signer(key crypto.Signer) (cose.Signer, error) {
	return cose.NewSigner(cose.AlgorithmES256, key)
}

// NewES256Verifier returns a cose verifier for a P-256 public key.
func NewES256Verifier(key crypto.PublicKey) (cose.Verifier, error) {
	return cose.NewVerifier(cose.AlgorithmES256, key)
}

// DecodeSeal returns the manifest carried by a seal without checking the
// signature.
func DecodeSeal(codec dtcbor.CBORCodec, seal []byte) (*cose.Sign1Message, Manifest, error) {
	var msg cose.Sign1Message
	if err := msg.UnmarshalCBOR(seal); err != nil {
		return nil, Manifest{}, err
	}
	var m Manifest
	if err := codec.UnmarshalInto(msg.Payload, &m); err != nil {
		return nil, Manifest{}, err
	}
	return &msg, m, nil
}

// VerifySeal checks the seal signature and that it commits to snapshot.
func VerifySeal(codec dtcbor.CBORCodec, verifier cose.Verifier, seal []byte, snapshot []byte) (Manifest, error) {
	msg, m, err := DecodeSeal(codec, seal)
	if err != nil {
		return Manifest{}, err
	}
	if err := msg.Verify(nil, verifier); err != nil {
		return Manifest{}, fmt.Errorf("%w: %v", ErrSealVerifyFailed, err)
	}
	digest := sha256.Sum256(snapshot)
	if !bytes.Equal(digest[:], m.Digest) {
		return Manifest{}, fmt.Errorf("%w: snapshot digest mismatch", ErrSealVerifyFailed)
	}
	return m, nil
}
