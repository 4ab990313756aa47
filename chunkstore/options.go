package chunkstore

import (
	dtcbor "github.com/datatrails/go-datatrails-common/cbor"
	"github.com/veraison/go-cose"
)

type SaverOptions struct {
	Codec        Codec
	SealCodec    *dtcbor.CBORCodec
	Signer       cose.Signer
	KeyID        string
	COSEVerifier cose.Verifier
	FailIfExists bool
}

// Option is a generic option type used for the saver. Implementations type
// assert to their options record and ignore options that do not apply.
type Option func(any)

func WithCodec(codec Codec) Option {
	return func(opts any) {
		if o, ok := opts.(*SaverOptions); ok {
			o.Codec = codec
		}
	}
}

func WithSealCodec(codec *dtcbor.CBORCodec) Option {
	return func(opts any) {
		if o, ok := opts.(*SaverOptions); ok {
			o.SealCodec = codec
		}
	}
}

// WithSigner enables sealing. Every saved snapshot gets a signed manifest.
func WithSigner(signer cose.Signer, keyID string) Option {
	return func(opts any) {
		if o, ok := opts.(*SaverOptions); ok {
			o.Signer = signer
			o.KeyID = keyID
		}
	}
}

// WithCOSEVerifier makes loads verify the seal before decoding.
func WithCOSEVerifier(verifier cose.Verifier) Option {
	return func(opts any) {
		if o, ok := opts.(*SaverOptions); ok {
			o.COSEVerifier = verifier
		}
	}
}

func WithFailIfExists(fail bool) Option {
	return func(opts any) {
		if o, ok := opts.(*SaverOptions); ok {
			o.FailIfExists = fail
		}
	}
}
