package chunkstore

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	CodecCBOR    = "cbor"
	CodecMsgPack = "msgpack"
)

// Codec serializes snapshots and the chunk values inside them.
type Codec interface {
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

type cborCodec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

// NewCBORCodec returns a codec using core deterministic encoding, so equal
// snapshots always produce equal bytes and equal seal digests.
func NewCBORCodec() (Codec, error) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, err
	}
	dec, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		return nil, err
	}
	return &cborCodec{enc: enc, dec: dec}, nil
}

func (c *cborCodec) Name() string { return CodecCBOR }
func (c *cborCodec) Marshal(v any) ([]byte, error) { return c.enc.Marshal(v) }
func (c *cborCodec) Unmarshal(data []byte, v any) error { return c.dec.Unmarshal(data, v) }

type msgpackCodec struct{}

// NewMsgPackCodec returns the msgpack codec. It is stateless.
func NewMsgPackCodec() Codec { return msgpackCodec{} }

func (msgpackCodec) Name() string { return CodecMsgPack }
func (msgpackCodec) Marshal(v any) ([]byte, error) { return msgpack.Marshal(v) }
func (msgpackCodec) Unmarshal(data []byte, v any) error { return msgpack.Unmarshal(data, v) }

// CodecByName maps a configured codec name to a Codec, or ErrUnknownCodec.
func CodecByName(name string) (Codec, error) {
	switch name {
	case CodecCBOR:
		return NewCBORCodec()
	case CodecMsgPack:
		return NewMsgPackCodec(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
}
