package chunkstore

// Snapshot is the persisted form of a sparse root. Only chunks that exist are
// recorded; the background value is stored once, encoded by the same codec as
// the chunk values.
type Snapshot struct {
	WorldID    string        `cbor:"1,keyasint" msgpack:"world_id"`
	Dims       uint8         `cbor:"2,keyasint" msgpack:"dims"`
	Log2Dim    uint8         `cbor:"3,keyasint" msgpack:"log2dim"`
	Background []byte        `cbor:"4,keyasint" msgpack:"background"`
	CreatedAt  int64         `cbor:"5,keyasint" msgpack:"created_at"`
	Chunks     []ChunkRecord `cbor:"6,keyasint" msgpack:"chunks"`
}

// ChunkRecord holds one leaf. Key is the chunk aligned origin; 2D snapshots
// leave Key[2] zero.
type ChunkRecord struct {
	Key    [3]int32 `cbor:"1,keyasint" msgpack:"key"`
	Mask   []uint64 `cbor:"2,keyasint" msgpack:"mask"`
	Values []byte   `cbor:"3,keyasint" msgpack:"values"`
}

// ActiveCount returns the number of set occupancy bits.
func (c *ChunkRecord) ActiveCount() int {
	m := bitmaskFromRecord(c)
	return m.CountOn()
}
