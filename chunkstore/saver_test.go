package chunkstore

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/veraison/go-cose"
	"github.com/taylorrsallen/Luxana/voxel"
	"github.com/taylorrsallen/Luxana/voxeltesting"
)

func newSealedSaver(t *testing.T, tc voxeltesting.TestContext, store Store, opts ...Option) *Saver {
	key := tc.GenerateECKey()
	signer, err := NewES256Signer(key)
	require.NoError(t, err)
	verifier, err := NewES256Verifier(key.Public())
	require.NoError(t, err)

	opts = append([]Option{WithSigner(signer, "test-key"), WithCOSEVerifier(verifier)}, opts...)
	s, err := NewSaver(tc.Log, store, opts...)
	require.NoError(t, err)
	return s
}

func TestSaveLoad2d(t *testing.T) {
	tc := voxeltesting.NewTestContext(t, voxeltesting.TestConfig{StartTimeMS: 1700000000002, TestLabelPrefix: "saver"})
	ctx := context.Background()

	for _, name := range []string{CodecCBOR, CodecMsgPack} {
		t.Run(name, func(t *testing.T) {
			codec, err := CodecByName(name)
			require.NoError(t, err)
			store, err := NewDirStore(tc.Log, t.TempDir())
			require.NoError(t, err)
			s := newSealedSaver(t, tc, store, WithCodec(codec))

			root, err := voxel.NewSparseRoot2d[uint16](3, 0)
			require.NoError(t, err)
			written := tc.FillRandom2d(root, 200)

			world := uuid.New()
			require.NoError(t, Save2d(ctx, s, world, 1, root))

			m, err := s.Verify(ctx, world, 1)
			require.NoError(t, err)
			require.Equal(t, world.String(), m.WorldID)
			require.Equal(t, uint32(1), m.Seq)
			require.Equal(t, name, m.Codec)
			require.Equal(t, uint32(root.ChunkCount()), m.ChunkCount)

			got, err := Load2d[uint16](ctx, s, world, 1)
			require.NoError(t, err)
			for c, v := range written {
				gv, on := got.ActiveValue(c)
				require.True(t, on)
				require.Equal(t, v, gv)
			}

			_, err = Load2d[uint16](ctx, s, world, 2)
			require.ErrorIs(t, err, ErrSnapshotNotFound)
		})
	}
}

func TestSaveLoad3dUnsealed(t *testing.T) {
	tc := voxeltesting.NewTestContext(t, voxeltesting.TestConfig{StartTimeMS: 1700000000003, TestLabelPrefix: "saver"})
	ctx := context.Background()

	store, err := NewDirStore(tc.Log, tc.Dir)
	require.NoError(t, err)
	s, err := NewSaver(tc.Log, store, WithCodec(NewMsgPackCodec()))
	require.NoError(t, err)

	root, err := voxel.NewSparseRoot3d[float32](2, 0.5)
	require.NoError(t, err)
	written := tc.FillRandom3d(root, 100)

	world := uuid.New()
	require.NoError(t, Save3d(ctx, s, world, 0, root))

	// without a signer no seal is written
	_, err = store.Get(ctx, SealPath(world, 0))
	require.ErrorIs(t, err, ErrSnapshotNotFound)

	got, err := Load3d[float32](ctx, s, world, 0)
	require.NoError(t, err)
	require.Equal(t, float32(0.5), got.Background())
	for c, v := range written {
		require.Equal(t, v, got.Value(c))
	}

	_, err = Load2d[float32](ctx, s, world, 0)
	require.ErrorIs(t, err, ErrDimsMismatch)
}

func TestSealTamperDetected(t *testing.T) {
	tc := voxeltesting.NewTestContext(t, voxeltesting.TestConfig{TestLabelPrefix: "saver"})
	ctx := context.Background()

	store, err := NewDirStore(tc.Log, tc.Dir)
	require.NoError(t, err)
	s := newSealedSaver(t, tc, store)

	root, err := voxel.NewSparseRoot2d[uint8](2, 0)
	require.NoError(t, err)
	root.SetValueOn(voxel.IVec2{X: 4, Y: 4}, 9)

	world := uuid.New()
	require.NoError(t, Save2d(ctx, s, world, 5, root))

	data, err := store.Get(ctx, SnapshotPath(world, 5))
	require.NoError(t, err)
	data[len(data)-1] ^= 0xff
	require.NoError(t, store.Put(ctx, SnapshotPath(world, 5), data, false))

	_, err = Load2d[uint8](ctx, s, world, 5)
	require.ErrorIs(t, err, ErrSealVerifyFailed)
	_, err = s.Verify(ctx, world, 5)
	require.ErrorIs(t, err, ErrSealVerifyFailed)
}

func TestSealWrongKey(t *testing.T) {
	tc := voxeltesting.NewTestContext(t, voxeltesting.TestConfig{TestLabelPrefix: "saver"})
	ctx := context.Background()

	store, err := NewDirStore(tc.Log, tc.Dir)
	require.NoError(t, err)
	s := newSealedSaver(t, tc, store)

	root, err := voxel.NewSparseRoot2d[uint8](2, 0)
	require.NoError(t, err)
	root.SetValueOn(voxel.IVec2{X: 0, Y: 0}, 1)

	world := uuid.New()
	require.NoError(t, Save2d(ctx, s, world, 1, root))

	other := tc.GenerateECKey()
	verifier, err := NewES256Verifier(other.Public())
	require.NoError(t, err)
	reader, err := NewSaver(tc.Log, store, WithCOSEVerifier(verifier))
	require.NoError(t, err)

	_, err = reader.Verify(ctx, world, 1)
	require.ErrorIs(t, err, ErrSealVerifyFailed)
}

func TestSaveFailIfExists(t *testing.T) {
	tc := voxeltesting.NewTestContext(t, voxeltesting.TestConfig{TestLabelPrefix: "saver"})
	ctx := context.Background()

	store, err := NewDirStore(tc.Log, tc.Dir)
	require.NoError(t, err)
	s, err := NewSaver(tc.Log, store, WithFailIfExists(true))
	require.NoError(t, err)

	root, err := voxel.NewSparseRoot2d[uint8](2, 0)
	require.NoError(t, err)

	world := uuid.New()
	require.NoError(t, Save2d(ctx, s, world, 1, root))
	require.ErrorIs(t, Save2d(ctx, s, world, 1, root), ErrSnapshotExists)
	require.NoError(t, Save2d(ctx, s, world, 2, root))
}

var errSignerUnavailable = errors.New("signer unavailable")

type unavailableSigner struct{}

func (unavailableSigner) Algorithm() cose.Algorithm { return cose.AlgorithmES256 }

func (unavailableSigner) Sign(io.Reader, []byte) ([]byte, error) {
	return nil, errSignerUnavailable
}

func TestSaveSealFailureWritesNothing(t *testing.T) {
	tc := voxeltesting.NewTestContext(t, voxeltesting.TestConfig{TestLabelPrefix: "saver"})
	ctx := context.Background()

	store, err := NewDirStore(tc.Log, tc.Dir)
	require.NoError(t, err)
	broken, err := NewSaver(tc.Log, store, WithSigner(unavailableSigner{}, "k"), WithFailIfExists(true))
	require.NoError(t, err)

	root, err := voxel.NewSparseRoot2d[uint8](2, 0)
	require.NoError(t, err)
	root.SetValueOn(voxel.IVec2{X: 2, Y: 2}, 3)

	world := uuid.New()
	require.ErrorIs(t, Save2d(ctx, broken, world, 1, root), errSignerUnavailable)

	_, err = store.Get(ctx, SnapshotPath(world, 1))
	require.ErrorIs(t, err, ErrSnapshotNotFound)
	_, err = store.Get(ctx, SealPath(world, 1))
	require.ErrorIs(t, err, ErrSnapshotNotFound)

	// a retry with a working signer is not blocked by a half written save
	s := newSealedSaver(t, tc, store, WithFailIfExists(true))
	require.NoError(t, Save2d(ctx, s, world, 1, root))
	_, err = s.Verify(ctx, world, 1)
	require.NoError(t, err)
}

func TestBlobStoreSaveLoadAzurite(t *testing.T) {
	tc := voxeltesting.NewTestContext(t, voxeltesting.TestConfig{TestLabelPrefix: "voxelsnapshots"})
	ctx := context.Background()

	s := newSealedSaver(t, tc, NewBlobStore(tc.Log, tc.NewBlobStorer()))

	root, err := voxel.NewSparseRoot2d[uint8](2, 0)
	require.NoError(t, err)
	root.SetValueOn(voxel.IVec2{X: -3, Y: 2}, 4)

	world := uuid.New()
	require.NoError(t, Save2d(ctx, s, world, 1, root))
	got, err := Load2d[uint8](ctx, s, world, 1)
	require.NoError(t, err)
	require.Equal(t, uint8(4), got.Value(voxel.IVec2{X: -3, Y: 2}))
}

func TestSealWithoutSigner(t *testing.T) {
	codec, err := NewSealCodec()
	require.NoError(t, err)
	_, err = NewSealer("k", codec, nil).Seal(Manifest{Seq: 1})
	require.ErrorIs(t, err, ErrNoSigner)
}
