package voxeltesting

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	mrand "math/rand"
	"os"
	"testing"

	"github.com/datatrails/go-datatrails-common/azblob"
	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/stretchr/testify/require"
	"github.com/taylorrsallen/Luxana/voxel"
)

// AzuriteEnv names the variable that opts tests in to the blob emulator.
const AzuriteEnv = "VOXEL_TEST_AZURITE"

type TestContext struct {
	Log       logger.Logger
	Dir       string
	Container string
	Rand      *mrand.Rand
	T         *testing.T
}

type TestConfig struct {
	// We seed the RNG of the provided StartTimeMS. It is normal to force it to
	// some fixed value so that the generated data is the same from run to run.
	StartTimeMS     int64
	TestLabelPrefix string
	Container       string // can be "" defaults to TestLabelPrefix
}

func NewTestContext(t *testing.T, cfg TestConfig) TestContext {
	logger.New("NOOP")

	container := cfg.Container
	if container == "" {
		container = cfg.TestLabelPrefix
	}
	return TestContext{
		Log:       logger.Sugar.WithServiceName(cfg.TestLabelPrefix),
		Dir:       t.TempDir(),
		Container: container,
		Rand:      mrand.New(mrand.NewSource(cfg.StartTimeMS)),
		T:         t,
	}
}

func (c *TestContext) GetLog() logger.Logger { return c.Log }

// GenerateECKey returns a fresh P-256 key for sealing snapshots.
func (c *TestContext) GenerateECKey() *ecdsa.PrivateKey {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(c.T, err)
	return key
}

// FillRandom2d sets n random cells inside the world bounds of root and returns
// the values written, keyed by coordinate. Later writes to the same cell win.
func (c *TestContext) FillRandom2d(root *voxel.SparseRoot2d[uint16], n int) map[voxel.IVec2]uint16 {
	half := root.HalfTotalDim()
	written := make(map[voxel.IVec2]uint16, n)
	for i := 0; i < n; i++ {
		coord := voxel.IVec2{
			X: c.Rand.Int31n(2*half) - half,
			Y: c.Rand.Int31n(2*half) - half,
		}
		v := uint16(c.Rand.Intn(1 << 16))
		root.SetValueOn(coord, v)
		written[coord] = v
	}
	return written
}

func (c *TestContext) FillRandom3d(root *voxel.SparseRoot3d[float32], n int) map[voxel.IVec3]float32 {
	half := root.HalfTotalDim()
	written := make(map[voxel.IVec3]float32, n)
	for i := 0; i < n; i++ {
		coord := voxel.IVec3{
			X: c.Rand.Int31n(2*half) - half,
			Y: c.Rand.Int31n(2*half) - half,
			Z: c.Rand.Int31n(2*half) - half,
		}
		v := c.Rand.Float32()
		root.SetValueOn(coord, v)
		written[coord] = v
	}
	return written
}

// NewBlobStorer connects to the local blob emulator. Tests are skipped unless
// AzuriteEnv is set.
func (c *TestContext) NewBlobStorer() *azblob.Storer {
	if os.Getenv(AzuriteEnv) == "" {
		c.T.Skipf("%s not set, skipping blob emulator test", AzuriteEnv)
	}
	storer, err := azblob.NewDev(azblob.NewDevConfigFromEnv(), c.Container)
	if err != nil {
		c.T.Fatalf("failed to connect to blob store emulator: %v", err)
	}
	client := storer.GetServiceClient()
	// Note: we expect a 'already exists' error here and ignore it.
	_, _ = client.CreateContainer(context.Background(), c.Container, nil)
	return storer
}
