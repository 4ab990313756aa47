package main

import (
	"fmt"
	"time"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/taylorrsallen/Luxana/chunkstore"
	"github.com/urfave/cli/v2"
	"github.com/veraison/go-cose"
)

var verifyCommand = &cli.Command{
	Name:   "verify",
	Usage:  "check the seal of a snapshot",
	Flags:  []cli.Flag{worldFlag, seqFlag, pubKeyFlag},
	Action: verify,
}

func verifierFromFile(path string) (cose.Verifier, error) {
	pub, err := readPublicKey(path)
	if err != nil {
		return nil, err
	}
	return chunkstore.NewES256Verifier(pub)
}

func verify(c *cli.Context) error {
	log := logger.Sugar.WithServiceName("voxelgrid")

	world, err := worldIDFlag(c)
	if err != nil {
		return err
	}
	path := c.String(pubKeyFlag.Name)
	if path == "" {
		return fmt.Errorf("--%s is required", pubKeyFlag.Name)
	}
	verifier, err := verifierFromFile(path)
	if err != nil {
		return err
	}
	saver, err := newSaver(c, log, chunkstore.WithCOSEVerifier(verifier))
	if err != nil {
		return err
	}

	m, err := saver.Verify(c.Context, world, uint32(c.Uint(seqFlag.Name)))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "ok: world %s seq %d, %dD %s, %d chunks, sealed %s, digest %x\n",
		m.WorldID, m.Seq, m.Dims, m.Codec, m.ChunkCount,
		time.UnixMilli(m.Timestamp).UTC().Format(time.RFC3339), m.Digest)
	return nil
}
