package main

import "github.com/urfave/cli/v2"

var (
	logLevelFlag = &cli.StringFlag{
		Name:    "log-level",
		Usage:   "NOOP, DEBUG, INFO, WARN or ERROR",
		Value:   "INFO",
		EnvVars: []string{"VOXELGRID_LOG_LEVEL"},
	}
	storeFlag = &cli.StringFlag{
		Name:    "store",
		Usage:   "snapshot store: dir or azurite",
		Value:   "dir",
		EnvVars: []string{"VOXELGRID_STORE"},
	}
	dirFlag = &cli.StringFlag{
		Name:    "dir",
		Usage:   "root directory of the dir store",
		Value:   "voxelgrid-data",
		EnvVars: []string{"VOXELGRID_DIR"},
	}
	containerFlag = &cli.StringFlag{
		Name:    "container",
		Usage:   "blob container of the azurite store",
		Value:   "voxelgrid",
		EnvVars: []string{"VOXELGRID_CONTAINER"},
	}
	formatFlag = &cli.StringFlag{
		Name:    "format",
		Usage:   "snapshot codec: cbor or msgpack",
		Value:   "cbor",
		EnvVars: []string{"VOXELGRID_FORMAT"},
	}

	dimsFlag = &cli.UintFlag{
		Name:    "dims",
		Usage:   "2 for a heightmap, 3 for a density volume",
		Value:   2,
		EnvVars: []string{"VOXELGRID_DIMS"},
	}
	worldFlag = &cli.StringFlag{
		Name:    "world",
		Usage:   "world uuid",
		EnvVars: []string{"VOXELGRID_WORLD"},
	}
	seqFlag = &cli.UintFlag{
		Name:    "seq",
		Usage:   "snapshot sequence number",
		EnvVars: []string{"VOXELGRID_SEQ"},
	}
	keyFlag = &cli.StringFlag{
		Name:    "key",
		Usage:   "PEM encoded P-256 private key used to seal snapshots",
		EnvVars: []string{"VOXELGRID_KEY"},
	}
	pubKeyFlag = &cli.StringFlag{
		Name:    "pub-key",
		Usage:   "PEM encoded P-256 public key used to verify seals",
		EnvVars: []string{"VOXELGRID_PUB_KEY"},
	}
)
