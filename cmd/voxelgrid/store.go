package main

import (
	"context"
	"fmt"

	"github.com/datatrails/go-datatrails-common/azblob"
	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/google/uuid"
	"github.com/taylorrsallen/Luxana/chunkstore"
	"github.com/urfave/cli/v2"
)

func openStore(c *cli.Context, log logger.Logger) (chunkstore.Store, error) {
	switch kind := c.String(storeFlag.Name); kind {
	case "dir":
		return chunkstore.NewDirStore(log, c.String(dirFlag.Name))
	case "azurite":
		container := c.String(containerFlag.Name)
		storer, err := azblob.NewDev(azblob.NewDevConfigFromEnv(), container)
		if err != nil {
			return nil, fmt.Errorf("connect to blob emulator: %w", err)
		}
		// an existing container is not an error
		_, _ = storer.GetServiceClient().CreateContainer(context.Background(), container, nil)
		return chunkstore.NewBlobStore(log, storer), nil
	default:
		return nil, fmt.Errorf("unknown store %q", kind)
	}
}

// newSaver assembles a saver from the global flags plus any command specific
// options.
func newSaver(c *cli.Context, log logger.Logger, opts ...chunkstore.Option) (*chunkstore.Saver, error) {
	store, err := openStore(c, log)
	if err != nil {
		return nil, err
	}
	codec, err := chunkstore.CodecByName(c.String(formatFlag.Name))
	if err != nil {
		return nil, err
	}
	return chunkstore.NewSaver(log, store, append([]chunkstore.Option{chunkstore.WithCodec(codec)}, opts...)...)
}

func worldIDFlag(c *cli.Context) (uuid.UUID, error) {
	s := c.String(worldFlag.Name)
	if s == "" {
		return uuid.Nil, fmt.Errorf("--%s is required", worldFlag.Name)
	}
	return uuid.Parse(s)
}
