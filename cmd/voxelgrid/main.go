package main

import (
	"fmt"
	"os"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "voxelgrid",
		Usage: "generate, inspect and verify chunked voxel world snapshots",
		Flags: []cli.Flag{
			logLevelFlag,
			storeFlag,
			dirFlag,
			containerFlag,
			formatFlag,
		},
		Before: func(c *cli.Context) error {
			logger.New(c.String(logLevelFlag.Name))
			return nil
		},
		After: func(c *cli.Context) error {
			logger.OnExit()
			return nil
		},
		Commands: []*cli.Command{
			generateCommand,
			inspectCommand,
			verifyCommand,
			keygenCommand,
		},
	}
}
