package main

import (
	"fmt"
	"strconv"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/olekukonko/tablewriter"
	"github.com/taylorrsallen/Luxana/bitmask"
	"github.com/taylorrsallen/Luxana/chunkstore"
	"github.com/taylorrsallen/Luxana/voxel"
	"github.com/urfave/cli/v2"
)

var inspectCommand = &cli.Command{
	Name:   "inspect",
	Usage:  "print a per chunk summary of a snapshot",
	Flags:  []cli.Flag{worldFlag, seqFlag, pubKeyFlag},
	Action: inspect,
}

type chunkStats struct {
	key    string
	active int
	mean   float64
}

func inspect(c *cli.Context) error {
	log := logger.Sugar.WithServiceName("voxelgrid")

	world, err := worldIDFlag(c)
	if err != nil {
		return err
	}
	var opts []chunkstore.Option
	if path := c.String(pubKeyFlag.Name); path != "" {
		verifier, err := verifierFromFile(path)
		if err != nil {
			return err
		}
		opts = append(opts, chunkstore.WithCOSEVerifier(verifier))
	}
	saver, err := newSaver(c, log, opts...)
	if err != nil {
		return err
	}

	seq := uint32(c.Uint(seqFlag.Name))
	snap, err := saver.Snapshot(c.Context, world, seq)
	if err != nil {
		return err
	}

	var stats []chunkStats
	switch snap.Dims {
	case 2:
		root, err := chunkstore.Decode2d[uint8](c.Context, snap, saver.Codec())
		if err != nil {
			return err
		}
		root.ForEachChunk(func(key voxel.IVec2, leaf *voxel.Leaf2d[uint8]) bool {
			leaf.RLock()
			defer leaf.RUnlock()
			stats = append(stats, leafStats(key.String(), leaf.Mask(), leaf.Data()[:]))
			return true
		})
	case 3:
		root, err := chunkstore.Decode3d[uint8](c.Context, snap, saver.Codec())
		if err != nil {
			return err
		}
		root.ForEachChunk(func(key voxel.IVec3, leaf *voxel.Leaf3d[uint8]) bool {
			leaf.RLock()
			defer leaf.RUnlock()
			stats = append(stats, leafStats(key.String(), leaf.Mask(), leaf.Data()[:]))
			return true
		})
	default:
		return fmt.Errorf("snapshot has unsupported dims %d", snap.Dims)
	}

	fmt.Fprintf(c.App.Writer, "world %s seq %d: %dD, log2dim %d, %d chunks\n",
		snap.WorldID, seq, snap.Dims, snap.Log2Dim, len(stats))
	renderStats(c, stats)
	return nil
}

func leafStats(key string, mask *bitmask.Bitmask, values []uint8) chunkStats {
	s := chunkStats{key: key}
	var sum float64
	mask.ForEachOn(func(i uint32) bool {
		s.active++
		sum += float64(values[i])
		return true
	})
	if s.active > 0 {
		s.mean = sum / float64(s.active)
	}
	return s
}

func renderStats(c *cli.Context, stats []chunkStats) {
	table := tablewriter.NewWriter(c.App.Writer)
	table.SetHeader([]string{"Chunk", "Active", "Mean"})

	total := 0
	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		total += s.active
		rows = append(rows, []string{s.key, strconv.Itoa(s.active), strconv.FormatFloat(s.mean, 'f', 2, 64)})
	}
	table.AppendBulk(rows)
	table.SetFooter([]string{"Total", strconv.Itoa(total), ""})
	table.Render()
}
