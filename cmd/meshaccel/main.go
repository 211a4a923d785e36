// Command meshaccel loads a Wavefront OBJ mesh and builds one of the
// three acceleration-structure blobs over it, writing the result to an
// output file as raw little-endian uint32 words.
package main

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/edaniels/golog"
	"github.com/gridforge/meshaccel"
	"github.com/gridforge/meshaccel/geom"
	"github.com/gridforge/meshaccel/internal/objloader"
	"github.com/urfave/cli/v2"
)

func main() {
	logger := golog.NewDevelopmentLogger("meshaccel")

	app := &cli.App{
		Name:  "meshaccel",
		Usage: "build a spatial-acceleration structure blob from a triangle mesh",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Required: true, Usage: "path to a Wavefront OBJ mesh"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true, Usage: "path to write the blob to"},
			&cli.StringFlag{Name: "structure", Aliases: []string{"s"}, Value: "bvh", Usage: "bvh | voxelgrid | svo"},
			&cli.IntFlag{Name: "leaf-threshold", Value: 4, Usage: "bvh: spans with fewer primitives than this always become leaves"},
			&cli.IntFlag{Name: "resolution", Value: 32, Usage: "voxelgrid: target resolution along the longest extent"},
			&cli.IntFlag{Name: "depth", Value: 6, Usage: "svo: maximum octree depth"},
		},
		Action: func(c *cli.Context) error {
			return run(c, logger)
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Fatalw("meshaccel failed", "error", err)
	}
}

func run(c *cli.Context, logger golog.Logger) error {
	inputPath := c.String("input")
	outputPath := c.String("output")

	tris, err := objloader.Load(inputPath)
	if err != nil {
		return fmt.Errorf("loading mesh: %w", err)
	}
	logger.Infow("mesh loaded", "path", inputPath, "triangles", len(tris))

	buf := toFloat32Buffer(tris)

	var words []uint32
	switch c.String("structure") {
	case "bvh":
		words, err = meshaccel.BuildBVH(buf, c.Int("leaf-threshold"))
	case "voxelgrid":
		words, err = meshaccel.BuildVoxelGrid(buf, c.Int("resolution"))
	case "svo":
		words, err = meshaccel.BuildSVO(buf, c.Int("depth"))
	default:
		return fmt.Errorf("unknown structure %q", c.String("structure"))
	}
	if err != nil {
		return fmt.Errorf("building %s: %w", c.String("structure"), err)
	}
	logger.Infow("blob built", "structure", c.String("structure"), "words", len(words))

	return writeBlob(outputPath, words)
}

func toFloat32Buffer(tris []geom.Triangle) []float32 {
	buf := make([]float32, 0, len(tris)*9)
	for _, t := range tris {
		buf = append(buf,
			float32(t.P0.X), float32(t.P0.Y), float32(t.P0.Z),
			float32(t.P1.X), float32(t.P1.Y), float32(t.P1.Z),
			float32(t.P2.X), float32(t.P2.Y), float32(t.P2.Z),
		)
	}
	return buf
}

func writeBlob(path string, words []uint32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer f.Close()

	for _, w := range words {
		if err := binary.Write(f, binary.LittleEndian, w); err != nil {
			return fmt.Errorf("writing blob: %w", err)
		}
	}
	return nil
}
