// Package objloader parses a Wavefront OBJ file straight into the
// triangle buffer the acceleration-structure builders consume, skipping
// the materials/UV/normal bookkeeping a renderer would need.
package objloader

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gridforge/meshaccel/geom"
	"gonum.org/v1/gonum/spatial/r3"
)

// Load reads path and returns its triangles, fan-triangulating any face
// with more than three vertices. Only "v" and "f" directives are
// interpreted; everything else (normals, UVs, materials, groups) is
// skipped since the builders only need vertex positions.
func Load(path string) ([]geom.Triangle, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("objloader: cannot open file: %w", err)
	}
	defer file.Close()

	var vertices []r3.Vec
	var triangles []geom.Triangle

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "v":
			if len(parts) < 4 {
				return nil, fmt.Errorf("objloader: line %d: invalid vertex definition", lineNum)
			}
			x, err1 := strconv.ParseFloat(parts[1], 64)
			y, err2 := strconv.ParseFloat(parts[2], 64)
			z, err3 := strconv.ParseFloat(parts[3], 64)
			if err1 != nil || err2 != nil || err3 != nil {
				return nil, fmt.Errorf("objloader: line %d: invalid vertex coordinates", lineNum)
			}
			vertices = append(vertices, r3.Vec{X: x, Y: y, Z: z})

		case "f":
			if len(parts) < 4 {
				return nil, fmt.Errorf("objloader: line %d: face must have at least 3 vertices", lineNum)
			}
			faceVerts := make([]r3.Vec, 0, len(parts)-1)
			for i := 1; i < len(parts); i++ {
				idx, err := parseFaceVertexIndex(parts[i])
				if err != nil {
					return nil, fmt.Errorf("objloader: line %d: %w", lineNum, err)
				}
				if idx <= 0 || idx > len(vertices) {
					return nil, fmt.Errorf("objloader: line %d: vertex index out of range", lineNum)
				}
				faceVerts = append(faceVerts, vertices[idx-1])
			}
			for i := 1; i < len(faceVerts)-1; i++ {
				triangles = append(triangles, geom.Triangle{
					P0: faceVerts[0],
					P1: faceVerts[i],
					P2: faceVerts[i+1],
				})
			}

		default:
			continue
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("objloader: scan failed: %w", err)
	}

	return triangles, nil
}

// parseFaceVertexIndex extracts the vertex-position index from a face
// token of the form v, v/vt, v/vt/vn, or v//vn.
func parseFaceVertexIndex(s string) (int, error) {
	head := s
	if i := strings.IndexByte(s, '/'); i >= 0 {
		head = s[:i]
	}
	if head == "" {
		return 0, fmt.Errorf("invalid face index")
	}
	return strconv.Atoi(head)
}
