package physics

import "github.com/go-gl/mathgl/mgl64"

// TileGrid is a solid/empty grid. Row 0 is the top row; the bottom-left
// corner of the grid sits at Origin.
type TileGrid struct {
	Width, Height int
	Size          float64
	Origin        mgl64.Vec2
	Solid         []bool
}

func (g *TileGrid) at(x, y int) bool {
	return g.Solid[y*g.Width+x]
}

// MergeTiles merges contiguous solid tiles into as few boxes as it can so the
// space holds large static boxes instead of one box per tile.
func MergeTiles(g TileGrid) []Box {
	if g.Width <= 0 || g.Height <= 0 || g.Size <= 0 || len(g.Solid) != g.Width*g.Height {
		return nil
	}

	var boxes []Box
	processed := make([]bool, g.Width*g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			idx := y*g.Width + x
			if processed[idx] {
				continue
			}
			if !g.at(x, y) {
				processed[idx] = true
				continue
			}

			// Greedily expand width first, then height.
			w := 1
			for x+w < g.Width {
				idx2 := y*g.Width + (x + w)
				if processed[idx2] || !g.Solid[idx2] {
					break
				}
				w++
			}

			h := 1
		heightLoop:
			for y+h < g.Height {
				for xi := x; xi < x+w; xi++ {
					idx2 := (y+h)*g.Width + xi
					if processed[idx2] || !g.Solid[idx2] {
						break heightLoop
					}
				}
				h++
			}

			// Rows grow downwards, world Y grows upwards.
			minX := g.Origin.X() + float64(x)*g.Size
			maxY := g.Origin.Y() + float64(g.Height-y)*g.Size
			boxes = append(boxes, Box{
				Min: mgl64.Vec2{minX, maxY - float64(h)*g.Size},
				Max: mgl64.Vec2{minX + float64(w)*g.Size, maxY},
			})

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy*g.Width+xx] = true
				}
			}
		}
	}
	return boxes
}
