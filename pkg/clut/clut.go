package clut

import(
	"fmt"
)

// A CLUT is a named color lookup table. Data is a flat list of RGB
// triples (no alpha). A 1D table has Size entries, one per input level,
// and is applied per channel. A 3D table has Size^3 entries laid out
// with the red index varying fastest, then green, then blue - the same
// order as a .cube file.
//
// Nothing here validates the shape; a table with the wrong amount of
// data just renders garbage. Call Validate if you care.
type CLUT struct {
	Name  string
	Data  []float32
	Size  int
	Is3D  bool
}

func New(name string, data []float32, size int, is3D bool) CLUT {
	return CLUT{Name: name, Data: data, Size: size, Is3D: is3D}
}

// Clone returns a deep copy, so edits to the copy never leak back into
// whatever library entry it came from.
func (c CLUT)Clone() CLUT {
	c2 := c
	if c.Data != nil {
		c2.Data = make([]float32, len(c.Data))
		copy(c2.Data, c.Data)
	}
	return c2
}

// NumEntries is the number of RGB triples the table should hold, given its size.
func (c CLUT)NumEntries() int {
	if c.Is3D {
		return c.Size * c.Size * c.Size
	}
	return c.Size
}

func (c CLUT)Dims() string {
	if c.Is3D {
		return "3D"
	}
	return "1D"
}

func (c CLUT)String() string {
	return fmt.Sprintf("CLUT[%q, %s, size %d, %d floats]", c.Name, c.Dims(), c.Size, len(c.Data))
}

func (c CLUT)Validate() error {
	if c.Size < 2 {
		return fmt.Errorf("clut %q: size %d, need at least 2", c.Name, c.Size)
	}
	if want := c.NumEntries() * 3; len(c.Data) != want {
		return fmt.Errorf("clut %q: %s size %d wants %d floats, has %d", c.Name, c.Dims(), c.Size, want, len(c.Data))
	}
	return nil
}

// At returns the RGB triple stored at entry i
func (c CLUT)At(i int) [3]float32 {
	return [3]float32{c.Data[3*i], c.Data[3*i+1], c.Data[3*i+2]}
}

func (c *CLUT)Set(i int, rgb [3]float32) {
	c.Data[3*i], c.Data[3*i+1], c.Data[3*i+2] = rgb[0], rgb[1], rgb[2]
}

// Index3D maps lattice coords to an entry number (red fastest).
func (c CLUT)Index3D(r, g, b int) int {
	return r + g*c.Size + b*c.Size*c.Size
}
