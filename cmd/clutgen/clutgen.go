package main

// clutgen writes the preset CLUTs out as .cube files, or with -info
// describes existing .cube files.

import(
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/abworrall/hdr-clut/pkg/clut"
)

var(
	fOutputDir string
	fSize1D int
	fSize3D int
	fOnly string
	fInfo bool
)

func init() {
	flag.StringVar(&fOutputDir, "o", ".", "directory to write the .cube files into")
	flag.IntVar(&fSize1D, "size1d", clut.DefaultSize1D, "entries in each 1D table")
	flag.IntVar(&fSize3D, "size3d", clut.DefaultSize3D, "lattice points per axis in each 3D table")
	flag.StringVar(&fOnly, "only", "", "only write presets whose name contains this")
	flag.BoolVar(&fInfo, "info", false, "describe the .cube files given as args, and how far each is from neutral")
	flag.Parse()
}

// fileName turns "High Contrast (3D)" into "high-contrast-3d.cube"
func fileName(name string) string {
	s := strings.ToLower(name)
	s = strings.NewReplacer("(", "", ")", "", " ", "-").Replace(s)
	return s + ".cube"
}

func info(filenames []string) error {
	for _, filename := range filenames {
		c, err := clut.LoadFromFile(filename)
		if err != nil {
			return err
		}
		maxAbs, meanAbs, err := clut.Deviation(c, clut.NeutralFor(c))
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s, deviation from neutral: max %.4f, mean %.4f\n", filename, c, maxAbs, meanAbs)
	}
	return nil
}

func generate() error {
	if fSize1D < 2 || fSize3D < 2 {
		return fmt.Errorf("table sizes must be at least 2, got %d and %d", fSize1D, fSize3D)
	}
	if err := os.MkdirAll(fOutputDir, 0755); err != nil {
		return err
	}

	lib := clut.NewLibrary()
	clut.AddPresets1D(lib, fSize1D)
	clut.AddPresets3D(lib, fSize3D)

	for _, name := range lib.Names() {
		if fOnly != "" && !strings.Contains(strings.ToLower(name), strings.ToLower(fOnly)) {
			continue
		}
		c, _ := lib.Get(name)
		filename := filepath.Join(fOutputDir, fileName(name))
		if err := c.SaveToFile(filename); err != nil {
			return err
		}
		log.Printf("Wrote %s as %s\n", c, filename)
	}
	return nil
}

func main() {
	var err error
	if fInfo {
		err = info(flag.Args())
	} else {
		err = generate()
	}
	if err != nil {
		log.Fatal(err)
	}
}
