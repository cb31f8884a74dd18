package viewer

import(
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/abworrall/hdr-clut/pkg/render"
)

// Inputs is what got found on the command line, sorted by kind. Files
// are recognized by extension, and anything else is skipped.
type Inputs struct {
	Config     *Config   // the last .yaml seen, if any
	CLUTFiles  []string  // .cube files, in the order given
	HDRInput   *render.Framebuffer
	HDRFile    string
}

func (in *Inputs)LoadFilesAndDirs(args ...string) error {
	for _, arg := range args {
		item, err := os.Stat(arg)

		switch {

		case err != nil:
			return fmt.Errorf("load %s: %w", arg, err)

		case item.IsDir():
			// Is a dir, recurse into contents
			contents, err := os.ReadDir(arg)
			if err != nil {
				return fmt.Errorf("readdir %s: %w", arg, err)
			}
			for _, content := range contents {
				if err := in.LoadFilesAndDirs(filepath.Join(arg, content.Name())); err != nil {
					return err
				}
			}

		default:
			if err := in.loadFile(arg); err != nil {
				return fmt.Errorf("loadfile %s: %w", arg, err)
			}
		}
	}

	return nil
}

func (in *Inputs)loadFile(filename string) error {
	switch strings.ToLower(filepath.Ext(filename)) {

	case ".yaml", ".yml":
		cfg, err := LoadConfig(filename)
		if err != nil {
			return err
		}
		in.Config = &cfg
		log.Printf("Loaded base configuration from %s\n", filename)

	case ".cube":
		// Parsed later by State.LoadCLUT, so a bad table is reported the
		// same way as one loaded interactively.
		in.CLUTFiles = append(in.CLUTFiles, filename)

	case ".hdr":
		fb, err := render.LoadHDR(filename)
		if err != nil {
			return err
		}
		in.HDRInput = fb
		in.HDRFile = filename
		log.Printf("Loaded HDR input %s from %s\n", fb, filename)
	}

	return nil
}

// BaseConfig is the loaded config file, or the defaults if there wasn't one
func (in Inputs)BaseConfig() Config {
	if in.Config != nil {
		return *in.Config
	}
	return NewConfig()
}

// Apply hands the inputs over to the state. Each CLUT file is loaded
// and selected in turn, so the last good one ends up current. A table
// that fails to load is logged and skipped.
func (s *State)Apply(in Inputs) int {
	if in.HDRInput != nil {
		s.HDRInput = in.HDRInput
	}

	nFailed := 0
	for _, filename := range in.CLUTFiles {
		if err := s.LoadCLUT(filename); err != nil {
			log.Printf("Skipping CLUT: %v", err)
			nFailed++
		}
	}
	return nFailed
}
