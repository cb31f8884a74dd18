package main

// clutdemo renders the demo scene (or a loaded .hdr image) through the
// tone mapping and CLUT pass, and writes the result.
//
//   clutdemo [flags] [config.yaml] [*.cube ...] [input.hdr] [dirs ...]
//
// Files are recognized by extension; directories are searched. Flags
// that are set explicitly override the config file.

import(
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/abworrall/hdr-clut/pkg/clut"
	"github.com/abworrall/hdr-clut/pkg/render"
	"github.com/abworrall/hdr-clut/pkg/tonemap"
	"github.com/abworrall/hdr-clut/pkg/viewer"
)

var(
	fVerbosity int
	fWidth, fHeight int
	fShape string
	fRotX, fRotY, fRotZ float64
	fLightIntensity float64

	fExposure float64
	fAutoExposure bool
	fTonemapper string

	fPreset string
	fApplyCLUT bool
	fCLUTStrength float64
	fSplitScreen bool
	fSplitPosition float64
	fShowCLUT bool

	fContrast, fSaturation, fTemperature, fTint float64
	fApplyEdits bool
	fSaveCustom string
	fCLUTDir string

	fOutputFilename string
	fHDRFilename string
	fFrames int
	fAutoRotate bool
	fListPresets bool
)

func init() {
	d := viewer.NewConfig()

	flag.IntVar(&fVerbosity, "v", 0, "how verbose to get")
	flag.IntVar(&fWidth, "width", d.Width, "width of output image")
	flag.IntVar(&fHeight, "height", d.Height, "height of output image")
	flag.StringVar(&fShape, "shape", d.Scene.Shape, "what to render: cube, sphere or plane")
	flag.Float64Var(&fRotX, "rotx", 0, "model rotation about X, radians")
	flag.Float64Var(&fRotY, "roty", 0, "model rotation about Y, radians")
	flag.Float64Var(&fRotZ, "rotz", 0, "model rotation about Z, radians")
	flag.Float64Var(&fLightIntensity, "light", float64(d.Scene.LightIntensity), "light intensity; values above 1 push the scene into HDR")

	flag.Float64Var(&fExposure, "exposure", d.Exposure, "exposure multiplier, [0.1, 5.0]")
	flag.BoolVar(&fAutoExposure, "autoexposure", false, "meter the frame and pick the exposure")
	flag.StringVar(&fTonemapper, "tonemapper", d.Tonemapper, "how to tonemap from HDR to LDR: "+tonemap.ListString())

	flag.StringVar(&fPreset, "preset", d.Preset, "CLUT preset to start with (see -list)")
	flag.BoolVar(&fApplyCLUT, "applyclut", d.ApplyCLUT, "apply the CLUT")
	flag.Float64Var(&fCLUTStrength, "strength", d.CLUTStrength, "CLUT strength, [0, 1]")
	flag.BoolVar(&fSplitScreen, "split", d.SplitScreen, "leave the left of the frame ungraded, for comparison")
	flag.Float64Var(&fSplitPosition, "splitpos", d.SplitPosition, "where the split goes, [0, 1]")
	flag.BoolVar(&fShowCLUT, "showclut", d.ShowCLUT, "draw a preview strip of the CLUT")

	flag.Float64Var(&fContrast, "contrast", 1.0, "grade contrast, [0.5, 2.0]")
	flag.Float64Var(&fSaturation, "saturation", 1.0, "grade saturation, [0, 2]")
	flag.Float64Var(&fTemperature, "temperature", 0.0, "grade temperature, [-1, 1]")
	flag.Float64Var(&fTint, "tint", 0.0, "grade tint, [-1, 1]")
	flag.BoolVar(&fApplyEdits, "applyedits", false, "build a custom CLUT from neutral plus the grade")
	flag.StringVar(&fSaveCustom, "savecustom", "", "save the current CLUT under this name, as <clutdir>/<name>.cube")
	flag.StringVar(&fCLUTDir, "clutdir", d.CLUTDir, "where to save custom CLUTs")

	flag.StringVar(&fOutputFilename, "o", d.OutputFilename, "name of output image file (.png or .tif)")
	flag.StringVar(&fHDRFilename, "hdr", "", "also write the HDR framebuffer to this .hdr file")
	flag.IntVar(&fFrames, "frames", 1, "how many frames to render; more than one writes a numbered sequence")
	flag.BoolVar(&fAutoRotate, "autorotate", false, "spin the model and orbit the light between frames")
	flag.BoolVar(&fListPresets, "list", false, "list the CLUT library and exit")
	flag.Parse()

	log.Printf("clutdemo starting\n")
}

// override copies the flags that were set on the command line into the config
func override(cfg *viewer.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "v":            cfg.Verbosity = fVerbosity
		case "width":        cfg.Width = fWidth
		case "height":       cfg.Height = fHeight
		case "shape":        cfg.Scene.Shape = fShape
		case "rotx":         cfg.Scene.Rotation[0] = float32(fRotX)
		case "roty":         cfg.Scene.Rotation[1] = float32(fRotY)
		case "rotz":         cfg.Scene.Rotation[2] = float32(fRotZ)
		case "light":        cfg.Scene.LightIntensity = float32(fLightIntensity)
		case "exposure":     cfg.Exposure = fExposure
		case "autoexposure": cfg.AutoExposure = fAutoExposure
		case "tonemapper":   cfg.Tonemapper = fTonemapper
		case "preset":       cfg.Preset = fPreset
		case "applyclut":    cfg.ApplyCLUT = fApplyCLUT
		case "strength":     cfg.CLUTStrength = fCLUTStrength
		case "split":        cfg.SplitScreen = fSplitScreen
		case "splitpos":     cfg.SplitPosition = fSplitPosition
		case "showclut":     cfg.ShowCLUT = fShowCLUT
		case "contrast":     cfg.Grade.Contrast = fContrast
		case "saturation":   cfg.Grade.Saturation = fSaturation
		case "temperature":  cfg.Grade.Temperature = fTemperature
		case "tint":         cfg.Grade.Tint = fTint
		case "savecustom":   cfg.CustomName = fSaveCustom
		case "clutdir":      cfg.CLUTDir = fCLUTDir
		case "o":            cfg.OutputFilename = fOutputFilename
		case "hdr":          cfg.HDRFilename = fHDRFilename
		case "autorotate":   cfg.AutoRotateModel, cfg.AutoRotateLight = fAutoRotate, fAutoRotate
		}
	})
}

func frameFilename(base string, i, n int) string {
	if n <= 1 {
		return base
	}
	ext := filepath.Ext(base)
	return fmt.Sprintf("%s-%03d%s", strings.TrimSuffix(base, ext), i, ext)
}

func main() {
	if fListPresets {
		for _, name := range clut.NewPresetLibrary().DisplayNames() {
			fmt.Println(name)
		}
		return
	}

	var in viewer.Inputs
	if err := in.LoadFilesAndDirs(flag.Args()...); err != nil {
		log.Fatal(err)
	}

	cfg := in.BaseConfig()
	override(&cfg)

	if cfg.Verbosity > 0 {
		log.Printf("Final configuration:-\n\n%s\n", cfg.AsYaml())
	}

	be := render.NewSoftware()
	be.Verbosity = cfg.Verbosity

	s, err := viewer.NewState(cfg, be)
	if err != nil {
		log.Fatalf("NewState failed, err: %v\n", err)
	}
	defer s.Close()

	if nFailed := s.Apply(in); nFailed > 0 {
		log.Printf("%d CLUT file(s) could not be loaded\n", nFailed)
	}

	if fApplyEdits {
		if err := s.ApplyEdits(); err != nil {
			log.Fatalf("ApplyEdits failed, err: %v\n", err)
		}
	}

	if fSaveCustom != "" {
		if _, err := s.SaveCustom(s.CustomName, s.CLUTDir); err != nil {
			log.Fatalf("SaveCustom failed, err: %v\n", err)
		}
	}

	log.Printf("Rendering: %s", s)

	const dt = 1.0 / 30
	for i := 0; i < fFrames; i++ {
		img, err := s.RenderFrame()
		if err != nil {
			log.Fatalf("RenderFrame failed, err: %v\n", err)
		}

		filename := frameFilename(s.OutputFilename, i, fFrames)
		if err := render.WriteImage(img, filename); err != nil {
			log.Fatalf("write %s: %v\n", filename, err)
		}
		log.Printf("LDR output file written '%s'\n", filename)

		if s.HDRFilename != "" {
			hdrFilename := frameFilename(s.HDRFilename, i, fFrames)
			if err := s.LastFrame.WriteToHDR(hdrFilename); err != nil {
				log.Fatalf("write %s: %v\n", hdrFilename, err)
			}
			log.Printf("HDR output file written '%s'\n", hdrFilename)
		}

		s.Advance(dt)
	}
}
