package viewer

import(
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/abworrall/hdr-clut/pkg/clut"
	"github.com/abworrall/hdr-clut/pkg/scene"
	"github.com/abworrall/hdr-clut/pkg/tonemap"
)

/* Example config file ...

width: 640
height: 360
exposure: 1.5
tonemapper: aces
applyclut: true
clutstrength: 0.7
preset: Vintage (3D)
splitscreen: true
splitposition: 0.5
scene:
  shape: sphere
  lightintensity: 4
  lightpos: [3, 3, 3]
grade:
  contrast: 1.2
  saturation: 0.8
  temperature: 0.3
  tint: 0

*/

// Config holds all the viewer settings; a yaml config file fills it in.
type Config struct {
	Verbosity           int

	Width               int
	Height              int
	Scene               scene.Config

	Exposure            float64
	AutoExposure        bool      // meter the frame and pick Exposure
	Tonemapper          string
	ApplyCLUT           bool
	CLUTStrength        float64
	Preset              string    // library entry selected at startup
	SplitScreen         bool
	SplitPosition       float64
	ShowCLUT            bool

	Grade               clut.Grade
	CustomName          string    // name used when saving a custom CLUT
	CLUTDir             string    // where custom CLUTs get written

	AutoRotateModel     bool
	ModelRotationSpeed  float32   // radians/sec about Y
	AutoRotateLight     bool
	LightRotationSpeed  float32   // radians/sec
	LightRotationRadius float32

	OutputFilename      string
	HDRFilename         string    // if set, the HDR framebuffer is written here too
}

func NewConfig() Config {
	return Config{
		Width:               1280,
		Height:              720,
		Scene:               scene.NewConfig(),
		Exposure:            1.0,
		Tonemapper:          tonemap.Reinhard,
		ApplyCLUT:           true,
		CLUTStrength:        0.7,
		Preset:              clut.PresetName("Neutral", false),
		SplitPosition:       0.5,
		ShowCLUT:            true,
		Grade:               clut.NeutralGrade(),
		CustomName:          "MyCustomLUT",
		CLUTDir:             ".",
		ModelRotationSpeed:  0.5,
		LightRotationSpeed:  0.3,
		LightRotationRadius: 3.0,
		OutputFilename:      "out.png",
	}
}

// NewConfigFromYaml overlays the yaml onto the defaults, so a config
// file only needs to mention what it changes.
func NewConfigFromYaml(b []byte) (Config, error) {
	c := NewConfig()
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, err
	}
	return c, nil
}

func LoadConfig(filename string) (Config, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("config read %s: %w", filename, err)
	}

	c, err := NewConfigFromYaml(contents)
	if err != nil {
		return c, fmt.Errorf("config parse %s: %w", filename, err)
	}
	return c, nil
}

func (c Config)AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("# can't marshal config yaml: %v\n", err)
	}
	return string(b)
}

// Finalize does sanity checks, after the config file and the command
// line have both had their say.
func (c *Config)Finalize() error {
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("bad output size %dx%d", c.Width, c.Height)
	}
	if !tonemap.IsKnown(c.Tonemapper) {
		return fmt.Errorf("no tonemapper named '%s', wanted one of %s", c.Tonemapper, tonemap.ListString())
	}
	if !c.AutoExposure && (c.Exposure < tonemap.MinExposure || c.Exposure > tonemap.MaxExposure) {
		return fmt.Errorf("exposure %.2f outside [%.1f, %.1f]", c.Exposure, tonemap.MinExposure, tonemap.MaxExposure)
	}
	if c.CLUTStrength < 0 || c.CLUTStrength > 1 {
		return fmt.Errorf("clut strength %.2f outside [0, 1]", c.CLUTStrength)
	}
	if c.SplitPosition < 0 || c.SplitPosition > 1 {
		return fmt.Errorf("split position %.2f outside [0, 1]", c.SplitPosition)
	}
	if err := c.Grade.Validate(); err != nil {
		return fmt.Errorf("grade: %w", err)
	}
	if err := c.Scene.Validate(); err != nil {
		return err
	}
	return nil
}
