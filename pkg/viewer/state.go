package viewer

import(
	"fmt"
	"image"
	"log"
	"math"
	"path/filepath"

	"github.com/abworrall/hdr-clut/pkg/clut"
	"github.com/abworrall/hdr-clut/pkg/render"
	"github.com/abworrall/hdr-clut/pkg/scene"
	"github.com/abworrall/hdr-clut/pkg/tonemap"
)

// State is the whole application, settings plus the CLUT library and the
// backend resources built from it. Everything runs on one goroutine,
// frame by frame.
//
// Current is always a copy of a library entry; editing it doesn't
// touch the library until SaveCustom puts it back. Use3D has to agree
// with Current.Is3D, and every method here that changes one changes
// the other.
type State struct {
	Config

	Library       clut.Library
	Current       clut.CLUT
	CurrentPreset string
	Use3D         bool

	// If set, this is tone mapped instead of rendering the scene
	HDRInput      *render.Framebuffer
	// The HDR framebuffer behind the most recent frame
	LastFrame     *render.Framebuffer

	backend       render.Backend
	lut1D         render.Handle
	lut3D         render.Handle
	lightAngle    float32
}

func NewState(cfg Config, backend render.Backend) (*State, error) {
	if err := cfg.Finalize(); err != nil {
		return nil, err
	}

	grade := cfg.Grade
	s := &State{
		Config:  cfg,
		Library: clut.NewPresetLibrary(),
		backend: backend,
	}

	// Both textures always exist, one per sampler;
	// Use3D picks which one the pass reads.
	neutral3D, err := s.Library.Get(clut.PresetName("Neutral", true))
	if err != nil {
		return nil, err
	}
	if err := s.uploadCLUT(neutral3D); err != nil {
		return nil, err
	}
	if err := s.SelectPreset(clut.PresetName("Neutral", false)); err != nil {
		return nil, err
	}

	if cfg.Preset != "" && cfg.Preset != s.CurrentPreset {
		if err := s.SelectPreset(cfg.Preset); err != nil {
			return nil, err
		}
	}

	// A grade in the config is applied on top of the startup preset's type
	if !grade.IsNeutral() {
		s.Grade = grade
		if err := s.ApplyEdits(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Close releases the backend textures
func (s *State)Close() error {
	for _, h := range []render.Handle{s.lut1D, s.lut3D} {
		if h != 0 {
			if err := s.backend.Destroy(h); err != nil {
				return err
			}
		}
	}
	s.lut1D, s.lut3D = 0, 0
	return nil
}

// uploadCLUT builds a texture from the table, then swaps it in for the
// old texture of the same type. If anything fails the old one is kept.
func (s *State)uploadCLUT(c clut.CLUT) error {
	if err := c.Validate(); err != nil {
		return err
	}
	h, err := s.backend.CreateTexture(c.Pack())
	if err != nil {
		return fmt.Errorf("upload %s: %w", c, err)
	}

	old := &s.lut1D
	if c.Is3D {
		old = &s.lut3D
	}
	if *old != 0 {
		if err := s.backend.Destroy(*old); err != nil {
			log.Printf("destroying old CLUT texture %d: %v", *old, err)
		}
	}
	*old = h

	return nil
}

// setCurrent makes c the active table; the texture is rebuilt first,
// so a table that can't be uploaded leaves the state as it was.
func (s *State)setCurrent(c clut.CLUT, presetName string) error {
	if err := s.uploadCLUT(c); err != nil {
		return err
	}
	s.Current = c
	s.CurrentPreset = presetName
	s.Use3D = c.Is3D

	if s.Verbosity > 0 {
		log.Printf("Current CLUT: %s", c)
	}
	return nil
}

// SelectPreset copies a library entry into Current, and resets the grade sliders
func (s *State)SelectPreset(name string) error {
	c, err := s.Library.Get(name)
	if err != nil {
		return err
	}
	if err := s.setCurrent(c, name); err != nil {
		return err
	}
	s.Grade = clut.NeutralGrade()
	return nil
}

// LoadCLUT reads a table from disk, adds it to the library under its
// file name and selects it. A failed load changes nothing, and the
// error matches clut.ErrLoadFailure.
func (s *State)LoadCLUT(filename string) error {
	c, err := clut.LoadFromFile(filename)
	if err != nil {
		return err
	}
	if err := s.setCurrent(c.Clone(), c.Name); err != nil {
		return err
	}
	s.Library.Put(c)
	log.Printf("Loaded %s from %s", c, filename)
	return nil
}

// ApplyEdits regenerates Current from the neutral table of the current
// type, with the grade sliders applied.
func (s *State)ApplyEdits() error {
	base, err := s.Library.Get(clut.PresetName("Neutral", s.Use3D))
	if err != nil {
		return err
	}
	if err := s.Grade.Validate(); err != nil {
		return err
	}

	graded := clut.ApplyGrade(base, s.Grade)
	graded.Name = "Custom 1D"
	if s.Use3D {
		graded.Name = "Custom 3D"
	}

	log.Printf("Applying grade (%s) to %s", s.Grade, base.Name)
	return s.setCurrent(graded, graded.Name)
}

// SaveCustom names the current table, stores it in the library and
// writes <dir>/<name>.cube. Returns the path written.
func (s *State)SaveCustom(name, dir string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("SaveCustom: no name")
	}
	if filepath.Base(name) != name {
		return "", fmt.Errorf("SaveCustom: name '%s' has a path in it", name)
	}

	s.Current.Name = name
	s.Library.Put(s.Current)
	s.CurrentPreset = name

	path := filepath.Join(dir, name+".cube")
	if err := s.Current.SaveToFile(path); err != nil {
		return "", err
	}
	log.Printf("CLUT saved as %s", path)
	return path, nil
}

// Advance moves the auto-rotations on by dt seconds
func (s *State)Advance(dt float32) {
	const twoPi = 2 * math.Pi

	if s.AutoRotateModel {
		s.Scene.Rotation[1] = float32(math.Mod(float64(s.Scene.Rotation[1]+s.ModelRotationSpeed*dt), twoPi))
	}
	if s.AutoRotateLight {
		s.lightAngle = float32(math.Mod(float64(s.lightAngle+s.LightRotationSpeed*dt), twoPi))
		s.Scene.OrbitLight(s.lightAngle, s.LightRotationRadius)
	}
}

// Pass builds the post-process uniforms from the current settings
func (s *State)Pass(buffer render.Handle) render.Pass {
	return render.Pass{
		HDRBuffer:     buffer,
		LUT1D:         s.lut1D,
		LUT3D:         s.lut3D,
		Exposure:      s.Exposure,
		Tonemapper:    s.Tonemapper,
		ApplyCLUT:     s.ApplyCLUT,
		Use3D:         s.Use3D,
		CLUTStrength:  s.CLUTStrength,
		SplitScreen:   s.SplitScreen,
		SplitPosition: s.SplitPosition,
		ShowCLUT:      s.ShowCLUT,
		Label:         fmt.Sprintf("%s [%s, size %d]", s.CurrentPreset, s.Current.Dims(), s.Current.Size),
	}
}

// RenderFrame draws the scene (or the HDR input) into a framebuffer,
// then runs the post-process pass over it.
func (s *State)RenderFrame() (image.Image, error) {
	fb := s.HDRInput
	if fb == nil {
		var err error
		if fb, err = scene.Render(s.Scene, s.Width, s.Height); err != nil {
			return nil, err
		}
	}
	s.LastFrame = fb

	if s.AutoExposure {
		s.Exposure = tonemap.AutoExposure(fb, tonemap.DefaultKey)
		log.Printf("Auto exposure: %.3f (%+.2f EV)", s.Exposure, tonemap.EV(s.Exposure))
	}

	h, err := s.backend.CreateBuffer(fb)
	if err != nil {
		return nil, err
	}
	defer s.backend.Destroy(h)

	return s.backend.Submit(s.Pass(h))
}

func (s *State)String() string {
	str := fmt.Sprintf("State[preset %q, %s", s.CurrentPreset, s.Current)
	if s.HDRInput != nil {
		str += fmt.Sprintf(", input %s", s.HDRInput)
	} else {
		str += fmt.Sprintf(", scene %s", s.Scene.Shape)
	}
	return str + "]"
}
