package libgl

import (
	"strings"

	"github.com/go-gl/gl/v4.5-core/gl"
)

type Capability uint32

const (
	DepthTest         Capability = gl.DEPTH_TEST
	Blend             Capability = gl.BLEND
	ScissorTest       Capability = gl.SCISSOR_TEST
	CullFace          Capability = gl.CULL_FACE
	PolygonOffsetLine Capability = gl.POLYGON_OFFSET_LINE
	LineSmooth        Capability = gl.LINE_SMOOTH
)

type BlendFactor uint32

const (
	BlendZero             BlendFactor = gl.ZERO
	BlendOne              BlendFactor = gl.ONE
	BlendSrcAlpha         BlendFactor = gl.SRC_ALPHA
	BlendOneMinusSrcAlpha BlendFactor = gl.ONE_MINUS_SRC_ALPHA
)

type BlendEquation uint32

const (
	BlendFuncAdd BlendEquation = gl.FUNC_ADD
)

type DepthFunc uint32

const (
	DepthFuncLess   DepthFunc = gl.LESS
	DepthFuncLEqual DepthFunc = gl.LEQUAL
	DepthFuncAlways DepthFunc = gl.ALWAYS
)

// StateManager shadows the bits of GL state the viewer touches so redundant
// calls never reach the driver.
type StateManager struct {
	Caps                              map[Capability]bool
	TextureUnits, SamplerUnits        []uint32
	ArrayBuffer, ElementArrayBuffer   uint32
	ProgramPipeline, VertexArray      uint32
	ActiveTextureUnit                 int
	ViewportRect, ScissorRect         [4]int
	BlendFactorSrc, BlendFactorDst    BlendFactor
	BlendEquationMode                 BlendEquation
	DepthFuncFn                       DepthFunc
	DepthWriteMask                    bool
	CullFaceMask                      uint32
	ClearColorRGBA                    [4]float32
	PolygonOffsets                    [2]float32
	PolygonModeFront, PolygonModeBack uint32
	LineWidthPx                       float32
}

var State *StateManager

var Env *Environment

type Environment struct {
	Vendor                     string
	Renderer                   string
	Version                    string
	UseIntelTextureBindingFix  bool
	IntelTextureBindingTargets map[uint32]uint32
	Features                   Features
}

type Features struct {
	MaxTextureMaxAnisotropy float32
	LineWidthRange          [2]float32
}

const (
	VendorIntel   = "intel"
	VendorNvidia  = "nvidia"
	VendorAmd     = "ati"
	VendorUnknown = "unknown"
)

// Init sets up State and Env for the current context.
func Init() {
	State = NewStateManager()
	Env = GetEnv()
}

func GetEnv() *Environment {
	rawVendor := gl.GoStr(gl.GetString(gl.VENDOR))
	vendor := strings.ToLower(strings.TrimSuffix(rawVendor, "\x00"))
	switch {
	case strings.Contains(vendor, "intel"):
		vendor = VendorIntel
	case strings.Contains(vendor, "nvidia"):
		vendor = VendorNvidia
	case strings.Contains(vendor, "ati ") || strings.Contains(vendor, "amd"):
		vendor = VendorAmd
	default:
		vendor = VendorUnknown
	}

	features := Features{}
	gl.GetFloatv(gl.MAX_TEXTURE_MAX_ANISOTROPY, &features.MaxTextureMaxAnisotropy)
	gl.GetFloatv(gl.ALIASED_LINE_WIDTH_RANGE, &features.LineWidthRange[0])

	return &Environment{
		Vendor:                     vendor,
		Renderer:                   gl.GoStr(gl.GetString(gl.RENDERER)),
		Version:                    gl.GoStr(gl.GetString(gl.VERSION)),
		UseIntelTextureBindingFix:  vendor == VendorIntel,
		IntelTextureBindingTargets: map[uint32]uint32{},
		Features:                   features,
	}
}

func NewStateManager() *StateManager {
	return &StateManager{
		Caps:         map[Capability]bool{},
		TextureUnits: make([]uint32, 32),
		SamplerUnits: make([]uint32, 32),
		// GL defaults
		DepthWriteMask:   true,
		PolygonModeFront: gl.FILL,
		PolygonModeBack:  gl.FILL,
		LineWidthPx:      1,
	}
}

func (s *StateManager) Enable(cap Capability) {
	if s.Caps[cap] {
		return
	}
	gl.Enable(uint32(cap))
	s.Caps[cap] = true
}

func (s *StateManager) Disable(cap Capability) {
	if !s.Caps[cap] {
		return
	}
	gl.Disable(uint32(cap))
	s.Caps[cap] = false
}

// SetEnabled enables exactly caps and disables every other tracked capability.
func (s *StateManager) SetEnabled(caps ...Capability) {
	want := make(map[Capability]bool, len(caps))
	for _, c := range caps {
		want[c] = true
	}
	for c, on := range s.Caps {
		if on && !want[c] {
			s.Disable(c)
		}
	}
	for c := range want {
		s.Enable(c)
	}
}

func (s *StateManager) CullBack() {
	if s.CullFaceMask == gl.BACK {
		return
	}
	gl.CullFace(gl.BACK)
	s.CullFaceMask = gl.BACK
}

func (s *StateManager) BlendFunc(sfactor, dfactor BlendFactor) {
	if s.BlendFactorSrc == sfactor && s.BlendFactorDst == dfactor {
		return
	}
	gl.BlendFunc(uint32(sfactor), uint32(dfactor))
	s.BlendFactorSrc = sfactor
	s.BlendFactorDst = dfactor
}

func (s *StateManager) BlendEquation(mode BlendEquation) {
	if s.BlendEquationMode == mode {
		return
	}
	gl.BlendEquation(uint32(mode))
	s.BlendEquationMode = mode
}

func (s *StateManager) DepthFunc(fn DepthFunc) {
	if s.DepthFuncFn == fn {
		return
	}
	gl.DepthFunc(uint32(fn))
	s.DepthFuncFn = fn
}

func (s *StateManager) DepthMask(flag bool) {
	if s.DepthWriteMask == flag {
		return
	}
	gl.DepthMask(flag)
	s.DepthWriteMask = flag
}

func (s *StateManager) PolygonMode(face, mode uint32) {
	if face == gl.FRONT_AND_BACK && (s.PolygonModeFront != mode || s.PolygonModeBack != mode) {
		gl.PolygonMode(face, mode)
		s.PolygonModeBack = mode
		s.PolygonModeFront = mode
	} else if face == gl.FRONT && s.PolygonModeFront != mode {
		gl.PolygonMode(face, mode)
		s.PolygonModeFront = mode
	} else if face == gl.BACK && s.PolygonModeBack != mode {
		gl.PolygonMode(face, mode)
		s.PolygonModeBack = mode
	}
}

func (s *StateManager) PolygonOffset(factor, units float32) {
	if s.PolygonOffsets[0] == factor && s.PolygonOffsets[1] == units {
		return
	}
	gl.PolygonOffset(factor, units)
	s.PolygonOffsets = [2]float32{factor, units}
}

// LineWidth clamps w to what the driver supports.
func (s *StateManager) LineWidth(w float32) {
	if Env != nil && Env.Features.LineWidthRange[1] > 0 {
		w = clamp(w, Env.Features.LineWidthRange[0], Env.Features.LineWidthRange[1])
	}
	if s.LineWidthPx == w {
		return
	}
	gl.LineWidth(w)
	s.LineWidthPx = w
}

func (s *StateManager) BindTextureUnit(unit int, texture uint32) {
	if s.TextureUnits[unit] == texture {
		return
	}
	if Env.UseIntelTextureBindingFix {
		s.ActiveTexture(unit)
		if texture == 0 {
			s.TextureUnits[unit] = texture
			return
		}
		gl.BindTexture(Env.IntelTextureBindingTargets[texture], texture)
		s.TextureUnits[unit] = texture
		return
	}
	gl.BindTextureUnit(uint32(unit), texture)
	s.TextureUnits[unit] = texture
}

func (s *StateManager) ActiveTexture(unit int) {
	if s.ActiveTextureUnit == unit {
		return
	}
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	s.ActiveTextureUnit = unit
}

func (s *StateManager) BindSampler(unit int, sampler uint32) {
	if s.SamplerUnits[unit] == sampler {
		return
	}
	gl.BindSampler(uint32(unit), sampler)
	s.SamplerUnits[unit] = sampler
}

// ForgetTexture clears every unit still pointing at a deleted texture.
func (s *StateManager) ForgetTexture(texture uint32) {
	for i, t := range s.TextureUnits {
		if t == texture {
			s.TextureUnits[i] = 0
		}
	}
}

func (s *StateManager) BindBuffer(target uint32, buffer uint32) {
	switch target {
	case gl.ARRAY_BUFFER:
		if s.ArrayBuffer == buffer {
			return
		}
		s.ArrayBuffer = buffer
	case gl.ELEMENT_ARRAY_BUFFER:
		if s.ElementArrayBuffer == buffer {
			return
		}
		s.ElementArrayBuffer = buffer
	}
	gl.BindBuffer(target, buffer)
}

func (s *StateManager) BindProgramPipeline(pipeline uint32) {
	if s.ProgramPipeline == pipeline {
		return
	}
	gl.BindProgramPipeline(pipeline)
	s.ProgramPipeline = pipeline
}

func (s *StateManager) BindVertexArray(array uint32) {
	if s.VertexArray == array {
		return
	}
	gl.BindVertexArray(array)
	s.VertexArray = array
}

func (s *StateManager) Viewport(x, y, w, h int) {
	if s.ViewportRect == [4]int{x, y, w, h} {
		return
	}
	gl.Viewport(int32(x), int32(y), int32(w), int32(h))
	s.ViewportRect = [4]int{x, y, w, h}
}

func (s *StateManager) Scissor(x, y, w, h int) {
	if s.ScissorRect == [4]int{x, y, w, h} {
		return
	}
	gl.Scissor(int32(x), int32(y), int32(w), int32(h))
	s.ScissorRect = [4]int{x, y, w, h}
}

func (s *StateManager) ClearColor(r, g, b, a float32) {
	if s.ClearColorRGBA == [4]float32{r, g, b, a} {
		return
	}
	gl.ClearColor(r, g, b, a)
	s.ClearColorRGBA = [4]float32{r, g, b, a}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
