package libgl

import (
	"fmt"
	"image"
	"math"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

type texture struct {
	glId   uint32
	width  int32
	height int32
	levels int32
}

type UnboundTexture interface {
	LabeledGlObject
	Id() uint32
	Bind(unit int) BoundTexture
	Allocate(levels int, internalFormat uint32, width, height int)
	Load(level int, width, height int, format uint32, data []byte)
	GenerateMipmap()
	Size() (width, height int)
	Delete()
}

type BoundTexture interface {
	UnboundTexture
}

// NewTexture creates a 2D texture name without storage.
func NewTexture() UnboundTexture {
	var id uint32
	gl.CreateTextures(gl.TEXTURE_2D, 1, &id)
	if Env.UseIntelTextureBindingFix {
		Env.IntelTextureBindingTargets[id] = gl.TEXTURE_2D
	}
	return &texture{
		glId: id,
	}
}

// UploadRGBA creates a mipmapped sRGB texture from img.
func UploadRGBA(name string, img *image.RGBA) (UnboundTexture, error) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("could not upload texture %q: image is empty", name)
	}
	if img.Stride != w*4 {
		return nil, fmt.Errorf("could not upload texture %q: stride %d is not tightly packed", name, img.Stride)
	}
	tex := NewTexture()
	tex.SetDebugLabel(name)
	tex.Allocate(0, gl.SRGB8_ALPHA8, w, h)
	tex.Load(0, w, h, gl.RGBA, img.Pix)
	tex.GenerateMipmap()
	return tex, nil
}

// MipLevels is the length of a full mip chain for the given size.
func MipLevels(width, height int) int {
	max := math.Max(float64(width), float64(height))
	levels := int(math.Log2(max)) + 1
	if levels < 1 {
		levels = 1
	}
	return levels
}

func (tex *texture) Id() uint32 {
	return tex.glId
}

func (tex *texture) SetDebugLabel(label string) {
	setObjectLabel(gl.TEXTURE, tex.glId, label)
}

func (tex *texture) Bind(unit int) BoundTexture {
	State.BindTextureUnit(unit, tex.glId)
	return BoundTexture(tex)
}

func (tex *texture) Size() (int, int) {
	return int(tex.width), int(tex.height)
}

func (tex *texture) Delete() {
	if Env.UseIntelTextureBindingFix {
		delete(Env.IntelTextureBindingTargets, tex.glId)
	}
	State.ForgetTexture(tex.glId)
	gl.DeleteTextures(1, &tex.glId)
	tex.glId = 0
}

// Allocate creates immutable storage. levels == 0 allocates the full mip chain.
func (tex *texture) Allocate(levels int, internalFormat uint32, width, height int) {
	if levels == 0 {
		levels = MipLevels(width, height)
	}
	tex.width = int32(width)
	tex.height = int32(height)
	tex.levels = int32(levels)
	gl.TextureStorage2D(tex.glId, int32(levels), internalFormat, int32(width), int32(height))
}

func (tex *texture) Load(level int, width, height int, format uint32, data []byte) {
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TextureSubImage2D(tex.glId, int32(level), 0, 0, int32(width), int32(height), format, gl.UNSIGNED_BYTE, Pointer(data))
}

func (tex *texture) GenerateMipmap() {
	if tex.levels > 1 {
		gl.GenerateTextureMipmap(tex.glId)
	}
}

type sampler struct {
	glId uint32
}

type UnboundSampler interface {
	LabeledGlObject
	Id() uint32
	Bind(unit int) BoundSampler
	FilterMode(min, mag int32)
	WrapMode(s, t int32)
	BorderColor(color mgl32.Vec4)
	AnisotropicFilter(quality float32)
	Delete()
}

type BoundSampler interface {
	UnboundSampler
}

func NewSampler() UnboundSampler {
	var id uint32
	gl.CreateSamplers(1, &id)
	return &sampler{
		glId: id,
	}
}

func (s *sampler) Id() uint32 {
	return s.glId
}

func (s *sampler) SetDebugLabel(label string) {
	setObjectLabel(gl.SAMPLER, s.glId, label)
}

func (s *sampler) Bind(unit int) BoundSampler {
	State.BindSampler(unit, s.glId)
	return BoundSampler(s)
}

func (s *sampler) FilterMode(min, mag int32) {
	if min != 0 {
		gl.SamplerParameteri(s.glId, gl.TEXTURE_MIN_FILTER, min)
	}
	if mag != 0 {
		gl.SamplerParameteri(s.glId, gl.TEXTURE_MAG_FILTER, mag)
	}
}

func (sampler *sampler) WrapMode(s, t int32) {
	if s != 0 {
		gl.SamplerParameteri(sampler.glId, gl.TEXTURE_WRAP_S, s)
	}
	if t != 0 {
		gl.SamplerParameteri(sampler.glId, gl.TEXTURE_WRAP_T, t)
	}
}

func (sampler *sampler) BorderColor(color mgl32.Vec4) {
	gl.SamplerParameterfv(sampler.glId, gl.TEXTURE_BORDER_COLOR, &color[0])
}

// AnisotropicFilter is clamped to the driver maximum.
func (sampler *sampler) AnisotropicFilter(quality float32) {
	if Env != nil && quality > Env.Features.MaxTextureMaxAnisotropy {
		quality = Env.Features.MaxTextureMaxAnisotropy
	}
	if quality < 1 {
		return
	}
	gl.SamplerParameterf(sampler.glId, gl.TEXTURE_MAX_ANISOTROPY, quality)
}

func (s *sampler) Delete() {
	gl.DeleteSamplers(1, &s.glId)
	s.glId = 0
}
