package main

import (
	"fmt"
	"image"
	"log"

	"globe-viewer/globe/libgl"
	"globe-viewer/globe/libio"
	"globe-viewer/globe/libscn"
	"globe-viewer/globe/libutil"
	"globe-viewer/globe/libworld"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	globeSegments = 32
	globeRings    = 18
	skyRadius     = 20
)

var (
	clearColor = mgl32.Vec4{0.02, 0.02, 0.04, 1}
	skyTint    = mgl32.Vec4{0.6, 0.6, 0.6, 1}
	globeTint  = mgl32.Vec4{1, 1, 1, 1}
)

// MeshBuffer is a mesh uploaded into one vertex array.
type MeshBuffer struct {
	Name  string
	vao   libgl.UnboundVertexArray
	vbo   libgl.UnboundBuffer
	ebo   libgl.UnboundBuffer
	count int32
}

func UploadMesh(mesh *libscn.Mesh) *MeshBuffer {
	vao := libgl.NewVertexArray()
	vao.SetDebugLabel(mesh.Name)
	vao.Layout(0, 0, 3, gl.FLOAT, false, 0)
	vao.Layout(0, 1, 2, gl.FLOAT, false, 3*4)
	vao.Layout(0, 2, 3, gl.FLOAT, false, (3+2)*4)

	vbo := libgl.NewBuffer()
	vbo.SetDebugLabel(mesh.Name + " vertices")
	vbo.Allocate(mesh.Vertices, 0)
	vao.BindBuffer(0, vbo, 0, libscn.VertexSize)

	ebo := libgl.NewBuffer()
	ebo.SetDebugLabel(mesh.Name + " indices")
	ebo.Allocate(mesh.Indices, 0)
	vao.BindElementBuffer(ebo)

	return &MeshBuffer{
		Name:  mesh.Name,
		vao:   vao,
		vbo:   vbo,
		ebo:   ebo,
		count: int32(len(mesh.Indices)),
	}
}

func (mb *MeshBuffer) Draw() {
	mb.vao.Bind()
	gl.DrawElements(gl.TRIANGLES, mb.count, gl.UNSIGNED_INT, nil)
}

func (mb *MeshBuffer) Delete() {
	mb.vbo.Delete()
	mb.ebo.Delete()
	mb.vao.Delete()
}

// GlobeRenderer draws the sky dome, the textured globe and its overlays.
// GPU textures are created from images the TextureSet decoded in the background.
type GlobeRenderer struct {
	radius   float32
	globe    *MeshBuffer
	sky      *MeshBuffer
	shader   libgl.UnboundShaderPipeline
	skyShade libgl.UnboundShaderPipeline
	sampler  libgl.UnboundSampler
	direct   *DirectBuffer
	textures map[string]libgl.UnboundTexture
	// asset name of the texture on the globe
	current string
	owned   []libutil.Deleter
}

func NewGlobeRenderer(radius float32, direct *DirectBuffer) (*GlobeRenderer, error) {
	r := &GlobeRenderer{
		radius:   radius,
		direct:   direct,
		textures: map[string]libgl.UnboundTexture{},
	}

	globeMesh, err := libscn.UvSphere("globe", radius, globeSegments, globeRings)
	if err != nil {
		return nil, fmt.Errorf("could not build globe mesh: %w", err)
	}
	skyMesh, err := libscn.UvSphere("sky", skyRadius, globeSegments, globeRings)
	if err != nil {
		return nil, fmt.Errorf("could not build sky mesh: %w", err)
	}
	skyMesh.Invert()
	r.globe = UploadMesh(globeMesh)
	r.sky = UploadMesh(skyMesh)

	r.shader, err = libgl.LoadPipeline("globe", Res_GlobeVshSrc, Res_GlobeFshSrc, nil)
	if err != nil {
		return nil, err
	}
	r.skyShade, err = libgl.LoadPipeline("sky", Res_GlobeVshSrc, Res_GlobeFshSrc, map[string]string{"SKY": "true"})
	if err != nil {
		return nil, err
	}

	r.sampler = libgl.NewSampler()
	r.sampler.SetDebugLabel("globe")
	r.sampler.FilterMode(gl.LINEAR_MIPMAP_LINEAR, gl.LINEAR)
	// u wraps around the date line, v stops at the poles
	r.sampler.WrapMode(gl.REPEAT, gl.CLAMP_TO_EDGE)
	r.sampler.AnisotropicFilter(8)

	r.owned = []libutil.Deleter{r.globe, r.sky, r.shader, r.skyShade, r.sampler}
	return r, nil
}

// Upload creates the GPU texture for a decoded image. Called from TextureSet.Poll.
func (r *GlobeRenderer) Upload(name string, img *image.RGBA) {
	if old, ok := r.textures[name]; ok {
		old.Delete()
	}
	tex, err := libgl.UploadRGBA(name, img)
	if err != nil {
		log.Printf("could not upload texture %q: %v", name, err)
		return
	}
	r.textures[name] = tex
}

func (r *GlobeRenderer) HasTexture(name string) bool {
	_, ok := r.textures[name]
	return ok
}

// SetGlobeTexture swaps the globe texture. A texture that is not uploaded yet is
// skipped and false is returned.
func (r *GlobeRenderer) SetGlobeTexture(name string) bool {
	if !r.HasTexture(name) {
		return false
	}
	r.current = name
	return true
}

func (r *GlobeRenderer) GlobeTexture() string {
	return r.current
}

// Draw renders one frame into the default framebuffer.
func (r *GlobeRenderer) Draw(cam *Camera, settings libworld.Settings) {
	libgl.PushGroup("Draw globe")
	defer libgl.PopGroup()

	vp := cam.Viewport()
	libgl.State.Viewport(vp[0], vp[1], vp[2], vp[3])
	libgl.State.ClearColor(clearColor[0], clearColor[1], clearColor[2], clearColor[3])
	libgl.State.DepthMask(true)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	viewProj := cam.ViewProjection()
	r.sampler.Bind(0)

	if sky, ok := r.textures[libio.SkyTexture]; ok && settings.ShowSky {
		libgl.State.SetEnabled(libgl.CullFace)
		libgl.State.CullBack()
		libgl.State.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
		libgl.State.DepthMask(false)
		// the dome follows the camera so it never gets closer
		model := mgl32.Translate3D(cam.Position[0], cam.Position[1], cam.Position[2])
		r.skyShade.Bind()
		r.skyShade.Get(gl.VERTEX_SHADER).SetUniform("u_view_projection_mat", viewProj)
		r.skyShade.Get(gl.VERTEX_SHADER).SetUniform("u_model_mat", model)
		r.skyShade.Get(gl.FRAGMENT_SHADER).SetUniform("u_tint", skyTint)
		sky.Bind(0)
		r.sky.Draw()
		libgl.State.DepthMask(true)
	}

	if tex, ok := r.textures[r.current]; ok {
		libgl.State.SetEnabled(libgl.DepthTest, libgl.CullFace, libgl.Blend)
		libgl.State.CullBack()
		libgl.State.DepthFunc(libgl.DepthFuncLess)
		libgl.State.BlendEquation(libgl.BlendFuncAdd)
		libgl.State.BlendFunc(libgl.BlendSrcAlpha, libgl.BlendOneMinusSrcAlpha)
		if settings.Wireframe {
			libgl.State.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		} else {
			libgl.State.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
		}
		r.shader.Bind()
		r.shader.Get(gl.VERTEX_SHADER).SetUniform("u_view_projection_mat", viewProj)
		r.shader.Get(gl.VERTEX_SHADER).SetUniform("u_model_mat", mgl32.Ident4())
		r.shader.Get(gl.FRAGMENT_SHADER).SetUniform("u_wireframe", settings.Wireframe)
		r.shader.Get(gl.FRAGMENT_SHADER).SetUniform("u_tint", globeTint)
		tex.Bind(0)
		r.globe.Draw()
	}

	r.direct.Overlays(libscn.Overlays(settings, r.radius))
	r.direct.Draw(viewProj)
}

func (r *GlobeRenderer) Delete() {
	for _, tex := range r.textures {
		tex.Delete()
	}
	for _, d := range r.owned {
		d.Delete()
	}
	r.direct.Delete()
}
