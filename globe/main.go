package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"runtime"
	"time"
	"unsafe"

	"globe-viewer/globe/libcfg"
	"globe-viewer/globe/libgl"
	"globe-viewer/globe/libio"
	"globe-viewer/globe/libnav"
	"globe-viewer/globe/libobs"
	"globe-viewer/globe/libsat"
	"globe-viewer/globe/libutil"
	"globe-viewer/globe/libworld"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	im "github.com/inkyblackness/imgui-go/v4"
)

//go:embed assets/shaders/imgui.vert
var Res_ImguiVshSrc string

//go:embed assets/shaders/imgui.frag
var Res_ImguiFshSrc string

//go:embed assets/shaders/globe.vert
var Res_GlobeVshSrc string

//go:embed assets/shaders/globe.frag
var Res_GlobeFshSrc string

//go:embed assets/shaders/direct.vert
var Res_DirectVshSrc string

//go:embed assets/shaders/direct.frag
var Res_DirectFshSrc string

var Arguments struct {
	ConfigFile                 string
	EnvFile                    string
	Assets                     string
	RemoteAddr                 string
	TLE                        string
	EnableCompatibilityProfile bool
	DisableShaderCache         bool
	DebugGl                    bool
}

// how often the tracked satellite position is recomputed
const satelliteInterval = time.Second

func main() {
	flag.StringVar(&Arguments.ConfigFile, "config", libcfg.DefaultFile, "YAML configuration file")
	flag.StringVar(&Arguments.EnvFile, "env", ".env", "file with GLOBE_* variables")
	flag.StringVar(&Arguments.Assets, "assets", "", "asset root directory")
	flag.StringVar(&Arguments.RemoteAddr, "remote-addr", "", "serve the remote control API on this address")
	flag.StringVar(&Arguments.TLE, "tle", "", "two line element file of a satellite to track")
	flag.BoolVar(&Arguments.EnableCompatibilityProfile, "enable-compatibility-profile", Arguments.EnableCompatibilityProfile, "")
	flag.BoolVar(&Arguments.DisableShaderCache, "disable-shader-cache", Arguments.DisableShaderCache, "")
	flag.BoolVar(&Arguments.DebugGl, "debug-gl", Arguments.DebugGl, "enable OpenGL debug output")
	flag.Parse()

	cfg, err := loadConfig()
	check(err)
	scrollUnit, err := libnav.ParseScrollUnit(cfg.Window.ScrollUnit)
	check(err)
	places, err := cfg.PlaceSet()
	check(err)
	if Arguments.DisableShaderCache {
		libgl.ShaderCache.Dir = ""
	}

	runtime.LockOSThread()
	err = glfw.Init()
	check(err)
	defer glfw.Terminate()

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 5)
	glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	if cfg.Window.Compatibility {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCompatProfile)
	} else {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	}
	glfw.WindowHint(glfw.Samples, 4)
	win, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	check(err)
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	err = gl.InitWithProcAddrFunc(func(name string) unsafe.Pointer {
		addr := glfw.GetProcAddress(name)
		if addr == nil {
			return unsafe.Pointer(libutil.InvalidAddress)
		}
		return addr
	})
	check(err)

	libgl.Init()
	if cfg.Window.Debug {
		libgl.EnableDebugOutput()
	}
	log.Printf("using %s (%s)", libgl.Env.Renderer, libgl.Env.Version)

	pack := libio.NewDirPack(cfg.Assets.Root)
	if cfg.Assets.Index != "" {
		check(pack.AddIndexFile(cfg.Assets.Index))
	}
	textures := libio.NewTextureSet(pack)
	textures.Request(libio.DefaultGlobeTexture, libio.GlobeTexture, libio.SkyTexture)
	for month := 1; month <= libworld.MonthCount; month++ {
		textures.Request(libworld.MonthTexturePath(month))
	}

	imguiShader, err := libgl.LoadPipeline("imgui", Res_ImguiVshSrc, Res_ImguiFshSrc, nil)
	check(err)
	directShader, err := libgl.LoadPipeline("direct", Res_DirectVshSrc, Res_DirectFshSrc, nil)
	check(err)

	input := NewInputManager(win, scrollUnit)
	Input = input
	gui := NewImGui(win, imguiShader, input)
	defer gui.Delete()

	renderer, err := NewGlobeRenderer(cfg.Navigation.GlobeRadius, NewDirectDrawBuffer(directShader))
	check(err)
	defer renderer.Delete()

	metrics, err := libobs.NewFrameCollector(nil)
	check(err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var remote *libobs.Remote
	if cfg.Remote.Enabled() {
		remote = libobs.NewRemote(places, cfg.Remote.QueueSize, metrics)
		go func() {
			if err := remote.ListenAndServe(ctx, cfg.Remote.Addr); err != nil {
				log.Printf("remote control stopped: %v", err)
			}
		}()
	}

	var tracker *libsat.Tracker
	panels := &Panels{Places: places}
	if cfg.Satellite.TLE != "" {
		tracker, err = loadTracker(cfg.Satellite.TLE)
		check(err)
		panels.Satellite = &SatelliteFollow{Name: tracker.Name, Follow: cfg.Satellite.Follow}
	}
	satTimer := libworld.NewTimer(satelliteInterval)

	fbWidth, fbHeight := win.GetFramebufferSize()
	cam := &Camera{
		VerticalFov:       45,
		ViewportDimension: mgl32.Vec2{float32(fbWidth), float32(fbHeight)},
		ClippingPlanes:    mgl32.Vec2{0.01, 100},
	}
	cam.UpdateProjectionMatrix()
	win.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		cam.ViewportDimension = mgl32.Vec2{float32(width), float32(height)}
		cam.UpdateProjectionMatrix()
	})

	ctrl := libnav.NewController(cfg.Navigation)
	settings := cfg.World
	cycler := &libworld.MonthCycler{}
	hover := &libnav.HoverTracker{}

	for !win.ShouldClose() {
		glfw.PollEvents()
		Input.Update(win)
		dt := time.Duration(float64(Input.TimeDelta()) * float64(time.Second))

		textures.Poll(func(name string, img *image.RGBA) {
			renderer.Upload(name, img)
			textures.Release(name)
		})

		// the UI owns the pointer while it is over one of its windows
		uiOwnsPointer := gui.WantsMouse()
		pointer := libnav.Pointer{
			LeftDown: Input.IsMouseDown(glfw.MouseButtonLeft),
			Delta:    Input.CursorDelta(),
			Scroll:   Input.Scroll(),
		}
		panels.HoveredValid = false
		if !uiOwnsPointer {
			cam.UpdateViewMatrix(ctrl.Pose)
			panels.Hovered, panels.HoveredValid = libnav.Pick(framebufferCursor(win), cam.Viewport(), cam.ViewMatrix, cam.ProjectionMatrix, cfg.Navigation.GlobeRadius)
			pointer.OverGlobe = panels.HoveredValid
		}
		frame := libnav.NewInputFrame(pointer, uiOwnsPointer, hover, Input.TimeDelta())

		if remote != nil {
			for _, req := range remote.Drain() {
				frame.Navigate = append(frame.Navigate, req.Target)
				metrics.NavigationRequested(req.Source)
			}
		}
		if tracker != nil && satTimer.Tick(dt) {
			sat := panels.Satellite
			sat.Position, sat.Altitude, sat.Err = tracker.SubPoint(time.Now())
			if sat.Follow && sat.Err == nil {
				frame.Navigate = append(frame.Navigate, sat.Position)
				metrics.NavigationRequested(libobs.SourceSatellite)
			}
		}

		result := ctrl.Update(frame)
		cam.UpdateViewMatrix(ctrl.Pose)

		if !gui.WantsKeyboard() && Input.IsKeyTap(glfw.KeySpace) {
			settings.ToggleWireframe()
		}
		cycler.Tick(dt, &settings)
		wanted := libworld.MonthTexturePath(int(settings.Month))
		if next := libio.NextGlobeTexture(renderer.GlobeTexture(), wanted, renderer.HasTexture); next != "" {
			renderer.SetGlobeTexture(next)
		}

		renderer.Draw(cam, settings)

		im.NewFrame()
		clicked := DrawPanels(&settings, ctrl, panels)
		for _, target := range clicked {
			ctrl.Request(target)
			metrics.NavigationRequested(libobs.SourceUI)
		}
		panels.TextureName = renderer.GlobeTexture()
		gui.Draw(win)

		metrics.ObserveFrame(dt, result, ctrl, settings.Month)
		if remote != nil {
			remote.Publish(libobs.Snapshot(ctrl, settings.Month, time.Now()))
		}

		win.SwapBuffers()
	}
}

// framebufferCursor converts the cursor from window to framebuffer coordinates.
func framebufferCursor(win *glfw.Window) mgl32.Vec2 {
	winWidth, winHeight := win.GetSize()
	fbWidth, fbHeight := win.GetFramebufferSize()
	cursor := Input.CursorPos()
	if winWidth == 0 || winHeight == 0 {
		return cursor
	}
	return mgl32.Vec2{
		cursor[0] * float32(fbWidth) / float32(winWidth),
		cursor[1] * float32(fbHeight) / float32(winHeight),
	}
}

// loadConfig layers defaults, the YAML file, GLOBE_* variables and flags, in that order.
func loadConfig() (libcfg.Config, error) {
	if err := libcfg.LoadDotEnv(Arguments.EnvFile); err != nil {
		return libcfg.Config{}, err
	}
	required := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			required = true
		}
	})
	cfg, err := libcfg.Load(Arguments.ConfigFile, required)
	if err != nil {
		return cfg, err
	}
	if err = cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}

	if Arguments.Assets != "" {
		cfg.Assets.Root = Arguments.Assets
	}
	if Arguments.RemoteAddr != "" {
		cfg.Remote.Addr = Arguments.RemoteAddr
	}
	if Arguments.TLE != "" {
		cfg.Satellite.TLE = Arguments.TLE
	}
	if Arguments.EnableCompatibilityProfile {
		cfg.Window.Compatibility = true
	}
	if Arguments.DebugGl {
		cfg.Window.Debug = true
	}

	return cfg, cfg.Validate()
}

func loadTracker(filename string) (*libsat.Tracker, error) {
	tles, err := libsat.ReadTLEFile(filename)
	if err != nil {
		return nil, err
	}
	if len(tles) == 0 {
		return nil, fmt.Errorf("%s holds no satellite", filename)
	}
	if len(tles) > 1 {
		log.Printf("%s holds %d satellites, tracking %q", filename, len(tles), tles[0].Name)
	}
	return libsat.NewTracker(tles[0])
}

func check(err error) {
	if err != nil {
		log.Panic(err)
	}
}
