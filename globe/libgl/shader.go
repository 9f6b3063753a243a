package libgl

import (
	"crypto/md5"
	"encoding/binary"
	"errors"
	"fmt"
	"hash"
	"io"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

var shaderMetaPattern = regexp.MustCompile(`(?m)^\/\/meta:(\w+)(.+)$`)
var shaderDefinePattern = regexp.MustCompile(`(?m)^\s*(\/\/)?\s*#define ([\w\d]+) ?(.*)$`)
var shaderVersionPattern = regexp.MustCompile(`(?m)^\s*#version.+$`)

type shaderPipeline struct {
	glId      uint32
	vertStage ShaderProgram
	fragStage ShaderProgram
}

type UnboundShaderPipeline interface {
	LabeledGlObject
	Bind() BoundShaderPipeline
	Attach(program ShaderProgram, stages int)
	Get(stage int) ShaderProgram
	Id() uint32
	Delete()
}

type BoundShaderPipeline interface {
	UnboundShaderPipeline
}

func NewPipeline() UnboundShaderPipeline {
	var id uint32
	gl.CreateProgramPipelines(1, &id)
	return &shaderPipeline{
		glId: id,
	}
}

// LoadPipeline compiles a vertex and a fragment stage and attaches them to a new pipeline.
// defs override or add #define values in both stages.
func LoadPipeline(name, vertSrc, fragSrc string, defs map[string]string) (UnboundShaderPipeline, error) {
	vert := NewShader(vertSrc, gl.VERTEX_SHADER)
	if err := vert.CompileWith(defs); err != nil {
		return nil, fmt.Errorf("could not compile %v vertex stage: %w", name, err)
	}
	frag := NewShader(fragSrc, gl.FRAGMENT_SHADER)
	if err := frag.CompileWith(defs); err != nil {
		vert.Destroy()
		return nil, fmt.Errorf("could not compile %v fragment stage: %w", name, err)
	}
	pipeline := NewPipeline()
	pipeline.SetDebugLabel(name)
	pipeline.Attach(vert, gl.VERTEX_SHADER_BIT)
	pipeline.Attach(frag, gl.FRAGMENT_SHADER_BIT)
	return pipeline, nil
}

func (shaderPipeline *shaderPipeline) Attach(program ShaderProgram, stages int) {
	gl.UseProgramStages(shaderPipeline.glId, uint32(stages), program.Id())
	if stages&gl.VERTEX_SHADER_BIT != 0 {
		shaderPipeline.vertStage = program
	}
	if stages&gl.FRAGMENT_SHADER_BIT != 0 {
		shaderPipeline.fragStage = program
	}
}

func (shaderPipeline *shaderPipeline) Get(stage int) ShaderProgram {
	switch stage {
	case gl.VERTEX_SHADER:
		return shaderPipeline.vertStage
	case gl.FRAGMENT_SHADER:
		return shaderPipeline.fragStage
	}
	log.Panicf("%d is not a valid shader stage\n", stage)
	return nil
}

func (shaderPipeline *shaderPipeline) Bind() BoundShaderPipeline {
	State.BindProgramPipeline(shaderPipeline.glId)
	return BoundShaderPipeline(shaderPipeline)
}

func (shaderPipeline *shaderPipeline) Id() uint32 {
	return shaderPipeline.glId
}

func (shaderPipeline *shaderPipeline) SetDebugLabel(label string) {
	setObjectLabel(gl.PROGRAM_PIPELINE, shaderPipeline.glId, label)
}

func (shaderPipeline *shaderPipeline) Delete() {
	if shaderPipeline.vertStage != nil {
		shaderPipeline.vertStage.Destroy()
	}
	if shaderPipeline.fragStage != nil {
		shaderPipeline.fragStage.Destroy()
	}
	gl.DeleteProgramPipelines(1, &shaderPipeline.glId)
	shaderPipeline.glId = 0
}

type shaderCacheManager struct {
	hasher hash.Hash
	// Dir holds program binaries keyed by source and driver. Empty disables the cache.
	Dir    string
	MaxAge time.Duration
}

var ShaderCache = &shaderCacheManager{
	hasher: md5.New(),
	Dir:    ".shadercache",
	MaxAge: 30 * 24 * time.Hour,
}

func (cache *shaderCacheManager) Put(source string, program ShaderProgram) {
	if cache.Dir == "" {
		return
	}
	key := cache.hash(source)
	err := os.MkdirAll(cache.Dir, 0o755)
	if err != nil {
		log.Printf("Could not create shader cache directory: %v\n", err)
		return
	}
	var length int32
	gl.GetProgramiv(program.Id(), gl.PROGRAM_BINARY_LENGTH, &length)
	if length == 0 {
		return
	}
	buf := make([]byte, length)
	var format uint32
	gl.GetProgramBinary(program.Id(), length, &length, &format, Pointer(buf))
	buf = buf[:length]

	file, err := os.OpenFile(filepath.Join(cache.Dir, key+".bin"), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("Could not write shader cache: %v\n", err)
		return
	}
	defer file.Close()
	if err := binary.Write(file, binary.LittleEndian, format); err != nil {
		log.Printf("Could not write shader cache: %v\n", err)
		return
	}
	if _, err := file.Write(buf); err != nil {
		log.Printf("Could not write shader cache: %v\n", err)
	}
}

func (cache *shaderCacheManager) hash(source string) string {
	cache.hasher.Reset()
	cache.hasher.Write([]byte(source))
	if Env != nil {
		cache.hasher.Write([]byte(Env.Vendor))
		cache.hasher.Write([]byte(Env.Renderer))
		cache.hasher.Write([]byte(Env.Version))
	}
	sum := cache.hasher.Sum(nil)
	return fmt.Sprintf("%x", sum)
}

func (cache *shaderCacheManager) Get(source string) (ok bool, buf []byte, format uint32) {
	var (
		err            error
		shaderPath     string
		shaderFile     *os.File
		shaderFileInfo os.FileInfo
	)
	if cache.Dir == "" {
		return
	}
	defer func() {
		if err != nil {
			log.Printf("Could not read shader cache: %v\n", err)
		}
	}()
	key := cache.hash(source)
	shaderPath = filepath.Join(cache.Dir, key+".bin")
	shaderFileInfo, err = os.Stat(shaderPath)
	if errors.Is(err, os.ErrNotExist) {
		err = nil
		return
	}
	if err != nil {
		return
	}
	// Driver updates change the binary format
	if time.Since(shaderFileInfo.ModTime()) > cache.MaxAge {
		os.Remove(shaderPath)
		return
	}
	shaderFile, err = os.Open(shaderPath)
	if err != nil {
		return
	}
	defer shaderFile.Close()
	if err = binary.Read(shaderFile, binary.LittleEndian, &format); err != nil {
		return
	}
	buf, err = io.ReadAll(shaderFile)
	if err != nil || len(buf) == 0 {
		return
	}
	return true, buf, format
}

type glslDef struct {
	marker  string
	name    string
	value   string
	boolean bool
}

type program struct {
	uniformLocations map[string]int32
	definitions      map[string]glslDef
	versionEnd       int
	glId             uint32
	name             string
	sourceTemplate   string
	sourceLive       string
	stage            int
}

type ShaderProgram interface {
	Id() uint32
	Name() string
	Compile() error
	CompileWith(defs map[string]string) error
	Destroy()
	GetUniformLocation(name string) int32
	SetUniform(name string, value any)
	Source() string
}

// NewShader parses //meta: lines and #define directives of source. A commented out
// boolean define starts disabled and can be switched on with CompileWith.
func NewShader(source string, stage int) ShaderProgram {
	name := "untitled"

	metaMatches := shaderMetaPattern.FindAllStringSubmatch(source, -1)
	for _, match := range metaMatches {
		key, value := match[1], strings.TrimSpace(match[2])
		if strings.EqualFold(key, "name") {
			name = value
		}
	}

	defineMatches := shaderDefinePattern.FindAllStringSubmatch(source, -1)
	definitions := make(map[string]glslDef, len(defineMatches))
	defineMarkers := make(map[string]string, len(defineMatches))
	for i, match := range defineMatches {
		value := strings.TrimSpace(match[3])
		marker := fmt.Sprintf("$def_%v$", i)
		boolean := value == ""
		if boolean && match[1] == "//" {
			value = "false"
		}
		definitions[strings.ToLower(match[2])] = glslDef{
			marker:  marker,
			name:    match[2],
			value:   value,
			boolean: boolean,
		}
		defineMarkers[match[0]] = marker
	}
	source = shaderDefinePattern.ReplaceAllStringFunc(source, func(s string) string {
		return defineMarkers[s]
	})

	versionEnd := 0
	if loc := shaderVersionPattern.FindStringIndex(source); loc != nil {
		versionEnd = loc[1]
	}

	return &program{
		definitions:    definitions,
		name:           name,
		stage:          stage,
		sourceTemplate: source,
		versionEnd:     versionEnd,
	}
}

func (prog *program) Name() string {
	return prog.name
}

func (prog *program) Compile() error {
	return prog.CompileWith(nil)
}

func (prog *program) CompileWith(defs map[string]string) error {
	source := prog.sourceTemplate

	for n, v := range defs {
		k := strings.ToLower(n)
		if def, ok := prog.definitions[k]; ok {
			// the override wins; the default below finds no marker left
			source = strings.Replace(source, def.marker, defineLine(def, v), 1)
		} else {
			source = source[:prog.versionEnd] + fmt.Sprintf("\n#define %v %v", n, v) + source[prog.versionEnd:]
		}
	}

	for _, def := range prog.definitions {
		source = strings.Replace(source, def.marker, defineLine(def, def.value), 1)
	}

	cached := false
	var id uint32
	if ok, buf, format := ShaderCache.Get(source); ok {
		id = gl.CreateProgram()
		gl.ProgramParameteri(id, gl.PROGRAM_SEPARABLE, gl.TRUE)
		gl.ProgramBinary(id, format, Pointer(buf), int32(len(buf)))
		cached = true
	}
	var ok int32
	if cached {
		gl.GetProgramiv(id, gl.LINK_STATUS, &ok)
		if ok == gl.FALSE {
			// stale binary, compile from source instead
			gl.DeleteProgram(id)
			cached = false
		}
	}
	if !cached {
		cStrs, free := gl.Strs(source + "\x00")
		id = gl.CreateShaderProgramv(uint32(prog.stage), 1, cStrs)
		free()
	}

	gl.GetProgramiv(id, gl.LINK_STATUS, &ok)
	if ok == gl.FALSE {
		defer gl.DeleteProgram(id)
		return fmt.Errorf("failed to link %v shader, log: %v", prog.name, readProgramInfoLog(id))
	}

	prog.glId = id
	prog.sourceLive = source
	prog.uniformLocations = map[string]int32{}

	if !cached {
		ShaderCache.Put(source, prog)
	}

	return nil
}

func defineLine(def glslDef, value string) string {
	if !def.boolean {
		return fmt.Sprintf("#define %v %v", def.name, value)
	}
	sub := fmt.Sprintf("#define %v", def.name)
	if value == "false" {
		return "// " + sub
	}
	return sub
}

func (prog *program) Source() string {
	return prog.sourceLive
}

func (prog *program) Id() uint32 {
	return prog.glId
}

func (prog *program) Destroy() {
	gl.DeleteProgram(prog.Id())
	prog.glId = 0
}

func readProgramInfoLog(id uint32) string {
	var logLength int32
	gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)

	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(id, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (prog *program) GetUniformLocation(name string) int32 {
	if location, ok := prog.uniformLocations[name]; ok {
		return location
	}

	location := gl.GetUniformLocation(prog.glId, gl.Str(name+"\x00"))
	prog.uniformLocations[name] = location

	if location == -1 {
		log.Printf("%v shader: could not get location of %q\n", prog.name, name)
	}

	return location
}

func (prog *program) SetUniform(name string, value any) {
	location := prog.GetUniformLocation(name)
	if location == -1 {
		return
	}
	setProgramUniformAny(prog.glId, location, value)
}

func setProgramUniformAny(prog uint32, location int32, value any) {
	for refVal := reflect.ValueOf(value); refVal.Kind() == reflect.Ptr; refVal = reflect.ValueOf(value) {
		value = refVal.Elem().Interface()
	}

	switch v := value.(type) {
	case bool:
		var i int32
		if v {
			i = 1
		}
		gl.ProgramUniform1i(prog, location, i)
	case float64:
		gl.ProgramUniform1d(prog, location, v)
	case float32:
		gl.ProgramUniform1f(prog, location, v)
	case int:
		gl.ProgramUniform1i(prog, location, int32(v))
	case int32:
		gl.ProgramUniform1i(prog, location, v)
	case uint32:
		gl.ProgramUniform1ui(prog, location, v)
	case mgl32.Vec2:
		gl.ProgramUniform2f(prog, location, v.X(), v.Y())
	case mgl32.Vec3:
		gl.ProgramUniform3f(prog, location, v.X(), v.Y(), v.Z())
	case mgl32.Vec4:
		gl.ProgramUniform4f(prog, location, v.X(), v.Y(), v.Z(), v.W())
	case mgl32.Mat3:
		gl.ProgramUniformMatrix3fv(prog, location, 1, false, &v[0])
	case mgl32.Mat4:
		gl.ProgramUniformMatrix4fv(prog, location, 1, false, &v[0])
	default:
		reflectType := reflect.TypeOf(value)
		dataType := reflectType.String()
		log.Panicf("Unsupported type %v", dataType)
	}
}
