package renderer

import (
	_ "embed"
	"errors"
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/voronoi/field"
	"github.com/pthm-cable/voronoi/points"
)

//go:embed shaders/voronoi.fs
var voronoiFS string

// GPUField evaluates the Voronoi field in a fragment shader. Seeds and
// colors are uploaded as uniform arrays every frame.
type GPUField struct {
	shader        rl.Shader
	resolutionLoc int32
	countLoc      int32
	pLoc          int32
	farthestLoc   int32
	backgroundLoc int32
	seedsLoc      int32
	colorsLoc     int32

	maxSeeds int
	seedBuf  []float32 // x, y per seed
	colorBuf []float32 // r, g, b per seed

	initialized bool
}

// NewGPUField creates a field renderer that handles up to maxSeeds seeds.
// Init must be called after the raylib window exists.
func NewGPUField(maxSeeds int) *GPUField {
	return &GPUField{maxSeeds: max(maxSeeds, 1)}
}

// MaxSeeds returns the largest seed count the shader accepts.
func (g *GPUField) MaxSeeds() int {
	return g.maxSeeds
}

// Init compiles the shader and looks up uniform locations.
func (g *GPUField) Init() error {
	if g.initialized {
		return nil
	}

	g.shader = rl.LoadShaderFromMemory("", shaderSource(g.maxSeeds))
	if !rl.IsShaderValid(g.shader) {
		return &ResourceError{Resource: "voronoi shader", Err: errors.New("compile or link failed")}
	}

	g.resolutionLoc = rl.GetShaderLocation(g.shader, "resolution")
	g.countLoc = rl.GetShaderLocation(g.shader, "count")
	g.pLoc = rl.GetShaderLocation(g.shader, "p")
	g.farthestLoc = rl.GetShaderLocation(g.shader, "farthest")
	g.backgroundLoc = rl.GetShaderLocation(g.shader, "background")
	g.seedsLoc = rl.GetShaderLocation(g.shader, "seeds")
	g.colorsLoc = rl.GetShaderLocation(g.shader, "colors")

	bg := field.Background
	rl.SetShaderValue(g.shader, g.backgroundLoc,
		[]float32{float32(bg.R) / 255, float32(bg.G) / 255, float32(bg.B) / 255},
		rl.ShaderUniformVec3)

	g.seedBuf = make([]float32, 0, 2*g.maxSeeds)
	g.colorBuf = make([]float32, 0, 3*g.maxSeeds)
	g.initialized = true
	return nil
}

// Accepts reports whether n seeds fit in the shader's uniform arrays.
func (g *GPUField) Accepts(n int) bool {
	return n <= g.maxSeeds
}

// Draw renders the field for pts over a width x height area at the origin.
func (g *GPUField) Draw(pts []points.Point, s field.Settings, width, height int) {
	if !g.initialized {
		return
	}
	if len(pts) > g.maxSeeds {
		pts = pts[:g.maxSeeds]
	}

	g.seedBuf, g.colorBuf = packSeeds(g.seedBuf[:0], g.colorBuf[:0], pts)

	rl.SetShaderValue(g.shader, g.resolutionLoc, []float32{float32(width), float32(height)}, rl.ShaderUniformVec2)
	rl.SetShaderValue(g.shader, g.countLoc, []float32{float32(len(pts))}, rl.ShaderUniformFloat)
	rl.SetShaderValue(g.shader, g.pLoc, []float32{float32(s.P())}, rl.ShaderUniformFloat)

	farthest := float32(0)
	if s.Mode == field.Farthest {
		farthest = 1
	}
	rl.SetShaderValue(g.shader, g.farthestLoc, []float32{farthest}, rl.ShaderUniformFloat)

	if len(pts) > 0 {
		rl.SetShaderValueV(g.shader, g.seedsLoc, g.seedBuf, rl.ShaderUniformVec2, int32(len(pts)))
		rl.SetShaderValueV(g.shader, g.colorsLoc, g.colorBuf, rl.ShaderUniformVec3, int32(len(pts)))
	}

	// Fullscreen quad with shader
	rl.BeginShaderMode(g.shader)
	rl.DrawRectangle(0, 0, int32(width), int32(height), rl.White)
	rl.EndShaderMode()
}

// Unload frees GPU resources.
func (g *GPUField) Unload() {
	if !g.initialized {
		return
	}
	rl.UnloadShader(g.shader)
	g.initialized = false
}

func shaderSource(maxSeeds int) string {
	return strings.ReplaceAll(voronoiFS, "MAX_SEEDS", strconv.Itoa(maxSeeds))
}

// packSeeds flattens positions and 8-bit-quantized colors so the shader
// paints exactly what the CPU raster would.
func packSeeds(seedBuf, colorBuf []float32, pts []points.Point) ([]float32, []float32) {
	for _, p := range pts {
		seedBuf = append(seedBuf, float32(p.Pos.X()), float32(p.Pos.Y()))
		r, g, b := p.Color.RGB255()
		colorBuf = append(colorBuf, float32(r)/255, float32(g)/255, float32(b)/255)
	}
	return seedBuf, colorBuf
}
