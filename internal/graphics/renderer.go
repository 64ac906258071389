package graphics

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"scene-walker/internal/assets"
	"scene-walker/internal/logger"
	"scene-walker/internal/shader"
	"scene-walker/internal/world"
)

const (
	sphereRings  = 32
	sphereSlices = 32
)

// fallbackBlockColor tints blocks when the pattern program fails to compile.
var fallbackBlockColor = rl.NewColor(150, 150, 160, 255)

// program is a compiled shader with the uniform locations the renderer sets.
type program struct {
	name    string
	shader  rl.Shader
	uniform map[string]int32
}

func (p *program) loc(name string) int32 {
	if l, ok := p.uniform[name]; ok {
		return l
	}
	l := rl.GetShaderLocation(p.shader, name)
	p.uniform[name] = l
	return l
}

func (p *program) setFloat(name string, v float32) {
	if l := p.loc(name); l >= 0 {
		rl.SetShaderValue(p.shader, l, []float32{v}, rl.ShaderUniformFloat)
	}
}

func (p *program) setVec2(name string, v [2]float32) {
	if l := p.loc(name); l >= 0 {
		rl.SetShaderValue(p.shader, l, v[:], rl.ShaderUniformVec2)
	}
}

func (p *program) setVec3(name string, v [3]float32) {
	if l := p.loc(name); l >= 0 {
		rl.SetShaderValueV(p.shader, l, v[:], rl.ShaderUniformVec3, 1)
	}
}

// Renderer draws a world.Scene. GPU resources are created on the first Draw so they are
// allocated after the window and GL context exist.
type Renderer struct {
	scene    *world.Scene
	lib      *shader.Library
	uniforms *shader.Uniforms
	log      *logger.Logger

	patternName string
	fogNear     float32
	fogFar      float32

	ready   bool
	cube    rl.Mesh
	plane   rl.Mesh
	sphere  rl.Mesh
	pattern *program // nil when the pattern failed and blocks fall back to lit
	lit     *program
	sky     *program

	patternMtl rl.Material
	litMtl     rl.Material
	skyMtl     rl.Material

	skyTex    rl.Texture2D
	skyLoaded bool
	model     rl.Model
	hasModel  bool
}

// NewRenderer prepares a renderer for s using the named pattern program.
func NewRenderer(s *world.Scene, lib *shader.Library, u *shader.Uniforms, patternName string, log *logger.Logger) *Renderer {
	if log == nil {
		log = logger.Nop()
	}
	return &Renderer{
		scene:       s,
		lib:         lib,
		uniforms:    u,
		log:         log,
		patternName: patternName,
		fogNear:     s.Env.Fog.Near,
		fogFar:      s.Env.Fog.Far,
	}
}

func (r *Renderer) compile(name string) (*program, error) {
	src, err := r.lib.Program(name)
	if err != nil {
		return nil, err
	}
	sh := rl.LoadShaderFromMemory(src.Vertex, src.Fragment)
	if !rl.IsShaderValid(sh) {
		return nil, fmt.Errorf("graphics: shader %s failed to compile", name)
	}
	return &program{name: name, shader: sh, uniform: make(map[string]int32)}, nil
}

// ensure creates meshes, materials and programs once.
func (r *Renderer) ensure() {
	if r.ready {
		return
	}
	r.ready = true
	r.cube = rl.GenMeshCube(1, 1, 1)
	r.plane = rl.GenMeshPlane(1, 1, 1, 1)
	r.sphere = rl.GenMeshSphere(1, sphereRings, sphereSlices)

	lit, err := r.compile(shader.Lit)
	if err != nil {
		// the built-in lit source is known good; only a broken override gets here
		r.log.Error("lit shader unavailable, using raylib default", zap.Error(err))
		// an empty name marks a borrowed shader that Close must not unload
		lit = &program{shader: rl.LoadMaterialDefault().Shader, uniform: make(map[string]int32)}
	}
	r.lit = lit
	r.litMtl = rl.LoadMaterialDefault()
	r.litMtl.Shader = lit.shader

	r.patternMtl = rl.LoadMaterialDefault()
	r.setPattern()

	if sky, err := r.compile(shader.Sky); err != nil {
		r.log.Error("sky shader unavailable", zap.Error(err))
	} else {
		r.sky = sky
		r.skyMtl = rl.LoadMaterialDefault()
		r.skyMtl.Shader = sky.shader
	}
}

// setPattern compiles the pattern program into the block material. Blocks use the lit
// material when the pattern is "lit" or never built; a failed rebuild keeps the last good one.
func (r *Renderer) setPattern() {
	if r.patternName == shader.Lit {
		return
	}
	p, err := r.compile(r.patternName)
	if err != nil {
		r.log.Error("pattern shader failed", zap.String("program", r.patternName),
			zap.Bool("fallback_lit", r.pattern == nil), zap.Error(err))
		return
	}
	if r.pattern != nil {
		rl.UnloadShader(r.pattern.shader)
	}
	r.pattern = p
	r.patternMtl.Shader = p.shader
	r.uniforms.MarkDirty()
}

// Reload recompiles name after its source changed on disk.
func (r *Renderer) Reload(name string) {
	if !r.ready {
		return
	}
	switch name {
	case shader.Lit:
		p, err := r.compile(shader.Lit)
		if err != nil {
			r.log.Error("lit shader reload failed", zap.Error(err))
			return
		}
		if r.lit.name != "" {
			rl.UnloadShader(r.lit.shader)
		}
		r.lit = p
		r.litMtl.Shader = p.shader
		if r.hasModel {
			mats := r.model.GetMaterials()
			for i := range mats {
				mats[i].Shader = p.shader
			}
		}
	case r.patternName:
		r.setPattern()
	default:
		return
	}
	r.log.Info("shader reloaded", zap.String("program", name))
}

// PushUniforms sends the time uniform every frame and the resolution when it changed.
func (r *Renderer) PushUniforms() {
	if r.pattern == nil {
		return
	}
	r.pattern.setFloat(shader.UniformTime, r.uniforms.Time)
	if res, changed := r.uniforms.TakeResolution(); changed {
		r.pattern.setVec2(shader.UniformResolution, [2]float32{res[0], res[1]})
	}
}

// SetFog changes the fog range.
func (r *Renderer) SetFog(near, far float32) error {
	if near < 0 || far <= near {
		return errors.New("fog far must be greater than near, near >= 0")
	}
	r.fogNear, r.fogFar = near, far
	return nil
}

// Fog returns the fog range.
func (r *Renderer) Fog() (float32, float32) {
	return r.fogNear, r.fogFar
}

// SetSky uploads a decoded panorama. Must run on the render goroutine.
func (r *Renderer) SetSky(img *assets.Image) error {
	r.ensure()
	if r.sky == nil {
		return errors.New("graphics: no sky shader")
	}
	if !img.Equirect {
		r.log.Warn("sky texture is not 2:1, it will look stretched", zap.String("path", img.Path))
	}
	rlImg := rl.NewImageFromImage(img.RGBA)
	tex := rl.LoadTextureFromImage(rlImg)
	rl.UnloadImage(rlImg)
	if !rl.IsTextureValid(tex) {
		return fmt.Errorf("graphics: upload %s failed", img.Path)
	}
	if r.skyLoaded {
		rl.UnloadTexture(r.skyTex)
	}
	r.skyTex = tex
	r.skyLoaded = true
	return nil
}

// SetModel loads a model file and gives its materials the lit program. Must run on the
// render goroutine.
func (r *Renderer) SetModel(path string) error {
	r.ensure()
	m := rl.LoadModel(path)
	if !rl.IsModelValid(m) {
		return fmt.Errorf("graphics: load model %s failed", path)
	}
	mats := m.GetMaterials()
	for i := range mats {
		mats[i].Shader = r.lit.shader
	}
	if r.hasModel {
		rl.UnloadModel(r.model)
	}
	r.model = m
	r.hasModel = true
	return nil
}

// Draw renders the scene. Must be called between BeginMode3D and EndMode3D.
func (r *Renderer) Draw(cam rl.Camera3D) {
	r.ensure()
	r.setLitUniforms(cam)
	if r.skyLoaded {
		r.drawSky(cam)
	}

	env := r.scene.Env
	r.setLighting(0)
	setAlbedo(&r.litMtl, Color(env.Floor.Color))
	r.scene.Store.Each(func(o world.Object) bool {
		switch o.Kind {
		case world.Ground:
			r.drawBox(r.plane, r.litMtl, o.Transform, 1)
		default:
			r.drawBlock(o.Transform)
		}
		return true
	})

	if r.hasModel && env.Model != nil {
		r.setLighting(1)
		p := env.Model.Position
		rl.DrawModel(r.model, rl.NewVector3(p[0], p[1], p[2]), env.Model.Scale, rl.White)
	}
}

// setLighting toggles the lit program's lighting term; 0 draws flat colour with fog only.
func (r *Renderer) setLighting(on float32) {
	r.lit.setFloat(shader.UniformLighting, on)
}

func (r *Renderer) drawBlock(t world.Transform) {
	if r.pattern != nil {
		r.drawBox(r.cube, r.patternMtl, t, 0)
		return
	}
	r.setLighting(1)
	setAlbedo(&r.litMtl, fallbackBlockColor)
	r.drawBox(r.cube, r.litMtl, t, 0)
	r.setLighting(0)
	setAlbedo(&r.litMtl, Color(r.scene.Env.Floor.Color))
}

// drawBox draws a unit mesh scaled to t. flatY replaces a zero Y size (planes).
func (r *Renderer) drawBox(mesh rl.Mesh, mtl rl.Material, t world.Transform, flatY float32) {
	sy := t.Size[1]
	if sy == 0 {
		sy = flatY
	}
	scale := rl.MatrixScale(t.Size[0], sy, t.Size[2])
	trans := rl.MatrixTranslate(t.Center[0], t.Center[1], t.Center[2])
	rl.DrawMesh(mesh, mtl, rl.MatrixMultiply(scale, trans))
}

func (r *Renderer) setLitUniforms(cam rl.Camera3D) {
	env := r.scene.Env
	p := r.lit
	p.setVec3(shader.UniformViewPos, [3]float32{cam.Position.X, cam.Position.Y, cam.Position.Z})
	p.setVec3(shader.UniformAmbient, env.Lights.Ambient.Floats())
	p.setVec3(shader.UniformSkyColor, env.Lights.Sky.Floats())
	p.setVec3(shader.UniformGround, env.Lights.Ground.Floats())
	p.setVec3(shader.UniformLightDir, env.Lights.Direction)
	p.setFloat(shader.UniformIntensity, env.Lights.Intensity)
	p.setVec3(shader.UniformFogColor, env.Fog.Color.Floats())
	p.setFloat(shader.UniformFogNear, r.fogNear)
	p.setFloat(shader.UniformFogFar, r.fogFar)
}

// drawSky draws the panorama on a sphere centred on the camera, behind everything else.
func (r *Renderer) drawSky(cam rl.Camera3D) {
	radius := float32(500)
	if r.scene.Env.Sky != nil && r.scene.Env.Sky.Radius > 0 {
		radius = r.scene.Env.Sky.Radius
	}
	pos := cam.Position
	r.sky.setVec3(shader.UniformCameraPos, [3]float32{pos.X, pos.Y, pos.Z})
	if l := r.sky.loc(shader.UniformSkyTexture); l >= 0 {
		rl.SetShaderValueTexture(r.sky.shader, l, r.skyTex)
	}
	rl.DisableDepthMask()
	rl.DisableBackfaceCulling()
	scale := rl.MatrixScale(radius, radius, radius)
	trans := rl.MatrixTranslate(pos.X, pos.Y, pos.Z)
	rl.DrawMesh(r.sphere, r.skyMtl, rl.MatrixMultiply(scale, trans))
	rl.EnableBackfaceCulling()
	rl.EnableDepthMask()
}

func setAlbedo(mtl *rl.Material, c rl.Color) {
	if albedo := mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = c
	}
}

// Close releases GPU resources.
func (r *Renderer) Close() {
	if !r.ready {
		return
	}
	rl.UnloadMesh(&r.cube)
	rl.UnloadMesh(&r.plane)
	rl.UnloadMesh(&r.sphere)
	if r.skyLoaded {
		rl.UnloadTexture(r.skyTex)
	}
	if r.hasModel {
		rl.UnloadModel(r.model)
	}
	for _, p := range []*program{r.pattern, r.lit, r.sky} {
		if p != nil && p.name != "" {
			rl.UnloadShader(p.shader)
		}
	}
}
