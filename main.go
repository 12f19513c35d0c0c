package main

import (
	"flag"
	"image"
	"image/color"
	"math"
	"os"
	"time"

	"github.com/bloeys/fourgl/assets"
	"github.com/bloeys/fourgl/buffers"
	"github.com/bloeys/fourgl/config"
	"github.com/bloeys/fourgl/engine"
	"github.com/bloeys/fourgl/input"
	"github.com/bloeys/fourgl/logging"
	"github.com/bloeys/fourgl/materials"
	"github.com/bloeys/fourgl/meshes"
	"github.com/bloeys/fourgl/renderer/rend3dgl"
	"github.com/bloeys/fourgl/scene"
	"github.com/bloeys/gglm/gglm"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	texturedShaderSrc = `//shader:vertex
#version 410

in vec3 vertPos;
in vec2 vertUv;

uniform mat4 modelMat;
uniform int flipV;

out vec2 uv;

void main()
{
	uv = flipV == 1 ? vec2(vertUv.x, 1.0 - vertUv.y) : vertUv;
	gl_Position = modelMat * vec4(vertPos, 1.0);
}

//shader:fragment
#version 410

in vec2 uv;

uniform sampler2D diffTex;
uniform vec4 tint;

out vec4 fragColor;

void main()
{
	fragColor = texture(diffTex, uv) * tint;
}
`

	flatShaderSrc = `//shader:vertex
#version 410

in vec3 vertPos;

uniform mat4 modelMat;

void main()
{
	gl_Position = modelMat * vec4(vertPos, 1.0);
}

//shader:fragment
#version 410

uniform vec4 color;

out vec4 fragColor;

void main()
{
	fragColor = color;
}
`

	waveSegments = 64
)

var (
	configPath   = flag.String("config", "", "Path to a YAML config file")
	snapshotPath = flag.String("snapshot", "", "Render one frame, write the render target to this WebP file and exit")
	verbose      = flag.Bool("verbose", false, "Log GPU resource creation")
)

type Game struct {
	Win  *engine.Window
	Rend *rend3dgl.Rend3DGL
	Cfg  *config.Config

	// Offscreen is drawn into Target, which Onscreen then shows on a plane
	Offscreen *scene.Scene
	Onscreen  *scene.Scene
	Target    *buffers.RenderTarget

	WaveMesh    *meshes.Mesh
	PlaneMat    *materials.Material
	ScreenMat   *materials.Material
	WaveVerts   []float32
	StartTime   time.Time
	TakeSnap    bool
	SnapAndExit bool
}

func main() {

	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {

		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			logging.ErrLog.Fatalln("Failed to load config. Err:", err)
		}
	}

	if *snapshotPath != "" {
		cfg.Assets.Snapshot = *snapshotPath
	}

	logging.Verbose = *verbose || cfg.Renderer.Verbose

	//Init engine
	err := engine.Init()
	if err != nil {
		logging.ErrLog.Fatalln("Failed to init engine. Err:", err)
	}
	defer engine.DeInit()

	//Create window
	flags := engine.WindowFlags_ALLOW_HIGHDPI
	if cfg.Window.Resizable {
		flags |= engine.WindowFlags_RESIZABLE
	}

	window, err := engine.CreateOpenGLWindowCentered(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height, flags)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to create window. Err: ", err)
	}
	defer window.Destroy()

	engine.SetMSAA(cfg.Window.MSAA)
	engine.SetVSync(cfg.Window.VSync)

	rend := rend3dgl.NewRend3DGL(rend3dgl.Options{
		Backend:          window.Backend,
		Surface:          window,
		DisableAutoClear: !cfg.Renderer.AutoClear,
	})
	rend.ClearColor(cfg.Renderer.ClearColor.RGBA())

	game := &Game{
		Win:         window,
		Rend:        rend,
		Cfg:         cfg,
		SnapAndExit: *snapshotPath != "",
	}

	if err := engine.Run(game, window); err != nil {
		os.Exit(1)
	}
}

func (g *Game) Init() {

	g.StartTime = time.Now()
	g.Target = buffers.NewRenderTarget(g.Cfg.Renderer.TargetWidth, g.Cfg.Renderer.TargetHeight)
	g.Offscreen = scene.NewScene()
	g.Onscreen = scene.NewScene()

	tex, err := g.loadTexture()
	if err != nil {
		logging.ErrLog.Fatalln("Failed to load texture. Err:", err)
	}

	texturedSrc := []byte(texturedShaderSrc)
	if g.Cfg.Assets.Shader != "" {
		texturedSrc, err = os.ReadFile(g.Cfg.Assets.Shader)
		if err != nil {
			logging.ErrLog.Fatalln("Failed to read shader. Err:", err)
		}
	}

	// Textured plane, drawn into the render target
	g.PlaneMat = newTexturedMaterial("plane", texturedSrc, tex, true)
	g.Offscreen.Add(meshes.NewMesh("plane", meshes.NewPlaneGeometry(1.2, 1.2), g.PlaneMat))

	// Optional model, drawn as a flat silhouette
	if g.Cfg.Assets.Model != "" {

		modelGeom, err := meshes.NewGeometryFromFile(g.Cfg.Assets.Model, 0)
		if err != nil {
			logging.ErrLog.Fatalln("Failed to load model. Err:", err)
		}

		modelMat := newFlatMaterial("model", gglm.NewVec4(0.9, 0.9, 0.9, 1), false)
		scaleMat := gglm.NewTrMatId()
		scaleMat.Scale(0.5, 0.5, 0.5)
		modelMat.SetUnifMat4("modelMat", &scaleMat.Mat4)
		g.Offscreen.Add(meshes.NewMesh("model", modelGeom, modelMat))
	}

	// Animated wave on top, transparent
	g.WaveVerts = make([]float32, waveSegments*2*3)
	g.updateWave(0)
	waveMat := newFlatMaterial("wave", gglm.NewVec4(1, 0.6, 0.1, 0.8), true)
	g.WaveMesh = meshes.NewLine("wave", meshes.NewLineGeometry(g.WaveVerts), waveMat)
	g.Offscreen.Add(g.WaveMesh)

	// The render target shown on screen. Its rows are already bottom first so no flip
	g.ScreenMat = newTexturedMaterial("screen", texturedSrc, g.Target, false)
	g.Onscreen.Add(meshes.NewMesh("screen", meshes.NewPlaneGeometry(1.8, 1.8), g.ScreenMat))
}

func (g *Game) loadTexture() (*assets.Texture, error) {

	if g.Cfg.Assets.Texture != "" {
		return assets.LoadTexture(g.Cfg.Assets.Texture)
	}

	return assets.NewTextureFromImage(checkerboard(64, 8)), nil
}

func checkerboard(size, cells int) image.Image {

	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	cellSize := size / cells

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {

			if (x/cellSize+y/cellSize)%2 == 0 {
				img.SetNRGBA(x, y, color.NRGBA{R: 230, G: 230, B: 230, A: 255})
			} else {
				img.SetNRGBA(x, y, color.NRGBA{R: 40, G: 90, B: 160, A: 255})
			}
		}
	}

	return img
}

func newTexturedMaterial(name string, shaderSrc []byte, tex materials.TextureSource, flipV bool) *materials.Material {

	mat, err := materials.NewMaterialSrc(name, shaderSrc)
	if err != nil {
		logging.ErrLog.Fatalf("Failed to create material '%s'. Err: %v\n", name, err)
	}

	mat.BindGeometryAttrib("vertPos", meshes.AttribName_Vertices)
	mat.BindGeometryAttrib("vertUv", meshes.AttribName_Uvs)
	mat.SetUnifTexture("diffTex", tex)

	tint := gglm.NewVec4(1, 1, 1, 1)
	mat.SetUnifVec4("tint", &tint)

	identity := gglm.NewTrMatId()
	mat.SetUnifMat4("modelMat", &identity.Mat4)

	if flipV {
		mat.SetUnifInt32("flipV", 1)
	} else {
		mat.SetUnifInt32("flipV", 0)
	}

	return mat
}

func newFlatMaterial(name string, col gglm.Vec4, transparent bool) *materials.Material {

	mat, err := materials.NewMaterialSrc(name, []byte(flatShaderSrc))
	if err != nil {
		logging.ErrLog.Fatalf("Failed to create material '%s'. Err: %v\n", name, err)
	}

	mat.Transparent = transparent
	mat.BindGeometryAttrib("vertPos", meshes.AttribName_Vertices)
	mat.SetUnifVec4("color", &col)

	identity := gglm.NewTrMatId()
	mat.SetUnifMat4("modelMat", &identity.Mat4)

	return mat
}

// updateWave writes a sine wave as a line list, each segment being its own pair of points
func (g *Game) updateWave(t float32) {

	point := func(i int) (x, y float32) {
		x = -0.9 + 1.8*float32(i)/waveSegments
		y = 0.3 * float32(math.Sin(float64(x*6+t*2)))
		return x, y
	}

	for i := 0; i < waveSegments; i++ {

		x0, y0 := point(i)
		x1, y1 := point(i + 1)

		base := i * 6
		g.WaveVerts[base+0], g.WaveVerts[base+1], g.WaveVerts[base+2] = x0, y0, -0.1
		g.WaveVerts[base+3], g.WaveVerts[base+4], g.WaveVerts[base+5] = x1, y1, -0.1
	}
}

func (g *Game) Update() {

	if input.IsQuitClicked() || input.KeyClicked(sdl.K_ESCAPE) {
		engine.Quit()
	}

	if input.KeyClicked(sdl.K_SPACE) {
		g.WaveMesh.Visible = !g.WaveMesh.Visible
	}

	// Halve or double the target resolution
	if input.KeyClicked(sdl.K_MINUS) && g.Target.Width > 32 {
		g.Target.Resize(g.Target.Width/2, g.Target.Height/2)
	}

	if input.KeyClicked(sdl.K_EQUALS) && g.Target.Width < 4096 {
		g.Target.Resize(g.Target.Width*2, g.Target.Height*2)
	}

	if input.KeyClicked(sdl.K_F12) || g.SnapAndExit {
		g.TakeSnap = true
	}

	t := float32(time.Since(g.StartTime).Seconds())

	g.updateWave(t)
	g.WaveMesh.Geometry.Attribute(meshes.AttribName_Vertices).SetVertexData(g.WaveVerts)

	rot := gglm.NewTrMatId()
	rot.Rotate(t*0.5, 0, 0, 1)
	g.PlaneMat.SetUnifMat4("modelMat", &rot.Mat4)

	pulse := 0.75 + 0.25*float32(math.Sin(float64(t)))
	tint := gglm.NewVec4(pulse, pulse, 1, 1)
	g.ScreenMat.SetUnifVec4("tint", &tint)
}

func (g *Game) Render() error {

	if err := g.Rend.Render(g.Offscreen, g.Target); err != nil {
		return err
	}

	if g.TakeSnap {
		g.saveSnapshot()
	}

	return g.Rend.Render(g.Onscreen, nil)
}

func (g *Game) saveSnapshot() {

	g.TakeSnap = false

	img := g.Rend.Snapshot(g.Target)
	if err := assets.SaveWebP(g.Cfg.Assets.Snapshot, img); err != nil {
		logging.ErrLog.Printf("Failed to save snapshot. Err: %v\n", err)
	} else {
		logging.InfoLog.Printf("Saved snapshot to %s\n", g.Cfg.Assets.Snapshot)
	}

	if g.SnapAndExit {
		engine.Quit()
	}
}

func (g *Game) FrameEnd() {
}

func (g *Game) DeInit() {
	g.Rend.Delete()
}
