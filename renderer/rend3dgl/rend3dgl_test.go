package rend3dgl

import (
	"errors"
	"strings"
	"testing"

	"github.com/bloeys/fourgl/buffers"
	"github.com/bloeys/fourgl/gpu"
	"github.com/bloeys/fourgl/meshes"
	"github.com/bloeys/fourgl/scene"
	"github.com/bloeys/fourgl/shaders"
)

func TestRenderSkipsInvisibleMeshes(t *testing.T) {

	r, rec, _ := newTestRenderer()
	mat := newTestMaterial("vis")

	a := meshes.NewMesh("a", newIndexedGeometry(3), mat)
	b := meshes.NewMesh("b", newIndexedGeometry(6), mat)
	c := meshes.NewMesh("c", newIndexedGeometry(9), mat)
	b.Visible = false

	scn := scene.NewScene()
	scn.Add(a, b, c)

	if err := r.Render(scn, nil); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	checkCalls(t, rec.Filter("DrawElements", "DrawArrays"),
		call("DrawElements", gpu.PrimitiveMode_Triangles, int32(3), 0),
		call("DrawElements", gpu.PrimitiveMode_Triangles, int32(9), 0),
	)

	// b was never even prepared
	if _, ok := r.Cache.Buffer(b.Geometry.Attribute(meshes.AttribName_Faces)); ok {
		t.Error("invisible mesh had its geometry uploaded")
	}
}

func TestRenderBlendingPerObject(t *testing.T) {

	opaqueMat := newTestMaterial("opaque")
	transparentMat := newTestMaterial("transparent")
	transparentMat.Transparent = true

	tests := []struct {
		name  string
		order []*meshes.Mesh
		want  []string
	}{
		{
			name: "opaque first",
			order: []*meshes.Mesh{
				meshes.NewMesh("opaque", newIndexedGeometry(3), opaqueMat),
				meshes.NewMesh("transparent", newIndexedGeometry(6), transparentMat),
			},
			want: []string{"Disable", "DrawElements", "Enable", "BlendFunc", "DrawElements"},
		},
		{
			name: "transparent first",
			order: []*meshes.Mesh{
				meshes.NewMesh("transparent", newIndexedGeometry(6), transparentMat),
				meshes.NewMesh("opaque", newIndexedGeometry(3), opaqueMat),
			},
			want: []string{"Enable", "BlendFunc", "DrawElements", "Disable", "DrawElements"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {

			r, rec, _ := newTestRenderer()
			scn := scene.NewScene()
			scn.Add(tt.order...)

			if err := r.Render(scn, nil); err != nil {
				t.Fatalf("Render() error = %v", err)
			}

			got := rec.Filter("Enable", "Disable", "BlendFunc", "DrawElements")
			if len(got) != len(tt.want) {
				t.Fatalf("got calls %v, want %v", got, tt.want)
			}

			for i := 0; i < len(got); i++ {

				if got[i].Name != tt.want[i] {
					t.Errorf("call %d = %s, want %s", i, got[i].Name, tt.want[i])
					continue
				}

				switch got[i].Name {
				case "Enable", "Disable":
					if got[i].Args[0] != gpu.Capability_Blend {
						t.Errorf("call %d capability = %v, want %v", i, got[i].Args[0], gpu.Capability_Blend)
					}
				case "BlendFunc":
					if got[i].Args[0] != gpu.BlendFactor_SrcAlpha || got[i].Args[1] != gpu.BlendFactor_OneMinusSrcAlpha {
						t.Errorf("BlendFunc args = %v, want (SrcAlpha, OneMinusSrcAlpha)", got[i].Args)
					}
				}
			}
		})
	}
}

func TestRenderTargetResizeReallocatesOnce(t *testing.T) {

	r, rec, _ := newTestRenderer()
	scn := scene.NewScene()
	scn.Add(meshes.NewMesh("plane", meshes.NewPlaneGeometry(1, 1), newTestMaterial("rt")))

	rt := buffers.NewRenderTarget(64, 32)
	if err := r.Render(scn, rt); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	fbo, tex, _ := r.Cache.RenderTarget(rt)

	rt.Resize(128, 64)
	if !rt.IsDirty() {
		t.Fatal("Resize did not mark the render target dirty")
	}

	rec.Reset()
	if err := r.Render(scn, rt); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	checkCalls(t, rec.Filter("TexImage2D"), call("TexImage2D", int32(128), int32(64), 0))

	if got := rec.Count("CreateFramebuffer") + rec.Count("CreateTexture"); got != 0 {
		t.Errorf("render target objects were recreated %d times", got)
	}

	if rt.IsDirty() {
		t.Error("render target still dirty after render")
	}

	fbo2, tex2, _ := r.Cache.RenderTarget(rt)
	if fbo2 != fbo || tex2 != tex {
		t.Errorf("render target handles changed from (%d, %d) to (%d, %d)", fbo, tex, fbo2, tex2)
	}

	// Same size does nothing
	rt.Resize(128, 64)
	rec.Reset()
	if err := r.Render(scn, rt); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if got := rec.Count("TexImage2D"); got != 0 {
		t.Errorf("TexImage2D count after same-size resize = %d, want 0", got)
	}
}

func TestRenderViewport(t *testing.T) {

	r, rec, surf := newTestRenderer()
	scn := scene.NewScene()
	rt := buffers.NewRenderTarget(64, 32)

	// Sizes match, nothing to do
	if err := r.Render(scn, nil); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if got := rec.Count("Viewport"); got != 0 {
		t.Errorf("Viewport count = %d, want 0", got)
	}

	rec.Reset()
	if err := r.Render(scn, rt); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	fbo, _, _ := r.Cache.RenderTarget(rt)
	checkCalls(t, rec.Filter("Viewport"), call("Viewport", int32(0), int32(0), int32(64), int32(32)))

	if r.Cache.BoundFramebuffer() != fbo {
		t.Errorf("bound framebuffer = %d, want %d", r.Cache.BoundFramebuffer(), fbo)
	}

	// Back on screen the surface viewport is restored
	rec.Reset()
	if err := r.Render(scn, nil); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	checkCalls(t, rec.Filter("BindFramebuffer", "Viewport"),
		call("BindFramebuffer", gpu.Framebuffer(0)),
		call("Viewport", int32(0), int32(0), int32(800), int32(600)),
	)

	// And a surface resize is picked up
	surf.Width, surf.Height = 1024, 768
	rec.Reset()
	if err := r.Render(scn, nil); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	checkCalls(t, rec.Filter("Viewport"), call("Viewport", int32(0), int32(0), int32(1024), int32(768)))

	if surf.BufWidth != 1024 || surf.BufHeight != 768 {
		t.Errorf("surface buffer size = (%d, %d), want (1024, 768)", surf.BufWidth, surf.BufHeight)
	}
}

func TestRenderTargetPicksUpSurfaceResize(t *testing.T) {

	r, rec, surf := newTestRenderer()
	scn := scene.NewScene()
	rt := buffers.NewRenderTarget(64, 32)

	surf.Width, surf.Height = 1024, 768
	if err := r.Render(scn, rt); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	checkCalls(t, rec.Filter("Viewport"),
		call("Viewport", int32(0), int32(0), int32(1024), int32(768)),
		call("Viewport", int32(0), int32(0), int32(64), int32(32)),
	)

	if surf.BufWidth != 1024 || surf.BufHeight != 768 {
		t.Errorf("surface buffer size = (%d, %d), want (1024, 768)", surf.BufWidth, surf.BufHeight)
	}

	// Rendering into the target again leaves the surface viewport alone
	rec.Reset()
	if err := r.Render(scn, rt); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	checkCalls(t, rec.Filter("Viewport"), call("Viewport", int32(0), int32(0), int32(64), int32(32)))
}

func TestResizeForce(t *testing.T) {

	r, rec, surf := newTestRenderer()

	r.Resize(false)
	if surf.SetCalls != 0 || rec.Count("Viewport") != 0 {
		t.Errorf("Resize(false) with matching sizes made %d SetBufferSize and %d Viewport calls", surf.SetCalls, rec.Count("Viewport"))
	}

	r.Resize(true)
	if surf.SetCalls != 1 || rec.Count("Viewport") != 1 {
		t.Errorf("Resize(true) made %d SetBufferSize and %d Viewport calls, want 1 and 1", surf.SetCalls, rec.Count("Viewport"))
	}
}

func TestRenderAutoClear(t *testing.T) {

	r, rec, _ := newTestRenderer()
	scn := scene.NewScene()

	if err := r.Render(scn, nil); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	checkCalls(t, rec.Filter("ClearColor", "Clear"),
		call("ClearColor", float32(0), float32(0), float32(0), float32(1)),
		call("Clear", gpu.ClearMask_All),
	)

	r.ClearColor(0.2, 0.4, 0.6, 0.5)
	rec.Reset()
	for i := 0; i < 2; i++ {
		if err := r.Render(scn, nil); err != nil {
			t.Fatalf("Render() error = %v", err)
		}
	}

	checkCalls(t, rec.Filter("ClearColor"),
		call("ClearColor", float32(0.2), float32(0.4), float32(0.6), float32(0.5)),
		call("ClearColor", float32(0.2), float32(0.4), float32(0.6), float32(0.5)),
	)

	r.AutoClear = false
	rec.Reset()
	if err := r.Render(scn, nil); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if got := rec.Count("Clear"); got != 0 {
		t.Errorf("Clear count with AutoClear off = %d, want 0", got)
	}

	manual := NewRend3DGL(Options{Backend: rec, DisableAutoClear: true})
	if manual.AutoClear {
		t.Error("DisableAutoClear did not turn off AutoClear")
	}
}

func TestRenderAbortsOnShaderError(t *testing.T) {

	r, rec, _ := newTestRenderer()
	rec.CompileErrors[gpu.ShaderStage_Fragment] = "syntax error"

	scn := scene.NewScene()
	scn.Add(
		meshes.NewMesh("broken", newIndexedGeometry(3), newTestMaterial("broken")),
		meshes.NewMesh("after", newIndexedGeometry(6), newTestMaterial("after")),
	)

	err := r.Render(scn, nil)
	if err == nil {
		t.Fatal("Render() succeeded with a broken shader")
	}

	var compileErr *shaders.ShaderCompileError
	if !errors.As(err, &compileErr) {
		t.Errorf("Render() error %v is not a *ShaderCompileError", err)
	}

	if !strings.Contains(err.Error(), "'broken'") {
		t.Errorf("Render() error %q does not name the mesh", err)
	}

	if got := rec.Count("DrawElements"); got != 0 {
		t.Errorf("DrawElements count = %d, want 0", got)
	}
}

func TestRenderLine(t *testing.T) {

	r, rec, _ := newTestRenderer()
	geom := meshes.NewLineGeometry([]float32{0, 0, 0, 1, 1, 0, 2, 0, 0})

	scn := scene.NewScene()
	scn.Add(meshes.NewLine("line", geom, newTestMaterial("line")))

	if err := r.Render(scn, nil); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	checkCalls(t, rec.Filter("DrawElements", "DrawArrays"), call("DrawArrays", gpu.PrimitiveMode_Lines, int32(0), int32(3)))
}

func TestRenderLineUsesGeometryDrawCount(t *testing.T) {

	r, rec, _ := newTestRenderer()
	geom := meshes.NewLineGeometry([]float32{0, 0, 0, 1, 1, 0, 2, 0, 0, 3, 1, 0})
	geom.SetAttribute(meshes.AttribName_Faces, buffers.NewIndexAttribute(1, []uint16{0, 1}))

	scn := scene.NewScene()
	scn.Add(meshes.NewLine("line", geom, newTestMaterial("line")))

	if err := r.Render(scn, nil); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	checkCalls(t, rec.Filter("DrawElements", "DrawArrays"), call("DrawArrays", gpu.PrimitiveMode_Lines, int32(0), int32(2)))
}

func TestRenderMeshWithoutIndices(t *testing.T) {

	r, rec, _ := newTestRenderer()
	geom := meshes.NewGeometry()
	geom.SetAttribute(meshes.AttribName_Vertices, buffers.NewVertexAttribute(3, make([]float32, 9)))

	scn := scene.NewScene()
	scn.Add(meshes.NewMesh("tri", geom, newTestMaterial("tri")))

	if err := r.Render(scn, nil); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	checkCalls(t, rec.Filter("DrawElements", "DrawArrays"), call("DrawArrays", gpu.PrimitiveMode_Triangles, int32(0), int32(3)))
}

func TestRenderBindsIndexBufferBeforeDraw(t *testing.T) {

	r, rec, _ := newTestRenderer()
	geom := newIndexedGeometry(6)

	scn := scene.NewScene()
	scn.Add(meshes.NewMesh("quad", geom, newTestMaterial("quad")))

	for i := 0; i < 2; i++ {
		if err := r.Render(scn, nil); err != nil {
			t.Fatalf("Render() error = %v", err)
		}
	}

	faceBuf, _ := r.Cache.Buffer(geom.Attribute(meshes.AttribName_Faces))

	calls := rec.Filter("BindBuffer", "DrawElements")
	last := calls[len(calls)-1]
	if last.Name != "DrawElements" {
		t.Fatalf("last call = %v, want DrawElements", last)
	}

	// Find the buffer bound right before each draw
	var bound any
	for i := 0; i < len(calls); i++ {

		if calls[i].Name == "BindBuffer" {
			bound = calls[i].Args[1]
			continue
		}

		if bound != faceBuf {
			t.Errorf("buffer bound at draw = %v, want %v", bound, faceBuf)
		}
	}
}

func TestSnapshot(t *testing.T) {

	r, rec, _ := newTestRenderer()
	rt := buffers.NewRenderTarget(4, 2)

	if err := r.Render(scene.NewScene(), rt); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	img := r.Snapshot(rt)
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 2 {
		t.Fatalf("snapshot size = %v, want 4x2", img.Bounds())
	}

	if c := img.NRGBAAt(3, 1); c.R != 255 || c.A != 255 {
		t.Errorf("snapshot pixel = %v, want opaque white", c)
	}

	checkCalls(t, rec.Filter("ReadPixels"), call("ReadPixels", int32(0), int32(0), int32(4), int32(2)))

	// Reading the surface while the target is bound restores the target binding
	fbo, _, _ := r.Cache.RenderTarget(rt)
	rec.Reset()
	surfImg := r.Snapshot(nil)
	if surfImg.Bounds().Dx() != 800 || surfImg.Bounds().Dy() != 600 {
		t.Errorf("surface snapshot size = %v, want 800x600", surfImg.Bounds())
	}

	checkCalls(t, rec.Filter("BindFramebuffer"),
		call("BindFramebuffer", gpu.Framebuffer(0)),
		call("BindFramebuffer", fbo),
	)
}
