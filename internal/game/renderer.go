package game

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// meshBuffer is one uploaded vertex list.
type meshBuffer struct {
	vao, vbo uint32
	count    int32
	mode     uint32
}

func uploadMesh(verts []float32, mode uint32) meshBuffer {
	b := meshBuffer{mode: mode, count: int32(len(verts) / vertexFloats)}
	if b.count == 0 {
		return b
	}
	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)

	stride := int32(vertexFloats * 4)
	gl.EnableVertexAttribArray(0) // aPos
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1) // aColor
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, glOffset(3*4))
	gl.EnableVertexAttribArray(2) // aPaint
	gl.VertexAttribPointer(2, 1, gl.FLOAT, false, stride, glOffset(6*4))
	gl.BindVertexArray(0)
	return b
}

func (b *meshBuffer) draw() {
	if b.count == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(b.mode, 0, b.count)
}

func (b *meshBuffer) release() {
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
	}
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
	}
	*b = meshBuffer{}
}

type Renderer struct {
	sceneProg uint32
	uMVP      int32
	uPaint    int32
	uSky      int32
	uFogFar   int32

	worldTris  meshBuffer
	worldLines meshBuffer
	car        meshBuffer

	// Particle program.
	spriteProg   uint32
	spriteVAO    uint32
	spriteVBO    uint32
	spUMVP       int32
	spUViewportH int32
	spriteBuf    []float32

	// Text program.
	textProg     uint32
	textVAO      uint32
	textVBO      uint32
	textURes     int32
	textUFontTex int32
	textBuf      []float32
	fontTex      uint32
}

func NewRenderer() (*Renderer, error) {
	sceneProg, err := linkProgram(sceneVertSrc, sceneFragSrc)
	if err != nil {
		return nil, fmt.Errorf("scene program: %w", err)
	}
	r := &Renderer{sceneProg: sceneProg}

	gl.UseProgram(sceneProg)
	r.uMVP = gl.GetUniformLocation(sceneProg, gl.Str("uMVP\x00"))
	r.uPaint = gl.GetUniformLocation(sceneProg, gl.Str("uPaint\x00"))
	r.uSky = gl.GetUniformLocation(sceneProg, gl.Str("uSky\x00"))
	r.uFogFar = gl.GetUniformLocation(sceneProg, gl.Str("uFogFar\x00"))
	sr, sg, sb := Palette.Sky.Float()
	gl.Uniform3f(r.uSky, sr, sg, sb)
	gl.Uniform1f(r.uFogFar, GroundHalfSize)
	gl.Uniform3f(r.uPaint, 1, 1, 1)

	if err := r.initSprites(); err != nil {
		gl.DeleteProgram(sceneProg)
		return nil, err
	}

	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.LineWidth(2)
	return r, nil
}

// UploadWorld replaces the static track and landscape geometry.
func (r *Renderer) UploadWorld(m Mesh) {
	r.worldTris.release()
	r.worldLines.release()
	r.worldTris = uploadMesh(m.Tris, gl.TRIANGLES)
	r.worldLines = uploadMesh(m.Lines, gl.LINES)
}

// UploadCar sets the mesh shared by every car.
func (r *Renderer) UploadCar(m Mesh) {
	r.car.release()
	r.car = uploadMesh(m.Tris, gl.TRIANGLES)
}

func (r *Renderer) Destroy() {
	r.worldTris.release()
	r.worldLines.release()
	r.car.release()
	for _, id := range []uint32{r.spriteVBO, r.textVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{r.spriteVAO, r.textVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{r.sceneProg, r.spriteProg, r.textProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
	if r.fontTex != 0 {
		gl.DeleteTextures(1, &r.fontTex)
	}
}

func (r *Renderer) BeginFrame(fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	sr, sg, sb := Palette.Sky.Float()
	gl.ClearColor(sr, sg, sb, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.UseProgram(r.sceneProg)
}

// DrawWorld draws the static geometry with the given view-projection.
func (r *Renderer) DrawWorld(viewProj mgl32.Mat4) {
	gl.UseProgram(r.sceneProg)
	gl.UniformMatrix4fv(r.uMVP, 1, false, &viewProj[0])
	gl.Uniform3f(r.uPaint, 1, 1, 1)
	r.worldTris.draw()
	r.worldLines.draw()
}

// DrawCar draws the shared car mesh with a model matrix and body colour.
func (r *Renderer) DrawCar(viewProj, model mgl32.Mat4, paint RGB) {
	mvp := viewProj.Mul4(model)
	gl.UseProgram(r.sceneProg)
	gl.UniformMatrix4fv(r.uMVP, 1, false, &mvp[0])
	pr, pg, pb := paint.Float()
	gl.Uniform3f(r.uPaint, pr, pg, pb)
	r.car.draw()
}

// DrawParticles draws every live particle in ps.
func (r *Renderer) DrawParticles(ps *ParticleSystem, viewProj mgl32.Mat4, fbH int) {
	r.spriteBuf = ps.ParticleRenderData(r.spriteBuf)
	r.DrawSprites(r.spriteBuf, viewProj, fbH)
}
