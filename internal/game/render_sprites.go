package game

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// initSprites links the particle program and its streaming buffer.
// Each sprite: 8 floats (x, y, z, size, r, g, b, a).
func (r *Renderer) initSprites() error {
	prog, err := linkProgram(particleVertSrc, particleFragSrc)
	if err != nil {
		return fmt.Errorf("sprite program: %w", err)
	}
	r.spriteProg = prog
	gl.UseProgram(prog)
	r.spUMVP = gl.GetUniformLocation(prog, gl.Str("uMVP\x00"))
	r.spUViewportH = gl.GetUniformLocation(prog, gl.Str("uViewportH\x00"))

	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	stride := int32(particleFloats * 4)
	gl.BufferData(gl.ARRAY_BUFFER, MaxParticleRender*int(stride), nil, gl.STREAM_DRAW)
	// aPos (vec3)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, glOffset(0))
	// aSize (float)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, stride, glOffset(3*4))
	// aColor (vec4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(4*4))
	r.spriteVAO = vao
	r.spriteVBO = vbo
	gl.BindVertexArray(0)
	return nil
}

// DrawSprites renders particle point sprites with alpha blending. Depth is
// tested but not written so overlapping sprites do not cut each other.
func (r *Renderer) DrawSprites(buf []float32, viewProj mgl32.Mat4, fbH int) {
	if len(buf) == 0 {
		return
	}

	count := len(buf) / particleFloats
	if count > MaxParticleRender {
		count = MaxParticleRender
	}

	gl.UseProgram(r.spriteProg)
	gl.BindVertexArray(r.spriteVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.spriteVBO)

	gl.UniformMatrix4fv(r.spUMVP, 1, false, &viewProj[0])
	gl.Uniform1f(r.spUViewportH, float32(fbH))

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DepthMask(false)

	gl.BufferData(gl.ARRAY_BUFFER, count*particleFloats*4, gl.Ptr(buf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.POINTS, 0, int32(count))

	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
}
