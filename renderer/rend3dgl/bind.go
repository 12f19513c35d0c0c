package rend3dgl

import "github.com/bloeys/fourgl/gpu"

// BufferBinder forwards buffer binds to the backend only when the handle differs from the
// last one bound through it.
//
// The buffer kind is not part of the comparison. Handles are never shared between kinds,
// so the only case this gets wrong (binding the same handle as two kinds) doesn't happen.
type BufferBinder struct {
	Backend   gpu.Backend
	LastBound gpu.Buffer
}

func (bb *BufferBinder) Bind(kind gpu.BufferKind, buf gpu.Buffer) {

	if buf == bb.LastBound {
		return
	}

	bb.Backend.BindBuffer(kind, buf)
	bb.LastBound = buf
}
