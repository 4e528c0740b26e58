package layout

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-lumen/common"
)

// BufferWrite is a single partial write: Data is placed at Offset bytes into the named buffer.
type BufferWrite struct {
	Buffer string
	Offset uint64
	Data   []byte
}

// Sink accepts partial writes against named GPU buffers.
type Sink interface {
	// WriteBuffer copies data into buffer starting at offset bytes.
	WriteBuffer(buffer string, offset uint64, data []byte)
}

// UniformWriter turns named field updates into buffer writes using a packed UniformLayout.
type UniformWriter struct {
	sink   Sink
	buffer string
	layout UniformLayout
}

// NewUniformWriter creates a writer targeting one uniform buffer.
//
// Parameters:
//   - sink: destination for the writes
//   - buffer: name of the uniform buffer in the sink
//   - layout: packed layout of that buffer
//
// Returns:
//   - *UniformWriter: the writer
func NewUniformWriter(sink Sink, buffer string, layout UniformLayout) *UniformWriter {
	return &UniformWriter{sink: sink, buffer: buffer, layout: layout}
}

// Layout returns the layout the writer encodes against.
func (w *UniformWriter) Layout() UniformLayout {
	return w.layout
}

// Buffer returns the target buffer name.
func (w *UniformWriter) Buffer() string {
	return w.buffer
}

// Encode produces the (offset, bytes) write that sets field name to values without sending it.
//
// Parameters:
//   - name: declared field name
//   - values: exactly as many floats as the field has components
//
// Returns:
//   - BufferWrite: the encoded write
//   - error: ErrUnknownField or ErrComponentMismatch
func (w *UniformWriter) Encode(name string, values ...float32) (BufferWrite, error) {
	f, err := w.layout.Field(name)
	if err != nil {
		return BufferWrite{}, err
	}
	if len(values) != f.Components {
		return BufferWrite{}, fmt.Errorf("%w: %s wants %d, got %d", ErrComponentMismatch, name, f.Components, len(values))
	}
	return BufferWrite{
		Buffer: w.buffer,
		Offset: f.ByteOffset(),
		Data:   common.Float32Bytes(values...),
	}, nil
}

// Write encodes and sends a field update.
//
// Returns:
//   - error: ErrUnknownField or ErrComponentMismatch; nothing is written on error
func (w *UniformWriter) Write(name string, values ...float32) error {
	bw, err := w.Encode(name, values...)
	if err != nil {
		return err
	}
	w.sink.WriteBuffer(bw.Buffer, bw.Offset, bw.Data)
	return nil
}

// WriteMat4 writes a 16 component matrix field.
func (w *UniformWriter) WriteMat4(name string, m common.Mat4) error {
	return w.Write(name, m[:]...)
}

// WriteVec3 writes a vector field. A 4 component field receives pad as its last element.
func (w *UniformWriter) WriteVec3(name string, v common.Vec3, pad float32) error {
	f, err := w.layout.Field(name)
	if err != nil {
		return err
	}
	if f.Components == 4 {
		return w.Write(name, v[0], v[1], v[2], pad)
	}
	return w.Write(name, v[:]...)
}
