package layout

import (
	"encoding/binary"
	"math"
	"slices"
	"sync"
)

// MemorySink is a CPU-side mirror of GPU buffers. Buffers grow to fit the furthest write.
type MemorySink struct {
	mu      *sync.Mutex
	buffers map[string][]byte
	writes  int
}

var _ Sink = &MemorySink{}

// NewMemorySink creates an empty mirror.
func NewMemorySink() *MemorySink {
	return &MemorySink{
		mu:      &sync.Mutex{},
		buffers: make(map[string][]byte),
	}
}

func (m *MemorySink) WriteBuffer(buffer string, offset uint64, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	buf := m.buffers[buffer]
	if end := int(offset) + len(data); end > len(buf) {
		buf = append(buf, make([]byte, end-len(buf))...)
	}
	copy(buf[offset:], data)
	m.buffers[buffer] = buf
	m.writes++
}

// Bytes returns a copy of the named buffer's contents.
func (m *MemorySink) Bytes(buffer string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.buffers[buffer])
}

// Float32 reads the little-endian float stored at offset bytes into buffer.
//
// Parameters:
//   - buffer: buffer name
//   - offset: byte offset
//
// Returns:
//   - float32: the stored value
//   - bool: false if the buffer is shorter than offset+4
func (m *MemorySink) Float32(buffer string, offset uint64) (float32, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	buf := m.buffers[buffer]
	if offset+4 > uint64(len(buf)) {
		return 0, false
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:])), true
}

// Writes returns how many writes the sink has received.
func (m *MemorySink) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
