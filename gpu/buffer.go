package gpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// uniformAlignment is the minimum offset alignment for uniform buffer
// bindings required by WebGPU.
const uniformAlignment = 256

// StageBuffer accumulates vertex, index and uniform data for a frame so
// the whole frame uploads as a single hal.Buffer write.
type StageBuffer struct {
	data []byte
}

// NewStageBuffer returns an empty staging buffer.
func NewStageBuffer() *StageBuffer {
	return &StageBuffer{data: make([]byte, 0, 4096)}
}

// PushData appends data and returns its byte offset within the buffer.
func (s *StageBuffer) PushData(data []byte) uint64 {
	offset := uint64(len(s.data))
	s.data = append(s.data, data...)
	return offset
}

// PushUniform appends data at a 256-byte aligned offset and returns that
// offset, suitable for a uniform buffer binding.
func (s *StageBuffer) PushUniform(data []byte) uint64 {
	rem := len(s.data) % uniformAlignment
	if rem != 0 {
		s.data = append(s.data, make([]byte, uniformAlignment-rem)...)
	}
	return s.PushData(data)
}

// Len returns the number of staged bytes.
func (s *StageBuffer) Len() int {
	return len(s.data)
}

// Bytes returns the staged data.
func (s *StageBuffer) Bytes() []byte {
	return s.data
}

// Reset clears the buffer for the next frame, keeping capacity.
func (s *StageBuffer) Reset() {
	s.data = s.data[:0]
}

// Upload creates a device buffer holding the staged data and writes it
// through the queue.
func (s *StageBuffer) Upload(device hal.Device, queue hal.Queue, label string) (hal.Buffer, error) {
	size := uint64(len(s.data))
	if size == 0 {
		size = 4
	}
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageIndex |
			gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	if len(s.data) > 0 {
		queue.WriteBuffer(buf, 0, s.data)
	}
	return buf, nil
}

func float32Bytes(values []float32) []byte {
	out := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

func uint32Bytes(values []uint32) []byte {
	out := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(out[i*4:], v)
	}
	return out
}
