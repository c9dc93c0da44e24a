package gpu

import (
	"bytes"
	"testing"
)

func TestStageBufferOffsets(t *testing.T) {
	s := NewStageBuffer()
	if off := s.PushData([]byte{1, 2, 3, 4}); off != 0 {
		t.Errorf("first offset = %d, want 0", off)
	}
	if off := s.PushData([]byte{5, 6}); off != 4 {
		t.Errorf("second offset = %d, want 4", off)
	}
	if s.Len() != 6 {
		t.Errorf("len = %d, want 6", s.Len())
	}
}

func TestStageBufferUniformAlignment(t *testing.T) {
	s := NewStageBuffer()
	s.PushData(make([]byte, 10))

	off := s.PushUniform(make([]byte, 32))
	if off != 256 {
		t.Errorf("uniform offset = %d, want 256", off)
	}
	if off%uniformAlignment != 0 {
		t.Errorf("uniform offset %d not aligned", off)
	}

	// Already aligned: no padding inserted.
	s2 := NewStageBuffer()
	if off := s2.PushUniform(make([]byte, 16)); off != 0 {
		t.Errorf("aligned uniform offset = %d, want 0", off)
	}
	if off := s2.PushUniform(make([]byte, 16)); off != 256 {
		t.Errorf("next uniform offset = %d, want 256", off)
	}
}

func TestStageBufferReset(t *testing.T) {
	s := NewStageBuffer()
	s.PushData(make([]byte, 100))
	s.Reset()
	if s.Len() != 0 {
		t.Errorf("len after reset = %d, want 0", s.Len())
	}
	if off := s.PushData([]byte{1}); off != 0 {
		t.Errorf("offset after reset = %d, want 0", off)
	}
}

func TestFloat32Bytes(t *testing.T) {
	got := float32Bytes([]float32{1.0})
	want := []byte{0x00, 0x00, 0x80, 0x3f}
	if !bytes.Equal(got, want) {
		t.Errorf("float32Bytes(1.0) = % x, want % x", got, want)
	}
}

func TestUint32Bytes(t *testing.T) {
	got := uint32Bytes([]uint32{0x01020304})
	want := []byte{0x04, 0x03, 0x02, 0x01}
	if !bytes.Equal(got, want) {
		t.Errorf("uint32Bytes = % x, want % x", got, want)
	}
}

func TestStageBufferUpload(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	s := NewStageBuffer()
	s.PushData(float32Bytes([]float32{0, 0, 1, 0, 0, 1}))
	buf, err := s.Upload(device, queue, "test_frame")
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	device.DestroyBuffer(buf)
}
