// Package gpu renders finished canvas Pictures with a stencil-and-cover
// technique on top of github.com/gogpu/wgpu.
//
// A Surface owns the MSAA color, depth-stencil and resolve attachments
// for one render target. Replay walks a Picture's depth-ordered draw
// list, rasterizes every path on the CPU, stages all vertex, index and
// uniform data into one shared upload buffer, and Flush encodes the
// whole frame as a single render pass.
//
// Fills that may self-overlap run in two passes: a stencil pass
// accumulates the winding (or parity) count per pixel with color writes
// disabled, then a cover pass colors the pixels the stencil marks as
// inside and resets the stencil to zero. Convex fills and stroke
// meshes skip the stencil pass. Clip paths reuse the same machinery
// with policies that write depth outside (intersect) or inside
// (difference) the clip region, so the depth test excludes clipped
// draws without any per-draw clip state.
package gpu
