// Package arena provides a bump allocator that backs all storage for one
// parsed geometry tree. Allocations are never freed individually; the
// whole region is reclaimed at once with Reset or by dropping the arena.
package arena

import (
	"unsafe"
)

// DefaultBlockSize is the byte size of the first block when no size is
// given. Blocks double as the arena grows.
const DefaultBlockSize = 4096

// Arena bump-allocates raw bytes out of a chain of blocks. Raw
// allocations must only hold pointer-free data (the garbage collector
// does not scan them); use Slice for element types that carry pointers.
//
// An Arena is not safe for concurrent use.
type Arena struct {
	blocks   [][]byte
	active   int     // block currently being carved
	off      uintptr // bump offset within the active block
	nextSize int     // size of the next block to allocate
	used     int     // bytes handed out since the last Reset
	peak     int     // high-water mark of used, survives Reset
	pinned   []any   // typed slices owned by this arena
}

// New creates an arena whose first block has the given size. Sizes
// smaller than 64 bytes are rounded up.
func New(blockSize int) *Arena {
	if blockSize < 64 {
		blockSize = 64
	}
	return &Arena{nextSize: blockSize}
}

// Alloc returns a pointer to size bytes aligned to align. align must be a
// power of two; vertex storage uses 8. The memory remains valid until the
// arena is reset or released. It is zeroed on first use of a block but
// may hold stale bytes after a Reset.
func (a *Arena) Alloc(size, align uintptr) unsafe.Pointer {
	if size == 0 {
		return nil
	}
	for {
		if a.active < len(a.blocks) {
			block := a.blocks[a.active]
			off := (a.off + align - 1) &^ (align - 1)
			if off+size <= uintptr(len(block)) {
				a.off = off + size
				a.used += int(size)
				if a.used > a.peak {
					a.peak = a.used
				}
				return unsafe.Pointer(&block[off])
			}
			// Active block exhausted, move on. A retained block from a
			// previous generation may already be big enough.
			a.active++
			a.off = 0
			continue
		}
		a.grow(int(size + align))
	}
}

// AllocCopy allocates size bytes aligned to align and initializes them
// from src.
func (a *Arena) AllocCopy(src unsafe.Pointer, size, align uintptr) unsafe.Pointer {
	dst := a.Alloc(size, align)
	if dst != nil {
		copy(unsafe.Slice((*byte)(dst), size), unsafe.Slice((*byte)(src), size))
	}
	return dst
}

func (a *Arena) grow(minSize int) {
	size := a.nextSize
	if size < minSize {
		size = minSize
	}
	a.blocks = append(a.blocks, make([]byte, size))
	a.active = len(a.blocks) - 1
	a.off = 0
	a.nextSize = size * 2
}

// Reset invalidates all previous allocations and returns the arena to an
// empty state in constant time. Backing blocks are retained for reuse;
// their contents are left as-is, so memory handed out after a Reset may
// hold stale bytes until written.
func (a *Arena) Reset() {
	a.active = 0
	a.off = 0
	a.used = 0
	clear(a.pinned)
	a.pinned = a.pinned[:0]
}

// Len returns the number of bytes handed out since the last Reset.
func (a *Arena) Len() int { return a.used }

// Peak returns the high-water mark of Len across the arena's lifetime.
func (a *Arena) Peak() int { return a.peak }

// Float64s carves a []float64 of length n out of the arena.
func Float64s(a *Arena, n int) []float64 {
	if n == 0 {
		return nil
	}
	p := a.Alloc(uintptr(n)*8, 8)
	return unsafe.Slice((*float64)(p), n)
}

// CopyFloat64s copies src into arena storage and returns the copy.
func CopyFloat64s(a *Arena, src []float64) []float64 {
	if len(src) == 0 {
		return nil
	}
	dst := Float64s(a, len(src))
	copy(dst, src)
	return dst
}

// Slice allocates a zeroed []T of length n owned by the arena. Unlike
// Alloc the storage is an ordinary Go slice pinned to the arena, so T may
// contain pointers; the pin is dropped on Reset.
func Slice[T any](a *Arena, n int) []T {
	if n == 0 {
		return nil
	}
	s := make([]T, n)
	a.pinned = append(a.pinned, s)
	var t T
	a.used += n * int(unsafe.Sizeof(t))
	if a.used > a.peak {
		a.peak = a.used
	}
	return s
}
