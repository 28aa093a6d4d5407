package ring

// Buffer is a view over one pair's ring diagonal segment inside a larger
// shared slice, the host-side analogue of the kernel's GpuMatrix: a
// diagonal storage array plus an offset and a mask.
type Buffer struct {
	cells  []float32
	offset int
	addr   Addr
}

// NewBuffer returns a Buffer addressing the segment [offset, offset+addr.Size())
// of cells.
func NewBuffer(cells []float32, offset int, addr Addr) Buffer {
	return Buffer{cells: cells, offset: offset, addr: addr}
}

// Get reads the diagonal cell at signed coordinate k.
func (b Buffer) Get(k int64) float32 {
	return b.cells[b.offset+b.addr.Index(k)]
}

// Set writes the diagonal cell at signed coordinate k.
func (b Buffer) Set(k int64, v float32) {
	b.cells[b.offset+b.addr.Index(k)] = v
}

// Fill sets every cell in the segment to v, used to seed the diagonal with
// a measure's InitValue before the first row is scheduled.
func (b Buffer) Fill(v float32) {
	end := b.offset + b.addr.Size()
	for i := b.offset; i < end; i++ {
		b.cells[i] = v
	}
}
