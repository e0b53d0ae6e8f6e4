package seqbuf

import "errors"

var (
	ErrCapacityExhausted = errors.New("sequence buffer capacity exhausted")
	ErrBufferFreed       = errors.New("sequence buffer already freed")
)

// Buffer는 하나의 hailstone 수열을 담는 재사용 버퍼다.
// Reset은 길이만 0으로 돌리고 backing array는 그대로 유지한다.
type Buffer struct {
	data   []uint64
	length int
	limit  int
	grows  int
	freed  bool
}

func New(capacity int) *Buffer {
	return NewWithLimit(capacity, MaxCapacity)
}

// NewWithLimit is New with a custom ceiling for capacity doubling. A limit
// outside [capacity, MaxCapacity] is replaced by MaxCapacity.
func NewWithLimit(capacity int, limit int) *Buffer {
	if capacity < minCapacity {
		capacity = minCapacity
	}
	if capacity > MaxCapacity {
		capacity = MaxCapacity
	}
	if limit < capacity || limit > MaxCapacity {
		limit = MaxCapacity
	}
	return &Buffer{
		data:  make([]uint64, capacity),
		limit: limit,
	}
}

// Append stores v at index Len(), doubling the capacity first when the buffer
// is full.
func (b *Buffer) Append(v uint64) error {
	if b.freed {
		return ErrBufferFreed
	}
	if b.length == len(b.data) {
		if err := b.grow(); err != nil {
			return err
		}
	}
	b.data[b.length] = v
	b.length++
	return nil
}

func (b *Buffer) grow() error {
	next := len(b.data) * 2
	if next > b.limit {
		return ErrCapacityExhausted
	}
	data := make([]uint64, next)
	copy(data, b.data[:b.length])
	b.data = data
	b.grows++
	return nil
}

func (b *Buffer) Reset() {
	b.length = 0
}

// Free drops the backing array. Calling Free twice is a no-op.
func (b *Buffer) Free() {
	if b.freed {
		return
	}
	b.data = nil
	b.length = 0
	b.freed = true
}

func (b *Buffer) Len() int {
	return b.length
}

func (b *Buffer) Cap() int {
	return len(b.data)
}

// At returns the i-th value. The caller guarantees 0 <= i < Len().
func (b *Buffer) At(i int) uint64 {
	return b.data[i]
}

// Values returns the valid prefix without copying. The slice is only good
// until the next Append or Reset.
func (b *Buffer) Values() []uint64 {
	return b.data[:b.length:b.length]
}

func (b *Buffer) Grows() int {
	return b.grows
}

func (b *Buffer) IsFreed() bool {
	return b.freed
}
