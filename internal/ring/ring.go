package ring

import "errors"

var (
	ErrInvalidCapacity = errors.New("ring capacity must be a power of two and >= 2")
)

// Ring는 고정 크기 순환 버퍼다. 가득 차면 가장 오래된 값을 덮어쓴다.
// 단일 goroutine 전용.
type Ring[T any] struct {
	mask  uint64
	head  uint64
	tail  uint64
	slots []T
}

func New[T any](capacity uint64) (*Ring[T], error) {
	if capacity < 2 || (capacity&(capacity-1)) != 0 {
		return nil, ErrInvalidCapacity
	}
	return &Ring[T]{
		mask:  capacity - 1,
		slots: make([]T, capacity),
	}, nil
}

// Push appends value and reports whether an older value was evicted.
func (r *Ring[T]) Push(value T) bool {
	evicted := false
	if r.tail-r.head == uint64(len(r.slots)) {
		var zero T
		r.slots[r.head&r.mask] = zero
		r.head++
		evicted = true
	}
	r.slots[r.tail&r.mask] = value
	r.tail++
	return evicted
}

func (r *Ring[T]) Len() int {
	return int(r.tail - r.head)
}

func (r *Ring[T]) Cap() int {
	return len(r.slots)
}

// Snapshot copies the held values, oldest first.
func (r *Ring[T]) Snapshot() []T {
	out := make([]T, 0, r.Len())
	for pos := r.head; pos != r.tail; pos++ {
		out = append(out, r.slots[pos&r.mask])
	}
	return out
}

func (r *Ring[T]) Reset() {
	var zero T
	for i := range r.slots {
		r.slots[i] = zero
	}
	r.head = 0
	r.tail = 0
}
