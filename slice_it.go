package raptor

// SliceIterator walks a slice forward. The route scan uses it to
// traverse a route's stop sequence from its earliest marked stop to the
// terminus without reslicing at every step.
type SliceIterator[T any] struct {
	data  []T
	index int
}

func NewSliceIterator[T any](data []T) *SliceIterator[T] {
	return &SliceIterator[T]{data: data}
}

// From returns an iterator over the tail of the slice starting at
// from_inclusive.
func (it *SliceIterator[T]) From(from_inclusive int) *SliceIterator[T] {
	return NewSliceIterator(it.data[from_inclusive:])
}

func (it *SliceIterator[T]) Length() int {
	return len(it.data)
}

func (it *SliceIterator[T]) HasNext() bool {
	return it.index < len(it.data)
}

/**
 * gets the next item; always pre-guard with HasNext
 */
func (it *SliceIterator[T]) Next() T {
	if !it.HasNext() {
		panic("Next always has to be pre-guarded by HasNext")
	}

	val := it.data[it.index]
	it.index++
	return val
}
