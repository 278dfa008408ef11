package mesh

// column is an optional per-element buffer kept parallel to the vertex or
// face container it belongs to.
type column interface {
	enable(n int)
	disable()
	enabled() bool
	grow()
	compact(keep []int)
	size() int
}

// optional is a column of T. fill is the value new entries start with.
type optional[T any] struct {
	data []T
	on   bool
	fill T
}

func (o *optional[T]) enable(n int) {
	if o.on {
		return
	}
	o.data = make([]T, n)
	for i := range o.data {
		o.data[i] = o.fill
	}
	o.on = true
}

func (o *optional[T]) disable() {
	o.data = nil
	o.on = false
}

func (o *optional[T]) enabled() bool { return o.on }

func (o *optional[T]) grow() {
	if o.on {
		o.data = append(o.data, o.fill)
	}
}

// compact keeps only the entries whose old indices are listed in keep.
func (o *optional[T]) compact(keep []int) {
	if !o.on {
		return
	}
	out := make([]T, len(keep))
	for i, old := range keep {
		out[i] = o.data[old]
	}
	o.data = out
}

func (o *optional[T]) size() int { return len(o.data) }

// slice returns the backing data, nil while the column is disabled.
func (o *optional[T]) slice() []T {
	if !o.on {
		return nil
	}
	return o.data
}
