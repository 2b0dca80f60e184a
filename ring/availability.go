package ring

// CanWrite reports whether a PrepareWrite(size, alignment) call would
// return immediately, without entering the space-acquisition spin. It does
// not mutate any side state — it is a read-only peek for callers that want
// to layer their own non-blocking/backoff behavior on top of the
// otherwise-blocking core. The core itself never surfaces a "would block"
// result; availability checking is entirely the caller's responsibility.
func (r *Ring) CanWrite(size, alignment uint64) bool {
	a := alignment
	if r.NoAlign {
		a = 1
	}
	pos := align(r.writer.pos, a)
	end := pos + size
	if end <= r.writer.end {
		return true
	}

	base := r.writer.base
	if end > r.writer.size {
		end -= pos
		pos = 0
		base += r.writer.size
	}
	rpos := r.rCursor.load()
	available := rpos - base + r.writer.size
	return int64(available) >= int64(end)
}

// CanRead is the consumer-side symmetric counterpart to CanWrite.
func (r *Ring) CanRead(size, alignment uint64) bool {
	a := alignment
	if r.NoAlign {
		a = 1
	}
	pos := align(r.reader.pos, a)
	end := pos + size
	if end <= r.reader.end {
		return true
	}

	base := r.reader.base
	if end > r.reader.size {
		end -= pos
		pos = 0
		base += r.reader.size
	}
	wpos := r.wCursor.load()
	available := wpos - base
	return int64(available) >= int64(end)
}
