//go:build ringdebug

package ring

// assertResettable panics if either side has an outstanding PrepareWrite or
// PrepareRead that has not yet been published by a matching FinishWrite or
// FinishRead. Every Finish* call stores base+pos into its side's shared
// cursor, so a side is idle exactly when that cursor still equals base+pos;
// a Prepare* that moved pos (or base, on wrap) without its Finish* leaves
// them apart. A zero-size Prepare* at an already aligned position moves
// neither and is not detected.
func (r *Ring) assertResettable() {
	if r.wCursor.load() != r.writer.base+r.writer.pos {
		panic("ring: Reset called with a writer window mid-flight")
	}
	if r.rCursor.load() != r.reader.base+r.reader.pos {
		panic("ring: Reset called with a reader window mid-flight")
	}
}
