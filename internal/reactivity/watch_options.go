package reactivity

// WithImmediate runs the watch callback once synchronously on creation.
func WithImmediate() func(*WatchOptions) {
	return func(o *WatchOptions) { o.Immediate = true }
}

// WithFlush overrides the default "pre" flush mode.
func WithFlush(mode FlushMode) func(*WatchOptions) {
	return func(o *WatchOptions) { o.Flush = mode }
}

// WithOnce stops the watch after its first callback invocation.
func WithOnce() func(*WatchOptions) {
	return func(o *WatchOptions) { o.Once = true }
}

// WithoutScope prevents auto-attaching the watch to the current
// EffectScope.
func WithoutScope() func(*WatchOptions) {
	return func(o *WatchOptions) { o.Scope = false }
}

// WithoutBatch disables notification coalescing within a microtask.
func WithoutBatch() func(*WatchOptions) {
	return func(o *WatchOptions) { o.Batch = false }
}

// WithClone sets WatchOptions.Clone. No watch function reads that field:
// the callback receives the previous value itself, not a copy of it.
func WithClone() func(*WatchOptions) {
	return func(o *WatchOptions) { o.Clone = true }
}
