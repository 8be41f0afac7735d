package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation. The serve
// command uses it to keep per-session frame entries apart while sharing one
// backend.
//
// Example usage:
//
//	sessionKeyer := NewScopedKeyer(NewDefaultKeyer(), "session:"+id+":")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// GraphKey generates a prefixed key for parsed graph caching.
func (k *ScopedKeyer) GraphKey(contentHash string) string {
	return k.prefix + k.inner.GraphKey(contentHash)
}

// FrameKey generates a prefixed key for rendered frame caching.
func (k *ScopedKeyer) FrameKey(graphHash string, opts FrameKeyOpts) string {
	return k.prefix + k.inner.FrameKey(graphHash, opts)
}
