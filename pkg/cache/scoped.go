package cache

// ScopedKeyer prepends a namespace to every key of an inner Keyer, so that
// several setups can share one backend without seeing each other's entries.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the DefaultKeyer when inner is nil. An
// empty prefix returns inner unchanged.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	if prefix == "" {
		return inner
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) PlacementKey(designHash string, opts PlacementKeyOpts) string {
	return k.prefix + k.inner.PlacementKey(designHash, opts)
}

func (k *ScopedKeyer) RenderKey(designHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(designHash, opts)
}

// Prefix returns the namespace prepended to keys.
func (k *ScopedKeyer) Prefix() string { return k.prefix }
