package cache

// ScopedKeyer prefixes every key of another Keyer. The CLI scopes count keys
// by build version so that a new binary never trusts an old count.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or [DefaultKeyer] when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return ScopedKeyer{inner: inner, prefix: prefix}
}

func (k ScopedKeyer) CountKey(request []byte) string {
	return k.prefix + k.inner.CountKey(request)
}
