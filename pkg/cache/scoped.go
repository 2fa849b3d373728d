package cache

// ScopedKeyer prefixes every key of an inner [Keyer]. The API server uses it to keep
// its entries apart from the CLI's when both share a backend.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "api:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner. A nil inner means [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) PiecesKey(configHash string, pieceSize float64) string {
	return k.prefix + k.inner.PiecesKey(configHash, pieceSize)
}

func (k *ScopedKeyer) ArtifactKey(configHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(configHash, opts)
}

func (k *ScopedKeyer) RasterKey(svgHash string, opts RasterKeyOpts) string {
	return k.prefix + k.inner.RasterKey(svgHash, opts)
}
