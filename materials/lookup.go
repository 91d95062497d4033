package materials

import "go.uber.org/zap"

// Lookup is an immutable snapshot of a material's type -> audio set mapping.
// It is safe to share between goroutines.
type Lookup struct {
	sets        map[Type]*AudioSet
	fallbackKey Type
}

// BuildLookup indexes the authored audio sets of m. The first set for a key
// wins; each later duplicate is reported once and never used.
func BuildLookup(m *Material, log *zap.Logger) *Lookup {
	if log == nil {
		log = zap.NewNop()
	}
	l := &Lookup{
		sets:        make(map[Type]*AudioSet, len(m.AudioSets)),
		fallbackKey: NoType,
	}

	sets := make([]AudioSet, len(m.AudioSets))
	for i, set := range m.AudioSets {
		sets[i] = AudioSet{Key: set.Key, Slide: set.Slide}
		sets[i].Impacts = append([]ClipRef(nil), set.Impacts...)
	}

	for i := range sets {
		set := &sets[i]
		if _, ok := l.sets[set.Key]; ok {
			log.Warn("duplicate audio set for material type, it will not be used",
				zap.String("material", m.Name),
				zap.String("type", TypeName(set.Key)),
				zap.Int("key", int(set.Key)),
				zap.Int("index", i))
			continue
		}
		l.sets[set.Key] = set
	}

	switch {
	case m.FallbackIndex == 0:
	case m.FallbackIndex < 0 || m.FallbackIndex > len(sets):
		log.Warn("fallback index out of range, fallback disabled",
			zap.String("material", m.Name),
			zap.Int("fallbackIndex", m.FallbackIndex))
	default:
		l.fallbackKey = sets[m.FallbackIndex-1].Key
	}

	return l
}

// AudioSet resolves key to its audio set.
func (l *Lookup) AudioSet(key Type) (*AudioSet, bool) {
	if l == nil {
		return nil, false
	}
	set, ok := l.sets[key]
	return set, ok
}

// FallbackKey returns the configured fallback type, or NoType.
func (l *Lookup) FallbackKey() Type {
	if l == nil {
		return NoType
	}
	return l.fallbackKey
}

// Fallback resolves the configured fallback set.
func (l *Lookup) Fallback() (*AudioSet, bool) {
	if l == nil || l.fallbackKey == NoType {
		return nil, false
	}
	return l.AudioSet(l.fallbackKey)
}

// Resolve picks the set to use against a partner of type other: the direct
// entry when there is one, otherwise the fallback. Pass NoType when the
// partner has no material.
func (l *Lookup) Resolve(other Type) (*AudioSet, bool) {
	if other != NoType {
		if set, ok := l.AudioSet(other); ok {
			return set, true
		}
	}
	return l.Fallback()
}

// Len returns the number of distinct keys.
func (l *Lookup) Len() int {
	if l == nil {
		return 0
	}
	return len(l.sets)
}
