package redis

import "fmt"

// Global prefix, distinguishes applications sharing one redis.
const GlobalPrefix = "sipdesk"

// Module prefixes.
const (
	LookupModule = "lookup"
)

// Key templates.
const (
	lookupKeyTpl = "%s:%s:%s:%s" // {global}:{version}:{module}:{kind}
)

// KeyBuilder builds namespaced redis keys.
type KeyBuilder struct {
	globalPrefix string
	version      string
}

// NewKeyBuilder creates a KeyBuilder with the given prefix and version.
func NewKeyBuilder(globalPrefix, version string) *KeyBuilder {
	if globalPrefix == "" {
		globalPrefix = GlobalPrefix
	}
	if version == "" {
		version = "v1"
	}
	return &KeyBuilder{globalPrefix: globalPrefix, version: version}
}

// LookupKey builds the cache key for a suggested-values lookup kind
// (servers, clients, personnel).
func (b *KeyBuilder) LookupKey(kind string) string {
	return fmt.Sprintf(lookupKeyTpl, b.globalPrefix, b.version, LookupModule, kind)
}
