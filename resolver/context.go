package resolver

import (
	"strings"

	"github.com/symbol-commons/symbolmap/address"
	"github.com/symbol-commons/symbolmap/canonical"
)

// AssetInfo is what the caller knows about a mosaic
type AssetInfo struct {
	Divisibility uint8    `json:"divisibility" toml:"divisibility"`
	Names        []string `json:"names,omitempty" toml:"names"`
}

// Context is an immutable snapshot of alias resolutions and mosaic metadata.
// It is built once per conversion batch and shared by every conversion of
// the batch. Refreshing it means building a new one.
type Context struct {
	aliases map[string]string
	assets  map[string]AssetInfo
}

// Snapshot is the serializable form of a Context
type Snapshot struct {
	// ResolvedAddresses maps a namespace id to the address or mosaic id it aliases
	ResolvedAddresses map[string]string    `json:"resolvedAddresses" toml:"resolved_addresses"`
	AssetInfo         map[string]AssetInfo `json:"assetInfo" toml:"asset_info"`
}

// New builds a context from copies of the given maps. Keys are namespace and
// mosaic ids in hex; they are normalized so callers may use any case or padding.
func New(resolved map[string]string, assets map[string]AssetInfo) *Context {
	c := &Context{
		aliases: make(map[string]string, len(resolved)),
		assets:  make(map[string]AssetInfo, len(assets)),
	}
	for id, target := range resolved {
		c.aliases[normalize(id)] = normalizeTarget(target)
	}
	for id, info := range assets {
		info.Names = append([]string(nil), info.Names...)
		c.assets[normalize(id)] = info
	}
	return c
}

// FromSnapshot builds a context from its serializable form
func FromSnapshot(s Snapshot) *Context {
	return New(s.ResolvedAddresses, s.AssetInfo)
}

// Snapshot returns a copy of the context content
func (c *Context) Snapshot() Snapshot {
	s := Snapshot{
		ResolvedAddresses: map[string]string{},
		AssetInfo:         map[string]AssetInfo{},
	}
	if c == nil {
		return s
	}
	for id, target := range c.aliases {
		s.ResolvedAddresses[id] = target
	}
	for id, info := range c.assets {
		info.Names = append([]string(nil), info.Names...)
		s.AssetInfo[id] = info
	}
	return s
}

// WithAliases returns a new context with the given resolutions added
func (c *Context) WithAliases(resolved map[string]string) *Context {
	s := c.Snapshot()
	for id, target := range resolved {
		s.ResolvedAddresses[id] = target
	}
	return FromSnapshot(s)
}

// WithAssets returns a new context with the given mosaic metadata added
func (c *Context) WithAssets(assets map[string]AssetInfo) *Context {
	s := c.Snapshot()
	for id, info := range assets {
		s.AssetInfo[id] = info
	}
	return FromSnapshot(s)
}

// Asset returns the metadata of a mosaic
func (c *Context) Asset(mosaicID string) (AssetInfo, bool) {
	if c == nil {
		return AssetInfo{}, false
	}
	info, ok := c.assets[normalize(mosaicID)]
	return info, ok
}

// Alias returns the raw target of a namespace id
func (c *Context) Alias(namespaceID string) (string, bool) {
	if c == nil {
		return "", false
	}
	target, ok := c.aliases[normalize(namespaceID)]
	return target, ok
}

// ResolveAddress turns a wire address into an AddressRef. Concrete addresses
// are returned as they are; aliases are looked up and, when missing, yield
// the Unresolved sentinel together with the namespace id so the caller can
// retry with a refreshed context.
func (c *Context) ResolveAddress(rawOrAlias string) (canonical.AddressRef, error) {
	if !address.IsAliasAddress(rawOrAlias) {
		if address.IsValid(rawOrAlias) {
			return canonical.AddressRef{Address: normalizeTarget(rawOrAlias)}, nil
		}
		addr, err := address.FromRaw(rawOrAlias)
		if err != nil {
			return canonical.AddressRef{}, err
		}
		return canonical.AddressRef{Address: addr}, nil
	}

	namespaceID, err := address.NamespaceIDFromAlias(rawOrAlias)
	if err != nil {
		return canonical.AddressRef{}, err
	}
	ref := canonical.AddressRef{Address: canonical.Unresolved, NamespaceID: namespaceID}
	if target, ok := c.Alias(namespaceID); ok && address.IsValid(target) {
		ref.Address = target
	}
	return ref, nil
}

// ResolveMosaic turns a wire mosaic id, possibly a namespace alias, into a MosaicRef
func (c *Context) ResolveMosaic(idOrAlias string) (canonical.MosaicRef, error) {
	id, err := address.NormalizeID(idOrAlias)
	if err != nil {
		return canonical.MosaicRef{}, err
	}
	if !address.IsAliasMosaicID(id) {
		return canonical.MosaicRef{ID: id}, nil
	}

	ref := canonical.MosaicRef{ID: canonical.Unresolved, NamespaceID: id}
	if target, ok := c.Alias(id); ok && !address.IsValid(target) {
		if mosaicID, err := address.NormalizeID(target); err == nil {
			ref.ID = mosaicID
		}
	}
	return ref, nil
}

func normalize(id string) string {
	if n, err := address.NormalizeID(id); err == nil {
		return n
	}
	return strings.ToUpper(id)
}

func normalizeTarget(target string) string {
	if address.IsValid(target) {
		return strings.ToUpper(strings.ReplaceAll(target, "-", ""))
	}
	if addr, err := address.FromRaw(target); err == nil {
		return addr
	}
	return normalize(target)
}
