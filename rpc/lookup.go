package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"

	"github.com/symbol-commons/symbolmap/address"
	"github.com/symbol-commons/symbolmap/resolver"
	"github.com/symbol-commons/symbolmap/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxLookupIDs is the largest id list the node accepts in one POST
const maxLookupIDs = 100

// References are the namespace aliases and mosaic ids a set of records mentions
type References struct {
	Namespaces []string
	Mosaics    []string
}

// CollectReferences walks records, inner transactions included, and returns
// the sorted, de-duplicated aliases and mosaic ids they reference
func CollectReferences(records []*types.Record) References {
	namespaces := map[string]bool{}
	mosaics := map[string]bool{}

	addAddress := func(raw string) {
		if raw == "" || !address.IsAliasAddress(raw) {
			return
		}
		if id, err := address.NamespaceIDFromAlias(raw); err == nil {
			namespaces[id] = true
		}
	}
	addMosaic := func(v string) {
		id, err := address.NormalizeID(v)
		if err != nil || id == address.FormatID(0) {
			return
		}
		if address.IsAliasMosaicID(id) {
			namespaces[id] = true
			return
		}
		mosaics[id] = true
	}

	var walk func(records []*types.Record)
	walk = func(records []*types.Record) {
		for _, rec := range records {
			if rec == nil || rec.Transaction == nil {
				continue
			}
			tx := rec.Transaction

			addAddress(tx.RecipientAddress)
			addAddress(tx.SourceAddress)
			addAddress(tx.TargetAddress)
			for _, raw := range tx.AddressAdditions {
				addAddress(raw)
			}
			for _, raw := range tx.AddressDeletions {
				addAddress(raw)
			}

			for _, m := range tx.Mosaics {
				addMosaic(m.ID)
			}
			addMosaic(tx.MosaicID)
			addMosaic(tx.TargetMosaicID)
			addMosaic(tx.ReferenceMosaicID)

			if tx.Type == types.TypeAccountAddressRestriction || tx.Type == types.TypeAccountMosaicRestriction {
				for _, raw := range append(append([]json.RawMessage(nil), tx.RestrictionAdditions...), tx.RestrictionDeletions...) {
					var v string
					if json.Unmarshal(raw, &v) != nil {
						continue
					}
					if tx.Type == types.TypeAccountAddressRestriction {
						addAddress(v)
					} else {
						addMosaic(v)
					}
				}
			}

			walk(tx.Transactions)
		}
	}
	walk(records)

	return References{Namespaces: sortedKeys(namespaces), Mosaics: sortedKeys(mosaics)}
}

// BuildContext resolves every alias and mosaic the records reference and
// returns them merged on top of base. Lookups run concurrently; a namespace
// the node does not know is left unresolved.
func (c *Client) BuildContext(ctx context.Context, records []*types.Record, base *resolver.Context) (*resolver.Context, error) {
	refs := CollectReferences(records)

	var mu sync.Mutex
	aliases := map[string]string{}
	mosaicSet := map[string]bool{}
	for _, id := range refs.Mosaics {
		mosaicSet[id] = true
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for _, namespaceID := range refs.Namespaces {
		if _, ok := base.Alias(namespaceID); ok {
			continue
		}
		g.Go(func() error {
			info, err := c.GetNamespace(gctx, namespaceID)
			if errors.Is(err, ErrNotFound) {
				c.logger.Debug("namespace not found", zap.String("namespace_id", namespaceID))
				return nil
			}
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			alias := info.Namespace.Alias
			switch alias.Type {
			case types.AliasAddress:
				aliases[namespaceID] = alias.Address
			case types.AliasMosaic:
				aliases[namespaceID] = alias.MosaicID
				if id, err := address.NormalizeID(alias.MosaicID); err == nil {
					mosaicSet[id] = true
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var mosaicIDs []string
	for _, id := range sortedKeys(mosaicSet) {
		if _, ok := base.Asset(id); !ok {
			mosaicIDs = append(mosaicIDs, id)
		}
	}

	assets, err := c.assetInfo(ctx, mosaicIDs)
	if err != nil {
		return nil, err
	}

	return base.WithAliases(aliases).WithAssets(assets), nil
}

func (c *Client) assetInfo(ctx context.Context, mosaicIDs []string) (map[string]resolver.AssetInfo, error) {
	assets := map[string]resolver.AssetInfo{}
	for start := 0; start < len(mosaicIDs); start += maxLookupIDs {
		chunk := mosaicIDs[start:min(start+maxLookupIDs, len(mosaicIDs))]

		var infos []types.MosaicInfo
		var names []types.MosaicNames
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			infos, err = c.GetMosaics(gctx, chunk)
			return err
		})
		g.Go(func() (err error) {
			names, err = c.GetMosaicNames(gctx, chunk)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		byID := map[string][]string{}
		for _, n := range names {
			if id, err := address.NormalizeID(n.MosaicID); err == nil {
				byID[id] = n.Names
			}
		}
		for _, info := range infos {
			id, err := address.NormalizeID(info.Mosaic.ID)
			if err != nil {
				c.logger.Debug("skipping mosaic with invalid id", zap.String("mosaic_id", info.Mosaic.ID))
				continue
			}
			assets[id] = resolver.AssetInfo{Divisibility: info.Mosaic.Divisibility, Names: byID[id]}
		}
	}
	return assets, nil
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
