package network

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/symbol-commons/symbolmap/address"
	"github.com/symbol-commons/symbolmap/canonical"
	"github.com/symbol-commons/symbolmap/utils"
)

// DefaultDeadline is how long an outbound transaction stays valid when the
// record does not carry a deadline
const DefaultDeadline = 2 * time.Hour

var ErrInvalidParameters = errors.New("invalid network parameters")

// Parameters describe the network a conversion targets. Every outbound
// conversion takes them explicitly so amounts are always scaled with the
// divisibility of the network the transaction is built for.
type Parameters struct {
	Name                string              `toml:"name"`
	Type                address.NetworkType `toml:"type"`
	EpochAdjustment     int64               `toml:"epoch_adjustment"`
	GenerationHash      string              `toml:"generation_hash"`
	CurrencyMosaicID    string              `toml:"currency_mosaic_id"`
	CurrencyNamespaceID string              `toml:"currency_namespace_id"`
	Divisibility        uint8               `toml:"divisibility"`
	Deadline            Duration            `toml:"deadline"`
	NodeURL             string              `toml:"node_url"`
}

// Duration is a time.Duration read from a string such as "2h"
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

var (
	MainNet = Parameters{
		Name:                "mainnet",
		Type:                address.MainNet,
		EpochAdjustment:     1615853185,
		GenerationHash:      "57F7DA205008026C776CB6AED843393F04CD458E0AA2D9F1D5F31A402072B2D6",
		CurrencyMosaicID:    "6BED913FA20223F8",
		CurrencyNamespaceID: "E74B99BA41F4AFEE",
		Divisibility:        6,
		Deadline:            Duration{DefaultDeadline},
	}

	TestNet = Parameters{
		Name:                "testnet",
		Type:                address.TestNet,
		EpochAdjustment:     1667250467,
		GenerationHash:      "49D6E1CE276A85B70EAFE52349AACCA389302E7A9754BCF1221E79494FC665A4",
		CurrencyMosaicID:    "72C0212E67A08BCE",
		CurrencyNamespaceID: "E74B99BA41F4AFEE",
		Divisibility:        6,
		Deadline:            Duration{DefaultDeadline},
	}
)

// Validate checks the parameters are usable for conversions
func (p Parameters) Validate() error {
	var errs []error
	if p.Type != address.MainNet && p.Type != address.TestNet {
		errs = append(errs, fmt.Errorf("unknown network type %d", p.Type))
	}
	if p.EpochAdjustment <= 0 {
		errs = append(errs, fmt.Errorf("epoch adjustment is required"))
	}
	if _, err := address.ParseID(p.CurrencyMosaicID); err != nil {
		errs = append(errs, fmt.Errorf("currency mosaic id: %w", err))
	}
	if p.CurrencyNamespaceID != "" {
		if _, err := address.ParseID(p.CurrencyNamespaceID); err != nil {
			errs = append(errs, fmt.Errorf("currency namespace id: %w", err))
		}
	}
	if p.Divisibility > utils.MaxDivisibility {
		errs = append(errs, fmt.Errorf("divisibility %d exceeds %d", p.Divisibility, utils.MaxDivisibility))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %v", ErrInvalidParameters, errors.Join(errs...))
	}
	return nil
}

// IsCurrency reports whether the mosaic is the network currency, either by
// id or through the currency namespace alias
func (p Parameters) IsCurrency(ref canonical.MosaicRef) bool {
	if ref.Resolved() && sameID(ref.ID, p.CurrencyMosaicID) {
		return true
	}
	return ref.NamespaceID != "" && sameID(ref.NamespaceID, p.CurrencyNamespaceID)
}

// DeadlineFrom returns the default deadline for a transaction created at now
func (p Parameters) DeadlineFrom(now time.Time) time.Time {
	d := p.Deadline.Duration
	if d <= 0 {
		d = DefaultDeadline
	}
	return now.Add(d)
}

func sameID(a, b string) bool {
	x, err := address.ParseID(a)
	if err != nil {
		return false
	}
	y, err := address.ParseID(b)
	if err != nil {
		return false
	}
	return x == y
}

// Profiles is the layout of a network profile file
type Profiles struct {
	Default  string                `toml:"default"`
	Networks map[string]Parameters `toml:"networks"`
}

// Load reads network profiles from a TOML file. Profiles are merged on top
// of the built-in mainnet and testnet parameters with the same name.
func Load(path string) (*Profiles, error) {
	profiles := &Profiles{Networks: map[string]Parameters{}}
	md, err := toml.DecodeFile(path, profiles)
	if err != nil {
		return nil, fmt.Errorf("reading network profiles %q: %w", path, err)
	}

	for name, params := range profiles.Networks {
		base, ok := Builtin(name)
		if !ok {
			base = Parameters{Deadline: Duration{DefaultDeadline}}
		}
		profiles.Networks[name] = merge(base, params, md, name)
	}
	return profiles, nil
}

// Lookup returns a validated profile by name
func (p *Profiles) Lookup(name string) (Parameters, error) {
	if name == "" {
		name = p.Default
	}
	params, ok := p.Networks[name]
	if !ok {
		if params, ok = Builtin(name); !ok {
			return Parameters{}, fmt.Errorf("%w: no network named %q", ErrInvalidParameters, name)
		}
	}
	if params.Name == "" {
		params.Name = name
	}
	return params, params.Validate()
}

// Builtin returns the built-in parameters of a public network
func Builtin(name string) (Parameters, bool) {
	switch name {
	case "mainnet":
		return MainNet, true
	case "testnet":
		return TestNet, true
	}
	return Parameters{}, false
}

func merge(base, over Parameters, md toml.MetaData, name string) Parameters {
	set := func(key string) bool {
		return md.IsDefined("networks", name, key)
	}
	if set("name") {
		base.Name = over.Name
	}
	if set("type") {
		base.Type = over.Type
	}
	if set("epoch_adjustment") {
		base.EpochAdjustment = over.EpochAdjustment
	}
	if set("generation_hash") {
		base.GenerationHash = over.GenerationHash
	}
	if set("currency_mosaic_id") {
		base.CurrencyMosaicID = over.CurrencyMosaicID
	}
	if set("currency_namespace_id") {
		base.CurrencyNamespaceID = over.CurrencyNamespaceID
	}
	if set("divisibility") {
		base.Divisibility = over.Divisibility
	}
	if set("deadline") {
		base.Deadline = over.Deadline
	}
	if set("node_url") {
		base.NodeURL = over.NodeURL
	}
	return base
}
