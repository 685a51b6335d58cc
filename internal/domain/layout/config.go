package layout

import "encoding/json"

// ConfigVersion is the current layout config format version.
const ConfigVersion = 1

// BlockWidth is the horizontal span of a layout block.
type BlockWidth string

const (
	WidthHalf BlockWidth = "half"
	WidthFull BlockWidth = "full"
)

// NormalizeWidth coerces a raw width value. Only an exact "half" match
// yields a half block; everything else is full.
func NormalizeWidth(raw string) BlockWidth {
	if raw == string(WidthHalf) {
		return WidthHalf
	}
	return WidthFull
}

// Block is one field's placement unit within a template layout.
type Block struct {
	Key   FieldKey   `json:"key"`
	Width BlockWidth `json:"width"`
}

// Config is a canonical ordered block list with a format version tag.
type Config struct {
	Version int     `json:"version"`
	Blocks  []Block `json:"blocks"`
}

// defaultSingleBlocks is the built-in single-part block list.
var defaultSingleBlocks = []Block{
	{Key: FieldManufacturer, Width: WidthHalf},
	{Key: FieldPartNumber, Width: WidthHalf},
	{Key: FieldDescription, Width: WidthFull},
	{Key: FieldStockQuantity, Width: WidthHalf},
	{Key: FieldBinLocation, Width: WidthHalf},
	{Key: FieldNotes, Width: WidthFull},
}

// defaultDualBlocks is the built-in dual-part block list. Left and right
// halves mirror each other, with description rows adjacent.
var defaultDualBlocks = []Block{
	{Key: FieldManufacturer, Width: WidthHalf},
	{Key: FieldPartNumber, Width: WidthHalf},
	{Key: FieldManufacturerRight, Width: WidthHalf},
	{Key: FieldPartNumberRight, Width: WidthHalf},
	{Key: FieldDescription, Width: WidthFull},
	{Key: FieldDescriptionRight, Width: WidthFull},
	{Key: FieldStockQuantity, Width: WidthHalf},
	{Key: FieldBinLocation, Width: WidthHalf},
	{Key: FieldStockQuantityRight, Width: WidthHalf},
	{Key: FieldBinLocationRight, Width: WidthHalf},
	{Key: FieldNotes, Width: WidthFull},
	{Key: FieldNotesRight, Width: WidthFull},
}

// DefaultBlocks returns the built-in block list for the given capabilities.
func DefaultBlocks(caps Capabilities) []Block {
	source := defaultSingleBlocks
	if caps.PartsPerLabel == 2 {
		source = defaultDualBlocks
	}
	blocks := make([]Block, 0, len(source))
	for _, block := range source {
		if !caps.IncludeDescription && block.Key.DependsOnDescription() {
			continue
		}
		blocks = append(blocks, block)
	}
	return blocks
}

// DefaultConfig returns the built-in layout config for the given capabilities.
func DefaultConfig(caps Capabilities) Config {
	return Config{Version: ConfigVersion, Blocks: DefaultBlocks(caps)}
}

// Normalize validates a block list against the capabilities and returns
// the canonical config. Blocks with unknown keys, duplicate keys, or keys
// outside the capability set are dropped and widths are coerced; if no
// blocks survive, the built-in default list is substituted.
//
// Normalize is pure and idempotent: applying it to its own output under
// the same capabilities returns an equivalent config.
func Normalize(cfg Config, caps Capabilities) Config {
	filtered := filterBlocks(cfg.Blocks, caps)
	if len(filtered) == 0 {
		return DefaultConfig(caps)
	}
	return Config{Version: ConfigVersion, Blocks: filtered}
}

// NormalizeJSON parses a serialized layout config and normalizes it.
// Unparsable input is treated as absent and yields the default config.
func NormalizeJSON(raw string, caps Capabilities) Config {
	cfg, err := ParseConfig(raw)
	if err != nil {
		return DefaultConfig(caps)
	}
	return Normalize(cfg, caps)
}

// filterBlocks keeps the capability-legal blocks in input order.
// Filtering and default substitution are deliberately separate stages so
// the fallback path can be exercised on its own.
func filterBlocks(blocks []Block, caps Capabilities) []Block {
	seen := make(map[FieldKey]bool, len(blocks))
	filtered := make([]Block, 0, len(blocks))
	for _, block := range blocks {
		if !caps.Allows(block.Key) {
			continue
		}
		if seen[block.Key] {
			continue
		}
		seen[block.Key] = true
		filtered = append(filtered, Block{
			Key:   block.Key,
			Width: NormalizeWidth(string(block.Width)),
		})
	}
	return filtered
}

// ParseConfig decodes a serialized layout config. An empty string decodes
// to an empty config without error.
func ParseConfig(raw string) (Config, error) {
	if raw == "" {
		return Config{}, nil
	}
	var cfg Config
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode serializes the config to its canonical JSON form.
func (c Config) Encode() string {
	data, err := json.Marshal(c)
	if err != nil {
		return `{"version":1,"blocks":[]}`
	}
	return string(data)
}

// Keys returns the block keys in layout order.
func (c Config) Keys() []FieldKey {
	keys := make([]FieldKey, len(c.Blocks))
	for i, block := range c.Blocks {
		keys[i] = block.Key
	}
	return keys
}
