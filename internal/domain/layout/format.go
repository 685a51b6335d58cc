package layout

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// fieldFormatDefaults maps field keys to their built-in format strings.
// Keys absent from this map format as the bare value.
var fieldFormatDefaults = map[FieldKey]string{
	FieldPartNumber:         "{value_upper}",
	FieldPartNumberRight:    "{value_upper}",
	FieldStockQuantity:      "On Hand: {value}",
	FieldStockQuantityRight: "On Hand: {value}",
	FieldBinLocation:        "Bin: {value}",
	FieldBinLocationRight:   "Bin: {value}",
}

// placeholderPattern matches {name} placeholder tokens. Substitution is a
// single pass: tokens produced by a replacement are never re-expanded.
var placeholderPattern = regexp.MustCompile(`\{([A-Za-z_]+)\}`)

var titleCaser = cases.Title(language.Und)

// DefaultFormat returns the built-in format string for a field key.
func DefaultFormat(key FieldKey) string {
	if format, ok := fieldFormatDefaults[key]; ok {
		return format
	}
	return "{value}"
}

// FormatValue applies a format string to a raw field value. Placeholder
// names are case-insensitive; unknown placeholders are left literal.
// An empty raw value yields an empty string so static prefix text is
// suppressed on labels with no data for the field.
func FormatValue(format, raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}
	if format == "" {
		return value
	}
	result := placeholderPattern.ReplaceAllStringFunc(format, func(match string) string {
		name := strings.ToLower(match[1 : len(match)-1])
		switch name {
		case "value", "value_raw":
			return value
		case "value_upper":
			return strings.ToUpper(value)
		case "value_lower":
			return strings.ToLower(value)
		case "value_title":
			return titleCaser.String(strings.ToLower(value))
		case "value_number":
			return groupThousands(value)
		default:
			return match
		}
	})
	return strings.TrimSpace(result)
}

// groupThousands inserts comma separators into an integer string. Values
// that do not parse as integers are returned unchanged.
func groupThousands(value string) string {
	digits := strings.TrimPrefix(value, "-")
	if digits == "" {
		return value
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return value
		}
	}

	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	grouped := strings.Join(groups, ",")
	if strings.HasPrefix(value, "-") {
		grouped = "-" + grouped
	}
	return grouped
}

// FormatField formats a raw value for a field key using the template's
// format overrides. Lookup order: the key itself, then the base key for
// right-side fields, then the built-in default.
func FormatField(formats map[string]string, key FieldKey, raw string) string {
	format, ok := formats[string(key)]
	if !ok && key.IsRightSide() {
		format, ok = formats[string(key.BaseKey())]
	}
	if !ok || strings.TrimSpace(format) == "" {
		format = DefaultFormat(key)
	}
	return FormatValue(format, raw)
}

// NormalizeFormats resolves a format entry for every field key legal under
// the capabilities: the user-supplied non-empty trimmed format wins, the
// built-in default otherwise. Unknown keys are dropped, and the result
// never carries an empty format string.
func NormalizeFormats(raw map[string]string, caps Capabilities) map[string]string {
	normalized := make(map[string]string, len(raw))
	for _, key := range caps.AllowedKeys() {
		format := strings.TrimSpace(raw[string(key)])
		if format == "" && key.IsRightSide() {
			format = strings.TrimSpace(raw[string(key.BaseKey())])
		}
		if format == "" {
			format = DefaultFormat(key)
		}
		normalized[string(key)] = format
	}
	return normalized
}
