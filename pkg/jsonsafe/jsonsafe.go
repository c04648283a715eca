// Package jsonsafe converts value graphs produced by the Ostium SDK layer
// into JSON-representable values. Exotic numeric and byte types (decimals,
// byte blobs, hashes, addresses) carry on-chain precision that must not leak
// through float64 JSON encoding, so everything non-trivial becomes a string.
package jsonsafe

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"
)

// HexEncoder is implemented by opaque values that render as hex (transaction
// hashes, receipts). The encoder normalises the result to a 0x prefix.
type HexEncoder interface {
	Hex() string
}

// Fielder is implemented by opaque SDK objects that expose their payload as a
// field mapping. This replaces duck-typed attribute walking with an explicit
// capability check.
type Fielder interface {
	Fields() map[string]any
}

// Encode recursively converts v into a JSON-safe value. Dispatch is by
// explicit type switch over a closed set of shapes; anything outside the set
// degrades to its string rendering.
func Encode(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case bool, string:
		return val
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return val
	case float32, float64:
		return val
	case decimal.Decimal:
		return decimalString(val)
	case *decimal.Decimal:
		if val == nil {
			return nil
		}
		return decimalString(*val)
	case []byte:
		return hexutil.Encode(val)
	case common.Address:
		return val.Hex()
	case common.Hash:
		return val.Hex()
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = Encode(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Encode(item)
		}
		return out
	case []map[string]any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Encode(item)
		}
		return out
	case []string:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = item
		}
		return out
	case Fielder:
		return Encode(val.Fields())
	case HexEncoder:
		return normalizeHex(val.Hex())
	case error:
		return val.Error()
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

// decimalString renders at the value's native scale, plain fixed-point,
// never scientific notation. String() collapses 12.50 to 12.5, so amounts
// with fractional digits go through StringFixed to keep trailing zeros.
func decimalString(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

// EncodeMap is a convenience for the common mapping payload shape.
func EncodeMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out, _ := Encode(m).(map[string]any)
	return out
}

// EncodeList is a convenience for list payloads; nil input yields an empty
// slice so responses always carry a JSON array.
func EncodeList(items []map[string]any) []any {
	out, _ := Encode(items).([]any)
	if out == nil {
		out = []any{}
	}
	return out
}

func normalizeHex(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s
	}
	return "0x" + s
}
