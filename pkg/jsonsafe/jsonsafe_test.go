package jsonsafe

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeReceipt struct {
	hash string
}

func (f fakeReceipt) Hex() string { return f.hash }

type fakeTradeResult struct {
	tx     []byte
	amount decimal.Decimal
}

func (f fakeTradeResult) Fields() map[string]any {
	return map[string]any{"tx": f.tx, "amount": f.amount}
}

func TestEncodePrimitives(t *testing.T) {
	require.Nil(t, Encode(nil))
	require.Equal(t, true, Encode(true))
	require.Equal(t, "abc", Encode("abc"))
	require.Equal(t, int64(42), Encode(int64(42)))
	require.Equal(t, 1.5, Encode(1.5))
}

func TestEncodeBytes(t *testing.T) {
	require.Equal(t, "0x0102", Encode([]byte{0x01, 0x02}))
}

func TestEncodeDecimalPlainString(t *testing.T) {
	d := decimal.RequireFromString("12.50")
	require.Equal(t, "12.50", Encode(d))

	// Large values must not pick up an exponent.
	big := decimal.RequireFromString("123456789012345678901234567890.000001")
	require.Equal(t, "123456789012345678901234567890.000001", Encode(big))
}

func TestEncodeDecimalKeepsTrailingZeros(t *testing.T) {
	cases := map[string]string{
		"0.500":  "0.500",
		"125.50": "125.50",
		"100.00": "100.00",
		"5":      "5",
		"-3.10":  "-3.10",
	}
	for in, want := range cases {
		d := decimal.RequireFromString(in)
		require.Equal(t, want, Encode(d), "value %s", in)
		require.Equal(t, want, Encode(&d), "pointer value %s", in)
	}
}

func TestEncodeHexEncoderNormalized(t *testing.T) {
	require.Equal(t, "0xdeadbeef", Encode(fakeReceipt{hash: "deadbeef"}))
	require.Equal(t, "0xdeadbeef", Encode(fakeReceipt{hash: "0xdeadbeef"}))
}

func TestEncodeAddressAndHash(t *testing.T) {
	addr := common.HexToAddress("0x52908400098527886E0F7030069857D2E4169EE7")
	require.Equal(t, addr.Hex(), Encode(addr))

	h := common.HexToHash("0x01")
	require.Equal(t, h.Hex(), Encode(h))
}

func TestEncodeNestedContainers(t *testing.T) {
	in := map[string]any{
		"tx":     []byte{0xab},
		"price":  decimal.RequireFromString("0.1"),
		"nested": []any{map[string]any{"raw": []byte{0x01, 0x02}}},
	}
	out, ok := Encode(in).(map[string]any)
	require.True(t, ok)
	require.Equal(t, "0xab", out["tx"])
	require.Equal(t, "0.1", out["price"])

	list := out["nested"].([]any)
	inner := list[0].(map[string]any)
	require.Equal(t, "0x0102", inner["raw"])
}

func TestEncodeFielderRecurses(t *testing.T) {
	res := fakeTradeResult{tx: []byte{0x0f}, amount: decimal.RequireFromString("100.25")}
	out, ok := Encode(res).(map[string]any)
	require.True(t, ok)
	require.Equal(t, "0x0f", out["tx"])
	require.Equal(t, "100.25", out["amount"])
}

func TestEncodeListNilSafe(t *testing.T) {
	require.Equal(t, []any{}, EncodeList(nil))

	out := EncodeList([]map[string]any{{"a": []byte{0x01}}})
	require.Len(t, out, 1)
	require.Equal(t, "0x01", out[0].(map[string]any)["a"])
}

func TestEncodeUnknownFallsBackToString(t *testing.T) {
	type opaque struct{ X int }
	require.Equal(t, "{7}", Encode(opaque{X: 7}))
}
