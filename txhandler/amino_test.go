package txhandler

import (
	"encoding/json"
	"strings"
	"testing"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	stakingtypes "github.com/cosmos/cosmos-sdk/x/staking/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZigZeron/CosmoWallet/types"
)

func testGasPrice() sdk.DecCoin {
	return sdk.NewDecCoinFromDec("uatom", sdkmath.LegacyMustNewDecFromStr("0.025"))
}

func TestAminoSignBytesCanonicalFieldOrder(t *testing.T) {
	fee := types.NewFee(200_000, testGasPrice())
	msg := &stakingtypes.MsgDelegate{
		DelegatorAddress: "cosmos1delegator",
		ValidatorAddress: "cosmosvaloper1abc",
		Amount:           sdk.NewCoin("uatom", sdkmath.NewInt(1_000_000)),
	}

	signBytes := AminoSignBytes("cosmoshub-4", 7, 42, fee, []sdk.Msg{msg}, "staking-memo")
	doc := string(signBytes)

	// Hardware devices reject docs whose keys are not sorted; the canonical
	// ordering below is what they render.
	fields := []string{`"account_number"`, `"chain_id"`, `"fee"`, `"memo"`, `"msgs"`, `"sequence"`}
	last := -1
	for _, f := range fields {
		idx := strings.Index(doc, f)
		require.GreaterOrEqual(t, idx, 0, "missing field %s", f)
		assert.Greater(t, idx, last, "field %s out of order", f)
		last = idx
	}

	assert.Contains(t, doc, `"chain_id":"cosmoshub-4"`)
	assert.Contains(t, doc, `"account_number":"7"`)
	assert.Contains(t, doc, `"sequence":"42"`)
	assert.Contains(t, doc, `"memo":"staking-memo"`)
	assert.NotContains(t, doc, " ", "sign bytes must be compact JSON")
}

func TestAminoSignBytesEncodesMsgTypeEnvelopes(t *testing.T) {
	fee := types.NewFee(200_000, testGasPrice())
	amount := sdk.NewCoin("aevmos", sdkmath.NewInt(1_000_000))

	delegate := AminoSignBytes("evmos_9001-2", 7, 42, fee,
		[]sdk.Msg{NewMsgDelegate("evmos1delegator", "evmosvaloper1abc", amount)}, "")
	assert.Contains(t, string(delegate), `"type":"cosmos-sdk/MsgDelegate"`)

	claims := AminoSignBytes("evmos_9001-2", 7, 43, fee,
		NewWithdrawRewardMsgs("evmos1delegator", []string{"evmosvaloper1abc", "evmosvaloper1def"}), "")
	assert.Equal(t, 2, strings.Count(string(claims), `"type":"cosmos-sdk/MsgWithdrawDelegationReward"`))

	redelegate := AminoSignBytes("evmos_9001-2", 7, 44, fee,
		[]sdk.Msg{NewMsgBeginRedelegate("evmos1delegator", "evmosvaloper1abc", "evmosvaloper1def", amount)}, "")
	assert.Contains(t, string(redelegate), `"type":"cosmos-sdk/MsgBeginRedelegate"`)
}

func TestAminoSignBytesDeterministic(t *testing.T) {
	fee := types.NewFee(200_000, testGasPrice())
	msg := &stakingtypes.MsgUndelegate{
		DelegatorAddress: "cosmos1delegator",
		ValidatorAddress: "cosmosvaloper1abc",
		Amount:           sdk.NewCoin("uatom", sdkmath.NewInt(5)),
	}

	a := AminoSignBytes("cosmoshub-4", 1, 2, fee, []sdk.Msg{msg}, "")
	b := AminoSignBytes("cosmoshub-4", 1, 2, fee, []sdk.Msg{msg}, "")
	assert.Equal(t, a, b)
}

func TestNormalizeAminoSignDocAcceptsCamelCase(t *testing.T) {
	raw := []byte(`{
		"chainId": "cosmoshub-4",
		"accountNumber": "9",
		"sequence": "3",
		"fee": {"amount": [{"amount": "100", "denom": "uatom"}], "gas": "200000"},
		"memo": "",
		"msgs": []
	}`)

	doc, err := NormalizeAminoSignDoc(raw, NormalizeOptions{GasPrice: testGasPrice()})
	require.NoError(t, err)
	assert.Equal(t, "cosmoshub-4", doc.ChainID)
	assert.Equal(t, "9", doc.AccountNumber)
	assert.Equal(t, "3", doc.Sequence)
}

func TestNormalizeAminoSignDocRewritesFee(t *testing.T) {
	raw := []byte(`{
		"chain_id": "cosmoshub-4",
		"account_number": "1",
		"sequence": "0",
		"fee": {"amount": [{"amount": "1", "denom": "uatom"}], "gas": "200000"},
		"memo": "",
		"msgs": []
	}`)

	doc, err := NormalizeAminoSignDoc(raw, NormalizeOptions{GasPrice: testGasPrice()})
	require.NoError(t, err)

	// 200000 * 0.025 = 5000
	require.Len(t, doc.Fee.Amount, 1)
	assert.Equal(t, "5000", doc.Fee.Amount[0].Amount)
	assert.Equal(t, "uatom", doc.Fee.Amount[0].Denom)
	assert.Equal(t, "200000", doc.Fee.Gas)
}

func TestNormalizeAminoSignDocGasOverride(t *testing.T) {
	raw := []byte(`{
		"chain_id": "cosmoshub-4",
		"account_number": "1",
		"sequence": "0",
		"fee": {"amount": [], "gas": "200000"},
		"memo": "",
		"msgs": []
	}`)

	doc, err := NormalizeAminoSignDoc(raw, NormalizeOptions{
		GasPrice: testGasPrice(),
		GasLimit: "400000",
	})
	require.NoError(t, err)
	assert.Equal(t, "400000", doc.Fee.Gas)
	assert.Equal(t, "10000", doc.Fee.Amount[0].Amount)
}

func TestNormalizeAminoSignDocPreferNoSetFee(t *testing.T) {
	raw := []byte(`{
		"chain_id": "cosmoshub-4",
		"account_number": "1",
		"sequence": "0",
		"fee": {"amount": [{"amount": "777", "denom": "uatom"}], "gas": "123456"},
		"memo": "",
		"msgs": []
	}`)

	doc, err := NormalizeAminoSignDoc(raw, NormalizeOptions{
		GasPrice:       testGasPrice(),
		PreferNoSetFee: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "777", doc.Fee.Amount[0].Amount, "dapp-provided fee must be kept")
	assert.Equal(t, "123456", doc.Fee.Gas)
}

func TestNormalizeAminoSignDocADR36KeepsFee(t *testing.T) {
	raw := []byte(`{
		"chain_id": "",
		"account_number": "0",
		"sequence": "0",
		"fee": {"amount": [], "gas": "0"},
		"memo": "",
		"msgs": []
	}`)

	doc, err := NormalizeAminoSignDoc(raw, NormalizeOptions{
		GasPrice: testGasPrice(),
		ADR36:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, "0", doc.Fee.Gas, "ADR-36 docs are signed as-is")
	assert.Empty(t, doc.Fee.Amount)
}

func TestNormalizeAminoSignDocMemoPolicy(t *testing.T) {
	raw := []byte(`{
		"chain_id": "cosmoshub-4",
		"account_number": "1",
		"sequence": "0",
		"fee": {"amount": [], "gas": "200000"},
		"memo": "dapp memo",
		"msgs": []
	}`)

	doc, err := NormalizeAminoSignDoc(raw, NormalizeOptions{
		GasPrice: testGasPrice(),
		Memo:     "wallet memo",
	})
	require.NoError(t, err)
	assert.Equal(t, "dapp memo", doc.Memo, "existing memo wins over the wallet default")
}

func TestAminoSignDocMarshalOrder(t *testing.T) {
	doc := AminoSignDoc{
		ChainID:       "cosmoshub-4",
		AccountNumber: "1",
		Sequence:      "0",
		Fee:           AminoFee{Gas: "200000"},
		Msgs:          []json.RawMessage{},
	}
	out, err := json.Marshal(doc)
	require.NoError(t, err)

	s := string(out)
	assert.Less(t, strings.Index(s, "chain_id"), strings.Index(s, "account_number"))
	assert.Less(t, strings.Index(s, "account_number"), strings.Index(s, "sequence"))
	assert.Less(t, strings.Index(s, "sequence"), strings.Index(s, "fee"))
	assert.Less(t, strings.Index(s, "fee"), strings.Index(s, "memo"))
	assert.Less(t, strings.Index(s, "memo"), strings.Index(s, "msgs"))
}
