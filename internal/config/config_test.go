package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"evmconfirm/internal/coin"
)

const renderYAML = `
in: ./fixtures/swap.jsonl
own-address: "0x1111111111111111111111111111111111111111"
base-coin:
  code: BNB
  title: BNB Chain
  decimals: 18
tokens:
  - address: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
    code: USDC
    title: USD Coin
    decimals: 6
  - address: "0x6B175474E89094C44Da98b954EedeAC495271d0F"
    code: DAI
    decimals: 18
labels:
  "0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D": "Uniswap V2: Router"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadRenderFromFile(t *testing.T) {
	cfg, err := LoadRender(writeConfig(t, renderYAML), nil)
	require.NoError(t, err)

	require.Equal(t, "./fixtures/swap.jsonl", cfg.In)
	require.Equal(t, "en", cfg.Locale)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, 3, cfg.MaxRetries)
	require.Equal(t, 250*time.Millisecond, cfg.RetryBackoff)
	require.Equal(t, 5.0, cfg.RPCRate)
	require.Equal(t, 10, cfg.RPCBurst)
	require.False(t, cfg.Color)
	require.Equal(t, CoinConfig{Code: "BNB", Title: "BNB Chain", Decimals: 18}, cfg.BaseCoin)
	require.Len(t, cfg.Tokens, 2)
	// viper lowercases map keys
	require.Equal(t, map[string]string{"0x7a250d5630b4cf539739df2c5dacb4c659f2488d": "Uniswap V2: Router"}, cfg.Labels)

	base, tokens, err := cfg.Coins()
	require.NoError(t, err)
	require.Equal(t, coin.Coin{Code: "BNB", Title: "BNB Chain", Decimals: 18}, base)
	require.Equal(t, []coin.Coin{
		{Address: common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"), Code: "USDC", Title: "USD Coin", Decimals: 6},
		{Address: common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F"), Code: "DAI", Title: "DAI", Decimals: 18},
	}, tokens)

	own, err := cfg.Own()
	require.NoError(t, err)
	require.Equal(t, common.HexToAddress("0x1111111111111111111111111111111111111111"), own)
}

func TestLoadRenderFlagsAndEnv(t *testing.T) {
	t.Setenv("EVMCONFIRM_LOCALE", "de")
	t.Setenv("EVMCONFIRM_BASE_COIN_CODE", "MATIC")

	flags := pflag.NewFlagSet("render", pflag.ContinueOnError)
	flags.String("in", "", "")
	flags.Bool("send", false, "")
	flags.StringToString("labels", nil, "")
	require.NoError(t, flags.Parse([]string{
		"--in", "events.jsonl",
		"--send",
		"--labels", "0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D=Router",
	}))

	cfg, err := LoadRender(writeConfig(t, "log-level: debug\n"), flags)
	require.NoError(t, err)

	require.Equal(t, "events.jsonl", cfg.In)
	require.True(t, cfg.Send)
	require.Equal(t, "de", cfg.Locale)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "MATIC", cfg.BaseCoin.Code)
	require.Equal(t, "Router", cfg.Labels["0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D"])
}

func TestCoinsRejectsBadTokens(t *testing.T) {
	cfg := RenderConfig{BaseCoin: CoinConfig{Code: "ETH"}, Tokens: []CoinConfig{{Address: "0x12", Code: "X"}}}
	_, _, err := cfg.Coins()
	require.ErrorContains(t, err, "invalid token address")

	cfg.Tokens = []CoinConfig{{Address: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"}}
	_, _, err = cfg.Coins()
	require.ErrorContains(t, err, "code is required")

	base, _, err := RenderConfig{BaseCoin: CoinConfig{Code: "ETH", Decimals: 18}}.Coins()
	require.NoError(t, err)
	require.Equal(t, "ETH", base.Title)

	_, _, err = RenderConfig{}.Coins()
	require.Error(t, err)
}

func TestCoinsRejectsOutOfRangeDecimals(t *testing.T) {
	_, _, err := RenderConfig{BaseCoin: CoinConfig{Code: "ETH", Decimals: 300}}.Coins()
	require.EqualError(t, err, "base coin ETH: decimals 300 out of range 0-255")

	cfg := RenderConfig{
		BaseCoin: CoinConfig{Code: "ETH", Decimals: 18},
		Tokens:   []CoinConfig{{Address: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", Code: "USDC", Decimals: -1}},
	}
	_, _, err = cfg.Coins()
	require.ErrorContains(t, err, "decimals -1 out of range")

	cfg.Tokens[0].Decimals = 255
	_, tokens, err := cfg.Coins()
	require.NoError(t, err)
	require.Equal(t, uint8(255), tokens[0].Decimals)
}

func TestLoadRenderKeepsLargeDecimals(t *testing.T) {
	cfg, err := LoadRender(writeConfig(t, "base-coin:\n  code: ETH\n  decimals: 300\n"), nil)
	require.NoError(t, err)
	require.Equal(t, 300, cfg.BaseCoin.Decimals)

	_, _, err = cfg.Coins()
	require.ErrorContains(t, err, "out of range")
}

func TestOwnRejectsInvalidAddress(t *testing.T) {
	_, err := RenderConfig{OwnAddress: "vitalik.eth"}.Own()
	require.Error(t, err)

	own, err := RenderConfig{}.Own()
	require.NoError(t, err)
	require.Equal(t, common.Address{}, own)
}

func TestParseStringMap(t *testing.T) {
	require.Equal(t, map[string]string{"a": "1", "b": "2"}, parseStringMap(" a=1, b = 2 ,bad, =x"))
	require.Empty(t, parseStringMap(""))
}

func TestLoadRenderMissingExplicitFile(t *testing.T) {
	_, err := LoadRender(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.ErrorContains(t, err, "read config")
}
