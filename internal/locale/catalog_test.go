package locale

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestDefaultCatalogHasEveryKey(t *testing.T) {
	c := Default()
	require.Equal(t, language.English, c.Tag())

	for key, msg := range english {
		if key == KeyErrInsufficientBalance || key == KeyErrInsufficientBalanceWithFee || key == KeyErrExecutionReverted {
			continue
		}
		require.Equal(t, msg, c.Localize(key), key)
	}
}

func TestLocalizeWithArgs(t *testing.T) {
	c := Default()

	require.Equal(t,
		"Insufficient balance. You need at least 1.5 ETH to send this transaction.",
		c.Localize(KeyErrInsufficientBalance, "1.5 ETH"),
	)
	require.Equal(t, "Insufficient ETH balance to cover the fee.", c.Localize(KeyErrInsufficientBalanceWithFee, "ETH"))
}

func TestOverridesAndFallback(t *testing.T) {
	c, err := New("de", Tables{
		"de": {KeySendAmount: "Betrag"},
	})
	require.NoError(t, err)
	require.Equal(t, "de", c.Tag().String())

	require.Equal(t, "Betrag", c.Localize(KeySendAmount))
	require.Equal(t, "Spender", c.Localize(KeyApproveSpender), "missing keys fall back to English")
}

func TestOverridesKeepLiteralPercent(t *testing.T) {
	c, err := New("de", Tables{"de": {
		KeySwapPriceImpact:      "Preisauswirkung %",
		KeySwapSlippage:         "Slippage (%s)",
		KeyErrExecutionReverted: "Die Transaktion scheitert, %s fehlt (100%%).",
	}})
	require.NoError(t, err)

	require.Equal(t, "Preisauswirkung %", c.Localize(KeySwapPriceImpact))
	require.Equal(t, "Slippage (%s)", c.Localize(KeySwapSlippage))
	require.Equal(t, "Die Transaktion scheitert, ETH fehlt (100%).", c.Localize(KeyErrExecutionReverted, "ETH"))
}

func TestUnknownLanguageFallsBackToEnglish(t *testing.T) {
	c, err := New("ja", Tables{"de": {KeySendAmount: "Betrag"}})
	require.NoError(t, err)
	require.Equal(t, "Amount", c.Localize(KeySendAmount))

	_, err = New("not a tag!", nil)
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locales.yaml")
	require.NoError(t, os.WriteFile(path, []byte("de:\n  send.confirmation.to: An\n"), 0o644))

	tables, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, "An", tables["de"][KeySendTo])

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
