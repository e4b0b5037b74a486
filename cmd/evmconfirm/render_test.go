package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"evmconfirm/internal/addrbook"
	"evmconfirm/internal/coin"
	"evmconfirm/internal/fixture"
	"evmconfirm/internal/locale"
	"evmconfirm/internal/storage"
	"evmconfirm/internal/txview"
)

const transferFixture = `{"kind":"state","errors":[{"message":"insufficient funds for gas * price + value"}]}
{"kind":"data","status":"loading"}
{"kind":"data","tx":{"to":"0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"},"decoration":{"type":"transfer","to":"0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045","value":"25000000"},"additional_info":{"send":{"domain":"vitalik.eth"}}}
{"kind":"state","ready":true}
{"kind":"send","status":"sending"}
{"kind":"send","status":"sent","hash":"0x00000000000000000000000000000000000000000000000000000000000000ab"}
`

func testDeps(t *testing.T, script string, send bool) (renderDeps, *bytes.Buffer) {
	t.Helper()
	parsed, err := fixture.Load(strings.NewReader(script))
	require.NoError(t, err)

	usdc := common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	out := &bytes.Buffer{}
	return renderDeps{
		script: parsed,
		own:    common.HexToAddress("0x1111111111111111111111111111111111111111"),
		coins: coin.NewRegistry(
			coin.Coin{Code: "ETH", Title: "Ethereum", Decimals: 18},
			coin.Coin{Address: usdc, Code: "USDC", Title: "USD Coin", Decimals: 6},
		),
		labels:  addrbook.New(),
		catalog: locale.Default(),
		out:     out,
		send:    send,
		logger:  zap.NewNop(),
	}, out
}

func TestRenderPrintsScreens(t *testing.T) {
	deps, out := testDeps(t, transferFixture, false)
	require.NoError(t, render(context.Background(), deps))

	text := out.String()
	require.Contains(t, text, "Insufficient ETH balance to cover the fee.")
	require.Contains(t, text, "You Send:")
	require.Contains(t, text, "25 USDC")
	require.Contains(t, text, "vitalik.eth")
	require.Regexp(t, `send:\s+enabled`, text)
	require.NotContains(t, text, "success")
}

func TestRenderSendWritesFrames(t *testing.T) {
	deps, out := testDeps(t, transferFixture, true)
	path := filepath.Join(t.TempDir(), "frames.jsonl")
	deps.sink = storage.NewJsonlStorage(path)

	require.NoError(t, render(context.Background(), deps))
	require.Contains(t, out.String(), "success:")
	require.Contains(t, out.String(), common.HexToHash("0xab").Hex())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Contains(t, lines[len(lines)-1], `"event":{"kind":"success"`)
	require.Contains(t, string(data), `"event":{"kind":"sending"}`)

	var first struct {
		RunID string `json:"run_id"`
		Seq   int    `json:"seq"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.Equal(t, 1, first.Seq)
	_, err = uuid.Parse(first.RunID)
	require.NoError(t, err)
}

func TestRenderSendFailureReturnsError(t *testing.T) {
	script := `{"kind":"state","ready":true}
{"kind":"data","tx":{"to":"0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D","value":"1"}}
{"kind":"send","status":"sending"}
{"kind":"send","status":"failed","error":{"type":"execution_reverted"}}
`
	deps, out := testDeps(t, script, true)

	err := render(context.Background(), deps)
	require.EqualError(t, err, "send failed: The transaction would revert. Make sure you have enough ETH for the fee.")
	require.Contains(t, out.String(), "failed:")
}

func TestRenderSendWithoutResult(t *testing.T) {
	scripts := map[string]string{
		"sending only": `{"kind":"state","ready":true}
{"kind":"data","tx":{"to":"0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D","value":"1"}}
{"kind":"send","status":"sending"}
`,
		"idle only": `{"kind":"state","ready":true}
{"kind":"send","status":"idle"}
`,
	}
	for name, script := range scripts {
		t.Run(name, func(t *testing.T) {
			deps, _ := testDeps(t, script, true)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			start := time.Now()
			err := render(ctx, deps)
			require.ErrorIs(t, err, errSendNoResult)
			require.Less(t, time.Since(start), 5*time.Second)
		})
	}
}

func TestAwaitSendPrefersEventOverDone(t *testing.T) {
	terminal := make(chan txview.SendEvent, 1)
	done := make(chan struct{})
	terminal <- txview.SendEvent{Kind: txview.SendEventSuccess}
	close(done)

	for i := 0; i < 100; i++ {
		e, err := awaitSend(context.Background(), terminal, done)
		require.NoError(t, err)
		require.Equal(t, txview.SendEventSuccess, e.Kind)
		terminal <- e
	}
}

func TestRenderSkipsSendWhenNotReady(t *testing.T) {
	script := `{"kind":"state","errors":[{"type":"execution_reverted"}]}
{"kind":"send","status":"sent","hash":"0x00000000000000000000000000000000000000000000000000000000000000ab"}
`
	deps, out := testDeps(t, script, true)

	require.NoError(t, render(context.Background(), deps))
	require.NotContains(t, out.String(), "success")
}

func TestPrintFrame(t *testing.T) {
	var buf bytes.Buffer
	frame := storage.Frame{
		Seq:         3,
		SendEnabled: false,
		ErrorText:   "boom",
		Sections: []txview.SectionViewItem{
			{ViewItems: []txview.ViewItem{
				txview.Subhead{Title: "You Pay", Value: "Ethereum"},
				txview.Value{Title: "Amount", Value: "1 ETH", Type: txview.ValueOutgoing},
			}},
			{ViewItems: []txview.ViewItem{
				txview.Value{Title: "Slippage", Value: "0.5%", Type: txview.ValueRegular},
				txview.Address{Title: "Recipient", Value: "vitalik.eth", ValueTitle: "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045"},
				txview.Input{Value: "0x"},
			}},
		},
	}
	require.NoError(t, newPrinter(&buf, false).Print(frame))

	text := buf.String()
	require.True(t, strings.HasPrefix(text, "#3\n"))
	require.Contains(t, text, "(outgoing)")
	require.Contains(t, text, "  --\n")
	require.Contains(t, text, "vitalik.eth")
	require.Contains(t, text, "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045")
	require.Contains(t, text, "boom")
	require.Contains(t, text, "disabled")
}

func TestPrintFrameWithColor(t *testing.T) {
	var buf bytes.Buffer
	frame := storage.Frame{Seq: 1, Sections: []txview.SectionViewItem{{ViewItems: []txview.ViewItem{
		txview.Value{Title: "Amount", Value: "1 ETH", Type: txview.ValueIncoming},
	}}}}
	require.NoError(t, newPrinter(&buf, true).Print(frame))

	require.Contains(t, buf.String(), "\x1b[")
	require.NotContains(t, buf.String(), "(incoming)")
}
