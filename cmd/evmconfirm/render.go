package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"evmconfirm/internal/addrbook"
	"evmconfirm/internal/chain"
	"evmconfirm/internal/coin"
	"evmconfirm/internal/config"
	"evmconfirm/internal/fixture"
	"evmconfirm/internal/locale"
	"evmconfirm/internal/storage"
	"evmconfirm/internal/txview"
)

const frameBatchSize = 64

// errSendNoResult is returned when the send finishes without a success or
// failure event.
var errSendNoResult = errors.New("send finished without result")

func runRender(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadRender(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.In == "" {
		return fmt.Errorf("input path is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	base, tokens, err := cfg.Coins()
	if err != nil {
		return err
	}
	registry := coin.NewRegistry(base, tokens...)

	book, err := addrbook.FromMap(cfg.Labels)
	if err != nil {
		return fmt.Errorf("labels: %w", err)
	}

	own, err := cfg.Own()
	if err != nil {
		return err
	}

	script, err := fixture.LoadFile(cfg.In)
	if err != nil {
		return err
	}

	if cfg.RPCURL != "" {
		if err := prefetchTokens(ctx, cfg, registry, script, logger); err != nil {
			return err
		}
	}

	logger.Info("render start",
		zap.String("in", cfg.In),
		zap.String("out", cfg.Out),
		zap.String("locale", catalog.Tag().String()),
		zap.String("base_coin", base.Code),
		zap.Int("tokens", len(tokens)),
		zap.Int("steps", len(script.Steps)),
		zap.Bool("send", cfg.Send),
	)

	var sink storage.Storage
	if cfg.Out != "" {
		sink = storage.NewJsonlStorage(cfg.Out)
	}

	return render(ctx, renderDeps{
		script:  script,
		own:     own,
		coins:   registry,
		labels:  book,
		catalog: catalog,
		sink:    sink,
		out:     cmd.OutOrStdout(),
		color:   cfg.Color,
		send:    cfg.Send,
		logger:  logger,
	})
}

type renderDeps struct {
	script  *fixture.Script
	own     common.Address
	coins   txview.CoinFactory
	labels  txview.AddressLabeler
	catalog txview.Localizer
	sink    storage.Storage
	out     io.Writer
	color   bool
	send    bool
	logger  *zap.Logger
}

// render replays the script through a view model and streams the frames it
// produces to the printer and the optional sink.
func render(ctx context.Context, deps renderDeps) error {
	runID := uuid.NewString()
	logger := deps.logger.With(zap.String("run_id", runID))

	service := fixture.NewService(deps.script, deps.own, logger.Named("fixture"))
	vm := txview.New(service, deps.coins, deps.labels, deps.catalog, logger.Named("txview"))

	g, gctx := errgroup.WithContext(ctx)
	frames := make(chan storage.Frame, frameBatchSize)
	rec := newRecorder(gctx, runID, vm, frames)

	g.Go(func() error {
		return writeFrames(newPrinter(deps.out, deps.color), deps.sink, frames)
	})

	var sendErr error
	g.Go(func() error {
		defer rec.Close()
		defer vm.Close()

		if err := service.Replay(gctx); err != nil {
			return fmt.Errorf("replay: %w", err)
		}
		if !deps.send {
			return nil
		}
		if !rec.SendEnabled() {
			logger.Warn("send skipped, transaction not ready")
			return nil
		}

		vm.Send(logger.Named("send"))
		done := make(chan struct{})
		go func() {
			service.Wait()
			close(done)
		}()

		e, err := awaitSend(gctx, rec.Terminal(), done)
		if err != nil {
			return err
		}
		if e.Kind == txview.SendEventFailed {
			sendErr = fmt.Errorf("send failed: %s", e.Message)
		}
		<-done
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	return sendErr
}

// awaitSend waits for the terminal send event. Events are delivered before the
// send goroutine exits, so once done is closed a missing event means none came.
func awaitSend(ctx context.Context, terminal <-chan txview.SendEvent, done <-chan struct{}) (txview.SendEvent, error) {
	select {
	case e := <-terminal:
		return e, nil
	case <-done:
		select {
		case e := <-terminal:
			return e, nil
		default:
			return txview.SendEvent{}, errSendNoResult
		}
	case <-ctx.Done():
		return txview.SendEvent{}, ctx.Err()
	}
}

func writeFrames(p *printer, sink storage.Storage, frames <-chan storage.Frame) error {
	batch := make([]storage.Frame, 0, frameBatchSize)
	flush := func() error {
		if sink == nil || len(batch) == 0 {
			return nil
		}
		if err := sink.PutFrameBatch(batch); err != nil {
			return fmt.Errorf("write frames: %w", err)
		}
		batch = batch[:0]
		return nil
	}

	for frame := range frames {
		if err := p.Print(frame); err != nil {
			return fmt.Errorf("print frame: %w", err)
		}
		batch = append(batch, frame)
		if len(batch) >= frameBatchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	return flush()
}

func loadCatalog(cfg config.RenderConfig) (*locale.Catalog, error) {
	var tables locale.Tables
	if cfg.LocaleFile != "" {
		loaded, err := locale.LoadFile(cfg.LocaleFile)
		if err != nil {
			return nil, err
		}
		tables = loaded
	}
	return locale.New(cfg.Locale, tables)
}

func prefetchTokens(ctx context.Context, cfg config.RenderConfig, registry *coin.Registry, script *fixture.Script, logger *zap.Logger) error {
	client, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer client.Close()

	err = chain.WithRetry(ctx, cfg.MaxRetries, cfg.RetryBackoff, func(ctx context.Context) error {
		chainID, err := client.ChainID(ctx)
		if err != nil {
			return err
		}
		logger.Info("rpc connected", zap.String("rpc", cfg.RPCURL), zap.String("chain_id", chainID.String()))
		return nil
	})
	if err != nil {
		return fmt.Errorf("chain id: %w", err)
	}

	limiter := chain.NewLimiter(cfg.RPCRate, cfg.RPCBurst)
	caller := chain.NewRetryCaller(client, limiter, cfg.MaxRetries, cfg.RetryBackoff)
	added := registry.Prefetch(ctx, caller, script.TokenContracts(), logger)
	logger.Info("token metadata prefetched", zap.Int("added", added))
	return nil
}
