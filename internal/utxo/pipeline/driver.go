// Package pipeline drives block pipeline stages.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	bclock "github.com/benbjohnson/clock"
	"github.com/goodnatureofminers/blockinsight7000-graph/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-graph/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-graph/internal/utxo/model"
	"go.uber.org/zap"
)

const (
	defaultIdleSleep = 5 * time.Second
	defaultBackoff   = 5 * time.Second
)

// Driver repeatedly selects the next eligible block of a stage, processes it and persists
// the status the stage reports. Failed iterations are retried after a backoff.
type Driver struct {
	logger     *zap.Logger
	stage      chain.Stage
	repo       StatusRepository
	heights    HeightSource
	metrics    Metrics
	onImported func(model.Block)
	// blockSignal, when set, cuts idle waits short as soon as a new block is announced.
	blockSignal <-chan struct{}

	sleep             func(context.Context, time.Duration) error
	clk               bclock.Clock
	idleSleepDuration time.Duration
	backoffDuration   time.Duration

	mu         sync.RWMutex
	lastErr    error
	lastHeight uint64
	processed  bool
}

// NewDriver builds a Driver for stage. heights, onImported and blockSignal are optional;
// onImported runs after the status of every processed block is persisted.
func NewDriver(
	stage chain.Stage,
	repo StatusRepository,
	heights HeightSource,
	metrics Metrics,
	idleSleep, backoff time.Duration,
	onImported func(model.Block),
	blockSignal <-chan struct{},
	logger *zap.Logger,
) (*Driver, error) {
	if stage == nil {
		return nil, errors.New("stage is required")
	}
	if repo == nil {
		return nil, errors.New("status repository is required")
	}
	if metrics == nil {
		return nil, errors.New("driver metrics is required")
	}
	if idleSleep <= 0 {
		idleSleep = defaultIdleSleep
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{
		logger:            logger.With(zap.String("stage", stage.Name())),
		stage:             stage,
		repo:              repo,
		heights:           heights,
		metrics:           metrics,
		onImported:        onImported,
		blockSignal:       blockSignal,
		sleep:             clock.SleepWithContext,
		clk:               bclock.New(),
		idleSleepDuration: idleSleep,
		backoffDuration:   backoff,
	}, nil
}

// Run drives the stage until the context is canceled.
func (d *Driver) Run(ctx context.Context) error {
	d.logger.Info("stage driver started")
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err := d.run(ctx)
		d.record(err)
		if err != nil {
			d.logger.Warn("run iteration failed, backing off", zap.Error(err), zap.Duration("sleep", d.backoffDuration))
			if sleepErr := d.sleep(ctx, d.backoffDuration); sleepErr != nil {
				return sleepErr
			}
		}
	}
}

func (d *Driver) run(ctx context.Context) error {
	name := d.stage.Name()

	started := time.Now()
	height, ok, err := d.stage.SelectNext(ctx)
	d.metrics.ObserveSelect(name, err, started)
	if err != nil {
		d.logger.Error("select next block failed", zap.Error(err))
		return fmt.Errorf("select next block: %w", err)
	}
	if !ok {
		d.logger.Debug("no eligible block; sleeping", zap.Duration("sleep", d.idleSleepDuration))
		return d.wait(ctx, d.idleSleepDuration)
	}

	logger := d.logger.With(zap.Uint64("height", height))
	started = time.Now()
	block, err := d.stage.Process(ctx, height)
	if err == nil {
		block.Status = d.stage.NextState()
		if err = d.repo.SaveBlockStatus(ctx, block); err != nil {
			err = fmt.Errorf("save block status: %w", err)
		}
	}
	d.metrics.ObserveProcess(name, err, started)
	if err != nil {
		logger.Error("process block failed", zap.Error(err))
		return fmt.Errorf("process block %d: %w", height, err)
	}
	logger.Info("block processed",
		zap.String("status", string(block.Status)),
		zap.Duration("elapsed", time.Since(started)),
	)

	d.mu.Lock()
	d.lastHeight = height
	d.processed = true
	d.mu.Unlock()

	if d.onImported != nil {
		d.onImported(block)
	}
	d.observeLag(ctx, height)
	return nil
}

func (d *Driver) wait(ctx context.Context, dur time.Duration) error {
	if d.blockSignal == nil {
		return d.sleep(ctx, dur)
	}
	woken, err := clock.Wait(ctx, d.clk, dur, d.blockSignal)
	if woken {
		d.logger.Debug("woken by block signal")
	}
	return err
}

func (d *Driver) observeLag(ctx context.Context, height uint64) {
	if d.heights == nil {
		return
	}
	latest, err := d.heights.LatestHeight(ctx)
	if err != nil {
		d.logger.Warn("latest height unavailable", zap.Error(err))
		return
	}
	var lag uint64
	if latest > height {
		lag = latest - height
	}
	d.metrics.ObserveLag(d.stage.Name(), lag)
}

func (d *Driver) record(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastErr = err
}

// Name returns the driven stage name.
func (d *Driver) Name() string {
	return d.stage.Name()
}

// Healthy reports whether the last iteration succeeded.
func (d *Driver) Healthy() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lastErr == nil
}

// LastError returns the error of the last iteration, if any.
func (d *Driver) LastError() error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lastErr
}

// LastHeight returns the last processed height; ok is false until a block is processed.
func (d *Driver) LastHeight() (height uint64, ok bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lastHeight, d.processed
}
