// mnengined wires the masternode payment and governance-block subsystem
// into a standalone process: it loads configuration, constructs the
// PaymentEngine, GovernanceTriggerManager, BlockPaymentGate, and Scheduler,
// and runs until an interrupt signal arrives. Grounded on the
// realMain/main split and panics.HandlePanic usage in
// kaspanet-kaspad/stability-tests/simple-sync/main.go.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/pkg/errors"

	"github.com/dashpay/mnengine/config"
	"github.com/dashpay/mnengine/crypto"
	"github.com/dashpay/mnengine/gate"
	"github.com/dashpay/mnengine/governance"
	"github.com/dashpay/mnengine/logs"
	"github.com/dashpay/mnengine/panics"
	"github.com/dashpay/mnengine/payments"
	"github.com/dashpay/mnengine/peerscore"
	"github.com/dashpay/mnengine/scheduler"
)

var log = logs.RegisterSubSystem("MAIN")

func main() {
	defer panics.HandlePanic(log, nil)

	if err := realMain(); err != nil {
		log.Criticalf("mnengined exiting: %+v", err)
		os.Exit(1)
	}
}

func realMain() error {
	cfg, _, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "error loading config")
	}

	if err := logs.DefaultBackend().AddLogFile(cfg.LogFile, logs.LevelInfo); err != nil {
		log.Warnf("could not open log file, logging to stdout only: %s", err)
	}
	if err := logs.DefaultBackend().AddLogFile(cfg.ErrLogFile, logs.LevelError); err != nil {
		log.Warnf("could not open error log file: %s", err)
	}

	registry := newStandaloneRegistry()
	objects := newStandaloneObjectStore()
	scores := peerscore.NewTable()

	engine := payments.New(cfg.Params, registry, scores)
	if cfg.SelfOutpoint != nil {
		privKey := cfg.SelfPrivKey
		engine.SetSelfIdentity(*cfg.SelfOutpoint, func(digest []byte) []byte {
			return signDigest(privKey, digest)
		})
		log.Infof("running as masternode %s", cfg.SelfOutpoint)
	}

	// g is the BlockPaymentGate a host chain-consensus process calls into
	// on every candidate block (IsBlockValueValid, IsBlockPayeeValid, Fill,
	// NotifyBlockAccepted). This standalone process has no block source of
	// its own, so it only constructs and configures the gate here; wiring
	// it to an actual block-acceptance loop is the embedding host's job.
	triggers := governance.NewTriggerManager(cfg.Params, objects)
	g := gate.New(cfg.Params, engine, triggers, registry)
	g.SetEnforceMasternodePayments(!cfg.DisableEnforcement)

	sched := scheduler.New(engine, triggers, func(v *payments.Vote) {
		log.Debugf("relaying self vote for height %d (voter %s)", v.Height, v.Voter)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Infof("received signal %s, shutting down", sig)
		cancel()
	}()

	go sched.Run(ctx, engine.Tip, time.Duration(cfg.SweepIntervalSecs)*time.Second)

	log.Infof("mnengined started on %s", cfg.Params.Name)
	<-ctx.Done()
	log.Infof("mnengined stopped")
	return nil
}

// signDigest signs digest with privKey using the raw-hash scheme; the
// legacy message-string scheme is signed the same way once votingloop.go
// has already reduced its message to a digest, since SelfIdentity.SignVote
// only ever sees a digest, never a raw message.
func signDigest(privKey *btcec.PrivateKey, digest []byte) []byte {
	return crypto.SignRawHash(privKey, digest)
}
