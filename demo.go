package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/sisu-network/lib/log"
	"github.com/sisu-network/solrpc/chains/solana"
	"github.com/sisu-network/solrpc/config"
	"github.com/urfave/cli"
	"go.uber.org/atomic"
)

type demoStats struct {
	sent   atomic.Uint64
	failed atomic.Uint64
}

func demoKey(cfg config.Demo) (solanago.PrivateKey, error) {
	if cfg.Mnemonic != "" {
		return solana.KeyFromMnemonic(cfg.Mnemonic)
	}

	return solanago.NewRandomPrivateKey()
}

func runDemo(ctx *cli.Context) error {
	cfg, client, err := loadClient(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	key, err := demoKey(cfg.Demo)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	log.Info("Keypair for demo: ", key.PublicKey())

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	ticker := time.NewTicker(time.Duration(cfg.Demo.Interval) * time.Second)
	defer ticker.Stop()

	stats := &demoStats{}
	count := ctx.Int("count")
	for i := 0; count == 0 || i < count; i++ {
		select {
		case <-stop:
			log.Infof("Demo stopped, sent = %d, failed = %d", stats.sent.Load(), stats.failed.Load())
			return nil
		case <-ticker.C:
		}

		demoStep(client, key, cfg.Demo.Lamports, stats)
	}

	log.Infof("Demo finished, sent = %d, failed = %d", stats.sent.Load(), stats.failed.Load())
	return nil
}

// demoStep fetches a blockhash, transfers lamports to a fresh account and submits the transaction.
func demoStep(client *solana.Client, key solanago.PrivateKey, lamports uint64, stats *demoStats) {
	blockhash, err := client.GetLatestBlockhash()
	if err != nil {
		log.Warn("Failed to get blockhash: ", err)
		stats.failed.Inc()
		return
	}
	log.Info("Latest blockhash: ", blockhash)

	to := solanago.NewWallet().PublicKey()
	tx, err := solana.BuildTransfer(key, to, lamports, blockhash)
	if err != nil {
		log.Error("Failed to build transaction: ", err)
		stats.failed.Inc()
		return
	}
	log.Verbose("Signed transaction: ", tx)

	signature, err := client.SendTransaction(tx)
	if err != nil {
		log.Error("Failed to send transaction: ", err)
		stats.failed.Inc()
		return
	}

	stats.sent.Inc()
	log.Info("Transaction sent successfully, signature = ", signature)
}
