package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sisu-network/lib/log"
	"github.com/sisu-network/solrpc/chains/solana"
	"github.com/sisu-network/solrpc/config"
	"github.com/sisu-network/solrpc/network"
	"github.com/urfave/cli"
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "solrpc"
	app.Usage = "minimal Solana JSON-RPC client"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "config, c", Usage: "path to the TOML config file"},
	}
	app.Before = initialize
	app.Commands = []cli.Command{
		{
			Name:   "blockhash",
			Usage:  "print the latest confirmed blockhash",
			Action: printBlockhash,
		},
		{
			Name:      "send",
			Usage:     "submit a signed transaction",
			ArgsUsage: "<base64 transaction>",
			Action:    sendTransaction,
		},
		{
			Name:   "demo",
			Usage:  "repeatedly build, sign and submit a SOL transfer",
			Action: runDemo,
			Flags: []cli.Flag{
				cli.IntFlag{Name: "count", Usage: "stop after this many iterations (0 runs until interrupted)"},
			},
		},
		{
			Name:   "init",
			Usage:  "write a default config file",
			Action: writeConfig,
			Flags: []cli.Flag{
				cli.StringFlag{Name: "out, o", Value: "solana.toml"},
				cli.BoolFlag{Name: "force, f", Usage: "overwrite an existing file"},
			},
		},
	}

	return app
}

func initialize(ctx *cli.Context) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}

func loadClient(ctx *cli.Context) (config.Config, *solana.Client, error) {
	cfg, err := config.Load(ctx.GlobalString("config"))
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("cannot load config: %w", err)
	}

	transport, err := network.NewHttpTransport(cfg.Solana)
	if err != nil {
		return config.Config{}, nil, err
	}
	log.Info("Using solana rpc at ", cfg.Solana.RpcUrl)

	return cfg, solana.NewClient(solana.NewRpcClient(transport, cfg.Solana.RpcUrl)), nil
}

func printBlockhash(ctx *cli.Context) error {
	_, client, err := loadClient(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	hash, err := client.GetLatestBlockhash()
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	fmt.Fprintln(ctx.App.Writer, hash.String())
	return nil
}

func sendTransaction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.NewExitError("expected exactly one base64 encoded transaction", 1)
	}

	_, client, err := loadClient(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	signature, err := client.SendTransactionBase64(ctx.Args().First())
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	fmt.Fprintln(ctx.App.Writer, signature)
	return nil
}

func writeConfig(ctx *cli.Context) error {
	path := ctx.String("out")
	if _, err := os.Stat(path); err == nil && !ctx.Bool("force") {
		return cli.NewExitError(fmt.Sprintf("%s already exists", path), 1)
	}

	s, err := config.Render(config.Default())
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	if err := os.WriteFile(path, []byte(s), 0600); err != nil {
		return cli.NewExitError(err, 1)
	}

	log.Info("Config written to ", path)
	return nil
}

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(app.ErrWriter, err)
		os.Exit(1)
	}
}
