package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/gagliardetto/solana-go/rpc"
)

const (
	DefaultTimeout   = 30
	DefaultInterval  = 2
	DefaultLamports  = uint64(1_000_000_000)
	EnvRpcUrl        = "SOLANA_RPC_URL"
	EnvMnemonic      = "SOLANA_MNEMONIC"
	DefaultChainName = "solana-devnet"
)

type Solana struct {
	Chain  string `toml:"chain"`
	RpcUrl string `toml:"rpc_url"`
	// Timeout of a single call in seconds.
	Timeout     int    `toml:"timeout"`
	UseSystemCa bool   `toml:"use_system_ca"`
	CaFile      string `toml:"ca_file"`
}

type Demo struct {
	// Seconds between two iterations of the demo loop.
	Interval int    `toml:"interval"`
	Lamports uint64 `toml:"lamports"`
	Mnemonic string `toml:"mnemonic"`
}

type Config struct {
	Solana Solana `toml:"solana"`
	Demo   Demo   `toml:"demo"`
}

func Default() Config {
	return Config{
		Solana: Solana{
			Chain:       DefaultChainName,
			RpcUrl:      rpc.DevNet_RPC,
			Timeout:     DefaultTimeout,
			UseSystemCa: true,
		},
		Demo: Demo{
			Interval: DefaultInterval,
			Lamports: DefaultLamports,
		},
	}
}

// Load reads a TOML config on top of the defaults. An empty path returns the defaults. Environment
// overrides are applied last.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg.applyEnv()
	cfg.fillDefaults()

	return cfg, nil
}

func (c *Config) applyEnv() {
	if url := os.Getenv(EnvRpcUrl); url != "" {
		c.Solana.RpcUrl = url
	}
	if mnemonic := os.Getenv(EnvMnemonic); mnemonic != "" {
		c.Demo.Mnemonic = mnemonic
	}
}

func (c *Config) fillDefaults() {
	if c.Solana.Chain == "" {
		c.Solana.Chain = DefaultChainName
	}
	if c.Solana.RpcUrl == "" {
		c.Solana.RpcUrl = rpc.DevNet_RPC
	}
	if c.Solana.Timeout <= 0 {
		c.Solana.Timeout = DefaultTimeout
	}
	if c.Demo.Interval <= 0 {
		c.Demo.Interval = DefaultInterval
	}
	if c.Demo.Lamports == 0 {
		c.Demo.Lamports = DefaultLamports
	}
}
