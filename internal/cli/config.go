package cli

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

type Config struct {
	RPCURL     string
	PrivateKey string
	Mnemonic   string

	To       string
	Data     string
	GasLimit uint64
	ChainID  uint64

	LeashNonce       uint64
	LeashNonceSet    bool
	LeashBlockNumber uint64
	LeashBlockSet    bool
	LeashBlockHash   string
	LeashBlockRange  uint64
	LeashRangeSet    bool

	Encrypt bool
	Debug   bool
}

func NewConfigFromCLI(c *cli.Context) *Config {
	return &Config{
		RPCURL:     c.String(RPCURLFlag.Name),
		PrivateKey: c.String(PrivateKeyFlag.Name),
		Mnemonic:   c.String(MnemonicFlag.Name),

		To:       c.String(ToFlag.Name),
		Data:     c.String(DataFlag.Name),
		GasLimit: c.Uint64(GasLimitFlag.Name),
		ChainID:  c.Uint64(ChainIDFlag.Name),

		LeashNonce:       c.Uint64(LeashNonceFlag.Name),
		LeashNonceSet:    c.IsSet(LeashNonceFlag.Name),
		LeashBlockNumber: c.Uint64(LeashBlockNumberFlag.Name),
		LeashBlockSet:    c.IsSet(LeashBlockNumberFlag.Name),
		LeashBlockHash:   c.String(LeashBlockHashFlag.Name),
		LeashBlockRange:  c.Uint64(LeashBlockRangeFlag.Name),
		LeashRangeSet:    c.IsSet(LeashBlockRangeFlag.Name),

		Encrypt: c.Bool(EncryptFlag.Name),
		Debug:   c.Bool(DebugFlag.Name),
	}
}

func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
