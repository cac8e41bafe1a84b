package cli

import "github.com/urfave/cli/v2"

var (
	RPCURLFlag = &cli.StringFlag{
		Name:    "rpc-url",
		Usage:   "JSON-RPC URL of the runtime gateway (e.g. http://localhost:8545)",
		EnvVars: []string{"SAPPHIRE_RPC_URL"},
	}

	PrivateKeyFlag = &cli.StringFlag{
		Name:    "private-key",
		Usage:   "Hex-encoded secp256k1 signing key",
		EnvVars: []string{"SAPPHIRE_PRIVATE_KEY"},
	}

	MnemonicFlag = &cli.StringFlag{
		Name:    "mnemonic",
		Usage:   "BIP-39 mnemonic to derive the signing key from (alternative to --private-key)",
		EnvVars: []string{"SAPPHIRE_MNEMONIC"},
	}

	ToFlag = &cli.StringFlag{
		Name:  "to",
		Usage: "Contract address to call (omit for an unaddressed call)",
	}

	DataFlag = &cli.StringFlag{
		Name:  "data",
		Usage: "Hex-encoded call data",
	}

	GasLimitFlag = &cli.Uint64Flag{
		Name:  "gas-limit",
		Usage: "Gas limit for the call",
	}

	ChainIDFlag = &cli.Uint64Flag{
		Name:    "chain-id",
		Usage:   "Chain id override (skips the chain id query)",
		EnvVars: []string{"SAPPHIRE_CHAIN_ID"},
	}

	LeashNonceFlag = &cli.Uint64Flag{
		Name:  "leash-nonce",
		Usage: "Leash nonce ceiling override",
	}

	LeashBlockNumberFlag = &cli.Uint64Flag{
		Name:  "leash-block-number",
		Usage: "Leash anchor block number override (requires --leash-block-hash)",
	}

	LeashBlockHashFlag = &cli.StringFlag{
		Name:  "leash-block-hash",
		Usage: "Leash anchor block hash override",
	}

	LeashBlockRangeFlag = &cli.Uint64Flag{
		Name:  "leash-block-range",
		Usage: "Leash block validity window override",
	}

	EncryptFlag = &cli.BoolFlag{
		Name:  "encrypt",
		Usage: "Encrypt the call body to the runtime's calldata public key",
	}

	DebugFlag = &cli.BoolFlag{
		Name:    "debug",
		Usage:   "Enable debug logging",
		EnvVars: []string{"SAPPHIRE_DEBUG"},
	}
)
