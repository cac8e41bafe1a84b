// Command sapphire-call builds a signed (optionally encrypted) confidential
// call envelope and prints the hex payload to stdout.
package main

import (
	"context"
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	sapphire "github.com/party-for-illuminati/sapphire-paratime"
	clicfg "github.com/party-for-illuminati/sapphire-paratime/internal/cli"
)

func main() {
	app := &cli.App{
		Name:  "sapphire-call",
		Usage: "Construct a signed confidential call envelope",
		Flags: []cli.Flag{
			clicfg.RPCURLFlag,
			clicfg.PrivateKeyFlag,
			clicfg.MnemonicFlag,
			clicfg.ToFlag,
			clicfg.DataFlag,
			clicfg.GasLimitFlag,
			clicfg.ChainIDFlag,
			clicfg.LeashNonceFlag,
			clicfg.LeashBlockNumberFlag,
			clicfg.LeashBlockHashFlag,
			clicfg.LeashBlockRangeFlag,
			clicfg.EncryptFlag,
			clicfg.DebugFlag,
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	ctx := context.Background()
	cfg := clicfg.NewConfigFromCLI(c)

	logger, err := clicfg.NewLogger(cfg.Debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	var rpcClient *rpc.Client
	var backend sapphire.Backend
	if cfg.RPCURL != "" {
		rpcClient, err = rpc.DialContext(ctx, cfg.RPCURL)
		if err != nil {
			return fmt.Errorf("dial %s: %w", cfg.RPCURL, err)
		}
		defer rpcClient.Close()
		backend = ethclient.NewClient(rpcClient)
	}

	wallet, err := newWallet(cfg, backend)
	if err != nil {
		return err
	}
	logger.Debug("signer ready", zap.String("address", wallet.Address().Hex()))

	call, err := buildCall(cfg, wallet.Address())
	if err != nil {
		return err
	}
	opts, err := buildOptions(cfg)
	if err != nil {
		return err
	}

	pack, err := sapphire.NewSignedCallDataPack(ctx, call, wallet, sapphire.NewCache(), opts...)
	if err != nil {
		return err
	}
	logger.Debug("call signed",
		zap.Uint64("leash_nonce", pack.Leash.Nonce),
		zap.Uint64("leash_block", pack.Leash.BlockNumber),
		zap.Uint64("leash_range", pack.Leash.BlockRange),
	)

	var payload string
	if cfg.Encrypt {
		if rpcClient == nil {
			return fmt.Errorf("--encrypt requires --rpc-url to fetch the runtime public key")
		}
		cipher, err := sapphire.NewEncryptingCipher(ctx, rpcClient)
		if err != nil {
			return err
		}
		payload, err = pack.EncryptEncode(cipher)
		if err != nil {
			return err
		}
	} else {
		payload, err = pack.Encode()
		if err != nil {
			return err
		}
	}

	fmt.Println(payload)
	return nil
}

func newWallet(cfg *clicfg.Config, backend sapphire.Backend) (*sapphire.Wallet, error) {
	switch {
	case cfg.PrivateKey != "" && cfg.Mnemonic != "":
		return nil, fmt.Errorf("specify --private-key or --mnemonic, not both")
	case cfg.PrivateKey != "":
		return sapphire.NewWalletFromHex(cfg.PrivateKey, backend)
	case cfg.Mnemonic != "":
		return sapphire.NewWalletFromMnemonic(cfg.Mnemonic, backend)
	default:
		return nil, fmt.Errorf("a signing key is required (--private-key or --mnemonic)")
	}
}

func buildCall(cfg *clicfg.Config, from common.Address) (sapphire.Call, error) {
	call := sapphire.Call{
		From:     from,
		GasLimit: cfg.GasLimit,
	}
	if cfg.To != "" {
		if !common.IsHexAddress(cfg.To) {
			return sapphire.Call{}, fmt.Errorf("invalid --to address %q", cfg.To)
		}
		to := common.HexToAddress(cfg.To)
		call.To = &to
	}
	if cfg.Data != "" {
		data, err := hexutil.Decode(cfg.Data)
		if err != nil {
			return sapphire.Call{}, fmt.Errorf("invalid --data: %w", err)
		}
		call.Data = data
	}
	return call, nil
}

func buildOptions(cfg *clicfg.Config) ([]sapphire.CallOption, error) {
	var opts []sapphire.CallOption
	if cfg.ChainID != 0 {
		opts = append(opts, sapphire.WithChainID(new(big.Int).SetUint64(cfg.ChainID)))
	}
	if cfg.LeashNonceSet {
		opts = append(opts, sapphire.WithLeashNonce(cfg.LeashNonce))
	}
	if cfg.LeashBlockSet {
		if cfg.LeashBlockHash == "" {
			return nil, fmt.Errorf("--leash-block-number requires --leash-block-hash")
		}
		opts = append(opts, sapphire.WithLeashBlock(cfg.LeashBlockNumber, common.HexToHash(cfg.LeashBlockHash)))
	}
	if cfg.LeashRangeSet {
		opts = append(opts, sapphire.WithLeashBlockRange(cfg.LeashBlockRange))
	}
	return opts, nil
}
