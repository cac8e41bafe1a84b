// Package sapphire constructs confidential calls for a confidential
// smart-contract runtime: time-bounded, signed, optionally encrypted call
// envelopes the runtime can authenticate and decrypt.
//
// A confidential call is an off-chain query whose caller identity is
// established purely by signature. Each call is bound to a leash (a
// validity window over the signer's nonce and a recent block) and signed
// as EIP-712 typed data, so the runtime can reject stale or replayed
// calls. The serialized result travels in the call's data field.
//
// Basic usage:
//
//	client, err := ethclient.Dial(rpcURL)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	wallet, err := sapphire.NewWalletFromHex(privateKey, client)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cache := sapphire.NewCache()
//
//	pack, err := sapphire.NewSignedCallDataPack(ctx, sapphire.Call{
//	    From: wallet.Address(),
//	    To:   &contract,
//	    Data: calldata,
//	}, wallet, cache)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	payload, err := pack.Encode()
//
// To encrypt the call body, fetch the runtime's calldata public key and
// use EncryptEncode:
//
//	cipher, err := sapphire.NewEncryptingCipher(ctx, rpcClient)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	payload, err := pack.EncryptEncode(cipher)
//
// The Cache is explicit: construct one per process (or per signer) and
// pass it in. Leashes are reused across calls while their validity margin
// holds, so repeated queries skip redundant chain lookups.
package sapphire
