package types

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	commontypes "github.com/payment-oracle/cosmos/types"
)

// commandIDLen is the number of digest bytes kept in a command id
const commandIDLen = 16

type commandPayloadRLP struct {
	Contract  string
	Recipient string
	Tier      uint32
	OriginTx  string
}

type commandHashRLP struct {
	CommandID string
	Payload   commandPayloadRLP
}

// CommandID derives the id of the command minting tier for recipient on
// behalf of originTx. The same inputs always produce the same id.
func CommandID(contract, recipient string, tier uint32, originTx string) string {
	bz, err := rlp.EncodeToBytes(&commandPayloadRLP{
		Contract:  contract,
		Recipient: recipient,
		Tier:      tier,
		OriginTx:  originTx,
	})
	if err != nil {
		panic(fmt.Errorf("failed to encode command payload: %w", err))
	}
	return "cmd-" + hex.EncodeToString(crypto.Keccak256(bz)[:commandIDLen])
}

// CommandHash returns the 32-byte digest oracles sign for a command
func CommandHash(command commontypes.MintCommand) []byte {
	bz, err := rlp.EncodeToBytes(&commandHashRLP{
		CommandID: command.CommandID,
		Payload: commandPayloadRLP{
			Contract:  command.Contract,
			Recipient: command.Recipient,
			Tier:      command.Tier,
			OriginTx:  command.OriginTx,
		},
	})
	if err != nil {
		panic(fmt.Errorf("failed to encode command: %w", err))
	}
	return crypto.Keccak256(bz)
}

// RecoverSigner returns the account address whose key produced sig over
// hash. Both the 0/1 and the 27/28 recovery id conventions are accepted.
func RecoverSigner(hash, sig []byte) (sdk.AccAddress, error) {
	if len(sig) != crypto.SignatureLength {
		return nil, fmt.Errorf("signature must be %d bytes, got %d", crypto.SignatureLength, len(sig))
	}

	normalized := make([]byte, crypto.SignatureLength)
	copy(normalized, sig)
	if normalized[crypto.RecoveryIDOffset] >= 27 {
		normalized[crypto.RecoveryIDOffset] -= 27
	}

	r := new(big.Int).SetBytes(normalized[:32])
	s := new(big.Int).SetBytes(normalized[32:64])
	if !crypto.ValidateSignatureValues(normalized[crypto.RecoveryIDOffset], r, s, true) {
		return nil, fmt.Errorf("signature values out of range")
	}

	pub, err := crypto.SigToPub(hash, normalized)
	if err != nil {
		return nil, err
	}

	pubKey := &secp256k1.PubKey{Key: crypto.CompressPubkey(pub)}
	return sdk.AccAddress(pubKey.Address()), nil
}
