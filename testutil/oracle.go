package testutil

import (
	"crypto/ecdsa"
	"sort"
	"testing"

	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

// OracleAccount is an oracle identity able to sign mint commands
type OracleAccount struct {
	Key     *ecdsa.PrivateKey
	Address string
}

// NewOracleAccount generates a fresh secp256k1 key and its account address
func NewOracleAccount(t testing.TB) OracleAccount {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	pubKey := &secp256k1.PubKey{Key: crypto.CompressPubkey(&key.PublicKey)}
	return OracleAccount{
		Key:     key,
		Address: sdk.AccAddress(pubKey.Address()).String(),
	}
}

// NewOracleAccounts generates n accounts sorted by address
func NewOracleAccounts(t testing.TB, n int) []OracleAccount {
	accounts := make([]OracleAccount, n)
	for i := range accounts {
		accounts[i] = NewOracleAccount(t)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Address < accounts[j].Address })
	return accounts
}

// Sign returns a 65-byte recoverable signature over hash
func (a OracleAccount) Sign(t testing.TB, hash []byte) []byte {
	sig, err := crypto.Sign(hash, a.Key)
	require.NoError(t, err)
	return sig
}

// Addresses returns the account addresses in order
func Addresses(accounts []OracleAccount) []string {
	addrs := make([]string, len(accounts))
	for i, a := range accounts {
		addrs[i] = a.Address
	}
	return addrs
}
