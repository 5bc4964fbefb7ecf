package types

const (
	// ModuleName defines the module name
	ModuleName = "multisig"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName
)

// Store key prefixes
var (
	// MintCommandKeyPrefix is the prefix for mint command storage
	MintCommandKeyPrefix = []byte{0x01}

	// CommandStatusKeyPrefix indexes command ids by status
	CommandStatusKeyPrefix = []byte{0x02}
)

// GetMintCommandKey returns the store key for a mint command
func GetMintCommandKey(commandID string) []byte {
	return append(append([]byte{}, MintCommandKeyPrefix...), []byte(commandID)...)
}

// GetCommandStatusPrefix returns the index prefix of every command in a status
func GetCommandStatusPrefix(status uint8) []byte {
	return append(append([]byte{}, CommandStatusKeyPrefix...), status)
}

// GetCommandStatusKey returns the status index key of a command
func GetCommandStatusKey(status uint8, commandID string) []byte {
	return append(GetCommandStatusPrefix(status), []byte(commandID)...)
}
