package types

import (
	"context"

	commontypes "github.com/payment-oracle/cosmos/types"
)

// QueryCommandRequest asks for a mint command by id
type QueryCommandRequest struct {
	CommandID string `json:"command_id"`
}

// QueryCommandResponse carries a mint command and the digest to sign
type QueryCommandResponse struct {
	Command commontypes.MintCommand `json:"command"`
	Hash    string                  `json:"hash"`
}

// QueryCommandsRequest lists commands, optionally filtered by status
type QueryCommandsRequest struct {
	Status string `json:"status,omitempty"`
}

// QueryCommandsResponse lists commands in id order
type QueryCommandsResponse struct {
	Commands []commontypes.MintCommand `json:"commands"`
}

// QueryServer defines the query service for the multisig module
type QueryServer interface {
	Command(ctx context.Context, req *QueryCommandRequest) (*QueryCommandResponse, error)
	Commands(ctx context.Context, req *QueryCommandsRequest) (*QueryCommandsResponse, error)
}
