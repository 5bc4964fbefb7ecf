package types

import "context"

// MsgSignCommandResponse defines the response for MsgSignCommand
type MsgSignCommandResponse struct {
	SignatureCount int  `json:"signature_count"`
	ThresholdMet   bool `json:"threshold_met"`
}

// MsgExecuteCommandResponse defines the response for MsgExecuteCommand
type MsgExecuteCommandResponse struct{}

// MsgServer defines the msg service for the multisig module
type MsgServer interface {
	SignCommand(ctx context.Context, msg *MsgSignCommand) (*MsgSignCommandResponse, error)
	ExecuteCommand(ctx context.Context, msg *MsgExecuteCommand) (*MsgExecuteCommandResponse, error)
}
