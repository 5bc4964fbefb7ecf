package types

import "context"

// MsgBurnCreditResponse defines the response for MsgBurnCredit
type MsgBurnCreditResponse struct {
	Remaining string `json:"remaining"`
}

// MsgTransferCreditResponse defines the response for MsgTransferCredit
type MsgTransferCreditResponse struct{}

// MsgServer defines the msg service for the rewards module
type MsgServer interface {
	BurnCredit(ctx context.Context, msg *MsgBurnCredit) (*MsgBurnCreditResponse, error)
	TransferCredit(ctx context.Context, msg *MsgTransferCredit) (*MsgTransferCreditResponse, error)
}
