package types

import (
	"context"

	"cosmossdk.io/math"

	commontypes "github.com/payment-oracle/cosmos/types"
)

// Balance is a holder's amount of one denom
type Balance struct {
	Holder string   `json:"holder"`
	Denom  string   `json:"denom"`
	Amount math.Int `json:"amount"`
}

// QueryBalanceRequest asks for one balance
type QueryBalanceRequest struct {
	Holder string `json:"holder"`
	Denom  string `json:"denom"`
}

// QueryBalanceResponse answers QueryBalanceRequest
type QueryBalanceResponse struct {
	Balance Balance `json:"balance"`
}

// QueryBalancesRequest asks for every balance of a holder
type QueryBalancesRequest struct {
	Holder string `json:"holder"`
}

// QueryBalancesResponse lists balances in denom order
type QueryBalancesResponse struct {
	Balances []Balance `json:"balances"`
}

// QueryCreditRequest asks for the credit an origin tx produced
type QueryCreditRequest struct {
	OriginTx string `json:"origin_tx"`
	Denom    string `json:"denom"`
}

// QueryCreditResponse answers QueryCreditRequest
type QueryCreditResponse struct {
	Credit commontypes.Credit `json:"credit"`
}

// QuerySupplyRequest asks for the outstanding supply of a denom
type QuerySupplyRequest struct {
	Denom string `json:"denom"`
}

// QuerySupplyResponse answers QuerySupplyRequest
type QuerySupplyResponse struct {
	Amount math.Int `json:"amount"`
}

// QueryServer defines the query service for the rewards module
type QueryServer interface {
	Balance(ctx context.Context, req *QueryBalanceRequest) (*QueryBalanceResponse, error)
	Balances(ctx context.Context, req *QueryBalancesRequest) (*QueryBalancesResponse, error)
	Credit(ctx context.Context, req *QueryCreditRequest) (*QueryCreditResponse, error)
	Supply(ctx context.Context, req *QuerySupplyRequest) (*QuerySupplyResponse, error)
}
