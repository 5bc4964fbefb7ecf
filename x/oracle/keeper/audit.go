package keeper

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	commontypes "github.com/payment-oracle/cosmos/types"
	"github.com/payment-oracle/cosmos/x/oracle/types"
)

// =============================================================================
// Audit Logging System
// =============================================================================

// SaveAuditLog saves an audit log entry with automatic ID assignment
func (k Keeper) SaveAuditLog(ctx sdk.Context, log commontypes.AuditLog) (uint64, error) {
	if err := log.Validate(); err != nil {
		return 0, errorsmod.Wrap(types.ErrInvalidAuditLog, err.Error())
	}
	store := ctx.KVStore(k.storeKey)

	// Get and increment the counter
	id := k.getCounter(ctx, types.AuditLogCounterKey) + 1
	k.setCounter(ctx, types.AuditLogCounterKey, id)

	log.ID = id
	log.BlockHeight = ctx.BlockHeight()
	if log.Timestamp == 0 {
		log.Timestamp = ctx.BlockTime().Unix()
	}

	bz, err := log.Marshal()
	if err != nil {
		return 0, err
	}

	// Store by ID (primary index)
	store.Set(types.GetAuditLogKey(id), bz)

	// Secondary indexes for time range, type and tx id queries
	store.Set(types.GetAuditLogByTimeKey(log.Timestamp, id), bz)
	store.Set(types.GetAuditLogByTypeKey(log.EventType, id), bz)
	if log.TxID != "" {
		store.Set(types.GetAuditLogByTxKey(log.TxID, id), bz)
	}

	k.Logger(ctx).Debug("audit log saved",
		"id", id,
		"event_type", log.EventType,
		"tx_id", log.TxID,
	)

	return id, nil
}

// GetAuditLog retrieves an audit log by ID
func (k Keeper) GetAuditLog(ctx sdk.Context, id uint64) (commontypes.AuditLog, bool) {
	bz := ctx.KVStore(k.storeKey).Get(types.GetAuditLogKey(id))
	if bz == nil {
		return commontypes.AuditLog{}, false
	}
	return mustUnmarshalAuditLog(bz), true
}

// GetAuditLogsByTimeRange retrieves audit logs within an inclusive time range
func (k Keeper) GetAuditLogsByTimeRange(ctx sdk.Context, startTime, endTime int64) []commontypes.AuditLog {
	store := ctx.KVStore(k.storeKey)
	iterator := store.Iterator(
		types.GetAuditLogTimeRangePrefix(startTime),
		types.GetAuditLogTimeRangePrefix(endTime+1),
	)
	return collectAuditLogs(iterator)
}

// GetAuditLogsByEventType retrieves audit logs by event type
func (k Keeper) GetAuditLogsByEventType(ctx sdk.Context, eventType string) []commontypes.AuditLog {
	store := ctx.KVStore(k.storeKey)
	return collectAuditLogs(storetypes.KVStorePrefixIterator(store, types.GetAuditLogByTypePrefix(eventType)))
}

// GetAuditLogsByTxID retrieves the audit trail of an external tx id
func (k Keeper) GetAuditLogsByTxID(ctx sdk.Context, txID string) []commontypes.AuditLog {
	store := ctx.KVStore(k.storeKey)
	return collectAuditLogs(storetypes.KVStorePrefixIterator(store, types.GetAuditLogByTxPrefix(txID)))
}

// GetAllAuditLogs retrieves all audit logs
func (k Keeper) GetAllAuditLogs(ctx sdk.Context) []commontypes.AuditLog {
	store := ctx.KVStore(k.storeKey)
	return collectAuditLogs(storetypes.KVStorePrefixIterator(store, types.AuditLogKeyPrefix))
}

// GetAuditLogCount returns the total count of audit logs
func (k Keeper) GetAuditLogCount(ctx sdk.Context) uint64 {
	return k.getCounter(ctx, types.AuditLogCounterKey)
}

// LogPaymentConfirmed logs a consensus-reached payment
func (k Keeper) LogPaymentConfirmed(ctx sdk.Context, payment commontypes.PendingPayment) error {
	log := commontypes.AuditLog{
		EventType: commontypes.AuditPaymentConfirmed,
		TxID:      payment.TxID,
		Details:   paymentDetails(payment),
	}

	_, err := k.SaveAuditLog(ctx, log)
	return err
}

// logTerminal records a terminal transition or dispatch outcome. Audit
// failures never fail the state transition itself.
func (k Keeper) logTerminal(ctx sdk.Context, eventType string, payment commontypes.PendingPayment, extra []commontypes.Attribute) {
	log := commontypes.AuditLog{
		EventType: eventType,
		TxID:      payment.TxID,
		Details:   append(paymentDetails(payment), extra...),
	}

	if _, err := k.SaveAuditLog(ctx, log); err != nil {
		k.Logger(ctx).Error("failed to save audit log", "event_type", eventType, "tx_id", payment.TxID, "error", err)
	}
}

func paymentDetails(payment commontypes.PendingPayment) []commontypes.Attribute {
	return []commontypes.Attribute{
		{Key: "sender_reference", Value: payment.SenderReference},
		{Key: "beneficiary", Value: payment.Beneficiary},
		{Key: "amount", Value: payment.Amount.String()},
		{Key: "action", Value: payment.Action.String()},
		{Key: "confirmations", Value: fmt.Sprintf("%d", len(payment.Confirmations))},
		{Key: "status", Value: payment.Status.String()},
	}
}

func collectAuditLogs(iterator storetypes.Iterator) []commontypes.AuditLog {
	defer iterator.Close()

	logs := make([]commontypes.AuditLog, 0)
	for ; iterator.Valid(); iterator.Next() {
		logs = append(logs, mustUnmarshalAuditLog(iterator.Value()))
	}
	return logs
}

func mustUnmarshalAuditLog(bz []byte) commontypes.AuditLog {
	var log commontypes.AuditLog
	if err := log.Unmarshal(bz); err != nil {
		panic(fmt.Errorf("failed to decode audit log: %w", err))
	}
	return log
}
