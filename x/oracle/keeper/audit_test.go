package keeper_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	commontypes "github.com/payment-oracle/cosmos/types"
	"github.com/payment-oracle/cosmos/x/oracle/types"
)

func TestAuditIndexesDoNotOverlap(t *testing.T) {
	f := newFixture(t, 1, 1)

	for _, txID := range []string{"abc", "abc/evil", "ab"} {
		_, err := f.submit(newConfirmation(txID, 1000, commontypes.NewLotteryTicketAction(1)), f.oracles[0])
		require.NoError(t, err)
	}

	logs := f.k.GetAuditLogsByTxID(f.ctx, "abc")
	require.NotEmpty(t, logs)
	for _, log := range logs {
		require.Equal(t, "abc", log.TxID)
	}
	require.Len(t, f.k.GetAuditLogsByTxID(f.ctx, "abc/evil"), len(logs))
	require.Empty(t, f.k.GetAuditLogsByTxID(f.ctx, "a"))

	// an event type that extends another one has its own index
	_, err := f.k.SaveAuditLog(f.ctx, commontypes.AuditLog{EventType: commontypes.AuditPaymentConfirmed + "/x", TxID: "abc"})
	require.NoError(t, err)
	for _, log := range f.k.GetAuditLogsByEventType(f.ctx, commontypes.AuditPaymentConfirmed) {
		require.Equal(t, commontypes.AuditPaymentConfirmed, log.EventType)
	}
	require.Len(t, f.k.GetAuditLogsByEventType(f.ctx, commontypes.AuditPaymentConfirmed+"/x"), 1)
}

func TestSaveAuditLogRejectsUnindexableFields(t *testing.T) {
	f := newFixture(t, 1, 1)
	count := f.k.GetAuditLogCount(f.ctx)

	_, err := f.k.SaveAuditLog(f.ctx, commontypes.AuditLog{})
	require.ErrorIs(t, err, types.ErrInvalidAuditLog)

	_, err = f.k.SaveAuditLog(f.ctx, commontypes.AuditLog{
		EventType: commontypes.AuditPaymentConfirmed,
		TxID:      strings.Repeat("a", commontypes.MaxTxIDLength+1),
	})
	require.ErrorIs(t, err, types.ErrInvalidAuditLog)
	require.Equal(t, count, f.k.GetAuditLogCount(f.ctx))
}
