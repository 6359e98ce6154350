package connectivity

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEffectiveOnline(t *testing.T) {
	m := NewMonitor(zap.NewNop())
	require.True(t, m.Online(), "monitor assumes reachable until told otherwise")

	m.SetSimulatedOffline(true)
	require.False(t, m.Online(), "simulated offline overrides a reachable network")
	require.True(t, m.NetworkOnline())

	m.SetSimulatedOffline(false)
	m.SetNetworkOnline(false)
	require.False(t, m.Online())
}

func TestAutoSyncFlagArmsOnTrueEdgeOnly(t *testing.T) {
	m := NewMonitor(zap.NewNop())
	require.False(t, m.ConsumeAutoSync(), "no edge yet")

	m.SetNetworkOnline(false)
	require.False(t, m.ConsumeAutoSync(), "going offline must not arm the flag")

	m.SetNetworkOnline(true)
	require.True(t, m.ConsumeAutoSync())
	require.False(t, m.ConsumeAutoSync(), "flag is one-shot")

	// Repeated online events without an actual edge do not re-arm.
	m.SetNetworkOnline(true)
	require.False(t, m.ConsumeAutoSync())
}

func TestSimulatedToggleProducesEdges(t *testing.T) {
	m := NewMonitor(zap.NewNop())

	m.SetSimulatedOffline(true)
	m.SetSimulatedOffline(false)
	require.True(t, m.ConsumeAutoSync(), "clearing the simulated override is an offline->online edge")
}

func TestSubscribeAndUnsubscribe(t *testing.T) {
	m := NewMonitor(zap.NewNop())

	var got []bool
	unsubscribe := m.Subscribe(func(online bool) { got = append(got, online) })

	m.SetNetworkOnline(false)
	m.SetNetworkOnline(false) // no transition, no callback
	m.SetNetworkOnline(true)
	require.Equal(t, []bool{false, true}, got)

	unsubscribe()
	m.SetNetworkOnline(false)
	require.Len(t, got, 2, "unsubscribed listener must not fire")
}
