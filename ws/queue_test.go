package ws

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func queuedClient(id string) *Client {
	return &Client{SocketID: id}
}

func TestWaitQueueFIFO(t *testing.T) {
	var q waitQueue

	for _, id := range []string{"a", "b", "c"} {
		_, paired := q.pairOrWait(waiter{client: queuedClient(id), name: id})
		require.False(t, paired)
	}

	require.Equal(t, 3, q.len())

	// the longest-waiting player is always paired first
	opp, paired := q.pairOrWait(waiter{client: queuedClient("d"), name: "d"})
	require.True(t, paired)
	require.Equal(t, "a", opp.client.SocketID)

	opp, paired = q.pairOrWait(waiter{client: queuedClient("e"), name: "e"})
	require.True(t, paired)
	require.Equal(t, "b", opp.client.SocketID)

	require.Equal(t, 1, q.len())
}

func TestWaitQueueRemove(t *testing.T) {
	var q waitQueue

	q.pairOrWait(waiter{client: queuedClient("a"), name: "a"})
	q.pairOrWait(waiter{client: queuedClient("b"), name: "b"})

	require.True(t, q.contains("a"))
	require.True(t, q.remove("a"))
	require.False(t, q.contains("a"))
	require.False(t, q.remove("a"))

	// b moved to the head
	opp, paired := q.pairOrWait(waiter{client: queuedClient("c"), name: "c"})
	require.True(t, paired)
	require.Equal(t, "b", opp.client.SocketID)
}
