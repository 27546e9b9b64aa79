package ws

import "github.com/samber/lo"

// waiter is one queued player: a connection plus the display name it gave
// in CONNECT.
type waiter struct {
	client *Client
	name   string
}

// waitQueue is the FIFO of players waiting for an opponent. It is owned by
// the Manager and only touched under the Manager's lock, which makes the
// pair-or-wait decision atomic with room creation: two concurrent joiners
// can never both see an empty queue, nor both claim the same opponent.
type waitQueue struct {
	entries []waiter
}

// pairOrWait pops the longest-waiting player as the opponent, or enqueues w
// when nobody is waiting.
func (q *waitQueue) pairOrWait(w waiter) (waiter, bool) {
	if len(q.entries) == 0 {
		q.entries = append(q.entries, w)
		return waiter{}, false
	}

	opponent := q.entries[0]
	q.entries = q.entries[1:]

	return opponent, true
}

func (q *waitQueue) contains(socketID string) bool {
	return lo.ContainsBy(q.entries, func(w waiter) bool {
		return w.client.SocketID == socketID
	})
}

// remove drops a player from the queue, reporting whether they were queued.
func (q *waitQueue) remove(socketID string) bool {
	if !q.contains(socketID) {
		return false
	}

	q.entries = lo.Reject(q.entries, func(w waiter, index int) bool {
		return w.client.SocketID == socketID
	})

	return true
}

func (q *waitQueue) len() int {
	return len(q.entries)
}
