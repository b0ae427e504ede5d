// Package leader implements the leader-avoidance loop: evaluating
// election frames against this client's own id, and computing the
// jittered exponential backoff delay for the reconnect that follows a
// self-election.
package leader

// Evaluation is the result of folding one election frame into the
// current leader state.
type Evaluation struct {
	PreviousLeader string
	NewLeader      string
	IAmLeader      bool
}

// Evaluate computes the Evaluation for an election frame announcing
// newLeaderID, given this client's own clientID and the previousLeader
// held before this frame arrived. The host's behavior when newLeaderID
// equals previousLeader is unspecified on the wire; this function makes
// no special case of it — every election frame is evaluated the same
// way, including a repeat of the current leader.
func Evaluate(clientID, newLeaderID, previousLeader string) Evaluation {
	return Evaluation{
		PreviousLeader: previousLeader,
		NewLeader:      newLeaderID,
		IAmLeader:      clientID == newLeaderID,
	}
}
