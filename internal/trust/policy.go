package trust

// Heuristic weights for the confidence score. The 40/25/20/15 split is a
// placeholder policy carried over from the original concierge, matched
// exactly, not calibrated against any ground truth.
const (
	peerCap        = 40
	perSnippet     = 10
	inventoryHigh  = 25
	inventoryLow   = 10
	clarityHigh    = 20
	clarityLow     = 10
	clarityMinLen  = 50
	kbHigh         = 15
	kbLow          = 5
	kbMinSnippets  = 3
	// HandoffThreshold is the confidence below which the concierge must
	// suggest escalation to a human agent.
	HandoffThreshold = 45
)

// PeerScore rewards corroborating knowledge snippets, capped at 40.
func PeerScore(snippetCount int) int {
	score := snippetCount * perSnippet
	if score > peerCap {
		return peerCap
	}
	if score < 0 {
		return 0
	}
	return score
}

// InventoryScore rewards responses that surface at least one actionable item.
func InventoryScore(actionCount int) int {
	if actionCount >= 1 {
		return inventoryHigh
	}
	return inventoryLow
}

// ClarityScore rewards answers longer than a bare one-liner.
func ClarityScore(messageLen int) int {
	if messageLen > clarityMinLen {
		return clarityHigh
	}
	return clarityLow
}

// KBScore rewards deep knowledge-base coverage (more than 3 snippets).
func KBScore(snippetCount int) int {
	if snippetCount > kbMinSnippets {
		return kbHigh
	}
	return kbLow
}

// Confidence computes the 0-100 heuristic score for an assistant reply.
// It is an ad-hoc scale, not a probability: the per-heuristic minimums sum
// to 25, so the achievable range is [25, 100].
func Confidence(snippetCount, actionCount, messageLen int) int {
	return PeerScore(snippetCount) +
		InventoryScore(actionCount) +
		ClarityScore(messageLen) +
		KBScore(snippetCount)
}

// SuggestHandoff reports whether the computed confidence mandates escalation.
// Above the threshold the model's own handoff judgment stands; below it the
// override always wins.
func SuggestHandoff(confidence int) bool {
	return confidence < HandoffThreshold
}
