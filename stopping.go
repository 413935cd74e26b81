package tdidt

/*
LeafRule is an interface wrapping the Leaf method, that can be used
to decide whether a node must become a leaf instead of being split.

The Leaf method takes the depth of the node, the number of records of each
class reaching it and the best partition found for them, and returns true
to indicate the node must become a leaf.
*/
type LeafRule interface {
	Leaf(depth int, counts []int, best *Partition) bool
}

/*
LeafRuleFunc wraps a function with the Leaf method signature to implement
the LeafRule interface
*/
type LeafRuleFunc func(depth int, counts []int, best *Partition) bool

// Leaf invokes the LeafRuleFunc with the given parameters and returns its result.
func (lrf LeafRuleFunc) Leaf(depth int, counts []int, best *Partition) bool {
	return lrf(depth, counts, best)
}

/*
StoppingPolicy is an ordered list of LeafRules. A node becomes a leaf
as soon as any of the rules says so.
*/
type StoppingPolicy []LeafRule

// Leaf returns whether any of the rules in the policy makes the node a leaf.
func (sp StoppingPolicy) Leaf(depth int, counts []int, best *Partition) bool {
	for _, r := range sp {
		if r.Leaf(depth, counts, best) {
			return true
		}
	}
	return false
}

/*
NewStoppingPolicy takes a maximum depth and an impurity threshold and
returns the StoppingPolicy made of the NoGainRule, an ImpurityRule with the
threshold and a MaxDepthRule with the maximum depth.
*/
func NewStoppingPolicy(maxDepth int, impurityThreshold float64) StoppingPolicy {
	return StoppingPolicy{NoGainRule(), ImpurityRule(impurityThreshold), MaxDepthRule(maxDepth)}
}

/*
NoGainRule returns a LeafRule that makes a leaf of nodes for which the best
partition has no information gain, or no partition at all.
*/
func NoGainRule() LeafRule {
	return LeafRuleFunc(func(depth int, counts []int, best *Partition) bool {
		return best == nil || GainsEqual(best.InformationGain, 0.0)
	})
}

/*
ImpurityRule takes an impurity threshold in percent and returns a LeafRule
that makes a leaf of nodes where the share of the majority class is greater
than or equal to 100 minus the threshold percent. Shares within Epsilon of
that limit count as reaching it.
*/
func ImpurityRule(threshold float64) LeafRule {
	return LeafRuleFunc(func(depth int, counts []int, best *Partition) bool {
		var total, max int
		for _, c := range counts {
			total += c
			if c > max {
				max = c
			}
		}
		if total == 0 {
			return true
		}
		share := float64(max) * 100.0 / float64(total)
		limit := 100.0 - threshold
		return share >= limit || GainsEqual(share, limit)
	})
}

/*
MaxDepthRule takes a maximum depth and returns a LeafRule that makes a leaf
of nodes at that depth. A negative maximum depth means unlimited depth.
*/
func MaxDepthRule(maxDepth int) LeafRule {
	return LeafRuleFunc(func(depth int, counts []int, best *Partition) bool {
		return maxDepth >= 0 && depth >= maxDepth
	})
}
