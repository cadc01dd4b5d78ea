package governance

import "github.com/dashpay/mnengine/chainparams"

// IsGovernanceHeight reports whether height can be a governance (super)
// block, per spec.md §4.5: height >= payments_start_block and
// height mod mega_interval == governance_block_offset.
func IsGovernanceHeight(height int32, params *chainparams.Params) bool {
	if height < params.PaymentsStartBlock {
		return false
	}
	return height%params.MegaInterval == params.GovernanceBlockOffset
}

// NearestHeights returns the previous governance height (0 if height is
// before the first one) and the next governance height, deterministic
// from consensus constants alone. Grounded on
// original_source/src/masternodes/governance-classes.cpp's
// GetNearestGovernanceBlocksHeights.
func NearestHeights(height int32, params *chainparams.Params) (previous, next int32) {
	firstOffset := ((params.MegaInterval - params.PaymentsStartBlock%params.MegaInterval) % params.MegaInterval) + params.GovernanceBlockOffset
	first := params.PaymentsStartBlock + firstOffset

	if height < first {
		return 0, first
	}
	previous = height - ((height-params.GovernanceBlockOffset)%params.MegaInterval+params.MegaInterval)%params.MegaInterval
	next = previous + params.MegaInterval
	return previous, next
}

// PaymentsLimit returns the maximum total governance-payment amount
// allowed at height: the block subsidy computed with the governance-block
// flag set, or zero if height is not a governance height.
func PaymentsLimit(height int32, params *chainparams.Params) int64 {
	if !IsGovernanceHeight(height, params) {
		return 0
	}
	return params.Subsidy(height, true)
}
