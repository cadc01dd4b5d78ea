package chainparams

import "github.com/btcsuite/btcd/chaincfg"

const satoshiPerCoin = 1e8

func defaultSubsidy(height int32, isGovernanceBlock bool) int64 {
	// A simple halving schedule, halved every 210000 blocks, floored at
	// 1 satoshi so the schedule never fully zeroes out for very large
	// test heights. Real chain-consensus subsidy schedules are supplied by
	// the chain-consensus collaborator (spec.md §1); this default exists
	// only so PaymentsLimit and FillBlockPayments have something concrete
	// to call in tests and in a network with no override configured.
	halvings := height / 210000
	if halvings >= 64 {
		return 1
	}
	subsidy := int64(5 * satoshiPerCoin)
	subsidy >>= uint(halvings)
	if subsidy == 0 {
		subsidy = 1
	}
	return subsidy
}

// MainNetParams are the consensus constants for the production network.
var MainNetParams = &Params{
	Name:                  "mainnet",
	Net:                   &chaincfg.MainNetParams,
	PaymentsStartBlock:    1000,
	MegaInterval:          10080, // about 17.5 days at 1 block/2.5min
	SubInterval:           2520,
	BonusInterval:         100,
	GovernanceBlockOffset: 0,
	SignaturesRequired:    6,
	SignaturesTotal:       10,
	StorageCoefficient:    1.25,
	MinBlocksToStore:      6000,
	SignHashThreshold:     420000,
	MnUpdateThreshold:     4000,
	MinConfirmations:      15,
	MasternodeCollateral:   1000 * satoshiPerCoin,
	MasternodePaymentShare: 0.2,
	PaymentTolerance:       1e7,
	MoneyRangeMax:          21000000 * satoshiPerCoin,
	Subsidy:                defaultSubsidy,
}

// TestNetParams are the consensus constants for the public test network.
var TestNetParams = &Params{
	Name:                  "testnet3",
	Net:                   &chaincfg.TestNet3Params,
	PaymentsStartBlock:    100,
	MegaInterval:          576,
	SubInterval:           144,
	BonusInterval:         20,
	GovernanceBlockOffset: 0,
	SignaturesRequired:    3,
	SignaturesTotal:       5,
	StorageCoefficient:    1.25,
	MinBlocksToStore:      2000,
	SignHashThreshold:     4200,
	MnUpdateThreshold:     100,
	MinConfirmations:      1,
	MasternodeCollateral:  1000 * satoshiPerCoin,
	MasternodePaymentShare: 0.2,
	PaymentTolerance:      1e7,
	MoneyRangeMax:         21000000 * satoshiPerCoin,
	Subsidy:               defaultSubsidy,
}

// RegressionNetParams are the consensus constants used by isolated
// deterministic tests: short intervals, low thresholds, no confirmation
// wait.
var RegressionNetParams = &Params{
	Name:                  "regtest",
	Net:                   &chaincfg.RegressionNetParams,
	PaymentsStartBlock:    10,
	MegaInterval:          20,
	SubInterval:           5,
	BonusInterval:         2,
	GovernanceBlockOffset: 0,
	SignaturesRequired:    2,
	SignaturesTotal:       3,
	StorageCoefficient:    1.25,
	MinBlocksToStore:      50,
	SignHashThreshold:     0,
	MnUpdateThreshold:     10,
	MinConfirmations:       0,
	MasternodeCollateral:   1000 * satoshiPerCoin,
	MasternodePaymentShare: 0.2,
	PaymentTolerance:       1e7,
	MoneyRangeMax:          21000000 * satoshiPerCoin,
	Subsidy:                defaultSubsidy,
}
