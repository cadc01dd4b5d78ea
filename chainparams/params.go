// Package chainparams defines the consensus constants the payment and
// governance-block subsystem is parameterized by, one Params value per
// network, in the style of a chaincfg-style parameter table.
package chainparams

import (
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/pkg/errors"
)

// SubsidyFunc computes the block subsidy at height, given whether height is
// a governance block. It is supplied by the chain-consensus collaborator;
// this subsystem only calls it.
type SubsidyFunc func(height int32, isGovernanceBlock bool) int64

// Params holds every consensus constant this subsystem is parameterized by,
// plus the address version bytes (via the embedded *chaincfg.Params) needed
// to decode governance-payment addresses.
type Params struct {
	// Name identifies the network ("mainnet", "testnet3", "regtest", ...).
	Name string

	// Net embeds the standard btcsuite chain parameters, used only for
	// address version-byte decoding (governance payment addresses).
	Net *chaincfg.Params

	// PaymentsStartBlock is the first height at which governance blocks can
	// occur.
	PaymentsStartBlock int32

	// MegaInterval is the cycle length, in blocks, between governance
	// blocks.
	MegaInterval int32

	// SubInterval is the sub-cycle horizon used only for trigger aging.
	SubInterval int32

	// BonusInterval is the bonus horizon used only for trigger aging.
	BonusInterval int32

	// GovernanceBlockOffset is the required value of height mod
	// MegaInterval at a governance height.
	GovernanceBlockOffset int32

	// SignaturesRequired is the quorum size for a regular-block payee to be
	// considered authoritative (MNPAYMENTS_SIGNATURES_REQUIRED upstream).
	SignaturesRequired int

	// SignaturesTotal bounds the top-ranked masternode set eligible to vote
	// for a given height (MNPAYMENTS_SIGNATURES_TOTAL upstream).
	SignaturesTotal int

	// StorageCoefficient scales the registry size to compute the vote/tally
	// storage window.
	StorageCoefficient float64

	// MinBlocksToStore is the floor on the storage window.
	MinBlocksToStore int32

	// SignHashThreshold is the tip height above which the raw-hash signing
	// scheme is used instead of the legacy message-string scheme.
	SignHashThreshold int32

	// MnUpdateThreshold is the minimum active time, in blocks, a masternode
	// must have to be selected as the next payee (the minActiveTime passed
	// to Registry.NextPayee).
	MnUpdateThreshold int32

	// MinConfirmations is the minimum confirmations a masternode's
	// collateral outpoint must have to be selected as the next payee (the
	// minCollateralAge passed to Registry.NextPayee). Ranking and vote
	// ingest do not consult it.
	MinConfirmations int32

	// MasternodeCollateral is the exact required collateral value, in
	// satoshis, of a masternode's outpoint.
	MasternodeCollateral int64

	// MasternodePaymentShare is the fraction of the block reward paid to
	// the winning masternode on a regular block.
	MasternodePaymentShare float64

	// PaymentTolerance is the named constant for the asymmetric tolerance
	// band applied to the regular masternode payment amount check
	// (spec.md §9 open question): a payout is accepted in
	// [masternodePayment, masternodePayment+PaymentTolerance].
	PaymentTolerance int64

	// MoneyRangeMax bounds any single governance payment amount.
	MoneyRangeMax int64

	// Subsidy computes the block reward.
	Subsidy SubsidyFunc
}

var registered = make(map[string]*Params)

// Register adds p to the set of known networks, keyed by p.Name. It panics
// on a duplicate name, mirroring dagconfig.Register's fail-fast contract:
// network registration only happens at process init.
func Register(p *Params) {
	if _, exists := registered[p.Name]; exists {
		panic("chainparams: duplicate network registration: " + p.Name)
	}
	registered[p.Name] = p
}

// Lookup returns the registered Params for name, or an error if none was
// registered under that name.
func Lookup(name string) (*Params, error) {
	p, ok := registered[name]
	if !ok {
		return nil, errors.Errorf("chainparams: unknown network %q", name)
	}
	return p, nil
}

func init() {
	Register(MainNetParams)
	Register(TestNetParams)
	Register(RegressionNetParams)
}
