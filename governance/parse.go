package governance

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/dashpay/mnengine/script"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// triggerPayload is the loosely-typed shape of a governance object's JSON
// trigger payload, per spec.md §4.4.
type triggerPayload struct {
	EventBlockHeight int64  `json:"event_block_height"`
	PaymentAddresses string `json:"payment_addresses"`
	PaymentAmounts   string `json:"payment_amounts"`
}

// amountPattern matches a fixed-point decimal amount string, per spec.md
// §4.4's parsing rules.
var amountPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

const maxAmountStringLen = 20

// parseTriggerPayload parses raw into an event height and ordered payment
// schedule, following the pipe-delimited address/amount parsing rules of
// spec.md §4.4. Grounded on
// original_source/src/masternodes/governance-classes.cpp's
// ParsePaymentSchedule. Any error rejects the whole trigger.
func parseTriggerPayload(raw []byte, net *chaincfg.Params, moneyRangeMax int64) (int32, []Payment, error) {
	var payload triggerPayload
	if err := jsonAPI.Unmarshal(raw, &payload); err != nil {
		return 0, nil, errors.Wrap(err, "governance: malformed trigger payload")
	}

	addresses := strings.Split(payload.PaymentAddresses, "|")
	amounts := strings.Split(payload.PaymentAmounts, "|")
	if len(addresses) != len(amounts) {
		return 0, nil, errors.New("governance: mismatched payment addresses and amounts")
	}
	if len(addresses) == 0 || (len(addresses) == 1 && addresses[0] == "") {
		return 0, nil, errors.New("governance: no payments in trigger")
	}

	payments := make([]Payment, 0, len(addresses))
	for i, addrStr := range addresses {
		amountStr := amounts[i]
		if addrStr == "" || amountStr == "" {
			return 0, nil, errors.New("governance: empty payment segment")
		}

		payee, err := script.FromAddress(addrStr, net)
		if err != nil {
			return 0, nil, errors.Wrapf(err, "governance: invalid payment address %q", addrStr)
		}

		amount, err := parseAmount(amountStr, moneyRangeMax)
		if err != nil {
			return 0, nil, err
		}

		payments = append(payments, Payment{Payee: payee, Amount: amount})
	}

	return int32(payload.EventBlockHeight), payments, nil
}

// parseAmount parses a pipe-segment amount string into satoshis, enforcing
// spec.md §4.4's format and range rules.
func parseAmount(s string, moneyRangeMax int64) (int64, error) {
	if len(s) > maxAmountStringLen {
		return 0, errors.Errorf("governance: amount %q exceeds max length %d", s, maxAmountStringLen)
	}
	if !amountPattern.MatchString(s) {
		return 0, errors.Errorf("governance: malformed amount %q", s)
	}
	if strings.HasPrefix(s, ".") {
		return 0, errors.Errorf("governance: amount %q has a leading decimal point", s)
	}

	whole, frac, _ := strings.Cut(s, ".")
	if len(frac) > 8 {
		return 0, errors.Errorf("governance: amount %q has more than 8 fractional digits", s)
	}
	for len(frac) < 8 {
		frac += "0"
	}

	amount, err := strconv.ParseInt(whole+frac, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "governance: amount %q overflows", s)
	}
	if amount < 0 || amount > moneyRangeMax {
		return 0, errors.Errorf("governance: amount %d outside configured money range [0, %d]", amount, moneyRangeMax)
	}
	return amount, nil
}
