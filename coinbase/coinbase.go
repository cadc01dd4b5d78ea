// Package coinbase defines the minimal candidate-coinbase shape the
// payment and governance-block validators/builders operate on: an ordered
// list of outputs. Everything else about a block or transaction (inputs,
// witnesses, header, chain position) belongs to the block/header chain
// storage collaborator named as out of scope in spec.md §1.
package coinbase

import "github.com/dashpay/mnengine/script"

// Output is one output of a candidate coinbase transaction.
type Output struct {
	Value  int64
	Script script.Script
}

// Tx is the candidate coinbase transaction a block-payment validator or
// builder inspects or fills.
type Tx struct {
	Outputs []Output
}

// TotalOutputValue sums the value of every output.
func (t *Tx) TotalOutputValue() int64 {
	var total int64
	for _, o := range t.Outputs {
		total += o.Value
	}
	return total
}

// AppendOutput appends a new output paying value to payee.
func (t *Tx) AppendOutput(value int64, payee script.Script) {
	t.Outputs = append(t.Outputs, Output{Value: value, Script: payee})
}
