package coinbase

import "testing"

func TestTotalOutputValueSumsOutputs(t *testing.T) {
	tx := &Tx{Outputs: []Output{{Value: 100}, {Value: 250}, {Value: 5}}}
	if got := tx.TotalOutputValue(); got != 355 {
		t.Errorf("expected 355, got %d", got)
	}
}

func TestTotalOutputValueEmpty(t *testing.T) {
	tx := &Tx{}
	if got := tx.TotalOutputValue(); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestAppendOutputAppendsInOrder(t *testing.T) {
	tx := &Tx{Outputs: []Output{{Value: 100}}}
	tx.AppendOutput(50, []byte("payee"))

	if len(tx.Outputs) != 2 {
		t.Fatalf("expected 2 outputs, got %d", len(tx.Outputs))
	}
	if tx.Outputs[1].Value != 50 || !tx.Outputs[1].Script.Equal([]byte("payee")) {
		t.Errorf("expected the new output to pay 50 to payee, got %+v", tx.Outputs[1])
	}
	if tx.Outputs[0].Value != 100 {
		t.Errorf("expected the original output to be left untouched, got %+v", tx.Outputs[0])
	}
}
