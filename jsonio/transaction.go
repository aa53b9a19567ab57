package jsonio

import (
	"encoding/json"
	"fmt"

	"github.com/bf-rollup/obf/state"
)

// TxInput is one transition's wire input: sender as 20-byte hex, the
// target contract slot, and the raw calldata payload as hex.
type TxInput struct {
	Sender   string `json:"sender"`
	Contract uint8  `json:"contract"`
	Tx       string `json:"tx"`
}

// ParseTxInput parses a transaction input file and returns its decoded
// fields.
func ParseTxInput(data []byte) (sender state.Address, contract uint8, payload []byte, err error) {
	var in TxInput
	if err = json.Unmarshal(data, &in); err != nil {
		return sender, 0, nil, fmt.Errorf("jsonio: parsing transaction input: %w", err)
	}
	sender, err = DecodeAddress(in.Sender)
	if err != nil {
		return sender, 0, nil, err
	}
	payload, err = DecodeBytes(in.Tx)
	if err != nil {
		return sender, 0, nil, err
	}
	return sender, in.Contract, payload, nil
}
