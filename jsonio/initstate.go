package jsonio

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/bf-rollup/obf/state"
)

// contractFile is the wire shape of one contract slot in the initial
// state file (spec §6): pretty-printed source rather than packed bits,
// since this file is meant to be hand-editable.
type contractFile struct {
	Code  string  `json:"code"`
	Ptr   uint32  `json:"ptr"`
	Cells []uint8 `json:"cells"`
}

// initStateFile is the top-level initial state file shape:
// { "contracts": { "<id 0..255>": {...} } }.
type initStateFile struct {
	Contracts map[string]contractFile `json:"contracts"`
}

// LoadInitState parses an initial state file into slot -> Contract.
func LoadInitState(data []byte) (map[uint8]state.ContractValue, error) {
	var f initStateFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("jsonio: parsing init state: %w", err)
	}
	out := make(map[uint8]state.ContractValue, len(f.Contracts))
	for key, cf := range f.Contracts {
		slot, err := strconv.Atoi(key)
		if err != nil || slot < 0 || slot >= state.MaxContracts {
			return nil, fmt.Errorf("jsonio: invalid contract slot %q", key)
		}
		ops, err := state.ParseCode(cf.Code)
		if err != nil {
			return nil, fmt.Errorf("jsonio: contract %d: %w", slot, err)
		}
		out[uint8(slot)] = state.ContractValue{Code: ops, Cells: cf.Cells, Ptr: cf.Ptr}
	}
	return out, nil
}

// SaveInitState renders slot -> Contract back into an initial state file.
func SaveInitState(contracts map[uint8]state.ContractValue) ([]byte, error) {
	f := initStateFile{Contracts: make(map[string]contractFile, len(contracts))}
	for slot, cv := range contracts {
		f.Contracts[strconv.Itoa(int(slot))] = contractFile{
			Code:  state.PrettyCode(cv.Code),
			Ptr:   cv.Ptr,
			Cells: cv.Cells,
		}
	}
	return json.MarshalIndent(f, "", "  ")
}
