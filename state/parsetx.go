package state

// ParseTx builds the initial Step for a transaction, per spec §6: gas is
// the free stipend plus the L1-calldata multiplier times the payload
// length, and input_data is the 20-byte sender prepended to the raw
// payload.
func ParseTx(sender Address, contract ContractValue, payload []byte) *Tree {
	inputData := make([]byte, 20+len(payload))
	copy(inputData, sender[:])
	copy(inputData[20:], payload)

	gas := uint64(GasFreeStipend) + uint64(L1ToL2GasMult)*uint64(len(payload))

	return BuildStep(StepValue{
		Gas:        gas,
		PC:         0,
		Stack:      nil,
		Indent:     0,
		Contract:   contract,
		InputRead:  0,
		InputData:  inputData,
		ResultCode: Running,
	})
}
