package state

// Size limits from spec §6, shared by every package that builds or walks a
// Step tree.
const (
	MaxCodeSize     = 64 * 1024 * 8 // bits; ~175k three-bit opcodes
	MaxCellCount    = 128 * 1024    // bytes
	MaxPayloadData  = 64 * 1024     // bytes
	MaxStackDepth   = 1024          // uint32 entries
	MaxContracts    = 256
	GasFreeStipend  = 1000
	L1ToL2GasMult   = 128
	SanityStepLimit = 10000

	// MaxInputData is input_data's byte capacity: PayloadData is a
	// byte-list up to MaxPayloadData bytes total, of which the first 20
	// are always the sender address (spec §3), not an addition to it.
	MaxInputData = MaxPayloadData
)

// Address is the 20-byte sender address, always the first 20 bytes of a
// transaction's input_data.
type Address [20]byte
