package cripta

// DESRoundFunction is the DES F-function: expansion, key mixing, S-box
// substitution and the P permutation.
type DESRoundFunction struct{}

// RoundFunctionTrace records the intermediate values of one F evaluation.
// Groups hold the eight 6-bit S-box inputs, each left-aligned in its byte.
type RoundFunctionTrace struct {
	Half        uint64
	Key         uint64
	Expanded    uint64
	Mixed       uint64
	Groups      [sboxCount]uint8
	SBoxOutputs [sboxCount]uint8
	Substituted uint64
	Output      uint64
}

// Apply implements IRoundFunction.
func (rf *DESRoundFunction) Apply(half uint64, roundKey uint64) uint64 {
	return F(half, roundKey)
}

// F mixes a 32-bit left-aligned half block with a 48-bit left-aligned round
// key and returns a 32-bit left-aligned result.
func F(half, subkey uint64) uint64 {
	return roundFunction(half, subkey, nil)
}

// TraceF evaluates F and keeps every intermediate value.
func TraceF(half, subkey uint64) RoundFunctionTrace {
	var trace RoundFunctionTrace
	roundFunction(half, subkey, &trace)
	return trace
}

func roundFunction(half, subkey uint64, trace *RoundFunctionTrace) uint64 {
	expanded := Permute(half, E)
	mixed := expanded ^ subkey

	groups := splitGroups(mixed)

	var (
		substituted uint64
		outputs     [sboxCount]uint8
	)
	for box, group := range groups {
		outputs[box] = SBoxLookup(group, box)
		substituted = substituted<<4 | uint64(outputs[box])
	}
	substituted <<= blockBits - halfBlockBits

	output := Permute(substituted, P)

	if trace != nil {
		*trace = RoundFunctionTrace{
			Half:        half,
			Key:         subkey,
			Expanded:    expanded,
			Mixed:       mixed,
			Groups:      groups,
			SBoxOutputs: outputs,
			Substituted: substituted,
			Output:      output,
		}
	}

	return output
}

// splitGroups cuts a 48-bit left-aligned value into eight 6-bit groups, most
// significant first. Each group keeps its bits at the top of the byte.
func splitGroups(value uint64) [sboxCount]uint8 {
	var groups [sboxCount]uint8
	for i := range groups {
		groups[i] = uint8(value>>(blockBits-8)) & 0xFC
		value <<= groupBits
	}
	return groups
}

// sboxAddress maps a left-aligned 6-bit group to its S-box entry. The outer
// bits select the row, the four inner bits the column.
func sboxAddress(group uint8) int {
	row := (group&0x80)>>2 | (group&0x04)<<2
	column := (group & 0x78) >> 3
	return int(row | column)
}

// SBoxLookup substitutes a left-aligned 6-bit group through S-box box
// (0-based).
func SBoxLookup(group uint8, box int) uint8 {
	return SBoxes[box][sboxAddress(group)]
}
