package cripta

import (
	"fmt"
)

// RoundState is the Feistel state right after a round. Left and Right are
// 32-bit left-aligned halves.
type RoundState struct {
	Round    int
	Key      uint64
	Left     uint64
	Right    uint64
	Function uint64
}

// RoundObserver is called by a FeistelNetwork after every round.
type RoundObserver func(state RoundState)

// FeistelNetwork runs a fixed number of Feistel rounds over a 64-bit block
// held as two left-aligned 32-bit halves.
type FeistelNetwork struct {
	roundFunction IRoundFunction
	roundsCount   int
}

func NewFeistelNetwork(
	roundFunctionImpl IRoundFunction,
	roundsCount int,
) (*FeistelNetwork, error) {

	if roundFunctionImpl == nil {
		return nil, fmt.Errorf("round function implementation cannot be nil")
	}

	fRoundsCount := roundsCount
	if fRoundsCount == 0 {
		fRoundsCount = DESRounds
	}
	if fRoundsCount < 0 {
		return nil, fmt.Errorf("rounds count must be positive, got %d",
			roundsCount)
	}

	return &FeistelNetwork{
		roundFunction: roundFunctionImpl,
		roundsCount:   fRoundsCount,
	}, nil
}

func (fn *FeistelNetwork) GetRoundsCount() int {
	return fn.roundsCount
}

func (fn *FeistelNetwork) splitBlock(block uint64) (uint64, uint64) {
	mask := leftMask(halfBlockBits)
	return block & mask, (block << halfBlockBits) & mask
}

// combineBlocks places left in the upper and right in the lower half of the
// result.
func (fn *FeistelNetwork) combineBlocks(left, right uint64) uint64 {
	mask := leftMask(halfBlockBits)
	return left&mask | (right&mask)>>halfBlockBits
}

// EncryptBlock runs every round over block. The final halves are emitted
// right-then-left, since each round already swaps them. observe may be nil.
func (fn *FeistelNetwork) EncryptBlock(block uint64, roundKeys []uint64,
	observe RoundObserver) (uint64, error) {

	if len(roundKeys) != fn.roundsCount {
		return 0, fmt.Errorf("got %d round keys, need %d: %w",
			len(roundKeys), fn.roundsCount, ErrWrongSubkeyCount)
	}

	left, right := fn.splitBlock(block)

	for round := 0; round < fn.roundsCount; round++ {
		f := fn.roundFunction.Apply(right, roundKeys[round])
		left, right = right, left^f

		if observe != nil {
			observe(RoundState{
				Round:    round + 1,
				Key:      roundKeys[round],
				Left:     left,
				Right:    right,
				Function: f,
			})
		}
	}

	return fn.combineBlocks(right, left), nil
}
