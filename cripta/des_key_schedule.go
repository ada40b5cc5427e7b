package cripta

import "github.com/davecgh/go-spew/spew"

// DESKeySchedule derives the sixteen DES round keys from a 64-bit key.
type DESKeySchedule struct{}

// KeyRound holds the values derived for one round of the key schedule. C and
// D are 28-bit, CD 56-bit and Key 48-bit, all left-aligned.
type KeyRound struct {
	Round int
	Shift int
	C     uint64
	D     uint64
	CD    uint64
	Key   uint64
}

// KeyScheduleTrace records every intermediate value of a key schedule.
type KeyScheduleTrace struct {
	Key         uint64
	PermutedKey uint64
	C0          uint64
	D0          uint64
	Rounds      [DESRounds]KeyRound
}

// RoundKeys returns the round keys in order, round 1 first.
func (t *KeyScheduleTrace) RoundKeys() []uint64 {
	keys := make([]uint64, DESRounds)
	for i := range t.Rounds {
		keys[i] = t.Rounds[i].Key
	}
	return keys
}

// rotate28 rotates a left-aligned 28-bit half left by shifts positions inside
// its field. Bits below the field stay zero.
func rotate28(half uint64, shifts int) uint64 {
	mask := leftMask(halfKeyBits)
	half &= mask

	return (half<<shifts | half>>(halfKeyBits-shifts)) & mask
}

// splitKey breaks a 56-bit permuted key into its C and D halves.
func splitKey(permuted uint64) (uint64, uint64) {
	mask := leftMask(halfKeyBits)
	return permuted & mask, (permuted << halfKeyBits) & mask
}

// joinKey concatenates two 28-bit halves into a 56-bit word.
func joinKey(c, d uint64) uint64 {
	mask := leftMask(halfKeyBits)
	return c&mask | (d&mask)>>halfKeyBits
}

// TraceKeySchedule runs the key schedule and keeps every intermediate value.
func TraceKeySchedule(key uint64) *KeyScheduleTrace {
	trace := &KeyScheduleTrace{
		Key:         key,
		PermutedKey: Permute(key, PC1),
	}

	c, d := splitKey(trace.PermutedKey)
	trace.C0, trace.D0 = c, d

	for round := 0; round < DESRounds; round++ {
		shift := SHIFT_SCHEDULE[round]
		c = rotate28(c, shift)
		d = rotate28(d, shift)

		cd := joinKey(c, d)
		trace.Rounds[round] = KeyRound{
			Round: round + 1,
			Shift: shift,
			C:     c,
			D:     d,
			CD:    cd,
			Key:   Permute(cd, PC2),
		}
	}

	log.Tracef("Key schedule for %016X: %v", key, newLogClosure(
		func() string {
			return spew.Sdump(trace)
		}),
	)

	return trace
}

// GenerateKeys returns the sixteen 48-bit left-aligned round keys for key,
// round 1 first. The key is used as-is: parity bits are ignored and weak keys
// are not rejected.
func GenerateKeys(key uint64) []uint64 {
	return TraceKeySchedule(key).RoundKeys()
}

// GenerateRoundKeys implements IKeySchedule. It never fails.
func (dks *DESKeySchedule) GenerateRoundKeys(masterKey uint64) ([]uint64,
	error) {

	return GenerateKeys(masterKey), nil
}
