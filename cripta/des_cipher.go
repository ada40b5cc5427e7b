package cripta

import (
	"fmt"
	"sync"

	"github.com/davecgh/go-spew/spew"
)

// desNetwork is shared by every encryption. It holds no per-call state.
var desNetwork = func() *FeistelNetwork {
	network, err := NewFeistelNetwork(&DESRoundFunction{}, DESRounds)
	if err != nil {
		panic(err)
	}
	return network
}()

// EncryptionRound is one round of an EncryptionTrace.
type EncryptionRound struct {
	RoundState
	F RoundFunctionTrace
}

// EncryptionTrace records every intermediate value of a single block
// encryption.
type EncryptionTrace struct {
	Block      uint64
	Permuted   uint64
	Left0      uint64
	Right0     uint64
	Rounds     [DESRounds]EncryptionRound
	PreOutput  uint64
	Ciphertext uint64
}

// Encrypt enciphers one 64-bit block with the round keys produced by
// GenerateKeys. roundKeys is only read, so it may be shared between
// concurrent calls.
func Encrypt(block uint64, roundKeys []uint64) (uint64, error) {
	return encrypt(desNetwork, block, roundKeys, nil)
}

func encrypt(network *FeistelNetwork, block uint64, roundKeys []uint64,
	observe RoundObserver) (uint64, error) {

	permuted := Permute(block, IP)

	preOutput, err := network.EncryptBlock(permuted, roundKeys, observe)
	if err != nil {
		return 0, fmt.Errorf("feistel encryption failed: %w", err)
	}

	return Permute(preOutput, FP), nil
}

// recordingRoundFunction evaluates F and keeps the trace of the latest call.
type recordingRoundFunction struct {
	last RoundFunctionTrace
}

func (r *recordingRoundFunction) Apply(half, roundKey uint64) uint64 {
	r.last = TraceF(half, roundKey)
	return r.last.Output
}

// TraceEncrypt enciphers block and records the state after every step.
func TraceEncrypt(block uint64, roundKeys []uint64) (*EncryptionTrace,
	error) {

	trace := &EncryptionTrace{
		Block:    block,
		Permuted: Permute(block, IP),
	}
	trace.Left0, trace.Right0 = desNetwork.splitBlock(trace.Permuted)

	recorder := &recordingRoundFunction{}
	network, err := NewFeistelNetwork(recorder, DESRounds)
	if err != nil {
		return nil, err
	}

	ciphertext, err := encrypt(network, block, roundKeys,
		func(state RoundState) {
			trace.Rounds[state.Round-1] = EncryptionRound{
				RoundState: state,
				F:          recorder.last,
			}
		},
	)
	if err != nil {
		return nil, err
	}

	last := trace.Rounds[DESRounds-1]
	trace.PreOutput = desNetwork.combineBlocks(last.Right, last.Left)
	trace.Ciphertext = ciphertext

	log.Tracef("Encryption of %016X: %v", block, newLogClosure(
		func() string {
			return spew.Sdump(trace)
		}),
	)

	return trace, nil
}

// DESCipher is a keyed DES block encryptor. It is safe for concurrent use.
type DESCipher struct {
	keySchedule IKeySchedule

	mu        sync.RWMutex
	roundKeys []uint64
}

func NewDESCipher() *DESCipher {
	return &DESCipher{
		keySchedule: &DESKeySchedule{},
	}
}

func (des *DESCipher) SetKey(key uint64) error {
	roundKeys, err := des.keySchedule.GenerateRoundKeys(key)
	if err != nil {
		return fmt.Errorf("failed to generate round keys: %w", err)
	}
	if len(roundKeys) != DESRounds {
		return fmt.Errorf("key schedule generated %d round keys: %w",
			len(roundKeys), ErrWrongSubkeyCount)
	}

	des.mu.Lock()
	des.roundKeys = roundKeys
	des.mu.Unlock()

	log.Debugf("Derived %d round keys for key %016X", len(roundKeys), key)

	return nil
}

// RoundKeys returns a copy of the current round keys, or nil if no key was
// set.
func (des *DESCipher) RoundKeys() []uint64 {
	des.mu.RLock()
	defer des.mu.RUnlock()

	if des.roundKeys == nil {
		return nil
	}

	keys := make([]uint64, len(des.roundKeys))
	copy(keys, des.roundKeys)
	return keys
}

func (des *DESCipher) EncryptBlock(plainBlock uint64) (uint64, error) {
	des.mu.RLock()
	roundKeys := des.roundKeys
	des.mu.RUnlock()

	if roundKeys == nil {
		return 0, fmt.Errorf("call SetKey() before encryption: %w",
			ErrKeyNotSet)
	}

	return Encrypt(plainBlock, roundKeys)
}
