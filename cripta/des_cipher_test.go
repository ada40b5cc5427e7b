package cripta

import (
	"crypto/des"
	"encoding/binary"
	"fmt"
	"math/bits"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"pgregory.net/rapid"
)

// stdlibEncrypt enciphers block with the standard library's DES.
func stdlibEncrypt(t require.TestingT, key, block uint64) uint64 {
	var keyBytes, in, out [8]byte
	binary.BigEndian.PutUint64(keyBytes[:], key)
	binary.BigEndian.PutUint64(in[:], block)

	c, err := des.NewCipher(keyBytes[:])
	require.NoError(t, err)
	c.Encrypt(out[:], in[:])

	return binary.BigEndian.Uint64(out[:])
}

func TestEncryptKnownAnswers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		key        uint64
		plaintext  uint64
		ciphertext uint64
	}{
		{
			name:       "worked example",
			key:        testKey,
			plaintext:  testPlaintext,
			ciphertext: 0x85E813540F0AB405,
		},
		{
			name:       "worked example with mistyped key",
			key:        0x133457799BDC9CF1,
			plaintext:  testPlaintext,
			ciphertext: 0x44D28DB02BCB791C,
		},
		{
			name:       "zero ciphertext",
			key:        0x0E329232EA6D0D73,
			plaintext:  0x8787878787878787,
			ciphertext: 0x0000000000000000,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := Encrypt(tc.plaintext, GenerateKeys(tc.key))
			require.NoError(t, err)
			require.Equal(t, tc.ciphertext, got)
		})
	}
}

// TestEncryptMatchesStdlib cross-checks random blocks and keys against
// crypto/des.
func TestEncryptMatchesStdlib(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		key := rapid.Uint64().Draw(t, "key")
		block := rapid.Uint64().Draw(t, "block")

		got, err := Encrypt(block, GenerateKeys(key))
		require.NoError(t, err)
		require.Equal(t, stdlibEncrypt(t, key, block), got)
	})
}

func TestEncryptDeterministic(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		key := rapid.Uint64().Draw(t, "key")
		block := rapid.Uint64().Draw(t, "block")

		first, err := Encrypt(block, GenerateKeys(key))
		require.NoError(t, err)
		second, err := Encrypt(block, GenerateKeys(key))
		require.NoError(t, err)
		require.Equal(t, first, second)
	})
}

func TestEncryptWrongSubkeyCount(t *testing.T) {
	t.Parallel()

	keys := GenerateKeys(testKey)

	for _, roundKeys := range [][]uint64{nil, keys[:15], append(keys, 0)} {
		_, err := Encrypt(testPlaintext, roundKeys)
		require.ErrorIs(t, err, ErrWrongSubkeyCount)

		_, err = TraceEncrypt(testPlaintext, roundKeys)
		require.ErrorIs(t, err, ErrWrongSubkeyCount)
	}
}

// TestEncryptAvalanche flips one plaintext bit at a time and expects about
// half of the ciphertext bits to change on average.
func TestEncryptAvalanche(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))

	const samples = 512
	total := 0
	for i := 0; i < samples; i++ {
		keys := GenerateKeys(rng.Uint64())
		block := rng.Uint64()
		flipped := block ^ 1<<rng.Intn(64)

		a, err := Encrypt(block, keys)
		require.NoError(t, err)
		b, err := Encrypt(flipped, keys)
		require.NoError(t, err)

		total += bits.OnesCount64(a ^ b)
	}

	mean := float64(total) / samples
	require.InDelta(t, 32, mean, 4)
}

// TestTraceEncrypt checks the trace of the worked example and that tracing
// agrees with Encrypt.
func TestTraceEncrypt(t *testing.T) {
	t.Parallel()

	keys := GenerateKeys(testKey)
	trace, err := TraceEncrypt(testPlaintext, keys)
	require.NoError(t, err)

	require.Equal(t, uint64(0xCC00CCFFF0AAF0AA), trace.Permuted)
	require.Equal(t, uint64(0xCC00CCFF)<<32, trace.Left0)
	require.Equal(t, uint64(0xF0AAF0AA)<<32, trace.Right0)

	first := trace.Rounds[0]
	require.Equal(t, 1, first.Round)
	require.Equal(t, trace.Right0, first.Left)
	require.Equal(t, uint64(0xEF4A6544)<<32, first.Right)
	require.Equal(t, uint64(0x234AA9BB)<<32, first.Function)
	require.Equal(t, first.Function, first.F.Output)

	require.Equal(t, uint64(0x0A4CD99543423234), trace.PreOutput)
	require.Equal(t, uint64(0x85E813540F0AB405), trace.Ciphertext)

	rapid.Check(t, func(t *rapid.T) {
		keys := GenerateKeys(rapid.Uint64().Draw(t, "key"))
		block := rapid.Uint64().Draw(t, "block")

		trace, err := TraceEncrypt(block, keys)
		require.NoError(t, err)

		want, err := Encrypt(block, keys)
		require.NoError(t, err)
		require.Equal(t, want, trace.Ciphertext)

		prevRight := trace.Right0
		for i, r := range trace.Rounds {
			require.Equal(t, i+1, r.Round)
			require.Equal(t, keys[i], r.Key)
			require.Equal(t, keys[i], r.F.Key)
			require.Equal(t, prevRight, r.F.Half)
			prevRight = r.Right
			require.Zero(t, r.Left&^leftMask(halfBlockBits))
			require.Zero(t, r.Right&^leftMask(halfBlockBits))
			require.Equal(t, r.Function, r.F.Output)
		}
	})
}

func TestRecordingRoundFunction(t *testing.T) {
	t.Parallel()

	recorder := &recordingRoundFunction{}
	keys := GenerateKeys(testKey)

	got := recorder.Apply(uint64(0xF0AAF0AA)<<32, keys[0])
	require.Equal(t, uint64(0x234AA9BB)<<32, got)
	require.Equal(t, TraceF(uint64(0xF0AAF0AA)<<32, keys[0]), recorder.last)
}

func TestDESCipher(t *testing.T) {
	t.Parallel()

	var cipher ISymmetricCipher = NewDESCipher()

	_, err := cipher.EncryptBlock(testPlaintext)
	require.ErrorIs(t, err, ErrKeyNotSet)

	require.NoError(t, cipher.SetKey(testKey))

	got, err := cipher.EncryptBlock(testPlaintext)
	require.NoError(t, err)
	require.Equal(t, uint64(0x85E813540F0AB405), got)

	desCipher, ok := cipher.(*DESCipher)
	require.True(t, ok)
	keys := desCipher.RoundKeys()
	require.Equal(t, GenerateKeys(testKey), keys)

	// The returned keys are a copy.
	keys[0] = 0
	got, err = cipher.EncryptBlock(testPlaintext)
	require.NoError(t, err)
	require.Equal(t, uint64(0x85E813540F0AB405), got)
}

// TestEncryptConcurrent shares one round key sequence between many
// goroutines.
func TestEncryptConcurrent(t *testing.T) {
	t.Parallel()

	cipher := NewDESCipher()
	require.NoError(t, cipher.SetKey(testKey))
	keys := GenerateKeys(testKey)

	blocks := make([]uint64, 256)
	for i := range blocks {
		blocks[i] = uint64(i) * 0x9E3779B97F4A7C15
	}

	results := make([]uint64, len(blocks))
	var g errgroup.Group
	for i, block := range blocks {
		g.Go(func() error {
			ct, err := Encrypt(block, keys)
			if err != nil {
				return err
			}

			viaCipher, err := cipher.EncryptBlock(block)
			if err != nil {
				return err
			}
			if viaCipher != ct {
				return fmt.Errorf("block %x: cipher gave %x, "+
					"Encrypt gave %x", block, viaCipher, ct)
			}

			results[i] = ct
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for i, block := range blocks {
		require.Equal(t, stdlibEncrypt(t, testKey, block), results[i])
	}
	require.Equal(t, GenerateKeys(testKey), keys)
}
