package cripta

type IKeySchedule interface {
	GenerateRoundKeys(masterKey uint64) ([]uint64, error)
}

type IRoundFunction interface {
	Apply(half uint64, roundKey uint64) uint64
}

type ISymmetricCipher interface {
	SetKey(key uint64) error
	EncryptBlock(plainBlock uint64) (uint64, error)
}
