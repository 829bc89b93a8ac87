package crypt

// Obfuscator transforms chat text for the x-prefixed wire messages.
// The codec takes whichever implementation the session was configured
// with, so servers that skip the legacy scrambling get Plain.
type Obfuscator interface {
	Scramble(plain []byte) []byte
	Unscramble(wire []byte) []byte
}

// Plain is the identity transform and the default everywhere.
type Plain struct{}

func (Plain) Scramble(p []byte) []byte   { return p }
func (Plain) Unscramble(p []byte) []byte { return p }

// MaxScrambleLen is the historical cipher's input limit. Longer input
// is truncated before transforming.
const MaxScrambleLen = 254

// Cipher is the legacy scrambling: an XOR chain over a 512-byte table
// generated from a fixed-seed Park-Miller generator. Both ends build
// the same table, no key exchange involved.
type Cipher struct{}

func (Cipher) Scramble(plain []byte) []byte  { return crypt(plain, false) }
func (Cipher) Unscramble(wire []byte) []byte { return crypt(wire, true) }

func crypt(in []byte, unscrambling bool) []byte {
	if len(in) > MaxScrambleLen {
		in = in[:MaxScrambleLen]
	}
	out := make([]byte, len(in))
	rc := 0
	var last byte
	for k, c := range in {
		out[k] = c ^ lut[rc] ^ last
		rc++
		if unscrambling {
			last = c ^ lut[rc]
		} else {
			last = out[k] ^ lut[rc]
		}
		rc++
	}
	return out
}

// Checksum is the protocol's homegrown CRC32 variant, used for the
// logon record and asset verification. Not a standard polynomial CRC.
func Checksum(p []byte) uint32 {
	crc := uint32(0xd9216290)
	for _, b := range p {
		carry := crc >> 31
		crc = crc<<1 | (carry ^ uint32(b))
	}
	return crc
}

// Park-Miller minimal standard generator, per Park & Miller,
// "Random Number Generators: Good Ones Are Hard to Find",
// CACM 31(10), 1988. The table seed is fixed by the protocol.
const (
	randA     = 16807
	randM     = 2147483647
	randQ     = 127773
	randR     = 2836
	tableSeed = 666666
)

var lut [512]byte

func init() {
	seed := int32(tableSeed)
	for i := range lut {
		hi := seed / randQ
		lo := seed % randQ
		test := randA*lo - randR*hi
		if test > 0 {
			seed = test
		} else {
			seed = test + randM
		}
		lut[i] = byte(int16(float64(seed) / randM * 256))
	}
}
