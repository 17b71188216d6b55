package lzop

// adlerInit is the Adler-32 identity seed.  Every per-block checksum
// starts here; the stream header checksum is seeded here once, right
// after the magic bytes.
const adlerInit = 1

const (
	adlerMod = 65521
	// Largest run of bytes whose sums cannot overflow uint32 before a
	// modular reduction (NMAX from RFC 1950).
	adlerRun = 5552
)

// adlerUpdate extends seed with p and returns the new running
// checksum.  Unlike hash/adler32, the sum is resumable from any prior
// value, which the header checksum and the independently seeded block
// checksums both require.
func adlerUpdate(seed uint32, p []byte) uint32 {
	a, b := seed&0xffff, seed>>16
	for i, n := 0, len(p); i < n; {
		m := i + adlerRun
		if m > n {
			m = n
		}
		for ; i < m; i++ {
			a += uint32(p[i])
			b += a
		}
		a %= adlerMod
		b %= adlerMod
	}
	return b<<16 | a
}
