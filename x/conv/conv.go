// Package conv formats integers into caller-provided buffers without
// linking fmt or strconv.
package conv

// Utoa writes base-10 representation of n into buf and returns the used slice.
// buf should be length >= 20 for uint64.
func Utoa(buf []byte, n uint64) []byte {
	if len(buf) == 0 {
		return buf[:0]
	}
	i := len(buf)
	if n == 0 {
		i--
		buf[i] = '0'
	} else {
		for n > 0 && i > 0 {
			i--
			buf[i] = byte('0' + (n % 10))
			n /= 10
		}
	}
	return buf[i:]
}

// Itoa is Utoa with a leading '-' for negative n. buf should be length
// >= 20 for int64.
func Itoa(buf []byte, n int64) []byte {
	if n >= 0 {
		return Utoa(buf, uint64(n))
	}
	if len(buf) < 2 {
		return buf[:0]
	}
	// -n overflows for MinInt64; the uint64 conversion wraps to the
	// correct magnitude.
	s := Utoa(buf[1:], uint64(-n))
	i := len(buf) - len(s) - 1
	buf[i] = '-'
	return buf[i:]
}

// AppendUint appends the base-10 form of n to dst.
func AppendUint(dst []byte, n uint64) []byte {
	var tmp [20]byte
	return append(dst, Utoa(tmp[:], n)...)
}

// AppendField appends "label: n\n" to dst.
func AppendField(dst []byte, label string, n uint64) []byte {
	dst = append(dst, label...)
	dst = append(dst, ':', ' ')
	dst = AppendUint(dst, n)
	return append(dst, '\n')
}
