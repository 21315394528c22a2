package common

// WipeByteArray zeroes the buffer in place. Used for short-lived password
// material before it goes out of scope.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
