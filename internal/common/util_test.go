package common

import "testing"

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("byte %d not wiped: %d", i, v)
		}
	}
}

func TestWipeByteArray_EmptyAndNil(t *testing.T) {
	WipeByteArray(nil)
	WipeByteArray([]byte{})
}
