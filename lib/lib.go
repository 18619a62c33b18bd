/*package lib contains small utility functions shared by mdexport's
subpackages and by programs piping mdexport output into other tools. Almost
all of the heavy lifting is done by lib/'s subpackages.
*/
package lib

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Concatenate appends n to prefix as a zero-padded decimal with the given
// number of digits, e.g. Concatenate("plt", 7, 5) = "plt00007". Output
// artifacts of every export step are named this way.
func Concatenate(prefix string, n, digits int) string {
	return fmt.Sprintf("%s%0*d", prefix, digits, n)
}

// Float64sToBytes converts x to its on-disk representation in the given byte
// order.
func Float64sToBytes(x []float64, order binary.ByteOrder) []byte {
	buf := &bytes.Buffer{}
	err := binary.Write(buf, order, x)
	if err != nil {
		panic(err.Error())
	}
	return buf.Bytes()
}

// BytesToFloat64s converts the on-disk representation b back to values. The
// length of b must be a multiple of 8.
func BytesToFloat64s(b []byte, order binary.ByteOrder) []float64 {
	x := make([]float64, len(b)/8)
	err := binary.Read(bytes.NewReader(b), order, x)
	if err != nil {
		panic(err.Error())
	}
	return x
}
