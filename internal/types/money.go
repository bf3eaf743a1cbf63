// README: Toll amount value object used across modules.
package types

import "strconv"

// Money is a whole number of currency units.
type Money int64

func (m Money) String() string {
	return "$" + strconv.FormatInt(int64(m), 10)
}
