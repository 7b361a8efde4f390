package money

// DivRound returns n/d rounded half away from zero. d must be positive.
func DivRound(n, d int64) int64 {
	if d <= 0 {
		panic("money: non-positive divisor")
	}
	if n < 0 {
		return -DivRound(-n, d)
	}
	return (2*n + d) / (2 * d)
}

// Percent returns amount*pct/100 rounded half away from zero.
func Percent(amount, pct int64) int64 {
	return DivRound(amount*pct, 100)
}
