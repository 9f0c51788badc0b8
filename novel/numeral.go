package novel

import (
	"errors"
	"fmt"
)

// ErrInvalidNumeral is returned when a string is not a Chinese numeral.
var ErrInvalidNumeral = errors.New("invalid chinese numeral")

var numeralDigits = map[rune]int64{
	'零': 0, '〇': 0,
	'一': 1, '二': 2, '两': 2, '三': 3, '四': 4,
	'五': 5, '六': 6, '七': 7, '八': 8, '九': 9,
}

var numeralUnits = map[rune]int64{
	'十': 10, '百': 100, '千': 1000,
}

const (
	wan = 10_000
	yi  = 100_000_000
)

// DecodeNumeral converts a simplified Chinese numeral to an integer.
//
// Positional forms (一百零五, 十二, 三千万, 一亿二千万) and digit-by-digit
// forms (二〇二四) are both accepted. A unit with no preceding digit counts
// as one of that unit, so 十二 is 12.
func DecodeNumeral(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidNumeral)
	}

	var (
		high    int64 // multiples of 亿
		mid     int64 // multiples of 万 below 亿
		section int64 // below 万
		number  int64 // pending digit run
		inDigit bool
	)
	for _, r := range s {
		if d, ok := numeralDigits[r]; ok {
			if inDigit {
				number = number*10 + d
			} else {
				number = d
			}
			inDigit = true
			continue
		}
		inDigit = false

		switch {
		case numeralUnits[r] != 0:
			if number == 0 {
				number = 1
			}
			section += number * numeralUnits[r]
		case r == '万':
			mid += (section + number) * wan
			section = 0
		case r == '亿':
			high += (mid + section + number) * yi
			mid, section = 0, 0
		default:
			return 0, fmt.Errorf("%w: unexpected %q in %q", ErrInvalidNumeral, r, s)
		}
		number = 0
	}
	return high + mid + section + number, nil
}
