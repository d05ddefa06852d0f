package catalog

import (
	"regexp"
	"strconv"
)

var digitRun = regexp.MustCompile(`\d+`)

// IsPrime reports whether n is prime using trial division by odd numbers.
func IsPrime(n int) bool {
	if n <= 1 {
		return false
	}
	if n == 2 {
		return true
	}
	if n%2 == 0 {
		return false
	}
	for i := 3; i <= n/i; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// TitleNumber returns the first run of decimal digits in title.
func TitleNumber(title string) (int, bool) {
	run := digitRun.FindString(title)
	if run == "" {
		return 0, false
	}
	n, err := strconv.Atoi(run)
	if err != nil {
		return 0, false
	}
	return n, true
}

// HasPrimeSuffix matches books whose first number in the title is prime.
func HasPrimeSuffix(b Book) bool {
	n, ok := TitleNumber(b.Title)
	return ok && IsPrime(n)
}
