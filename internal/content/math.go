package content

import (
	"fmt"

	"github.com/phrazzld/lexiplay/internal/domain"
)

// buildMathPool returns the arithmetic questions for a level. Difficulty
// moves from single digit sums through subtraction to times tables and
// division.
func buildMathPool(level int) []domain.MathQuestion {
	var pool []domain.MathQuestion
	add := func(question string, answer int) {
		pool = append(pool, domain.MathQuestion{Question: question, Answer: answer})
	}

	switch domain.ClampLevel(level) {
	case 0:
		for a := 1; a <= 4; a++ {
			for b := 1; b <= 3; b++ {
				add(fmt.Sprintf("%d + %d", a, b), a+b)
			}
		}
	case 1:
		for a := 3; a <= 9; a += 2 {
			for b := 2; b <= 8; b += 3 {
				add(fmt.Sprintf("%d + %d", a, b), a+b)
			}
		}
	case 2:
		for a := 11; a <= 20; a += 3 {
			for b := 2; b <= 9; b += 3 {
				add(fmt.Sprintf("%d - %d", a, b), a-b)
			}
		}
	case 3:
		for a := 2; a <= 5; a++ {
			for b := 3; b <= 9; b += 3 {
				add(fmt.Sprintf("%d × %d", a, b), a*b)
			}
		}
	default:
		for a := 6; a <= 9; a++ {
			for b := 4; b <= 8; b += 2 {
				add(fmt.Sprintf("%d × %d", a, b), a*b)
				add(fmt.Sprintf("%d ÷ %d", a*b, b), a)
			}
		}
	}
	return pool
}
