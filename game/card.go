package game

import "math/rand/v2"

const (
	// Size is the card grid dimension.
	Size = 5
	// MaxNumber is the highest drawable number.
	MaxNumber = 75
	// FreeCell is the sentinel stored in the center cell. It always
	// counts as hit, and the same value seeds an empty draw history.
	FreeCell = 0

	rowSpan = MaxNumber / Size // width of each letter range
)

// Card is a player's 5x5 grid. Row i holds 5 distinct numbers from
// the range [i*15+1, (i+1)*15]; the center cell is forced to FreeCell.
type Card [Size][Size]int

// GenerateCard builds a fresh card. Values are drawn uniformly per
// row with rejection sampling to avoid duplicates within the row.
// Rows use disjoint ranges, so no cross-row check is needed.
func GenerateCard() Card {
	var card Card
	for row := 0; row < Size; row++ {
		lo := row*rowSpan + 1
		used := make(map[int]bool, Size)
		for col := 0; col < Size; col++ {
			n := lo + rand.IntN(rowSpan)
			for used[n] {
				n = lo + rand.IntN(rowSpan)
			}
			used[n] = true
			card[row][col] = n
		}
	}
	card[Size/2][Size/2] = FreeCell
	return card
}

// CheckForWin reports whether any full row, full column, or either
// diagonal of card is covered by called. A cell is covered when its
// value is FreeCell or appears in called. Pure, no side effects.
func CheckForWin(card Card, called []int) bool {
	hit := make(map[int]bool, len(called))
	for _, n := range called {
		hit[n] = true
	}
	covered := func(n int) bool {
		return n == FreeCell || hit[n]
	}

	for i := 0; i < Size; i++ {
		rowWin, colWin := true, true
		for j := 0; j < Size; j++ {
			if !covered(card[i][j]) {
				rowWin = false
			}
			if !covered(card[j][i]) {
				colWin = false
			}
		}
		if rowWin || colWin {
			return true
		}
	}

	diagWin, antiWin := true, true
	for i := 0; i < Size; i++ {
		if !covered(card[i][i]) {
			diagWin = false
		}
		if !covered(card[i][Size-1-i]) {
			antiWin = false
		}
	}
	return diagWin || antiWin
}

// GenerateDistinctNumbers returns a uniformly random permutation of
// 1..count. The coordinator consumes it as a stack, popping from the
// end until the pool is empty.
func GenerateDistinctNumbers(count int) []int {
	nums := make([]int, count)
	for i := range nums {
		nums[i] = i + 1
	}
	rand.Shuffle(len(nums), func(i, j int) { nums[i], nums[j] = nums[j], nums[i] })
	return nums
}

// RemainingPool returns a shuffled pool of 1..MaxNumber minus the
// numbers already drawn, so an in-progress round can rebuild its pool
// from durable history without ever drawing a number twice.
func RemainingPool(drawn []int) []int {
	taken := make(map[int]bool, len(drawn))
	for _, n := range drawn {
		taken[n] = true
	}
	nums := make([]int, 0, MaxNumber)
	for n := 1; n <= MaxNumber; n++ {
		if !taken[n] {
			nums = append(nums, n)
		}
	}
	rand.Shuffle(len(nums), func(i, j int) { nums[i], nums[j] = nums[j], nums[i] })
	return nums
}
