package usecase

import (
	"sort"
	"strconv"
	"strings"
)

// parseIndexSelection extracts 1-based display indices from a message like
// "2", "1 4" or "1, 4". Tokens that are not pure digits are ignored.
// The result is sorted and de-duplicated.
func parseIndexSelection(text string) []int {
	replacer := strings.NewReplacer(",", " ", ";", " ")
	seen := make(map[int]bool)

	var nums []int
	for _, token := range strings.Fields(replacer.Replace(text)) {
		n, err := strconv.Atoi(token)
		if err != nil || n <= 0 {
			continue
		}
		if !seen[n] {
			seen[n] = true
			nums = append(nums, n)
		}
	}

	sort.Ints(nums)
	return nums
}

// splitSelection partitions indices into those inside 1..size and the rest
func splitSelection(nums []int, size int) (valid, outOfRange []int) {
	for _, n := range nums {
		if n >= 1 && n <= size {
			valid = append(valid, n)
		} else {
			outOfRange = append(outOfRange, n)
		}
	}
	return valid, outOfRange
}

// parseAddLines splits a freeform add message into item names, one per
// non-empty trimmed line.
func parseAddLines(text string) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
