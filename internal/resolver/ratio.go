package resolver

// Ratio returns the Ratcliff/Obershelp similarity of a and b: twice the number
// of characters in matching blocks divided by the total length. Matching
// blocks are found by taking the longest common substring and recursing on the
// pieces to its left and right. Two empty strings are identical (1.0).
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchingChars(ra, rb)) / float64(total)
}

type span struct{ alo, ahi, blo, bhi int }

func matchingChars(a, b []rune) int {
	matched := 0
	queue := []span{{0, len(a), 0, len(b)}}
	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		i, j, k := longestMatch(a, b, s)
		if k == 0 {
			continue
		}
		matched += k
		if s.alo < i && s.blo < j {
			queue = append(queue, span{s.alo, i, s.blo, j})
		}
		if i+k < s.ahi && j+k < s.bhi {
			queue = append(queue, span{i + k, s.ahi, j + k, s.bhi})
		}
	}
	return matched
}

// longestMatch finds the longest common run inside s. Ties go to the run that
// starts earliest in a, then earliest in b.
func longestMatch(a, b []rune, s span) (besti, bestj, bestk int) {
	besti, bestj = s.alo, s.blo
	width := s.bhi - s.blo
	prev := make([]int, width+1)
	curr := make([]int, width+1)
	for i := s.alo; i < s.ahi; i++ {
		for j := s.blo; j < s.bhi; j++ {
			col := j - s.blo + 1
			if a[i] != b[j] {
				curr[col] = 0
				continue
			}
			k := prev[col-1] + 1
			curr[col] = k
			if k > bestk {
				besti, bestj, bestk = i-k+1, j-k+1, k
			}
		}
		prev, curr = curr, prev
	}
	return besti, bestj, bestk
}
