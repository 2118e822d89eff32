// utils/format.go - display formatting helpers
package utils

import "fmt"

// FormatAmount renders an amount in units of 10,000 yen as 億/万円 text.
// 12345 -> "1億2345万円", 10000 -> "1億円", 500 -> "500万円".
func FormatAmount(man int) string {
	oku := man / 10000
	rest := man % 10000

	if oku > 0 && rest > 0 {
		return fmt.Sprintf("%d億%d万円", oku, rest)
	}
	if oku > 0 {
		return fmt.Sprintf("%d億円", oku)
	}
	return fmt.Sprintf("%d万円", rest)
}

// Chunk splits a slice into consecutive pieces of at most size elements.
// The last chunk may be shorter. A size below 1 returns nil.
func Chunk[T any](items []T, size int) [][]T {
	if size < 1 {
		return nil
	}
	var chunks [][]T
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}
