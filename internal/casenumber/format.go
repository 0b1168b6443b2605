package casenumber

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Escalated case numbers carry a marker segment so the two counting
// partitions can never produce the same string.
const escalatedSegment = "LGL"

// FormatNumber renders a sequential case number.
//
// Standard:  {firmPrefix}-{deptCode}-{year}-{seq, 4-digit padded}
// Escalated: {firmPrefix}-{deptCode}-LGL-{year}-{seq, 4-digit padded}
//
// Sequences past 9999 widen the final segment instead of erroring.
// This function is pure: no side effects, fully deterministic.
func FormatNumber(firmPrefix, deptCode string, year int, seq int64, escalated bool) string {
	parts := []string{firmPrefix, deptCode}
	if escalated {
		parts = append(parts, escalatedSegment)
	}
	parts = append(parts, strconv.Itoa(year), fmt.Sprintf("%04d", seq))
	return strings.Join(parts, "-")
}

// SeedPattern is the LIKE pattern matching every number FormatNumber can
// produce for one partition. Standard and escalated patterns are disjoint:
// the segment after the department code differs.
func SeedPattern(firmPrefix, deptCode string, year int, escalated bool) string {
	parts := []string{firmPrefix, deptCode}
	if escalated {
		parts = append(parts, escalatedSegment)
	}
	parts = append(parts, strconv.Itoa(year), "%")
	return strings.Join(parts, "-")
}

// ParseSequenceSuffix extracts the numeric sequence from a formatted case
// number. Returns 0 when the suffix is not numeric.
func ParseSequenceSuffix(number string) int64 {
	idx := strings.LastIndex(number, "-")
	if idx < 0 || idx == len(number)-1 {
		return 0
	}
	seq, err := strconv.ParseInt(number[idx+1:], 10, 64)
	if err != nil || seq < 0 {
		return 0
	}
	return seq
}

const fallbackAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// FallbackNumber builds a guaranteed-unique, non-sequential identifier for
// when firm or department metadata is unavailable or sequential allocation
// has been exhausted: CC-{unix millis}-{5 random chars}.
func FallbackNumber(now time.Time) string {
	buf := make([]byte, 5)
	if _, err := rand.Read(buf); err != nil {
		// Degrade to nanosecond entropy; the caller still holds a
		// globally unique millisecond timestamp.
		nanos := now.UnixNano()
		for i := range buf {
			buf[i] = fallbackAlphabet[int(nanos>>(uint(i)*6))%len(fallbackAlphabet)]
		}
	} else {
		for i := range buf {
			buf[i] = fallbackAlphabet[int(buf[i])%len(fallbackAlphabet)]
		}
	}
	return fmt.Sprintf("CC-%d-%s", now.UnixMilli(), string(buf))
}
