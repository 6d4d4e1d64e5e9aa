package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"shiftboard.com/shiftboard/internal/constants"
	"shiftboard.com/shiftboard/internal/query"
)

// OptionCache stores filter-option search pages. Entries are scoped to a
// generation; Invalidate starts a new generation so no page survives a
// change to shift state.
//
// Get reports the generation it read under, hit or miss. Set must be given
// that generation; a page scanned before an Invalidate is never stored
// under the newer generation.
type OptionCache interface {
	Get(ctx context.Context, key string) (values []string, gen int64, ok bool, err error)

	Set(ctx context.Context, gen int64, key string, values []string) error

	Invalidate(ctx context.Context) error
}

// OptionKey identifies one page of a filter-option search. Date bounds are
// rounded to the minute so keys stay stable across requests.
func OptionKey(axis constants.FilterAxis, search string, filters query.Filters, page query.Page) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%s|%s|%s|%d|%d", axis, strings.ToLower(strings.TrimSpace(search)),
		filters.Location, filters.JobType, page.Num, page.Size)
	if filters.PayRateMin != nil {
		fmt.Fprintf(&b, "|min=%g", *filters.PayRateMin)
	}
	if filters.DateFrom != nil {
		fmt.Fprintf(&b, "|from=%s", filters.DateFrom.UTC().Truncate(time.Minute).Format(time.RFC3339))
	}
	if filters.DateTo != nil {
		fmt.Fprintf(&b, "|to=%s", filters.DateTo.UTC().Format(time.DateOnly))
	}
	sum := sha1.Sum([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}
