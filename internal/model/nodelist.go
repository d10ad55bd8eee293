package model

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// MaxRangeLength is the largest number of nodes a range may expand to
const MaxRangeLength = 100000

var rangePattern = regexp.MustCompile(`^(\d+)\s*-\s*(\d+)$`)

// ParseNodeList parses a list of node numbers written as a range ("1-10",
// or "10-1" for a descending run), comma-separated numbers ("1,2,5") or a
// single number ("7"). Ranges are limited to MaxRangeLength nodes. Items
// of a comma list that are not numbers are skipped. An empty string yields
// an empty list.
func ParseNodeList(s string) ([]int, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, nil
	}

	if m := rangePattern.FindStringSubmatch(trimmed); m != nil {
		start, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, errors.Wrapf(ErrBadNodeList, "range start %q", m[1])
		}
		end, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, errors.Wrapf(ErrBadNodeList, "range end %q", m[2])
		}
		step := 1
		if start > end {
			step = -1
		}
		if (end-start)*step >= MaxRangeLength {
			return nil, errors.Wrapf(ErrBadNodeList, "range %d-%d is longer than %d nodes", start, end, MaxRangeLength)
		}
		out := make([]int, 0, (end-start)*step+1)
		for i := start; ; i += step {
			out = append(out, i)
			if i == end {
				break
			}
		}
		return out, nil
	}

	if strings.Contains(trimmed, ",") {
		var out []int
		for _, part := range strings.Split(trimmed, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				klog.Warningf("could not parse %q as a node number", strings.TrimSpace(part))
				continue
			}
			out = append(out, n)
		}
		if len(out) == 0 {
			return nil, ErrBadNodeList
		}
		return out, nil
	}

	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil, ErrBadNodeList
	}
	return []int{n}, nil
}
