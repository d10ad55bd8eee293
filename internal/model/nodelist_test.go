package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNodeList(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int
		wantErr error
	}{
		{name: "ascending range", input: "1-5", want: []int{1, 2, 3, 4, 5}},
		{name: "descending range", input: "4-1", want: []int{4, 3, 2, 1}},
		{name: "range with spaces", input: " 3 - 4 ", want: []int{3, 4}},
		{name: "single element range", input: "6-6", want: []int{6}},
		{name: "comma list", input: "1,2,3,7", want: []int{1, 2, 3, 7}},
		{name: "comma list skips junk", input: "1, x ,3", want: []int{1, 3}},
		{name: "single number", input: "12", want: []int{12}},
		{name: "empty input", input: "  ", want: nil},
		{name: "word", input: "all", wantErr: ErrBadNodeList},
		{name: "only junk in list", input: "a,b", wantErr: ErrBadNodeList},
		{name: "range end overflows int", input: "1-99999999999999999999", wantErr: ErrBadNodeList},
		{name: "range start overflows int", input: "99999999999999999999-1", wantErr: ErrBadNodeList},
		{name: "range too long", input: "1-2000000000", wantErr: ErrBadNodeList},
		{name: "longest range", input: "100000-1", want: descending(100000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNodeList(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func descending(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = n - i
	}
	return out
}
