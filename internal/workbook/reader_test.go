package workbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_isCustomDateFormat(t *testing.T) {
	tests := []struct {
		format string
		want   bool
	}{
		{format: "yyyy-mm-dd", want: true},
		{format: "[$-409]mmm d", want: true},
		{format: "#,##0.00", want: false},
		{format: `0.0"days"`, want: false},
		{format: "0%", want: false},
		{format: "#,##0.00;[Red]-#,##0.00", want: false},
		{format: "[Magenta]0;[Yellow]-0", want: false},
		{format: `[$€-2] #,##0.00_);\(#,##0.00\)`, want: false},
		{format: `#,##0_ ;* "-"`, want: false},
		{format: "hh:mm:ss", want: true},
		{format: "[h]:mm", want: true},
		{format: `"date "0`, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			assert.Equal(t, tt.want, isCustomDateFormat(tt.format))
		})
	}
}
