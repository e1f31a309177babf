package feed

import (
	"reflect"
	"testing"

	"github.com/threatdeck/threatdeck/pkg/lifecycle"
)

func TestParseCycles(t *testing.T) {
	type args struct {
		data string
	}

	tests := []struct {
		name string
		args args
		want []lifecycle.Cycle
	}{
		{
			name: "versionOrderedNewestFirst",
			args: args{data: `[
				{"cycle": "8.0", "eol": "2026-04-30"},
				{"cycle": "8.4", "eol": "2029-04-30"},
				{"cycle": "5.7", "eol": "2023-10-31"}
			]`},
			want: []lifecycle.Cycle{
				{Cycle: "8.4", EOL: "2029-04-30"},
				{Cycle: "8.0", EOL: "2026-04-30"},
				{Cycle: "5.7", EOL: "2023-10-31"},
			},
		},
		{
			name: "booleanFalseEOL",
			args: args{data: `[
				{"cycle": "16.0", "eol": false},
				{"cycle": "15.0", "eol": "2027-01-11"}
			]`},
			want: []lifecycle.Cycle{
				{Cycle: "16.0", NoEOL: true},
				{Cycle: "15.0", EOL: "2027-01-11"},
			},
		},
		{
			name: "unparseableCycleKeepsFeedOrder",
			args: args{data: `[
				{"cycle": "8.0", "eol": "2026-04-30"},
				{"cycle": "vista", "eol": "2017-04-11"},
				{"cycle": "8.4", "eol": "2029-04-30"}
			]`},
			want: []lifecycle.Cycle{
				{Cycle: "8.0", EOL: "2026-04-30"},
				{Cycle: "vista", EOL: "2017-04-11"},
				{Cycle: "8.4", EOL: "2029-04-30"},
			},
		},
		{
			name: "notAnArray",
			args: args{data: `{"error": "not found"}`},
			want: []lifecycle.Cycle{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCycles([]byte(tt.args.data))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseCycles() got = %v, want %v", got, tt.want)
			}
		})
	}
}
