package classify

import (
	"reflect"
	"testing"

	"github.com/threatdeck/threatdeck/config"
	"github.com/threatdeck/threatdeck/pkg/feed"
)

func fixtureTable() []config.VendorCategory {
	return []config.VendorCategory{
		{Name: "Microsoft", Keywords: []string{"microsoft"}},
		{Name: "Cisco", Keywords: []string{"cisco"}},
		{Name: "Check Point", Keywords: []string{"checkpoint", "check point"}},
	}
}

func TestCategory(t *testing.T) {
	type args struct {
		vendor string
		table  []config.VendorCategory
	}

	tests := []struct {
		name string
		args args
		want string
	}{
		{
			name: "exactVendor",
			args: args{vendor: "Microsoft", table: fixtureTable()},
			want: "Microsoft",
		},
		{
			name: "caseInsensitive",
			args: args{vendor: "CISCO", table: fixtureTable()},
			want: "Cisco",
		},
		{
			name: "substringVendor",
			args: args{vendor: "Cisco Systems, Inc.", table: fixtureTable()},
			want: "Cisco",
		},
		{
			name: "alternateSpelling",
			args: args{vendor: "CheckPoint", table: fixtureTable()},
			want: "Check Point",
		},
		{
			name: "unmatchedFallsToCatchAll",
			args: args{vendor: "Fortinet", table: fixtureTable()},
			want: "Other",
		},
		{
			name: "emptyVendorFallsToCatchAll",
			args: args{vendor: "", table: fixtureTable()},
			want: "Other",
		},
		{
			name: "declarationOrderWins",
			args: args{
				vendor: "Microsoft",
				table: []config.VendorCategory{
					{Name: "Soft Vendors", Keywords: []string{"soft"}},
					{Name: "Microsoft", Keywords: []string{"microsoft"}},
				},
			},
			want: "Soft Vendors",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Category(tt.args.vendor, tt.args.table, "Other")
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Category() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRun(t *testing.T) {
	conf := config.Default()
	conf.Vendors = fixtureTable()

	records := []feed.KevRecord{
		{CVEID: "CVE-2024-0001", VendorProject: "Microsoft", DateAdded: "2024-01-02"},
		{CVEID: "CVE-2024-0002", VendorProject: "Cisco", DateAdded: "2024-01-04"},
		{CVEID: "CVE-2024-0003", VendorProject: "Check Point", DateAdded: "2024-01-03"},
		{CVEID: "CVE-2024-0004", VendorProject: "SomeForge", DateAdded: "2024-01-01"},
	}

	vulns := Run(records, conf)

	if len(vulns) != 4 {
		t.Fatalf("Run() kept %d records, want 4", len(vulns))
	}

	counts := map[string]int{}
	for _, v := range vulns {
		counts[v.Category] += 1
	}

	want := map[string]int{"Microsoft": 1, "Cisco": 1, "Check Point": 1, "Other": 1}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("Run() categories = %v, want %v", counts, want)
	}

	// Newest first
	if vulns[0].CVEID != "CVE-2024-0002" || vulns[3].CVEID != "CVE-2024-0004" {
		t.Errorf("Run() order = %v, want newest first", []string{vulns[0].CVEID, vulns[3].CVEID})
	}

	for _, v := range vulns {
		if v.Category == "" {
			t.Errorf("Run() left %s without a category", v.CVEID)
		}

		if v.Link != "https://nvd.nist.gov/vuln/detail/"+v.CVEID {
			t.Errorf("Run() link = %v", v.Link)
		}

		if v.Category == "Microsoft" && v.HuntingQuery == "" {
			t.Errorf("Run() Microsoft entry %s has no hunting query", v.CVEID)
		}

		if v.Category != "Microsoft" && v.HuntingQuery != "" {
			t.Errorf("Run() %s entry %s has a hunting query", v.Category, v.CVEID)
		}
	}
}

func TestRunCap(t *testing.T) {
	conf := config.Default()
	conf.Vendors = fixtureTable()
	conf.VulnCap = 2

	records := []feed.KevRecord{
		{CVEID: "CVE-2024-0001", VendorProject: "Microsoft", DateAdded: "2024-01-01"},
		{CVEID: "CVE-2024-0002", VendorProject: "Cisco", DateAdded: "2024-01-02"},
		{CVEID: "CVE-2024-0003", VendorProject: "Cisco", DateAdded: "2024-01-03"},
	}

	vulns := Run(records, conf)

	if len(vulns) != 2 {
		t.Fatalf("Run() kept %d records, want 2", len(vulns))
	}

	if vulns[0].CVEID != "CVE-2024-0003" {
		t.Errorf("Run() first entry = %s, want CVE-2024-0003", vulns[0].CVEID)
	}
}
