package feedcache

import (
	"reflect"
	"testing"

	"github.com/threatdeck/threatdeck/pkg/feed"
)

func TestReplaceAndRecords(t *testing.T) {
	c := Client{Store: t.TempDir()}

	if err := c.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer c.DB.Close()

	first := []feed.KevRecord{
		{CVEID: "CVE-2024-0001", VendorProject: "Microsoft", Product: "Windows", DateAdded: "2024-01-01"},
		{CVEID: "CVE-2024-0002", VendorProject: "Cisco", Product: "IOS XE", DateAdded: "2024-01-02"},
	}

	if err := c.Replace(first); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	got, err := c.Records()
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}

	if !reflect.DeepEqual(got, first) {
		t.Errorf("Records() got = %v, want %v", got, first)
	}

	// A snapshot replace never accumulates old rows
	second := []feed.KevRecord{
		{CVEID: "CVE-2024-0003", VendorProject: "Citrix", Product: "NetScaler", DateAdded: "2024-01-03"},
	}

	if err := c.Replace(second); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	got, err = c.Records()
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}

	if !reflect.DeepEqual(got, second) {
		t.Errorf("Records() after swap got = %v, want %v", got, second)
	}
}
