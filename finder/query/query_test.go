package query

import (
	"context"
	"testing"

	"github.com/abadojack/whatlanggo"

	"market-scout/utils"
)

func TestNormalizeEnglishPassesThrough(t *testing.T) {
	// English queries never reach the translation client, so a Normalizer
	// without one is enough here.
	n := &Normalizer{logger: utils.NewLogger()}

	q := "best soft toys for toddlers under five hundred rupees"
	got, err := n.Normalize(context.Background(), q)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got != q {
		t.Errorf("English query changed: %q → %q", q, got)
	}
}

func TestDetectFlagsHindi(t *testing.T) {
	info := whatlanggo.Detect("क्रिकेट के बारे में सबसे अच्छा वीडियो दिखाओ")
	if info.Lang == whatlanggo.Eng {
		t.Error("Hindi text detected as English")
	}
}
