package reconcile

import "testing"

func TestNormalizeVersionPadsAndTruncates(t *testing.T) {
	if got := NormalizeVersion("1.2"); got != [4]int{1, 2, 0, 0} {
		t.Fatalf("normalize 1.2: got=%v", got)
	}
	if got := NormalizeVersion("1.2.3.4.5"); got != [4]int{1, 2, 3, 4} {
		t.Fatalf("normalize 1.2.3.4.5: got=%v", got)
	}
	if got := NormalizeVersion(""); got != [4]int{0, 0, 0, 0} {
		t.Fatalf("normalize empty: got=%v", got)
	}
	if got := NormalizeVersion("1.x.3"); got != [4]int{1, 0, 3, 0} {
		t.Fatalf("normalize 1.x.3: got=%v", got)
	}
}

func TestCompareVersionsTreatsMissingSegmentsAsZero(t *testing.T) {
	if got := CompareVersions("1.2", "1.2.0.0"); got != 0 {
		t.Fatalf("1.2 vs 1.2.0.0: want=0 got=%d", got)
	}
	if got := CompareVersions("1.2.1", "1.2"); got != 1 {
		t.Fatalf("1.2.1 vs 1.2: want=1 got=%d", got)
	}
	if got := CompareVersions("1.2", "1.10"); got != -1 {
		t.Fatalf("1.2 vs 1.10: want=-1 got=%d", got)
	}
	if got := CompareVersions("", "0.0.0.1"); got != -1 {
		t.Fatalf("empty vs 0.0.0.1: want=-1 got=%d", got)
	}
	if got := CompareVersions("garbage", ""); got != 0 {
		t.Fatalf("garbage vs empty: want=0 got=%d", got)
	}
}
