package vocab

import "testing"

func TestBuildUnigramTableApproximatesPowerLaw(t *testing.T) {
	v := New()
	for i := 0; i < 100; i++ {
		v.AddWord("common")
	}
	for i := 0; i < 10; i++ {
		v.AddWord("rare")
	}
	v.AddWord("once")

	table := BuildUnigramTable(v)

	counts := map[int]int{}
	var state uint64 = 1
	next := func(n int) int {
		state = state*1103515245 + 12345
		return int(state % uint64(n))
	}
	const samples = 5000
	for i := 0; i < samples; i++ {
		counts[table.Sample(next)]++
	}

	commonIdx, _ := v.IndexOf("common")
	rareIdx, _ := v.IndexOf("rare")
	onceIdx, _ := v.IndexOf("once")

	if counts[commonIdx] <= counts[rareIdx] {
		t.Errorf("common word should be sampled more often than rare word")
	}
	if counts[rareIdx] <= counts[onceIdx] {
		t.Errorf("rare word should be sampled more often than a singleton")
	}
}

func TestUnigramSampleEmptyTable(t *testing.T) {
	u := &UnigramTable{}
	if got := u.Sample(func(n int) int { return 0 }); got != UnkIndex {
		t.Errorf("Sample() on empty table = %v, want UnkIndex", got)
	}
}
