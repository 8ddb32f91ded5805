package vocab

import "math"

// UnigramTableSize is the flat sampling table's length. The teacher
// uses 1e8; we keep the same order of magnitude.
const UnigramTableSize = 1e8

// UnigramPower is the exponent applied to raw counts before
// normalizing into sampling probabilities (Mikolov et al.'s 0.75).
const UnigramPower = 0.75

// UnigramTable is a flat array of vocabulary indices used to draw
// negative samples in proportion to count^UnigramPower.
type UnigramTable struct {
	table []int32
}

// BuildUnigramTable builds the table from v's current (post-reduce)
// vocabulary.
func BuildUnigramTable(v *Vocabulary) *UnigramTable {
	nodes := v.Nodes()
	if len(nodes) == 0 {
		return &UnigramTable{}
	}

	var total float64
	for _, n := range nodes {
		total += math.Pow(float64(n.Count), UnigramPower)
	}

	table := make([]int32, UnigramTableSize)
	i := 0
	d1 := math.Pow(float64(nodes[0].Count), UnigramPower) / total
	for a := 0; a < UnigramTableSize; a++ {
		table[a] = int32(nodes[i].Index)
		if float64(a)/float64(UnigramTableSize) > d1 {
			i++
			if i >= len(nodes) {
				i = len(nodes) - 1
			}
			d1 += math.Pow(float64(nodes[i].Count), UnigramPower) / total
		}
	}
	return &UnigramTable{table: table}
}

// Sample draws a uniform index in [0, U) and returns the vocabulary
// index it references.
func (u *UnigramTable) Sample(draw func(n int) int) int {
	if len(u.table) == 0 {
		return UnkIndex
	}
	return int(u.table[draw(len(u.table))])
}
