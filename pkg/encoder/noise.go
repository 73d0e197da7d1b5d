package encoder

import (
	"encoding/binary"
	randv2 "math/rand/v2"

	"github.com/cespare/xxhash/v2"
	"gonum.org/v1/gonum/stat/distuv"
)

// rowSeed derives an independent seed for one output cell from the base seed,
// the column name and the row index. Each cell gets its own generator, so
// noise is reproducible no matter how rows are partitioned across workers.
func rowSeed(seed int64, column string, row int) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(seed))
	binary.LittleEndian.PutUint64(buf[8:], uint64(row))
	d := xxhash.New()
	d.Write(buf[:])
	d.WriteString(column)
	return d.Sum64()
}

// noise draws a single value from Uniform(-width, width) for the given cell.
func noise(seed int64, column string, row int, width float64) float64 {
	h := rowSeed(seed, column, row)
	u := distuv.Uniform{
		Min: -width,
		Max: width,
		Src: randv2.NewPCG(h, h^0x9e3779b97f4a7c15),
	}
	return u.Rand()
}
