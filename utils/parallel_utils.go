package utils

import (
	"runtime"
	"sync"
)

type PartitionMap struct {
	MaxIndex       int // MaxIndex is partitioned into ParallelDegree partitions
	ParallelDegree int
	Partitions     [][2]int // Beginning and end (exclusive) index of partitions
}

func NewPartitionMap(ParallelDegree, maxIndex int) (pm *PartitionMap) {
	if ParallelDegree < 1 {
		ParallelDegree = 1
	}
	if maxIndex > 0 && ParallelDegree > maxIndex {
		ParallelDegree = maxIndex
	}
	pm = &PartitionMap{
		MaxIndex:       maxIndex,
		ParallelDegree: ParallelDegree,
		Partitions:     make([][2]int, ParallelDegree),
	}
	for n := 0; n < ParallelDegree; n++ {
		pm.Partitions[n] = pm.split1D(n)
	}
	return
}

// getBucket finds the partition holding index k, bucketNum is -1 when k is out of range
func (pm *PartitionMap) getBucket(k int) (bucketNum, min, max int) {
	_, bucketNum, min, max = pm.getBucketWithTryCount(k)
	return
}

func (pm *PartitionMap) getBucketWithTryCount(k int) (tryCount, bucketNum, min, max int) {
	if k < 0 || k >= pm.MaxIndex {
		return 0, -1, 0, 0
	}
	// Initial guess assumes an even split
	bucketNum = int(float64(pm.ParallelDegree*k) / float64(pm.MaxIndex))
	for !(pm.Partitions[bucketNum][0] <= k && pm.Partitions[bucketNum][1] > k) {
		if pm.Partitions[bucketNum][0] > k {
			bucketNum--
		} else {
			bucketNum++
		}
		tryCount++
	}
	min, max = pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
	return
}

func (pm *PartitionMap) GetBucketRange(bucketNum int) (kMin, kMax int) {
	kMin, kMax = pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
	return
}

func (pm *PartitionMap) getBucketDimension(bn int) (kMax int) {
	var (
		k1, k2 = pm.GetBucketRange(bn)
	)
	kMax = k2 - k1
	return
}

func (pm *PartitionMap) split1D(threadNum int) (bucket [2]int) {
	// Splits one dimension into ParallelDegree pieces, with a maximum imbalance of one item
	var (
		Npart            = pm.MaxIndex / pm.ParallelDegree
		startAdd, endAdd int
		remainder        = pm.MaxIndex % pm.ParallelDegree
	)
	if remainder != 0 { // spread the remainder over the first chunks evenly
		if threadNum+1 > remainder {
			startAdd = remainder
		} else {
			startAdd = threadNum
			endAdd = 1
		}
	}
	bucket[0] = threadNum*Npart + startAdd
	bucket[1] = bucket[0] + Npart + endAdd
	return
}

// GetParallelDegree returns ProcLimit, or the number of CPUs when ProcLimit is zero
func GetParallelDegree(ProcLimit int) (ParallelDegree int) {
	if ProcLimit > 0 {
		return ProcLimit
	}
	return runtime.NumCPU()
}

// Serial runs an inclusive index range in order on the calling goroutine
type Serial struct{}

// Sequential marks Serial for recon sweeps, which then skip the closure
func (Serial) Sequential() {}

func (Serial) For(lo, hi int, body func(i int)) {
	for i := lo; i <= hi; i++ {
		body(i)
	}
}

// Parallel shards an inclusive index range over ParallelDegree go routines
// and returns once every index has been visited.
type Parallel struct {
	ParallelDegree int
}

func NewParallel(ProcLimit int) Parallel {
	return Parallel{ParallelDegree: GetParallelDegree(ProcLimit)}
}

func (p Parallel) For(lo, hi int, body func(i int)) {
	var (
		n  = hi - lo + 1
		wg = sync.WaitGroup{}
	)
	if n <= 0 {
		return
	}
	pm := NewPartitionMap(p.ParallelDegree, n)
	if pm.ParallelDegree == 1 {
		Serial{}.For(lo, hi, body)
		return
	}
	for np := 0; np < pm.ParallelDegree; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			kMin, kMax := pm.GetBucketRange(np)
			for i := kMin; i < kMax; i++ {
				body(lo + i)
			}
		}(np)
	}
	wg.Wait()
}
