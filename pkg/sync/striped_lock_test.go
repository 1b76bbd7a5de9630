package sync

import (
	"fmt"
	base "sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripedLock_SerializesPerKey(t *testing.T) {
	workerCount := 256
	operationCount := 10000

	l := NewStripedLock(4)

	var wg base.WaitGroup
	start := make(chan struct{})
	counters := make([]int, workerCount)

	for i := 0; i < workerCount; i++ {
		wg.Add(1)

		go func(workerId int) {
			defer wg.Done()

			key := []byte(fmt.Sprintf("worker%d", workerId))

			<-start

			for j := 0; j < operationCount; j++ {
				mu := l.Get(key)
				mu.Lock()
				counters[workerId]++
				mu.Unlock()
			}
		}(i)
	}

	close(start)
	wg.Wait()

	for _, val := range counters {
		assert.EqualValues(t, operationCount, val)
	}
}

func TestStripedLock_SameKeySameLock(t *testing.T) {
	l := NewStripedLock(16)

	for i := 0; i < 64; i++ {
		key := []byte(fmt.Sprintf("mint%d", i))
		assert.Same(t, l.Get(key), l.Get(key))
	}
}
