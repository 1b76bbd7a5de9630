package memory

import (
	"testing"

	"github.com/marscorp-games/exchange-server/pkg/exchange/data/vesting/tests"
)

func TestVestingMemoryStore(t *testing.T) {
	testStore := New()
	teardown := func() {
		testStore.(*store).reset()
	}
	tests.RunTests(t, testStore, teardown)
}
