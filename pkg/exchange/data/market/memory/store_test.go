package memory

import (
	"testing"

	"github.com/marscorp-games/exchange-server/pkg/exchange/data/market/tests"
)

func TestMarketMemoryStore(t *testing.T) {
	testStore := New()
	teardown := func() {
		testStore.(*store).reset()
	}
	tests.RunTests(t, testStore, teardown)
}
