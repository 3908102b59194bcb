package memory_test

import (
	"testing"

	"github.com/serenelab/wellspring/pkg/adapters/memory"
	"github.com/serenelab/wellspring/pkg/ports"
)

func TestStore_Contract(t *testing.T) {
	ports.RunConversationStoreContract(t, memory.NewStore())
}
