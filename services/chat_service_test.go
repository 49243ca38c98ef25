package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConversationIDIsOrderIndependent(t *testing.T) {
	require.Equal(t, ConversationID("alice", "bob"), ConversationID("bob", "alice"))
	require.Equal(t, "alice#bob", ConversationID("bob", "alice"))
}
