package token_test

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"supersimple.dev/cloud/internal/dynamodb/token"
)

func TestEncryptionMarshaler(t *testing.T) {
	marshaler := token.NewGCM()
	userId := "user-1234"
	lastKey := map[string]types.AttributeValue{
		"PK":     &types.AttributeValueMemberS{Value: "USER#user-1234#CLIENT#abc"},
		"GSI1SK": &types.AttributeValueMemberS{Value: "NAME#Alice"},
	}

	t.Run("thing==Unmarshal(Marshal(thing))", func(t *testing.T) {
		opaque, err := marshaler.Marshal(userId, lastKey)
		require.NoError(t, err)
		require.NotNil(t, opaque)

		recovered, err := marshaler.Unmarshal(userId, opaque)
		require.NoError(t, err)
		pk, ok := recovered["PK"].(*types.AttributeValueMemberS)
		require.True(t, ok)
		assert.Equal(t, "USER#user-1234#CLIENT#abc", pk.Value)
		sk, ok := recovered["GSI1SK"].(*types.AttributeValueMemberS)
		require.True(t, ok)
		assert.Equal(t, "NAME#Alice", sk.Value)
	})

	t.Run("EmptyLastKeyYieldsNilToken", func(t *testing.T) {
		opaque, err := marshaler.Marshal(userId, nil)
		require.NoError(t, err)
		assert.Nil(t, opaque)
	})

	t.Run("NilTokenYieldsNilStartKey", func(t *testing.T) {
		recovered, err := marshaler.Unmarshal(userId, nil)
		require.NoError(t, err)
		assert.Nil(t, recovered)
	})

	t.Run("TokenBoundToUser", func(t *testing.T) {
		opaque, err := marshaler.Marshal(userId, lastKey)
		require.NoError(t, err)

		recovered, err := marshaler.Unmarshal("someone-else", opaque)
		assert.Error(t, err)
		assert.Nil(t, recovered)
	})
}
