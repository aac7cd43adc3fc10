package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"supersimple.dev/cloud/internal/data"
	"supersimple.dev/cloud/internal/dynamodb/audits"
	"supersimple.dev/cloud/internal/dynamodb/clients"
	"supersimple.dev/cloud/internal/dynamodb/decks"
	"supersimple.dev/cloud/internal/dynamodb/invoices"
	"supersimple.dev/cloud/internal/dynamodb/token"
	"supersimple.dev/cloud/internal/exceptions"
	"supersimple.dev/cloud/internal/keys"
	"supersimple.dev/cloud/internal/test"
)

const tableName = "SuperSimpleData"

func newClientService(t *testing.T) (data.ClientDataService, *test.FakeDynamoDB) {
	t.Helper()
	fake := test.NewFakeDynamoDB()
	return clients.NewClientService(tableName, fake, token.NewGCM()), fake
}

func TestCreateClient(t *testing.T) {
	ctx := context.Background()
	service, fake := newClientService(t)

	t.Run("AssignsIdAndDefaults", func(t *testing.T) {
		created, err := service.Create(ctx, "u1", data.ClientInputDTO{
			Name: data.Some("Alice"),
		})
		require.NoError(t, err)
		assert.NotEmpty(t, created.Id)
		assert.Equal(t, "Alice", created.Name)
		assert.Equal(t, "u1", created.UserId)
		assert.Equal(t, "NAME#Alice", created.GSI1SK)
		assert.Equal(t, []string{}, created.Tags)
		assert.Nil(t, created.Email)
		assert.Equal(t, created.CreatedAt, created.UpdatedAt)
		assert.Equal(t, created.CreatedAt, created.SyncedAt)

		// Unset optionals are absent from storage, not stored as null.
		item, ok := fake.Item(created.PK, created.SK)
		require.True(t, ok)
		_, hasEmail := item["email"]
		assert.False(t, hasEmail)
	})

	t.Run("MissingNameRejected", func(t *testing.T) {
		_, err := service.Create(ctx, "u1", data.ClientInputDTO{
			Email: data.Some("a@b.c"),
		})
		var invalid *exceptions.InvalidInputError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("DuplicateIdConflicts", func(t *testing.T) {
		first, err := service.Create(ctx, "u1", data.ClientInputDTO{
			Id:   data.Some("fixed-id"),
			Name: data.Some("First"),
		})
		require.NoError(t, err)

		_, err = service.Create(ctx, "u1", data.ClientInputDTO{
			Id:   data.Some("fixed-id"),
			Name: data.Some("Second"),
		})
		var conflict *exceptions.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "ConflictException", conflict.ErrorType())

		// First record untouched by the failed second create.
		got, err := service.Get(ctx, "u1", "fixed-id")
		require.NoError(t, err)
		assert.Equal(t, first.Name, got.Name)
	})
}

func TestUpdateClient(t *testing.T) {
	ctx := context.Background()
	service, _ := newClientService(t)

	seed := func(t *testing.T, id string) data.ClientDTO {
		t.Helper()
		created, err := service.Create(ctx, "u1", data.ClientInputDTO{
			Id:        data.Some(id),
			Name:      data.Some("Alice"),
			Email:     data.Some("alice@example.com"),
			Tags:      data.Some([]string{"friend"}),
			CreatedAt: data.Some(int64(100)),
			UpdatedAt: data.Some(int64(100)),
		})
		require.NoError(t, err)
		return created
	}

	t.Run("PartialUpdatePreservesOtherFields", func(t *testing.T) {
		seed(t, "c-partial")
		updated, err := service.Update(ctx, "u1", "c-partial", data.ClientInputDTO{
			Tags: data.Some([]string{"vip"}),
		})
		require.NoError(t, err)
		assert.Equal(t, "Alice", updated.Name)
		require.NotNil(t, updated.Email)
		assert.Equal(t, "alice@example.com", *updated.Email)
		assert.Equal(t, []string{"vip"}, updated.Tags)
		assert.Greater(t, updated.UpdatedAt, int64(100))
		assert.Greater(t, updated.SyncedAt, int64(100))
	})

	t.Run("RenameFollowsListOrder", func(t *testing.T) {
		seed(t, "c-rename")
		updated, err := service.Update(ctx, "u1", "c-rename", data.ClientInputDTO{
			Name: data.Some("Zoe"),
		})
		require.NoError(t, err)
		assert.Equal(t, "NAME#Zoe", updated.GSI1SK)
	})

	t.Run("ExplicitNullClearsField", func(t *testing.T) {
		seed(t, "c-clear")
		updated, err := service.Update(ctx, "u1", "c-clear", data.ClientInputDTO{
			Email: data.Null[string](),
		})
		require.NoError(t, err)
		assert.Nil(t, updated.Email)
	})

	t.Run("NoFieldsRejectedBeforeWrite", func(t *testing.T) {
		seed(t, "c-empty")
		_, err := service.Update(ctx, "u1", "c-empty", data.ClientInputDTO{})
		var invalid *exceptions.InvalidInputError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("MissingRecordNotFound", func(t *testing.T) {
		_, err := service.Update(ctx, "u1", "never-created", data.ClientInputDTO{
			Name: data.Some("Ghost"),
		})
		var notFound *exceptions.NotFoundError
		require.ErrorAs(t, err, &notFound)
	})

	t.Run("ForeignRecordIndistinguishableFromMissing", func(t *testing.T) {
		seed(t, "c-owned")
		_, err := service.Update(ctx, "intruder", "c-owned", data.ClientInputDTO{
			Name: data.Some("Taken"),
		})
		var notFound *exceptions.NotFoundError
		require.ErrorAs(t, err, &notFound)

		_, err = service.Get(ctx, "intruder", "c-owned")
		require.ErrorAs(t, err, &notFound)
	})
}

func TestListClients(t *testing.T) {
	ctx := context.Background()
	service, _ := newClientService(t)

	for _, name := range []string{"Cleo", "Alice", "Bob"} {
		_, err := service.Create(ctx, "u1", data.ClientInputDTO{
			Name: data.Some(name),
		})
		require.NoError(t, err)
	}

	t.Run("AlphabeticalOrder", func(t *testing.T) {
		results, err := service.List(ctx, "u1", data.QueryParams{})
		require.NoError(t, err)
		require.Len(t, results.Items, 3)
		assert.Equal(t, "Alice", results.Items[0].Name)
		assert.Equal(t, "Bob", results.Items[1].Name)
		assert.Equal(t, "Cleo", results.Items[2].Name)
		assert.Nil(t, results.NextToken)
	})

	t.Run("PaginationWithOpaqueToken", func(t *testing.T) {
		first, err := service.List(ctx, "u1", data.QueryParams{Limit: 2})
		require.NoError(t, err)
		require.Len(t, first.Items, 2)
		require.NotNil(t, first.NextToken)

		second, err := service.List(ctx, "u1", data.QueryParams{Limit: 2, NextToken: first.NextToken})
		require.NoError(t, err)
		require.Len(t, second.Items, 1)
		assert.Equal(t, "Cleo", second.Items[0].Name)
		assert.Nil(t, second.NextToken)
	})

	t.Run("OtherUsersSeeNothing", func(t *testing.T) {
		results, err := service.List(ctx, "u2", data.QueryParams{})
		require.NoError(t, err)
		assert.Empty(t, results.Items)
	})
}

func TestListInvoicesNewestFirst(t *testing.T) {
	ctx := context.Background()
	fake := test.NewFakeDynamoDB()
	service := invoices.NewInvoiceService(tableName, fake, token.NewGCM())

	lineItems := data.Some([]data.LineItemDTO{{Description: "work", Quantity: 1, UnitPrice: 100}})
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	for i := 0; i < 3; i++ {
		_, err := service.Create(ctx, "u1", data.InvoiceInputDTO{
			ClientName: data.Some(fmt.Sprintf("Client %d", i)),
			LineItems:  lineItems,
			CreatedAt:  data.Some(base + int64(i)*86_400_000),
		})
		require.NoError(t, err)
	}

	results, err := service.List(ctx, "u1", data.QueryParams{})
	require.NoError(t, err)
	require.Len(t, results.Items, 3)
	assert.Equal(t, "Client 2", results.Items[0].ClientName)
	assert.Equal(t, "Client 0", results.Items[2].ClientName)
}

func TestSyncClients(t *testing.T) {
	ctx := context.Background()
	service, fake := newClientService(t)

	t.Run("BatchUpsertsHonorOfflineTimestamps", func(t *testing.T) {
		synced, err := service.Sync(ctx, "u1", []data.ClientInputDTO{
			{
				Id:        data.Some("offline-1"),
				Name:      data.Some("Offline"),
				CreatedAt: data.Some(int64(100)),
				UpdatedAt: data.Some(int64(200)),
			},
			{
				Name: data.Some("Fresh"),
			},
		})
		require.NoError(t, err)
		require.Len(t, synced, 2)
		assert.Equal(t, int64(100), synced[0].CreatedAt)
		assert.Equal(t, int64(200), synced[0].UpdatedAt)
		assert.Greater(t, synced[0].SyncedAt, int64(200))
	})

	t.Run("FullBatchAccepted", func(t *testing.T) {
		inputs := make([]data.ClientInputDTO, data.MaxSyncBatch)
		for i := range inputs {
			inputs[i] = data.ClientInputDTO{Name: data.Some(fmt.Sprintf("Bulk %02d", i))}
		}
		synced, err := service.Sync(ctx, "u1", inputs)
		require.NoError(t, err)
		assert.Len(t, synced, data.MaxSyncBatch)
	})

	t.Run("OversizedBatchRejectedBeforeAnyWrite", func(t *testing.T) {
		inputs := make([]data.ClientInputDTO, data.MaxSyncBatch+1)
		for i := range inputs {
			inputs[i] = data.ClientInputDTO{Name: data.Some(fmt.Sprintf("Over %02d", i))}
		}
		before := fake.Writes
		_, err := service.Sync(ctx, "u1", inputs)
		var invalid *exceptions.InvalidInputError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, before, fake.Writes)
	})

	t.Run("EmptyBatchRejected", func(t *testing.T) {
		_, err := service.Sync(ctx, "u1", nil)
		var invalid *exceptions.InvalidInputError
		require.ErrorAs(t, err, &invalid)
	})
}

func TestInvoiceValidation(t *testing.T) {
	ctx := context.Background()
	service := invoices.NewInvoiceService(tableName, test.NewFakeDynamoDB(), token.NewGCM())

	_, err := service.Create(ctx, "u1", data.InvoiceInputDTO{
		ClientName: data.Some("Acme"),
	})
	var invalid *exceptions.InvalidInputError
	require.ErrorAs(t, err, &invalid)

	_, err = service.Create(ctx, "u1", data.InvoiceInputDTO{
		LineItems: data.Some([]data.LineItemDTO{{Description: "work", Quantity: 1, UnitPrice: 50}}),
	})
	require.ErrorAs(t, err, &invalid)
}

func TestDeckCardsDefaultEmpty(t *testing.T) {
	ctx := context.Background()
	service := decks.NewDeckService(tableName, test.NewFakeDynamoDB(), token.NewGCM())

	created, err := service.Create(ctx, "u1", data.DeckInputDTO{
		Name: data.Some("Spanish"),
	})
	require.NoError(t, err)
	assert.Equal(t, []data.CardDTO{}, created.Cards)
	assert.Nil(t, created.Description)
	assert.Equal(t, keys.Deck("u1", created.Id).PK, created.PK)
}

func TestAuditEntriesImmutable(t *testing.T) {
	ctx := context.Background()
	service := audits.NewAuditService(tableName, test.NewFakeDynamoDB(), token.NewGCM())

	created, err := service.Create(ctx, "u1", data.AuditInputDTO{
		ResourceId:   data.Some("c1"),
		ResourceType: data.Some("CLIENT"),
		Action:       data.Some("created"),
		Message:      data.Some("Client c1 was created"),
	})
	require.NoError(t, err)
	require.NotNil(t, created.ExpiresIn)

	_, err = service.Update(ctx, "u1", created.Id, data.AuditInputDTO{
		Message: data.Some("rewritten"),
	})
	var invalid *exceptions.InvalidInputError
	require.ErrorAs(t, err, &invalid)
}
