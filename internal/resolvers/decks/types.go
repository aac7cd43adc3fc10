package decks

import (
	"supersimple.dev/cloud/internal/data"
)

type Card struct {
	Id    string `json:"id"`
	Front string `json:"front"`
	Back  string `json:"back"`
}

type Deck struct {
	Id          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Cards       []Card  `json:"cards"`
	CreatedAt   int64   `json:"createdAt"`
	UpdatedAt   int64   `json:"updatedAt"`
	SyncedAt    int64   `json:"syncedAt"`
}

func NewDeck(dto data.DeckDTO) Deck {
	cards := make([]Card, 0, len(dto.Cards))
	for _, card := range dto.Cards {
		cards = append(cards, Card{
			Id:    card.Id,
			Front: card.Front,
			Back:  card.Back,
		})
	}
	return Deck{
		Id:          dto.Id,
		Name:        dto.Name,
		Description: dto.Description,
		Cards:       cards,
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
		SyncedAt:    dto.SyncedAt,
	}
}

type DeckPage struct {
	Items     []Deck  `json:"items"`
	NextToken *string `json:"nextToken"`
}

func NewDeckPage(results data.QueryResults[data.DeckDTO]) DeckPage {
	items := make([]Deck, 0, len(results.Items))
	for _, dto := range results.Items {
		items = append(items, NewDeck(dto))
	}
	return DeckPage{
		Items:     items,
		NextToken: results.NextToken,
	}
}

type SyncDecksOutput struct {
	Synced int    `json:"synced"`
	Items  []Deck `json:"items"`
}

type DeleteDeckOutput struct {
	Id string `json:"id"`
}
