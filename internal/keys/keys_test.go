package keys

import (
	"testing"
	"time"
)

func TestPrimaryKeys(t *testing.T) {
	tests := []struct {
		name   string
		key    PrimaryKey
		wantPK string
	}{
		{
			name:   "client",
			key:    Client("u1", "c1"),
			wantPK: "USER#u1#CLIENT#c1",
		},
		{
			name:   "invoice",
			key:    Invoice("u1", "inv-9"),
			wantPK: "USER#u1#INVOICE#inv-9",
		},
		{
			name:   "deck",
			key:    Deck("u2", "d7"),
			wantPK: "USER#u2#DECK#d7",
		},
		{
			name:   "audit",
			key:    Audit("u2", "a3"),
			wantPK: "USER#u2#AUDIT#a3",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.key.PK != tt.wantPK {
				t.Errorf("PK = %s, want %s", tt.key.PK, tt.wantPK)
			}
			if tt.key.SK != MetadataSK {
				t.Errorf("SK = %s, want %s", tt.key.SK, MetadataSK)
			}
		})
	}
}

func TestTypesNeverCollide(t *testing.T) {
	client := Client("u1", "same-id")
	deck := Deck("u1", "same-id")
	if client.PK == deck.PK {
		t.Errorf("client and deck keys collide: %s", client.PK)
	}
}

func TestListKeys(t *testing.T) {
	if got := ClientList("u1").GSI1PK; got != "USER#u1#TYPE#CLIENT" {
		t.Errorf("ClientList = %s", got)
	}
	if got := InvoiceList("u1").GSI1PK; got != "USER#u1#TYPE#INVOICE" {
		t.Errorf("InvoiceList = %s", got)
	}
}

func TestSortValues(t *testing.T) {
	if got := ByName("Alice"); got != "NAME#Alice" {
		t.Errorf("ByName = %s", got)
	}
	earlier := ByDate(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	later := ByDate(time.Date(2024, 11, 2, 3, 4, 5, 0, time.UTC))
	if earlier >= later {
		t.Errorf("dates do not sort lexicographically: %s >= %s", earlier, later)
	}
}

func TestParsePK(t *testing.T) {
	parsed, ok := ParsePK("USER#u1#CLIENT#c1")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if parsed.UserId != "u1" || parsed.EntityType != TypeClient || parsed.Id != "c1" {
		t.Errorf("parsed = %+v", parsed)
	}

	if _, ok := ParsePK("GLOBAL#something"); ok {
		t.Error("expected parse to fail for foreign key shape")
	}
}
