package vocab

import (
	"math/rand"

	"github.com/julianstephens/lernplan/internal/models"
)

// Deck is a flashcard session. The zero value is an empty deck.
type Deck struct {
	cards   []models.VocabularyItem
	pos     int
	flipped bool
	known   map[int]bool
	order   []int
}

func NewDeck(items []models.VocabularyItem) *Deck {
	d := &Deck{
		cards: make([]models.VocabularyItem, len(items)),
		known: make(map[int]bool),
		order: make([]int, len(items)),
	}
	copy(d.cards, items)
	for i := range d.order {
		d.order[i] = i
	}
	return d
}

func (d *Deck) Len() int {
	return len(d.order)
}

// Position is the zero-based index of the current card
func (d *Deck) Position() int {
	return d.pos
}

// Current returns the card on top. ok is false for an empty deck.
func (d *Deck) Current() (models.VocabularyItem, bool) {
	if len(d.order) == 0 {
		return models.VocabularyItem{}, false
	}
	return d.cards[d.order[d.pos]], true
}

// Flip turns the current card over
func (d *Deck) Flip() {
	d.flipped = !d.flipped
}

func (d *Deck) Flipped() bool {
	return d.flipped
}

// Next moves to the following card, wrapping at the end. The new card is
// shown front side up.
func (d *Deck) Next() {
	if len(d.order) == 0 {
		return
	}
	d.pos = (d.pos + 1) % len(d.order)
	d.flipped = false
}

func (d *Deck) Prev() {
	if len(d.order) == 0 {
		return
	}
	d.pos = (d.pos - 1 + len(d.order)) % len(d.order)
	d.flipped = false
}

// MarkKnown records the current card as known and advances
func (d *Deck) MarkKnown() {
	d.mark(true)
}

// MarkUnknown clears a previous known mark and advances
func (d *Deck) MarkUnknown() {
	d.mark(false)
}

func (d *Deck) mark(known bool) {
	if len(d.order) == 0 {
		return
	}
	if known {
		d.known[d.order[d.pos]] = true
	} else {
		delete(d.known, d.order[d.pos])
	}
	d.Next()
}

func (d *Deck) Known() int {
	return len(d.known)
}

func (d *Deck) Remaining() int {
	return len(d.order) - len(d.known)
}

// Shuffle reorders the deck using src and restarts from the first card.
// Known marks are kept.
func (d *Deck) Shuffle(src rand.Source) {
	r := rand.New(src)
	r.Shuffle(len(d.order), func(i, j int) {
		d.order[i], d.order[j] = d.order[j], d.order[i]
	})
	d.pos = 0
	d.flipped = false
}
