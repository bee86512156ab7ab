package models

// VocabularyItem is a static word entry used by the vocabulary browser and flashcards
type VocabularyItem struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
	Focus       Focus  `json:"focus"`
	Week        int    `json:"week"`
}
