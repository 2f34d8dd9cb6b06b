package content

import (
	"hash/fnv"
	"math/rand"

	"github.com/phrazzld/lexiplay/internal/domain"
)

// builtinWords holds the word lists per level. Lengths follow
// generation.WordLength.
var builtinWords = [domain.MaxLevel + 1][]string{
	{"cat", "dog", "sun", "hat", "pig", "bus", "cup", "red", "box", "fox"},
	{"frog", "milk", "tree", "bird", "fish", "cake", "ship", "lamp", "moon", "duck"},
	{"apple", "house", "chair", "plant", "horse", "bread", "train", "smile", "cloud", "tiger"},
	{"garden", "rabbit", "yellow", "pencil", "basket", "castle", "monkey", "orange", "turtle", "window"},
	{"elephant", "dinosaur", "umbrella", "pumpkin", "rainbow", "kitchen", "giraffe", "blanket", "chicken", "dolphin"},
}

// scramble shuffles the letters of word deterministically. The result always
// differs from word as long as word has two different letters.
func scramble(word string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(word))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	letters := []byte(word)
	for attempt := 0; attempt < 8; attempt++ {
		rng.Shuffle(len(letters), func(i, j int) {
			letters[i], letters[j] = letters[j], letters[i]
		})
		if string(letters) != word {
			return string(letters)
		}
	}

	// swap the first pair of different letters
	letters = []byte(word)
	for i := 1; i < len(letters); i++ {
		if letters[i] != letters[0] {
			letters[0], letters[i] = letters[i], letters[0]
			break
		}
	}
	return string(letters)
}

func buildWordPool(level int) []domain.ScrambledWord {
	words := builtinWords[domain.ClampLevel(level)]
	pool := make([]domain.ScrambledWord, 0, len(words))
	for _, w := range words {
		pool = append(pool, domain.ScrambledWord{Scrambled: scramble(w), Word: w})
	}
	return pool
}
