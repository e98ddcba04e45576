package board

import (
	"strings"
	"sync"
)

// DefaultKeyword launches the runner when a post mentions it.
const DefaultKeyword = "miata"

// Trigger watches a store for posts mentioning a keyword and fires once per
// arm. Matches are ignored until Release re-arms it.
type Trigger struct {
	mu       sync.Mutex
	keywords []string
	active   bool
	launch   func(Post)
	cancel   func()
}

// NewTrigger subscribes to store and calls launch for the first post that
// contains any keyword, ignoring case. Empty keywords are skipped; with
// none left, DefaultKeyword is used.
func NewTrigger(store *Store, keywords []string, launch func(Post)) *Trigger {
	t := &Trigger{launch: launch}
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			t.keywords = append(t.keywords, k)
		}
	}
	if len(t.keywords) == 0 {
		t.keywords = []string{DefaultKeyword}
	}
	t.cancel = store.Subscribe(t.onPost)
	return t
}

// Matches reports whether text contains any keyword.
func (t *Trigger) Matches(text string) bool {
	text = strings.ToLower(text)
	for _, k := range t.keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func (t *Trigger) onPost(p Post, _ []Post) {
	if !t.Matches(p.Text) {
		return
	}
	t.mu.Lock()
	if t.active {
		t.mu.Unlock()
		return
	}
	t.active = true
	t.mu.Unlock()

	if t.launch != nil {
		t.launch(p)
	}
}

// Active reports whether a launch is in progress.
func (t *Trigger) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Release re-arms the trigger after the launched game ends.
func (t *Trigger) Release() {
	t.mu.Lock()
	t.active = false
	t.mu.Unlock()
}

// Close stops watching the store.
func (t *Trigger) Close() {
	t.cancel()
}
