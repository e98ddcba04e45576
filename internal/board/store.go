// Package board is a small discussion board: an ordered post store with
// subscribers, and a keyword trigger that launches the runner.
package board

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

// Attachment is a file attached to a post.
type Attachment struct {
	URL      string
	Filename string
	FileSize string
	Width    int
	Height   int
}

// Post is a single board message.
type Post struct {
	ID         int64
	Number     int
	Timestamp  time.Time
	Text       string
	Image      *Attachment
	Video      *Attachment
	IsOP       bool
	ThreadName string
}

// Persister stores posts across sessions.
type Persister interface {
	SavePost(p Post) (int64, error)
	LoadPosts() ([]Post, error)
}

// Subscriber is called once per new post with the post and a snapshot of
// the whole list, the new post last.
type Subscriber func(post Post, all []Post)

// Store is an ordered, concurrency-safe list of posts.
type Store struct {
	mu         sync.RWMutex
	posts      []Post
	subs       map[int]Subscriber
	nextSub    int
	nextNumber int
	thread     string
	persister  Persister
	now        func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithPersister loads history from p and saves every new post to it.
func WithPersister(p Persister) StoreOption {
	return func(s *Store) {
		s.persister = p
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// WithThread sets the thread name used for new posts.
func WithThread(name string) StoreOption {
	return func(s *Store) {
		s.thread = name
	}
}

// DefaultThread is the thread name used when none is configured.
const DefaultThread = "/b/ - Random"

// firstNumber is the post number assigned to the first post of an empty board.
const firstNumber = 1

// NewStore creates a store. With a persister, existing posts are loaded first.
func NewStore(opts ...StoreOption) (*Store, error) {
	s := &Store{
		subs:       make(map[int]Subscriber),
		nextNumber: firstNumber,
		thread:     DefaultThread,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.persister != nil {
		posts, err := s.persister.LoadPosts()
		if err != nil {
			return nil, fmt.Errorf("board: load posts: %w", err)
		}
		s.posts = posts
		for _, p := range posts {
			if p.Number >= s.nextNumber {
				s.nextNumber = p.Number + 1
			}
		}
	}
	return s, nil
}

// Subscribe registers fn for new posts and returns a function that removes it.
func (s *Store) Subscribe(fn Subscriber) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// Publish appends a new post with the next number and notifies subscribers.
// The first post on an empty board is the OP.
func (s *Store) Publish(text string) (Post, error) {
	return s.PublishPost(Post{Text: text})
}

// PublishPost appends p, filling in its number, timestamp and thread.
// Subscribers run after the lock is released, in subscription order.
func (s *Store) PublishPost(p Post) (Post, error) {
	s.mu.Lock()
	p.Number = s.nextNumber
	p.Timestamp = s.now()
	p.IsOP = len(s.posts) == 0
	if p.ThreadName == "" {
		p.ThreadName = s.thread
	}

	if s.persister != nil {
		id, err := s.persister.SavePost(p)
		if err != nil {
			s.mu.Unlock()
			return Post{}, fmt.Errorf("board: save post: %w", err)
		}
		p.ID = id
	} else {
		p.ID = int64(p.Number)
	}

	s.nextNumber++
	s.posts = append(s.posts, p)
	snapshot := slices.Clone(s.posts)

	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	subs := make([]Subscriber, 0, len(ids))
	for _, id := range ids {
		subs = append(subs, s.subs[id])
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(p, snapshot)
	}
	return p, nil
}

// All returns a copy of every post in order.
func (s *Store) All() []Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.posts)
}

// Len returns the number of posts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts)
}

// ByID returns the post with the given ID.
func (s *Store) ByID(id int64) (Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.posts {
		if p.ID == id {
			return p, true
		}
	}
	return Post{}, false
}

// ByNumbers returns the posts with the given numbers, in board order.
func (s *Store) ByNumbers(numbers ...int) []Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Post
	for _, p := range s.posts {
		if slices.Contains(numbers, p.Number) {
			out = append(out, p)
		}
	}
	return out
}

// WithText returns the posts whose text contains q, ignoring case.
func (s *Store) WithText(q string) []Post {
	q = strings.ToLower(q)
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Post
	for _, p := range s.posts {
		if strings.Contains(strings.ToLower(p.Text), q) {
			out = append(out, p)
		}
	}
	return out
}

// WithImages returns the posts that carry an image.
func (s *Store) WithImages() []Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Post
	for _, p := range s.posts {
		if p.Image != nil {
			out = append(out, p)
		}
	}
	return out
}
