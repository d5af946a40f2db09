package fakeservice

import (
	"sort"
	"sync"
	"time"
)

// Account is listed with capitalized keys ("ID", "Username", ...), matching how the real
// service serializes its untagged models.
type Account struct {
	ID       int64
	Username string
	Email    string
	Phone    int64
	Password string
	Role     string
}

type LogHead struct {
	ID           int64
	Subject      string
	StartDate    time.Time
	EndDate      time.Time
	WriterIDList []int64
	OwnerID      int64
}

type LogContent struct {
	ID        int64
	LogHeadID int64
	WriterID  int64
	Content   string
	Date      time.Time
}

// canWrite reports whether the account may add content to the log head.
func (h LogHead) canWrite(accountID int64) bool {
	if h.OwnerID == accountID {
		return true
	}
	for _, id := range h.WriterIDList {
		if id == accountID {
			return true
		}
	}
	return false
}

type memoryStore struct {
	mu       sync.Mutex
	nextID   int64
	accounts map[int64]Account
	heads    map[int64]LogHead
	contents map[int64]LogContent
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		accounts: make(map[int64]Account),
		heads:    make(map[int64]LogHead),
		contents: make(map[int64]LogContent),
	}
}

func (s *memoryStore) newID() int64 {
	s.nextID++
	return s.nextID
}

func (s *memoryStore) addAccount(a Account) (Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.accounts {
		if existing.Username == a.Username {
			return Account{}, false
		}
	}
	a.ID = s.newID()
	s.accounts[a.ID] = a
	return a, true
}

func (s *memoryStore) accountByUsername(username string) (Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.Username == username {
			return a, true
		}
	}
	return Account{}, false
}

func (s *memoryStore) listAccounts() []Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	ret := make([]Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		ret = append(ret, a)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].ID < ret[j].ID })
	return ret
}

// deleteAccount removes the account, the log heads it owns with their contents, and its
// entries in other log heads' writer lists.
func (s *memoryStore) deleteAccount(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[id]; !ok {
		return false
	}
	delete(s.accounts, id)
	for headID, h := range s.heads {
		if h.OwnerID == id {
			s.deleteHeadLocked(headID)
			continue
		}
		writers := h.WriterIDList[:0:0]
		for _, w := range h.WriterIDList {
			if w != id {
				writers = append(writers, w)
			}
		}
		h.WriterIDList = writers
		s.heads[headID] = h
	}
	return true
}

func (s *memoryStore) addHead(h LogHead) LogHead {
	s.mu.Lock()
	defer s.mu.Unlock()
	h.ID = s.newID()
	s.heads[h.ID] = h
	return h
}

func (s *memoryStore) head(id int64) (LogHead, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.heads[id]
	return h, ok
}

func (s *memoryStore) listHeads(filter func(LogHead) bool) []LogHead {
	s.mu.Lock()
	defer s.mu.Unlock()
	ret := make([]LogHead, 0, len(s.heads))
	for _, h := range s.heads {
		if filter == nil || filter(h) {
			ret = append(ret, h)
		}
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].ID < ret[j].ID })
	return ret
}

func (s *memoryStore) deleteHead(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.heads[id]; !ok {
		return false
	}
	s.deleteHeadLocked(id)
	return true
}

func (s *memoryStore) deleteHeadLocked(id int64) {
	delete(s.heads, id)
	for cid, c := range s.contents {
		if c.LogHeadID == id {
			delete(s.contents, cid)
		}
	}
}

func (s *memoryStore) addContent(c LogContent) LogContent {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.newID()
	s.contents[c.ID] = c
	return c
}

func (s *memoryStore) listContents() []LogContent {
	s.mu.Lock()
	defer s.mu.Unlock()
	ret := make([]LogContent, 0, len(s.contents))
	for _, c := range s.contents {
		ret = append(ret, c)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].ID < ret[j].ID })
	return ret
}
