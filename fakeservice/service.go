// Package fakeservice is an in-memory stand-in for the logbook service, used to run the contract
// tests end to end without a deployment. It issues HS256 bearer tokens, enforces the admin role
// on /api/admin, and can be told to misbehave in specific ways through Faults.
package fakeservice

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Faults describes deliberate deviations from correct behavior.
type Faults struct {
	// RoleOverride replaces the role reported by login for the given usernames.
	RoleOverride map[string]string
	// OmitLoginToken drops the token from every login response.
	OmitLoginToken bool
	// HideWritableFromMembers makes GET /api/log-heads/writable return an empty list to members.
	HideWritableFromMembers bool
	// OmitAccountID drops the id from account creation responses.
	OmitAccountID bool
	// StringIDs renders every identifier as a JSON string instead of a number.
	StringIDs bool
	// Status forces a response status for a "METHOD /path" key, bypassing the handler.
	Status map[string]int
}

// Service is the fake logbook service. Create it with New and serve Handler().
type Service struct {
	store  *memoryStore
	tokens *tokenIssuer
	faults Faults

	mu       sync.Mutex
	requests []string
}

// New creates a service whose only account is an admin with the given credentials.
func New(adminUsername, adminPassword string, faults Faults) *Service {
	s := &Service{
		store:  newMemoryStore(),
		tokens: newTokenIssuer(),
		faults: faults,
	}
	s.store.addAccount(Account{
		Username: adminUsername,
		Email:    adminUsername + "@example.com",
		Password: adminPassword,
		Role:     roleAdmin,
	})
	return s
}

// Handler returns the service's HTTP routes.
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.recordRequests)
	r.Use(s.forcedStatus)

	r.Post("/api/auth/login", s.login)
	r.Route("/api", func(r chi.Router) {
		r.Use(s.requireToken)

		r.Get("/log-heads", s.listLogHeads)
		r.Get("/log-heads/writable", s.listWritableLogHeads)
		r.Post("/log-contents", s.createLogContent)

		r.Route("/admin", func(r chi.Router) {
			r.Use(requireRole(roleAdmin))

			r.Get("/accounts", s.listAccounts)
			r.Post("/accounts", s.createAccount)
			r.Delete("/accounts/{id}", s.deleteAccount)

			r.Get("/log-heads", s.listLogHeads)
			r.Post("/log-heads", s.createLogHead)
			r.Delete("/log-heads/{id}", s.deleteLogHead)
		})
	})
	return r
}

// Accounts returns a snapshot of all accounts, ordered by id.
func (s *Service) Accounts() []Account { return s.store.listAccounts() }

// LogHeads returns a snapshot of all log heads, ordered by id.
func (s *Service) LogHeads() []LogHead { return s.store.listHeads(nil) }

// LogContents returns a snapshot of all log contents, ordered by id.
func (s *Service) LogContents() []LogContent { return s.store.listContents() }

// Requests returns every request received so far as "METHOD /path" strings.
func (s *Service) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *Service) recordRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, requestKey(r))
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Service) forcedStatus(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status, ok := s.faults.Status[requestKey(r)]; ok {
			writeError(w, status, "forced status")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestKey(r *http.Request) string {
	return r.Method + " " + r.URL.Path
}
