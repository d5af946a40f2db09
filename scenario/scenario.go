package scenario

import (
	"context"
	"net/http"
	"time"

	"github.com/logbook/api-contract-tests/apidef"
	"github.com/logbook/api-contract-tests/client"
	"github.com/logbook/api-contract-tests/config"
	"github.com/logbook/api-contract-tests/framework"
)

const logHeadValidity = 24 * time.Hour

// Caller sends one request to the service under test. *client.Client implements it.
type Caller interface {
	Call(ctx context.Context, method, path, token string, body interface{}) (client.Response, error)
}

// Credential is a bearer token obtained by logging in, and the role the service reported for it.
type Credential struct {
	Token string
	Role  string
}

// Option customizes a Scenario.
type Option func(*Scenario)

// WithClock sets the source of the current time, which determines the generated usernames and
// the log-head date window.
func WithClock(now func() time.Time) Option {
	return func(s *Scenario) { s.now = now }
}

// WithLogger sets the logger for debug output.
func WithLogger(logger framework.Logger) Option {
	return func(s *Scenario) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Scenario holds the state of one run. It is not safe for concurrent use and must not be reused
// for a second run.
type Scenario struct {
	cfg    config.Config
	caller Caller
	now    func() time.Time
	logger framework.Logger

	startedAt      time.Time
	clockRead      bool
	admin          *Credential
	member         *Credential
	adminAccountID apidef.ID
	memberUsername string
	memberID       apidef.ID
	logHeadID      apidef.ID
}

func New(cfg config.Config, caller Caller, options ...Option) *Scenario {
	s := &Scenario{
		cfg:    cfg,
		caller: caller,
		now:    time.Now,
		logger: framework.NullLogger(),
	}
	for _, o := range options {
		o(s)
	}
	return s
}

// Run executes every step in order and stops at the first failure.
func (s *Scenario) Run(ctx context.Context, logger framework.StepLogger) framework.Results {
	return framework.Run(ctx, s.Steps(), logger)
}

// Steps returns the scenario's steps in the order they must run.
func (s *Scenario) Steps() []framework.Step {
	return []framework.Step{
		{Name: "admin login", Action: s.adminLogin},
		{Name: "list admin accounts", Action: s.listAdminAccounts},
		{Name: "create member account", Action: s.createMemberAccount},
		{Name: "create log head", Action: s.createLogHead},
		{Name: "list log heads", Action: s.listLogHeads},
		{Name: "list writable log heads (admin)", Action: s.listWritableAsAdmin},
		{Name: "member login", Action: s.memberLogin},
		{Name: "list writable log heads (member)", Action: s.listWritableAsMember},
		{Name: "create log content", Action: s.createLogContent},
		{Name: "list admin log heads", Action: s.listAdminLogHeads},
		{Name: "delete log head", Action: s.deleteLogHead},
		{Name: "delete member account", Action: s.deleteMemberAccount},
	}
}

// MemberID returns the identifier of the member account created by this run, if any.
func (s *Scenario) MemberID() (apidef.ID, bool) {
	return s.memberID, !s.memberID.IsZero()
}

// LogHeadID returns the identifier of the log head created by this run, if any.
func (s *Scenario) LogHeadID() (apidef.ID, bool) {
	return s.logHeadID, !s.logHeadID.IsZero()
}

// MemberUsername returns the username generated for this run's member account.
func (s *Scenario) MemberUsername() string {
	return s.memberUsername
}

// instant returns the time the run's generated data is based on. The clock is read only once so
// that the username suffix and the date window agree.
func (s *Scenario) instant() time.Time {
	if !s.clockRead {
		s.startedAt = s.now().UTC()
		s.clockRead = true
	}
	return s.startedAt
}

// expect sends a request and fails unless the response status is exactly expected.
func (s *Scenario) expect(
	ctx context.Context,
	method, path string,
	cred *Credential,
	body interface{},
	expected int,
) (client.Body, error) {
	token := ""
	if cred != nil {
		token = cred.Token
	}
	resp, err := s.caller.Call(ctx, method, path, token, body)
	if err != nil {
		return client.Body{}, err
	}
	if resp.Status != expected {
		return client.Body{}, statusMismatch(method, path, expected, resp)
	}
	return resp.Body, nil
}

func (s *Scenario) expectOK(ctx context.Context, method, path string, cred *Credential, body interface{}) (client.Body, error) {
	return s.expect(ctx, method, path, cred, body, http.StatusOK)
}

func (s *Scenario) requireAdmin() (*Credential, error) {
	if s.admin == nil {
		return nil, unexpected("no admin credential; admin login did not succeed")
	}
	return s.admin, nil
}

func (s *Scenario) requireMember() (*Credential, error) {
	if s.member == nil {
		return nil, unexpected("no member credential; member login did not succeed")
	}
	return s.member, nil
}

func (s *Scenario) requireMemberID() (apidef.ID, error) {
	if s.memberID.IsZero() {
		return apidef.ID{}, unexpected("no member account id; member account was not created")
	}
	return s.memberID, nil
}

func (s *Scenario) requireLogHeadID() (apidef.ID, error) {
	if s.logHeadID.IsZero() {
		return apidef.ID{}, unexpected("no log head id; log head was not created")
	}
	return s.logHeadID, nil
}
