package scenario

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/logbook/api-contract-tests/apidef"
	"github.com/logbook/api-contract-tests/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cannedResponse struct {
	status int
	body   string
}

// stubCaller answers from canned responses keyed by "METHOD path" and records every call.
type stubCaller struct {
	responses map[string]cannedResponse
	calls     []string
	tokens    []string
	bodies    []string
}

func (c *stubCaller) Call(ctx context.Context, method, path, token string, body interface{}) (client.Response, error) {
	key := method + " " + path
	c.calls = append(c.calls, key)
	c.tokens = append(c.tokens, token)
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return client.Response{}, err
		}
		c.bodies = append(c.bodies, string(data))
	}
	r, ok := c.responses[key]
	if !ok {
		return client.Response{Status: http.StatusNotFound, Body: client.DecodeBody(nil)}, nil
	}
	return client.Response{Status: r.status, Body: client.DecodeBody([]byte(r.body))}, nil
}

func parseID(t *testing.T, raw string) apidef.ID {
	t.Helper()
	id, ok := apidef.ParseID(json.RawMessage(raw))
	require.True(t, ok)
	return id
}

func newStubScenario(responses map[string]cannedResponse) (*Scenario, *stubCaller) {
	caller := &stubCaller{responses: responses}
	return New(testConfig(), caller, WithClock(fixedClock)), caller
}

func TestStepsNeedingMissingStateSendNoRequest(t *testing.T) {
	sc, caller := newStubScenario(nil)
	ctx := context.Background()

	for name, action := range map[string]func(context.Context) error{
		"list admin accounts":   sc.listAdminAccounts,
		"create member account": sc.createMemberAccount,
		"create log head":       sc.createLogHead,
		"member login":          sc.memberLogin,
		"member writable":       sc.listWritableAsMember,
		"create log content":    sc.createLogContent,
		"delete log head":       sc.deleteLogHead,
		"delete member account": sc.deleteMemberAccount,
	} {
		t.Run(name, func(t *testing.T) {
			err := action(ctx)
			require.Error(t, err)
			assert.IsType(t, &ExpectationError{}, err)
		})
	}
	assert.Empty(t, caller.calls)
}

func TestAccountsListThatIsNotAListFails(t *testing.T) {
	sc, _ := newStubScenario(map[string]cannedResponse{
		"GET /api/admin/accounts": {http.StatusOK, `{"accounts":[]}`},
	})
	sc.admin = &Credential{Token: "t", Role: "admin"}

	err := sc.listAdminAccounts(context.Background())
	assert.EqualError(t, err, `accounts list response is not a list: {"accounts":[]}`)
}

func TestAdminAccountIsFoundByFlexibleKeys(t *testing.T) {
	sc, caller := newStubScenario(map[string]cannedResponse{
		"GET /api/admin/accounts": {http.StatusOK, `[{"ID":5,"UserName":"other"},{"ID":"a-1","user_name":"admin"}]`},
	})
	sc.admin = &Credential{Token: "admin-token", Role: "admin"}

	require.NoError(t, sc.listAdminAccounts(context.Background()))
	assert.Equal(t, `"a-1"`, sc.adminAccountID.String())
	assert.Equal(t, []string{"admin-token"}, caller.tokens)
}

func TestAdminAccountMissingFromListFails(t *testing.T) {
	sc, _ := newStubScenario(map[string]cannedResponse{
		"GET /api/admin/accounts": {http.StatusOK, `[{"id":5,"username":"someone"}]`},
	})
	sc.admin = &Credential{Token: "t", Role: "admin"}

	assert.EqualError(t, sc.listAdminAccounts(context.Background()), `admin account "admin" not found in account list`)
}

func TestNullIdentifierIsTreatedAsMissing(t *testing.T) {
	sc, _ := newStubScenario(map[string]cannedResponse{
		"POST /api/admin/accounts": {http.StatusCreated, `{"id":null}`},
	})
	sc.admin = &Credential{Token: "t", Role: "admin"}

	err := sc.createMemberAccount(context.Background())
	assert.EqualError(t, err, `member account create response missing id: {"id":null}`)
	assert.Empty(t, sc.MemberUsername())
}

func TestMemberWritableListThatIsNotAListPassesOnStatus(t *testing.T) {
	sc, _ := newStubScenario(map[string]cannedResponse{
		"GET /api/log-heads/writable": {http.StatusOK, `{"items":[]}`},
	})
	sc.member = &Credential{Token: "m", Role: "member"}
	sc.logHeadID = parseID(t, "3")

	assert.NoError(t, sc.listWritableAsMember(context.Background()))
}

func TestLogContentMustReferenceLogHead(t *testing.T) {
	sc, _ := newStubScenario(map[string]cannedResponse{
		"POST /api/log-contents": {http.StatusCreated, `{"log_head_id":4}`},
	})
	sc.member = &Credential{Token: "m", Role: "member"}
	sc.logHeadID = parseID(t, "3")

	err := sc.createLogContent(context.Background())
	assert.EqualError(t, err, `log content create response does not reference log head 3: {"log_head_id":4}`)
}

func TestLogContentReferenceMayUseAnotherKeyStyle(t *testing.T) {
	sc, _ := newStubScenario(map[string]cannedResponse{
		"POST /api/log-contents": {http.StatusCreated, `{"ID":9,"LogHeadID":3}`},
	})
	sc.member = &Credential{Token: "m", Role: "member"}
	sc.logHeadID = parseID(t, "3")

	assert.NoError(t, sc.createLogContent(context.Background()))
}

func TestNonJSONErrorBodyAppearsInMessage(t *testing.T) {
	sc, _ := newStubScenario(map[string]cannedResponse{
		"POST /api/auth/login": {http.StatusBadGateway, "upstream unavailable"},
	})

	err := sc.adminLogin(context.Background())
	assert.EqualError(t, err, "POST /api/auth/login expected 200, got 502: upstream unavailable")
}

func TestClockIsReadOnce(t *testing.T) {
	calls := 0
	sc := New(testConfig(), &stubCaller{}, WithClock(func() time.Time {
		calls++
		return fixedNow.Add(time.Duration(calls) * time.Second)
	}))

	first := sc.instant()
	assert.Equal(t, first, sc.instant())
	assert.Equal(t, 1, calls)
	assert.Equal(t, time.UTC, first.Location())
}

func TestLargeNumericIdentifiersKeepEveryDigit(t *testing.T) {
	sc, caller := newStubScenario(map[string]cannedResponse{
		"POST /api/admin/accounts":                     {http.StatusCreated, `{"id": 9007199254740993}`},
		"POST /api/admin/log-heads":                    {http.StatusCreated, `{"id": 9007199254740995}`},
		"DELETE /api/admin/log-heads/9007199254740995": {http.StatusNoContent, ""},
		"DELETE /api/admin/accounts/9007199254740993":  {http.StatusNoContent, ""},
	})
	sc.admin = &Credential{Token: "t", Role: "admin"}
	ctx := context.Background()

	require.NoError(t, sc.createMemberAccount(ctx))
	require.NoError(t, sc.createLogHead(ctx))
	require.NoError(t, sc.deleteLogHead(ctx))
	require.NoError(t, sc.deleteMemberAccount(ctx))

	assert.Equal(t, []string{
		"POST /api/admin/accounts",
		"POST /api/admin/log-heads",
		"DELETE /api/admin/log-heads/9007199254740995",
		"DELETE /api/admin/accounts/9007199254740993",
	}, caller.calls)
	require.Len(t, caller.bodies, 2)
	assert.Contains(t, caller.bodies[1], `"writer_id_list":[9007199254740993]`)
	assert.Contains(t, caller.bodies[1], `"owner_id":9007199254740993`)
}

func TestLargeLogHeadIdentifierIsComparedExactly(t *testing.T) {
	sc, _ := newStubScenario(map[string]cannedResponse{
		"GET /api/log-heads/writable": {http.StatusOK, `[{"id": 9007199254740992}]`},
		"POST /api/log-contents":      {http.StatusCreated, `{"log_head_id": 9007199254740992}`},
	})
	sc.member = &Credential{Token: "m", Role: "member"}
	sc.logHeadID = parseID(t, "9007199254740993")
	ctx := context.Background()

	err := sc.listWritableAsMember(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "member writable list missing created log head 9007199254740993: ")

	err = sc.createLogContent(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log content create response does not reference log head 9007199254740993: ")
}

func TestLogContentIsSentWithExactLogHeadID(t *testing.T) {
	sc, caller := newStubScenario(map[string]cannedResponse{
		"POST /api/log-contents": {http.StatusCreated, `{"log_head_id": "lh-7"}`},
	})
	sc.member = &Credential{Token: "m", Role: "member"}
	sc.logHeadID = parseID(t, `"lh-7"`)

	require.NoError(t, sc.createLogContent(context.Background()))
	require.Len(t, caller.bodies, 1)
	assert.JSONEq(t, `{"log_head_id":"lh-7","content":"Test content","date":"2024-05-06T07:08:09Z"}`, caller.bodies[0])
}

func TestLoginKeepsReportedRole(t *testing.T) {
	sc, _ := newStubScenario(map[string]cannedResponse{
		"POST /api/auth/login": {http.StatusOK, `{"Token": "abc", "Role": "admin"}`},
	})

	require.NoError(t, sc.adminLogin(context.Background()))
	assert.Equal(t, &Credential{Token: "abc", Role: "admin"}, sc.admin)
}
