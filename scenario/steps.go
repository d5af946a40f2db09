package scenario

import (
	"context"
	"net/http"
	"strconv"

	"github.com/logbook/api-contract-tests/apidef"
	"github.com/logbook/api-contract-tests/client"
	"github.com/logbook/api-contract-tests/fieldmatch"
	"github.com/logbook/api-contract-tests/framework"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const preserveDataReason = "data preservation requested (KEEP_DATA)"

func (s *Scenario) adminLogin(ctx context.Context) error {
	cred, err := s.login(ctx, "admin", s.cfg.AdminUsername, s.cfg.AdminPassword, apidef.RoleAdmin)
	if err != nil {
		return err
	}
	s.admin = cred
	return nil
}

func (s *Scenario) memberLogin(ctx context.Context) error {
	if s.memberUsername == "" {
		return unexpected("no member username; member account was not created")
	}
	cred, err := s.login(ctx, "member", s.memberUsername, s.cfg.MemberPassword, apidef.RoleMember)
	if err != nil {
		return err
	}
	s.member = cred
	return nil
}

func (s *Scenario) login(ctx context.Context, who, username, password, wantRole string) (*Credential, error) {
	body, err := s.expectOK(ctx, http.MethodPost, apidef.PathLogin, nil,
		apidef.LoginParams{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	// The body holds a live token, so it is left out of these messages.
	token, ok := fieldmatch.Resolve(body.Value(), "token")
	if !ok || token.Type() != ldvalue.StringType || token.StringValue() == "" {
		return nil, unexpected("%s login response missing token", who)
	}
	role, _ := fieldmatch.Resolve(body.Value(), "role")
	if role.Type() != ldvalue.StringType || role.StringValue() != wantRole {
		return nil, unexpected("%s login role mismatch: expected %q, got %s", who, wantRole, role.JSONString())
	}
	cred := &Credential{Token: token.StringValue(), Role: role.StringValue()}
	s.logger.Printf("Logged in as %s with role %s", username, cred.Role)
	return cred, nil
}

func (s *Scenario) listAdminAccounts(ctx context.Context) error {
	admin, err := s.requireAdmin()
	if err != nil {
		return err
	}
	body, err := s.expectOK(ctx, http.MethodGet, apidef.PathAdminAccounts, admin, nil)
	if err != nil {
		return err
	}
	accounts := body.Value()
	if accounts.Type() != ldvalue.ArrayType {
		return invalidResponse(body, "accounts list response is not a list")
	}
	wantUsername := ldvalue.String(s.cfg.AdminUsername)
	index := fieldmatch.IndexInArray(accounts, func(_ int, item ldvalue.Value) bool {
		username, ok := fieldmatch.Resolve(item, "username")
		return ok && username.Equal(wantUsername)
	})
	if index < 0 {
		return unexpected("admin account %q not found in account list", s.cfg.AdminUsername)
	}
	account := accounts.GetByIndex(index)
	id, ok := idAt(body, account, []interface{}{index}, "id")
	if !ok {
		return invalidResponse(client.JSONBody(account), "admin account missing id")
	}
	s.adminAccountID = id
	s.logger.Printf("Found admin account %s with id %s", s.cfg.AdminUsername, id)
	return nil
}

func (s *Scenario) createMemberAccount(ctx context.Context) error {
	admin, err := s.requireAdmin()
	if err != nil {
		return err
	}
	params := apidef.NewMemberAccount(s.instant().Unix(), s.cfg.MemberPassword)
	body, err := s.expect(ctx, http.MethodPost, apidef.PathAdminAccounts, admin, params, http.StatusCreated)
	if err != nil {
		return err
	}
	id, err := requiredID(body, "member account create response", "id")
	if err != nil {
		return err
	}
	s.memberUsername = params.Username
	s.memberID = id
	s.logger.Printf("Created member account %s with id %s", params.Username, id)
	return nil
}

func (s *Scenario) createLogHead(ctx context.Context) error {
	admin, err := s.requireAdmin()
	if err != nil {
		return err
	}
	memberID, err := s.requireMemberID()
	if err != nil {
		return err
	}
	now := s.instant()
	params := apidef.CreateLogHeadParams{
		Subject:      "Test Subject " + strconv.FormatInt(now.Unix(), 10),
		StartDate:    apidef.FormatTimestamp(now),
		EndDate:      apidef.FormatTimestamp(now.Add(logHeadValidity)),
		WriterIDList: []apidef.ID{memberID},
		OwnerID:      memberID,
	}
	body, err := s.expect(ctx, http.MethodPost, apidef.PathAdminLogHeads, admin, params, http.StatusCreated)
	if err != nil {
		return err
	}
	id, err := requiredID(body, "log head create response", "id")
	if err != nil {
		return err
	}
	s.logHeadID = id
	s.logger.Printf("Created log head %q with id %s", params.Subject, id)
	return nil
}

func (s *Scenario) listLogHeads(ctx context.Context) error {
	return s.listAsAdmin(ctx, apidef.PathLogHeads)
}

func (s *Scenario) listWritableAsAdmin(ctx context.Context) error {
	return s.listAsAdmin(ctx, apidef.PathWritableHeads)
}

func (s *Scenario) listAdminLogHeads(ctx context.Context) error {
	return s.listAsAdmin(ctx, apidef.PathAdminLogHeads)
}

func (s *Scenario) listAsAdmin(ctx context.Context, path string) error {
	admin, err := s.requireAdmin()
	if err != nil {
		return err
	}
	_, err = s.expectOK(ctx, http.MethodGet, path, admin, nil)
	return err
}

func (s *Scenario) listWritableAsMember(ctx context.Context) error {
	member, err := s.requireMember()
	if err != nil {
		return err
	}
	logHeadID, err := s.requireLogHeadID()
	if err != nil {
		return err
	}
	body, err := s.expectOK(ctx, http.MethodGet, apidef.PathWritableHeads, member, nil)
	if err != nil {
		return err
	}
	// Only a list can be checked for membership; other shapes pass on status alone.
	if heads := body.Value(); heads.Type() == ldvalue.ArrayType {
		index := fieldmatch.IndexInArray(heads, func(i int, item ldvalue.Value) bool {
			id, ok := idAt(body, item, []interface{}{i}, "id")
			return ok && id.Equal(logHeadID)
		})
		if index < 0 {
			return invalidResponse(body, "member writable list missing created log head %s", logHeadID)
		}
	}
	return nil
}

func (s *Scenario) createLogContent(ctx context.Context) error {
	member, err := s.requireMember()
	if err != nil {
		return err
	}
	logHeadID, err := s.requireLogHeadID()
	if err != nil {
		return err
	}
	params := apidef.CreateLogContentParams{
		LogHeadID: logHeadID,
		Content:   apidef.DefaultLogContent,
		Date:      apidef.FormatTimestamp(s.instant()),
	}
	body, err := s.expect(ctx, http.MethodPost, apidef.PathLogContents, member, params, http.StatusCreated)
	if err != nil {
		return err
	}
	ref, ok := idAt(body, body.Value(), nil, "log_head_id")
	if !ok || !ref.Equal(logHeadID) {
		return invalidResponse(body, "log content create response does not reference log head %s", logHeadID)
	}
	return nil
}

func (s *Scenario) deleteLogHead(ctx context.Context) error {
	if s.cfg.PreserveData {
		return framework.Skip(preserveDataReason)
	}
	admin, err := s.requireAdmin()
	if err != nil {
		return err
	}
	logHeadID, err := s.requireLogHeadID()
	if err != nil {
		return err
	}
	_, err = s.expect(ctx, http.MethodDelete, apidef.AdminLogHeadPath(logHeadID.PathSegment()), admin, nil,
		http.StatusNoContent)
	return err
}

func (s *Scenario) deleteMemberAccount(ctx context.Context) error {
	if s.cfg.PreserveData {
		return framework.Skip(preserveDataReason)
	}
	admin, err := s.requireAdmin()
	if err != nil {
		return err
	}
	memberID, err := s.requireMemberID()
	if err != nil {
		return err
	}
	_, err = s.expect(ctx, http.MethodDelete, apidef.AdminAccountPath(memberID.PathSegment()), admin, nil,
		http.StatusNoContent)
	return err
}

// requiredID resolves an identifier field of a response object, failing if it is missing, null,
// or neither a string nor a number.
func requiredID(body client.Body, what string, names ...string) (apidef.ID, error) {
	id, ok := idAt(body, body.Value(), nil, names...)
	if !ok {
		return apidef.ID{}, invalidResponse(body, "%s missing id", what)
	}
	return id, nil
}

// idAt reads an identifier from obj, the element of body found at path. The key is matched
// flexibly on the decoded value; the identifier itself is taken from the exact response text.
func idAt(body client.Body, obj ldvalue.Value, path []interface{}, names ...string) (apidef.ID, bool) {
	key, ok := fieldmatch.ResolveKey(obj, names...)
	if !ok {
		return apidef.ID{}, false
	}
	raw, ok := body.RawAt(append(path, key)...)
	if !ok {
		return apidef.ID{}, false
	}
	return apidef.ParseID(raw)
}
